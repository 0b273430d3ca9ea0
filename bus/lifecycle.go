package bus

import (
	"github.com/isuruh15/PJON/platform"
	"github.com/isuruh15/PJON/protocol"
)

// Begin seeds this device's entropy source (already done by New via
// platform.NewEntropy) and sleeps a random startup jitter, matching
// PJON.h's begin(): randomSeed(analogRead(A0)); delay(random(0,
// INITIAL_MAX_DELAY)). Call it once before the first Update/Receive so
// devices power-cycled together don't all start probing or sending in
// lockstep.
func (b *Bus) Begin() error {
	platform.SleepMillis(b.entropy.Intn(protocol.InitialMaxDelayMs))
	return nil
}

// AcquireID probes the bus for a free device id in [1, 254] and adopts
// the first one that goes unanswered for MAX_ATTEMPTS consecutive
// attempts, per spec §4.3, C7, and PJON.h's acquire_id(). Each candidate
// is dispatched through the real queue, and Update is driven directly
// until that slot clears — via an ACK (the id is taken, try the next
// one) or via Update's own ACQUIRE_ID special case claiming the id once
// the candidate exhausts MAX_ATTEMPTS attempts unanswered. The whole scan
// is bounded by a single deadline captured up front, not re-armed per
// candidate.
func (b *Bus) AcquireID() (protocol.DeviceID, error) {
	start := b.clock.Micros()
	header := protocol.MakeHeader(b.shared, false, true)

	for candidate := 1; candidate <= 254; candidate++ {
		if b.clock.Micros()-start >= protocol.MaxIDScanTimeUs {
			break
		}

		idx, err := b.Dispatch(protocol.DeviceID(candidate), []byte{byte(protocol.AcquireID)}, header)
		if err != nil {
			continue
		}

		for !b.queue[idx].free() && b.clock.Micros()-start < protocol.MaxIDScanTimeUs {
			b.Update()
		}

		if b.deviceID != protocol.NotAssigned {
			return b.deviceID, nil
		}
	}

	b.deviceID = protocol.NotAssigned
	b.reportError(protocol.ErrCodeIDAcquisitionFail, 0)
	return 0, ErrIDAcquisitionFailed
}
