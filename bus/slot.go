package bus

import "github.com/isuruh15/PJON/protocol"

// QueueSlot is one entry in a Bus's fixed-capacity transmit queue (spec
// §3 QueueSlot). Content is a statically-sized array rather than a heap
// allocation — per spec §9's "Heap use is avoidable" note — so a FREE
// slot owns nothing and there is no MEMORY_FULL failure mode to report.
type QueueSlot struct {
	State        uint16
	DeviceID     protocol.DeviceID
	Header       protocol.Header
	Content      [protocol.PacketMaxLength]byte
	Length       int
	Attempts     int
	Registration uint32

	// repeatIntervalUs is non-zero for a slot armed via SendRepeatedly: the
	// due-check and post-attempt handling both treat 0 as one-shot.
	repeatIntervalUs uint32
}

func (s *QueueSlot) free() bool { return s.State == protocol.SlotFree }

func (s *QueueSlot) payload() []byte { return s.Content[:s.Length] }

func (s *QueueSlot) reset() { *s = QueueSlot{} }

// due reports whether now has passed this slot's next scheduled attempt.
// It is anchored to Registration, not to the time of the most recent
// attempt, mirroring PJON.h's update(): (micros() - registration) >
// timing + attempts³. Registration only moves when a slot is dispatched
// or rearmed, so back-off is always measured from a fixed point, not
// reset on every retry.
func (s *QueueSlot) due(now uint32) bool {
	backoff := uint32(s.Attempts) * uint32(s.Attempts) * uint32(s.Attempts)
	return now-s.Registration > s.repeatIntervalUs+backoff
}

// isAcquireIDProbe reports whether this slot's payload (past whatever
// addressing prefix its header calls for) is an ACQUIRE_ID probe, per
// PJON.h's `packets[i].content[0] == ACQUIRE_ID` check.
func (s *QueueSlot) isAcquireIDProbe() bool {
	offset := s.Header.AddressingBytes()
	return s.Length > offset && s.Content[offset] == protocol.AcquireID
}
