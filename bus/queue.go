package bus

import (
	"github.com/isuruh15/PJON/protocol"
)

// Dispatch enqueues content for delivery to destination on this device's
// own bus id and returns the queue index it was placed in (spec §4.6,
// C6). It composes the addressing prefix called for by the header and b's
// current identity, then copies prefix+content into the slot's fixed
// Content array — no allocation survives the call.
func (b *Bus) Dispatch(destination protocol.DeviceID, content []byte, header protocol.Header) (int, error) {
	return b.dispatchToBus(destination, b.busID, content, header)
}

// DispatchToBus is Dispatch's bus-id-explicit form: it addresses a device
// on a named remote bus rather than the device's own, per PJON.h's
// bus-id-explicit send overloads.
func (b *Bus) DispatchToBus(destination protocol.DeviceID, targetBus protocol.BusID, content []byte, header protocol.Header) (int, error) {
	return b.dispatchToBus(destination, targetBus, content, header)
}

func (b *Bus) dispatchToBus(destination protocol.DeviceID, targetBus protocol.BusID, content []byte, header protocol.Header) (int, error) {
	prefix := protocol.ComposeAddressing(header, targetBus, b.busID, b.deviceID)
	total := len(prefix) + len(content)
	if err := protocol.CheckFrameSize(total); err != nil {
		b.reportError(protocol.ErrCodeContentTooLong, byte(total))
		return -1, ErrContentTooLong
	}

	idx := -1
	for i := range b.queue {
		if b.queue[i].free() {
			idx = i
			break
		}
	}
	if idx == -1 {
		b.reportError(protocol.ErrCodePacketsBufferFull, 0)
		return -1, ErrQueueFull
	}

	slot := &b.queue[idx]
	slot.DeviceID = destination
	slot.Header = header
	slot.Length = total
	copy(slot.Content[:len(prefix)], prefix)
	copy(slot.Content[len(prefix):total], content)
	slot.Attempts = 0
	slot.Registration = b.clock.Micros()
	slot.State = protocol.SlotToBeSent

	return idx, nil
}

// Update drives every due slot in the queue through the frame
// transmitter, retrying with cubic back-off on collision and reporting
// CONNECTION_LOST once a slot exhausts its attempts (spec §4.7, C6).
// Callers run it from the single goroutine that owns this Bus, and
// AcquireID drives it directly to wait out its own probes.
func (b *Bus) Update() {
	now := b.clock.Micros()
	for i := range b.queue {
		slot := &b.queue[i]
		if slot.free() || !slot.due(now) {
			continue
		}

		slot.State = b.sendString(slot.DeviceID, slot.payload(), slot.Header)

		switch slot.State {
		case protocol.Ack:
			b.onDelivered(i)
		case protocol.Busy:
			// Registration and Attempts are untouched, so due() reports
			// true again on the very next call — the same tight
			// retry-on-busy PJON.h's update() gets for free from its
			// own unmodified due-check.
		default: // Nak or Fail
			slot.Attempts++
			if slot.Attempts > protocol.MaxAttempts {
				b.onExhausted(i)
			}
		}
	}
}

// onDelivered runs once a slot's attempt comes back ACK. A one-shot slot
// (no repeat interval) is only freed when AutoDelete is on; otherwise it
// is left exactly as delivered, in its terminal ACK state, per spec
// §4.6's "else leave at ACK". A cyclic slot (SendRepeatedly) always
// rearms for its next run.
func (b *Bus) onDelivered(i int) {
	slot := &b.queue[i]
	if slot.repeatIntervalUs == 0 {
		if b.autoDelete {
			slot.reset()
		}
		return
	}
	slot.Attempts = 0
	slot.Registration = b.clock.Micros()
	slot.State = protocol.SlotToBeSent
}

// onExhausted runs once a slot's attempts pass MAX_ATTEMPTS. An
// ACQUIRE_ID probe going unanswered this long means the candidate id is
// free: it bypasses the ordinary CONNECTION_LOST report and claims the
// id directly, mirroring PJON.h's update() special case. Every other
// slot reports CONNECTION_LOST and then gets the same
// terminal-state-or-rearm treatment as a successful delivery.
func (b *Bus) onExhausted(i int) {
	slot := &b.queue[i]
	if slot.isAcquireIDProbe() {
		b.deviceID = slot.DeviceID
		slot.reset()
		return
	}
	b.reportError(protocol.ErrCodeConnectionLost, byte(slot.DeviceID))
	if slot.repeatIntervalUs == 0 {
		if b.autoDelete {
			slot.reset()
		}
		return
	}
	slot.Attempts = 0
	slot.Registration = b.clock.Micros()
	slot.State = protocol.SlotToBeSent
}

// Remove frees the queue slot at index i immediately, without waiting for
// delivery or retry exhaustion.
func (b *Bus) Remove(i int) {
	if i < 0 || i >= len(b.queue) {
		return
	}
	b.queue[i].reset()
}
