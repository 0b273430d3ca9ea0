package bus

import (
	"time"

	"github.com/isuruh15/PJON/protocol"
)

// Receive is the frame receiver (spec §4.5, C5): it reads one frame from
// the Strategy, applies the address/bus/mode filters byte-by-byte, and on
// a CRC-valid addressed frame invokes the receive handler and, if
// requested, answers with an ACK.
func (b *Bus) Receive() uint16 {
	packetLength := protocol.PacketMaxLength
	var crc protocol.Crc8
	var shared, ackRequested bool

	for i := 0; i < packetLength; i++ {
		v := b.strategy.ReceiveByte()
		if v == protocol.Fail {
			return protocol.Fail
		}
		bt := byte(v)
		b.rxBuf[i] = bt

		switch i {
		case 0:
			if bt != byte(b.deviceID) && bt != byte(protocol.Broadcast) && !b.router {
				return protocol.Busy
			}
		case 1:
			if bt > 4 && int(bt) < protocol.PacketMaxLength {
				packetLength = int(bt)
			} else {
				return protocol.Fail
			}
		case 2:
			h := protocol.Header(bt)
			shared = h.Shared()
			ackRequested = h.AckRequested()
			if shared != b.shared && !b.router {
				return protocol.Busy
			}
		}

		// Bus-id collision check: only meaningful once both device and
		// frame are shared, and only once the header byte has told us so.
		if b.shared && shared && !b.router && i > 2 && i < 7 {
			if b.busID[i-3] != bt {
				return protocol.Busy
			}
		}

		crc = crc.Update(bt)
	}

	header := protocol.Header(b.rxBuf[2])
	recipient := protocol.DeviceID(b.rxBuf[0])
	eligible := b.ackEligible(ackRequested, recipient, shared)

	if byte(crc) == 0 {
		if info, err := protocol.Parse(b.rxBuf[:packetLength]); err == nil {
			b.lastPacketInfo = info
			b.hasReceived = true
		}
		if eligible {
			b.strategy.SendResponse(protocol.Ack)
		}

		offset := protocol.PayloadOffset(header)
		payloadLen := packetLength - offset - 1 // canonical per data[1], not data[3] — spec §9 note 3
		if payloadLen < 0 {
			payloadLen = 0
		}
		b.receiver(b.rxBuf[offset:offset+payloadLen], b.lastPacketInfo)
		return protocol.Ack
	}

	if eligible {
		b.strategy.SendResponse(protocol.Nak)
	}
	return protocol.Nak
}

// ackEligible implements spec §4.5's ack-eligibility predicate: ack
// requested, recipient isn't broadcast, mode isn't simplex, and either we
// aren't shared or the frame's recipient bus id matches ours. The bus-id
// comparison reads straight from the scratch buffer instead of a parsed
// PacketInfo, since on a corrupted frame last_packet_info may be stale.
func (b *Bus) ackEligible(ackRequested bool, recipient protocol.DeviceID, shared bool) bool {
	if !ackRequested || recipient == protocol.Broadcast || b.mode == protocol.Simplex {
		return false
	}
	if !b.shared {
		return true
	}
	if !shared {
		return false
	}
	for i := 0; i < 4; i++ {
		if b.busID[i] != b.rxBuf[3+i] {
			return false
		}
	}
	return true
}

// ReceiveTimed calls Receive repeatedly until it returns protocol.Ack or
// the given budget elapses, per spec §4.5's timed variant.
func (b *Bus) ReceiveTimed(duration time.Duration) uint16 {
	deadline := b.clock.Micros() + uint32(duration.Microseconds())
	var response uint16
	for b.clock.Micros() <= deadline {
		response = b.Receive()
		if response == protocol.Ack {
			return protocol.Ack
		}
	}
	return response
}
