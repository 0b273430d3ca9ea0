package bus

import (
	"time"

	"github.com/isuruh15/PJON/platform"
	"github.com/isuruh15/PJON/protocol"
)

// sendString is the frame transmitter (spec §4.4, C4): it writes one
// complete frame to the Strategy and interprets the optional ACK/NAK
// response. It never allocates and never touches the queue — Update is
// the only caller.
func (b *Bus) sendString(destination protocol.DeviceID, content []byte, header protocol.Header) uint16 {
	if content == nil {
		return protocol.Fail
	}
	if b.mode != protocol.Simplex && !b.strategy.CanStart() {
		return protocol.Busy
	}

	var crc protocol.Crc8
	send := func(v byte) {
		b.strategy.SendByte(v)
		crc = crc.Update(v)
	}

	send(byte(destination))
	send(byte(len(content) + 4))
	send(byte(header))
	for _, c := range content {
		send(c)
	}
	b.strategy.SendByte(byte(crc))

	if !header.AckRequested() || destination == protocol.Broadcast || b.mode == protocol.Simplex {
		return protocol.Ack
	}

	response := b.strategy.ReceiveResponse()
	if response == protocol.Ack {
		return protocol.Ack
	}

	// De-synchronize colliding senders: a uniform random delay follows
	// any non-ACK outcome, including FAIL, per spec §4.4 step 9.
	platform.SleepMicros(time.Duration(b.entropy.Intn(protocol.CollisionMaxDelay)) * time.Microsecond)

	if response == protocol.Nak {
		return protocol.Nak
	}
	return protocol.Fail
}
