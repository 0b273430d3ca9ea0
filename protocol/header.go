package protocol

// Header is the single flag byte transmitted third in every frame. Only
// the low nibble is defined; the high nibble must be zero on the wire.
type Header byte

// MakeHeader composes a header byte from the three defined flags.
func MakeHeader(shared, senderInfo, ackRequest bool) Header {
	var h byte
	if shared {
		h |= ModeBit
	}
	if senderInfo {
		h |= SenderInfoBit
	}
	if ackRequest {
		h |= AckRequestBit
	}
	return Header(h)
}

// Shared reports whether the packet carries bus ids (MODE bit).
func (h Header) Shared() bool { return byte(h)&ModeBit != 0 }

// SenderInfo reports whether the packet carries the sender's id.
func (h Header) SenderInfo() bool { return byte(h)&SenderInfoBit != 0 }

// AckRequested reports whether the sender requested a synchronous ACK.
func (h Header) AckRequested() bool { return byte(h)&AckRequestBit != 0 }

// AddressingBytes returns how many addressing bytes precede the payload
// for this header, per the table in spec §4.2.
func (h Header) AddressingBytes() int {
	switch {
	case h.Shared() && h.SenderInfo():
		return 9
	case h.Shared():
		return 4
	case h.SenderInfo():
		return 1
	default:
		return 0
	}
}

// AddressingPrefix returns the addressing-byte count dispatch() should
// prepend to a payload of the given device configuration, before any
// frame has been composed (used to size a new outgoing packet).
func AddressingPrefix(shared, senderInfo bool) int {
	return MakeHeader(shared, senderInfo, false).AddressingBytes()
}
