package protocol

import "errors"

// ErrFrameTooShort is returned by Parse when data does not even contain a
// full header (recipient id, length, header byte).
var ErrFrameTooShort = errors.New("protocol: frame shorter than header")

// PacketInfo is the parse result for an inbound frame: the addressing
// metadata needed to answer it (ack eligibility, and Reply()). It is
// retained by a bus as last-packet-info, per spec §3.
type PacketInfo struct {
	ReceiverID   DeviceID
	Header       Header
	ReceiverBus  BusID // valid iff Header.Shared()
	SenderBus    BusID // valid iff Header.Shared() && Header.SenderInfo()
	SenderID     DeviceID
	HasSenderBus bool
	HasSenderID  bool
}

// Parse fills in a PacketInfo from a fully received frame: data[0] is the
// recipient id, data[1] the length byte, data[2] the header, followed by
// the addressing bytes the header calls for. Mirrors PJON's
// get_packet_info.
func Parse(data []byte) (PacketInfo, error) {
	if len(data) < 3 {
		return PacketInfo{}, ErrFrameTooShort
	}

	info := PacketInfo{
		ReceiverID: DeviceID(data[0]),
		Header:     Header(data[2]),
	}

	if info.Header.Shared() {
		if len(data) < 7 {
			return PacketInfo{}, ErrFrameTooShort
		}
		copy(info.ReceiverBus[:], data[3:7])
		if info.Header.SenderInfo() {
			if len(data) < 12 {
				return PacketInfo{}, ErrFrameTooShort
			}
			copy(info.SenderBus[:], data[7:11])
			info.SenderID = DeviceID(data[11])
			info.HasSenderBus = true
			info.HasSenderID = true
		}
	} else if info.Header.SenderInfo() {
		if len(data) < 4 {
			return PacketInfo{}, ErrFrameTooShort
		}
		info.SenderID = DeviceID(data[3])
		info.HasSenderID = true
	}

	return info, nil
}

// PayloadOffset returns the index, within a full received frame (counting
// from byte 0, the recipient id), at which the user payload begins.
func PayloadOffset(h Header) int {
	return 3 + h.AddressingBytes()
}

// ComposeAddressing writes the addressing prefix a Header calls for into a
// fresh slice, ready to be followed by the user payload. This is the
// content prefix dispatch() prepends to an outgoing packet (spec §4.6,
// steps 3 and 5) — it does not include the recipient id, length, header,
// or trailing CRC, which are added by the frame transmitter at send time.
func ComposeAddressing(h Header, recipientBus, senderBus BusID, senderID DeviceID) []byte {
	n := h.AddressingBytes()
	if n == 0 {
		return nil
	}
	buf := make([]byte, n)
	switch {
	case h.Shared() && h.SenderInfo():
		copy(buf[0:4], recipientBus[:])
		copy(buf[4:8], senderBus[:])
		buf[8] = byte(senderID)
	case h.Shared():
		copy(buf[0:4], recipientBus[:])
	case h.SenderInfo():
		buf[0] = byte(senderID)
	}
	return buf
}
