// Package protocol implements the on-wire frame format of the bus: CRC-8,
// the addressed packet codec, and the header bit layout. It has no notion
// of a transport, a queue, or a device — those live in package bus.
package protocol

// Frame symbols exchanged between devices and returned by a Strategy.
// ACK and NAK travel on the wire via SendResponse/ReceiveResponse; Busy and
// Fail are internal-only and never appear on the wire.
const (
	Ack       uint16 = 6
	Nak       uint16 = 21
	Busy      uint16 = 666
	Fail      uint16 = 0x100
	AcquireID byte   = 63
)

// Reserved device addresses.
const (
	Broadcast   DeviceID = 0
	NotAssigned DeviceID = 255
)

// Header bit positions (low nibble; the high nibble is reserved and MUST
// be transmitted as zero).
const (
	ModeBit       byte = 1 << 0
	SenderInfoBit byte = 1 << 1
	AckRequestBit byte = 1 << 2
)

// Communication modes.
const (
	HalfDuplex byte = 151
	Simplex    byte = 150
)

// Error codes surfaced through a device's error callback. ErrCodeMemoryFull
// is defined for completeness but never reported: queue slots hold
// fixed-size arrays, so there is no allocation that can fail.
const (
	ErrCodeConnectionLost    byte = 101
	ErrCodePacketsBufferFull byte = 102
	ErrCodeMemoryFull        byte = 103
	ErrCodeContentTooLong    byte = 104
	ErrCodeIDAcquisitionFail byte = 105
)

// Sizing and timing defaults, pulled verbatim from the reference
// implementation (_examples/original_source/PJON.h).
const (
	MaxPackets        = 10
	PacketMaxLength   = 50
	MaxAttempts       = 125
	InitialMaxDelayMs = 1000
	CollisionMaxDelay = 16    // microseconds, exclusive upper bound
	MaxIDScanTimeUs   = 5_000_000
)

// Queue slot states. FREE means the slot is unused; the remaining values
// mirror what a Strategy/frame transmitter can return for an attempt.
const (
	SlotFree       uint16 = 0
	SlotToBeSent   uint16 = 74
	SlotAck               = Ack
	SlotNak               = Nak
	SlotFail              = Fail
	SlotBusy              = Busy
)
