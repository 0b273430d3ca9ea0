// Package strategy declares the pluggable symbol-level transport the bus
// core is built against. The core is oblivious to how a Strategy encodes
// bits on the wire — bit-banged GPIO, oversampled reads, or a UART — it
// only relies on ordered, synchronous byte delivery. See spec §4.3/§6.
package strategy

// Strategy is the capability set the bus core consumes. Implementations
// own the physical medium (pin configuration, timing, oversampling) and
// are otherwise opaque to the core.
type Strategy interface {
	// CanStart reports whether the medium is currently idle. Consulted
	// before every transmission attempt unless the device runs simplex.
	CanStart() bool

	// SendByte transmits one byte synchronously.
	SendByte(b byte)

	// ReceiveByte reads one byte. The low byte of the return value is the
	// byte read; protocol.Fail is returned on timeout or framing failure.
	ReceiveByte() uint16

	// SendResponse transmits the ACK or NAK reply symbol.
	SendResponse(symbol uint16)

	// ReceiveResponse waits a strategy-defined short window for an
	// ACK/NAK reply, returning protocol.Ack, protocol.Nak, or
	// protocol.Fail.
	ReceiveResponse() uint16
}
