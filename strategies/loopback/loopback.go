// Package loopback provides an in-process Strategy that links two Bus
// instances through buffered channels, adapted from the host-side stub
// radio driver pack repos use for tests and demos — no physical medium,
// ordered delivery, useful for exercising the frame codec and queue
// without hardware.
package loopback

import (
	"time"

	"github.com/isuruh15/PJON/protocol"
)

const bufferDepth = 256

// responseTimeout bounds how long ReceiveByte/ReceiveResponse wait before
// reporting protocol.Fail, mirroring a real Strategy's read timeout.
const responseTimeout = 50 * time.Millisecond

// Link is a pair of connected endpoints. NewLink returns the two ends; one
// goes to each Bus's strategy slot.
type Link struct {
	data     chan byte
	response chan uint16
}

// NewLink creates two Strategy endpoints wired to each other: bytes and
// response symbols sent on one arrive on the other.
func NewLink() (a, b *Endpoint) {
	ab := &Link{data: make(chan byte, bufferDepth), response: make(chan uint16, bufferDepth)}
	ba := &Link{data: make(chan byte, bufferDepth), response: make(chan uint16, bufferDepth)}
	a = &Endpoint{tx: ab, rx: ba}
	b = &Endpoint{tx: ba, rx: ab}
	return a, b
}

// Endpoint is one side of a Link and implements strategy.Strategy.
type Endpoint struct {
	tx *Link
	rx *Link
}

// CanStart always reports idle: a loopback Link has no contention.
func (e *Endpoint) CanStart() bool { return true }

// SendByte pushes b onto the peer's inbound byte channel.
func (e *Endpoint) SendByte(b byte) {
	e.tx.data <- b
}

// ReceiveByte blocks up to responseTimeout for a byte pushed by the peer.
func (e *Endpoint) ReceiveByte() uint16 {
	select {
	case b := <-e.rx.data:
		return uint16(b)
	case <-time.After(responseTimeout):
		return protocol.Fail
	}
}

// SendResponse pushes an ACK/NAK symbol onto the peer's response channel.
func (e *Endpoint) SendResponse(symbol uint16) {
	e.tx.response <- symbol
}

// ReceiveResponse blocks up to responseTimeout for a response symbol.
func (e *Endpoint) ReceiveResponse() uint16 {
	select {
	case s := <-e.rx.response:
		return s
	case <-time.After(responseTimeout):
		return protocol.Fail
	}
}
