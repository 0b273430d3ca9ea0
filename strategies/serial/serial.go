// Package serial implements a Strategy over a real serial port, using
// jacobsa/go-serial for the port itself and a time.After deadline for the
// host-side response wait. This is the Go-native analog of the original
// PJON library's real-hardware ThroughSerial strategy.
package serial

import (
	"io"
	"time"

	"github.com/isuruh15/PJON/protocol"
	"github.com/jacobsa/go-serial/serial"
	"github.com/pkg/errors"
)

// Options configures the underlying port. BaudRate follows spec §6's
// default of 9600, matching the reference implementation's SoftwareSerial
// Strategy.
type Options struct {
	PortName        string
	BaudRate        uint
	ResponseTimeout time.Duration
}

// DefaultOptions returns the spec §6 defaults for everything but PortName.
func DefaultOptions(portName string) Options {
	return Options{
		PortName:        portName,
		BaudRate:        9600,
		ResponseTimeout: 10 * time.Millisecond,
	}
}

// Port is a Strategy backed by an open serial port. It owns the port's
// lifetime; call Close when the Bus using it shuts down.
type Port struct {
	conn    io.ReadWriteCloser
	timeout time.Duration
	rx      chan byte
	done    chan struct{}
}

// Open opens the named serial port with the given options and starts the
// background reader goroutine that feeds ReceiveByte/ReceiveResponse.
func Open(opts Options) (*Port, error) {
	conn, err := serial.Open(serial.OpenOptions{
		PortName:        opts.PortName,
		BaudRate:        opts.BaudRate,
		DataBits:        8,
		StopBits:        1,
		MinimumReadSize: 1,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "serial: open %s", opts.PortName)
	}

	timeout := opts.ResponseTimeout
	if timeout <= 0 {
		timeout = 10 * time.Millisecond
	}

	p := &Port{
		conn:    conn,
		timeout: timeout,
		rx:      make(chan byte, 256),
		done:    make(chan struct{}),
	}
	go p.readLoop()
	return p, nil
}

func (p *Port) readLoop() {
	buf := make([]byte, 1)
	for {
		select {
		case <-p.done:
			return
		default:
		}
		n, err := p.conn.Read(buf)
		if err != nil {
			continue
		}
		if n == 1 {
			select {
			case p.rx <- buf[0]:
			case <-p.done:
				return
			}
		}
	}
}

// Close stops the reader goroutine and closes the underlying port.
func (p *Port) Close() error {
	close(p.done)
	return p.conn.Close()
}

// CanStart reports the medium idle; a half-duplex UART has no separate
// carrier-sense signal, so this always reports true, matching the
// reference SoftwareSerial strategy's can_start().
func (p *Port) CanStart() bool { return true }

// SendByte writes one byte to the port, ignoring write errors the way the
// reference Strategy does (the CRC on the next frame will catch loss).
func (p *Port) SendByte(b byte) {
	_, _ = p.conn.Write([]byte{b})
}

// ReceiveByte waits up to the configured timeout for the next byte read
// by the background reader.
func (p *Port) ReceiveByte() uint16 {
	select {
	case b := <-p.rx:
		return uint16(b)
	case <-time.After(p.timeout):
		return protocol.Fail
	}
}

// SendResponse writes the ACK/NAK symbol as a single byte.
func (p *Port) SendResponse(symbol uint16) {
	p.SendByte(byte(symbol))
}

// ReceiveResponse waits up to the configured timeout for a response byte
// and maps it back onto protocol.Ack/Nak.
func (p *Port) ReceiveResponse() uint16 {
	v := p.ReceiveByte()
	if v == uint16(byte(protocol.Ack)) {
		return protocol.Ack
	}
	if v == uint16(byte(protocol.Nak)) {
		return protocol.Nak
	}
	return protocol.Fail
}
