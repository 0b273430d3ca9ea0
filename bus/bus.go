// Package bus implements the PJON device: configuration, the frame
// transmitter and receiver, the transmit queue/scheduler, and device
// lifecycle/id acquisition. It is the home of spec components C4-C8.
package bus

import (
	"github.com/isuruh15/PJON/platform"
	"github.com/isuruh15/PJON/protocol"
	"github.com/isuruh15/PJON/strategy"
)

// PinNotAssigned mirrors protocol.NotAssigned for the pin-id configuration
// surface (spec §6); kept distinct because pins and device ids are not
// interchangeable even though they share a sentinel value.
const PinNotAssigned byte = 255

// ReceiveHandler is invoked for every well-formed, addressed frame.
type ReceiveHandler func(payload []byte, info protocol.PacketInfo)

// ErrorHandler is invoked for every queue- or delivery-level error (spec
// §4.8/§7). The default is a no-op, so a Bus runs silently absent wiring.
type ErrorHandler func(code byte, data byte)

func defaultReceiveHandler(payload []byte, info protocol.PacketInfo) {}
func defaultErrorHandler(code byte, data byte)                       {}

// Bus is one device instance on the wire: its identity, mode flags,
// transmit queue, and the collaborators (strategy, clock, entropy) spec §1
// scopes out as external. All mutable state is touched only from the
// single goroutine driving Update/Receive, per spec §5.
type Bus struct {
	deviceID protocol.DeviceID
	busID    protocol.BusID

	shared            bool
	includeSenderInfo bool
	acknowledge       bool
	router            bool
	autoDelete        bool
	mode              byte

	inputPin  byte
	outputPin byte

	receiver     ReceiveHandler
	errorHandler ErrorHandler

	strategy strategy.Strategy
	clock    platform.Clock
	entropy  *platform.Entropy

	queue          [protocol.MaxPackets]QueueSlot
	rxBuf          [protocol.PacketMaxLength]byte
	lastPacketInfo protocol.PacketInfo
	hasReceived    bool
}

// New creates a local (unshared), half-duplex Bus with the given device id
// and Strategy. Acknowledge and auto-delete default on, matching spec §6's
// defaults and PJON.h's set_default().
func New(deviceID protocol.DeviceID, s strategy.Strategy) *Bus {
	return &Bus{
		deviceID:     deviceID,
		busID:        protocol.Localhost,
		acknowledge:  true,
		autoDelete:   true,
		mode:         protocol.HalfDuplex,
		inputPin:     PinNotAssigned,
		outputPin:    PinNotAssigned,
		receiver:     defaultReceiveHandler,
		errorHandler: defaultErrorHandler,
		strategy:     s,
		clock:        platform.NewSystemClock(),
		entropy:      platform.NewEntropy(),
	}
}

// NewOnBus creates a Bus already joined to a shared busID (shared_network
// turns on automatically, per spec §6, unless overridden afterwards).
func NewOnBus(busID protocol.BusID, deviceID protocol.DeviceID, s strategy.Strategy) *Bus {
	b := New(deviceID, s)
	b.SetBusID(busID)
	return b
}

// DeviceID returns this device's local address.
func (b *Bus) DeviceID() protocol.DeviceID { return b.deviceID }

// SetDeviceID sets this device's local address (watch out for collisions —
// see AcquireID for a collision-free way to obtain one).
func (b *Bus) SetDeviceID(id protocol.DeviceID) { b.deviceID = id }

// BusID returns the 4-byte bus id this device belongs to.
func (b *Bus) BusID() protocol.BusID { return b.busID }

// SetBusID sets the bus id. Shared-network mode turns on automatically
// when the new id is not Localhost, matching the default in spec §6;
// call SetSharedNetwork afterwards to override.
func (b *Bus) SetBusID(id protocol.BusID) {
	b.busID = id
	if !id.IsLocal() {
		b.shared = true
	}
}

// SetSharedNetwork enables or disables including bus ids in frames.
func (b *Bus) SetSharedNetwork(on bool) { b.shared = on }

// SharedNetwork reports whether this device is in shared-network mode.
func (b *Bus) SharedNetwork() bool { return b.shared }

// SetIncludeSenderInfo enables or disables carrying the sender's id (and
// bus id, when shared) in outgoing frames.
func (b *Bus) SetIncludeSenderInfo(on bool) { b.includeSenderInfo = on }

// SetAcknowledge enables or disables requesting a synchronous ACK on every
// non-broadcast send.
func (b *Bus) SetAcknowledge(on bool) { b.acknowledge = on }

// SetAutoDelete enables or disables automatically freeing successfully
// delivered one-shot slots.
func (b *Bus) SetAutoDelete(on bool) { b.autoDelete = on }

// SetRouter enables or disables router mode, which disables every
// addressing filter on receive.
func (b *Bus) SetRouter(on bool) { b.router = on }

// SetCommunicationMode sets protocol.HalfDuplex or protocol.Simplex.
func (b *Bus) SetCommunicationMode(mode byte) { b.mode = mode }

// SetPin configures a single pin used for both input and output.
func (b *Bus) SetPin(pin byte) {
	b.inputPin = pin
	b.outputPin = pin
}

// SetPins configures distinct input/output pins. Simplex is forced when
// either is PinNotAssigned, per spec §6.
func (b *Bus) SetPins(input, output byte) {
	b.inputPin = input
	b.outputPin = output
	if input == PinNotAssigned || output == PinNotAssigned {
		b.mode = protocol.Simplex
	}
}

// SetReceiver installs the handler invoked for every addressed, CRC-valid
// frame.
func (b *Bus) SetReceiver(r ReceiveHandler) {
	if r == nil {
		r = defaultReceiveHandler
	}
	b.receiver = r
}

// SetErrorHandler installs the handler invoked for queue- and
// delivery-level errors.
func (b *Bus) SetErrorHandler(e ErrorHandler) {
	if e == nil {
		e = defaultErrorHandler
	}
	b.errorHandler = e
}

// LastPacketInfo returns the metadata of the most recently received
// frame, used by Reply.
func (b *Bus) LastPacketInfo() protocol.PacketInfo { return b.lastPacketInfo }

func (b *Bus) reportError(code byte, data byte) { b.errorHandler(code, data) }
