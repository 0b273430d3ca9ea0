package bus

import "github.com/isuruh15/PJON/protocol"

// Send enqueues content for destination on this device's own configured
// bus, building the header from the current acknowledge/shared/
// sender-info settings (spec §4.6's bus-id-implicit send()).
func (b *Bus) Send(destination protocol.DeviceID, content []byte) (int, error) {
	return b.Dispatch(destination, content, b.defaultHeader(destination))
}

// SendTo enqueues content for destination on a named remote bus,
// overriding this device's own bus id for this one send (spec §4.6's
// bus-id-explicit send()).
func (b *Bus) SendTo(destination protocol.DeviceID, targetBus protocol.BusID, content []byte) (int, error) {
	header := protocol.MakeHeader(true, b.includeSenderInfo, b.acknowledge && destination != protocol.Broadcast)
	return b.DispatchToBus(destination, targetBus, content, header)
}

// SendRepeatedly enqueues content once, on this device's own bus, and
// rearms the slot on every successful delivery so Update keeps resending
// it on the given microsecond interval until Remove is called (spec
// §4.6's bus-id-implicit send_repeatedly()).
func (b *Bus) SendRepeatedly(destination protocol.DeviceID, content []byte, intervalUs uint32) (int, error) {
	return b.armRepeating(intervalUs, func() (int, error) {
		return b.Send(destination, content)
	})
}

// SendRepeatedlyTo is SendRepeatedly's bus-id-explicit form (spec §4.6's
// send_repeatedly(..., bus_id)).
func (b *Bus) SendRepeatedlyTo(destination protocol.DeviceID, targetBus protocol.BusID, content []byte, intervalUs uint32) (int, error) {
	return b.armRepeating(intervalUs, func() (int, error) {
		return b.SendTo(destination, targetBus, content)
	})
}

func (b *Bus) armRepeating(intervalUs uint32, dispatch func() (int, error)) (int, error) {
	prevAutoDelete := b.autoDelete
	b.autoDelete = false
	idx, err := dispatch()
	b.autoDelete = prevAutoDelete
	if err != nil {
		return idx, err
	}
	b.queue[idx].repeatIntervalUs = intervalUs
	return idx, nil
}

func (b *Bus) defaultHeader(destination protocol.DeviceID) protocol.Header {
	ackRequest := b.acknowledge && destination != protocol.Broadcast
	return protocol.MakeHeader(b.shared, b.includeSenderInfo, ackRequest)
}
