package bus

import (
	"testing"

	"github.com/isuruh15/PJON/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendStringLocalNoAckRequested(t *testing.T) {
	m := newMockStrategy()
	b := New(protocol.DeviceID(1), m)

	header := protocol.MakeHeader(false, false, false)
	response := b.sendString(protocol.DeviceID(2), []byte("hi"), header)

	assert.Equal(t, protocol.Ack, response)
	require.Len(t, m.sent, 2+4) // recipient, length, header, "hi", crc
	assert.Equal(t, byte(2), m.sent[0])
	assert.Equal(t, byte(6), m.sent[1]) // len(content)+4
}

func TestSendStringWaitsForAck(t *testing.T) {
	m := newMockStrategy()
	m.responses = []uint16{protocol.Ack}
	b := New(protocol.DeviceID(1), m)

	header := protocol.MakeHeader(false, false, true)
	response := b.sendString(protocol.DeviceID(2), []byte("hi"), header)

	assert.Equal(t, protocol.Ack, response)
}

func TestSendStringNakPropagates(t *testing.T) {
	m := newMockStrategy()
	m.responses = []uint16{protocol.Nak}
	b := New(protocol.DeviceID(1), m)

	header := protocol.MakeHeader(false, false, true)
	response := b.sendString(protocol.DeviceID(2), []byte("hi"), header)

	assert.Equal(t, protocol.Nak, response)
}

func TestSendStringBroadcastSkipsAckWait(t *testing.T) {
	m := newMockStrategy()
	b := New(protocol.DeviceID(1), m)

	header := protocol.MakeHeader(false, false, true)
	response := b.sendString(protocol.Broadcast, []byte("hi"), header)

	assert.Equal(t, protocol.Ack, response)
	assert.Empty(t, m.responses)
}

func TestSendStringBusyWhenStrategyNotReady(t *testing.T) {
	m := newMockStrategy()
	m.canStart = false
	b := New(protocol.DeviceID(1), m)

	header := protocol.MakeHeader(false, false, true)
	response := b.sendString(protocol.DeviceID(2), []byte("hi"), header)

	assert.Equal(t, protocol.Busy, response)
	assert.Empty(t, m.sent)
}

func TestSendStringMatchesWorkedExample(t *testing.T) {
	// Scenario 1 of spec §8: device 12 sends "@" to 99, header 0x04
	// (ack-only). Wire bytes before CRC: 63 05 04 40.
	m := newMockStrategy()
	m.responses = []uint16{protocol.Ack}
	b := New(protocol.DeviceID(12), m)

	header := protocol.MakeHeader(false, false, true)
	response := b.sendString(protocol.DeviceID(99), []byte{0x40}, header)

	require.Equal(t, protocol.Ack, response)
	require.Len(t, m.sent, 5)
	assert.Equal(t, []byte{0x63, 0x05, 0x04, 0x40}, m.sent[:4])
	assert.Equal(t, byte(protocol.Crc8(0).Update(0x63).Update(0x05).Update(0x04).Update(0x40)), m.sent[4])
}

func TestSendStringNilContentFails(t *testing.T) {
	m := newMockStrategy()
	b := New(protocol.DeviceID(1), m)

	response := b.sendString(protocol.DeviceID(2), nil, protocol.MakeHeader(false, false, false))

	assert.Equal(t, protocol.Fail, response)
}
