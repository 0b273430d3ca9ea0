package bus

import (
	"testing"

	"github.com/isuruh15/PJON/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchFillsFreeSlot(t *testing.T) {
	b := New(protocol.DeviceID(1), newMockStrategy())
	header := protocol.MakeHeader(false, false, false)

	idx, err := b.Dispatch(protocol.DeviceID(2), []byte("hi"), header)

	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, protocol.SlotToBeSent, b.queue[idx].State)
	assert.Equal(t, []byte("hi"), b.queue[idx].payload())
}

func TestDispatchQueueFullReportsError(t *testing.T) {
	b := New(protocol.DeviceID(1), newMockStrategy())
	header := protocol.MakeHeader(false, false, false)

	var lastCode byte
	b.SetErrorHandler(func(code, data byte) { lastCode = code })

	for i := 0; i < protocol.MaxPackets; i++ {
		_, err := b.Dispatch(protocol.DeviceID(2), []byte("x"), header)
		require.NoError(t, err)
	}

	_, err := b.Dispatch(protocol.DeviceID(2), []byte("x"), header)
	assert.ErrorIs(t, err, ErrQueueFull)
	assert.Equal(t, protocol.ErrCodePacketsBufferFull, lastCode)
}

func TestDispatchContentTooLong(t *testing.T) {
	b := New(protocol.DeviceID(1), newMockStrategy())
	header := protocol.MakeHeader(false, false, false)

	_, err := b.Dispatch(protocol.DeviceID(2), make([]byte, protocol.PacketMaxLength), header)

	assert.ErrorIs(t, err, ErrContentTooLong)
}

func TestUpdateDeliversAndAutoDeletes(t *testing.T) {
	m := newMockStrategy()
	m.responses = []uint16{protocol.Ack}
	b := New(protocol.DeviceID(1), m)
	b.clock = &stepClock{step: 1} // Update reads 1µs past Registration, so the slot is due

	header := protocol.MakeHeader(false, false, true)
	idx, err := b.Dispatch(protocol.DeviceID(2), []byte("hi"), header)
	require.NoError(t, err)

	b.Update()

	assert.True(t, b.queue[idx].free())
}

func TestUpdateReportsConnectionLostAfterMaxAttempts(t *testing.T) {
	m := newMockStrategy()
	b := New(protocol.DeviceID(1), m)
	b.clock = &stepClock{step: 20_000}

	var reported byte
	var code byte
	b.SetErrorHandler(func(c, data byte) { code = c; reported = data })

	header := protocol.MakeHeader(false, false, true)
	idx, err := b.Dispatch(protocol.DeviceID(7), []byte("hi"), header)
	require.NoError(t, err)

	for i := 0; i < 10_000 && !b.queue[idx].free(); i++ {
		b.Update()
	}

	assert.Equal(t, protocol.ErrCodeConnectionLost, code)
	assert.Equal(t, byte(7), reported)
	assert.True(t, b.queue[idx].free())
}

// TestUpdateBacksOffCubicallyFromRegistration pins the documented
// back-off-monotonicity property: a slot is never retried sooner than
// attempts³ microseconds past its fixed Registration time, and
// Registration itself never moves between attempts. A clock that only
// advances exactly as far as the test sets it makes the boundary exact.
func TestUpdateBacksOffCubicallyFromRegistration(t *testing.T) {
	m := newMockStrategy() // every attempt times out (FAIL)
	b := New(protocol.DeviceID(1), m)
	clk := &stepClock{}
	b.clock = clk

	header := protocol.MakeHeader(false, false, true)
	idx, err := b.Dispatch(protocol.DeviceID(2), []byte("hi"), header)
	require.NoError(t, err)
	registration := b.queue[idx].Registration

	clk.now = registration + 1
	b.Update()
	require.Equal(t, 1, b.queue[idx].Attempts)
	sentAfterFirst := len(m.sent)

	// attempts³ is now 1µs past Registration; the clock hasn't moved, so
	// the slot must not be retried yet.
	b.Update()
	assert.Equal(t, sentAfterFirst, len(m.sent), "retried before its back-off window elapsed")
	assert.Equal(t, 1, b.queue[idx].Attempts)

	// Past the 1µs boundary: the slot is due again.
	clk.now = registration + 2
	b.Update()
	assert.Greater(t, len(m.sent), sentAfterFirst)
	assert.Equal(t, 2, b.queue[idx].Attempts)

	assert.Equal(t, registration, b.queue[idx].Registration)
}

// TestUpdateLeavesOneShotAckAtTerminalStateWhenAutoDeleteOff covers spec
// §4.6's "else leave at ACK": a one-shot slot that just succeeded must
// stay in its terminal ACK state when AutoDelete is off, not get rearmed
// for another send.
func TestUpdateLeavesOneShotAckAtTerminalStateWhenAutoDeleteOff(t *testing.T) {
	m := newMockStrategy()
	m.responses = []uint16{protocol.Ack}
	b := New(protocol.DeviceID(1), m)
	b.SetAutoDelete(false)
	b.clock = &stepClock{step: 1} // Update reads 1µs past Registration, so the slot is due

	header := protocol.MakeHeader(false, false, true)
	idx, err := b.Dispatch(protocol.DeviceID(2), []byte("hi"), header)
	require.NoError(t, err)

	b.Update()

	assert.False(t, b.queue[idx].free())
	assert.Equal(t, protocol.Ack, b.queue[idx].State)
	assert.Equal(t, 0, b.queue[idx].Attempts)
}

// TestUpdateLeavesOneShotFailAtTerminalStateWhenAutoDeleteOff covers the
// same terminal-state persistence on the other branch: a one-shot slot
// that just exhausted MAX_ATTEMPTS must stay in its terminal FAIL state,
// not get rearmed, when AutoDelete is off.
func TestUpdateLeavesOneShotFailAtTerminalStateWhenAutoDeleteOff(t *testing.T) {
	m := newMockStrategy()
	b := New(protocol.DeviceID(1), m)
	b.SetAutoDelete(false)
	b.clock = &stepClock{step: 20_000}

	header := protocol.MakeHeader(false, false, true)
	idx, err := b.Dispatch(protocol.DeviceID(7), []byte("hi"), header)
	require.NoError(t, err)

	for i := 0; i < 10_000 && b.queue[idx].Attempts <= protocol.MaxAttempts; i++ {
		b.Update()
	}

	assert.False(t, b.queue[idx].free())
	assert.Equal(t, protocol.Fail, b.queue[idx].State)
	assert.Equal(t, protocol.MaxAttempts+1, b.queue[idx].Attempts)
}

func TestRemoveFreesSlotImmediately(t *testing.T) {
	b := New(protocol.DeviceID(1), newMockStrategy())
	header := protocol.MakeHeader(false, false, false)
	idx, err := b.Dispatch(protocol.DeviceID(2), []byte("hi"), header)
	require.NoError(t, err)

	b.Remove(idx)

	assert.True(t, b.queue[idx].free())
}
