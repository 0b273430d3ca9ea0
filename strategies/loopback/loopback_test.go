package loopback_test

import (
	"testing"
	"time"

	"github.com/isuruh15/PJON/bus"
	"github.com/isuruh15/PJON/protocol"
	"github.com/isuruh15/PJON/strategies/loopback"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopbackDeliversLocalFrame(t *testing.T) {
	senderLink, receiverLink := loopback.NewLink()

	sender := bus.New(protocol.DeviceID(44), senderLink)
	receiver := bus.New(protocol.DeviceID(45), receiverLink)

	received := make(chan string, 1)
	receiver.SetReceiver(func(payload []byte, info protocol.PacketInfo) {
		received <- string(payload)
	})

	go func() {
		deadline := time.Now().Add(200 * time.Millisecond)
		for time.Now().Before(deadline) {
			receiver.Receive()
		}
	}()

	_, err := sender.Send(protocol.DeviceID(45), []byte("hello"))
	require.NoError(t, err)
	time.Sleep(time.Millisecond) // a slot is due only once its clock has moved past Registration
	sender.Update()

	select {
	case payload := <-received:
		assert.Equal(t, "hello", payload)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for delivery")
	}
}

func TestLoopbackBroadcastGetsNoAck(t *testing.T) {
	senderLink, receiverLink := loopback.NewLink()

	sender := bus.New(protocol.DeviceID(10), senderLink)
	receiver := bus.New(protocol.DeviceID(11), receiverLink)
	receiver.SetAcknowledge(false)

	received := make(chan struct{}, 1)
	receiver.SetReceiver(func(payload []byte, info protocol.PacketInfo) {
		received <- struct{}{}
	})

	go func() {
		deadline := time.Now().Add(200 * time.Millisecond)
		for time.Now().Before(deadline) {
			receiver.Receive()
		}
	}()

	_, err := sender.Send(protocol.Broadcast, []byte("ping"))
	require.NoError(t, err)
	time.Sleep(time.Millisecond) // a slot is due only once its clock has moved past Registration
	sender.Update()

	select {
	case <-received:
		// The receiver answers before invoking its handler, so any ACK
		// would already be waiting on the sender's response channel.
		assert.Equal(t, protocol.Fail, senderLink.ReceiveResponse())
	case <-time.After(500 * time.Millisecond):
		t.Fatal("broadcast was never delivered")
	}
}
