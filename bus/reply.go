package bus

import "github.com/isuruh15/PJON/protocol"

// Reply enqueues content addressed back to the sender of the most
// recently received frame, using that frame's addressing mode (spec
// §4.6's reply convenience). It fails if no frame has been received yet.
func (b *Bus) Reply(content []byte) (int, error) {
	if !b.hasReceived {
		return -1, ErrNoLastSender
	}
	info := b.lastPacketInfo

	header := protocol.MakeHeader(info.Header.Shared(), b.includeSenderInfo, b.acknowledge)
	return b.DispatchToBus(info.SenderID, info.SenderBus, content, header)
}
