package bus

import "github.com/pkg/errors"

// ErrQueueFull is returned by Dispatch when every queue slot is occupied
// (spec §4.8's PACKETS_BUFFER_FULL, reported through the error callback
// as well).
var ErrQueueFull = errors.New("bus: transmit queue full")

// ErrContentTooLong is returned by Dispatch when the payload plus its
// addressing prefix would not fit in PacketMaxLength.
var ErrContentTooLong = errors.New("bus: content too long for one frame")

// ErrIDAcquisitionFailed is returned by AcquireID when no candidate id
// from 1 to 254 could be claimed before the MaxIDScanTimeUs scan deadline
// passed or the candidates ran out.
var ErrIDAcquisitionFailed = errors.New("bus: id acquisition failed")

// ErrNoLastSender is returned by Reply when no frame has been received yet.
var ErrNoLastSender = errors.New("bus: no frame received yet to reply to")

// MEMORY_FULL (spec §4.8's error code 103) has no Go analogue: QueueSlot's
// Content is a fixed array, never a heap allocation that can fail, so
// there is nothing for this module to report under that code.
