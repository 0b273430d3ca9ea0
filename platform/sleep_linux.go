//go:build linux

package platform

import (
	"time"

	"golang.org/x/sys/unix"
)

// SleepMicros suspends the calling goroutine for at least d, using
// clock_nanosleep for microsecond-granularity accuracy. time.Sleep's
// runtime-timer wheel is coarser than the collision back-off windows
// spec §4.4 specifies (0..COLLISION_MAX_DELAY-1 microseconds), so the
// Linux build talks to the kernel directly, the same way rigado-ble drops
// to golang.org/x/sys for operations the standard library rounds off.
func SleepMicros(d time.Duration) {
	if d <= 0 {
		return
	}
	ts := unix.NsecToTimespec(d.Nanoseconds())
	for {
		rem := &unix.Timespec{}
		err := unix.ClockNanosleep(unix.CLOCK_MONOTONIC, 0, &ts, rem)
		if err == nil || err != unix.EINTR {
			return
		}
		ts = *rem
	}
}
