//go:build !linux

package platform

import "time"

// SleepMicros suspends the calling goroutine for at least d. Non-Linux
// hosts fall back to the standard scheduler's timer, which is millisecond
// grade but portable.
func SleepMicros(d time.Duration) {
	if d <= 0 {
		return
	}
	time.Sleep(d)
}
