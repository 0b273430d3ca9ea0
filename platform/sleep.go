package platform

import "time"

// SleepMillis is a convenience wrapper around SleepMicros for the
// millisecond-scale delays spec §4.7 asks for at startup.
func SleepMillis(ms int) {
	SleepMicros(time.Duration(ms) * time.Millisecond)
}
