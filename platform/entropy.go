package platform

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
)

// Entropy is a bounded random source used for startup jitter (spec §4.7)
// and post-collision back-off (spec §4.4). It seeds from crypto/rand where
// available, falling back to a time-derived seed, the same two-tier
// approach the teacher's protocol.GeneratePairingKey uses.
type Entropy struct {
	r *rand.Rand
}

// NewEntropy returns a seeded Entropy source.
func NewEntropy() *Entropy {
	var seed int64
	var b [8]byte
	if _, err := crand.Read(b[:]); err == nil {
		seed = int64(binary.LittleEndian.Uint64(b[:]))
	} else {
		seed = int64(NewSystemClock().Micros())
	}
	return &Entropy{r: rand.New(rand.NewSource(seed))}
}

// Intn returns a pseudo-random number in [0, n). Unlike math/rand.Intn it
// does not panic when n <= 0: it returns 0 (e.g. a device configured with
// CollisionMaxDelay of 0 gets no delay).
func (e *Entropy) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return e.r.Intn(n)
}
