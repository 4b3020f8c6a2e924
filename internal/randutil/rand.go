// Package randutil derives reproducible random streams for simulation runs.
package randutil

import rand "math/rand/v2"

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// Stream identifies an independent random stream within a single run.
type Stream uint64

const (
	StreamDealer Stream = iota + 1
	StreamOpponent
	StreamLearner
)

// Source is the randomness the game components draw from. *rand.Rand
// satisfies it; tests substitute scripted sources.
type Source interface {
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
	// IntN returns a value in [0, n).
	IntN(n int) int
}

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Both PCG seeds are derived from the single int64 so every call site gets
// the same sequence for the same seed.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Derive returns the seed for stream s of a run seeded with seed. Distinct
// streams of one run never share a generator, so the dealer's draws do not
// shift when a strategy consumes more or fewer random numbers.
func Derive(seed int64, s Stream) int64 {
	return int64(mix(uint64(seed) + uint64(s)*goldenRatio64))
}

// NewStream is shorthand for New(Derive(seed, s)).
func NewStream(seed int64, s Stream) *rand.Rand {
	return New(Derive(seed, s))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
