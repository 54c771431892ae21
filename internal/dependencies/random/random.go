// Package random abstracts the random source used for food placement and
// piece generation.
package random

import "math/rand"

// Random provides random number generation that can be mocked for testing
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int
}

// Seeded implements Random with a deterministic math/rand source, so that a
// fixed seed replays the same game.
type Seeded struct {
	rng *rand.Rand
}

// New creates a Seeded generator.
func New(seed int64) *Seeded {
	return &Seeded{rng: rand.New(rand.NewSource(seed))}
}

// Intn returns a pseudo-random int in [0, n)
func (r *Seeded) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rng.Intn(n)
}
