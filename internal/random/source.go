// Package random provides the randomness source the game draws from.
package random

import (
	cryptorand "crypto/rand"
	"math/big"
	"math/rand"
)

// Source yields uniformly distributed integers. It is the only randomness
// capability the game consumes: hazard placement, wumpus movement, crooked
// arrows, and bat transport all draw from it.
type Source interface {
	// Intn returns a uniform random int in [0, n). n must be > 0.
	Intn(n int) int
}

// cryptoSource implements Source using crypto/rand.
type cryptoSource struct{}

// NewCrypto returns a Source backed by crypto/rand, the default for
// interactive play.
func NewCrypto() Source {
	return cryptoSource{}
}

func (cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("random: Intn called with n <= 0")
	}
	v, err := cryptorand.Int(cryptorand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("random: crypto/rand failure: " + err.Error())
	}
	return int(v.Int64())
}

// seededSource implements Source using a seeded math/rand generator.
// Not safe for concurrent use, which matches the single-owner session model.
type seededSource struct {
	rng *rand.Rand
}

// NewSeeded returns a deterministic Source for reproducible hunts and tests.
func NewSeeded(seed int64) Source {
	return &seededSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *seededSource) Intn(n int) int {
	if n <= 0 {
		panic("random: Intn called with n <= 0")
	}
	return s.rng.Intn(n)
}
