// Package entropy provides the randomness source for session-level
// draws (the one-time weather roll). Defaults to crypto/rand; a seeded
// source can be substituted for reproducible sessions.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	mathrand "math/rand"
)

// Source yields uniform draws for session setup.
type Source interface {
	// Intn returns a uniform int in [0, n).
	Intn(n int) int
}

// CryptoSource draws from crypto/rand. The zero value is ready to use.
type CryptoSource struct{}

func (CryptoSource) Intn(n int) int {
	return int(cryptoFloat() * float64(n))
}

// cryptoFloat returns a uniform float64 in [0, 1) from crypto/rand.
func cryptoFloat() float64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Should never happen; 0.5 keeps the draw in range.
		return 0.5
	}
	// Use only 53 bits for a uniform float64 in [0, 1).
	n := binary.LittleEndian.Uint64(buf[:]) >> 11
	return float64(n) / float64(1<<53)
}

// SeededSource draws from a fixed-seed PRNG so a session can be
// replayed exactly.
type SeededSource struct {
	rng *mathrand.Rand
}

// NewSeeded creates a deterministic source from a seed.
func NewSeeded(seed int64) *SeededSource {
	return &SeededSource{rng: mathrand.New(mathrand.NewSource(seed))}
}

func (s *SeededSource) Intn(n int) int { return s.rng.Intn(n) }
