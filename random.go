package gid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
)

// RandomGenerator produces uniformly distributed 63-bit IDs from a secure
// random source. It holds no mutable state and may be shared freely.
type RandomGenerator struct {
	randReader io.Reader
}

// NewRandomGenerator creates a random generator with crypto/rand as the random source
func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{randReader: rand.Reader}
}

// NewRandomGeneratorWithReader creates a random generator with a custom random source.
// This is primarily useful for testing with deterministic random sources.
func NewRandomGeneratorWithReader(r io.Reader) *RandomGenerator {
	return &RandomGenerator{randReader: r}
}

// New draws 8 bytes, reads them big-endian and clears bit 63.
// A failing source is reported as ErrEntropy and not retried.
func (g *RandomGenerator) New() (ID, error) {
	var b [8]byte
	if _, err := io.ReadFull(g.randReader, b[:]); err != nil {
		return Nil, fmt.Errorf("%w: %v", ErrEntropy, err)
	}
	return ID(binary.BigEndian.Uint64(b[:]) & signMask), nil
}

var defaultRandomGenerator = NewRandomGenerator()

// NewRandom generates a random ID using the package-level random generator
func NewRandom() (ID, error) {
	return defaultRandomGenerator.New()
}
