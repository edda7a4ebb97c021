package gid

import (
	"bytes"
	"errors"
	"testing"
)

func TestNewRandom(t *testing.T) {
	seen := make(map[ID]bool)
	for i := 0; i < 1000; i++ {
		id, err := NewRandom()
		if err != nil {
			t.Fatalf("NewRandom() error = %v", err)
		}
		if !id.IsValid() {
			t.Errorf("NewRandom() = %d has sign bit set", id)
		}
		if seen[id] {
			t.Errorf("NewRandom() returned duplicate %d", id)
		}
		seen[id] = true
	}
}

func TestRandomGenerator_ClearsSignBit(t *testing.T) {
	gen := NewRandomGeneratorWithReader(bytes.NewReader(bytes.Repeat([]byte{0xFF}, 8)))
	id, err := gen.New()
	if err != nil {
		t.Fatalf("RandomGenerator.New() error = %v", err)
	}
	if id != MaxID {
		t.Errorf("RandomGenerator.New() = %d, want %d", id, MaxID)
	}
}

func TestRandomGenerator_BigEndian(t *testing.T) {
	gen := NewRandomGeneratorWithReader(bytes.NewReader([]byte{0, 0, 0, 0, 0, 0, 0x01, 0x02}))
	id, err := gen.New()
	if err != nil {
		t.Fatalf("RandomGenerator.New() error = %v", err)
	}
	if id != 0x0102 {
		t.Errorf("RandomGenerator.New() = %#x, want 0x102", uint64(id))
	}
}

// brokenReader is a reader that always returns an error
type brokenReader struct{}

func (br *brokenReader) Read(p []byte) (n int, err error) {
	return 0, bytes.ErrTooLarge
}

func TestRandomGenerator_BrokenSource(t *testing.T) {
	gen := NewRandomGeneratorWithReader(&brokenReader{})
	if _, err := gen.New(); !errors.Is(err, ErrEntropy) {
		t.Errorf("RandomGenerator.New() error = %v, want %v", err, ErrEntropy)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("Must() did not panic on error")
		}
	}()
	Must(gen.New())
}
