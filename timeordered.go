package gid

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Clock supplies the current wall-clock time to a Generator
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts an ordinary function to the Clock interface
type ClockFunc func() time.Time

// Now calls f()
func (f ClockFunc) Now() time.Time {
	return f()
}

// Generator produces time-ordered IDs: the epoch millisecond in the high 48 bits
// and a wrapping 16-bit sequence offset in the low 16 bits.
//
// The offset counter is shared by every caller of the same Generator and is
// advanced with an atomic add, so concurrent callers never receive the same
// offset until 65536 IDs have been drawn. IDs from strictly increasing
// milliseconds are strictly increasing; within a single millisecond they stay
// unique only until the counter wraps.
type Generator struct {
	clock   Clock
	counter atomic.Uint32
}

// NewGenerator creates a time-ordered generator reading the system clock
func NewGenerator() *Generator {
	return &Generator{clock: ClockFunc(time.Now)}
}

// NewGeneratorWithClock creates a time-ordered generator with a custom clock.
// This is primarily useful for testing with a fixed or out-of-range time.
func NewGeneratorWithClock(c Clock) *Generator {
	return &Generator{clock: c}
}

// New generates a time-ordered ID for the current time.
// It fails with ErrOverflow if the clock is outside the 48-bit millisecond range.
func (g *Generator) New() (ID, error) {
	return g.NewWithTime(g.clock.Now())
}

// NewWithTime generates a time-ordered ID for t
func (g *Generator) NewWithTime(t time.Time) (ID, error) {
	ms := t.UnixMilli()
	if ms < 0 || uint64(ms) > MaxTimestamp {
		return Nil, fmt.Errorf("%w: %d ms", ErrOverflow, ms)
	}

	offset := uint64(g.counter.Add(1) & offsetMask)
	// Timestamps from 2^47 ms onward (year ~6429) would reach bit 63; the mask
	// keeps the ID non-negative at the cost of the top timestamp bit.
	return ID((uint64(ms)<<OffsetBits | offset) & signMask), nil
}

// defaultGenerator is the package-level generator used by New
var defaultGenerator = NewGenerator()

// New generates a time-ordered ID using the default generator.
// This is a convenience function that uses the package-level generator.
func New() (ID, error) {
	return defaultGenerator.New()
}
