package gid

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func fixedClock(ms int64) Clock {
	t := time.UnixMilli(ms)
	return ClockFunc(func() time.Time { return t })
}

func TestNew(t *testing.T) {
	id, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if id.IsNil() {
		t.Error("New() returned nil ID")
	}

	if !id.IsValid() {
		t.Errorf("New() = %d has sign bit set", id)
	}
}

func TestGenerator_Decomposition(t *testing.T) {
	const now = int64(1700000000123)
	gen := NewGeneratorWithClock(fixedClock(now))

	for i := 1; i <= 3; i++ {
		id, err := gen.New()
		if err != nil {
			t.Fatalf("Generator.New() error = %v", err)
		}
		if got := ExtractTimestamp(id); got != uint64(now) {
			t.Errorf("ExtractTimestamp() = %d, want %d", got, now)
		}
		if got := ExtractOffset(id); got != uint16(i) {
			t.Errorf("ExtractOffset() = %d, want %d", got, i)
		}
		if id.Time().UnixMilli() != now {
			t.Errorf("ID.Time() = %v, want %v", id.Time().UnixMilli(), now)
		}
	}
}

func TestGenerator_NewWithTime(t *testing.T) {
	gen := NewGenerator()
	now := time.Now()

	id, err := gen.NewWithTime(now)
	if err != nil {
		t.Fatalf("Generator.NewWithTime() error = %v", err)
	}

	if id.Timestamp() != uint64(now.UnixMilli()) {
		t.Errorf("ID.Timestamp() = %v, want %v", id.Timestamp(), now.UnixMilli())
	}
}

func TestGenerator_Overflow(t *testing.T) {
	tests := []struct {
		name    string
		ms      int64
		wantErr bool
	}{
		{"epoch", 0, false},
		{"max timestamp", int64(MaxTimestamp), false},
		{"beyond 48 bits", int64(MaxTimestamp) + 1, true},
		{"before epoch", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := NewGeneratorWithClock(fixedClock(tt.ms))
			id, err := gen.New()
			if tt.wantErr {
				if !errors.Is(err, ErrOverflow) {
					t.Errorf("Generator.New() error = %v, want %v", err, ErrOverflow)
				}
				return
			}
			if err != nil {
				t.Fatalf("Generator.New() error = %v", err)
			}
			if !id.IsValid() {
				t.Errorf("Generator.New() = %d has sign bit set", id)
			}
		})
	}
}

func TestGenerator_OffsetWraps(t *testing.T) {
	gen := NewGeneratorWithClock(fixedClock(1))
	gen.counter.Store(0xFFFE)

	first, _ := gen.New()
	second, _ := gen.New()

	if first.Offset() != 0xFFFF {
		t.Errorf("offset before wrap = %d, want %d", first.Offset(), 0xFFFF)
	}
	if second.Offset() != 0 {
		t.Errorf("offset after wrap = %d, want 0", second.Offset())
	}
	if second.Timestamp() != first.Timestamp() {
		t.Errorf("wrap changed timestamp: %d != %d", second.Timestamp(), first.Timestamp())
	}
}

func TestGenerator_Ordering(t *testing.T) {
	gen := NewGenerator()
	base := time.UnixMilli(1700000000000)

	var prev ID
	for i := 0; i < 100; i++ {
		id, err := gen.NewWithTime(base.Add(time.Duration(i) * time.Millisecond))
		if err != nil {
			t.Fatalf("Generator.NewWithTime() error = %v", err)
		}
		if i > 0 && id.Compare(prev) <= 0 {
			t.Errorf("IDs not increasing at index %d: %d <= %d", i, id, prev)
		}
		prev = id
	}
}

func TestGenerator_ConcurrentSafety(t *testing.T) {
	gen := NewGeneratorWithClock(fixedClock(1700000000000))
	const goroutines = 64
	const idsPerGoroutine = 1024 // 65536 in total, one full counter cycle

	results := make(chan ID, goroutines*idsPerGoroutine)
	var wg sync.WaitGroup

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < idsPerGoroutine; j++ {
				id, err := gen.New()
				if err != nil {
					t.Errorf("Concurrent generation error: %v", err)
					return
				}
				results <- id
			}
		}()
	}

	wg.Wait()
	close(results)

	seen := make(map[ID]bool, goroutines*idsPerGoroutine)
	for id := range results {
		if seen[id] {
			t.Errorf("Duplicate ID generated in concurrent test: %d", id)
		}
		seen[id] = true
	}

	if len(seen) != goroutines*idsPerGoroutine {
		t.Errorf("Expected %d unique IDs, got %d", goroutines*idsPerGoroutine, len(seen))
	}
}

func TestSortability(t *testing.T) {
	ids := make([]ID, 10)
	for i := range ids {
		id, err := New()
		if err != nil {
			t.Fatalf("Generation error: %v", err)
		}
		ids[i] = id
		time.Sleep(time.Millisecond) // Small delay to ensure different timestamps
	}

	for i := 1; i < len(ids); i++ {
		if ids[i].Compare(ids[i-1]) <= 0 {
			t.Errorf("IDs not in ascending order at index %d", i)
		}
	}
}
