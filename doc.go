// Package gid provides compact 63-bit integer identifiers and a codec that renders
// them in base-36, a URL-safe 64-symbol alphabet and hexadecimal.
//
// Two generators are available. The time-ordered generator places the epoch
// millisecond in the high 48 bits and a wrapping 16-bit counter in the low 16
// bits, which makes IDs sortable by creation time and well suited to:
//   - Database primary keys (improved B-tree locality)
//   - Event and audit logs
//   - Any scenario where chronological ordering matters
//
// The random generator draws 63 bits from crypto/rand for identifiers that must
// not be guessable.
//
// Basic Usage:
//
//	// Generate a new time-ordered ID
//	id, err := gid.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(gid.EncodeBase36(id))
//
//	// Decode an ID of known format
//	id, err = gid.DecodeBase64("K")
//
//	// Decode an ID of unknown format
//	id, err = gid.ParseAutoDetect("0x2e")
//
//	// All renderings at once
//	view := gid.ConvertAll(id)
//
// Custom Generator:
//
//	gen := gid.NewGeneratorWithClock(gid.ClockFunc(func() time.Time {
//	    return fixed
//	}))
//	id, err := gen.New()
//
// Auto-detection:
//
// ParseAutoDetect classifies its input by character class in a fixed order: hex
// ("0x" prefix), decimal, base-36, base-64. An all-digit string is always decimal,
// and base-64 input is lowercased before decoding, so prefer the explicit
// Decode* functions whenever the format is known.
//
// Thread Safety:
//
// All operations are safe for concurrent use. A Generator's counter is advanced
// atomically; the codec functions are pure.
//
// Limitations:
//
// The 16-bit counter wraps after 65536 IDs; more than that many IDs from one
// Generator within a single millisecond may collide. No machine identifier is
// reserved, so uniqueness holds per process only.
package gid
