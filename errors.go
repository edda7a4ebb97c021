package gid

import "errors"

var (
	// ErrInvalidFormat indicates that an encoded identifier is empty, contains characters
	// outside the alphabet of its format, or decodes to a value above MaxID
	ErrInvalidFormat = errors.New("gid: invalid identifier format")

	// ErrOverflow indicates that the clock value does not fit the 48-bit timestamp field
	ErrOverflow = errors.New("gid: timestamp overflows 48 bits")

	// ErrEntropy indicates that the secure random source could not supply bytes
	ErrEntropy = errors.New("gid: entropy source unavailable")

	// ErrUnknownFormat indicates that a Format value or name is not recognized
	ErrUnknownFormat = errors.New("gid: unknown format")

	// ErrInvalidLength indicates that a binary identifier is not 8 bytes long
	ErrInvalidLength = errors.New("gid: invalid identifier length (expected 8 bytes)")
)
