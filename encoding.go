package gid

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	base36Symbols = "0123456789abcdefghijklmnopqrstuvwxyz"

	// base64Symbols is digits, lowercase, uppercase, '_' and '-' in that order.
	// It is not the RFC 4648 alphabet and the two are not interchangeable.
	base64Symbols = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ_-"

	hexPrefix = "0x"
)

var (
	base36 = newAlphabet(base36Symbols)
	base64 = newAlphabet(base64Symbols)
)

// alphabet is a positional numeral system over an ordered symbol set
type alphabet struct {
	symbols string
	base    uint64
	index   [256]int8
}

func newAlphabet(symbols string) *alphabet {
	a := &alphabet{symbols: symbols, base: uint64(len(symbols))}
	for i := range a.index {
		a.index[i] = -1
	}
	for i := 0; i < len(symbols); i++ {
		a.index[symbols[i]] = int8(i)
	}
	return a
}

// encode writes v most-significant digit first, without padding
func (a *alphabet) encode(v uint64) string {
	if v == 0 {
		return a.symbols[:1]
	}
	var buf [64]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = a.symbols[v%a.base]
		v /= a.base
	}
	return string(buf[i:])
}

func (a *alphabet) decode(s string) (ID, error) {
	if s == "" {
		return Nil, fmt.Errorf("%w: empty string", ErrInvalidFormat)
	}
	var v uint64
	for i := 0; i < len(s); i++ {
		d := a.index[s[i]]
		if d < 0 {
			return Nil, fmt.Errorf("%w: invalid character %q at position %d", ErrInvalidFormat, s[i], i)
		}
		if v > (uint64(MaxID)-uint64(d))/a.base {
			return Nil, fmt.Errorf("%w: %q exceeds 63 bits", ErrInvalidFormat, s)
		}
		v = v*a.base + uint64(d)
	}
	return ID(v), nil
}

// EncodeBase36 encodes id with the alphabet 0-9a-z. Zero encodes as "0".
func EncodeBase36(id ID) string {
	return base36.encode(uint64(id))
}

// DecodeBase36 decodes a base-36 string. Input is case-insensitive.
func DecodeBase36(s string) (ID, error) {
	return base36.decode(strings.ToLower(s))
}

// EncodeBase64 encodes id with the alphabet 0-9a-zA-Z_- (see base64Symbols).
// The result is case-sensitive and URL-safe.
func EncodeBase64(id ID) string {
	return base64.encode(uint64(id))
}

// DecodeBase64 decodes a string produced by EncodeBase64
func DecodeBase64(s string) (ID, error) {
	return base64.decode(s)
}

// EncodeHex encodes id as "0x" followed by lowercase hexadecimal digits
func EncodeHex(id ID) string {
	return hexPrefix + strconv.FormatUint(uint64(id), 16)
}

// DecodeHex decodes a "0x"-prefixed hexadecimal string. The prefix is required.
func DecodeHex(s string) (ID, error) {
	if !strings.HasPrefix(s, hexPrefix) {
		return Nil, fmt.Errorf("%w: missing %s prefix in %q", ErrInvalidFormat, hexPrefix, s)
	}
	return parseUint(s[len(hexPrefix):], 16)
}

// DecodeDecimal decodes a plain unsigned decimal string
func DecodeDecimal(s string) (ID, error) {
	return parseUint(s, 10)
}

func parseUint(s string, base int) (ID, error) {
	if s == "" {
		return Nil, fmt.Errorf("%w: empty string", ErrInvalidFormat)
	}
	v, err := strconv.ParseUint(s, base, 63)
	if err != nil {
		return Nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return ID(v), nil
}

// Encode renders id in the given format. FormatAuto is not an output format.
func Encode(id ID, f Format) (string, error) {
	switch f {
	case FormatBase36:
		return EncodeBase36(id), nil
	case FormatBase64:
		return EncodeBase64(id), nil
	case FormatHex:
		return EncodeHex(id), nil
	case FormatDecimal:
		return id.String(), nil
	default:
		return "", fmt.Errorf("%w: cannot encode as %s", ErrUnknownFormat, f)
	}
}

// Decode parses s in the given format. FormatAuto delegates to ParseAutoDetect;
// every other format is exact and never guesses.
func Decode(s string, f Format) (ID, error) {
	switch f {
	case FormatBase36:
		return DecodeBase36(s)
	case FormatBase64:
		return DecodeBase64(s)
	case FormatHex:
		return DecodeHex(s)
	case FormatDecimal:
		return DecodeDecimal(s)
	case FormatAuto:
		return ParseAutoDetect(s)
	default:
		return Nil, fmt.Errorf("%w: cannot decode %s", ErrUnknownFormat, f)
	}
}
