package gid

import (
	"fmt"
	"strings"
)

// ParseAutoDetect recovers an ID from a string of unknown format.
//
// The input is trimmed and classified by the character class of the whole
// string, in this fixed order:
//   - "0x" prefix (case-insensitive): hexadecimal
//   - only digits: decimal, even though the string is also valid base-36
//   - only digits and lowercase letters: base-36
//   - only digits, letters, '_' and '-': base-64, decoded from the lowercased string
//
// Once a class is chosen there is no fallback to a later one. Because the
// base-64 branch lowercases its input, a base-64 encoding that contains
// uppercase letters does not survive a round trip through ParseAutoDetect;
// use DecodeBase64 when the format is known.
func ParseAutoDetect(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Nil, fmt.Errorf("%w: empty string", ErrInvalidFormat)
	}
	lower := strings.ToLower(s)

	switch Detect(s) {
	case FormatHex:
		return DecodeHex(lower)
	case FormatDecimal:
		return DecodeDecimal(s)
	case FormatBase36:
		return DecodeBase36(s)
	case FormatBase64:
		return DecodeBase64(lower)
	default:
		return Nil, fmt.Errorf("%w: %q matches no known format", ErrInvalidFormat, s)
	}
}

// Detect reports the format ParseAutoDetect would choose for s, without decoding it.
// It returns FormatAuto when no class matches.
func Detect(s string) Format {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return FormatAuto
	case strings.HasPrefix(strings.ToLower(s), hexPrefix):
		return FormatHex
	case all(s, isDigit):
		return FormatDecimal
	case all(s, isBase36Char):
		return FormatBase36
	case all(s, isBase64Char):
		return FormatBase64
	default:
		return FormatAuto
	}
}

func all(s string, pred func(byte) bool) bool {
	for i := 0; i < len(s); i++ {
		if !pred(s[i]) {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isBase36Char(c byte) bool {
	return isDigit(c) || ('a' <= c && c <= 'z')
}

func isBase64Char(c byte) bool {
	return isBase36Char(c) || ('A' <= c && c <= 'Z') || c == '_' || c == '-'
}
