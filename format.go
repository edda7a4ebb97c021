package gid

import (
	"fmt"
	"strings"
)

// Format names a textual rendering of an ID
type Format byte

const (
	// FormatAuto selects the format from the character class of the input (decode only)
	FormatAuto Format = iota
	FormatBase36
	FormatBase64
	FormatHex
	FormatDecimal
)

var formatNames = map[Format]string{
	FormatAuto:    "auto",
	FormatBase36:  "base36",
	FormatBase64:  "base64",
	FormatHex:     "hex",
	FormatDecimal: "decimal",
}

// String returns the lowercase name of the format
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", byte(f))
}

// ParseFormat maps a format name to its Format. Matching is case-insensitive;
// "dec" and "b36"/"b64" are accepted as short forms.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return FormatAuto, nil
	case "base36", "b36":
		return FormatBase36, nil
	case "base64", "b64":
		return FormatBase64, nil
	case "hex":
		return FormatHex, nil
	case "decimal", "dec":
		return FormatDecimal, nil
	default:
		return FormatAuto, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// MarshalText implements the encoding.TextMarshaler interface
func (f Format) MarshalText() ([]byte, error) {
	if _, ok := formatNames[f]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, byte(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface
func (f *Format) UnmarshalText(data []byte) error {
	v, err := ParseFormat(string(data))
	if err != nil {
		return err
	}
	*f = v
	return nil
}
