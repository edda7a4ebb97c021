package gid

import (
	"database/sql/driver"
	"encoding/binary"
	"fmt"
	"strconv"
	"time"
)

// ID is a 63-bit non-negative identifier. Bit 63 is always zero, so every ID
// fits a signed 64-bit column without changing sign.
type ID uint64

const (
	// MaxID is the largest valid identifier (2^63 - 1)
	MaxID ID = 1<<63 - 1

	// TimestampBits is the width of the millisecond timestamp field of a time-ordered ID
	TimestampBits = 48

	// OffsetBits is the width of the sequence offset field of a time-ordered ID
	OffsetBits = 16

	// MaxTimestamp is the largest epoch millisecond value a time-ordered ID can hold
	MaxTimestamp uint64 = 1<<TimestampBits - 1

	offsetMask = 1<<OffsetBits - 1
	signMask   = uint64(MaxID)
)

// Nil is the zero identifier
var Nil ID

// IsValid reports whether the sign bit of the ID is clear
func (id ID) IsValid() bool {
	return id <= MaxID
}

// IsNil returns true if the ID is zero
func (id ID) IsNil() bool {
	return id == Nil
}

// Uint64 returns the ID as an unsigned integer
func (id ID) Uint64() uint64 {
	return uint64(id)
}

// Int64 returns the ID as a signed integer. The result is never negative for a valid ID.
func (id ID) Int64() int64 {
	return int64(id)
}

// String returns the decimal representation of the ID
func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ExtractTimestamp returns the high 48 bits of id: the epoch milliseconds at which a
// time-ordered ID was generated. For random IDs the result carries no meaning.
func ExtractTimestamp(id ID) uint64 {
	return uint64(id) >> OffsetBits
}

// ExtractOffset returns the low 16 bits of id: the sequence offset of a time-ordered ID.
func ExtractOffset(id ID) uint16 {
	return uint16(uint64(id) & offsetMask)
}

// Timestamp returns the embedded epoch milliseconds, see ExtractTimestamp
func (id ID) Timestamp() uint64 {
	return ExtractTimestamp(id)
}

// Offset returns the embedded sequence offset, see ExtractOffset
func (id ID) Offset() uint16 {
	return ExtractOffset(id)
}

// Time returns the embedded timestamp as a time.Time
func (id ID) Time() time.Time {
	return time.UnixMilli(int64(id.Timestamp()))
}

// Compare returns -1, 0 or +1 depending on whether id is less than, equal to
// or greater than other.
func (id ID) Compare(other ID) int {
	switch {
	case id < other:
		return -1
	case id > other:
		return 1
	default:
		return 0
	}
}

// Bytes returns the ID as 8 big-endian bytes
func (id ID) Bytes() []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(id))
	return b[:]
}

// FromBytes creates an ID from 8 big-endian bytes
func FromBytes(b []byte) (ID, error) {
	if len(b) != 8 {
		return Nil, ErrInvalidLength
	}
	id := ID(binary.BigEndian.Uint64(b))
	if !id.IsValid() {
		return Nil, fmt.Errorf("%w: sign bit set", ErrInvalidFormat)
	}
	return id, nil
}

// MustParse is like ParseAutoDetect but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables.
func MustParse(s string) ID {
	id, err := ParseAutoDetect(s)
	if err != nil {
		panic(fmt.Sprintf("gid: ParseAutoDetect(%q): %v", s, err))
	}
	return id
}

// Must is a helper that wraps a call to a function returning (ID, error)
// and panics if the error is non-nil. It is intended for use in variable
// initializations such as:
//
//	var id = gid.Must(gid.New())
func Must(id ID, err error) ID {
	if err != nil {
		panic(err)
	}
	return id
}

// MarshalText implements the encoding.TextMarshaler interface.
// IDs render as decimal strings so that JSON consumers do not lose precision.
func (id ID) MarshalText() ([]byte, error) {
	return strconv.AppendUint(nil, uint64(id), 10), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
// Any format accepted by ParseAutoDetect is accepted.
func (id *ID) UnmarshalText(data []byte) error {
	v, err := ParseAutoDetect(string(data))
	if err != nil {
		return err
	}
	*id = v
	return nil
}

// MarshalBinary implements the encoding.BinaryMarshaler interface
func (id ID) MarshalBinary() ([]byte, error) {
	return id.Bytes(), nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface
func (id *ID) UnmarshalBinary(data []byte) error {
	v, err := FromBytes(data)
	if err != nil {
		return err
	}
	*id = v
	return nil
}

// Scan implements the sql.Scanner interface for database compatibility
func (id *ID) Scan(src interface{}) error {
	switch src := src.(type) {
	case nil:
		return nil
	case int64:
		if src < 0 {
			return fmt.Errorf("%w: negative value %d", ErrInvalidFormat, src)
		}
		*id = ID(src)
		return nil
	case string:
		v, err := ParseAutoDetect(src)
		if err != nil {
			return err
		}
		*id = v
		return nil
	case []byte:
		if len(src) == 0 {
			return nil
		}
		v, err := ParseAutoDetect(string(src))
		if err != nil {
			return err
		}
		*id = v
		return nil
	default:
		return fmt.Errorf("gid: cannot scan type %T into ID", src)
	}
}

// Value implements the driver.Valuer interface. IDs are stored as signed 64-bit integers.
func (id ID) Value() (driver.Value, error) {
	if !id.IsValid() {
		return nil, fmt.Errorf("%w: sign bit set", ErrInvalidFormat)
	}
	return int64(id), nil
}
