package cantypes

import (
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/exp/constraints"
)

var (
	// ErrParseFailure indicates that given text is not valid hexadecimal
	ErrParseFailure = errors.New("invalid hexadecimal value")
	// ErrOutOfRange indicates that value does not fit into bit width of protocol (11bit, 18bit, 29bit)
	ErrOutOfRange = errors.New("value out of range")
	// ErrInvalidPriority indicates that priority field is larger than 7
	ErrInvalidPriority = errors.New("invalid priority")
	// ErrInvalidPDUFormat indicates that PDU format does not fit into 6bits of 11bit identifier
	ErrInvalidPDUFormat = errors.New("invalid pdu format")
	// ErrUnassignedPGN indicates that PGN falls between SAE and manufacturer ranges
	ErrUnassignedPGN = errors.New("pgn is not assigned")
)

// Conversion is implemented by every bit-packed type in this package. Values can always be turned back into their
// native integer and into fixed width uppercase hexadecimal text.
type Conversion[U constraints.Unsigned] interface {
	IntoBits() U
	IntoHex() string
}

// Packed is constraint for bit-packed types stored in native unsigned integer.
type Packed[U constraints.Unsigned] interface {
	~uint16 | ~uint32 | ~uint64
	Conversion[U]
}

// Codec creates values of type T from native integers or hexadecimal text. There is one Codec for each protocol
// (Standard, Extended/J1939, CAN2A, CAN2B) and payload kind. `From*` methods trust their input, `TryFrom*` methods
// validate it and should be used for everything read from the bus or from users.
type Codec[T Packed[U], U constraints.Unsigned] struct {
	name   string
	max    U
	digits int
	bits   int // storage width, used when parsing hex
}

// Max returns the largest valid value for this codec.
func (c Codec[T, U]) Max() U {
	return c.max
}

// Digits returns the number of hex digits IntoHex produces for this codec.
func (c Codec[T, U]) Digits() int {
	return c.digits
}

// FromBits creates value from raw integer without validation.
func (c Codec[T, U]) FromBits(bits U) T {
	return T(bits)
}

// FromHex parses hexadecimal text without validating range. Text that can not be parsed results zero value.
func (c Codec[T, U]) FromHex(hexStr string) T {
	v, err := strconv.ParseUint(hexStr, 16, c.bits)
	if err != nil {
		return T(0)
	}
	return T(U(v))
}

// TryFromBits creates value from raw integer and returns ErrOutOfRange when it does not fit into protocol range.
func (c Codec[T, U]) TryFromBits(bits U) (T, error) {
	if bits > c.max {
		return T(0), fmt.Errorf("%v bits out of range, valid range is 0x0..0x%X, got 0x%X: %w", c.name, c.max, bits, ErrOutOfRange)
	}
	return T(bits), nil
}

// TryFromHex parses hexadecimal text and returns ErrParseFailure for malformed text and ErrOutOfRange when parsed
// value does not fit into protocol range.
func (c Codec[T, U]) TryFromHex(hexStr string) (T, error) {
	v, err := strconv.ParseUint(hexStr, 16, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return T(0), fmt.Errorf("%v hex `%v` out of range: %w", c.name, hexStr, ErrOutOfRange)
		}
		return T(0), fmt.Errorf("%v hex `%v` could not be parsed: %w", c.name, hexStr, ErrParseFailure)
	}
	if v > uint64(c.max) {
		return T(0), fmt.Errorf("%v hex out of range, valid range is 0x0..0x%X, got 0x%X: %w", c.name, c.max, v, ErrOutOfRange)
	}
	return T(U(v)), nil
}

// formatHex renders v as zero padded uppercase hex.
func formatHex(v uint64, digits int) string {
	return fmt.Sprintf("%0*X", digits, v)
}
