package cantypes

import (
	"encoding/binary"
	"fmt"
	"math/bits"
)

// Data is 8 byte payload of CAN frame. Byte 0 is the most significant byte of the value so hex representation of
// Data reads in the same order as bytes are on the wire.
type Data uint64

// DataPayload is codec for 8 byte payloads. Every 64bit value is valid payload.
var DataPayload = Codec[Data, uint64]{name: "data", max: ^uint64(0), digits: 16, bits: 64}

// DataFromBytes creates payload from frame bytes. Shorter than 8 byte payloads are padded with zeroes at the end.
func DataFromBytes(b []byte) (Data, error) {
	if len(b) > 8 {
		return 0, fmt.Errorf("payload can have up to 8 bytes, got %v: %w", len(b), ErrOutOfRange)
	}
	tmp := [8]byte{}
	copy(tmp[:], b)
	return Data(binary.BigEndian.Uint64(tmp[:])), nil
}

// Byte returns n-th byte (0-7) of payload. Index outside of 0-7 panics like out of range slice index would.
func (d Data) Byte(n int) uint8 {
	if n < 0 || n > 7 {
		panic(fmt.Sprintf("payload byte index out of range [%d] with length 8", n))
	}
	return uint8(d >> (56 - 8*n))
}

// Bytes returns payload bytes in wire order.
func (d Data) Bytes() [8]byte {
	return d.BigEndianBytes()
}

func (d Data) BigEndianBytes() [8]byte {
	b := [8]byte{}
	binary.BigEndian.PutUint64(b[:], uint64(d))
	return b
}

func (d Data) LittleEndianBytes() [8]byte {
	b := [8]byte{}
	binary.LittleEndian.PutUint64(b[:], uint64(d))
	return b
}

func (d Data) NativeEndianBytes() [8]byte {
	b := [8]byte{}
	binary.NativeEndian.PutUint64(b[:], uint64(d))
	return b
}

// ToLE converts value to little-endian byte order. On little-endian machines this is no-op.
func (d Data) ToLE() Data {
	if isBigEndianHost() {
		return Data(bits.ReverseBytes64(uint64(d)))
	}
	return d
}

// ToBE converts value to big-endian byte order. On big-endian machines this is no-op.
func (d Data) ToBE() Data {
	if isBigEndianHost() {
		return d
	}
	return Data(bits.ReverseBytes64(uint64(d)))
}

// Name reinterprets payload as J1939 NAME. Bits are not changed.
func (d Data) Name() Name {
	return Name(d)
}

func (d Data) IntoBits() uint64 {
	return uint64(d)
}

func (d Data) IntoHex() string {
	return formatHex(uint64(d), DataPayload.digits)
}

func (d Data) String() string {
	return d.IntoHex()
}

func isBigEndianHost() bool {
	b := [2]byte{}
	binary.NativeEndian.PutUint16(b[:], 1)
	return b[1] == 1
}
