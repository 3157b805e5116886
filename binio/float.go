package binio

import (
	"encoding/binary"
	"math"
)

// Floats cross the wire as their IEEE-754 bit pattern, reinterpreted as an unsigned integer of the
// same width and passed through the integer path. Byte order is therefore handled identically for
// floats and integers; there is no separate reversal logic for the mantissa or exponent.

// WriteFloat32 appends f to b as its 4-byte IEEE-754 bit pattern in the given byte order.
func WriteFloat32(b *Buffer, order binary.ByteOrder, f float32) {
	WriteUint(b, order, Width32, uint64(math.Float32bits(f)))
}

// ReadFloat32 consumes a 4-byte IEEE-754 bit pattern from b in the given byte order.
func ReadFloat32(b *Buffer, order binary.ByteOrder) (float32, error) {
	u, err := ReadUint(b, order, Width32)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(uint32(u)), nil
}

// WriteFloat64 appends f to b as its 8-byte IEEE-754 bit pattern in the given byte order.
func WriteFloat64(b *Buffer, order binary.ByteOrder, f float64) {
	WriteUint(b, order, Width64, math.Float64bits(f))
}

// ReadFloat64 consumes an 8-byte IEEE-754 bit pattern from b in the given byte order.
func ReadFloat64(b *Buffer, order binary.ByteOrder) (float64, error) {
	u, err := ReadUint(b, order, Width64)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(u), nil
}
