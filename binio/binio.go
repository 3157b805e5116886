// Package binio provides buffer and primitive read/write methods for binary marshaling, as well as error types.
//
// All primitives operate on a Buffer; reads consume from the Buffer's cursor and writes append to its end.
// A failed read never moves the cursor, even for composite reads like ReadLengthPrefixed where the
// length prefix itself decoded successfully. A successful read advances the cursor by exactly the
// bytes it consumed. This keeps a session's cursor consistent on every error path.
package binio

import (
	"encoding/binary"
	"fmt"
)

// Widths accepted by the integer primitives. Anything else is programmer error and panics.
const (
	Width8  = 1
	Width16 = 2
	Width32 = 4
	Width64 = 8
)

// ValidWidth reports whether width is one of 1, 2, 4 or 8 bytes.
func ValidWidth(width int) bool {
	return width == Width8 || width == Width16 || width == Width32 || width == Width64
}

func checkWidth(width int) {
	if !ValidWidth(width) {
		panic(NewError(ErrBadConfig, fmt.Sprintf("integer width must be 1, 2, 4 or 8 bytes; got %v", width), 1))
	}
}

// WriteUint appends v to b as a width-byte integer in the given byte order.
// Values wider than width bytes are truncated; range checking is the caller's business.
func WriteUint(b *Buffer, order binary.ByteOrder, width int, v uint64) {
	checkWidth(width)

	var scratch [8]byte
	switch width {
	case Width8:
		// A single byte has no order.
		b.WriteByte(byte(v))
		return
	case Width16:
		order.PutUint16(scratch[:Width16], uint16(v))
	case Width32:
		order.PutUint32(scratch[:Width32], uint32(v))
	case Width64:
		order.PutUint64(scratch[:Width64], v)
	}

	b.Write(scratch[:width])
}

// WriteInt appends v to b as a width-byte integer in the given byte order.
func WriteInt(b *Buffer, order binary.ByteOrder, width int, v int64) {
	WriteUint(b, order, width, uint64(v))
}

// ReadUint consumes a width-byte integer from b in the given byte order.
// It fails with ErrInsufficientData if fewer than width bytes remain.
func ReadUint(b *Buffer, order binary.ByteOrder, width int) (uint64, error) {
	checkWidth(width)

	p, err := b.Next(width)
	if err != nil {
		return 0, err
	}

	switch width {
	case Width8:
		return uint64(p[0]), nil
	case Width16:
		return uint64(order.Uint16(p)), nil
	case Width32:
		return uint64(order.Uint32(p)), nil
	default:
		return order.Uint64(p), nil
	}
}

// ReadInt consumes a width-byte integer from b, sign-extending it from the declared width.
func ReadInt(b *Buffer, order binary.ByteOrder, width int) (int64, error) {
	u, err := ReadUint(b, order, width)
	if err != nil {
		return 0, err
	}

	shift := uint(64 - width*8)
	return int64(u<<shift) >> shift, nil
}

// WriteBool appends exactly one byte to b; 1 for true, 0 for false.
func WriteBool(b *Buffer, v bool) {
	if v {
		b.WriteByte(1)
		return
	}
	b.WriteByte(0)
}

// ReadBool consumes exactly one byte from b. Any nonzero byte decodes as true.
func ReadBool(b *Buffer) (bool, error) {
	p, err := b.Next(1)
	if err != nil {
		return false, err
	}
	return p[0] != 0, nil
}
