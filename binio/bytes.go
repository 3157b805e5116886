package binio

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// WriteLengthPrefixed appends payload to b preceded by its length as a width-byte integer.
// It fails with ErrSizeOverflow if the length cannot be represented in width bytes;
// the declared size width does not fit the data, and retrying cannot help.
func WriteLengthPrefixed(b *Buffer, order binary.ByteOrder, width int, payload []byte) error {
	checkWidth(width)

	n := uint64(len(payload))
	if width < Width64 && n >= uint64(1)<<(8*width) {
		return NewError(ErrSizeOverflow, fmt.Sprintf("payload of %v bytes does not fit in a %v byte length prefix", n, width), 0)
	}

	WriteUint(b, order, width, n)
	b.Write(payload)
	return nil
}

// ReadLengthPrefixed consumes a width-byte length followed by that many bytes of payload.
// If the remaining buffer is shorter than the decoded length it fails with ErrInsufficientData
// and the cursor does not move; not even past the length prefix.
// The returned slice aliases the buffer.
func ReadLengthPrefixed(b *Buffer, order binary.ByteOrder, width int) ([]byte, error) {
	checkWidth(width)

	p, err := b.Peek(width)
	if err != nil {
		return nil, err
	}

	var n uint64
	switch width {
	case Width8:
		n = uint64(p[0])
	case Width16:
		n = uint64(order.Uint16(p))
	case Width32:
		n = uint64(order.Uint32(p))
	default:
		n = order.Uint64(p)
	}

	if n > uint64(b.Len()-width) {
		return nil, NewError(ErrInsufficientData, fmt.Sprintf("length prefix wants %v bytes but only %v remain", n, b.Len()-width), 0)
	}

	b.off += width
	payload, _ := b.Next(int(n))
	return payload, nil
}

// WriteCString appends payload to b followed by a single 0x00 terminator. No length is written.
func WriteCString(b *Buffer, payload []byte) {
	b.Write(payload)
	b.WriteByte(0)
}

// ReadCString scans forward from the cursor for the first 0x00 byte, consuming the payload and
// the terminator. The returned payload excludes the terminator and aliases the buffer.
// It fails with ErrMalformedCString, without moving the cursor, if no terminator exists.
func ReadCString(b *Buffer) ([]byte, error) {
	i := bytes.IndexByte(b.buff[b.off:], 0)
	if i < 0 {
		return nil, NewError(ErrMalformedCString, fmt.Sprintf("no terminator in %v remaining bytes", b.Len()), 0)
	}

	payload := b.buff[b.off : b.off+i]
	b.off += i + 1
	return payload, nil
}
