package binio

import "fmt"

// NewBuffer returns a Buffer reading from data. The data is not copied;
// it must not be modified while the Buffer is in use.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{buff: data}
}

// Buffer is a byte buffer with a read cursor. The zero value is an empty buffer ready to write to.
//
// Writes append to the end; reads consume from the cursor. The cursor only ever moves forward,
// and a failed read leaves it where it was. One Buffer backs one marshaling or unmarshaling
// session, so the cursor survives across calls on the same session.
type Buffer struct {
	buff []byte
	off  int
}

// Write implements io.Writer. It never fails.
func (b *Buffer) Write(p []byte) (int, error) {
	return copy(b.buff[b.grow(len(p)):], p), nil
}

// WriteByte implements io.ByteWriter. It never fails.
func (b *Buffer) WriteByte(c byte) error {
	b.buff[b.grow(1)] = c
	return nil
}

// Next consumes and returns the next n bytes, advancing the cursor.
// If fewer than n bytes remain it fails with ErrInsufficientData and the cursor does not move.
// The returned slice aliases the buffer; it is only valid until the next write.
func (b *Buffer) Next(n int) ([]byte, error) {
	p, err := b.Peek(n)
	if err != nil {
		return nil, err
	}
	b.off += n
	return p, nil
}

// Peek returns the next n bytes without moving the cursor.
func (b *Buffer) Peek(n int) ([]byte, error) {
	if n < 0 || n > b.Len() {
		return nil, NewError(ErrInsufficientData, fmt.Sprintf("want %v bytes but only %v remain", n, b.Len()), 1)
	}
	return b.buff[b.off : b.off+n], nil
}

// Discard advances the cursor past n bytes without returning them.
// Like Next, it fails without moving the cursor if fewer than n bytes remain.
func (b *Buffer) Discard(n int) error {
	if n < 0 || n > b.Len() {
		return NewError(ErrInsufficientData, fmt.Sprintf("want %v bytes but only %v remain", n, b.Len()), 1)
	}
	b.off += n
	return nil
}

// Len returns the length of the unread portion of the buffer.
func (b *Buffer) Len() int {
	return len(b.buff) - b.off
}

// Offset returns the cursor position; the count of bytes consumed so far.
func (b *Buffer) Offset() int {
	return b.off
}

// Bytes returns the entire contents of the buffer, read or not.
// The slice aliases the buffer and is only valid until the next write.
func (b *Buffer) Bytes() []byte {
	return b.buff
}

// Reset empties the buffer and rewinds the cursor to the start.
func (b *Buffer) Reset() {
	b.buff = b.buff[:0]
	b.off = 0
}

// grow extends the buffer by n bytes, returning the index where they begin.
func (b *Buffer) grow(n int) int {
	l := len(b.buff)
	if l+n <= cap(b.buff) {
		b.buff = b.buff[:l+n]
		return l
	}

	// must allocate
	nb := make([]byte, l+n, cap(b.buff)*2+n)
	copy(nb, b.buff)
	b.buff = nb
	return l
}
