// Package bytereader provides bounds-checked, endianness-aware reads over an immutable byte buffer.
package bytereader

import (
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// ErrOutOfBounds is matched by every OutOfBoundsError.
var ErrOutOfBounds = errors.New("read out of bounds")

// OutOfBoundsError reports a read of Width bytes at Offset over a buffer of Len bytes.
type OutOfBoundsError struct {
	Offset int
	Width  int
	Len    int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("read of %d bytes at offset %d exceeds buffer length %d", e.Width, e.Offset, e.Len)
}

func (e *OutOfBoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}

// Reader wraps a byte buffer owned by the caller. It never modifies it.
type Reader struct {
	buf []byte
}

func New(buf []byte) *Reader {
	return &Reader{buf: buf}
}

func (r *Reader) Len() int {
	return len(r.buf)
}

// check verifies that width bytes can be read at offset.
func (r *Reader) check(offset, width int) error {
	if offset < 0 || width < 0 || offset > len(r.buf)-width {
		return &OutOfBoundsError{Offset: offset, Width: width, Len: len(r.buf)}
	}
	return nil
}

func (r *Reader) Uint8(offset int) (uint8, error) {
	if err := r.check(offset, 1); err != nil {
		return 0, err
	}
	return r.buf[offset], nil
}

func (r *Reader) Uint16(order binary.ByteOrder, offset int) (uint16, error) {
	if err := r.check(offset, 2); err != nil {
		return 0, err
	}
	return order.Uint16(r.buf[offset:]), nil
}

func (r *Reader) Int16(order binary.ByteOrder, offset int) (int16, error) {
	v, err := r.Uint16(order, offset)
	return int16(v), err
}

func (r *Reader) Uint32(order binary.ByteOrder, offset int) (uint32, error) {
	if err := r.check(offset, 4); err != nil {
		return 0, err
	}
	return order.Uint32(r.buf[offset:]), nil
}

func (r *Reader) Int32(order binary.ByteOrder, offset int) (int32, error) {
	v, err := r.Uint32(order, offset)
	return int32(v), err
}

// Bytes returns the length bytes starting at offset. The result aliases the underlying buffer.
func (r *Reader) Bytes(offset, length int) ([]byte, error) {
	if err := r.check(offset, length); err != nil {
		return nil, err
	}
	return r.buf[offset : offset+length : offset+length], nil
}

// Latin1 decodes length bytes starting at offset, mapping each byte to exactly one code point.
func (r *Reader) Latin1(offset, length int) (string, error) {
	b, err := r.Bytes(offset, length)
	if err != nil {
		return "", err
	}
	return Latin1(b)
}

// Latin1 decodes b as ISO 8859-1.
func Latin1(b []byte) (string, error) {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("decoding latin-1: %w", err)
	}
	return string(out), nil
}
