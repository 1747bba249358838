// Package bytecursor implements a bounded little-endian reader over an
// in-memory buffer. Every read is checked against the buffer bounds, so
// callers never index the underlying slice directly.
package bytecursor

import (
	"encoding/binary"
	"errors"
)

var (
	ErrBufferUnderrun = errors.New("cannot read past buffer size")
	ErrInvalidOffset  = errors.New("offset is outside of buffer")
)

type Cursor struct {
	buf []byte
	pos int
}

func New(b []byte) *Cursor {
	return &Cursor{buf: b}
}

// Pos returns the current absolute offset.
func (c *Cursor) Pos() int {
	return c.pos
}

// Len returns the size of the whole buffer.
func (c *Cursor) Len() int {
	return len(c.buf)
}

func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

func (c *Cursor) Done() bool {
	return c.pos >= len(c.buf)
}

// Seek moves the cursor to the absolute offset off. Seeking to the
// end of the buffer is allowed.
func (c *Cursor) Seek(off int) error {
	if off < 0 || off > len(c.buf) {
		return ErrInvalidOffset
	}
	c.pos = off
	return nil
}

func (c *Cursor) Skip(n int) error {
	if n < 0 || n > c.Remaining() {
		return ErrBufferUnderrun
	}
	c.pos += n
	return nil
}

// Peek returns the next n bytes without advancing. The returned slice
// aliases the buffer and must not be modified.
func (c *Cursor) Peek(n int) ([]byte, error) {
	if n < 0 || n > c.Remaining() {
		return nil, ErrBufferUnderrun
	}
	return c.buf[c.pos : c.pos+n], nil
}

// Read returns the next n bytes and advances past them. The returned
// slice aliases the buffer and must not be modified.
func (c *Cursor) Read(n int) ([]byte, error) {
	b, err := c.Peek(n)
	if err != nil {
		return nil, err
	}
	c.pos += n
	return b, nil
}

func (c *Cursor) Uint8() (uint8, error) {
	b, err := c.Read(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *Cursor) Uint16() (uint16, error) {
	b, err := c.Read(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *Cursor) Uint32() (uint32, error) {
	b, err := c.Read(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Slice returns the bytes in the absolute range [start, end) without
// moving the cursor.
func (c *Cursor) Slice(start, end int) ([]byte, error) {
	if start < 0 || end < start || end > len(c.buf) {
		return nil, ErrBufferUnderrun
	}
	return c.buf[start:end], nil
}
