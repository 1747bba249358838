// Package chunk decodes the base header shared by every chunk of the
// Android resource formats (binary XML and resource tables).
package chunk

import (
	"errors"
	"fmt"
	"slices"

	"github.com/lestrrat-go/axml/internal/bytecursor"
	pkgerrors "github.com/pkg/errors"
)

// HeaderSize is the size of the base header (type, header size, size).
const HeaderSize = 8

var (
	ErrBufferUnderrun         = bytecursor.ErrBufferUnderrun
	ErrHeaderTooSmall         = errors.New("declared header size is smaller than required size")
	ErrChunkTooSmall          = errors.New("declared chunk size is smaller than required size")
	ErrChunkSmallerThanHeader = errors.New("declared chunk size is smaller than header size")
	ErrChunkOutOfBounds       = errors.New("declared chunk size exceeds buffer size")
	ErrUnexpectedType         = errors.New("unexpected chunk type")
)

// Header is a decoded ResChunk_header. Start is the absolute offset
// of the first byte of the header.
type Header struct {
	Type       Type
	HeaderSize uint16
	Size       uint32
	Start      int
}

// End returns the absolute offset one past the last byte of the chunk.
func (h *Header) End() int {
	return h.Start + int(h.Size)
}

// BodyStart returns the absolute offset of the first byte after the
// declared header.
func (h *Header) BodyStart() int {
	return h.Start + int(h.HeaderSize)
}

func (h *Header) String() string {
	return fmt.Sprintf("<ResChunkHeader idx='0x%08x' type='%d' header_size='%d' size='%d'>",
		h.Start, uint16(h.Type), h.HeaderSize, h.Size)
}

// ParseHeader reads a chunk header at the current cursor position.
// Validation stops at the first violated invariant; a Header is only
// returned when all of them hold. On error the cursor position is
// unspecified.
func ParseHeader(cur *bytecursor.Cursor) (*Header, error) {
	start := cur.Pos()
	if cur.Remaining() < HeaderSize {
		return nil, pkgerrors.Wrapf(ErrBufferUnderrun, "chunk header at offset 0x%08x", start)
	}

	// Remaining() was checked above, none of these can fail
	typ, _ := cur.Uint16()
	hsize, _ := cur.Uint16()
	size, _ := cur.Uint32()

	if hsize < HeaderSize {
		return nil, pkgerrors.Wrapf(ErrHeaderTooSmall, "chunk header at offset 0x%08x (header size %d)", start, hsize)
	}
	if size < HeaderSize {
		return nil, pkgerrors.Wrapf(ErrChunkTooSmall, "chunk header at offset 0x%08x (size %d)", start, size)
	}
	if size < uint32(hsize) {
		return nil, pkgerrors.Wrapf(ErrChunkSmallerThanHeader, "chunk header at offset 0x%08x (size %d, header size %d)", start, size, hsize)
	}
	if uint64(start)+uint64(size) > uint64(cur.Len()) {
		return nil, pkgerrors.Wrapf(ErrChunkOutOfBounds, "chunk header at offset 0x%08x (size %d, buffer size %d)", start, size, cur.Len())
	}

	return &Header{
		Type:       Type(typ),
		HeaderSize: hsize,
		Size:       size,
		Start:      start,
	}, nil
}

// ParseHeaderExpect is like ParseHeader, but additionally requires the
// chunk type to be one of types.
func ParseHeaderExpect(cur *bytecursor.Cursor, types ...Type) (*Header, error) {
	h, err := ParseHeader(cur)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(types, h.Type) {
		return nil, pkgerrors.Wrapf(ErrUnexpectedType, "chunk header at offset 0x%08x: got 0x%04x, wanted %v", h.Start, uint16(h.Type), types)
	}
	return h, nil
}
