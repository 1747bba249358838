// Package stringpool decodes ResStringPool chunks: the table holding
// every string literal that the rest of a binary XML document refers
// to by index.
package stringpool

import (
	"errors"
	"sort"

	"github.com/lestrrat-go/axml/chunk"
	"github.com/lestrrat-go/axml/encoding"
	"github.com/lestrrat-go/axml/internal/bytecursor"
	"github.com/lestrrat-go/pdebug/v3"
	pkgerrors "github.com/pkg/errors"
)

// NoIndex is the string reference used by the format to mean "no string".
const NoIndex uint32 = 0xFFFFFFFF

const (
	FlagSorted uint32 = 1 << 0
	FlagUTF8   uint32 = 1 << 8
)

// header fields following the base chunk header
const fieldsSize = 20

const spanEnd uint32 = 0xFFFFFFFF

var (
	ErrCorruptPool      = errors.New("string pool offsets are corrupt")
	ErrEntryOutOfBounds = errors.New("string pool entry is outside of string data")
	ErrNotTerminated    = errors.New("string is not null terminated")
	ErrIndexOutOfRange  = errors.New("string index out of range")
)

type Encoding int

const (
	UTF16 Encoding = iota
	UTF8
)

func (e Encoding) String() string {
	if e == UTF8 {
		return "utf-8"
	}
	return "utf-16"
}

// Span marks the range [FirstChar, LastChar] of a string as styled by
// the tag whose name is the string at index Name.
type Span struct {
	Name      uint32
	FirstChar uint32
	LastChar  uint32
}

// Entry is one decoded string. Start and End are absolute offsets of
// the encoded form, length prefix and terminator included.
type Entry struct {
	Start int
	End   int
	Text  string
	Spans []Span
}

// Stats describes properties of the raw pool that regular tool output
// never exhibits. It is collected for analysis only.
type Stats struct {
	DuplicateOffsets       int
	OverlappingEntries     int
	LengthMismatches       int
	MalformedStyles        int
	StylesStartWithoutData bool
	UnalignedStrings       bool
	UnalignedStyles        bool
	StringsStartMismatch   bool
}

type Pool struct {
	header      *chunk.Header
	flags       uint32
	stringCount uint32
	styleCount  uint32
	stringsAt   uint32
	stylesAt    uint32
	entries     []Entry
	stats       Stats
}

// Parse decodes the string pool whose header h has already been read
// from cur. Every entry is decoded eagerly. On success the cursor is
// positioned at the end of the chunk.
//
// Errors returned from Parse mean that the offset table cannot be
// trusted. There is no partial result.
func Parse(cur *bytecursor.Cursor, h *chunk.Header) (*Pool, error) {
	if pdebug.Enabled {
		g := pdebug.FuncMarker()
		defer g.End()
	}

	if int(h.HeaderSize) < chunk.HeaderSize+fieldsSize {
		return nil, pkgerrors.Wrapf(ErrCorruptPool, "string pool at offset 0x%08x: header size %d", h.Start, h.HeaderSize)
	}
	if err := cur.Seek(h.Start + chunk.HeaderSize); err != nil {
		return nil, pkgerrors.Wrapf(err, "string pool at offset 0x%08x", h.Start)
	}

	p := &Pool{header: h}
	// the header size was checked above, so these reads stay inside the chunk
	p.stringCount, _ = cur.Uint32()
	p.styleCount, _ = cur.Uint32()
	p.flags, _ = cur.Uint32()
	p.stringsAt, _ = cur.Uint32()
	p.stylesAt, _ = cur.Uint32()

	stringOffsets, err := readOffsets(cur, h.BodyStart(), p.stringCount, h.End())
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "string pool at offset 0x%08x: string offsets", h.Start)
	}
	styleOffsets, err := readOffsets(cur, h.BodyStart()+4*int(p.stringCount), p.styleCount, h.End())
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "string pool at offset 0x%08x: style offsets", h.Start)
	}

	if p.styleCount == 0 && p.stylesAt != 0 {
		// the region is simply empty, nothing is read from it
		p.stats.StylesStartWithoutData = true
	}

	if p.stringCount > 0 {
		if p.stringsAt == 0 || uint64(p.stringsAt) >= uint64(h.Size) {
			return nil, pkgerrors.Wrapf(ErrCorruptPool, "string pool at offset 0x%08x: strings start 0x%x", h.Start, p.stringsAt)
		}
		tables := uint64(h.HeaderSize) + 4*uint64(p.stringCount) + 4*uint64(p.styleCount)
		if uint64(p.stringsAt) != tables {
			p.stats.StringsStartMismatch = true
		}
	}

	dataStart := h.Start + int(p.stringsAt)
	dataEnd := h.End()
	if p.hasStyles() {
		dataEnd = h.Start + int(p.stylesAt)
		if (h.End()-dataEnd)%4 != 0 {
			p.stats.UnalignedStyles = true
		}
	}
	if p.stringCount > 0 && (dataEnd-dataStart)%4 != 0 {
		p.stats.UnalignedStrings = true
	}

	var data []byte
	if p.stringCount > 0 {
		data, err = cur.Slice(dataStart, max(dataStart, dataEnd))
		if err != nil {
			return nil, pkgerrors.Wrapf(ErrCorruptPool, "string pool at offset 0x%08x: string data", h.Start)
		}
	}

	p.entries = make([]Entry, p.stringCount)
	for i, off := range stringOffsets {
		e, err := p.decode(data, off)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "string pool at offset 0x%08x: entry %d (offset 0x%x)", h.Start, i, off)
		}
		e.Start += dataStart
		e.End += dataStart
		p.entries[i] = e
	}

	if p.hasStyles() {
		p.readStyles(cur, styleOffsets)
	}
	p.checkOverlaps()

	if err := cur.Seek(h.End()); err != nil {
		return nil, pkgerrors.Wrapf(err, "string pool at offset 0x%08x", h.Start)
	}
	return p, nil
}

func readOffsets(cur *bytecursor.Cursor, at int, count uint32, limit int) ([]uint32, error) {
	if count == 0 {
		return nil, nil
	}
	if uint64(at)+4*uint64(count) > uint64(limit) {
		return nil, ErrCorruptPool
	}
	if err := cur.Seek(at); err != nil {
		return nil, err
	}
	offsets := make([]uint32, count)
	for i := range offsets {
		v, err := cur.Uint32()
		if err != nil {
			return nil, err
		}
		offsets[i] = v
	}
	return offsets, nil
}

func (p *Pool) hasStyles() bool {
	return p.styleCount > 0 && p.stylesAt != 0 && p.stylesAt > p.stringsAt && uint64(p.stylesAt) <= uint64(p.header.Size)
}

func (p *Pool) decode(data []byte, off uint32) (Entry, error) {
	if uint64(off) >= uint64(len(data)) {
		return Entry{}, ErrEntryOutOfBounds
	}
	if p.Encoding() == UTF8 {
		return p.decode8(data, int(off))
	}
	return p.decode16(data, int(off))
}

// decodeLength8 reads a length stored in one byte, or in two bytes when
// the high bit of the first is set.
func decodeLength8(data []byte, pos int) (int, int, error) {
	if pos >= len(data) {
		return 0, 0, ErrEntryOutOfBounds
	}
	l := int(data[pos])
	if l&0x80 == 0 {
		return l, 1, nil
	}
	if pos+1 >= len(data) {
		return 0, 0, ErrEntryOutOfBounds
	}
	return (l&0x7F)<<8 | int(data[pos+1]), 2, nil
}

func decodeLength16(data []byte, pos int) (int, int, error) {
	if pos+2 > len(data) {
		return 0, 0, ErrEntryOutOfBounds
	}
	l := int(data[pos]) | int(data[pos+1])<<8
	if l&0x8000 == 0 {
		return l, 2, nil
	}
	if pos+4 > len(data) {
		return 0, 0, ErrEntryOutOfBounds
	}
	l2 := int(data[pos+2]) | int(data[pos+3])<<8
	return (l&0x7FFF)<<16 | l2, 4, nil
}

func (p *Pool) decode8(data []byte, start int) (Entry, error) {
	// UTF-8 entries carry the UTF-16 length first, then the byte length
	u16len, n, err := decodeLength8(data, start)
	if err != nil {
		return Entry{}, err
	}
	pos := start + n
	blen, n, err := decodeLength8(data, pos)
	if err != nil {
		return Entry{}, err
	}
	pos += n
	if pos+blen >= len(data) || data[pos+blen] != 0 {
		return Entry{}, ErrNotTerminated
	}

	s, err := encoding.DecodeUTF8(data[pos : pos+blen])
	if err != nil {
		return Entry{}, err
	}
	if utf16Len(s) != u16len {
		p.stats.LengthMismatches++
	}
	return Entry{Start: start, End: pos + blen + 1, Text: s}, nil
}

func (p *Pool) decode16(data []byte, start int) (Entry, error) {
	ulen, n, err := decodeLength16(data, start)
	if err != nil {
		return Entry{}, err
	}
	pos := start + n
	blen := ulen * 2
	if pos+blen+2 > len(data) || data[pos+blen] != 0 || data[pos+blen+1] != 0 {
		return Entry{}, ErrNotTerminated
	}

	s, err := encoding.DecodeUTF16(data[pos : pos+blen])
	if err != nil {
		return Entry{}, err
	}
	return Entry{Start: start, End: pos + blen + 2, Text: s}, nil
}

func utf16Len(s string) int {
	var n int
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// readStyles decodes the span lists. Spans are metadata only, so a
// malformed list is dropped and counted instead of failing the pool.
func (p *Pool) readStyles(cur *bytecursor.Cursor, offsets []uint32) {
	base := p.header.Start + int(p.stylesAt)
	limit := p.header.End()
	for i, off := range offsets {
		if uint32(i) >= p.stringCount {
			break
		}
		spans, ok := readSpans(cur, base+int(off), limit)
		if !ok {
			p.stats.MalformedStyles++
			continue
		}
		p.entries[i].Spans = spans
	}
}

func readSpans(cur *bytecursor.Cursor, at, limit int) ([]Span, bool) {
	if at < 0 || at >= limit {
		return nil, false
	}
	if err := cur.Seek(at); err != nil {
		return nil, false
	}

	var spans []Span
	for cur.Pos()+4 <= limit {
		name, err := cur.Uint32()
		if err != nil {
			return nil, false
		}
		if name == spanEnd {
			return spans, true
		}
		if cur.Pos()+8 > limit {
			return nil, false
		}
		first, _ := cur.Uint32()
		last, _ := cur.Uint32()
		spans = append(spans, Span{Name: name, FirstChar: first, LastChar: last})
	}
	return nil, false
}

func (p *Pool) checkOverlaps() {
	seen := make(map[int]struct{}, len(p.entries))
	spans := make([]Entry, 0, len(p.entries))
	for _, e := range p.entries {
		if _, ok := seen[e.Start]; ok {
			p.stats.DuplicateOffsets++
			continue
		}
		seen[e.Start] = struct{}{}
		spans = append(spans, e)
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })
	for i := 1; i < len(spans); i++ {
		if spans[i].Start < spans[i-1].End {
			p.stats.OverlappingEntries++
		}
	}
}

func (p *Pool) Header() *chunk.Header {
	return p.header
}

func (p *Pool) Len() int {
	return len(p.entries)
}

func (p *Pool) StyleCount() int {
	return int(p.styleCount)
}

func (p *Pool) Flags() uint32 {
	return p.flags
}

func (p *Pool) Encoding() Encoding {
	if p.flags&FlagUTF8 != 0 {
		return UTF8
	}
	return UTF16
}

func (p *Pool) IsSorted() bool {
	return p.flags&FlagSorted != 0
}

func (p *Pool) Stats() Stats {
	return p.stats
}

// Get returns the string at index i.
func (p *Pool) Get(i uint32) (string, error) {
	e, err := p.Entry(i)
	if err != nil {
		return "", err
	}
	return e.Text, nil
}

// Lookup is like Get, but maps NoIndex to the empty string.
func (p *Pool) Lookup(i uint32) (string, error) {
	if i == NoIndex {
		return "", nil
	}
	return p.Get(i)
}

func (p *Pool) Entry(i uint32) (*Entry, error) {
	if uint64(i) >= uint64(len(p.entries)) {
		return nil, pkgerrors.Wrapf(ErrIndexOutOfRange, "index %d (pool size %d)", i, len(p.entries))
	}
	return &p.entries[i], nil
}

// Strings returns a copy of all decoded strings in index order.
func (p *Pool) Strings() []string {
	list := make([]string, len(p.entries))
	for i, e := range p.entries {
		list[i] = e.Text
	}
	return list
}
