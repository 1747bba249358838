// Package axmltest assembles binary XML documents for tests. It writes
// what aapt writes by default, and exposes knobs to produce the broken
// layouts that packers emit.
package axmltest

import (
	"encoding/binary"
	"unicode/utf16"
)

const NoIndex uint32 = 0xFFFFFFFF

// Res_value data types
const (
	TypeNull      uint8 = 0x00
	TypeReference uint8 = 0x01
	TypeAttribute uint8 = 0x02
	TypeString    uint8 = 0x03
	TypeFloat     uint8 = 0x04
	TypeDimension uint8 = 0x05
	TypeFraction  uint8 = 0x06
	TypeIntDec    uint8 = 0x10
	TypeIntHex    uint8 = 0x11
	TypeBoolean   uint8 = 0x12
	TypeColorARGB uint8 = 0x1c
)

const AndroidNS = "http://schemas.android.com/apk/res/android"

// Chunk prepends a chunk header to body. The declared header size is
// hsize; body must already contain the header fields past the first
// eight bytes.
func Chunk(typ, hsize uint16, body []byte) []byte {
	out := make([]byte, 8, 8+len(body))
	binary.LittleEndian.PutUint16(out[0:], typ)
	binary.LittleEndian.PutUint16(out[2:], hsize)
	binary.LittleEndian.PutUint32(out[4:], uint32(8+len(body)))
	return append(out, body...)
}

func u16(b []byte, v uint16) []byte {
	return binary.LittleEndian.AppendUint16(b, v)
}

func u32(b []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(b, v)
}

type Span struct {
	Name  uint32
	First uint32
	Last  uint32
}

// PoolSpec describes a string pool chunk.
type PoolSpec struct {
	Strings []string
	UTF8    bool
	Styles  [][]Span

	// StylesStart is written as the styles offset when there are no
	// styles. aapt writes 0.
	StylesStart uint32
	// Unterminated is the 1-based index of a string written without
	// its terminator.
	Unterminated int
	// Offsets replaces the computed string offsets when non-nil.
	Offsets []uint32
	// HeaderSize replaces the header size 28 when non-zero.
	HeaderSize uint16
	// Type replaces the chunk type 0x0001 when non-zero.
	Type uint16
}

func encodeString16(s string, terminate bool) []byte {
	units := utf16.Encode([]rune(s))
	var out []byte
	if l := len(units); l > 0x7FFF {
		out = u16(out, uint16(l>>16)|0x8000)
		out = u16(out, uint16(l))
	} else {
		out = u16(out, uint16(l))
	}
	for _, u := range units {
		out = u16(out, u)
	}
	if terminate {
		return u16(out, 0)
	}
	return u16(out, 'A')
}

func length8(out []byte, l int) []byte {
	if l > 0x7F {
		return append(out, byte(l>>8)|0x80, byte(l))
	}
	return append(out, byte(l))
}

func encodeString8(s string, terminate bool) []byte {
	var out []byte
	out = length8(out, len(utf16.Encode([]rune(s))))
	out = length8(out, len(s))
	out = append(out, s...)
	if terminate {
		return append(out, 0)
	}
	return append(out, 'A')
}

func pad4(b []byte) []byte {
	for len(b)%4 != 0 {
		b = append(b, 0)
	}
	return b
}

// StringPool encodes spec as a complete chunk.
func StringPool(spec PoolSpec) []byte {
	hsize := spec.HeaderSize
	if hsize == 0 {
		hsize = 28
	}
	typ := spec.Type
	if typ == 0 {
		typ = 0x0001
	}

	var data []byte
	offsets := make([]uint32, len(spec.Strings))
	for i, s := range spec.Strings {
		offsets[i] = uint32(len(data))
		terminate := spec.Unterminated != i+1
		if spec.UTF8 {
			data = append(data, encodeString8(s, terminate)...)
		} else {
			data = append(data, encodeString16(s, terminate)...)
		}
	}
	data = pad4(data)
	if spec.Offsets != nil {
		offsets = spec.Offsets
	}

	var styles []byte
	styleOffsets := make([]uint32, len(spec.Styles))
	for i, spans := range spec.Styles {
		styleOffsets[i] = uint32(len(styles))
		for _, span := range spans {
			styles = u32(styles, span.Name)
			styles = u32(styles, span.First)
			styles = u32(styles, span.Last)
		}
		styles = u32(styles, NoIndex)
	}
	if len(spec.Styles) > 0 {
		styles = u32(styles, NoIndex)
		styles = u32(styles, NoIndex)
	}

	tables := uint32(hsize) + 4*uint32(len(offsets)) + 4*uint32(len(styleOffsets))
	var stringsStart, stylesStart uint32
	if len(offsets) > 0 {
		stringsStart = tables
	}
	if len(styleOffsets) > 0 {
		stylesStart = tables + uint32(len(data))
	} else {
		stylesStart = spec.StylesStart
	}

	var flags uint32
	if spec.UTF8 {
		flags |= 1 << 8
	}

	var body []byte
	body = u32(body, uint32(len(offsets)))
	body = u32(body, uint32(len(styleOffsets)))
	body = u32(body, flags)
	body = u32(body, stringsStart)
	body = u32(body, stylesStart)
	for i := 28; i < int(hsize); i++ {
		body = append(body, 0)
	}
	for _, off := range offsets {
		body = u32(body, off)
	}
	for _, off := range styleOffsets {
		body = u32(body, off)
	}
	body = append(body, data...)
	body = append(body, styles...)
	return Chunk(typ, hsize, body)
}

// Attr is an attribute of a start element chunk.
type Attr struct {
	NS   string
	Name string
	// Raw is the raw string value. Strings are also stored here.
	Raw    string
	HasRaw bool
	Type   uint8
	Data   uint32
}

func StringAttr(ns, name, value string) Attr {
	return Attr{NS: ns, Name: name, Raw: value, HasRaw: true, Type: TypeString}
}

func IntAttr(ns, name string, v int32) Attr {
	return Attr{NS: ns, Name: name, Type: TypeIntDec, Data: uint32(v)}
}

func BoolAttr(ns, name string, v bool) Attr {
	a := Attr{NS: ns, Name: name, Type: TypeBoolean}
	if v {
		a.Data = 0xFFFFFFFF
	}
	return a
}

func TypedAttr(ns, name string, typ uint8, data uint32) Attr {
	return Attr{NS: ns, Name: name, Type: typ, Data: data}
}

// Builder accumulates the chunks of one document.
type Builder struct {
	UTF8 bool
	// FileType replaces the document chunk type 0x0003 when non-zero.
	FileType uint16
	// FileHeaderSize replaces the document header size 8 when non-zero.
	FileHeaderSize uint16
	// FileSizeDelta is added to the declared document size.
	FileSizeDelta int
	// Trailing is appended after the declared document.
	Trailing []byte
	// OmitPool leaves out the string pool chunk.
	OmitPool bool
	// Pool is called with the pool spec before it is encoded.
	Pool func(*PoolSpec)

	// NodeHeaderSize replaces the node header size 16 when non-zero.
	// The extra bytes are zero filled.
	NodeHeaderSize uint16
	// AttributeStart and AttributeSize replace 20 when non-zero.
	AttributeStart uint16
	AttributeSize  uint16

	strings     []string
	index       map[string]uint32
	resourceIDs []uint32
	chunks      [][]byte
	line        uint32
	comment     string
}

func New() *Builder {
	return &Builder{index: make(map[string]uint32)}
}

// Intern returns the index of s, adding it to the pool if needed.
func (b *Builder) Intern(s string) uint32 {
	if i, ok := b.index[s]; ok {
		return i
	}
	i := uint32(len(b.strings))
	b.strings = append(b.strings, s)
	b.index[s] = i
	return i
}

// InternDup adds s to the pool even if it is already present.
func (b *Builder) InternDup(s string) uint32 {
	i := uint32(len(b.strings))
	b.strings = append(b.strings, s)
	return i
}

func (b *Builder) ref(s string) uint32 {
	if s == "" {
		return NoIndex
	}
	return b.Intern(s)
}

// ResourceAttribute registers an attribute name backed by the resource
// id. All resource attributes must be registered before anything else
// is interned, because the resource map is indexed by string index.
func (b *Builder) ResourceAttribute(name string, id uint32) *Builder {
	if len(b.strings) != len(b.resourceIDs) {
		panic("axmltest: resource attributes must be registered first")
	}
	b.InternDup(name)
	if _, ok := b.index[name]; !ok {
		b.index[name] = uint32(len(b.strings) - 1)
	}
	b.resourceIDs = append(b.resourceIDs, id)
	return b
}

// Comment attaches s as the comment of the next node chunk.
func (b *Builder) Comment(s string) *Builder {
	b.comment = s
	return b
}

func (b *Builder) node(typ uint16, ext []byte) *Builder {
	b.line++
	hsize := b.NodeHeaderSize
	if hsize == 0 {
		hsize = 16
	}
	comment := NoIndex
	if b.comment != "" {
		comment = b.Intern(b.comment)
		b.comment = ""
	}

	var body []byte
	body = u32(body, b.line)
	body = u32(body, comment)
	for i := 16; i < int(hsize); i++ {
		body = append(body, 0)
	}
	body = append(body, ext...)
	b.chunks = append(b.chunks, Chunk(typ, hsize, body))
	return b
}

func (b *Builder) StartNamespace(prefix, uri string) *Builder {
	var ext []byte
	ext = u32(ext, b.ref(prefix))
	ext = u32(ext, b.ref(uri))
	return b.node(0x0100, ext)
}

func (b *Builder) EndNamespace(prefix, uri string) *Builder {
	var ext []byte
	ext = u32(ext, b.ref(prefix))
	ext = u32(ext, b.ref(uri))
	return b.node(0x0101, ext)
}

func (b *Builder) StartElement(ns, name string, attrs ...Attr) *Builder {
	astart := b.AttributeStart
	if astart == 0 {
		astart = 20
	}
	asize := b.AttributeSize
	if asize == 0 {
		asize = 20
	}

	var ext []byte
	ext = u32(ext, b.ref(ns))
	ext = u32(ext, b.Intern(name))
	ext = u16(ext, astart)
	ext = u16(ext, asize)
	ext = u16(ext, uint16(len(attrs)))
	ext = u16(ext, 0) // id index
	ext = u16(ext, 0) // class index
	ext = u16(ext, 0) // style index
	for len(ext) < int(astart) {
		ext = append(ext, 0)
	}
	for _, a := range attrs {
		var rec []byte
		rec = u32(rec, b.ref(a.NS))
		rec = u32(rec, b.Intern(a.Name))
		raw := NoIndex
		data := a.Data
		if a.HasRaw {
			raw = b.Intern(a.Raw)
			if a.Type == TypeString {
				data = raw
			}
		}
		rec = u32(rec, raw)
		rec = u16(rec, 8)
		rec = append(rec, 0, a.Type)
		rec = u32(rec, data)
		for len(rec) < int(asize) {
			rec = append(rec, 0)
		}
		ext = append(ext, rec[:asize]...)
	}
	return b.node(0x0102, ext)
}

func (b *Builder) EndElement(ns, name string) *Builder {
	var ext []byte
	ext = u32(ext, b.ref(ns))
	ext = u32(ext, b.Intern(name))
	return b.node(0x0103, ext)
}

func (b *Builder) Text(s string) *Builder {
	var ext []byte
	ext = u32(ext, b.Intern(s))
	ext = u16(ext, 8)
	ext = append(ext, 0, TypeNull)
	ext = u32(ext, 0)
	return b.node(0x0104, ext)
}

// Raw appends a chunk verbatim.
func (b *Builder) Raw(chunk []byte) *Builder {
	b.chunks = append(b.chunks, chunk)
	return b
}

// Bytes encodes the document.
func (b *Builder) Bytes() []byte {
	var body []byte
	if !b.OmitPool {
		spec := PoolSpec{Strings: b.strings, UTF8: b.UTF8}
		if b.Pool != nil {
			b.Pool(&spec)
		}
		body = append(body, StringPool(spec)...)
	}
	if len(b.resourceIDs) > 0 {
		var ids []byte
		for _, id := range b.resourceIDs {
			ids = u32(ids, id)
		}
		body = append(body, Chunk(0x0180, 8, ids)...)
	}
	for _, c := range b.chunks {
		body = append(body, c...)
	}

	typ := b.FileType
	if typ == 0 {
		typ = 0x0003
	}
	hsize := b.FileHeaderSize
	if hsize == 0 {
		hsize = 8
	}
	var pad []byte
	for i := 8; i < int(hsize); i++ {
		pad = append(pad, 0)
	}
	out := Chunk(typ, hsize, append(pad, body...))
	size := binary.LittleEndian.Uint32(out[4:])
	binary.LittleEndian.PutUint32(out[4:], uint32(int(size)+b.FileSizeDelta))
	return append(out, b.Trailing...)
}

// Manifest returns a builder holding a minimal, well formed manifest:
//
//	<manifest xmlns:android="..." package="com.example.app" android:versionCode="1">
//	  <application android:label="Example"/>
//	</manifest>
func Manifest() *Builder {
	b := New()
	b.StartNamespace("android", AndroidNS)
	b.StartElement("", "manifest",
		StringAttr("", "package", "com.example.app"),
		IntAttr(AndroidNS, "versionCode", 1),
	)
	b.StartElement("", "application", StringAttr(AndroidNS, "label", "Example"))
	b.EndElement("", "application")
	b.EndElement("", "manifest")
	b.EndNamespace("android", AndroidNS)
	return b
}
