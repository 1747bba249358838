package axml

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lestrrat-go/axml/chunk"
	"github.com/lestrrat-go/axml/internal/bytecursor"
	"github.com/lestrrat-go/axml/internal/debug"
	"github.com/lestrrat-go/axml/node"
	"github.com/lestrrat-go/axml/sax"
	"github.com/lestrrat-go/axml/stringpool"
	"github.com/lestrrat-go/pdebug/v3"
	pkgerrors "github.com/pkg/errors"
)

const attributeSize = 20

// size of the start element extension up to the attribute records
const elementExtSize = 20

type parserCtx struct {
	tlog          *slog.Logger
	buf           []byte
	cur           *bytecursor.Cursor
	handlers      []sax.Handler
	maxDepth      int
	resourceNames bool
	comments      bool

	header       *chunk.Header
	fileType     chunk.Type
	declaredSize int
	pool         *stringpool.Pool
	resourceIDs  []uint32
	chunks       []ChunkInfo
	anomalies    []Anomaly
	valid        bool
	doc          *node.Document

	// position of the chunk being processed
	offset int
	line   uint32
}

func (ctx *parserCtx) init(cctx context.Context, p *Parser, b []byte) error {
	ctx.tlog = getTraceLogFromContext(cctx)
	ctx.buf = b
	ctx.valid = true
	ctx.fileType = chunk.TypeNull
	ctx.declaredSize = len(b)
	ctx.maxDepth = p.maxDepth
	ctx.resourceNames = p.resourceNames
	ctx.comments = p.comments
	ctx.handlers = []sax.Handler{NewTreeBuilder()}
	if p.sax != nil {
		ctx.handlers = append(ctx.handlers, p.sax)
	}
	return nil
}

func (ctx *parserCtx) release() error {
	ctx.handlers = nil
	ctx.cur = nil
	return nil
}

// Offset returns the absolute offset of the chunk being processed.
func (ctx *parserCtx) Offset() int {
	return ctx.offset
}

// LineNumber returns the line recorded in the node chunk being
// processed, or zero outside of node chunks.
func (ctx *parserCtx) LineNumber() int {
	return int(ctx.line)
}

func (ctx *parserCtx) record(kind AnomalyKind, invalid bool, format string, args ...any) {
	a := Anomaly{
		Kind:    kind,
		Offset:  ctx.offset,
		Line:    ctx.line,
		Detail:  fmt.Sprintf(format, args...),
		Invalid: invalid,
	}
	ctx.anomalies = append(ctx.anomalies, a)
	ctx.tlog.Warn(a.Detail,
		slog.String("anomaly", kind.String()),
		slog.Int("offset", a.Offset),
		slog.Int("line", int(a.Line)),
		slog.Bool("invalid", invalid),
	)
}

// anomaly records something the runtime accepts but aapt never
// writes.
func (ctx *parserCtx) anomaly(kind AnomalyKind, format string, args ...any) {
	ctx.record(kind, false, format, args...)
}

// invalidate records kind and marks the document invalid. The walk
// continues unless the caller stops it.
func (ctx *parserCtx) invalidate(kind AnomalyKind, format string, args ...any) {
	ctx.valid = false
	ctx.record(kind, true, format, args...)
}

func (ctx *parserCtx) fatal(offset int, err error) error {
	ctx.valid = false
	ctx.tlog.Error("fatal decoding error",
		slog.Int("offset", offset),
		slog.String("error", err.Error()),
	)
	return &FatalError{Offset: offset, Err: err}
}

// fire delivers an event to every handler, in registration order.
// Handlers that do not implement the event are skipped.
func (ctx *parserCtx) fire(fn func(sax.Handler) error) error {
	for _, h := range ctx.handlers {
		if err := fn(h); err != nil && !errors.Is(err, sax.ErrHandlerUnspecified) {
			return err
		}
	}
	return nil
}

func (ctx *parserCtx) lookup(idx uint32) (string, error) {
	s, err := ctx.pool.Lookup(idx)
	if err != nil {
		return "", ctx.fatal(ctx.offset, err)
	}
	return s, nil
}

func (ctx *parserCtx) recordChunk(h *chunk.Header) {
	ctx.chunks = append(ctx.chunks, ChunkInfo{
		Offset:     h.Start,
		Type:       h.Type,
		HeaderSize: h.HeaderSize,
		Size:       h.Size,
	})
	if debug.Enabled {
		debug.Printf("%s", h)
	}
}

func (ctx *parserCtx) parseDocument() error {
	if pdebug.Enabled {
		g := pdebug.FuncMarker()
		defer g.End()
	}

	if err := ctx.fire(func(sh sax.Handler) error { return sh.SetDocumentLocator(ctx, ctx) }); err != nil {
		return err
	}
	if err := ctx.fire(func(sh sax.Handler) error { return sh.StartDocument(ctx) }); err != nil {
		return err
	}

	if ok := ctx.parseFileHeader(); ok {
		ok, err := ctx.parseStringPool()
		if err != nil {
			return err
		}
		if ok {
			if err := ctx.parseChunks(); err != nil {
				if !errors.Is(err, errAbort) {
					return err
				}
			}
		}
	}

	ctx.offset = len(ctx.buf)
	ctx.line = 0
	return ctx.fire(func(sh sax.Handler) error { return sh.EndDocument(ctx) })
}

// parseFileHeader checks the document chunk header, and sets up the
// cursor over the declared document.
func (ctx *parserCtx) parseFileHeader() bool {
	if len(ctx.buf) < chunk.HeaderSize {
		ctx.invalidate(AnomalyFileHeader, "file is too small (%d bytes)", len(ctx.buf))
		return false
	}

	// the evidence keeps what the header declares even when it is
	// rejected below
	raw := bytecursor.New(ctx.buf)
	typ, _ := raw.Uint16()
	_, _ = raw.Uint16()
	size, _ := raw.Uint32()
	ctx.fileType = chunk.Type(typ)
	ctx.declaredSize = int(size)

	h, err := chunk.ParseHeader(bytecursor.New(ctx.buf))
	if err != nil {
		ctx.invalidate(AnomalyFileHeader, "invalid file header: %s", err)
		return false
	}
	ctx.header = h
	ctx.recordChunk(h)

	if h.HeaderSize != chunk.XMLHeaderSize {
		ctx.invalidate(AnomalyFileHeader, "file header size is %d, expected %d", h.HeaderSize, chunk.XMLHeaderSize)
		return false
	}
	if h.Type != chunk.TypeXML {
		ctx.anomaly(AnomalyFileType, "file type is 0x%04x, expected 0x%04x", uint16(h.Type), uint16(chunk.TypeXML))
	}
	if n := len(ctx.buf) - h.End(); n > 0 {
		ctx.anomaly(AnomalyAppendedData, "%d bytes appended after the declared end of file", n)
	}

	ctx.cur = bytecursor.New(ctx.buf[:h.End()])
	if err := ctx.cur.Seek(h.BodyStart()); err != nil {
		ctx.invalidate(AnomalyFileHeader, "invalid file header: %s", err)
		return false
	}
	return true
}

// parseStringPool reads the string pool, which must directly follow
// the file header. A pool that is missing or has the wrong header
// makes the document invalid, while a pool whose content cannot be
// decoded is fatal.
func (ctx *parserCtx) parseStringPool() (bool, error) {
	ctx.offset = ctx.cur.Pos()
	h, err := chunk.ParseHeader(ctx.cur)
	if err != nil {
		ctx.invalidate(AnomalyStringPool, "cannot read string pool header: %s", err)
		return false, nil
	}
	ctx.recordChunk(h)

	if h.Type != chunk.TypeStringPool {
		ctx.invalidate(AnomalyStringPool, "expected string pool, got chunk type 0x%04x", uint16(h.Type))
		return false, nil
	}
	if h.HeaderSize != chunk.StringPoolHeaderSize {
		ctx.invalidate(AnomalyStringPool, "string pool header size is %d, expected %d", h.HeaderSize, chunk.StringPoolHeaderSize)
		return false, nil
	}

	pool, err := stringpool.Parse(ctx.cur, h)
	if err != nil {
		return false, ctx.fatal(h.Start, err)
	}
	ctx.pool = pool
	return true, ctx.cur.Seek(h.End())
}

func (ctx *parserCtx) parseChunks() error {
	if pdebug.Enabled {
		g := pdebug.FuncMarker()
		defer g.End()
	}

	for !ctx.cur.Done() {
		ctx.offset = ctx.cur.Pos()
		ctx.line = 0

		h, err := chunk.ParseHeader(ctx.cur)
		if err != nil {
			return ctx.fatal(ctx.offset, err)
		}
		ctx.recordChunk(h)
		if debug.Enabled {
			if b, err := ctx.cur.Slice(h.Start, h.End()); err == nil {
				debug.Chunk(h.Start, b)
			}
		}

		switch {
		case h.Type == chunk.TypeXMLResourceMap:
			if err := ctx.parseResourceMap(h); err != nil {
				return err
			}
		case h.Type >= chunk.TypeXMLStartNamespace && h.Type <= chunk.TypeXMLCDATA:
			if err := ctx.parseNode(h); err != nil {
				return err
			}
		default:
			ctx.anomaly(AnomalyUnknownChunk, "skipping chunk of unknown type 0x%04x (%d bytes)", uint16(h.Type), h.Size)
		}

		if err := ctx.cur.Seek(h.End()); err != nil {
			return ctx.fatal(h.Start, err)
		}
	}
	return nil
}

func (ctx *parserCtx) parseResourceMap(h *chunk.Header) error {
	body := h.End() - h.BodyStart()
	if h.Size < chunk.HeaderSize || h.Size%4 != 0 || body%4 != 0 {
		ctx.invalidate(AnomalyResourceMap, "resource map size %d is not a multiple of 4", h.Size)
		return errAbort
	}

	if err := ctx.cur.Seek(h.BodyStart()); err != nil {
		return ctx.fatal(h.Start, err)
	}
	ids := make([]uint32, 0, body/4)
	for range body / 4 {
		id, err := ctx.cur.Uint32()
		if err != nil {
			return ctx.fatal(h.Start, err)
		}
		ids = append(ids, id)
	}
	ctx.resourceIDs = ids
	return nil
}

// parseNode decodes one of the node chunks (namespace scopes,
// elements, character data) and fires the matching event.
func (ctx *parserCtx) parseNode(h *chunk.Header) error {
	if h.HeaderSize < chunk.XMLNodeHeaderSize {
		return ctx.fatal(h.Start, pkgerrors.Wrapf(ErrNodeTruncated, "node header size %d", h.HeaderSize))
	}
	if h.HeaderSize != chunk.XMLNodeHeaderSize {
		ctx.anomaly(AnomalyNodeHeaderSize, "node header size is %d, expected %d", h.HeaderSize, chunk.XMLNodeHeaderSize)
	}

	if err := ctx.cur.Seek(h.Start + chunk.HeaderSize); err != nil {
		return ctx.fatal(h.Start, err)
	}
	line, err := ctx.cur.Uint32()
	if err != nil {
		return ctx.fatal(h.Start, err)
	}
	commentIdx, err := ctx.cur.Uint32()
	if err != nil {
		return ctx.fatal(h.Start, err)
	}
	ctx.line = line

	body, err := ctx.cur.Slice(h.BodyStart(), h.End())
	if err != nil {
		return ctx.fatal(h.Start, err)
	}
	ext := bytecursor.New(body)

	switch h.Type {
	case chunk.TypeXMLStartNamespace, chunk.TypeXMLEndNamespace:
		prefix, uri, err := ctx.parseNamespaceExt(ext)
		if err != nil {
			return err
		}
		if h.Type == chunk.TypeXMLStartNamespace {
			return ctx.fire(func(sh sax.Handler) error { return sh.StartNamespace(ctx, prefix, uri) })
		}
		return ctx.fire(func(sh sax.Handler) error { return sh.EndNamespace(ctx, prefix, uri) })
	case chunk.TypeXMLStartElement:
		elem, err := ctx.parseStartElementExt(ext)
		if err != nil {
			return err
		}
		if ctx.comments && commentIdx != stringpool.NoIndex {
			comment, err := ctx.lookup(commentIdx)
			if err != nil {
				return err
			}
			if err := ctx.fire(func(sh sax.Handler) error { return sh.Comment(ctx, []byte(comment)) }); err != nil {
				return err
			}
		}
		return ctx.fire(func(sh sax.Handler) error { return sh.StartElement(ctx, elem) })
	case chunk.TypeXMLEndElement:
		uri, name, err := ctx.parseNamespaceExt(ext)
		if err != nil {
			return err
		}
		return ctx.fire(func(sh sax.Handler) error { return sh.EndElement(ctx, uri, name) })
	case chunk.TypeXMLCDATA:
		idx, err := ext.Uint32()
		if err != nil {
			return ctx.fatal(h.Start, pkgerrors.Wrap(ErrNodeTruncated, "character data"))
		}
		text, err := ctx.lookup(idx)
		if err != nil {
			return err
		}
		return ctx.fire(func(sh sax.Handler) error { return sh.Characters(ctx, []byte(text)) })
	}
	return nil
}

// parseNamespaceExt reads the two string references shared by the
// namespace and end element extensions.
func (ctx *parserCtx) parseNamespaceExt(ext *bytecursor.Cursor) (string, string, error) {
	first, err := ext.Uint32()
	if err != nil {
		return "", "", ctx.fatal(ctx.offset, pkgerrors.Wrap(ErrNodeTruncated, "node extension"))
	}
	second, err := ext.Uint32()
	if err != nil {
		return "", "", ctx.fatal(ctx.offset, pkgerrors.Wrap(ErrNodeTruncated, "node extension"))
	}

	s1, err := ctx.lookup(first)
	if err != nil {
		return "", "", err
	}
	s2, err := ctx.lookup(second)
	if err != nil {
		return "", "", err
	}
	return s1, s2, nil
}

func (ctx *parserCtx) parseStartElementExt(ext *bytecursor.Cursor) (*sax.Element, error) {
	if ext.Len() < elementExtSize {
		return nil, ctx.fatal(ctx.offset, pkgerrors.Wrapf(ErrNodeTruncated, "start element extension is %d bytes", ext.Len()))
	}

	// the length was checked above
	nsIdx, _ := ext.Uint32()
	nameIdx, _ := ext.Uint32()
	attrStart, _ := ext.Uint16()
	attrSize, _ := ext.Uint16()
	attrCount, _ := ext.Uint16()
	idIndex, _ := ext.Uint16()
	classIndex, _ := ext.Uint16()
	styleIndex, _ := ext.Uint16()

	uri, err := ctx.lookup(nsIdx)
	if err != nil {
		return nil, err
	}
	name, err := ctx.lookup(nameIdx)
	if err != nil {
		return nil, err
	}

	elem := &sax.Element{
		URI:        uri,
		Name:       name,
		IDIndex:    idIndex,
		ClassIndex: classIndex,
		StyleIndex: styleIndex,
	}
	if attrCount == 0 {
		return elem, nil
	}

	if attrSize < attributeSize {
		return nil, ctx.fatal(ctx.offset, pkgerrors.Wrapf(ErrAttributeSize, "attribute size %d", attrSize))
	}
	if attrSize != attributeSize {
		ctx.anomaly(AnomalyAttributeSize, "attribute size is %d, expected %d", attrSize, attributeSize)
	}
	if end := int(attrStart) + int(attrCount)*int(attrSize); end > ext.Len() {
		return nil, ctx.fatal(ctx.offset, pkgerrors.Wrapf(ErrNodeTruncated, "%d attributes of %d bytes at %d exceed the %d byte extension", attrCount, attrSize, attrStart, ext.Len()))
	}

	elem.Attributes = make([]sax.Attribute, 0, attrCount)
	for i := range int(attrCount) {
		if err := ext.Seek(int(attrStart) + i*int(attrSize)); err != nil {
			return nil, ctx.fatal(ctx.offset, err)
		}
		attr, err := ctx.parseAttribute(ext, name)
		if err != nil {
			return nil, err
		}
		elem.Attributes = append(elem.Attributes, attr)
	}
	return elem, nil
}

// parseAttribute reads one attribute record. The bounds of the record
// have already been checked.
func (ctx *parserCtx) parseAttribute(ext *bytecursor.Cursor, elemName string) (sax.Attribute, error) {
	nsIdx, _ := ext.Uint32()
	nameIdx, _ := ext.Uint32()
	rawIdx, _ := ext.Uint32()
	_, _ = ext.Uint16() // Res_value.size
	_, _ = ext.Uint8()  // Res_value.res0
	dataType, _ := ext.Uint8()
	data, _ := ext.Uint32()

	uri, err := ctx.lookup(nsIdx)
	if err != nil {
		return sax.Attribute{}, err
	}
	poolName, err := ctx.lookup(nameIdx)
	if err != nil {
		return sax.Attribute{}, err
	}
	raw, err := ctx.lookup(rawIdx)
	if err != nil {
		return sax.Attribute{}, err
	}

	attr := sax.Attribute{
		URI:      uri,
		Name:     poolName,
		Raw:      raw,
		DataType: dataType,
		Data:     data,
	}
	if ctx.resourceNames {
		ctx.resolveAttributeName(&attr, nameIdx, elemName)
	}

	switch DataType(dataType) {
	case TypeString:
		if rawIdx != stringpool.NoIndex {
			attr.Value = raw
			break
		}
		s, err := ctx.lookup(data)
		if err != nil {
			return sax.Attribute{}, err
		}
		attr.Value = s
	default:
		attr.Value = FormatValue(DataType(dataType), data)
	}
	return attr, nil
}

// resolveAttributeName applies the resource map to the attribute name.
// The runtime identifies attributes by resource id, so the name in the
// string pool is only authoritative when there is no id for it. The
// "package" and "platformBuildVersion*" attributes of the manifest
// element are always looked up by name.
func (ctx *parserCtx) resolveAttributeName(attr *sax.Attribute, nameIdx uint32, elemName string) {
	if uint64(nameIdx) >= uint64(len(ctx.resourceIDs)) {
		return
	}
	id := ctx.resourceIDs[nameIdx]
	attr.ResourceID = id

	poolName := attr.Name
	if elemName == "manifest" && (poolName == "package" || strings.HasPrefix(poolName, "platformBuildVersion")) {
		return
	}

	sysName, ok := SystemAttributeName(id)
	if !ok {
		if poolName == "" && isSystemResource(id) {
			attr.Name = fmt.Sprintf("UNKNOWN_SYSTEM_ATTRIBUTE_%08x", id)
			if attr.URI == "" {
				attr.URI = AndroidNamespace
			}
			ctx.anomaly(AnomalyUnknownSystemAttribute, "attribute has no name and unknown resource id 0x%08x", id)
		}
		return
	}

	switch {
	case poolName == "":
		ctx.anomaly(AnomalyResourceOnlyName, "attribute %q is only named by resource id 0x%08x", sysName, id)
	case poolName != sysName:
		ctx.anomaly(AnomalyMaskedAttributeName, "attribute name %q masks %q (resource id 0x%08x)", poolName, sysName, id)
	}
	attr.Name = sysName
	if attr.URI == "" {
		attr.URI = AndroidNamespace
	}
}
