package axml

import (
	"bytes"

	"github.com/lestrrat-go/axml/chunk"
	"github.com/lestrrat-go/axml/node"
	"github.com/lestrrat-go/axml/s11n"
	"github.com/lestrrat-go/axml/stringpool"
)

func (ctx *parserCtx) document() *Document {
	doc := &Document{
		tree:        ctx.doc,
		valid:       ctx.valid,
		header:      ctx.header,
		pool:        ctx.pool,
		resourceIDs: ctx.resourceIDs,
		chunks:      ctx.chunks,
		anomalies:   ctx.anomalies,
	}

	ev := Evidence{
		FileType:     ctx.fileType,
		DeclaredSize: ctx.declaredSize,
		BufferSize:   len(ctx.buf),
		Anomalies:    ctx.anomalies,
	}
	if ctx.pool != nil {
		ev.PoolStats = ctx.pool.Stats()
	}
	doc.evidence = ev
	doc.packed = DetectPacker(ev)
	return doc
}

// IsValid reports whether the document was well formed enough for the
// runtime to accept it.
func (d *Document) IsValid() bool {
	return d.valid
}

// IsPacked reports whether the file shows signs of having been
// rewritten by a packer. It is independent of IsValid.
func (d *Document) IsPacked() bool {
	return d.packed
}

// Root returns the root element, or nil if the document is not valid.
func (d *Document) Root() *node.Element {
	if !d.valid || d.tree == nil {
		return nil
	}
	return d.tree.DocumentElement()
}

// Tree returns the node tree, or nil if the document is not valid.
func (d *Document) Tree() *node.Document {
	if !d.valid {
		return nil
	}
	return d.tree
}

// XML serializes the document as indented textual XML. Options are
// applied after the defaults, so they can override the indentation.
func (d *Document) XML(options ...s11n.Option) ([]byte, error) {
	if !d.valid || d.tree == nil {
		return nil, ErrInvalidDocument
	}

	var buf bytes.Buffer
	options = append([]s11n.Option{s11n.WithIndent("  ")}, options...)
	if err := s11n.NewDumper(options...).DumpDoc(&buf, d.tree); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Header returns the file header, or nil if it could not be read.
func (d *Document) Header() *chunk.Header {
	return d.header
}

// StringPool returns the decoded string pool, or nil.
func (d *Document) StringPool() *stringpool.Pool {
	return d.pool
}

func (d *Document) ResourceIDs() []uint32 {
	return d.resourceIDs
}

// Chunks lists the chunk headers in the order they were visited.
func (d *Document) Chunks() []ChunkInfo {
	return d.chunks
}

func (d *Document) Anomalies() []Anomaly {
	return d.anomalies
}

func (d *Document) Evidence() Evidence {
	return d.evidence
}
