// Package axml decodes Android binary XML, the compiled form of
// AndroidManifest.xml and of the XML resources in an APK, into a tree
// that can be written out as textual XML.
//
// Decoding is deliberately tolerant: the Android runtime accepts many
// files that aapt would never write, and packers rely on that to break
// other parsers. Those files still decode, and what was unusual about
// them is recorded as Anomaly values. Files that the runtime would
// reject decode into an invalid Document. Only input that cannot be
// decoded at all is reported as a FatalError.
package axml

import (
	"context"
	"log/slog"

	"github.com/lestrrat-go/axml/sax"
)

const Version = "0.1.0"

func Parse(ctx context.Context, b []byte, options ...ParseOption) (*Document, error) {
	p := NewParser(options...)
	return p.Parse(ctx, b)
}

func NewParser(options ...ParseOption) *Parser {
	p := &Parser{
		maxDepth:      DefaultMaxDepth,
		resourceNames: true,
		comments:      true,
	}
	for _, option := range options {
		switch option.Ident() {
		case identMaxDepth{}:
			p.maxDepth = option.Value().(int)
		case identResourceNames{}:
			p.resourceNames = option.Value().(bool)
		case identComments{}:
			p.comments = option.Value().(bool)
		case identSAXHandler{}:
			p.sax = option.Value().(sax.Handler)
		}
	}
	return p
}

// Parse decodes b. The returned error is non-nil only for a
// FatalError or an error returned by the SAX handler; an invalid
// document is not an error.
func (p *Parser) Parse(ctx context.Context, b []byte) (*Document, error) {
	ctx, span := StartSpan(ctx, "axml.Parse")
	defer span.End()

	pctx := &parserCtx{}
	if err := pctx.init(ctx, p, b); err != nil {
		return nil, err
	}
	defer func() {
		_ = pctx.release()
	}()

	if err := pctx.parseDocument(); err != nil {
		TraceError(ctx, err, "parse failed")
		return nil, err
	}

	doc := pctx.document()
	TraceEvent(ctx, "parsed document",
		slog.Int("size", len(b)),
		slog.Bool("valid", doc.IsValid()),
		slog.Bool("packed", doc.IsPacked()),
		slog.Int("anomalies", len(doc.Anomalies())),
	)
	return doc, nil
}

// SetSAXHandler registers a handler that receives every event in
// addition to the tree builder.
func (p *Parser) SetSAXHandler(s sax.Handler) {
	p.sax = s
}
