// Package sax defines the event interface of the binary XML walk. The
// parser reports namespace scopes, elements, character data and
// comments in document order, and the tree builder is just one
// implementation of Handler.
package sax

// Context is the opaque value passed as the first argument of every
// callback. The parser passes its own state.
type Context interface{}

// DocumentLocator gives handlers the position of the chunk that
// produced the current event.
type DocumentLocator interface {
	// Offset returns the absolute offset of the current chunk
	Offset() int
	// LineNumber returns the line number recorded in the current chunk
	LineNumber() int
}

// Attribute is a decoded attribute record. Name is the resolved name,
// which may come from the resource map instead of the string pool.
type Attribute struct {
	URI  string
	Name string
	// ResourceID is the resource map entry for the name, or zero
	ResourceID uint32
	// Raw is the raw string value, empty when there is none
	Raw      string
	DataType uint8
	Data     uint32
	// Value is the rendered value
	Value string
}

// Element is a decoded start element chunk.
type Element struct {
	URI        string
	Name       string
	Attributes []Attribute
	IDIndex    uint16
	ClassIndex uint16
	StyleIndex uint16
}

// Handler is the interface for anything that can receive the events
// of a binary XML walk. Returning an error aborts the walk.
type Handler interface {
	SetDocumentLocator(ctx Context, loc DocumentLocator) error
	StartDocument(ctx Context) error
	EndDocument(ctx Context) error
	StartNamespace(ctx Context, prefix, uri string) error
	EndNamespace(ctx Context, prefix, uri string) error
	StartElement(ctx Context, elem *Element) error
	EndElement(ctx Context, uri, name string) error
	Characters(ctx Context, content []byte) error
	Comment(ctx Context, content []byte) error
}
