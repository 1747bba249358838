package sax

import "errors"

// ErrHandlerUnspecified is returned when there is no Handler
// registered for that particular event callback. This is not
// a fatal error per se, and can be ignored if the implementation
// chooses to do so.
var ErrHandlerUnspecified = errors.New("handler unspecified")

type SetDocumentLocatorFunc func(ctx Context, loc DocumentLocator) error
type StartDocumentFunc func(ctx Context) error
type EndDocumentFunc func(ctx Context) error
type StartNamespaceFunc func(ctx Context, prefix, uri string) error
type EndNamespaceFunc func(ctx Context, prefix, uri string) error
type StartElementFunc func(ctx Context, elem *Element) error
type EndElementFunc func(ctx Context, uri, name string) error
type CharactersFunc func(ctx Context, content []byte) error
type CommentFunc func(ctx Context, content []byte) error

// SAX2 is the callback based Handler.
type SAX2 struct {
	SetDocumentLocatorHandler SetDocumentLocatorFunc
	StartDocumentHandler      StartDocumentFunc
	EndDocumentHandler        EndDocumentFunc
	StartNamespaceHandler     StartNamespaceFunc
	EndNamespaceHandler       EndNamespaceFunc
	StartElementHandler       StartElementFunc
	EndElementHandler         EndElementFunc
	CharactersHandler         CharactersFunc
	CommentHandler            CommentFunc
}

var _ Handler = (*SAX2)(nil)

// New creates a new instance of SAX2. All callbacks are
// uninitialized.
func New() *SAX2 {
	return &SAX2{}
}

func (s SAX2) SetDocumentLocator(ctx Context, loc DocumentLocator) error {
	if h := s.SetDocumentLocatorHandler; h != nil {
		return h(ctx, loc)
	}
	return ErrHandlerUnspecified
}

func (s SAX2) StartDocument(ctx Context) error {
	if h := s.StartDocumentHandler; h != nil {
		return h(ctx)
	}
	return ErrHandlerUnspecified
}

func (s SAX2) EndDocument(ctx Context) error {
	if h := s.EndDocumentHandler; h != nil {
		return h(ctx)
	}
	return ErrHandlerUnspecified
}

func (s SAX2) StartNamespace(ctx Context, prefix, uri string) error {
	if h := s.StartNamespaceHandler; h != nil {
		return h(ctx, prefix, uri)
	}
	return ErrHandlerUnspecified
}

func (s SAX2) EndNamespace(ctx Context, prefix, uri string) error {
	if h := s.EndNamespaceHandler; h != nil {
		return h(ctx, prefix, uri)
	}
	return ErrHandlerUnspecified
}

func (s SAX2) StartElement(ctx Context, elem *Element) error {
	if h := s.StartElementHandler; h != nil {
		return h(ctx, elem)
	}
	return ErrHandlerUnspecified
}

func (s SAX2) EndElement(ctx Context, uri, name string) error {
	if h := s.EndElementHandler; h != nil {
		return h(ctx, uri, name)
	}
	return ErrHandlerUnspecified
}

func (s SAX2) Characters(ctx Context, content []byte) error {
	if h := s.CharactersHandler; h != nil {
		return h(ctx, content)
	}
	return ErrHandlerUnspecified
}

func (s SAX2) Comment(ctx Context, content []byte) error {
	if h := s.CommentHandler; h != nil {
		return h(ctx, content)
	}
	return ErrHandlerUnspecified
}
