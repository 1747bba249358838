package axml

import (
	"strings"

	"github.com/lestrrat-go/axml/internal/debug"
	"github.com/lestrrat-go/axml/internal/stack"
	"github.com/lestrrat-go/axml/internal/stack/nsstack"
	"github.com/lestrrat-go/axml/node"
	"github.com/lestrrat-go/axml/s11n"
	"github.com/lestrrat-go/axml/sax"
)

// openElement is an element whose end element chunk has not been seen
// yet. uri and name are the decoded values before sanitizing, which is
// what the end element chunk refers to.
type openElement struct {
	elem *node.Element
	uri  string
	name string
}

// nsScope is a start namespace chunk whose end has not been seen yet.
// bound is false for declarations that were not added to the tree.
type nsScope struct {
	prefix string
	uri    string
	bound  bool
}

// TreeBuilder is the sax.Handler that assembles the node tree. It only
// works with the parser context of this package.
type TreeBuilder struct {
	doc      *node.Document
	root     *node.Element
	elements stack.Stack[openElement]
	scopes   stack.Stack[nsScope]
	ns       *nsstack.Stack

	// bindings declared since the last start element
	pending         []nsScope
	pendingPrefixes map[string]struct{}
}

var _ sax.Handler = (*TreeBuilder)(nil)

func NewTreeBuilder() *TreeBuilder {
	return &TreeBuilder{}
}

func (t *TreeBuilder) SetDocumentLocator(ctxif sax.Context, loc sax.DocumentLocator) error {
	return nil
}

func (t *TreeBuilder) StartDocument(ctxif sax.Context) error {
	if debug.Enabled {
		debug.Printf("START tree.StartDocument")
	}

	t.doc = node.NewDocument()
	t.root = nil
	t.elements = nil
	t.scopes = nil
	t.ns = nsstack.New()
	t.pending = nil
	t.pendingPrefixes = make(map[string]struct{})
	return nil
}

func (t *TreeBuilder) EndDocument(ctxif sax.Context) error {
	if debug.Enabled {
		debug.Printf("END tree.EndDocument")
	}
	ctx := ctxif.(*parserCtx)

	if n := t.elements.Len(); n > 0 {
		top, _ := t.elements.Peek()
		ctx.invalidate(AnomalyUnclosedElement, "%d elements are not closed, innermost is <%s>", n, top.name)
	}
	if n := t.scopes.Len(); n > 0 {
		top, _ := t.scopes.Peek()
		ctx.invalidate(AnomalyUnclosedNamespace, "%d namespaces are not closed, innermost is %s=%s", n, top.prefix, top.uri)
	}
	if t.root == nil {
		ctx.invalidate(AnomalyMissingRoot, "document has no root element")
	}

	ctx.doc = t.doc
	t.doc = nil
	return nil
}

// StartNamespace opens a namespace scope. The binding is only added
// to the tree when it can be written as a prefixed declaration.
func (t *TreeBuilder) StartNamespace(ctxif sax.Context, prefix, uri string) error {
	ctx := ctxif.(*parserCtx)

	scope := nsScope{prefix: prefix, uri: uri}
	switch {
	case uri == "":
		ctx.anomaly(AnomalyEmptyNamespaceURI, "namespace with prefix %q has an empty URI", prefix)
	case prefix == "" || prefix == "xml" || prefix == "xmlns" || !isNCName(prefix):
		ctx.anomaly(AnomalyInvalidNamespacePrefix, "namespace %q has invalid prefix %q", uri, prefix)
	case uri == s11n.XMLNamespace || uri == s11n.XMLNSNamespace:
		ctx.anomaly(AnomalyReservedNamespace, "reserved namespace %q is bound to %q", uri, prefix)
	case t.ns.Declared(prefix, uri) || t.isPending(prefix):
		ctx.anomaly(AnomalyDuplicateNamespace, "namespace %s=%s is declared twice", prefix, uri)
	default:
		scope.bound = true
		t.ns.Push(prefix, uri)
		t.pending = append(t.pending, scope)
		t.pendingPrefixes[prefix] = struct{}{}
	}
	t.scopes.Push(scope)
	return nil
}

func (t *TreeBuilder) isPending(prefix string) bool {
	_, ok := t.pendingPrefixes[prefix]
	return ok
}

// EndNamespace closes the innermost namespace scope. Scopes do not
// have to nest with elements, only with each other.
func (t *TreeBuilder) EndNamespace(ctxif sax.Context, prefix, uri string) error {
	ctx := ctxif.(*parserCtx)

	scope, ok := t.scopes.Pop()
	if !ok {
		ctx.invalidate(AnomalyUnmatchedEndNamespace, "end of namespace %s=%s without a start", prefix, uri)
		return nil
	}
	if scope.prefix != prefix || scope.uri != uri {
		ctx.invalidate(AnomalyUnmatchedEndNamespace, "end of namespace %s=%s does not match open namespace %s=%s", prefix, uri, scope.prefix, scope.uri)
	}
	if scope.bound {
		_, _ = t.ns.Pop()
		// a scope that ends before any element started was never used.
		// Scopes close in reverse order, so it is the last pending one.
		if n := len(t.pending); n > 0 && t.pending[n-1] == scope {
			t.pending = t.pending[:n-1]
			delete(t.pendingPrefixes, scope.prefix)
		}
	}
	return nil
}

// namespace returns the namespace for uri, or nil for names that are
// written without one. The xmlns namespace cannot be used by elements
// or attributes, so names in it lose their namespace.
func (t *TreeBuilder) namespace(ctx *parserCtx, uri string) *node.Namespace {
	if uri == "" {
		return nil
	}
	if uri == s11n.XMLNSNamespace {
		ctx.anomaly(AnomalyReservedNamespace, "name in the reserved namespace %q", uri)
		return nil
	}
	prefix, ok := t.ns.LookupPrefix(uri)
	if !ok && uri == AndroidNamespace {
		prefix = "android"
	}
	return node.NewNamespace(prefix, uri)
}

func (t *TreeBuilder) StartElement(ctxif sax.Context, elem *sax.Element) error {
	if debug.Enabled {
		debug.Printf("START tree.StartElement %s", elem.Name)
	}
	ctx := ctxif.(*parserCtx)

	if t.elements.Len() >= ctx.maxDepth {
		ctx.invalidate(AnomalyMaxDepth, "element <%s> exceeds the maximum depth %d", elem.Name, ctx.maxDepth)
		return errAbort
	}
	if t.elements.Len() == 0 && t.root != nil {
		ctx.invalidate(AnomalySecondRoot, "second root element <%s>", elem.Name)
		return errAbort
	}

	name := FixName(elem.Name)
	if name != elem.Name {
		ctx.anomaly(AnomalyNameFixed, "element name %q was changed to %q", elem.Name, name)
	}

	e := t.doc.CreateElement(name)
	e.SetLine(uint32(ctx.LineNumber()))
	if ns := t.namespace(ctx, elem.URI); ns != nil {
		e.SetNamespace(ns.Prefix(), ns.URI())
	}
	for _, p := range t.pending {
		e.DeclareNamespace(p.prefix, p.uri)
	}
	t.pending = t.pending[:0]
	clear(t.pendingPrefixes)

	for _, a := range elem.Attributes {
		local := FixName(a.Name)
		if local != a.Name {
			ctx.anomaly(AnomalyNameFixed, "attribute name %q was changed to %q", a.Name, local)
		}
		ns := t.namespace(ctx, a.URI)
		if ns == nil && local == "xmlns" {
			// would be written as a default namespace declaration
			local = "_xmlns"
			ctx.anomaly(AnomalyNameFixed, "attribute name %q was changed to %q", a.Name, local)
		}
		value := FixValue(a.Value)
		if value != a.Value {
			ctx.anomaly(AnomalyValueFixed, "value of attribute %q was changed", local)
		}

		attr, replaced := e.PutAttributeNS(local, value, ns)
		if replaced {
			ctx.anomaly(AnomalyDuplicateAttribute, "attribute %q appears more than once on <%s>", attr.ClarkName(), name)
		}
		attr.SetTypedValue(a.DataType, a.Data)
	}

	if parent, ok := t.elements.Peek(); ok {
		if err := parent.elem.AddChild(e); err != nil {
			return err
		}
	} else {
		if err := t.doc.AddChild(e); err != nil {
			return err
		}
		t.root = e
	}
	t.elements.Push(openElement{elem: e, uri: elem.URI, name: elem.Name})
	return nil
}

func (t *TreeBuilder) EndElement(ctxif sax.Context, uri, name string) error {
	if debug.Enabled {
		debug.Printf("END tree.EndElement %s", name)
	}
	ctx := ctxif.(*parserCtx)

	open, ok := t.elements.Pop()
	if !ok {
		ctx.invalidate(AnomalyUnmatchedEndElement, "end of element <%s> without a start", name)
		return nil
	}
	if open.name != name || open.uri != uri {
		ctx.invalidate(AnomalyUnmatchedEndElement, "end of element <%s> does not match open element <%s>", name, open.name)
	}
	return nil
}

func (t *TreeBuilder) Characters(ctxif sax.Context, content []byte) error {
	ctx := ctxif.(*parserCtx)

	parent, ok := t.elements.Peek()
	if !ok {
		if strings.TrimSpace(string(content)) != "" {
			ctx.invalidate(AnomalyTextOutsideRoot, "character data outside of the root element")
		}
		return nil
	}

	text := FixValue(string(content))
	if text != string(content) {
		ctx.anomaly(AnomalyValueFixed, "character data in <%s> was changed", parent.name)
	}
	if text == "" {
		return nil
	}
	return parent.elem.AddContent([]byte(text))
}

func (t *TreeBuilder) Comment(ctxif sax.Context, content []byte) error {
	c := t.doc.CreateComment([]byte(FixComment(string(content))))
	if parent, ok := t.elements.Peek(); ok {
		return parent.elem.AddChild(c)
	}
	return t.doc.AddChild(c)
}
