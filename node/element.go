package node

import (
	"errors"
	"strings"

	"github.com/lestrrat-go/axml/internal/orderedmap"
)

var ErrDuplicateAttribute = errors.New("duplicate attribute")

type Element struct {
	treeNode
	name   string
	attrs  *orderedmap.Map[string, *Attribute]
	ns     *Namespace
	nsDefs []*Namespace
	line   uint32
}

var _ Node = (*Element)(nil)

// NewElement creates a new Element with the given name. Please note
// that elements created this way is an orphan node. You normally want to
// create an element using the Document.CreateElement method, which will
// automatically initialize some data, such as setting the owner document
// for the element.
func NewElement(name string) *Element {
	return &Element{
		name:  name,
		attrs: orderedmap.New[string, *Attribute](),
	}
}

func (Element) Type() NodeType {
	return ElementNodeType
}

func (e *Element) LocalName() string {
	return e.name
}

func (e *Element) AddChild(child Node) error {
	switch child.Type() {
	case ElementNodeType, TextNodeType, CommentNodeType:
		return addChild(e, child)
	}
	return ErrInvalidOperation
}

func (e *Element) AddContent(b []byte) error {
	return addContent(e, b)
}

func (e *Element) AddSibling(sibling Node) error {
	return addSibling(e, sibling)
}

func (e *Element) Replace(cur Node) error {
	return replaceNode(e, cur)
}

func (e *Element) createAttribute(name, value string, ns *Namespace) *Attribute {
	var attr *Attribute
	if e.doc != nil {
		attr = e.doc.CreateAttribute(name, value)
	} else {
		attr = newAttribute(name, nil)
		if value != "" {
			_ = attr.AddContent([]byte(value))
		}
	}
	attr.ns = ns
	_ = attr.SetParent(e)
	return attr
}

// SetAttribute sets the attribute with the given name and no
// namespace. If the name of the attribute already exists, it will
// return an error.
func (e *Element) SetAttribute(name, value string) error {
	attr := e.createAttribute(name, value, nil)
	if err := e.attrs.Set(name, attr); err != nil {
		if errors.Is(err, orderedmap.ErrDuplicateEntry) {
			return ErrDuplicateAttribute
		}
		return err
	}
	return nil
}

// PutAttributeNS sets the attribute local in namespace ns (which may be
// nil). An existing attribute with the same namespace URI and local
// name is replaced in place, and the return value is true.
func (e *Element) PutAttributeNS(local, value string, ns *Namespace) (*Attribute, bool) {
	attr := e.createAttribute(local, value, ns)
	return attr, e.attrs.Put(attr.ClarkName(), attr)
}

// Attribute looks up an attribute by namespace URI and local name.
func (e *Element) Attribute(uri, local string) (*Attribute, bool) {
	return e.attrs.Get(ClarkName(uri, local))
}

// Attributes populates the given slice with the attributes
// of the element. If the slice is nil, it will create a new slice
// and return it. If the element has no attributes, it will return
// an empty slice.
func (e *Element) Attributes(dst []*Attribute) []*Attribute {
	if dst == nil {
		dst = make([]*Attribute, 0, e.attrs.Len())
	} else {
		dst = dst[:0]
	}
	for _, attr := range e.attrs.Range() {
		dst = append(dst, attr)
	}
	return dst
}

func (e *Element) AttributeCount() int {
	return e.attrs.Len()
}

func (e *Element) Name() string {
	if e.ns == nil || e.ns.Prefix() == "" {
		return e.name
	}
	return e.ns.Prefix() + ":" + e.name
}

// ClarkName returns the tag, {uri}local.
func (e *Element) ClarkName() string {
	return ClarkName(e.URI(), e.name)
}

func (e *Element) Prefix() string {
	return e.ns.Prefix()
}

func (e *Element) URI() string {
	return e.ns.URI()
}

func (e *Element) Namespace() *Namespace {
	return e.ns
}

// SetNamespace sets the namespace for the element
func (e *Element) SetNamespace(prefix, uri string) {
	if uri == "" {
		e.ns = nil
		return
	}
	e.ns = NewNamespace(prefix, uri)
}

// DeclareNamespace records a namespace declaration made on this
// element.
func (e *Element) DeclareNamespace(prefix, uri string) *Namespace {
	ns := NewNamespace(prefix, uri)
	e.nsDefs = append(e.nsDefs, ns)
	return ns
}

// NamespaceDefs returns the namespaces declared on this element, in
// declaration order.
func (e *Element) NamespaceDefs() []*Namespace {
	return e.nsDefs
}

func (e *Element) Line() uint32 {
	return e.line
}

func (e *Element) SetLine(line uint32) {
	e.line = line
}

// Text returns the character data before the first child that is
// not a Text node.
func (e *Element) Text() string {
	var sb strings.Builder
	for c := e.firstChild; c != nil; c = c.NextSibling() {
		t, ok := c.(*Text)
		if !ok {
			break
		}
		sb.Write(t.content)
	}
	return sb.String()
}

// Tail returns the character data that immediately follows this
// element inside its parent.
func (e *Element) Tail() string {
	var sb strings.Builder
	for c := e.next; c != nil; c = c.NextSibling() {
		t, ok := c.(*Text)
		if !ok {
			break
		}
		sb.Write(t.content)
	}
	return sb.String()
}

// ChildElements returns the element children in document order.
func (e *Element) ChildElements() []*Element {
	var list []*Element
	for c := e.firstChild; c != nil; c = c.NextSibling() {
		if el, ok := c.(*Element); ok {
			list = append(list, el)
		}
	}
	return list
}
