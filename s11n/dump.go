// Package s11n serializes node trees as textual XML.
package s11n

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/lestrrat-go/axml/internal/pool"
	"github.com/lestrrat-go/axml/internal/stack/nsstack"
	"github.com/lestrrat-go/axml/node"
)

const (
	// XMLNamespace is bound to the prefix "xml" without a declaration.
	XMLNamespace = "http://www.w3.org/XML/1998/namespace"
	// XMLNSNamespace is bound to "xmlns". It cannot be declared, and
	// elements and attributes cannot be in it.
	XMLNSNamespace = "http://www.w3.org/2000/xmlns/"
)

// reserved reports whether a declaration of prefix to uri is
// forbidden by Namespaces in XML.
func reserved(prefix, uri string) bool {
	return prefix == "" || prefix == "xml" || prefix == "xmlns" ||
		uri == "" || uri == XMLNamespace || uri == XMLNSNamespace
}

type Dumper struct {
	indent      string
	declaration bool
}

func NewDumper(options ...Option) *Dumper {
	d := &Dumper{declaration: true}
	for _, option := range options {
		switch option.Ident() {
		case identIndent{}:
			d.indent = option.Value().(string)
		case identXMLDeclaration{}:
			d.declaration = option.Value().(bool)
		}
	}
	return d
}

// dumpState is the per call state. Namespace bindings are scoped to
// the element being written.
type dumpState struct {
	out       *bufio.Writer
	ns        *nsstack.Stack
	generated int
}

// DumpDoc writes the document: the XML declaration followed by each
// top level node on its own line.
func (d *Dumper) DumpDoc(out io.Writer, doc *node.Document) error {
	st := &dumpState{out: bufio.NewWriter(out), ns: nsstack.New()}

	if d.declaration {
		d.dumpDocContent(st, doc)
	}

	for e := doc.FirstChild(); e != nil; e = e.NextSibling() {
		if err := d.dumpNode(st, e, 0); err != nil {
			return err
		}
		_, _ = st.out.WriteString("\n")
	}
	return st.out.Flush()
}

func (d *Dumper) dumpDocContent(st *dumpState, doc *node.Document) {
	version := doc.Version()
	if version == "" {
		version = "1.0"
	}
	_, _ = st.out.WriteString(`<?xml version="` + version + `"`)
	if encoding := doc.Encoding(); encoding != "" {
		_, _ = st.out.WriteString(` encoding="` + encoding + `"`)
	}
	_, _ = st.out.WriteString("?>\n")
}

// DumpNode writes n and its descendants. Namespaces used but not
// declared inside n are declared on n.
func (d *Dumper) DumpNode(out io.Writer, n node.Node) error {
	st := &dumpState{out: bufio.NewWriter(out), ns: nsstack.New()}
	if err := d.dumpNode(st, n, 0); err != nil {
		return err
	}
	return st.out.Flush()
}

func (d *Dumper) dumpNode(st *dumpState, n node.Node, depth int) error {
	switch n.Type() {
	case node.DocumentNodeType:
		return fmt.Errorf("s11n: use DumpDoc to serialize a document")
	case node.CommentNodeType:
		buf := pool.ByteSlice().Get()
		defer pool.ByteSlice().Put(buf)
		content, err := n.Content(buf)
		if err != nil {
			return err
		}
		_, _ = st.out.WriteString("<!--")
		_, _ = st.out.Write(content)
		_, _ = st.out.WriteString("-->")
		return nil
	case node.TextNodeType:
		buf := pool.ByteSlice().Get()
		defer pool.ByteSlice().Put(buf)
		content, err := n.Content(buf)
		if err != nil {
			return err
		}
		return EscapeText(st.out, content, false)
	case node.ElementNodeType:
		return d.dumpElement(st, n.(*node.Element), depth)
	}
	return fmt.Errorf("s11n: cannot serialize node of type %s", n.Type())
}

// declare makes sure the URI of ns is bound to a prefix in the
// current scope, adding a declaration to decls if it is not. The
// prefix recorded on ns is reused when it is free. The empty string
// is returned for the xmlns namespace, which has no usable prefix.
func (st *dumpState) declare(ns *node.Namespace, decls *[]*node.Namespace) string {
	uri := ns.URI()
	switch uri {
	case XMLNamespace:
		return "xml"
	case XMLNSNamespace:
		return ""
	}
	if prefix, ok := st.ns.LookupPrefix(uri); ok {
		return prefix
	}
	prefix := ns.Prefix()
	if _, bound := st.ns.Lookup(prefix); !reserved(prefix, uri) && !bound {
		st.ns.Push(prefix, uri)
		*decls = append(*decls, node.NewNamespace(prefix, uri))
		return prefix
	}
	for {
		prefix = fmt.Sprintf("ns%d", st.generated)
		st.generated++
		if _, bound := st.ns.Lookup(prefix); !bound {
			break
		}
	}
	st.ns.Push(prefix, uri)
	*decls = append(*decls, node.NewNamespace(prefix, uri))
	return prefix
}

func (d *Dumper) dumpElement(st *dumpState, e *node.Element, depth int) error {
	mark := st.ns.Len()
	defer func() {
		for st.ns.Len() > mark {
			st.ns.Pop()
		}
	}()

	var decls []*node.Namespace
	seen := make(map[string]struct{})
	for _, ns := range e.NamespaceDefs() {
		prefix := ns.Prefix()
		if reserved(prefix, ns.URI()) {
			continue
		}
		if _, ok := seen[prefix]; ok {
			continue
		}
		seen[prefix] = struct{}{}
		st.ns.Push(prefix, ns.URI())
		decls = append(decls, ns)
	}

	name := e.LocalName()
	if e.URI() != "" {
		name = qualify(st.declare(e.Namespace(), &decls), name)
	}

	attrs := e.Attributes(nil)
	attrNames := make([]string, len(attrs))
	for i, attr := range attrs {
		attrNames[i] = attr.LocalName()
		if attr.URI() != "" {
			attrNames[i] = qualify(st.declare(attr.Namespace(), &decls), attrNames[i])
		}
		if attrNames[i] == "xmlns" {
			attrNames[i] = "_xmlns"
		}
	}

	_, _ = st.out.WriteString("<")
	_, _ = st.out.WriteString(name)
	for _, ns := range decls {
		_, _ = st.out.WriteString(" xmlns:")
		_, _ = st.out.WriteString(ns.Prefix())
		_, _ = st.out.WriteString(`="`)
		if err := EscapeAttrValue(st.out, []byte(ns.URI())); err != nil {
			return err
		}
		_, _ = st.out.WriteString(`"`)
	}
	for i, attr := range attrs {
		_, _ = st.out.WriteString(" ")
		_, _ = st.out.WriteString(attrNames[i])
		_, _ = st.out.WriteString(`="`)
		if err := EscapeAttrValue(st.out, []byte(attr.Value())); err != nil {
			return err
		}
		_, _ = st.out.WriteString(`"`)
	}

	if e.FirstChild() == nil {
		_, _ = st.out.WriteString("/>")
		return nil
	}
	_, _ = st.out.WriteString(">")

	indent := d.indent != "" && !hasText(e)
	for child := e.FirstChild(); child != nil; child = child.NextSibling() {
		if indent {
			d.newline(st, depth+1)
		}
		if err := d.dumpNode(st, child, depth+1); err != nil {
			return err
		}
	}
	if indent {
		d.newline(st, depth)
	}

	_, _ = st.out.WriteString("</")
	_, _ = st.out.WriteString(name)
	_, _ = st.out.WriteString(">")
	return nil
}

func qualify(prefix, local string) string {
	if prefix == "" {
		return local
	}
	return prefix + ":" + local
}

func (d *Dumper) newline(st *dumpState, depth int) {
	_, _ = st.out.WriteString("\n")
	_, _ = st.out.WriteString(strings.Repeat(d.indent, depth))
}

func hasText(e *node.Element) bool {
	for c := e.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Type() == node.TextNodeType {
			return true
		}
	}
	return false
}
