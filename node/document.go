package node

// Document represents the root document node
type Document struct {
	treeNode
	version  string
	encoding string
}

func NewDocument() *Document {
	doc := &Document{
		version:  "1.0",
		encoding: "utf-8",
	}
	doc.treeNode = treeNode{
		doc: doc,
	}
	return doc
}

func (d *Document) CreateElement(name string) *Element {
	e := NewElement(name)
	_ = e.SetOwnerDocument(d)
	return e
}

func (d *Document) CreateComment(content []byte) *Comment {
	c := NewComment(content)
	_ = c.SetOwnerDocument(d)
	return c
}

func (d *Document) CreateText(content []byte) *Text {
	t := NewText(content)
	_ = t.SetOwnerDocument(d)
	return t
}

func (d *Document) CreateAttribute(name, value string) *Attribute {
	attr := newAttribute(name, nil)
	_ = attr.SetOwnerDocument(d)
	if value != "" {
		_ = attr.AddChild(d.CreateText([]byte(value)))
	}
	return attr
}

func (d *Document) Encoding() string {
	return d.encoding
}

func (d *Document) Version() string {
	return d.version
}

func (d *Document) Type() NodeType {
	return DocumentNodeType
}

func (d *Document) LocalName() string {
	return "#document"
}

// AddChild adds an element or comment. Character data is never a
// child of the document.
func (d *Document) AddChild(cur Node) error {
	switch cur.Type() {
	case ElementNodeType, CommentNodeType:
		return addChild(d, cur)
	}
	return ErrInvalidOperation
}

func (d *Document) AddContent(b []byte) error {
	return ErrInvalidOperation
}

func (d *Document) AddSibling(n Node) error {
	return ErrInvalidOperation
}

func (d *Document) Replace(n Node) error {
	return ErrInvalidOperation
}

// DocumentElement returns the root element, or nil.
func (d *Document) DocumentElement() *Element {
	for n := d.firstChild; n != nil; n = n.NextSibling() {
		if e, ok := n.(*Element); ok {
			return e
		}
	}
	return nil
}

// SetDocumentElement sets root as the document element, replacing the
// current one if there is one.
func (d *Document) SetDocumentElement(root *Element) error {
	if root == nil {
		return nil
	}

	if old := d.DocumentElement(); old != nil {
		return old.Replace(root)
	}
	return d.AddChild(root)
}
