package node

// Attribute is a namespace qualified attribute. Its value is stored
// as a Text child, the same as elements store their character data.
type Attribute struct {
	treeNode
	name string
	ns   *Namespace

	// the Res_value this attribute was decoded from, if any
	dataType uint8
	data     uint32
	typed    bool
}

var _ Node = (*Attribute)(nil)

func newAttribute(name string, ns *Namespace) *Attribute {
	return &Attribute{
		name: name,
		ns:   ns,
	}
}

func (Attribute) Type() NodeType {
	return AttributeNodeType
}

// Name returns the prefixed name. The prefix is the one recorded on the
// attribute namespace, which is not necessarily in scope.
func (n *Attribute) Name() string {
	if n.ns == nil || n.ns.Prefix() == "" {
		return n.name
	}
	return n.ns.Prefix() + ":" + n.name
}

func (n *Attribute) LocalName() string {
	return n.name
}

// ClarkName returns the attribute key, {uri}local.
func (n *Attribute) ClarkName() string {
	return ClarkName(n.URI(), n.name)
}

func (n *Attribute) AddChild(cur Node) error {
	if cur.Type() != TextNodeType {
		return ErrInvalidOperation
	}
	return addChild(n, cur)
}

func (n *Attribute) AddContent(b []byte) error {
	return addContent(n, b)
}

func (n *Attribute) AddSibling(cur Node) error {
	return addSibling(n, cur)
}

func (n *Attribute) Replace(cur Node) error {
	return replaceNode(n, cur)
}

func (n *Attribute) Value() string {
	content, err := n.Content(nil)
	if err != nil {
		return ""
	}
	return string(content)
}

func (n *Attribute) Namespace() *Namespace {
	return n.ns
}

func (n *Attribute) Prefix() string {
	return n.ns.Prefix()
}

func (n *Attribute) URI() string {
	return n.ns.URI()
}

// SetTypedValue records the binary data type and data word the value
// was rendered from.
func (n *Attribute) SetTypedValue(dataType uint8, data uint32) {
	n.dataType = dataType
	n.data = data
	n.typed = true
}

// TypedValue returns the data type and data word recorded with
// SetTypedValue. The last return value is false if none was recorded.
func (n *Attribute) TypedValue() (uint8, uint32, bool) {
	return n.dataType, n.data, n.typed
}
