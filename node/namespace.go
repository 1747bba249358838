package node

// Namespace is a prefix to URI binding. An empty prefix means that
// no usable prefix is known for the URI.
type Namespace struct {
	prefix string
	uri    string
}

func NewNamespace(prefix, uri string) *Namespace {
	return &Namespace{
		prefix: prefix,
		uri:    uri,
	}
}

func (n *Namespace) Prefix() string {
	if n == nil {
		return ""
	}
	return n.prefix
}

func (n *Namespace) URI() string {
	if n == nil {
		return ""
	}
	return n.uri
}

func (*Namespace) Type() NodeType {
	return NamespaceNodeType
}

// ClarkName formats local in Clark notation, {uri}local, or returns
// local unchanged when uri is empty.
func ClarkName(uri, local string) string {
	if uri == "" {
		return local
	}
	return "{" + uri + "}" + local
}
