// Package node holds the document tree produced by decoding a binary XML
// file: a document with one element root, where elements carry
// namespace qualified attributes and children made of elements, text
// and comments.
package node

import (
	"errors"
)

// NodeType represents the type of a node in the XML tree
type NodeType int

const (
	ElementNodeType NodeType = iota + 1
	AttributeNodeType
	TextNodeType
	CommentNodeType
	DocumentNodeType
	NamespaceNodeType
)

func (t NodeType) String() string {
	switch t {
	case ElementNodeType:
		return "Element"
	case AttributeNodeType:
		return "Attribute"
	case TextNodeType:
		return "Text"
	case CommentNodeType:
		return "Comment"
	case DocumentNodeType:
		return "Document"
	case NamespaceNodeType:
		return "Namespace"
	}
	return "Unknown"
}

var ErrInvalidOperation = errors.New("invalid operation")

// Node interface defines the common functionality for all node types
type Node interface {
	// returns the treeNode (the part of the Node that handles the tree structure)
	getTreeNode() *treeNode

	AddChild(Node) error
	AddContent([]byte) error
	AddSibling(Node) error

	Type() NodeType
	// Content appends the content of the node to the provided byte slice and returns the result.
	// If dst is nil, a new slice is allocated.
	Content(dst []byte) ([]byte, error)

	FirstChild() Node
	LastChild() Node

	// LocalName returns the local name of the node.
	LocalName() string

	NextSibling() Node
	OwnerDocument() *Document
	Parent() Node
	PrevSibling() Node

	Replace(Node) error

	SetOwnerDocument(doc *Document) error
	SetParent(Node) error
}
