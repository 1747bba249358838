package node

import (
	"errors"
)

// treeNode is the part of a Node that handles the tree structure.
type treeNode struct {
	firstChild Node
	lastChild  Node
	parent     Node
	next       Node
	prev       Node
	doc        *Document
}

func (n *treeNode) getTreeNode() *treeNode {
	return n
}

func (n *treeNode) OwnerDocument() *Document {
	return n.doc
}

func (n *treeNode) FirstChild() Node {
	return n.firstChild
}

func (n *treeNode) LastChild() Node {
	return n.lastChild
}

func (n *treeNode) Parent() Node {
	return n.parent
}

func (n *treeNode) NextSibling() Node {
	return n.next
}

func (n *treeNode) PrevSibling() Node {
	return n.prev
}

func (n *treeNode) Content(dst []byte) ([]byte, error) {
	result := dst
	for e := n.firstChild; e != nil; e = e.NextSibling() {
		var err error
		result, err = e.Content(result)
		if err != nil {
			return result, err
		}
	}
	return result, nil
}

func (n *treeNode) SetOwnerDocument(doc *Document) error {
	if n == nil {
		return errors.New("cannot set owner document to nil node")
	}
	if doc == nil {
		return errors.New("cannot set nil document")
	}

	n.doc = doc
	return nil
}

func (n *treeNode) SetParent(p Node) error {
	if n == nil {
		return errors.New("cannot set parent to nil node")
	}
	if p == nil {
		return errors.New("cannot set nil parent")
	}

	n.parent = p
	return nil
}

// addSibling appends sibling after the last sibling of n
func addSibling(n, sibling Node) error {
	if n == nil {
		return errors.New("cannot add sibling to nil node")
	}
	if sibling == nil {
		return errors.New("cannot add nil sibling")
	}

	l := n
	lt := n.getTreeNode()
	for lt.next != nil {
		l = lt.next
		lt = l.getTreeNode()
	}

	st := sibling.getTreeNode()
	lt.next = sibling
	st.prev = l
	if lt.parent != nil {
		st.parent = lt.parent
		lt.parent.getTreeNode().lastChild = sibling
	}
	return nil
}

func addChild(parent, child Node) error {
	if child == nil {
		return errors.New("cannot add nil child")
	}
	pt := parent.getTreeNode()
	ct := child.getTreeNode()

	l := pt.lastChild
	if l == nil {
		pt.firstChild = child
		pt.lastChild = child
		ct.parent = parent
		return nil
	}

	// addSibling takes care of the parent and lastChild pointers
	return addSibling(l, child)
}

// addContent appends b as text, merging it into a trailing Text child
// so that runs of character data stay in a single node.
func addContent(n Node, b []byte) error {
	if last, ok := n.LastChild().(*Text); ok {
		return last.AddContent(b)
	}
	t := NewText(b)
	if doc := n.OwnerDocument(); doc != nil {
		_ = t.SetOwnerDocument(doc)
	}
	return n.AddChild(t)
}

func replaceNode(n Node, cur Node) error {
	if next := n.NextSibling(); next != nil {
		cur.getTreeNode().next = next
		next.getTreeNode().prev = cur
	}

	if prev := n.PrevSibling(); prev != nil {
		cur.getTreeNode().prev = prev
		prev.getTreeNode().next = cur
	}

	if parent := n.Parent(); parent != nil {
		if parent.FirstChild() == n {
			parent.getTreeNode().firstChild = cur
		}
		if parent.LastChild() == n {
			parent.getTreeNode().lastChild = cur
		}
		cur.getTreeNode().parent = parent
	}

	nt := n.getTreeNode()
	nt.next, nt.prev, nt.parent = nil, nil, nil
	return nil
}
