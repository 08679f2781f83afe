package xdom

import "github.com/basilisk-labs/xdom/internal/tree"

// Kind reports the node kind: element, attribute, text, comment,
// processing-instruction, document or namespace, mirroring
// internal/tree.Kind's seven values.
func (n Node) Kind() string { return n.d.doc.Kind(n.id).String() }

// Name returns the local name of the node (empty for text/comment/document
// nodes).
func (n Node) Name() string { return n.d.doc.Name(n.id).Local }

// NamespaceURI returns the node's namespace URI, or "" if unqualified.
func (n Node) NamespaceURI() string { return n.d.doc.Name(n.id).URI }

// StringValue computes the node's string value: the concatenation of
// every descendant text node's content in document order for elements
// and the document node, and the literal content for text/attribute/
// comment/processing-instruction nodes.
func (n Node) StringValue() string { return n.d.doc.StringValue(n.id) }

// Parent returns n's structural parent, or the zero Node with ok=false
// at the document node.
func (n Node) Parent() (Node, bool) {
	p := n.d.doc.Parent(n.id)
	if p == tree.NilID {
		return Node{}, false
	}
	return wrap(n.d, p), true
}

// FirstChild returns n's first child, or ok=false if n has none.
func (n Node) FirstChild() (Node, bool) {
	children := n.d.doc.Children(n.id)
	if len(children) == 0 {
		return Node{}, false
	}
	return wrap(n.d, children[0]), true
}

// NthChild returns n's i-th child, 0-based.
func (n Node) NthChild(i int) (Node, bool) {
	children := n.d.doc.Children(n.id)
	if i < 0 || i >= len(children) {
		return Node{}, false
	}
	return wrap(n.d, children[i]), true
}

// AttributeValue returns the value of the attribute named name on n, or
// ok=false if n has no such attribute.
func (n Node) AttributeValue(name string) (string, bool) {
	for _, a := range n.d.doc.Attributes(n.id) {
		if n.d.doc.Name(a).Local == name {
			return n.d.doc.AttributeValue(a), true
		}
	}
	return "", false
}

// AppendChild appends child as n's last child.
func (n Node) AppendChild(child Node) error {
	return wrapErr(n.d.doc.AppendChild(n.id, child.id))
}

// InsertAsPreviousSibling inserts newNode immediately before n.
func (n Node) InsertAsPreviousSibling(newNode Node) error {
	return wrapErr(n.d.doc.InsertAsPreviousSibling(n.id, newNode.id))
}

// InsertAsNextSibling inserts newNode immediately after n.
func (n Node) InsertAsNextSibling(newNode Node) error {
	return wrapErr(n.d.doc.InsertAsNextSibling(n.id, newNode.id))
}

// DeleteChild removes child from n's child list.
func (n Node) DeleteChild(child Node) error {
	return wrapErr(n.d.doc.DeleteChild(n.id, child.id))
}

// ReplaceWith replaces n with newNode in n's parent's child list.
func (n Node) ReplaceWith(newNode Node) error {
	return wrapErr(n.d.doc.ReplaceWith(n.id, newNode.id))
}

// SetAttribute creates or updates the attribute named name on n.
func (n Node) SetAttribute(name, value string) error {
	return wrapErr(n.d.doc.SetAttribute(n.id, tree.ExpandedName{Local: name}, value))
}

// DeleteAttribute removes the attribute named name from n, if present.
func (n Node) DeleteAttribute(name string) error {
	return wrapErr(n.d.doc.DeleteAttribute(n.id, tree.ExpandedName{Local: name}))
}

// NewElement allocates a new, detached element node owned by d, ready to
// be attached with AppendChild/InsertAsPreviousSibling/InsertAsNextSibling.
func (d *Document) NewElement(name string) Node {
	return wrap(d, d.doc.NewElement(tree.ExpandedName{Local: name}))
}

// NewText allocates a new, detached text node owned by d.
func (d *Document) NewText(content string) Node {
	return wrap(d, d.doc.NewText(content))
}

// NewComment allocates a new, detached comment node owned by d.
func (d *Document) NewComment(content string) Node {
	return wrap(d, d.doc.NewComment(content))
}
