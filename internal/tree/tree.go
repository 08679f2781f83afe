// Package tree implements the in-memory XML document model: nodes with
// parent/child links, attribute maps, namespace bindings, and stable
// document-order keys.
//
// Nodes live in an arena owned by the Document; external handles (Node)
// are non-owning (id, *Document) pairs, covering every node kind rather
// than just elements.
package tree

import "fmt"

// Kind identifies the type of a node.
type Kind uint8

const (
	DocumentKind Kind = iota
	Element
	Attribute
	Text
	Comment
	ProcInst
	Namespace
)

func (k Kind) String() string {
	switch k {
	case DocumentKind:
		return "document"
	case Element:
		return "element"
	case Attribute:
		return "attribute"
	case Text:
		return "text"
	case Comment:
		return "comment"
	case ProcInst:
		return "processing-instruction"
	case Namespace:
		return "namespace"
	}
	return "unknown"
}

// ExpandedName is a (namespace URI, local name) pair, the namespace-aware
// identity of an element, attribute, PI target, or namespace binding.
type ExpandedName struct {
	URI   string
	Local string
}

func (n ExpandedName) Equal(o ExpandedName) bool {
	return n.URI == o.URI && n.Local == o.Local
}

func (n ExpandedName) String() string {
	if n.URI == "" {
		return n.Local
	}
	return fmt.Sprintf("{%s}%s", n.URI, n.Local)
}

// NSReservedXML is the URI permanently bound to the "xml" prefix, per
// invariant (d).
const NSReservedXML = "http://www.w3.org/XML/1998/namespace"

// NodeID is a stable identifier for a node within one Document's arena.
// It is never reused, so equality of NodeID (within the same Document) is
// node identity.
type NodeID int32

// NilID marks the absence of a node (no parent, empty root, etc).
const NilID NodeID = -1

type nsDecl struct {
	prefix string
	uri    string
}

// record is one arena slot.
type record struct {
	kind Kind

	// order is the pre-order position among "content" nodes (document,
	// element, text, comment, pi) — see order.go for how attribute and
	// namespace nodes are placed relative to it.
	order int32

	parent NodeID

	name ExpandedName // element / attribute / pi (Local only) / namespace (Local = prefix)
	text string       // text/comment content, pi data, attribute value, or namespace URI

	children []NodeID // document & element only, mixed element/text/comment/pi
	attrs    []NodeID // element only, declaration order
	nsDecls  []nsDecl // element only, bindings declared directly on this element
	nsCache  []NodeID // element only, memoized namespace-axis node ids

	detached bool // true once removed from its parent's child/attr list
}

// Document owns every node of one XML tree.
type Document struct {
	nodes []record
	root  NodeID // NilID until a root element exists
}

// New creates an empty document, consisting of only the document node
// itself (kind DocumentKind, id 0).
func New() *Document {
	d := &Document{root: NilID}
	d.nodes = append(d.nodes, record{kind: DocumentKind, parent: NilID})
	return d
}

// DocumentNode returns the id of the document node, always 0.
func (d *Document) DocumentNode() NodeID { return 0 }

// RootElement returns the document's root element, or NilID if none has
// been attached yet.
func (d *Document) RootElement() NodeID { return d.root }

func (d *Document) rec(id NodeID) *record {
	if id < 0 || int(id) >= len(d.nodes) {
		panic(fmt.Sprintf("tree: invalid node id %d", id))
	}
	return &d.nodes[id]
}

// Kind reports the kind of node id.
func (d *Document) Kind(id NodeID) Kind { return d.rec(id).kind }

// Parent returns the structural parent of id, or NilID. Attribute and
// namespace nodes report their owning element as parent, even though they
// are not members of its child list.
func (d *Document) Parent(id NodeID) NodeID { return d.rec(id).parent }

// Name returns the expanded name of id, valid for Element, Attribute,
// ProcInst (Local only, URI empty) and Namespace (Local holds the bound
// prefix, "" for the default namespace).
func (d *Document) Name(id NodeID) ExpandedName { return d.rec(id).name }

// Children returns the ordered child list of a Document or Element node.
func (d *Document) Children(id NodeID) []NodeID {
	r := d.rec(id)
	out := make([]NodeID, len(r.children))
	copy(out, r.children)
	return out
}

// Attributes returns the declaration-ordered attribute list of an Element
// node.
func (d *Document) Attributes(id NodeID) []NodeID {
	r := d.rec(id)
	out := make([]NodeID, len(r.attrs))
	copy(out, r.attrs)
	return out
}

// IsDetached reports whether id has been removed from the tree (still
// alive in the arena, but reachable from nothing).
func (d *Document) IsDetached(id NodeID) bool {
	if id == d.DocumentNode() {
		return false
	}
	return d.rec(id).detached
}

// AttributeValue returns the literal content of an Attribute node.
func (d *Document) AttributeValue(id NodeID) string { return d.rec(id).text }

// Data returns the literal content of a Text/Comment/ProcInst node, or the
// URI of a Namespace node.
func (d *Document) Data(id NodeID) string { return d.rec(id).text }

// StringValue computes the per-kind string value.
func (d *Document) StringValue(id NodeID) string {
	switch d.rec(id).kind {
	case Text, Comment, ProcInst, Attribute, Namespace:
		return d.rec(id).text
	case Element, DocumentKind:
		var sb []byte
		d.collectText(id, &sb)
		return string(sb)
	}
	return ""
}

func (d *Document) collectText(id NodeID, sb *[]byte) {
	r := d.rec(id)
	for _, c := range r.children {
		switch d.rec(c).kind {
		case Text:
			*sb = append(*sb, d.rec(c).text...)
		case Element:
			d.collectText(c, sb)
		}
	}
}

// newNode allocates a detached record and returns its id.
func (d *Document) newNode(kind Kind, name ExpandedName, text string) NodeID {
	id := NodeID(len(d.nodes))
	d.nodes = append(d.nodes, record{kind: kind, parent: NilID, name: name, text: text, detached: true})
	return id
}

// NewElement allocates a new, detached element node.
func (d *Document) NewElement(name ExpandedName) NodeID {
	return d.newNode(Element, name, "")
}

// NewText allocates a new, detached text node.
func (d *Document) NewText(content string) NodeID {
	return d.newNode(Text, ExpandedName{}, content)
}

// NewComment allocates a new, detached comment node.
func (d *Document) NewComment(content string) NodeID {
	return d.newNode(Comment, ExpandedName{}, content)
}

// NewProcInst allocates a new, detached processing-instruction node.
func (d *Document) NewProcInst(target, data string) NodeID {
	return d.newNode(ProcInst, ExpandedName{Local: target}, data)
}
