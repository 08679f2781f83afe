package tree

import "fmt"

// StructuralError reports a mutation that would violate the tree's
// structural invariants. The tree is left untouched: every mutation
// method validates its precondition fully before making any observable
// change.
type StructuralError struct {
	Op      string
	Message string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("xdom: structural error in %s: %s", e.Op, e.Message)
}

func structErr(op, format string, args ...interface{}) error {
	return &StructuralError{Op: op, Message: fmt.Sprintf(format, args...)}
}

func isContentKind(k Kind) bool {
	switch k {
	case Element, Text, Comment, ProcInst:
		return true
	}
	return false
}

func (d *Document) validateAppend(op string, parent, child NodeID) error {
	if parent < 0 || int(parent) >= len(d.nodes) || child < 0 || int(child) >= len(d.nodes) {
		return structErr(op, "invalid node id")
	}
	pk := d.rec(parent).kind
	if pk != Element && pk != DocumentKind {
		return structErr(op, "parent must be a document or element node, got %s", pk)
	}
	if !isContentKind(d.rec(child).kind) {
		return structErr(op, "child must be element, text, comment or processing-instruction, got %s", d.rec(child).kind)
	}
	if !d.rec(child).detached {
		return structErr(op, "node is already attached; detach it first")
	}
	if pk == DocumentKind && d.rec(child).kind == Element && d.root != NilID {
		return structErr(op, "document already has a root element")
	}
	for cur := parent; cur != NilID; cur = d.rec(cur).parent {
		if cur == child {
			return structErr(op, "would create a cycle")
		}
	}
	return nil
}

// AppendChild appends child as the last child of parent.
func (d *Document) AppendChild(parent, child NodeID) error {
	if err := d.validateAppend("AppendChild", parent, child); err != nil {
		return err
	}
	d.attach(parent, child, len(d.rec(parent).children))
	return nil
}

func (d *Document) attach(parent, child NodeID, at int) {
	r := d.rec(parent)
	r.children = append(r.children, NilID)
	copy(r.children[at+1:], r.children[at:])
	r.children[at] = child
	cr := d.rec(child)
	cr.parent = parent
	cr.detached = false
	if d.rec(parent).kind == DocumentKind && cr.kind == Element {
		d.root = child
	}
	d.renumber()
}

// InsertAsPreviousSibling inserts newNode immediately before ref in ref's
// parent's child list.
func (d *Document) InsertAsPreviousSibling(ref, newNode NodeID) error {
	return d.insertSibling("InsertAsPreviousSibling", ref, newNode, 0)
}

// InsertAsNextSibling inserts newNode immediately after ref in ref's
// parent's child list.
func (d *Document) InsertAsNextSibling(ref, newNode NodeID) error {
	return d.insertSibling("InsertAsNextSibling", ref, newNode, 1)
}

func (d *Document) insertSibling(op string, ref, newNode NodeID, offset int) error {
	if ref < 0 || int(ref) >= len(d.nodes) {
		return structErr(op, "invalid reference node id")
	}
	parent := d.rec(ref).parent
	if parent == NilID {
		return structErr(op, "reference node has no parent")
	}
	if err := d.validateAppend(op, parent, newNode); err != nil {
		return err
	}
	idx := indexOf(d.rec(parent).children, ref)
	if idx < 0 {
		return structErr(op, "reference node not found in parent's children")
	}
	d.attach(parent, newNode, idx+offset)
	return nil
}

func indexOf(ids []NodeID, id NodeID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

// DeleteChild removes child from parent's child list. The subtree rooted
// at child becomes detached, keeping its own descendants' relative
// structure intact.
func (d *Document) DeleteChild(parent, child NodeID) error {
	if parent < 0 || int(parent) >= len(d.nodes) || child < 0 || int(child) >= len(d.nodes) {
		return structErr("DeleteChild", "invalid node id")
	}
	idx := indexOf(d.rec(parent).children, child)
	if idx < 0 {
		return structErr("DeleteChild", "node is not a child of the given parent")
	}
	r := d.rec(parent)
	r.children = append(r.children[:idx], r.children[idx+1:]...)
	cr := d.rec(child)
	cr.parent = NilID
	cr.detached = true
	if d.root == child {
		d.root = NilID
	}
	d.renumber()
	return nil
}

// ReplaceWith replaces old with newNode in old's parent's child list.
func (d *Document) ReplaceWith(old, newNode NodeID) error {
	parent := d.rec(old).parent
	if parent == NilID {
		return structErr("ReplaceWith", "node has no parent")
	}
	if err := d.validateAppend("ReplaceWith", parent, newNode); err != nil {
		return err
	}
	idx := indexOf(d.rec(parent).children, old)
	if idx < 0 {
		return structErr("ReplaceWith", "node not found in parent's children")
	}
	d.rec(parent).children[idx] = newNode
	nr := d.rec(newNode)
	nr.parent = parent
	nr.detached = false
	or := d.rec(old)
	or.parent = NilID
	or.detached = true
	if d.root == old {
		d.root = NilID
	}
	if d.rec(parent).kind == DocumentKind && nr.kind == Element {
		d.root = newNode
	}
	d.renumber()
	return nil
}

// SetAttribute creates or updates an attribute named name on element id,
// enforcing invariant (c): attribute names within one element are
// unique.
func (d *Document) SetAttribute(id NodeID, name ExpandedName, value string) error {
	r := d.rec(id)
	if r.kind != Element {
		return structErr("SetAttribute", "target must be an element, got %s", r.kind)
	}
	for _, a := range r.attrs {
		if d.rec(a).name.Equal(name) {
			d.rec(a).text = value
			return nil
		}
	}
	attrID := d.newNode(Attribute, name, value)
	ar := d.rec(attrID)
	ar.parent = id
	ar.detached = false
	r = d.rec(id) // newNode may have reallocated the arena
	r.attrs = append(r.attrs, attrID)
	return nil
}

// DeleteAttribute removes the attribute named name from element id, if
// present. It is not an error to delete an attribute that does not
// exist.
func (d *Document) DeleteAttribute(id NodeID, name ExpandedName) error {
	r := d.rec(id)
	if r.kind != Element {
		return structErr("DeleteAttribute", "target must be an element, got %s", r.kind)
	}
	for i, a := range r.attrs {
		if d.rec(a).name.Equal(name) {
			ar := d.rec(a)
			ar.parent = NilID
			ar.detached = true
			r.attrs = append(r.attrs[:i], r.attrs[i+1:]...)
			return nil
		}
	}
	return nil
}
