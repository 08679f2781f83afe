package tree

// FirstChild returns the first child of id, or NilID.
func (d *Document) FirstChild(id NodeID) NodeID {
	c := d.rec(id).children
	if len(c) == 0 {
		return NilID
	}
	return c[0]
}

// NthChild returns the 0-based i'th child of id, or NilID if out of
// range, matching Go slice-indexing convention.
func (d *Document) NthChild(id NodeID, i int) NodeID {
	c := d.rec(id).children
	if i < 0 || i >= len(c) {
		return NilID
	}
	return c[i]
}

// AttributeByName looks up an attribute of element id by expanded name.
func (d *Document) AttributeByName(id NodeID, name ExpandedName) (NodeID, bool) {
	r := d.rec(id)
	if r.kind != Element {
		return NilID, false
	}
	for _, a := range r.attrs {
		if d.rec(a).name.Equal(name) {
			return a, true
		}
	}
	return NilID, false
}

// AncestorWalk returns the ancestor chain of id, starting with id itself
// and terminating at (and including) the document node.
func (d *Document) AncestorWalk(id NodeID) []NodeID {
	var out []NodeID
	for cur := id; cur != NilID; cur = d.rec(cur).parent {
		out = append(out, cur)
	}
	return out
}
