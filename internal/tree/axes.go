package tree

// Axis identifies one of the thirteen XPath axes.
type Axis uint8

const (
	AxisSelf Axis = iota
	AxisChild
	AxisParent
	AxisDescendant
	AxisDescendantOrSelf
	AxisAncestor
	AxisAncestorOrSelf
	AxisFollowing
	AxisPreceding
	AxisFollowingSibling
	AxisPrecedingSibling
	AxisAttribute
	AxisNamespace
)

// Reverse reports whether the axis enumerates its candidates in reverse
// document order.
func (a Axis) Reverse() bool {
	switch a {
	case AxisAncestor, AxisAncestorOrSelf, AxisPreceding, AxisPrecedingSibling, AxisParent:
		return true
	}
	return false
}

// PrincipalKind is the node kind selected by a bare name test on this
// axis.
func (a Axis) PrincipalKind() Kind {
	switch a {
	case AxisAttribute:
		return Attribute
	case AxisNamespace:
		return Namespace
	default:
		return Element
	}
}

// Axis walks axis starting from context node id and returns the
// candidates in the axis's natural order: forward axes in document
// order, reverse axes in reverse document order.
func (d *Document) Axis(axis Axis, id NodeID) []NodeID {
	switch axis {
	case AxisSelf:
		return []NodeID{id}
	case AxisChild:
		return d.axisChild(id)
	case AxisParent:
		if p := d.rec(id).parent; p != NilID {
			return []NodeID{p}
		}
		return nil
	case AxisDescendant:
		var out []NodeID
		d.axisDescendant(id, &out)
		return out
	case AxisDescendantOrSelf:
		out := []NodeID{id}
		d.axisDescendant(id, &out)
		return out
	case AxisAncestor:
		return d.axisAncestor(id, false)
	case AxisAncestorOrSelf:
		return d.axisAncestor(id, true)
	case AxisFollowing:
		return d.axisFollowing(id)
	case AxisPreceding:
		return d.axisPreceding(id)
	case AxisFollowingSibling:
		return d.axisSibling(id, true)
	case AxisPrecedingSibling:
		return d.axisSibling(id, false)
	case AxisAttribute:
		if d.rec(id).kind != Element {
			return nil
		}
		return d.Attributes(id)
	case AxisNamespace:
		if d.rec(id).kind != Element {
			return nil
		}
		return append([]NodeID(nil), d.namespaceNodes(id)...)
	}
	return nil
}

func (d *Document) axisChild(id NodeID) []NodeID {
	r := d.rec(id)
	if r.kind != Element && r.kind != DocumentKind {
		return nil
	}
	return d.Children(id)
}

func (d *Document) axisDescendant(id NodeID, out *[]NodeID) {
	for _, c := range d.rec(id).children {
		*out = append(*out, c)
		if d.rec(c).kind == Element {
			d.axisDescendant(c, out)
		}
	}
}

func (d *Document) axisAncestor(id NodeID, self bool) []NodeID {
	var out []NodeID
	if self {
		out = append(out, id)
	}
	for cur := d.rec(id).parent; cur != NilID; cur = d.rec(cur).parent {
		out = append(out, cur)
	}
	return out
}

// contentAnchor returns the nearest ancestor-or-self that participates in
// the document's child-list structure (i.e. is not an attribute or
// namespace node), needed because following/preceding must skip an
// attribute/namespace node's "owner" without treating it as a sibling.
func (d *Document) contentAnchor(id NodeID) NodeID {
	r := d.rec(id)
	if r.kind == Attribute || r.kind == Namespace {
		return r.parent
	}
	return id
}

func (d *Document) axisSibling(id NodeID, forward bool) []NodeID {
	anchor := d.contentAnchor(id)
	parent := d.rec(anchor).parent
	if parent == NilID {
		return nil
	}
	siblings := d.rec(parent).children
	idx := -1
	for i, s := range siblings {
		if s == anchor {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	var out []NodeID
	if forward {
		out = append(out, siblings[idx+1:]...)
	} else {
		for i := idx - 1; i >= 0; i-- {
			out = append(out, siblings[i])
		}
	}
	return out
}

// following = every node after the anchor in document order, excluding
// the anchor's own descendants.
func (d *Document) axisFollowing(id NodeID) []NodeID {
	anchor := d.contentAnchor(id)
	skip := map[NodeID]bool{}
	var mark func(n NodeID)
	mark = func(n NodeID) {
		skip[n] = true
		for _, c := range d.rec(n).children {
			mark(c)
		}
	}
	mark(anchor)

	var out []NodeID
	var collect func(n NodeID)
	collect = func(n NodeID) {
		if n != anchor && !skip[n] && d.Compare(n, anchor) > 0 {
			out = append(out, n)
		}
		for _, c := range d.rec(n).children {
			collect(c)
		}
	}
	collect(d.DocumentNode())
	return out
}

func (d *Document) axisPreceding(id NodeID) []NodeID {
	anchor := d.contentAnchor(id)
	skip := map[NodeID]bool{}
	var mark func(n NodeID)
	mark = func(n NodeID) {
		skip[n] = true
		for _, c := range d.rec(n).children {
			mark(c)
		}
	}
	mark(anchor)
	for cur := d.rec(anchor).parent; cur != NilID; cur = d.rec(cur).parent {
		skip[cur] = true
	}
	var out []NodeID
	var collect func(n NodeID)
	collect = func(n NodeID) {
		if n != anchor && !skip[n] && d.Compare(n, anchor) < 0 {
			out = append(out, n)
		}
		for _, c := range d.rec(n).children {
			collect(c)
		}
	}
	collect(d.DocumentNode())
	// reverse into "nearest preceding first" order
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
