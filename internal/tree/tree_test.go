package tree

import "testing"

// buildSample builds:
//
//	<root a="1" b="2">
//	  <x>1</x>
//	  <x>2</x>
//	</root>
func buildSample(t *testing.T) (*Document, NodeID, NodeID, NodeID) {
	t.Helper()
	d := New()
	root := d.NewElement(ExpandedName{Local: "root"})
	if err := d.AppendChild(d.DocumentNode(), root); err != nil {
		t.Fatal(err)
	}
	if err := d.SetAttribute(root, ExpandedName{Local: "a"}, "1"); err != nil {
		t.Fatal(err)
	}
	if err := d.SetAttribute(root, ExpandedName{Local: "b"}, "2"); err != nil {
		t.Fatal(err)
	}
	x1 := d.NewElement(ExpandedName{Local: "x"})
	t1 := d.NewText("1")
	if err := d.AppendChild(x1, t1); err != nil {
		t.Fatal(err)
	}
	if err := d.AppendChild(root, x1); err != nil {
		t.Fatal(err)
	}
	x2 := d.NewElement(ExpandedName{Local: "x"})
	t2 := d.NewText("2")
	if err := d.AppendChild(x2, t2); err != nil {
		t.Fatal(err)
	}
	if err := d.AppendChild(root, x2); err != nil {
		t.Fatal(err)
	}
	return d, root, x1, x2
}

func TestDocumentOrderTotalAndAntisymmetric(t *testing.T) {
	d, root, x1, x2 := buildSample(t)
	if d.Compare(root, x1) >= 0 {
		t.Fatalf("root should precede x1")
	}
	if d.Compare(x1, x2) >= 0 {
		t.Fatalf("x1 should precede x2")
	}
	if d.Compare(x1, root) != -d.Compare(root, x1) {
		t.Fatalf("doc-order(a,b) must equal -doc-order(b,a)")
	}
}

func TestAttributesSortAfterElementBeforeFirstChild(t *testing.T) {
	d, root, x1, _ := buildSample(t)
	attrs := d.Attributes(root)
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(attrs))
	}
	for _, a := range attrs {
		if d.Compare(root, a) >= 0 {
			t.Fatalf("attribute must sort after its owning element")
		}
		if d.Compare(a, x1) >= 0 {
			t.Fatalf("attribute must sort before the element's first child")
		}
	}
}

func TestChildAxis(t *testing.T) {
	d, root, x1, x2 := buildSample(t)
	kids := d.Axis(AxisChild, root)
	if len(kids) != 2 || kids[0] != x1 || kids[1] != x2 {
		t.Fatalf("unexpected child axis result: %v", kids)
	}
}

func TestDescendantAxisDocumentOrder(t *testing.T) {
	d, root, _, _ := buildSample(t)
	desc := d.Axis(AxisDescendant, root)
	for i := 1; i < len(desc); i++ {
		if d.Compare(desc[i-1], desc[i]) >= 0 {
			t.Fatalf("descendant axis must be strictly ascending in document order")
		}
	}
}

func TestAncestorAxisReverseOrderNearestFirst(t *testing.T) {
	d, root, x1, _ := buildSample(t)
	t1 := d.FirstChild(x1)
	anc := d.Axis(AxisAncestor, t1)
	if len(anc) != 3 { // x1, root, document
		t.Fatalf("expected 3 ancestors, got %d: %v", len(anc), anc)
	}
	if anc[0] != x1 || anc[1] != root || anc[2] != d.DocumentNode() {
		t.Fatalf("ancestor axis must list nearest ancestor first")
	}
}

func TestFollowingSiblingAndPrecedingSibling(t *testing.T) {
	d, root, x1, x2 := buildSample(t)
	_ = root
	fs := d.Axis(AxisFollowingSibling, x1)
	if len(fs) != 1 || fs[0] != x2 {
		t.Fatalf("unexpected following-sibling: %v", fs)
	}
	ps := d.Axis(AxisPrecedingSibling, x2)
	if len(ps) != 1 || ps[0] != x1 {
		t.Fatalf("unexpected preceding-sibling: %v", ps)
	}
}

func TestAppendChildRejectsSecondRootElement(t *testing.T) {
	d, _, _, _ := buildSample(t)
	other := d.NewElement(ExpandedName{Local: "other"})
	if err := d.AppendChild(d.DocumentNode(), other); err == nil {
		t.Fatalf("expected StructuralError for a second root element")
	}
}

func TestDeleteChildDetaches(t *testing.T) {
	d, root, x1, _ := buildSample(t)
	if err := d.DeleteChild(root, x1); err != nil {
		t.Fatal(err)
	}
	if !d.IsDetached(x1) {
		t.Fatalf("x1 should be detached")
	}
	kids := d.Axis(AxisChild, root)
	if len(kids) != 1 {
		t.Fatalf("expected 1 remaining child, got %d", len(kids))
	}
}

func TestSetAttributeUniqueness(t *testing.T) {
	d, root, _, _ := buildSample(t)
	if err := d.SetAttribute(root, ExpandedName{Local: "a"}, "99"); err != nil {
		t.Fatal(err)
	}
	if got := d.AttributeValue(mustAttr(t, d, root, "a")); got != "99" {
		t.Fatalf("SetAttribute should update in place, got %q", got)
	}
	if len(d.Attributes(root)) != 2 {
		t.Fatalf("attribute count must not grow on update")
	}
}

func mustAttr(t *testing.T, d *Document, el NodeID, local string) NodeID {
	t.Helper()
	id, ok := d.AttributeByName(el, ExpandedName{Local: local})
	if !ok {
		t.Fatalf("attribute %q not found", local)
	}
	return id
}

func TestStringValueConcatenatesDescendantText(t *testing.T) {
	d, root, _, _ := buildSample(t)
	if got, want := d.StringValue(root), "12"; got != want {
		t.Fatalf("StringValue(root) = %q, want %q", got, want)
	}
}

func TestNamespaceAxisIncludesXML(t *testing.T) {
	d := New()
	root := d.NewElement(ExpandedName{URI: "urn:x", Local: "root"})
	if err := d.AppendChild(d.DocumentNode(), root); err != nil {
		t.Fatal(err)
	}
	d.DeclareNamespace(root, "a", "urn:a")
	ns := d.Axis(AxisNamespace, root)
	found := false
	for _, n := range ns {
		if d.Name(n).Local == "xml" {
			found = true
		}
	}
	if !found {
		t.Fatalf("namespace axis must always include the xml prefix")
	}
	if len(ns) != 2 {
		t.Fatalf("expected 2 namespace nodes (xml, a), got %d", len(ns))
	}
}
