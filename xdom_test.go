package xdom

import (
	"strings"
	"testing"
)

func parseDoc(t *testing.T, src string) *Document {
	t.Helper()
	d, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return d
}

func TestParseAndNavigate(t *testing.T) {
	d := parseDoc(t, `<r><a img="a1"/><a img="a2"/><a img="a3"/></r>`)
	root, ok := d.RootElement()
	if !ok || root.Name() != "r" {
		t.Fatalf("got root %v ok=%v", root, ok)
	}
	first, ok := root.FirstChild()
	if !ok {
		t.Fatal("expected first child")
	}
	v, ok := first.AttributeValue("img")
	if !ok || v != "a1" {
		t.Fatalf("got %q ok=%v", v, ok)
	}
	second, ok := root.NthChild(1)
	if !ok {
		t.Fatal("expected second child")
	}
	v2, _ := second.AttributeValue("img")
	if v2 != "a2" {
		t.Fatalf("got %q", v2)
	}
}

func TestGetNodesetAndFirstNode(t *testing.T) {
	d := parseDoc(t, `<r><a img="a1"/><a img="a2"/><a img="a3"/></r>`)
	root, _ := d.RootElement()
	nodes, err := root.GetNodeset("a")
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 3 {
		t.Fatalf("got %d nodes", len(nodes))
	}
	first, ok, err := root.GetFirstNode(`a[@img="a2"]`)
	if err != nil || !ok {
		t.Fatalf("got %v ok=%v err=%v", first, ok, err)
	}
	v, _ := first.AttributeValue("img")
	if v != "a2" {
		t.Fatalf("got %q", v)
	}
}

func TestEachNodeVisitsInDocumentOrder(t *testing.T) {
	d := parseDoc(t, `<r><a img="a1"/><a img="a2"/><a img="a3"/></r>`)
	root, _ := d.RootElement()
	var seen []string
	err := root.EachNode("a", func(n Node) error {
		v, _ := n.AttributeValue("img")
		seen = append(seen, v)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(seen, ",") != "a1,a2,a3" {
		t.Fatalf("got %v", seen)
	}
}

func TestEachNodeFailsOnNonNodeResult(t *testing.T) {
	d := parseDoc(t, `<r/>`)
	root, _ := d.RootElement()
	err := root.EachNode("1 + 1", func(Node) error { return nil })
	if err == nil {
		t.Fatal("expected a TypeError")
	}
	xerr, ok := err.(*Error)
	if !ok || xerr.Kind != TypeError {
		t.Fatalf("got %v", err)
	}
}

func TestEvalXPathReturnsArbitraryValue(t *testing.T) {
	d := parseDoc(t, `<r><a/><a/><a/></r>`)
	root, _ := d.RootElement()
	v, err := root.EvalXPath("count(a)")
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "3" {
		t.Fatalf("got %q", v.String())
	}
}

func TestMutationAppendAndSerialize(t *testing.T) {
	d := parseDoc(t, `<r/>`)
	root, _ := d.RootElement()
	child := d.NewElement("child")
	if err := root.AppendChild(child); err != nil {
		t.Fatal(err)
	}
	if err := child.SetAttribute("x", "1"); err != nil {
		t.Fatal(err)
	}
	var buf strings.Builder
	if err := d.Serialize(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `<child x="1"/>`) {
		t.Fatalf("got %s", buf.String())
	}
}

func TestMutationReplaceWith(t *testing.T) {
	d := parseDoc(t, `<r><a/><b/></r>`)
	root, _ := d.RootElement()
	a, _ := root.FirstChild()
	c := d.NewElement("c")
	if err := a.ReplaceWith(c); err != nil {
		t.Fatal(err)
	}
	nodes, err := root.GetNodeset("*")
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 2 || nodes[0].Name() != "c" {
		t.Fatalf("got %v", nodes)
	}
}

func TestStructuralErrorOnCycle(t *testing.T) {
	d := parseDoc(t, `<r><a/></r>`)
	root, _ := d.RootElement()
	a, _ := root.FirstChild()
	err := a.AppendChild(root)
	if err == nil {
		t.Fatal("expected a StructuralError creating a cycle")
	}
	xerr, ok := err.(*Error)
	if !ok || xerr.Kind != StructuralErrorKind {
		t.Fatalf("got %v", err)
	}
}
