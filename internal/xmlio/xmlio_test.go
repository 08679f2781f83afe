package xmlio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/basilisk-labs/xdom/internal/tree"
)

func TestParseBuildsTreeShape(t *testing.T) {
	src := `<r a="1"><child>text</child><!--note--></r>`
	doc, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	root := doc.RootElement()
	if doc.Name(root).Local != "r" {
		t.Fatalf("got root name %v", doc.Name(root))
	}
	attrs := doc.Attributes(root)
	if len(attrs) != 1 || doc.AttributeValue(attrs[0]) != "1" {
		t.Fatalf("got attrs %v", attrs)
	}
	children := doc.Children(root)
	if len(children) != 2 {
		t.Fatalf("got %d children", len(children))
	}
	if doc.Kind(children[0]) != tree.Element || doc.Name(children[0]).Local != "child" {
		t.Fatalf("got first child %v", doc.Name(children[0]))
	}
	if doc.StringValue(children[0]) != "text" {
		t.Fatalf("got string value %q", doc.StringValue(children[0]))
	}
	if doc.Kind(children[1]) != tree.Comment {
		t.Fatalf("expected comment, got %v", doc.Kind(children[1]))
	}
}

func TestParseResolvesNamespaces(t *testing.T) {
	src := `<r xmlns:a="urn:a"><a:child a:x="1"/></r>`
	doc, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	root := doc.RootElement()
	child := doc.Children(root)[0]
	if doc.Name(child).URI != "urn:a" || doc.Name(child).Local != "child" {
		t.Fatalf("got name %v", doc.Name(child))
	}
	attrs := doc.Attributes(child)
	if len(attrs) != 1 || doc.Name(attrs[0]).URI != "urn:a" {
		t.Fatalf("got attr name %v", doc.Name(attrs[0]))
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	src := `<r a="1"><child>text</child></r>`
	doc, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Serialize(doc, &buf); err != nil {
		t.Fatal(err)
	}
	roundTripped, err := Parse(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("re-parse of serialized output failed: %v\noutput was: %s", err, buf.String())
	}
	if roundTripped.StringValue(roundTripped.RootElement()) != doc.StringValue(doc.RootElement()) {
		t.Fatal("string value changed across round trip")
	}
}

func TestSerializePreservesNamespacePrefix(t *testing.T) {
	src := `<r xmlns:a="urn:a"><a:child/></r>`
	doc, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Serialize(doc, &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `xmlns:a="urn:a"`) || !strings.Contains(out, "<a:child") {
		t.Fatalf("expected namespace-qualified output, got %s", out)
	}
}
