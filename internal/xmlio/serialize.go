package xmlio

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/basilisk-labs/xdom/internal/tree"
)

// scope tracks the prefix->URI bindings visible while walking down the
// tree, so Serialize only re-declares a binding where it was originally
// declared instead of duplicating it on every descendant.
type scope struct {
	byPrefix map[string]string
	byURI    map[string]string
}

func rootScope() *scope {
	return &scope{
		byPrefix: map[string]string{"xml": tree.NSReservedXML},
		byURI:    map[string]string{tree.NSReservedXML: "xml"},
	}
}

func (s *scope) child(decls []tree.NSDecl) (*scope, []tree.NSDecl) {
	if len(decls) == 0 {
		return s, nil
	}
	byPrefix := make(map[string]string, len(s.byPrefix)+len(decls))
	byURI := make(map[string]string, len(s.byURI)+len(decls))
	for k, v := range s.byPrefix {
		byPrefix[k] = v
	}
	for k, v := range s.byURI {
		byURI[k] = v
	}
	var fresh []tree.NSDecl
	for _, d := range decls {
		if existing, ok := byPrefix[d.Prefix]; ok && existing == d.URI {
			continue
		}
		byPrefix[d.Prefix] = d.URI
		byURI[d.URI] = d.Prefix
		fresh = append(fresh, d)
	}
	return &scope{byPrefix: byPrefix, byURI: byURI}, fresh
}

// Serialize writes doc as well-formed XML text. Attribute order follows
// each element's declaration order; namespace declarations are emitted
// exactly where OwnNamespaceDecls reports them, not re-derived at every
// level.
func Serialize(doc *tree.Document, w io.Writer) error {
	sw := &stateWriter{w: w}
	sw.writeString(`<?xml version="1.0" encoding="UTF-8"?>`)
	sw.writeString("\n")
	root := doc.RootElement()
	if root == tree.NilID {
		return fmt.Errorf("xmlio: serialize: document has no root element")
	}
	for _, c := range doc.Children(doc.DocumentNode()) {
		if err := serializeNode(doc, c, rootScope(), sw); err != nil {
			return err
		}
	}
	return sw.err
}

type stateWriter struct {
	w   io.Writer
	err error
}

func (sw *stateWriter) writeString(s string) {
	if sw.err != nil {
		return
	}
	_, sw.err = io.WriteString(sw.w, s)
}

func serializeNode(doc *tree.Document, id tree.NodeID, sc *scope, w *stateWriter) error {
	switch doc.Kind(id) {
	case tree.Element:
		return serializeElement(doc, id, sc, w)
	case tree.Text:
		w.writeString(escapeText(doc.Data(id)))
	case tree.Comment:
		w.writeString("<!--")
		w.writeString(doc.Data(id))
		w.writeString("-->")
	case tree.ProcInst:
		name := doc.Name(id)
		w.writeString("<?")
		w.writeString(name.Local)
		if doc.Data(id) != "" {
			w.writeString(" ")
			w.writeString(doc.Data(id))
		}
		w.writeString("?>")
	}
	return w.err
}

func serializeElement(doc *tree.Document, id tree.NodeID, sc *scope, w *stateWriter) error {
	name := doc.Name(id)
	own := doc.OwnNamespaceDecls(id)
	childScope, fresh := sc.child(own)

	qname := qualify(childScope, name, false)
	w.writeString("<")
	w.writeString(qname)

	// Namespace declarations declared directly at this element.
	sort.Slice(fresh, func(i, j int) bool { return fresh[i].Prefix < fresh[j].Prefix })
	for _, d := range fresh {
		if d.Prefix == "" {
			w.writeString(fmt.Sprintf(` xmlns="%s"`, escapeAttr(d.URI)))
		} else {
			w.writeString(fmt.Sprintf(` xmlns:%s="%s"`, d.Prefix, escapeAttr(d.URI)))
		}
	}

	for _, a := range doc.Attributes(id) {
		aname := doc.Name(a)
		aq := qualify(childScope, aname, true)
		w.writeString(fmt.Sprintf(` %s="%s"`, aq, escapeAttr(doc.AttributeValue(a))))
	}

	children := doc.Children(id)
	if len(children) == 0 {
		w.writeString("/>")
		return w.err
	}
	w.writeString(">")
	for _, c := range children {
		if err := serializeNode(doc, c, childScope, w); err != nil {
			return err
		}
	}
	w.writeString("</")
	w.writeString(qname)
	w.writeString(">")
	return w.err
}

// qualify renders name as "prefix:local" using sc's bindings, falling
// back to the bare local name when name carries no namespace URI.
// Attribute names never take the default (unprefixed) binding, per XML
// namespace rules.
func qualify(sc *scope, name tree.ExpandedName, isAttr bool) string {
	if name.URI == "" {
		return name.Local
	}
	if prefix, ok := sc.byURI[name.URI]; ok && (!isAttr || prefix != "") {
		if prefix == "" {
			return name.Local
		}
		return prefix + ":" + name.Local
	}
	// No in-scope prefix binds this URI; emit unprefixed for elements
	// bound to the default namespace, otherwise fall back to the bare
	// local name (best effort — the caller is responsible for having
	// declared every namespace it uses).
	return name.Local
}

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

func escapeAttr(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
