// Package xmlio handles turning XML source text into an
// internal/tree.Document and back, using the standard library's
// encoding/xml.Decoder as the token producer and building this module's
// own arena-based tree from its output.
package xmlio

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/basilisk-labs/xdom/internal/tree"
)

// Parse reads a well-formed XML document from r and builds an
// internal/tree.Document from it, resolving xmlns/xmlns:* declarations
// into namespace bindings as it walks the token stream.
func Parse(r io.Reader) (*tree.Document, error) {
	doc := tree.New()
	dec := xml.NewDecoder(r)
	dec.Strict = true

	stack := []tree.NodeID{doc.DocumentNode()}
	top := func() tree.NodeID { return stack[len(stack)-1] }

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("xmlio: parse: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			name := tree.ExpandedName{URI: t.Name.Space, Local: t.Name.Local}
			id := doc.NewElement(name)
			if err := doc.AppendChild(top(), id); err != nil {
				return nil, fmt.Errorf("xmlio: parse: %w", err)
			}
			for _, a := range t.Attr {
				switch {
				case a.Name.Space == "xmlns":
					doc.DeclareNamespace(id, a.Name.Local, a.Value)
				case a.Name.Space == "" && a.Name.Local == "xmlns":
					doc.DeclareNamespace(id, "", a.Value)
				default:
					aname := tree.ExpandedName{URI: a.Name.Space, Local: a.Name.Local}
					if err := doc.SetAttribute(id, aname, a.Value); err != nil {
						return nil, fmt.Errorf("xmlio: parse: %w", err)
					}
				}
			}
			stack = append(stack, id)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			text := string(t)
			if strings.TrimSpace(text) == "" && doc.Kind(top()) == tree.DocumentKind {
				continue
			}
			id := doc.NewText(text)
			if err := doc.AppendChild(top(), id); err != nil {
				return nil, fmt.Errorf("xmlio: parse: %w", err)
			}
		case xml.Comment:
			id := doc.NewComment(string(t))
			if err := doc.AppendChild(top(), id); err != nil {
				return nil, fmt.Errorf("xmlio: parse: %w", err)
			}
		case xml.ProcInst:
			if t.Target == "xml" {
				continue // the XML declaration itself, not a document-level PI
			}
			id := doc.NewProcInst(t.Target, string(t.Inst))
			if err := doc.AppendChild(top(), id); err != nil {
				return nil, fmt.Errorf("xmlio: parse: %w", err)
			}
		}
	}

	if doc.RootElement() == tree.NilID {
		return nil, fmt.Errorf("xmlio: parse: document has no root element")
	}
	return doc, nil
}
