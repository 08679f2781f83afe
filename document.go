// Package xdom is an in-memory XML document processor with a substantial
// subset of XPath 2.0/3.0/3.1: parse XML text into a tree, mutate it,
// query it with XPath, and serialize it back out.
//
// The public surface separates the XML tree from the query engine, but
// keeps both inside one module: internal/tree holds the arena,
// internal/eval walks the compiled query against it, and this package
// is the facade a caller actually imports.
package xdom

import (
	"io"
	"sync"

	"github.com/basilisk-labs/xdom/internal/ast"
	"github.com/basilisk-labs/xdom/internal/parser"
	"github.com/basilisk-labs/xdom/internal/rewrite"
	"github.com/basilisk-labs/xdom/internal/tree"
	"github.com/basilisk-labs/xdom/internal/xmlio"
)

// Document wraps an internal/tree.Document with a compiled-expression
// cache. One cache per document, since namespace resolution during the
// static rewrite pass is tied to a starting context and two documents
// may bind prefixes differently.
type Document struct {
	doc *tree.Document

	mu    sync.RWMutex
	cache map[string]ast.Node
}

// Node is a handle to one node of a Document.
type Node struct {
	d  *Document
	id tree.NodeID
}

func wrap(d *Document, id tree.NodeID) Node {
	return Node{d: d, id: id}
}

// Parse reads well-formed XML from r and returns the resulting Document.
func Parse(r io.Reader) (*Document, error) {
	t, err := xmlio.Parse(r)
	if err != nil {
		return nil, &Error{Kind: ParseError, Message: err.Error(), Offset: -1}
	}
	return &Document{doc: t, cache: make(map[string]ast.Node)}, nil
}

// Serialize writes the document as well-formed XML text to w.
func (d *Document) Serialize(w io.Writer) error {
	if err := xmlio.Serialize(d.doc, w); err != nil {
		return &Error{Kind: DynamicError, Message: err.Error(), Offset: -1}
	}
	return nil
}

// RootElement returns the document's root element, or the zero Node with
// ok=false if none has been attached yet.
func (d *Document) RootElement() (Node, bool) {
	id := d.doc.RootElement()
	if id == tree.NilID {
		return Node{}, false
	}
	return wrap(d, id), true
}

// compile parses and statically rewrites xpath, resolving prefixed names
// against start's in-scope namespaces. Compiled results are cached by
// source text, on the assumption of one stable namespace context per
// document (its root element's), which holds for every realistic caller
// since a document's namespace bindings rarely vary in ways two
// different query sites would disagree on.
func (d *Document) compile(xpath string, start tree.NodeID) (ast.Node, error) {
	d.mu.RLock()
	n, ok := d.cache[xpath]
	d.mu.RUnlock()
	if ok {
		return n, nil
	}
	parsed, err := parser.Parse(xpath)
	if err != nil {
		return nil, err
	}
	inscope := d.doc.InScopeNamespaces(start)
	opts := rewrite.Options{
		Resolve: func(prefix string) (string, bool) {
			uri, ok := inscope[prefix]
			return uri, ok
		},
	}
	rewritten, err := rewrite.Rewrite(parsed, opts)
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	d.cache[xpath] = rewritten
	d.mu.Unlock()
	return rewritten, nil
}
