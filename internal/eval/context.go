// Package eval walks a rewritten AST against a dynamic context and
// produces a value.Sequence: a plain recursive function over ast.Node,
// since the tree is inspectable, rather than a chain of closures built
// during parsing.
package eval

import (
	"github.com/basilisk-labs/xdom/internal/tree"
	"github.com/basilisk-labs/xdom/internal/value"
)

// env is one lexical scope of variable bindings, chained to its parent.
// A fresh env is pushed for every for/let/quantified binding rather than
// mutating a single flat map, so a closure capturing one iteration's
// binding never observes a later iteration's value once a "for" loop
// advances.
type env struct {
	parent *env
	name   string
	value  value.Sequence
}

func (e *env) lookup(name string) (value.Sequence, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if cur.name == name {
			return cur.value, true
		}
	}
	return nil, false
}

func (e *env) push(name string, val value.Sequence) *env {
	return &env{parent: e, name: name, value: val}
}

// Context is the dynamic context threaded through evaluation: the
// context item/position/size focus, the variable environment, and the
// document the focus node (if any) belongs to.
type Context struct {
	Doc      *tree.Document
	Item     value.Item
	HasItem  bool
	Position int
	Size     int
	vars     *env
}

// NewContext builds the initial dynamic context for evaluating an
// expression with node as the context item.
func NewContext(doc *tree.Document, node tree.NodeID) *Context {
	return &Context{
		Doc:      doc,
		Item:     value.Node{Doc: doc, ID: node},
		HasItem:  true,
		Position: 1,
		Size:     1,
	}
}

func (c *Context) withFocus(item value.Item, pos, size int) *Context {
	n := *c
	n.Item, n.HasItem, n.Position, n.Size = item, true, pos, size
	return &n
}

func (c *Context) withVar(name string, val value.Sequence) *Context {
	n := *c
	n.vars = c.vars.push(name, val)
	return &n
}

func (c *Context) lookupVar(name string) (value.Sequence, bool) {
	return c.vars.lookup(name)
}

func (c *Context) contextSequence() value.Sequence {
	if !c.HasItem {
		return value.Empty
	}
	return value.Singleton(c.Item)
}
