package xdom

import (
	"github.com/basilisk-labs/xdom/internal/eval"
	"github.com/basilisk-labs/xdom/internal/value"
)

// Value wraps the arbitrary-type result of EvalXPath: a sequence of
// atomics and/or nodes.
type Value struct {
	seq value.Sequence
	d   *Document
}

// String renders v using XPath's value-serialization rules.
func (v Value) String() string { return v.seq.String() }

// Len reports the number of items in the sequence.
func (v Value) Len() int { return len(v.seq) }

// Nodes returns v's items as Nodes, failing with a TypeError if any item
// is not a node — the same rule EachNode/GetNodeset apply.
func (v Value) Nodes() ([]Node, error) {
	return sequenceToNodes(v.d, v.seq)
}

func sequenceToNodes(d *Document, seq value.Sequence) ([]Node, error) {
	out := make([]Node, 0, len(seq))
	for _, itm := range seq {
		n, ok := itm.(value.Node)
		if !ok {
			return nil, &Error{Kind: TypeError, Message: "result is not a node sequence", Offset: -1}
		}
		out = append(out, wrap(d, n.ID))
	}
	return out, nil
}

// EvalXPath evaluates xpath with n as the context node and returns the
// resulting value, which may hold atomics, nodes, or a mix of both.
func (n Node) EvalXPath(xpath string) (Value, error) {
	rewritten, err := n.d.compile(xpath, n.id)
	if err != nil {
		return Value{}, wrapErr(err)
	}
	ctx := eval.NewContext(n.d.doc, n.id)
	seq, err := eval.Eval(ctx, rewritten)
	if err != nil {
		return Value{}, wrapErr(err)
	}
	return Value{seq: seq, d: n.d}, nil
}

// GetNodeset evaluates xpath with n as the context node and returns the
// full ordered node sequence, failing with a TypeError if the result is
// not a node sequence.
func (n Node) GetNodeset(xpath string) ([]Node, error) {
	v, err := n.EvalXPath(xpath)
	if err != nil {
		return nil, err
	}
	return v.Nodes()
}

// GetFirstNode evaluates xpath with n as the context node and returns the
// first node in document order, or ok=false if the result is empty.
func (n Node) GetFirstNode(xpath string) (Node, bool, error) {
	nodes, err := n.GetNodeset(xpath)
	if err != nil {
		return Node{}, false, err
	}
	if len(nodes) == 0 {
		return Node{}, false, nil
	}
	return nodes[0], true, nil
}

// EachNode evaluates xpath with n as the context node and invokes visitor
// on each resulting node in document order. If the result is not a node
// sequence, visitor is never called and EachNode fails with a TypeError.
func (n Node) EachNode(xpath string, visitor func(Node) error) error {
	nodes, err := n.GetNodeset(xpath)
	if err != nil {
		return err
	}
	for _, node := range nodes {
		if err := visitor(node); err != nil {
			return err
		}
	}
	return nil
}

// EvalXPath evaluates xpath with the document node as the context item —
// a convenience for absolute expressions that don't depend on a specific
// starting element.
func (d *Document) EvalXPath(xpath string) (Value, error) {
	return wrap(d, d.doc.DocumentNode()).EvalXPath(xpath)
}
