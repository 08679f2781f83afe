package eval

import (
	"github.com/basilisk-labs/xdom/internal/ast"
	"github.com/basilisk-labs/xdom/internal/tree"
	"github.com/basilisk-labs/xdom/internal/value"
	"github.com/basilisk-labs/xdom/internal/xerr"
)

var generalOps = map[string]bool{"=": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true}
var valueOps = map[string]bool{"eq": true, "ne": true, "lt": true, "le": true, "gt": true, "ge": true}
var nodeOps = map[string]bool{"is": true, "<<": true, ">>": true}
var arithOps = map[string]bool{"+": true, "-": true, "*": true, "div": true, "idiv": true, "mod": true}

func evalBinary(ctx *Context, n *ast.BinaryExpr) (value.Sequence, error) {
	switch n.Op {
	case "or":
		return evalOr(ctx, n)
	case "and":
		return evalAnd(ctx, n)
	case "to":
		left, err := Eval(ctx, n.Left)
		if err != nil {
			return nil, err
		}
		right, err := Eval(ctx, n.Right)
		if err != nil {
			return nil, err
		}
		return value.Range(left, right)
	case "union", "|", "intersect", "except":
		return evalSetOp(ctx, n)
	}

	left, err := Eval(ctx, n.Left)
	if err != nil {
		return nil, err
	}
	right, err := Eval(ctx, n.Right)
	if err != nil {
		return nil, err
	}

	switch {
	case arithOps[n.Op]:
		return value.Arith(n.Op, left, right)
	case generalOps[n.Op]:
		b, err := value.GeneralCompare(n.Op, left, right)
		if err != nil {
			return nil, err
		}
		return value.Singleton(value.Boolean(b)), nil
	case valueOps[n.Op]:
		if len(left) == 0 || len(right) == 0 {
			return value.Empty, nil
		}
		if len(left) != 1 || len(right) != 1 {
			return nil, xerr.Typef("XPTY0004", "%s: operands must be singletons", n.Op)
		}
		b, err := value.ValueCompare(n.Op, left, right)
		if err != nil {
			return nil, err
		}
		return value.Singleton(value.Boolean(b)), nil
	case n.Op == "is":
		if len(left) == 0 || len(right) == 0 {
			return value.Empty, nil
		}
		b, err := value.NodeIs(left, right)
		if err != nil {
			return nil, err
		}
		return value.Singleton(value.Boolean(b)), nil
	case n.Op == "<<" || n.Op == ">>":
		if len(left) == 0 || len(right) == 0 {
			return value.Empty, nil
		}
		b, err := value.NodeOrder(n.Op, left, right)
		if err != nil {
			return nil, err
		}
		return value.Singleton(value.Boolean(b)), nil
	}
	return nil, xerr.Staticf(n.Offset, "unsupported operator %q", n.Op)
}

// evalOr/evalAnd short-circuit: the not-taken branch is never evaluated.
func evalOr(ctx *Context, n *ast.BinaryExpr) (value.Sequence, error) {
	left, err := Eval(ctx, n.Left)
	if err != nil {
		return nil, err
	}
	lb, err := value.EffectiveBoolean(left)
	if err != nil {
		return nil, err
	}
	if lb {
		return value.Singleton(value.Boolean(true)), nil
	}
	right, err := Eval(ctx, n.Right)
	if err != nil {
		return nil, err
	}
	rb, err := value.EffectiveBoolean(right)
	if err != nil {
		return nil, err
	}
	return value.Singleton(value.Boolean(rb)), nil
}

func evalAnd(ctx *Context, n *ast.BinaryExpr) (value.Sequence, error) {
	left, err := Eval(ctx, n.Left)
	if err != nil {
		return nil, err
	}
	lb, err := value.EffectiveBoolean(left)
	if err != nil {
		return nil, err
	}
	if !lb {
		return value.Singleton(value.Boolean(false)), nil
	}
	right, err := Eval(ctx, n.Right)
	if err != nil {
		return nil, err
	}
	rb, err := value.EffectiveBoolean(right)
	if err != nil {
		return nil, err
	}
	return value.Singleton(value.Boolean(rb)), nil
}

func evalSetOp(ctx *Context, n *ast.BinaryExpr) (value.Sequence, error) {
	left, err := Eval(ctx, n.Left)
	if err != nil {
		return nil, err
	}
	right, err := Eval(ctx, n.Right)
	if err != nil {
		return nil, err
	}
	leftIDs, doc, err := nodeIDs(left, n.Op)
	if err != nil {
		return nil, err
	}
	rightIDs, doc2, err := nodeIDs(right, n.Op)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		doc = doc2
	}
	var ids []tree.NodeID
	switch n.Op {
	case "union", "|":
		ids = append(append([]tree.NodeID{}, leftIDs...), rightIDs...)
	case "intersect":
		set := map[tree.NodeID]bool{}
		for _, id := range rightIDs {
			set[id] = true
		}
		for _, id := range leftIDs {
			if set[id] {
				ids = append(ids, id)
			}
		}
	case "except":
		set := map[tree.NodeID]bool{}
		for _, id := range rightIDs {
			set[id] = true
		}
		for _, id := range leftIDs {
			if !set[id] {
				ids = append(ids, id)
			}
		}
	}
	if doc == nil {
		return value.Empty, nil
	}
	sorted := doc.SortDocumentOrder(ids)
	out := make(value.Sequence, len(sorted))
	for i, id := range sorted {
		out[i] = value.Node{Doc: doc, ID: id}
	}
	return out, nil
}

func nodeIDs(seq value.Sequence, op string) ([]tree.NodeID, *tree.Document, error) {
	var doc *tree.Document
	ids := make([]tree.NodeID, 0, len(seq))
	for _, itm := range seq {
		n, ok := itm.(value.Node)
		if !ok {
			return nil, nil, xerr.Typef("XPTY0004", "%s: operands must be node sequences", op)
		}
		if doc == nil {
			doc = n.Doc
		}
		ids = append(ids, n.ID)
	}
	return ids, doc, nil
}
