package eval

import (
	"github.com/basilisk-labs/xdom/internal/ast"
	"github.com/basilisk-labs/xdom/internal/tree"
	"github.com/basilisk-labs/xdom/internal/value"
	"github.com/basilisk-labs/xdom/internal/xerr"
)

var axisByName = map[string]tree.Axis{
	"self":               tree.AxisSelf,
	"child":              tree.AxisChild,
	"parent":             tree.AxisParent,
	"descendant":         tree.AxisDescendant,
	"descendant-or-self": tree.AxisDescendantOrSelf,
	"ancestor":           tree.AxisAncestor,
	"ancestor-or-self":   tree.AxisAncestorOrSelf,
	"following":          tree.AxisFollowing,
	"preceding":          tree.AxisPreceding,
	"following-sibling":  tree.AxisFollowingSibling,
	"preceding-sibling":  tree.AxisPrecedingSibling,
	"attribute":          tree.AxisAttribute,
	"namespace":          tree.AxisNamespace,
}

// evalPath implements the path-expression rule: evaluate the root (or
// the current context item for a relative path), then thread each step's
// result sequence into the next step as its context sequence.
func evalPath(ctx *Context, n *ast.PathExpr) (value.Sequence, error) {
	var current value.Sequence
	if n.Rooted {
		if ctx.Doc == nil {
			return nil, xerr.Dynamicf("XPDY0002", "absolute path with no document in context")
		}
		current = value.Singleton(value.Node{Doc: ctx.Doc, ID: ctx.Doc.DocumentNode()})
		if n.Descendant {
			out, err := stepAxis(ctx, current, "descendant-or-self", ast.NodeTest{KindTest: &ast.KindTest{Kind: "node"}}, nil)
			if err != nil {
				return nil, err
			}
			current = out
		}
	} else {
		if !ctx.HasItem {
			return nil, xerr.Dynamicf("XPDY0002", "relative path with no context item")
		}
		current = ctx.contextSequence()
	}

	for _, s := range n.Steps {
		var err error
		current, err = evalPathStep(ctx, current, s)
		if err != nil {
			return nil, err
		}
	}
	return current, nil
}

func evalPathStep(ctx *Context, current value.Sequence, step ast.Node) (value.Sequence, error) {
	s, ok := step.(*ast.Step)
	if !ok {
		// A path step that is not an axis step (e.g. a parenthesized
		// PostfixExpr promoted into the Steps list) evaluates against
		// each context item with focus, then concatenates.
		var out value.Sequence
		for i, itm := range current {
			next := ctx.withFocus(itm, i+1, len(current))
			v, err := Eval(next, step)
			if err != nil {
				return nil, err
			}
			out = append(out, v...)
		}
		return out, nil
	}

	var collected []tree.NodeID
	var doc *tree.Document
	for _, itm := range current {
		n, ok := itm.(value.Node)
		if !ok {
			return nil, xerr.Typef("XPTY0004", "step: context item is not a node")
		}
		if doc == nil {
			doc = n.Doc
		}
		candidates, err := stepAxisIDs(n.Doc, s.Axis, n.ID, s.Test)
		if err != nil {
			return nil, err
		}
		filtered, err := applyPredicates(ctx, n.Doc, candidates, s.Axis, s.Predicates)
		if err != nil {
			return nil, err
		}
		collected = append(collected, filtered...)
	}
	if doc == nil {
		return value.Empty, nil
	}
	sorted := doc.SortDocumentOrder(collected)
	out := make(value.Sequence, len(sorted))
	for i, id := range sorted {
		out[i] = value.Node{Doc: doc, ID: id}
	}
	return out, nil
}

// stepAxis is a convenience used for the implicit "//" root step, which
// has no predicates.
func stepAxis(ctx *Context, current value.Sequence, axisName string, test ast.NodeTest, preds []ast.Node) (value.Sequence, error) {
	var collected []tree.NodeID
	var doc *tree.Document
	for _, itm := range current {
		n, ok := itm.(value.Node)
		if !ok {
			return nil, xerr.Typef("XPTY0004", "step: context item is not a node")
		}
		if doc == nil {
			doc = n.Doc
		}
		candidates, err := stepAxisIDs(n.Doc, axisName, n.ID, test)
		if err != nil {
			return nil, err
		}
		filtered, err := applyPredicates(ctx, n.Doc, candidates, axisName, preds)
		if err != nil {
			return nil, err
		}
		collected = append(collected, filtered...)
	}
	if doc == nil {
		return value.Empty, nil
	}
	sorted := doc.SortDocumentOrder(collected)
	out := make(value.Sequence, len(sorted))
	for i, id := range sorted {
		out[i] = value.Node{Doc: doc, ID: id}
	}
	return out, nil
}

func stepAxisIDs(doc *tree.Document, axisName string, from tree.NodeID, test ast.NodeTest) ([]tree.NodeID, error) {
	axis, ok := axisByName[axisName]
	if !ok {
		return nil, xerr.Staticf(-1, "unknown axis %q", axisName)
	}
	candidates := doc.Axis(axis, from)
	var out []tree.NodeID
	for _, id := range candidates {
		if matchesNodeTest(doc, id, axis, test) {
			out = append(out, id)
		}
	}
	return out, nil
}

func matchesNodeTest(doc *tree.Document, id tree.NodeID, axis tree.Axis, test ast.NodeTest) bool {
	if test.KindTest != nil {
		return matchesKindTestOnAxis(doc, id, *test.KindTest)
	}
	nt := test.NameTest
	if nt == nil {
		return true
	}
	if doc.Kind(id) != axis.PrincipalKind() {
		return false
	}
	if nt.AnyPrefix && nt.AnyLocal {
		return true
	}
	name := doc.Name(id)
	if nt.AnyPrefix {
		return name.Local == nt.Local
	}
	if nt.AnyLocal {
		// A bare "*" carries no prefix and is never namespace-resolved
		// by internal/rewrite (there is nothing to resolve), so it
		// matches any name; "prefix:*" is resolved and restricts by URI.
		if !nt.Resolved {
			return true
		}
		return name.URI == nt.URI
	}
	return name.URI == nt.URI && name.Local == nt.Local
}

func matchesKindTestOnAxis(doc *tree.Document, id tree.NodeID, kt ast.KindTest) bool {
	k := doc.Kind(id)
	switch kt.Kind {
	case "node":
		return true
	case "text":
		return k == tree.Text
	case "comment":
		return k == tree.Comment
	case "processing-instruction":
		if k != tree.ProcInst {
			return false
		}
		return kt.Name == "" || doc.Name(id).Local == kt.Name
	case "element":
		if k != tree.Element {
			return false
		}
		return kt.Name == "" || doc.Name(id).Local == kt.Name
	case "attribute":
		if k != tree.Attribute {
			return false
		}
		return kt.Name == "" || doc.Name(id).Local == kt.Name
	case "document-node":
		return k == tree.DocumentKind
	}
	return false
}

// applyPredicates filters candidates left to right: position is the
// 1-based index in the axis's natural enumeration order (already
// reverse for reverse axes, since tree.Document.Axis returns candidates
// in the axis's natural order).
func applyPredicates(ctx *Context, doc *tree.Document, candidates []tree.NodeID, axisName string, preds []ast.Node) ([]tree.NodeID, error) {
	for _, pred := range preds {
		var kept []tree.NodeID
		size := len(candidates)
		for i, id := range candidates {
			pos := i + 1
			pc := ctx.withFocus(value.Node{Doc: doc, ID: id}, pos, size)
			ok, err := evalItemPredicate(pc, pred, pos)
			if err != nil {
				return nil, err
			}
			if ok {
				kept = append(kept, id)
			}
		}
		candidates = kept
	}
	return candidates, nil
}

func evalFilter(ctx *Context, n *ast.FilterExpr) (value.Sequence, error) {
	base, err := Eval(ctx, n.Base)
	if err != nil {
		return nil, err
	}
	for _, pred := range n.Predicates {
		var kept value.Sequence
		size := len(base)
		for i, itm := range base {
			pos := i + 1
			pc := ctx.withFocus(itm, pos, size)
			ok, err := evalItemPredicate(pc, pred, pos)
			if err != nil {
				return nil, err
			}
			if ok {
				kept = append(kept, itm)
			}
		}
		base = kept
	}
	return base, nil
}

func evalItemPredicate(ctx *Context, pred ast.Node, pos int) (bool, error) {
	if pp, ok := pred.(*ast.PositionalPredicate); ok {
		return pos == pp.Index, nil
	}
	v, err := Eval(ctx, pred)
	if err != nil {
		return false, err
	}
	if len(v) == 1 {
		switch v[0].(type) {
		case value.Integer, value.Decimal, value.Double:
			f, err := value.AsNumber(v)
			if err != nil {
				return false, err
			}
			return f == float64(pos), nil
		}
	}
	return value.EffectiveBoolean(v)
}
