// Package rewrite implements the static rewrite pass between parsing
// and evaluation: prefix-to-URI resolution ahead of time so evaluation
// never repeats a namespace lookup per node, constant folding of purely
// literal arithmetic, and tagging predicates that reduce to a single
// known position so internal/eval can select directly instead of
// testing every candidate's effective boolean value.
//
// The NSResolver signature mirrors the (prefix string) -> (uri string,
// ok bool) shape internal/tree.LookupPrefix already uses.
package rewrite

import (
	"github.com/basilisk-labs/xdom/internal/ast"
	"github.com/basilisk-labs/xdom/internal/value"
	"github.com/basilisk-labs/xdom/internal/xerr"
)

// NSResolver resolves a namespace prefix to a URI in the static context
// the expression was compiled against (an in-scope-namespaces snapshot
// taken from the context node, per XPath's static namespace binding
// rules).
type NSResolver func(prefix string) (uri string, ok bool)

// Options configures the rewrite pass.
type Options struct {
	// Resolve looks up a namespace prefix. Required for any expression
	// using a prefixed name; nil is only safe for prefix-free expressions.
	Resolve NSResolver
	// DefaultElementNS is used for unprefixed NameTests, per the
	// "default element/type namespace" static context component. Left
	// "" (no default namespace) unless the caller declared one.
	DefaultElementNS string
	// DefaultFunctionNS is used for unprefixed function calls. Defaults
	// to the fn: namespace when "".
	DefaultFunctionNS string
}

const nsFn = "http://www.w3.org/2005/xpath-functions"

// Rewrite runs the static pass over n, returning a new tree (nodes are
// copied, not mutated in place, so a cached parse result can be
// rewritten more than once against different static contexts).
func Rewrite(n ast.Node, opts Options) (ast.Node, error) {
	r := &rewriter{opts: opts}
	return r.walk(n)
}

type rewriter struct {
	opts Options
}

func (r *rewriter) resolvePrefix(prefix string, offset int) (string, error) {
	if prefix == "" {
		return "", nil
	}
	if prefix == "xml" {
		return "http://www.w3.org/XML/1998/namespace", nil
	}
	if r.opts.Resolve == nil {
		return "", xerr.Staticf(offset, "no namespace bound to prefix %q", prefix)
	}
	uri, ok := r.opts.Resolve(prefix)
	if !ok {
		return "", xerr.Staticf(offset, "no namespace bound to prefix %q", prefix)
	}
	return uri, nil
}

func (r *rewriter) walk(n ast.Node) (ast.Node, error) {
	if n == nil {
		return nil, nil
	}
	switch t := n.(type) {
	case *ast.Literal, *ast.VarRef, *ast.ContextItem:
		return n, nil
	case *ast.BinaryExpr:
		left, err := r.walk(t.Left)
		if err != nil {
			return nil, err
		}
		right, err := r.walk(t.Right)
		if err != nil {
			return nil, err
		}
		out := &ast.BinaryExpr{Op: t.Op, Left: left, Right: right, Offset: t.Offset}
		return foldBinary(out), nil
	case *ast.UnaryExpr:
		operand, err := r.walk(t.Operand)
		if err != nil {
			return nil, err
		}
		out := &ast.UnaryExpr{Op: t.Op, Operand: operand, Offset: t.Offset}
		return foldUnary(out), nil
	case *ast.IfExpr:
		cond, err := r.walk(t.Cond)
		if err != nil {
			return nil, err
		}
		thenE, err := r.walk(t.Then)
		if err != nil {
			return nil, err
		}
		elseE, err := r.walk(t.Else)
		if err != nil {
			return nil, err
		}
		return &ast.IfExpr{Cond: cond, Then: thenE, Else: elseE, Offset: t.Offset}, nil
	case *ast.ForExpr:
		bindings, err := r.walkForBindings(t.Bindings)
		if err != nil {
			return nil, err
		}
		body, err := r.walk(t.Body)
		if err != nil {
			return nil, err
		}
		return &ast.ForExpr{Bindings: bindings, Body: body, Offset: t.Offset}, nil
	case *ast.LetExpr:
		var bindings []ast.LetBinding
		for _, b := range t.Bindings {
			e, err := r.walk(b.Expr)
			if err != nil {
				return nil, err
			}
			bindings = append(bindings, ast.LetBinding{Var: b.Var, Expr: e})
		}
		body, err := r.walk(t.Body)
		if err != nil {
			return nil, err
		}
		return &ast.LetExpr{Bindings: bindings, Body: body, Offset: t.Offset}, nil
	case *ast.QuantifiedExpr:
		bindings, err := r.walkForBindings(t.Bindings)
		if err != nil {
			return nil, err
		}
		test, err := r.walk(t.Test)
		if err != nil {
			return nil, err
		}
		return &ast.QuantifiedExpr{Every: t.Every, Bindings: bindings, Test: test, Offset: t.Offset}, nil
	case *ast.InstanceOfExpr:
		operand, err := r.walk(t.Operand)
		if err != nil {
			return nil, err
		}
		return &ast.InstanceOfExpr{Operand: operand, Type: t.Type, Offset: t.Offset}, nil
	case *ast.CastableExpr:
		operand, err := r.walk(t.Operand)
		if err != nil {
			return nil, err
		}
		return &ast.CastableExpr{Operand: operand, Type: t.Type, Offset: t.Offset}, nil
	case *ast.CastExpr:
		operand, err := r.walk(t.Operand)
		if err != nil {
			return nil, err
		}
		return &ast.CastExpr{Operand: operand, Type: t.Type, Offset: t.Offset}, nil
	case *ast.TreatExpr:
		operand, err := r.walk(t.Operand)
		if err != nil {
			return nil, err
		}
		return &ast.TreatExpr{Operand: operand, Type: t.Type, Offset: t.Offset}, nil
	case *ast.PathExpr:
		steps := make([]ast.Node, len(t.Steps))
		for i, s := range t.Steps {
			w, err := r.walk(s)
			if err != nil {
				return nil, err
			}
			steps[i] = w
		}
		return &ast.PathExpr{Rooted: t.Rooted, Descendant: t.Descendant, Steps: steps, Offset: t.Offset}, nil
	case *ast.Step:
		test, err := r.resolveNodeTest(t.Test, t.Axis, t.Offset)
		if err != nil {
			return nil, err
		}
		preds := make([]ast.Node, len(t.Predicates))
		for i, p := range t.Predicates {
			w, err := r.walk(p)
			if err != nil {
				return nil, err
			}
			preds[i] = tagPositional(w)
		}
		return &ast.Step{Axis: t.Axis, Test: test, Predicates: preds, Offset: t.Offset}, nil
	case *ast.FilterExpr:
		base, err := r.walk(t.Base)
		if err != nil {
			return nil, err
		}
		preds := make([]ast.Node, len(t.Predicates))
		for i, p := range t.Predicates {
			w, err := r.walk(p)
			if err != nil {
				return nil, err
			}
			preds[i] = tagPositional(w)
		}
		return &ast.FilterExpr{Base: base, Predicates: preds, Offset: t.Offset}, nil
	case *ast.FunctionCall:
		uri, err := r.resolveFunctionNS(t.Prefix, t.Offset)
		if err != nil {
			return nil, err
		}
		args := make([]ast.Node, len(t.Args))
		for i, a := range t.Args {
			w, err := r.walk(a)
			if err != nil {
				return nil, err
			}
			args[i] = w
		}
		return &ast.FunctionCall{Prefix: t.Prefix, Name: t.Name, Args: args, Offset: t.Offset, URI: uri, Resolved: true}, nil
	case *ast.ArrayLiteral:
		members := make([]ast.Node, len(t.Members))
		for i, m := range t.Members {
			w, err := r.walk(m)
			if err != nil {
				return nil, err
			}
			members[i] = w
		}
		return &ast.ArrayLiteral{Members: members, Offset: t.Offset}, nil
	case *ast.MapConstructor:
		entries := make([]ast.MapEntryNode, len(t.Entries))
		for i, e := range t.Entries {
			k, err := r.walk(e.Key)
			if err != nil {
				return nil, err
			}
			v, err := r.walk(e.Value)
			if err != nil {
				return nil, err
			}
			entries[i] = ast.MapEntryNode{Key: k, Value: v}
		}
		return &ast.MapConstructor{Entries: entries, Offset: t.Offset}, nil
	case *ast.SimpleMapExpr:
		left, err := r.walk(t.Left)
		if err != nil {
			return nil, err
		}
		right, err := r.walk(t.Right)
		if err != nil {
			return nil, err
		}
		return &ast.SimpleMapExpr{Left: left, Right: right, Offset: t.Offset}, nil
	case *ast.LookupExpr:
		base, err := r.walk(t.Base)
		if err != nil {
			return nil, err
		}
		return &ast.LookupExpr{Base: base, Key: t.Key, Offset: t.Offset}, nil
	case *ast.Parenthesized:
		items := make([]ast.Node, len(t.Items))
		for i, it := range t.Items {
			w, err := r.walk(it)
			if err != nil {
				return nil, err
			}
			items[i] = w
		}
		return &ast.Parenthesized{Items: items, Offset: t.Offset}, nil
	}
	return n, nil
}

func (r *rewriter) walkForBindings(bindings []ast.ForBinding) ([]ast.ForBinding, error) {
	out := make([]ast.ForBinding, len(bindings))
	for i, b := range bindings {
		seq, err := r.walk(b.Seq)
		if err != nil {
			return nil, err
		}
		out[i] = ast.ForBinding{Var: b.Var, Seq: seq}
	}
	return out, nil
}

func (r *rewriter) resolveNodeTest(test ast.NodeTest, axis string, offset int) (ast.NodeTest, error) {
	if test.NameTest == nil {
		return test, nil
	}
	nt := *test.NameTest
	switch {
	case nt.AnyPrefix, nt.AnyLocal && nt.Prefix == "":
		// no prefix to resolve
	case nt.Prefix != "":
		uri, err := r.resolvePrefix(nt.Prefix, offset)
		if err != nil {
			return test, err
		}
		nt.URI, nt.Resolved = uri, true
	case nt.NoPrefix && axis != "attribute":
		nt.URI, nt.Resolved = r.opts.DefaultElementNS, true
	default:
		nt.Resolved = true
	}
	return ast.NodeTest{NameTest: &nt, KindTest: test.KindTest}, nil
}

func (r *rewriter) resolveFunctionNS(prefix string, offset int) (string, error) {
	if prefix == "" {
		if r.opts.DefaultFunctionNS != "" {
			return r.opts.DefaultFunctionNS, nil
		}
		return nsFn, nil
	}
	return r.resolvePrefix(prefix, offset)
}

// tagPositional wraps a predicate expression in ast.PositionalPredicate
// when it statically reduces to a single 1-based position, letting
// internal/eval fast-path "[N]" instead of testing every candidate.
func tagPositional(pred ast.Node) ast.Node {
	if lit, ok := pred.(*ast.Literal); ok && lit.Kind == "integer" {
		return &ast.PositionalPredicate{Index: int(lit.Num), Expr: pred}
	}
	return pred
}

func foldUnary(u *ast.UnaryExpr) ast.Node {
	lit, ok := u.Operand.(*ast.Literal)
	if !ok || lit.Kind == "string" {
		return u
	}
	n := lit.Num
	if u.Op == "-" {
		n = -n
	}
	return &ast.Literal{Kind: lit.Kind, Num: n, Offset: u.Offset}
}

// literalItem builds the value.Item a numeric ast.Literal denotes, so
// foldBinary can promote through value.Arith's rank table instead of
// re-deriving a parallel one here.
func literalItem(lit *ast.Literal) value.Item {
	switch lit.Kind {
	case "integer":
		return value.Integer(int64(lit.Num))
	case "decimal":
		return value.Decimal(lit.Num)
	default:
		return value.Double(lit.Num)
	}
}

func itemKind(itm value.Item) (string, float64) {
	switch t := itm.(type) {
	case value.Integer:
		return "integer", float64(t)
	case value.Decimal:
		return "decimal", float64(t)
	case value.Double:
		return "double", float64(t)
	default:
		return "double", 0
	}
}

func foldBinary(b *ast.BinaryExpr) ast.Node {
	left, ok1 := b.Left.(*ast.Literal)
	right, ok2 := b.Right.(*ast.Literal)
	if !ok1 || !ok2 || left.Kind == "string" || right.Kind == "string" {
		return b
	}
	switch b.Op {
	case "+", "-", "*":
	default:
		return b
	}
	seq, err := value.Arith(b.Op, value.Singleton(literalItem(left)), value.Singleton(literalItem(right)))
	if err != nil || len(seq) != 1 {
		return b
	}
	kind, result := itemKind(seq[0])
	return &ast.Literal{Kind: kind, Num: result, Offset: b.Offset}
}
