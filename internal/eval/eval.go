package eval

import (
	"github.com/basilisk-labs/xdom/internal/ast"
	"github.com/basilisk-labs/xdom/internal/tree"
	"github.com/basilisk-labs/xdom/internal/value"
	"github.com/basilisk-labs/xdom/internal/xerr"
	"github.com/basilisk-labs/xdom/internal/xfunc"
)

// Eval evaluates n under ctx, producing a value.Sequence or an error.
func Eval(ctx *Context, n ast.Node) (value.Sequence, error) {
	switch t := n.(type) {
	case *ast.Literal:
		return evalLiteral(t)
	case *ast.VarRef:
		return evalVarRef(ctx, t)
	case *ast.ContextItem:
		if !ctx.HasItem {
			return nil, xerr.Dynamicf("XPDY0002", "no context item is set")
		}
		return ctx.contextSequence(), nil
	case *ast.BinaryExpr:
		return evalBinary(ctx, t)
	case *ast.UnaryExpr:
		operand, err := Eval(ctx, t.Operand)
		if err != nil {
			return nil, err
		}
		if t.Op == "-" {
			return value.UnaryMinus(operand)
		}
		return value.Arith("+", value.Singleton(value.Integer(0)), operand)
	case *ast.IfExpr:
		return evalIf(ctx, t)
	case *ast.ForExpr:
		return evalFor(ctx, t)
	case *ast.LetExpr:
		return evalLet(ctx, t)
	case *ast.QuantifiedExpr:
		return evalQuantified(ctx, t)
	case *ast.InstanceOfExpr:
		return evalInstanceOf(ctx, t)
	case *ast.CastableExpr:
		return evalCastable(ctx, t)
	case *ast.CastExpr:
		return evalCast(ctx, t)
	case *ast.TreatExpr:
		return evalTreat(ctx, t)
	case *ast.PathExpr:
		return evalPath(ctx, t)
	case *ast.FilterExpr:
		return evalFilter(ctx, t)
	case *ast.FunctionCall:
		return evalFunctionCall(ctx, t)
	case *ast.ArrayLiteral:
		return evalArrayLiteral(ctx, t)
	case *ast.MapConstructor:
		return evalMapConstructor(ctx, t)
	case *ast.SimpleMapExpr:
		return evalSimpleMap(ctx, t)
	case *ast.LookupExpr:
		return evalLookup(ctx, t)
	case *ast.Parenthesized:
		return evalParenthesized(ctx, t)
	case *ast.PositionalPredicate:
		return Eval(ctx, t.Expr)
	case *ast.Step:
		if !ctx.HasItem {
			return nil, xerr.Dynamicf("XPDY0002", "relative path with no context item")
		}
		return evalPathStep(ctx, ctx.contextSequence(), t)
	}
	return nil, xerr.Staticf(-1, "unsupported expression node %T", n)
}

func evalLiteral(lit *ast.Literal) (value.Sequence, error) {
	switch lit.Kind {
	case "string":
		return value.Singleton(value.String(lit.Text)), nil
	case "integer":
		return value.Singleton(value.Integer(int64(lit.Num))), nil
	case "decimal":
		return value.Singleton(value.Decimal(lit.Num)), nil
	case "double":
		return value.Singleton(value.Double(lit.Num)), nil
	}
	return nil, xerr.Staticf(lit.Offset, "unknown literal kind %q", lit.Kind)
}

func evalVarRef(ctx *Context, ref *ast.VarRef) (value.Sequence, error) {
	if v, ok := ctx.lookupVar(ref.Name); ok {
		return v, nil
	}
	return nil, xerr.Dynamicf("XPST0008", "undefined variable $%s", ref.Name)
}

func evalIf(ctx *Context, n *ast.IfExpr) (value.Sequence, error) {
	cond, err := Eval(ctx, n.Cond)
	if err != nil {
		return nil, err
	}
	b, err := value.EffectiveBoolean(cond)
	if err != nil {
		return nil, err
	}
	if b {
		return Eval(ctx, n.Then)
	}
	return Eval(ctx, n.Else)
}

func evalParenthesized(ctx *Context, n *ast.Parenthesized) (value.Sequence, error) {
	var out value.Sequence
	for _, item := range n.Items {
		v, err := Eval(ctx, item)
		if err != nil {
			return nil, err
		}
		out = append(out, v...)
	}
	return out, nil
}

// bindingCombos runs body once per tuple of the cross product of
// bindings, in order, threading each binding's variable into ctx before
// evaluating the next binding's sequence.
func bindingCombos(ctx *Context, bindings []ast.ForBinding, i int, run func(*Context) error) error {
	if i == len(bindings) {
		return run(ctx)
	}
	b := bindings[i]
	seq, err := Eval(ctx, b.Seq)
	if err != nil {
		return err
	}
	for _, item := range seq {
		next := ctx.withVar(b.Var, value.Singleton(item))
		if err := bindingCombos(next, bindings, i+1, run); err != nil {
			return err
		}
	}
	return nil
}

func evalFor(ctx *Context, n *ast.ForExpr) (value.Sequence, error) {
	var out value.Sequence
	err := bindingCombos(ctx, n.Bindings, 0, func(c *Context) error {
		v, err := Eval(c, n.Body)
		if err != nil {
			return err
		}
		out = append(out, v...)
		return nil
	})
	return out, err
}

func evalLet(ctx *Context, n *ast.LetExpr) (value.Sequence, error) {
	cur := ctx
	for _, b := range n.Bindings {
		v, err := Eval(cur, b.Expr)
		if err != nil {
			return nil, err
		}
		cur = cur.withVar(b.Var, v)
	}
	return Eval(cur, n.Body)
}

func evalQuantified(ctx *Context, n *ast.QuantifiedExpr) (value.Sequence, error) {
	found := false
	all := true
	err := bindingCombos(ctx, n.Bindings, 0, func(c *Context) error {
		v, err := Eval(c, n.Test)
		if err != nil {
			return err
		}
		b, err := value.EffectiveBoolean(v)
		if err != nil {
			return err
		}
		if b {
			found = true
		} else {
			all = false
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if n.Every {
		return value.Singleton(value.Boolean(all)), nil
	}
	return value.Singleton(value.Boolean(found)), nil
}

func evalSimpleMap(ctx *Context, n *ast.SimpleMapExpr) (value.Sequence, error) {
	left, err := Eval(ctx, n.Left)
	if err != nil {
		return nil, err
	}
	var out value.Sequence
	for i, itm := range left {
		next := ctx.withFocus(itm, i+1, len(left))
		v, err := Eval(next, n.Right)
		if err != nil {
			return nil, err
		}
		out = append(out, v...)
	}
	return out, nil
}

func evalLookup(ctx *Context, n *ast.LookupExpr) (value.Sequence, error) {
	base, err := Eval(ctx, n.Base)
	if err != nil {
		return nil, err
	}
	var out value.Sequence
	for _, itm := range base {
		switch v := itm.(type) {
		case *value.Array:
			if n.Key == "*" {
				for _, m := range v.Members {
					out = append(out, m...)
				}
				continue
			}
			idx, err := lookupOrdinal(n.Key)
			if err != nil {
				return nil, err
			}
			seq, err := v.Get(idx)
			if err != nil {
				return nil, err
			}
			out = append(out, seq...)
		case *value.Map:
			if n.Key == "*" {
				for _, e := range v.Entries {
					out = append(out, e.Value...)
				}
				continue
			}
			seq, ok := v.Get(value.String(n.Key))
			if ok {
				out = append(out, seq...)
			}
		default:
			return nil, xerr.Typef("XPTY0004", "?%s: expected an array or map, got %T", n.Key, itm)
		}
	}
	return out, nil
}

func lookupOrdinal(key string) (int, error) {
	n := 0
	for _, r := range key {
		if r < '0' || r > '9' {
			return 0, xerr.Typef("XPTY0004", "?%s: array lookup key must be an integer", key)
		}
		n = n*10 + int(r-'0')
	}
	return n, nil
}

func evalArrayLiteral(ctx *Context, n *ast.ArrayLiteral) (value.Sequence, error) {
	members := make([]value.Sequence, len(n.Members))
	for i, m := range n.Members {
		v, err := Eval(ctx, m)
		if err != nil {
			return nil, err
		}
		members[i] = v
	}
	return value.Singleton(&value.Array{Members: members}), nil
}

func evalMapConstructor(ctx *Context, n *ast.MapConstructor) (value.Sequence, error) {
	m := &value.Map{}
	for _, e := range n.Entries {
		k, err := Eval(ctx, e.Key)
		if err != nil {
			return nil, err
		}
		atoms := value.Atomize(k)
		if len(atoms) != 1 {
			return nil, xerr.Typef("XPTY0004", "map constructor: key must be a single atomic value")
		}
		v, err := Eval(ctx, e.Value)
		if err != nil {
			return nil, err
		}
		m = m.Put(atoms[0], v)
	}
	return value.Singleton(m), nil
}

func evalFunctionCall(ctx *Context, n *ast.FunctionCall) (value.Sequence, error) {
	args := make([]value.Sequence, len(n.Args))
	for i, a := range n.Args {
		v, err := Eval(ctx, a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	fc := &xfunc.Ctx{Item: ctx.Item, HasItem: ctx.HasItem, Position: ctx.Position, Size: ctx.Size}
	return xfunc.Call(n.URI, n.Name, args, fc)
}

func evalInstanceOf(ctx *Context, n *ast.InstanceOfExpr) (value.Sequence, error) {
	operand, err := Eval(ctx, n.Operand)
	if err != nil {
		return nil, err
	}
	return value.Singleton(value.Boolean(matchesSequenceType(operand, n.Type))), nil
}

func evalTreat(ctx *Context, n *ast.TreatExpr) (value.Sequence, error) {
	operand, err := Eval(ctx, n.Operand)
	if err != nil {
		return nil, err
	}
	if !matchesSequenceType(operand, n.Type) {
		return nil, xerr.Dynamicf("XPDY0050", "treat as %s: dynamic type does not match", n.Type.TypeName)
	}
	return operand, nil
}

// localTypeName strips a namespace prefix from a cast/instance-of type
// name (e.g. "xs:integer" -> "integer"). This module recognizes exactly
// one type namespace, so the prefix carries no information beyond
// syntax; any prefix is accepted.
func localTypeName(name string) string {
	if i := len(name) - 1; i >= 0 {
		for j := i; j >= 0; j-- {
			if name[j] == ':' {
				return name[j+1:]
			}
		}
	}
	return name
}

func evalCastable(ctx *Context, n *ast.CastableExpr) (value.Sequence, error) {
	operand, err := Eval(ctx, n.Operand)
	if err != nil {
		return nil, err
	}
	if len(operand) > 1 || (len(operand) == 0 && n.Type.Occurrence != "?") {
		return value.Singleton(value.Boolean(false)), nil
	}
	if len(operand) == 0 {
		return value.Singleton(value.Boolean(true)), nil
	}
	return value.Singleton(value.Boolean(xfunc.Castable(localTypeName(n.Type.TypeName), operand))), nil
}

func evalCast(ctx *Context, n *ast.CastExpr) (value.Sequence, error) {
	operand, err := Eval(ctx, n.Operand)
	if err != nil {
		return nil, err
	}
	if len(operand) == 0 {
		if n.Type.Occurrence == "?" {
			return value.Empty, nil
		}
		return nil, xerr.Dynamicf("XPTY0004", "cast as %s: empty sequence not allowed", n.Type.TypeName)
	}
	return xfunc.Cast(localTypeName(n.Type.TypeName), operand)
}

// matchesSequenceType implements the small subset of SequenceType
// matching this module needs: cardinality plus atomic-type-name or
// KindTest matching over the closed atomic-type set this module
// recognizes.
func matchesSequenceType(seq value.Sequence, t ast.SequenceType) bool {
	if t.EmptySequence {
		return len(seq) == 0
	}
	switch t.Occurrence {
	case "?":
		if len(seq) > 1 {
			return false
		}
	case "*":
		// any cardinality
	case "+":
		if len(seq) == 0 {
			return false
		}
	default:
		if len(seq) != 1 {
			return false
		}
	}
	for _, itm := range seq {
		if !matchesItemType(itm, t) {
			return false
		}
	}
	return true
}

func matchesItemType(itm value.Item, t ast.SequenceType) bool {
	if t.KindTest != nil {
		n, ok := itm.(value.Node)
		if !ok {
			return false
		}
		return matchesKindTest(n, *t.KindTest)
	}
	switch localTypeName(t.TypeName) {
	case "item":
		return true
	case "node":
		_, ok := itm.(value.Node)
		return ok
	case "boolean":
		_, ok := itm.(value.Boolean)
		return ok
	case "integer":
		_, ok := itm.(value.Integer)
		return ok
	case "decimal":
		_, ok := itm.(value.Decimal)
		return ok
	case "double":
		_, ok := itm.(value.Double)
		return ok
	case "string":
		_, ok := itm.(value.String)
		return ok
	case "untypedAtomic":
		_, ok := itm.(value.UntypedAtomic)
		return ok
	case "QName":
		_, ok := itm.(value.QName)
		return ok
	case "array":
		_, ok := itm.(*value.Array)
		return ok
	case "map":
		_, ok := itm.(*value.Map)
		return ok
	}
	return false
}

func matchesKindTest(n value.Node, kt ast.KindTest) bool {
	if n.Doc == nil {
		return kt.Kind == "node"
	}
	k := n.Doc.Kind(n.ID)
	switch kt.Kind {
	case "node":
		return true
	case "element":
		return k == tree.Element
	case "attribute":
		return k == tree.Attribute
	case "text":
		return k == tree.Text
	case "comment":
		return k == tree.Comment
	case "processing-instruction":
		return k == tree.ProcInst
	case "document-node":
		return k == tree.DocumentKind
	}
	return false
}
