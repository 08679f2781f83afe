// One function body per atomic type constructor, registered under the
// XML Schema namespace. Scoped to the seven atomic types this module
// actually recognizes (boolean, integer, decimal, double, string,
// untypedAtomic, QName); date/time/duration constructors have no home
// here since no atomic type beyond those seven is ever produced or
// compared elsewhere in this module, and adding date/time arithmetic
// without a single comparison or function that consumes it would be
// dead code.
package xfunc

import (
	"strconv"
	"strings"

	"github.com/basilisk-labs/xdom/internal/value"
	"github.com/basilisk-labs/xdom/internal/xerr"
)

func castOneItem(args []value.Sequence, fn string) (value.Item, error) {
	atoms := value.Atomize(args[0])
	if len(atoms) == 0 {
		return nil, nil
	}
	if len(atoms) != 1 {
		return nil, xerr.Typef("XPTY0004", "%s: expected a single item", fn)
	}
	return atoms[0], nil
}

func xsBoolean(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	itm, err := castOneItem(args, "xs:boolean")
	if err != nil || itm == nil {
		return value.Empty, err
	}
	switch v := itm.(type) {
	case value.Boolean:
		return value.Singleton(v), nil
	case value.String, value.UntypedAtomic:
		switch strings.TrimSpace(v.String()) {
		case "true", "1":
			return value.Singleton(value.Boolean(true)), nil
		case "false", "0":
			return value.Singleton(value.Boolean(false)), nil
		}
		return nil, xerr.Dynamicf("FORG0001", "cannot cast %q to xs:boolean", v.String())
	case value.Integer, value.Decimal, value.Double:
		return value.Singleton(value.Boolean(itm.String() != "0")), nil
	}
	return nil, xerr.Dynamicf("FORG0001", "cannot cast %T to xs:boolean", itm)
}

func xsInteger(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	itm, err := castOneItem(args, "xs:integer")
	if err != nil || itm == nil {
		return value.Empty, err
	}
	switch v := itm.(type) {
	case value.Integer:
		return value.Singleton(v), nil
	case value.Decimal:
		return value.Singleton(value.Integer(int64(v))), nil
	case value.Double:
		return value.Singleton(value.Integer(int64(v))), nil
	default:
		n, err := strconv.ParseInt(strings.TrimSpace(v.String()), 10, 64)
		if err != nil {
			return nil, xerr.Dynamicf("FORG0001", "cannot cast %q to xs:integer", v.String())
		}
		return value.Singleton(value.Integer(n)), nil
	}
}

func xsDecimal(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	itm, err := castOneItem(args, "xs:decimal")
	if err != nil || itm == nil {
		return value.Empty, err
	}
	f, err := value.AsNumber(value.Singleton(itm))
	if err != nil {
		return nil, xerr.Dynamicf("FORG0001", "cannot cast %v to xs:decimal", itm)
	}
	return value.Singleton(value.Decimal(f)), nil
}

func xsDouble(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	itm, err := castOneItem(args, "xs:double")
	if err != nil || itm == nil {
		return value.Empty, err
	}
	f, err := value.AsNumber(value.Singleton(itm))
	if err != nil {
		return nil, xerr.Dynamicf("FORG0001", "cannot cast %v to xs:double", itm)
	}
	return value.Singleton(value.Double(f)), nil
}

func xsString(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	itm, err := castOneItem(args, "xs:string")
	if err != nil || itm == nil {
		return value.Empty, err
	}
	return value.Singleton(value.String(value.AsString(value.Singleton(itm)))), nil
}

func xsUntypedAtomic(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	itm, err := castOneItem(args, "xs:untypedAtomic")
	if err != nil || itm == nil {
		return value.Empty, err
	}
	return value.Singleton(value.UntypedAtomic(value.AsString(value.Singleton(itm)))), nil
}

func xsQName(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	itm, err := castOneItem(args, "xs:QName")
	if err != nil || itm == nil {
		return value.Empty, err
	}
	if q, ok := itm.(value.QName); ok {
		return value.Singleton(q), nil
	}
	s := strings.TrimSpace(itm.String())
	prefix, local := "", s
	if i := strings.IndexByte(s, ':'); i >= 0 {
		prefix, local = s[:i], s[i+1:]
	}
	if local == "" {
		return nil, xerr.Dynamicf("FORG0001", "cannot cast %q to xs:QName", s)
	}
	// A bare cast has no in-scope namespace bindings to resolve prefix
	// against; the URI is left empty, matching this module's static
	// rewrite pass which resolves QName prefixes ahead of evaluation
	// wherever the source expression supplies one.
	return value.Singleton(value.QName{Prefix: prefix, Local: local}), nil
}

// Cast implements "Operand cast as TypeName?" for internal/eval's
// CastExpr, which is a grammar production keyed on a type name rather
// than an ordinary function call, so it cannot go through Call/Lookup
// directly. TypeName is the local name only (e.g. "integer"); the xs:
// namespace is implied, matching this module's closed set of recognized
// atomic types.
func Cast(typeName string, operand value.Sequence) (value.Sequence, error) {
	fn := Lookup(NSXS, typeName)
	if fn == nil {
		return nil, xerr.Staticf(-1, "unknown target type xs:%s in cast expression", typeName)
	}
	if len(operand) > 1 {
		return nil, xerr.Typef("XPTY0004", "cast as xs:%s: operand has more than one item", typeName)
	}
	return fn.F(nil, []value.Sequence{operand})
}

// Castable reports whether Cast would succeed, per CastableExpr's "as
// TypeName?" semantics (never itself an error; failure is reported as a
// false result).
func Castable(typeName string, operand value.Sequence) bool {
	_, err := Cast(typeName, operand)
	return err == nil
}

func init() {
	Register(&Function{Name: "boolean", Namespace: NSXS, F: xsBoolean, MinArg: 1, MaxArg: 1})
	Register(&Function{Name: "integer", Namespace: NSXS, F: xsInteger, MinArg: 1, MaxArg: 1})
	Register(&Function{Name: "decimal", Namespace: NSXS, F: xsDecimal, MinArg: 1, MaxArg: 1})
	Register(&Function{Name: "double", Namespace: NSXS, F: xsDouble, MinArg: 1, MaxArg: 1})
	Register(&Function{Name: "string", Namespace: NSXS, F: xsString, MinArg: 1, MaxArg: 1})
	Register(&Function{Name: "untypedAtomic", Namespace: NSXS, F: xsUntypedAtomic, MinArg: 1, MaxArg: 1})
	Register(&Function{Name: "QName", Namespace: NSXS, F: xsQName, MinArg: 1, MaxArg: 1})
}
