package value

import (
	"github.com/basilisk-labs/xdom/internal/xerr"
)

// compareClass buckets an atomic item for the purpose of value
// comparison's mixed-type promotion rules: untypedAtomic vs numeric
// promotes to double, vs string stays string, vs boolean is a
// TypeError.
type compareClass int

const (
	classNumber compareClass = iota
	classString
	classBoolean
	classQName
	classUntyped
)

func classify(itm Item) (compareClass, error) {
	switch itm.(type) {
	case Integer, Decimal, Double:
		return classNumber, nil
	case String:
		return classString, nil
	case Boolean:
		return classBoolean, nil
	case QName:
		return classQName, nil
	case UntypedAtomic:
		return classUntyped, nil
	}
	return 0, xerr.Typef("XPTY0004", "value not comparable: %T", itm)
}

// ValueCompare implements "eq"/"ne"/"lt"/"le"/"gt"/"ge": both operands
// must be singletons; the result is a single boolean.
func ValueCompare(op string, lhs, rhs Sequence) (bool, error) {
	if len(lhs) != 1 || len(rhs) != 1 {
		return false, xerr.Dynamicf("XPTY0004", "%s: operand is not a singleton", op)
	}
	l, r := lhs[0], rhs[0]
	if ln, ok := l.(Node); ok {
		l = UntypedAtomic(ln.Doc.StringValue(ln.ID))
	}
	if rn, ok := r.(Node); ok {
		r = UntypedAtomic(rn.Doc.StringValue(rn.ID))
	}
	lc, err := classify(l)
	if err != nil {
		return false, err
	}
	rc, err := classify(r)
	if err != nil {
		return false, err
	}

	isNum := func(c compareClass) bool { return c == classNumber || c == classUntyped }
	isStr := func(c compareClass) bool { return c == classString || c == classUntyped }

	switch {
	case lc == classBoolean || rc == classBoolean:
		if lc != classBoolean || rc != classBoolean {
			return false, xerr.Typef("FORG0006", "%s: untypedAtomic cannot compare against boolean", op)
		}
		return compareBool(op, bool(l.(Boolean)), bool(r.(Boolean)))
	case lc == classQName || rc == classQName:
		if lc != classQName || rc != classQName {
			return false, xerr.Typef("XPTY0004", "%s: QName only compares against QName", op)
		}
		if op != "eq" && op != "ne" {
			return false, xerr.Typef("XPTY0004", "QName only supports eq/ne")
		}
		eq := l.(QName).URI == r.(QName).URI && l.(QName).Local == r.(QName).Local
		if op == "eq" {
			return eq, nil
		}
		return !eq, nil
	case lc == classNumber || rc == classNumber:
		if !isNum(lc) || !isNum(rc) {
			return false, xerr.Typef("XPTY0004", "%s: cannot compare a number against a string", op)
		}
		lf, err := AsNumber(Sequence{l})
		if err != nil {
			return false, err
		}
		rf, err := AsNumber(Sequence{r})
		if err != nil {
			return false, err
		}
		return compareFloat(op, lf, rf)
	case isStr(lc) && isStr(rc):
		return compareString(op, AsString(Sequence{l}), AsString(Sequence{r}))
	default:
		return false, xerr.Typef("XPTY0004", "%s: incomparable types %T and %T", op, l, r)
	}
}

func compareFloat(op string, a, b float64) (bool, error) {
	switch op {
	case "eq":
		return a == b, nil
	case "ne":
		return a != b, nil
	case "lt":
		return a < b, nil
	case "le":
		return a <= b, nil
	case "gt":
		return a > b, nil
	case "ge":
		return a >= b, nil
	}
	return false, xerr.Dynamicf("", "unknown comparison operator %q", op)
}

func compareBool(op string, a, b bool) (bool, error) {
	ai, bi := 0, 0
	if a {
		ai = 1
	}
	if b {
		bi = 1
	}
	return compareFloat(op, float64(ai), float64(bi))
}

func compareString(op string, a, b string) (bool, error) {
	switch op {
	case "eq":
		return a == b, nil
	case "ne":
		return a != b, nil
	case "lt":
		return a < b, nil
	case "le":
		return a <= b, nil
	case "gt":
		return a > b, nil
	case "ge":
		return a >= b, nil
	}
	return false, xerr.Dynamicf("", "unknown comparison operator %q", op)
}

var valueOpForGeneral = map[string]string{
	"=": "eq", "!=": "ne", "<": "lt", "<=": "le", ">": "gt", ">=": "ge",
}

// GeneralCompare implements "="/"!="/"<"/"<="/">"/">=": existential over
// every pairing of atomized operand items.
func GeneralCompare(op string, lhs, rhs Sequence) (bool, error) {
	vop, ok := valueOpForGeneral[op]
	if !ok {
		return false, xerr.Dynamicf("", "unknown general comparison operator %q", op)
	}
	if len(lhs) == 0 || len(rhs) == 0 {
		return false, nil
	}
	for _, l := range lhs {
		for _, r := range rhs {
			ok, err := ValueCompare(vop, Sequence{l}, Sequence{r})
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
	}
	return false, nil
}

// NodeIs implements the "is" operator: same node identity.
func NodeIs(lhs, rhs Sequence) (bool, error) {
	if len(lhs) != 1 || len(rhs) != 1 {
		return false, xerr.Dynamicf("XPTY0004", "is: operand is not a singleton")
	}
	ln, ok := lhs[0].(Node)
	if !ok {
		return false, xerr.Typef("XPTY0004", "is: operand is not a node")
	}
	rn, ok := rhs[0].(Node)
	if !ok {
		return false, xerr.Typef("XPTY0004", "is: operand is not a node")
	}
	return ln.Equal(rn), nil
}

// NodeOrder implements "<<" (before) and ">>" (after): document-order
// comparison of two nodes.
func NodeOrder(op string, lhs, rhs Sequence) (bool, error) {
	if len(lhs) != 1 || len(rhs) != 1 {
		return false, xerr.Dynamicf("XPTY0004", "%s: operand is not a singleton", op)
	}
	ln, ok := lhs[0].(Node)
	if !ok {
		return false, xerr.Typef("XPTY0004", "%s: operand is not a node", op)
	}
	rn, ok := rhs[0].(Node)
	if !ok {
		return false, xerr.Typef("XPTY0004", "%s: operand is not a node", op)
	}
	c := ln.Doc.Compare(ln.ID, rn.ID)
	if op == "<<" {
		return c < 0, nil
	}
	return c > 0, nil
}
