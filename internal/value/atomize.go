package value

import (
	"math"
	"strconv"
	"strings"

	"github.com/basilisk-labs/xdom/internal/xerr"
)

// Atomize replaces every node in s with the UntypedAtomic of its string
// value, per the GLOSSARY's "Atomization" entry. Atomic items pass
// through unchanged.
func Atomize(s Sequence) Sequence {
	out := make(Sequence, len(s))
	for i, itm := range s {
		if n, ok := itm.(Node); ok {
			out[i] = UntypedAtomic(n.Doc.StringValue(n.ID))
		} else {
			out[i] = itm
		}
	}
	return out
}

// AsString atomizes s and returns its concatenated string value
// ("string context" promotion).
func AsString(s Sequence) string {
	return Atomize(s).StringValue()
}

// AsNumber converts a singleton (or empty) sequence to a float64,
// following the untypedAtomic-to-double string-context rule. Empty
// yields NaN, matching fn:number()'s documented behavior.
func AsNumber(s Sequence) (float64, error) {
	if len(s) == 0 {
		return math.NaN(), nil
	}
	if len(s) > 1 {
		return 0, xerr.Dynamicf("XPTY0004", "a sequence of more than one item cannot be atomized to a number")
	}
	switch t := s[0].(type) {
	case Integer:
		return float64(t), nil
	case Decimal:
		return float64(t), nil
	case Double:
		return float64(t), nil
	case Node:
		f, err := strconv.ParseFloat(strings.TrimSpace(t.Doc.StringValue(t.ID)), 64)
		if err != nil {
			return math.NaN(), nil
		}
		return f, nil
	case UntypedAtomic:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(t)), 64)
		if err != nil {
			return math.NaN(), nil
		}
		return f, nil
	case String:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(t)), 64)
		if err != nil {
			return math.NaN(), nil
		}
		return f, nil
	case Boolean:
		if t {
			return 1, nil
		}
		return 0, nil
	}
	return math.NaN(), nil
}

// EffectiveBoolean computes the effective boolean value used by boolean
// contexts such as "if" conditions and predicates.
func EffectiveBoolean(s Sequence) (bool, error) {
	if len(s) == 0 {
		return false, nil
	}
	if len(s) == 1 {
		switch t := s[0].(type) {
		case Boolean:
			return bool(t), nil
		case Node:
			return true, nil
		case String:
			return t != "", nil
		case UntypedAtomic:
			return t != "", nil
		case Integer:
			return t != 0, nil
		case Decimal:
			return t != 0, nil
		case Double:
			return float64(t) != 0 && !math.IsNaN(float64(t)), nil
		}
		return false, xerr.Typef("FORG0006", "effective boolean value: invalid argument type %T", s[0])
	}
	if _, ok := s[0].(Node); ok {
		// A sequence whose first item is a node is only valid if the
		// whole sequence is nodes; XPath treats a non-empty node
		// sequence as true regardless of length.
		allNodes := true
		for _, itm := range s {
			if _, ok := itm.(Node); !ok {
				allNodes = false
				break
			}
		}
		if allNodes {
			return true, nil
		}
	}
	return false, xerr.Typef("FORG0006", "effective boolean value: a sequence of more than one item is not allowed here")
}
