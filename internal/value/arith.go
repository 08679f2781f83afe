package value

import (
	"math"

	"github.com/basilisk-labs/xdom/internal/xerr"
)

// numRank implements the numeric promotion order: integer < decimal <
// double, with untypedAtomic and string/node promoting to double via
// AsNumber's string-context conversion.
type numRank int

const (
	rankInteger numRank = iota
	rankDecimal
	rankDouble
)

func rankOf(itm Item) numRank {
	switch itm.(type) {
	case Integer:
		return rankInteger
	case Decimal:
		return rankDecimal
	default:
		return rankDouble
	}
}

func numItem(s Sequence, op string) (Item, error) {
	if len(s) != 1 {
		return nil, xerr.Dynamicf("XPTY0004", "%s: expected a single numeric value, got %d items", op, len(s))
	}
	switch t := s[0].(type) {
	case Integer, Decimal, Double:
		return t, nil
	case Node, UntypedAtomic, String:
		f, err := AsNumber(s)
		if err != nil {
			return nil, err
		}
		return Double(f), nil
	}
	return nil, xerr.Typef("XPTY0004", "%s: operand is not numeric (%T)", op, s[0])
}

func toFloat(itm Item) float64 {
	switch t := itm.(type) {
	case Integer:
		return float64(t)
	case Decimal:
		return float64(t)
	case Double:
		return float64(t)
	}
	return math.NaN()
}

func promote(rank numRank, f float64) Item {
	switch rank {
	case rankInteger:
		return Integer(int64(f))
	case rankDecimal:
		return Decimal(f)
	default:
		return Double(f)
	}
}

func maxRank(a, b numRank) numRank {
	if a > b {
		return a
	}
	return b
}

// Arith evaluates a binary arithmetic operator ("+", "-", "*", "div",
// "idiv", "mod").
func Arith(op string, lhs, rhs Sequence) (Sequence, error) {
	if len(lhs) == 0 || len(rhs) == 0 {
		return Empty, nil
	}
	l, err := numItem(lhs, op)
	if err != nil {
		return nil, err
	}
	r, err := numItem(rhs, op)
	if err != nil {
		return nil, err
	}
	lf, rf := toFloat(l), toFloat(r)
	rank := maxRank(rankOf(l), rankOf(r))

	switch op {
	case "+":
		return Singleton(promote(rank, lf+rf)), nil
	case "-":
		return Singleton(promote(rank, lf-rf)), nil
	case "*":
		return Singleton(promote(rank, lf*rf)), nil
	case "div":
		if rf == 0 {
			if rank == rankDouble {
				return Singleton(Double(lf / rf)), nil
			}
			return nil, xerr.Dynamicf("FOAR0001", "division by zero")
		}
		// "div" on two integers yields decimal.
		if rank == rankInteger {
			return Singleton(Decimal(lf / rf)), nil
		}
		return Singleton(promote(rank, lf/rf)), nil
	case "idiv":
		if rf == 0 {
			return nil, xerr.Dynamicf("FOAR0001", "division by zero")
		}
		return Singleton(Integer(int64(lf / rf))), nil
	case "mod":
		if rf == 0 {
			if rank == rankDouble {
				return Singleton(Double(math.NaN())), nil
			}
			return nil, xerr.Dynamicf("FOAR0001", "division by zero")
		}
		m := math.Mod(lf, rf)
		return Singleton(promote(rank, m)), nil
	}
	return nil, xerr.Dynamicf("", "unknown arithmetic operator %q", op)
}

// UnaryMinus negates a singleton numeric sequence.
func UnaryMinus(s Sequence) (Sequence, error) {
	if len(s) == 0 {
		return Empty, nil
	}
	itm, err := numItem(s, "unary-")
	if err != nil {
		return nil, err
	}
	return Singleton(promote(rankOf(itm), -toFloat(itm))), nil
}

// Range implements "M to N": empty if M > N, else the ascending integer
// sequence M..N. Reverse ranges are never produced.
func Range(lhs, rhs Sequence) (Sequence, error) {
	m, err := AsNumber(lhs)
	if err != nil {
		return nil, err
	}
	n, err := AsNumber(rhs)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(m) || math.IsNaN(n) {
		return Empty, nil
	}
	lo, hi := int64(m), int64(n)
	if lo > hi {
		return Empty, nil
	}
	out := make(Sequence, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, Integer(i))
	}
	return out, nil
}
