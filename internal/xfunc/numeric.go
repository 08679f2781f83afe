package xfunc

import (
	"math"

	"github.com/basilisk-labs/xdom/internal/value"
)

func fnNumber(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	seq, err := oneArgOrContext(ctx, args)
	if err != nil {
		return nil, err
	}
	f, err := value.AsNumber(seq)
	if err != nil {
		return nil, err
	}
	return value.Singleton(value.Double(f)), nil
}

// numericUnary applies f to the single numeric argument, preserving its
// concrete type (Integer stays Integer when f is a no-op on integers,
// Decimal/Double round-trip through float64), following the promotion
// rules value.Arith already establishes elsewhere in this module.
func numericUnary(args []value.Sequence, f func(float64) float64) (value.Sequence, error) {
	if len(args[0]) == 0 {
		return value.Empty, nil
	}
	itm := value.Atomize(args[0])[0]
	switch v := itm.(type) {
	case value.Integer:
		return value.Singleton(value.Integer(int64(f(float64(v))))), nil
	case value.Decimal:
		return value.Singleton(value.Decimal(f(float64(v)))), nil
	case value.Double:
		return value.Singleton(value.Double(f(float64(v)))), nil
	default:
		n, err := value.AsNumber(value.Singleton(itm))
		if err != nil {
			return nil, err
		}
		return value.Singleton(value.Double(f(n))), nil
	}
}

func fnAbs(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	return numericUnary(args, math.Abs)
}

func fnCeiling(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	return numericUnary(args, math.Ceil)
}

func fnFloor(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	return numericUnary(args, math.Floor)
}

func fnRound(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	return numericUnary(args, func(f float64) float64 {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return f
		}
		return math.Floor(f + 0.5)
	})
}

func fnRoundHalfToEven(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	precision := 0.0
	if len(args) == 2 {
		p, err := value.AsNumber(args[1])
		if err != nil {
			return nil, err
		}
		precision = p
	}
	scale := math.Pow(10, precision)
	return numericUnary(args[:1], func(f float64) float64 {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return f
		}
		return math.RoundToEven(f*scale) / scale
	})
}

func fnSum(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	if len(args[0]) == 0 {
		if len(args) == 2 {
			return args[1], nil
		}
		return value.Singleton(value.Integer(0)), nil
	}
	acc := value.Singleton(value.Atomize(args[0])[0])
	for _, itm := range value.Atomize(args[0])[1:] {
		var err error
		acc, err = value.Arith("+", acc, value.Singleton(itm))
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func fnAvg(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	if len(args[0]) == 0 {
		return value.Empty, nil
	}
	sum, err := fnSum(ctx, args)
	if err != nil {
		return nil, err
	}
	return value.Arith("div", sum, value.Singleton(value.Integer(int64(len(args[0])))))
}

func fnMin(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	return minMax(args[0], "lt")
}

func fnMax(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	return minMax(args[0], "gt")
}

func minMax(seq value.Sequence, better string) (value.Sequence, error) {
	atoms := value.Atomize(seq)
	if len(atoms) == 0 {
		return value.Empty, nil
	}
	best := atoms[0]
	for _, itm := range atoms[1:] {
		ok, err := value.ValueCompare(better, value.Singleton(itm), value.Singleton(best))
		if err != nil {
			return nil, err
		}
		if ok {
			best = itm
		}
	}
	return value.Singleton(best), nil
}

func init() {
	Register(&Function{Name: "number", Namespace: NSFn, F: fnNumber, MinArg: 0, MaxArg: 1})
	Register(&Function{Name: "abs", Namespace: NSFn, F: fnAbs, MinArg: 1, MaxArg: 1})
	Register(&Function{Name: "ceiling", Namespace: NSFn, F: fnCeiling, MinArg: 1, MaxArg: 1})
	Register(&Function{Name: "floor", Namespace: NSFn, F: fnFloor, MinArg: 1, MaxArg: 1})
	Register(&Function{Name: "round", Namespace: NSFn, F: fnRound, MinArg: 1, MaxArg: 1})
	Register(&Function{Name: "round-half-to-even", Namespace: NSFn, F: fnRoundHalfToEven, MinArg: 1, MaxArg: 2})
	Register(&Function{Name: "sum", Namespace: NSFn, F: fnSum, MinArg: 1, MaxArg: 2})
	Register(&Function{Name: "avg", Namespace: NSFn, F: fnAvg, MinArg: 1, MaxArg: 1})
	Register(&Function{Name: "min", Namespace: NSFn, F: fnMin, MinArg: 1, MaxArg: 2})
	Register(&Function{Name: "max", Namespace: NSFn, F: fnMax, MinArg: 1, MaxArg: 2})
}
