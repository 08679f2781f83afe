package xfunc

import (
	"testing"

	"github.com/basilisk-labs/xdom/internal/value"
)

func ints(vs ...int64) value.Sequence {
	out := make(value.Sequence, len(vs))
	for i, v := range vs {
		out[i] = value.Integer(v)
	}
	return out
}

func TestFnAbsCeilingFloorRound(t *testing.T) {
	if n, _ := value.AsNumber(call(t, NSFn, "abs", value.Singleton(value.Integer(-5)))); n != 5 {
		t.Fatalf("abs got %v", n)
	}
	if n, _ := value.AsNumber(call(t, NSFn, "ceiling", value.Singleton(value.Decimal(1.2)))); n != 2 {
		t.Fatalf("ceiling got %v", n)
	}
	if n, _ := value.AsNumber(call(t, NSFn, "floor", value.Singleton(value.Decimal(1.8)))); n != 1 {
		t.Fatalf("floor got %v", n)
	}
	if n, _ := value.AsNumber(call(t, NSFn, "round", value.Singleton(value.Decimal(2.5)))); n != 3 {
		t.Fatalf("round got %v", n)
	}
}

func TestFnSumAvgMinMax(t *testing.T) {
	seq := ints(1, 2, 3, 4)
	if n, _ := value.AsNumber(call(t, NSFn, "sum", seq)); n != 10 {
		t.Fatalf("sum got %v", n)
	}
	if n, _ := value.AsNumber(call(t, NSFn, "avg", seq)); n != 2.5 {
		t.Fatalf("avg got %v", n)
	}
	if n, _ := value.AsNumber(call(t, NSFn, "min", seq)); n != 1 {
		t.Fatalf("min got %v", n)
	}
	if n, _ := value.AsNumber(call(t, NSFn, "max", seq)); n != 4 {
		t.Fatalf("max got %v", n)
	}
}

func TestFnSumEmptyIsZero(t *testing.T) {
	if n, _ := value.AsNumber(call(t, NSFn, "sum", value.Empty)); n != 0 {
		t.Fatalf("got %v", n)
	}
}

func TestFnRoundHalfToEven(t *testing.T) {
	if n, _ := value.AsNumber(call(t, NSFn, "round-half-to-even", value.Singleton(value.Decimal(0.5)))); n != 0 {
		t.Fatalf("got %v", n)
	}
	if n, _ := value.AsNumber(call(t, NSFn, "round-half-to-even", value.Singleton(value.Decimal(1.5)))); n != 2 {
		t.Fatalf("got %v", n)
	}
}
