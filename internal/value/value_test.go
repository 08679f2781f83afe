package value

import (
	"math"
	"testing"

	"github.com/basilisk-labs/xdom/internal/tree"
)

func TestSequenceStringSingletonIsBare(t *testing.T) {
	s := Singleton(Integer(3))
	if got, want := s.String(), "3"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestSequenceStringMultiIsParenthesized(t *testing.T) {
	s := Sequence{Integer(1), String("a")}
	if got, want := s.String(), "(1, a)"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestDoubleStringSpecialValues(t *testing.T) {
	cases := []struct {
		d    Double
		want string
	}{
		{Double(math.NaN()), "NaN"},
		{Double(math.Inf(1)), "INF"},
		{Double(math.Inf(-1)), "-INF"},
	}
	for _, c := range cases {
		if got := c.d.String(); got != c.want {
			t.Errorf("Double(%v).String() = %q, want %q", float64(c.d), got, c.want)
		}
	}
}

func TestAtomizeReplacesNodesWithUntypedAtomic(t *testing.T) {
	d := tree.New()
	el := d.NewElement(tree.ExpandedName{Local: "a"})
	d.AppendChild(d.DocumentNode(), el)
	txt := d.NewText("hi")
	d.AppendChild(el, txt)

	out := Atomize(Sequence{Node{Doc: d, ID: el}})
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}
	u, ok := out[0].(UntypedAtomic)
	if !ok {
		t.Fatalf("out[0] is %T, want UntypedAtomic", out[0])
	}
	if string(u) != "hi" {
		t.Fatalf("string value = %q, want %q", u, "hi")
	}
}

func TestAsNumberEmptyIsNaN(t *testing.T) {
	f, err := AsNumber(Empty)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsNaN(f) {
		t.Fatalf("AsNumber(empty) = %v, want NaN", f)
	}
}

func TestAsNumberUnparsableStringIsNaNNotError(t *testing.T) {
	f, err := AsNumber(Singleton(String("not a number")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsNaN(f) {
		t.Fatalf("AsNumber = %v, want NaN", f)
	}
}

func TestEffectiveBooleanEmptySequenceIsFalse(t *testing.T) {
	b, err := EffectiveBoolean(Empty)
	if err != nil || b {
		t.Fatalf("EffectiveBoolean(empty) = %v, %v; want false, nil", b, err)
	}
}

func TestEffectiveBooleanMultiItemNonNodeIsError(t *testing.T) {
	_, err := EffectiveBoolean(Sequence{Integer(1), Integer(2)})
	if err == nil {
		t.Fatal("expected an error for a multi-item non-node sequence")
	}
}

func TestEffectiveBooleanMultiNodeIsTrue(t *testing.T) {
	d := tree.New()
	a := d.NewElement(tree.ExpandedName{Local: "a"})
	b := d.NewElement(tree.ExpandedName{Local: "b"})
	d.AppendChild(d.DocumentNode(), a)
	ok, err := EffectiveBoolean(Sequence{Node{Doc: d, ID: a}, Node{Doc: d, ID: b}})
	if err != nil || !ok {
		t.Fatalf("EffectiveBoolean(nodes) = %v, %v; want true, nil", ok, err)
	}
}

func TestArithIntegerPlusIntegerStaysInteger(t *testing.T) {
	out, err := Arith("+", Singleton(Integer(2)), Singleton(Integer(3)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, ok := out[0].(Integer); !ok || got != 5 {
		t.Fatalf("2+3 = %#v, want Integer(5)", out[0])
	}
}

func TestArithDivTwoIntegersYieldsDecimal(t *testing.T) {
	out, err := Arith("div", Singleton(Integer(1)), Singleton(Integer(2)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := out[0].(Decimal); !ok {
		t.Fatalf("1 div 2 = %#v, want Decimal", out[0])
	}
}

func TestArithDivByZeroExactIsError(t *testing.T) {
	_, err := Arith("div", Singleton(Integer(1)), Singleton(Integer(0)))
	if err == nil {
		t.Fatal("expected a division-by-zero error")
	}
}

func TestArithDivByZeroDoubleIsInf(t *testing.T) {
	out, err := Arith("div", Singleton(Double(1)), Singleton(Double(0)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f := float64(out[0].(Double))
	if !math.IsInf(f, 1) {
		t.Fatalf("1.0 div 0.0 = %v, want +Inf", f)
	}
}

func TestArithEmptyOperandYieldsEmpty(t *testing.T) {
	out, err := Arith("+", Empty, Singleton(Integer(1)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("len(out) = %d, want 0", len(out))
	}
}

func TestRangeAscending(t *testing.T) {
	out, err := Range(Singleton(Integer(1)), Singleton(Integer(3)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Sequence{Integer(1), Integer(2), Integer(3)}
	if len(out) != len(want) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(want))
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
}

func TestRangeDescendingIsEmpty(t *testing.T) {
	out, err := Range(Singleton(Integer(3)), Singleton(Integer(1)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("len(out) = %d, want 0", len(out))
	}
}

func TestValueCompareUntypedPromotesToNumber(t *testing.T) {
	ok, err := ValueCompare("eq", Singleton(UntypedAtomic("3")), Singleton(Integer(3)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected untypedAtomic(\"3\") eq 3")
	}
}

func TestValueCompareUntypedAgainstBooleanIsError(t *testing.T) {
	_, err := ValueCompare("eq", Singleton(UntypedAtomic("true")), Singleton(Boolean(true)))
	if err == nil {
		t.Fatal("expected an error comparing untypedAtomic against boolean")
	}
}

func TestGeneralCompareExistential(t *testing.T) {
	lhs := Sequence{Integer(1), Integer(2), Integer(3)}
	rhs := Sequence{Integer(3), Integer(4)}
	ok, err := GeneralCompare("=", lhs, rhs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected (1,2,3) = (3,4) to be true")
	}
}

func TestGeneralCompareEmptyOperandIsFalse(t *testing.T) {
	ok, err := GeneralCompare("=", Empty, Sequence{Integer(1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected empty operand to make = false")
	}
}

func TestNodeIsAndNodeOrder(t *testing.T) {
	d := tree.New()
	a := d.NewElement(tree.ExpandedName{Local: "a"})
	b := d.NewElement(tree.ExpandedName{Local: "b"})
	r := d.NewElement(tree.ExpandedName{Local: "r"})
	d.AppendChild(d.DocumentNode(), r)
	d.AppendChild(r, a)
	d.AppendChild(r, b)

	same, err := NodeIs(Singleton(Node{Doc: d, ID: a}), Singleton(Node{Doc: d, ID: a}))
	if err != nil || !same {
		t.Fatalf("NodeIs(a, a) = %v, %v; want true, nil", same, err)
	}

	before, err := NodeOrder("<<", Singleton(Node{Doc: d, ID: a}), Singleton(Node{Doc: d, ID: b}))
	if err != nil || !before {
		t.Fatalf("a << b = %v, %v; want true, nil", before, err)
	}
}
