package parser

import (
	"testing"

	"github.com/basilisk-labs/xdom/internal/ast"
)

func mustParse(t *testing.T, src string) ast.Node {
	t.Helper()
	n, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return n
}

func TestParseSimpleChildPath(t *testing.T) {
	n := mustParse(t, "/root/child::sub")
	path, ok := n.(*ast.PathExpr)
	if !ok {
		t.Fatalf("got %T, want *ast.PathExpr", n)
	}
	if !path.Rooted {
		t.Fatal("expected a rooted path")
	}
	if len(path.Steps) != 2 {
		t.Fatalf("got %d steps, want 2", len(path.Steps))
	}
	step, ok := path.Steps[1].(*ast.Step)
	if !ok {
		t.Fatalf("step is %T, want *ast.Step", path.Steps[1])
	}
	if step.Axis != "child" || step.Test.NameTest == nil || step.Test.NameTest.Local != "sub" {
		t.Fatalf("unexpected step: %+v", step)
	}
}

func TestParseAbbreviatedAttributeStep(t *testing.T) {
	n := mustParse(t, "@foo")
	step, ok := n.(*ast.Step)
	if !ok {
		t.Fatalf("got %T, want *ast.Step", n)
	}
	if step.Axis != "attribute" || step.Test.NameTest.Local != "foo" {
		t.Fatalf("unexpected step: %+v", step)
	}
}

func TestParseKeywordShapedNameTests(t *testing.T) {
	// "div", "and" and "to" are operator keywords, but XML allows them as
	// element/attribute names; the lexer emits them as ordinary QName
	// tokens and the parser must reinterpret them by position instead of
	// treating them as operators.
	n := mustParse(t, "/div")
	path, ok := n.(*ast.PathExpr)
	if !ok || !path.Rooted || len(path.Steps) != 1 {
		t.Fatalf("got %+v, want a rooted single-step path", n)
	}
	step, ok := path.Steps[0].(*ast.Step)
	if !ok || step.Axis != "child" || step.Test.NameTest == nil || step.Test.NameTest.Local != "div" {
		t.Fatalf("unexpected step: %+v", path.Steps[0])
	}

	n = mustParse(t, "child::and")
	step, ok = n.(*ast.Step)
	if !ok || step.Axis != "child" || step.Test.NameTest == nil || step.Test.NameTest.Local != "and" {
		t.Fatalf("got %+v, want a child::and step", n)
	}

	n = mustParse(t, "@to")
	step, ok = n.(*ast.Step)
	if !ok || step.Axis != "attribute" || step.Test.NameTest == nil || step.Test.NameTest.Local != "to" {
		t.Fatalf("got %+v, want an @to step", n)
	}
}

func TestParseDescendantAbbreviation(t *testing.T) {
	n := mustParse(t, "//sub")
	path, ok := n.(*ast.PathExpr)
	if !ok || !path.Rooted || !path.Descendant {
		t.Fatalf("got %+v, want a rooted descendant path", n)
	}
}

func TestParsePredicate(t *testing.T) {
	n := mustParse(t, "/root/sub[1]")
	path := n.(*ast.PathExpr)
	last := path.Steps[len(path.Steps)-1].(*ast.Step)
	if len(last.Predicates) != 1 {
		t.Fatalf("got %d predicates, want 1", len(last.Predicates))
	}
}

func TestParseForLetSomeEvery(t *testing.T) {
	for _, src := range []string{
		`for $x in (1, 2, 3) return $x`,
		`let $x := 1 return $x + 1`,
		`some $x in (1, 2) satisfies $x = 2`,
		`every $x in (1, 2) satisfies $x > 0`,
	} {
		if _, err := Parse(src); err != nil {
			t.Errorf("Parse(%q): %v", src, err)
		}
	}
}

func TestParseIfExpr(t *testing.T) {
	n := mustParse(t, `if (1 = 1) then "yes" else "no"`)
	if _, ok := n.(*ast.IfExpr); !ok {
		t.Fatalf("got %T, want *ast.IfExpr", n)
	}
}

func TestParseComparisonIsSingleLevel(t *testing.T) {
	n := mustParse(t, "1 = 1")
	bin, ok := n.(*ast.BinaryExpr)
	if !ok || bin.Op != "=" {
		t.Fatalf("got %+v, want a single '=' BinaryExpr", n)
	}
}

func TestParseNumericLiteralKindByLexicalForm(t *testing.T) {
	cases := []struct {
		src  string
		kind string
	}{
		{"10", "integer"},
		{"3.14", "decimal"},
		{"1.0e1", "double"},
		{"2.5e0", "double"},
	}
	for _, c := range cases {
		n := mustParse(t, c.src)
		lit, ok := n.(*ast.Literal)
		if !ok || lit.Kind != c.kind {
			t.Fatalf("parse(%q) = %+v, want Literal.Kind=%q", c.src, n, c.kind)
		}
	}
}

func TestParseArithmeticPrecedence(t *testing.T) {
	n := mustParse(t, "1 + 2 * 3")
	bin := n.(*ast.BinaryExpr)
	if bin.Op != "+" {
		t.Fatalf("top operator = %q, want +", bin.Op)
	}
	rhs, ok := bin.Right.(*ast.BinaryExpr)
	if !ok || rhs.Op != "*" {
		t.Fatalf("rhs = %+v, want a '*' BinaryExpr", bin.Right)
	}
}

func TestParseNodeComparisonOperators(t *testing.T) {
	for _, src := range []string{"$a is $b", "$a << $b", "$a >> $b"} {
		n := mustParse(t, src)
		if _, ok := n.(*ast.BinaryExpr); !ok {
			t.Errorf("Parse(%q) = %T, want *ast.BinaryExpr", src, n)
		}
	}
}

func TestParseIntersectExcept(t *testing.T) {
	n := mustParse(t, "//a intersect //b except //c")
	bin, ok := n.(*ast.BinaryExpr)
	if !ok || bin.Op != "except" {
		t.Fatalf("got %+v, want top-level 'except'", n)
	}
	if lhs, ok := bin.Left.(*ast.BinaryExpr); !ok || lhs.Op != "intersect" {
		t.Fatalf("lhs = %+v, want 'intersect'", bin.Left)
	}
}

func TestParseArrayLiteral(t *testing.T) {
	n := mustParse(t, "[1, 2, 3]")
	arr, ok := n.(*ast.ArrayLiteral)
	if !ok || len(arr.Members) != 3 {
		t.Fatalf("got %+v, want a 3-member ArrayLiteral", n)
	}
}

func TestParseArrayConstructorBraceForm(t *testing.T) {
	n := mustParse(t, "array{1, 2}")
	arr, ok := n.(*ast.ArrayLiteral)
	if !ok || len(arr.Members) != 2 {
		t.Fatalf("got %+v, want a 2-member ArrayLiteral", n)
	}
}

func TestParseMapConstructor(t *testing.T) {
	n := mustParse(t, `map{"a": 1, "b": 2}`)
	m, ok := n.(*ast.MapConstructor)
	if !ok || len(m.Entries) != 2 {
		t.Fatalf("got %+v, want a 2-entry MapConstructor", n)
	}
}

func TestParseFunctionCall(t *testing.T) {
	n := mustParse(t, `concat("a", "b", $x)`)
	fc, ok := n.(*ast.FunctionCall)
	if !ok || fc.Name != "concat" || len(fc.Args) != 3 {
		t.Fatalf("got %+v, want concat/3", n)
	}
}

func TestParsePrefixedFunctionCall(t *testing.T) {
	n := mustParse(t, `array:size($a)`)
	fc, ok := n.(*ast.FunctionCall)
	if !ok || fc.Prefix != "array" || fc.Name != "size" {
		t.Fatalf("got %+v, want array:size", n)
	}
}

func TestParseWildcardNameTests(t *testing.T) {
	cases := map[string]func(*ast.NameTest) bool{
		"*":         func(nt *ast.NameTest) bool { return nt.AnyLocal && nt.Prefix == "" },
		"a:*":       func(nt *ast.NameTest) bool { return nt.AnyLocal && nt.Prefix == "a" },
		"*:local":   func(nt *ast.NameTest) bool { return nt.AnyPrefix && nt.Local == "local" },
	}
	for src, check := range cases {
		n := mustParse(t, src)
		step, ok := n.(*ast.Step)
		if !ok {
			t.Fatalf("Parse(%q) = %T, want *ast.Step", src, n)
		}
		if !check(step.Test.NameTest) {
			t.Errorf("Parse(%q): unexpected NameTest %+v", src, step.Test.NameTest)
		}
	}
}

func TestParseKindTest(t *testing.T) {
	n := mustParse(t, "text()")
	step, ok := n.(*ast.Step)
	if !ok || step.Test.KindTest == nil || step.Test.KindTest.Kind != "text" {
		t.Fatalf("got %+v, want a text() kind test step", n)
	}
}

func TestParseSequenceExpr(t *testing.T) {
	n := mustParse(t, "(1, 2, 3)")
	par, ok := n.(*ast.Parenthesized)
	if !ok || len(par.Items) != 3 {
		t.Fatalf("got %+v, want a 3-item Parenthesized", n)
	}
}

func TestParseCastAndInstanceOf(t *testing.T) {
	if _, err := Parse(`$x cast as xs:integer`); err != nil {
		t.Errorf("cast as: %v", err)
	}
	if _, err := Parse(`$x instance of xs:integer?`); err != nil {
		t.Errorf("instance of: %v", err)
	}
	if _, err := Parse(`$x castable as xs:integer`); err != nil {
		t.Errorf("castable as: %v", err)
	}
}

func TestParseLookupExpr(t *testing.T) {
	n := mustParse(t, "$a?1")
	lk, ok := n.(*ast.LookupExpr)
	if !ok || lk.Key != "1" {
		t.Fatalf("got %+v, want a LookupExpr with key 1", n)
	}
}

func TestParseSimpleMapExpr(t *testing.T) {
	n := mustParse(t, "//a ! string(.)")
	if _, ok := n.(*ast.SimpleMapExpr); !ok {
		t.Fatalf("got %T, want *ast.SimpleMapExpr", n)
	}
}

func TestParseInvalidExpressionReturnsError(t *testing.T) {
	if _, err := Parse("1 +"); err == nil {
		t.Fatal("expected an error for a truncated expression")
	}
}
