package lexer

import "testing"

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestLexSimplePath(t *testing.T) {
	tl, err := Lex("/root/child::a/@b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got []Kind
	for {
		tok := tl.Next()
		if tok.Kind == KindEOF {
			break
		}
		got = append(got, tok.Kind)
	}
	want := []Kind{KindOperator, KindQName, KindOperator, KindDoubleColon, KindQName, KindOperator, KindOperator, KindQName}
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexKeywordShapedNamesAsQName(t *testing.T) {
	// "div", "and" and "to" are operator keywords, but XML element/
	// attribute names can use them verbatim; the lexer can't
	// disambiguate statically, so it always emits a QName token and
	// leaves keyword-vs-name reinterpretation to the parser.
	for _, src := range []string{"div", "and", "to"} {
		tl, err := Lex(src)
		if err != nil {
			t.Fatalf("Lex(%q): unexpected error: %v", src, err)
		}
		tok := tl.Next()
		if tok.Kind != KindQName || tok.Text != src {
			t.Fatalf("Lex(%q) = %+v, want a QName token", src, tok)
		}
	}
}

func TestLexStringLiteralWithEscapedQuote(t *testing.T) {
	tl, err := Lex(`'it''s'`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tok := tl.Next()
	if tok.Kind != KindString || tok.Text != "it's" {
		t.Fatalf("got %+v, want String \"it's\"", tok)
	}
}

func TestLexNumberWithFraction(t *testing.T) {
	tl, err := Lex("3.14")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tok := tl.Next()
	if tok.Kind != KindNumber || tok.Num != 3.14 {
		t.Fatalf("got %+v, want Number 3.14", tok)
	}
}

func TestLexNumberKindByLexicalForm(t *testing.T) {
	cases := []struct {
		src  string
		kind string
		num  float64
	}{
		{"10", "integer", 10},
		{"3.14", "decimal", 3.14},
		{"1.0e1", "double", 10},
		{"2.5e0", "double", 2.5},
		{"1e3", "double", 1000},
	}
	for _, c := range cases {
		tl, err := Lex(c.src)
		if err != nil {
			t.Fatalf("Lex(%q): unexpected error: %v", c.src, err)
		}
		tok := tl.Next()
		if tok.Kind != KindNumber || tok.NumKind != c.kind || tok.Num != c.num {
			t.Fatalf("Lex(%q) = %+v, want NumKind=%q Num=%v", c.src, tok, c.kind, c.num)
		}
	}
}

func TestLexComparisonOperators(t *testing.T) {
	tl, err := Lex("<= >= << >> != = < >")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"<=", ">=", "<<", ">>", "!=", "=", "<", ">"}
	for _, w := range want {
		tok := tl.Next()
		if tok.Kind != KindOperator || tok.Text != w {
			t.Fatalf("got %+v, want operator %q", tok, w)
		}
	}
}

func TestLexVariableName(t *testing.T) {
	tl, err := Lex("$foo:bar")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tok := tl.Next()
	if tok.Kind != KindVarname || tok.Text != "foo:bar" {
		t.Fatalf("got %+v, want Varname foo:bar", tok)
	}
}

func TestLexCommentIsSkipped(t *testing.T) {
	tl, err := Lex("1 (: a nested (: comment :) here :) + 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := kinds(tl.toks)
	want := []Kind{KindNumber, KindOperator, KindNumber}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestLexMapAndArrayBraces(t *testing.T) {
	tl, err := Lex(`map{"a": 1}[1]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := kinds(tl.toks)
	want := []Kind{KindQName, KindOpenBrace, KindString, KindOperator, KindNumber, KindCloseBrace, KindOpenBracket, KindNumber, KindCloseBracket}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexBangOperatorAlone(t *testing.T) {
	tl, err := Lex("a ! b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tl.Next()
	tok := tl.Next()
	if tok.Kind != KindOperator || tok.Text != "!" {
		t.Fatalf("got %+v, want operator !", tok)
	}
}

func TestLexInvalidCharacter(t *testing.T) {
	if _, err := Lex("a ~ b"); err == nil {
		t.Fatal("expected an error for an invalid character")
	}
}

func TestTokenListPeekUnreadRestore(t *testing.T) {
	tl, err := Lex("a b c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mark := tl.Pos()
	first := tl.Next()
	if first.Text != "a" {
		t.Fatalf("got %q, want a", first.Text)
	}
	tl.Restore(mark)
	again := tl.Next()
	if again.Text != "a" {
		t.Fatalf("after Restore got %q, want a", again.Text)
	}
}
