package xfunc

import (
	"testing"

	"github.com/basilisk-labs/xdom/internal/value"
)

func call(t *testing.T, ns, name string, args ...value.Sequence) value.Sequence {
	t.Helper()
	out, err := Call(ns, name, args, &Ctx{})
	if err != nil {
		t.Fatalf("%s(): unexpected error: %v", name, err)
	}
	return out
}

func TestFnConcat(t *testing.T) {
	out := call(t, NSFn, "concat", value.Singleton(value.String("a")), value.Singleton(value.String("b")))
	if value.AsString(out) != "ab" {
		t.Fatalf("got %q", value.AsString(out))
	}
}

func TestFnSubstring(t *testing.T) {
	out := call(t, NSFn, "substring", value.Singleton(value.String("motorcar")), value.Singleton(value.Integer(4)))
	if value.AsString(out) != "orcar" {
		t.Fatalf("got %q", value.AsString(out))
	}
	out = call(t, NSFn, "substring", value.Singleton(value.String("metadata")), value.Singleton(value.Integer(4)), value.Singleton(value.Integer(3)))
	if value.AsString(out) != "ada" {
		t.Fatalf("got %q", value.AsString(out))
	}
}

func TestFnStringLength(t *testing.T) {
	out := call(t, NSFn, "string-length", value.Singleton(value.String("café")))
	n, err := value.AsNumber(out)
	if err != nil || n != 4 {
		t.Fatalf("got %v err=%v", n, err)
	}
}

func TestFnNormalizeSpace(t *testing.T) {
	out := call(t, NSFn, "normalize-space", value.Singleton(value.String("  a  b\tc \n")))
	if value.AsString(out) != "a b c" {
		t.Fatalf("got %q", value.AsString(out))
	}
}

func TestFnUpperLowerCase(t *testing.T) {
	if value.AsString(call(t, NSFn, "upper-case", value.Singleton(value.String("abc")))) != "ABC" {
		t.Fatal("upper-case failed")
	}
	if value.AsString(call(t, NSFn, "lower-case", value.Singleton(value.String("ABC")))) != "abc" {
		t.Fatal("lower-case failed")
	}
}

func TestFnContainsStartsEndsWith(t *testing.T) {
	s := value.Singleton(value.String("abcdef"))
	if !bool(call(t, NSFn, "contains", s, value.Singleton(value.String("cd")))[0].(value.Boolean)) {
		t.Fatal("expected contains true")
	}
	if !bool(call(t, NSFn, "starts-with", s, value.Singleton(value.String("abc")))[0].(value.Boolean)) {
		t.Fatal("expected starts-with true")
	}
	if !bool(call(t, NSFn, "ends-with", s, value.Singleton(value.String("def")))[0].(value.Boolean)) {
		t.Fatal("expected ends-with true")
	}
}

func TestFnSubstringBeforeAfter(t *testing.T) {
	s := value.Singleton(value.String("1999/04/01"))
	if value.AsString(call(t, NSFn, "substring-before", s, value.Singleton(value.String("/")))) != "1999" {
		t.Fatal("substring-before failed")
	}
	if value.AsString(call(t, NSFn, "substring-after", s, value.Singleton(value.String("/")))) != "04/01" {
		t.Fatal("substring-after failed")
	}
}

func TestFnTranslate(t *testing.T) {
	out := call(t, NSFn, "translate",
		value.Singleton(value.String("bar")),
		value.Singleton(value.String("abc")),
		value.Singleton(value.String("ABC")))
	if value.AsString(out) != "BAr" {
		t.Fatalf("got %q", value.AsString(out))
	}
}

func TestFnMatchesReplaceTokenize(t *testing.T) {
	if !bool(call(t, NSFn, "matches", value.Singleton(value.String("abracadabra")), value.Singleton(value.String("bra")))[0].(value.Boolean)) {
		t.Fatal("expected a match")
	}
	out := call(t, NSFn, "replace",
		value.Singleton(value.String("abracadabra")),
		value.Singleton(value.String("bra")),
		value.Singleton(value.String("*")))
	if value.AsString(out) != "a*cada*" {
		t.Fatalf("got %q", value.AsString(out))
	}
	toks := call(t, NSFn, "tokenize", value.Singleton(value.String("The cat sat")), value.Singleton(value.String("\\s+")))
	if len(toks) != 3 || toks[1].String() != "cat" {
		t.Fatalf("got %v", toks)
	}
}

func TestFnEncodeForURI(t *testing.T) {
	out := call(t, NSFn, "encode-for-uri", value.Singleton(value.String("http://www.example.com/00/Weather/CA/Los Angeles#ocean")))
	want := "http%3A%2F%2Fwww.example.com%2F00%2FWeather%2FCA%2FLos%20Angeles%23ocean"
	if got := value.AsString(out); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFnNormalizeUnicode(t *testing.T) {
	out := call(t, NSFn, "normalize-unicode", value.Singleton(value.String("abc")))
	if value.AsString(out) != "abc" {
		t.Fatalf("got %q", value.AsString(out))
	}
}

func TestFnStringToCodepointsRoundTrip(t *testing.T) {
	cps := call(t, NSFn, "string-to-codepoints", value.Singleton(value.String("AB")))
	if len(cps) != 2 {
		t.Fatalf("got %v", cps)
	}
	out := call(t, NSFn, "codepoints-to-string", cps)
	if value.AsString(out) != "AB" {
		t.Fatalf("got %q", value.AsString(out))
	}
}
