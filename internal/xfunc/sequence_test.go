package xfunc

import (
	"testing"

	"github.com/basilisk-labs/xdom/internal/value"
)

func TestFnEmptyExists(t *testing.T) {
	if !bool(call(t, NSFn, "empty", value.Empty)[0].(value.Boolean)) {
		t.Fatal("expected empty true")
	}
	if !bool(call(t, NSFn, "exists", ints(1))[0].(value.Boolean)) {
		t.Fatal("expected exists true")
	}
}

func TestFnDistinctValues(t *testing.T) {
	out := call(t, NSFn, "distinct-values", ints(1, 2, 2, 3, 1))
	if len(out) != 3 {
		t.Fatalf("got %v", out)
	}
}

func TestFnIndexOf(t *testing.T) {
	out := call(t, NSFn, "index-of", ints(10, 20, 30, 20), value.Singleton(value.Integer(20)))
	if len(out) != 2 || out[0].String() != "2" || out[1].String() != "4" {
		t.Fatalf("got %v", out)
	}
}

func TestFnInsertBeforeAndRemove(t *testing.T) {
	out := call(t, NSFn, "insert-before", ints(1, 2, 3), value.Singleton(value.Integer(2)), ints(9))
	if len(out) != 4 || out[1].String() != "9" {
		t.Fatalf("got %v", out)
	}
	removed := call(t, NSFn, "remove", ints(1, 2, 3), value.Singleton(value.Integer(2)))
	if len(removed) != 2 || removed[1].String() != "3" {
		t.Fatalf("got %v", removed)
	}
}

func TestFnReverseAndSubsequence(t *testing.T) {
	rev := call(t, NSFn, "reverse", ints(1, 2, 3))
	if rev[0].String() != "3" || rev[2].String() != "1" {
		t.Fatalf("got %v", rev)
	}
	sub := call(t, NSFn, "subsequence", ints(1, 2, 3, 4, 5), value.Singleton(value.Integer(2)), value.Singleton(value.Integer(3)))
	if len(sub) != 3 || sub[0].String() != "2" {
		t.Fatalf("got %v", sub)
	}
}
