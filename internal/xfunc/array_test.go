package xfunc

import (
	"testing"

	"github.com/basilisk-labs/xdom/internal/value"
)

func TestArrayGetAndSize(t *testing.T) {
	a := &value.Array{Members: []value.Sequence{
		value.Singleton(value.Integer(1)),
		value.Singleton(value.Integer(2)),
	}}
	out := call(t, NSArray, "get", value.Singleton(a), value.Singleton(value.Integer(2)))
	if n, _ := value.AsNumber(out); n != 2 {
		t.Fatalf("got %v", out)
	}
	sz := call(t, NSArray, "size", value.Singleton(a))
	if n, _ := value.AsNumber(sz); n != 2 {
		t.Fatalf("got %v", sz)
	}
}

func TestArrayPutDoesNotMutateOriginal(t *testing.T) {
	a := &value.Array{Members: []value.Sequence{value.Singleton(value.Integer(1))}}
	call(t, NSArray, "put", value.Singleton(a), value.Singleton(value.Integer(1)), value.Singleton(value.Integer(9)))
	if n, _ := a.Get(1); value.AsString(n) != "1" {
		t.Fatalf("original array was mutated: %v", a)
	}
}

func TestArrayAppendAndJoin(t *testing.T) {
	a := &value.Array{Members: []value.Sequence{value.Singleton(value.Integer(1))}}
	b := &value.Array{Members: []value.Sequence{value.Singleton(value.Integer(2))}}
	joined := call(t, NSArray, "join", value.Sequence{a, b})
	ja := joined[0].(*value.Array)
	if ja.Size() != 2 {
		t.Fatalf("got size %d", ja.Size())
	}
}
