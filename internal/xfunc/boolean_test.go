package xfunc

import (
	"testing"

	"github.com/basilisk-labs/xdom/internal/value"
)

func TestFnBooleanNotTrueFalse(t *testing.T) {
	if !bool(call(t, NSFn, "true")[0].(value.Boolean)) {
		t.Fatal("expected true()")
	}
	if bool(call(t, NSFn, "false")[0].(value.Boolean)) {
		t.Fatal("expected false()")
	}
	if bool(call(t, NSFn, "not", value.Singleton(value.Boolean(true)))[0].(value.Boolean)) {
		t.Fatal("expected not(true()) == false")
	}
	if !bool(call(t, NSFn, "boolean", ints(1))[0].(value.Boolean)) {
		t.Fatal("expected boolean(1) == true")
	}
}
