// A fixed-arity member function set (get/put/size and friends)
// dispatched over a persistent, copy-on-write array value rather than a
// Go slice the caller could alias and mutate.
package xfunc

import (
	"github.com/basilisk-labs/xdom/internal/value"
	"github.com/basilisk-labs/xdom/internal/xerr"
)

func asArray(seq value.Sequence, fn string) (*value.Array, error) {
	if len(seq) != 1 {
		return nil, xerr.Typef("XPTY0004", "%s: expected a single array", fn)
	}
	a, ok := seq[0].(*value.Array)
	if !ok {
		return nil, xerr.Typef("XPTY0004", "%s: expected an array, got %T", fn, seq[0])
	}
	return a, nil
}

func arrayGet(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	a, err := asArray(args[0], "array:get")
	if err != nil {
		return nil, err
	}
	pos, err := value.AsNumber(args[1])
	if err != nil {
		return nil, err
	}
	return a.Get(int(pos))
}

func arraySize(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	a, err := asArray(args[0], "array:size")
	if err != nil {
		return nil, err
	}
	return value.Singleton(value.Integer(a.Size())), nil
}

func arrayPut(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	a, err := asArray(args[0], "array:put")
	if err != nil {
		return nil, err
	}
	pos, err := value.AsNumber(args[1])
	if err != nil {
		return nil, err
	}
	idx := int(pos) - 1
	if idx < 0 || idx >= len(a.Members) {
		return nil, xerr.Dynamicf("FOAY0001", "array:put: index %d out of bounds", int(pos))
	}
	members := make([]value.Sequence, len(a.Members))
	copy(members, a.Members)
	members[idx] = args[2]
	return value.Singleton(&value.Array{Members: members}), nil
}

func arrayAppend(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	a, err := asArray(args[0], "array:append")
	if err != nil {
		return nil, err
	}
	members := make([]value.Sequence, len(a.Members)+1)
	copy(members, a.Members)
	members[len(a.Members)] = args[1]
	return value.Singleton(&value.Array{Members: members}), nil
}

func arrayJoin(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	var members []value.Sequence
	for _, itm := range args[0] {
		a, ok := itm.(*value.Array)
		if !ok {
			return nil, xerr.Typef("XPTY0004", "array:join: expected an array member, got %T", itm)
		}
		members = append(members, a.Members...)
	}
	return value.Singleton(&value.Array{Members: members}), nil
}

func init() {
	Register(&Function{Name: "get", Namespace: NSArray, F: arrayGet, MinArg: 2, MaxArg: 2})
	Register(&Function{Name: "size", Namespace: NSArray, F: arraySize, MinArg: 1, MaxArg: 1})
	Register(&Function{Name: "put", Namespace: NSArray, F: arrayPut, MinArg: 3, MaxArg: 3})
	Register(&Function{Name: "append", Namespace: NSArray, F: arrayAppend, MinArg: 2, MaxArg: 2})
	Register(&Function{Name: "join", Namespace: NSArray, F: arrayJoin, MinArg: 1, MaxArg: 1})
}
