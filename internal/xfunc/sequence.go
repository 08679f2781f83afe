package xfunc

import (
	"github.com/basilisk-labs/xdom/internal/value"
	"github.com/basilisk-labs/xdom/internal/xerr"
)

func fnEmpty(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	return value.Singleton(value.Boolean(len(args[0]) == 0)), nil
}

func fnExists(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	return value.Singleton(value.Boolean(len(args[0]) != 0)), nil
}

// atomsEqual compares two atomic items using the "eq" value-comparison
// semantics, treating incomparable types (e.g. a boolean against a
// string) as unequal rather than an error, since distinct-values and
// index-of must tolerate heterogeneous input sequences.
func atomsEqual(a, b value.Item) bool {
	ok, err := value.ValueCompare("eq", value.Singleton(a), value.Singleton(b))
	if err != nil {
		return false
	}
	return ok
}

func fnDistinctValues(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	atoms := value.Atomize(args[0])
	var out value.Sequence
	for _, itm := range atoms {
		dup := false
		for _, kept := range out {
			if atomsEqual(itm, kept) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, itm)
		}
	}
	return out, nil
}

func fnIndexOf(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	atoms := value.Atomize(args[0])
	if len(args[1]) != 1 {
		return nil, xerr.Typef("XPTY0004", "index-of: search value must be a single item")
	}
	search := value.Atomize(args[1])[0]
	var out value.Sequence
	for i, itm := range atoms {
		if atomsEqual(itm, search) {
			out = append(out, value.Integer(i+1))
		}
	}
	return out, nil
}

func fnInsertBefore(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	pos, err := value.AsNumber(args[1])
	if err != nil {
		return nil, err
	}
	seq, ins := args[0], args[2]
	idx := int(pos) - 1
	if idx < 0 {
		idx = 0
	}
	if idx > len(seq) {
		idx = len(seq)
	}
	out := make(value.Sequence, 0, len(seq)+len(ins))
	out = append(out, seq[:idx]...)
	out = append(out, ins...)
	out = append(out, seq[idx:]...)
	return out, nil
}

func fnRemove(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	pos, err := value.AsNumber(args[1])
	if err != nil {
		return nil, err
	}
	idx := int(pos) - 1
	seq := args[0]
	if idx < 0 || idx >= len(seq) {
		return seq, nil
	}
	out := make(value.Sequence, 0, len(seq)-1)
	out = append(out, seq[:idx]...)
	out = append(out, seq[idx+1:]...)
	return out, nil
}

func fnReverse(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	seq := args[0]
	out := make(value.Sequence, len(seq))
	for i, itm := range seq {
		out[len(seq)-1-i] = itm
	}
	return out, nil
}

func fnSubsequence(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	seq := args[0]
	start, err := value.AsNumber(args[1])
	if err != nil {
		return nil, err
	}
	from := int(round(start)) - 1
	to := len(seq)
	if len(args) == 3 {
		length, err := value.AsNumber(args[2])
		if err != nil {
			return nil, err
		}
		to = from + int(round(length))
	}
	if from < 0 {
		from = 0
	}
	if to > len(seq) {
		to = len(seq)
	}
	if to < from {
		return value.Empty, nil
	}
	return seq[from:to], nil
}

func fnUnordered(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	return args[0], nil
}

func init() {
	Register(&Function{Name: "empty", Namespace: NSFn, F: fnEmpty, MinArg: 1, MaxArg: 1})
	Register(&Function{Name: "exists", Namespace: NSFn, F: fnExists, MinArg: 1, MaxArg: 1})
	Register(&Function{Name: "distinct-values", Namespace: NSFn, F: fnDistinctValues, MinArg: 1, MaxArg: 2})
	Register(&Function{Name: "index-of", Namespace: NSFn, F: fnIndexOf, MinArg: 2, MaxArg: 3})
	Register(&Function{Name: "insert-before", Namespace: NSFn, F: fnInsertBefore, MinArg: 3, MaxArg: 3})
	Register(&Function{Name: "remove", Namespace: NSFn, F: fnRemove, MinArg: 2, MaxArg: 2})
	Register(&Function{Name: "reverse", Namespace: NSFn, F: fnReverse, MinArg: 1, MaxArg: 1})
	Register(&Function{Name: "subsequence", Namespace: NSFn, F: fnSubsequence, MinArg: 2, MaxArg: 3})
	Register(&Function{Name: "unordered", Namespace: NSFn, F: fnUnordered, MinArg: 1, MaxArg: 1})
}
