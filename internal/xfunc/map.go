// The same persistent copy-on-write approach as array.go, keyed by
// atomic item; value.Map compares keys by their string form, so the
// string "1" and the integer 1 address the same entry.
package xfunc

import (
	"github.com/basilisk-labs/xdom/internal/value"
	"github.com/basilisk-labs/xdom/internal/xerr"
)

func asMap(seq value.Sequence, fn string) (*value.Map, error) {
	if len(seq) != 1 {
		return nil, xerr.Typef("XPTY0004", "%s: expected a single map", fn)
	}
	m, ok := seq[0].(*value.Map)
	if !ok {
		return nil, xerr.Typef("XPTY0004", "%s: expected a map, got %T", fn, seq[0])
	}
	return m, nil
}

func mapKeyArg(seq value.Sequence, fn string) (value.Item, error) {
	atoms := value.Atomize(seq)
	if len(atoms) != 1 {
		return nil, xerr.Typef("XPTY0004", "%s: expected a single key", fn)
	}
	return atoms[0], nil
}

func mapGet(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	m, err := asMap(args[0], "map:get")
	if err != nil {
		return nil, err
	}
	key, err := mapKeyArg(args[1], "map:get")
	if err != nil {
		return nil, err
	}
	seq, ok := m.Get(key)
	if !ok {
		return value.Empty, nil
	}
	return seq, nil
}

func mapContains(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	m, err := asMap(args[0], "map:contains")
	if err != nil {
		return nil, err
	}
	key, err := mapKeyArg(args[1], "map:contains")
	if err != nil {
		return nil, err
	}
	return value.Singleton(value.Boolean(m.Contains(key))), nil
}

func mapKeys(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	m, err := asMap(args[0], "map:keys")
	if err != nil {
		return nil, err
	}
	return m.Keys(), nil
}

func mapSize(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	m, err := asMap(args[0], "map:size")
	if err != nil {
		return nil, err
	}
	return value.Singleton(value.Integer(m.Size())), nil
}

func mapPut(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	m, err := asMap(args[0], "map:put")
	if err != nil {
		return nil, err
	}
	key, err := mapKeyArg(args[1], "map:put")
	if err != nil {
		return nil, err
	}
	return value.Singleton(m.Put(key, args[2])), nil
}

func mapRemove(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	m, err := asMap(args[0], "map:remove")
	if err != nil {
		return nil, err
	}
	key, err := mapKeyArg(args[1], "map:remove")
	if err != nil {
		return nil, err
	}
	return value.Singleton(m.Remove(key)), nil
}

func mapMerge(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	out := &value.Map{}
	for _, itm := range args[0] {
		m, ok := itm.(*value.Map)
		if !ok {
			return nil, xerr.Typef("XPTY0004", "map:merge: expected a map member, got %T", itm)
		}
		for _, e := range m.Entries {
			if !out.Contains(e.Key) {
				out = out.Put(e.Key, e.Value)
			}
		}
	}
	return value.Singleton(out), nil
}

func init() {
	Register(&Function{Name: "get", Namespace: NSMap, F: mapGet, MinArg: 2, MaxArg: 2})
	Register(&Function{Name: "contains", Namespace: NSMap, F: mapContains, MinArg: 2, MaxArg: 2})
	Register(&Function{Name: "keys", Namespace: NSMap, F: mapKeys, MinArg: 1, MaxArg: 1})
	Register(&Function{Name: "size", Namespace: NSMap, F: mapSize, MinArg: 1, MaxArg: 1})
	Register(&Function{Name: "put", Namespace: NSMap, F: mapPut, MinArg: 3, MaxArg: 3})
	Register(&Function{Name: "remove", Namespace: NSMap, F: mapRemove, MinArg: 2, MaxArg: 2})
	Register(&Function{Name: "merge", Namespace: NSMap, F: mapMerge, MinArg: 1, MaxArg: 1})
}
