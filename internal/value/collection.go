package value

import (
	"strconv"
	"strings"

	"github.com/basilisk-labs/xdom/internal/xerr"
)

// Array is the XPath 3.1 array item type. Its Sequence members are held
// in an exported slice and are also reachable through Get/Size; Item
// values here are immutable once constructed.
type Array struct {
	Members []Sequence
}

func (*Array) isItem() {}
func (a *Array) String() string {
	parts := make([]string, len(a.Members))
	for i, m := range a.Members {
		parts[i] = m.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Get returns the 1-based member at pos.
func (a *Array) Get(pos int) (Sequence, error) {
	if pos < 1 || pos > len(a.Members) {
		return nil, xerr.Dynamicf("FOAY0001", "array index %d out of bounds (size %d)", pos, len(a.Members))
	}
	return a.Members[pos-1], nil
}

// Size returns the number of members.
func (a *Array) Size() int { return len(a.Members) }

// MapEntry is one key/value pair of a Map, in insertion order.
type MapEntry struct {
	Key   Item
	Value Sequence
}

// Map is the XPath 3.1 map item type. Lookup compares keys by atomized
// string value, which loses type discrimination between, say, the
// string "1" and the integer 1 that XPath 3.1 does not actually
// conflate, but no caller in this module needs anything stricter.
type Map struct {
	Entries []MapEntry
}

func (*Map) isItem() {}
func (m *Map) String() string {
	parts := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		parts[i] = itemDisplay(e.Key) + ": " + e.Value.String()
	}
	return "map{" + strings.Join(parts, ", ") + "}"
}

func mapKeyString(itm Item) string {
	if n, ok := itm.(Node); ok {
		return n.Doc.StringValue(n.ID)
	}
	return itm.String()
}

// Get looks up key, reporting whether it was found.
func (m *Map) Get(key Item) (Sequence, bool) {
	ks := mapKeyString(key)
	for _, e := range m.Entries {
		if mapKeyString(e.Key) == ks {
			return e.Value, true
		}
	}
	return nil, false
}

// Contains reports whether key is present.
func (m *Map) Contains(key Item) bool {
	_, ok := m.Get(key)
	return ok
}

// Keys returns every key as a Sequence, in insertion order.
func (m *Map) Keys() Sequence {
	out := make(Sequence, len(m.Entries))
	for i, e := range m.Entries {
		out[i] = e.Key
	}
	return out
}

// Size returns the number of entries.
func (m *Map) Size() int { return len(m.Entries) }

// Put returns a new Map with key bound to val, replacing any existing
// entry for the same key. Maps are immutable values, so mutation always
// produces a fresh Map.
func (m *Map) Put(key Item, val Sequence) *Map {
	ks := mapKeyString(key)
	out := &Map{Entries: make([]MapEntry, 0, len(m.Entries)+1)}
	replaced := false
	for _, e := range m.Entries {
		if mapKeyString(e.Key) == ks {
			out.Entries = append(out.Entries, MapEntry{Key: key, Value: val})
			replaced = true
			continue
		}
		out.Entries = append(out.Entries, e)
	}
	if !replaced {
		out.Entries = append(out.Entries, MapEntry{Key: key, Value: val})
	}
	return out
}

// Remove returns a new Map with key's entry dropped, if present.
func (m *Map) Remove(key Item) *Map {
	ks := mapKeyString(key)
	out := &Map{Entries: make([]MapEntry, 0, len(m.Entries))}
	for _, e := range m.Entries {
		if mapKeyString(e.Key) == ks {
			continue
		}
		out.Entries = append(out.Entries, e)
	}
	return out
}

// ItemOrdinal reports the 1-based ordinal of itm if it is an Integer,
// used by array:get / array subscript lookups sourced from a Sequence
// rather than a bare int.
func ItemOrdinal(itm Item) (int, error) {
	switch t := itm.(type) {
	case Integer:
		return int(t), nil
	case Decimal, Double:
		f := toFloat(t)
		return int(f), nil
	case String, UntypedAtomic:
		n, err := strconv.Atoi(strings.TrimSpace(itm.String()))
		if err != nil {
			return 0, xerr.Typef("FORG0001", "cannot cast %q to an integer index", itm.String())
		}
		return n, nil
	}
	return 0, xerr.Typef("XPTY0004", "expected an integer index, got %T", itm)
}
