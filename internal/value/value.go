// Package value implements the XPath value/sequence algebra: typed
// atomic items, node references, and heterogeneous flat sequences, plus
// the promotion and comparison rules that operators apply to them.
//
// Item is a small closed set of concrete types (tagged variants) rather
// than a bag of interface{} — callers switch on concrete Go types (a
// type switch over Boolean/Integer/Decimal/...), which the compiler can
// check for exhaustiveness in review even though Go itself won't
// enforce it.
package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/basilisk-labs/xdom/internal/tree"
)

// Item is one member of a Sequence: an atomic value or a node reference.
type Item interface {
	isItem()
	fmt.Stringer
}

// Boolean is the xs:boolean atomic type.
type Boolean bool

func (Boolean) isItem()          {}
func (b Boolean) String() string { return strconv.FormatBool(bool(b)) }

// Integer is the xs:integer atomic type.
type Integer int64

func (Integer) isItem()          {}
func (i Integer) String() string { return strconv.FormatInt(int64(i), 10) }

// Decimal is the xs:decimal atomic type. It is represented as a float64
// internally (arbitrary precision is out of scope), but is a distinct
// Go type so the numeric-promotion ladder (integer < decimal < double)
// can dispatch on it.
type Decimal float64

func (Decimal) isItem() {}
func (d Decimal) String() string {
	return strconv.FormatFloat(float64(d), 'f', -1, 64)
}

// Double is the xs:double atomic type.
type Double float64

func (Double) isItem() {}
func (d Double) String() string {
	f := float64(d)
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// String is the xs:string atomic type.
type String string

func (String) isItem()          {}
func (s String) String() string { return string(s) }

// UntypedAtomic is the type of unparsed element/attribute content: it
// auto-promotes to double in arithmetic and to string in string
// contexts.
type UntypedAtomic string

func (UntypedAtomic) isItem()          {}
func (u UntypedAtomic) String() string { return string(u) }

// QName is the xs:QName atomic type.
type QName struct {
	URI    string
	Prefix string
	Local  string
}

func (QName) isItem() {}
func (q QName) String() string {
	if q.Prefix != "" {
		return q.Prefix + ":" + q.Local
	}
	return q.Local
}

// Node is a reference to a node in a tree.Document.
type Node struct {
	Doc *tree.Document
	ID  tree.NodeID
}

func (Node) isItem() {}
func (n Node) String() string {
	return n.Doc.StringValue(n.ID)
}

// Equal reports whether n and o are the same node identity ("is").
func (n Node) Equal(o Node) bool { return n.Doc == o.Doc && n.ID == o.ID }

// Sequence is a flat, ordered list of items. Sequences never nest;
// concatenation is the only way to combine them.
type Sequence []Item

// Empty is the canonical empty sequence.
var Empty = Sequence(nil)

// Singleton wraps one item.
func Singleton(i Item) Sequence { return Sequence{i} }

// StringValue is the atomization string value of a sequence: the
// concatenation of the string value of every item.
func (s Sequence) StringValue() string {
	var sb strings.Builder
	for _, itm := range s {
		sb.WriteString(itm.String())
	}
	return sb.String()
}

// String implements the value-serialization grammar: bare form for a
// singleton, "(x, y, z)" for a multi-item sequence.
func (s Sequence) String() string {
	if len(s) == 1 {
		return itemDisplay(s[0])
	}
	parts := make([]string, len(s))
	for i, itm := range s {
		parts[i] = itemDisplay(itm)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func itemDisplay(itm Item) string {
	if n, ok := itm.(Node); ok && n.Doc.Kind(n.ID) == tree.Element {
		return serializeElement(n)
	}
	return itm.String()
}

// serializeElement is a minimal, dependency-free element-to-XML
// renderer used only for the "element nodes serialize as their XML"
// display rule; the full round-trip serializer lives in internal/xmlio.
func serializeElement(n Node) string {
	var sb strings.Builder
	writeElement(&sb, n.Doc, n.ID)
	return sb.String()
}

func writeElement(sb *strings.Builder, d *tree.Document, id tree.NodeID) {
	name := d.Name(id)
	sb.WriteByte('<')
	sb.WriteString(name.Local)
	for _, a := range d.Attributes(id) {
		fmt.Fprintf(sb, " %s=%q", d.Name(a).Local, d.AttributeValue(a))
	}
	children := d.Children(id)
	if len(children) == 0 {
		sb.WriteString("/>")
		return
	}
	sb.WriteByte('>')
	for _, c := range children {
		switch d.Kind(c) {
		case tree.Element:
			writeElement(sb, d, c)
		case tree.Text:
			sb.WriteString(d.Data(c))
		case tree.Comment:
			sb.WriteString("<!--")
			sb.WriteString(d.Data(c))
			sb.WriteString("-->")
		case tree.ProcInst:
			sb.WriteString("<?")
			sb.WriteString(d.Name(c).Local)
			sb.WriteByte(' ')
			sb.WriteString(d.Data(c))
			sb.WriteString("?>")
		}
	}
	sb.WriteString("</")
	sb.WriteString(name.Local)
	sb.WriteByte('>')
}
