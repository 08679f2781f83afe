package xfunc

import (
	"strings"

	"github.com/basilisk-labs/xdom/internal/tree"
	"github.com/basilisk-labs/xdom/internal/value"
	"github.com/basilisk-labs/xdom/internal/xerr"
)

func fnName(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	n, err := singleNodeArgOrContext(ctx, args)
	if err != nil {
		return nil, err
	}
	if n.Doc == nil {
		return value.Singleton(value.String("")), nil
	}
	name := n.Doc.Name(n.ID)
	text := name.Local
	if name.URI != "" {
		text = name.URI + ":" + name.Local
	}
	return value.Singleton(value.String(text)), nil
}

func fnLocalName(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	n, err := singleNodeArgOrContext(ctx, args)
	if err != nil {
		return nil, err
	}
	if n.Doc == nil {
		return value.Singleton(value.String("")), nil
	}
	return value.Singleton(value.String(n.Doc.Name(n.ID).Local)), nil
}

func fnNamespaceURI(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	n, err := singleNodeArgOrContext(ctx, args)
	if err != nil {
		return nil, err
	}
	if n.Doc == nil {
		return value.Singleton(value.String("")), nil
	}
	return value.Singleton(value.String(n.Doc.Name(n.ID).URI)), nil
}

func fnRoot(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	n, err := singleNodeArgOrContext(ctx, args)
	if err != nil {
		return nil, err
	}
	if n.Doc == nil {
		return value.Empty, nil
	}
	walk := n.Doc.AncestorWalk(n.ID)
	root := n.ID
	for _, a := range walk {
		root = a
	}
	return value.Singleton(value.Node{Doc: n.Doc, ID: root}), nil
}

func fnPosition(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	if ctx.Position == 0 {
		return nil, xerr.Dynamicf("XPDY0002", "position() called outside of a focus")
	}
	return value.Singleton(value.Integer(ctx.Position)), nil
}

func fnLast(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	if ctx.Size == 0 {
		return nil, xerr.Dynamicf("XPDY0002", "last() called outside of a focus")
	}
	return value.Singleton(value.Integer(ctx.Size)), nil
}

func fnCount(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	return value.Singleton(value.Integer(len(args[0]))), nil
}

func fnID(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	// A full xml:id / DTD ID-typed-attribute lookup needs schema
	// information this module never loads, so this scans linearly for an
	// attribute literally named "id" instead.
	ids := map[string]bool{}
	for _, itm := range value.Atomize(args[0]) {
		for _, tok := range strings.Fields(itm.String()) {
			ids[tok] = true
		}
	}
	n, err := singleNodeArgOrContext(ctx, args[1:])
	if err != nil {
		return nil, err
	}
	if n.Doc == nil {
		return value.Empty, nil
	}
	var found []tree.NodeID
	var walk func(id tree.NodeID)
	walk = func(id tree.NodeID) {
		if n.Doc.Kind(id) == tree.Element {
			for _, a := range n.Doc.Attributes(id) {
				if n.Doc.Name(a).Local == "id" && ids[n.Doc.AttributeValue(a)] {
					found = append(found, id)
				}
			}
		}
		for _, c := range n.Doc.Children(id) {
			walk(c)
		}
	}
	walk(n.Doc.DocumentNode())
	out := make(value.Sequence, len(found))
	for i, id := range found {
		out[i] = value.Node{Doc: n.Doc, ID: id}
	}
	return out, nil
}

func fnLang(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	want := value.AsString(args[0])
	n, err := singleNodeArgOrContext(ctx, args[1:])
	if err != nil {
		return nil, err
	}
	if n.Doc == nil {
		return value.Singleton(value.Boolean(false)), nil
	}
	for _, id := range n.Doc.AncestorWalk(n.ID) {
		if n.Doc.Kind(id) != tree.Element {
			continue
		}
		for _, a := range n.Doc.Attributes(id) {
			name := n.Doc.Name(a)
			if name.Local == "lang" && name.URI == tree.NSReservedXML {
				got := n.Doc.AttributeValue(a)
				return value.Singleton(value.Boolean(strings.EqualFold(got, want) ||
					strings.HasPrefix(strings.ToLower(got), strings.ToLower(want)+"-"))), nil
			}
		}
	}
	return value.Singleton(value.Boolean(false)), nil
}

func init() {
	Register(&Function{Name: "name", Namespace: NSFn, F: fnName, MinArg: 0, MaxArg: 1})
	Register(&Function{Name: "local-name", Namespace: NSFn, F: fnLocalName, MinArg: 0, MaxArg: 1})
	Register(&Function{Name: "namespace-uri", Namespace: NSFn, F: fnNamespaceURI, MinArg: 0, MaxArg: 1})
	Register(&Function{Name: "root", Namespace: NSFn, F: fnRoot, MinArg: 0, MaxArg: 1})
	Register(&Function{Name: "position", Namespace: NSFn, F: fnPosition, MinArg: 0, MaxArg: 0})
	Register(&Function{Name: "last", Namespace: NSFn, F: fnLast, MinArg: 0, MaxArg: 0})
	Register(&Function{Name: "count", Namespace: NSFn, F: fnCount, MinArg: 1, MaxArg: 1})
	Register(&Function{Name: "id", Namespace: NSFn, F: fnID, MinArg: 1, MaxArg: 2})
	Register(&Function{Name: "lang", Namespace: NSFn, F: fnLang, MinArg: 1, MaxArg: 2})
}
