// Package xfunc is the XPath 3.1 function library: a (namespace, name)
// keyed registry of *Function{F, MinArg, MaxArg} populated by init()
// calls to Register, one call per function.
package xfunc

import (
	"github.com/basilisk-labs/xdom/internal/value"
	"github.com/basilisk-labs/xdom/internal/xerr"
)

// Namespace URIs used by the built-in function library.
const (
	NSFn    = "http://www.w3.org/2005/xpath-functions"
	NSXS    = "http://www.w3.org/2001/XMLSchema"
	NSArray = "http://www.w3.org/2005/xpath-functions/array"
	NSMap   = "http://www.w3.org/2005/xpath-functions/map"
)

// Ctx is the slice of the dynamic evaluation context a function body
// needs: the focus (context item/position/size). It deliberately does
// not depend on internal/eval or internal/tree.Document beyond what
// value.Node already carries, so this package has no import-cycle risk
// with the evaluator that calls into it.
type Ctx struct {
	Item     value.Item
	HasItem  bool
	Position int
	Size     int
}

// Func is one built-in function body.
type Func func(ctx *Ctx, args []value.Sequence) (value.Sequence, error)

// Function is a registered built-in.
type Function struct {
	Name      string
	Namespace string
	F         Func
	MinArg    int
	MaxArg    int
}

var registry = make(map[string]*Function)

// Register adds fn to the built-in library. Called from init() in every
// file of this package, one call per function.
func Register(fn *Function) {
	registry[fn.Namespace+" "+fn.Name] = fn
}

// Lookup finds a registered function by namespace and local name.
func Lookup(namespace, name string) *Function {
	return registry[namespace+" "+name]
}

// Call resolves and invokes namespace:name(args...), validating arity
// before dispatch.
func Call(namespace, name string, args []value.Sequence, ctx *Ctx) (value.Sequence, error) {
	fn := Lookup(namespace, name)
	if fn == nil {
		return nil, xerr.Staticf(-1, "unknown function %s in namespace %q", name, namespace)
	}
	if len(args) < fn.MinArg {
		return nil, xerr.Staticf(-1, "too few arguments to %s(): got %d, need at least %d", fn.Name, len(args), fn.MinArg)
	}
	if fn.MaxArg >= 0 && len(args) > fn.MaxArg {
		return nil, xerr.Staticf(-1, "too many arguments to %s(): got %d, max %d", fn.Name, len(args), fn.MaxArg)
	}
	return fn.F(ctx, args)
}

// contextNode extracts the context item as required, for functions like
// name()/local-name() that default their argument to the context node.
func contextNode(ctx *Ctx) (value.Node, error) {
	if !ctx.HasItem {
		return value.Node{}, xerr.Dynamicf("XPDY0002", "no context item is set")
	}
	n, ok := ctx.Item.(value.Node)
	if !ok {
		return value.Node{}, xerr.Typef("XPTY0004", "context item is not a node")
	}
	return n, nil
}

func oneArgOrContext(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if !ctx.HasItem {
		return nil, xerr.Dynamicf("XPDY0002", "no context item is set")
	}
	return value.Singleton(ctx.Item), nil
}

func singleNodeArgOrContext(ctx *Ctx, args []value.Sequence) (value.Node, error) {
	seq, err := oneArgOrContext(ctx, args)
	if err != nil {
		return value.Node{}, err
	}
	if len(seq) == 0 {
		return value.Node{}, nil
	}
	n, ok := seq[0].(value.Node)
	if !ok {
		return value.Node{}, xerr.Typef("XPTY0004", "expected a node, got %T", seq[0])
	}
	return n, nil
}
