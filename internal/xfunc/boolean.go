package xfunc

import "github.com/basilisk-labs/xdom/internal/value"

func fnBoolean(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	b, err := value.EffectiveBoolean(args[0])
	if err != nil {
		return nil, err
	}
	return value.Singleton(value.Boolean(b)), nil
}

func fnNot(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	b, err := value.EffectiveBoolean(args[0])
	if err != nil {
		return nil, err
	}
	return value.Singleton(value.Boolean(!b)), nil
}

func fnTrue(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	return value.Singleton(value.Boolean(true)), nil
}

func fnFalse(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	return value.Singleton(value.Boolean(false)), nil
}

func init() {
	Register(&Function{Name: "boolean", Namespace: NSFn, F: fnBoolean, MinArg: 1, MaxArg: 1})
	Register(&Function{Name: "not", Namespace: NSFn, F: fnNot, MinArg: 1, MaxArg: 1})
	Register(&Function{Name: "true", Namespace: NSFn, F: fnTrue, MinArg: 0, MaxArg: 0})
	Register(&Function{Name: "false", Namespace: NSFn, F: fnFalse, MinArg: 0, MaxArg: 0})
}
