package evaluator

import (
	"context"
	"errors"
	"math"

	"github.com/sandrolain/gostokhos/pkg/functions"
	"github.com/sandrolain/gostokhos/pkg/types"
)

// evalCall evaluates a function call. Special forms receive their
// arguments unevaluated; eager functions receive forced values.
func (e *Evaluator) evalCall(ctx context.Context, call *types.FunctionCall) (types.Value, error) {
	fn := e.table.Function(call.Name)
	if fn == nil {
		return nil, runtimeFault(types.ErrUndefinedFunction, call.Col, "undefined function %q", call.Name)
	}

	if fn.Def.Special {
		return e.evalSpecial(ctx, call)
	}

	args := make([]types.Value, len(call.Args))
	argTypes := make([]types.Type, len(call.Args))
	for i, a := range call.Args {
		v, err := e.value(ctx, a)
		if err != nil {
			return nil, err
		}
		args[i] = v
		argTypes[i] = typeOfValue(v)
	}

	overload, ok := selectOverload(fn.Def, argTypes)
	if !ok {
		return nil, runtimeFault(types.ErrBadArgument, call.Col, "no overload of %q accepts %s", call.Name, call)
	}

	result, err := overload.Fn(e, args...)
	if err != nil {
		var serr *types.Error
		if errors.As(err, &serr) {
			if serr.Column == 0 {
				serr.Column = call.Col
			}
			return nil, serr
		}
		return nil, runtimeFault(types.ErrBadArgument, call.Col, "%s in %q", err.Error(), call.String()).WithCause(err)
	}

	if n, ok := result.(types.Number); ok && (math.IsNaN(float64(n)) || math.IsInf(float64(n), 0)) {
		return nil, runtimeFault(types.ErrArithmetic, call.Col, "arithmetic error in %q", call.String())
	}
	return result, nil
}

// selectOverload picks the first overload whose parameters accept the
// runtime argument types, mirroring the validator's choice.
func selectOverload(def functions.Def, args []types.Type) (functions.Overload, bool) {
	for _, o := range def.Overloads {
		if len(o.Params) != len(args) {
			continue
		}
		match := true
		for i, p := range o.Params {
			if !args[i].Equal(p) {
				match = false
				break
			}
		}
		if match {
			return o, true
		}
	}
	return functions.Overload{}, false
}

// typeOfValue returns the dynamic type of a value. Empty arrays have the
// unresolved array type.
func typeOfValue(v types.Value) types.Type {
	switch x := v.(type) {
	case types.Number:
		return types.Num
	case types.Boolean:
		return types.Bool
	case types.TypeValue:
		return types.TypeT
	case types.Array:
		if len(x) == 0 {
			return types.AnyArray
		}
		return types.ArrayOf(typeOfValue(x[0]))
	}
	return types.Void
}
