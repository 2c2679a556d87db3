package validator

import (
	"github.com/sandrolain/gostokhos/pkg/functions"
	"github.com/sandrolain/gostokhos/pkg/symtable"
	"github.com/sandrolain/gostokhos/pkg/types"
)

// specialRule type-checks a special form against its unevaluated arguments.
type specialRule func(v *Validator, call *types.FunctionCall) (types.Type, error)

// specialRuleFor returns the checker for a special form, or nil when name
// is not one. The checkers call back into TypeOf, so this cannot be a
// package-level map.
func specialRuleFor(name string) specialRule {
	switch name {
	case "if":
		return checkIf
	case "type":
		return checkType
	case "ltype":
		return checkLtype
	case "formula":
		return checkFormula
	case "tick":
		return checkNullary(types.Num)
	case "reset":
		return checkNullary(types.Bool)
	case "array":
		return checkArray
	case "histogram":
		return checkHistogram
	}
	return nil
}

func (v *Validator) typeOfCall(call *types.FunctionCall) (types.Type, error) {
	sym, err := v.lookup(call.Name, call.Col)
	if err != nil {
		return types.Void, err
	}
	fn, ok := sym.(*symtable.Function)
	if !ok {
		return types.Void, semantic(types.ErrNotAFunction, call.Col, "%q is not a function", call.Name)
	}

	if fn.Def.Special {
		if rule := specialRuleFor(call.Name); rule != nil {
			return rule(v, call)
		}
	}
	return v.resolveOverload(fn.Def, call)
}

// resolveOverload tries each overload in declaration order and returns the
// first match's result type. On failure the error describes the last
// overload tried.
func (v *Validator) resolveOverload(def functions.Def, call *types.FunctionCall) (types.Type, error) {
	args := make([]types.Type, len(call.Args))
	for i, a := range call.Args {
		t, err := v.TypeOf(a)
		if err != nil {
			return types.Void, err
		}
		args[i] = t
	}

	var lastErr error = arityError(call, 0)
	for _, o := range def.Overloads {
		if len(o.Params) != len(args) {
			lastErr = arityError(call, len(o.Params))
			continue
		}
		mismatch := -1
		for i, p := range o.Params {
			if !args[i].Equal(p) {
				mismatch = i
				break
			}
		}
		if mismatch < 0 {
			return o.Return, nil
		}
		lastErr = semantic(types.ErrArgumentType, call.Args[mismatch].Column(),
			"argument %d of %q must be %s, got %s", mismatch+1, call.Name, o.Params[mismatch], args[mismatch])
	}
	return types.Void, lastErr
}

func arityError(call *types.FunctionCall, want int) error {
	return semantic(types.ErrArgumentCount, call.Col,
		"function %q expects %d argument(s), got %d", call.Name, want, len(call.Args))
}

// expectArgs checks a special form's argument count and the types of the
// positions listed in want.
func (v *Validator) expectArgs(call *types.FunctionCall, want ...types.Type) ([]types.Type, error) {
	if len(call.Args) != len(want) {
		return nil, arityError(call, len(want))
	}
	got := make([]types.Type, len(want))
	for i, a := range call.Args {
		t, err := v.TypeOf(a)
		if err != nil {
			return nil, err
		}
		if want[i] != types.Void && !t.Equal(want[i]) {
			return nil, semantic(types.ErrArgumentType, a.Column(),
				"argument %d of %q must be %s, got %s", i+1, call.Name, want[i], t)
		}
		got[i] = t
	}
	return got, nil
}

// anyType marks an argument position that accepts any type.
var anyType = types.Void

func checkIf(v *Validator, call *types.FunctionCall) (types.Type, error) {
	got, err := v.expectArgs(call, types.Bool, anyType, anyType)
	if err != nil {
		return types.Void, err
	}
	then, els := got[1], got[2]
	if !then.Equal(els) {
		return types.Void, semantic(types.ErrTypeMismatch, call.Args[2].Column(),
			"branches of %q have different types: %s and %s", call.Name, then, els)
	}
	return then.Resolve(els), nil
}

func checkType(v *Validator, call *types.FunctionCall) (types.Type, error) {
	if _, err := v.expectArgs(call, anyType); err != nil {
		return types.Void, err
	}
	return types.TypeT, nil
}

func (v *Validator) expectLvalue(call *types.FunctionCall) (types.Type, error) {
	got, err := v.expectArgs(call, anyType)
	if err != nil {
		return types.Void, err
	}
	if !v.IsLvalue(call.Args[0]) {
		return types.Void, semantic(types.ErrNoLvalue, call.Args[0].Column(),
			"%s expects an lvalue, got %s", call.Name, call.Args[0])
	}
	return got[0], nil
}

func checkLtype(v *Validator, call *types.FunctionCall) (types.Type, error) {
	if _, err := v.expectLvalue(call); err != nil {
		return types.Void, err
	}
	return types.TypeT, nil
}

func checkFormula(v *Validator, call *types.FunctionCall) (types.Type, error) {
	return v.expectLvalue(call)
}

func checkNullary(result types.Type) specialRule {
	return func(v *Validator, call *types.FunctionCall) (types.Type, error) {
		if _, err := v.expectArgs(call); err != nil {
			return types.Void, err
		}
		return result, nil
	}
}

func checkArray(v *Validator, call *types.FunctionCall) (types.Type, error) {
	got, err := v.expectArgs(call, types.Num, anyType)
	if err != nil {
		return types.Void, err
	}
	elem := got[1]
	if elem.IsArray() {
		return types.Void, semantic(types.ErrNestedArray, call.Args[1].Column(),
			"nested arrays are not allowed: %s", call.Args[1])
	}
	if !elem.IsPrimitive() {
		return types.Void, semantic(types.ErrArgumentType, call.Args[1].Column(),
			"argument 2 of %q must be num or bool, got %s", call.Name, elem)
	}
	return types.ArrayOf(elem), nil
}

func checkHistogram(v *Validator, call *types.FunctionCall) (types.Type, error) {
	if _, err := v.expectArgs(call, types.Num, types.Num, types.Num, types.Num, types.Num); err != nil {
		return types.Void, err
	}
	return types.NumArr, nil
}
