// Package functions describes the functions callable from Stokhos statements.
//
// Both the builtin catalog and user extensions are described with [Def].
// An eager function has one or more typed overloads, tried in declaration
// order during validation. A special form receives its arguments
// unevaluated and is implemented inside the evaluator; its Def only
// carries the name and a usage string.
//
// # Example
//
//	twice := functions.Def{
//	    Name: "twice",
//	    Overloads: []functions.Overload{{
//	        Params: []types.Type{types.Num},
//	        Return: types.Num,
//	        Fn: func(_ functions.Env, args ...types.Value) (types.Value, error) {
//	            return args[0].(types.Number) * 2, nil
//	        },
//	    }},
//	}
//	e := engine.New(engine.WithFunctions(twice))
//	e.Process("twice(21)") // "OK: twice(21) ==> 42"
package functions

import (
	"math/rand/v2"
	"strings"

	"github.com/sandrolain/gostokhos/pkg/types"
)

// Env is the part of the engine visible to function implementations.
type Env interface {
	// Rand is the engine's seeded random source.
	Rand() *rand.Rand
	// Cycle is the current computation cycle.
	Cycle() uint64
}

// CustomFunc is the signature of an eager function implementation.
// args contains the evaluated arguments; their types match the overload's Params.
type CustomFunc func(env Env, args ...types.Value) (types.Value, error)

// Overload is one typed signature of an eager function.
type Overload struct {
	Params []types.Type
	Return types.Type
	Fn     CustomFunc
}

// Def describes a named function.
type Def struct {
	// Name is the function name as it appears in statements.
	Name string
	// Overloads are tried in order. Empty for special forms.
	Overloads []Overload
	// Special marks forms that the evaluator implements against
	// unevaluated arguments.
	Special bool
	// Usage documents a special form's signature.
	Usage string
	// Doc is a one-line description.
	Doc string
}

// Signature renders the overloads of d, e.g. "length([num]) -> num".
func (d Def) Signature() string {
	if d.Special || len(d.Overloads) == 0 {
		return d.Usage
	}
	sigs := make([]string, len(d.Overloads))
	for i, o := range d.Overloads {
		params := make([]string, len(o.Params))
		for j, p := range o.Params {
			params[j] = p.String()
		}
		sigs[i] = d.Name + "(" + strings.Join(params, ", ") + ") -> " + o.Return.String()
	}
	return strings.Join(sigs, "; ")
}

// Unary is a helper building a single-overload num -> num function.
func Unary(name, doc string, fn func(float64) (float64, error)) Def {
	return Def{
		Name: name,
		Doc:  doc,
		Overloads: []Overload{{
			Params: []types.Type{types.Num},
			Return: types.Num,
			Fn: func(_ Env, args ...types.Value) (types.Value, error) {
				r, err := fn(float64(args[0].(types.Number)))
				if err != nil {
					return nil, err
				}
				return types.Number(r), nil
			},
		}},
	}
}

// Numbers converts a validated [num] argument into a float slice.
func Numbers(v types.Value) []float64 {
	arr := v.(types.Array)
	out := make([]float64, len(arr))
	for i, x := range arr {
		out[i] = float64(x.(types.Number))
	}
	return out
}
