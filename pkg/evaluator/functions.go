package evaluator

import (
	"sync"

	"github.com/sandrolain/gostokhos/pkg/functions"
	"github.com/sandrolain/gostokhos/pkg/types"
)

var (
	builtinFunctions     []functions.Def
	builtinFunctionsOnce sync.Once
)

// initBuiltinFunctions initializes the built-in function catalog.
func initBuiltinFunctions() {
	builtinFunctionsOnce.Do(func() {
		builtinFunctions = []functions.Def{
			// Numeric functions
			{Name: "uniform", Doc: "uniform random number in [0, 1)", Overloads: nullary(fnUniform)},
			{Name: "floor", Doc: "largest integer not above x", Overloads: unary(fnFloor)},
			{Name: "pi", Doc: "the constant pi", Overloads: nullary(fnPi)},
			{Name: "now", Doc: "current Unix time in seconds", Overloads: nullary(fnNow)},
			{Name: "ln", Doc: "natural logarithm", Overloads: unary(fnLn)},
			{Name: "exp", Doc: "e raised to x", Overloads: unary(fnExp)},
			{Name: "sin", Doc: "sine of x radians", Overloads: unary(fnSin)},
			{Name: "cos", Doc: "cosine of x radians", Overloads: unary(fnCos)},

			// Aggregation functions
			{Name: "length", Doc: "number of elements", Overloads: []functions.Overload{
				{Params: []types.Type{types.NumArr}, Return: types.Num, Fn: fnLength},
				{Params: []types.Type{types.BoolArr}, Return: types.Num, Fn: fnLength},
			}},
			{Name: "sum", Doc: "sum of the elements", Overloads: aggregate(fnSum)},
			{Name: "avg", Doc: "arithmetic mean of the elements", Overloads: aggregate(fnAvg)},

			// Special forms
			{Name: "if", Special: true, Usage: "if(bool, T, T) -> T", Doc: "evaluates only the selected branch"},
			{Name: "type", Special: true, Usage: "type(expr) -> type", Doc: "static type of an expression"},
			{Name: "ltype", Special: true, Usage: "ltype(lvalue) -> type", Doc: "declared type of a variable or element"},
			{Name: "tick", Special: true, Usage: "tick() -> num", Doc: "starts a new cycle and returns its number"},
			{Name: "formula", Special: true, Usage: "formula(lvalue) -> T", Doc: "stored form of a variable or element"},
			{Name: "array", Special: true, Usage: "array(num, T) -> [T]", Doc: "array of n copies of a value"},
			{Name: "histogram", Special: true, Usage: "histogram(num, num, num, num, num) -> [num]",
				Doc: "samples x n times and counts samples per bucket"},
			{Name: "reset", Special: true, Usage: "reset() -> bool", Doc: "removes every variable"},
		}
	})
}

// Builtins returns the builtin function catalog.
func Builtins() []functions.Def {
	initBuiltinFunctions()
	return append([]functions.Def(nil), builtinFunctions...)
}

// GetFunction returns a builtin function by name.
func GetFunction(name string) (functions.Def, bool) {
	initBuiltinFunctions()
	for _, def := range builtinFunctions {
		if def.Name == name {
			return def, true
		}
	}
	return functions.Def{}, false
}

func nullary(fn functions.CustomFunc) []functions.Overload {
	return []functions.Overload{{Return: types.Num, Fn: fn}}
}

func unary(fn functions.CustomFunc) []functions.Overload {
	return []functions.Overload{{Params: []types.Type{types.Num}, Return: types.Num, Fn: fn}}
}

func aggregate(fn functions.CustomFunc) []functions.Overload {
	return []functions.Overload{{Params: []types.Type{types.NumArr}, Return: types.Num, Fn: fn}}
}
