package types

import (
	"math"
	"strconv"
	"strings"
)

// Value is a runtime Stokhos value.
type Value interface {
	String() string
	isValue()
}

// Number is a numeric value.
type Number float64

// Boolean is a boolean value.
type Boolean bool

// Array is a homogeneous, non-nested array value.
type Array []Value

// TypeValue is the result of type() and ltype().
type TypeValue struct {
	T Type
}

// Formula is a stored, unevaluated expression returned by formula().
// Consumers that need a concrete value evaluate Expr.
type Formula struct {
	Expr Expr
}

func (Number) isValue()    {}
func (Boolean) isValue()   {}
func (Array) isValue()     {}
func (TypeValue) isValue() {}
func (Formula) isValue()   {}

func (n Number) String() string { return FormatNumber(float64(n)) }

func (b Boolean) String() string {
	if b {
		return "true"
	}
	return "false"
}

func (a Array) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range a {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(v.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

func (t TypeValue) String() string { return t.T.String() }

func (f Formula) String() string { return "'" + f.Expr.String() + "'" }

// FormatNumber renders a number in its shortest round-trip form.
// Plain decimal notation is used for magnitudes in [1e-6, 1e21).
func FormatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Equal reports whether two values are structurally equal.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case Number:
		y, ok := b.(Number)
		return ok && x == y
	case Boolean:
		y, ok := b.(Boolean)
		return ok && x == y
	case Array:
		y, ok := b.(Array)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case TypeValue:
		y, ok := b.(TypeValue)
		return ok && x.T == y.T
	}
	return false
}
