package evaluator

import (
	"context"
	"fmt"
	"math"

	"github.com/sandrolain/gostokhos/pkg/types"
)

// evalUnary evaluates unary operators.
func (e *Evaluator) evalUnary(ctx context.Context, n *types.UnaryOp) (types.Value, error) {
	operand, err := e.value(ctx, n.Operand)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case types.OpNot:
		b, err := toBoolean(operand, n)
		if err != nil {
			return nil, err
		}
		return !b, nil
	case types.OpSub:
		num, err := toNumber(operand, n)
		if err != nil {
			return nil, err
		}
		return -num, nil
	case types.OpAdd:
		num, err := toNumber(operand, n)
		if err != nil {
			return nil, err
		}
		return num, nil
	}
	return nil, fmt.Errorf("evaluator: unknown unary operator %q", n.Op)
}

// evalBinary evaluates arithmetic and logical operators. Both operands are
// always evaluated, left first.
func (e *Evaluator) evalBinary(ctx context.Context, n *types.BinaryOp) (types.Value, error) {
	left, err := e.value(ctx, n.LHS)
	if err != nil {
		return nil, err
	}
	right, err := e.value(ctx, n.RHS)
	if err != nil {
		return nil, err
	}

	if n.Op == types.OpAnd || n.Op == types.OpOr {
		l, err := toBoolean(left, n)
		if err != nil {
			return nil, err
		}
		r, err := toBoolean(right, n)
		if err != nil {
			return nil, err
		}
		if n.Op == types.OpAnd {
			return l && r, nil
		}
		return l || r, nil
	}

	l, err := toNumber(left, n)
	if err != nil {
		return nil, err
	}
	r, err := toNumber(right, n)
	if err != nil {
		return nil, err
	}
	return arithmetic(n, float64(l), float64(r))
}

func arithmetic(n *types.BinaryOp, l, r float64) (types.Value, error) {
	var result float64
	switch n.Op {
	case types.OpAdd:
		result = l + r
	case types.OpSub:
		result = l - r
	case types.OpMul:
		result = l * r
	case types.OpDiv:
		if r == 0 {
			return nil, divisionByZero(n)
		}
		result = l / r
	case types.OpMod:
		if r == 0 {
			return nil, divisionByZero(n)
		}
		result = l - r*math.Floor(l/r)
	case types.OpPow:
		result = math.Pow(l, r)
	default:
		return nil, fmt.Errorf("evaluator: unknown operator %q", n.Op)
	}

	if math.IsNaN(result) || math.IsInf(result, 0) {
		return nil, runtimeFault(types.ErrArithmetic, n.Col, "arithmetic error in %q", n.String())
	}
	return types.Number(result), nil
}

func divisionByZero(n *types.BinaryOp) error {
	return runtimeFault(types.ErrDivisionByZero, n.Col, "division by zero in %q", n.String())
}

// evalComparison evaluates relational and equality operators.
func (e *Evaluator) evalComparison(ctx context.Context, n *types.Comparison) (types.Value, error) {
	left, err := e.value(ctx, n.LHS)
	if err != nil {
		return nil, err
	}
	right, err := e.value(ctx, n.RHS)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case types.OpEq:
		return types.Boolean(types.Equal(left, right)), nil
	case types.OpNE:
		return types.Boolean(!types.Equal(left, right)), nil
	}

	l, err := toNumber(left, n)
	if err != nil {
		return nil, err
	}
	r, err := toNumber(right, n)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case types.OpLT:
		return types.Boolean(l < r), nil
	case types.OpLE:
		return types.Boolean(l <= r), nil
	case types.OpGT:
		return types.Boolean(l > r), nil
	case types.OpGE:
		return types.Boolean(l >= r), nil
	}
	return nil, fmt.Errorf("evaluator: unknown comparison %q", n.Op)
}

// toNumber asserts a validated operand. A mismatch can only happen when a
// stored formula outlived the bindings it was checked against.
func toNumber(v types.Value, at types.Expr) (types.Number, error) {
	n, ok := v.(types.Number)
	if !ok {
		return 0, runtimeFault(types.ErrTypeMismatch, at.Column(), "expected num, got %s in %q", v, at.String())
	}
	return n, nil
}

func toBoolean(v types.Value, at types.Expr) (types.Boolean, error) {
	b, ok := v.(types.Boolean)
	if !ok {
		return false, runtimeFault(types.ErrTypeMismatch, at.Column(), "expected bool, got %s in %q", v, at.String())
	}
	return b, nil
}
