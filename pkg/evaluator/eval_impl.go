package evaluator

import (
	"context"
	"fmt"
	"math"

	"github.com/sandrolain/gostokhos/pkg/symtable"
	"github.com/sandrolain/gostokhos/pkg/types"
)

// evalNode evaluates an AST node. The result is raw: a formula() call
// yields a types.Formula that has not been forced.
func (e *Evaluator) evalNode(ctx context.Context, node types.Expr) (types.Value, error) {
	// Check context cancellation
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	// Check recursion depth
	e.depth++
	defer func() { e.depth-- }()
	if e.depth > e.opts.MaxDepth {
		return nil, runtimeFault(types.ErrStackOverflow, node.Column(), "maximum recursion depth exceeded")
	}

	// Debug logging
	if e.opts.Debug {
		e.logger.Debug("evaluating node",
			"kind", fmt.Sprintf("%T", node),
			"column", node.Column(),
			"expr", node.String(),
			"depth", e.depth)
	}

	// Dispatch based on node type
	switch n := node.(type) {
	case *types.NumberLit:
		return types.Number(n.Value), nil

	case *types.BooleanLit:
		return types.Boolean(n.Value), nil

	case *types.Identifier:
		return e.evalIdentifier(ctx, n)

	case *types.Quoted:
		return e.evalNode(ctx, n.Inner)

	case *types.ArrayLiteral:
		arr := make(types.Array, len(n.Elements))
		for i, el := range n.Elements {
			v, err := e.value(ctx, el)
			if err != nil {
				return nil, err
			}
			arr[i] = v
		}
		return arr, nil

	case *types.ArrayAccess:
		return e.evalAccess(ctx, n)

	case *types.UnaryOp:
		return e.evalUnary(ctx, n)

	case *types.BinaryOp:
		return e.evalBinary(ctx, n)

	case *types.Comparison:
		return e.evalComparison(ctx, n)

	case *types.FunctionCall:
		return e.evalCall(ctx, n)
	}

	return nil, fmt.Errorf("evaluator: unknown expression %T", node)
}

// value evaluates node and forces the result into a concrete value.
func (e *Evaluator) value(ctx context.Context, node types.Expr) (types.Value, error) {
	v, err := e.evalNode(ctx, node)
	if err != nil {
		return nil, err
	}
	return e.force(ctx, v)
}

// force evaluates a formula value. Arrays are forced element-wise so that
// formula cells returned by formula(a) become concrete.
func (e *Evaluator) force(ctx context.Context, v types.Value) (types.Value, error) {
	switch x := v.(type) {
	case types.Formula:
		return e.value(ctx, x.Expr)
	case types.Array:
		var out types.Array
		for i, el := range x {
			f, ok := el.(types.Formula)
			if !ok {
				if out != nil {
					out[i] = el
				}
				continue
			}
			if out == nil {
				out = make(types.Array, len(x))
				copy(out, x[:i])
			}
			forced, err := e.value(ctx, f.Expr)
			if err != nil {
				return nil, err
			}
			out[i] = forced
		}
		if out != nil {
			return out, nil
		}
	}
	return v, nil
}

func (e *Evaluator) evalIdentifier(ctx context.Context, n *types.Identifier) (types.Value, error) {
	v := e.table.Variable(n.Name)
	if v == nil {
		if e.table.IsFunction(n.Name) {
			return nil, runtimeFault(types.ErrFunctionAsValue, n.Col, "%q is a function", n.Name)
		}
		return nil, runtimeFault(types.ErrUndefinedSymbol, n.Col, "undefined symbol %q", n.Name)
	}
	return e.resolveVariable(ctx, n.Name, v)
}

// resolveVariable returns the current value of a variable.
func (e *Evaluator) resolveVariable(ctx context.Context, name string, v *symtable.Variable) (types.Value, error) {
	if v.IsCellular() {
		cells := v.Cells()
		arr := make(types.Array, len(cells))
		for i, c := range cells {
			cv, err := e.resolveCell(ctx, name, c)
			if err != nil {
				return nil, err
			}
			arr[i] = cv
		}
		return arr, nil
	}

	form := v.Form()
	if !form.IsFormula() {
		return form.Value, nil
	}
	return e.memoized(ctx, name, v, &v.Memo, form.Expr)
}

// resolveCell returns the current value of one array cell.
func (e *Evaluator) resolveCell(ctx context.Context, name string, c *symtable.Cell) (types.Value, error) {
	form := c.Form()
	if !form.IsFormula() {
		return form.Value, nil
	}
	return e.memoized(ctx, name, c, &c.Memo, form.Expr)
}

// reentrant is implemented by variables and cells.
type reentrant interface {
	Enter() bool
	Leave()
}

// memoized evaluates a stored formula at most once per cycle. The cycle is
// read before evaluation starts, so a formula that advances the cycle is
// cached under the cycle it was requested in. Failures are not cached.
func (e *Evaluator) memoized(ctx context.Context, name string, g reentrant, memo *symtable.Memo, expr types.Expr) (types.Value, error) {
	cycle := e.table.Cycle()
	if v, ok := memo.Get(cycle); ok {
		return v, nil
	}

	if !g.Enter() {
		return nil, runtimeFault(types.ErrCircularReference, expr.Column(), "circular reference to %q", name)
	}
	defer g.Leave()

	v, err := e.value(ctx, expr)
	if err != nil {
		return nil, err
	}
	memo.Set(cycle, v)
	return v, nil
}

func (e *Evaluator) evalAccess(ctx context.Context, n *types.ArrayAccess) (types.Value, error) {
	idx, err := e.index(ctx, n, n.Index)
	if err != nil {
		return nil, err
	}

	if id, ok := n.Base.(*types.Identifier); ok {
		if v := e.table.Variable(id.Name); v != nil && v.IsCellular() {
			cells := v.Cells()
			if idx >= len(cells) {
				return nil, outOfRange(n, idx)
			}
			return e.resolveCell(ctx, id.Name, cells[idx])
		}
	}

	base, err := e.value(ctx, n.Base)
	if err != nil {
		return nil, err
	}
	arr, ok := base.(types.Array)
	if !ok {
		return nil, runtimeFault(types.ErrNotAnArray, n.Col, "not an array: %s", n.Base)
	}
	if idx >= len(arr) {
		return nil, outOfRange(n, idx)
	}
	return arr[idx], nil
}

// index evaluates an array index and checks that it is a non-negative
// integer. ctxExpr is the expression reported in fault messages.
func (e *Evaluator) index(ctx context.Context, ctxExpr fmt.Stringer, index types.Expr) (int, error) {
	v, err := e.value(ctx, index)
	if err != nil {
		return 0, err
	}
	n, ok := v.(types.Number)
	if !ok {
		return 0, runtimeFault(types.ErrInvalidIndex, index.Column(), "invalid array index %s in %q", v, ctxExpr.String())
	}
	f := float64(n)
	if math.IsNaN(f) || f < 0 || f != math.Trunc(f) {
		return 0, runtimeFault(types.ErrInvalidIndex, index.Column(), "invalid array index %s in %q", n, ctxExpr.String())
	}
	if f >= 1<<53 {
		// beyond any array length
		return 0, indexFault(index.Column(), n, ctxExpr)
	}
	return int(f), nil
}

func outOfRange(n *types.ArrayAccess, idx int) error {
	return indexFault(n.Index.Column(), types.Number(idx), n)
}

func indexFault(col int, idx types.Number, ctxExpr fmt.Stringer) error {
	return runtimeFault(types.ErrIndexOutOfRange, col, "index %s out of range in %q", idx, ctxExpr.String())
}

func runtimeFault(code types.ErrorCode, col int, format string, args ...interface{}) *types.Error {
	return types.Errorf(types.KindRuntime, code, format, args...).WithColumn(col)
}
