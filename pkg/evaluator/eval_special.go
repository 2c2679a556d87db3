package evaluator

import (
	"context"
	"math"

	"github.com/sandrolain/gostokhos/pkg/symtable"
	"github.com/sandrolain/gostokhos/pkg/types"
)

// evalSpecial evaluates the special forms. Each receives the call's
// unevaluated arguments, already checked by the validator.
func (e *Evaluator) evalSpecial(ctx context.Context, call *types.FunctionCall) (types.Value, error) {
	switch call.Name {
	case "if":
		return e.fnIf(ctx, call)
	case "type":
		return e.fnType(call)
	case "ltype":
		return e.fnLtype(call)
	case "tick":
		return types.Number(e.table.AdvanceCycle()), nil
	case "formula":
		return e.fnFormula(ctx, call)
	case "array":
		return e.fnArray(ctx, call)
	case "histogram":
		return e.fnHistogram(ctx, call)
	case "reset":
		e.table.Clear()
		return types.Boolean(true), nil
	}
	return nil, runtimeFault(types.ErrUndefinedFunction, call.Col, "special form %q has no implementation", call.Name)
}

// fnIf evaluates the condition, then only the branch it selects.
func (e *Evaluator) fnIf(ctx context.Context, call *types.FunctionCall) (types.Value, error) {
	cond, err := e.value(ctx, call.Args[0])
	if err != nil {
		return nil, err
	}
	b, err := toBoolean(cond, call.Args[0])
	if err != nil {
		return nil, err
	}
	if b {
		return e.evalNode(ctx, call.Args[1])
	}
	return e.evalNode(ctx, call.Args[2])
}

// fnType returns the static type of its argument without evaluating it.
func (e *Evaluator) fnType(call *types.FunctionCall) (types.Value, error) {
	t, err := e.validator.TypeOf(call.Args[0])
	if err != nil {
		return nil, err
	}
	if t.Unresolved() {
		return nil, types.NewError(types.KindRuntime, types.ErrInferenceFailed, types.ErrInferenceDeferred.Error()).
			WithColumn(call.Args[0].Column()).
			WithCause(types.ErrInferenceDeferred)
	}
	return types.TypeValue{T: t}, nil
}

// fnLtype returns the declared type of an lvalue.
func (e *Evaluator) fnLtype(call *types.FunctionCall) (types.Value, error) {
	t, err := e.validator.TypeOf(call.Args[0])
	if err != nil {
		return nil, err
	}
	return types.TypeValue{T: t}, nil
}

// fnFormula returns the stored form of an lvalue: a formula is returned
// unevaluated, a plain value as is.
func (e *Evaluator) fnFormula(ctx context.Context, call *types.FunctionCall) (types.Value, error) {
	switch arg := call.Args[0].(type) {
	case *types.Identifier:
		v, err := e.lvalue(arg)
		if err != nil {
			return nil, err
		}
		return v.Form().AsValue(), nil

	case *types.ArrayAccess:
		id := arg.Base.(*types.Identifier)
		v, err := e.lvalue(id)
		if err != nil {
			return nil, err
		}
		idx, err := e.index(ctx, arg, arg.Index)
		if err != nil {
			return nil, err
		}

		if v.IsCellular() {
			cells := v.Cells()
			if idx >= len(cells) {
				return nil, outOfRange(arg, idx)
			}
			return cells[idx].Form().AsValue(), nil
		}

		form := v.Form()
		if !form.IsFormula() {
			arr, ok := form.Value.(types.Array)
			if !ok {
				return nil, runtimeFault(types.ErrNotAnArray, arg.Col, "not an array: %s", id)
			}
			if idx >= len(arr) {
				return nil, outOfRange(arg, idx)
			}
			return arr[idx], nil
		}
		// element of a whole-array formula
		return types.Formula{Expr: &types.ArrayAccess{
			Base:  form.Expr,
			Index: &types.NumberLit{Value: float64(idx), Literal: types.FormatNumber(float64(idx)), Col: arg.Index.Column()},
			Col:   arg.Col,
		}}, nil
	}
	return nil, runtimeFault(types.ErrNoLvalue, call.Col, "formula expects an lvalue, got %s", call.Args[0])
}

func (e *Evaluator) lvalue(id *types.Identifier) (*symtable.Variable, error) {
	v := e.table.Variable(id.Name)
	if v == nil {
		return nil, runtimeFault(types.ErrUndefinedSymbol, id.Col, "undefined symbol %q", id.Name)
	}
	return v, nil
}

// fnArray builds an array of n copies of one evaluation of e.
func (e *Evaluator) fnArray(ctx context.Context, call *types.FunctionCall) (types.Value, error) {
	size, err := e.count(ctx, call.Args[0], "array size", maxElements)
	if err != nil {
		return nil, err
	}
	elem, err := e.value(ctx, call.Args[1])
	if err != nil {
		return nil, err
	}
	arr := make(types.Array, size)
	for i := range arr {
		arr[i] = elem
	}
	return arr, nil
}

// fnHistogram samples x nSamples times, each in a fresh cycle, and counts
// the samples per bucket. Index 0 counts samples below lower and index
// nBuckets+1 samples at or above upper. Samples that fault are dropped.
func (e *Evaluator) fnHistogram(ctx context.Context, call *types.FunctionCall) (types.Value, error) {
	x := call.Args[0]
	samples, err := e.count(ctx, call.Args[1], "sample count", 1<<53)
	if err != nil {
		return nil, err
	}
	buckets, err := e.count(ctx, call.Args[2], "bucket count", maxElements)
	if err != nil {
		return nil, err
	}
	lower, err := e.number(ctx, call.Args[3])
	if err != nil {
		return nil, err
	}
	upper, err := e.number(ctx, call.Args[4])
	if err != nil {
		return nil, err
	}

	if upper < lower {
		return nil, runtimeFault(types.ErrBadArgument, call.Col,
			"histogram upper bound %s is below lower bound %s", types.FormatNumber(upper), types.FormatNumber(lower))
	}
	if buckets == 0 && upper > lower {
		return nil, runtimeFault(types.ErrBadArgument, call.Col, "histogram needs at least one bucket")
	}

	counts := make([]int, buckets+2)
	delta := (upper - lower) / float64(buckets)
	for i := 0; i < samples; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		e.table.AdvanceCycle()
		v, err := e.value(ctx, x)
		if err != nil {
			if types.IsKind(err, types.KindRuntime) {
				continue
			}
			return nil, err
		}
		s, ok := v.(types.Number)
		if !ok {
			continue
		}
		counts[bucket(float64(s), lower, upper, delta, buckets)]++
	}

	if e.opts.Debug {
		e.logger.Debug("histogram sampled", "samples", samples, "buckets", buckets, "cycle", e.table.Cycle())
	}

	out := make(types.Array, len(counts))
	for i, c := range counts {
		out[i] = types.Number(c)
	}
	return out, nil
}

func bucket(s, lower, upper, delta float64, buckets int) int {
	switch {
	case s < lower:
		return 0
	case s >= upper:
		return buckets + 1
	}
	idx := int(math.Floor((s-lower)/delta)) + 1
	if idx > buckets {
		idx = buckets
	}
	return idx
}

// number evaluates a num argument.
func (e *Evaluator) number(ctx context.Context, arg types.Expr) (float64, error) {
	v, err := e.value(ctx, arg)
	if err != nil {
		return 0, err
	}
	n, err := toNumber(v, arg)
	if err != nil {
		return 0, err
	}
	return float64(n), nil
}

// maxElements bounds the arrays array() and histogram() allocate.
const maxElements = 1 << 24

// count evaluates a num argument that must be a non-negative integer no
// larger than limit. what names the argument in faults.
func (e *Evaluator) count(ctx context.Context, arg types.Expr, what string, limit float64) (int, error) {
	f, err := e.number(ctx, arg)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || f < 0 || f != math.Trunc(f) {
		return 0, runtimeFault(types.ErrBadArgument, arg.Column(), "invalid %s %s", what, types.FormatNumber(f))
	}
	if f > limit {
		return 0, runtimeFault(types.ErrBadArgument, arg.Column(), "%s %s exceeds the limit of %s",
			what, types.FormatNumber(f), types.FormatNumber(limit))
	}
	return int(f), nil
}
