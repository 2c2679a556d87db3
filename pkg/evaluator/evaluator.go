package evaluator

// Package evaluator implements the Stokhos tree-walking evaluator.
//
// The evaluator receives validated statements and either evaluates them to
// a value or executes them against the symbol table. It supports:
//   - Deferred formulas memoized per binding and per array cell
//   - Cycle-scoped resampling driven by tick() and histogram()
//   - Special forms that receive their arguments unevaluated
//   - Deterministic random draws from a seeded source
//
// # Example
//
//	tbl := symtable.New(evaluator.Builtins()...)
//	ev := evaluator.New(tbl, evaluator.WithSeed(42))
//	v, err := ev.Eval(context.Background(), expr)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # State
//
// An Evaluator shares its symbol table with the validator and is not safe
// for concurrent use.

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/sandrolain/gostokhos/pkg/symtable"
	"github.com/sandrolain/gostokhos/pkg/types"
	"github.com/sandrolain/gostokhos/pkg/validator"
)

// Evaluator evaluates Stokhos expressions and executes statements.
type Evaluator struct {
	opts      EvalOptions
	logger    *slog.Logger
	table     *symtable.Table
	validator *validator.Validator
	rng       *rand.Rand
	depth     int
}

// EvalOptions configures evaluator behavior.
type EvalOptions struct {
	// Seed seeds the random source used by uniform() and extensions.
	// Only used when Seeded is true; otherwise a random seed is drawn.
	Seed   uint64
	Seeded bool
	// MaxDepth limits evaluation recursion depth.
	MaxDepth int
	// Debug enables debug logging.
	Debug bool
	// Logger for structured logging.
	Logger *slog.Logger
	// Clock returns the current time for now(). Defaults to time.Now.
	Clock func() time.Time
}

// defaultMaxDepth is the default value of EvalOptions.MaxDepth. It is
// lowered on WebAssembly targets by init() in evaluator_wasm.go.
var defaultMaxDepth = 10000

// New creates a new Evaluator operating on table.
func New(table *symtable.Table, opts ...EvalOption) *Evaluator {
	options := EvalOptions{
		MaxDepth: defaultMaxDepth,
		Clock:    time.Now,
	}

	for _, opt := range opts {
		opt(&options)
	}

	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if !options.Seeded {
		options.Seed = rand.Uint64()
	}

	return &Evaluator{
		opts:      options,
		logger:    options.Logger,
		table:     table,
		validator: validator.New(table),
		rng:       rand.New(rand.NewPCG(options.Seed, options.Seed^0x9e3779b97f4a7c15)),
	}
}

// Rand returns the evaluator's random source.
func (e *Evaluator) Rand() *rand.Rand {
	return e.rng
}

// Cycle returns the current computation cycle.
func (e *Evaluator) Cycle() uint64 {
	return e.table.Cycle()
}

// Now returns the current time as seen by now().
func (e *Evaluator) Now() time.Time {
	return e.opts.Clock()
}

// Table returns the symbol table the evaluator operates on.
func (e *Evaluator) Table() *symtable.Table {
	return e.table
}

// Eval evaluates a validated expression.
//
// The result may be a types.Formula when the expression is a formula()
// call; every other result is a concrete value.
func (e *Evaluator) Eval(ctx context.Context, expr types.Expr) (types.Value, error) {
	if expr == nil {
		return nil, fmt.Errorf("invalid expression")
	}
	e.depth = 0
	return e.evalNode(ctx, expr)
}

// EvalValue evaluates a validated expression and forces any formula result.
func (e *Evaluator) EvalValue(ctx context.Context, expr types.Expr) (types.Value, error) {
	if expr == nil {
		return nil, fmt.Errorf("invalid expression")
	}
	e.depth = 0
	return e.value(ctx, expr)
}

// EvalOption configures evaluation behavior.
type EvalOption func(*EvalOptions)

// WithSeed makes random draws reproducible.
func WithSeed(seed uint64) EvalOption {
	return func(opts *EvalOptions) {
		opts.Seed = seed
		opts.Seeded = true
	}
}

// WithDebug enables or disables debug logging.
func WithDebug(enabled bool) EvalOption {
	return func(opts *EvalOptions) {
		opts.Debug = enabled
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) EvalOption {
	return func(opts *EvalOptions) {
		opts.Logger = logger
	}
}

// WithMaxDepth sets the maximum recursion depth.
func WithMaxDepth(depth int) EvalOption {
	return func(opts *EvalOptions) {
		opts.MaxDepth = depth
	}
}

// WithClock overrides the time source used by now().
func WithClock(clock func() time.Time) EvalOption {
	return func(opts *EvalOptions) {
		opts.Clock = clock
	}
}
