// Package engine sequences the Stokhos pipeline for one statement at a time:
// lex, parse, validate, then execute or evaluate.
//
// Each Engine owns its symbol table, so two engines never observe each
// other's variables or cycle counter. An Engine is not safe for concurrent
// use; give every session its own Engine or serialize calls.
//
// # Example
//
//	e := engine.New(engine.WithSeed(42))
//	e.Process("num x := 'uniform()';") // "ACK: num x := 'uniform()'"
//	e.Process("x = x")                 // "OK: x = x ==> true"
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sandrolain/gostokhos/pkg/cache"
	"github.com/sandrolain/gostokhos/pkg/evaluator"
	"github.com/sandrolain/gostokhos/pkg/parser"
	"github.com/sandrolain/gostokhos/pkg/symtable"
	"github.com/sandrolain/gostokhos/pkg/types"
	"github.com/sandrolain/gostokhos/pkg/validator"
)

// Outcome prefixes of processed lines.
const (
	PrefixOK    = "OK"
	PrefixACK   = "ACK"
	PrefixError = "ERROR"
)

// Engine processes Stokhos statements against one symbol table.
type Engine struct {
	opts      Options
	logger    *slog.Logger
	table     *symtable.Table
	validator *validator.Validator
	eval      *evaluator.Evaluator
	cache     *cache.Cache
}

// New creates an engine with the builtin catalog plus any functions given
// through WithFunctions.
func New(opts ...Option) *Engine {
	options := Options{
		CacheSize: 256,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	table := symtable.New(evaluator.Builtins()...)
	for _, def := range options.Functions {
		if !table.Register(def) {
			options.Logger.Warn("function not registered", "name", def.Name)
		}
	}

	evalOpts := []evaluator.EvalOption{
		evaluator.WithDebug(options.Debug),
		evaluator.WithLogger(options.Logger),
	}
	if options.MaxDepth > 0 {
		evalOpts = append(evalOpts, evaluator.WithMaxDepth(options.MaxDepth))
	}
	if options.Seeded {
		evalOpts = append(evalOpts, evaluator.WithSeed(options.Seed))
	}

	e := &Engine{
		opts:      options,
		logger:    options.Logger,
		table:     table,
		validator: validator.New(table),
		eval:      evaluator.New(table, evalOpts...),
	}
	if options.Caching {
		e.cache = cache.New(options.CacheSize)
	}
	return e
}

// Result is the outcome of a successfully processed statement.
type Result struct {
	// Source is the trimmed statement text.
	Source string
	// Value is set for expression statements.
	Value types.Value
	// Effect is set for binding statements.
	Effect *evaluator.Effect
}

// String renders the result as an outcome line.
func (r Result) String() string {
	if r.Effect != nil {
		return PrefixACK + ": " + r.Effect.String()
	}
	return fmt.Sprintf("%s: %s ==> %s", PrefixOK, r.Source, r.Value)
}

// Process runs one statement and renders the outcome line:
// "OK: <text> ==> <value>", "ACK: <effect>" or "ERROR: <message>".
func (e *Engine) Process(text string) string {
	return e.ProcessContext(context.Background(), text)
}

// ProcessContext is Process with a context that cancels long evaluations.
func (e *Engine) ProcessContext(ctx context.Context, text string) string {
	res, err := e.Run(ctx, text)
	if err != nil {
		return errorLine(err)
	}
	return res.String()
}

// ProcessAll processes one statement per line, skipping blank lines.
func (e *Engine) ProcessAll(ctx context.Context, lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, e.ProcessContext(ctx, line))
	}
	return out
}

// Run parses, validates and executes one statement.
func (e *Engine) Run(ctx context.Context, text string) (Result, error) {
	src := strings.TrimSpace(text)

	stmt, err := e.Parse(src)
	if err != nil {
		return Result{}, err
	}
	if _, err := e.validator.Check(stmt.AST()); err != nil {
		e.log("statement rejected", src, err)
		return Result{}, err
	}

	res := Result{Source: src}
	if stmt.IsBinding() {
		effect, err := e.eval.Exec(ctx, stmt.AST())
		if err != nil {
			e.log("statement failed", src, err)
			return Result{}, err
		}
		res.Effect = &effect
	} else {
		v, err := e.eval.Eval(ctx, stmt.AST().(*types.ExprStmt).Expr)
		if err != nil {
			e.log("statement failed", src, err)
			return Result{}, err
		}
		res.Value = v
	}

	if e.opts.Debug {
		e.logger.Debug("statement processed", "source", src, "cycle", e.table.Cycle())
	}
	return res, nil
}

// Parse parses a statement, consulting the statement cache when enabled.
func (e *Engine) Parse(text string) (*types.Statement, error) {
	parse := func() (*types.Statement, error) {
		return parser.Parse(text)
	}
	if e.cache == nil {
		return parse()
	}
	return e.cache.GetOrParse(text, parse)
}

// Lex renders the tokens of text: `OK: lex("<text>") ==> [...]` or an
// error line.
func (e *Engine) Lex(text string) string {
	tokens, err := parser.Tokenize(text)
	if err != nil {
		return errorLine(err)
	}
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.String()
	}
	return fmt.Sprintf("%s: lex(%q) ==> [%s]", PrefixOK, text, strings.Join(parts, ", "))
}

// AST renders the parse tree of text: `OK: ast("<text>") ==> <dump>` or an
// error line.
func (e *Engine) AST(text string) string {
	stmt, err := e.Parse(strings.TrimSpace(text))
	if err != nil {
		return errorLine(err)
	}
	return fmt.Sprintf("%s: ast(%q) ==> %s", PrefixOK, text, types.DumpStmt(stmt.AST()))
}

// Table returns the engine's symbol table.
func (e *Engine) Table() *symtable.Table {
	return e.table
}

// CacheStats returns statement cache counters; ok is false when caching
// is disabled.
func (e *Engine) CacheStats() (stats cache.Stats, ok bool) {
	if e.cache == nil {
		return cache.Stats{}, false
	}
	return e.cache.Stats(), true
}

func (e *Engine) log(msg, src string, err error) {
	if e.opts.Debug {
		e.logger.Debug(msg, "source", src, "error", err)
	}
}

func errorLine(err error) string {
	return PrefixError + ": " + err.Error()
}
