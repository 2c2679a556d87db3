// Package gostokhos is a Go implementation of Stokhos, a small statically
// typed expression language for stochastic computation.
//
// Stokhos lines are either expressions, evaluated purely, or bindings that
// define and update variables. A variable can hold a value or a quoted
// formula ('expr') that is re-sampled once per computation cycle:
//   - Values: num, bool, [num], [bool] and the type of a value
//   - Formulas: memoized for the current cycle, advanced by tick()
//   - Sampling: histogram(x, samples, buckets, lo, hi) re-draws x per sample
//   - Reproducibility: a seeded engine produces the same draws every run
//
// # Quick Start
//
//	e := gostokhos.New(gostokhos.WithSeed(42))
//	e.Process("num die := 'floor(uniform() * 6) + 1';") // "ACK: num die := 'floor(uniform() * 6) + 1'"
//	e.Process("die = die")                              // "OK: die = die ==> true"
//	e.Process("histogram(die, 600, 6, 1, 7)")           // "OK: ... ==> [0, ..., 0]"
//
//	// Inspect the front end
//	tokens, err := gostokhos.Lex("x + 1")
//	stmt, err := gostokhos.Parse("num x := 5;")
//
// # More Information
//
// For detailed documentation, see:
//   - Engine: github.com/sandrolain/gostokhos/pkg/engine
//   - Parser: github.com/sandrolain/gostokhos/pkg/parser
//   - Evaluator: github.com/sandrolain/gostokhos/pkg/evaluator
//   - Extensions: github.com/sandrolain/gostokhos/pkg/ext
//   - Types: github.com/sandrolain/gostokhos/pkg/types
package gostokhos

import (
	"context"
	"fmt"

	"github.com/sandrolain/gostokhos/pkg/engine"
	"github.com/sandrolain/gostokhos/pkg/parser"
	"github.com/sandrolain/gostokhos/pkg/types"
)

// Version returns the current version of GoStokhos.
func Version() string {
	return "v0.1.0-dev"
}

// Option configures an engine created with New.
type Option = engine.Option

// Re-exported engine options.
var (
	WithSeed      = engine.WithSeed
	WithCaching   = engine.WithCaching
	WithCacheSize = engine.WithCacheSize
	WithMaxDepth  = engine.WithMaxDepth
	WithDebug     = engine.WithDebug
	WithLogger    = engine.WithLogger
	WithFunctions = engine.WithFunctions
)

// New creates an engine with its own symbol table.
//
// Example:
//
//	e := gostokhos.New(gostokhos.WithSeed(1), gostokhos.WithCaching(true))
//	fmt.Println(e.Process("1 + 2")) // OK: 1 + 2 ==> 3
func New(opts ...Option) *engine.Engine {
	return engine.New(opts...)
}

// Lex tokenizes one line of source.
func Lex(source string) ([]parser.Token, error) {
	return parser.Tokenize(source)
}

// Parse parses one statement.
func Parse(source string, opts ...parser.CompileOption) (*types.Statement, error) {
	return parser.Compile(source, opts...)
}

// MustParse is like Parse but panics if the statement cannot be parsed.
// It simplifies safe initialization of global variables.
func MustParse(source string) *types.Statement {
	stmt, err := Parse(source)
	if err != nil {
		panic(fmt.Sprintf("gostokhos: Parse(%q): %v", source, err))
	}
	return stmt
}

// Process runs lines in a fresh engine and returns one outcome line per
// non-blank input.
func Process(lines []string, opts ...Option) []string {
	return engine.New(opts...).ProcessAll(context.Background(), lines)
}
