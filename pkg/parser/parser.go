package parser

// Package parser implements the Stokhos front end.
//
// The parser is a hand-written recursive descent parser. It reports
// lexical and syntax errors as *types.Error values carrying 1-based
// source columns.
//
// # Architecture
//
// The parser consists of two components:
//   - Lexer: Tokenizes a statement, flagging illegal characters and identifiers
//   - Parser: Builds an Abstract Syntax Tree (AST) from tokens
//
// # Example
//
//	stmt, err := parser.Parse("num x := 'uniform()';")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	def := stmt.AST().(*types.Definition)

import (
	"github.com/sandrolain/gostokhos/pkg/types"
)

// Parse parses a single Stokhos statement.
//
// A bare expression has no terminating semicolon; definitions and
// assignments must end with one.
//
// Example:
//
//	stmt, err := parser.Parse("x := x + 1;")
//	if err != nil {
//	    var perr *types.Error
//	    if errors.As(err, &perr) {
//	        fmt.Printf("syntax error at column %d\n", perr.Column)
//	    }
//	    return
//	}
func Parse(source string) (*types.Statement, error) {
	p := NewParser(source)
	return p.Parse()
}

// Compile is Parse with options.
func Compile(source string, opts ...CompileOption) (*types.Statement, error) {
	p := NewParser(source, opts...)
	return p.Parse()
}

// CompileOption configures parsing behavior.
type CompileOption func(*CompileOptions)

// CompileOptions holds parser configuration.
type CompileOptions struct {
	// MaxDepth limits expression nesting to prevent stack overflow.
	MaxDepth int
}

// WithMaxDepth sets the maximum expression nesting depth.
func WithMaxDepth(depth int) CompileOption {
	return func(opts *CompileOptions) {
		opts.MaxDepth = depth
	}
}
