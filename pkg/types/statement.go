// Package types defines the core data model of the Stokhos engine.
//
// This package contains type definitions for:
//   - Type: static types (num, bool, arrays)
//   - Value: runtime values
//   - Expr and Stmt: Abstract Syntax Tree nodes
//   - Statement: a parsed source line
//   - Error types: structured errors with codes and columns
package types

import "fmt"

// Stmt is a statement node. The set of implementations is closed.
type Stmt interface {
	Column() int
	String() string
	stmtNode()
}

type (
	// Definition declares a new variable: `num x := rhs;`.
	Definition struct {
		DeclaredType Type
		Name         string
		RHS          Expr
		Col          int
	}

	// Assignment replaces a variable's stored form: `x := rhs;`.
	Assignment struct {
		Name string
		RHS  Expr
		Col  int
	}

	// ArrayElementAssignment replaces one cell: `a[i] := rhs;`.
	ArrayElementAssignment struct {
		Base  *Identifier
		Index Expr
		RHS   Expr
		Col   int
	}

	// ExprStmt is a bare expression evaluated for its value.
	ExprStmt struct {
		Expr Expr
	}
)

func (*Definition) stmtNode()             {}
func (*Assignment) stmtNode()             {}
func (*ArrayElementAssignment) stmtNode() {}
func (*ExprStmt) stmtNode()               {}

func (s *Definition) Column() int             { return s.Col }
func (s *Assignment) Column() int             { return s.Col }
func (s *ArrayElementAssignment) Column() int { return s.Col }
func (s *ExprStmt) Column() int               { return s.Expr.Column() }

func (s *Definition) String() string {
	return fmt.Sprintf("%s %s := %s;", s.DeclaredType, s.Name, s.RHS)
}

func (s *Assignment) String() string {
	return fmt.Sprintf("%s := %s;", s.Name, s.RHS)
}

func (s *ArrayElementAssignment) String() string {
	return fmt.Sprintf("%s[%s] := %s;", s.Base.Name, s.Index, s.RHS)
}

func (s *ExprStmt) String() string { return s.Expr.String() }

// DumpStmt renders a statement in the AST debug notation.
func DumpStmt(s Stmt) string {
	switch n := s.(type) {
	case *Definition:
		return fmt.Sprintf("Def(%s, Id(%s), %s)", n.DeclaredType, n.Name, Dump(n.RHS))
	case *Assignment:
		return fmt.Sprintf("Assign(Id(%s), %s)", n.Name, Dump(n.RHS))
	case *ArrayElementAssignment:
		return fmt.Sprintf("AssignElem(Id(%s), %s, %s)", n.Base.Name, Dump(n.Index), Dump(n.RHS))
	case *ExprStmt:
		return Dump(n.Expr)
	}
	return fmt.Sprintf("%T", s)
}

// Statement is a parsed source line.
//
// A Statement is immutable once parsed and may be evaluated any number of
// times, which lets the engine cache statements by source text.
type Statement struct {
	stmt   Stmt
	source string
}

// NewStatement creates a new Statement from an AST.
func NewStatement(stmt Stmt, source string) *Statement {
	return &Statement{
		stmt:   stmt,
		source: source,
	}
}

// AST returns the statement's syntax tree.
func (s *Statement) AST() Stmt {
	return s.stmt
}

// Source returns the original source text.
func (s *Statement) Source() string {
	return s.source
}

// IsBinding reports whether the statement mutates the symbol table.
func (s *Statement) IsBinding() bool {
	_, ok := s.stmt.(*ExprStmt)
	return !ok
}

// String returns the source text.
func (s *Statement) String() string {
	return s.source
}
