package types

import (
	"fmt"
	"strings"
)

// Op is an operator symbol as written in source.
type Op string

// Operators.
const (
	OpOr  Op = "||"
	OpAnd Op = "&&"
	OpNot Op = "!"

	OpEq Op = "="
	OpNE Op = "<>"
	OpLT Op = "<"
	OpLE Op = "<="
	OpGT Op = ">"
	OpGE Op = ">="

	OpAdd Op = "+"
	OpSub Op = "-"
	OpMul Op = "*"
	OpDiv Op = "/"
	OpMod Op = "%"
	OpPow Op = "^"
)

// Binding levels shared by the parser and the source printer.
// Higher values bind more tightly.
const (
	PrecLowest = iota
	PrecOr
	PrecAnd
	PrecEquality
	PrecRelational
	PrecAdditive
	PrecMultiplicative
	PrecUnary
	PrecPower
	PrecPostfix
	PrecAtom
)

// Precedence returns the binding level of a binary operator.
func (op Op) Precedence() int {
	switch op {
	case OpOr:
		return PrecOr
	case OpAnd:
		return PrecAnd
	case OpEq, OpNE:
		return PrecEquality
	case OpLT, OpLE, OpGT, OpGE:
		return PrecRelational
	case OpAdd, OpSub:
		return PrecAdditive
	case OpMul, OpDiv, OpMod:
		return PrecMultiplicative
	case OpPow:
		return PrecPower
	}
	return PrecLowest
}

// IsComparison reports whether op produces a Comparison node.
func (op Op) IsComparison() bool {
	switch op {
	case OpEq, OpNE, OpLT, OpLE, OpGT, OpGE:
		return true
	}
	return false
}

// Expr is an expression node. The set of implementations is closed.
type Expr interface {
	// Column is the 1-based source column where the expression starts.
	Column() int
	// String renders the expression as normalized source text.
	String() string
	exprNode()
}

type (
	// NumberLit is a numeric literal.
	NumberLit struct {
		Value   float64
		Literal string
		Col     int
	}

	// BooleanLit is true or false.
	BooleanLit struct {
		Value bool
		Col   int
	}

	// Identifier references a variable or function by name.
	Identifier struct {
		Name string
		Col  int
	}

	// UnaryOp is +x, -x or !x.
	UnaryOp struct {
		Op      Op
		Operand Expr
		Col     int
	}

	// BinaryOp is an arithmetic or logical operation.
	BinaryOp struct {
		Op       Op
		LHS, RHS Expr
		Col      int
	}

	// Comparison is an ordering or equality test.
	Comparison struct {
		Op       Op
		LHS, RHS Expr
		Col      int
	}

	// Quoted is a deferred expression written between single quotes.
	Quoted struct {
		Inner Expr
		Col   int
	}

	// ArrayLiteral is [e1, e2, ...].
	ArrayLiteral struct {
		Elements []Expr
		Col      int
	}

	// ArrayAccess is base[index].
	ArrayAccess struct {
		Base  Expr
		Index Expr
		Col   int
	}

	// FunctionCall is name(args...).
	FunctionCall struct {
		Name string
		Args []Expr
		Col  int
	}
)

func (*NumberLit) exprNode()    {}
func (*BooleanLit) exprNode()   {}
func (*Identifier) exprNode()   {}
func (*UnaryOp) exprNode()      {}
func (*BinaryOp) exprNode()     {}
func (*Comparison) exprNode()   {}
func (*Quoted) exprNode()       {}
func (*ArrayLiteral) exprNode() {}
func (*ArrayAccess) exprNode()  {}
func (*FunctionCall) exprNode() {}

func (n *NumberLit) Column() int    { return n.Col }
func (n *BooleanLit) Column() int   { return n.Col }
func (n *Identifier) Column() int   { return n.Col }
func (n *UnaryOp) Column() int      { return n.Col }
func (n *BinaryOp) Column() int     { return n.Col }
func (n *Comparison) Column() int   { return n.Col }
func (n *Quoted) Column() int       { return n.Col }
func (n *ArrayLiteral) Column() int { return n.Col }
func (n *ArrayAccess) Column() int  { return n.Col }
func (n *FunctionCall) Column() int { return n.Col }

func (n *NumberLit) String() string { return FormatNumber(n.Value) }

func (n *BooleanLit) String() string { return Boolean(n.Value).String() }

func (n *Identifier) String() string { return n.Name }

func (n *UnaryOp) String() string {
	return string(n.Op) + wrap(n.Operand, precedenceOf(n.Operand) < PrecUnary)
}

func (n *BinaryOp) String() string { return infix(n.Op, n.LHS, n.RHS) }

func (n *Comparison) String() string { return infix(n.Op, n.LHS, n.RHS) }

func (n *Quoted) String() string { return "'" + n.Inner.String() + "'" }

func (n *ArrayLiteral) String() string { return "[" + joinExprs(n.Elements) + "]" }

func (n *ArrayAccess) String() string {
	return wrap(n.Base, precedenceOf(n.Base) < PrecPostfix) + "[" + n.Index.String() + "]"
}

func (n *FunctionCall) String() string { return n.Name + "(" + joinExprs(n.Args) + ")" }

// precedenceOf returns the binding level of the node at the top of e.
func precedenceOf(e Expr) int {
	switch n := e.(type) {
	case *BinaryOp:
		return n.Op.Precedence()
	case *Comparison:
		return n.Op.Precedence()
	case *UnaryOp:
		return PrecUnary
	case *ArrayAccess:
		return PrecPostfix
	}
	return PrecAtom
}

func infix(op Op, lhs, rhs Expr) string {
	p := op.Precedence()
	lp, rp := precedenceOf(lhs), precedenceOf(rhs)
	var wrapL, wrapR bool
	switch {
	case op == OpPow:
		// right associative
		wrapL, wrapR = lp <= p, rp < p
	case op.IsComparison():
		wrapL, wrapR = lp <= p, rp <= p
	default:
		wrapL, wrapR = lp < p, rp <= p
	}
	return wrap(lhs, wrapL) + " " + string(op) + " " + wrap(rhs, wrapR)
}

func wrap(e Expr, paren bool) string {
	if paren {
		return "(" + e.String() + ")"
	}
	return e.String()
}

func joinExprs(es []Expr) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

// Dump renders an expression in the AST debug notation,
// e.g. BinOp(+, Id(x), Number(1)).
func Dump(e Expr) string {
	switch n := e.(type) {
	case *NumberLit:
		return "Number(" + FormatNumber(n.Value) + ")"
	case *BooleanLit:
		return "Boolean(" + Boolean(n.Value).String() + ")"
	case *Identifier:
		return "Id(" + n.Name + ")"
	case *UnaryOp:
		return fmt.Sprintf("UnOp(%s, %s)", n.Op, Dump(n.Operand))
	case *BinaryOp:
		return fmt.Sprintf("BinOp(%s, %s, %s)", n.Op, Dump(n.LHS), Dump(n.RHS))
	case *Comparison:
		return fmt.Sprintf("Comp(%s, %s, %s)", n.Op, Dump(n.LHS), Dump(n.RHS))
	case *Quoted:
		return "Quote(" + Dump(n.Inner) + ")"
	case *ArrayLiteral:
		return "Array(" + dumpList(n.Elements) + ")"
	case *ArrayAccess:
		return fmt.Sprintf("Access(%s, %s)", Dump(n.Base), Dump(n.Index))
	case *FunctionCall:
		if len(n.Args) == 0 {
			return "Call(" + n.Name + ")"
		}
		return "Call(" + n.Name + ", " + dumpList(n.Args) + ")"
	}
	return fmt.Sprintf("%T", e)
}

func dumpList(es []Expr) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = Dump(e)
	}
	return strings.Join(parts, ", ")
}
