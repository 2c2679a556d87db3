// Package validator implements the static type checker for Stokhos statements.
//
// The validator resolves names against a symbol table, infers the type of
// every expression and either accepts a statement or rejects it with a
// semantic *types.Error. It never evaluates anything and never mutates the
// tree or the table.
package validator

import (
	"fmt"

	"github.com/sandrolain/gostokhos/pkg/symtable"
	"github.com/sandrolain/gostokhos/pkg/types"
)

// Validator type-checks statements against a symbol table.
type Validator struct {
	table *symtable.Table
}

// New creates a validator reading from table.
func New(table *symtable.Table) *Validator {
	return &Validator{table: table}
}

// Check validates a statement. Binding statements have type Void; an
// expression statement has the type of its expression.
func (v *Validator) Check(stmt types.Stmt) (types.Type, error) {
	switch s := stmt.(type) {
	case *types.ExprStmt:
		return v.TypeOf(s.Expr)

	case *types.Definition:
		if v.table.Exists(s.Name) {
			return types.Void, semantic(types.ErrAlreadyDefined, s.Col, "symbol %q already defined", s.Name)
		}
		rhs, err := v.TypeOf(s.RHS)
		if err != nil {
			return types.Void, err
		}
		if !rhs.Equal(s.DeclaredType) {
			return types.Void, semantic(types.ErrTypeMismatch, s.RHS.Column(),
				"cannot assign %s to %q of type %s", rhs, s.Name, s.DeclaredType)
		}
		return types.Void, nil

	case *types.Assignment:
		target, err := v.variable(s.Name, s.Col)
		if err != nil {
			return types.Void, err
		}
		rhs, err := v.TypeOf(s.RHS)
		if err != nil {
			return types.Void, err
		}
		if !rhs.Equal(target.Type) {
			return types.Void, semantic(types.ErrTypeMismatch, s.RHS.Column(),
				"cannot assign %s to %q of type %s", rhs, s.Name, target.Type)
		}
		return types.Void, nil

	case *types.ArrayElementAssignment:
		if v.table.IsFunction(s.Base.Name) {
			return types.Void, semantic(types.ErrAssignToFunction, s.Col, "cannot assign to function %q", s.Base.Name)
		}
		elem, err := v.typeOfAccess(s.Base, s.Index)
		if err != nil {
			return types.Void, err
		}
		rhs, err := v.TypeOf(s.RHS)
		if err != nil {
			return types.Void, err
		}
		if !rhs.Equal(elem) {
			return types.Void, semantic(types.ErrTypeMismatch, s.RHS.Column(),
				"cannot assign %s to an element of %q of type %s", rhs, s.Base.Name, types.ArrayOf(elem))
		}
		return types.Void, nil
	}

	return types.Void, fmt.Errorf("validator: unknown statement %T", stmt)
}

// variable resolves name as an assignable variable.
func (v *Validator) variable(name string, col int) (*symtable.Variable, error) {
	if v.table.IsFunction(name) {
		return nil, semantic(types.ErrAssignToFunction, col, "cannot assign to function %q", name)
	}
	if _, err := v.lookup(name, col); err != nil {
		return nil, err
	}
	return v.table.Variable(name), nil
}

// TypeOf infers the static type of an expression.
func (v *Validator) TypeOf(expr types.Expr) (types.Type, error) {
	switch e := expr.(type) {
	case *types.NumberLit:
		return types.Num, nil

	case *types.BooleanLit:
		return types.Bool, nil

	case *types.Identifier:
		sym, err := v.lookup(e.Name, e.Col)
		if err != nil {
			return types.Void, err
		}
		variable, ok := sym.(*symtable.Variable)
		if !ok {
			return types.Void, semantic(types.ErrFunctionAsValue, e.Col, "%q is a function", e.Name)
		}
		return variable.Type, nil

	case *types.UnaryOp:
		operand, err := v.TypeOf(e.Operand)
		if err != nil {
			return types.Void, err
		}
		want := types.Num
		if e.Op == types.OpNot {
			want = types.Bool
		}
		if operand != want {
			return types.Void, semantic(types.ErrTypeMismatch, e.Col,
				"operator %q expects %s, got %s", e.Op, want, operand)
		}
		return want, nil

	case *types.BinaryOp:
		lhs, rhs, err := v.operands(e.LHS, e.RHS)
		if err != nil {
			return types.Void, err
		}
		want := types.Num
		if e.Op == types.OpAnd || e.Op == types.OpOr {
			want = types.Bool
		}
		if lhs != want || rhs != want {
			return types.Void, semantic(types.ErrTypeMismatch, e.Col,
				"operator %q expects %s operands, got %s and %s", e.Op, want, lhs, rhs)
		}
		return want, nil

	case *types.Comparison:
		lhs, rhs, err := v.operands(e.LHS, e.RHS)
		if err != nil {
			return types.Void, err
		}
		if e.Op == types.OpEq || e.Op == types.OpNE {
			if lhs != rhs || !lhs.IsPrimitive() {
				return types.Void, semantic(types.ErrTypeMismatch, e.Col,
					"operator %q expects operands of the same primitive type, got %s and %s", e.Op, lhs, rhs)
			}
			return types.Bool, nil
		}
		if lhs != types.Num || rhs != types.Num {
			return types.Void, semantic(types.ErrTypeMismatch, e.Col,
				"operator %q expects num operands, got %s and %s", e.Op, lhs, rhs)
		}
		return types.Bool, nil

	case *types.Quoted:
		return v.TypeOf(e.Inner)

	case *types.ArrayLiteral:
		return v.typeOfArray(e)

	case *types.ArrayAccess:
		return v.typeOfAccess(e.Base, e.Index)

	case *types.FunctionCall:
		return v.typeOfCall(e)
	}

	return types.Void, fmt.Errorf("validator: unknown expression %T", expr)
}

func (v *Validator) operands(l, r types.Expr) (types.Type, types.Type, error) {
	lhs, err := v.TypeOf(l)
	if err != nil {
		return types.Void, types.Void, err
	}
	rhs, err := v.TypeOf(r)
	if err != nil {
		return types.Void, types.Void, err
	}
	return lhs, rhs, nil
}

func (v *Validator) typeOfArray(e *types.ArrayLiteral) (types.Type, error) {
	if len(e.Elements) == 0 {
		return types.AnyArray, nil
	}

	var elem types.Type
	for i, el := range e.Elements {
		t, err := v.TypeOf(el)
		if err != nil {
			return types.Void, err
		}
		if t.IsArray() {
			return types.Void, semantic(types.ErrNestedArray, el.Column(),
				"nested arrays are not allowed: element %d (%s)", i+1, el)
		}
		if !t.IsPrimitive() {
			return types.Void, semantic(types.ErrNonHomogeneous, el.Column(),
				"arrays hold num or bool values: element %d (%s) has type %s", i+1, el, t)
		}
		if i == 0 {
			elem = t
			continue
		}
		if t != elem {
			return types.Void, semantic(types.ErrNonHomogeneous, el.Column(),
				"non-homogeneous array: element %d (%s) has type %s, expected %s", i+1, el, t, elem)
		}
	}
	return types.ArrayOf(elem), nil
}

func (v *Validator) typeOfAccess(base, index types.Expr) (types.Type, error) {
	bt, err := v.TypeOf(base)
	if err != nil {
		return types.Void, err
	}
	if !bt.IsArray() {
		return types.Void, semantic(types.ErrNotAnArray, base.Column(), "not an array: %s has type %s", base, bt)
	}
	it, err := v.TypeOf(index)
	if err != nil {
		return types.Void, err
	}
	if it != types.Num {
		return types.Void, semantic(types.ErrBadArrayAccess, index.Column(),
			"bad array access: index %s has type %s", index, it)
	}
	if bt.Unresolved() {
		return types.Void, semantic(types.ErrUnresolvedArray, base.Column(),
			"cannot index %s: element type unknown", base)
	}
	return bt.ElemType(), nil
}

// lookup resolves name, adding a spelling suggestion when it is unbound.
func (v *Validator) lookup(name string, col int) (symtable.Symbol, error) {
	sym, err := v.table.Lookup(name)
	if err == nil {
		return sym, nil
	}
	msg := fmt.Sprintf("undefined symbol %q", name)
	if s := suggest(name, v.table.Names()); s != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", s)
	}
	return nil, types.NewError(types.KindSemantic, types.ErrUndefinedSymbol, msg).WithColumn(col).WithCause(err)
}

// IsLvalue reports whether expr denotes an assignable location: a variable,
// or an element of one.
func (v *Validator) IsLvalue(expr types.Expr) bool {
	return lvalueName(expr) != "" && v.table.Variable(lvalueName(expr)) != nil
}

// lvalueName returns the variable name at the root of an lvalue-shaped
// expression, or "".
func lvalueName(expr types.Expr) string {
	switch e := expr.(type) {
	case *types.Identifier:
		return e.Name
	case *types.ArrayAccess:
		if id, ok := e.Base.(*types.Identifier); ok {
			return id.Name
		}
	}
	return ""
}

func semantic(code types.ErrorCode, col int, format string, args ...interface{}) *types.Error {
	return types.Errorf(types.KindSemantic, code, format, args...).WithColumn(col)
}
