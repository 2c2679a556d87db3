package evaluator

import (
	"context"
	"fmt"

	"github.com/sandrolain/gostokhos/pkg/symtable"
	"github.com/sandrolain/gostokhos/pkg/types"
)

// Effect describes the binding made by an executed statement.
type Effect struct {
	// Declared is the type of a definition; Void for assignments.
	Declared types.Type
	// Target is the bound name, or "a[i]" for element assignments.
	Target string
	// Form is what was stored.
	Form symtable.Form
}

// String renders the effect, e.g. "num x := 5" or "a[1] := 'uniform()'".
func (ef Effect) String() string {
	if ef.Declared.Kind != types.KindVoid {
		return fmt.Sprintf("%s %s := %s", ef.Declared, ef.Target, ef.Form)
	}
	return fmt.Sprintf("%s := %s", ef.Target, ef.Form)
}

// Exec executes a validated binding statement against the symbol table.
func (e *Evaluator) Exec(ctx context.Context, stmt types.Stmt) (Effect, error) {
	e.depth = 0

	switch s := stmt.(type) {
	case *types.Definition:
		form, err := e.rhsForm(ctx, s.RHS)
		if err != nil {
			return Effect{}, err
		}
		if !e.table.Insert(s.Name, symtable.NewVariable(s.DeclaredType, form)) {
			return Effect{}, types.Errorf(types.KindSemantic, types.ErrAlreadyDefined,
				"symbol %q already defined", s.Name).WithColumn(s.Col)
		}
		return Effect{Declared: s.DeclaredType, Target: s.Name, Form: form}, nil

	case *types.Assignment:
		form, err := e.rhsForm(ctx, s.RHS)
		if err != nil {
			return Effect{}, err
		}
		if !e.table.Update(s.Name, form) {
			return Effect{}, runtimeFault(types.ErrUndefinedSymbol, s.Col, "undefined symbol %q", s.Name)
		}
		return Effect{Target: s.Name, Form: form}, nil

	case *types.ArrayElementAssignment:
		return e.execElement(ctx, s)
	}

	return Effect{}, fmt.Errorf("evaluator: %T is not a binding statement", stmt)
}

// rhsForm turns a right-hand side into what gets stored: a quoted
// expression is kept unevaluated, anything else is evaluated now.
func (e *Evaluator) rhsForm(ctx context.Context, rhs types.Expr) (symtable.Form, error) {
	if q, ok := rhs.(*types.Quoted); ok {
		return symtable.ExprForm(q.Inner), nil
	}
	v, err := e.evalNode(ctx, rhs)
	if err != nil {
		return symtable.Form{}, err
	}
	return symtable.ValueForm(v), nil
}

func (e *Evaluator) execElement(ctx context.Context, s *types.ArrayElementAssignment) (Effect, error) {
	access := &types.ArrayAccess{Base: s.Base, Index: s.Index, Col: s.Col}
	idx, err := e.index(ctx, access, s.Index)
	if err != nil {
		return Effect{}, err
	}
	form, err := e.rhsForm(ctx, s.RHS)
	if err != nil {
		return Effect{}, err
	}

	// The RHS may have run reset(), so look the variable up afterwards.
	v, err := e.lvalue(s.Base)
	if err != nil {
		return Effect{}, err
	}

	if !v.IsCellular() {
		current, err := e.resolveVariable(ctx, s.Base.Name, v)
		if err != nil {
			return Effect{}, err
		}
		arr, ok := current.(types.Array)
		if !ok {
			return Effect{}, runtimeFault(types.ErrNotAnArray, s.Col, "not an array: %s", s.Base)
		}
		if idx >= len(arr) {
			return Effect{}, outOfRange(access, idx)
		}
		v.SetCells(arr)
	}

	cells := v.Cells()
	if idx >= len(cells) {
		return Effect{}, outOfRange(access, idx)
	}
	cells[idx].SetForm(form)

	return Effect{Target: fmt.Sprintf("%s[%d]", s.Base.Name, idx), Form: form}, nil
}
