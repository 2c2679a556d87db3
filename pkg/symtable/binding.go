package symtable

import "github.com/sandrolain/gostokhos/pkg/types"

// Form is what a variable or array cell stores: either an evaluated Value
// or, for formulas, an unevaluated expression.
type Form struct {
	Value types.Value
	Expr  types.Expr
}

// ValueForm stores an evaluated value. A types.Formula value is stored as
// its expression.
func ValueForm(v types.Value) Form {
	if f, ok := v.(types.Formula); ok {
		return Form{Expr: f.Expr}
	}
	return Form{Value: v}
}

// ExprForm stores a formula.
func ExprForm(e types.Expr) Form {
	return Form{Expr: e}
}

// IsFormula reports whether the form is an unevaluated expression.
func (f Form) IsFormula() bool {
	return f.Expr != nil
}

// AsValue returns the form as a value: formulas become types.Formula.
func (f Form) AsValue() types.Value {
	if f.Expr != nil {
		return types.Formula{Expr: f.Expr}
	}
	return f.Value
}

func (f Form) String() string {
	return f.AsValue().String()
}

// Memo caches the value a formula produced in a given cycle.
type Memo struct {
	cycle uint64
	value types.Value
	valid bool
}

// Get returns the cached value if it was computed in cycle.
func (m *Memo) Get(cycle uint64) (types.Value, bool) {
	if m.valid && m.cycle == cycle {
		return m.value, true
	}
	return nil, false
}

// Set records v as the value for cycle.
func (m *Memo) Set(cycle uint64, v types.Value) {
	m.cycle, m.value, m.valid = cycle, v, true
}

// Reset drops the cached value.
func (m *Memo) Reset() {
	*m = Memo{}
}

// guard detects re-entrant evaluation of the same formula.
type guard struct {
	busy bool
}

// Enter marks the formula as being evaluated. It returns false if it
// already was, which means the formula refers to itself.
func (g *guard) Enter() bool {
	if g.busy {
		return false
	}
	g.busy = true
	return true
}

// Leave clears the mark set by Enter.
func (g *guard) Leave() {
	g.busy = false
}

// Cell is one element of an array variable.
type Cell struct {
	guard
	Memo Memo
	form Form
}

// Form returns the cell's stored form.
func (c *Cell) Form() Form {
	return c.form
}

// SetForm replaces the cell's stored form and drops its memo.
func (c *Cell) SetForm(f Form) {
	c.form = f
	c.Memo.Reset()
}

// Variable is a user-defined binding.
//
// Scalar variables, and array variables holding a whole-array formula,
// keep their form directly. Array variables holding a concrete array keep
// one Cell per element so that cells can be assigned formulas
// individually.
type Variable struct {
	guard
	// Type is fixed at definition time.
	Type  types.Type
	Memo  Memo
	form  Form
	cells []*Cell
	split bool
}

// NewVariable creates a variable of type t holding form.
func NewVariable(t types.Type, form Form) *Variable {
	v := &Variable{Type: t}
	v.SetForm(form)
	return v
}

// SetForm replaces the stored form and drops all memos.
func (v *Variable) SetForm(form Form) {
	v.Memo.Reset()
	v.cells, v.split = nil, false
	v.form = form

	if arr, ok := form.Value.(types.Array); ok && v.Type.IsArray() {
		v.SetCells(arr)
	}
}

// SetCells stores arr element-wise, one cell per element.
func (v *Variable) SetCells(arr types.Array) {
	v.Memo.Reset()
	v.form = Form{}
	v.split = true
	v.cells = make([]*Cell, len(arr))
	for i, elem := range arr {
		v.cells[i] = &Cell{form: ValueForm(elem)}
	}
}

// IsCellular reports whether the variable stores its elements in cells.
func (v *Variable) IsCellular() bool {
	return v.split
}

// Cells returns the cells of a cellular array variable.
func (v *Variable) Cells() []*Cell {
	return v.cells
}

// Form returns the stored form. For cellular arrays the result is an
// array value whose formula cells appear as types.Formula elements.
func (v *Variable) Form() Form {
	if !v.split {
		return v.form
	}
	arr := make(types.Array, len(v.cells))
	for i, c := range v.cells {
		arr[i] = c.form.AsValue()
	}
	return Form{Value: arr}
}

func (*Variable) symbol() {}
