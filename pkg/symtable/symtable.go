// Package symtable implements the global Stokhos symbol table.
//
// The table maps names to variables and functions in a single namespace,
// and owns the cycle counter that scopes formula memoization. It is not
// safe for concurrent use: one table serves one engine, and callers that
// share an engine across goroutines must serialize access.
package symtable

import (
	"sort"

	"github.com/sandrolain/gostokhos/pkg/functions"
	"github.com/sandrolain/gostokhos/pkg/types"
)

// Symbol is a binding stored in the table: *Variable or *Function.
type Symbol interface {
	symbol()
}

// Function is a builtin or registered function.
type Function struct {
	Def functions.Def
}

func (*Function) symbol() {}

// Table is the name→Symbol map plus the cycle counter.
type Table struct {
	symbols map[string]Symbol
	catalog []functions.Def
	cycle   uint64
}

// New creates a table seeded with the given function catalog.
func New(catalog ...functions.Def) *Table {
	t := &Table{catalog: append([]functions.Def(nil), catalog...)}
	t.seed()
	return t
}

func (t *Table) seed() {
	t.symbols = make(map[string]Symbol, len(t.catalog))
	for _, def := range t.catalog {
		t.symbols[def.Name] = &Function{Def: def}
	}
}

// Register adds a function to the catalog, replacing any function of the
// same name. Registered functions survive Clear.
// It returns false when name is already bound to a variable.
func (t *Table) Register(def functions.Def) bool {
	if sym, ok := t.symbols[def.Name]; ok {
		if _, isFn := sym.(*Function); !isFn {
			return false
		}
		for i := range t.catalog {
			if t.catalog[i].Name == def.Name {
				t.catalog[i] = def
			}
		}
	} else {
		t.catalog = append(t.catalog, def)
	}
	t.symbols[def.Name] = &Function{Def: def}
	return true
}

// Exists reports whether name is bound.
func (t *Table) Exists(name string) bool {
	_, ok := t.symbols[name]
	return ok
}

// Insert binds name to sym. It never overwrites: it returns false if name
// is already bound.
func (t *Table) Insert(name string, sym Symbol) bool {
	if t.Exists(name) {
		return false
	}
	t.symbols[name] = sym
	return true
}

// Update replaces the stored form of the variable name.
// It returns false if name is absent or is a function.
func (t *Table) Update(name string, form Form) bool {
	v, ok := t.symbols[name].(*Variable)
	if !ok {
		return false
	}
	v.SetForm(form)
	return true
}

// Lookup returns the symbol bound to name.
func (t *Table) Lookup(name string) (Symbol, error) {
	sym, ok := t.symbols[name]
	if !ok {
		return nil, types.Errorf(types.KindSemantic, types.ErrUndefinedSymbol, "undefined symbol %q", name)
	}
	return sym, nil
}

// Variable returns the variable bound to name, or nil.
func (t *Table) Variable(name string) *Variable {
	v, _ := t.symbols[name].(*Variable)
	return v
}

// Function returns the function bound to name, or nil.
func (t *Table) Function(name string) *Function {
	f, _ := t.symbols[name].(*Function)
	return f
}

// IsFunction reports whether name is bound to a function.
func (t *Table) IsFunction(name string) bool {
	return t.Function(name) != nil
}

// Clear removes every user binding, restores the function catalog and
// advances the cycle.
func (t *Table) Clear() {
	t.seed()
	t.AdvanceCycle()
}

// AdvanceCycle starts a new computation cycle and returns its number.
func (t *Table) AdvanceCycle() uint64 {
	t.cycle++
	return t.cycle
}

// Cycle returns the current cycle.
func (t *Table) Cycle() uint64 {
	return t.cycle
}

// Names returns every bound name in sorted order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.symbols))
	for name := range t.symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Variables returns the names of user variables in sorted order.
func (t *Table) Variables() []string {
	var names []string
	for name, sym := range t.symbols {
		if _, ok := sym.(*Variable); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Catalog returns the function catalog in registration order.
func (t *Table) Catalog() []functions.Def {
	return append([]functions.Def(nil), t.catalog...)
}
