// Package ext provides optional extension functions for Stokhos that go
// beyond the builtin catalog.
//
// The extension functions live in sub-packages grouped by category:
//   - extstats – normal, bernoulli, exponential, randint, min, max, median, …
//
// # Integration – all extensions at once
//
//	import "github.com/sandrolain/gostokhos/pkg/ext"
//
//	e := engine.New(ext.WithAll())
//
// # Integration – by name, as listed in a config file
//
//	defs, err := ext.Lookup("stats")
//
// # Integration – single function from a sub-package
//
//	import "github.com/sandrolain/gostokhos/pkg/ext/extstats"
//
//	e := engine.New(engine.WithFunctions(extstats.Normal()))
package ext

import (
	"fmt"
	"sort"

	"github.com/sandrolain/gostokhos/pkg/engine"
	"github.com/sandrolain/gostokhos/pkg/ext/extstats"
	"github.com/sandrolain/gostokhos/pkg/functions"
)

// categories maps extension set names to their definitions.
var categories = map[string]func() []functions.Def{
	"stats": extstats.All,
}

// Names returns the known extension set names in sorted order.
func Names() []string {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the functions of the named extension sets.
func Lookup(names ...string) ([]functions.Def, error) {
	var out []functions.Def
	for _, name := range names {
		all, ok := categories[name]
		if !ok {
			return nil, fmt.Errorf("unknown extension set %q (known: %v)", name, Names())
		}
		out = append(out, all()...)
	}
	return out, nil
}

// All returns every extension function definition.
func All() []functions.Def {
	defs, _ := Lookup(Names()...)
	return defs
}

// WithAll returns an engine Option that registers all extension functions.
func WithAll() engine.Option {
	return engine.WithFunctions(All()...)
}

// WithStats returns an engine Option for the statistical functions.
func WithStats() engine.Option {
	return engine.WithFunctions(extstats.All()...)
}
