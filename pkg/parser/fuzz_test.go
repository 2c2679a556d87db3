package parser_test

import (
	"testing"

	"github.com/sandrolain/gostokhos/pkg/parser"
)

func FuzzParser(f *testing.F) {
	seeds := []string{
		`num x := 'uniform()';`,
		`[num] a := [1, 2, 3];`,
		`a[1] := 9;`,
		`histogram(x, 100, 10, 0, 1)`,
		`if(x < .5, 1, 0)`,
		`-2^-2`,
		`''2''`,
		``,
		`(`,
		`[`,
		`2Hola`,
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, input string) {
		stmt, err := parser.Parse(input)
		if err == nil && stmt.AST() == nil {
			t.Fatalf("Parse(%q) returned neither statement nor error", input)
		}
	})
}
