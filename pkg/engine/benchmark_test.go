package engine_test

// Run:
//
//	go test -bench=. -benchmem ./pkg/engine/...

import (
	"context"
	"testing"

	"github.com/sandrolain/gostokhos/pkg/engine"
)

// ---------------------------------------------------------------------------
// Parse + validate + evaluate
// ---------------------------------------------------------------------------

func BenchmarkProcessArithmetic(b *testing.B) {
	for _, caching := range []bool{false, true} {
		name := "NoCache"
		if caching {
			name = "Cache"
		}
		b.Run(name, func(b *testing.B) {
			e := engine.New(engine.WithCaching(caching), engine.WithSeed(1))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				e.Process("(100/10*5 + 14)^(1/2) + sum([1, 2, 3, 4]) * 2")
			}
		})
	}
}

func BenchmarkFormulaResample(b *testing.B) {
	e := engine.New(engine.WithCaching(true), engine.WithSeed(1))
	e.Process("num x := 'uniform() * 10';")
	e.Process("num y := 'x + x';")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Process("tick()")
		e.Process("y")
	}
}

// ---------------------------------------------------------------------------
// Sampling
// ---------------------------------------------------------------------------

func BenchmarkHistogram(b *testing.B) {
	for _, tc := range []struct {
		name    string
		samples string
	}{
		{"1k", "1000"},
		{"10k", "10000"},
	} {
		b.Run(tc.name, func(b *testing.B) {
			e := engine.New(engine.WithSeed(1))
			e.Process("num x := 'uniform() + uniform()';")
			stmt := "histogram(x, " + tc.samples + ", 10, 0, 2)"

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				e.ProcessContext(context.Background(), stmt)
			}
		})
	}
}
