package ext_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrolain/gostokhos/pkg/engine"
	"github.com/sandrolain/gostokhos/pkg/ext"
	"github.com/sandrolain/gostokhos/pkg/ext/extstats"
)

// value processes input and returns the rendered value of an OK line.
func value(t *testing.T, e *engine.Engine, input string) string {
	t.Helper()
	out := e.Process(input)
	prefix := "OK: " + input + " ==> "
	require.True(t, strings.HasPrefix(out, prefix), out)
	return strings.TrimPrefix(out, prefix)
}

func failure(t *testing.T, e *engine.Engine, input string) string {
	t.Helper()
	out := e.Process(input)
	require.True(t, strings.HasPrefix(out, "ERROR: "), out)
	return out
}

// ── Registry ───────────────────────────────────────────────────────────────

func TestLookup(t *testing.T) {
	defs, err := ext.Lookup("stats")
	require.NoError(t, err)
	assert.Len(t, defs, len(extstats.All()))

	_, err = ext.Lookup("nope")
	assert.ErrorContains(t, err, `unknown extension set "nope"`)

	assert.Equal(t, []string{"stats"}, ext.Names())
	assert.Len(t, ext.All(), len(extstats.All()))
}

func TestWithAll(t *testing.T) {
	e := engine.New(ext.WithAll())
	assert.Equal(t, "3", value(t, e, "max([1, 3, 2])"))
}

// ── Summary statistics ─────────────────────────────────────────────────────

func TestSummaryStatistics(t *testing.T) {
	e := engine.New(ext.WithStats())

	tests := []struct {
		input string
		want  string
	}{
		{"min([3, 1, 2])", "1"},
		{"max([3, 1, 2])", "3"},
		{"median([3, 1, 2])", "2"},
		{"median([4, 1, 3, 2])", "2.5"},
		{"variance([2, 4, 4, 4, 5, 5, 7, 9])", "4"},
		{"stddev([2, 4, 4, 4, 5, 5, 7, 9])", "2"},
		{"percentile([1, 2, 3, 4, 5], 50)", "3"},
		{"percentile([1, 2, 3, 4], 50)", "2.5"},
		{"percentile([10, 20, 30, 40], 0)", "10"},
		{"percentile([10, 20, 30, 40], 100)", "40"},
		{"variance([3])", "0"},
		{"ceil(1.2)", "2"},
		{"abs(-4)", "4"},
		{"sqrt(16)", "4"},
		{"sign(-3) + sign(0) + sign(8)", "0"},
		{"clamp(12, 0, 10)", "10"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, value(t, e, tt.input))
		})
	}
}

func TestStatisticsErrors(t *testing.T) {
	e := engine.New(ext.WithStats())

	assert.Contains(t, failure(t, e, "min([])"), "min: empty array")
	assert.Contains(t, failure(t, e, "sqrt(-1)"), "sqrt: argument must be non-negative")
	assert.Contains(t, failure(t, e, "normal(0, -1)"), "normal: sigma must be non-negative")
	assert.Contains(t, failure(t, e, "bernoulli(2)"), "bernoulli: p must be between 0 and 1")
	assert.Contains(t, failure(t, e, "exponential(0)"), "exponential: rate must be positive")
	assert.Contains(t, failure(t, e, "randint(1.5, 3)"), "randint: bounds must be integers")
	assert.Contains(t, failure(t, e, "randint(3, 1)"), "randint: lo must not exceed hi")
	assert.Contains(t, failure(t, e, "percentile([1], 101)"), "percentile: p must be between 0 and 100")
	assert.Contains(t, failure(t, e, "min([true])"), `argument 1 of "min" must be [num]`)
}

// ── Random draws ───────────────────────────────────────────────────────────

func TestRandomDraws(t *testing.T) {
	e := engine.New(ext.WithStats(), engine.WithSeed(5))

	for i := 0; i < 50; i++ {
		n, err := strconv.ParseFloat(value(t, e, "randint(1, 6)"), 64)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 1.0)
		assert.LessOrEqual(t, n, 6.0)
		assert.Equal(t, n, float64(int(n)))

		x, err := strconv.ParseFloat(value(t, e, "exponential(2)"), 64)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, x, 0.0)
	}

	assert.Equal(t, "true", value(t, e, "bernoulli(1)"))
	assert.Equal(t, "false", value(t, e, "bernoulli(0)"))
	assert.Equal(t, "3", value(t, e, "normal(3, 0)"))
}

func TestDrawMoments(t *testing.T) {
	e := engine.New(ext.WithStats(), engine.WithSeed(9))
	e.Process("num x := 'exponential(4)';")
	e.Process("num b := 'if(bernoulli(0.25), 1, 0)';")

	var xs, bs []float64
	for i := 0; i < 4000; i++ {
		x, err := strconv.ParseFloat(value(t, e, "x"), 64)
		require.NoError(t, err)
		b, err := strconv.ParseFloat(value(t, e, "b"), 64)
		require.NoError(t, err)
		xs, bs = append(xs, x), append(bs, b)
		e.Process("tick()")
	}
	assert.InDelta(t, 0.25, mean(xs), 0.02, "exponential mean is 1/rate")
	assert.InDelta(t, 0.25, mean(bs), 0.03, "bernoulli mean is p")
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func TestDrawsFollowEngineSeed(t *testing.T) {
	a := engine.New(ext.WithStats(), engine.WithSeed(11))
	b := engine.New(ext.WithStats(), engine.WithSeed(11))
	for i := 0; i < 5; i++ {
		assert.Equal(t, a.Process("normal(0, 1)"), b.Process("normal(0, 1)"))
	}
}

func TestNormalHistogram(t *testing.T) {
	e := engine.New(ext.WithStats(), engine.WithSeed(2))
	e.Process("num x := 'normal(0, 1)';")

	// Roughly 68% of samples fall within one standard deviation.
	counts := value(t, e, "histogram(x, 2000, 2, -1, 1)")
	parts := strings.Split(strings.Trim(counts, "[]"), ", ")
	require.Len(t, parts, 4)
	inside := 0.0
	for _, p := range parts[1:3] {
		n, err := strconv.ParseFloat(p, 64)
		require.NoError(t, err)
		inside += n
	}
	assert.InDelta(t, 0.68, inside/2000, 0.05)
}
