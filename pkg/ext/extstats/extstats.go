// Package extstats provides statistical and numeric extension functions for
// Stokhos: random draws from common distributions and summary statistics
// over [num] arrays.
//
// Draws come from gonum's distuv distributions fed with the engine's seeded
// source through [functions.Env], so a seeded engine stays reproducible with
// the extensions enabled. Summary statistics use gonum's floats and stat.
package extstats

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sandrolain/gostokhos/pkg/functions"
	"github.com/sandrolain/gostokhos/pkg/types"
)

// All returns all statistical function definitions.
func All() []functions.Def {
	return []functions.Def{
		Normal(),
		Bernoulli(),
		Exponential(),
		RandInt(),
		Min(),
		Max(),
		Median(),
		Variance(),
		Stddev(),
		Percentile(),
		Ceil(),
		Abs(),
		Sqrt(),
		Sign(),
		Clamp(),
	}
}

// Normal returns the definition for normal(mu, sigma).
func Normal() functions.Def {
	return functions.Def{
		Name: "normal",
		Doc:  "Gaussian draw with mean mu and standard deviation sigma",
		Overloads: []functions.Overload{{
			Params: []types.Type{types.Num, types.Num},
			Return: types.Num,
			Fn: func(env functions.Env, args ...types.Value) (types.Value, error) {
				mu, sigma := num(args[0]), num(args[1])
				if sigma < 0 {
					return nil, fmt.Errorf("normal: sigma must be non-negative")
				}
				d := distuv.Normal{Mu: mu, Sigma: sigma, Src: env.Rand()}
				return types.Number(d.Rand()), nil
			},
		}},
	}
}

// Bernoulli returns the definition for bernoulli(p).
func Bernoulli() functions.Def {
	return functions.Def{
		Name: "bernoulli",
		Doc:  "true with probability p",
		Overloads: []functions.Overload{{
			Params: []types.Type{types.Num},
			Return: types.Bool,
			Fn: func(env functions.Env, args ...types.Value) (types.Value, error) {
				p := num(args[0])
				if p < 0 || p > 1 || math.IsNaN(p) {
					return nil, fmt.Errorf("bernoulli: p must be between 0 and 1")
				}
				d := distuv.Bernoulli{P: p, Src: env.Rand()}
				return types.Boolean(d.Rand() == 1), nil
			},
		}},
	}
}

// Exponential returns the definition for exponential(rate).
func Exponential() functions.Def {
	return functions.Def{
		Name: "exponential",
		Doc:  "exponential draw with the given rate",
		Overloads: []functions.Overload{{
			Params: []types.Type{types.Num},
			Return: types.Num,
			Fn: func(env functions.Env, args ...types.Value) (types.Value, error) {
				rate := num(args[0])
				if !(rate > 0) {
					return nil, fmt.Errorf("exponential: rate must be positive")
				}
				d := distuv.Exponential{Rate: rate, Src: env.Rand()}
				return types.Number(d.Rand()), nil
			},
		}},
	}
}

// RandInt returns the definition for randint(lo, hi), a uniform integer
// in [lo, hi].
func RandInt() functions.Def {
	return functions.Def{
		Name: "randint",
		Doc:  "uniform integer between lo and hi inclusive",
		Overloads: []functions.Overload{{
			Params: []types.Type{types.Num, types.Num},
			Return: types.Num,
			Fn: func(env functions.Env, args ...types.Value) (types.Value, error) {
				lo, hi := num(args[0]), num(args[1])
				if lo != math.Trunc(lo) || hi != math.Trunc(hi) {
					return nil, fmt.Errorf("randint: bounds must be integers")
				}
				if lo > hi {
					return nil, fmt.Errorf("randint: lo must not exceed hi")
				}
				span := hi - lo + 1
				if span > 1<<53 {
					return nil, fmt.Errorf("randint: range too large")
				}
				return types.Number(lo + float64(env.Rand().Int64N(int64(span)))), nil
			},
		}},
	}
}

// Min returns the definition for min(array).
func Min() functions.Def {
	return aggregate("min", "smallest element", floats.Min)
}

// Max returns the definition for max(array).
func Max() functions.Def {
	return aggregate("max", "largest element", floats.Max)
}

// Median returns the definition for median(array).
func Median() functions.Def {
	return aggregate("median", "middle element of the sorted array", func(nums []float64) float64 {
		return quantile(sortedCopy(nums), 0.5)
	})
}

// Variance returns the definition for variance(array), the population
// variance.
func Variance() functions.Def {
	return aggregate("variance", "population variance", func(nums []float64) float64 {
		return stat.PopVariance(nums, nil)
	})
}

// Stddev returns the definition for stddev(array).
func Stddev() functions.Def {
	return aggregate("stddev", "population standard deviation", func(nums []float64) float64 {
		return stat.PopStdDev(nums, nil)
	})
}

// Percentile returns the definition for percentile(array, p).
// p is in range [0, 100]; values between ranks are interpolated linearly.
func Percentile() functions.Def {
	return functions.Def{
		Name: "percentile",
		Doc:  "p-th percentile with linear interpolation",
		Overloads: []functions.Overload{{
			Params: []types.Type{types.NumArr, types.Num},
			Return: types.Num,
			Fn: func(_ functions.Env, args ...types.Value) (types.Value, error) {
				nums := functions.Numbers(args[0])
				p := num(args[1])
				if p < 0 || p > 100 || math.IsNaN(p) {
					return nil, fmt.Errorf("percentile: p must be between 0 and 100")
				}
				if len(nums) == 0 {
					return nil, fmt.Errorf("percentile: empty array")
				}
				return types.Number(quantile(sortedCopy(nums), p/100)), nil
			},
		}},
	}
}

// Ceil returns the definition for ceil(x).
func Ceil() functions.Def {
	return functions.Unary("ceil", "smallest integer not below x", func(x float64) (float64, error) {
		return math.Ceil(x), nil
	})
}

// Abs returns the definition for abs(x).
func Abs() functions.Def {
	return functions.Unary("abs", "absolute value", func(x float64) (float64, error) {
		return math.Abs(x), nil
	})
}

// Sqrt returns the definition for sqrt(x).
func Sqrt() functions.Def {
	return functions.Unary("sqrt", "square root", func(x float64) (float64, error) {
		if x < 0 {
			return 0, fmt.Errorf("sqrt: argument must be non-negative")
		}
		return math.Sqrt(x), nil
	})
}

// Sign returns the definition for sign(x): -1, 0, or 1.
func Sign() functions.Def {
	return functions.Unary("sign", "sign of x", func(x float64) (float64, error) {
		switch {
		case x > 0:
			return 1, nil
		case x < 0:
			return -1, nil
		}
		return 0, nil
	})
}

// Clamp returns the definition for clamp(x, lo, hi).
func Clamp() functions.Def {
	return functions.Def{
		Name: "clamp",
		Doc:  "x limited to the range [lo, hi]",
		Overloads: []functions.Overload{{
			Params: []types.Type{types.Num, types.Num, types.Num},
			Return: types.Num,
			Fn: func(_ functions.Env, args ...types.Value) (types.Value, error) {
				x, lo, hi := num(args[0]), num(args[1]), num(args[2])
				if lo > hi {
					return nil, fmt.Errorf("clamp: lo must not exceed hi")
				}
				return types.Number(math.Max(lo, math.Min(hi, x))), nil
			},
		}},
	}
}

// ── helpers ────────────────────────────────────────────────────────────────

func aggregate(name, doc string, fn func([]float64) float64) functions.Def {
	return functions.Def{
		Name: name,
		Doc:  doc,
		Overloads: []functions.Overload{{
			Params: []types.Type{types.NumArr},
			Return: types.Num,
			Fn: func(_ functions.Env, args ...types.Value) (types.Value, error) {
				nums := functions.Numbers(args[0])
				if len(nums) == 0 {
					return nil, fmt.Errorf("%s: empty array", name)
				}
				return types.Number(fn(nums)), nil
			},
		}},
	}
}

// quantile interpolates linearly between the closest ranks of sorted
// (PERCENTILE.INC). p is in [0, 1].
func quantile(sorted []float64, p float64) float64 {
	idx := p * float64(len(sorted)-1)
	lo, hi := int(math.Floor(idx)), int(math.Ceil(idx))
	if lo == hi {
		return sorted[lo]
	}
	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

func sortedCopy(nums []float64) []float64 {
	sorted := make([]float64, len(nums))
	copy(sorted, nums)
	sort.Float64s(sorted)
	return sorted
}

func num(v types.Value) float64 {
	return float64(v.(types.Number))
}
