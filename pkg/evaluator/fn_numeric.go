package evaluator

import (
	"math"
	"time"

	"github.com/sandrolain/gostokhos/pkg/functions"
	"github.com/sandrolain/gostokhos/pkg/types"
)

func fnUniform(env functions.Env, _ ...types.Value) (types.Value, error) {
	return types.Number(env.Rand().Float64()), nil
}

func fnFloor(_ functions.Env, args ...types.Value) (types.Value, error) {
	return types.Number(math.Floor(float64(args[0].(types.Number)))), nil
}

func fnPi(_ functions.Env, _ ...types.Value) (types.Value, error) {
	return types.Number(math.Pi), nil
}

// clock is implemented by environments that control the current time.
type clock interface {
	Now() time.Time
}

func fnNow(env functions.Env, _ ...types.Value) (types.Value, error) {
	t := time.Now()
	if c, ok := env.(clock); ok {
		t = c.Now()
	}
	return types.Number(float64(t.UnixNano()) / 1e9), nil
}

func fnLn(_ functions.Env, args ...types.Value) (types.Value, error) {
	x := float64(args[0].(types.Number))
	if x <= 0 {
		return nil, types.NewError(types.KindRuntime, types.ErrDomain, "ln domain error")
	}
	return types.Number(math.Log(x)), nil
}

func fnExp(_ functions.Env, args ...types.Value) (types.Value, error) {
	return types.Number(math.Exp(float64(args[0].(types.Number)))), nil
}

func fnSin(_ functions.Env, args ...types.Value) (types.Value, error) {
	return types.Number(math.Sin(float64(args[0].(types.Number)))), nil
}

func fnCos(_ functions.Env, args ...types.Value) (types.Value, error) {
	return types.Number(math.Cos(float64(args[0].(types.Number)))), nil
}
