package evaluator

import (
	"github.com/sandrolain/gostokhos/pkg/functions"
	"github.com/sandrolain/gostokhos/pkg/types"
)

func fnLength(_ functions.Env, args ...types.Value) (types.Value, error) {
	return types.Number(len(args[0].(types.Array))), nil
}

func fnSum(_ functions.Env, args ...types.Value) (types.Value, error) {
	sum := 0.0
	for _, n := range functions.Numbers(args[0]) {
		sum += n
	}
	return types.Number(sum), nil
}

func fnAvg(_ functions.Env, args ...types.Value) (types.Value, error) {
	nums := functions.Numbers(args[0])
	if len(nums) == 0 {
		return nil, types.NewError(types.KindRuntime, types.ErrDomain, "avg of empty array")
	}
	sum := 0.0
	for _, n := range nums {
		sum += n
	}
	return types.Number(sum / float64(len(nums))), nil
}
