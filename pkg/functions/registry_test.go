package functions_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrolain/gostokhos/pkg/functions"
	"github.com/sandrolain/gostokhos/pkg/types"
)

func TestSignature(t *testing.T) {
	def := functions.Def{
		Name: "length",
		Overloads: []functions.Overload{
			{Params: []types.Type{types.NumArr}, Return: types.Num},
			{Params: []types.Type{types.BoolArr}, Return: types.Num},
		},
	}
	assert.Equal(t, "length([num]) -> num; length([bool]) -> num", def.Signature())

	special := functions.Def{Name: "tick", Special: true, Usage: "tick() -> num"}
	assert.Equal(t, "tick() -> num", special.Signature())
}

func TestUnary(t *testing.T) {
	def := functions.Unary("half", "x / 2", func(x float64) (float64, error) {
		if x < 0 {
			return 0, errors.New("half: negative")
		}
		return x / 2, nil
	})
	require.Len(t, def.Overloads, 1)
	assert.Equal(t, "half(num) -> num", def.Signature())

	fn := def.Overloads[0].Fn
	v, err := fn(nil, types.Number(3))
	require.NoError(t, err)
	assert.Equal(t, types.Number(1.5), v)

	_, err = fn(nil, types.Number(-1))
	assert.EqualError(t, err, "half: negative")
}

func TestNumbers(t *testing.T) {
	assert.Equal(t, []float64{1, 2.5}, functions.Numbers(types.Array{types.Number(1), types.Number(2.5)}))
	assert.Empty(t, functions.Numbers(types.Array{}))
}
