package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrolain/gostokhos/pkg/evaluator"
	"github.com/sandrolain/gostokhos/pkg/functions"
	"github.com/sandrolain/gostokhos/pkg/parser"
	"github.com/sandrolain/gostokhos/pkg/symtable"
	"github.com/sandrolain/gostokhos/pkg/types"
	"github.com/sandrolain/gostokhos/pkg/validator"
)

// newValidator returns a validator over the builtins plus x: num and
// a: [num].
func newValidator(t *testing.T) *validator.Validator {
	t.Helper()
	tbl := symtable.New(evaluator.Builtins()...)
	require.True(t, tbl.Insert("x", symtable.NewVariable(types.Num, symtable.ValueForm(types.Number(1)))))
	require.True(t, tbl.Insert("a", symtable.NewVariable(types.NumArr,
		symtable.ValueForm(types.Array{types.Number(1), types.Number(2)}))))
	return validator.New(tbl)
}

func check(t *testing.T, v *validator.Validator, src string) (types.Type, error) {
	t.Helper()
	stmt, err := parser.Parse(src)
	require.NoError(t, err, src)
	return v.Check(stmt.AST())
}

func TestAcceptedTypes(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		src  string
		want types.Type
	}{
		{"1 + 2 * 3", types.Num},
		{"-x", types.Num},
		{"!true && false", types.Bool},
		{"x = 1", types.Bool},
		{"x < 2", types.Bool},
		{"[1, 2]", types.NumArr},
		{"[true]", types.BoolArr},
		{"[]", types.AnyArray},
		{"a[0]", types.Num},
		{"'x + 1'", types.Num},
		{"length([true])", types.Num},
		{"length([])", types.Num},
		{"if(true, [], [1])", types.NumArr},
		{"if(x > 0, 1, 2)", types.Num},
		{"type(a)", types.TypeT},
		{"ltype(a[0])", types.TypeT},
		{"formula(a[0])", types.Num},
		{"formula(a)", types.NumArr},
		{"tick()", types.Num},
		{"reset()", types.Bool},
		{"array(3, false)", types.BoolArr},
		{"histogram(x, 10, 2, 0, 1)", types.NumArr},
		{"histogram('uniform()', 10, 2, 0, 1)", types.NumArr},
		{"num y := 2;", types.Void},
		{"[num] e := [];", types.Void},
		{"x := 3;", types.Void},
		{"a := [];", types.Void},
		{"a[0] := 'uniform()';", types.Void},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := check(t, v, tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSemanticErrors(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		src  string
		code types.ErrorCode
	}{
		{"1 + true", types.ErrTypeMismatch},
		{"!1", types.ErrTypeMismatch},
		{"true < false", types.ErrTypeMismatch},
		{"[1] = [1]", types.ErrTypeMismatch},
		{"[1, true]", types.ErrNonHomogeneous},
		{"[[1]]", types.ErrNestedArray},
		{"[][0]", types.ErrUnresolvedArray},
		{"x[0]", types.ErrNotAnArray},
		{"a[true]", types.ErrBadArrayAccess},
		{"y", types.ErrUndefinedSymbol},
		{"nope()", types.ErrUndefinedSymbol},
		{"uniform", types.ErrFunctionAsValue},
		{"x()", types.ErrNotAFunction},
		{"floor(1, 2)", types.ErrArgumentCount},
		{"floor(true)", types.ErrArgumentType},
		{"tick(1)", types.ErrArgumentCount},
		{"if(1, 2, 3)", types.ErrArgumentType},
		{"if(true, 1, false)", types.ErrTypeMismatch},
		{"ltype(1)", types.ErrNoLvalue},
		{"formula(x + 1)", types.ErrNoLvalue},
		{"array(2, [1])", types.ErrNestedArray},
		{"histogram(x, 10, 2, 0)", types.ErrArgumentCount},
		{"num x := 2;", types.ErrAlreadyDefined},
		{"bool b := 1;", types.ErrTypeMismatch},
		{"x := true;", types.ErrTypeMismatch},
		{"z := 1;", types.ErrUndefinedSymbol},
		{"uniform := 1;", types.ErrAssignToFunction},
		{"a[0] := true;", types.ErrTypeMismatch},
		{"x[0] := 1;", types.ErrNotAnArray},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := check(t, v, tt.src)
			require.Error(t, err)

			var serr *types.Error
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, types.KindSemantic, serr.Kind)
			assert.Equal(t, tt.code, serr.Code, serr.Error())
		})
	}
}

func TestOverloadReportsLastTried(t *testing.T) {
	tbl := symtable.New(evaluator.Builtins()...)
	require.True(t, tbl.Register(functions.Def{
		Name: "f",
		Overloads: []functions.Overload{
			{Params: []types.Type{types.Num}, Return: types.Num},
			{Params: []types.Type{types.BoolArr}, Return: types.Num},
		},
	}))
	v := validator.New(tbl)

	got, err := check(t, v, "f(1)")
	require.NoError(t, err)
	assert.Equal(t, types.Num, got)

	_, err = check(t, v, "f([1])")
	var serr *types.Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, types.ErrArgumentType, serr.Code)
	assert.Contains(t, err.Error(), `argument 1 of "f" must be [bool], got [num]`)

	_, err = check(t, v, "f(1, 2)")
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, types.ErrArgumentCount, serr.Code)
	assert.Contains(t, err.Error(), "expects 1 argument(s), got 2")
}

func TestErrorColumns(t *testing.T) {
	v := newValidator(t)

	_, err := check(t, v, "1 + (2 + true)")
	var serr *types.Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 6, serr.Column)
}

func TestSuggestions(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		src     string
		suggest string
	}{
		{"unifrom()", `did you mean "uniform"?`},
		{"lenght([1])", `did you mean "length"?`},
		{"pii", `did you mean "pi"?`},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := check(t, v, tt.src)
			assert.ErrorContains(t, err, tt.suggest)
		})
	}

	for _, src := range []string{"zebra", "y", "q + 1"} {
		_, err := check(t, v, src)
		require.Error(t, err)
		assert.NotContains(t, err.Error(), "did you mean", src)
	}
}

func TestTypeOfDoesNotMutate(t *testing.T) {
	v := newValidator(t)

	_, err := check(t, v, "num y := 1;")
	require.NoError(t, err)
	_, err = check(t, v, "y")
	assert.Error(t, err, "validation never binds names")
}

func TestIsLvalue(t *testing.T) {
	v := newValidator(t)

	for src, want := range map[string]bool{
		"x":       true,
		"a[1]":    true,
		"x + 1":   false,
		"uniform": false,
		"y":       false,
		"[1][0]":  false,
	} {
		stmt, err := parser.Parse(src)
		require.NoError(t, err)
		expr := stmt.AST().(*types.ExprStmt).Expr
		assert.Equal(t, want, v.IsLvalue(expr), src)
	}
}
