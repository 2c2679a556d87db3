package parser_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrolain/gostokhos/pkg/parser"
	"github.com/sandrolain/gostokhos/pkg/types"
)

func TestParseTree(t *testing.T) {
	tests := []struct {
		input string
		want  types.Stmt
	}{
		{
			input: "1 + 2 * 3",
			want: &types.ExprStmt{Expr: &types.BinaryOp{
				Op:  types.OpAdd,
				LHS: &types.NumberLit{Value: 1, Literal: "1", Col: 1},
				RHS: &types.BinaryOp{
					Op:  types.OpMul,
					LHS: &types.NumberLit{Value: 2, Literal: "2", Col: 5},
					RHS: &types.NumberLit{Value: 3, Literal: "3", Col: 9},
					Col: 5,
				},
				Col: 1,
			}},
		},
		{
			input: "-2^2",
			want: &types.ExprStmt{Expr: &types.UnaryOp{
				Op: types.OpSub,
				Operand: &types.BinaryOp{
					Op:  types.OpPow,
					LHS: &types.NumberLit{Value: 2, Literal: "2", Col: 2},
					RHS: &types.NumberLit{Value: 2, Literal: "2", Col: 4},
					Col: 2,
				},
				Col: 1,
			}},
		},
		{
			input: "num x := 'uniform()';",
			want: &types.Definition{
				DeclaredType: types.Num,
				Name:         "x",
				RHS: &types.Quoted{
					Inner: &types.FunctionCall{Name: "uniform", Col: 11},
					Col:   10,
				},
				Col: 1,
			},
		},
		{
			input: "a[1] := 9;",
			want: &types.ArrayElementAssignment{
				Base:  &types.Identifier{Name: "a", Col: 1},
				Index: &types.NumberLit{Value: 1, Literal: "1", Col: 3},
				RHS:   &types.NumberLit{Value: 9, Literal: "9", Col: 9},
				Col:   1,
			},
		},
		{
			input: "x := x >= .5;",
			want: &types.Assignment{
				Name: "x",
				RHS: &types.Comparison{
					Op:  types.OpGE,
					LHS: &types.Identifier{Name: "x", Col: 6},
					RHS: &types.NumberLit{Value: 0.5, Literal: ".5", Col: 11},
					Col: 6,
				},
				Col: 1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			stmt, err := parser.Parse(tt.input)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, stmt.AST()); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseDump(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2^3^2", "BinOp(^, Number(2), BinOp(^, Number(3), Number(2)))"},
		{"1 - 2 - 3", "BinOp(-, BinOp(-, Number(1), Number(2)), Number(3))"},
		{"!true || false && true", "BinOp(||, UnOp(!, Boolean(true)), BinOp(&&, Boolean(false), Boolean(true)))"},
		{"''2''", "Quote(Quote(Number(2)))"},
		{"'2' + '1'", "BinOp(+, Quote(Number(2)), Quote(Number(1)))"},
		{"x := x + 1;", "Assign(Id(x), BinOp(+, Id(x), Number(1)))"},
		{"[bool] b := [];", "Def([bool], Id(b), Array())"},
		{"[num] a := [1, 2.5];", "Def([num], Id(a), Array(Number(1), Number(2.5)))"},
		{"1 < 2 = true", "Comp(=, Comp(<, Number(1), Number(2)), Boolean(true))"},
		{"(1 + 2) * 3", "BinOp(*, BinOp(+, Number(1), Number(2)), Number(3))"},
		{"-3-2^2 <= 3", "Comp(<=, BinOp(-, UnOp(-, Number(3)), BinOp(^, Number(2), Number(2))), Number(3))"},
		{
			"if(true, [1,2,3], [1,2,3])[2] + 3",
			"BinOp(+, Access(Call(if, Boolean(true), Array(Number(1), Number(2), Number(3)), Array(Number(1), Number(2), Number(3))), Number(2)), Number(3))",
		},
		{"histogram('uniform()', 10, 2, 0, 1)", "Call(histogram, Quote(Call(uniform)), Number(10), Number(2), Number(0), Number(1))"},
		{"[1,2,3][0]", "Access(Array(Number(1), Number(2), Number(3)), Number(0))"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			stmt, err := parser.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, types.DumpStmt(stmt.AST()))
		})
	}
}

func TestParseSourceRendering(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"( x+1 )*2", "(x + 1) * 2"},
		{"x - (y - z)", "x - (y - z)"},
		{"(x - y) - z", "x - y - z"},
		{"(2^3)^2", "(2 ^ 3) ^ 2"},
		{"2^3^2", "2 ^ 3 ^ 2"},
		{"-(2^2)", "-2 ^ 2"},
		{"(-2)^2", "(-2) ^ 2"},
		{"'uniform( )' * 2", "'uniform()' * 2"},
		{"floor(3.50 , 1.)", "floor(3.5, 1)"},
		{"(1 < 2) = (3 < 4)", "1 < 2 = 3 < 4"},
		{"!(a && b)", "!(a && b)"},
		{"a[i + 1]", "a[i + 1]"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			stmt, err := parser.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stmt.AST().String())
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input   string
		wantErr string
		kind    types.ErrorKind
	}{
		{"num x := 3", "missing semicolon at end (column 11)", types.KindParse},
		{"2;", `invalid syntax at ";" (column 2)`, types.KindParse},
		{"num := 3;", "identifier expected (column 5)", types.KindParse},
		{"x := ;", "expression expected (column 6)", types.KindParse},
		{"3 +", "expression expected (column 4)", types.KindParse},
		{"(1 + 2", "unbalanced parentheses", types.KindParse},
		{"1 + 2)", "unbalanced parentheses", types.KindParse},
		{"floor(1, 2", "unbalanced parentheses", types.KindParse},
		{"[1, 2", "unclosed array constructor (unbalanced brackets) (column 1)", types.KindParse},
		{"1]", "unopened array constructor (unbalanced brackets) (column 2)", types.KindParse},
		{"true[2]", "invalid expression access (column 5)", types.KindParse},
		{"1 + 2 := 3;", "invalid assignment target (column 1)", types.KindParse},
		{"1 < 2 < 3", "chained comparison (column 7)", types.KindParse},
		{"1 = 2 <> 3", "chained comparison (column 7)", types.KindParse},
		{"", "empty statement", types.KindParse},
		{"num x := 2; 3", `invalid syntax at "3" (column 13)`, types.KindParse},
		{"'1 + 2", "invalid syntax at end of line", types.KindParse},
		{"floor(1 2)", `invalid syntax at "2" (column 9)`, types.KindParse},
		{"x @ 1", `invalid character ("@") (column 3)`, types.KindLex},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := parser.Parse(tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
			assert.True(t, types.IsKind(err, tt.kind), "unexpected kind for %v", err)
		})
	}
}

func TestParseMaxDepth(t *testing.T) {
	src := "1"
	for i := 0; i < 20; i++ {
		src = "(" + src + ")"
	}

	_, err := parser.Compile(src, parser.WithMaxDepth(10))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nesting too deep")

	_, err = parser.Compile(src)
	require.NoError(t, err)
}

func TestStatementIsBinding(t *testing.T) {
	def, err := parser.Parse("bool b := true;")
	require.NoError(t, err)
	assert.True(t, def.IsBinding())
	assert.Equal(t, "bool b := true;", def.Source())

	expr, err := parser.Parse("b")
	require.NoError(t, err)
	assert.False(t, expr.IsBinding())
}
