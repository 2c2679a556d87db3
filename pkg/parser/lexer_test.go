package parser_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrolain/gostokhos/pkg/parser"
	"github.com/sandrolain/gostokhos/pkg/types"
)

func listing(tokens []parser.Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "definition",
			input: "num _sum := 25",
			want:  `TkNum, TkId("_sum"), TkAssign, TkNumber(25)`,
		},
		{
			name:  "array type and logic",
			input: "[bool] ok := true && !false;",
			want:  `TkOpenBracket, TkBool, TkCloseBracket, TkId("ok"), TkAssign, TkTrue, TkAnd, TkNot, TkFalse, TkSemicolon`,
		},
		{
			name:  "number forms",
			input: ".2 + 2.1 - 1.",
			want:  `TkNumber(0.2), TkPlus, TkNumber(2.1), TkMinus, TkNumber(1.0)`,
		},
		{
			name:  "number literals normalised",
			input: ".2 2.1 1. 007 0 0.00001 20000000000000000.",
			want:  `TkNumber(0.2), TkNumber(2.1), TkNumber(1.0), TkNumber(7), TkNumber(0), TkNumber(1e-05), TkNumber(2e+16)`,
		},
		{
			name:  "comparison operators",
			input: "a<=b<>c>=d<e>f=g",
			want:  `TkId("a"), TkLE, TkId("b"), TkNE, TkId("c"), TkGE, TkId("d"), TkLT, TkId("e"), TkGT, TkId("f"), TkEq, TkId("g")`,
		},
		{
			name:  "arithmetic",
			input: "2^3*4/5%6",
			want:  `TkNumber(2), TkPower, TkNumber(3), TkMult, TkNumber(4), TkDiv, TkNumber(5), TkMod, TkNumber(6)`,
		},
		{
			name:  "punctuation",
			input: "'x'{}:,()||",
			want:  `TkQuote, TkId("x"), TkQuote, TkOpenBrace, TkCloseBrace, TkColon, TkComma, TkOpenPar, TkClosePar, TkOr`,
		},
		{
			name:  "whitespace only",
			input: " \t ",
			want:  ``,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := parser.Tokenize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, listing(tokens))
		})
	}
}

func TestTokenizeColumns(t *testing.T) {
	tokens, err := parser.Tokenize("x  := 12")
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, 1, tokens[0].Column)
	assert.Equal(t, 4, tokens[1].Column)
	assert.Equal(t, 7, tokens[2].Column)
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		input   string
		wantErr string
		code    types.ErrorCode
	}{
		{`x @ 2`, `invalid character ("@") (column 3)`, types.ErrIllegalCharacter},
		{`a & b`, `invalid character ("&") (column 3)`, types.ErrIllegalCharacter},
		{`2Hola`, `illegal identifier ("2Hola") (column 1)`, types.ErrIllegalIdentifier},
		{`1 + .hola`, `illegal identifier (".hola") (column 5)`, types.ErrIllegalIdentifier},
		{`x := 2 $ 3 @`, `invalid character ("$") (column 8)`, types.ErrIllegalCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := parser.Tokenize(tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())

			var serr *types.Error
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, types.KindLex, serr.Kind)
			assert.Equal(t, tt.code, serr.Code)
		})
	}
}

func TestTokenizeContinuesAfterIllegalToken(t *testing.T) {
	tokens, err := parser.Tokenize("@ 2abc x")
	require.Error(t, err)
	assert.Equal(t, `IllegalCharacter("@"), IllegalID("2abc"), TkId("x")`, listing(tokens))
}
