package parser

import (
	"math"
	"strconv"
	"strings"
)

// TokenType represents the type of a lexical token.
type TokenType uint8

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenIllegalCharacter
	TokenIllegalID

	// Literals and names
	TokenId     // sum_1
	TokenNumber // 12, 2.5, .5, 1.

	// Type keywords
	TokenNum  // num
	TokenBool // bool

	// Boolean keywords
	TokenTrue  // true
	TokenFalse // false

	// Grouping symbols
	TokenOpenPar      // (
	TokenClosePar     // )
	TokenOpenBracket  // [
	TokenCloseBracket // ]
	TokenOpenBrace    // {
	TokenCloseBrace   // }

	// Basic symbols
	TokenQuote     // '
	TokenComma     // ,
	TokenAssign    // :=
	TokenSemicolon // ;
	TokenColon     // :

	// Operators
	TokenNot   // !
	TokenPower // ^
	TokenMult  // *
	TokenDiv   // /
	TokenMod   // %
	TokenPlus  // +
	TokenMinus // -
	TokenLT    // <
	TokenLE    // <=
	TokenGE    // >=
	TokenGT    // >
	TokenEq    // =
	TokenNE    // <>
	TokenAnd   // &&
	TokenOr    // ||
)

var tokenNames = [...]string{
	TokenEOF:              "TkEOF",
	TokenIllegalCharacter: "IllegalCharacter",
	TokenIllegalID:        "IllegalID",
	TokenId:               "TkId",
	TokenNumber:           "TkNumber",
	TokenNum:              "TkNum",
	TokenBool:             "TkBool",
	TokenTrue:             "TkTrue",
	TokenFalse:            "TkFalse",
	TokenOpenPar:          "TkOpenPar",
	TokenClosePar:         "TkClosePar",
	TokenOpenBracket:      "TkOpenBracket",
	TokenCloseBracket:     "TkCloseBracket",
	TokenOpenBrace:        "TkOpenBrace",
	TokenCloseBrace:       "TkCloseBrace",
	TokenQuote:            "TkQuote",
	TokenComma:            "TkComma",
	TokenAssign:           "TkAssign",
	TokenSemicolon:        "TkSemicolon",
	TokenColon:            "TkColon",
	TokenNot:              "TkNot",
	TokenPower:            "TkPower",
	TokenMult:             "TkMult",
	TokenDiv:              "TkDiv",
	TokenMod:              "TkMod",
	TokenPlus:             "TkPlus",
	TokenMinus:            "TkMinus",
	TokenLT:               "TkLT",
	TokenLE:               "TkLE",
	TokenGE:               "TkGE",
	TokenGT:               "TkGT",
	TokenEq:               "TkEq",
	TokenNE:               "TkNE",
	TokenAnd:              "TkAnd",
	TokenOr:               "TkOr",
}

// String returns the token kind name used in lex listings.
func (tt TokenType) String() string {
	if int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return "(unknown)"
}

// Token represents a lexical token in a Stokhos statement.
type Token struct {
	Type   TokenType // Type of the token
	Value  string    // Literal text of the token
	Column int       // 1-based starting column
}

// String renders the token as it appears in lex listings:
// the kind name, plus the literal for identifiers and numbers.
func (t Token) String() string {
	switch t.Type {
	case TokenId, TokenIllegalID, TokenIllegalCharacter:
		return t.Type.String() + "(" + strconv.Quote(t.Value) + ")"
	case TokenNumber:
		return t.Type.String() + "(" + numberLiteral(t.Value) + ")"
	}
	return t.Type.String()
}

// numberLiteral normalises a number lexeme: digit-only literals print as
// integers, anything with a dot prints as a float that always carries a
// fractional part or an exponent (".2" is 0.2, "1." is 1.0).
func numberLiteral(lit string) string {
	if !strings.Contains(lit, ".") {
		if trimmed := strings.TrimLeft(lit, "0"); trimmed != "" {
			return trimmed
		}
		return "0"
	}

	v, _ := strconv.ParseFloat(lit, 64) // overflow yields +Inf
	if math.IsInf(v, 0) {
		return "inf"
	}
	if abs := math.Abs(v); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// symbols1 maps single-character symbols to token types.
var symbols1 = [...]TokenType{
	'(':  TokenOpenPar,
	')':  TokenClosePar,
	'[':  TokenOpenBracket,
	']':  TokenCloseBracket,
	'{':  TokenOpenBrace,
	'}':  TokenCloseBrace,
	'\'': TokenQuote,
	',':  TokenComma,
	';':  TokenSemicolon,
	':':  TokenColon,
	'!':  TokenNot,
	'^':  TokenPower,
	'*':  TokenMult,
	'/':  TokenDiv,
	'%':  TokenMod,
	'+':  TokenPlus,
	'-':  TokenMinus,
	'<':  TokenLT,
	'>':  TokenGT,
	'=':  TokenEq,
}

// runeTokenType pairs a rune with its corresponding token type.
type runeTokenType struct {
	r  rune
	tt TokenType
}

// symbols2 maps two-character symbol sequences to token types.
// The key is the first character of the sequence.
var symbols2 = [...][]runeTokenType{
	':': {{'=', TokenAssign}},
	'<': {{'=', TokenLE}, {'>', TokenNE}},
	'>': {{'=', TokenGE}},
	'&': {{'&', TokenAnd}},
	'|': {{'|', TokenOr}},
}

const (
	symbol1Count = rune(len(symbols1))
	symbol2Count = rune(len(symbols2))
)

// lookupSymbol1 returns the token type for a single-character symbol.
// Returns 0 if the rune is not a valid symbol.
func lookupSymbol1(r rune) TokenType {
	if r < 0 || r >= symbol1Count {
		return 0
	}
	return symbols1[r]
}

// lookupSymbol2 returns possible two-character symbol completions.
// Returns nil if the rune cannot start a two-character symbol.
func lookupSymbol2(r rune) []runeTokenType {
	if r < 0 || r >= symbol2Count {
		return nil
	}
	return symbols2[r]
}

// lookupKeyword returns the token type for a keyword.
// Returns 0 if the string is not a recognized keyword.
func lookupKeyword(s string) TokenType {
	switch s {
	case "num":
		return TokenNum
	case "bool":
		return TokenBool
	case "true":
		return TokenTrue
	case "false":
		return TokenFalse
	default:
		return 0
	}
}
