package parser

import (
	"unicode/utf8"

	"github.com/sandrolain/gostokhos/pkg/types"
)

const eof = -1

// Lexer converts a Stokhos statement into a sequence of tokens.
// The implementation is based on Rob Pike's "Lexical Scanning in Go" technique.
//
// Illegal characters and identifiers do not stop the scan: they are returned
// as TokenIllegalCharacter and TokenIllegalID tokens and the first one is
// remembered as the lexer error.
type Lexer struct {
	input   string // Input string being scanned
	length  int    // Length of input string
	start   int    // Start position of current token
	current int    // Current position in input
	width   int    // Width of last rune read
	err     error  // First error encountered
}

// NewLexer creates a new lexer from the provided input string.
// The input is tokenized by successive calls to the Next method.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		length: len(input),
	}
}

// Tokenize scans the whole input and returns every token except the final
// TokenEOF, together with the first lexical error, if any.
func Tokenize(input string) ([]Token, error) {
	l := NewLexer(input)
	var tokens []Token
	for {
		t := l.Next()
		if t.Type == TokenEOF {
			break
		}
		tokens = append(tokens, t)
	}
	return tokens, l.Error()
}

// Next returns the next token from the input.
// When the end of the input is reached, Next returns TokenEOF for all subsequent calls.
func (l *Lexer) Next() Token {
	l.skipWhitespace()

	ch := l.nextRune()
	if ch == eof {
		return l.eof()
	}

	// Check for two-character symbols first (e.g., :=, <=, <>)
	if rts := lookupSymbol2(ch); rts != nil {
		for _, rt := range rts {
			if l.acceptRune(rt.r) {
				return l.newToken(rt.tt)
			}
		}
	}

	// Number literals, including the .5 form
	if isDigit(ch) || ch == '.' {
		l.backup()
		return l.scanNumber()
	}

	// Check for single-character symbols
	if tt := lookupSymbol1(ch); tt > 0 {
		return l.newToken(tt)
	}

	if isIDStart(ch) {
		l.backup()
		return l.scanName()
	}

	return l.illegal(TokenIllegalCharacter)
}

// Error returns the first error encountered during lexing, if any.
func (l *Lexer) Error() error {
	return l.err
}

// scanNumber reads a number literal from the current position.
// Format: [0-9]+(\.[0-9]*)? | \.[0-9]+
// A number immediately followed by identifier characters is an illegal
// identifier such as 2abc or .abc.
func (l *Lexer) scanNumber() Token {
	digits := l.acceptAll(isDigit)
	if l.acceptRune('.') {
		if l.acceptAll(isDigit) {
			digits = true
		}
	}

	if l.peekIs(isIDChar) {
		l.acceptAll(isIDChar)
		return l.illegal(TokenIllegalID)
	}
	if !digits {
		// lone dot
		return l.illegal(TokenIllegalCharacter)
	}
	return l.newToken(TokenNumber)
}

// scanName reads an identifier or keyword from the current position.
// Keywords are: num, bool, true, false
func (l *Lexer) scanName() Token {
	l.acceptAll(isIDChar)

	t := l.newToken(TokenId)
	if tt := lookupKeyword(t.Value); tt > 0 {
		t.Type = tt
	}
	return t
}

// Helper methods

func (l *Lexer) eof() Token {
	return Token{
		Type:   TokenEOF,
		Column: l.column(l.current),
	}
}

func (l *Lexer) illegal(tt TokenType) Token {
	t := l.newToken(tt)
	if l.err == nil {
		code, format := types.ErrIllegalCharacter, "invalid character (%q)"
		if tt == TokenIllegalID {
			code, format = types.ErrIllegalIdentifier, "illegal identifier (%q)"
		}
		l.err = types.Errorf(types.KindLex, code, format, t.Value).WithColumn(t.Column)
	}
	return t
}

func (l *Lexer) newToken(tt TokenType) Token {
	t := Token{
		Type:   tt,
		Value:  l.input[l.start:l.current],
		Column: l.column(l.start),
	}
	l.width = 0
	l.start = l.current
	return t
}

// column converts a byte offset into a 1-based rune column.
func (l *Lexer) column(offset int) int {
	return utf8.RuneCountInString(l.input[:offset]) + 1
}

func (l *Lexer) nextRune() rune {
	if l.current >= l.length {
		l.width = 0
		return eof
	}

	r, w := utf8.DecodeRuneInString(l.input[l.current:])
	l.width = w
	l.current += w
	return r
}

func (l *Lexer) backup() {
	l.current -= l.width
}

func (l *Lexer) ignore() {
	l.start = l.current
}

func (l *Lexer) peekIs(isValid func(rune) bool) bool {
	ok := isValid(l.nextRune())
	l.backup()
	return ok
}

func (l *Lexer) acceptRune(r rune) bool {
	return l.accept(func(c rune) bool {
		return c == r
	})
}

func (l *Lexer) accept(isValid func(rune) bool) bool {
	if isValid(l.nextRune()) {
		return true
	}
	l.backup()
	return false
}

func (l *Lexer) acceptAll(isValid func(rune) bool) bool {
	var matched bool
	for l.accept(isValid) {
		matched = true
	}
	return matched
}

func (l *Lexer) skipWhitespace() {
	l.acceptAll(isWhitespace)
	l.ignore()
}

// Character classification functions

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIDStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIDChar(r rune) bool {
	return isIDStart(r) || isDigit(r)
}
