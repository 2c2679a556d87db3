package parser

import (
	"fmt"
	"strconv"

	"github.com/sandrolain/gostokhos/pkg/types"
)

// Parser implements a recursive descent parser for Stokhos statements.
// Expressions are parsed with Pratt's "Top Down Operator Precedence"
// algorithm to handle operator precedence correctly.
type Parser struct {
	input   string
	tokens  []Token
	eofTok  Token
	pos     int
	current Token
	lexErr  error
	depth   int
	opts    CompileOptions
}

// NewParser creates a new parser for the given input string.
func NewParser(input string, opts ...CompileOption) *Parser {
	options := CompileOptions{
		MaxDepth: 256,
	}
	for _, opt := range opts {
		opt(&options)
	}

	l := NewLexer(input)
	p := &Parser{
		input: input,
		opts:  options,
	}
	for {
		t := l.Next()
		if t.Type == TokenEOF {
			p.eofTok = t
			break
		}
		p.tokens = append(p.tokens, t)
	}
	p.lexErr = l.Error()

	// Read the first token
	p.pos = -1
	p.advance()

	return p
}

// Parse parses one statement and returns it.
func (p *Parser) Parse() (*types.Statement, error) {
	if p.lexErr != nil {
		return nil, p.lexErr
	}

	if p.current.Type == TokenEOF {
		return nil, types.NewError(types.KindParse, types.ErrEmptyStatement, "empty statement")
	}

	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	return types.NewStatement(stmt, p.input), nil
}

// infixPrecedence returns the left binding power of a token in infix position.
// Tokens that cannot continue an expression return PrecLowest.
func infixPrecedence(tt TokenType) int {
	switch tt {
	case TokenOr:
		return types.PrecOr
	case TokenAnd:
		return types.PrecAnd
	case TokenEq, TokenNE:
		return types.PrecEquality
	case TokenLT, TokenLE, TokenGT, TokenGE:
		return types.PrecRelational
	case TokenPlus, TokenMinus:
		return types.PrecAdditive
	case TokenMult, TokenDiv, TokenMod:
		return types.PrecMultiplicative
	case TokenPower:
		return types.PrecPower
	case TokenOpenBracket:
		return types.PrecPostfix
	}
	return types.PrecLowest
}

var binaryOps = map[TokenType]types.Op{
	TokenOr:    types.OpOr,
	TokenAnd:   types.OpAnd,
	TokenEq:    types.OpEq,
	TokenNE:    types.OpNE,
	TokenLT:    types.OpLT,
	TokenLE:    types.OpLE,
	TokenGT:    types.OpGT,
	TokenGE:    types.OpGE,
	TokenPlus:  types.OpAdd,
	TokenMinus: types.OpSub,
	TokenMult:  types.OpMul,
	TokenDiv:   types.OpDiv,
	TokenMod:   types.OpMod,
	TokenPower: types.OpPow,
}

// advance moves to the next token.
func (p *Parser) advance() {
	p.pos++
	p.current = p.peek(0)
}

// peek returns the token n positions after the current one.
func (p *Parser) peek(n int) Token {
	if i := p.pos + n; i < len(p.tokens) {
		return p.tokens[i]
	}
	return p.eofTok
}

// parseStatement parses a definition, an assignment or a bare expression.
func (p *Parser) parseStatement() (types.Stmt, error) {
	if p.atTypeName() {
		return p.parseDefinition()
	}

	expr, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}

	if p.current.Type == TokenEOF {
		return &types.ExprStmt{Expr: expr}, nil
	}

	if p.current.Type != TokenAssign {
		return nil, p.unexpected()
	}
	p.advance()

	rhs, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if err := p.expectEnd(); err != nil {
		return nil, err
	}

	switch target := expr.(type) {
	case *types.Identifier:
		return &types.Assignment{Name: target.Name, RHS: rhs, Col: target.Col}, nil
	case *types.ArrayAccess:
		if base, ok := target.Base.(*types.Identifier); ok {
			return &types.ArrayElementAssignment{Base: base, Index: target.Index, RHS: rhs, Col: target.Col}, nil
		}
	}
	return nil, p.error(types.ErrInvalidTarget, "invalid assignment target", expr.Column())
}

// atTypeName reports whether the current tokens spell a type: num, bool, [num] or [bool].
func (p *Parser) atTypeName() bool {
	switch p.current.Type {
	case TokenNum, TokenBool:
		return true
	case TokenOpenBracket:
		next := p.peek(1).Type
		return next == TokenNum || next == TokenBool
	}
	return false
}

// parseDefinition parses `type id := expr ;`.
func (p *Parser) parseDefinition() (types.Stmt, error) {
	col := p.current.Column
	declared, err := p.parseType()
	if err != nil {
		return nil, err
	}

	if p.current.Type != TokenId {
		return nil, p.error(types.ErrIdentifierExpected, "identifier expected", p.current.Column)
	}
	name := p.current.Value
	p.advance()

	if p.current.Type != TokenAssign {
		return nil, p.unexpected()
	}
	p.advance()

	rhs, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if err := p.expectEnd(); err != nil {
		return nil, err
	}

	return &types.Definition{DeclaredType: declared, Name: name, RHS: rhs, Col: col}, nil
}

func (p *Parser) parseType() (types.Type, error) {
	switch p.current.Type {
	case TokenNum:
		p.advance()
		return types.Num, nil
	case TokenBool:
		p.advance()
		return types.Bool, nil
	}

	// [num] or [bool]
	open := p.current
	p.advance()
	elem := types.Num
	if p.current.Type == TokenBool {
		elem = types.Bool
	}
	p.advance()
	if p.current.Type != TokenCloseBracket {
		return types.Void, p.error(types.ErrUnbalancedBrackets, "unclosed array constructor (unbalanced brackets)", open.Column)
	}
	p.advance()
	return types.ArrayOf(elem), nil
}

// expectEnd consumes the terminating semicolon of a binding statement.
func (p *Parser) expectEnd() error {
	if p.current.Type == TokenEOF {
		return p.error(types.ErrMissingSemicolon, "missing semicolon at end", p.current.Column)
	}
	if p.current.Type != TokenSemicolon {
		return p.unexpected()
	}
	p.advance()
	if p.current.Type != TokenEOF {
		return p.unexpected()
	}
	return nil
}

// parseExpression parses an expression using Pratt's algorithm.
// rbp is the right binding power: parsing continues while the next operator binds tighter.
func (p *Parser) parseExpression(rbp int) (types.Expr, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.opts.MaxDepth > 0 && p.depth > p.opts.MaxDepth {
		return nil, p.error(types.ErrNestingTooDeep, "expression nesting too deep", p.current.Column)
	}

	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	for rbp < infixPrecedence(p.current.Type) {
		left, err = p.parseInfix(left)
		if err != nil {
			return nil, err
		}
	}

	return left, nil
}

// parsePrefix parses literals, names, calls, groupings and prefix operators.
func (p *Parser) parsePrefix() (types.Expr, error) {
	tok := p.current

	switch tok.Type {
	case TokenNumber:
		p.advance()
		f, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, p.error(types.ErrSyntax, fmt.Sprintf("invalid number %q", tok.Value), tok.Column)
		}
		return &types.NumberLit{Value: f, Literal: tok.Value, Col: tok.Column}, nil

	case TokenTrue, TokenFalse:
		p.advance()
		return &types.BooleanLit{Value: tok.Type == TokenTrue, Col: tok.Column}, nil

	case TokenId:
		p.advance()
		if p.current.Type == TokenOpenPar {
			return p.parseCall(tok)
		}
		return &types.Identifier{Name: tok.Value, Col: tok.Column}, nil

	case TokenPlus, TokenMinus, TokenNot:
		p.advance()
		operand, err := p.parseExpression(types.PrecUnary)
		if err != nil {
			return nil, err
		}
		op := types.OpNot
		switch tok.Type {
		case TokenPlus:
			op = types.OpAdd
		case TokenMinus:
			op = types.OpSub
		}
		return &types.UnaryOp{Op: op, Operand: operand, Col: tok.Column}, nil

	case TokenOpenPar:
		p.advance()
		inner, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		if p.current.Type != TokenClosePar {
			return nil, p.expectedClose(TokenClosePar, tok)
		}
		p.advance()
		return inner, nil

	case TokenOpenBracket:
		p.advance()
		elems, err := p.parseList(TokenCloseBracket, tok)
		if err != nil {
			return nil, err
		}
		return &types.ArrayLiteral{Elements: elems, Col: tok.Column}, nil

	case TokenQuote:
		p.advance()
		inner, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		if p.current.Type != TokenQuote {
			return nil, p.unexpected()
		}
		p.advance()
		return &types.Quoted{Inner: inner, Col: tok.Column}, nil

	case TokenEOF, TokenSemicolon, TokenComma, TokenAssign:
		return nil, p.error(types.ErrExpressionExpected, "expression expected", tok.Column)
	}

	return nil, p.unexpected()
}

// parseInfix parses binary operators and the postfix index operator.
func (p *Parser) parseInfix(left types.Expr) (types.Expr, error) {
	tok := p.current

	if tok.Type == TokenOpenBracket {
		switch left.(type) {
		case *types.NumberLit, *types.BooleanLit:
			return nil, p.error(types.ErrInvalidAccess, "invalid expression access", tok.Column)
		}
		p.advance()
		index, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		if p.current.Type != TokenCloseBracket {
			return nil, p.expectedClose(TokenCloseBracket, tok)
		}
		p.advance()
		return &types.ArrayAccess{Base: left, Index: index, Col: left.Column()}, nil
	}

	op := binaryOps[tok.Type]
	prec := op.Precedence()
	p.advance()

	rbp := prec
	if op == types.OpPow {
		// right associative
		rbp = prec - 1
	}
	right, err := p.parseExpression(rbp)
	if err != nil {
		return nil, err
	}

	if op.IsComparison() {
		if infixPrecedence(p.current.Type) == prec {
			return nil, p.error(types.ErrChainedComparison, "chained comparison", p.current.Column)
		}
		return &types.Comparison{Op: op, LHS: left, RHS: right, Col: left.Column()}, nil
	}
	return &types.BinaryOp{Op: op, LHS: left, RHS: right, Col: left.Column()}, nil
}

// parseCall parses the argument list of name(...). The current token is '('.
func (p *Parser) parseCall(name Token) (types.Expr, error) {
	open := p.current
	p.advance()
	args, err := p.parseList(TokenClosePar, open)
	if err != nil {
		return nil, err
	}
	return &types.FunctionCall{Name: name.Value, Args: args, Col: name.Column}, nil
}

// parseList parses comma-separated expressions up to the closing token.
// The opening token has already been consumed.
func (p *Parser) parseList(closing TokenType, open Token) ([]types.Expr, error) {
	var list []types.Expr
	if p.current.Type == closing {
		p.advance()
		return list, nil
	}
	for {
		e, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		list = append(list, e)

		switch p.current.Type {
		case TokenComma:
			p.advance()
		case closing:
			p.advance()
			return list, nil
		default:
			return nil, p.expectedClose(closing, open)
		}
	}
}

// expectedClose reports a missing closing parenthesis or bracket.
func (p *Parser) expectedClose(closing TokenType, open Token) error {
	if p.current.Type != TokenEOF {
		return p.unexpected()
	}
	if closing == TokenCloseBracket {
		return p.error(types.ErrUnbalancedBrackets, "unclosed array constructor (unbalanced brackets)", open.Column)
	}
	return types.NewError(types.KindParse, types.ErrUnbalancedParens, "unbalanced parentheses")
}

// unexpected reports the current token as a syntax error.
func (p *Parser) unexpected() error {
	tok := p.current
	switch tok.Type {
	case TokenEOF:
		return types.NewError(types.KindParse, types.ErrSyntax, "invalid syntax at end of line")
	case TokenClosePar:
		return types.NewError(types.KindParse, types.ErrUnbalancedParens, "unbalanced parentheses")
	case TokenCloseBracket:
		return p.error(types.ErrUnbalancedBrackets, "unopened array constructor (unbalanced brackets)", tok.Column)
	}
	return p.error(types.ErrSyntax, fmt.Sprintf("invalid syntax at %q", tok.Value), tok.Column)
}

// error creates a syntax error at the given column.
func (p *Parser) error(code types.ErrorCode, message string, col int) error {
	return types.NewError(types.KindParse, code, message).WithColumn(col)
}
