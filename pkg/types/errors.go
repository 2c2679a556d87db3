package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies errors by pipeline stage.
type ErrorKind uint8

const (
	KindLex ErrorKind = iota + 1
	KindParse
	KindSemantic
	KindRuntime
)

func (k ErrorKind) String() string {
	switch k {
	case KindLex:
		return "lex error"
	case KindParse:
		return "syntax error"
	case KindSemantic:
		return "semantic error"
	case KindRuntime:
		return "runtime fault"
	}
	return "error"
}

// ErrorCode identifies a specific failure.
type ErrorCode string

// Error codes.
const (
	// L01xx: Lexical errors
	ErrIllegalCharacter  ErrorCode = "L0101"
	ErrIllegalIdentifier ErrorCode = "L0102"

	// S02xx: Syntax errors
	ErrSyntax             ErrorCode = "S0201"
	ErrMissingSemicolon   ErrorCode = "S0202"
	ErrExpressionExpected ErrorCode = "S0203"
	ErrIdentifierExpected ErrorCode = "S0204"
	ErrUnbalancedBrackets ErrorCode = "S0205"
	ErrUnbalancedParens   ErrorCode = "S0206"
	ErrInvalidAccess      ErrorCode = "S0207"
	ErrInvalidTarget      ErrorCode = "S0208"
	ErrChainedComparison  ErrorCode = "S0209"
	ErrEmptyStatement     ErrorCode = "S0210"
	ErrNestingTooDeep     ErrorCode = "S0211"

	// T10xx: Semantic errors
	ErrTypeMismatch      ErrorCode = "T1001"
	ErrNonHomogeneous    ErrorCode = "T1002"
	ErrNestedArray       ErrorCode = "T1003"
	ErrNotAnArray        ErrorCode = "T1004"
	ErrBadArrayAccess    ErrorCode = "T1005"
	ErrArgumentCount     ErrorCode = "T1006"
	ErrArgumentType      ErrorCode = "T1007"
	ErrAlreadyDefined    ErrorCode = "T1008"
	ErrAssignToFunction  ErrorCode = "T1009"
	ErrNotAFunction      ErrorCode = "T1010"
	ErrFunctionAsValue   ErrorCode = "T1011"
	ErrNoLvalue          ErrorCode = "T1012"
	ErrUnresolvedArray   ErrorCode = "T1013"
	ErrUndefinedSymbol   ErrorCode = "U1001"
	ErrUndefinedFunction ErrorCode = "U1002"

	// D30xx: Runtime faults
	ErrDivisionByZero    ErrorCode = "D3001"
	ErrArithmetic        ErrorCode = "D3002"
	ErrInvalidIndex      ErrorCode = "D3003"
	ErrIndexOutOfRange   ErrorCode = "D3004"
	ErrDomain            ErrorCode = "D3005"
	ErrBadArgument       ErrorCode = "D3006"
	ErrCircularReference ErrorCode = "D3007"
	ErrStackOverflow     ErrorCode = "D3008"
	ErrInferenceFailed   ErrorCode = "D3009"
)

// ErrInferenceDeferred signals that the element type of an empty array
// literal could not be pinned down. Callers that can supply an expected
// type handle it locally.
var ErrInferenceDeferred = errors.New("not enough information to infer type")

// Error represents a structured Stokhos error.
type Error struct {
	Kind    ErrorKind
	Code    ErrorCode
	Message string
	Column  int // 1-based; 0 when unknown or at end of input
	Err     error
}

// NewError creates a new error of the given kind.
func NewError(kind ErrorKind, code ErrorCode, message string) *Error {
	return &Error{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// Errorf creates a new error with a formatted message.
func Errorf(kind ErrorKind, code ErrorCode, format string, args ...interface{}) *Error {
	return NewError(kind, code, fmt.Sprintf(format, args...))
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Column > 0 {
		return fmt.Sprintf("%s (column %d)", e.Message, e.Column)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithColumn sets the source column.
func (e *Error) WithColumn(col int) *Error {
	e.Column = col
	return e
}

// WithCause wraps another error.
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}

// IsKind reports whether err is a *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
