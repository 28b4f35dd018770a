package evaluator

import (
	"errors"
	"fmt"
)

// ErrorKind is the externally visible class of an evaluation failure.
type ErrorKind int

const (
	InvalidInput ErrorKind = iota + 1
	DivisionByZero
)

// Display strings shown in place of the expression.
const (
	InvalidInputText   = "INVALID INPUT"
	DivisionByZeroText = "CANNOT DIVIDE BY ZERO"
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidInput:
		return InvalidInputText
	case DivisionByZero:
		return DivisionByZeroText
	default:
		return "UNKNOWN ERROR"
	}
}

var (
	ErrInvalidInput   = errors.New(InvalidInputText)
	ErrDivisionByZero = errors.New(DivisionByZeroText)
)

// Error is returned for every tokenize, parse or evaluation failure.
// Error() yields the display string; Pos and Detail are for diagnostics.
type Error struct {
	Kind   ErrorKind
	Pos    int
	Detail string
}

func (e *Error) Error() string {
	return e.Kind.String()
}

// Is matches the sentinel of the same kind, so errors.Is works on wrapped errors.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrInvalidInput:
		return e.Kind == InvalidInput
	case ErrDivisionByZero:
		return e.Kind == DivisionByZero
	}
	return false
}

// Diagnostic describes where and why evaluation failed.
func (e *Error) Diagnostic() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s at offset %d: %s", e.Kind, e.Pos, e.Detail)
}

func invalidf(pos int, format string, args ...interface{}) *Error {
	return &Error{Kind: InvalidInput, Pos: pos, Detail: fmt.Sprintf(format, args...)}
}
