package evaluator

import "fmt"

// TokenKind classifies a lexical unit of an expression.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenNumber
	TokenOperator
	TokenLeftParen
	TokenRightParen
)

func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "EOF"
	case TokenNumber:
		return "Number"
	case TokenOperator:
		return "Operator"
	case TokenLeftParen:
		return "LeftParen"
	case TokenRightParen:
		return "RightParen"
	default:
		return "Unknown"
	}
}

// Token is one lexical unit with its byte offset in the source text.
type Token struct {
	Kind  TokenKind
	Text  string
	Value float64 // set for TokenNumber only
	Pos   int
}

func (t Token) String() string {
	if t.Kind == TokenEOF {
		return "EOF"
	}
	return fmt.Sprintf("%s(%s)", t.Kind, t.Text)
}
