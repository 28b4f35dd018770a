package evaluator

import (
	"errors"
	"strconv"
	"unicode/utf8"
)

// Tokenize splits an expression into tokens, ending with a TokenEOF.
// Any character outside the grammar fails immediately with InvalidInput.
func Tokenize(expression string) ([]Token, error) {
	var tokens []Token

	for i := 0; i < len(expression); {
		c := expression[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case isDigit(c) || c == '.':
			tok, err := scanNumber(expression, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			i += len(tok.Text)
		case isOperator(c):
			tokens = append(tokens, Token{Kind: TokenOperator, Text: string(c), Pos: i})
			i++
		case c == '(':
			tokens = append(tokens, Token{Kind: TokenLeftParen, Text: "(", Pos: i})
			i++
		case c == ')':
			tokens = append(tokens, Token{Kind: TokenRightParen, Text: ")", Pos: i})
			i++
		default:
			r, _ := utf8.DecodeRuneInString(expression[i:])
			return nil, invalidf(i, "unexpected character %q", r)
		}
	}

	return append(tokens, Token{Kind: TokenEOF, Pos: len(expression)}), nil
}

// scanNumber reads a run of digits with at most one decimal point.
func scanNumber(s string, start int) (Token, error) {
	end := start
	digits, dots := 0, 0
	for end < len(s) {
		c := s[end]
		if isDigit(c) {
			digits++
		} else if c == '.' {
			dots++
			if dots > 1 {
				return Token{}, invalidf(end, "second decimal point in %q", s[start:end+1])
			}
		} else {
			break
		}
		end++
	}
	if digits == 0 {
		return Token{}, invalidf(start, "decimal point without digits")
	}

	text := s[start:end]
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		// Out-of-range literals saturate to ±Inf like any float literal.
		var numErr *strconv.NumError
		if !errors.As(err, &numErr) || !errors.Is(numErr.Err, strconv.ErrRange) {
			return Token{}, invalidf(start, "bad number %q", text)
		}
	}
	return Token{Kind: TokenNumber, Text: text, Value: value, Pos: start}, nil
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isOperator(c byte) bool {
	switch c {
	case '+', '-', '*', '/', '%':
		return true
	}
	return false
}
