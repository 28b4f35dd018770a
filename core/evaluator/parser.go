package evaluator

// maxDepth bounds nesting of parentheses and prefix signs.
const maxDepth = 512

var precedence = map[string]int{
	"+": 1, "-": 1,
	"*": 2, "/": 2, "%": 2,
}

type parser struct {
	tokens []Token
	pos    int
	depth  int
}

// Parse tokenizes and parses an expression into a tree. All failures are
// *Error values of kind InvalidInput.
func Parse(expression string) (Node, error) {
	tokens, err := Tokenize(expression)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens}
	if p.peek().Kind == TokenEOF {
		return nil, invalidf(0, "empty expression")
	}

	node, err := p.parseExpression(1, true)
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Kind != TokenEOF {
		return nil, invalidf(tok.Pos, "unexpected %s", tok)
	}
	return node, nil
}

func (p *parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *parser) next() Token {
	tok := p.tokens[p.pos]
	if tok.Kind != TokenEOF {
		p.pos++
	}
	return tok
}

// parseExpression climbs operators binding at least as tightly as minPrec.
// leading reports whether the first operand starts a (sub-)expression,
// which is the only place a unary plus is accepted.
func (p *parser) parseExpression(minPrec int, leading bool) (Node, error) {
	left, err := p.parseUnary(leading)
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()
		if tok.Kind != TokenOperator {
			return left, nil
		}
		prec := precedence[tok.Text]
		if prec < minPrec {
			return left, nil
		}
		p.next()

		// prec+1 keeps every level left-associative.
		right, err := p.parseExpression(prec+1, false)
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: tok.Text[0], Left: left, Right: right, Offset: tok.Pos}
	}
}

func (p *parser) parseUnary(allowPlus bool) (Node, error) {
	tok := p.peek()
	if tok.Kind != TokenOperator || (tok.Text != "-" && tok.Text != "+") {
		return p.parsePrimary()
	}
	if tok.Text == "+" && !allowPlus {
		return nil, invalidf(tok.Pos, "operator + is missing its left operand")
	}

	if err := p.enter(tok.Pos); err != nil {
		return nil, err
	}
	defer p.leave()

	p.next()
	operand, err := p.parseUnary(false)
	if err != nil {
		return nil, err
	}
	if tok.Text == "+" {
		return operand, nil
	}
	return &UnaryNode{Op: '-', Operand: operand, Offset: tok.Pos}, nil
}

func (p *parser) parsePrimary() (Node, error) {
	tok := p.next()
	switch tok.Kind {
	case TokenNumber:
		return &NumberNode{Value: tok.Value, Text: tok.Text, Offset: tok.Pos}, nil

	case TokenLeftParen:
		if p.peek().Kind == TokenRightParen {
			return nil, invalidf(tok.Pos, "empty parentheses")
		}
		if err := p.enter(tok.Pos); err != nil {
			return nil, err
		}
		defer p.leave()

		inner, err := p.parseExpression(1, true)
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.Kind != TokenRightParen {
			return nil, invalidf(closing.Pos, "unclosed parenthesis opened at offset %d", tok.Pos)
		}
		return inner, nil

	case TokenEOF:
		return nil, invalidf(tok.Pos, "expected operand at end of input")

	default:
		return nil, invalidf(tok.Pos, "expected operand, found %s", tok)
	}
}

func (p *parser) enter(pos int) error {
	p.depth++
	if p.depth > maxDepth {
		return invalidf(pos, "expression nested deeper than %d levels", maxDepth)
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}
