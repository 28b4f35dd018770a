package evaluator

import (
	"errors"
	"fmt"
	"math"
)

type operator func(a, b float64) (float64, error)

// Evaluator computes arithmetic expressions over float64. It holds no
// mutable state after construction and is safe for concurrent use.
type Evaluator struct {
	operators map[byte]operator
}

func NewEvaluator() *Evaluator {
	calc := &Evaluator{
		operators: make(map[byte]operator),
	}

	calc.operators['+'] = func(a, b float64) (float64, error) { return a + b, nil }
	calc.operators['-'] = func(a, b float64) (float64, error) { return a - b, nil }
	calc.operators['*'] = func(a, b float64) (float64, error) { return a * b, nil }
	calc.operators['/'] = func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	}
	calc.operators['%'] = func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return floorMod(a, b), nil
	}

	return calc
}

var defaultEvaluator = NewEvaluator()

// Evaluate resolves input to a Result using the shared evaluator.
func Evaluate(input string) Result {
	return defaultEvaluator.Compute(input)
}

// Compute is Evaluate folded into a Result.
func (c *Evaluator) Compute(expression string) Result {
	value, err := c.Evaluate(expression)
	if err != nil {
		var evalErr *Error
		if !errors.As(err, &evalErr) {
			evalErr = &Error{Kind: InvalidInput, Detail: err.Error()}
		}
		return Result{Err: evalErr}
	}
	return Result{Value: value}
}

// Evaluate parses and computes expression. Every failure is an *Error.
func (c *Evaluator) Evaluate(expression string) (float64, error) {
	tree, err := Parse(expression)
	if err != nil {
		return 0, err
	}
	return c.EvaluateTree(tree)
}

// EvaluateTree walks a parsed tree.
func (c *Evaluator) EvaluateTree(node Node) (float64, error) {
	switch n := node.(type) {
	case *NumberNode:
		return n.Value, nil

	case *UnaryNode:
		v, err := c.EvaluateTree(n.Operand)
		if err != nil {
			return 0, err
		}
		return -v, nil

	case *BinaryNode:
		a, err := c.EvaluateTree(n.Left)
		if err != nil {
			return 0, err
		}
		b, err := c.EvaluateTree(n.Right)
		if err != nil {
			return 0, err
		}

		op, ok := c.operators[n.Op]
		if !ok {
			return 0, invalidf(n.Offset, "unknown operator %c", n.Op)
		}
		result, err := op(a, b)
		if err != nil {
			return 0, &Error{Kind: DivisionByZero, Pos: n.Offset, Detail: fmt.Sprintf("%s has a zero divisor", n)}
		}
		return result, nil

	default:
		return 0, invalidf(0, "unsupported node %T", node)
	}
}

// floorMod returns a modulo b with the sign of b.
func floorMod(a, b float64) float64 {
	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}
