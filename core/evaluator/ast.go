package evaluator

import "fmt"

// Node is an expression tree node. Trees are built by Parse and are
// owned by the evaluation that built them.
type Node interface {
	Pos() int
	String() string
}

type NumberNode struct {
	Value  float64
	Text   string
	Offset int
}

// UnaryNode is a prefix negation.
type UnaryNode struct {
	Op      byte
	Operand Node
	Offset  int
}

type BinaryNode struct {
	Op          byte
	Left, Right Node
	Offset      int
}

func (n *NumberNode) Pos() int { return n.Offset }
func (n *UnaryNode) Pos() int  { return n.Offset }
func (n *BinaryNode) Pos() int { return n.Offset }

func (n *NumberNode) String() string { return n.Text }

func (n *UnaryNode) String() string {
	return fmt.Sprintf("(%c%s)", n.Op, n.Operand)
}

func (n *BinaryNode) String() string {
	return fmt.Sprintf("(%s %c %s)", n.Left, n.Op, n.Right)
}
