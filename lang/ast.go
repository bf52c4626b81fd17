package lang

import (
	"strconv"
	"strings"
)

// Operator is a binary expression operator.
type Operator string

const (
	OpAdd Operator = "+"
	OpSub Operator = "-"
	OpMul Operator = "*"
	OpDiv Operator = "/"
	OpEq  Operator = "=="
)

// precedence returns the binding strength of an operator token, or 0 for
// anything that is not an operator.
//
// Equality binds tightest, so "a + b == c" groups as "a + (b == c)".
func precedence(tok string) int {
	switch Operator(tok) {
	case OpEq:
		return 3
	case OpMul, OpDiv:
		return 2
	case OpAdd, OpSub:
		return 1
	default:
		return 0
	}
}

// Node is an expression tree node: [Constant], [Variable] or [BinaryOp].
type Node interface {
	// String returns the node as a fully parenthesized expression that
	// parses back to an equal tree.
	String() string
	node()
}

// Constant is a literal value.
type Constant struct {
	Value Value
}

// Variable is a dotted path resolved against the context.
type Variable struct {
	Path string
}

// BinaryOp applies Op to the values of Left and Right.
type BinaryOp struct {
	Op    Operator
	Left  Node
	Right Node
}

func (Constant) node() {}
func (Variable) node() {}
func (BinaryOp) node() {}

func (n Constant) String() string {
	switch v := n.Value.(type) {
	case String:
		return `"` + string(v) + `"`
	case Float:
		s := strconv.FormatFloat(float64(v), 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}

		return s
	case Boolean:
		return strconv.FormatBool(bool(v))
	case nil:
		return "<nil>"
	default:
		return FormatValue(v)
	}
}

func (n Variable) String() string { return n.Path }

func (n BinaryOp) String() string {
	return "(" + nodeString(n.Left) + " " + string(n.Op) + " " + nodeString(n.Right) + ")"
}

func nodeString(n Node) string {
	if n == nil {
		return "<nil>"
	}

	return n.String()
}
