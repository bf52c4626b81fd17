package lang

import (
	"log/slog"
	"strconv"
	"strings"
)

// ParseExpression tokenizes and parses an expression into a tree.
func ParseExpression(expr string) (Node, error) {
	tokens, err := TokenizeExpression(expr)
	if err != nil {
		return nil, err
	}

	rpn, err := toPostfix(tokens)
	if err != nil {
		return nil, WrapError(err).With(slog.String("expression", expr))
	}

	node, err := buildTree(rpn)
	if err != nil {
		return nil, WrapError(err).With(slog.String("expression", expr))
	}

	return node, nil
}

// toPostfix reorders infix tokens into postfix order using the
// shunting-yard algorithm. All operators are left-associative.
func toPostfix(tokens []string) ([]string, error) {
	out := make([]string, 0, len(tokens))
	ops := make([]string, 0, len(tokens)/2)

	for _, tok := range tokens {
		switch {
		case tok == "(":
			ops = append(ops, tok)

		case tok == ")":
			for {
				if len(ops) == 0 {
					return nil, ErrMismatchedParentheses
				}

				top := ops[len(ops)-1]
				ops = ops[:len(ops)-1]

				if top == "(" {
					break
				}

				out = append(out, top)
			}

		case precedence(tok) > 0:
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if top == "(" || precedence(top) < precedence(tok) {
					break
				}

				out = append(out, top)
				ops = ops[:len(ops)-1]
			}

			ops = append(ops, tok)

		default:
			out = append(out, tok)
		}
	}

	for i := len(ops) - 1; i >= 0; i-- {
		if ops[i] == "(" {
			return nil, ErrMismatchedParentheses
		}

		out = append(out, ops[i])
	}

	return out, nil
}

// buildTree builds an expression tree from postfix tokens.
func buildTree(rpn []string) (Node, error) {
	stack := make([]Node, 0, len(rpn))

	for _, tok := range rpn {
		if precedence(tok) > 0 {
			if len(stack) < 2 {
				return nil, ErrInsufficientOperands.With(slog.String("operator", tok))
			}

			left, right := stack[len(stack)-2], stack[len(stack)-1]
			stack = append(stack[:len(stack)-2], BinaryOp{
				Op:    Operator(tok),
				Left:  left,
				Right: right,
			})

			continue
		}

		node, err := operand(tok)
		if err != nil {
			return nil, err
		}

		stack = append(stack, node)
	}

	if len(stack) != 1 {
		return nil, ErrUnresolvedExpression.With(slog.Int("operands", len(stack)))
	}

	return stack[0], nil
}

// operand converts a non-operator token into a leaf node.
func operand(tok string) (Node, error) {
	if len(tok) >= 2 && tok[0] == '"' && tok[len(tok)-1] == '"' {
		return Constant{Value: String(tok[1 : len(tok)-1])}, nil
	}

	if tok[0] != '-' && (tok[0] < '0' || tok[0] > '9') {
		return Variable{Path: tok}, nil
	}

	if strings.Contains(tok, ".") {
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, ErrInvalidNumber.Wrap(err).With(slog.String("literal", tok))
		}

		return Constant{Value: Float(f)}, nil
	}

	i, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return nil, ErrInvalidNumber.Wrap(err).With(slog.String("literal", tok))
	}

	return Constant{Value: Integer(i)}, nil
}
