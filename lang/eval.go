package lang

import (
	"context"
	"log/slog"
	"strconv"
)

// EvaluateExpression parses expr and evaluates it against data.
// The expression is parsed anew on every call.
func EvaluateExpression(
	ctx context.Context,
	expr string,
	data Context,
	opts ...Option,
) (Value, error) {
	o := makeOptions(opts...)

	v, err := evaluateExpression(expr, data)
	if err != nil {
		o.logger.TraceContext(ctx, "evaluate failed",
			slog.String("expression", expr),
			slog.Any("error", err))

		return nil, err
	}

	o.logger.TraceContext(ctx, "evaluate complete",
		slog.String("expression", expr),
		slog.String("kind", v.Kind().String()))

	return v, nil
}

// EvaluateString is like [EvaluateExpression] but returns the result
// formatted with [FormatValue].
func EvaluateString(
	ctx context.Context,
	expr string,
	data Context,
	opts ...Option,
) (string, error) {
	v, err := EvaluateExpression(ctx, expr, data, opts...)
	if err != nil {
		return "", err
	}

	return FormatValue(v), nil
}

func evaluateExpression(expr string, data Context) (Value, error) {
	node, err := ParseExpression(expr)
	if err != nil {
		return nil, err
	}

	v, err := Evaluate(node, data)
	if err != nil {
		return nil, WrapError(err).With(slog.String("expression", expr))
	}

	return v, nil
}

// Evaluate computes the value of node against data.
//
// The left operand of a [BinaryOp] is evaluated before the right, and the
// first error encountered is returned.
func Evaluate(node Node, data Context) (Value, error) {
	switch n := node.(type) {
	case Constant:
		if n.Value == nil {
			return nil, ErrInvalidValueType.With(slog.String("node", "constant"))
		}

		return n.Value, nil

	case Variable:
		return data.Resolve(n.Path)

	case BinaryOp:
		if n.Left == nil || n.Right == nil {
			return nil, ErrInsufficientOperands.With(slog.String("operator", string(n.Op)))
		}

		left, err := Evaluate(n.Left, data)
		if err != nil {
			return nil, err
		}

		right, err := Evaluate(n.Right, data)
		if err != nil {
			return nil, err
		}

		return apply(n.Op, left, right)

	default:
		return nil, ErrInvalidValueType.With(slog.String("node", "unknown"))
	}
}

// apply applies op to two operands.
//
// Strings support + (concatenation) and ==. Integers and floats support
// every operator; mixing them promotes the integer to a float.
func apply(op Operator, left, right Value) (Value, error) {
	switch l := left.(type) {
	case String:
		if r, ok := right.(String); ok {
			switch op {
			case OpAdd:
				return l + r, nil
			case OpEq:
				return Boolean(l == r), nil
			}
		}

	case Integer:
		switch r := right.(type) {
		case Integer:
			return applyInteger(op, l, r)
		case Float:
			return applyFloat(op, Float(l), r)
		}

	case Float:
		switch r := right.(type) {
		case Integer:
			return applyFloat(op, l, Float(r))
		case Float:
			return applyFloat(op, l, r)
		}
	}

	return nil, invalidOperands(op, left, right)
}

// applyInteger wraps on overflow.
func applyInteger(op Operator, l, r Integer) (Value, error) {
	switch op {
	case OpAdd:
		return l + r, nil
	case OpSub:
		return l - r, nil
	case OpMul:
		return l * r, nil
	case OpDiv:
		if r == 0 {
			return nil, ErrDivisionByZero.With(slog.String("dividend", FormatValue(l)))
		}

		return l / r, nil
	case OpEq:
		return Boolean(l == r), nil
	}

	return nil, invalidOperands(op, l, r)
}

func applyFloat(op Operator, l, r Float) (Value, error) {
	switch op {
	case OpAdd:
		return l + r, nil
	case OpSub:
		return l - r, nil
	case OpMul:
		return l * r, nil
	case OpDiv:
		if r == 0 {
			return nil, ErrDivisionByZero.With(slog.String("dividend", FormatValue(l)))
		}

		return l / r, nil
	case OpEq:
		return Boolean(l == r), nil
	}

	return nil, invalidOperands(op, l, r)
}

func invalidOperands(op Operator, left, right Value) error {
	return ErrInvalidOperatorTypes.With(
		slog.String("operator", string(op)),
		slog.String("left", left.Kind().String()),
		slog.String("right", right.Kind().String()),
	)
}

// FormatValue returns the text substituted for v in rendered output:
// integers in decimal, floats with six fixed decimals, booleans as "1" or
// "0" and strings unchanged.
func FormatValue(v Value) string {
	switch x := v.(type) {
	case String:
		return string(x)
	case Integer:
		return strconv.FormatInt(int64(x), 10)
	case Float:
		return strconv.FormatFloat(float64(x), 'f', 6, 64)
	case Boolean:
		if x {
			return "1"
		}

		return "0"
	}

	return ""
}
