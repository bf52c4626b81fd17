package lang_test

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/expr-lang/expr"

	"github.com/ardnew/tmpl/lang"
)

func TestEvaluateExpression(t *testing.T) {
	t.Parallel()

	data := lang.Context{
		"name":  lang.String("world"),
		"num":   lang.Integer(7),
		"ratio": lang.Float(0.5),
		"ok":    lang.Boolean(true),
		"user": lang.Object{
			"first": lang.String("Ada"),
			"age":   lang.Integer(36),
		},
	}

	tests := []struct {
		expr string
		want lang.Value
	}{
		{`"a" + "b"`, lang.String("ab")},
		{`name + "!"`, lang.String("world!")},
		{`name == "world"`, lang.Boolean(true)},
		{`name == "there"`, lang.Boolean(false)},
		{"1 + 2", lang.Integer(3)},
		{"10 - 4", lang.Integer(6)},
		{"6 * 7", lang.Integer(42)},
		{"7 / 2", lang.Integer(3)},
		{"-7 / 2", lang.Integer(-3)},
		{"num * 2", lang.Integer(14)},
		{"1 + 0.5", lang.Float(1.5)},
		{"0.5 + 1", lang.Float(1.5)},
		{"3 - 0.5", lang.Float(2.5)},
		{"2 * ratio", lang.Float(1)},
		{"1 / 4.0", lang.Float(0.25)},
		{"1.5 * 2.0", lang.Float(3)},
		{"1 == 1.0", lang.Boolean(true)},
		{"2.0 == 2", lang.Boolean(true)},
		{"1.5 == 1.5", lang.Boolean(true)},
		{"num == 7", lang.Boolean(true)},
		{"ok", lang.Boolean(true)},
		{"user.first", lang.String("Ada")},
		{"user.age + 1", lang.Integer(37)},
		{"(1 + 2) * 3", lang.Integer(9)},
		{"(1 + 2) == 3", lang.Boolean(true)},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			t.Parallel()

			got, err := lang.EvaluateExpression(t.Context(), tt.expr, data)
			if err != nil {
				t.Fatalf("EvaluateExpression(%q) error: %v", tt.expr, err)
			}

			if got != tt.want {
				t.Errorf("EvaluateExpression(%q) = %#v, want %#v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEvaluateExpression_IntegerOverflowWraps(t *testing.T) {
	t.Parallel()

	data := lang.Context{"max": lang.Integer(math.MaxInt64)}

	got, err := lang.EvaluateExpression(t.Context(), "max + 1", data)
	if err != nil {
		t.Fatal(err)
	}

	if got != lang.Integer(math.MinInt64) {
		t.Errorf("max + 1 = %v, want %d", got, int64(math.MinInt64))
	}
}

func TestEvaluateExpression_Errors(t *testing.T) {
	t.Parallel()

	data := lang.Context{
		"s":    lang.String("x"),
		"b":    lang.Boolean(true),
		"obj":  lang.Object{"k": lang.Integer(1)},
		"list": lang.List{lang.Integer(1)},
	}

	tests := []struct {
		expr string
		want error
	}{
		{"1 / 0", lang.ErrDivisionByZero},
		{"1.0 / 0", lang.ErrDivisionByZero},
		{"1 / 0.0", lang.ErrDivisionByZero},
		{"1.5 / 0.0", lang.ErrDivisionByZero},
		{`"a" - "b"`, lang.ErrInvalidOperatorTypes},
		{`"a" * "b"`, lang.ErrInvalidOperatorTypes},
		{`"a" / "b"`, lang.ErrInvalidOperatorTypes},
		{`s + 1`, lang.ErrInvalidOperatorTypes},
		{`1 + s`, lang.ErrInvalidOperatorTypes},
		{`s == 1`, lang.ErrInvalidOperatorTypes},
		{`b == b`, lang.ErrInvalidOperatorTypes},
		{`b + 1`, lang.ErrInvalidOperatorTypes},
		{"1 + 2 == 3", lang.ErrInvalidOperatorTypes},
		{"2 * 3 == 6", lang.ErrInvalidOperatorTypes},
		{"missing", lang.ErrVariableNotFound},
		{"obj.missing", lang.ErrVariableNotFound},
		{"s.field", lang.ErrNotAnObject},
		{"obj", lang.ErrInvalidVariableAccess},
		{"list", lang.ErrInvalidVariableAccess},
		{"missing + (1 / 0)", lang.ErrVariableNotFound},
		{"(1 / 0) + missing", lang.ErrDivisionByZero},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			t.Parallel()

			_, err := lang.EvaluateExpression(t.Context(), tt.expr, data)
			if !errors.Is(err, tt.want) {
				t.Errorf("EvaluateExpression(%q) error = %v, want %v", tt.expr, err, tt.want)
			}
		})
	}
}

func TestEvaluate_MalformedTree(t *testing.T) {
	t.Parallel()

	_, err := lang.Evaluate(lang.BinaryOp{Op: lang.OpAdd, Left: lang.Constant{Value: lang.Integer(1)}}, nil)
	if !errors.Is(err, lang.ErrInsufficientOperands) {
		t.Errorf("error = %v, want ErrInsufficientOperands", err)
	}
}

func TestEvaluateString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		expr string
		want string
	}{
		{"123", "123"},
		{"123.456", "123.456000"},
		{"123 + 456.789", "579.789000"},
		{"123.456 + 789.012", "912.468000"},
		{"1 == 1", "1"},
		{"1 == 2", "0"},
		{`"text"`, "text"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			t.Parallel()

			got, err := lang.EvaluateString(t.Context(), tt.expr, nil)
			if err != nil {
				t.Fatal(err)
			}

			if got != tt.want {
				t.Errorf("EvaluateString(%q) = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

// randomExpr builds a fully parenthesized integer expression so that the
// result does not depend on operator precedence.
func randomExpr(r *rand.Rand, depth int) string {
	if depth == 0 || r.IntN(3) == 0 {
		return strconv.Itoa(r.IntN(41) - 20)
	}

	ops := []string{"+", "-", "*"}

	return fmt.Sprintf("(%s %s %s)",
		randomExpr(r, depth-1), ops[r.IntN(len(ops))], randomExpr(r, depth-1))
}

func TestEvaluate_AgreesWithExpr(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))

	for range 500 {
		src := randomExpr(r, 3)

		want, err := expr.Eval(src, nil)
		if err != nil {
			t.Fatalf("expr.Eval(%q): %v", src, err)
		}

		got, err := lang.EvaluateExpression(t.Context(), src, nil)
		if err != nil {
			t.Fatalf("EvaluateExpression(%q): %v", src, err)
		}

		if got != lang.Integer(want.(int)) {
			t.Errorf("%s = %v, expr says %v", src, got, want)
		}
	}
}
