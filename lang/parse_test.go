package lang_test

import (
	"errors"
	"testing"

	"github.com/ardnew/tmpl/lang"
)

func TestParseExpression(t *testing.T) {
	t.Parallel()

	tests := []struct {
		expr string
		want string
	}{
		{"a", "a"},
		{"42", "42"},
		{"-7", "-7"},
		{"2.5", "2.5"},
		{`"hi"`, `"hi"`},
		{"1 + 2", "(1 + 2)"},
		{"1 + 2 + 3", "((1 + 2) + 3)"},
		{"8 - 4 - 2", "((8 - 4) - 2)"},
		{"8 / 4 / 2", "((8 / 4) / 2)"},
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"1 * 2 + 3", "((1 * 2) + 3)"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"a == 1", "(a == 1)"},
		{"a + b == c", "(a + (b == c))"},
		{"a * b == c", "(a * (b == c))"},
		{"a == b == c", "((a == b) == c)"},
		{"(a + b) == c", "((a + b) == c)"},
		{"((a))", "a"},
		{"x.y - -3", "(x.y - -3)"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			t.Parallel()

			node, err := lang.ParseExpression(tt.expr)
			if err != nil {
				t.Fatalf("ParseExpression(%q) error: %v", tt.expr, err)
			}

			if got := node.String(); got != tt.want {
				t.Errorf("ParseExpression(%q) = %s, want %s", tt.expr, got, tt.want)
			}

			// The parenthesized form parses back to the same tree.
			again, err := lang.ParseExpression(node.String())
			if err != nil {
				t.Fatalf("reparse %q: %v", node.String(), err)
			}

			if again.String() != node.String() {
				t.Errorf("reparse = %s, want %s", again, node)
			}
		})
	}
}

func TestParseExpression_Nodes(t *testing.T) {
	t.Parallel()

	node, err := lang.ParseExpression(`name + "!"`)
	if err != nil {
		t.Fatal(err)
	}

	op, ok := node.(lang.BinaryOp)
	if !ok {
		t.Fatalf("node = %T, want BinaryOp", node)
	}

	if op.Op != lang.OpAdd {
		t.Errorf("op = %q", op.Op)
	}

	if v, ok := op.Left.(lang.Variable); !ok || v.Path != "name" {
		t.Errorf("left = %#v", op.Left)
	}

	if c, ok := op.Right.(lang.Constant); !ok || c.Value != lang.String("!") {
		t.Errorf("right = %#v", op.Right)
	}
}

func TestParseExpression_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		expr string
		want error
	}{
		{"", lang.ErrEmptyExpression},
		{"(1 + 2", lang.ErrMismatchedParentheses},
		{"1 + 2)", lang.ErrMismatchedParentheses},
		{")(", lang.ErrMismatchedParentheses},
		{"1 +", lang.ErrInsufficientOperands},
		{"* 2", lang.ErrInsufficientOperands},
		{"1 2", lang.ErrUnresolvedExpression},
		{"5-3", lang.ErrUnresolvedExpression},
		{"()", lang.ErrUnresolvedExpression},
		{"a = b", lang.ErrUnresolvedExpression},
		{"99999999999999999999", lang.ErrInvalidNumber},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			t.Parallel()

			_, err := lang.ParseExpression(tt.expr)
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseExpression(%q) error = %v, want %v", tt.expr, err, tt.want)
			}
		})
	}
}
