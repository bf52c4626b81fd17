package lang_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/ardnew/tmpl/lang"
)

func TestTokenizeExpression(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		expr string
		want []string
	}{
		{"identifier", "name", []string{"name"}},
		{"dotted path", "user.name.first", []string{"user.name.first"}},
		{"padded", "  name\t", []string{"name"}},
		{"string literal", `"hello world"`, []string{`"hello world"`}},
		{"string keeps operators", `"a + b"`, []string{`"a + b"`}},
		{"integer", "123", []string{"123"}},
		{"negative integer", "-42", []string{"-42"}},
		{"float", "3.25", []string{"3.25"}},
		{"trailing dot", "3.", []string{"3", "."}},
		{"addition", "1 + 2", []string{"1", "+", "2"}},
		{"no spaces", "a+b", []string{"a", "+", "b"}},
		{"adjacent minus joins number", "5-3", []string{"5", "-3"}},
		{"spaced minus", "5 - 3", []string{"5", "-", "3"}},
		{"equality", "a == 1", []string{"a", "==", "1"}},
		{"equality unspaced", "a==b", []string{"a", "==", "b"}},
		{"lone equals", "a = b", []string{"a", "=", "b"}},
		{"parentheses", "(a * (b / 2))", []string{"(", "a", "*", "(", "b", "/", "2", ")", ")"}},
		{"digits inside identifier", "user1 + x2y", []string{"user1", "+", "x2y"}},
		{"number then identifier", "3abc", []string{"3", "abc"}},
		{"concatenation", `name + "!"`, []string{"name", "+", `"!"`}},
		{"unterminated quote", `"abc`, []string{`"abc`}},
		{"newlines", "a\n+\nb", []string{"a", "+", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := lang.TokenizeExpression(tt.expr)
			if err != nil {
				t.Fatalf("TokenizeExpression(%q) error: %v", tt.expr, err)
			}

			if !slices.Equal(got, tt.want) {
				t.Errorf("TokenizeExpression(%q) = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestTokenizeExpression_Empty(t *testing.T) {
	t.Parallel()

	for _, expr := range []string{"", " ", "\t\n"} {
		_, err := lang.TokenizeExpression(expr)
		if !errors.Is(err, lang.ErrEmptyExpression) {
			t.Errorf("TokenizeExpression(%q) error = %v, want ErrEmptyExpression", expr, err)
		}
	}
}
