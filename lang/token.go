package lang

import (
	"log/slog"
	"strings"
)

// TokenizeExpression splits an expression into tokens.
//
// At each position where no identifier is being accumulated, a quoted string
// literal (through the next '"', quotes kept) or a numeric literal
// (-?digits(.digits)?) is taken whole. Otherwise '(' ')' '+' '-' '*' '/'
// and "==" are single tokens, a lone '=' is its own token, whitespace ends
// the current identifier, and any other byte extends it.
//
// A leading '-' followed by a digit is always part of the number, so
// "5-3" yields "5" and "-3".
func TokenizeExpression(expr string) ([]string, error) {
	var (
		tokens []string
		ident  strings.Builder
	)

	flush := func() {
		if ident.Len() > 0 {
			tokens = append(tokens, ident.String())
			ident.Reset()
		}
	}

	for i := 0; i < len(expr); {
		if ident.Len() == 0 {
			if n := scanString(expr[i:]); n > 0 {
				tokens = append(tokens, expr[i:i+n])
				i += n

				continue
			}

			if n := scanNumber(expr[i:]); n > 0 {
				tokens = append(tokens, expr[i:i+n])
				i += n

				continue
			}
		}

		switch c := expr[i]; c {
		case '(', ')', '+', '-', '*', '/':
			flush()

			tokens = append(tokens, expr[i:i+1])

		case '=':
			flush()

			if strings.HasPrefix(expr[i:], "==") {
				tokens = append(tokens, "==")
				i++
			} else {
				tokens = append(tokens, "=")
			}

		case ' ', '\t', '\n', '\r', '\v', '\f':
			flush()

		default:
			ident.WriteByte(c)
		}

		i++
	}

	flush()

	if len(tokens) == 0 {
		return nil, ErrEmptyExpression.With(slog.String("expression", expr))
	}

	return tokens, nil
}

// scanString returns the length of the quoted string literal at the start of
// s, or 0.
func scanString(s string) int {
	if len(s) == 0 || s[0] != '"' {
		return 0
	}

	end := strings.IndexByte(s[1:], '"')
	if end < 0 {
		return 0
	}

	return end + 2
}

// scanNumber returns the length of the numeric literal at the start of s,
// or 0.
func scanNumber(s string) int {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}

	n := digits(s[i:])
	if n == 0 {
		return 0
	}

	i += n

	if i < len(s) && s[i] == '.' {
		if f := digits(s[i+1:]); f > 0 {
			i += 1 + f
		}
	}

	return i
}

func digits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}

	return n
}
