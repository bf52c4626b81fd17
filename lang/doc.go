// Package lang implements a small template language.
//
// A template is plain text interleaved with interpolations and control
// tags:
//
//	Hello, {{ user.name }}!
//	{% for item in items %}{% if item.shown %}{{ item.name }} {% endif %}{% endfor %}
//
// [Render] substitutes each "{{ expression }}" with the formatted value of
// the expression and executes "{% if %}", "{% else %}", "{% endif %}",
// "{% for name in path %}" and "{% endfor %}" blocks against a [Context].
// [EvaluateExpression] evaluates a single expression.
//
// # Expressions
//
// Expressions combine double-quoted string literals, integer literals,
// float literals (a decimal point is required), dotted variable paths and
// parentheses with the binary operators + - * / and ==. Operators are
// left-associative. Equality binds tighter than multiplication and
// division, which bind tighter than addition and subtraction:
//
//	1 + 2 == 3   // parsed as 1 + (2 == 3), an operator type error
//	(1 + 2) == 3 // true
//
// Expressions are tokenized ([TokenizeExpression]), reordered into postfix
// with the shunting-yard algorithm and built into a tree of [Node] values
// ([ParseExpression]), then evaluated ([Evaluate]).
//
// # Values
//
// A [Context] maps names to [ContextValue]s: [String], [Integer], [Float],
// [Boolean], [Object] and [List]. Only the scalar kinds are [Value]s that
// may appear as operands. Mixing integers and floats promotes to float; ==
// always yields a [Boolean]. Rendered values are formatted by
// [FormatValue]: floats with six decimals and booleans as 1 or 0.
//
// # Errors
//
// Every failure is an [*Error] derived from one of the Err sentinels, so
// callers can test it with [errors.Is]. Errors carry structured attributes
// (the expression, path, or template line and column) and log cleanly
// with slog. A failed render returns no partial output.
//
// # Limits
//
// Control blocks nest at most [DefaultMaxDepth] levels deep unless
// overridden with [WithMaxDepth].
package lang
