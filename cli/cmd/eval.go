package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/tmpl/lang"
)

// Eval evaluates a single expression against a context and prints the
// stringified result.
type Eval struct {
	Expression string `arg:"" help:"Expression to evaluate" name:"expression"`

	Data `embed:""`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	data, err := e.Load(ctx)
	if err != nil {
		return err
	}

	result, err := lang.EvaluateString(ctx, e.Expression, data, optionsFrom(ctx)...)
	if err != nil {
		return lang.WrapError(err).
			With(
				slog.String("command", "eval"),
				slog.String("expression", e.Expression),
			)
	}

	_, err = fmt.Fprintln(streamsFrom(ctx).out, result)

	return err
}
