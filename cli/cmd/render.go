package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/tmpl/lang"
)

// Render renders a template against a context and writes the result.
type Render struct {
	Template string `arg:"" default:"-" help:"Template file or '-' for stdin" name:"template" optional:""`

	Data `embed:""`
}

// Run executes the render command.
func (r *Render) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	data, err := r.Load(ctx)
	if err != nil {
		return err
	}

	src, err := readSource(ctx, r.Template)
	if err != nil {
		return err
	}

	out, err := lang.Render(ctx, src, data, optionsFrom(ctx)...)
	if err != nil {
		return lang.WrapError(err).
			With(
				slog.String("command", "render"),
				slog.String("template", r.Template),
			)
	}

	_, err = io.WriteString(streamsFrom(ctx).out, out)

	return err
}
