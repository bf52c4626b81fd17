package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/tmpl/lang"
)

// Segments prints the segments a template tokenizes into.
type Segments struct {
	Format string `default:"native" enum:"${formatEnum}" help:"Output format (${enum})." short:"o"`
	Indent int    `default:"2"                            help:"Indent width for JSON and YAML output; 0 for compact output." short:"i"`

	Template string `arg:"" default:"-" help:"Template file or '-' for stdin" name:"template" optional:""`
}

// Run executes the segments command.
func (s *Segments) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	src, err := readSource(ctx, s.Template)
	if err != nil {
		return err
	}

	err = lang.FormatSegments(
		ctx,
		streamsFrom(ctx).out,
		lang.TokenizeTemplate(src),
		lang.ParseFormat(s.Format),
		s.Indent,
	)
	if err != nil {
		return lang.WrapError(err).With(slog.String("format", s.Format))
	}

	return nil
}

// AST prints the expression tree an expression parses into.
type AST struct {
	Format string `default:"native" enum:"${formatEnum}" help:"Output format (${enum})." short:"o"`
	Indent int    `default:"2"                            help:"Indent width for JSON and YAML output; 0 for compact output." short:"i"`

	Expression string `arg:"" help:"Expression to parse" name:"expression"`
}

// Run executes the ast command.
func (a *AST) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	node, err := lang.ParseExpression(a.Expression)
	if err != nil {
		return lang.WrapError(err).
			With(
				slog.String("command", "ast"),
				slog.String("expression", a.Expression),
			)
	}

	err = lang.FormatNode(
		ctx,
		streamsFrom(ctx).out,
		node,
		lang.ParseFormat(a.Format),
		a.Indent,
	)
	if err != nil {
		return lang.WrapError(err).With(slog.String("format", a.Format))
	}

	return nil
}
