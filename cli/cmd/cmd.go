package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/tmpl/lang"
	"github.com/ardnew/tmpl/log"
)

type (
	contextKey struct{}
	optionsKey struct{}
	streamsKey struct{}
)

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// WithOptions returns a new context.Context carrying engine options applied
// by every command.
func WithOptions(ctx context.Context, opts ...lang.Option) context.Context {
	return context.WithValue(ctx, optionsKey{}, opts)
}

// optionsFrom returns the engine options stored by WithOptions, preceded by
// the current default logger.
func optionsFrom(ctx context.Context) []lang.Option {
	opts, _ := ctx.Value(optionsKey{}).([]lang.Option)

	return append([]lang.Option{lang.WithLogger(log.Default())}, opts...)
}

type streams struct {
	in  io.Reader
	out io.Writer
}

// WithStreams returns a new context.Context whose commands read from in and
// write to out instead of stdin and stdout. A nil stream keeps the default.
func WithStreams(ctx context.Context, in io.Reader, out io.Writer) context.Context {
	return context.WithValue(ctx, streamsKey{}, streams{in: in, out: out})
}

func streamsFrom(ctx context.Context) streams {
	s, _ := ctx.Value(streamsKey{}).(streams)

	if s.in == nil {
		s.in = os.Stdin
	}

	if s.out == nil {
		s.out = os.Stdout
	}

	return s
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// readSource returns the content of the named file, or of the input stream
// if name is "-" or empty.
func readSource(ctx context.Context, name string) (string, error) {
	if name == "" || name == stdinSource {
		b, err := io.ReadAll(streamsFrom(ctx).in)
		if err != nil {
			return "", lang.ErrReadInput.With(slog.String("source", "stdin")).Wrap(err)
		}

		return string(b), nil
	}

	b, err := os.ReadFile(name)
	if err != nil {
		return "", lang.ErrReadInput.With(slog.String("source", name)).Wrap(err)
	}

	return string(b), nil
}
