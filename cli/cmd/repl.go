package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/ardnew/tmpl/cli/cmd/repl"
	"github.com/ardnew/tmpl/log"
)

// Repl starts an interactive expression evaluator over a context.
type Repl struct {
	History string `default:"${history}" help:"History file; empty disables history" type:"path"`

	Data `embed:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	data, err := r.Load(ctx)
	if err != nil {
		return err
	}

	if r.History != "" {
		if err := os.MkdirAll(filepath.Dir(r.History), 0o700); err != nil {
			return err
		}
	}

	return repl.Run(ctx, data, r.History, log.Default(), optionsFrom(ctx)...)
}
