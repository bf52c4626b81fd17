package server

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/ardnew/tmpl/lang"
	"github.com/ardnew/tmpl/log"
)

// store holds the base context shared by all requests. The stored Context is
// never modified; a reload replaces it.
type store struct {
	files  []string
	data   atomic.Pointer[lang.Context]
	logger log.Logger
}

func newStore(files []string, logger log.Logger) *store {
	s := &store{files: files, logger: logger}
	s.data.Store(&lang.Context{})

	return s
}

// Load returns the current base context.
func (s *store) Load() lang.Context { return *s.data.Load() }

// reload decodes and merges every context file. On failure the previous
// context is kept.
func (s *store) reload(ctx context.Context) error {
	data, err := LoadContext(ctx, s.files...)
	if err != nil {
		return err
	}

	s.data.Store(&data)

	s.logger.InfoContext(ctx, "context loaded",
		slog.Int("files", len(s.files)),
		slog.Int("names", len(data)))

	return nil
}

// LoadContext decodes each YAML or JSON file and merges them in order.
func LoadContext(ctx context.Context, files ...string) (lang.Context, error) {
	data := lang.Context{}

	for _, name := range files {
		next, err := loadFile(ctx, name)
		if err != nil {
			return nil, ErrLoadContext.
				With(slog.String("file", name)).
				Wrap(err)
		}

		data = data.Merge(next)
	}

	return data, nil
}

func loadFile(ctx context.Context, name string) (lang.Context, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return lang.DecodeContext(ctx, f)
}
