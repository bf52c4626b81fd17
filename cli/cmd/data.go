package cmd

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/ardnew/tmpl/lang"
	"github.com/ardnew/tmpl/log"
)

// Data holds the flags that build the context a command renders against.
//
// Context files are decoded as YAML (or JSON) and merged in order, so later
// files override earlier ones. Each --set assignment then binds a dotted path
// to a value decoded as a YAML scalar:
//
//	--set user.name=Ada --set user.age=36 --set 'tags=[a, b]'
type Data struct {
	Context []string `help:"YAML or JSON context file(s), merged in order" placeholder:"FILE"      short:"c" type:"existingfile"`
	Set     []string `help:"Bind a dotted path to a YAML value"            placeholder:"PATH=VALUE"`
}

// Load builds the context described by d.
func (d Data) Load(ctx context.Context) (lang.Context, error) {
	data := lang.Context{}
	seen := make(map[fileKey]struct{})

	for _, name := range d.Context {
		f, err := openUniqueFile(name, seen)
		if err != nil {
			return nil, ErrReadContext.With(slog.String("file", name)).Wrap(err)
		}

		if f == nil {
			log.DebugContext(ctx, "skipping duplicate context file",
				slog.String("file", name))

			continue
		}

		next, err := lang.DecodeContext(ctx, f)
		f.Close()

		if err != nil {
			return nil, ErrReadContext.With(slog.String("file", name)).Wrap(err)
		}

		data = data.Merge(next)
	}

	for _, kv := range d.Set {
		path, value, ok := strings.Cut(kv, "=")
		path = strings.TrimSpace(path)

		if !ok || path == "" {
			return nil, ErrInvalidAssignment.With(slog.String("set", kv))
		}

		if err := data.Set(path, lang.ParseScalar(value)); err != nil {
			return nil, lang.WrapError(err).With(slog.String("set", kv))
		}
	}

	log.TraceContext(ctx, "context loaded",
		slog.Int("files", len(d.Context)),
		slog.Int("assignments", len(d.Set)),
		slog.Int("names", len(data)))

	return data, nil
}

// fileKey uniquely identifies a file by its device and inode numbers, so
// that a file named twice (through a symlink or a relative path) is read
// once.
type fileKey struct {
	dev uint64
	ino uint64
}

// openUniqueFile opens the file at path unless it was seen before, in which
// case it returns nil and no error.
func openUniqueFile(path string, seen map[fileKey]struct{}) (*os.File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(resolved)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()

		return nil, err
	}

	if key, ok := makeFileKey(info); ok {
		if _, dup := seen[key]; dup {
			f.Close()

			return nil, nil
		}

		seen[key] = struct{}{}
	}

	return f, nil
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}
