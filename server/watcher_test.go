package server

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ardnew/tmpl/lang"
	"github.com/ardnew/tmpl/log"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

func TestWatcher_ReloadFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	f := writeFile(t, dir, "ctx.yaml", "n: 1\n")

	var out syncBuffer

	logger := log.Make(&out, log.WithFormat(log.FormatText), log.WithTimeLayout("none"))

	s := newStore([]string{f}, logger)
	if err := s.reload(t.Context()); err != nil {
		t.Fatalf("reload() error = %v", err)
	}

	w, err := newWatcher(s, 10*time.Millisecond, logger)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan struct{})

	go func() {
		defer close(done)
		w.run(ctx)
	}()

	t.Cleanup(func() {
		cancel()
		<-done
	})

	writeFile(t, dir, "ctx.yaml", "[broken")

	deadline := time.Now().Add(5 * time.Second)
	for !strings.Contains(out.String(), "context reload failed") {
		if time.Now().After(deadline) {
			t.Fatalf("reload failure was not logged:\n%s", out.String())
		}

		time.Sleep(20 * time.Millisecond)
	}

	if !strings.Contains(out.String(), ErrLoadContext.Error()) {
		t.Errorf("log does not name the load error:\n%s", out.String())
	}

	if got := s.Load()["n"]; got != lang.Integer(1) {
		t.Errorf("context after failed reload n = %v, want 1", got)
	}
}
