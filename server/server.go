package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"

	"github.com/ardnew/tmpl/profile"
)

// Server renders templates for HTTP requests.
type Server struct {
	config  Config
	options options
	root    *os.Root
	store   *store
	handler http.Handler
}

// New validates cfg, opens the template root, and loads the context files.
// The returned Server must be closed to release the template root.
func New(ctx context.Context, cfg Config, opts ...Option) (*Server, error) {
	cfg = cfg.withDefaults()
	o := makeOptions(opts...)

	routes, err := newRouter(cfg.Routes)
	if err != nil {
		return nil, err
	}

	root, err := os.OpenRoot(cfg.Root)
	if err != nil {
		return nil, ErrTemplateNotFound.With(slog.String("root", cfg.Root)).Wrap(err)
	}

	s := &Server{
		config:  cfg,
		options: o,
		root:    root,
		store:   newStore(cfg.ContextFiles, o.logger),
	}

	if err := s.store.reload(ctx); err != nil {
		root.Close()

		return nil, err
	}

	var h http.Handler = newHandler(routes, root, s.store, o)

	if profile.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/debug/pprof/", http.DefaultServeMux)
		mux.Handle("/", h)
		h = mux
	}

	h, err = newCompressionHandler(h, cfg.Gzip, cfg.GzipMinSize)
	if err != nil {
		root.Close()

		return nil, err
	}

	s.handler = newRequestLogger(h, o.logger)

	return s, nil
}

// Handler returns the server's complete handler chain.
func (s *Server) Handler() http.Handler { return s.handler }

// Close releases the template root.
func (s *Server) Close() error { return s.root.Close() }

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	var lc net.ListenConfig

	ln, err := lc.Listen(ctx, "tcp", s.config.Addr)
	if err != nil {
		return err
	}

	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully, waiting up to the configured shutdown timeout for active
// requests.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if s.config.Watch && len(s.config.ContextFiles) > 0 {
		w, err := newWatcher(s.store, s.options.debounce, s.options.logger)
		if err != nil {
			ln.Close()

			return err
		}

		go w.run(ctx)
	}

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)

	go func() { errCh <- srv.Serve(ln) }()

	s.options.logger.InfoContext(ctx, "serving",
		slog.String("addr", ln.Addr().String()),
		slog.Int("routes", len(s.config.Routes)),
		slog.Bool("watch", s.config.Watch),
		slog.Bool("gzip", s.config.Gzip))

	select {
	case <-ctx.Done():
		s.options.logger.InfoContext(ctx, "shutting down")

		shutdownCtx, cancel := context.WithTimeout(
			context.WithoutCancel(ctx), s.config.ShutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)

	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	}
}
