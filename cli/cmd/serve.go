package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardnew/tmpl/lang"
	"github.com/ardnew/tmpl/log"
	"github.com/ardnew/tmpl/server"
)

// Serve renders templates over HTTP.
//
// Each route maps a URL path pattern to a template under the root directory.
// A <name> segment in the pattern captures that path segment, which the
// template reads as params.name and which may also be substituted into the
// template name:
//
//	--route /=index.html --route '/posts/<slug>=posts/<slug>.md'
type Serve struct {
	Addr    string   `default:"localhost:8080" help:"Listen address"                                 short:"a"`
	Root    string   `default:"."              help:"Template root directory"                        short:"r"                      type:"existingdir"`
	Route   []string `default:"/=index.html"   help:"Route a URL path pattern to a template"         placeholder:"PATTERN=TEMPLATE"`
	Context []string `help:"YAML or JSON context file(s), merged in order" placeholder:"FILE" short:"c" type:"existingfile"`
	Watch   bool     `default:"true"           help:"Reload context files when they change"          negatable:""`

	Gzip        bool `default:"true" help:"Compress responses"                 negatable:""`
	GzipMinSize int  `default:"1024" help:"Smallest response body to compress" placeholder:"BYTES"`

	ReadHeaderTimeout time.Duration `default:"10s"  help:"Time allowed to read request headers"`
	WriteTimeout      time.Duration `default:"30s"  help:"Time allowed to write a response"`
	IdleTimeout       time.Duration `default:"120s" help:"Time a keep-alive connection may stay idle"`
	ShutdownTimeout   time.Duration `default:"5s"   help:"Time allowed for active requests on shutdown"`
}

// config returns the server configuration described by s.
func (s *Serve) config() (server.Config, error) {
	routes, err := server.ParseRoutes(s.Route...)
	if err != nil {
		return server.Config{}, err
	}

	return server.Config{
		Addr:              s.Addr,
		Root:              s.Root,
		Routes:            routes,
		ContextFiles:      s.Context,
		Watch:             s.Watch,
		Gzip:              s.Gzip,
		GzipMinSize:       s.GzipMinSize,
		ReadHeaderTimeout: s.ReadHeaderTimeout,
		WriteTimeout:      s.WriteTimeout,
		IdleTimeout:       s.IdleTimeout,
		ShutdownTimeout:   s.ShutdownTimeout,
	}, nil
}

// Run executes the serve command. It returns after an interrupt or
// termination signal once active requests have completed.
func (s *Serve) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := s.config()
	if err != nil {
		return err
	}

	srv, err := server.New(ctx, cfg,
		server.WithLogger(log.Default()),
		server.WithEngineOptions(optionsFrom(ctx)...),
	)
	if err != nil {
		return lang.WrapError(err).With(
			slog.String("command", "serve"),
			slog.String("root", s.Root),
		)
	}
	defer srv.Close()

	return srv.Run(ctx)
}
