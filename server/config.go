package server

import (
	"log/slog"
	"strings"
	"time"
)

// Config controls a [Server].
type Config struct {
	// Addr is the TCP address to listen on.
	Addr string
	// Root is the directory templates are read from.
	Root string
	// Routes are matched in order.
	Routes []Route
	// ContextFiles are decoded and merged in order to form the base context.
	ContextFiles []string
	// Watch reloads ContextFiles when they change.
	Watch bool
	// Gzip enables response compression for bodies of at least GzipMinSize
	// bytes.
	Gzip        bool
	GzipMinSize int

	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// DefaultConfig returns the configuration used for any unset field.
func DefaultConfig() Config {
	return Config{
		Addr:              "localhost:8080",
		Root:              ".",
		Routes:            []Route{{Pattern: "/", Template: "index.html"}},
		Gzip:              true,
		GzipMinSize:       1024,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		ShutdownTimeout:   5 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()

	if c.Addr == "" {
		c.Addr = d.Addr
	}

	if c.Root == "" {
		c.Root = d.Root
	}

	if len(c.Routes) == 0 {
		c.Routes = d.Routes
	}

	if c.GzipMinSize <= 0 {
		c.GzipMinSize = d.GzipMinSize
	}

	if c.ReadHeaderTimeout <= 0 {
		c.ReadHeaderTimeout = d.ReadHeaderTimeout
	}

	if c.WriteTimeout <= 0 {
		c.WriteTimeout = d.WriteTimeout
	}

	if c.IdleTimeout <= 0 {
		c.IdleTimeout = d.IdleTimeout
	}

	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}

	return c
}

// Route binds a URL path pattern to a template file.
type Route struct {
	Pattern  string `json:"pattern"  yaml:"pattern"`
	Template string `json:"template" yaml:"template"`
}

// ParseRoute parses a route written as "pattern=template".
func ParseRoute(s string) (Route, error) {
	pattern, template, ok := strings.Cut(s, "=")

	pattern = strings.TrimSpace(pattern)
	template = strings.TrimSpace(template)

	if !ok || template == "" || !strings.HasPrefix(pattern, "/") {
		return Route{}, ErrInvalidRoute.With(slog.String("route", s))
	}

	return Route{Pattern: pattern, Template: template}, nil
}

// ParseRoutes parses each of s with [ParseRoute].
func ParseRoutes(s ...string) ([]Route, error) {
	routes := make([]Route, 0, len(s))

	for _, r := range s {
		route, err := ParseRoute(r)
		if err != nil {
			return nil, err
		}

		routes = append(routes, route)
	}

	return routes, nil
}
