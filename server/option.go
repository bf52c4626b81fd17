package server

import (
	"time"

	"github.com/ardnew/tmpl/lang"
	"github.com/ardnew/tmpl/log"
)

type options struct {
	logger   log.Logger
	engine   []lang.Option
	debounce time.Duration
}

// Option configures a [Server].
type Option func(*options)

// WithLogger sets the logger for requests, reloads, and lifecycle events.
// The logger is also passed to the template engine.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithEngineOptions appends options passed to every [lang.Render] call.
func WithEngineOptions(opts ...lang.Option) Option {
	return func(o *options) { o.engine = append(o.engine, opts...) }
}

// WithDebounce sets how long the context watcher waits for writes to settle.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.debounce = d
		}
	}
}

func makeOptions(opts ...Option) options {
	o := options{debounce: defaultDebounce}
	for _, opt := range opts {
		opt(&o)
	}

	o.engine = append([]lang.Option{lang.WithLogger(o.logger)}, o.engine...)

	return o
}
