package lang

import "github.com/ardnew/tmpl/log"

// DefaultMaxDepth is the default maximum nesting depth of control blocks.
// Users may modify this before rendering to change the default.
var DefaultMaxDepth = 100

type options struct {
	logger   log.Logger
	maxDepth int
}

// Option configures rendering and evaluation behavior.
type Option func(*options)

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMaxDepth sets the maximum nesting depth of if and for blocks.
// Values less than 1 select [DefaultMaxDepth].
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

func makeOptions(opts ...Option) options {
	o := options{maxDepth: DefaultMaxDepth}

	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if o.maxDepth < 1 {
		o.maxDepth = DefaultMaxDepth
	}

	return o
}
