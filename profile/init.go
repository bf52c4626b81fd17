package profile

// Config functions return all supported pprof configuration parameters.
type Config func() (mode, path string, quiet bool)

// Option derives a new [Config] from an existing one.
type Option func(Config) Config

// Apply returns the [Config] formed by applying opts to an empty Config.
func Apply(opts ...Option) Config {
	c := Config(func() (string, string, bool) { return "", "", false })
	for _, opt := range opts {
		c = opt(c)
	}

	return c
}

// Start initializes the profiler and returns an interface for stopping it.
//
// If build tag pprof or the mode are unset, or the mode is not one of
// [Modes], then Start returns a no-op implementation.
// Both Start and Stop are always safely callable.
func (c Config) Start() interface{ Stop() } {
	if c == nil {
		return ignore{}
	}

	mode, path, quiet := c()
	if mode == "" {
		return ignore{}
	}

	return start(mode, path, quiet)
}

// WithMode returns an option setting a profiler's mode.
func WithMode(mode string) Option {
	return func(c Config) Config {
		_, path, quiet := c()

		return func() (string, string, bool) { return mode, path, quiet }
	}
}

// WithPath returns an option setting a profiler's output directory.
func WithPath(path string) Option {
	return func(c Config) Config {
		mode, _, quiet := c()

		return func() (string, string, bool) { return mode, path, quiet }
	}
}

// WithQuiet returns an option suppressing the profiler's own log output.
func WithQuiet(quiet bool) Option {
	return func(c Config) Config {
		mode, path, _ := c()

		return func() (string, string, bool) { return mode, path, quiet }
	}
}

type ignore struct{}

func (ignore) Stop() {}
