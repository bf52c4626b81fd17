// Package cli contains the command line interface for tmpl.
//
// # Usage
//
// Without a command, tmpl renders a template read from a file or stdin:
//
//	tmpl page.tmpl -c data.yaml --set title=Guests
//	echo 'Hello, {{ name }}!' | tmpl --set name=Ada
//
// Commands:
//
//   - render: Render a template (the default)
//   - eval: Evaluate a single expression
//   - segments: Print the segments a template tokenizes into
//   - ast: Print the tree an expression parses into
//   - serve: Render templates for HTTP requests
//   - repl: Evaluate expressions interactively
//   - init: Write the current flag values to the configuration file
//
// # Configuration
//
// Flags may also be set in config.yaml (or config.json) under the user
// configuration directory. Command-line flags take precedence. Keys are flag
// names, and nested YAML mappings are joined with hyphens:
//
//	log:
//	  level: debug
//	max-depth: 32
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o tmpl .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory
//
// The serve command also exposes net/http/pprof under /debug/pprof/ in such
// builds.
package cli
