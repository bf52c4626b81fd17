// Package cmd implements the tmpl subcommands.
//
// Every command reads its input from a file or from stdin ("-"), builds a
// [lang.Context] from context files and --set assignments (see [Data]), and
// writes its result to stdout. Commands retrieve shared state from their
// [context.Context]: the parsed [kong.Context] ([WithContext]), the engine
// options ([WithOptions]) and the I/O streams ([WithStreams]).
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file written by [Init].
	ConfigIdentifier = "config"

	// FormatEnumIdentifier is the kong variable identifier containing the
	// comma-separated names of the output formats of [Segments] and [AST].
	FormatEnumIdentifier = "formatEnum"

	// HistoryIdentifier is the kong variable identifier containing the
	// default path of the [Repl] history file.
	HistoryIdentifier = "history"
)
