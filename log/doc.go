// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// A [Logger] is immutable: its time layout, level, format, caller and color
// settings are fixed at creation by functional options. Derive new loggers
// with [Logger.Wrap] (new options) or [Logger.With] (extra attributes).
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("kitchen"))
//	logger.Info("render complete", slog.Int("bytes", n))
//
// Every level has a context-aware and a context-unaware variant. The
// context-unaware variants use [DefaultContextProvider].
//
// The package-level functions ([Info], [Error], ...) log through a default
// logger writing to standard error; [Config] reconfigures it.
//
// Levels are [LevelTrace], [LevelDebug], [LevelInfo], [LevelWarn] and
// [LevelError]. The zero-value Logger discards all messages, which makes it
// a safe default for optional logger fields.
package log
