// Package profile provides optional runtime profiling for tmpl.
//
// Profiling is backed by [github.com/pkg/profile] and is compiled in only when
// building with the "pprof" build tag:
//
//	go build -tags pprof .
//
// Without the tag, [Modes] is empty and [Config.Start] always returns a no-op
// stopper, so callers never need their own build constraints.
//
// Configure a profiler by applying options to an empty [Config]:
//
//	cfg := profile.Apply(profile.WithMode("cpu"), profile.WithPath(dir))
//	defer cfg.Start().Stop()
//
// Profile files are written to the configured directory with names matching
// the mode (cpu.pprof, mem.pprof, ...). Analyze them with:
//
//	go tool pprof -http=: cpu.pprof
//
// When built with the tag, [net/http/pprof] is also linked so the serve
// command exposes /debug/pprof/ on its listener.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
