// Package profile provides optional runtime profiling for the partclean
// application.
//
// Profiling integrates [github.com/pkg/profile] and must be enabled at build
// time with the "pprof" build tag. Without the tag, every operation is a
// no-op with zero runtime overhead.
//
// The supported modes when built with the tag are: allocs, block, clock,
// cpu, goroutine, heap, mem, mutex, thread, and trace. Use [Modes] to
// retrieve the list programmatically.
//
// A profiler is configured as a [Config] and started with [Config.Start]:
//
//	c := profile.Config(func() (string, string, bool) {
//	    return "cpu", "/tmp/profiles", false
//	})
//	defer c.Start().Stop()
//
// Profile files are written to the configured directory with names matching
// the profiling mode (e.g., cpu.pprof, mem.pprof).
//
// The partclean command exposes profiling through the -pprof-mode and
// -pprof-dir flags when built with the tag. The default output directory is
// the pprof subdirectory of the user cache directory for partclean.
//
// Analyze the output with the standard tooling:
//
//	go tool pprof ./partclean /tmp/profiles/cpu.pprof
//	go tool pprof -http=: /tmp/profiles/cpu.pprof
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
