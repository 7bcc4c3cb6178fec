// Package cli contains the command line interface for partclean.
//
// # Usage
//
// The default command scrubs named parts from a save file:
//
//	partclean scrub persistent.sfs MK1Fuselage RCSBlock
//
// Omitting part names lists every distinct part name instead:
//
//	partclean scrub persistent.sfs
//
// # Configuration
//
// Flags may be given defaults in a configuration file written in native save
// file syntax. The file holds a single SETTINGS block whose parameters are
// flag names (hyphens may be written as underscores):
//
//	SETTINGS
//	{
//		log_level = debug
//		log_format = text
//	}
//
// Command-line flags override config file values. Generate a config file with
// current values using the init subcommand.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Enable colorized pretty printing
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory
package cli
