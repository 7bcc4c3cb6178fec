// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// Loggers are configured with functional options at creation time:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithCaller(true))
//
// A package-level default logger writing to stderr is available through the
// package-level functions ([Info], [Error], and friends). Its configuration
// can be replaced at any time with [Config]:
//
//	log.Config(log.WithLevel(log.LevelWarn), log.WithPretty(false))
//
// Every level has a context-aware variant ([Logger.InfoContext], etc.);
// the context-unaware variants delegate to them using
// [DefaultContextProvider].
//
// Two output formats are supported, [FormatText] and [FormatJSON], each with
// an optional colorized pretty renderer enabled by [WithPretty].
package log
