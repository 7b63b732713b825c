// Package log holds the *slog.Logger used by the packages in this module. Packages here only
// log at the Debug level, so nothing is emitted unless LogLevel is lowered or Set() is used
// with a more verbose logger.
package log

import (
	"log/slog"
	"os"
	"sync/atomic"
)

// LogLevel is the log level for the program. This is automatically set for the default logger
// unless .Set() is used to switch out that logger. If the new logger is created from the adapter
// package, it uses this LogLevel. If not, you must pass this to your logger manually.
var LogLevel = new(slog.LevelVar) // Info by default

var defaultLog atomic.Pointer[slog.Logger]

func init() {
	defaultLog.Store(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{AddSource: false, Level: LogLevel})))
}

// Default returns the default logger.
func Default() *slog.Logger {
	if l := defaultLog.Load(); l != nil {
		return l
	}
	return slog.Default()
}

// Set sets the logger returned by Default(). Passing nil makes Default() return slog.Default().
func Set(l *slog.Logger) {
	defaultLog.Store(l)
}
