package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Setup initializes the global zerolog logger.
//   - level: trace, debug, info, warn, error, fatal, panic (unknown values fall back to info)
//   - format: "pretty" for console output, anything else writes JSON lines
func Setup(level, format string) zerolog.Logger {
	return New(os.Stdout, level, format)
}

// New builds a logger writing to w. Setup uses it with stdout; tests pass a buffer.
func New(w io.Writer, level, format string) zerolog.Logger {
	if format == "pretty" {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	return zerolog.New(w).
		With().
		Timestamp().
		Caller().
		Str("service", "pathfinder").
		Logger()
}

// Component derives a child logger tagged with a component name.
func Component(log zerolog.Logger, name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
