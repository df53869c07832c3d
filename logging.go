package fortress

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// NewLogger builds a console logger writing to w at the named level
// (debug, info, warn, error). Unknown names fall back to info.
func NewLogger(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(parseLevel(level)).
		With().Timestamp().Str("component", "fortress").Logger()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
