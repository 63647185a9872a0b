package stackctl

import (
	"os"
	"strings"

	"github.com/rs/zerolog"

	"stackctl/internal/httpapi"
	"stackctl/internal/shutdown"
)

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error", "err":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// setupLogging builds the diagnostic logger and installs it in the packages
// that accept one. Diagnostics go to stderr so they never interleave with
// the console status lines on stdout.
func setupLogging(level string) zerolog.Logger {
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	l := zerolog.New(w).Level(parseLevel(level)).With().Timestamp().Logger()
	shutdown.SetLogger(l)
	httpapi.SetLogger(l)
	return l
}

// Env helpers
func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
