// Package logs builds the slog loggers used by the richedit commands.
package logs

import (
	"io"
	"log/slog"
	"os"
)

// EnvVar turns on debug logging when set to a truthy value.
const EnvVar = "RICHEDIT_LOG"

// Enabled reports whether EnvVar asks for logging.
func Enabled() bool {
	v := os.Getenv(EnvVar)
	return v != "" && v != "0" && v != "false"
}

// New returns a debug-level text logger writing to w, tagged with prog,
// if on is set or Enabled reports true. Otherwise the logger discards.
func New(w io.Writer, prog string, on bool) *slog.Logger {
	if !on && !Enabled() {
		return slog.New(slog.DiscardHandler)
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h).With("prog", prog)
}
