// Package logger configures the zerolog logger of the nebula CLI.
//
// Command output goes to stdout; diagnostics go to stderr through this
// logger so they can be silenced or piped separately.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

// Logger is the process-wide CLI logger. It discards everything until Init runs.
var Logger = zerolog.Nop()

// Init points the CLI logger at stderr using the LOG_LEVEL and LOG_FORMAT values
func Init(level, format string) {
	InitWithWriter(level, format, os.Stderr)
}

// InitWithWriter is Init with an explicit destination
func InitWithWriter(level, format string, out io.Writer) {
	zerolog.SetGlobalLevel(parseLogLevel(level))
	Logger = New(format, out)
	log.Logger = Logger
}

// New builds a CLI logger writing to out. format "json" emits one JSON
// object per line; anything else is human-readable, colored only on a terminal.
func New(format string, out io.Writer) zerolog.Logger {
	if strings.EqualFold(format, "json") {
		return zerolog.New(out).With().Timestamp().Str("app", "nebula").Logger()
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.Kitchen,
		NoColor:    !isTerminal(out),
	}).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// parseLogLevel maps LOG_LEVEL to a zerolog level. Unknown values fall
// back to warn so a typo never floods command output.
func parseLogLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "warning":
		return zerolog.WarnLevel
	case "off", "none":
		return zerolog.Disabled
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.WarnLevel
	}
	return lvl
}

// GetLogger returns the CLI logger
func GetLogger() zerolog.Logger {
	return Logger
}
