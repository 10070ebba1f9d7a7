// ABOUTME: Diagnostic logger setup
// ABOUTME: Builds a zerolog console logger writing to stderr or a log file
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Options controls where and how much is logged
type Options struct {
	// Path of the log file; empty logs to Stderr
	Path string

	// Debug enables debug level output
	Debug bool

	// Stderr is the fallback writer (default: os.Stderr)
	Stderr io.Writer
}

// New creates a logger and returns a close function for the log file
func New(opts Options) (zerolog.Logger, func() error, error) {
	out := opts.Stderr
	if out == nil {
		out = os.Stderr
	}
	closer := func() error { return nil }
	noColor := !isTerminal(out)

	if opts.Path != "" {
		f, err := os.OpenFile(opts.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		closer = f.Close
		noColor = true
	}

	level := zerolog.InfoLevel
	if opts.Debug {
		level = zerolog.DebugLevel
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    noColor,
	}
	logger := zerolog.New(consoleWriter).
		Level(level).
		With().
		Timestamp().
		Int("pid", os.Getpid()).
		Logger()

	return logger, closer, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
