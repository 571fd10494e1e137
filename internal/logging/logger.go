// Package logging builds the zerolog logger shared by the CLI and the client.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger writing to stderr, so stdout stays free for
// translations. console switches to human readable output.
func New(level string, console bool) (zerolog.Logger, error) {
	return NewWithWriter(os.Stderr, level, console)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(out io.Writer, level string, console bool) (zerolog.Logger, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		level = zerolog.LevelWarnValue
	}
	parsedLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("parse log level %q: %w", level, err)
	}

	writer := out
	if console {
		writer = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	logger := zerolog.New(writer).
		Level(parsedLevel).
		With().
		Timestamp().
		Str("service", "easynmt").
		Logger()

	return logger, nil
}
