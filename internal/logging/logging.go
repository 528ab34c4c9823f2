// Package logging adapts zerolog to the analytics logger port.
package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger wraps a zerolog logger behind the Debug/Error port.
type Logger struct {
	log zerolog.Logger
}

// New builds a logger writing to stderr with the given level.
func New(level zerolog.Level) Logger {
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	return Logger{log: log}
}

// FromZerolog wraps an existing zerolog logger.
func FromZerolog(log zerolog.Logger) Logger {
	return Logger{log: log}
}

// Zerolog exposes the underlying logger for adapters that take it
// directly.
func (l Logger) Zerolog() zerolog.Logger {
	return l.log
}

func (l Logger) Debug(msg string) {
	l.log.Debug().Msg(msg)
}

func (l Logger) Error(msg string) {
	l.log.Error().Msg(msg)
}
