package logging

import (
	"io"

	"github.com/rs/zerolog"
)

// JSONLogger writes one JSON object per message. Every line carries the
// run_id and component fields so that runs can be told apart in aggregated
// logs. Verbose messages are emitted at debug level.
type JSONLogger struct {
	log zerolog.Logger
}

// NewJSONLogger creates a JSONLogger writing to out.
func NewJSONLogger(out io.Writer, verbose bool, runID, component string) *JSONLogger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	log := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("run_id", runID).
		Str("component", component).
		Logger()
	return &JSONLogger{log: log}
}

func (l *JSONLogger) Verbose(format string, args ...interface{}) {
	l.log.Debug().Msg(message(format, args))
}

func (l *JSONLogger) Info(format string, args ...interface{}) {
	l.log.Info().Msg(message(format, args))
}

func (l *JSONLogger) Warn(format string, args ...interface{}) {
	l.log.Warn().Msg(message(format, args))
}

func (l *JSONLogger) Error(format string, args ...interface{}) {
	l.log.Error().Msg(message(format, args))
}
