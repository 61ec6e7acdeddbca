package logging

import (
	"fmt"
	"io"

	"github.com/vvka-141/sparkify/internal/tui"
	"github.com/vvka-141/sparkify/pkg/sparkify"
)

// Output formats accepted by --log-format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// New returns the logger for format writing to out.
func New(format string, out io.Writer, verbose bool, runID, component string) (sparkify.Logger, error) {
	switch format {
	case "", FormatText:
		return NewConsoleLoggerTo(out, verbose, tui.ColorEnabled(out)), nil
	case FormatJSON:
		return NewJSONLogger(out, verbose, runID, component), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (expected %s or %s): %w", format, FormatText, FormatJSON, sparkify.ErrInvalidConfig)
	}
}

var (
	_ sparkify.Logger = (*ConsoleLogger)(nil)
	_ sparkify.Logger = (*JSONLogger)(nil)
	_ sparkify.Logger = (*NullLogger)(nil)
)
