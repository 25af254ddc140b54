package ppinet

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// NewLogger returns a timestamped logger writing to w. Every line carries a short
// run id so that interleaved runs can be told apart.
func NewLogger(w io.Writer, prefix string, debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          prefix,
		Fields:          []any{"run", uuid.NewString()[:8]},
	})
}
