// Package cli implements the dragonfly-display command-line interface.
//
// The commands load a district model, run it through the pipeline package
// and write the visualization set in the requested format. Status lines go
// to stderr so stdout can carry the serialized output.
//
// # Commands
//
//   - model-to-vis: color a district by type, boundary condition or attributes
//   - model-comparison-to-vis: overlay a base and an incoming model
//   - model-envelope-edges-to-vis: classified envelope edges
//   - model-tree: building, story and room hierarchy as DOT or SVG
//   - serve: the same conversions over HTTP
//   - cache: manage the visualization set cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger with "HH:MM:SS.ms" timestamps (e.g. "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs how long an operation took. It is not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Loaded office_district.dfjson (12ms)".
func (p *progress) done(msg string, keyvals ...any) {
	p.logger.Info(msg, append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))...)
}
