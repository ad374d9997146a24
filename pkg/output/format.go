package output

import (
	"strings"

	"github.com/ladybug-tools/dragonfly-display/pkg/errors"
)

// Format is a serialization format.
type Format string

// Output formats.
const (
	FormatVSF   Format = "vsf"
	FormatJSON  Format = "json"
	FormatPkl   Format = "pkl"
	FormatVTKJS Format = "vtkjs"
	FormatHTML  Format = "html"
)

// Formats lists every format in help order.
var Formats = []Format{FormatVSF, FormatJSON, FormatPkl, FormatVTKJS, FormatHTML}

// ParseFormat matches s case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidFormat,
		"unrecognized output-format %q (choose from vsf, json, pkl, vtkjs, html)", s)
}

// NeedsBackend reports whether the format is rendered by the vtk backend.
func (f Format) NeedsBackend() bool { return f == FormatVTKJS || f == FormatHTML }

// Ext returns the file extension of the format, with its dot.
func (f Format) Ext() string {
	if f == FormatVSF {
		return ".vsf"
	}
	return "." + string(f)
}
