package output

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/ladybug-tools/dragonfly-display/pkg/blob"
	"github.com/ladybug-tools/dragonfly-display/pkg/errors"
	"github.com/ladybug-tools/dragonfly-display/pkg/visualization"
)

// Backend renders vtk.js files into a folder and returns their path.
type Backend interface {
	WriteVTKJS(vs *visualization.VisualizationSet, folder, name string) (string, error)
	WriteHTML(vs *visualization.VisualizationSet, folder, name string) (string, error)
}

// Formatter writes visualization sets in any Format.
type Formatter struct {
	// Backend renders vtkjs and html. Without one those formats fail with
	// ErrCodeBackendUnavailable.
	Backend Backend
	Logger  *log.Logger
}

// New returns a formatter using backend.
func New(backend Backend, logger *log.Logger) *Formatter {
	return &Formatter{Backend: backend, Logger: logger}
}

func (f *Formatter) logger() *log.Logger {
	if f.Logger == nil {
		return log.New(io.Discard)
	}
	return f.Logger
}

// Write serializes vs in format to target. For a Memory target the result
// is returned; for a File target the path written is returned.
func (f *Formatter) Write(ctx context.Context, vs *visualization.VisualizationSet, format string, target Target) (string, error) {
	fm, err := f.check(vs, format)
	if err != nil {
		return "", err
	}
	if target.kind == toFile {
		return f.writeFile(vs, fm, target.path)
	}

	data, err := f.render(vs, fm)
	if err != nil {
		return "", err
	}
	switch target.kind {
	case toMemory:
		return string(data), nil
	case toStream:
		if _, err := target.w.Write(data); err != nil {
			return "", errors.Wrap(errors.ErrCodeInternal, err, "write %s output", fm)
		}
	case toBlob:
		if err := target.store.Put(ctx, target.key, bytes.NewReader(data), blob.ContentType(string(fm))); err != nil {
			return "", err
		}
		f.logger().Debug("stored output", "key", target.key, "format", fm, "bytes", len(data))
	}
	return "", nil
}

// Render returns the serialized bytes of vs in format.
func (f *Formatter) Render(vs *visualization.VisualizationSet, format string) ([]byte, error) {
	fm, err := f.check(vs, format)
	if err != nil {
		return nil, err
	}
	return f.render(vs, fm)
}

func (f *Formatter) check(vs *visualization.VisualizationSet, format string) (Format, error) {
	fm, err := ParseFormat(format)
	if err != nil {
		return "", err
	}
	if vs == nil {
		return "", errors.New(errors.ErrCodeInvalidInput, "visualization set is nil")
	}
	if fm.NeedsBackend() && f.Backend == nil {
		return "", errors.New(errors.ErrCodeBackendUnavailable,
			"the vtk backend must be available to use --output-format %s", fm)
	}
	return fm, nil
}

func (f *Formatter) render(vs *visualization.VisualizationSet, fm Format) ([]byte, error) {
	switch fm {
	case FormatPkl:
		var buf bytes.Buffer
		if err := vs.WritePkl(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatVTKJS, FormatHTML:
		return f.renderTemp(vs, fm)
	}
	return marshalDict(vs)
}

func marshalDict(vs *visualization.VisualizationSet) ([]byte, error) {
	d, err := vs.ToDict()
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(d)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode visualization set")
	}
	return data, nil
}

// renderTemp has the backend write into a private temp folder and reads
// the file back. A vtkjs archive comes back base64 encoded.
func (f *Formatter) renderTemp(vs *visualization.VisualizationSet, fm Format) ([]byte, error) {
	dir, err := os.MkdirTemp("", "dragonfly-display-*")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create temp folder")
	}
	defer os.RemoveAll(dir)

	name := uuid.NewString()[:6]
	path, err := f.backendWrite(vs, fm, dir, name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	f.logger().Debug("rendered in temp folder", "format", fm, "bytes", len(data))
	if fm == FormatVTKJS {
		return []byte(base64.StdEncoding.EncodeToString(data)), nil
	}
	return data, nil
}

func (f *Formatter) backendWrite(vs *visualization.VisualizationSet, fm Format, folder, name string) (string, error) {
	if fm == FormatHTML {
		return f.Backend.WriteHTML(vs, folder, name)
	}
	return f.Backend.WriteVTKJS(vs, folder, name)
}

func (f *Formatter) writeFile(vs *visualization.VisualizationSet, fm Format, path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrCodeInvalidPath, "output file path cannot be empty")
	}
	if err := errors.ValidateOutputPath(path); err != nil {
		return "", err
	}
	folder, name := filepath.Split(path)
	if folder == "" {
		folder = "."
	}

	var (
		out string
		err error
	)
	switch fm {
	case FormatPkl:
		out, err = vs.ToPkl(name, folder)
	case FormatVTKJS, FormatHTML:
		out, err = f.backendWrite(vs, fm, folder, strings.TrimSuffix(name, fm.Ext()))
	default:
		out, err = path, writeDict(vs, folder, path)
	}
	if err != nil {
		return "", err
	}
	f.logger().Debug("wrote output file", "path", out, "format", fm)
	return out, nil
}

func writeDict(vs *visualization.VisualizationSet, folder, path string) error {
	data, err := marshalDict(vs)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", folder)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}
