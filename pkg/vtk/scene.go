package vtk

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/zip"

	"github.com/ladybug-tools/dragonfly-display/pkg/errors"
	"github.com/ladybug-tools/dragonfly-display/pkg/geometry"
	"github.com/ladybug-tools/dragonfly-display/pkg/visualization"
)

// Backend writes visualization sets as vtk.js scenes.
type Backend struct {
	// Logger receives debug output. Nil discards it.
	Logger *log.Logger
}

// New returns a backend that logs to logger.
func New(logger *log.Logger) *Backend { return &Backend{Logger: logger} }

func (b *Backend) logger() *log.Logger {
	if b == nil || b.Logger == nil {
		return log.New(io.Discard)
	}
	return b.Logger
}

type cameraDict struct {
	FocalPoint []float64 `json:"focalPoint"`
	Position   []float64 `json:"position"`
	ViewUp     []float64 `json:"viewUp"`
}

type actorDict struct {
	Origin     []float64 `json:"origin"`
	Scale      []float64 `json:"scale"`
	Position   []float64 `json:"position"`
	Visibility bool      `json:"visibility"`
}

type mapperDict struct {
	ColorByArrayName string `json:"colorByArrayName"`
	ColorMode        int    `json:"colorMode"`
	ScalarMode       int    `json:"scalarMode"`
}

type propertyDict struct {
	Representation int       `json:"representation"`
	EdgeVisibility int       `json:"edgeVisibility"`
	DiffuseColor   []float64 `json:"diffuseColor"`
	PointSize      float64   `json:"pointSize"`
	LineWidth      float64   `json:"lineWidth"`
	Opacity        float64   `json:"opacity"`
}

type readerDict struct {
	URL string `json:"url"`
}

type sceneItemDict struct {
	Name              string       `json:"name"`
	Type              string       `json:"type"`
	HTTPDataSetReader readerDict   `json:"httpDataSetReader"`
	Actor             actorDict    `json:"actor"`
	ActorRotation     []float64    `json:"actorRotation"`
	Mapper            mapperDict   `json:"mapper"`
	Property          propertyDict `json:"property"`
}

type indexDict struct {
	Version          float64         `json:"version"`
	Background       []float64       `json:"background"`
	Camera           cameraDict      `json:"camera"`
	CenterOfRotation []float64       `json:"centerOfRotation"`
	Scene            []sceneItemDict `json:"scene"`
}

// layerData converts one layer into polydata along with its widest line.
func layerData(g visualization.Geometry) (*polyData, float64) {
	p := newPolyData()
	width := 1.0
	switch l := g.(type) {
	case *visualization.ContextGeometry:
		for _, it := range l.Items {
			if s, ok := it.(*visualization.DisplayLineSegment3D); ok && s.LineWidth > width {
				width = s.LineWidth
			}
			p.addObject(it)
		}
	case *visualization.AnalysisGeometry:
		p.addAnalysis(l)
	}
	return p, width
}

// WriteArchive writes the vtk.js zip archive of vs to w.
func (b *Backend) WriteArchive(w io.Writer, vs *visualization.VisualizationSet) error {
	if vs == nil {
		return errors.New(errors.ErrCodeInvalidInput, "visualization set is nil")
	}
	logger := b.logger()
	zw := zip.NewWriter(w)

	index := indexDict{
		Version:    1.0,
		Background: []float64{1, 1, 1},
	}
	layers := make([]*polyData, vs.Len())
	widths := make([]float64, vs.Len())
	for i, g := range vs.Geometry() {
		layers[i], widths[i] = layerData(g)
	}
	lo, hi, found := bounds(layers)
	center := []float64{(lo.X + hi.X) / 2, (lo.Y + hi.Y) / 2, (lo.Z + hi.Z) / 2}
	span := hi.DistanceTo(lo)
	if !found || span == 0 {
		span = 10
	}
	index.CenterOfRotation = center
	index.Camera = cameraDict{
		FocalPoint: center,
		Position:   []float64{center[0] - span, center[1] - span, center[2] + span},
		ViewUp:     []float64{0, 0, 1},
	}

	written := make(map[string]bool)
	for i, g := range vs.Geometry() {
		p, width := layers[i], widths[i]
		if p.labels > 0 {
			logger.Debug("text labels are not drawn in vtk.js scenes", "layer", g.ID(), "labels", p.labels)
		}
		if p.empty() {
			continue
		}
		ds, arrays := p.dict()
		if err := writeJSON(zw, g.ID()+"/index.json", ds); err != nil {
			return err
		}
		for _, a := range arrays {
			name := g.ID() + "/data/" + a.hash
			if written[name] {
				continue
			}
			written[name] = true
			f, err := zw.Create(name)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "write %s", name)
			}
			if _, err := f.Write(a.data); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "write %s", name)
			}
		}
		rep := 2
		if len(p.polys) == 0 {
			rep = 1
		}
		index.Scene = append(index.Scene, sceneItemDict{
			Name:              g.Name(),
			Type:              "httpDataSetReader",
			HTTPDataSetReader: readerDict{URL: g.ID()},
			Actor: actorDict{
				Origin:     []float64{0, 0, 0},
				Scale:      []float64{1, 1, 1},
				Position:   []float64{0, 0, 0},
				Visibility: !g.IsHidden(),
			},
			ActorRotation: []float64{0, 0, 0, 1},
			Mapper:        mapperDict{ColorByArrayName: "Colors", ColorMode: 1, ScalarMode: 2},
			Property: propertyDict{
				Representation: rep,
				DiffuseColor:   []float64{1, 1, 1},
				PointSize:      5,
				LineWidth:      width,
				Opacity:        p.opacity,
			},
		})
	}
	if err := writeJSON(zw, "index.json", index); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "close vtkjs archive")
	}
	logger.Debug("wrote vtkjs scene", "layers", len(index.Scene))
	return nil
}

func writeJSON(zw *zip.Writer, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s", name)
	}
	f, err := zw.Create(name)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", name)
	}
	if _, err := f.Write(data); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", name)
	}
	return nil
}

// WriteVTKJS writes vs to folder/name.vtkjs and returns the file path.
func (b *Backend) WriteVTKJS(vs *visualization.VisualizationSet, folder, name string) (string, error) {
	return b.writeFile(folder, name+".vtkjs", func(w io.Writer) error { return b.WriteArchive(w, vs) })
}

// WriteHTML writes vs to folder/name.html and returns the file path.
func (b *Backend) WriteHTML(vs *visualization.VisualizationSet, folder, name string) (string, error) {
	return b.writeFile(folder, name+".html", func(w io.Writer) error { return b.WritePage(w, vs) })
}

func (b *Backend) writeFile(folder, name string, write func(io.Writer) error) (string, error) {
	if folder == "" {
		folder = "."
	}
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", folder)
	}
	path := filepath.Join(folder, name)
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := write(f); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "close %s", path)
	}
	return path, nil
}

// bounds returns the box around every point of the layers.
func bounds(layers []*polyData) (geometry.Point3D, geometry.Point3D, bool) {
	var lo, hi geometry.Point3D
	found := false
	add := func(p geometry.Point3D) {
		if !found {
			lo, hi, found = p, p, true
			return
		}
		lo = geometry.Pt3(min(lo.X, p.X), min(lo.Y, p.Y), min(lo.Z, p.Z))
		hi = geometry.Pt3(max(hi.X, p.X), max(hi.Y, p.Y), max(hi.Z, p.Z))
	}
	for _, p := range layers {
		for i := 0; i+2 < len(p.points); i += 3 {
			add(geometry.Pt3(float64(p.points[i]), float64(p.points[i+1]), float64(p.points[i+2])))
		}
	}
	return lo, hi, found
}
