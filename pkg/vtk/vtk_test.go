package vtk

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"

	"github.com/ladybug-tools/dragonfly-display/pkg/errors"
	"github.com/ladybug-tools/dragonfly-display/pkg/geometry"
	"github.com/ladybug-tools/dragonfly-display/pkg/visualization"
)

func sampleSet(t *testing.T) *visualization.VisualizationSet {
	t.Helper()
	floor := geometry.NewFace3D(
		geometry.Pt3(0, 0, 0), geometry.Pt3(4, 0, 0), geometry.Pt3(4, 3, 0), geometry.Pt3(0, 3, 0),
	)
	vs := visualization.NewVisualizationSet("Sample", "Meters")
	floors := visualization.NewContextGeometry("Floors", []visualization.DisplayObject{
		visualization.NewDisplayMesh3D(floor.Triangulate(), geometry.Color{R: 128, G: 128, B: 128, A: 128}),
	})
	var segs []visualization.DisplayObject
	for _, s := range floor.Segments() {
		segs = append(segs, visualization.NewDisplayLineSegment3D(s, geometry.RGB(0, 0, 0), 2))
	}
	wire := visualization.NewContextGeometry("Wireframe", segs)
	wire.Hidden = true
	labels := visualization.NewContextGeometry("Labels", []visualization.DisplayObject{
		visualization.NewDisplayText3D("A", geometry.NewPlane(floor.Center(), geometry.ZAxis), 1, geometry.RGB(0, 0, 0)),
	})
	area := visualization.NewAnalysisGeometry("Area", []geometry.Mesh3D{floor.Triangulate()},
		&visualization.VisualizationData{Values: []float64{12}, Legend: &visualization.LegendParameters{Title: "Area"}})
	for _, g := range []visualization.Geometry{floors, area, labels, wire} {
		if err := vs.AddGeometry(g, -1); err != nil {
			t.Fatal(err)
		}
	}
	return vs
}

func readArchive(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader() error = %v", err)
	}
	files := make(map[string][]byte)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatal(err)
		}
		files[f.Name] = b
	}
	return files
}

func TestWriteArchive(t *testing.T) {
	var buf bytes.Buffer
	if err := New(nil).WriteArchive(&buf, sampleSet(t)); err != nil {
		t.Fatalf("WriteArchive() error = %v", err)
	}
	files := readArchive(t, buf.Bytes())

	var index indexDict
	if err := json.Unmarshal(files["index.json"], &index); err != nil {
		t.Fatalf("index.json: %v", err)
	}
	var names []string
	for _, s := range index.Scene {
		names = append(names, s.HTTPDataSetReader.URL)
	}
	if got, want := strings.Join(names, ","), "Floors,Area,Wireframe"; got != want {
		t.Errorf("scene = %s, want %s", got, want)
	}
	if index.Scene[0].Property.Opacity >= 1 {
		t.Errorf("Floors opacity = %v, want < 1", index.Scene[0].Property.Opacity)
	}
	if index.Scene[2].Actor.Visibility {
		t.Error("hidden wireframe is visible")
	}
	if index.Scene[2].Property.LineWidth != 2 {
		t.Errorf("wireframe line width = %v", index.Scene[2].Property.LineWidth)
	}

	var ds polyDataDict
	if err := json.Unmarshal(files["Floors/index.json"], &ds); err != nil {
		t.Fatalf("Floors/index.json: %v", err)
	}
	if ds.Polys == nil || ds.Lines != nil {
		t.Fatalf("Floors cells = %+v", ds)
	}
	points := files["Floors/data/"+ds.Points.Ref.ID]
	if len(points) != 4*ds.Points.Size {
		t.Errorf("points bytes = %d, want %d", len(points), 4*ds.Points.Size)
	}
	// two triangles: [3 a b c 3 d e f]
	if ds.Polys.Size != 8 {
		t.Errorf("polys size = %d, want 8", ds.Polys.Size)
	}
}

func TestWriteArchiveNil(t *testing.T) {
	err := New(nil).WriteArchive(io.Discard, nil)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	b := New(nil)
	vs := sampleSet(t)

	tests := []struct {
		name  string
		write func() (string, error)
		ext   string
	}{
		{"vtkjs", func() (string, error) { return b.WriteVTKJS(vs, dir, "sample") }, ".vtkjs"},
		{"html", func() (string, error) { return b.WriteHTML(vs, dir, "sample") }, ".html"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := tt.write()
			if err != nil {
				t.Fatalf("write error = %v", err)
			}
			if want := filepath.Join(dir, "sample"+tt.ext); path != want {
				t.Errorf("path = %q, want %q", path, want)
			}
			info, err := os.Stat(path)
			if err != nil {
				t.Fatal(err)
			}
			if info.Size() < 1000 {
				t.Errorf("size = %d, want > 1000", info.Size())
			}
		})
	}
}

func TestWritePageEmbedsArchive(t *testing.T) {
	vs := sampleSet(t)
	vs.DisplayName = "<Sample>"
	var page bytes.Buffer
	if err := New(nil).WritePage(&page, vs); err != nil {
		t.Fatal(err)
	}
	s := page.String()
	if !strings.Contains(s, "<title>&lt;Sample&gt;</title>") {
		t.Error("title not escaped")
	}
	const marker = `const sceneData = "`
	i := strings.Index(s, marker)
	if i < 0 {
		t.Fatal("no scene data in page")
	}
	rest := s[i+len(marker):]
	data, err := base64.StdEncoding.DecodeString(rest[:strings.Index(rest, `"`)])
	if err != nil {
		t.Fatalf("decode scene data: %v", err)
	}
	if _, ok := readArchive(t, data)["index.json"]; !ok {
		t.Error("embedded archive has no index.json")
	}
}

func TestAddDisplayMeshModes(t *testing.T) {
	m := geometry.NewFace3D(
		geometry.Pt3(0, 0, 0), geometry.Pt3(1, 0, 0), geometry.Pt3(1, 1, 0), geometry.Pt3(0, 1, 0),
	).Triangulate()
	tests := []struct {
		mode         string
		verts, lines int
		polys        bool
	}{
		{visualization.DisplaySurface, 0, 0, true},
		{visualization.DisplayWireframe, 0, 5, false},
		{visualization.DisplaySurfaceWithEdges, 0, 5, true},
		{visualization.DisplayPoints, 4, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			p := newPolyData()
			p.addDisplayMesh(m, geometry.RGB(1, 2, 3), tt.mode)
			if got := len(p.verts) / 2; got != tt.verts {
				t.Errorf("verts = %d, want %d", got, tt.verts)
			}
			if got := len(p.lines) / 3; got != tt.lines {
				t.Errorf("lines = %d, want %d", got, tt.lines)
			}
			if (len(p.polys) > 0) != tt.polys {
				t.Errorf("polys = %d", len(p.polys))
			}
		})
	}
}
