package vtk

import (
	"bytes"
	"crypto/md5"
	"encoding/binary"
	"encoding/hex"
	"math"

	"github.com/ladybug-tools/dragonfly-display/pkg/geometry"
	"github.com/ladybug-tools/dragonfly-display/pkg/visualization"
)

// polyData accumulates the points and cells of one layer. Cells are kept
// in vtk legacy connectivity form: a count followed by point indices.
type polyData struct {
	points []float32
	verts  []uint32
	lines  []uint32
	polys  []uint32

	vertColors []uint8
	lineColors []uint8
	polyColors []uint8

	labels  int
	opacity float64
}

func newPolyData() *polyData { return &polyData{opacity: 1} }

func (p *polyData) addPoint(pt geometry.Point3D) uint32 {
	i := uint32(len(p.points) / 3)
	p.points = append(p.points, float32(pt.X), float32(pt.Y), float32(pt.Z))
	return i
}

func (p *polyData) track(c geometry.Color) {
	if a := float64(c.A) / 255; a < p.opacity {
		p.opacity = a
	}
}

func (p *polyData) addVert(pt geometry.Point3D, c geometry.Color) {
	p.verts = append(p.verts, 1, p.addPoint(pt))
	p.vertColors = append(p.vertColors, c.R, c.G, c.B)
	p.track(c)
}

func (p *polyData) addLine(s geometry.LineSegment3D, c geometry.Color) {
	p.lines = append(p.lines, 2, p.addPoint(s.P1), p.addPoint(s.P2))
	p.lineColors = append(p.lineColors, c.R, c.G, c.B)
	p.track(c)
}

func (p *polyData) addMesh(m geometry.Mesh3D, colors func(i int) geometry.Color) {
	base := uint32(len(p.points) / 3)
	for _, v := range m.Vertices {
		p.addPoint(v)
	}
	for i, f := range m.Faces {
		p.polys = append(p.polys, uint32(len(f)))
		for _, idx := range f {
			p.polys = append(p.polys, base+uint32(idx))
		}
		c := colors(i)
		p.polyColors = append(p.polyColors, c.R, c.G, c.B)
		p.track(c)
	}
}

func (p *polyData) meshEdges(m geometry.Mesh3D, c geometry.Color) {
	for _, s := range m.Edges() {
		p.addLine(s, c)
	}
}

func (p *polyData) empty() bool {
	return len(p.verts) == 0 && len(p.lines) == 0 && len(p.polys) == 0
}

// addObject draws one display object. Text has no polydata primitive and
// is only counted.
func (p *polyData) addObject(o visualization.DisplayObject) {
	switch d := o.(type) {
	case *visualization.DisplayMesh3D:
		p.addDisplayMesh(d.Mesh, d.Color, d.DisplayMode)
	case *visualization.DisplayFace3D:
		p.addDisplayMesh(d.Face.Triangulate(), d.Color, d.DisplayMode)
	case *visualization.DisplayLineSegment3D:
		p.addLine(d.Segment, d.Color)
	case *visualization.DisplayPoint3D:
		p.addVert(d.Point, d.Color)
	case *visualization.DisplayText3D:
		p.labels++
	}
}

func (p *polyData) addDisplayMesh(m geometry.Mesh3D, c geometry.Color, mode string) {
	switch mode {
	case visualization.DisplayWireframe:
		p.meshEdges(m, c)
	case visualization.DisplayPoints:
		for _, v := range m.Vertices {
			p.addVert(v, c)
		}
	case visualization.DisplaySurfaceWithEdges:
		p.addMesh(m, func(int) geometry.Color { return c })
		p.meshEdges(m, geometry.RGB(0, 0, 0))
	default:
		p.addMesh(m, func(int) geometry.Color { return c })
	}
}

// addAnalysis colors every mesh face by the active data set. Values map to
// meshes one-to-one.
func (p *polyData) addAnalysis(g *visualization.AnalysisGeometry) {
	var colors []geometry.Color
	if d := g.Active(); d != nil {
		colors = d.ValueColors()
	}
	for i, m := range g.Geometry {
		c := geometry.RGB(200, 200, 200)
		if i < len(colors) {
			c = colors[i]
		}
		p.addMesh(m, func(int) geometry.Color { return c })
	}
}

// =============================================================================
// Serialization
// =============================================================================

// dataArray is a binary array referenced from a dataset index by hash.
type dataArray struct {
	hash string
	data []byte
}

type arrayRef struct {
	Encode   string `json:"encode"`
	BasePath string `json:"basepath"`
	ID       string `json:"id"`
}

type arrayDict struct {
	VTKClass           string    `json:"vtkClass"`
	Name               string    `json:"name"`
	NumberOfComponents int       `json:"numberOfComponents"`
	DataType           string    `json:"dataType"`
	Size               int       `json:"size"`
	Ranges             []float64 `json:"ranges,omitempty"`
	Ref                arrayRef  `json:"ref"`
}

type attributesDict struct {
	VTKClass      string          `json:"vtkClass"`
	ActiveScalars int             `json:"activeScalars"`
	Arrays        []attributeData `json:"arrays"`
}

type attributeData struct {
	Data arrayDict `json:"data"`
}

type polyDataDict struct {
	VTKClass  string         `json:"vtkClass"`
	Points    *arrayDict     `json:"points"`
	Verts     *arrayDict     `json:"verts,omitempty"`
	Lines     *arrayDict     `json:"lines,omitempty"`
	Polys     *arrayDict     `json:"polys,omitempty"`
	PointData attributesDict `json:"pointData"`
	CellData  attributesDict `json:"cellData"`
}

func float32Bytes(v []float32) []byte {
	b := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(b[4*i:], math.Float32bits(f))
	}
	return b
}

func uint32Bytes(v []uint32) []byte {
	b := make([]byte, 4*len(v))
	for i, u := range v {
		binary.LittleEndian.PutUint32(b[4*i:], u)
	}
	return b
}

func newArray(class, name, dataType string, comps, size int, data []byte) (*arrayDict, dataArray) {
	sum := md5.Sum(data)
	h := hex.EncodeToString(sum[:])
	return &arrayDict{
		VTKClass:           class,
		Name:               name,
		NumberOfComponents: comps,
		DataType:           dataType,
		Size:               size,
		Ref:                arrayRef{Encode: "LittleEndian", BasePath: "data", ID: h},
	}, dataArray{hash: h, data: data}
}

// dict returns the dataset index and the binary arrays it references.
// Cell colors are stored in vtk cell order: verts, lines, then polys.
func (p *polyData) dict() (polyDataDict, []dataArray) {
	var arrays []dataArray
	cells := func(name string, v []uint32) *arrayDict {
		if len(v) == 0 {
			return nil
		}
		a, d := newArray("vtkCellArray", name, "Uint32Array", 1, len(v), uint32Bytes(v))
		arrays = append(arrays, d)
		return a
	}

	pts, d := newArray("vtkPoints", "_points", "Float32Array", 3, len(p.points), float32Bytes(p.points))
	arrays = append(arrays, d)
	out := polyDataDict{
		VTKClass:  "vtkPolyData",
		Points:    pts,
		Verts:     cells("_verts", p.verts),
		Lines:     cells("_lines", p.lines),
		Polys:     cells("_polys", p.polys),
		PointData: attributesDict{VTKClass: "vtkDataSetAttributes", ActiveScalars: -1, Arrays: []attributeData{}},
		CellData:  attributesDict{VTKClass: "vtkDataSetAttributes", ActiveScalars: 0, Arrays: []attributeData{}},
	}

	var colors bytes.Buffer
	colors.Write(p.vertColors)
	colors.Write(p.lineColors)
	colors.Write(p.polyColors)
	c, d := newArray("vtkDataArray", "Colors", "Uint8Array", 3, colors.Len(), colors.Bytes())
	c.Ranges = []float64{0, 255}
	arrays = append(arrays, d)
	out.CellData.Arrays = append(out.CellData.Arrays, attributeData{Data: *c})
	return out, arrays
}
