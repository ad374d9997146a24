package visualization

import (
	"encoding/json"
	"fmt"

	"github.com/ladybug-tools/dragonfly-display/pkg/geometry"
)

// Display modes for meshes and faces.
const (
	DisplaySurface          = "Surface"
	DisplaySurfaceWithEdges = "SurfaceWithEdges"
	DisplayWireframe        = "Wireframe"
	DisplayPoints           = "Points"
)

// DisplayObject is one drawable item of a ContextGeometry.
type DisplayObject interface {
	// DisplayType returns the dictionary "type" of the object.
	DisplayType() string
}

// DisplayMesh3D is a colored mesh.
type DisplayMesh3D struct {
	Mesh        geometry.Mesh3D
	Color       geometry.Color
	DisplayMode string
}

// DisplayFace3D is a colored planar face.
type DisplayFace3D struct {
	Face        geometry.Face3D
	Color       geometry.Color
	DisplayMode string
}

// DisplayLineSegment3D is a colored line.
type DisplayLineSegment3D struct {
	Segment   geometry.LineSegment3D
	Color     geometry.Color
	LineWidth float64
	LineType  string
}

// DisplayPoint3D is a colored point.
type DisplayPoint3D struct {
	Point  geometry.Point3D
	Color  geometry.Color
	Radius float64
}

// DisplayText3D is a text label placed on a plane.
type DisplayText3D struct {
	Text                string
	Plane               geometry.Plane
	Height              float64
	Color               geometry.Color
	Font                string
	HorizontalAlignment string
	VerticalAlignment   string
}

func (*DisplayMesh3D) DisplayType() string        { return "DisplayMesh3D" }
func (*DisplayFace3D) DisplayType() string        { return "DisplayFace3D" }
func (*DisplayLineSegment3D) DisplayType() string { return "DisplayLineSegment3D" }
func (*DisplayPoint3D) DisplayType() string       { return "DisplayPoint3D" }
func (*DisplayText3D) DisplayType() string        { return "DisplayText3D" }

// NewDisplayMesh3D returns a surface-mode mesh.
func NewDisplayMesh3D(m geometry.Mesh3D, c geometry.Color) *DisplayMesh3D {
	return &DisplayMesh3D{Mesh: m, Color: c, DisplayMode: DisplaySurface}
}

// NewDisplayFace3D returns a surface-mode face.
func NewDisplayFace3D(f geometry.Face3D, c geometry.Color) *DisplayFace3D {
	return &DisplayFace3D{Face: f, Color: c, DisplayMode: DisplaySurface}
}

// NewDisplayLineSegment3D returns a continuous line.
func NewDisplayLineSegment3D(s geometry.LineSegment3D, c geometry.Color, width float64) *DisplayLineSegment3D {
	return &DisplayLineSegment3D{Segment: s, Color: c, LineWidth: width, LineType: "Continuous"}
}

// NewDisplayText3D returns a centered label.
func NewDisplayText3D(text string, plane geometry.Plane, height float64, c geometry.Color) *DisplayText3D {
	return &DisplayText3D{
		Text:                text,
		Plane:               plane,
		Height:              height,
		Color:               c,
		Font:                "Arial",
		HorizontalAlignment: "Center",
		VerticalAlignment:   "Middle",
	}
}

// =============================================================================
// Dictionary shapes
// =============================================================================

type colorDict struct {
	Type string `json:"type"`
	R    uint8  `json:"r"`
	G    uint8  `json:"g"`
	B    uint8  `json:"b"`
	A    uint8  `json:"a"`
}

func toColorDict(c geometry.Color) colorDict {
	return colorDict{Type: "Color", R: c.R, G: c.G, B: c.B, A: c.A}
}

func (d colorDict) color() geometry.Color {
	return geometry.Color{R: d.R, G: d.G, B: d.B, A: d.A}
}

type meshDict struct {
	Type     string             `json:"type"`
	Vertices []geometry.Point3D `json:"vertices"`
	Faces    [][]int            `json:"faces"`
}

func toMeshDict(m geometry.Mesh3D) meshDict {
	return meshDict{Type: "Mesh3D", Vertices: m.Vertices, Faces: m.Faces}
}

func (d meshDict) mesh() geometry.Mesh3D {
	return geometry.Mesh3D{Vertices: d.Vertices, Faces: d.Faces}
}

type faceDict struct {
	Type     string             `json:"type"`
	Boundary []geometry.Point3D `json:"boundary"`
}

type segmentDict struct {
	Type string            `json:"type"`
	P    geometry.Point3D  `json:"p"`
	V    geometry.Vector3D `json:"v"`
}

type pointDict struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
}

type planeDict struct {
	Type string            `json:"type"`
	N    geometry.Vector3D `json:"n"`
	O    geometry.Point3D  `json:"o"`
	X    geometry.Vector3D `json:"x"`
}

type displayMeshDict struct {
	Type        string    `json:"type"`
	Geometry    meshDict  `json:"geometry"`
	Color       colorDict `json:"color"`
	DisplayMode string    `json:"display_mode"`
}

type displayFaceDict struct {
	Type        string    `json:"type"`
	Geometry    faceDict  `json:"geometry"`
	Color       colorDict `json:"color"`
	DisplayMode string    `json:"display_mode"`
}

type displaySegmentDict struct {
	Type      string      `json:"type"`
	Geometry  segmentDict `json:"geometry"`
	Color     colorDict   `json:"color"`
	LineWidth float64     `json:"line_width"`
	LineType  string      `json:"line_type"`
}

type displayPointDict struct {
	Type     string    `json:"type"`
	Geometry pointDict `json:"geometry"`
	Color    colorDict `json:"color"`
	Radius   float64   `json:"radius"`
}

type displayTextDict struct {
	Type                string    `json:"type"`
	Text                string    `json:"text"`
	Plane               planeDict `json:"plane"`
	Height              float64   `json:"height"`
	Color               colorDict `json:"color"`
	Font                string    `json:"font"`
	HorizontalAlignment string    `json:"horizontal_alignment"`
	VerticalAlignment   string    `json:"vertical_alignment"`
}

// MarshalJSON encodes the mesh in the DisplayMesh3D dictionary shape.
func (d *DisplayMesh3D) MarshalJSON() ([]byte, error) {
	return json.Marshal(displayMeshDict{
		Type:        d.DisplayType(),
		Geometry:    toMeshDict(d.Mesh),
		Color:       toColorDict(d.Color),
		DisplayMode: d.DisplayMode,
	})
}

// MarshalJSON encodes the face in the DisplayFace3D dictionary shape.
func (d *DisplayFace3D) MarshalJSON() ([]byte, error) {
	return json.Marshal(displayFaceDict{
		Type:        d.DisplayType(),
		Geometry:    faceDict{Type: "Face3D", Boundary: d.Face.Vertices},
		Color:       toColorDict(d.Color),
		DisplayMode: d.DisplayMode,
	})
}

// MarshalJSON encodes the segment as a start point and a vector.
func (d *DisplayLineSegment3D) MarshalJSON() ([]byte, error) {
	return json.Marshal(displaySegmentDict{
		Type:      d.DisplayType(),
		Geometry:  segmentDict{Type: "LineSegment3D", P: d.Segment.P1, V: d.Segment.Vector()},
		Color:     toColorDict(d.Color),
		LineWidth: d.LineWidth,
		LineType:  d.LineType,
	})
}

// MarshalJSON encodes the point in the DisplayPoint3D dictionary shape.
func (d *DisplayPoint3D) MarshalJSON() ([]byte, error) {
	return json.Marshal(displayPointDict{
		Type:     d.DisplayType(),
		Geometry: pointDict{Type: "Point3D", X: d.Point.X, Y: d.Point.Y, Z: d.Point.Z},
		Color:    toColorDict(d.Color),
		Radius:   d.Radius,
	})
}

// MarshalJSON encodes the label in the DisplayText3D dictionary shape.
func (d *DisplayText3D) MarshalJSON() ([]byte, error) {
	return json.Marshal(displayTextDict{
		Type:                d.DisplayType(),
		Text:                d.Text,
		Plane:               planeDict{Type: "Plane", N: d.Plane.Normal, O: d.Plane.Origin, X: d.Plane.XAxis},
		Height:              d.Height,
		Color:               toColorDict(d.Color),
		Font:                d.Font,
		HorizontalAlignment: d.HorizontalAlignment,
		VerticalAlignment:   d.VerticalAlignment,
	})
}

// decodeDisplayObject decodes one display dictionary by its "type".
func decodeDisplayObject(raw json.RawMessage) (DisplayObject, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}
	switch head.Type {
	case "DisplayMesh3D":
		var d displayMeshDict
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return &DisplayMesh3D{Mesh: d.Geometry.mesh(), Color: d.Color.color(), DisplayMode: d.DisplayMode}, nil
	case "DisplayFace3D":
		var d displayFaceDict
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return &DisplayFace3D{Face: geometry.Face3D{Vertices: d.Geometry.Boundary}, Color: d.Color.color(), DisplayMode: d.DisplayMode}, nil
	case "DisplayLineSegment3D":
		var d displaySegmentDict
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		seg := geometry.Seg(d.Geometry.P, d.Geometry.P.Move(d.Geometry.V))
		return &DisplayLineSegment3D{Segment: seg, Color: d.Color.color(), LineWidth: d.LineWidth, LineType: d.LineType}, nil
	case "DisplayPoint3D":
		var d displayPointDict
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		p := geometry.Pt3(d.Geometry.X, d.Geometry.Y, d.Geometry.Z)
		return &DisplayPoint3D{Point: p, Color: d.Color.color(), Radius: d.Radius}, nil
	case "DisplayText3D":
		var d displayTextDict
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return &DisplayText3D{
			Text:                d.Text,
			Plane:               geometry.Plane{Origin: d.Plane.O, Normal: d.Plane.N, XAxis: d.Plane.X},
			Height:              d.Height,
			Color:               d.Color.color(),
			Font:                d.Font,
			HorizontalAlignment: d.HorizontalAlignment,
			VerticalAlignment:   d.VerticalAlignment,
		}, nil
	}
	return nil, fmt.Errorf("unsupported display object type %q", head.Type)
}
