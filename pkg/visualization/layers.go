package visualization

import (
	"encoding/json"
	"math"

	"github.com/ladybug-tools/dragonfly-display/pkg/geometry"
)

// ContextGeometry is a layer of display objects drawn with fixed colors.
type ContextGeometry struct {
	Identifier  string
	DisplayName string
	Hidden      bool
	Items       []DisplayObject
}

// NewContextGeometry returns a visible layer holding items.
func NewContextGeometry(id string, items []DisplayObject) *ContextGeometry {
	return &ContextGeometry{Identifier: id, Items: items}
}

func (g *ContextGeometry) ID() string { return g.Identifier }

func (g *ContextGeometry) Name() string {
	if g.DisplayName != "" {
		return g.DisplayName
	}
	return g.Identifier
}

func (g *ContextGeometry) IsHidden() bool   { return g.Hidden }
func (g *ContextGeometry) SetHidden(h bool) { g.Hidden = h }

// Move translates every item.
func (g *ContextGeometry) Move(v geometry.Vector3D) {
	for _, it := range g.Items {
		switch x := it.(type) {
		case *DisplayMesh3D:
			x.Mesh = x.Mesh.Move(v)
		case *DisplayFace3D:
			x.Face = x.Face.Move(v)
		case *DisplayLineSegment3D:
			x.Segment = x.Segment.Move(v)
		case *DisplayPoint3D:
			x.Point = x.Point.Move(v)
		case *DisplayText3D:
			x.Plane.Origin = x.Plane.Origin.Move(v)
		}
	}
}

type contextDict struct {
	Type        string            `json:"type"`
	Identifier  string            `json:"identifier"`
	DisplayName string            `json:"display_name,omitempty"`
	Hidden      bool              `json:"hidden"`
	Geometry    []json.RawMessage `json:"geometry"`
}

// MarshalJSON encodes the layer in the ContextGeometry dictionary shape.
func (g *ContextGeometry) MarshalJSON() ([]byte, error) {
	d := contextDict{
		Type:        "ContextGeometry",
		Identifier:  g.Identifier,
		DisplayName: g.DisplayName,
		Hidden:      g.Hidden,
		Geometry:    make([]json.RawMessage, 0, len(g.Items)),
	}
	for _, it := range g.Items {
		raw, err := json.Marshal(it)
		if err != nil {
			return nil, err
		}
		d.Geometry = append(d.Geometry, raw)
	}
	return json.Marshal(d)
}

// UnmarshalJSON decodes a ContextGeometry dictionary.
func (g *ContextGeometry) UnmarshalJSON(data []byte) error {
	var d contextDict
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	*g = ContextGeometry{Identifier: d.Identifier, DisplayName: d.DisplayName, Hidden: d.Hidden}
	for _, raw := range d.Geometry {
		it, err := decodeDisplayObject(raw)
		if err != nil {
			return err
		}
		g.Items = append(g.Items, it)
	}
	return nil
}

// =============================================================================
// Analysis geometry
// =============================================================================

// LegendParameters describes how data values map to colors. A legend with
// categories is categorized: value i is drawn with Colors[i].
type LegendParameters struct {
	Title      string
	Categories []string
	Colors     []geometry.Color
}

// IsCategorized reports whether the legend maps values to named categories.
func (l *LegendParameters) IsCategorized() bool {
	return l != nil && len(l.Categories) > 0
}

// VisualizationData is one data set of an AnalysisGeometry, with one value
// per geometry element.
type VisualizationData struct {
	Values   []float64
	Legend   *LegendParameters
	DataType string
	Unit     string
}

// Min returns the smallest value.
func (d *VisualizationData) Min() float64 {
	m := math.Inf(1)
	for _, v := range d.Values {
		m = math.Min(m, v)
	}
	return m
}

// Max returns the largest value.
func (d *VisualizationData) Max() float64 {
	m := math.Inf(-1)
	for _, v := range d.Values {
		m = math.Max(m, v)
	}
	return m
}

// ValueColors returns the color of every value, using the categorized
// legend colors when present and the default gradient otherwise.
func (d *VisualizationData) ValueColors() []geometry.Color {
	out := make([]geometry.Color, len(d.Values))
	if d.Legend.IsCategorized() && len(d.Legend.Colors) > 0 {
		for i, v := range d.Values {
			idx := int(v)
			if idx < 0 || idx >= len(d.Legend.Colors) {
				idx = len(d.Legend.Colors) - 1
			}
			out[i] = d.Legend.Colors[idx]
		}
		return out
	}
	lo, hi := d.Min(), d.Max()
	for i, v := range d.Values {
		t := 0.0
		if hi > lo {
			t = (v - lo) / (hi - lo)
		}
		out[i] = Gradient(t)
	}
	return out
}

// AnalysisGeometry is a layer of meshes colored by data sets.
type AnalysisGeometry struct {
	Identifier  string
	DisplayName string
	Hidden      bool
	Geometry    []geometry.Mesh3D
	DataSets    []*VisualizationData
	ActiveData  int
	DisplayMode string
}

// NewAnalysisGeometry returns a layer over meshes with the given data sets.
func NewAnalysisGeometry(id string, meshes []geometry.Mesh3D, data ...*VisualizationData) *AnalysisGeometry {
	return &AnalysisGeometry{
		Identifier:  id,
		Geometry:    meshes,
		DataSets:    data,
		DisplayMode: DisplaySurface,
	}
}

func (g *AnalysisGeometry) ID() string { return g.Identifier }

func (g *AnalysisGeometry) Name() string {
	if g.DisplayName != "" {
		return g.DisplayName
	}
	return g.Identifier
}

func (g *AnalysisGeometry) IsHidden() bool   { return g.Hidden }
func (g *AnalysisGeometry) SetHidden(h bool) { g.Hidden = h }

// Move translates every mesh.
func (g *AnalysisGeometry) Move(v geometry.Vector3D) {
	for i := range g.Geometry {
		g.Geometry[i] = g.Geometry[i].Move(v)
	}
}

// Active returns the active data set, or nil when there is none.
func (g *AnalysisGeometry) Active() *VisualizationData {
	if g.ActiveData < 0 || g.ActiveData >= len(g.DataSets) {
		return nil
	}
	return g.DataSets[g.ActiveData]
}

type legendDict struct {
	Type       string      `json:"type"`
	Title      string      `json:"title,omitempty"`
	Categories []string    `json:"categories,omitempty"`
	Colors     []colorDict `json:"colors,omitempty"`
}

type dataDict struct {
	Type     string      `json:"type"`
	Values   []float64   `json:"values"`
	Legend   *legendDict `json:"legend_parameters,omitempty"`
	DataType string      `json:"data_type,omitempty"`
	Unit     string      `json:"unit,omitempty"`
}

type analysisDict struct {
	Type        string     `json:"type"`
	Identifier  string     `json:"identifier"`
	DisplayName string     `json:"display_name,omitempty"`
	Hidden      bool       `json:"hidden"`
	Geometry    []meshDict `json:"geometry"`
	DataSets    []dataDict `json:"data_sets"`
	ActiveData  int        `json:"active_data"`
	DisplayMode string     `json:"display_mode"`
}

// MarshalJSON encodes the layer in the AnalysisGeometry dictionary shape.
func (g *AnalysisGeometry) MarshalJSON() ([]byte, error) {
	d := analysisDict{
		Type:        "AnalysisGeometry",
		Identifier:  g.Identifier,
		DisplayName: g.DisplayName,
		Hidden:      g.Hidden,
		Geometry:    make([]meshDict, len(g.Geometry)),
		DataSets:    make([]dataDict, len(g.DataSets)),
		ActiveData:  g.ActiveData,
		DisplayMode: g.DisplayMode,
	}
	for i, m := range g.Geometry {
		d.Geometry[i] = toMeshDict(m)
	}
	for i, ds := range g.DataSets {
		dd := dataDict{Type: "VisualizationData", Values: ds.Values, DataType: ds.DataType, Unit: ds.Unit}
		if l := ds.Legend; l != nil {
			ld := &legendDict{Type: "LegendParameters", Title: l.Title, Categories: l.Categories}
			if l.IsCategorized() {
				ld.Type = "LegendParametersCategorized"
			}
			for _, c := range l.Colors {
				ld.Colors = append(ld.Colors, toColorDict(c))
			}
			dd.Legend = ld
		}
		d.DataSets[i] = dd
	}
	return json.Marshal(d)
}

// UnmarshalJSON decodes an AnalysisGeometry dictionary.
func (g *AnalysisGeometry) UnmarshalJSON(data []byte) error {
	var d analysisDict
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	*g = AnalysisGeometry{
		Identifier:  d.Identifier,
		DisplayName: d.DisplayName,
		Hidden:      d.Hidden,
		ActiveData:  d.ActiveData,
		DisplayMode: d.DisplayMode,
	}
	for _, m := range d.Geometry {
		g.Geometry = append(g.Geometry, m.mesh())
	}
	for _, dd := range d.DataSets {
		ds := &VisualizationData{Values: dd.Values, DataType: dd.DataType, Unit: dd.Unit}
		if dd.Legend != nil {
			ds.Legend = &LegendParameters{Title: dd.Legend.Title, Categories: dd.Legend.Categories}
			for _, c := range dd.Legend.Colors {
				ds.Legend.Colors = append(ds.Legend.Colors, c.color())
			}
		}
		g.DataSets = append(g.DataSets, ds)
	}
	return nil
}
