package display

import (
	"fmt"
	"testing"

	"github.com/ladybug-tools/dragonfly-display/pkg/display/attr"
	"github.com/ladybug-tools/dragonfly-display/pkg/dragonfly"
	"github.com/ladybug-tools/dragonfly-display/pkg/errors"
	"github.com/ladybug-tools/dragonfly-display/pkg/geometry"
	"github.com/ladybug-tools/dragonfly-display/pkg/honeybee"
	"github.com/ladybug-tools/dragonfly-display/pkg/visualization"
)

const districtPath = "../../examples/models/office_district.dfjson"

func districtRooms(t *testing.T) *honeybee.Model {
	t.Helper()
	df, err := dragonfly.Load(districtPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	models, err := df.ToHoneybee(dragonfly.DefaultHoneybeeOptions())
	if err != nil {
		t.Fatalf("ToHoneybee() error = %v", err)
	}
	return models[0]
}

// boxModel is one 10x10x3 room with a window on its south wall and a
// sensor grid of four points with a matching mesh.
func boxModel() *honeybee.Model {
	p := geometry.Pt3
	faces := []*honeybee.Face{
		{Type: honeybee.Wall, BoundaryCondition: honeybee.Outdoors, Geometry: geometry.NewFace3D(p(0, 0, 0), p(10, 0, 0), p(10, 0, 3), p(0, 0, 3))},
		{Type: honeybee.Wall, BoundaryCondition: honeybee.Outdoors, Geometry: geometry.NewFace3D(p(10, 0, 0), p(10, 10, 0), p(10, 10, 3), p(10, 0, 3))},
		{Type: honeybee.Wall, BoundaryCondition: honeybee.Outdoors, Geometry: geometry.NewFace3D(p(10, 10, 0), p(0, 10, 0), p(0, 10, 3), p(10, 10, 3))},
		{Type: honeybee.Wall, BoundaryCondition: honeybee.Outdoors, Geometry: geometry.NewFace3D(p(0, 10, 0), p(0, 0, 0), p(0, 0, 3), p(0, 10, 3))},
		{Type: honeybee.Floor, BoundaryCondition: honeybee.Ground, Geometry: geometry.NewFace3D(p(0, 0, 0), p(0, 10, 0), p(10, 10, 0), p(10, 0, 0))},
		{Type: honeybee.RoofCeiling, BoundaryCondition: honeybee.Outdoors, Geometry: geometry.NewFace3D(p(0, 0, 3), p(10, 0, 3), p(10, 10, 3), p(0, 10, 3))},
	}
	for i, f := range faces {
		f.Identifier = fmt.Sprintf("Box..Face%d", i+1)
	}
	faces[0].Apertures = []*honeybee.Aperture{{
		Identifier:        "Box..Face1..Glz",
		BoundaryCondition: honeybee.Outdoors,
		Geometry:          geometry.NewFace3D(p(2, 0, 1), p(8, 0, 1), p(8, 0, 2), p(2, 0, 2)),
	}}
	mesh := geometry.MeshFromFaces([]geometry.Face3D{
		geometry.NewFace3D(p(0, 0, 0.8), p(5, 0, 0.8), p(5, 5, 0.8), p(0, 5, 0.8)),
	})
	return &honeybee.Model{
		Identifier:     "Box_Model",
		Units:          "Meters",
		Tolerance:      0.01,
		AngleTolerance: 1,
		Rooms:          []*honeybee.Room{{Identifier: "Box", Multiplier: 1, Program: "Office", Faces: faces}},
		SensorGrids: []*honeybee.SensorGrid{{
			Identifier: "Grid",
			Positions:  []geometry.Point3D{p(1, 1, 0.8), p(3, 1, 0.8), p(1, 3, 0.8), p(3, 3, 0.8)},
			Mesh:       &mesh,
		}},
	}
}

func ids(vs *visualization.VisualizationSet) []string {
	out := make([]string, vs.Len())
	for i := range out {
		out[i] = vs.At(i).ID()
	}
	return out
}

func TestModelToVisSetLayerCounts(t *testing.T) {
	m := districtRooms(t)
	tests := []struct {
		name      string
		colorBy   string
		wireframe bool
		want      int
	}{
		{"type with wireframe", ColorByType, true, 10},
		{"type without wireframe", ColorByType, false, 9},
		{"boundary condition", ColorByBoundaryCondition, false, 5},
		{"boundary condition upper case", "BOUNDARY_CONDITION", true, 6},
		{"none", ColorByNone, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.ColorBy = tt.colorBy
			opts.IncludeWireframe = tt.wireframe
			vs, err := ModelToVisSet(m, opts)
			if err != nil {
				t.Fatalf("ModelToVisSet() error = %v", err)
			}
			if vs.Len() != tt.want {
				t.Errorf("layers = %d %v, want %d", vs.Len(), ids(vs), tt.want)
			}
			if tt.wireframe && vs.At(vs.Len()-1).ID() != WireframeID {
				t.Errorf("last layer = %q, want %q", vs.At(vs.Len()-1).ID(), WireframeID)
			}
			if vs.Identifier != m.Identifier {
				t.Errorf("Identifier = %q, want %q", vs.Identifier, m.Identifier)
			}
		})
	}
}

func TestModelToVisSetTypeOrder(t *testing.T) {
	vs, err := ModelToVisSet(districtRooms(t), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	rank := make(map[string]int)
	for i, c := range typeCategories {
		rank[c.id] = i
	}
	last := -1
	for _, id := range ids(vs)[:vs.Len()-1] {
		r, ok := rank[id]
		if !ok {
			t.Fatalf("unexpected layer %q", id)
		}
		if r <= last {
			t.Errorf("layer %q out of order", id)
		}
		last = r
	}
}

func TestModelToVisSetFacesPerElement(t *testing.T) {
	m := boxModel()
	opts := DefaultOptions()
	opts.UseMesh = false
	opts.IncludeWireframe = false
	opts.GridDisplayMode = GridNone
	vs, err := ModelToVisSet(m, opts)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]int{"Wall": 4, "Roof": 1, "Floor": 1, "Aperture": 1}
	if vs.Len() != len(want) {
		t.Fatalf("layers = %v", ids(vs))
	}
	for id, n := range want {
		cg, ok := vs.At(vs.Index(id)).(*visualization.ContextGeometry)
		if !ok {
			t.Fatalf("layer %q is %T", id, vs.At(vs.Index(id)))
		}
		if len(cg.Items) != n {
			t.Errorf("%s items = %d, want %d", id, len(cg.Items), n)
		}
	}
}

func TestModelToVisSetHideColorBy(t *testing.T) {
	opts := DefaultOptions()
	opts.HideColorBy = true
	vs, err := ModelToVisSet(boxModel(), opts)
	if err != nil {
		t.Fatal(err)
	}
	for _, g := range vs.Geometry() {
		hidden := g.ID() != WireframeID && g.ID() != "Sensor_Grids"
		if g.IsHidden() != hidden {
			t.Errorf("%s hidden = %v, want %v", g.ID(), g.IsHidden(), hidden)
		}
	}
}

func TestModelToVisSetOptionErrors(t *testing.T) {
	tests := []struct {
		name string
		opts func(*Options)
	}{
		{"color by", func(o *Options) { o.ColorBy = "color" }},
		{"grid mode", func(o *Options) { o.GridDisplayMode = "Voxels" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.opts(&opts)
			_, err := ModelToVisSet(boxModel(), opts)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidInput)
			}
		})
	}
	if _, err := ModelToVisSet(nil, DefaultOptions()); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("nil model error = %v", err)
	}
}

func TestGridDisplayModes(t *testing.T) {
	tests := []struct {
		mode     string
		items    int
		display  string
		hideGrid bool
	}{
		{GridDefault, 4, "", false},
		{"points", 4, "", false},
		{GridWireframe, 1, visualization.DisplayWireframe, false},
		{GridSurface, 1, visualization.DisplaySurface, false},
		{GridSurfaceWithEdges, 1, visualization.DisplaySurfaceWithEdges, true},
		{GridNone, 0, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			opts := DefaultOptions()
			opts.ColorBy = ColorByNone
			opts.IncludeWireframe = false
			opts.GridDisplayMode = tt.mode
			opts.HideGrid = tt.hideGrid
			vs, err := ModelToVisSet(boxModel(), opts)
			if err != nil {
				t.Fatal(err)
			}
			if tt.items == 0 {
				if vs.Len() != 0 {
					t.Errorf("layers = %v, want none", ids(vs))
				}
				return
			}
			cg := vs.At(0).(*visualization.ContextGeometry)
			if len(cg.Items) != tt.items {
				t.Errorf("items = %d, want %d", len(cg.Items), tt.items)
			}
			if cg.Hidden != tt.hideGrid {
				t.Errorf("Hidden = %v", cg.Hidden)
			}
			if tt.display != "" {
				dm := cg.Items[0].(*visualization.DisplayMesh3D)
				if dm.DisplayMode != tt.display {
					t.Errorf("DisplayMode = %q, want %q", dm.DisplayMode, tt.display)
				}
			}
		})
	}
}

func TestRoomAttributeLayers(t *testing.T) {
	m := districtRooms(t)
	area, err := attr.NewRoomAttribute("Floor Area", []string{"floor_area"}, true, true)
	if err != nil {
		t.Fatal(err)
	}
	program, err := attr.NewRoomAttribute("", []string{"properties.energy.program_type", "zone"}, true, false)
	if err != nil {
		t.Fatal(err)
	}
	opts := DefaultOptions()
	opts.RoomAttrs = []attr.RoomAttribute{area, program}
	vs, err := ModelToVisSet(m, opts)
	if err != nil {
		t.Fatal(err)
	}

	i := vs.Index(RoomAttributesID)
	if i < 0 {
		t.Fatalf("no %s layer in %v", RoomAttributesID, ids(vs))
	}
	ag := vs.At(i).(*visualization.AnalysisGeometry)
	if len(ag.DataSets) != 2 {
		t.Fatalf("data sets = %d, want 2", len(ag.DataSets))
	}
	if len(ag.Geometry) != len(m.Rooms) {
		t.Errorf("meshes = %d, want %d", len(ag.Geometry), len(m.Rooms))
	}
	for _, d := range ag.DataSets {
		if len(d.Values) != len(m.Rooms) {
			t.Errorf("%s values = %d, want %d", d.Legend.Title, len(d.Values), len(m.Rooms))
		}
	}
	if ag.DataSets[0].Legend.IsCategorized() {
		t.Error("floor area legend is categorized")
	}

	text := vs.Index("Room_Floor_Area")
	if text != i+1 {
		t.Fatalf("text layer index = %d, want %d", text, i+1)
	}
	if n := len(vs.At(text).(*visualization.ContextGeometry).Items); n != len(m.Rooms) {
		t.Errorf("labels = %d, want %d", n, len(m.Rooms))
	}
	if vs.Index(WireframeID) != vs.Len()-1 {
		t.Error("wireframe is not the last layer")
	}
}

func TestFaceAttributeLayers(t *testing.T) {
	m := districtRooms(t)
	bc, err := attr.NewFaceAttribute("Boundary", []string{"boundary_condition"}, true, true)
	if err != nil {
		t.Fatal(err)
	}
	opts := DefaultOptions()
	opts.ColorBy = ColorByNone
	opts.FaceAttrs = []attr.FaceAttribute{bc}
	vs, err := ModelToVisSet(m, opts)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{FaceAttributesID, "Face_Boundary", WireframeID}
	if fmt.Sprint(ids(vs)) != fmt.Sprint(want) {
		t.Fatalf("layers = %v, want %v", ids(vs), want)
	}
	ag := vs.At(0).(*visualization.AnalysisGeometry)
	d := ag.Active()
	if got, want := len(d.Values), len(m.Faces()); got != want {
		t.Errorf("values = %d, want %d", got, want)
	}
	if !d.Legend.IsCategorized() {
		t.Fatal("boundary condition legend is not categorized")
	}
	for i := 1; i < len(d.Legend.Categories); i++ {
		if d.Legend.Categories[i-1] >= d.Legend.Categories[i] {
			t.Errorf("categories not sorted: %v", d.Legend.Categories)
		}
	}
}

func TestAttributeNotAvailable(t *testing.T) {
	story, err := attr.NewRoomAttribute("Story", []string{"story"}, true, true)
	if err != nil {
		t.Fatal(err)
	}
	opts := DefaultOptions()
	opts.ColorBy = ColorByNone
	opts.IncludeWireframe = false
	opts.GridDisplayMode = GridNone
	opts.RoomAttrs = []attr.RoomAttribute{story}
	vs, err := ModelToVisSet(boxModel(), opts)
	if err != nil {
		t.Fatal(err)
	}
	d := vs.At(0).(*visualization.AnalysisGeometry).Active()
	if len(d.Legend.Categories) != 1 || d.Legend.Categories[0] != attr.NotAvailable {
		t.Errorf("categories = %v, want [%s]", d.Legend.Categories, attr.NotAvailable)
	}
	label := vs.At(1).(*visualization.ContextGeometry).Items[0].(*visualization.DisplayText3D)
	if label.Text != attr.NotAvailable {
		t.Errorf("label = %q", label.Text)
	}
}

func TestModelComparisonToVisSet(t *testing.T) {
	base := districtRooms(t)
	incoming := boxModel()
	blue := geometry.Color{B: 255, A: 128}
	red := geometry.Color{R: 255, A: 128}
	vs, err := ModelComparisonToVisSet(base, incoming, blue, red)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{BaseModelID, BaseWireframeID, IncomingModelID, IncomingWireframeID}
	if fmt.Sprint(ids(vs)) != fmt.Sprint(want) {
		t.Fatalf("layers = %v, want %v", ids(vs), want)
	}
	mesh := vs.At(2).(*visualization.ContextGeometry).Items[0].(*visualization.DisplayMesh3D)
	if mesh.Color != red {
		t.Errorf("incoming color = %+v, want %+v", mesh.Color, red)
	}

	if _, err := ModelComparisonToVisSet(base, nil, blue, red); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("nil incoming error = %v", err)
	}
}

func TestModelEnvelopeEdgesToVisSet(t *testing.T) {
	vs, err := ModelEnvelopeEdgesToVisSet(boxModel(), true, 0)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{honeybee.RoofsToWalls, honeybee.SlabsToWalls, honeybee.WallsToWalls, honeybee.WindowFrames}
	if fmt.Sprint(ids(vs)) != fmt.Sprint(want) {
		t.Fatalf("layers = %v, want %v", ids(vs), want)
	}
	cg := vs.At(0).(*visualization.ContextGeometry)
	if cg.DisplayName != "Roofs to Walls" {
		t.Errorf("DisplayName = %q", cg.DisplayName)
	}
	seg := cg.Items[0].(*visualization.DisplayLineSegment3D)
	if seg.LineWidth != DefaultEdgeLineWidth {
		t.Errorf("LineWidth = %v, want %d", seg.LineWidth, DefaultEdgeLineWidth)
	}
	if seg.Color != edgeColors[honeybee.RoofsToWalls] {
		t.Errorf("Color = %+v", seg.Color)
	}
}

func TestEnvelopeEdgesOfDistrict(t *testing.T) {
	m := districtRooms(t)
	vs, err := ModelEnvelopeEdgesToVisSet(m, true, 2)
	if err != nil {
		t.Fatal(err)
	}
	if vs.Len() == 0 {
		t.Fatal("no edge layers")
	}
	edges := m.ClassifiedEnvelopeEdges(true)
	for _, g := range vs.Geometry() {
		cg := g.(*visualization.ContextGeometry)
		if len(cg.Items) != len(edges.Get(cg.Identifier)) {
			t.Errorf("%s items = %d, want %d", cg.Identifier, len(cg.Items), len(edges.Get(cg.Identifier)))
		}
	}
}
