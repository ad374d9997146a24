package display

import (
	"strings"

	"github.com/ladybug-tools/dragonfly-display/pkg/display/attr"
	"github.com/ladybug-tools/dragonfly-display/pkg/errors"
	"github.com/ladybug-tools/dragonfly-display/pkg/geometry"
	"github.com/ladybug-tools/dragonfly-display/pkg/honeybee"
	"github.com/ladybug-tools/dragonfly-display/pkg/visualization"
)

// Color-by values.
const (
	ColorByType              = "type"
	ColorByBoundaryCondition = "boundary_condition"
	ColorByNone              = "none"
)

// Grid display modes.
const (
	GridDefault          = "Default"
	GridPoints           = "Points"
	GridWireframe        = "Wireframe"
	GridSurface          = "Surface"
	GridSurfaceWithEdges = "SurfaceWithEdges"
	GridNone             = "None"
)

var gridModes = []string{GridDefault, GridPoints, GridWireframe, GridSurface, GridSurfaceWithEdges, GridNone}

// WireframeID identifies the wireframe layer.
const WireframeID = "Wireframe"

// Options controls ModelToVisSet.
type Options struct {
	// ColorBy is type, boundary_condition or none, matched case-insensitively.
	ColorBy          string
	IncludeWireframe bool
	// UseMesh joins each color-by layer into one mesh instead of one face
	// per element.
	UseMesh         bool
	HideColorBy     bool
	RoomAttrs       []attr.RoomAttribute
	FaceAttrs       []attr.FaceAttribute
	GridDisplayMode string
	HideGrid        bool
}

// DefaultOptions returns the options of a plain model-to-vis call.
func DefaultOptions() Options {
	return Options{
		ColorBy:          ColorByType,
		IncludeWireframe: true,
		UseMesh:          true,
		GridDisplayMode:  GridDefault,
	}
}

func (o Options) colorBy() (string, error) {
	c := strings.ToLower(strings.TrimSpace(o.ColorBy))
	switch c {
	case ColorByType, ColorByBoundaryCondition, ColorByNone:
		return c, nil
	case "":
		return ColorByType, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput,
		"unrecognized color-by %q (choose from type, boundary_condition, none)", o.ColorBy)
}

func (o Options) gridMode() (string, error) {
	if o.GridDisplayMode == "" {
		return GridDefault, nil
	}
	for _, m := range gridModes {
		if strings.EqualFold(o.GridDisplayMode, m) {
			return m, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidInput,
		"unrecognized grid display mode %q (choose from %s)", o.GridDisplayMode, strings.Join(gridModes, ", "))
}

// ModelToVisSet builds the visualization set of a room-level model.
//
// Layers come in a fixed order: color-by layers (only non-empty ones),
// room attribute layers, face attribute layers, the sensor grid layer and
// finally the wireframe.
func ModelToVisSet(m *honeybee.Model, opts Options) (*visualization.VisualizationSet, error) {
	if m == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "model is nil")
	}
	colorBy, err := opts.colorBy()
	if err != nil {
		return nil, err
	}
	gridMode, err := opts.gridMode()
	if err != nil {
		return nil, err
	}

	vs := visualization.NewVisualizationSet(m.Identifier, m.Units)
	vs.DisplayName = m.Name()

	var layers []visualization.Geometry
	switch colorBy {
	case ColorByType:
		layers = categoryLayers(typeCategories, typeBuckets(m), opts.UseMesh)
	case ColorByBoundaryCondition:
		layers = categoryLayers(bcCategories, bcBuckets(m), opts.UseMesh)
	}
	for _, l := range layers {
		l.SetHidden(opts.HideColorBy)
	}

	layers = append(layers, roomAttributeLayers(m, opts.RoomAttrs)...)
	layers = append(layers, faceAttributeLayers(m, opts.FaceAttrs)...)

	if g := gridLayer(m, gridMode); g != nil {
		g.Hidden = opts.HideGrid
		layers = append(layers, g)
	}
	if opts.IncludeWireframe {
		if w := wireframeLayer(m, WireframeID); w != nil {
			layers = append(layers, w)
		}
	}

	for _, l := range layers {
		if err := vs.AddGeometry(l, -1); err != nil {
			return nil, err
		}
	}
	return vs, nil
}

// =============================================================================
// Color-by buckets
// =============================================================================

func isExterior(bc honeybee.BoundaryCondition) bool {
	return bc == honeybee.Outdoors || bc == honeybee.Ground
}

func typeBuckets(m *honeybee.Model) map[string][]geometry.Face3D {
	b := make(map[string][]geometry.Face3D)
	for _, s := range m.OrphanedShades {
		if s.IsIndoor {
			b["Indoor_Shade"] = append(b["Indoor_Shade"], s.Geometry)
		} else {
			b["Shade"] = append(b["Shade"], s.Geometry)
		}
	}
	for _, f := range m.Faces() {
		ext := isExterior(f.BoundaryCondition)
		var key string
		switch f.Type {
		case honeybee.Wall:
			key = pick(ext, "Wall", "Interior_Wall")
		case honeybee.RoofCeiling:
			key = pick(ext, "Roof", "Ceiling")
		case honeybee.Floor:
			key = pick(ext, "Floor", "Interior_Floor")
		case honeybee.AirBoundary:
			key = "Air_Boundary"
		}
		b[key] = append(b[key], f.Geometry)
		for _, ap := range f.Apertures {
			k := pick(isExterior(ap.BoundaryCondition), "Aperture", "Interior_Aperture")
			b[k] = append(b[k], ap.Geometry)
		}
		for _, d := range f.Doors {
			k := pick(isExterior(d.BoundaryCondition), "Door", "Interior_Door")
			if d.IsGlass {
				k = "Glass_Door"
			}
			b[k] = append(b[k], d.Geometry)
		}
	}
	return b
}

func bcBuckets(m *honeybee.Model) map[string][]geometry.Face3D {
	b := make(map[string][]geometry.Face3D)
	key := func(bc honeybee.BoundaryCondition) string {
		switch bc {
		case honeybee.Outdoors, honeybee.Ground, honeybee.Adiabatic, honeybee.Surface:
			return string(bc)
		}
		return "Other"
	}
	for _, s := range m.OrphanedShades {
		b["Other"] = append(b["Other"], s.Geometry)
	}
	for _, f := range m.Faces() {
		b[key(f.BoundaryCondition)] = append(b[key(f.BoundaryCondition)], f.Geometry)
		for _, ap := range f.Apertures {
			b[key(ap.BoundaryCondition)] = append(b[key(ap.BoundaryCondition)], ap.Geometry)
		}
		for _, d := range f.Doors {
			b[key(d.BoundaryCondition)] = append(b[key(d.BoundaryCondition)], d.Geometry)
		}
	}
	return b
}

func pick(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}

func categoryLayers(cats []category, buckets map[string][]geometry.Face3D, useMesh bool) []visualization.Geometry {
	var out []visualization.Geometry
	for _, c := range cats {
		faces := buckets[c.id]
		if len(faces) == 0 {
			continue
		}
		cg := visualization.NewContextGeometry(c.id, faceItems(faces, c.color, useMesh))
		cg.DisplayName = c.name
		out = append(out, cg)
	}
	return out
}

func faceItems(faces []geometry.Face3D, c geometry.Color, useMesh bool) []visualization.DisplayObject {
	if useMesh {
		return []visualization.DisplayObject{visualization.NewDisplayMesh3D(geometry.MeshFromFaces(faces), c)}
	}
	items := make([]visualization.DisplayObject, len(faces))
	for i, f := range faces {
		items[i] = visualization.NewDisplayFace3D(f, c)
	}
	return items
}

// =============================================================================
// Wireframe and grids
// =============================================================================

// wireframeLayer outlines every face, opening and shade of the model.
func wireframeLayer(m *honeybee.Model, id string) *visualization.ContextGeometry {
	var items []visualization.DisplayObject
	add := func(f geometry.Face3D) {
		for _, s := range f.Segments() {
			items = append(items, visualization.NewDisplayLineSegment3D(s, wireColor, 1))
		}
	}
	for _, f := range m.Faces() {
		add(f.Geometry)
		for _, ap := range f.Apertures {
			add(ap.Geometry)
		}
		for _, d := range f.Doors {
			add(d.Geometry)
		}
	}
	for _, s := range m.OrphanedShades {
		add(s.Geometry)
	}
	if len(items) == 0 {
		return nil
	}
	cg := visualization.NewContextGeometry(id, items)
	cg.DisplayName = "Wireframe"
	return cg
}

// gridLayer draws the model's sensor grids in the given mode. Mesh modes
// fall back to points for grids without a mesh.
func gridLayer(m *honeybee.Model, mode string) *visualization.ContextGeometry {
	if mode == GridNone || len(m.SensorGrids) == 0 {
		return nil
	}
	var items []visualization.DisplayObject
	for _, g := range m.SensorGrids {
		if g.Mesh == nil || mode == GridDefault || mode == GridPoints {
			for _, p := range g.Positions {
				items = append(items, &visualization.DisplayPoint3D{Point: p, Color: gridColor, Radius: 2})
			}
			continue
		}
		dm := visualization.NewDisplayMesh3D(*g.Mesh, gridColor)
		switch mode {
		case GridWireframe:
			dm.DisplayMode = visualization.DisplayWireframe
		case GridSurfaceWithEdges:
			dm.DisplayMode = visualization.DisplaySurfaceWithEdges
		}
		items = append(items, dm)
	}
	if len(items) == 0 {
		return nil
	}
	cg := visualization.NewContextGeometry("Sensor_Grids", items)
	cg.DisplayName = "Sensor Grids"
	return cg
}
