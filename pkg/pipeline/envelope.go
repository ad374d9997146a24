package pipeline

import (
	"math"
	"strings"

	"github.com/ladybug-tools/dragonfly-display/pkg/display"
	"github.com/ladybug-tools/dragonfly-display/pkg/dragonfly"
	"github.com/ladybug-tools/dragonfly-display/pkg/errors"
	"github.com/ladybug-tools/dragonfly-display/pkg/geometry"
	"github.com/ladybug-tools/dragonfly-display/pkg/honeybee"
	"github.com/ladybug-tools/dragonfly-display/pkg/visualization"
)

// ExcludeCoplanar selects which coplanar wall edges are left out of an
// envelope edge set.
type ExcludeCoplanar string

// Coplanar exclusion modes.
const (
	// ExcludeNone keeps every wall edge.
	ExcludeNone ExcludeCoplanar = "None"
	// FloorPlatesOnly drops coplanar wall edges but draws the horizontal
	// ones where interior floors meet the walls.
	FloorPlatesOnly ExcludeCoplanar = "FloorPlatesOnly"
	// ExcludeAll drops every coplanar wall edge.
	ExcludeAll ExcludeCoplanar = "All"
)

var excludeModes = []ExcludeCoplanar{ExcludeNone, FloorPlatesOnly, ExcludeAll}

// ParseExcludeCoplanar matches a mode case-insensitively.
func ParseExcludeCoplanar(s string) (ExcludeCoplanar, error) {
	for _, m := range excludeModes {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidInput,
		"unrecognized exclude-coplanar %q (choose from None, FloorPlatesOnly, All)", s)
}

// InteriorFloorsID identifies the layer of interior floor plate edges.
const InteriorFloorsID = "Interior_Floors_to_Walls"

// InteriorFloorsLineWidth is the line width of the interior floor layer.
const InteriorFloorsLineWidth = 2

// InteriorFloorsColor is the color of the interior floor layer.
var InteriorFloorsColor = geometry.RGB(200, 255, 200)

// layers the interior floor layer is drawn in front of, first match wins
var interiorFloorsBefore = map[string]bool{
	honeybee.WallsToWalls: true,
	honeybee.RoofRidges:   true,
	honeybee.RoofsToRoofs: true,
}

// EnvelopeEdgesToVisSet builds the classified envelope edges of a district
// model.
func EnvelopeEdgesToVisSet(m *dragonfly.Model, opts Options) (*visualization.VisualizationSet, error) {
	if m == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "model is nil")
	}
	opts.SetEnvelopeDefaults()
	mode, err := ParseExcludeCoplanar(string(opts.ExcludeCoplanar))
	if err != nil {
		return nil, err
	}
	if opts.ResetCoordinates {
		NormalizeCoordinates(m)
	}
	hb, err := ToRoomModel(m, opts)
	if err != nil {
		return nil, err
	}
	vs, err := display.ModelEnvelopeEdgesToVisSet(hb, mode != ExcludeNone, opts.LineWidth)
	if err != nil {
		return nil, err
	}
	if mode == FloorPlatesOnly {
		if err := AddInteriorFloors(vs, hb); err != nil {
			return nil, err
		}
	}
	opts.Logger.Debug("built envelope visualization set", "model", m.Identifier, "mode", mode, "layers", vs.Len())
	return vs, nil
}

// AddInteriorFloors adds the horizontal wall-to-wall edges of hb to vs as
// the Interior_Floors_to_Walls layer. The layer goes in front of the first
// Walls_to_Walls, Roof_Ridges or Roofs_to_Roofs layer, or last when there
// is none. Nothing is added when no edge is horizontal.
func AddInteriorFloors(vs *visualization.VisualizationSet, hb *honeybee.Model) error {
	segs := horizontalSegments(
		hb.ClassifiedEnvelopeEdges(false).Get(honeybee.WallsToWalls),
		hb.AngleToleranceRadians(),
	)
	if len(segs) == 0 {
		return nil
	}
	at := -1
	for i, g := range vs.Geometry() {
		if interiorFloorsBefore[g.ID()] {
			at = i
			break
		}
	}
	layer := display.EdgeLayer(InteriorFloorsID, segs, InteriorFloorsColor, InteriorFloorsLineWidth)
	return vs.AddGeometry(layer, at)
}

// horizontalSegments keeps the segments at a right angle to the Z axis,
// within tol radians.
func horizontalSegments(segs []geometry.LineSegment3D, tol float64) []geometry.LineSegment3D {
	lo, hi := math.Pi/2-tol, math.Pi/2+tol
	var out []geometry.LineSegment3D
	for _, s := range segs {
		if s.Length() == 0 {
			continue
		}
		if a := s.Vector().Angle(geometry.ZAxis); a >= lo && a <= hi {
			out = append(out, s)
		}
	}
	return out
}
