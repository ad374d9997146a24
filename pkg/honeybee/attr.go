package honeybee

import (
	"math"
	"strings"

	"github.com/ladybug-tools/dragonfly-display/pkg/geometry"
)

// Attribute paths use dots to separate nested properties, for example
// "properties.energy.program_type". A path resolves to a float64 or a
// string. Unknown paths resolve to nothing.

// Attr resolves a dotted attribute path on the room.
func (r *Room) Attr(path string) (any, bool) {
	switch normalizePath(path) {
	case "identifier":
		return r.Identifier, true
	case "display_name":
		return r.Name(), true
	case "floor_area":
		return r.FloorArea(), true
	case "volume":
		return r.Volume(), true
	case "exterior_wall_area":
		return r.ExteriorWallArea(), true
	case "multiplier":
		return float64(r.Multiplier), true
	case "story":
		return r.Story, r.Story != ""
	case "zone":
		return r.Zone, r.Zone != ""
	case "program", "program_type", "properties.energy.program_type":
		return r.Program, r.Program != ""
	case "is_plenum":
		if r.IsPlenum {
			return "True", true
		}
		return "False", true
	}
	return nil, false
}

// Attr resolves a dotted attribute path on the face.
func (f *Face) Attr(path string) (any, bool) {
	switch normalizePath(path) {
	case "identifier":
		return f.Identifier, true
	case "display_name":
		return f.Name(), true
	case "area":
		return f.Geometry.Area(), true
	case "type", "face_type":
		return string(f.Type), true
	case "boundary_condition":
		return string(f.BoundaryCondition), true
	case "construction", "properties.energy.construction":
		return f.Construction, f.Construction != ""
	case "aperture_count":
		return float64(len(f.Apertures)), true
	case "aperture_area":
		var a float64
		for _, ap := range f.Apertures {
			a += ap.Geometry.Area()
		}
		return a, true
	case "altitude":
		n := f.Geometry.Normal()
		return 90 - n.Angle(geometry.ZAxis)*180/math.Pi, true
	}
	return nil, false
}

func normalizePath(path string) string {
	p := strings.ToLower(strings.TrimSpace(path))
	return strings.TrimSuffix(p, ".display_name")
}
