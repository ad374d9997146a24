package honeybee

import (
	"math"

	"github.com/ladybug-tools/dragonfly-display/pkg/geometry"
)

// Envelope edge categories, in the order they are reported.
const (
	RoofsToWalls          = "Roofs_to_Walls"
	SlabsToWalls          = "Slabs_to_Walls"
	ExposedFloorsToWalls  = "Exposed_Floors_to_Walls"
	WallsToWalls          = "Walls_to_Walls"
	RoofRidges            = "Roof_Ridges"
	RoofsToRoofs          = "Roofs_to_Roofs"
	ExposedFloorsToFloors = "Exposed_Floors_to_Floors"
	WindowFrames          = "Window_Frames"
	SkylightFrames        = "Skylight_Frames"
	DoorFrames            = "Door_Frames"
	Mullions              = "Mullions"
)

// EdgeCategories lists every category ClassifiedEnvelopeEdges reports.
var EdgeCategories = []string{
	RoofsToWalls, SlabsToWalls, ExposedFloorsToWalls, WallsToWalls,
	RoofRidges, RoofsToRoofs, ExposedFloorsToFloors,
	WindowFrames, SkylightFrames, DoorFrames, Mullions,
}

// EdgeGroup is one category of classified edges.
type EdgeGroup struct {
	Category string
	Segments []geometry.LineSegment3D
}

// EnvelopeEdges holds every category in EdgeCategories order, including
// empty ones.
type EnvelopeEdges []EdgeGroup

// Get returns the segments of a category.
func (e EnvelopeEdges) Get(category string) []geometry.LineSegment3D {
	for _, g := range e {
		if g.Category == category {
			return g.Segments
		}
	}
	return nil
}

type surfaceKind int

const (
	kindNone surfaceKind = iota
	kindWall
	kindRoof
	kindSlab
	kindExposedFloor
)

func kindOf(f *Face) surfaceKind {
	if f.BoundaryCondition != Outdoors && f.BoundaryCondition != Ground {
		return kindNone
	}
	switch f.Type {
	case Wall:
		return kindWall
	case RoofCeiling:
		return kindRoof
	case Floor:
		if f.BoundaryCondition == Ground {
			return kindSlab
		}
		return kindExposedFloor
	}
	return kindNone
}

func pairCategory(a, b surfaceKind) string {
	if a > b {
		a, b = b, a
	}
	switch {
	case a == kindWall && b == kindWall:
		return WallsToWalls
	case a == kindWall && b == kindRoof:
		return RoofsToWalls
	case a == kindWall && b == kindSlab:
		return SlabsToWalls
	case a == kindWall && b == kindExposedFloor:
		return ExposedFloorsToWalls
	case a == kindRoof && b == kindRoof:
		return RoofsToRoofs
	case a == kindExposedFloor && b == kindExposedFloor:
		return ExposedFloorsToFloors
	}
	return ""
}

type envelopeFace struct {
	face   *Face
	kind   surfaceKind
	normal geometry.Vector3D
	lo, hi geometry.Point3D
}

// ClassifiedEnvelopeEdges classifies the edges where exterior faces of the
// model meet. When excludeCoplanar is true, junctions between faces that
// lie in the same plane and face the same way are left out.
func (m *Model) ClassifiedEnvelopeEdges(excludeCoplanar bool) EnvelopeEdges {
	tol := m.Tolerance
	if tol <= 0 {
		tol = 0.01
	}
	atol := m.AngleToleranceRadians()
	if atol <= 0 {
		atol = math.Pi / 180
	}

	groups := make(map[string][]geometry.LineSegment3D, len(EdgeCategories))
	add := func(cat string, s geometry.LineSegment3D) {
		for _, e := range groups[cat] {
			if e.IsEquivalent(s, tol) {
				return
			}
		}
		groups[cat] = append(groups[cat], s)
	}

	var env []envelopeFace
	for _, f := range m.Faces() {
		k := kindOf(f)
		if k == kindNone {
			continue
		}
		env = append(env, envelopeFace{
			face:   f,
			kind:   k,
			normal: f.Geometry.Normal(),
			lo:     f.Geometry.Min(),
			hi:     f.Geometry.Max(),
		})
	}

	for i := range env {
		for j := i + 1; j < len(env); j++ {
			a, b := env[i], env[j]
			cat := pairCategory(a.kind, b.kind)
			if cat == "" || !boxesTouch(a, b, tol) {
				continue
			}
			if excludeCoplanar && a.normal.Dot(b.normal) > 0 && a.normal.IsParallel(b.normal, atol) {
				continue
			}
			for _, sa := range a.face.Geometry.Segments() {
				for _, sb := range b.face.Geometry.Segments() {
					ov, ok := sa.Overlap(sb, tol)
					if !ok {
						continue
					}
					if cat == RoofsToRoofs && isRidge(a, b, ov, tol, atol) {
						add(RoofRidges, ov)
						continue
					}
					add(cat, ov)
				}
			}
		}
	}

	for _, e := range env {
		switch e.kind {
		case kindWall:
			openingEdges(e.face.Apertures, WindowFrames, tol, add)
		case kindRoof:
			openingEdges(e.face.Apertures, SkylightFrames, tol, add)
		}
		for _, d := range e.face.Doors {
			for _, s := range d.Geometry.Segments() {
				add(DoorFrames, s)
			}
		}
	}

	out := make(EnvelopeEdges, 0, len(EdgeCategories))
	for _, c := range EdgeCategories {
		out = append(out, EdgeGroup{Category: c, Segments: groups[c]})
	}
	return out
}

// openingEdges splits aperture outlines into frames and mullions. A mullion
// is an edge fully shared by two apertures of the same face.
func openingEdges(aps []*Aperture, frameCat string, tol float64, add func(string, geometry.LineSegment3D)) {
	for i, ap := range aps {
		for _, s := range ap.Geometry.Segments() {
			shared := false
			for j, other := range aps {
				if i == j {
					continue
				}
				for _, o := range other.Geometry.Segments() {
					ov, ok := s.Overlap(o, tol)
					if ok && ov.Length() >= s.Length()-tol {
						shared = true
						break
					}
				}
				if shared {
					break
				}
			}
			if shared {
				add(Mullions, s)
			} else {
				add(frameCat, s)
			}
		}
	}
}

// isRidge reports whether a roof-to-roof edge is the horizontal top line of
// two sloped roofs.
func isRidge(a, b envelopeFace, s geometry.LineSegment3D, tol, atol float64) bool {
	if a.face.Geometry.IsHorizontal(atol) || b.face.Geometry.IsHorizontal(atol) {
		return false
	}
	if math.Abs(s.P1.Z-s.P2.Z) > tol {
		return false
	}
	return s.P1.Z >= a.hi.Z-tol && s.P1.Z >= b.hi.Z-tol
}

func boxesTouch(a, b envelopeFace, tol float64) bool {
	return a.lo.X <= b.hi.X+tol && b.lo.X <= a.hi.X+tol &&
		a.lo.Y <= b.hi.Y+tol && b.lo.Y <= a.hi.Y+tol &&
		a.lo.Z <= b.hi.Z+tol && b.lo.Z <= a.hi.Z+tol
}
