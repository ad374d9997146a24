package geometry

import "math"

// LineSegment3D is a straight edge between two points.
type LineSegment3D struct {
	P1 Point3D `json:"p1"`
	P2 Point3D `json:"p2"`
}

// Seg is shorthand for constructing a LineSegment3D.
func Seg(p1, p2 Point3D) LineSegment3D { return LineSegment3D{P1: p1, P2: p2} }

// Vector returns the displacement from P1 to P2.
func (s LineSegment3D) Vector() Vector3D { return s.P2.Sub(s.P1) }

// Length returns the segment length.
func (s LineSegment3D) Length() float64 { return s.Vector().Magnitude() }

// Midpoint returns the center of the segment.
func (s LineSegment3D) Midpoint() Point3D {
	return s.P1.Move(s.Vector().Scale(0.5))
}

// Move returns the segment displaced by v.
func (s LineSegment3D) Move(v Vector3D) LineSegment3D {
	return LineSegment3D{P1: s.P1.Move(v), P2: s.P2.Move(v)}
}

// IsEquivalent reports whether both segments share endpoints within tol,
// regardless of direction.
func (s LineSegment3D) IsEquivalent(o LineSegment3D, tol float64) bool {
	return (s.P1.IsEquivalent(o.P1, tol) && s.P2.IsEquivalent(o.P2, tol)) ||
		(s.P1.IsEquivalent(o.P2, tol) && s.P2.IsEquivalent(o.P1, tol))
}

// DistanceToLine returns the distance from p to the infinite line through s.
func (s LineSegment3D) DistanceToLine(p Point3D) float64 {
	d := s.Vector().Normalize()
	return p.Sub(s.P1).Cross(d).Magnitude()
}

// Overlap returns the shared portion of two collinear segments. ok is false
// when the segments are not collinear within tol or share less than tol of
// length.
func (s LineSegment3D) Overlap(o LineSegment3D, tol float64) (LineSegment3D, bool) {
	l := s.Length()
	if l <= tol || o.Length() <= tol {
		return LineSegment3D{}, false
	}
	if s.DistanceToLine(o.P1) > tol || s.DistanceToLine(o.P2) > tol {
		return LineSegment3D{}, false
	}
	d := s.Vector().Scale(1 / l)
	t1 := o.P1.Sub(s.P1).Dot(d)
	t2 := o.P2.Sub(s.P1).Dot(d)
	lo := math.Max(0, math.Min(t1, t2))
	hi := math.Min(l, math.Max(t1, t2))
	if hi-lo <= tol {
		return LineSegment3D{}, false
	}
	return LineSegment3D{P1: s.P1.Move(d.Scale(lo)), P2: s.P1.Move(d.Scale(hi))}, true
}
