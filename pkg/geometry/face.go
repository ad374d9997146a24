package geometry

import "math"

// Face3D is a planar polygon given by its boundary vertices in order.
// The boundary is implicitly closed.
type Face3D struct {
	Vertices []Point3D `json:"boundary"`
}

// NewFace3D builds a face from its boundary vertices.
func NewFace3D(pts ...Point3D) Face3D {
	return Face3D{Vertices: append([]Point3D(nil), pts...)}
}

// newell returns the Newell sum, which is twice the area times the unit normal.
func (f Face3D) newell() Vector3D {
	var n Vector3D
	for i, p := range f.Vertices {
		q := f.Vertices[(i+1)%len(f.Vertices)]
		n.X += (p.Y - q.Y) * (p.Z + q.Z)
		n.Y += (p.Z - q.Z) * (p.X + q.X)
		n.Z += (p.X - q.X) * (p.Y + q.Y)
	}
	return n
}

// Normal returns the unit normal following the right-hand rule on the
// boundary order.
func (f Face3D) Normal() Vector3D { return f.newell().Normalize() }

// Area returns the polygon area.
func (f Face3D) Area() float64 { return f.newell().Magnitude() / 2 }

// Center returns the vertex average, which is adequate for label placement.
func (f Face3D) Center() Point3D {
	if len(f.Vertices) == 0 {
		return Point3D{}
	}
	var c Point3D
	for _, p := range f.Vertices {
		c.X += p.X
		c.Y += p.Y
		c.Z += p.Z
	}
	n := float64(len(f.Vertices))
	return Point3D{c.X / n, c.Y / n, c.Z / n}
}

// Min returns the lower corner of the bounding box.
func (f Face3D) Min() Point3D {
	return bound(f.Vertices, math.Min)
}

// Max returns the upper corner of the bounding box.
func (f Face3D) Max() Point3D {
	return bound(f.Vertices, math.Max)
}

func bound(pts []Point3D, pick func(a, b float64) float64) Point3D {
	if len(pts) == 0 {
		return Point3D{}
	}
	b := pts[0]
	for _, p := range pts[1:] {
		b.X = pick(b.X, p.X)
		b.Y = pick(b.Y, p.Y)
		b.Z = pick(b.Z, p.Z)
	}
	return b
}

// Segments returns the boundary edges, including the closing edge.
func (f Face3D) Segments() []LineSegment3D {
	segs := make([]LineSegment3D, 0, len(f.Vertices))
	for i, p := range f.Vertices {
		segs = append(segs, LineSegment3D{P1: p, P2: f.Vertices[(i+1)%len(f.Vertices)]})
	}
	return segs
}

// Flip returns the face with reversed vertex order (and normal).
func (f Face3D) Flip() Face3D {
	out := make([]Point3D, len(f.Vertices))
	for i, p := range f.Vertices {
		out[len(f.Vertices)-1-i] = p
	}
	return Face3D{Vertices: out}
}

// Move returns the face displaced by v.
func (f Face3D) Move(v Vector3D) Face3D {
	out := make([]Point3D, len(f.Vertices))
	for i, p := range f.Vertices {
		out[i] = p.Move(v)
	}
	return Face3D{Vertices: out}
}

// Plane returns the plane of the face anchored at its center.
func (f Face3D) Plane() Plane {
	return NewPlane(f.Center(), f.Normal())
}

// IsHorizontal reports whether the face normal is within atol radians of
// the world Z axis (either direction).
func (f Face3D) IsHorizontal(atol float64) bool {
	return f.Normal().IsParallel(ZAxis, atol)
}

// ScaleFromCenter returns the face scaled about its center by the linear
// factor s. Used to derive aperture geometry from window ratios.
func (f Face3D) ScaleFromCenter(s float64) Face3D {
	c := f.Center()
	out := make([]Point3D, len(f.Vertices))
	for i, p := range f.Vertices {
		out[i] = c.Move(p.Sub(c).Scale(s))
	}
	return Face3D{Vertices: out}
}

// Triangulate returns a triangle mesh covering the face using ear clipping
// on a projection to the face's dominant plane. Triangles keep the
// orientation of the face normal.
func (f Face3D) Triangulate() Mesh3D {
	n := len(f.Vertices)
	if n < 3 {
		return Mesh3D{}
	}
	verts := append([]Point3D(nil), f.Vertices...)
	if n == 3 {
		return Mesh3D{Vertices: verts, Faces: [][]int{{0, 1, 2}}}
	}

	pts := project(verts, f.newell())
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	if signedArea(pts) < 0 {
		for i, j := 0, len(idx)-1; i < j; i, j = i+1, j-1 {
			idx[i], idx[j] = idx[j], idx[i]
		}
	}

	var tris [][]int
	for len(idx) > 3 {
		clipped := false
		for i := range idx {
			a := idx[(i+len(idx)-1)%len(idx)]
			b := idx[i]
			c := idx[(i+1)%len(idx)]
			if !isEar(pts, idx, a, b, c) {
				continue
			}
			tris = append(tris, []int{a, b, c})
			idx = append(idx[:i], idx[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			break
		}
	}
	// degenerate remainder (collinear runs): fan it
	for i := 1; i+1 < len(idx); i++ {
		tris = append(tris, []int{idx[0], idx[i], idx[i+1]})
	}

	normal := f.Normal()
	for _, t := range tris {
		tn := verts[t[1]].Sub(verts[t[0]]).Cross(verts[t[2]].Sub(verts[t[0]]))
		if tn.Dot(normal) < 0 {
			t[1], t[2] = t[2], t[1]
		}
	}
	return Mesh3D{Vertices: verts, Faces: tris}
}

// project drops the dominant axis of the normal.
func project(pts []Point3D, normal Vector3D) []Point2D {
	ax, ay, az := math.Abs(normal.X), math.Abs(normal.Y), math.Abs(normal.Z)
	out := make([]Point2D, len(pts))
	for i, p := range pts {
		switch {
		case az >= ax && az >= ay:
			out[i] = Point2D{p.X, p.Y}
		case ax >= ay:
			out[i] = Point2D{p.Y, p.Z}
		default:
			out[i] = Point2D{p.X, p.Z}
		}
	}
	return out
}

func signedArea(pts []Point2D) float64 {
	var a float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}

func cross2(o, a, b Point2D) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

const earEpsilon = 1e-12

func isEar(pts []Point2D, idx []int, a, b, c int) bool {
	if cross2(pts[a], pts[b], pts[c]) <= earEpsilon {
		return false
	}
	for _, k := range idx {
		if k == a || k == b || k == c {
			continue
		}
		if inTriangle(pts[k], pts[a], pts[b], pts[c]) {
			return false
		}
	}
	return true
}

func inTriangle(p, a, b, c Point2D) bool {
	return cross2(a, b, p) >= -earEpsilon &&
		cross2(b, c, p) >= -earEpsilon &&
		cross2(c, a, p) >= -earEpsilon
}
