package geometry

import (
	"math"
	"testing"
)

const tol = 1e-9

func square(z float64) Face3D {
	return NewFace3D(Pt3(0, 0, z), Pt3(10, 0, z), Pt3(10, 10, z), Pt3(0, 10, z))
}

func TestFaceNormalAndArea(t *testing.T) {
	tests := []struct {
		name   string
		face   Face3D
		normal Vector3D
		area   float64
	}{
		{"ccw floor", square(0), Vector3D{0, 0, 1}, 100},
		{"cw floor", square(0).Flip(), Vector3D{0, 0, -1}, 100},
		{"wall", NewFace3D(Pt3(0, 0, 0), Pt3(5, 0, 0), Pt3(5, 0, 3), Pt3(0, 0, 3)), Vector3D{0, -1, 0}, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tt.face.Normal()
			if vecDist(n, tt.normal) > tol {
				t.Errorf("Normal() = %+v, want %+v", n, tt.normal)
			}
			if got := tt.face.Area(); math.Abs(got-tt.area) > tol {
				t.Errorf("Area() = %v, want %v", got, tt.area)
			}
		})
	}
}

func vecDist(a, b Vector3D) float64 {
	return a.Add(b.Reverse()).Magnitude()
}

func TestTriangulate(t *testing.T) {
	lshape := NewFace3D(
		Pt3(0, 0, 0), Pt3(10, 0, 0), Pt3(10, 5, 0),
		Pt3(5, 5, 0), Pt3(5, 10, 0), Pt3(0, 10, 0),
	)
	tests := []struct {
		name string
		face Face3D
		tris int
		area float64
	}{
		{"triangle", NewFace3D(Pt3(0, 0, 0), Pt3(1, 0, 0), Pt3(0, 1, 0)), 1, 0.5},
		{"square", square(3), 2, 100},
		{"flipped square", square(3).Flip(), 2, 100},
		{"concave", lshape, 4, 75},
		{"wall", NewFace3D(Pt3(0, 0, 0), Pt3(5, 0, 0), Pt3(5, 0, 3), Pt3(0, 0, 3)), 2, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.face.Triangulate()
			if m.FaceCount() != tt.tris {
				t.Fatalf("FaceCount() = %d, want %d", m.FaceCount(), tt.tris)
			}
			var area float64
			normal := tt.face.Normal()
			for _, f := range m.Faces {
				tri := NewFace3D(m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]])
				area += tri.Area()
				if tri.Normal().Dot(normal) < 0 {
					t.Errorf("triangle %v is flipped against the face normal", f)
				}
			}
			if math.Abs(area-tt.area) > 1e-6 {
				t.Errorf("triangulated area = %v, want %v", area, tt.area)
			}
		})
	}
}

func TestTriangulateDegenerate(t *testing.T) {
	if m := NewFace3D(Pt3(0, 0, 0), Pt3(1, 0, 0)).Triangulate(); !m.IsEmpty() {
		t.Errorf("two-point face produced %d faces", m.FaceCount())
	}
}

func TestJoinMeshes(t *testing.T) {
	a := square(0).Triangulate()
	b := square(1).Triangulate()
	j := JoinMeshes(a, b)
	if len(j.Vertices) != 8 || j.FaceCount() != 4 {
		t.Fatalf("joined mesh has %d vertices / %d faces", len(j.Vertices), j.FaceCount())
	}
	for _, f := range j.Faces[2:] {
		for _, v := range f {
			if v < 4 {
				t.Errorf("second mesh face %v was not re-indexed", f)
			}
		}
	}
}

func TestSegmentOverlap(t *testing.T) {
	base := Seg(Pt3(0, 0, 0), Pt3(10, 0, 0))
	tests := []struct {
		name   string
		other  LineSegment3D
		ok     bool
		length float64
	}{
		{"identical", base, true, 10},
		{"reversed", Seg(Pt3(10, 0, 0), Pt3(0, 0, 0)), true, 10},
		{"partial", Seg(Pt3(5, 0, 0), Pt3(15, 0, 0)), true, 5},
		{"touching", Seg(Pt3(10, 0, 0), Pt3(20, 0, 0)), false, 0},
		{"parallel offset", Seg(Pt3(0, 1, 0), Pt3(10, 1, 0)), false, 0},
		{"crossing", Seg(Pt3(5, -5, 0), Pt3(5, 5, 0)), false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := base.Overlap(tt.other, 1e-6)
			if ok != tt.ok {
				t.Fatalf("Overlap() ok = %v, want %v", ok, tt.ok)
			}
			if ok && math.Abs(got.Length()-tt.length) > 1e-6 {
				t.Errorf("Overlap() length = %v, want %v", got.Length(), tt.length)
			}
		})
	}
}

func TestSegmentIsEquivalent(t *testing.T) {
	s := Seg(Pt3(0, 0, 0), Pt3(1, 1, 1))
	if !s.IsEquivalent(Seg(Pt3(1, 1, 1), Pt3(0, 0, 0)), tol) {
		t.Error("reversed segment should be equivalent")
	}
	if s.IsEquivalent(Seg(Pt3(0, 0, 0), Pt3(1, 1, 2)), tol) {
		t.Error("different segment should not be equivalent")
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#ff0000", Color{255, 0, 0, 255}, false},
		{"00ff00", Color{0, 255, 0, 255}, false},
		{"#0000ff80", Color{0, 0, 255, 128}, false},
		{"#abc", Color{0xaa, 0xbb, 0xcc, 255}, false},
		{"#12345", Color{}, true},
		{"#gg0000", Color{}, true},
		{"", Color{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestColorHex(t *testing.T) {
	if got := RGB(200, 255, 200).Hex(); got != "#c8ffc8" {
		t.Errorf("Hex() = %q", got)
	}
	if got := RGB(1, 2, 3).WithAlpha(128).Hex(); got != "#01020380" {
		t.Errorf("Hex() = %q", got)
	}
}

func TestFootprint(t *testing.T) {
	ccw := []Point2D{{0, 0}, {4, 0}, {4, 2}, {0, 2}}
	cw := []Point2D{{0, 0}, {0, 2}, {4, 2}, {4, 0}}

	if IsClockwise(ccw) {
		t.Error("ccw footprint reported clockwise")
	}
	if !IsClockwise(cw) {
		t.Error("cw footprint not reported clockwise")
	}
	if a := FootprintArea(cw); math.Abs(a-8) > tol {
		t.Errorf("FootprintArea() = %v, want 8", a)
	}
	lo, hi := FootprintBound(ccw)
	if lo != (Point2D{0, 0}) || hi != (Point2D{4, 2}) {
		t.Errorf("FootprintBound() = %v, %v", lo, hi)
	}
	if c := FootprintCentroid(ccw); math.Abs(c.X-2) > tol || math.Abs(c.Y-1) > tol {
		t.Errorf("FootprintCentroid() = %v", c)
	}
}

func TestNewPlane(t *testing.T) {
	p := NewPlane(Pt3(0, 0, 0), Vector3D{0, 0, 2})
	if p.XAxis != (Vector3D{1, 0, 0}) {
		t.Errorf("horizontal plane XAxis = %+v", p.XAxis)
	}
	w := NewPlane(Pt3(0, 0, 0), Vector3D{0, -1, 0})
	if math.Abs(w.XAxis.Z) > tol || math.Abs(w.XAxis.Magnitude()-1) > tol {
		t.Errorf("vertical plane XAxis = %+v", w.XAxis)
	}
}
