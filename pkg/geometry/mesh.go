package geometry

// Mesh3D is an indexed triangle (or polygon) mesh.
type Mesh3D struct {
	Vertices []Point3D `json:"vertices"`
	Faces    [][]int   `json:"faces"`
}

// FaceCount returns the number of mesh faces.
func (m Mesh3D) FaceCount() int { return len(m.Faces) }

// IsEmpty reports whether the mesh has no faces.
func (m Mesh3D) IsEmpty() bool { return len(m.Faces) == 0 }

// Move returns a translated copy of the mesh.
func (m Mesh3D) Move(v Vector3D) Mesh3D {
	out := Mesh3D{Vertices: make([]Point3D, len(m.Vertices)), Faces: m.Faces}
	for i, p := range m.Vertices {
		out.Vertices[i] = p.Move(v)
	}
	return out
}

// Edges returns each distinct mesh edge once.
func (m Mesh3D) Edges() []LineSegment3D {
	type key struct{ a, b int }
	seen := make(map[key]bool)
	var out []LineSegment3D
	for _, f := range m.Faces {
		for i, a := range f {
			b := f[(i+1)%len(f)]
			k := key{min(a, b), max(a, b)}
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, Seg(m.Vertices[a], m.Vertices[b]))
		}
	}
	return out
}

// JoinMeshes concatenates meshes into one, re-indexing faces.
func JoinMeshes(meshes ...Mesh3D) Mesh3D {
	var out Mesh3D
	for _, m := range meshes {
		offset := len(out.Vertices)
		out.Vertices = append(out.Vertices, m.Vertices...)
		for _, f := range m.Faces {
			nf := make([]int, len(f))
			for i, v := range f {
				nf[i] = v + offset
			}
			out.Faces = append(out.Faces, nf)
		}
	}
	return out
}

// MeshFromFaces triangulates and joins a list of faces.
func MeshFromFaces(faces []Face3D) Mesh3D {
	meshes := make([]Mesh3D, 0, len(faces))
	for _, f := range faces {
		meshes = append(meshes, f.Triangulate())
	}
	return JoinMeshes(meshes...)
}

// Plane is an oriented plane used for placing text.
type Plane struct {
	Origin Point3D  `json:"o"`
	Normal Vector3D `json:"n"`
	XAxis  Vector3D `json:"x"`
}

// NewPlane builds a plane with an X axis derived from the normal: horizontal
// planes use world X, others use the horizontal direction in the plane.
func NewPlane(origin Point3D, normal Vector3D) Plane {
	n := normal.Normalize()
	x := ZAxis.Cross(n)
	if x.Magnitude() < 1e-9 {
		x = Vector3D{1, 0, 0}
	}
	return Plane{Origin: origin, Normal: n, XAxis: x.Normalize()}
}
