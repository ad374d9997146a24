// Package honeybee holds the room-level building model produced from a
// district model.
//
// Rooms are closed polyhedra made of typed faces. Each face carries a
// boundary condition and may host apertures and doors. The model is
// ephemeral: it is built per conversion, consumed by the visualization
// builders and discarded.
package honeybee

import (
	"math"

	"github.com/ladybug-tools/dragonfly-display/pkg/geometry"
)

// FaceType classifies a room face.
type FaceType string

// Face types.
const (
	Wall        FaceType = "Wall"
	Floor       FaceType = "Floor"
	RoofCeiling FaceType = "RoofCeiling"
	AirBoundary FaceType = "AirBoundary"
)

// BoundaryCondition names what lies on the other side of a face.
type BoundaryCondition string

// Boundary conditions.
const (
	Outdoors  BoundaryCondition = "Outdoors"
	Ground    BoundaryCondition = "Ground"
	Adiabatic BoundaryCondition = "Adiabatic"
	Surface   BoundaryCondition = "Surface"
)

// IsInterior reports whether the condition faces another conditioned space.
func (bc BoundaryCondition) IsInterior() bool {
	return bc == Surface || bc == Adiabatic
}

// Model is a collection of rooms plus shades not attached to any room.
type Model struct {
	Identifier     string        `json:"identifier"`
	DisplayName    string        `json:"display_name,omitempty"`
	Units          string        `json:"units,omitempty"`
	Tolerance      float64       `json:"tolerance"`
	AngleTolerance float64       `json:"angle_tolerance"` // degrees
	Rooms          []*Room       `json:"rooms"`
	OrphanedShades []*Shade      `json:"orphaned_shades,omitempty"`
	SensorGrids    []*SensorGrid `json:"sensor_grids,omitempty"`
}

// Room is a closed volume.
type Room struct {
	Identifier  string  `json:"identifier"`
	DisplayName string  `json:"display_name,omitempty"`
	Faces       []*Face `json:"faces"`
	Multiplier  int     `json:"multiplier"`
	Story       string  `json:"story,omitempty"`
	Zone        string  `json:"zone,omitempty"`
	Program     string  `json:"program,omitempty"`
	IsPlenum    bool    `json:"is_plenum,omitempty"`
}

// Face is one planar boundary of a room.
type Face struct {
	Identifier        string            `json:"identifier"`
	DisplayName       string            `json:"display_name,omitempty"`
	Type              FaceType          `json:"face_type"`
	BoundaryCondition BoundaryCondition `json:"boundary_condition"`
	// BCObjects names the adjacent face then room for Surface conditions.
	BCObjects    []string        `json:"boundary_condition_objects,omitempty"`
	Geometry     geometry.Face3D `json:"geometry"`
	Apertures    []*Aperture     `json:"apertures,omitempty"`
	Doors        []*Door         `json:"doors,omitempty"`
	Construction string          `json:"construction,omitempty"`
}

// Aperture is a glazed opening in a face.
type Aperture struct {
	Identifier        string            `json:"identifier"`
	DisplayName       string            `json:"display_name,omitempty"`
	BoundaryCondition BoundaryCondition `json:"boundary_condition"`
	Geometry          geometry.Face3D   `json:"geometry"`
}

// Door is an opaque (or glass) opening in a face.
type Door struct {
	Identifier        string            `json:"identifier"`
	DisplayName       string            `json:"display_name,omitempty"`
	BoundaryCondition BoundaryCondition `json:"boundary_condition"`
	IsGlass           bool              `json:"is_glass,omitempty"`
	Geometry          geometry.Face3D   `json:"geometry"`
}

// Shade is shading geometry.
type Shade struct {
	Identifier  string          `json:"identifier"`
	DisplayName string          `json:"display_name,omitempty"`
	IsIndoor    bool            `json:"is_indoor,omitempty"`
	Geometry    geometry.Face3D `json:"geometry"`
}

// SensorGrid is a set of analysis points, optionally with the mesh whose
// face centers they sit on.
type SensorGrid struct {
	Identifier  string             `json:"identifier"`
	DisplayName string             `json:"display_name,omitempty"`
	Positions   []geometry.Point3D `json:"positions"`
	Mesh        *geometry.Mesh3D   `json:"mesh,omitempty"`
}

// Name returns the display name, falling back to the identifier.
func (m *Model) Name() string { return nameOr(m.DisplayName, m.Identifier) }

// Name returns the display name, falling back to the identifier.
func (r *Room) Name() string { return nameOr(r.DisplayName, r.Identifier) }

// Name returns the display name, falling back to the identifier.
func (f *Face) Name() string { return nameOr(f.DisplayName, f.Identifier) }

func nameOr(name, id string) string {
	if name != "" {
		return name
	}
	return id
}

// AngleToleranceRadians returns the model angle tolerance in radians.
func (m *Model) AngleToleranceRadians() float64 {
	return m.AngleTolerance * math.Pi / 180
}

// Faces returns every room face in room order.
func (m *Model) Faces() []*Face {
	var out []*Face
	for _, r := range m.Rooms {
		out = append(out, r.Faces...)
	}
	return out
}

// Apertures returns every aperture in face order.
func (m *Model) Apertures() []*Aperture {
	var out []*Aperture
	for _, f := range m.Faces() {
		out = append(out, f.Apertures...)
	}
	return out
}

// Doors returns every door in face order.
func (m *Model) Doors() []*Door {
	var out []*Door
	for _, f := range m.Faces() {
		out = append(out, f.Doors...)
	}
	return out
}

// Room looks up a room by identifier.
func (m *Model) Room(id string) *Room {
	for _, r := range m.Rooms {
		if r.Identifier == id {
			return r
		}
	}
	return nil
}

// Min returns the lower corner of the model bounding box.
func (m *Model) Min() geometry.Point3D {
	lo, _ := m.bounds()
	return lo
}

// Max returns the upper corner of the model bounding box.
func (m *Model) Max() geometry.Point3D {
	_, hi := m.bounds()
	return hi
}

func (m *Model) bounds() (geometry.Point3D, geometry.Point3D) {
	var pts []geometry.Point3D
	for _, f := range m.Faces() {
		pts = append(pts, f.Geometry.Vertices...)
	}
	for _, s := range m.OrphanedShades {
		pts = append(pts, s.Geometry.Vertices...)
	}
	all := geometry.Face3D{Vertices: pts}
	return all.Min(), all.Max()
}

// FloorArea returns the summed area of the room's floor faces.
func (r *Room) FloorArea() float64 {
	var a float64
	for _, f := range r.Faces {
		if f.Type == Floor {
			a += f.Geometry.Area()
		}
	}
	return a
}

// ExteriorWallArea returns the summed area of walls facing outdoors.
func (r *Room) ExteriorWallArea() float64 {
	var a float64
	for _, f := range r.Faces {
		if f.Type == Wall && f.BoundaryCondition == Outdoors {
			a += f.Geometry.Area()
		}
	}
	return a
}

// Volume returns the enclosed volume using the divergence theorem over the
// triangulated faces. Faces are expected to point outward.
func (r *Room) Volume() float64 {
	var v float64
	for _, f := range r.Faces {
		m := f.Geometry.Triangulate()
		for _, t := range m.Faces {
			a := m.Vertices[t[0]]
			b := m.Vertices[t[1]]
			c := m.Vertices[t[2]]
			av := geometry.Vector3D{X: a.X, Y: a.Y, Z: a.Z}
			bv := geometry.Vector3D{X: b.X, Y: b.Y, Z: b.Z}
			cv := geometry.Vector3D{X: c.X, Y: c.Y, Z: c.Z}
			v += av.Dot(bv.Cross(cv)) / 6
		}
	}
	return math.Abs(v)
}

// Center returns the center of the room bounding box.
func (r *Room) Center() geometry.Point3D {
	var pts []geometry.Point3D
	for _, f := range r.Faces {
		pts = append(pts, f.Geometry.Vertices...)
	}
	all := geometry.Face3D{Vertices: pts}
	lo, hi := all.Min(), all.Max()
	return geometry.Pt3((lo.X+hi.X)/2, (lo.Y+hi.Y)/2, (lo.Z+hi.Z)/2)
}

// FloorCenter returns a point slightly above the center of the room's
// largest floor, used to place labels.
func (r *Room) FloorCenter() geometry.Point3D {
	var best *Face
	for _, f := range r.Faces {
		if f.Type == Floor && (best == nil || f.Geometry.Area() > best.Geometry.Area()) {
			best = f
		}
	}
	if best == nil {
		return r.Center()
	}
	c := best.Geometry.Center()
	c.Z += 0.01
	return c
}
