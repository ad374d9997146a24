package display

import (
	"math"
	"sort"
	"strings"

	"github.com/ladybug-tools/dragonfly-display/pkg/display/attr"
	"github.com/ladybug-tools/dragonfly-display/pkg/geometry"
	"github.com/ladybug-tools/dragonfly-display/pkg/honeybee"
	"github.com/ladybug-tools/dragonfly-display/pkg/visualization"
)

// Attribute layer identifiers.
const (
	RoomAttributesID = "Room_Attributes"
	FaceAttributesID = "Face_Attributes"
)

// roomAttributeLayers returns one analysis layer holding a data set per
// color attribute, followed by one label layer per text attribute.
func roomAttributeLayers(m *honeybee.Model, attrs []attr.RoomAttribute) []visualization.Geometry {
	if len(attrs) == 0 {
		return nil
	}
	var out []visualization.Geometry
	var data []*visualization.VisualizationData
	for _, a := range attrs {
		if !a.Color {
			continue
		}
		values := make([]resolved, len(m.Rooms))
		for i, r := range m.Rooms {
			values[i].v, values[i].ok = a.Resolve(r)
		}
		data = append(data, dataSet(a.Name, values))
	}
	if len(data) > 0 {
		meshes := make([]geometry.Mesh3D, len(m.Rooms))
		for i, r := range m.Rooms {
			meshes[i] = roomMesh(r)
		}
		ag := visualization.NewAnalysisGeometry(RoomAttributesID, meshes, data...)
		ag.DisplayName = "Room Attributes"
		out = append(out, ag)
	}
	for _, a := range attrs {
		if !a.Text {
			continue
		}
		items := make([]visualization.DisplayObject, len(m.Rooms))
		for i, r := range m.Rooms {
			v, ok := a.Resolve(r)
			plane := geometry.NewPlane(r.FloorCenter(), geometry.ZAxis)
			items[i] = visualization.NewDisplayText3D(attr.Label(v, ok), plane, roomTextHeight(r), textColor)
		}
		cg := visualization.NewContextGeometry("Room_"+layerName(a.Name), items)
		cg.DisplayName = "Room " + a.Name
		out = append(out, cg)
	}
	return out
}

// faceAttributeLayers mirrors roomAttributeLayers for the room faces.
func faceAttributeLayers(m *honeybee.Model, attrs []attr.FaceAttribute) []visualization.Geometry {
	if len(attrs) == 0 {
		return nil
	}
	faces := m.Faces()
	var out []visualization.Geometry
	var data []*visualization.VisualizationData
	for _, a := range attrs {
		if !a.Color {
			continue
		}
		values := make([]resolved, len(faces))
		for i, f := range faces {
			values[i].v, values[i].ok = a.Resolve(f)
		}
		data = append(data, dataSet(a.Name, values))
	}
	if len(data) > 0 {
		meshes := make([]geometry.Mesh3D, len(faces))
		for i, f := range faces {
			meshes[i] = f.Geometry.Triangulate()
		}
		ag := visualization.NewAnalysisGeometry(FaceAttributesID, meshes, data...)
		ag.DisplayName = "Face Attributes"
		out = append(out, ag)
	}
	for _, a := range attrs {
		if !a.Text {
			continue
		}
		items := make([]visualization.DisplayObject, len(faces))
		for i, f := range faces {
			v, ok := a.Resolve(f)
			n := f.Geometry.Normal()
			origin := f.Geometry.Center().Move(n.Scale(0.01))
			h := math.Max(0.05, math.Sqrt(f.Geometry.Area())/10)
			items[i] = visualization.NewDisplayText3D(attr.Label(v, ok), geometry.NewPlane(origin, n), h, textColor)
		}
		cg := visualization.NewContextGeometry("Face_"+layerName(a.Name), items)
		cg.DisplayName = "Face " + a.Name
		out = append(out, cg)
	}
	return out
}

type resolved struct {
	v  any
	ok bool
}

// dataSet turns resolved values into a data set. All-numeric values keep
// their magnitude; anything else becomes categories sorted by label, with
// N/A for elements where nothing resolved.
func dataSet(name string, values []resolved) *visualization.VisualizationData {
	numeric := true
	nums := make([]float64, len(values))
	for i, r := range values {
		f, ok := r.v.(float64)
		if !r.ok || !ok {
			numeric = false
			break
		}
		nums[i] = f
	}
	if numeric {
		return &visualization.VisualizationData{
			Values: nums,
			Legend: &visualization.LegendParameters{Title: name},
		}
	}

	labels := make([]string, len(values))
	seen := make(map[string]bool)
	var cats []string
	for i, r := range values {
		labels[i] = attr.Label(r.v, r.ok)
		if !seen[labels[i]] {
			seen[labels[i]] = true
			cats = append(cats, labels[i])
		}
	}
	sort.Strings(cats)
	index := make(map[string]int, len(cats))
	for i, c := range cats {
		index[c] = i
	}
	vals := make([]float64, len(labels))
	for i, l := range labels {
		vals[i] = float64(index[l])
	}
	return &visualization.VisualizationData{
		Values: vals,
		Legend: &visualization.LegendParameters{
			Title:      name,
			Categories: cats,
			Colors:     visualization.CategoryColors(len(cats)),
		},
	}
}

// roomMesh is the room's floors, or all of its faces when it has none.
func roomMesh(r *honeybee.Room) geometry.Mesh3D {
	var floors []geometry.Face3D
	for _, f := range r.Faces {
		if f.Type == honeybee.Floor {
			floors = append(floors, f.Geometry.Move(geometry.Vector3D{Z: 0.01}))
		}
	}
	if len(floors) == 0 {
		for _, f := range r.Faces {
			floors = append(floors, f.Geometry)
		}
	}
	return geometry.MeshFromFaces(floors)
}

func roomTextHeight(r *honeybee.Room) float64 {
	return math.Max(0.1, math.Sqrt(r.FloorArea())/8)
}

// layerName turns an attribute name into an identifier fragment.
func layerName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '.', '/', '\\', ',', ';', ':':
			return '_'
		}
		return r
	}, name)
}
