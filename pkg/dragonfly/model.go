package dragonfly

import (
	"encoding/json"
	"math"

	"github.com/ladybug-tools/dragonfly-display/pkg/geometry"
)

// Model is a district of buildings plus context shading.
type Model struct {
	Type           string          `json:"type"`
	Identifier     string          `json:"identifier"`
	DisplayName    string          `json:"display_name,omitempty"`
	Units          string          `json:"units,omitempty"`
	Tolerance      float64         `json:"tolerance,omitempty"`
	AngleTolerance float64         `json:"angle_tolerance,omitempty"` // degrees
	Buildings      []*Building     `json:"buildings"`
	ContextShades  []*ContextShade `json:"context_shades,omitempty"`
}

// Building groups the unique stories of one structure.
type Building struct {
	Type          string   `json:"type"`
	Identifier    string   `json:"identifier"`
	DisplayName   string   `json:"display_name,omitempty"`
	UniqueStories []*Story `json:"unique_stories"`
}

// Story is a floor level whose rooms may repeat through Multiplier.
type Story struct {
	Type               string    `json:"type"`
	Identifier         string    `json:"identifier"`
	DisplayName        string    `json:"display_name,omitempty"`
	FloorToFloorHeight float64   `json:"floor_to_floor_height"`
	FloorHeight        float64   `json:"floor_height"`
	Multiplier         int       `json:"multiplier,omitempty"`
	Room2Ds            []*Room2D `json:"room_2ds"`
}

// Room2D is a room described by an extruded floor footprint.
type Room2D struct {
	Type                 string               `json:"type"`
	Identifier           string               `json:"identifier"`
	DisplayName          string               `json:"display_name,omitempty"`
	FloorBoundary        []geometry.Point2D   `json:"floor_boundary"`
	FloorHeight          float64              `json:"floor_height"`
	FloorToCeilingHeight float64              `json:"floor_to_ceiling_height"`
	IsGroundContact      bool                 `json:"is_ground_contact,omitempty"`
	IsTopExposed         bool                 `json:"is_top_exposed,omitempty"`
	CeilingPlenumDepth   float64              `json:"ceiling_plenum_depth,omitempty"`
	FloorPlenumDepth     float64              `json:"floor_plenum_depth,omitempty"`
	Zone                 string               `json:"zone,omitempty"`
	Program              string               `json:"program,omitempty"`
	Construction         string               `json:"construction_set,omitempty"`
	BoundaryConditions   []*BoundaryCondition `json:"boundary_conditions,omitempty"`
	WindowParameters     []*WindowParameter   `json:"window_parameters,omitempty"`
	Skylight             *SkylightParameter   `json:"skylight_parameters,omitempty"`
}

// Boundary condition names shared with the room-level model.
const (
	Outdoors  = "Outdoors"
	Ground    = "Ground"
	Adiabatic = "Adiabatic"
	Surface   = "Surface"
)

// BoundaryCondition of one footprint segment. Surface conditions name
// the adjacent face and room in Objects.
type BoundaryCondition struct {
	Type    string   `json:"type"`
	Objects []string `json:"boundary_condition_objects,omitempty"`
}

// Window parameter types.
const (
	SimpleWindowRatio    = "SimpleWindowRatio"
	RepeatingWindowRatio = "RepeatingWindowRatio"
	SingleWindow         = "SingleWindow"
	DetailedWindows      = "DetailedWindows"
)

// GriddedSkylightRatio is the only supported skylight parameter type.
const GriddedSkylightRatio = "GriddedSkylightRatio"

// WindowParameter describes the openings of one footprint segment.
// Which fields apply depends on Type. DetailedWindows polygons are in
// wall coordinates: u along the segment from its start, v up from the floor.
type WindowParameter struct {
	Type                 string               `json:"type"`
	WindowRatio          float64              `json:"window_ratio,omitempty"`
	Width                float64              `json:"width,omitempty"`
	Height               float64              `json:"height,omitempty"`
	WindowHeight         float64              `json:"window_height,omitempty"`
	SillHeight           float64              `json:"sill_height,omitempty"`
	HorizontalSeparation float64              `json:"horizontal_separation,omitempty"`
	Polygons             [][]geometry.Point2D `json:"polygons,omitempty"`
	AreDoors             []bool               `json:"are_doors,omitempty"`
}

// SkylightParameter describes openings in an exposed roof.
type SkylightParameter struct {
	Type          string  `json:"type"`
	SkylightRatio float64 `json:"skylight_ratio"`
}

// ContextShade is shading geometry that is not part of any building.
type ContextShade struct {
	Type        string            `json:"type"`
	Identifier  string            `json:"identifier"`
	DisplayName string            `json:"display_name,omitempty"`
	Geometry    []geometry.Face3D `json:"geometry"`
}

// Name returns the display name, falling back to the identifier.
func (m *Model) Name() string { return nameOr(m.DisplayName, m.Identifier) }

// Name returns the display name, falling back to the identifier.
func (b *Building) Name() string { return nameOr(b.DisplayName, b.Identifier) }

// Name returns the display name, falling back to the identifier.
func (s *Story) Name() string { return nameOr(s.DisplayName, s.Identifier) }

// Name returns the display name, falling back to the identifier.
// UnmarshalJSON accepts the energy properties either flat on the room or
// nested under properties.energy as dragonfly writes them. Flat keys win.
func (r *Room2D) UnmarshalJSON(data []byte) error {
	type plain Room2D
	var aux struct {
		*plain
		Properties *struct {
			Energy *struct {
				ProgramType     string `json:"program_type"`
				ConstructionSet string `json:"construction_set"`
			} `json:"energy"`
		} `json:"properties"`
	}
	aux.plain = (*plain)(r)
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Properties == nil || aux.Properties.Energy == nil {
		return nil
	}
	if r.Program == "" {
		r.Program = aux.Properties.Energy.ProgramType
	}
	if r.Construction == "" {
		r.Construction = aux.Properties.Energy.ConstructionSet
	}
	return nil
}

func (r *Room2D) Name() string { return nameOr(r.DisplayName, r.Identifier) }

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

// RoomCount returns the number of unique Room2Ds in the model.
func (m *Model) RoomCount() int {
	n := 0
	for _, b := range m.Buildings {
		for _, s := range b.UniqueStories {
			n += len(s.Room2Ds)
		}
	}
	return n
}

// Ceiling returns the elevation of the room's top.
func (r *Room2D) Ceiling() float64 { return r.FloorHeight + r.FloorToCeilingHeight }

// FloorArea returns the footprint area.
func (r *Room2D) FloorArea() float64 { return geometry.FootprintArea(r.FloorBoundary) }

// multiplier returns the story multiplier, treating unset as 1.
func (s *Story) multiplier() int {
	if s.Multiplier < 1 {
		return 1
	}
	return s.Multiplier
}

// Height returns the elevation of the highest room top across all story
// repetitions.
func (b *Building) Height() float64 {
	top := math.Inf(-1)
	for _, s := range b.UniqueStories {
		extra := float64(s.multiplier()-1) * s.FloorToFloorHeight
		for _, r := range s.Room2Ds {
			top = math.Max(top, r.Ceiling()+extra)
		}
	}
	if math.IsInf(top, -1) {
		return 0
	}
	return top
}

// GroundHeight returns the lowest floor elevation of the building.
func (b *Building) GroundHeight() float64 {
	low := math.Inf(1)
	for _, s := range b.UniqueStories {
		for _, r := range s.Room2Ds {
			low = math.Min(low, r.FloorHeight)
		}
	}
	if math.IsInf(low, 1) {
		return 0
	}
	return low
}

// HeightAboveGround returns the building height measured from its lowest floor.
func (b *Building) HeightAboveGround() float64 { return b.Height() - b.GroundHeight() }

// FootprintArea returns the floor area of the rooms on the lowest story.
func (b *Building) FootprintArea() float64 {
	var lowest *Story
	for _, s := range b.UniqueStories {
		if len(s.Room2Ds) == 0 {
			continue
		}
		if lowest == nil || s.FloorHeight < lowest.FloorHeight {
			lowest = s
		}
	}
	if lowest == nil {
		return 0
	}
	var a float64
	for _, r := range lowest.Room2Ds {
		a += r.FloorArea()
	}
	return a
}

// AverageHeight returns the footprint-weighted average building height.
func (m *Model) AverageHeight() float64 {
	return m.weightedAverage((*Building).Height)
}

// AverageHeightAboveGround returns the footprint-weighted average of each
// building's height above its lowest floor.
func (m *Model) AverageHeightAboveGround() float64 {
	return m.weightedAverage((*Building).HeightAboveGround)
}

func (m *Model) weightedAverage(f func(*Building) float64) float64 {
	if len(m.Buildings) == 0 {
		return 0
	}
	var sum, weight, plain float64
	for _, b := range m.Buildings {
		v := f(b)
		a := b.FootprintArea()
		sum += v * a
		weight += a
		plain += v
	}
	if weight == 0 {
		return plain / float64(len(m.Buildings))
	}
	return sum / weight
}

// Min returns the lower-left corner of all room footprints and context
// shades in plan.
func (m *Model) Min() geometry.Point2D {
	lo, _ := m.bounds()
	return lo
}

// Max returns the upper-right corner of all room footprints and context
// shades in plan.
func (m *Model) Max() geometry.Point2D {
	_, hi := m.bounds()
	return hi
}

func (m *Model) bounds() (geometry.Point2D, geometry.Point2D) {
	lo := geometry.Point2D{X: math.Inf(1), Y: math.Inf(1)}
	hi := geometry.Point2D{X: math.Inf(-1), Y: math.Inf(-1)}
	grow := func(a, b geometry.Point2D) {
		lo.X, lo.Y = math.Min(lo.X, a.X), math.Min(lo.Y, a.Y)
		hi.X, hi.Y = math.Max(hi.X, b.X), math.Max(hi.Y, b.Y)
	}
	for _, b := range m.Buildings {
		for _, s := range b.UniqueStories {
			for _, r := range s.Room2Ds {
				if len(r.FloorBoundary) == 0 {
					continue
				}
				grow(geometry.FootprintBound(r.FloorBoundary))
			}
		}
	}
	for _, cs := range m.ContextShades {
		for _, f := range cs.Geometry {
			if len(f.Vertices) == 0 {
				continue
			}
			a, b := f.Min(), f.Max()
			grow(geometry.Point2D{X: a.X, Y: a.Y}, geometry.Point2D{X: b.X, Y: b.Y})
		}
	}
	if math.IsInf(lo.X, 1) {
		return geometry.Point2D{}, geometry.Point2D{}
	}
	return lo, hi
}

// ResetCoordinateSystem moves the model so that origin, given in the
// current coordinates, becomes the new origin. The model is changed in place.
func (m *Model) ResetCoordinateSystem(origin geometry.Point3D) {
	mv := geometry.Vector3D{X: -origin.X, Y: -origin.Y, Z: -origin.Z}
	for _, b := range m.Buildings {
		for _, s := range b.UniqueStories {
			s.FloorHeight += mv.Z
			for _, r := range s.Room2Ds {
				for i, p := range r.FloorBoundary {
					r.FloorBoundary[i] = geometry.Point2D{X: p.X + mv.X, Y: p.Y + mv.Y}
				}
				r.FloorHeight += mv.Z
			}
		}
	}
	for _, cs := range m.ContextShades {
		for i, f := range cs.Geometry {
			cs.Geometry[i] = f.Move(mv)
		}
	}
}

// Duplicate returns a deep copy of the model.
func (m *Model) Duplicate() *Model {
	out := *m
	out.Buildings = make([]*Building, len(m.Buildings))
	for i, b := range m.Buildings {
		nb := *b
		nb.UniqueStories = make([]*Story, len(b.UniqueStories))
		for j, s := range b.UniqueStories {
			ns := *s
			ns.Room2Ds = make([]*Room2D, len(s.Room2Ds))
			for k, r := range s.Room2Ds {
				ns.Room2Ds[k] = r.duplicate()
			}
			nb.UniqueStories[j] = &ns
		}
		out.Buildings[i] = &nb
	}
	out.ContextShades = make([]*ContextShade, len(m.ContextShades))
	for i, cs := range m.ContextShades {
		ncs := *cs
		ncs.Geometry = make([]geometry.Face3D, len(cs.Geometry))
		for j, f := range cs.Geometry {
			ncs.Geometry[j] = geometry.NewFace3D(f.Vertices...)
		}
		out.ContextShades[i] = &ncs
	}
	return &out
}

func (r *Room2D) duplicate() *Room2D {
	nr := *r
	nr.FloorBoundary = append([]geometry.Point2D(nil), r.FloorBoundary...)
	if r.BoundaryConditions != nil {
		nr.BoundaryConditions = make([]*BoundaryCondition, len(r.BoundaryConditions))
		for i, bc := range r.BoundaryConditions {
			if bc == nil {
				continue
			}
			nbc := *bc
			nbc.Objects = append([]string(nil), bc.Objects...)
			nr.BoundaryConditions[i] = &nbc
		}
	}
	if r.WindowParameters != nil {
		nr.WindowParameters = make([]*WindowParameter, len(r.WindowParameters))
		for i, wp := range r.WindowParameters {
			if wp == nil {
				continue
			}
			nwp := *wp
			nwp.Polygons = make([][]geometry.Point2D, len(wp.Polygons))
			for j, poly := range wp.Polygons {
				nwp.Polygons[j] = append([]geometry.Point2D(nil), poly...)
			}
			nwp.AreDoors = append([]bool(nil), wp.AreDoors...)
			nr.WindowParameters[i] = &nwp
		}
	}
	if r.Skylight != nil {
		sk := *r.Skylight
		nr.Skylight = &sk
	}
	return &nr
}
