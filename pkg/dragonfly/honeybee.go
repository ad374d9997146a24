package dragonfly

import (
	"fmt"
	"math"
	"strings"

	"github.com/ladybug-tools/dragonfly-display/pkg/errors"
	"github.com/ladybug-tools/dragonfly-display/pkg/geometry"
	"github.com/ladybug-tools/dragonfly-display/pkg/honeybee"
)

// ObjectPerModel decides how a district is split into room-level models.
type ObjectPerModel string

// Object-per-model values.
const (
	PerDistrict ObjectPerModel = "District"
	PerBuilding ObjectPerModel = "Building"
	PerStory    ObjectPerModel = "Story"
)

// MergeMethod decides which rooms are merged into one during conversion.
type MergeMethod string

// Merge methods.
const (
	MergeNone          MergeMethod = "None"
	MergeZones         MergeMethod = "Zones"
	MergePlenumZones   MergeMethod = "PlenumZones"
	MergeStories       MergeMethod = "Stories"
	MergePlenumStories MergeMethod = "PlenumStories"
)

var mergeMethods = []MergeMethod{MergeNone, MergeZones, MergePlenumZones, MergeStories, MergePlenumStories}

// ParseMergeMethod matches a merge method case-insensitively.
func ParseMergeMethod(s string) (MergeMethod, error) {
	for _, m := range mergeMethods {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidInput,
		"unrecognized merge method %q (choose from None, Zones, PlenumZones, Stories, PlenumStories)", s)
}

// HoneybeeOptions controls ToHoneybee.
type HoneybeeOptions struct {
	ObjectPerModel ObjectPerModel
	// UseMultiplier keeps one copy of each story and passes its multiplier
	// to the rooms. When false every repetition is written out in full.
	UseMultiplier bool
	// ExcludePlenums ignores plenum depths and translates each Room2D to a
	// single room of full height.
	ExcludePlenums bool
	// AddPlenum fills the gap between a room's ceiling and the next story
	// with a plenum room. Ignored when ExcludePlenums is set.
	AddPlenum bool
	// SolveCeilingAdjacencies pairs coplanar ceilings and floors of stacked
	// rooms with Surface conditions. No effect with PerStory.
	SolveCeilingAdjacencies bool
	MergeMethod             MergeMethod
	// EnforceAdj fails on unmatched Surface walls instead of turning them
	// to Outdoors.
	EnforceAdj bool
	// EnforceSolid fails on rooms that cannot form a closed volume instead
	// of skipping them.
	EnforceSolid bool
}

// DefaultHoneybeeOptions returns the options used when nothing is specified.
func DefaultHoneybeeOptions() HoneybeeOptions {
	return HoneybeeOptions{
		ObjectPerModel: PerDistrict,
		UseMultiplier:  true,
		MergeMethod:    MergeNone,
		EnforceSolid:   true,
	}
}

func (o *HoneybeeOptions) setDefaults() {
	if o.ObjectPerModel == "" {
		o.ObjectPerModel = PerDistrict
	}
	if o.MergeMethod == "" {
		o.MergeMethod = MergeNone
	}
}

func (o HoneybeeOptions) validate() error {
	switch o.ObjectPerModel {
	case PerDistrict, PerBuilding, PerStory:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unrecognized object-per-model %q", o.ObjectPerModel)
	}
	for _, m := range mergeMethods {
		if o.MergeMethod == m {
			return nil
		}
	}
	return errors.New(errors.ErrCodeInvalidInput, "unrecognized merge method %q", o.MergeMethod)
}

// storyCopy is one written-out repetition of a story.
type storyCopy struct {
	building *Building
	id       string
	rooms    []*honeybee.Room
	repeat   int     // multiplier carried by the rooms
	ftf      float64 // floor-to-floor height
}

// ToHoneybee converts the district into room-level models.
//
// Every Room2D becomes a room extruded from its footprint, plus plenum rooms
// when plenum depths are set. Surface walls are paired geometrically within
// each story. Floors that are neither ground contact nor covered by a room
// below become exposed (Outdoors).
//
// The number of returned models follows ObjectPerModel and is never zero.
func (m *Model) ToHoneybee(opts HoneybeeOptions) ([]*honeybee.Model, error) {
	opts.setDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	tol := m.tolerance()

	var copies []*storyCopy
	for _, b := range m.Buildings {
		for _, s := range b.UniqueStories {
			n := 1
			if !opts.UseMultiplier {
				n = s.multiplier()
			}
			for k := 0; k < n; k++ {
				sc := &storyCopy{building: b, id: s.Identifier, repeat: 1, ftf: s.FloorToFloorHeight}
				suffix := ""
				if k > 0 {
					suffix = fmt.Sprintf("_%d", k+1)
					sc.id += suffix
				}
				if opts.UseMultiplier {
					sc.repeat = s.multiplier()
				}
				ex := extrusion{
					story:  s,
					dz:     float64(k) * s.FloorToFloorHeight,
					suffix: suffix,
					first:  k == 0,
					last:   k == n-1,
				}
				for _, r := range s.Room2Ds {
					rooms, err := r.toRooms(ex, opts, tol)
					if err != nil {
						return nil, err
					}
					for _, hr := range rooms {
						hr.Multiplier = sc.repeat
						hr.Story = sc.id
					}
					sc.rooms = append(sc.rooms, rooms...)
				}
				if err := solveWallAdjacency(sc.rooms, opts.EnforceAdj, tol); err != nil {
					return nil, err
				}
				copies = append(copies, sc)
			}
		}
	}

	markExposedFloors(copies, tol)
	if opts.SolveCeilingAdjacencies && opts.ObjectPerModel != PerStory {
		solveCeilingAdjacency(copies, tol)
	}
	mergeRooms(copies, opts.MergeMethod)

	return m.splitModels(copies, opts.ObjectPerModel), nil
}

func (m *Model) tolerance() float64 {
	if m.Tolerance > 0 {
		return m.Tolerance
	}
	return 0.01
}

// =============================================================================
// Room2D extrusion
// =============================================================================

// extrusion places one repetition of a story.
type extrusion struct {
	story  *Story
	dz     float64
	suffix string
	first  bool // lowest repetition: ground contact applies
	last   bool // highest repetition: top exposure applies
}

type layer struct {
	id     string
	z0, z1 float64
	plenum bool
	main   bool
}

func (r *Room2D) layers(ex extrusion, opts HoneybeeOptions, tol float64) []layer {
	id := r.Identifier + ex.suffix
	z0 := r.FloorHeight + ex.dz
	z1 := z0 + r.FloorToCeilingHeight
	lo, hi := z0, z1

	var below, above []layer
	if !opts.ExcludePlenums {
		if d := r.FloorPlenumDepth; d > tol && d < hi-lo-tol {
			below = append(below, layer{id: id + "_Floor_Plenum", z0: lo, z1: lo + d, plenum: true})
			lo += d
		}
		if d := r.CeilingPlenumDepth; d > tol && d < hi-lo-tol {
			above = append(above, layer{id: id + "_Ceiling_Plenum", z0: hi - d, z1: hi, plenum: true})
			hi -= d
		}
		if opts.AddPlenum {
			top := ex.story.FloorHeight + ex.dz + ex.story.FloorToFloorHeight
			if top-z1 > tol {
				above = append(above, layer{id: id + "_Plenum", z0: z1, z1: top, plenum: true})
			}
		}
	}
	out := append(below, layer{id: id, z0: lo, z1: hi, main: true})
	return append(out, above...)
}

func (r *Room2D) toRooms(ex extrusion, opts HoneybeeOptions, tol float64) ([]*honeybee.Room, error) {
	if len(r.FloorBoundary) < 3 || r.FloorArea() <= tol*tol || r.FloorToCeilingHeight <= tol {
		if opts.EnforceSolid {
			return nil, errors.New(errors.ErrCodeInvalidModel,
				"room %q cannot be translated to a closed solid", r.Identifier)
		}
		return nil, nil
	}

	pts := r.FloorBoundary
	cw := geometry.IsClockwise(pts)
	layers := r.layers(ex, opts, tol)
	rooms := make([]*honeybee.Room, len(layers))

	for li, ly := range layers {
		room := &honeybee.Room{
			Identifier:  ly.id,
			DisplayName: r.Name(),
			Zone:        r.Zone,
			Program:     r.Program,
			IsPlenum:    ly.plenum,
		}
		if ly.plenum {
			room.DisplayName = ly.id
			room.Program = "Plenum"
		}
		n := len(pts)
		for i := range pts {
			p, q := pts[i], pts[(i+1)%n]
			wall := &honeybee.Face{
				Identifier:        fmt.Sprintf("%s..Face%d", ly.id, i+1),
				Type:              honeybee.Wall,
				BoundaryCondition: r.segmentCondition(i),
				Geometry:          wallFace(p, q, ly.z0, ly.z1, cw),
				Construction:      r.Construction,
			}
			if ly.main && wall.BoundaryCondition == honeybee.Outdoors {
				r.addOpenings(wall, i, p, q, ly.z0, ly.z1, tol)
			}
			room.Faces = append(room.Faces, wall)
		}

		floor := &honeybee.Face{
			Identifier:   fmt.Sprintf("%s..Face%d", ly.id, n+1),
			Type:         honeybee.Floor,
			Geometry:     horizontalFace(pts, ly.z0, false),
			Construction: r.Construction,
		}
		switch {
		case li > 0:
			floor.BoundaryCondition = honeybee.Surface
		case r.IsGroundContact && ex.first:
			floor.BoundaryCondition = honeybee.Ground
		default:
			floor.BoundaryCondition = honeybee.Adiabatic
		}

		roof := &honeybee.Face{
			Identifier:   fmt.Sprintf("%s..Face%d", ly.id, n+2),
			Type:         honeybee.RoofCeiling,
			Geometry:     horizontalFace(pts, ly.z1, true),
			Construction: r.Construction,
		}
		switch {
		case li < len(layers)-1:
			roof.BoundaryCondition = honeybee.Surface
		case r.IsTopExposed && ex.last:
			roof.BoundaryCondition = honeybee.Outdoors
			r.addSkylight(roof)
		default:
			roof.BoundaryCondition = honeybee.Adiabatic
		}
		room.Faces = append(room.Faces, floor, roof)
		rooms[li] = room
	}

	// pair the stacked layers
	for li := 1; li < len(rooms); li++ {
		lower, upper := rooms[li-1], rooms[li]
		ceil := lower.Faces[len(lower.Faces)-1]
		fl := upper.Faces[len(upper.Faces)-2]
		ceil.BCObjects = []string{fl.Identifier, upper.Identifier}
		fl.BCObjects = []string{ceil.Identifier, lower.Identifier}
	}
	return rooms, nil
}

func (r *Room2D) segmentCondition(i int) honeybee.BoundaryCondition {
	if i >= len(r.BoundaryConditions) || r.BoundaryConditions[i] == nil {
		return honeybee.Outdoors
	}
	switch strings.ToLower(r.BoundaryConditions[i].Type) {
	case "ground":
		return honeybee.Ground
	case "adiabatic":
		return honeybee.Adiabatic
	case "surface":
		return honeybee.Surface
	}
	return honeybee.Outdoors
}

// wallFace builds the wall over segment p→q. Walls face outward for a
// counterclockwise footprint, so clockwise footprints get flipped walls.
func wallFace(p, q geometry.Point2D, z0, z1 float64, cw bool) geometry.Face3D {
	f := geometry.NewFace3D(p.At(z0), q.At(z0), q.At(z1), p.At(z1))
	if cw {
		return f.Flip()
	}
	return f
}

// horizontalFace lifts the footprint to z, facing up when up is true.
func horizontalFace(pts []geometry.Point2D, z float64, up bool) geometry.Face3D {
	verts := make([]geometry.Point3D, len(pts))
	for i, p := range pts {
		verts[i] = p.At(z)
	}
	f := geometry.Face3D{Vertices: verts}
	if (f.Normal().Z > 0) != up {
		return f.Flip()
	}
	return f
}

// =============================================================================
// Openings
// =============================================================================

func (r *Room2D) addOpenings(wall *honeybee.Face, i int, p, q geometry.Point2D, z0, z1, tol float64) {
	if i >= len(r.WindowParameters) || r.WindowParameters[i] == nil {
		return
	}
	wp := r.WindowParameters[i]
	seg := geometry.Seg(p.At(z0), q.At(z0))
	length := seg.Length()
	height := z1 - z0
	dir := seg.Vector().Normalize()
	normal := wall.Geometry.Normal()

	// uv maps wall coordinates to model space.
	uv := func(u, v float64) geometry.Point3D {
		return p.At(z0).Move(dir.Scale(u)).Move(geometry.ZAxis.Scale(v))
	}
	rect := func(u0, u1, v0, v1 float64) geometry.Face3D {
		return geometry.NewFace3D(uv(u0, v0), uv(u1, v0), uv(u1, v1), uv(u0, v1))
	}
	orient := func(f geometry.Face3D) geometry.Face3D {
		if f.Normal().Dot(normal) < 0 {
			return f.Flip()
		}
		return f
	}
	addAperture := func(f geometry.Face3D) {
		wall.Apertures = append(wall.Apertures, &honeybee.Aperture{
			Identifier:        fmt.Sprintf("%s_Glz%d", wall.Identifier, len(wall.Apertures)),
			BoundaryCondition: honeybee.Outdoors,
			Geometry:          orient(f),
		})
	}

	switch wp.Type {
	case SimpleWindowRatio:
		if ratio := clampRatio(wp.WindowRatio); ratio > 0 {
			addAperture(rect(0, length, 0, height).ScaleFromCenter(math.Sqrt(ratio)))
		}
	case RepeatingWindowRatio:
		ratio := clampRatio(wp.WindowRatio)
		if ratio <= 0 {
			return
		}
		bays := 1
		if wp.HorizontalSeparation > tol {
			bays = int(math.Max(1, math.Floor(length/wp.HorizontalSeparation)))
		}
		w := length / float64(bays)
		for b := 0; b < bays; b++ {
			bay := rect(float64(b)*w, float64(b+1)*w, 0, height)
			addAperture(bay.ScaleFromCenter(math.Sqrt(ratio)))
		}
	case SingleWindow:
		w := math.Min(wp.Width, length-2*tol)
		v0 := math.Max(wp.SillHeight, tol)
		v1 := math.Min(wp.SillHeight+wp.Height, height-tol)
		if w <= tol || v1-v0 <= tol {
			return
		}
		u0 := (length - w) / 2
		addAperture(rect(u0, u0+w, v0, v1))
	case DetailedWindows:
		for k, poly := range wp.Polygons {
			if len(poly) < 3 {
				continue
			}
			verts := make([]geometry.Point3D, len(poly))
			for j, pt := range poly {
				verts[j] = uv(pt.X, pt.Y)
			}
			f := geometry.Face3D{Vertices: verts}
			if k < len(wp.AreDoors) && wp.AreDoors[k] {
				wall.Doors = append(wall.Doors, &honeybee.Door{
					Identifier:        fmt.Sprintf("%s_Door%d", wall.Identifier, len(wall.Doors)),
					BoundaryCondition: honeybee.Outdoors,
					Geometry:          orient(f),
				})
				continue
			}
			addAperture(f)
		}
	}
}

func (r *Room2D) addSkylight(roof *honeybee.Face) {
	if r.Skylight == nil || r.Skylight.Type != GriddedSkylightRatio {
		return
	}
	ratio := clampRatio(r.Skylight.SkylightRatio)
	if ratio <= 0 {
		return
	}
	roof.Apertures = append(roof.Apertures, &honeybee.Aperture{
		Identifier:        roof.Identifier + "_Glz0",
		BoundaryCondition: honeybee.Outdoors,
		Geometry:          roof.Geometry.ScaleFromCenter(math.Sqrt(ratio)),
	})
}

func clampRatio(r float64) float64 {
	return math.Max(0, math.Min(r, 0.99))
}

// =============================================================================
// Adjacency
// =============================================================================

// solveWallAdjacency pairs unmatched Surface walls with coincident walls of
// other rooms. Walls left without a partner become Outdoors unless enforce
// is set.
func solveWallAdjacency(rooms []*honeybee.Room, enforce bool, tol float64) error {
	for ai, a := range rooms {
		for _, fa := range a.Faces {
			if fa.Type != honeybee.Wall || fa.BoundaryCondition != honeybee.Surface || len(fa.BCObjects) > 0 {
				continue
			}
			matched := false
			for bi, b := range rooms {
				if bi == ai {
					continue
				}
				for _, fb := range b.Faces {
					if fb.Type != honeybee.Wall || fb.BoundaryCondition != honeybee.Surface || len(fb.BCObjects) > 0 {
						continue
					}
					if !sameOutline(fa.Geometry, fb.Geometry, tol) {
						continue
					}
					fa.BCObjects = []string{fb.Identifier, b.Identifier}
					fb.BCObjects = []string{fa.Identifier, a.Identifier}
					matched = true
					break
				}
				if matched {
					break
				}
			}
			if matched {
				continue
			}
			if enforce {
				return errors.New(errors.ErrCodeInvalidModel,
					"wall %q has a Surface boundary condition but no matching adjacent wall", fa.Identifier)
			}
			fa.BoundaryCondition = honeybee.Outdoors
		}
	}
	return nil
}

// sameOutline reports whether two faces share all vertices within tol.
func sameOutline(a, b geometry.Face3D, tol float64) bool {
	if len(a.Vertices) != len(b.Vertices) {
		return false
	}
	for _, p := range a.Vertices {
		found := false
		for _, q := range b.Vertices {
			if p.IsEquivalent(q, tol) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

type roomTop struct {
	z    float64
	plan []geometry.Point2D
}

// markExposedFloors turns interior floors with nothing underneath into
// exposed (Outdoors) floors. Rooms carrying a multiplier cover every
// repetition of their story.
func markExposedFloors(copies []*storyCopy, tol float64) {
	tops := make(map[*Building][]roomTop)
	for _, sc := range copies {
		for _, room := range sc.rooms {
			for _, f := range room.Faces {
				if f.Type != honeybee.RoofCeiling {
					continue
				}
				plan := geometry.Plan(f.Geometry.Vertices)
				z := f.Geometry.Vertices[0].Z
				for k := 0; k < sc.repeat; k++ {
					tops[sc.building] = append(tops[sc.building], roomTop{z: z + float64(k)*sc.ftf, plan: plan})
				}
			}
		}
	}
	for _, sc := range copies {
		for _, room := range sc.rooms {
			for _, f := range room.Faces {
				if f.Type != honeybee.Floor || f.BoundaryCondition != honeybee.Adiabatic {
					continue
				}
				z := f.Geometry.Vertices[0].Z
				c := geometry.FootprintCentroid(geometry.Plan(f.Geometry.Vertices))
				covered := false
				for _, t := range tops[sc.building] {
					if math.Abs(t.z-z) <= tol && geometry.RingContains(t.plan, c) {
						covered = true
						break
					}
				}
				if !covered {
					f.BoundaryCondition = honeybee.Outdoors
				}
			}
		}
	}
}

// solveCeilingAdjacency pairs interior ceilings with the coincident floors
// above them within each building.
func solveCeilingAdjacency(copies []*storyCopy, tol float64) {
	type owned struct {
		face *honeybee.Face
		room *honeybee.Room
	}
	ceilings := make(map[*Building][]owned)
	floors := make(map[*Building][]owned)
	for _, sc := range copies {
		for _, room := range sc.rooms {
			for _, f := range room.Faces {
				if f.BoundaryCondition != honeybee.Adiabatic {
					continue
				}
				switch f.Type {
				case honeybee.RoofCeiling:
					ceilings[sc.building] = append(ceilings[sc.building], owned{f, room})
				case honeybee.Floor:
					floors[sc.building] = append(floors[sc.building], owned{f, room})
				}
			}
		}
	}
	for b, cs := range ceilings {
		for _, c := range cs {
			for _, fl := range floors[b] {
				if fl.face.BoundaryCondition != honeybee.Adiabatic || fl.room == c.room {
					continue
				}
				if !sameOutline(c.face.Geometry, fl.face.Geometry, tol) {
					continue
				}
				c.face.BoundaryCondition = honeybee.Surface
				c.face.BCObjects = []string{fl.face.Identifier, fl.room.Identifier}
				fl.face.BoundaryCondition = honeybee.Surface
				fl.face.BCObjects = []string{c.face.Identifier, c.room.Identifier}
				break
			}
		}
	}
}

// =============================================================================
// Merging
// =============================================================================

// mergeKey returns the group a room merges into, or "" to keep it alone.
func mergeKey(method MergeMethod, sc *storyCopy, r *honeybee.Room) (key, id string) {
	zone := r.Zone
	switch method {
	case MergeZones:
		if zone == "" {
			return "", ""
		}
		if r.IsPlenum {
			return "plenum:" + zone, zone + "_Plenum"
		}
		return "zone:" + zone, zone
	case MergePlenumZones:
		if !r.IsPlenum || zone == "" {
			return "", ""
		}
		return "plenum:" + zone, zone + "_Plenum"
	case MergeStories:
		if r.IsPlenum {
			return "plenum", sc.id + "_Plenum"
		}
		return "story", sc.id + "_Room"
	case MergePlenumStories:
		if !r.IsPlenum {
			return "", ""
		}
		return "plenum", sc.id + "_Plenum"
	}
	return "", ""
}

// mergeRooms combines rooms of each story copy according to method. Faces
// separating two members of a group are dropped and Surface references to
// merged rooms are renamed.
func mergeRooms(copies []*storyCopy, method MergeMethod) {
	if method == MergeNone {
		return
	}
	renamed := make(map[string]string)
	for _, sc := range copies {
		var out []*honeybee.Room
		groups := make(map[string]*honeybee.Room)
		members := make(map[string]map[string]bool)
		for _, r := range sc.rooms {
			key, id := mergeKey(method, sc, r)
			if key == "" {
				out = append(out, r)
				continue
			}
			g, ok := groups[key]
			if !ok {
				g = &honeybee.Room{
					Identifier:  id,
					DisplayName: id,
					Multiplier:  r.Multiplier,
					Story:       r.Story,
					Zone:        r.Zone,
					Program:     r.Program,
					IsPlenum:    r.IsPlenum,
				}
				groups[key] = g
				members[key] = make(map[string]bool)
				out = append(out, g)
			}
			if g.Program != r.Program {
				g.Program = ""
			}
			members[key][r.Identifier] = true
			renamed[r.Identifier] = id
			g.Faces = append(g.Faces, r.Faces...)
		}
		for key, g := range groups {
			kept := g.Faces[:0]
			for _, f := range g.Faces {
				if f.BoundaryCondition == honeybee.Surface && len(f.BCObjects) == 2 && members[key][f.BCObjects[1]] {
					continue
				}
				kept = append(kept, f)
			}
			g.Faces = kept
		}
		sc.rooms = out
	}
	for _, sc := range copies {
		for _, r := range sc.rooms {
			for _, f := range r.Faces {
				if len(f.BCObjects) == 2 {
					if id, ok := renamed[f.BCObjects[1]]; ok {
						f.BCObjects[1] = id
					}
				}
			}
		}
	}
}

// =============================================================================
// Model assembly
// =============================================================================

func (m *Model) newHoneybeeModel(id, name string) *honeybee.Model {
	atol := m.AngleTolerance
	if atol <= 0 {
		atol = 1
	}
	hb := &honeybee.Model{
		Identifier:     id,
		DisplayName:    name,
		Units:          m.Units,
		Tolerance:      m.tolerance(),
		AngleTolerance: atol,
	}
	for _, cs := range m.ContextShades {
		for i, f := range cs.Geometry {
			sid := cs.Identifier
			if len(cs.Geometry) > 1 {
				sid = fmt.Sprintf("%s_%d", cs.Identifier, i)
			}
			hb.OrphanedShades = append(hb.OrphanedShades, &honeybee.Shade{
				Identifier:  sid,
				DisplayName: nameOr(cs.DisplayName, cs.Identifier),
				Geometry:    f,
			})
		}
	}
	return hb
}

func (m *Model) splitModels(copies []*storyCopy, per ObjectPerModel) []*honeybee.Model {
	var models []*honeybee.Model
	switch per {
	case PerBuilding:
		byBuilding := make(map[*Building]*honeybee.Model)
		for _, sc := range copies {
			hb, ok := byBuilding[sc.building]
			if !ok {
				hb = m.newHoneybeeModel(sc.building.Identifier, sc.building.Name())
				byBuilding[sc.building] = hb
				models = append(models, hb)
			}
			hb.Rooms = append(hb.Rooms, sc.rooms...)
		}
	case PerStory:
		for _, sc := range copies {
			hb := m.newHoneybeeModel(sc.id, sc.id)
			hb.Rooms = sc.rooms
			models = append(models, hb)
		}
	default:
		hb := m.newHoneybeeModel(m.Identifier, m.Name())
		for _, sc := range copies {
			hb.Rooms = append(hb.Rooms, sc.rooms...)
		}
		models = append(models, hb)
	}
	if len(models) == 0 {
		models = append(models, m.newHoneybeeModel(m.Identifier, m.Name()))
	}
	return models
}
