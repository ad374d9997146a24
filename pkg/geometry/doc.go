// Package geometry provides the small set of 3D primitives shared by the
// district model, the room-level model, and visualization sets.
//
// # Core Types
//
//   - [Point2D], [Point3D], [Vector3D]: coordinates and directions
//   - [LineSegment3D]: edges, wireframes, classified envelope edges
//   - [Face3D]: planar polygons (room faces, apertures, doors)
//   - [Mesh3D]: triangulated faces for fast display
//   - [Plane]: text placement
//   - [Color]: RGBA colors with hex parsing
//
// All values are plain structs; methods that transform geometry return new
// values unless documented as in-place.
//
// Footprint-level 2D work (orientation, area, bounds) is delegated to
// [github.com/paulmach/orb] through [Ring].
package geometry
