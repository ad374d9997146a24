package geometry

import (
	"encoding/json"
	"fmt"
	"math"
)

// Point2D is a coordinate in the XY plane.
// Serialized as a two element array.
type Point2D struct {
	X, Y float64
}

// Point3D is a coordinate in model space.
// Serialized as a three element array.
type Point3D struct {
	X, Y, Z float64
}

// Vector3D is a direction or displacement in model space.
type Vector3D struct {
	X, Y, Z float64
}

// ZAxis is the world up vector.
var ZAxis = Vector3D{0, 0, 1}

// Pt3 is shorthand for constructing a Point3D.
func Pt3(x, y, z float64) Point3D { return Point3D{X: x, Y: y, Z: z} }

// At lifts a 2D point to the given elevation.
func (p Point2D) At(z float64) Point3D { return Point3D{X: p.X, Y: p.Y, Z: z} }

// Sub returns the vector from o to p.
func (p Point3D) Sub(o Point3D) Vector3D {
	return Vector3D{p.X - o.X, p.Y - o.Y, p.Z - o.Z}
}

// Move returns p displaced by v.
func (p Point3D) Move(v Vector3D) Point3D {
	return Point3D{p.X + v.X, p.Y + v.Y, p.Z + v.Z}
}

// DistanceTo returns the Euclidean distance between p and o.
func (p Point3D) DistanceTo(o Point3D) float64 { return p.Sub(o).Magnitude() }

// IsEquivalent reports whether p and o coincide within tol.
func (p Point3D) IsEquivalent(o Point3D, tol float64) bool {
	return math.Abs(p.X-o.X) <= tol && math.Abs(p.Y-o.Y) <= tol && math.Abs(p.Z-o.Z) <= tol
}

// Array returns the coordinates as a slice, the layout used in dictionaries.
func (p Point3D) Array() []float64 { return []float64{p.X, p.Y, p.Z} }

// Add returns v + o.
func (v Vector3D) Add(o Vector3D) Vector3D { return Vector3D{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Scale returns v multiplied by s.
func (v Vector3D) Scale(s float64) Vector3D { return Vector3D{v.X * s, v.Y * s, v.Z * s} }

// Reverse returns -v.
func (v Vector3D) Reverse() Vector3D { return Vector3D{-v.X, -v.Y, -v.Z} }

// Dot returns the dot product.
func (v Vector3D) Dot(o Vector3D) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product v × o.
func (v Vector3D) Cross(o Vector3D) Vector3D {
	return Vector3D{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Magnitude returns the length of v.
func (v Vector3D) Magnitude() float64 { return math.Sqrt(v.Dot(v)) }

// Normalize returns a unit vector in the direction of v.
// The zero vector is returned unchanged.
func (v Vector3D) Normalize() Vector3D {
	m := v.Magnitude()
	if m == 0 {
		return v
	}
	return v.Scale(1 / m)
}

// Angle returns the angle between v and o in radians, in [0, π].
func (v Vector3D) Angle(o Vector3D) float64 {
	m := v.Magnitude() * o.Magnitude()
	if m == 0 {
		return 0
	}
	c := v.Dot(o) / m
	// clamp rounding noise so Acos stays defined
	c = math.Max(-1, math.Min(1, c))
	return math.Acos(c)
}

// IsParallel reports whether v and o point along the same line (either
// direction) within the angle tolerance atol (radians).
func (v Vector3D) IsParallel(o Vector3D, atol float64) bool {
	a := v.Angle(o)
	return a <= atol || math.Pi-a <= atol
}

// MarshalJSON encodes the point as [x, y].
func (p Point2D) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.X, p.Y})
}

// UnmarshalJSON decodes [x, y]; a trailing z is ignored.
func (p *Point2D) UnmarshalJSON(b []byte) error {
	var a []float64
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if len(a) < 2 {
		return fmt.Errorf("point2d needs 2 coordinates, got %d", len(a))
	}
	p.X, p.Y = a[0], a[1]
	return nil
}

// MarshalJSON encodes the point as [x, y, z].
func (p Point3D) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Array())
}

// UnmarshalJSON decodes [x, y, z].
func (p *Point3D) UnmarshalJSON(b []byte) error {
	var a []float64
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if len(a) != 3 {
		return fmt.Errorf("point3d needs 3 coordinates, got %d", len(a))
	}
	p.X, p.Y, p.Z = a[0], a[1], a[2]
	return nil
}

// MarshalJSON encodes the vector as [x, y, z].
func (v Vector3D) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]float64{v.X, v.Y, v.Z})
}

// UnmarshalJSON decodes [x, y, z].
func (v *Vector3D) UnmarshalJSON(b []byte) error {
	var p Point3D
	if err := p.UnmarshalJSON(b); err != nil {
		return err
	}
	*v = Vector3D(p)
	return nil
}
