package geometry

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Ring converts a 2D boundary to a closed orb ring.
func Ring(pts []Point2D) orb.Ring {
	ring := make(orb.Ring, 0, len(pts)+1)
	for _, p := range pts {
		ring = append(ring, orb.Point{p.X, p.Y})
	}
	if len(ring) > 0 && !ring.Closed() {
		ring = append(ring, ring[0])
	}
	return ring
}

// IsClockwise reports whether the boundary winds clockwise seen from +Z.
func IsClockwise(pts []Point2D) bool {
	return Ring(pts).Orientation() == orb.CW
}

// FootprintArea returns the enclosed area of a 2D boundary.
func FootprintArea(pts []Point2D) float64 {
	if len(pts) < 3 {
		return 0
	}
	return planar.Area(orb.Polygon{Ring(pts)})
}

// FootprintBound returns the lower-left and upper-right corners of a
// 2D boundary.
func FootprintBound(pts []Point2D) (Point2D, Point2D) {
	b := Ring(pts).Bound()
	return Point2D{b.Min.X(), b.Min.Y()}, Point2D{b.Max.X(), b.Max.Y()}
}

// FootprintCentroid returns the area centroid of a 2D boundary.
func FootprintCentroid(pts []Point2D) Point2D {
	c, _ := planar.CentroidArea(orb.Polygon{Ring(pts)})
	return Point2D{c.X(), c.Y()}
}

// RingContains reports whether p lies inside (or on) the 2D boundary.
func RingContains(pts []Point2D, p Point2D) bool {
	return planar.RingContains(Ring(pts), orb.Point{p.X, p.Y})
}

// Plan drops the Z coordinate of each point.
func Plan(pts []Point3D) []Point2D {
	out := make([]Point2D, len(pts))
	for i, p := range pts {
		out[i] = Point2D{X: p.X, Y: p.Y}
	}
	return out
}
