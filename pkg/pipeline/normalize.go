package pipeline

import (
	"github.com/ladybug-tools/dragonfly-display/pkg/dragonfly"
	"github.com/ladybug-tools/dragonfly-display/pkg/geometry"
)

// CenterOf returns the point that NormalizeCoordinates moves to the origin:
// the middle of the plan bounding box, at ground level.
func CenterOf(m *dragonfly.Model) geometry.Point3D {
	lo, hi := m.Min(), m.Max()
	return geometry.Pt3(
		(lo.X+hi.X)/2,
		(lo.Y+hi.Y)/2,
		m.AverageHeight()-m.AverageHeightAboveGround(),
	)
}

// NormalizeCoordinates moves m in place so that its CenterOf becomes the
// origin.
func NormalizeCoordinates(m *dragonfly.Model) {
	m.ResetCoordinateSystem(CenterOf(m))
}
