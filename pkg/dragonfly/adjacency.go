package dragonfly

import (
	"fmt"

	"github.com/ladybug-tools/dragonfly-display/pkg/geometry"
)

// SolveRoom2DAdjacency sets Surface boundary conditions on every pair of
// footprint segments that coincide between two rooms of the story. It
// returns the number of pairs found.
func (s *Story) SolveRoom2DAdjacency(tol float64) int {
	pairs := 0
	for ai, a := range s.Room2Ds {
		for bi := ai + 1; bi < len(s.Room2Ds); bi++ {
			b := s.Room2Ds[bi]
			for i, sa := range footprintSegments(a) {
				for j, sb := range footprintSegments(b) {
					if !sa.IsEquivalent(sb, tol) {
						continue
					}
					a.setCondition(i, &BoundaryCondition{
						Type:    Surface,
						Objects: []string{fmt.Sprintf("%s..Face%d", b.Identifier, j+1), b.Identifier},
					})
					b.setCondition(j, &BoundaryCondition{
						Type:    Surface,
						Objects: []string{fmt.Sprintf("%s..Face%d", a.Identifier, i+1), a.Identifier},
					})
					pairs++
				}
			}
		}
	}
	return pairs
}

func footprintSegments(r *Room2D) []geometry.LineSegment3D {
	n := len(r.FloorBoundary)
	segs := make([]geometry.LineSegment3D, n)
	for i, p := range r.FloorBoundary {
		segs[i] = geometry.Seg(p.At(0), r.FloorBoundary[(i+1)%n].At(0))
	}
	return segs
}

func (r *Room2D) setCondition(i int, bc *BoundaryCondition) {
	for len(r.BoundaryConditions) < len(r.FloorBoundary) {
		r.BoundaryConditions = append(r.BoundaryConditions, &BoundaryCondition{Type: Outdoors})
	}
	r.BoundaryConditions[i] = bc
}
