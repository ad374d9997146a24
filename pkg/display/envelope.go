package display

import (
	"github.com/ladybug-tools/dragonfly-display/pkg/errors"
	"github.com/ladybug-tools/dragonfly-display/pkg/geometry"
	"github.com/ladybug-tools/dragonfly-display/pkg/honeybee"
	"github.com/ladybug-tools/dragonfly-display/pkg/visualization"
)

// DefaultEdgeLineWidth is the line width of envelope edge layers.
const DefaultEdgeLineWidth = 3

// ModelEnvelopeEdgesToVisSet draws the classified envelope edges of a
// model, one layer per non-empty category in category order.
func ModelEnvelopeEdgesToVisSet(m *honeybee.Model, excludeCoplanar bool, lineWidth float64) (*visualization.VisualizationSet, error) {
	if m == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "model is nil")
	}
	if lineWidth <= 0 {
		lineWidth = DefaultEdgeLineWidth
	}
	vs := visualization.NewVisualizationSet(m.Identifier, m.Units)
	vs.DisplayName = m.Name()
	for _, g := range m.ClassifiedEnvelopeEdges(excludeCoplanar) {
		if len(g.Segments) == 0 {
			continue
		}
		cg := EdgeLayer(g.Category, g.Segments, edgeColors[g.Category], lineWidth)
		if err := vs.AddGeometry(cg, -1); err != nil {
			return nil, err
		}
	}
	return vs, nil
}

// EdgeLayer returns a context layer of colored line segments. The display
// name replaces underscores with spaces.
func EdgeLayer(id string, segs []geometry.LineSegment3D, c geometry.Color, lineWidth float64) *visualization.ContextGeometry {
	items := make([]visualization.DisplayObject, len(segs))
	for i, s := range segs {
		items[i] = visualization.NewDisplayLineSegment3D(s, c, lineWidth)
	}
	cg := visualization.NewContextGeometry(id, items)
	cg.DisplayName = displayName(id)
	return cg
}

func displayName(id string) string {
	b := []byte(id)
	for i, c := range b {
		if c == '_' {
			b[i] = ' '
		}
	}
	return string(b)
}
