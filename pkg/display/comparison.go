package display

import (
	"github.com/ladybug-tools/dragonfly-display/pkg/errors"
	"github.com/ladybug-tools/dragonfly-display/pkg/geometry"
	"github.com/ladybug-tools/dragonfly-display/pkg/honeybee"
	"github.com/ladybug-tools/dragonfly-display/pkg/visualization"
)

// Comparison layer identifiers.
const (
	BaseModelID          = "Base_Model"
	BaseWireframeID      = "Base_Wireframe"
	IncomingModelID      = "Incoming_Model"
	IncomingWireframeID  = "Incoming_Wireframe"
	comparisonIdentifier = "Model_Comparison"
)

// ModelComparisonToVisSet overlays two models, each drawn in a single
// color with its own wireframe. Colors are used as given, alpha included.
func ModelComparisonToVisSet(base, incoming *honeybee.Model, baseColor, incomingColor geometry.Color) (*visualization.VisualizationSet, error) {
	if base == nil || incoming == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "comparison needs both a base and an incoming model")
	}
	vs := visualization.NewVisualizationSet(comparisonIdentifier, base.Units)
	vs.DisplayName = "Model Comparison"

	add := func(m *honeybee.Model, id, wireID, name string, c geometry.Color) error {
		faces := allFaces(m)
		if len(faces) > 0 {
			cg := visualization.NewContextGeometry(id, []visualization.DisplayObject{
				visualization.NewDisplayMesh3D(geometry.MeshFromFaces(faces), c),
			})
			cg.DisplayName = name + ": " + m.Name()
			if err := vs.AddGeometry(cg, -1); err != nil {
				return err
			}
		}
		if w := wireframeLayer(m, wireID); w != nil {
			w.DisplayName = name + " Wireframe"
			return vs.AddGeometry(w, -1)
		}
		return nil
	}
	if err := add(base, BaseModelID, BaseWireframeID, "Base", baseColor); err != nil {
		return nil, err
	}
	if err := add(incoming, IncomingModelID, IncomingWireframeID, "Incoming", incomingColor); err != nil {
		return nil, err
	}
	return vs, nil
}

// allFaces collects room faces, openings and shades of a model.
func allFaces(m *honeybee.Model) []geometry.Face3D {
	var out []geometry.Face3D
	for _, f := range m.Faces() {
		out = append(out, f.Geometry)
		for _, ap := range f.Apertures {
			out = append(out, ap.Geometry)
		}
		for _, d := range f.Doors {
			out = append(out, d.Geometry)
		}
	}
	for _, s := range m.OrphanedShades {
		out = append(out, s.Geometry)
	}
	return out
}
