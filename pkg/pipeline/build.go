package pipeline

import (
	"github.com/ladybug-tools/dragonfly-display/pkg/display"
	"github.com/ladybug-tools/dragonfly-display/pkg/dragonfly"
	"github.com/ladybug-tools/dragonfly-display/pkg/errors"
	"github.com/ladybug-tools/dragonfly-display/pkg/visualization"
)

// ModelToVisSet builds the visualization set of a district model.
//
// With ResetCoordinates set the model is normalized in place before
// conversion. The color-by and grid modes are checked by the builder, not
// here.
func ModelToVisSet(m *dragonfly.Model, opts Options) (*visualization.VisualizationSet, error) {
	if m == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "model is nil")
	}
	opts.SetModelDefaults()
	if opts.ResetCoordinates {
		NormalizeCoordinates(m)
	}
	hb, err := ToRoomModel(m, opts)
	if err != nil {
		return nil, err
	}
	vs, err := display.ModelToVisSet(hb, opts.DisplayOptions())
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("built model visualization set", "model", m.Identifier, "layers", vs.Len())
	return vs, nil
}

// ComparisonToVisSet overlays an incoming model on a base model.
//
// Both models are duplicated and moved by the center of the base model, so
// the caller's models are left untouched and the two stay aligned. Both
// colors get an alpha of ComparisonAlpha.
func ComparisonToVisSet(base, incoming *dragonfly.Model, opts Options) (*visualization.VisualizationSet, error) {
	if base == nil || incoming == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "comparison needs a base and an incoming model")
	}
	opts.SetComparisonDefaults()
	baseColor, incomingColor, err := opts.ComparisonColors()
	if err != nil {
		return nil, err
	}

	base, incoming = base.Duplicate(), incoming.Duplicate()
	center := CenterOf(base)
	base.ResetCoordinateSystem(center)
	incoming.ResetCoordinateSystem(center)

	hbBase, err := ToRoomModel(base, opts)
	if err != nil {
		return nil, err
	}
	hbIncoming, err := ToRoomModel(incoming, opts)
	if err != nil {
		return nil, err
	}
	vs, err := display.ModelComparisonToVisSet(hbBase, hbIncoming, baseColor, incomingColor)
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("built comparison visualization set", "base", base.Identifier, "incoming", incoming.Identifier)
	return vs, nil
}
