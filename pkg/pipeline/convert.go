package pipeline

import (
	"github.com/ladybug-tools/dragonfly-display/pkg/dragonfly"
	"github.com/ladybug-tools/dragonfly-display/pkg/errors"
	"github.com/ladybug-tools/dragonfly-display/pkg/honeybee"
)

// ToRoomModel converts m into a single room-level model.
//
// The conversion is asked for one model per district. Should it still
// return more than one, only the first is used and the rest are dropped
// with a debug message.
func ToRoomModel(m *dragonfly.Model, opts Options) (*honeybee.Model, error) {
	if m == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "model is nil")
	}
	opts.SetConvertDefaults()
	hbOpts, err := opts.ConvertOptions()
	if err != nil {
		return nil, err
	}
	models, err := m.ToHoneybee(hbOpts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidModel, err, "convert %s to rooms", m.Identifier)
	}
	if len(models) == 0 {
		return nil, errors.New(errors.ErrCodeInternal, "conversion of %s returned no model", m.Identifier)
	}
	if len(models) > 1 {
		opts.Logger.Debug("discarding extra room models", "model", m.Identifier, "discarded", len(models)-1)
	}
	hb := models[0]
	opts.Logger.Debug("converted to room model", "model", m.Identifier, "rooms", len(hb.Rooms))
	return hb, nil
}
