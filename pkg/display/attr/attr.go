// Package attr describes room and face attributes to overlay on a
// visualization, either as colors or as text labels.
package attr

import (
	"math"
	"strconv"
	"strings"

	"github.com/ladybug-tools/dragonfly-display/pkg/errors"
	"github.com/ladybug-tools/dragonfly-display/pkg/honeybee"
)

// NotAvailable labels elements on which no attribute path resolves.
const NotAvailable = "N/A"

// RoomAttribute describes an attribute displayed per room. Attrs holds
// dotted attribute paths tried in order; the first one that resolves wins.
type RoomAttribute struct {
	Name  string
	Attrs []string
	Color bool
	Text  bool
}

// FaceAttribute describes an attribute displayed per face.
type FaceAttribute struct {
	Name  string
	Attrs []string
	Color bool
	Text  bool
}

// NewRoomAttribute returns a validated room attribute. An empty name
// defaults to the first path.
func NewRoomAttribute(name string, attrs []string, color, text bool) (RoomAttribute, error) {
	name, err := validate(name, attrs)
	if err != nil {
		return RoomAttribute{}, err
	}
	return RoomAttribute{Name: name, Attrs: attrs, Color: color, Text: text}, nil
}

// NewFaceAttribute returns a validated face attribute.
func NewFaceAttribute(name string, attrs []string, color, text bool) (FaceAttribute, error) {
	name, err := validate(name, attrs)
	if err != nil {
		return FaceAttribute{}, err
	}
	return FaceAttribute{Name: name, Attrs: attrs, Color: color, Text: text}, nil
}

func validate(name string, attrs []string) (string, error) {
	if len(attrs) == 0 {
		return "", errors.New(errors.ErrCodeInvalidInput, "attribute %q needs at least one attribute path", name)
	}
	for _, a := range attrs {
		if strings.TrimSpace(a) == "" {
			return "", errors.New(errors.ErrCodeInvalidInput, "attribute %q has an empty path", name)
		}
	}
	if name == "" {
		name = attrs[0]
	}
	return name, nil
}

// Resolve returns the value of the first path that resolves on r.
func (a RoomAttribute) Resolve(r *honeybee.Room) (any, bool) {
	for _, p := range a.Attrs {
		if v, ok := r.Attr(p); ok {
			return v, true
		}
	}
	return nil, false
}

// Resolve returns the value of the first path that resolves on f.
func (a FaceAttribute) Resolve(f *honeybee.Face) (any, bool) {
	for _, p := range a.Attrs {
		if v, ok := f.Attr(p); ok {
			return v, true
		}
	}
	return nil, false
}

// Label formats a resolved value for display. Numbers keep at most two
// decimals.
func Label(v any, ok bool) string {
	if !ok {
		return NotAvailable
	}
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(math.Round(x*100)/100, 'f', -1, 64)
	case string:
		return x
	}
	return NotAvailable
}
