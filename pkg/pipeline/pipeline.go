// Package pipeline turns district models into visualization sets.
//
// Every run is the same straight line: normalize coordinates, convert the
// district to a room-level model, build the visualization set and, for
// envelope edges, post-process it. The CLI and the HTTP server share this
// package so both surfaces behave identically.
//
// # Usage
//
// Free functions run one stage each:
//
//	vs, err := pipeline.ModelToVisSet(model, pipeline.DefaultOptions())
//
// A [Runner] adds caching and observability hooks around them:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Request{Kind: pipeline.KindModel, Model: model, Options: opts})
//
// # Options
//
// One [Options] struct carries every knob. Boolean defaults come from
// [DefaultOptions]; the Set*Defaults methods fill empty strings and zero
// numbers, so a partially decoded request still runs.
package pipeline

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/ladybug-tools/dragonfly-display/pkg/display"
	"github.com/ladybug-tools/dragonfly-display/pkg/display/attr"
	"github.com/ladybug-tools/dragonfly-display/pkg/dragonfly"
	"github.com/ladybug-tools/dragonfly-display/pkg/errors"
	"github.com/ladybug-tools/dragonfly-display/pkg/geometry"
)

// =============================================================================
// Default values
// =============================================================================

// Run kinds.
const (
	KindModel      = "model"
	KindComparison = "comparison"
	KindEnvelope   = "envelope"
)

const (
	// DefaultBaseColor is the comparison color of the base model.
	DefaultBaseColor = "#74eded"
	// DefaultIncomingColor is the comparison color of the incoming model.
	DefaultIncomingColor = "#ed7474"
	// ComparisonAlpha is forced onto both comparison colors.
	ComparisonAlpha = 128
	// DefaultEdgeLineWidth is the line width of envelope edge layers.
	DefaultEdgeLineWidth = display.DefaultEdgeLineWidth
)

// =============================================================================
// Options
// =============================================================================

// Options configures a run. It decodes from JSON for HTTP requests.
type Options struct {
	// Conversion
	UseMultiplier           bool   `json:"use_multiplier"`
	SolveCeilingAdjacencies bool   `json:"solve_ceiling_adjacencies"`
	ExcludePlenums          bool   `json:"exclude_plenums,omitempty"`
	AddPlenum               bool   `json:"add_plenum,omitempty"`
	MergeMethod             string `json:"merge_method,omitempty"`
	ResetCoordinates        bool   `json:"reset_coordinates,omitempty"`

	// Model visualization
	ColorBy          string               `json:"color_by,omitempty"`
	IncludeWireframe bool                 `json:"include_wireframe"`
	UseMesh          bool                 `json:"use_mesh"`
	HideColorBy      bool                 `json:"hide_color_by,omitempty"`
	RoomAttrs        []attr.RoomAttribute `json:"room_attrs,omitempty"`
	FaceAttrs        []attr.FaceAttribute `json:"face_attrs,omitempty"`
	GridDisplayMode  string               `json:"grid_display_mode,omitempty"`
	HideGrid         bool                 `json:"hide_grid,omitempty"`

	// Comparison
	BaseColor     string `json:"base_color,omitempty"`
	IncomingColor string `json:"incoming_color,omitempty"`

	// Envelope edges
	ExcludeCoplanar ExcludeCoplanar `json:"exclude_coplanar,omitempty"`
	LineWidth       float64         `json:"line_width,omitempty"`

	Logger *log.Logger `json:"-"`
}

// DefaultOptions returns the options of a run with no flags set.
func DefaultOptions() Options {
	o := Options{
		UseMultiplier:    true,
		IncludeWireframe: true,
		UseMesh:          true,
	}
	o.SetConvertDefaults()
	o.SetModelDefaults()
	o.SetComparisonDefaults()
	o.SetEnvelopeDefaults()
	return o
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetConvertDefaults fills conversion defaults.
func (o *Options) SetConvertDefaults() {
	if o.MergeMethod == "" {
		o.MergeMethod = string(dragonfly.MergeNone)
	}
	o.setLogger()
}

// SetModelDefaults fills model visualization defaults. The color-by and
// grid mode strings are not validated here.
func (o *Options) SetModelDefaults() {
	if o.ColorBy == "" {
		o.ColorBy = display.ColorByType
	}
	if o.GridDisplayMode == "" {
		o.GridDisplayMode = display.GridDefault
	}
	o.setLogger()
}

// SetComparisonDefaults fills comparison colors.
func (o *Options) SetComparisonDefaults() {
	if o.BaseColor == "" {
		o.BaseColor = DefaultBaseColor
	}
	if o.IncomingColor == "" {
		o.IncomingColor = DefaultIncomingColor
	}
	o.setLogger()
}

// SetEnvelopeDefaults fills envelope edge defaults.
func (o *Options) SetEnvelopeDefaults() {
	if o.ExcludeCoplanar == "" {
		o.ExcludeCoplanar = FloorPlatesOnly
	}
	if o.LineWidth == 0 {
		o.LineWidth = DefaultEdgeLineWidth
	}
	o.setLogger()
}

// ConvertOptions returns the options handed to the district conversion.
// Object-per-model and enforcement flags are fixed.
func (o Options) ConvertOptions() (dragonfly.HoneybeeOptions, error) {
	merge := dragonfly.MergeNone
	if o.MergeMethod != "" {
		m, err := dragonfly.ParseMergeMethod(o.MergeMethod)
		if err != nil {
			return dragonfly.HoneybeeOptions{}, err
		}
		merge = m
	}
	return dragonfly.HoneybeeOptions{
		ObjectPerModel:          dragonfly.PerDistrict,
		UseMultiplier:           o.UseMultiplier,
		ExcludePlenums:          o.ExcludePlenums,
		AddPlenum:               o.AddPlenum,
		SolveCeilingAdjacencies: o.SolveCeilingAdjacencies,
		MergeMethod:             merge,
		EnforceAdj:              false,
		EnforceSolid:            true,
	}, nil
}

// DisplayOptions returns the options forwarded to the model builder.
func (o Options) DisplayOptions() display.Options {
	return display.Options{
		ColorBy:          o.ColorBy,
		IncludeWireframe: o.IncludeWireframe,
		UseMesh:          o.UseMesh,
		HideColorBy:      o.HideColorBy,
		RoomAttrs:        o.RoomAttrs,
		FaceAttrs:        o.FaceAttrs,
		GridDisplayMode:  o.GridDisplayMode,
		HideGrid:         o.HideGrid,
	}
}

// SetAttributes fills RoomAttrs and FaceAttrs from attribute paths. Each
// path becomes one attribute named after it, shown as colors when color is
// set and as text labels otherwise. Blank paths are skipped.
func (o *Options) SetAttributes(room, face []string, color bool) error {
	o.RoomAttrs, o.FaceAttrs = nil, nil
	for _, p := range room {
		if strings.TrimSpace(p) == "" {
			continue
		}
		a, err := attr.NewRoomAttribute(p, []string{p}, color, !color)
		if err != nil {
			return err
		}
		o.RoomAttrs = append(o.RoomAttrs, a)
	}
	for _, p := range face {
		if strings.TrimSpace(p) == "" {
			continue
		}
		a, err := attr.NewFaceAttribute(p, []string{p}, color, !color)
		if err != nil {
			return err
		}
		o.FaceAttrs = append(o.FaceAttrs, a)
	}
	return nil
}

// ComparisonColors parses both comparison colors and forces their alpha.
func (o Options) ComparisonColors() (base, incoming geometry.Color, err error) {
	if base, err = parseColor(o.BaseColor, DefaultBaseColor); err != nil {
		return
	}
	if incoming, err = parseColor(o.IncomingColor, DefaultIncomingColor); err != nil {
		return
	}
	return base.WithAlpha(ComparisonAlpha), incoming.WithAlpha(ComparisonAlpha), nil
}

func parseColor(s, def string) (geometry.Color, error) {
	if s == "" {
		s = def
	}
	c, err := geometry.ParseHex(s)
	if err != nil {
		return geometry.Color{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid color %q", s)
	}
	return c, nil
}

// convertKey holds the options every kind passes to the conversion.
type convertKey struct {
	UseMultiplier           bool
	SolveCeilingAdjacencies bool
	ExcludePlenums          bool
	AddPlenum               bool
	MergeMethod             string
	ResetCoordinates        bool
}

// keyOptions returns the subset of options that shapes the result of kind.
func (o Options) keyOptions(kind string) any {
	conv := convertKey{o.UseMultiplier, o.SolveCeilingAdjacencies, o.ExcludePlenums, o.AddPlenum, o.MergeMethod, o.ResetCoordinates}
	switch kind {
	case KindComparison:
		return struct {
			Convert        convertKey
			Base, Incoming string
		}{conv, o.BaseColor, o.IncomingColor}
	case KindEnvelope:
		return struct {
			Convert   convertKey
			Exclude   ExcludeCoplanar
			LineWidth float64
		}{conv, o.ExcludeCoplanar, o.LineWidth}
	}
	return struct {
		Convert convertKey
		Display display.Options
	}{conv, o.DisplayOptions()}
}
