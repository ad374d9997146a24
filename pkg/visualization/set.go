package visualization

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ladybug-tools/dragonfly-display/pkg/errors"
	"github.com/ladybug-tools/dragonfly-display/pkg/geometry"
	"github.com/ladybug-tools/dragonfly-display/pkg/pickle"
)

// Geometry is one layer of a VisualizationSet.
type Geometry interface {
	ID() string
	Name() string
	IsHidden() bool
	SetHidden(bool)
}

// VisualizationSet is an ordered collection of uniquely identified layers.
type VisualizationSet struct {
	Identifier  string
	DisplayName string
	Units       string

	geometry []Geometry
}

// NewVisualizationSet returns an empty set.
func NewVisualizationSet(identifier, units string) *VisualizationSet {
	return &VisualizationSet{Identifier: identifier, Units: units}
}

// Name returns the display name, falling back to the identifier.
func (vs *VisualizationSet) Name() string {
	if vs.DisplayName != "" {
		return vs.DisplayName
	}
	return vs.Identifier
}

// Len returns the number of layers.
func (vs *VisualizationSet) Len() int { return len(vs.geometry) }

// At returns the layer at index i.
func (vs *VisualizationSet) At(i int) Geometry { return vs.geometry[i] }

// Geometry returns the layers in order. The slice must not be modified.
func (vs *VisualizationSet) Geometry() []Geometry { return vs.geometry }

// Index returns the position of the layer with the given identifier or -1.
func (vs *VisualizationSet) Index(id string) int {
	for i, g := range vs.geometry {
		if g.ID() == id {
			return i
		}
	}
	return -1
}

// AddGeometry inserts g before insertIndex. A negative or out-of-range
// index appends. Identifiers must be unique within the set.
func (vs *VisualizationSet) AddGeometry(g Geometry, insertIndex int) error {
	if g == nil {
		return errors.New(errors.ErrCodeInvalidInput, "cannot add nil geometry")
	}
	if vs.Index(g.ID()) >= 0 {
		return errors.New(errors.ErrCodeInvalidInput,
			"geometry %q already exists in visualization set %q", g.ID(), vs.Identifier)
	}
	if insertIndex < 0 || insertIndex >= len(vs.geometry) {
		vs.geometry = append(vs.geometry, g)
		return nil
	}
	vs.geometry = append(vs.geometry, nil)
	copy(vs.geometry[insertIndex+1:], vs.geometry[insertIndex:])
	vs.geometry[insertIndex] = g
	return nil
}

// Move translates every layer.
func (vs *VisualizationSet) Move(v geometry.Vector3D) {
	for _, g := range vs.geometry {
		switch x := g.(type) {
		case *ContextGeometry:
			x.Move(v)
		case *AnalysisGeometry:
			x.Move(v)
		}
	}
}

// =============================================================================
// Serialization
// =============================================================================

type setDict struct {
	Type        string            `json:"type"`
	Identifier  string            `json:"identifier"`
	DisplayName string            `json:"display_name,omitempty"`
	Units       string            `json:"units,omitempty"`
	Geometry    []json.RawMessage `json:"geometry"`
}

// MarshalJSON encodes the set in the VisualizationSet dictionary shape.
func (vs *VisualizationSet) MarshalJSON() ([]byte, error) {
	d := setDict{
		Type:        "VisualizationSet",
		Identifier:  vs.Identifier,
		DisplayName: vs.DisplayName,
		Units:       vs.Units,
		Geometry:    make([]json.RawMessage, 0, len(vs.geometry)),
	}
	for _, g := range vs.geometry {
		raw, err := json.Marshal(g)
		if err != nil {
			return nil, err
		}
		d.Geometry = append(d.Geometry, raw)
	}
	return json.Marshal(d)
}

// UnmarshalJSON decodes a VisualizationSet dictionary.
func (vs *VisualizationSet) UnmarshalJSON(data []byte) error {
	var d setDict
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	if d.Type != "" && d.Type != "VisualizationSet" {
		return fmt.Errorf("expected VisualizationSet, got %q", d.Type)
	}
	*vs = VisualizationSet{Identifier: d.Identifier, DisplayName: d.DisplayName, Units: d.Units}
	for _, raw := range d.Geometry {
		g, err := decodeGeometry(raw)
		if err != nil {
			return err
		}
		if err := vs.AddGeometry(g, -1); err != nil {
			return err
		}
	}
	return nil
}

func decodeGeometry(raw json.RawMessage) (Geometry, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}
	switch head.Type {
	case "ContextGeometry":
		g := &ContextGeometry{}
		return g, json.Unmarshal(raw, g)
	case "AnalysisGeometry":
		g := &AnalysisGeometry{}
		return g, json.Unmarshal(raw, g)
	}
	return nil, fmt.Errorf("unsupported geometry type %q", head.Type)
}

// ToDict returns the set as a generic dictionary.
func (vs *VisualizationSet) ToDict() (map[string]any, error) {
	data, err := json.Marshal(vs)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode visualization set")
	}
	var d map[string]any
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode visualization set")
	}
	return d, nil
}

// FromDict rebuilds a set from a generic dictionary.
func FromDict(d map[string]any) (*VisualizationSet, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "encode dictionary")
	}
	vs := &VisualizationSet{}
	if err := json.Unmarshal(data, vs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode visualization set")
	}
	return vs, nil
}

// WritePkl writes the pickled dictionary of the set to w.
func (vs *VisualizationSet) WritePkl(w io.Writer) error {
	d, err := vs.ToDict()
	if err != nil {
		return err
	}
	if err := pickle.Encode(w, d); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "pickle visualization set")
	}
	return nil
}

// ToPkl writes the set to folder/name.pkl and returns the file path. The
// folder is created when missing.
func (vs *VisualizationSet) ToPkl(name, folder string) (string, error) {
	if name == "" {
		name = vs.Identifier
	}
	if !strings.HasSuffix(strings.ToLower(name), ".pkl") {
		name += ".pkl"
	}
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "create folder %s", folder)
	}
	var buf bytes.Buffer
	if err := vs.WritePkl(&buf); err != nil {
		return "", err
	}
	path := filepath.Join(folder, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return path, nil
}

// ReadPkl decodes a pickled VisualizationSet dictionary.
func ReadPkl(data []byte) (*VisualizationSet, error) {
	v, err := pickle.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode pickle")
	}
	d, ok := v.(map[string]any)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "pickle does not hold a dictionary")
	}
	return FromDict(d)
}
