package dragonfly

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/ladybug-tools/dragonfly-display/pkg/errors"
	"github.com/ladybug-tools/dragonfly-display/pkg/pickle"
)

// Encoding is a serialized model format.
type Encoding string

// Model encodings.
const (
	EncodingJSON   Encoding = "dfjson"
	EncodingPickle Encoding = "dfpkl"
)

// Load reads a model file, detecting DFJSON or DFpkl from its content.
func Load(path string) (*Model, error) {
	if err := errors.ValidateModelPath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "model file %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open model file %s", path)
	}
	defer f.Close()

	m, err := Read(f)
	if err != nil {
		return nil, errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInvalidModel), err, "load %s", path)
	}
	return m, nil
}

// Read decodes a model from r, detecting the encoding.
func Read(r io.Reader) (*Model, error) {
	br := bufio.NewReader(r)
	enc, err := sniff(br)
	if err != nil {
		return nil, err
	}
	switch enc {
	case EncodingPickle:
		return readPickle(br)
	default:
		return readJSON(br)
	}
}

// Parse decodes a model held in memory.
func Parse(data []byte) (*Model, error) {
	return Read(bytes.NewReader(data))
}

func sniff(br *bufio.Reader) (Encoding, error) {
	for {
		b, err := br.Peek(1)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidModel, err, "empty model data")
		}
		switch b[0] {
		case ' ', '\t', '\r', '\n':
			_, _ = br.ReadByte()
			continue
		case 0xEF: // UTF-8 byte order mark
			bom, _ := br.Peek(3)
			if bytes.Equal(bom, []byte{0xEF, 0xBB, 0xBF}) {
				_, _ = br.Discard(3)
				continue
			}
		case '{':
			return EncodingJSON, nil
		case pickle.Proto:
			return EncodingPickle, nil
		}
		return "", errors.New(errors.ErrCodeInvalidModel, "unrecognized model encoding (expected DFJSON or DFpkl)")
	}
}

func readJSON(r io.Reader) (*Model, error) {
	var m Model
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidModel, err, "decode DFJSON")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func readPickle(r io.Reader) (*Model, error) {
	v, err := pickle.Decode(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidModel, err, "decode DFpkl")
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidModel, err, "convert DFpkl")
	}
	return readJSON(bytes.NewReader(data))
}

// ToDict returns the model as a generic dictionary, the shape written to
// DFJSON and DFpkl files.
func (m *Model) ToDict() (map[string]any, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode model")
	}
	var d map[string]any
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode model")
	}
	return d, nil
}

// Write serializes the model to w in the given encoding.
func (m *Model) Write(w io.Writer, enc Encoding) error {
	switch enc {
	case EncodingPickle:
		d, err := m.ToDict()
		if err != nil {
			return err
		}
		return pickle.Encode(w, d)
	case EncodingJSON:
		return json.NewEncoder(w).Encode(m)
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unknown model encoding %q", enc)
}

// Validate checks that identifiers are present and rooms are unique.
func (m *Model) Validate() error {
	if m.Type != "" && m.Type != "Model" {
		return errors.New(errors.ErrCodeInvalidModel, "expected a Model object, got %q", m.Type)
	}
	if m.Identifier == "" {
		return errors.New(errors.ErrCodeInvalidModel, "model identifier is missing")
	}
	seen := make(map[string]bool)
	for _, b := range m.Buildings {
		if b == nil || b.Identifier == "" {
			return errors.New(errors.ErrCodeInvalidModel, "building without identifier in model %q", m.Identifier)
		}
		for _, s := range b.UniqueStories {
			if s == nil || s.Identifier == "" {
				return errors.New(errors.ErrCodeInvalidModel, "story without identifier in building %q", b.Identifier)
			}
			for _, r := range s.Room2Ds {
				if r == nil || r.Identifier == "" {
					return errors.New(errors.ErrCodeInvalidModel, "room without identifier in story %q", s.Identifier)
				}
				if seen[r.Identifier] {
					return errors.New(errors.ErrCodeInvalidModel, "duplicate room identifier %q", r.Identifier)
				}
				seen[r.Identifier] = true
			}
		}
	}
	return nil
}
