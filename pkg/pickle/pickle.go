// Package pickle reads and writes Python pickles of plain dictionaries.
//
// Decoded values are normalized to the shapes encoding/json produces:
// dicts become map[string]any, lists and tuples become []any, integers
// become int64 or float64 and None becomes nil.
package pickle

import (
	"fmt"
	"io"
	"math/big"
	"reflect"

	ogorek "github.com/kisielk/og-rek"
)

// Proto is the PROTO opcode that starts every protocol 2+ pickle.
const Proto = 0x80

// Decode reads one pickled value from r and normalizes it.
func Decode(r io.Reader) (any, error) {
	v, err := ogorek.NewDecoder(r).Decode()
	if err != nil {
		return nil, err
	}
	return Normalize(v), nil
}

// Encode pickles v to w with protocol 2, so the data starts with [Proto].
func Encode(w io.Writer, v any) error {
	return ogorek.NewEncoderWithConfig(w, &ogorek.EncoderConfig{Protocol: 2}).Encode(v)
}

// Normalize converts decoded pickle values into JSON-compatible ones.
func Normalize(v any) any {
	switch x := v.(type) {
	case nil, bool, string, float64, int64:
		return x
	case *big.Int:
		f, _ := new(big.Float).SetInt(x).Float64()
		return f
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = Normalize(iter.Value().Interface())
		}
		return out
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = Normalize(rv.Index(i).Interface())
		}
		return out
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint()
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Bool:
		return rv.Bool()
	}
	// None and other opaque markers
	return nil
}
