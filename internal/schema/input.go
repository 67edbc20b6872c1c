package schema

import (
	"maps"

	"github.com/go-viper/mapstructure/v2"
)

// Input is a set of values that passed Bind. Numbers are float64,
// integers int64, and lists []float64, []int64 or []string.
type Input struct {
	schema Schema
	values map[string]any
}

func (in Input) Schema() Schema {
	return in.schema
}

// Has reports whether name holds a value. Only fields declared with
// NoDefault can be absent.
func (in Input) Has(name string) bool {
	v, ok := in.values[name]
	return ok && v != nil
}

func (in Input) Float(name string) float64 {
	switch v := in.values[name].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	default:
		return 0
	}
}

func (in Input) Int(name string) int64 {
	switch v := in.values[name].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	default:
		return 0
	}
}

func (in Input) String(name string) string {
	v, _ := in.values[name].(string)
	return v
}

func (in Input) Bool(name string) bool {
	v, _ := in.values[name].(bool)
	return v
}

func (in Input) Floats(name string) []float64 {
	switch v := in.values[name].(type) {
	case []float64:
		return append([]float64(nil), v...)
	case []int64:
		out := make([]float64, len(v))
		for i, n := range v {
			out[i] = float64(n)
		}
		return out
	default:
		return nil
	}
}

func (in Input) Ints(name string) []int64 {
	v, _ := in.values[name].([]int64)
	return append([]int64(nil), v...)
}

func (in Input) Strings(name string) []string {
	v, _ := in.values[name].([]string)
	return append([]string(nil), v...)
}

// Values returns a copy of the bound values. Absent fields are omitted.
func (in Input) Values() map[string]any {
	out := make(map[string]any, len(in.values))
	maps.Copy(out, in.values)
	return out
}

// Decode copies the bound values into out, a pointer to a struct whose
// fields carry mapstructure tags.
func (in Input) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  out,
		TagName: "mapstructure",
	})
	if err != nil {
		return err
	}
	return dec.Decode(in.values)
}
