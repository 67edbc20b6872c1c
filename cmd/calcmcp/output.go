package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
	outputTOML = "toml"
)

func validateOutput(format string) error {
	switch format {
	case outputText, outputJSON, outputYAML, outputTOML:
		return nil
	default:
		return fmt.Errorf("--output must be one of text, json, yaml, toml (got %q)", format)
	}
}

func writeJSON(w io.Writer, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// writeStructured prints value in a machine format. YAML and TOML go through
// a JSON round trip so json tags decide the field names.
func writeStructured(w io.Writer, format string, value any) error {
	if format == outputJSON {
		return writeJSON(w, value)
	}
	generic, err := toGeneric(value)
	if err != nil {
		return err
	}
	switch format {
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return err
		}
		return enc.Close()
	case outputTOML:
		data, err := toml.Marshal(dropNulls(generic))
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return writeJSON(w, value)
	}
}

func toGeneric(value any) (any, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return numbersToNative(out), nil
}

func numbersToNative(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			val[k] = numbersToNative(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = numbersToNative(item)
		}
		return val
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		f, _ := val.Float64()
		return f
	default:
		return v
	}
}

// dropNulls removes JSON nulls, which TOML cannot represent.
func dropNulls(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			if item == nil {
				delete(val, k)
				continue
			}
			val[k] = dropNulls(item)
		}
		return val
	case []any:
		out := make([]any, 0, len(val))
		for _, item := range val {
			if item != nil {
				out = append(out, dropNulls(item))
			}
		}
		return out
	default:
		return v
	}
}
