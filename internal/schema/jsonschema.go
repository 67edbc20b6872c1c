package schema

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
)

// JSONSchema renders the schema as a JSON Schema object with one property
// per field. Required names keep declared order.
func (s Schema) JSONSchema() *jsonschema.Schema {
	root := &jsonschema.Schema{
		Type:       "object",
		Properties: make(map[string]*jsonschema.Schema, len(s.fields)),
	}
	for _, f := range s.fields {
		root.Properties[f.Name] = fieldJSONSchema(f)
		if f.Required {
			root.Required = append(root.Required, f.Name)
		}
	}
	return root
}

func fieldJSONSchema(f Field) *jsonschema.Schema {
	prop := &jsonschema.Schema{Description: f.Description}

	scalar := prop
	if f.Type.IsList() {
		scalar = &jsonschema.Schema{Type: jsonType(f.Type.Elem())}
		prop.Items = scalar
		if f.Constraints.MinItems > 0 {
			n := f.Constraints.MinItems
			prop.MinItems = &n
		}
	}
	if f.Nullable {
		prop.Types = []string{jsonType(f.Type), "null"}
	} else {
		prop.Type = jsonType(f.Type)
	}

	c := f.Constraints
	scalar.Minimum = cloneFloat(c.Minimum)
	scalar.Maximum = cloneFloat(c.Maximum)
	scalar.ExclusiveMinimum = cloneFloat(c.ExclusiveMinimum)
	scalar.ExclusiveMaximum = cloneFloat(c.ExclusiveMaximum)
	if len(c.Enum) > 0 {
		scalar.Enum = make([]any, 0, len(c.Enum))
		for _, v := range c.Enum {
			scalar.Enum = append(scalar.Enum, v)
		}
		if f.Nullable && !f.Type.IsList() {
			scalar.Enum = append(scalar.Enum, nil)
		}
	}

	if f.Default != nil {
		if raw, err := json.Marshal(f.Default); err == nil {
			prop.Default = raw
		}
	}
	return prop
}

func jsonType(t Type) string {
	switch t {
	case TypeNumber:
		return "number"
	case TypeInteger:
		return "integer"
	case TypeString:
		return "string"
	case TypeBoolean:
		return "boolean"
	default:
		return "array"
	}
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
