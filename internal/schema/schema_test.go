package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaCheck_AcceptsWellFormedSchema(t *testing.T) {
	s := New(
		Number("value", "Radicand"),
		Number("n", "Root degree").Optional(2.0),
		String("unit", "Angle unit").Optional("degree").OneOf("degree", "radian"),
		IntegerList("numbers", "Integers").MinItems(2),
		Integer("age", "Age in years").NoDefault().Min(1).Max(120),
	)
	require.NoError(t, s.Check())
	require.Equal(t, []string{"value", "n", "unit", "numbers", "age"}, s.Names())
}

func TestSchemaCheck_RejectsDuplicateNames(t *testing.T) {
	s := New(Number("a", ""), Number("a", ""))
	err := s.Check()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate name "a"`)
}

func TestSchemaCheck_RejectsOptionalWithoutDefault(t *testing.T) {
	f := Number("b", "")
	f.Required = false
	err := New(f).Check()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "optional field must carry a default")
}

func TestSchemaCheck_RejectsDefaultOutsideConstraints(t *testing.T) {
	err := New(Integer("size", "").Optional(50).Min(1).Max(20)).Check()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default")
}

func TestSchemaCheck_RejectsMisplacedConstraints(t *testing.T) {
	err := New(String("label", "").Min(1)).Check()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "numeric bounds")

	err = New(Number("x", "").OneOf("a")).Check()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enum")
}

func TestSchemaCheck_RejectsInvalidName(t *testing.T) {
	err := New(Number("Bad Name", "")).Check()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid name")
}

func TestJSONSchema_RendersFieldsAndRequired(t *testing.T) {
	s := New(
		Number("number", "Positive input").Above(0),
		Number("base", "Logarithm base").Optional(10.0),
		NumberList("values", "Data points").MinItems(1),
		String("gender", "Gender").NoDefault().OneOf("male", "female"),
	)

	raw, err := json.Marshal(s.JSONSchema())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))

	assert.Equal(t, "object", doc["type"])
	assert.Equal(t, []any{"number", "values"}, doc["required"])

	props := doc["properties"].(map[string]any)
	number := props["number"].(map[string]any)
	assert.Equal(t, "number", number["type"])
	assert.Equal(t, float64(0), number["exclusiveMinimum"])
	assert.Equal(t, "Positive input", number["description"])

	base := props["base"].(map[string]any)
	assert.Equal(t, float64(10), base["default"])

	values := props["values"].(map[string]any)
	assert.Equal(t, "array", values["type"])
	assert.Equal(t, float64(1), values["minItems"])
	assert.Equal(t, "number", values["items"].(map[string]any)["type"])

	gender := props["gender"].(map[string]any)
	assert.Equal(t, []any{"string", "null"}, gender["type"])
	assert.Equal(t, []any{"male", "female", nil}, gender["enum"])
}

func TestJSONSchema_ValidatesBoundArguments(t *testing.T) {
	s := New(Number("a", ""), Number("b", "").Optional(1.0))
	resolved, err := s.JSONSchema().Resolve(nil)
	require.NoError(t, err)

	require.NoError(t, resolved.Validate(map[string]any{"a": 1.5}))
	require.Error(t, resolved.Validate(map[string]any{"b": 2.0}))
}
