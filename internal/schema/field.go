package schema

// Type is the semantic type of a field.
type Type string

const (
	TypeNumber      Type = "number"
	TypeInteger     Type = "integer"
	TypeString      Type = "string"
	TypeBoolean     Type = "boolean"
	TypeNumberList  Type = "number[]"
	TypeIntegerList Type = "integer[]"
	TypeStringList  Type = "string[]"
)

func (t Type) Valid() bool {
	switch t {
	case TypeNumber, TypeInteger, TypeString, TypeBoolean, TypeNumberList, TypeIntegerList, TypeStringList:
		return true
	default:
		return false
	}
}

func (t Type) IsList() bool {
	return t == TypeNumberList || t == TypeIntegerList || t == TypeStringList
}

// Elem returns the item type of a list type and t itself otherwise.
func (t Type) Elem() Type {
	switch t {
	case TypeNumberList:
		return TypeNumber
	case TypeIntegerList:
		return TypeInteger
	case TypeStringList:
		return TypeString
	default:
		return t
	}
}

func (t Type) numeric() bool {
	e := t.Elem()
	return e == TypeNumber || e == TypeInteger
}

// Constraints restrict the values a field accepts. For list fields the
// numeric bounds and Enum apply to every item.
type Constraints struct {
	Minimum          *float64 `json:"minimum,omitempty" yaml:"minimum,omitempty" toml:"minimum,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty" yaml:"maximum,omitempty" toml:"maximum,omitempty"`
	ExclusiveMinimum *float64 `json:"exclusiveMinimum,omitempty" yaml:"exclusiveMinimum,omitempty" toml:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum *float64 `json:"exclusiveMaximum,omitempty" yaml:"exclusiveMaximum,omitempty" toml:"exclusiveMaximum,omitempty"`
	Enum             []string `json:"enum,omitempty" yaml:"enum,omitempty" toml:"enum,omitempty"`
	MinItems         int      `json:"minItems,omitempty" yaml:"minItems,omitempty" toml:"minItems,omitempty"`
}

// Field describes one named parameter.
type Field struct {
	Name        string      `json:"name" yaml:"name" toml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Type        Type        `json:"type" yaml:"type" toml:"type"`
	Required    bool        `json:"required" yaml:"required" toml:"required"`
	Default     any         `json:"default,omitempty" yaml:"default,omitempty" toml:"default,omitempty"`
	Nullable    bool        `json:"nullable,omitempty" yaml:"nullable,omitempty" toml:"nullable,omitempty"`
	Constraints Constraints `json:"constraints,omitzero" yaml:"constraints,omitempty" toml:"constraints,omitempty"`
}

func newField(name, description string, typ Type) Field {
	return Field{Name: name, Description: description, Type: typ, Required: true}
}

func Number(name, description string) Field {
	return newField(name, description, TypeNumber)
}

func Integer(name, description string) Field {
	return newField(name, description, TypeInteger)
}

func String(name, description string) Field {
	return newField(name, description, TypeString)
}

func Boolean(name, description string) Field {
	return newField(name, description, TypeBoolean)
}

func NumberList(name, description string) Field {
	return newField(name, description, TypeNumberList)
}

func IntegerList(name, description string) Field {
	return newField(name, description, TypeIntegerList)
}

func StringList(name, description string) Field {
	return newField(name, description, TypeStringList)
}

// Optional makes the field optional with the given default.
func (f Field) Optional(def any) Field {
	f.Required = false
	f.Nullable = false
	f.Default = def
	return f
}

// NoDefault makes the field optional without a default; an absent value
// stays absent after binding.
func (f Field) NoDefault() Field {
	f.Required = false
	f.Nullable = true
	f.Default = nil
	return f
}

// Min sets an inclusive lower bound.
func (f Field) Min(v float64) Field {
	f.Constraints.Minimum = &v
	return f
}

// Max sets an inclusive upper bound.
func (f Field) Max(v float64) Field {
	f.Constraints.Maximum = &v
	return f
}

// Above sets an exclusive lower bound.
func (f Field) Above(v float64) Field {
	f.Constraints.ExclusiveMinimum = &v
	return f
}

// Below sets an exclusive upper bound.
func (f Field) Below(v float64) Field {
	f.Constraints.ExclusiveMaximum = &v
	return f
}

func (f Field) OneOf(values ...string) Field {
	f.Constraints.Enum = append([]string(nil), values...)
	return f
}

func (f Field) MinItems(n int) Field {
	f.Constraints.MinItems = n
	return f
}
