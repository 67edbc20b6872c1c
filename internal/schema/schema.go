// Package schema describes plugin parameters and binds untyped caller
// arguments into validated inputs.
package schema

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/google/jsonschema-go/jsonschema"
)

var fieldNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Schema is an ordered set of field descriptors.
type Schema struct {
	fields []Field
}

func New(fields ...Field) Schema {
	return Schema{fields: append([]Field(nil), fields...)}
}

// Fields returns the descriptors in declared order.
func (s Schema) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (s Schema) Names() []string {
	names := make([]string, 0, len(s.fields))
	for _, f := range s.fields {
		names = append(names, f.Name)
	}
	return names
}

func (s Schema) Len() int {
	return len(s.fields)
}

// Check verifies the schema is well formed: unique names, optional fields
// that carry a default (or explicitly have none), constraints that fit the
// field type, and defaults that satisfy their own constraints.
func (s Schema) Check() error {
	var errs []error
	seen := make(map[string]struct{}, len(s.fields))
	for i, f := range s.fields {
		if !fieldNamePattern.MatchString(f.Name) {
			errs = append(errs, fmt.Errorf("fields[%d]: invalid name %q", i, f.Name))
		}
		if _, ok := seen[f.Name]; ok {
			errs = append(errs, fmt.Errorf("fields[%d]: duplicate name %q", i, f.Name))
		}
		seen[f.Name] = struct{}{}
		errs = append(errs, checkField(f)...)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	if _, err := s.JSONSchema().Resolve(&jsonschema.ResolveOptions{ValidateDefaults: true}); err != nil {
		return fmt.Errorf("resolve json schema: %w", err)
	}
	return nil
}

func checkField(f Field) []error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%s: "+format, append([]any{f.Name}, args...)...))
	}

	if !f.Type.Valid() {
		fail("unknown type %q", f.Type)
		return errs
	}
	switch {
	case f.Required && (f.Default != nil || f.Nullable):
		fail("required field cannot carry a default")
	case !f.Required && f.Default == nil && !f.Nullable:
		fail("optional field must carry a default")
	}

	c := f.Constraints
	if !f.Type.numeric() && (c.Minimum != nil || c.Maximum != nil || c.ExclusiveMinimum != nil || c.ExclusiveMaximum != nil) {
		fail("numeric bounds on %s field", f.Type)
	}
	if len(c.Enum) > 0 && f.Type.Elem() != TypeString {
		fail("enum on %s field", f.Type)
	}
	if c.MinItems != 0 && !f.Type.IsList() {
		fail("minItems on %s field", f.Type)
	}
	if c.MinItems < 0 {
		fail("negative minItems")
	}

	if f.Default != nil {
		if _, err := bindValue(f, f.Default); err != nil {
			fail("default: %v", err)
		}
	}
	return errs
}
