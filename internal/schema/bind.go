package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// maxSafeInteger is the largest integer a float64 represents exactly.
const maxSafeInteger = 1 << 53

// FieldError reports why one argument was rejected.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

// ValidationError collects every field error found while binding.
type ValidationError struct {
	Issues []*FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.Error())
	}
	return strings.Join(parts, "; ")
}

// Bind validates args against s and returns the normalized input. Absent
// optional fields take their defaults; unknown names are rejected.
func Bind(s Schema, args map[string]any) (Input, error) {
	var issues []*FieldError

	unknown := make([]string, 0)
	for name := range args {
		if _, ok := s.Field(name); !ok {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		issues = append(issues, &FieldError{Field: name, Reason: "unknown argument"})
	}

	values := make(map[string]any, len(s.fields))
	for _, f := range s.fields {
		raw, ok := args[f.Name]
		if !ok || raw == nil {
			switch {
			case f.Required:
				issues = append(issues, &FieldError{Field: f.Name, Reason: "field required"})
				continue
			case f.Nullable:
				continue
			default:
				raw = f.Default
			}
		}
		value, err := bindValue(f, raw)
		if err != nil {
			issues = append(issues, &FieldError{Field: f.Name, Reason: err.Error()})
			continue
		}
		values[f.Name] = value
	}

	if len(issues) > 0 {
		return Input{}, &ValidationError{Issues: issues}
	}
	return Input{schema: s, values: values}, nil
}

// bindValue coerces raw to the field type and checks its constraints.
func bindValue(f Field, raw any) (any, error) {
	if !f.Type.IsList() {
		v, err := coerceScalar(f.Type, raw)
		if err != nil {
			return nil, err
		}
		if err := checkScalar(f.Constraints, v); err != nil {
			return nil, err
		}
		return v, nil
	}

	items, err := listItems(raw)
	if err != nil {
		return nil, err
	}
	if len(items) < f.Constraints.MinItems {
		return nil, fmt.Errorf("must contain at least %d item(s)", f.Constraints.MinItems)
	}

	elem := f.Type.Elem()
	var (
		floats  []float64
		ints    []int64
		strs    []string
		itemErr error
	)
	for i, item := range items {
		v, err := coerceScalar(elem, item)
		if err == nil {
			err = checkScalar(f.Constraints, v)
		}
		if err != nil {
			itemErr = fmt.Errorf("item %d: %w", i, err)
			break
		}
		switch typed := v.(type) {
		case float64:
			floats = append(floats, typed)
		case int64:
			ints = append(ints, typed)
		case string:
			strs = append(strs, typed)
		}
	}
	if itemErr != nil {
		return nil, itemErr
	}

	switch elem {
	case TypeNumber:
		return nonNilFloats(floats), nil
	case TypeInteger:
		return nonNilInts(ints), nil
	default:
		return nonNilStrings(strs), nil
	}
}

func coerceScalar(t Type, raw any) (any, error) {
	switch t {
	case TypeNumber:
		return coerceNumber(raw)
	case TypeInteger:
		f, err := coerceNumber(raw)
		if err != nil {
			return nil, errors.New("must be an integer")
		}
		if f != math.Trunc(f) || math.Abs(f) > maxSafeInteger {
			return nil, errors.New("must be an integer")
		}
		return int64(f), nil
	case TypeString:
		s, ok := raw.(string)
		if !ok {
			return nil, errors.New("must be a string")
		}
		return s, nil
	case TypeBoolean:
		switch v := raw.(type) {
		case bool:
			return v, nil
		case string:
			b, err := cast.ToBoolE(strings.TrimSpace(v))
			if err != nil {
				return nil, errors.New("must be a boolean")
			}
			return b, nil
		default:
			return nil, errors.New("must be a boolean")
		}
	default:
		return nil, fmt.Errorf("unsupported type %q", t)
	}
}

func coerceNumber(raw any) (float64, error) {
	var (
		f   float64
		err error
	)
	switch v := raw.(type) {
	case nil, bool:
		return 0, errors.New("must be a number")
	case json.Number:
		f, err = v.Float64()
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		f, err = cast.ToFloat64E(v)
	}
	if err != nil {
		return 0, errors.New("must be a number")
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New("must be a finite number")
	}
	return f, nil
}

func checkScalar(c Constraints, v any) error {
	var n float64
	switch typed := v.(type) {
	case float64:
		n = typed
	case int64:
		n = float64(typed)
	case string:
		if len(c.Enum) > 0 && !slices.Contains(c.Enum, typed) {
			return fmt.Errorf("must be one of: %s", strings.Join(c.Enum, ", "))
		}
		return nil
	default:
		return nil
	}

	if c.Minimum != nil && n < *c.Minimum {
		return fmt.Errorf("must be greater than or equal to %s", formatBound(*c.Minimum))
	}
	if c.Maximum != nil && n > *c.Maximum {
		return fmt.Errorf("must be less than or equal to %s", formatBound(*c.Maximum))
	}
	if c.ExclusiveMinimum != nil && n <= *c.ExclusiveMinimum {
		return fmt.Errorf("must be greater than %s", formatBound(*c.ExclusiveMinimum))
	}
	if c.ExclusiveMaximum != nil && n >= *c.ExclusiveMaximum {
		return fmt.Errorf("must be less than %s", formatBound(*c.ExclusiveMaximum))
	}
	return nil
}

// listItems accepts a slice of any element type, a JSON array held in a
// string, or comma-separated text.
func listItems(raw any) ([]any, error) {
	if s, ok := raw.(string); ok {
		return parseListString(s)
	}
	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, errors.New("must be a list")
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, nil
}

func parseListString(s string) ([]any, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if strings.HasPrefix(s, "[") {
		dec := json.NewDecoder(strings.NewReader(s))
		dec.UseNumber()
		var items []any
		if err := dec.Decode(&items); err != nil {
			return nil, errors.New("must be a list")
		}
		return items, nil
	}
	parts := strings.Split(s, ",")
	items := make([]any, 0, len(parts))
	for _, part := range parts {
		items = append(items, strings.TrimSpace(part))
	}
	return items, nil
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func nonNilFloats(v []float64) []float64 {
	if v == nil {
		return []float64{}
	}
	return v
}

func nonNilInts(v []int64) []int64 {
	if v == nil {
		return []int64{}
	}
	return v
}

func nonNilStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
