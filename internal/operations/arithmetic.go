package operations

import (
	"errors"
	"fmt"

	"calcmcp/internal/domain"
	"calcmcp/internal/schema"
)

var errZeroDivisor = errors.New("divisor must not be zero")

func binarySchema(a, b string) schema.Schema {
	return schema.New(
		schema.Number("a", a),
		schema.Number("b", b),
	)
}

func Add() domain.Operation {
	return &operation{
		name:        "add",
		description: "Add two numbers: a + b",
		schema:      binarySchema("First addend", "Second addend"),
		compute: func(in schema.Input) (float64, map[string]any, error) {
			a, b := in.Float("a"), in.Float("b")
			return a + b, map[string]any{"formula": fmt.Sprintf("%s + %s", num(a), num(b))}, nil
		},
	}
}

func Subtract() domain.Operation {
	return &operation{
		name:        "subtract",
		description: "Subtract b from a: a - b",
		schema:      binarySchema("Minuend", "Subtrahend"),
		compute: func(in schema.Input) (float64, map[string]any, error) {
			a, b := in.Float("a"), in.Float("b")
			return a - b, map[string]any{"formula": fmt.Sprintf("%s - %s", num(a), num(b))}, nil
		},
	}
}

func Multiply() domain.Operation {
	return &operation{
		name:        "multiply",
		description: "Multiply two numbers: a × b",
		schema:      binarySchema("First factor", "Second factor"),
		compute: func(in schema.Input) (float64, map[string]any, error) {
			a, b := in.Float("a"), in.Float("b")
			return a * b, map[string]any{"formula": fmt.Sprintf("%s × %s", num(a), num(b))}, nil
		},
	}
}

func Divide() domain.Operation {
	return &operation{
		name:        "divide",
		description: "Divide a by b: a ÷ b. The divisor must not be zero",
		schema:      binarySchema("Dividend", "Divisor, must not be zero"),
		check: func(in schema.Input) error {
			if in.Float("b") == 0 {
				return errZeroDivisor
			}
			return nil
		},
		compute: func(in schema.Input) (float64, map[string]any, error) {
			a, b := in.Float("a"), in.Float("b")
			return a / b, map[string]any{"formula": fmt.Sprintf("%s ÷ %s", num(a), num(b))}, nil
		},
	}
}
