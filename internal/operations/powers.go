package operations

import (
	"errors"
	"fmt"
	"math"

	"calcmcp/internal/domain"
	"calcmcp/internal/schema"
)

func Square() domain.Operation {
	return &operation{
		name:        "square",
		description: "Square a number: value²",
		schema:      schema.New(schema.Number("value", "Number to square")),
		compute: func(in schema.Input) (float64, map[string]any, error) {
			v := in.Float("value")
			return v * v, map[string]any{"formula": fmt.Sprintf("%s²", num(v))}, nil
		},
	}
}

func Cube() domain.Operation {
	return &operation{
		name:        "cube",
		description: "Cube a number: value³",
		schema:      schema.New(schema.Number("value", "Number to cube")),
		compute: func(in schema.Input) (float64, map[string]any, error) {
			v := in.Float("value")
			return v * v * v, map[string]any{"formula": fmt.Sprintf("%s³", num(v))}, nil
		},
	}
}

func SquareRoot() domain.Operation {
	return &operation{
		name:        "square_root",
		description: "Square root of a non-negative number: √value",
		schema:      schema.New(schema.Number("value", "Radicand, must not be negative")),
		check: func(in schema.Input) error {
			if in.Float("value") < 0 {
				return errors.New("cannot take the square root of a negative number")
			}
			return nil
		},
		compute: func(in schema.Input) (float64, map[string]any, error) {
			v := in.Float("value")
			return math.Sqrt(v), map[string]any{"formula": fmt.Sprintf("√%s", num(v))}, nil
		},
	}
}

func NthRoot() domain.Operation {
	return &operation{
		name:        "nth_root",
		description: "N-th root: value^(1/n). Odd roots of negative numbers return the real negative root",
		schema: schema.New(
			schema.Number("value", "Radicand"),
			schema.Number("n", "Root degree, must not be zero").Optional(2.0),
		),
		check: func(in schema.Input) error {
			v, n := in.Float("value"), in.Float("n")
			switch {
			case n == 0:
				return errors.New("root degree n must not be zero")
			case v < 0 && isEvenInteger(n):
				return errors.New("cannot take an even root of a negative number")
			case v < 0 && !isOddInteger(n):
				return errors.New("roots of negative numbers require an odd integer degree")
			}
			return nil
		},
		compute: func(in schema.Input) (float64, map[string]any, error) {
			v, n := in.Float("value"), in.Float("n")
			var root float64
			if v < 0 {
				root = -math.Pow(-v, 1/n)
			} else {
				root = math.Pow(v, 1/n)
			}
			return root, map[string]any{
				"formula":     fmt.Sprintf("%s^(1/%s)", num(v), num(n)),
				"is_odd_root": isOddInteger(n),
			}, nil
		},
	}
}

func Power() domain.Operation {
	return &operation{
		name:        "power",
		description: "Raise base to exponent: base^exponent",
		schema: schema.New(
			schema.Number("base", "Base"),
			schema.Number("exponent", "Exponent"),
		),
		check: func(in schema.Input) error {
			base, exp := in.Float("base"), in.Float("exponent")
			switch {
			case base == 0 && exp < 0:
				return errors.New("zero cannot be raised to a negative power")
			case base < 0 && exp != math.Trunc(exp):
				return errors.New("a negative base requires an integer exponent")
			}
			return nil
		},
		compute: func(in schema.Input) (float64, map[string]any, error) {
			base, exp := in.Float("base"), in.Float("exponent")
			return math.Pow(base, exp), map[string]any{"formula": fmt.Sprintf("%s^%s", num(base), num(exp))}, nil
		},
	}
}

func Absolute() domain.Operation {
	return &operation{
		name:        "absolute",
		description: "Absolute value: |number|",
		schema:      schema.New(schema.Number("number", "Input number")),
		compute: func(in schema.Input) (float64, map[string]any, error) {
			v := in.Float("number")
			return math.Abs(v), map[string]any{
				"formula":     fmt.Sprintf("|%s|", num(v)),
				"is_negative": v < 0,
			}, nil
		},
	}
}

func Logarithm() domain.Operation {
	return &operation{
		name:        "logarithm",
		description: "Logarithm of number in the given base (natural logarithm by default)",
		schema: schema.New(
			schema.Number("number", "Argument, must be positive").Above(0),
			schema.Number("base", "Base, positive and not 1; defaults to e").Optional(math.E).Above(0),
		),
		check: func(in schema.Input) error {
			if in.Float("base") == 1 {
				return errors.New("logarithm base must not be 1")
			}
			return nil
		},
		compute: func(in schema.Input) (float64, map[string]any, error) {
			x, base := in.Float("number"), in.Float("base")
			natural := base == math.E
			var value float64
			switch base {
			case math.E:
				value = math.Log(x)
			case 10:
				value = math.Log10(x)
			case 2:
				value = math.Log2(x)
			default:
				value = math.Log(x) / math.Log(base)
			}
			formula := fmt.Sprintf("log_%s(%s)", num(base), num(x))
			if natural {
				formula = fmt.Sprintf("ln(%s)", num(x))
			}
			return value, map[string]any{
				"formula": formula,
				"natural": natural,
			}, nil
		},
	}
}

func isEvenInteger(v float64) bool {
	return v == math.Trunc(v) && math.Mod(v, 2) == 0
}

func isOddInteger(v float64) bool {
	return v == math.Trunc(v) && math.Abs(math.Mod(v, 2)) == 1
}
