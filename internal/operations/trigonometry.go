package operations

import (
	"errors"
	"math"

	"calcmcp/internal/domain"
	"calcmcp/internal/schema"
)

const (
	unitDegree = "degree"
	unitRadian = "radian"
)

func angleSchema() schema.Schema {
	return schema.New(
		schema.Number("angle", "Angle"),
		schema.String("unit", "Angle unit, degree or radian").Optional(unitDegree).OneOf(unitDegree, unitRadian),
	)
}

func radians(in schema.Input) float64 {
	angle := in.Float("angle")
	if in.String("unit") == unitDegree {
		return angle * math.Pi / 180
	}
	return angle
}

type trigFunc func(float64) float64

func trigonometric(name, description string, fn trigFunc, check func(schema.Input) error) domain.Operation {
	return &operation{
		name:        name,
		description: description,
		schema:      angleSchema(),
		check:       check,
		compute: func(in schema.Input) (float64, map[string]any, error) {
			rad := radians(in)
			return snapZero(fn(rad)), map[string]any{
				"angle":         in.Float("angle"),
				"unit":          in.String("unit"),
				"angle_radians": FormatResult(rad),
			}, nil
		},
	}
}

func Sine() domain.Operation {
	return trigonometric("sine", "Sine of an angle in degrees (default) or radians", math.Sin, nil)
}

func Cosine() domain.Operation {
	return trigonometric("cosine", "Cosine of an angle in degrees (default) or radians", math.Cos, nil)
}

func Tangent() domain.Operation {
	return trigonometric("tangent", "Tangent of an angle in degrees (default) or radians; undefined at odd multiples of 90°", math.Tan, checkTangent)
}

// checkTangent rejects odd multiples of 90° (π/2).
func checkTangent(in schema.Input) error {
	if in.String("unit") == unitDegree {
		if r := math.Mod(math.Abs(in.Float("angle")), 180); math.Abs(r-90) < snapTolerance {
			return errors.New("tangent is undefined at odd multiples of 90 degrees")
		}
		return nil
	}
	if math.Abs(math.Cos(in.Float("angle"))) < snapTolerance {
		return errors.New("tangent is undefined at odd multiples of π/2")
	}
	return nil
}
