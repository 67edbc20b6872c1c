package operations

import "math"

const (
	resultPrecision = 10
	snapTolerance   = 1e-10
	// Above this magnitude the spacing between float64 values exceeds 0.1,
	// so rounding to 10 places changes nothing.
	roundingLimit = 1e15
)

// FormatResult rounds v to 10 decimal places and snaps it to the nearest
// integer when within 1e-10 of one. Non-finite values pass through.
func FormatResult(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	rounded := v
	if math.Abs(v) < roundingLimit {
		scale := math.Pow(10, resultPrecision)
		rounded = math.Round(v*scale) / scale
	}
	if nearest := math.Round(rounded); math.Abs(rounded-nearest) < snapTolerance {
		rounded = nearest
	}
	if rounded == 0 {
		return 0
	}
	return rounded
}

// snapZero maps values within tolerance of zero to exactly zero.
func snapZero(v float64) float64 {
	if math.Abs(v) < snapTolerance {
		return 0
	}
	return v
}
