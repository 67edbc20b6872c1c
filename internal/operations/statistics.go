package operations

import (
	"math"
	"slices"

	"calcmcp/internal/domain"
	"calcmcp/internal/schema"
)

func Average() domain.Operation {
	return &operation{
		name:        "average",
		description: "Arithmetic mean of a list of numbers",
		schema:      schema.New(schema.NumberList("values", "Numbers to average").MinItems(1)),
		compute: func(in schema.Input) (float64, map[string]any, error) {
			values := in.Floats("values")
			sum := total(values)
			return sum / float64(len(values)), map[string]any{
				"count": len(values),
				"sum":   FormatResult(sum),
			}, nil
		},
	}
}

func Median() domain.Operation {
	return &operation{
		name:        "median",
		description: "Median of a list of numbers",
		schema:      schema.New(schema.NumberList("numbers", "Numbers to take the median of").MinItems(1)),
		compute: func(in schema.Input) (float64, map[string]any, error) {
			sorted := in.Floats("numbers")
			slices.Sort(sorted)
			n := len(sorted)
			mid := n / 2
			median := sorted[mid]
			if n%2 == 0 {
				median = (sorted[mid-1] + sorted[mid]) / 2
			}
			return median, map[string]any{
				"count":          n,
				"sorted_numbers": sorted,
				"middle_index":   mid,
				"is_even_count":  n%2 == 0,
			}, nil
		},
	}
}

func statisticsSchema() schema.Schema {
	return schema.New(
		schema.NumberList("numbers", "Data points, at least two").MinItems(2),
		schema.Boolean("is_sample", "Sample statistic (n-1) when true, population (n) when false").Optional(true),
	)
}

func Variance() domain.Operation {
	return &operation{
		name:        "variance",
		description: "Variance of a list of numbers, sample (n-1) or population (n)",
		schema:      statisticsSchema(),
		compute: func(in schema.Input) (float64, map[string]any, error) {
			s := spread(in.Floats("numbers"), in.Bool("is_sample"))
			return s.variance, s.metadata(), nil
		},
	}
}

func StandardDeviation() domain.Operation {
	return &operation{
		name:        "standard_deviation",
		description: "Standard deviation of a list of numbers, sample (n-1) or population (n)",
		schema:      statisticsSchema(),
		compute: func(in schema.Input) (float64, map[string]any, error) {
			s := spread(in.Floats("numbers"), in.Bool("is_sample"))
			meta := s.metadata()
			meta["variance"] = FormatResult(s.variance)
			return math.Sqrt(s.variance), meta, nil
		},
	}
}

type dispersion struct {
	count      int
	mean       float64
	sumSquares float64
	divisor    int
	sample     bool
	variance   float64
}

func spread(values []float64, sample bool) dispersion {
	n := len(values)
	mean := total(values) / float64(n)
	var sumSquares float64
	for _, v := range values {
		d := v - mean
		sumSquares += d * d
	}
	divisor := n
	if sample {
		divisor = n - 1
	}
	return dispersion{
		count:      n,
		mean:       mean,
		sumSquares: sumSquares,
		divisor:    divisor,
		sample:     sample,
		variance:   sumSquares / float64(divisor),
	}
}

func (d dispersion) metadata() map[string]any {
	mode := "population"
	if d.sample {
		mode = "sample"
	}
	return map[string]any{
		"count":          d.count,
		"mean":           FormatResult(d.mean),
		"sum_of_squares": FormatResult(d.sumSquares),
		"divisor":        d.divisor,
		"mode":           mode,
	}
}

func total(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum
}
