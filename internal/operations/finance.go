package operations

import (
	"errors"
	"fmt"
	"math"

	"calcmcp/internal/domain"
	"calcmcp/internal/schema"
)

const (
	percentageOfReference = "percentage"
	changeFromReference   = "change"
	portionOfReference    = "portion"
	increaseReference     = "increase"
	decreaseReference     = "decrease"
)

func Percentage() domain.Operation {
	return &operation{
		name:        "percentage",
		description: "Percentages: value as a percentage of reference, change rate, portion, or reference increased/decreased by value percent",
		schema: schema.New(
			schema.Number("value", "Primary value"),
			schema.Number("reference", "Reference value (total or original)"),
			schema.String("calculation_type", "One of percentage, change, portion, increase, decrease").
				Optional(percentageOfReference).
				OneOf(percentageOfReference, changeFromReference, portionOfReference, increaseReference, decreaseReference),
		),
		check: func(in schema.Input) error {
			switch in.String("calculation_type") {
			case percentageOfReference, changeFromReference, portionOfReference:
				if in.Float("reference") == 0 {
					return errors.New("reference must not be zero")
				}
			}
			return nil
		},
		compute: func(in schema.Input) (float64, map[string]any, error) {
			v, ref := in.Float("value"), in.Float("reference")
			kind := in.String("calculation_type")
			var (
				result  float64
				formula string
				unit    = "ratio"
			)
			switch kind {
			case percentageOfReference:
				result = v / ref * 100
				formula = fmt.Sprintf("(%s ÷ %s) × 100", num(v), num(ref))
				unit = "%"
			case changeFromReference:
				result = (v - ref) / math.Abs(ref) * 100
				formula = fmt.Sprintf("((%s - %s) ÷ |%s|) × 100", num(v), num(ref), num(ref))
				unit = "%"
			case portionOfReference:
				result = v / ref
				formula = fmt.Sprintf("%s ÷ %s", num(v), num(ref))
			case increaseReference:
				result = ref * (1 + v/100)
				formula = fmt.Sprintf("%s × (1 + %s/100)", num(ref), num(v))
			case decreaseReference:
				result = ref * (1 - v/100)
				formula = fmt.Sprintf("%s × (1 - %s/100)", num(ref), num(v))
			default:
				return 0, nil, fmt.Errorf("unknown calculation type %q", kind)
			}
			return result, map[string]any{
				"calculation_type": kind,
				"formula":          formula,
				"unit":             unit,
			}, nil
		},
	}
}

func SimpleInterest() domain.Operation {
	return &operation{
		name:        "simple_interest",
		description: "Simple interest I = P × r × t, with r the annual rate in percent and t in years",
		schema: schema.New(
			schema.Number("principal", "Principal").Above(0),
			schema.Number("rate", "Annual rate in percent, 5 means 5%").Above(0),
			schema.Number("time", "Time in years").Above(0),
		),
		compute: func(in schema.Input) (float64, map[string]any, error) {
			p, rate, t := in.Float("principal"), in.Float("rate"), in.Float("time")
			interest := p * rate / 100 * t
			return interest, map[string]any{
				"rate_decimal": rate / 100,
				"total_amount": FormatResult(p + interest),
				"formula":      fmt.Sprintf("%s × %s%% × %s", num(p), num(rate), num(t)),
			}, nil
		},
	}
}

func CompoundInterest() domain.Operation {
	return &operation{
		name:        "compound_interest",
		description: "Compound amount A = P(1 + r/n)^(nt), with r the annual rate in percent and n compounding periods per year",
		schema: schema.New(
			schema.Number("principal", "Principal").Above(0),
			schema.Number("rate", "Annual rate in percent, 5 means 5%").Above(0),
			schema.Number("time", "Time in years").Above(0),
			schema.Integer("frequency", "Compounding periods per year (1, 4, 12, 365)").Optional(1).Above(0),
		),
		compute: func(in schema.Input) (float64, map[string]any, error) {
			p, rate, t := in.Float("principal"), in.Float("rate"), in.Float("time")
			freq := float64(in.Int("frequency"))
			total := p * math.Pow(1+rate/100/freq, freq*t)
			return total, map[string]any{
				"interest":      FormatResult(total - p),
				"total_periods": FormatResult(freq * t),
				"frequency":     in.Int("frequency"),
				"formula":       fmt.Sprintf("%s × (1 + %s%%/%s)^(%s × %s)", num(p), num(rate), num(freq), num(freq), num(t)),
			}, nil
		},
	}
}

func Discount() domain.Operation {
	return &operation{
		name:        "discount",
		description: "Price after discount: original_price × (1 - discount_percent/100)",
		schema: schema.New(
			schema.Number("original_price", "Original price").Above(0),
			schema.Number("discount_percent", "Discount in percent, 0 to 100").Min(0).Max(100),
		),
		compute: func(in schema.Input) (float64, map[string]any, error) {
			price, pct := in.Float("original_price"), in.Float("discount_percent")
			amount := price * pct / 100
			return price - amount, map[string]any{
				"discount_amount":    FormatResult(amount),
				"savings":            FormatResult(amount),
				"actual_pay_percent": FormatResult(100 - pct),
			}, nil
		},
	}
}
