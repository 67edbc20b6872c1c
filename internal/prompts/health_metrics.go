package prompts

import (
	"fmt"

	"calcmcp/internal/domain"
	"calcmcp/internal/schema"
)

const (
	unitMetric   = "metric"
	unitImperial = "imperial"
)

var activityLevels = []string{"sedentary", "lightly_active", "moderately_active", "very_active", "extra_active"}

var activityMultipliers = map[string]float64{
	"sedentary":         1.2,
	"lightly_active":    1.375,
	"moderately_active": 1.55,
	"very_active":       1.725,
	"extra_active":      1.9,
}

var activityDescriptions = map[string]map[string]string{
	languageChinese: {
		"sedentary":         "久坐（很少或没有运动）",
		"lightly_active":    "轻度活动（每周运动1-3天）",
		"moderately_active": "中度活动（每周运动3-5天）",
		"very_active":       "高度活动（每周运动6-7天）",
		"extra_active":      "极高活动（每天高强度运动或体力工作）",
	},
	languageEnglish: {
		"sedentary":         "Sedentary (little or no exercise)",
		"lightly_active":    "Lightly active (exercise 1-3 days/week)",
		"moderately_active": "Moderately active (exercise 3-5 days/week)",
		"very_active":       "Very active (exercise 6-7 days/week)",
		"extra_active":      "Extra active (very hard exercise daily or physical job)",
	},
}

// bodyRange bounds plausible height and weight per unit system.
type bodyRange struct {
	minHeight, maxHeight float64
	minWeight, maxWeight float64
	heightUnit           string
	weightUnit           string
}

var bodyRanges = map[string]bodyRange{
	unitMetric:   {minHeight: 30, maxHeight: 300, minWeight: 1, maxWeight: 1000, heightUnit: "cm", weightUnit: "kg"},
	unitImperial: {minHeight: 12, maxHeight: 120, minWeight: 2, maxWeight: 2500, heightUnit: "in", weightUnit: "lb"},
}

type healthMetricsArgs struct {
	Height        float64 `mapstructure:"height"`
	Weight        float64 `mapstructure:"weight"`
	Age           *int64  `mapstructure:"age"`
	Gender        *string `mapstructure:"gender"`
	ActivityLevel string  `mapstructure:"activity_level"`
	UnitSystem    string  `mapstructure:"unit_system"`
	Language      string  `mapstructure:"language"`

	Imperial   bool    `mapstructure:"-"`
	Metabolic  bool    `mapstructure:"-"`
	Male       bool    `mapstructure:"-"`
	Multiplier float64 `mapstructure:"-"`
	Activity   string  `mapstructure:"-"`
}

func genderField() schema.Field {
	return schema.String("gender", "Gender: male or female").OneOf("male", "female")
}

func activityField(def string) schema.Field {
	return schema.String("activity_level", "Activity level: sedentary, lightly_active, moderately_active, very_active, extra_active").
		Optional(def).
		OneOf(activityLevels...)
}

func HealthMetrics() domain.Prompt {
	return &prompt{
		name:        "health_metrics",
		description: "Guide the assistant through BMI, ideal weight, BMR and daily energy calculations with personalised health advice",
		schema: schema.New(
			schema.Number("height", "Height in cm (metric) or inches (imperial)").Above(0).Max(300),
			schema.Number("weight", "Weight in kg (metric) or pounds (imperial)").Above(0).Max(2500),
			schema.Integer("age", "Age in years, enables the BMR section").NoDefault().Min(1).Max(120),
			genderField().NoDefault(),
			activityField("sedentary"),
			schema.String("unit_system", "Unit system: metric or imperial").Optional(unitMetric).OneOf(unitMetric, unitImperial),
			languageField(),
		),
		check: func(in schema.Input) error {
			r := bodyRanges[in.String("unit_system")]
			height, weight := in.Float("height"), in.Float("weight")
			if height < r.minHeight || height > r.maxHeight {
				return fmt.Errorf("height must be between %s and %s %s for the %s unit system",
					formatNumber(r.minHeight), formatNumber(r.maxHeight), r.heightUnit, in.String("unit_system"))
			}
			if weight < r.minWeight || weight > r.maxWeight {
				return fmt.Errorf("weight must be between %s and %s %s for the %s unit system",
					formatNumber(r.minWeight), formatNumber(r.maxWeight), r.weightUnit, in.String("unit_system"))
			}
			return nil
		},
		render: func(in schema.Input) (any, error) {
			var args healthMetricsArgs
			if err := in.Decode(&args); err != nil {
				return nil, err
			}
			args.Imperial = args.UnitSystem == unitImperial
			args.Metabolic = args.Age != nil && args.Gender != nil
			args.Male = args.Gender != nil && *args.Gender == "male"
			args.Multiplier = activityMultipliers[args.ActivityLevel]
			args.Activity = activityDescriptions[args.Language][args.ActivityLevel]
			return args, nil
		},
	}
}
