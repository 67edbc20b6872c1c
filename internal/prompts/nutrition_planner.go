package prompts

import (
	"errors"
	"math"
	"strings"

	"calcmcp/internal/domain"
	"calcmcp/internal/schema"
)

const maxWeightChange = 50

var dietaryRestrictions = []string{"vegetarian", "vegan", "gluten_free", "dairy_free", "low_sodium", "diabetic", "keto", "paleo"}

var restrictionNames = map[string]map[string]string{
	languageChinese: {
		"vegetarian":  "素食主义",
		"vegan":       "纯素食主义",
		"gluten_free": "无麸质饮食",
		"dairy_free":  "无乳制品饮食",
		"low_sodium":  "低钠饮食",
		"diabetic":    "糖尿病饮食",
		"keto":        "生酮饮食",
		"paleo":       "原始人饮食",
	},
	languageEnglish: {
		"vegetarian":  "Vegetarian",
		"vegan":       "Vegan",
		"gluten_free": "Gluten-free",
		"dairy_free":  "Dairy-free",
		"low_sodium":  "Low sodium",
		"diabetic":    "Diabetic diet",
		"keto":        "Ketogenic",
		"paleo":       "Paleo",
	},
}

var restrictionSeparator = map[string]string{
	languageChinese: "、",
	languageEnglish: ", ",
}

var goalDescriptions = map[string]map[string]string{
	languageChinese: {
		"maintain":    "维持当前体重",
		"lose_weight": "健康减重",
		"gain_weight": "健康增重",
		"gain_muscle": "增肌塑形",
	},
	languageEnglish: {
		"maintain":    "Maintain current weight",
		"lose_weight": "Healthy weight loss",
		"gain_weight": "Healthy weight gain",
		"gain_muscle": "Muscle building",
	},
}

// proteinPerKg is grams of protein per kg of body weight by goal.
var proteinPerKg = map[string]float64{
	"maintain":    1.2,
	"lose_weight": 1.6,
	"gain_weight": 1.2,
	"gain_muscle": 2.0,
}

var mealNames = map[string][]string{
	languageChinese: {"早餐", "午餐", "晚餐", "上午加餐", "下午加餐", "晚间加餐"},
	languageEnglish: {"Breakfast", "Lunch", "Dinner", "Morning snack", "Afternoon snack", "Evening snack"},
}

type nutritionPlannerArgs struct {
	Height              float64  `mapstructure:"height"`
	Weight              float64  `mapstructure:"weight"`
	Age                 int64    `mapstructure:"age"`
	Gender              string   `mapstructure:"gender"`
	ActivityLevel       string   `mapstructure:"activity_level"`
	Goal                string   `mapstructure:"goal"`
	DietaryRestrictions []string `mapstructure:"dietary_restrictions"`
	TargetWeight        *float64 `mapstructure:"target_weight"`
	TimelineWeeks       *int64   `mapstructure:"timeline_weeks"`
	MealsPerDay         int64    `mapstructure:"meals_per_day"`
	Language            string   `mapstructure:"language"`

	Male         bool     `mapstructure:"-"`
	Multiplier   float64  `mapstructure:"-"`
	Activity     string   `mapstructure:"-"`
	GoalText     string   `mapstructure:"-"`
	Restrictions string   `mapstructure:"-"`
	ProteinPerKg float64  `mapstructure:"-"`
	Meals        []string `mapstructure:"-"`
}

func NutritionPlanner() domain.Prompt {
	return &prompt{
		name:        "nutrition_planner",
		description: "Guide the assistant through energy needs, macronutrient split and a per-meal plan for a personal dietary goal",
		schema: schema.New(
			schema.Number("height", "Height in cm").Above(100).Max(250),
			schema.Number("weight", "Weight in kg").Above(30).Max(200),
			schema.Integer("age", "Age in years").Min(1).Max(120),
			genderField(),
			activityField("moderately_active"),
			schema.String("goal", "Dietary goal: maintain, lose_weight, gain_weight, gain_muscle").
				Optional("maintain").
				OneOf("maintain", "lose_weight", "gain_weight", "gain_muscle"),
			schema.StringList("dietary_restrictions", "Dietary restrictions: "+strings.Join(dietaryRestrictions, ", ")).
				NoDefault().
				OneOf(dietaryRestrictions...),
			schema.Number("target_weight", "Target weight in kg").NoDefault().Above(30).Max(200),
			schema.Integer("timeline_weeks", "Weeks to reach the target").NoDefault().Min(1).Max(104),
			schema.Integer("meals_per_day", "Meals per day including snacks, 3 to 6").Optional(3).Min(3).Max(6),
			languageField(),
		),
		check: func(in schema.Input) error {
			if !in.Has("target_weight") {
				return nil
			}
			if math.Abs(in.Float("target_weight")-in.Float("weight")) > maxWeightChange {
				return errors.New("target_weight must be within 50 kg of the current weight")
			}
			return nil
		},
		render: func(in schema.Input) (any, error) {
			var args nutritionPlannerArgs
			if err := in.Decode(&args); err != nil {
				return nil, err
			}
			lang := args.Language
			args.Male = args.Gender == "male"
			args.Multiplier = activityMultipliers[args.ActivityLevel]
			args.Activity = activityDescriptions[lang][args.ActivityLevel]
			args.GoalText = goalDescriptions[lang][args.Goal]
			args.ProteinPerKg = proteinPerKg[args.Goal]

			names := make([]string, len(args.DietaryRestrictions))
			for i, r := range args.DietaryRestrictions {
				names[i] = restrictionNames[lang][r]
			}
			args.Restrictions = strings.Join(names, restrictionSeparator[lang])

			args.Meals = mealNames[lang][:min(int(args.MealsPerDay), len(mealNames[lang]))]
			return args, nil
		},
	}
}
