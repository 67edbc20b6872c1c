package prompts

import "calcmcp/internal/domain"

// Catalog returns the prompt constructors in registration order.
func Catalog() []domain.PromptFactory {
	return []domain.PromptFactory{
		MultiplicationTable,
		HealthMetrics,
		NutritionPlanner,
	}
}
