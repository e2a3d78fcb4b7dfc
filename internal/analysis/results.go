package analysis

import "github.com/guttosm/freshcart-pos/internal/domain/model"

const (
	emptyCartSummary = "Your cart is empty. Add items to get started!"
	fallbackSummary  = "We couldn't connect to the Chef AI right now, but your cart looks tasty!"
	fallbackScore    = 50
)

// EmptyCartResult is returned for an empty cart without contacting the service.
func EmptyCartResult() model.AnalysisResult {
	return model.AnalysisResult{
		HealthScore:   0,
		HealthSummary: emptyCartSummary,
		Recipes:       []model.Recipe{},
	}
}

// FallbackResult is what the session settles on when the service fails.
func FallbackResult() model.AnalysisResult {
	return model.AnalysisResult{
		HealthScore:   fallbackScore,
		HealthSummary: fallbackSummary,
		Recipes: []model.Recipe{
			{
				Name:               "Mystery Dish",
				Description:        "Try combining your ingredients!",
				MissingIngredients: []string{},
			},
		},
	}
}
