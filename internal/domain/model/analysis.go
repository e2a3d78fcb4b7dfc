package model

// AnalysisItem is the slice of a cart line the analysis service needs.
type AnalysisItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Recipe is a suggested dish built mostly from cart contents.
//
// @Description Recipe suggestion
// @Example {"name": "Banana Smoothie", "description": "Blend banana with milk", "missing_ingredients": ["Honey"]}
type Recipe struct {
	Name               string   `json:"name" example:"Banana Smoothie"`
	Description        string   `json:"description" example:"Blend banana with milk"`
	MissingIngredients []string `json:"missing_ingredients" example:"Honey"`
}

// AnalysisResult is a nutritional rating and recipe suggestions for a cart.
//
// @Description Cart health analysis
type AnalysisResult struct {
	// HealthScore is in [0,100] by service contract
	HealthScore   int      `json:"health_score" example:"72"`
	HealthSummary string   `json:"health_summary" example:"A balanced cart with plenty of produce."`
	Recipes       []Recipe `json:"recipes"`
}

// ScoreBand buckets a health score for display.
type ScoreBand string

const (
	ScoreBandGood ScoreBand = "good"
	ScoreBandFair ScoreBand = "fair"
	ScoreBandPoor ScoreBand = "poor"
)

// Band returns the display band of the health score.
func (r AnalysisResult) Band() ScoreBand {
	switch {
	case r.HealthScore >= 80:
		return ScoreBandGood
	case r.HealthScore >= 50:
		return ScoreBandFair
	default:
		return ScoreBandPoor
	}
}

// Clone returns a deep copy so callers cannot alias session-owned slices.
func (r AnalysisResult) Clone() AnalysisResult {
	out := AnalysisResult{
		HealthScore:   r.HealthScore,
		HealthSummary: r.HealthSummary,
		Recipes:       make([]Recipe, len(r.Recipes)),
	}
	for i, rec := range r.Recipes {
		missing := make([]string, len(rec.MissingIngredients))
		copy(missing, rec.MissingIngredients)
		out.Recipes[i] = Recipe{
			Name:               rec.Name,
			Description:        rec.Description,
			MissingIngredients: missing,
		}
	}
	return out
}
