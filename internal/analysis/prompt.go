package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/guttosm/freshcart-pos/internal/domain/model"
	"google.golang.org/genai"
)

// buildPrompt renders the cart as "2x Banana, 1x Milk" inside the analysis instructions.
func buildPrompt(items []model.AnalysisItem) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = fmt.Sprintf("%dx %s", it.Quantity, it.Name)
	}

	return `
Analyze the following shopping cart items: ` + strings.Join(parts, ", ") + `.
1. Give a health score from 0 to 100 based on nutritional balance.
2. Provide a brief, friendly summary of the cart's healthiness (max 2 sentences).
3. Suggest up to 3 simple recipes that can be made using mostly these ingredients.
   For each recipe, list 1-2 key ingredients that might be missing from the cart (if any).
`
}

// responseSchema constrains the model output to the analysis payload.
func responseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"healthScore": {
				Type:        genai.TypeInteger,
				Description: "A score from 0-100 representing nutritional value.",
			},
			"healthSummary": {
				Type:        genai.TypeString,
				Description: "A 1-2 sentence friendly summary of the cart's nutritional value.",
			},
			"recipes": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":        {Type: genai.TypeString, Description: "Name of the recipe"},
						"description": {Type: genai.TypeString, Description: "Short description of the dish"},
						"missingIngredients": {
							Type:        genai.TypeArray,
							Items:       &genai.Schema{Type: genai.TypeString},
							Description: "List of 1-2 key ingredients not in the cart needed for this recipe",
						},
					},
				},
			},
		},
		Required: []string{"healthScore", "healthSummary", "recipes"},
	}
}

type wireRecipe struct {
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	MissingIngredients []string `json:"missingIngredients"`
}

type wireResult struct {
	HealthScore   *int         `json:"healthScore"`
	HealthSummary *string      `json:"healthSummary"`
	Recipes       []wireRecipe `json:"recipes"`
}

// parseResult decodes the model's JSON text. Text wrapped in prose or code
// fences is trimmed to the outermost object first.
func parseResult(text string) (model.AnalysisResult, error) {
	if strings.TrimSpace(text) == "" {
		return model.AnalysisResult{}, NewServiceError(KindEmptyPayload, fmt.Errorf("empty response text"))
	}

	raw := extractJSON(text)
	if raw == "" {
		return model.AnalysisResult{}, NewServiceError(KindParse, fmt.Errorf("no JSON object in response"))
	}

	var w wireResult
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		return model.AnalysisResult{}, NewServiceError(KindParse, err)
	}
	if w.HealthScore == nil || w.HealthSummary == nil {
		return model.AnalysisResult{}, NewServiceError(KindParse, fmt.Errorf("missing required fields"))
	}

	out := model.AnalysisResult{
		HealthScore:   *w.HealthScore,
		HealthSummary: *w.HealthSummary,
		Recipes:       make([]model.Recipe, 0, len(w.Recipes)),
	}
	for _, r := range w.Recipes {
		missing := r.MissingIngredients
		if missing == nil {
			missing = []string{}
		}
		out.Recipes = append(out.Recipes, model.Recipe{
			Name:               r.Name,
			Description:        r.Description,
			MissingIngredients: missing,
		})
	}
	return out, nil
}

func extractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return ""
	}
	return text[start : end+1]
}
