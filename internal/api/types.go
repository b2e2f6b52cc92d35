package api

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BiancaGL2104/CookMate-Recipe-Generator/internal/model"
)

// defaultTopK is the number of neighbors requested when the caller omits k.
const defaultTopK = 5

// IngredientList accepts either a comma-separated string ("tomato, garlic")
// or an array of strings. Normalization happens here, once, at the boundary:
// tokens are split on commas, trimmed, and empty ones dropped, so everything
// downstream sees a clean sequence.
type IngredientList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *IngredientList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = normalizeIngredients([]string{s})
		return nil
	}

	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*l = normalizeIngredients(items)
		return nil
	}

	return fmt.Errorf("ingredients must be a string or an array of strings")
}

func normalizeIngredients(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, chunk := range raw {
		for _, tok := range strings.Split(chunk, ",") {
			if tok = strings.TrimSpace(tok); tok != "" {
				out = append(out, tok)
			}
		}
	}
	return out
}

// SearchRequest is the payload of POST /search_recipes.
type SearchRequest struct {
	Ingredients IngredientList `json:"ingredients"`
	Diet        string         `json:"diet"`
	Cuisine     string         `json:"cuisine"`
	K           int            `json:"k"`
}

// GenerateRequest is the payload of POST /generate_recipe.
type GenerateRequest struct {
	Ingredients IngredientList `json:"ingredients"`
	Diet        string         `json:"diet"`
	Cuisine     string         `json:"cuisine"`
	K           int            `json:"k"`
}

// RecipeOut is the response shape of a retrieved recipe. Nutrition values the
// dataset does not carry are served as 0.
type RecipeOut struct {
	RecipeID        int      `json:"recipe_id"`
	Title           string   `json:"title"`
	IngredientsList []string `json:"ingredients_list"`
	StepsList       []string `json:"steps_list"`
	Calories        float64  `json:"calories"`
	Fat             float64  `json:"fat"`
	Carbs           float64  `json:"carbs"`
	Protein         float64  `json:"protein"`
}

// GeneratedRecipeOut is the response shape of a generation request. Loose on
// purpose: the generated recipe has no enforced schema beyond title and
// nutrition.
type GeneratedRecipeOut struct {
	InputIngredients []string              `json:"input_ingredients"`
	Diet             string                `json:"diet"`
	Cuisine          string                `json:"cuisine"`
	GeneratedRecipe  model.GeneratedRecipe `json:"generated_recipe"`
}

func toRecipeOut(r model.ScoredRecipe) RecipeOut {
	return RecipeOut{
		RecipeID:        r.RecipeID,
		Title:           r.Title,
		IngredientsList: r.Ingredients,
		StepsList:       r.Steps,
		Calories:        deref(r.Calories),
		Fat:             deref(r.Fat),
		Carbs:           deref(r.Carbs),
		Protein:         deref(r.Protein),
	}
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
