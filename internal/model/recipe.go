package model

// Recipe is a single row of the cleaned recipe dataset. The slice position of a
// Recipe inside the store matches the row order of the embedding matrix; that
// alignment is what makes positional hydration after a vector search valid.
//
// Nutrition fields are pointers because the source data may omit them. Absent
// values stay absent here so the nutrition estimator can tell "no data" apart
// from an actual zero; the API layer zero-fills when shaping responses.
type Recipe struct {
	RecipeID    int      `json:"recipe_id"`
	Title       string   `json:"title"`
	Ingredients []string `json:"ingredients_list"`
	Steps       []string `json:"steps_list"`
	Calories    *float64 `json:"calories"`
	Fat         *float64 `json:"fat"`
	Carbs       *float64 `json:"carbs"`
	Protein     *float64 `json:"protein"`
}

// ScoredRecipe pairs a hydrated recipe with its similarity score from the
// vector search. The score is diagnostic only and never serialized.
type ScoredRecipe struct {
	Recipe
	Score float32 `json:"-"`
}
