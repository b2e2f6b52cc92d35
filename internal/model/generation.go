package model

// GeneratedRecipe is the loosely-typed recipe produced by the language model.
// The only keys every branch of the pipeline guarantees are "title" and
// "nutrition"; a well-behaved model additionally supplies "ingredients",
// "steps" and "notes", and the fallback branches add "raw_text" for debugging.
type GeneratedRecipe map[string]interface{}

// GenerateResult is the envelope returned by the generation pipeline.
// Retrieved is carried for transparency; the request surface decides how much
// of it to expose.
type GenerateResult struct {
	InputIngredients []string        `json:"input_ingredients"`
	Diet             string          `json:"diet"`
	Cuisine          string          `json:"cuisine"`
	Retrieved        []ScoredRecipe  `json:"retrieved"`
	GeneratedRecipe  GeneratedRecipe `json:"generated_recipe"`
}
