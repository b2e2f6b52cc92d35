package service

import (
	"context"

	"github.com/BiancaGL2104/CookMate-Recipe-Generator/internal/model"
)

// Encoder turns query text into a normalized fixed-dimension vector. The
// implementation must use the same model the embedding matrix was built with;
// a different model silently degrades retrieval instead of failing.
type Encoder interface {
	Encode(text string) ([]float32, error)
}

// RecipeIndex is the read-only vector index plus its hydration table. Row
// numbers returned by Search are positions into the same table Get reads from.
type RecipeIndex interface {
	Search(query []float32, k int) (scores []float32, rows []int)
	Get(row int) model.Recipe
	Total() int
}

// ChatCompleter is the external text-generation service.
type ChatCompleter interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// RecipeSearcher defines the retrieval operation consumed by the generation
// pipeline and the API layer.
type RecipeSearcher interface {
	Search(ingredients []string, diet, cuisine string, k int) ([]model.ScoredRecipe, error)
}

// RecipeGenerator defines the full retrieve-and-generate operation.
type RecipeGenerator interface {
	Generate(ctx context.Context, ingredients []string, diet, cuisine string, k int) (*model.GenerateResult, error)
}
