package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/BiancaGL2104/CookMate-Recipe-Generator/internal/model"
)

// RetrievalService answers "which known recipes look like this request" by
// encoding a textual query and running it against the vector index.
type RetrievalService struct {
	encoder Encoder
	index   RecipeIndex
}

// NewRetrievalService creates a new RetrievalService instance.
func NewRetrievalService(encoder Encoder, index RecipeIndex) *RetrievalService {
	return &RetrievalService{
		encoder: encoder,
		index:   index,
	}
}

// BuildQueryText renders the query fed to the embedding model. The index was
// built from text in this exact shape, so the template is part of the
// retrieval contract: changing it shifts every similarity score without any
// error surfacing.
func BuildQueryText(ingredients []string, diet, cuisine string) string {
	parts := []string{"Ingredients: " + strings.Join(ingredients, ", ")}
	if diet != "" {
		parts = append(parts, "Diet: "+diet)
	}
	if cuisine != "" {
		parts = append(parts, "Cuisine: "+cuisine)
	}
	return strings.Join(parts, ". ")
}

// Search returns the top-k most similar recipes, deduplicated and hydrated.
// k is clamped to the index size. Ingredients are expected to be normalized
// already; that happens once at the request boundary.
func (s *RetrievalService) Search(ingredients []string, diet, cuisine string, k int) ([]model.ScoredRecipe, error) {
	queryText := BuildQueryText(ingredients, diet, cuisine)

	query, err := s.encoder.Encode(queryText)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	if total := s.index.Total(); k > total {
		k = total
	}

	scores, rows := s.index.Search(query, k)

	// The index may hand back the same row more than once; keep the first
	// occurrence and its score.
	seen := make(map[int]bool, len(rows))
	results := make([]model.ScoredRecipe, 0, len(rows))
	keptRows := make([]int, 0, len(rows))
	keptScores := make([]float32, 0, len(rows))
	for i, row := range rows {
		if seen[row] {
			continue
		}
		seen[row] = true
		keptRows = append(keptRows, row)
		keptScores = append(keptScores, scores[i])
		results = append(results, model.ScoredRecipe{Recipe: s.index.Get(row), Score: scores[i]})
	}

	log.Printf("RETRIEVAL | query=%q | top_k=%d | indices=%v", queryText, k, keptRows)
	log.Printf("RETRIEVAL | scores=%v", keptScores)

	return results, nil
}
