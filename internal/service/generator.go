package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/BiancaGL2104/CookMate-Recipe-Generator/internal/model"
)

// ErrNoIngredients is returned when generation is requested with an empty
// ingredient list. It fires before any retrieval or network work.
var ErrNoIngredients = errors.New("at least one ingredient is required")

const cookingAssistantPrompt = "You are a helpful cooking assistant."

var (
	thinkBlockPattern = regexp.MustCompile(`(?s)<think>.*?</think>`)
	openFencePattern  = regexp.MustCompile("^```" + `[a-zA-Z0-9]*\s*`)
)

// GeneratorService runs the retrieve-prompt-generate-parse pipeline. Its one
// hard rule: a generation failure of any kind degrades into a well-formed
// recipe object, it never becomes a request failure.
type GeneratorService struct {
	searcher RecipeSearcher
	llm      ChatCompleter
}

// NewGeneratorService creates a new GeneratorService instance.
func NewGeneratorService(searcher RecipeSearcher, llm ChatCompleter) *GeneratorService {
	return &GeneratorService{
		searcher: searcher,
		llm:      llm,
	}
}

// Generate retrieves similar recipes, asks the model for a new one grounded in
// them, and attaches the averaged nutrition of the retrieved set. Whatever
// branch is taken, the returned recipe carries a title and a nutrition key.
func (g *GeneratorService) Generate(ctx context.Context, ingredients []string, diet, cuisine string, k int) (*model.GenerateResult, error) {
	if len(ingredients) == 0 {
		return nil, ErrNoIngredients
	}

	retrieved, err := g.searcher.Search(ingredients, diet, cuisine, k)
	if err != nil {
		return nil, err
	}

	prompt := BuildRAGPrompt(ingredients, diet, cuisine, retrieved)
	log.Printf("RAG | ingredients=%v | diet=%q | cuisine=%q | retrieved=%d", ingredients, diet, cuisine, len(retrieved))

	start := time.Now()
	raw, err := g.llm.Complete(ctx, cookingAssistantPrompt, prompt)
	if err != nil {
		log.Printf("RAG | LLM error: %v", err)
		return g.envelope(ingredients, diet, cuisine, retrieved, model.GeneratedRecipe{
			"title":     "Generation error",
			"raw_text":  fmt.Sprintf("HuggingFace Router error: %v", err),
			"nutrition": EstimateNutrition(retrieved),
		}), nil
	}
	log.Printf("RAG | LLM call succeeded | time=%.3fs | response_length=%d", time.Since(start).Seconds(), len(raw))

	recipe := parseGeneratedRecipe(raw)
	// The model may invent its own nutrition numbers; the estimate from the
	// retrieved set always wins.
	recipe["nutrition"] = EstimateNutrition(retrieved)

	return g.envelope(ingredients, diet, cuisine, retrieved, recipe), nil
}

func (g *GeneratorService) envelope(ingredients []string, diet, cuisine string, retrieved []model.ScoredRecipe, recipe model.GeneratedRecipe) *model.GenerateResult {
	return &model.GenerateResult{
		InputIngredients: ingredients,
		Diet:             diet,
		Cuisine:          cuisine,
		Retrieved:        retrieved,
		GeneratedRecipe:  recipe,
	}
}

// parseGeneratedRecipe turns free-form model output into a recipe mapping.
// The fallbacks keep the original raw text, not the sanitized one, so the
// unmodified output is available for debugging.
func parseGeneratedRecipe(raw string) model.GeneratedRecipe {
	candidate := extractJSON(sanitizeModelOutput(raw))

	var parsed interface{}
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		log.Printf("RAG | JSON parse failed, returning raw_text")
		return model.GeneratedRecipe{
			"title":    "Generated Recipe (unparsed JSON)",
			"raw_text": raw,
		}
	}

	obj, ok := parsed.(map[string]interface{})
	if !ok {
		return model.GeneratedRecipe{
			"title":    "Generated Recipe (unexpected format)",
			"raw_text": raw,
		}
	}

	log.Printf("RAG | JSON parse success")
	return model.GeneratedRecipe(obj)
}

// sanitizeModelOutput strips reasoning-trace blocks and a surrounding fenced
// code block (with optional language tag) from the model output.
func sanitizeModelOutput(raw string) string {
	text := strings.TrimSpace(thinkBlockPattern.ReplaceAllString(raw, ""))

	if strings.HasPrefix(text, "```") {
		text = openFencePattern.ReplaceAllString(text, "")
		if strings.HasSuffix(text, "```") {
			if i := strings.LastIndex(text, "```"); i >= 0 {
				text = strings.TrimSpace(text[:i])
			}
		}
	}

	return text
}

// extractJSON takes the substring from the first '{' to the last '}' as a
// best-effort JSON candidate. Text without braces passes through unchanged.
func extractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && end > start {
		return text[start : end+1]
	}
	return text
}
