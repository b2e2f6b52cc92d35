package service

import (
	"fmt"
	"strings"

	"github.com/BiancaGL2104/CookMate-Recipe-Generator/internal/model"
)

// ragPromptTemplate is the contract with the language model. The field names
// in the JSON skeleton and the ONLY-JSON instruction drive the parse success
// rate downstream, so edits here are compatibility-affecting.
const ragPromptTemplate = `You are CookMate, an AI that creates recipes.

User ingredients: %s
Diet: %s
Cuisine: %s

Here are example recipes from our database:

%s

TASK:
Create a NEW recipe (not copied) that uses the user's ingredients.
Respect the diet/cuisine if provided.

Return ONLY JSON in this format:
{
 "title": "...",
 "ingredients": ["..."],
 "steps": ["..."],
 "notes": "..."
}`

// BuildRAGPrompt renders the generation prompt from the user constraints and
// the retrieved examples.
func BuildRAGPrompt(ingredients []string, diet, cuisine string, retrieved []model.ScoredRecipe) string {
	if diet == "" {
		diet = "no specific diet"
	}
	if cuisine == "" {
		cuisine = "any cuisine"
	}

	blocks := make([]string, 0, len(retrieved))
	for _, r := range retrieved {
		steps := r.Steps
		if len(steps) > 3 {
			steps = steps[:3]
		}
		blocks = append(blocks, fmt.Sprintf("Title: %s\nIngredients: %s\nSteps: %s\n",
			r.Title,
			strings.Join(r.Ingredients, ", "),
			strings.Join(steps, " ")))
	}

	prompt := fmt.Sprintf(ragPromptTemplate,
		strings.Join(ingredients, ", "),
		diet,
		cuisine,
		strings.Join(blocks, "\n\n"))

	return strings.TrimSpace(prompt)
}
