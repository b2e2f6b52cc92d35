package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BiancaGL2104/CookMate-Recipe-Generator/internal/service"
)

// RecipeHandler handles search and generation requests.
type RecipeHandler struct {
	retrieval service.RecipeSearcher
	generator service.RecipeGenerator
}

// NewRecipeHandler creates a new RecipeHandler instance.
func NewRecipeHandler(retrieval service.RecipeSearcher, generator service.RecipeGenerator) *RecipeHandler {
	return &RecipeHandler{
		retrieval: retrieval,
		generator: generator,
	}
}

// RegisterRoutes registers the recipe routes.
func (h *RecipeHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/search_recipes", h.SearchRecipes)
	router.POST("/generate_recipe", h.GenerateRecipe)
}

// SearchRecipes handles POST /search_recipes.
func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.K <= 0 {
		req.K = defaultTopK
	}

	start := time.Now()
	results, err := h.retrieval.Search(req.Ingredients, req.Diet, req.Cuisine, req.K)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search recipes: " + err.Error()})
		return
	}

	out := make([]RecipeOut, len(results))
	for i, r := range results {
		out[i] = toRecipeOut(r)
	}

	log.Printf("SEARCH | ingredients=%v | diet=%q | cuisine=%q | k=%d | results=%d | time=%.3fs",
		[]string(req.Ingredients), req.Diet, req.Cuisine, req.K, len(out), time.Since(start).Seconds())

	c.JSON(http.StatusOK, out)
}

// GenerateRecipe handles POST /generate_recipe. Generation-path failures
// (service errors, unparsable output) come back as 200s with a degraded
// recipe object; only input errors are surfaced as request failures.
func (h *RecipeHandler) GenerateRecipe(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.K <= 0 {
		req.K = defaultTopK
	}

	start := time.Now()
	result, err := h.generator.Generate(c.Request.Context(), req.Ingredients, req.Diet, req.Cuisine, req.K)
	if err != nil {
		if errors.Is(err, service.ErrNoIngredients) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate recipe: " + err.Error()})
		return
	}

	log.Printf("GENERATE | ingredients=%v | diet=%q | cuisine=%q | k=%d | time=%.3fs",
		[]string(req.Ingredients), req.Diet, req.Cuisine, req.K, time.Since(start).Seconds())

	c.JSON(http.StatusOK, GeneratedRecipeOut{
		InputIngredients: result.InputIngredients,
		Diet:             result.Diet,
		Cuisine:          result.Cuisine,
		GeneratedRecipe:  result.GeneratedRecipe,
	})
}
