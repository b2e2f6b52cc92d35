package router

import (
	"github.com/gin-gonic/gin"

	"github.com/BiancaGL2104/CookMate-Recipe-Generator/internal/api"
	"github.com/BiancaGL2104/CookMate-Recipe-Generator/internal/middleware"
)

// SetupRouter configures the application routes.
func SetupRouter(recipeHandler *api.RecipeHandler) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())

	router.GET("/", api.Root)
	router.GET("/health", api.Health)

	recipeHandler.RegisterRoutes(router)

	return router
}
