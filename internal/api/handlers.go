package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Root handles GET /.
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Welcome to CookMate API"})
}

// Health handles GET /health.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "CookMate backend running"})
}
