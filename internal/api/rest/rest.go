package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/adrift-app/adrift/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Write endpoints (requires API key authentication; the bottle
		// password is checked inside the handler on top of this)
		v1.POST("/bottles", middleware.APIKeyAuth(authCfg), handler.CreateBottle)
		v1.POST("/bottles/:id/events", middleware.APIKeyAuth(authCfg), handler.AppendEvent)

		// Reconstruction endpoints (public read access)
		v1.GET("/bottles/:id/journey", handler.GetJourney)
		v1.GET("/trail", handler.GetTrail)
		v1.GET("/users/:username/stats", handler.GetUserStats)
		v1.GET("/conversations", handler.GetConversations)
	}
}
