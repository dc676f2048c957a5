package api

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/masterphooey/wakeword-recorder-api/api/health"
	"github.com/masterphooey/wakeword-recorder-api/api/session"
	"github.com/masterphooey/wakeword-recorder-api/api/takes"
	"github.com/masterphooey/wakeword-recorder-api/api/training"
	"github.com/masterphooey/wakeword-recorder-api/api/types"
	"github.com/masterphooey/wakeword-recorder-api/api/version"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	if deps == nil || deps.Recorder == nil {
		return fmt.Errorf("recorder service is required")
	}

	// Register public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	// API v1 routes
	v1 := engine.Group("/api/v1")

	// Register session routes with general rate limiting (10 req/s, burst of 20)
	sessionGroup := v1.Group("/session")
	sessionGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
	session.RegisterRoutes(sessionGroup, deps)

	// Register take routes with higher limits (20 req/s, burst of 30): a
	// recording pass uploads files back to back
	takesGroup := v1.Group("/takes")
	takesGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 20, 30))
	takes.RegisterRoutes(takesGroup, deps)

	// Register training routes with general rate limiting (10 req/s, burst of 20)
	trainingGroup := v1.Group("/training")
	trainingGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
	training.RegisterRoutes(trainingGroup, deps)

	return nil
}
