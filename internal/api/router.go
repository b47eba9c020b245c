package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/projection-engine/internal/api/handlers"
	"github.com/jstittsworth/projection-engine/internal/api/middleware"
	"github.com/jstittsworth/projection-engine/internal/providers"
	"github.com/jstittsworth/projection-engine/internal/services"
	"github.com/jstittsworth/projection-engine/pkg/config"
	"github.com/jstittsworth/projection-engine/pkg/database"
)

// SetupRoutes configures all API routes on the given router group.
func SetupRoutes(group *gin.RouterGroup, db *database.DB, cache *services.CacheService, cfg *config.Config, auditor *services.ConsistencyAuditor, logger *logrus.Logger) {
	// Services
	projectionService := services.NewProjectionService(db, cache, logger)
	overrideService := services.NewOverrideService(db, cache, logger)
	adjustmentService := services.NewAdjustmentService(db, cache, logger)
	regressionService := services.NewRegressionService(db, logger)
	teamService := services.NewTeamService(db, cache, logger)
	scenarioService := services.NewScenarioService(db, cache, logger)

	feed := providers.NewStatsFeedClient(cfg.StatsFeedBaseURL, cfg.StatsFeedAPIKey, cfg.StatsFeedRateLimit, cfg.StatsFeedTimeout, logger)
	importService := services.NewImportService(db, feed, logger)

	// Handlers
	healthHandler := handlers.NewHealthHandler(db)
	projectionHandler := handlers.NewProjectionHandler(projectionService, overrideService, adjustmentService, regressionService)
	teamHandler := handlers.NewTeamHandler(teamService)
	scenarioHandler := handlers.NewScenarioHandler(scenarioService)
	playerHandler := handlers.NewPlayerHandler(db)
	adminHandler := handlers.NewAdminHandler(importService, auditor)

	group.GET("/health", healthHandler.Check)

	// Player endpoints
	group.GET("/players", playerHandler.ListPlayers)
	group.GET("/players/:id", playerHandler.GetPlayer)

	// Projection endpoints
	group.GET("/projections", projectionHandler.ListProjections)
	group.GET("/projections/:id", projectionHandler.GetProjection)
	group.POST("/projections/bootstrap", projectionHandler.Bootstrap)
	group.POST("/projections/regress", projectionHandler.Regress)
	group.POST("/projections/:id/adjustments", projectionHandler.Adjust)
	group.GET("/projections/:id/overrides", projectionHandler.ListOverrides)
	group.POST("/projections/:id/overrides", projectionHandler.ApplyOverride)
	group.DELETE("/projections/:id/overrides/:overrideId", projectionHandler.DeleteOverride)

	// Team endpoints
	group.POST("/teams/:team/adjustments", teamHandler.Adjust)
	group.POST("/teams/:team/fill-players", teamHandler.GenerateFillPlayers)

	// Scenario endpoints
	group.GET("/scenarios", scenarioHandler.List)
	group.GET("/scenarios/compare", scenarioHandler.Compare)
	group.POST("/scenarios", scenarioHandler.Create)
	group.POST("/scenarios/:id/clone", scenarioHandler.Clone)
	group.POST("/scenarios/:id/players/:playerId", scenarioHandler.AddPlayer)
	group.DELETE("/scenarios/:id", scenarioHandler.Delete)

	// Admin endpoints
	admin := group.Group("/admin")
	admin.Use(middleware.AuthRequired(cfg.JWTSecret))
	{
		admin.POST("/import", adminHandler.Import)
		admin.POST("/audit", adminHandler.Audit)
	}
}
