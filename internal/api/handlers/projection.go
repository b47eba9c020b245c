package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jstittsworth/projection-engine/internal/services"
	"github.com/jstittsworth/projection-engine/pkg/utils"
)

type ProjectionHandler struct {
	projections *services.ProjectionService
	overrides   *services.OverrideService
	adjustments *services.AdjustmentService
	regression  *services.RegressionService
}

func NewProjectionHandler(projections *services.ProjectionService, overrides *services.OverrideService, adjustments *services.AdjustmentService, regression *services.RegressionService) *ProjectionHandler {
	return &ProjectionHandler{
		projections: projections,
		overrides:   overrides,
		adjustments: adjustments,
		regression:  regression,
	}
}

// GetProjection returns a single projection with its player.
func (h *ProjectionHandler) GetProjection(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	projection, err := h.projections.GetProjection(id)
	if err != nil {
		utils.SendEngineError(c, err)
		return
	}

	utils.SendSuccess(c, projection)
}

// ListProjections returns projections filtered by team, position, season and
// scenario, ordered by fantasy points.
func (h *ProjectionHandler) ListProjections(c *gin.Context) {
	filter := services.ProjectionFilter{
		Team:     c.Query("team"),
		Position: c.Query("position"),
	}

	if seasonStr := c.Query("season"); seasonStr != "" {
		season, err := strconv.Atoi(seasonStr)
		if err != nil {
			utils.SendValidationError(c, "Invalid season", err.Error())
			return
		}
		filter.Season = season
	}

	if scenarioID, ok, valid := parseOptionalUintQuery(c, "scenario_id"); !valid {
		return
	} else if ok {
		filter.ScenarioID = &scenarioID
	}

	projections, err := h.projections.ListProjections(filter)
	if err != nil {
		utils.SendEngineError(c, err)
		return
	}

	utils.SendSuccess(c, projections)
}

type bootstrapRequest struct {
	PlayerID uint `json:"player_id" binding:"required"`
	Season   int  `json:"season" binding:"required"`
}

// Bootstrap creates a baseline projection for a player from their most
// recent historical season.
func (h *ProjectionHandler) Bootstrap(c *gin.Context) {
	var req bootstrapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	projection, err := h.projections.CreateFromBaseline(req.PlayerID, req.Season)
	if err != nil {
		utils.SendEngineError(c, err)
		return
	}

	utils.SendSuccess(c, projection)
}

type overrideRequest struct {
	Stat  string  `json:"stat" binding:"required"`
	Value float64 `json:"value"`
}

// ApplyOverride pins a stat on a projection and recomputes its dependents.
func (h *ProjectionHandler) ApplyOverride(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req overrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	projection, err := h.overrides.ApplyOverride(id, req.Stat, req.Value)
	if err != nil {
		utils.SendEngineError(c, err)
		return
	}

	utils.SendSuccess(c, projection)
}

// ListOverrides returns a projection's overrides in application order.
func (h *ProjectionHandler) ListOverrides(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	overrides, err := h.overrides.ListOverrides(id)
	if err != nil {
		utils.SendEngineError(c, err)
		return
	}

	utils.SendSuccess(c, overrides)
}

// DeleteOverride removes one override and replays the rest.
func (h *ProjectionHandler) DeleteOverride(c *gin.Context) {
	overrideID, ok := parseUintParam(c, "overrideId")
	if !ok {
		return
	}

	projection, err := h.overrides.DeleteOverride(overrideID)
	if err != nil {
		utils.SendEngineError(c, err)
		return
	}

	utils.SendSuccess(c, projection)
}

type adjustmentRequest struct {
	Adjustments map[string]float64 `json:"adjustments" binding:"required"`
}

// Adjust applies proportional adjustment factors to a projection.
func (h *ProjectionHandler) Adjust(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req adjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	projection, err := h.adjustments.Adjust(id, req.Adjustments)
	if err != nil {
		utils.SendEngineError(c, err)
		return
	}

	utils.SendSuccess(c, projection)
}

type regressRequest struct {
	PlayerID   uint  `json:"player_id" binding:"required"`
	Season     int   `json:"season" binding:"required"`
	ScenarioID *uint `json:"scenario_id"`
}

// Regress blends a projection toward the player's historical baseline.
func (h *ProjectionHandler) Regress(c *gin.Context) {
	var req regressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	projection, blended, err := h.regression.Regress(req.PlayerID, req.Season, req.ScenarioID)
	if err != nil {
		utils.SendEngineError(c, err)
		return
	}

	utils.SendSuccess(c, gin.H{
		"projection": projection,
		"blended":    blended,
	})
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		utils.SendValidationError(c, "Invalid "+name, err.Error())
		return 0, false
	}
	return uint(value), true
}

// parseOptionalUintQuery returns (value, present, valid). An invalid value
// writes the error response before returning.
func parseOptionalUintQuery(c *gin.Context, name string) (uint, bool, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false, true
	}
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		utils.SendValidationError(c, "Invalid "+name, err.Error())
		return 0, false, false
	}
	return uint(value), true, true
}
