package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jstittsworth/projection-engine/internal/services"
	"github.com/jstittsworth/projection-engine/pkg/utils"
)

type AdminHandler struct {
	importer *services.ImportService
	auditor  *services.ConsistencyAuditor
}

func NewAdminHandler(importer *services.ImportService, auditor *services.ConsistencyAuditor) *AdminHandler {
	return &AdminHandler{
		importer: importer,
		auditor:  auditor,
	}
}

type importRequest struct {
	Season int `json:"season" binding:"required"`
}

// Import ingests rosters, team aggregates and historical lines from the
// stats feed.
func (h *AdminHandler) Import(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Minute)
	defer cancel()

	run, err := h.importer.ImportSeason(ctx, req.Season)
	if err != nil {
		utils.SendEngineError(c, err)
		return
	}

	utils.SendSuccess(c, run)
}

type auditRequest struct {
	Season     int   `json:"season" binding:"required"`
	ScenarioID *uint `json:"scenario_id"`
}

// Audit runs a consistency pass over every projection in scope, fixing
// derived-stat drift and reporting team residual divergence.
func (h *AdminHandler) Audit(c *gin.Context) {
	var req auditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	result, err := h.auditor.Audit(req.Season, req.ScenarioID)
	if err != nil {
		utils.SendEngineError(c, err)
		return
	}

	utils.SendSuccess(c, result)
}
