package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jstittsworth/projection-engine/internal/services"
	"github.com/jstittsworth/projection-engine/pkg/utils"
)

type TeamHandler struct {
	teams *services.TeamService
}

func NewTeamHandler(teams *services.TeamService) *TeamHandler {
	return &TeamHandler{teams: teams}
}

type teamAdjustmentRequest struct {
	Season      int                         `json:"season" binding:"required"`
	ScenarioID  *uint                       `json:"scenario_id"`
	Adjustments map[string]float64          `json:"adjustments" binding:"required"`
	// PlayerShares keys are share metrics; values map player IDs (as JSON
	// strings) to requested shares.
	PlayerShares map[string]map[string]float64 `json:"player_shares"`
}

// Adjust applies team-wide adjustment factors across a roster and reconciles
// the results against the team aggregate.
func (h *TeamHandler) Adjust(c *gin.Context) {
	team := c.Param("team")

	var req teamAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	playerShares, err := parsePlayerShares(req.PlayerShares)
	if err != nil {
		utils.SendValidationError(c, "Invalid player shares", err.Error())
		return
	}

	result, err := h.teams.ApplyTeamAdjustment(services.TeamAdjustmentRequest{
		Team:         team,
		Season:       req.Season,
		ScenarioID:   req.ScenarioID,
		Adjustments:  req.Adjustments,
		PlayerShares: playerShares,
	})
	if err != nil {
		utils.SendEngineError(c, err)
		return
	}

	utils.SendSuccess(c, result)
}

type fillPlayersRequest struct {
	Season     int   `json:"season" binding:"required"`
	ScenarioID *uint `json:"scenario_id"`
}

// GenerateFillPlayers synthesizes roster placeholders absorbing the residual
// between a team aggregate and its known players' projections.
func (h *TeamHandler) GenerateFillPlayers(c *gin.Context) {
	team := c.Param("team")

	var req fillPlayersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	projections, err := h.teams.GenerateFillPlayers(team, req.Season, req.ScenarioID)
	if err != nil {
		utils.SendEngineError(c, err)
		return
	}

	utils.SendSuccess(c, projections)
}

func parsePlayerShares(raw map[string]map[string]float64) (map[string]map[uint]float64, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	shares := make(map[string]map[uint]float64, len(raw))
	for metric, byPlayer := range raw {
		shares[metric] = make(map[uint]float64, len(byPlayer))
		for idStr, share := range byPlayer {
			id, err := strconv.ParseUint(idStr, 10, 32)
			if err != nil {
				return nil, err
			}
			shares[metric][uint(id)] = share
		}
	}
	return shares, nil
}
