package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jstittsworth/projection-engine/internal/services"
	"github.com/jstittsworth/projection-engine/pkg/utils"
)

type ScenarioHandler struct {
	scenarios *services.ScenarioService
}

func NewScenarioHandler(scenarios *services.ScenarioService) *ScenarioHandler {
	return &ScenarioHandler{scenarios: scenarios}
}

type createScenarioRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Season      int    `json:"season" binding:"required"`
}

// Create creates an empty named scenario.
func (h *ScenarioHandler) Create(c *gin.Context) {
	var req createScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	scenario, err := h.scenarios.CreateScenario(req.Name, req.Description, req.Season)
	if err != nil {
		utils.SendEngineError(c, err)
		return
	}

	utils.SendSuccess(c, scenario)
}

type cloneScenarioRequest struct {
	Name string `json:"name" binding:"required"`
}

// Clone copies a scenario's projections and overrides into a new scenario.
func (h *ScenarioHandler) Clone(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req cloneScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	scenario, err := h.scenarios.CloneScenario(id, req.Name)
	if err != nil {
		utils.SendEngineError(c, err)
		return
	}

	utils.SendSuccess(c, scenario)
}

// List returns scenarios for a season.
func (h *ScenarioHandler) List(c *gin.Context) {
	season := 0
	if seasonStr := c.Query("season"); seasonStr != "" {
		parsed, err := strconv.Atoi(seasonStr)
		if err != nil {
			utils.SendValidationError(c, "Invalid season", err.Error())
			return
		}
		season = parsed
	}

	scenarios, err := h.scenarios.ListScenarios(season)
	if err != nil {
		utils.SendEngineError(c, err)
		return
	}

	utils.SendSuccess(c, scenarios)
}

// Compare returns side-by-side player projections across scenarios. Scenario
// IDs come as a comma-separated "ids" query parameter.
func (h *ScenarioHandler) Compare(c *gin.Context) {
	idsParam := c.Query("ids")
	if idsParam == "" {
		utils.SendValidationError(c, "Missing ids", "provide a comma-separated list of scenario IDs")
		return
	}

	var scenarioIDs []uint
	for _, part := range strings.Split(idsParam, ",") {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			utils.SendValidationError(c, "Invalid scenario ID", err.Error())
			return
		}
		scenarioIDs = append(scenarioIDs, uint(id))
	}

	comparisons, err := h.scenarios.CompareScenarios(scenarioIDs, c.Query("position"))
	if err != nil {
		utils.SendEngineError(c, err)
		return
	}

	utils.SendSuccess(c, comparisons)
}

type addPlayerRequest struct {
	Stats map[string]float64 `json:"stats" binding:"required"`
}

// AddPlayer sets a player's stat line inside a scenario, cloning the baseline
// projection into the scenario first if needed.
func (h *ScenarioHandler) AddPlayer(c *gin.Context) {
	scenarioID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	playerID, ok := parseUintParam(c, "playerId")
	if !ok {
		return
	}

	var req addPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	projection, err := h.scenarios.AddPlayerToScenario(scenarioID, playerID, req.Stats)
	if err != nil {
		utils.SendEngineError(c, err)
		return
	}

	utils.SendSuccess(c, projection)
}

// Delete removes a scenario and everything scoped to it.
func (h *ScenarioHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.scenarios.DeleteScenario(id); err != nil {
		utils.SendEngineError(c, err)
		return
	}

	utils.SendSuccess(c, gin.H{"deleted": id})
}
