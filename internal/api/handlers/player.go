package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jstittsworth/projection-engine/internal/models"
	"github.com/jstittsworth/projection-engine/pkg/database"
	"github.com/jstittsworth/projection-engine/pkg/utils"
)

type PlayerHandler struct {
	db *database.DB
}

func NewPlayerHandler(db *database.DB) *PlayerHandler {
	return &PlayerHandler{db: db}
}

// ListPlayers returns roster entries, filterable by team and position. Fill
// players are excluded unless include_fill=true.
func (h *PlayerHandler) ListPlayers(c *gin.Context) {
	query := h.db.Model(&models.Player{})

	if team := c.Query("team"); team != "" {
		query = query.Where("team = ?", team)
	}
	if position := c.Query("position"); position != "" {
		query = query.Where("position = ?", position)
	}
	if c.Query("include_fill") != "true" {
		query = query.Where("is_fill_player = ?", false)
	}

	var players []models.Player
	if err := query.Order("team, position, name").Find(&players).Error; err != nil {
		utils.SendInternalError(c, "Failed to list players")
		return
	}

	utils.SendSuccess(c, players)
}

// GetPlayer returns one player with their historical season lines.
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var player models.Player
	if err := h.db.First(&player, id).Error; err != nil {
		utils.SendNotFound(c, "Player not found")
		return
	}

	var history []models.SeasonStat
	if err := h.db.Where("player_id = ?", player.ID).Order("season desc").Find(&history).Error; err != nil {
		utils.SendInternalError(c, "Failed to load player history")
		return
	}

	utils.SendSuccess(c, gin.H{
		"player":  player,
		"history": history,
	})
}
