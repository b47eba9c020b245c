package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/jstittsworth/projection-engine/internal/models"
	"github.com/jstittsworth/projection-engine/internal/stats"
	"github.com/jstittsworth/projection-engine/pkg/database"
	"github.com/jstittsworth/projection-engine/pkg/utils"
)

// defaultSeasonGames is the regular-season length a bootstrapped projection
// is scaled to.
const defaultSeasonGames = 17.0

// ProjectionService creates and reads projections. Mutation lives in the
// override, adjustment, regression and team services.
type ProjectionService struct {
	db       *database.DB
	cache    *CacheService
	logger   *logrus.Logger
	cacheTTL time.Duration
}

func NewProjectionService(db *database.DB, cache *CacheService, logger *logrus.Logger) *ProjectionService {
	return &ProjectionService{
		db:       db,
		cache:    cache,
		logger:   logger,
		cacheTTL: 5 * time.Minute,
	}
}

// GetProjection loads one projection with its player and overrides.
func (s *ProjectionService) GetProjection(projectionID uint) (*models.Projection, error) {
	if s.cache != nil {
		var cached models.Projection
		if err := s.cache.GetSimple(ProjectionCacheKey(projectionID), &cached); err == nil {
			return &cached, nil
		}
	}

	var projection models.Projection
	err := s.db.Preload("Player").Preload("Overrides").First(&projection, projectionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("projection", "id=%d", projectionID)
		}
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetSimple(ProjectionCacheKey(projectionID), projection, s.cacheTTL)
	}

	return &projection, nil
}

// ProjectionFilter narrows a projection listing.
type ProjectionFilter struct {
	Team       string
	Position   string
	Season     int
	ScenarioID *uint
	PlayerID   uint
}

// ListProjections returns projections matching the filter, baseline scoped
// unless a scenario is given.
func (s *ProjectionService) ListProjections(filter ProjectionFilter) ([]models.Projection, error) {
	query := s.db.Preload("Player")

	if filter.ScenarioID != nil {
		query = query.Where("scenario_id = ?", *filter.ScenarioID)
	} else {
		query = query.Where("scenario_id IS NULL")
	}
	if filter.Team != "" {
		query = query.Where("team = ?", filter.Team)
	}
	if filter.Position != "" {
		query = query.Where("position = ?", filter.Position)
	}
	if filter.Season > 0 {
		query = query.Where("season = ?", filter.Season)
	}
	if filter.PlayerID > 0 {
		query = query.Where("player_id = ?", filter.PlayerID)
	}

	var projections []models.Projection
	err := query.Order("fantasy_points desc").Find(&projections).Error
	return projections, err
}

// CreateFromBaseline builds a baseline projection for the player's season
// from their most recent historical line, carried forward per-game and scaled
// to a full season. Existing projections are returned as-is.
func (s *ProjectionService) CreateFromBaseline(playerID uint, season int) (*models.Projection, error) {
	var existing models.Projection
	err := s.db.Where("player_id = ? AND season = ? AND scenario_id IS NULL", playerID, season).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var player models.Player
	if err := s.db.First(&player, playerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("player", "id=%d", playerID)
		}
		return nil, err
	}

	var history models.SeasonStat
	err = s.db.Where("player_id = ? AND season < ?", playerID, season).
		Order("season desc").
		First(&history).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("season stats", "player=%d", playerID)
		}
		return nil, err
	}

	projection := models.Projection{
		PlayerID: playerID,
		Season:   season,
		Team:     player.Team,
		Position: player.Position,
		Games:    utils.Ptr(defaultSeasonGames),
	}

	// Carry the historical line forward per-game, scaled to a full season.
	scale := utils.SafeDivide(defaultSeasonGames, history.Games, 1)
	pos := stats.Position(player.Position)
	for _, name := range stats.CumulativeStats() {
		if !stats.Applicable(name, pos) {
			continue
		}
		if v := history.Stat(name); v > 0 {
			projection.SetStat(name, v*scale)
		}
	}

	projection.RecomputeDerived()
	projection.RecomputeFantasyPoints()

	if err := s.db.Create(&projection).Error; err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"player_id":       playerID,
		"season":          season,
		"baseline_season": history.Season,
	}).Info("Created projection from historical baseline")

	return &projection, nil
}

// InvalidateProjection drops the cached copy after an external mutation.
func (s *ProjectionService) InvalidateProjection(projectionID uint) {
	if s.cache == nil {
		return
	}
	s.cache.Delete(context.Background(), ProjectionCacheKey(projectionID))
}
