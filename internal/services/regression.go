package services

import (
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/jstittsworth/projection-engine/internal/engine"
	"github.com/jstittsworth/projection-engine/internal/models"
	"github.com/jstittsworth/projection-engine/pkg/database"
	"github.com/jstittsworth/projection-engine/pkg/utils"
)

// RegressionService blends current projections toward a player's prior-season
// baseline.
type RegressionService struct {
	db     *database.DB
	logger *logrus.Logger
}

func NewRegressionService(db *database.DB, logger *logrus.Logger) *RegressionService {
	return &RegressionService{
		db:     db,
		logger: logger,
	}
}

// Regress blends the player's projection for the season (scoped to the
// scenario, or baseline when nil) toward their most recent prior-season
// stats. A player with no history gets their projection back unchanged; the
// boolean reports whether any blending happened.
func (s *RegressionService) Regress(playerID uint, season int, scenarioID *uint) (*models.Projection, bool, error) {
	var projection models.Projection
	query := s.db.Where("player_id = ? AND season = ?", playerID, season)
	if scenarioID != nil {
		query = query.Where("scenario_id = ?", *scenarioID)
	} else {
		query = query.Where("scenario_id IS NULL")
	}
	if err := query.First(&projection).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, utils.NewNotFoundError("projection", "player=%d season=%d", playerID, season)
		}
		return nil, false, err
	}

	var baseline models.SeasonStat
	err := s.db.Where("player_id = ? AND season < ?", playerID, season).
		Order("season desc").
		First(&baseline).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No history to regress toward; not an error.
			return &projection, false, nil
		}
		return nil, false, err
	}

	if !engine.RegressToBaseline(&projection, &baseline) {
		return &projection, false, nil
	}

	if err := s.db.Save(&projection).Error; err != nil {
		return nil, false, err
	}

	s.logger.WithFields(logrus.Fields{
		"player_id":       playerID,
		"season":          season,
		"baseline_season": baseline.Season,
	}).Info("Regressed projection toward prior-season baseline")

	return &projection, true, nil
}
