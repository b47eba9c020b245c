package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/jstittsworth/projection-engine/internal/engine"
	"github.com/jstittsworth/projection-engine/internal/models"
	"github.com/jstittsworth/projection-engine/pkg/database"
	"github.com/jstittsworth/projection-engine/pkg/utils"
)

// AdjustmentService applies proportional "what-if" adjustments to a single
// projection.
type AdjustmentService struct {
	db     *database.DB
	cache  *CacheService
	logger *logrus.Logger
}

func NewAdjustmentService(db *database.DB, cache *CacheService, logger *logrus.Logger) *AdjustmentService {
	return &AdjustmentService{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

// Adjust validates and applies the adjustment map to the projection, then
// persists the projection and an audit row as one transaction.
func (s *AdjustmentService) Adjust(projectionID uint, adjustments map[string]float64) (*models.Projection, error) {
	// Validate before touching anything.
	if err := engine.ValidateAdjustments(adjustments); err != nil {
		return nil, err
	}

	var projection models.Projection
	if err := s.db.First(&projection, projectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("projection", "id=%d", projectionID)
		}
		return nil, err
	}

	if err := engine.AdjustProjection(&projection, adjustments); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(adjustments)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&projection).Error; err != nil {
			return err
		}
		log := models.AdjustmentLog{
			Scope:        "projection",
			ProjectionID: &projection.ID,
			Team:         projection.Team,
			Season:       projection.Season,
			ScenarioID:   projection.ScenarioID,
			Adjustments:  datatypes.JSON(payload),
		}
		return tx.Create(&log).Error
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		ctx := context.Background()
		s.cache.Delete(ctx, ProjectionCacheKey(projection.ID))
		s.cache.DeletePattern(ctx, "projections:team:"+projection.Team+":*")
		s.cache.DeletePattern(ctx, "comparison:*")
	}

	s.logger.WithFields(logrus.Fields{
		"projection_id": projectionID,
		"adjustments":   adjustments,
	}).Info("Applied projection adjustment")

	return &projection, nil
}
