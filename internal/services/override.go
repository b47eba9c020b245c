package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/jstittsworth/projection-engine/internal/engine"
	"github.com/jstittsworth/projection-engine/internal/models"
	"github.com/jstittsworth/projection-engine/pkg/database"
	"github.com/jstittsworth/projection-engine/pkg/utils"
)

// OverrideService applies and removes manual stat overrides. Each operation
// reads one projection and a bounded set of dependents and writes back as a
// single transaction.
type OverrideService struct {
	db     *database.DB
	cache  *CacheService
	logger *logrus.Logger
}

func NewOverrideService(db *database.DB, cache *CacheService, logger *logrus.Logger) *OverrideService {
	return &OverrideService{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

// ApplyOverride forces one statistic on a projection to a manual value,
// recomputes its dependents, and persists the override row alongside the
// updated projection.
func (s *OverrideService) ApplyOverride(projectionID uint, stat string, value float64) (*models.Projection, error) {
	var projection models.Projection
	if err := s.db.First(&projection, projectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("projection", "id=%d", projectionID)
		}
		return nil, err
	}

	override, err := engine.ApplyOverride(&projection, stat, value)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&projection).Error; err != nil {
			return err
		}
		return tx.Create(override).Error
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(&projection)
	s.logger.WithFields(logrus.Fields{
		"projection_id": projectionID,
		"stat":          stat,
		"manual_value":  value,
		"calculated":    override.CalculatedValue,
	}).Info("Applied stat override")

	return &projection, nil
}

// DeleteOverride removes an override, restoring the preserved calculated
// value and recomputing dependents identically to the original override.
// HasOverrides is cleared when no overrides remain on the projection.
func (s *OverrideService) DeleteOverride(overrideID uint) (*models.Projection, error) {
	var override models.StatOverride
	if err := s.db.First(&override, overrideID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("override", "id=%d", overrideID)
		}
		return nil, err
	}

	var projection models.Projection
	if err := s.db.First(&projection, override.ProjectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("projection", "id=%d", override.ProjectionID)
		}
		return nil, err
	}

	if err := engine.RevertOverride(&projection, &override); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&override).Error; err != nil {
			return err
		}

		var remaining int64
		if err := tx.Model(&models.StatOverride{}).
			Where("projection_id = ?", projection.ID).
			Count(&remaining).Error; err != nil {
			return err
		}
		projection.HasOverrides = remaining > 0

		return tx.Save(&projection).Error
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(&projection)
	s.logger.WithFields(logrus.Fields{
		"projection_id": projection.ID,
		"stat":          override.StatName,
		"restored":      override.CalculatedValue,
	}).Info("Deleted stat override")

	return &projection, nil
}

// ListOverrides returns the overrides on a projection in creation order.
func (s *OverrideService) ListOverrides(projectionID uint) ([]models.StatOverride, error) {
	var overrides []models.StatOverride
	err := s.db.Where("projection_id = ?", projectionID).
		Order("id asc").
		Find(&overrides).Error
	return overrides, err
}

// ReapplyOverrides replays every stored override for a projection in stored
// order. Used after a projection is regenerated from baseline or team
// context so manual edits survive the rebuild.
func (s *OverrideService) ReapplyOverrides(projection *models.Projection) error {
	overrides, err := s.ListOverrides(projection.ID)
	if err != nil {
		return err
	}
	if len(overrides) == 0 {
		return nil
	}

	if err := engine.ReplayOverrides(projection, overrides); err != nil {
		return err
	}

	if err := s.db.Save(projection).Error; err != nil {
		return err
	}

	s.invalidate(projection)
	s.logger.WithFields(logrus.Fields{
		"projection_id": projection.ID,
		"overrides":     len(overrides),
	}).Info("Reapplied stored overrides")

	return nil
}

func (s *OverrideService) invalidate(p *models.Projection) {
	if s.cache == nil {
		return
	}
	ctx := context.Background()
	s.cache.Delete(ctx, ProjectionCacheKey(p.ID))
	s.cache.DeletePattern(ctx, "projections:team:"+p.Team+":*")
	s.cache.DeletePattern(ctx, "comparison:*")
}
