package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/jstittsworth/projection-engine/internal/engine"
	"github.com/jstittsworth/projection-engine/internal/models"
	"github.com/jstittsworth/projection-engine/pkg/database"
	"github.com/jstittsworth/projection-engine/pkg/utils"
)

// ScenarioService manages named projection branches: cloning, per-player
// variant edits, comparison and deletion.
type ScenarioService struct {
	db     *database.DB
	cache  *CacheService
	logger *logrus.Logger
}

func NewScenarioService(db *database.DB, cache *CacheService, logger *logrus.Logger) *ScenarioService {
	return &ScenarioService{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

// CreateScenario creates an empty named branch. Projections are cloned into
// it lazily, on first team adjustment or player edit.
func (s *ScenarioService) CreateScenario(name, description string, season int) (*models.Scenario, error) {
	scenario := models.Scenario{
		UUID:        uuid.New(),
		Name:        name,
		Description: description,
		Season:      season,
	}
	if err := s.db.Create(&scenario).Error; err != nil {
		return nil, err
	}
	return &scenario, nil
}

// CloneScenario deep-copies every projection and override scoped to the
// source scenario into a new scenario recording its lineage.
func (s *ScenarioService) CloneScenario(sourceID uint, newName string) (*models.Scenario, error) {
	var source models.Scenario
	if err := s.db.First(&source, sourceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("scenario", "id=%d", sourceID)
		}
		return nil, err
	}

	clone := models.Scenario{
		UUID:           uuid.New(),
		Name:           newName,
		Description:    source.Description,
		Season:         source.Season,
		BaseScenarioID: &source.ID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&clone).Error; err != nil {
			return err
		}

		var projections []models.Projection
		if err := tx.Where("scenario_id = ?", source.ID).Find(&projections).Error; err != nil {
			return err
		}

		for i := range projections {
			copied := projections[i].Clone()
			copied.ScenarioID = &clone.ID
			if err := tx.Create(copied).Error; err != nil {
				return err
			}

			var overrides []models.StatOverride
			if err := tx.Where("projection_id = ?", projections[i].ID).
				Order("id asc").
				Find(&overrides).Error; err != nil {
				return err
			}
			for _, o := range overrides {
				copiedOverride := models.StatOverride{
					ProjectionID:    copied.ID,
					StatName:        o.StatName,
					CalculatedValue: o.CalculatedValue,
					ManualValue:     o.ManualValue,
				}
				if err := tx.Create(&copiedOverride).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"source_id": sourceID,
		"clone_id":  clone.ID,
		"name":      newName,
	}).Info("Cloned scenario")

	return &clone, nil
}

// PlayerComparison is the comparison row for one player: a snapshot per
// scenario, keyed by scenario name.
type PlayerComparison struct {
	PlayerID  uint                           `json:"player_id"`
	Name      string                         `json:"name"`
	Team      string                         `json:"team"`
	Position  string                         `json:"position"`
	Scenarios map[string]engine.StatSnapshot `json:"scenarios"`
}

// CompareScenarios assembles side-by-side snapshots for every player
// appearing in any of the listed scenarios, optionally filtered by position.
func (s *ScenarioService) CompareScenarios(scenarioIDs []uint, position string) ([]PlayerComparison, error) {
	cacheKey := comparisonKey(scenarioIDs, position)
	if s.cache != nil {
		var cached []PlayerComparison
		if err := s.cache.GetSimple(cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	var scenarios []models.Scenario
	if err := s.db.Where("id IN ?", scenarioIDs).Find(&scenarios).Error; err != nil {
		return nil, err
	}
	if len(scenarios) != len(scenarioIDs) {
		return nil, utils.NewNotFoundError("scenario", "ids=%v", scenarioIDs)
	}

	nameByID := make(map[uint]string, len(scenarios))
	for _, sc := range scenarios {
		nameByID[sc.ID] = sc.Name
	}

	query := s.db.Preload("Player").Where("scenario_id IN ?", scenarioIDs)
	if position != "" {
		query = query.Where("position = ?", position)
	}
	var projections []models.Projection
	if err := query.Find(&projections).Error; err != nil {
		return nil, err
	}

	byPlayer := make(map[uint]*PlayerComparison)
	for i := range projections {
		p := &projections[i]
		row, ok := byPlayer[p.PlayerID]
		if !ok {
			row = &PlayerComparison{
				PlayerID:  p.PlayerID,
				Name:      p.Player.Name,
				Team:      p.Team,
				Position:  p.Position,
				Scenarios: make(map[string]engine.StatSnapshot),
			}
			byPlayer[p.PlayerID] = row
		}
		row.Scenarios[nameByID[*p.ScenarioID]] = engine.Snapshot(p)
	}

	comparisons := make([]PlayerComparison, 0, len(byPlayer))
	for _, row := range byPlayer {
		comparisons = append(comparisons, *row)
	}
	sort.Slice(comparisons, func(i, j int) bool {
		return comparisons[i].PlayerID < comparisons[j].PlayerID
	})

	if s.cache != nil {
		s.cache.SetSimple(cacheKey, comparisons, 5*time.Minute)
	}

	return comparisons, nil
}

// AddPlayerToScenario clones the player's baseline projection into the
// scenario when absent, then applies the given values as direct field
// overwrites and recomputes the fantasy-point aggregate.
func (s *ScenarioService) AddPlayerToScenario(scenarioID, playerID uint, values map[string]float64) (*models.Projection, error) {
	var scenario models.Scenario
	if err := s.db.First(&scenario, scenarioID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("scenario", "id=%d", scenarioID)
		}
		return nil, err
	}

	var projection models.Projection
	err := s.db.Where("player_id = ? AND season = ? AND scenario_id = ?",
		playerID, scenario.Season, scenarioID).First(&projection).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		var baseline models.Projection
		err = s.db.Where("player_id = ? AND season = ? AND scenario_id IS NULL",
			playerID, scenario.Season).First(&baseline).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, utils.NewNotFoundError("projection", "player=%d season=%d", playerID, scenario.Season)
			}
			return nil, err
		}
		clone := baseline.Clone()
		clone.ScenarioID = &scenarioID
		if err := s.db.Create(clone).Error; err != nil {
			return nil, err
		}
		projection = *clone
	} else if err != nil {
		return nil, err
	}

	if err := engine.OverwriteStats(&projection, values); err != nil {
		return nil, err
	}

	if err := s.db.Save(&projection).Error; err != nil {
		return nil, err
	}

	s.invalidate()
	return &projection, nil
}

// DeleteScenario removes the scenario along with every projection, override
// and fill player scoped to it, as one unit.
func (s *ScenarioService) DeleteScenario(scenarioID uint) error {
	var scenario models.Scenario
	if err := s.db.First(&scenario, scenarioID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NewNotFoundError("scenario", "id=%d", scenarioID)
		}
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var projectionIDs []uint
		if err := tx.Model(&models.Projection{}).
			Where("scenario_id = ?", scenarioID).
			Pluck("id", &projectionIDs).Error; err != nil {
			return err
		}

		if len(projectionIDs) > 0 {
			if err := tx.Where("projection_id IN ?", projectionIDs).
				Delete(&models.StatOverride{}).Error; err != nil {
				return err
			}
			if err := tx.Where("scenario_id = ?", scenarioID).
				Delete(&models.Projection{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("scenario_id = ? AND is_fill_player = ?", scenarioID, true).
			Delete(&models.Player{}).Error; err != nil {
			return err
		}

		return tx.Delete(&scenario).Error
	})
	if err != nil {
		return err
	}

	s.invalidate()
	s.logger.WithField("scenario_id", scenarioID).Info("Deleted scenario")
	return nil
}

// ListScenarios returns all scenarios for a season, newest first.
func (s *ScenarioService) ListScenarios(season int) ([]models.Scenario, error) {
	var scenarios []models.Scenario
	query := s.db.Order("created_at desc")
	if season > 0 {
		query = query.Where("season = ?", season)
	}
	err := query.Find(&scenarios).Error
	return scenarios, err
}

func (s *ScenarioService) invalidate() {
	if s.cache == nil {
		return
	}
	s.cache.DeletePattern(context.Background(), "comparison:*")
}

func comparisonKey(scenarioIDs []uint, position string) string {
	parts := make([]string, len(scenarioIDs))
	for i, id := range scenarioIDs {
		parts[i] = fmt.Sprintf("%d", id)
	}
	sort.Strings(parts)
	return ComparisonCacheKey(strings.Join(parts, ","), position)
}
