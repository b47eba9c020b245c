package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/jstittsworth/projection-engine/internal/engine"
	"github.com/jstittsworth/projection-engine/internal/models"
	"github.com/jstittsworth/projection-engine/internal/stats"
	"github.com/jstittsworth/projection-engine/pkg/database"
	"github.com/jstittsworth/projection-engine/pkg/utils"
)

// TeamService reconciles player projections against team-level ground truth:
// team-wide adjustments, explicit share rebalancing, and synthetic fill
// players absorbing team-vs-roster residuals. Every mutating operation
// commits all of its writes or none of them.
type TeamService struct {
	db     *database.DB
	cache  *CacheService
	logger *logrus.Logger
}

func NewTeamService(db *database.DB, cache *CacheService, logger *logrus.Logger) *TeamService {
	return &TeamService{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

// TeamAdjustmentRequest describes one team-wide reallocation.
type TeamAdjustmentRequest struct {
	Team        string
	Season      int
	ScenarioID  *uint
	Adjustments map[string]float64
	// PlayerShares maps a share metric (target_share, rush_share) to
	// explicit new shares for particular players. Remaining players are
	// rebalanced proportionally so shares sum to 1.
	PlayerShares map[string]map[uint]float64
}

// ApplyTeamAdjustment applies team-wide adjustment factors to every roster
// player's projection proportionally to their pre-adjustment share of the
// relevant team totals, rebalances any explicitly requested player shares,
// and runs the targets/pass-attempts consistency correction.
func (s *TeamService) ApplyTeamAdjustment(req TeamAdjustmentRequest) (*engine.Result, error) {
	if err := engine.ValidateAdjustments(req.Adjustments); err != nil {
		return nil, err
	}

	teamStat, err := s.loadTeamStat(req.Team, req.Season)
	if err != nil {
		return nil, err
	}

	projections, err := s.loadRosterProjections(req.Team, req.Season, req.ScenarioID)
	if err != nil {
		return nil, err
	}
	if len(projections) == 0 {
		return nil, utils.NewNotFoundError("projections", "team=%s season=%d", req.Team, req.Season)
	}

	adjusted, err := engine.AdjustTeamTotals(*teamStat, req.Adjustments)
	if err != nil {
		return nil, err
	}

	engine.ApplyTeamFactors(projections, *teamStat, adjusted)

	for metric, shares := range req.PlayerShares {
		if err := engine.RebalanceShares(projections, metric, shares); err != nil {
			return nil, err
		}
	}

	result := engine.CorrectTargetRatio(projections)

	payload, err := json.Marshal(req.Adjustments)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, p := range projections {
			if err := tx.Save(p).Error; err != nil {
				return err
			}
		}
		log := models.AdjustmentLog{
			Scope:       "team",
			Team:        req.Team,
			Season:      req.Season,
			ScenarioID:  req.ScenarioID,
			Adjustments: datatypes.JSON(payload),
			IssuesFound: result.IssuesFound,
			IssuesFixed: result.IssuesFixed,
		}
		return tx.Create(&log).Error
	})
	if err != nil {
		return nil, err
	}

	s.invalidateTeam(req.Team)
	s.logger.WithFields(logrus.Fields{
		"team":         req.Team,
		"season":       req.Season,
		"projections":  len(projections),
		"issues_found": result.IssuesFound,
	}).Info("Applied team adjustment")

	return &result, nil
}

// GenerateFillPlayers recreates the synthetic roster entries that absorb the
// residual between the team aggregate and the summed player projections for a
// scenario. Residuals below every significance threshold produce no fill
// players.
func (s *TeamService) GenerateFillPlayers(team string, season int, scenarioID *uint) ([]models.Projection, error) {
	teamStat, err := s.loadTeamStat(team, season)
	if err != nil {
		return nil, err
	}

	projections, err := s.loadRosterProjections(team, season, scenarioID)
	if err != nil {
		return nil, err
	}

	rosterCounts := make(map[stats.Position]int)
	for _, p := range projections {
		rosterCounts[stats.Position(p.Position)]++
	}

	residuals := engine.Residuals(*teamStat, projections)
	specs := engine.SynthesizeFill(team, season, scenarioID, rosterCounts, residuals)

	var created []models.Projection
	err = s.db.Transaction(func(tx *gorm.DB) error {
		// A regeneration replaces any previous fill entries for this
		// team and scenario.
		if err := s.deleteFillPlayers(tx, team, scenarioID); err != nil {
			return err
		}

		for _, spec := range specs {
			player := models.Player{
				UUID:         uuid.New(),
				Name:         fmt.Sprintf("%s %s (fill)", team, spec.Position),
				Team:         team,
				Position:     string(spec.Position),
				IsFillPlayer: true,
				ScenarioID:   scenarioID,
			}
			if err := tx.Create(&player).Error; err != nil {
				return err
			}

			projection := spec.Projection
			projection.PlayerID = player.ID
			if err := tx.Create(&projection).Error; err != nil {
				return err
			}
			created = append(created, projection)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateTeam(team)
	s.logger.WithFields(logrus.Fields{
		"team":         team,
		"season":       season,
		"fill_players": len(created),
	}).Info("Generated fill players")

	return created, nil
}

func (s *TeamService) loadTeamStat(team string, season int) (*models.TeamStat, error) {
	var teamStat models.TeamStat
	err := s.db.Where("team = ? AND season = ?", team, season).First(&teamStat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("team stat", "team=%s season=%d", team, season)
		}
		return nil, err
	}

	if !teamStat.PlaysConsistent(1.0) {
		s.logger.WithFields(logrus.Fields{
			"team":   team,
			"season": season,
		}).Warn("Team plays total does not match pass + rush attempts")
	}

	return &teamStat, nil
}

// loadRosterProjections returns the real (non-fill) roster projections for
// the scenario, cloning baseline projections into the scenario first when the
// scenario has none yet.
func (s *TeamService) loadRosterProjections(team string, season int, scenarioID *uint) ([]*models.Projection, error) {
	load := func(sid *uint) ([]models.Projection, error) {
		var rows []models.Projection
		query := s.db.
			Joins("JOIN players ON players.id = projections.player_id").
			Where("projections.team = ? AND projections.season = ?", team, season).
			Where("players.is_fill_player = ?", false)
		if sid != nil {
			query = query.Where("projections.scenario_id = ?", *sid)
		} else {
			query = query.Where("projections.scenario_id IS NULL")
		}
		err := query.Find(&rows).Error
		return rows, err
	}

	rows, err := load(scenarioID)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 && scenarioID != nil {
		baseline, err := load(nil)
		if err != nil {
			return nil, err
		}

		err = s.db.Transaction(func(tx *gorm.DB) error {
			for i := range baseline {
				clone := baseline[i].Clone()
				clone.ScenarioID = scenarioID
				if err := tx.Create(clone).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}

		rows, err = load(scenarioID)
		if err != nil {
			return nil, err
		}
	}

	projections := make([]*models.Projection, len(rows))
	for i := range rows {
		projections[i] = &rows[i]
	}
	return projections, nil
}

func (s *TeamService) deleteFillPlayers(tx *gorm.DB, team string, scenarioID *uint) error {
	query := tx.Where("team = ? AND is_fill_player = ?", team, true)
	if scenarioID != nil {
		query = query.Where("scenario_id = ?", *scenarioID)
	} else {
		query = query.Where("scenario_id IS NULL")
	}

	var fills []models.Player
	if err := query.Find(&fills).Error; err != nil {
		return err
	}
	if len(fills) == 0 {
		return nil
	}

	ids := make([]uint, len(fills))
	for i, f := range fills {
		ids[i] = f.ID
	}

	if err := tx.Where("player_id IN ?", ids).Delete(&models.Projection{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Player{}, ids).Error
}

func (s *TeamService) invalidateTeam(team string) {
	if s.cache == nil {
		return
	}
	ctx := context.Background()
	s.cache.DeletePattern(ctx, "projections:team:"+team+":*")
	s.cache.DeletePattern(ctx, "comparison:*")
}
