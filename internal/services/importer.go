package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/jstittsworth/projection-engine/internal/models"
	"github.com/jstittsworth/projection-engine/internal/providers"
	"github.com/jstittsworth/projection-engine/internal/stats"
	"github.com/jstittsworth/projection-engine/pkg/database"
)

// ImportService ingests rosters, team aggregates and historical season lines
// from the stats feed into the local tables the engine reads.
type ImportService struct {
	db     *database.DB
	feed   *providers.StatsFeedClient
	logger *logrus.Logger
}

func NewImportService(db *database.DB, feed *providers.StatsFeedClient, logger *logrus.Logger) *ImportService {
	return &ImportService{
		db:     db,
		feed:   feed,
		logger: logger,
	}
}

// ImportSeason pulls the roster and team aggregates for the given season plus
// the prior season's player lines, upserts them, and records an ImportRun row
// whether or not the pass succeeded.
func (s *ImportService) ImportSeason(ctx context.Context, season int) (*models.ImportRun, error) {
	run := &models.ImportRun{
		Source:    "stats-feed",
		Season:    season,
		StartedAt: time.Now(),
	}

	err := s.runImport(ctx, season, run)
	run.FinishedAt = time.Now()
	if err != nil {
		run.Error = err.Error()
	}

	if saveErr := s.db.Create(run).Error; saveErr != nil {
		s.logger.WithError(saveErr).Error("Failed to record import run")
		if err == nil {
			err = saveErr
		}
	}

	if err != nil {
		return run, err
	}

	s.logger.WithFields(logrus.Fields{
		"season":       season,
		"players":      run.PlayersUpserted,
		"team_stats":   run.TeamStats,
		"season_stats": run.SeasonStats,
	}).Info("Import completed")

	return run, nil
}

func (s *ImportService) runImport(ctx context.Context, season int, run *models.ImportRun) error {
	players, err := s.feed.GetPlayers(ctx, season)
	if err != nil {
		return err
	}

	teamStats, err := s.feed.GetTeamStats(ctx, season)
	if err != nil {
		return err
	}

	// Historical lines come from the season before the one being projected.
	seasonStats, err := s.feed.GetSeasonStats(ctx, season-1)
	if err != nil {
		return err
	}

	teams := make(map[string]bool)

	return s.db.Transaction(func(tx *gorm.DB) error {
		byExternalID := make(map[string]uint)

		for _, record := range players {
			if _, ok := stats.ParsePosition(record.Position); !ok {
				continue // kickers, defenses, etc.
			}
			player, err := s.upsertPlayer(tx, record)
			if err != nil {
				return fmt.Errorf("failed to upsert player %s: %w", record.ExternalID, err)
			}
			byExternalID[record.ExternalID] = player.ID
			teams[player.Team] = true
			run.PlayersUpserted++
		}

		for _, record := range teamStats {
			if err := s.upsertTeamStat(tx, record); err != nil {
				return fmt.Errorf("failed to upsert team stats for %s: %w", record.Team, err)
			}
			teams[record.Team] = true
			run.TeamStats++
		}

		for _, record := range seasonStats {
			playerID, ok := byExternalID[record.PlayerExternalID]
			if !ok {
				continue // not on an active roster this season
			}
			if err := s.upsertSeasonStat(tx, playerID, record); err != nil {
				return fmt.Errorf("failed to upsert season stats for %s: %w", record.PlayerExternalID, err)
			}
			run.SeasonStats++
		}

		run.Teams = make(pq.StringArray, 0, len(teams))
		for team := range teams {
			run.Teams = append(run.Teams, team)
		}

		return nil
	})
}

func (s *ImportService) upsertPlayer(tx *gorm.DB, record providers.PlayerRecord) (*models.Player, error) {
	var player models.Player
	err := tx.Where("external_id = ? AND is_fill_player = ?", record.ExternalID, false).First(&player).Error
	if err == gorm.ErrRecordNotFound {
		player = models.Player{
			ExternalID: record.ExternalID,
			UUID:       uuid.New(),
			Name:       record.Name,
			Team:       record.Team,
			Position:   record.Position,
			Status:     record.Status,
		}
		if err := tx.Create(&player).Error; err != nil {
			return nil, err
		}
		return &player, nil
	}
	if err != nil {
		return nil, err
	}

	player.Name = record.Name
	player.Team = record.Team
	player.Position = record.Position
	player.Status = record.Status
	if err := tx.Save(&player).Error; err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *ImportService) upsertTeamStat(tx *gorm.DB, record providers.TeamStatRecord) error {
	var teamStat models.TeamStat
	err := tx.Where("team = ? AND season = ?", record.Team, record.Season).First(&teamStat).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return err
	}

	teamStat.Team = record.Team
	teamStat.Season = record.Season
	teamStat.Plays = record.Plays
	teamStat.PassAttempts = record.PassAttempts
	teamStat.Completions = record.Completions
	teamStat.PassYards = record.PassYards
	teamStat.PassTDs = record.PassTDs
	teamStat.Interceptions = record.Interceptions
	teamStat.RushAttempts = record.RushAttempts
	teamStat.RushYards = record.RushYards
	teamStat.RushTDs = record.RushTDs
	teamStat.Targets = record.Targets
	teamStat.Receptions = record.Receptions
	teamStat.RecYards = record.RecYards
	teamStat.RecTDs = record.RecTDs

	return tx.Save(&teamStat).Error
}

func (s *ImportService) upsertSeasonStat(tx *gorm.DB, playerID uint, record providers.SeasonStatRecord) error {
	var seasonStat models.SeasonStat
	err := tx.Where("player_id = ? AND season = ?", playerID, record.Season).First(&seasonStat).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return err
	}

	seasonStat.PlayerID = playerID
	seasonStat.Season = record.Season
	seasonStat.Games = record.Games
	seasonStat.PassAttempts = record.PassAttempts
	seasonStat.Completions = record.Completions
	seasonStat.PassYards = record.PassYards
	seasonStat.PassTDs = record.PassTDs
	seasonStat.Interceptions = record.Interceptions
	seasonStat.RushAttempts = record.RushAttempts
	seasonStat.RushYards = record.RushYards
	seasonStat.RushTDs = record.RushTDs
	seasonStat.Targets = record.Targets
	seasonStat.Receptions = record.Receptions
	seasonStat.RecYards = record.RecYards
	seasonStat.RecTDs = record.RecTDs

	return tx.Save(&seasonStat).Error
}
