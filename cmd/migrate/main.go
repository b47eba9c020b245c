package main

import (
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/projection-engine/internal/models"
	"github.com/jstittsworth/projection-engine/pkg/config"
	"github.com/jstittsworth/projection-engine/pkg/database"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate [up|down|seed]")
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	command := os.Args[1]

	switch command {
	case "up":
		if err := runMigrations(db); err != nil {
			logrus.Fatalf("Failed to run migrations: %v", err)
		}
		logrus.Info("Migrations completed successfully")

	case "down":
		if err := dropTables(db); err != nil {
			logrus.Fatalf("Failed to drop tables: %v", err)
		}
		logrus.Info("Tables dropped successfully")

	case "seed":
		if err := seedData(db, cfg.CurrentSeason); err != nil {
			logrus.Fatalf("Failed to seed data: %v", err)
		}
		logrus.Info("Data seeded successfully")

	default:
		log.Fatalf("Unknown command: %s", command)
	}
}

func runMigrations(db *database.DB) error {
	// Enable UUID extension for PostgreSQL
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		return fmt.Errorf("failed to create UUID extension: %w", err)
	}

	// Auto migrate all models
	if err := db.AutoMigrate(
		&models.Player{},
		&models.SeasonStat{},
		&models.TeamStat{},
		&models.Scenario{},
		&models.Projection{},
		&models.StatOverride{},
		&models.AdjustmentLog{},
		&models.ImportRun{},
	); err != nil {
		return fmt.Errorf("failed to migrate models: %w", err)
	}

	// Create indexes
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_projections_team_lookup ON projections(season, scenario_id)",
		"CREATE INDEX IF NOT EXISTS idx_projections_fantasy_points ON projections(fantasy_points DESC)",
		"CREATE INDEX IF NOT EXISTS idx_stat_overrides_projection ON stat_overrides(projection_id, id)",
		"CREATE INDEX IF NOT EXISTS idx_adjustment_logs_team_season ON adjustment_logs(team, season)",
		"CREATE INDEX IF NOT EXISTS idx_season_stats_season ON season_stats(season)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

func dropTables(db *database.DB) error {
	// Drop tables in reverse order to handle foreign key constraints
	tables := []string{
		"import_runs",
		"adjustment_logs",
		"stat_overrides",
		"projections",
		"scenarios",
		"team_stats",
		"season_stats",
		"players",
	}

	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}

	return nil
}

func seedData(db *database.DB, season int) error {
	type seedPlayer struct {
		name     string
		team     string
		position string
		line     models.SeasonStat
	}

	// One team's worth of sample data: enough to exercise overrides,
	// adjustments, regression and team reconciliation locally.
	seeds := []seedPlayer{
		{
			name: "Sample QB One", team: "KC", position: "QB",
			line: models.SeasonStat{
				Season: season - 1, Games: 17,
				PassAttempts: 580, Completions: 401, PassYards: 4183, PassTDs: 27, Interceptions: 14,
				RushAttempts: 75, RushYards: 389, RushTDs: 5,
			},
		},
		{
			name: "Sample RB One", team: "KC", position: "RB",
			line: models.SeasonStat{
				Season: season - 1, Games: 16,
				RushAttempts: 255, RushYards: 1122, RushTDs: 8,
				Targets: 83, Receptions: 64, RecYards: 536, RecTDs: 2,
			},
		},
		{
			name: "Sample WR One", team: "KC", position: "WR",
			line: models.SeasonStat{
				Season: season - 1, Games: 17,
				Targets: 145, Receptions: 98, RecYards: 1248, RecTDs: 7,
				RushAttempts: 12, RushYards: 92, RushTDs: 1,
			},
		},
		{
			name: "Sample TE One", team: "KC", position: "TE",
			line: models.SeasonStat{
				Season: season - 1, Games: 16,
				Targets: 121, Receptions: 93, RecYards: 823, RecTDs: 5,
			},
		},
	}

	for i, seed := range seeds {
		player := models.Player{
			ExternalID: fmt.Sprintf("seed-%d", i+1),
			UUID:       uuid.New(),
			Name:       seed.name,
			Team:       seed.team,
			Position:   seed.position,
			Status:     "active",
		}
		if err := db.Where("external_id = ?", player.ExternalID).FirstOrCreate(&player).Error; err != nil {
			return fmt.Errorf("failed to seed player %s: %w", seed.name, err)
		}

		line := seed.line
		line.PlayerID = player.ID
		if err := db.Where("player_id = ? AND season = ?", player.ID, line.Season).FirstOrCreate(&line).Error; err != nil {
			return fmt.Errorf("failed to seed season stats for %s: %w", seed.name, err)
		}
	}

	teamStat := models.TeamStat{
		Team:   "KC",
		Season: season,
		Plays:  1050,
		PassAttempts: 590, Completions: 405, PassYards: 4250, PassTDs: 28, Interceptions: 13,
		RushAttempts: 460, RushYards: 1980, RushTDs: 17,
		Targets: 590, Receptions: 405, RecYards: 4250, RecTDs: 28,
	}
	if err := db.Where("team = ? AND season = ?", teamStat.Team, teamStat.Season).FirstOrCreate(&teamStat).Error; err != nil {
		return fmt.Errorf("failed to seed team stats: %w", err)
	}

	baseline := models.Scenario{
		UUID:        uuid.New(),
		Name:        "baseline",
		Description: "Default projection set",
		Season:      season,
	}
	if err := db.Where("name = ?", baseline.Name).FirstOrCreate(&baseline).Error; err != nil {
		return fmt.Errorf("failed to seed baseline scenario: %w", err)
	}

	return nil
}
