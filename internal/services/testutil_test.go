package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jstittsworth/projection-engine/internal/models"
	"github.com/jstittsworth/projection-engine/pkg/database"
	"github.com/jstittsworth/projection-engine/pkg/utils"
)

const testSeason = 2025

// newTestDB opens an isolated in-memory database with the engine tables
// migrated. ImportRun is Postgres-only (text[] column) and is not part of the
// test schema.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gdb.AutoMigrate(
		&models.Player{},
		&models.SeasonStat{},
		&models.TeamStat{},
		&models.Scenario{},
		&models.Projection{},
		&models.StatOverride{},
		&models.AdjustmentLog{},
	))

	return &database.DB{DB: gdb}
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func createPlayer(t *testing.T, db *database.DB, name, team, position string) *models.Player {
	t.Helper()
	player := &models.Player{
		ExternalID: uuid.NewString(),
		UUID:       uuid.New(),
		Name:       name,
		Team:       team,
		Position:   position,
		Status:     "active",
	}
	require.NoError(t, db.Create(player).Error)
	return player
}

func createQBProjection(t *testing.T, db *database.DB, player *models.Player) *models.Projection {
	t.Helper()
	p := &models.Projection{
		PlayerID:      player.ID,
		Season:        testSeason,
		Team:          player.Team,
		Position:      player.Position,
		Games:         utils.Ptr(17.0),
		PassAttempts:  utils.Ptr(600.0),
		Completions:   utils.Ptr(390.0),
		PassYards:     utils.Ptr(4200.0),
		PassTDs:       utils.Ptr(28.0),
		Interceptions: utils.Ptr(12.0),
		RushAttempts:  utils.Ptr(60.0),
		RushYards:     utils.Ptr(300.0),
		RushTDs:       utils.Ptr(3.0),
	}
	p.RecomputeDerived()
	p.RecomputeFantasyPoints()
	require.NoError(t, db.Create(p).Error)
	return p
}

func createWRProjection(t *testing.T, db *database.DB, player *models.Player) *models.Projection {
	t.Helper()
	p := &models.Projection{
		PlayerID:   player.ID,
		Season:     testSeason,
		Team:       player.Team,
		Position:   player.Position,
		Games:      utils.Ptr(17.0),
		Targets:    utils.Ptr(140.0),
		Receptions: utils.Ptr(95.0),
		RecYards:   utils.Ptr(1200.0),
		RecTDs:     utils.Ptr(8.0),
	}
	p.RecomputeDerived()
	p.RecomputeFantasyPoints()
	require.NoError(t, db.Create(p).Error)
	return p
}
