package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/projection-engine/internal/models"
	"github.com/jstittsworth/projection-engine/pkg/utils"
)

func TestRegressBlendsAndPersists(t *testing.T) {
	db := newTestDB(t)
	svc := NewRegressionService(db, testLogger())

	player := createPlayer(t, db, "QB One", "KC", "QB")
	createQBProjection(t, db, player)
	history := models.SeasonStat{
		PlayerID: player.ID, Season: testSeason - 1, Games: 17,
		PassAttempts: 550, Completions: 360, PassYards: 3900, PassTDs: 22, Interceptions: 16,
		RushAttempts: 50, RushYards: 250, RushTDs: 2,
	}
	require.NoError(t, db.Create(&history).Error)

	projection, blended, err := svc.Regress(player.ID, testSeason, nil)
	require.NoError(t, err)
	assert.True(t, blended)
	assert.InDelta(t, 0.70*4200+0.30*3900, *projection.PassYards, 1e-6)

	var stored models.Projection
	require.NoError(t, db.First(&stored, projection.ID).Error)
	assert.InDelta(t, *projection.PassYards, *stored.PassYards, 1e-6)
}

func TestRegressNoHistoryIsNotAnError(t *testing.T) {
	db := newTestDB(t)
	svc := NewRegressionService(db, testLogger())

	player := createPlayer(t, db, "Rookie QB", "KC", "QB")
	original := createQBProjection(t, db, player)

	projection, blended, err := svc.Regress(player.ID, testSeason, nil)
	require.NoError(t, err)
	assert.False(t, blended)
	assert.Equal(t, *original.PassYards, *projection.PassYards)
}

func TestRegressMissingProjection(t *testing.T) {
	db := newTestDB(t)
	svc := NewRegressionService(db, testLogger())

	player := createPlayer(t, db, "QB One", "KC", "QB")

	_, _, err := svc.Regress(player.ID, testSeason, nil)
	var notFound *utils.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestRegressIgnoresFutureSeasons(t *testing.T) {
	db := newTestDB(t)
	svc := NewRegressionService(db, testLogger())

	player := createPlayer(t, db, "QB One", "KC", "QB")
	createQBProjection(t, db, player)
	// Only a same-season line exists; nothing prior to regress toward.
	sameSeason := models.SeasonStat{
		PlayerID: player.ID, Season: testSeason, Games: 17,
		PassAttempts: 550, PassYards: 3900,
	}
	require.NoError(t, db.Create(&sameSeason).Error)

	_, blended, err := svc.Regress(player.ID, testSeason, nil)
	require.NoError(t, err)
	assert.False(t, blended)
}
