package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/projection-engine/internal/models"
	"github.com/jstittsworth/projection-engine/pkg/utils"
)

func TestCreateFromBaselineScalesToFullSeason(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectionService(db, nil, testLogger())

	player := createPlayer(t, db, "WR One", "KC", "WR")
	history := models.SeasonStat{
		PlayerID: player.ID,
		Season:   testSeason - 1,
		Games:    14,
		Targets:  112, Receptions: 77, RecYards: 980, RecTDs: 6,
	}
	require.NoError(t, db.Create(&history).Error)

	projection, err := svc.CreateFromBaseline(player.ID, testSeason)
	require.NoError(t, err)

	assert.Equal(t, 17.0, *projection.Games)
	scale := 17.0 / 14.0
	assert.InDelta(t, 112*scale, *projection.Targets, 1e-6)
	assert.InDelta(t, 980*scale, *projection.RecYards, 1e-6)
	// Per-game rates survive the scale.
	assert.InDelta(t, 77.0/112.0, *projection.CatchRate, 1e-9)
	assert.Positive(t, projection.FantasyPoints)
	assert.Nil(t, projection.ScenarioID)
}

func TestCreateFromBaselineUsesMostRecentSeason(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectionService(db, nil, testLogger())

	player := createPlayer(t, db, "WR One", "KC", "WR")
	older := models.SeasonStat{
		PlayerID: player.ID, Season: testSeason - 2, Games: 17,
		Targets: 60, Receptions: 40, RecYards: 500, RecTDs: 2,
	}
	newer := models.SeasonStat{
		PlayerID: player.ID, Season: testSeason - 1, Games: 17,
		Targets: 140, Receptions: 95, RecYards: 1200, RecTDs: 8,
	}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Create(&newer).Error)

	projection, err := svc.CreateFromBaseline(player.ID, testSeason)
	require.NoError(t, err)
	assert.InDelta(t, 140.0, *projection.Targets, 1e-6)
}

func TestCreateFromBaselineIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectionService(db, nil, testLogger())

	player := createPlayer(t, db, "WR One", "KC", "WR")
	existing := createWRProjection(t, db, player)

	projection, err := svc.CreateFromBaseline(player.ID, testSeason)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, projection.ID)
}

func TestCreateFromBaselineNoHistory(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectionService(db, nil, testLogger())

	player := createPlayer(t, db, "Rookie", "KC", "WR")

	_, err := svc.CreateFromBaseline(player.ID, testSeason)
	var notFound *utils.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestListProjectionsFiltersAndOrders(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectionService(db, nil, testLogger())

	qbPlayer := createPlayer(t, db, "QB One", "KC", "QB")
	createQBProjection(t, db, qbPlayer)
	wrPlayer := createPlayer(t, db, "WR One", "KC", "WR")
	createWRProjection(t, db, wrPlayer)
	otherPlayer := createPlayer(t, db, "WR Two", "BUF", "WR")
	createWRProjection(t, db, otherPlayer)

	all, err := svc.ListProjections(ProjectionFilter{Season: testSeason})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Ordered by fantasy points descending.
	assert.GreaterOrEqual(t, all[0].FantasyPoints, all[1].FantasyPoints)
	assert.GreaterOrEqual(t, all[1].FantasyPoints, all[2].FantasyPoints)
	// Player association loaded.
	assert.NotEmpty(t, all[0].Player.Name)

	kc, err := svc.ListProjections(ProjectionFilter{Team: "KC"})
	require.NoError(t, err)
	assert.Len(t, kc, 2)

	wrs, err := svc.ListProjections(ProjectionFilter{Position: "WR", Team: "BUF"})
	require.NoError(t, err)
	require.Len(t, wrs, 1)
	assert.Equal(t, otherPlayer.ID, wrs[0].PlayerID)
}

func TestGetProjectionNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectionService(db, nil, testLogger())

	_, err := svc.GetProjection(12345)
	var notFound *utils.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
