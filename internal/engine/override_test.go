package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/projection-engine/internal/models"
	"github.com/jstittsworth/projection-engine/pkg/utils"
)

func testQB() *models.Projection {
	p := &models.Projection{
		Position:      "QB",
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
	return p
}

func testWR() *models.Projection {
	p := &models.Projection{
		Position:    "WR",
		Games:       utils.Ptr(17.0),
		Targets:     utils.Ptr(140.0),
		Receptions:  utils.Ptr(95.0),
		RecYards:    utils.Ptr(1200.0),
		RecTDs:      utils.Ptr(8.0),
		TargetShare: utils.Ptr(0.25),
	}
	p.RecomputeDerived()
	p.RecomputeFantasyPoints()
	return p
}

func TestApplyOverrideRecordsCalculatedValue(t *testing.T) {
	p := testQB()

	override, err := ApplyOverride(p, "pass_yards", 4800)
	require.NoError(t, err)

	assert.Equal(t, "pass_yards", override.StatName)
	assert.Equal(t, 4200.0, override.CalculatedValue)
	assert.Equal(t, 4800.0, override.ManualValue)
	assert.Equal(t, 4800.0, *p.PassYards)
	assert.True(t, p.HasOverrides)

	// Dependent ratio recomputed from the new value.
	assert.InDelta(t, 8.0, *p.YardsPerAttempt, 1e-9)
}

func TestApplyOverrideRejectsInapplicableStat(t *testing.T) {
	p := testQB()

	_, err := ApplyOverride(p, "targets", 100)
	require.Error(t, err)
	var invalid *utils.InvalidStatError
	assert.ErrorAs(t, err, &invalid)
	assert.False(t, p.HasOverrides)
}

func TestVolumeOverridePreservesRates(t *testing.T) {
	p := testQB()
	completionRate := *p.Completions / *p.PassAttempts
	yardsPerAttempt := *p.PassYards / *p.PassAttempts

	_, err := ApplyOverride(p, "pass_attempts", 660)
	require.NoError(t, err)

	// Produced stats rescale at the pre-change per-attempt rates.
	assert.InDelta(t, completionRate*660, *p.Completions, 1e-6)
	assert.InDelta(t, yardsPerAttempt*660, *p.PassYards, 1e-6)
	assert.InDelta(t, completionRate, *p.CompPct, 1e-9)
}

func TestRevertOverrideRestoresCalculatedValue(t *testing.T) {
	p := testQB()
	original := *p.PassYards
	originalPoints := p.FantasyPoints

	override, err := ApplyOverride(p, "pass_yards", 4800)
	require.NoError(t, err)

	require.NoError(t, RevertOverride(p, override))
	assert.Equal(t, original, *p.PassYards)
	assert.Equal(t, originalPoints, p.FantasyPoints)
}

func TestGamesOverrideScalesSeason(t *testing.T) {
	p := testQB()

	_, err := ApplyOverride(p, "games", 12)
	require.NoError(t, err)

	assert.Equal(t, 12.0, *p.Games)
	require.NotNil(t, p.OriginalGames)
	assert.Equal(t, 17.0, *p.OriginalGames)
	assert.InDelta(t, 600.0*12/17, *p.PassAttempts, 1e-6)
	assert.InDelta(t, 4200.0*12/17, *p.PassYards, 1e-6)

	// Per-attempt ratios are unchanged by a uniform scale.
	assert.InDelta(t, 0.65, *p.CompPct, 1e-9)
}

func TestGamesOverrideIdempotent(t *testing.T) {
	// 17 -> 12 -> 10 must land exactly where 17 -> 10 does.
	twoStep := testQB()
	_, err := ApplyOverride(twoStep, "games", 12)
	require.NoError(t, err)
	_, err = ApplyOverride(twoStep, "games", 10)
	require.NoError(t, err)

	direct := testQB()
	_, err = ApplyOverride(direct, "games", 10)
	require.NoError(t, err)

	assert.InDelta(t, *direct.PassAttempts, *twoStep.PassAttempts, 1e-6)
	assert.InDelta(t, *direct.PassYards, *twoStep.PassYards, 1e-6)
	assert.InDelta(t, *direct.RushYards, *twoStep.RushYards, 1e-6)
	assert.Equal(t, 17.0, *twoStep.OriginalGames)
}

func TestReplayOverridesInOrder(t *testing.T) {
	p := testQB()
	overrides := []models.StatOverride{
		{StatName: "pass_attempts", ManualValue: 650},
		{StatName: "pass_td", ManualValue: 35},
	}

	require.NoError(t, ReplayOverrides(p, overrides))
	assert.Equal(t, 650.0, *p.PassAttempts)
	// The later direct override wins over the volume rescale.
	assert.Equal(t, 35.0, *p.PassTDs)
	assert.True(t, p.HasOverrides)
}
