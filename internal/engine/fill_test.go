package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/projection-engine/internal/stats"
)

func TestResiduals(t *testing.T) {
	team := testTeamStat()
	roster := testRoster()

	residuals := Residuals(team, roster)

	// Team 600 attempts, roster QB carries 600.
	assert.InDelta(t, 0.0, residuals[stats.StatPassAttempts], 1e-6)
	// Team 440 rushes, roster carries 60 (QB) + 250 (RB).
	assert.InDelta(t, 130.0, residuals[stats.StatRushAttempts], 1e-6)
	// Team 600 targets, roster carries 310.
	assert.InDelta(t, 290.0, residuals[stats.StatTargets], 1e-6)
}

func TestNeedsFillThresholds(t *testing.T) {
	tests := []struct {
		name      string
		residuals map[string]float64
		expected  bool
	}{
		{"All below threshold", map[string]float64{"rush_td": 0.4, "targets": 0.9, "rec_yards": 4.9}, false},
		{"TD residual significant", map[string]float64{"rush_td": 0.6}, true},
		{"Count residual significant", map[string]float64{"targets": 1.5}, true},
		{"Yardage residual below its higher bar", map[string]float64{"rec_yards": 3.0}, false},
		{"Yardage residual significant", map[string]float64{"rec_yards": 6.0}, true},
		{"Negative residuals never fill", map[string]float64{"targets": -50}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NeedsFill(tt.residuals))
		})
	}
}

func TestSynthesizeFillBuckets(t *testing.T) {
	rosterCounts := map[stats.Position]int{
		stats.PositionQB: 1,
		stats.PositionRB: 1,
		stats.PositionWR: 4,
		stats.PositionTE: 1,
	}
	residuals := map[string]float64{
		stats.StatPassAttempts:  40,
		stats.StatCompletions:   25,
		stats.StatPassYards:     280,
		stats.StatPassTDs:       1.5,
		stats.StatInterceptions: 1,
		stats.StatRushAttempts:  100,
		stats.StatRushYards:     420,
		stats.StatRushTDs:       3,
		stats.StatTargets:       60,
		stats.StatReceptions:    40,
		stats.StatRecYards:      480,
		stats.StatRecTDs:        3,
	}

	specs := SynthesizeFill("KC", 2025, nil, rosterCounts, residuals)
	require.Len(t, specs, 3)

	qb := specs[0]
	assert.Equal(t, stats.PositionQB, qb.Position)
	assert.Equal(t, 40.0, *qb.Projection.PassAttempts)
	// Backup QB absorbs 5% of the rushing residual.
	assert.InDelta(t, 5.0, *qb.Projection.RushAttempts, 1e-6)
	assert.InDelta(t, 21.0, *qb.Projection.RushYards, 1e-6)
	assert.Positive(t, qb.Projection.FantasyPoints)

	rb := specs[1]
	assert.Equal(t, stats.PositionRB, rb.Position)
	assert.InDelta(t, 95.0, *rb.Projection.RushAttempts, 1e-6)
	assert.InDelta(t, 399.0, *rb.Projection.RushYards, 1e-6)

	// 4 WRs >= 2*1 TE, so the receiving bucket goes to a TE.
	rec := specs[2]
	assert.Equal(t, stats.PositionTE, rec.Position)
	assert.Equal(t, 60.0, *rec.Projection.Targets)
}

func TestSynthesizeFillWRWhenThin(t *testing.T) {
	rosterCounts := map[stats.Position]int{
		stats.PositionWR: 2,
		stats.PositionTE: 2,
	}
	residuals := map[string]float64{
		stats.StatTargets:    40,
		stats.StatReceptions: 28,
		stats.StatRecYards:   300,
		stats.StatRecTDs:     2,
	}

	specs := SynthesizeFill("KC", 2025, nil, rosterCounts, residuals)
	require.Len(t, specs, 1)
	assert.Equal(t, stats.PositionWR, specs[0].Position)
}

func TestSynthesizeFillNothingSignificant(t *testing.T) {
	residuals := map[string]float64{
		stats.StatTargets:  0.5,
		stats.StatRecYards: 2,
	}
	assert.Nil(t, SynthesizeFill("KC", 2025, nil, nil, residuals))
}

func TestSynthesizeFillScopesScenario(t *testing.T) {
	scenarioID := uint(7)
	residuals := map[string]float64{stats.StatRushAttempts: 50, stats.StatRushYards: 200}

	specs := SynthesizeFill("KC", 2025, &scenarioID, nil, residuals)
	require.Len(t, specs, 1)
	require.NotNil(t, specs[0].Projection.ScenarioID)
	assert.Equal(t, scenarioID, *specs[0].Projection.ScenarioID)
}
