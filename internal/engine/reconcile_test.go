package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/projection-engine/internal/models"
	"github.com/jstittsworth/projection-engine/pkg/utils"
)

func testTeamStat() models.TeamStat {
	return models.TeamStat{
		Team:   "KC",
		Season: 2025,
		Plays:  1040,
		PassAttempts: 600, Completions: 400, PassYards: 4200, PassTDs: 28, Interceptions: 12,
		RushAttempts: 440, RushYards: 1900, RushTDs: 16,
		Targets: 600, Receptions: 400, RecYards: 4200, RecTDs: 28,
	}
}

func testRoster() []*models.Projection {
	qb := testQB()
	qb.PlayerID = 1

	wr1 := testWR()
	wr1.PlayerID = 2

	wr2 := &models.Projection{
		PlayerID:   3,
		Position:   "WR",
		Games:      utils.Ptr(17.0),
		Targets:    utils.Ptr(100.0),
		Receptions: utils.Ptr(65.0),
		RecYards:   utils.Ptr(850.0),
		RecTDs:     utils.Ptr(5.0),
	}
	wr2.RecomputeDerived()
	wr2.RecomputeFantasyPoints()

	rb := &models.Projection{
		PlayerID:     4,
		Position:     "RB",
		Games:        utils.Ptr(17.0),
		RushAttempts: utils.Ptr(250.0),
		RushYards:    utils.Ptr(1100.0),
		RushTDs:      utils.Ptr(9.0),
		Targets:      utils.Ptr(70.0),
		Receptions:   utils.Ptr(55.0),
		RecYards:     utils.Ptr(450.0),
		RecTDs:       utils.Ptr(2.0),
	}
	rb.RecomputeDerived()
	rb.RecomputeFantasyPoints()

	return []*models.Projection{qb, wr1, wr2, rb}
}

func TestAdjustTeamTotals(t *testing.T) {
	team := testTeamStat()

	adjusted, err := AdjustTeamTotals(team, map[string]float64{MetricPassVolume: 1.1})
	require.NoError(t, err)

	assert.InDelta(t, 660.0, adjusted.PassAttempts, 1e-6)
	assert.InDelta(t, 4620.0, adjusted.PassYards, 1e-6)
	// Receiving side moves with team pass volume.
	assert.InDelta(t, 660.0, adjusted.Targets, 1e-6)
	// Rushing untouched; plays re-derived.
	assert.Equal(t, 440.0, adjusted.RushAttempts)
	assert.InDelta(t, 1100.0, adjusted.Plays, 1e-6)
	// Input not mutated.
	assert.Equal(t, 600.0, team.PassAttempts)
}

func TestAdjustTeamTotalsValidates(t *testing.T) {
	_, err := AdjustTeamTotals(testTeamStat(), map[string]float64{MetricPassVolume: 2.0})
	var invalid *utils.InvalidAdjustmentError
	assert.ErrorAs(t, err, &invalid)
}

func TestApplyTeamFactorsPreservesShares(t *testing.T) {
	roster := testRoster()
	before := testTeamStat()
	after, err := AdjustTeamTotals(before, map[string]float64{MetricPassVolume: 1.1})
	require.NoError(t, err)

	wr1Share := *roster[1].Targets / before.Targets

	ApplyTeamFactors(roster, before, after)

	// Every player keeps their pre-adjustment share of the new total.
	assert.InDelta(t, wr1Share, *roster[1].Targets/after.Targets, 1e-9)
	assert.InDelta(t, 660.0, *roster[0].PassAttempts, 1e-6)
	// Rushing stats unchanged by a pass-only factor.
	assert.Equal(t, 250.0, *roster[3].RushAttempts)
}

func TestRebalanceSharesSumToOne(t *testing.T) {
	roster := testRoster()

	// Total targets: 140 + 100 + 70 = 310. Pin wr1 at 0.5.
	err := RebalanceShares(roster, MetricTargetShare, map[uint]float64{2: 0.5})
	require.NoError(t, err)

	totalShare := 0.0
	for _, p := range roster {
		totalShare += utils.ValueOr(p.TargetShare, 0)
	}
	// QB holds no targets so only the three receivers carry shares.
	assert.InDelta(t, 1.0, totalShare, 1e-9)
	assert.Equal(t, 0.5, *roster[1].TargetShare)

	// Others split the remainder proportionally to their previous shares.
	wr2Prev := 100.0 / 310.0
	rbPrev := 70.0 / 310.0
	othersPrev := wr2Prev + rbPrev
	assert.InDelta(t, 0.5*wr2Prev/othersPrev, *roster[2].TargetShare, 1e-9)
	assert.InDelta(t, 0.5*rbPrev/othersPrev, *roster[3].TargetShare, 1e-9)
}

func TestRebalanceSharesRejectsOutOfRange(t *testing.T) {
	err := RebalanceShares(testRoster(), MetricTargetShare, map[uint]float64{2: 0.7})
	var invalid *utils.InvalidAdjustmentError
	assert.ErrorAs(t, err, &invalid)

	err = RebalanceShares(testRoster(), MetricSnapShare, map[uint]float64{2: 0.3})
	assert.ErrorAs(t, err, &invalid)
}

func TestCorrectTargetRatioWithinBounds(t *testing.T) {
	roster := testRoster()
	// Bring roster targets to 0.9 of team pass attempts (540 of 600).
	for _, p := range roster {
		scaleStats(p, 540.0/310.0, "targets")
	}

	res := CorrectTargetRatio(roster)
	assert.Zero(t, res.IssuesFound)
}

func TestCorrectTargetRatioPullsToGoal(t *testing.T) {
	roster := testRoster()
	// Inflate receiving so targets/pass_attempts blows past 1.2.
	for _, p := range roster {
		scaleStats(p, 3.0, "targets")
	}

	res := CorrectTargetRatio(roster)
	assert.Equal(t, 1, res.IssuesFound)
	assert.Equal(t, 1, res.IssuesFixed)
	require.Len(t, res.Notes, 1)

	totalTargets := 0.0
	totalAttempts := 0.0
	for _, p := range roster {
		totalTargets += utils.ValueOr(p.Targets, 0)
		totalAttempts += utils.ValueOr(p.PassAttempts, 0)
	}
	assert.InDelta(t, targetRatioGoal, totalTargets/totalAttempts, 1e-9)
}

func TestRatioInvariantIssues(t *testing.T) {
	p := testWR()
	res := RatioInvariantIssues(p)
	assert.Zero(t, res.IssuesFound)

	// Corrupt a derived stat.
	p.CatchRate = utils.Ptr(0.99)
	res = RatioInvariantIssues(p)
	assert.Equal(t, 1, res.IssuesFound)
	assert.Equal(t, 1, res.IssuesFixed)
	assert.InDelta(t, 95.0/140.0, *p.CatchRate, 1e-9)
}
