package engine

import (
	"fmt"
	"math"

	"github.com/jstittsworth/projection-engine/internal/models"
	"github.com/jstittsworth/projection-engine/internal/stats"
	"github.com/jstittsworth/projection-engine/pkg/utils"
)

// Team-wide targets/pass_attempts ratio correction. The trigger bounds and
// goal are empirically tuned, not derived; treat as tunables.
const (
	targetRatioMin  = 0.8
	targetRatioMax  = 1.2
	targetRatioGoal = 0.9
)

// AdjustTeamTotals applies the adjustment metrics to a copy of the team's
// ground-truth aggregate, using the same volume/scoring semantics as a
// single-player adjustment applied at team scale. The input row is not
// mutated.
func AdjustTeamTotals(team models.TeamStat, adjustments map[string]float64) (models.TeamStat, error) {
	if err := ValidateAdjustments(adjustments); err != nil {
		return team, err
	}

	adjusted := team

	if f, ok := adjustments[MetricPassVolume]; ok {
		adjusted.PassAttempts *= f
		adjusted.Completions *= f
		adjusted.PassYards *= f
		adjusted.PassTDs *= f
		adjusted.Interceptions *= f
		// Team pass volume carries the receiving side with it.
		adjusted.Targets *= f
		adjusted.Receptions *= f
		adjusted.RecYards *= f
		adjusted.RecTDs *= f
	}
	if f, ok := adjustments[MetricRushVolume]; ok {
		adjusted.RushAttempts *= f
		adjusted.RushYards *= f
		adjusted.RushTDs *= f
	}
	if f, ok := adjustments[MetricTDRate]; ok {
		adjusted.PassTDs *= f
		adjusted.RushTDs *= f
		adjusted.RecTDs *= f
	}
	if f, ok := adjustments[MetricIntRate]; ok {
		adjusted.Interceptions *= f
	}
	if f, ok := adjustments[MetricScoringRate]; ok {
		adjusted.PassTDs *= f
		adjusted.RushTDs *= f
		adjusted.RecTDs *= f
	}

	adjusted.Plays = adjusted.PassAttempts + adjusted.RushAttempts
	return adjusted, nil
}

// ApplyTeamFactors rescales every projection so each player keeps their
// pre-adjustment share of the relevant team totals: passing stats move with
// the team pass attempt factor, rushing with the rush attempt factor, and
// receiving with the target factor.
func ApplyTeamFactors(projections []*models.Projection, before, after models.TeamStat) {
	passFactor := utils.SafeDivide(after.PassAttempts, before.PassAttempts, 1)
	rushFactor := utils.SafeDivide(after.RushAttempts, before.RushAttempts, 1)
	targetFactor := utils.SafeDivide(after.Targets, before.Targets, 1)
	passTDFactor := utils.SafeDivide(after.PassTDs, before.PassTDs, 1)
	rushTDFactor := utils.SafeDivide(after.RushTDs, before.RushTDs, 1)
	recTDFactor := utils.SafeDivide(after.RecTDs, before.RecTDs, 1)
	intFactor := utils.SafeDivide(after.Interceptions, before.Interceptions, 1)

	for _, p := range projections {
		scaleStats(p, passFactor, stats.StatPassAttempts, stats.StatCompletions, stats.StatPassYards)
		scaleStats(p, passTDFactor, stats.StatPassTDs)
		scaleStats(p, intFactor, stats.StatInterceptions)
		scaleStats(p, rushFactor, stats.StatRushAttempts, stats.StatRushYards)
		scaleStats(p, rushTDFactor, stats.StatRushTDs)
		scaleStats(p, targetFactor, stats.StatTargets, stats.StatReceptions, stats.StatRecYards)
		scaleStats(p, recTDFactor, stats.StatRecTDs)

		p.RecomputeDerived()
		p.RecomputeFantasyPoints()
	}
}

// shareStatFor maps a share metric to the counting stat it governs.
var shareStatFor = map[string]string{
	MetricTargetShare: stats.StatTargets,
	MetricRushShare:   stats.StatRushAttempts,
}

// RebalanceShares sets the requested players' share of a team volume stat and
// redistributes the remainder across the other players proportionally to
// their current relative shares, so all shares continue to sum to 1. Requested
// shares are absolute values in [0, 0.5] keyed by player ID.
func RebalanceShares(projections []*models.Projection, metric string, requested map[uint]float64) error {
	stat, ok := shareStatFor[metric]
	if !ok {
		return &utils.InvalidAdjustmentError{Metric: metric, Reason: "metric does not define a team share"}
	}
	for playerID, share := range requested {
		if share < 0 || share > 0.5 {
			return &utils.InvalidAdjustmentError{
				Metric: metric,
				Value:  share,
				Reason: fmt.Sprintf("requested share for player %d outside [0, 0.5]", playerID),
			}
		}
	}

	total := 0.0
	for _, p := range projections {
		total += utils.ValueOr(p.Stat(stat), 0)
	}
	if total <= 0 {
		return nil
	}

	requestedSum := 0.0
	othersCurrent := 0.0
	for _, p := range projections {
		if share, ok := requested[p.PlayerID]; ok {
			requestedSum += share
		} else {
			othersCurrent += utils.ValueOr(p.Stat(stat), 0) / total
		}
	}

	remainder := 1.0 - requestedSum
	if remainder < 0 {
		remainder = 0
	}

	for _, p := range projections {
		current := utils.ValueOr(p.Stat(stat), 0) / total
		var newShare float64
		if share, ok := requested[p.PlayerID]; ok {
			newShare = share
		} else if othersCurrent > 0 {
			newShare = remainder * (current / othersCurrent)
		}

		mult := utils.SafeDivide(newShare, current, newShare)
		applyShareChange(p, metric, newShare, mult)
		p.RecomputeDerived()
		p.RecomputeFantasyPoints()
	}

	return nil
}

func applyShareChange(p *models.Projection, metric string, newShare, mult float64) {
	switch metric {
	case MetricTargetShare:
		scaleStats(p, mult, stats.StatTargets, stats.StatRecYards, stats.StatRecTDs)
		scaleStats(p, mult*receptionShareDamping, stats.StatReceptions)
		p.TargetShare = utils.Ptr(newShare)
	case MetricRushShare:
		scaleStats(p, mult, stats.StatRushAttempts, stats.StatRushYards, stats.StatRushTDs)
		p.RushShare = utils.Ptr(newShare)
	}
}

// CorrectTargetRatio checks the team-wide targets/pass_attempts ratio across
// the adjusted projections and, when it has drifted outside the trigger
// bounds, applies one corrective multiplier to all receiving stats pulling
// the ratio to the goal. Guards the passing-receiving conservation invariant
// against independent rounding drift.
func CorrectTargetRatio(projections []*models.Projection) Result {
	var res Result

	totalTargets := 0.0
	totalPassAttempts := 0.0
	for _, p := range projections {
		totalTargets += utils.ValueOr(p.Targets, 0)
		totalPassAttempts += utils.ValueOr(p.PassAttempts, 0)
	}
	if totalPassAttempts <= 0 || totalTargets <= 0 {
		return res
	}

	ratio := totalTargets / totalPassAttempts
	if ratio >= targetRatioMin && ratio <= targetRatioMax {
		return res
	}

	res.IssuesFound++
	correction := targetRatioGoal * totalPassAttempts / totalTargets
	for _, p := range projections {
		scaleStats(p, correction, stats.StatTargets, stats.StatReceptions,
			stats.StatRecYards, stats.StatRecTDs)
		p.RecomputeDerived()
		p.RecomputeFantasyPoints()
	}
	res.IssuesFixed++
	res.AddNote("team target/attempt ratio %.2f outside [%.1f, %.1f], corrected toward %.1f",
		ratio, targetRatioMin, targetRatioMax, targetRatioGoal)

	return res
}

// RatioInvariantIssues verifies that every derived stat equals its defining
// ratio of the current raw stats, returning the count of violations found and
// fixed. Violations are consistency bugs; the fix is recomputation.
func RatioInvariantIssues(p *models.Projection) Result {
	var res Result

	checks := []struct {
		derived  *float64
		num, den *float64
	}{
		{p.CompPct, p.Completions, p.PassAttempts},
		{p.YardsPerAttempt, p.PassYards, p.PassAttempts},
		{p.PassTDRate, p.PassTDs, p.PassAttempts},
		{p.IntRate, p.Interceptions, p.PassAttempts},
		{p.YardsPerCarry, p.RushYards, p.RushAttempts},
		{p.RushTDRate, p.RushTDs, p.RushAttempts},
		{p.CatchRate, p.Receptions, p.Targets},
		{p.YardsPerReception, p.RecYards, p.Receptions},
		{p.YardsPerTarget, p.RecYards, p.Targets},
		{p.RecTDRate, p.RecTDs, p.Targets},
	}

	for _, check := range checks {
		if check.num == nil || check.den == nil || *check.den <= 0 {
			continue
		}
		expected := *check.num / *check.den
		if check.derived == nil || math.Abs(*check.derived-expected) > 1e-6 {
			res.IssuesFound++
		}
	}

	if res.IssuesFound > 0 {
		p.RecomputeDerived()
		p.RecomputeFantasyPoints()
		res.IssuesFixed = res.IssuesFound
	}

	return res
}
