package engine

import (
	"fmt"

	"github.com/jstittsworth/projection-engine/internal/models"
	"github.com/jstittsworth/projection-engine/internal/stats"
	"github.com/jstittsworth/projection-engine/pkg/utils"
)

// Adjustment metric names.
const (
	MetricPassVolume  = "pass_volume"
	MetricRushVolume  = "rush_volume"
	MetricTDRate      = "td_rate"
	MetricIntRate     = "int_rate"
	MetricTargetShare = "target_share"
	MetricRushShare   = "rush_share"
	MetricSnapShare   = "snap_share"
	MetricScoringRate = "scoring_rate"
)

// receptionShareDamping scales receptions slightly below proportional under a
// share change, modeling reduced catch efficiency at higher volume.
const receptionShareDamping = 0.95

type metricRange struct {
	Min, Max float64
}

// Valid factor ranges per metric. Volume and rate metrics are relative
// multipliers; share metrics are absolute shares of the team total.
var adjustmentRanges = map[string]metricRange{
	MetricPassVolume:  {0.7, 1.3},
	MetricRushVolume:  {0.7, 1.3},
	MetricTDRate:      {0.5, 1.5},
	MetricIntRate:     {0.5, 1.5},
	MetricScoringRate: {0.5, 1.5},
	MetricTargetShare: {0, 0.5},
	MetricRushShare:   {0, 0.5},
	MetricSnapShare:   {0, 1},
}

// metricOrder fixes the application order so a multi-metric adjustment is
// deterministic regardless of map iteration.
var metricOrder = []string{
	MetricSnapShare,
	MetricPassVolume,
	MetricRushVolume,
	MetricTargetShare,
	MetricRushShare,
	MetricTDRate,
	MetricIntRate,
	MetricScoringRate,
}

// ValidateAdjustments checks every metric name and factor range before any
// mutation occurs.
func ValidateAdjustments(adjustments map[string]float64) error {
	for metric, factor := range adjustments {
		bounds, ok := adjustmentRanges[metric]
		if !ok {
			return &utils.InvalidAdjustmentError{Metric: metric, Value: factor, Reason: "unknown metric"}
		}
		if factor < bounds.Min || factor > bounds.Max {
			return &utils.InvalidAdjustmentError{
				Metric: metric,
				Value:  factor,
				Reason: fmt.Sprintf("factor outside valid range [%g, %g]", bounds.Min, bounds.Max),
			}
		}
	}
	return nil
}

// AdjustProjection applies the validated adjustments to a single projection
// per its position's rule set, then recomputes derived stats and fantasy
// points.
func AdjustProjection(p *models.Projection, adjustments map[string]float64) error {
	if err := ValidateAdjustments(adjustments); err != nil {
		return err
	}

	pos := stats.Position(p.Position)
	for _, metric := range metricOrder {
		factor, ok := adjustments[metric]
		if !ok {
			continue
		}
		applyMetric(p, pos, metric, factor)
	}

	p.RecomputeDerived()
	p.RecomputeFantasyPoints()
	return nil
}

func applyMetric(p *models.Projection, pos stats.Position, metric string, factor float64) {
	switch metric {
	case MetricPassVolume:
		scaleStats(p, factor, stats.StatPassAttempts, stats.StatCompletions,
			stats.StatPassYards, stats.StatPassTDs, stats.StatInterceptions)

	case MetricRushVolume:
		scaleStats(p, factor, stats.StatRushAttempts, stats.StatRushYards, stats.StatRushTDs)
		// A backfield volume change moves a receiver's passing-game usage
		// with it.
		if pos == stats.PositionRB || pos == stats.PositionWR || pos == stats.PositionTE {
			scaleStats(p, factor, stats.StatTargets, stats.StatReceptions,
				stats.StatRecYards, stats.StatRecTDs)
		}

	case MetricTDRate:
		switch pos {
		case stats.PositionQB:
			scaleStats(p, factor, stats.StatPassTDs)
		case stats.PositionRB:
			scaleStats(p, factor, stats.StatRushTDs, stats.StatRecTDs)
		default:
			scaleStats(p, factor, stats.StatRecTDs)
		}

	case MetricIntRate:
		scaleStats(p, factor, stats.StatInterceptions)

	case MetricScoringRate:
		scaleStats(p, factor, stats.StatPassTDs, stats.StatRushTDs, stats.StatRecTDs)

	case MetricTargetShare:
		mult := shareMultiplier(p.TargetShare, factor)
		scaleStats(p, mult, stats.StatTargets, stats.StatRecYards, stats.StatRecTDs)
		scaleStats(p, mult*receptionShareDamping, stats.StatReceptions)
		p.TargetShare = utils.Ptr(factor)

	case MetricRushShare:
		mult := shareMultiplier(p.RushShare, factor)
		scaleStats(p, mult, stats.StatRushAttempts, stats.StatRushYards, stats.StatRushTDs)
		p.RushShare = utils.Ptr(factor)

	case MetricSnapShare:
		mult := shareMultiplier(p.SnapShare, factor)
		for _, name := range stats.CumulativeStats() {
			scaleStats(p, mult, name)
		}
		p.SnapShare = utils.Ptr(factor)
	}
}

// shareMultiplier converts an absolute requested share into a relative
// multiplier against the current share. An unset or zero current share makes
// the multiplier the raw new share.
func shareMultiplier(current *float64, newShare float64) float64 {
	cur := utils.ValueOr(current, 0)
	if cur <= 0 {
		return newShare
	}
	return newShare / cur
}

func scaleStats(p *models.Projection, factor float64, names ...string) {
	for _, name := range names {
		if v := p.Stat(name); v != nil {
			p.SetStat(name, *v*factor)
		}
	}
}
