package engine

import (
	"github.com/jstittsworth/projection-engine/internal/models"
	"github.com/jstittsworth/projection-engine/internal/stats"
	"github.com/jstittsworth/projection-engine/pkg/utils"
)

// StatSnapshot is the per-scenario view of one player used in side-by-side
// comparison: the fantasy-point aggregate and the key stats for the player's
// position.
type StatSnapshot struct {
	FantasyPoints float64            `json:"fantasy_points"`
	Games         float64            `json:"games"`
	Stats         map[string]float64 `json:"stats"`
	HasOverrides  bool               `json:"has_overrides"`
}

// keyStatsByPosition drives which stats a comparison surfaces per position.
var keyStatsByPosition = map[stats.Position][]string{
	stats.PositionQB: {
		stats.StatPassAttempts, stats.StatPassYards, stats.StatPassTDs,
		stats.StatInterceptions, stats.StatRushYards, stats.StatRushTDs,
	},
	stats.PositionRB: {
		stats.StatRushAttempts, stats.StatRushYards, stats.StatRushTDs,
		stats.StatTargets, stats.StatReceptions, stats.StatRecYards, stats.StatRecTDs,
	},
	stats.PositionWR: {
		stats.StatTargets, stats.StatReceptions, stats.StatRecYards, stats.StatRecTDs,
	},
	stats.PositionTE: {
		stats.StatTargets, stats.StatReceptions, stats.StatRecYards, stats.StatRecTDs,
	},
}

// Snapshot assembles the comparison view of a projection.
func Snapshot(p *models.Projection) StatSnapshot {
	snap := StatSnapshot{
		FantasyPoints: p.FantasyPoints,
		Games:         p.StatValue(stats.StatGames),
		Stats:         make(map[string]float64),
		HasOverrides:  p.HasOverrides,
	}

	for _, name := range keyStatsByPosition[stats.Position(p.Position)] {
		if v := p.Stat(name); v != nil {
			snap.Stats[name] = *v
		}
	}

	return snap
}

// OverwriteStats applies direct field overwrites to a projection (scenario
// "what if this number were X" edits, not ratio-preserving adjustments), then
// recomputes derived stats and fantasy points. Every stat is validated
// against the position before any write happens.
func OverwriteStats(p *models.Projection, values map[string]float64) error {
	for name := range values {
		if !stats.Known(name) || !stats.Applicable(name, stats.Position(p.Position)) {
			return &utils.InvalidStatError{Stat: name, Position: p.Position}
		}
	}

	for name, value := range values {
		p.SetStat(name, value)
	}

	p.RecomputeDerived()
	p.RecomputeFantasyPoints()
	return nil
}
