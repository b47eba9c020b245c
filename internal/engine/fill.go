package engine

import (
	"strings"

	"github.com/jstittsworth/projection-engine/internal/models"
	"github.com/jstittsworth/projection-engine/internal/stats"
	"github.com/jstittsworth/projection-engine/pkg/utils"
)

// Significance thresholds for a residual before a fill player is worth
// creating. Differences below every threshold are noise, not missing
// production.
const (
	fillThresholdTDs    = 0.5
	fillThresholdCounts = 1.0
	fillThresholdYards  = 5.0
)

// backupRushFraction caps how much of a remaining rush residual a fill QB
// absorbs, modeling backup-QB scrambles rather than a featured runner.
const backupRushFraction = 0.05

// FillSpec describes one synthetic roster entry to create: the position
// bucket it occupies and the projection holding the residual stats.
type FillSpec struct {
	Position   stats.Position
	Projection models.Projection
}

// Residuals computes team_total − Σ(known player projections) for every
// cumulative stat. Positive values are production the roster does not yet
// account for.
func Residuals(team models.TeamStat, projections []*models.Projection) map[string]float64 {
	residuals := make(map[string]float64)
	for _, name := range stats.CumulativeStats() {
		sum := 0.0
		for _, p := range projections {
			sum += utils.ValueOr(p.Stat(name), 0)
		}
		residuals[name] = team.Stat(name) - sum
	}
	return residuals
}

func fillThreshold(name string) float64 {
	switch {
	case strings.HasSuffix(name, "_td"):
		return fillThresholdTDs
	case strings.HasSuffix(name, "yards"):
		return fillThresholdYards
	default:
		return fillThresholdCounts
	}
}

// NeedsFill reports whether any residual exceeds its significance threshold.
func NeedsFill(residuals map[string]float64) bool {
	for name, diff := range residuals {
		if diff > fillThreshold(name) {
			return true
		}
	}
	return false
}

// SynthesizeFill builds up to one fill projection per position bucket from
// the significant residuals. rosterCounts is the number of real players per
// position, used to choose between a WR and a TE fill for the receiving
// bucket. Returns nil when nothing crosses a threshold.
func SynthesizeFill(team string, season int, scenarioID *uint, rosterCounts map[stats.Position]int, residuals map[string]float64) []FillSpec {
	if !NeedsFill(residuals) {
		return nil
	}

	var specs []FillSpec

	remaining := func(name string) float64 {
		if v := residuals[name]; v > 0 {
			return v
		}
		return 0
	}

	passSignificant := remaining(stats.StatPassAttempts) > fillThresholdCounts ||
		remaining(stats.StatPassYards) > fillThresholdYards ||
		remaining(stats.StatPassTDs) > fillThresholdTDs

	rushResidual := remaining(stats.StatRushAttempts)
	rushYards := remaining(stats.StatRushYards)
	rushTDs := remaining(stats.StatRushTDs)

	if passSignificant {
		qb := newFillProjection(team, season, scenarioID, stats.PositionQB)
		qb.PassAttempts = utils.Ptr(remaining(stats.StatPassAttempts))
		qb.Completions = utils.Ptr(remaining(stats.StatCompletions))
		qb.PassYards = utils.Ptr(remaining(stats.StatPassYards))
		qb.PassTDs = utils.Ptr(remaining(stats.StatPassTDs))
		qb.Interceptions = utils.Ptr(remaining(stats.StatInterceptions))

		// Backup QBs pick up a sliver of leftover rushing.
		qbRushAtt := rushResidual * backupRushFraction
		if qbRushAtt > 0 {
			qb.RushAttempts = utils.Ptr(qbRushAtt)
			qb.RushYards = utils.Ptr(rushYards * backupRushFraction)
			qb.RushTDs = utils.Ptr(rushTDs * backupRushFraction)
			rushResidual -= qbRushAtt
			rushYards *= 1 - backupRushFraction
			rushTDs *= 1 - backupRushFraction
		}

		finalizeFill(&qb)
		specs = append(specs, FillSpec{Position: stats.PositionQB, Projection: qb})
	}

	if rushResidual > fillThresholdCounts || rushYards > fillThresholdYards || rushTDs > fillThresholdTDs {
		rb := newFillProjection(team, season, scenarioID, stats.PositionRB)
		rb.RushAttempts = utils.Ptr(rushResidual)
		rb.RushYards = utils.Ptr(rushYards)
		rb.RushTDs = utils.Ptr(rushTDs)

		finalizeFill(&rb)
		specs = append(specs, FillSpec{Position: stats.PositionRB, Projection: rb})
	}

	recSignificant := remaining(stats.StatTargets) > fillThresholdCounts ||
		remaining(stats.StatReceptions) > fillThresholdCounts ||
		remaining(stats.StatRecYards) > fillThresholdYards ||
		remaining(stats.StatRecTDs) > fillThresholdTDs

	if recSignificant {
		pos := receivingFillPosition(rosterCounts)
		wr := newFillProjection(team, season, scenarioID, pos)
		wr.Targets = utils.Ptr(remaining(stats.StatTargets))
		wr.Receptions = utils.Ptr(remaining(stats.StatReceptions))
		wr.RecYards = utils.Ptr(remaining(stats.StatRecYards))
		wr.RecTDs = utils.Ptr(remaining(stats.StatRecTDs))

		finalizeFill(&wr)
		specs = append(specs, FillSpec{Position: pos, Projection: wr})
	}

	return specs
}

// receivingFillPosition picks WR or TE by roster depth imbalance: a roster
// carrying fewer WRs than twice its TEs is thin at WR.
func receivingFillPosition(rosterCounts map[stats.Position]int) stats.Position {
	if rosterCounts[stats.PositionWR] < 2*rosterCounts[stats.PositionTE] {
		return stats.PositionWR
	}
	return stats.PositionTE
}

func newFillProjection(team string, season int, scenarioID *uint, pos stats.Position) models.Projection {
	return models.Projection{
		Season:     season,
		ScenarioID: scenarioID,
		Team:       team,
		Position:   string(pos),
		Games:      utils.Ptr(17),
	}
}

func finalizeFill(p *models.Projection) {
	p.RecomputeDerived()
	p.RecomputeFantasyPoints()
}
