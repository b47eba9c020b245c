package engine

import (
	"github.com/jstittsworth/projection-engine/internal/models"
	"github.com/jstittsworth/projection-engine/internal/stats"
	"github.com/jstittsworth/projection-engine/pkg/utils"
)

// regressionWeights is the weight w on the *current* projection when blending
// toward a prior-season baseline: blended = w*current + (1-w)*historical.
// Lower weight means more regression toward history. Touchdown and
// interception stats regress hardest, reflecting their year-to-year variance.
var regressionWeights = map[string]float64{
	stats.StatPassAttempts:  0.70,
	stats.StatCompletions:   0.70,
	stats.StatPassYards:     0.70,
	stats.StatPassTDs:       0.60,
	stats.StatInterceptions: 0.50,

	stats.StatRushAttempts: 0.70,
	stats.StatRushYards:    0.70,
	stats.StatRushTDs:      0.60,

	stats.StatTargets:    0.75,
	stats.StatReceptions: 0.75,
	stats.StatRecYards:   0.75,
	stats.StatRecTDs:     0.60,
}

// RegressToBaseline blends the projection's raw stats toward the prior-season
// line, then recomputes every derived stat and the fantasy-point aggregate.
// A missing baseline leaves the projection untouched and reports false:
// players with no history are not an error.
func RegressToBaseline(p *models.Projection, baseline *models.SeasonStat) bool {
	if baseline == nil {
		return false
	}

	pos := stats.Position(p.Position)
	blendedAny := false

	for _, name := range stats.CumulativeStats() {
		w, ok := regressionWeights[name]
		if !ok || !stats.Applicable(name, pos) {
			continue
		}

		historical := baseline.Stat(name)
		current := p.Stat(name)
		if current == nil && historical == 0 {
			continue
		}

		blended := w*utils.ValueOr(current, 0) + (1-w)*historical
		p.SetStat(name, blended)
		blendedAny = true
	}

	if !blendedAny {
		return false
	}

	p.RecomputeDerived()
	p.RecomputeFantasyPoints()
	return true
}
