package stats

import "math"

// Half-point-per-reception scoring weights. Fixed by the product, not
// runtime-configurable.
const (
	pointsPerPassYard     = 0.04
	pointsPerPassTD       = 4.0
	pointsPerInterception = -1.0
	pointsPerRushYard     = 0.1
	pointsPerRushTD       = 6.0
	pointsPerRecYard      = 0.1
	pointsPerRecTD        = 6.0
	pointsPerReception    = 0.5
)

// ScoringLine carries the raw counting stats that feed the fantasy-point
// formula. Callers pass zero for stats a player does not accrue.
type ScoringLine struct {
	PassYards     float64
	PassTDs       float64
	Interceptions float64
	RushYards     float64
	RushTDs       float64
	RecYards      float64
	RecTDs        float64
	Receptions    float64
}

// FantasyPoints computes the half-PPR aggregate, rounded to one decimal.
func FantasyPoints(line ScoringLine) float64 {
	points := line.PassYards*pointsPerPassYard +
		line.PassTDs*pointsPerPassTD +
		line.Interceptions*pointsPerInterception +
		line.RushYards*pointsPerRushYard +
		line.RushTDs*pointsPerRushTD +
		line.RecYards*pointsPerRecYard +
		line.RecTDs*pointsPerRecTD +
		line.Receptions*pointsPerReception

	return math.Round(points*10) / 10
}
