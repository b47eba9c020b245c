package engine

import (
	"github.com/jstittsworth/projection-engine/internal/models"
	"github.com/jstittsworth/projection-engine/internal/stats"
	"github.com/jstittsworth/projection-engine/pkg/utils"
)

// ApplyOverride forces stat to manual on the projection, records the
// pre-override calculated value, and recomputes dependents. The returned
// StatOverride is ready to persist; the projection is mutated in place.
func ApplyOverride(p *models.Projection, stat string, manual float64) (*models.StatOverride, error) {
	if !stats.Known(stat) || !stats.Applicable(stat, stats.Position(p.Position)) {
		return nil, &utils.InvalidStatError{Stat: stat, Position: p.Position}
	}

	calculated := utils.ValueOr(p.Stat(stat), 0)

	if err := applyStatValue(p, stat, manual); err != nil {
		return nil, err
	}

	p.HasOverrides = true

	return &models.StatOverride{
		ProjectionID:    p.ID,
		StatName:        stat,
		CalculatedValue: calculated,
		ManualValue:     manual,
	}, nil
}

// RevertOverride restores the override's calculated value to the projection
// and recomputes dependents exactly as the override did. The caller clears
// HasOverrides once no overrides remain.
func RevertOverride(p *models.Projection, o *models.StatOverride) error {
	return applyStatValue(p, o.StatName, o.CalculatedValue)
}

// ReplayOverrides reapplies stored overrides in stored order. Used when a
// projection is regenerated and its manual edits must survive.
func ReplayOverrides(p *models.Projection, overrides []models.StatOverride) error {
	for i := range overrides {
		if err := applyStatValue(p, overrides[i].StatName, overrides[i].ManualValue); err != nil {
			return err
		}
	}
	if len(overrides) > 0 {
		p.HasOverrides = true
	}
	return nil
}

// applyStatValue writes value into stat and ripples the change through the
// dependency table: games rescales the whole season, volume stats rescale the
// counting stats they produce via the rates that existed before the change,
// and every ratio stat is recomputed from the final raw values.
func applyStatValue(p *models.Projection, stat string, value float64) error {
	switch {
	case stat == stats.StatGames:
		applyGamesScale(p, value)
	case len(stats.Produces(stat)) > 0:
		applyVolumeChange(p, stat, value)
	default:
		if err := p.SetStat(stat, value); err != nil {
			return err
		}
	}

	p.RecomputeDerived()
	p.RecomputeFantasyPoints()
	return nil
}

// applyGamesScale treats a games change as a global scale on the season.
// OriginalGames pins the value at the first games override so repeated games
// overrides do not compound: stats are always rescaled to land where a single
// override from the original games total would have put them.
func applyGamesScale(p *models.Projection, newGames float64) {
	current := utils.ValueOr(p.Games, 0)
	if p.OriginalGames == nil && current > 0 {
		p.OriginalGames = utils.Ptr(current)
	}

	ratio := utils.SafeDivide(newGames, current, 1)
	p.Games = utils.Ptr(newGames)

	for _, name := range stats.CumulativeStats() {
		if v := p.Stat(name); v != nil {
			p.SetStat(name, *v*ratio)
		}
	}
}

// applyVolumeChange sets a volume stat and rescales its produced counting
// stats using the per-unit rates from before the change, avoiding the
// compounding distortion of recomputing from post-change ratios.
func applyVolumeChange(p *models.Projection, stat string, value float64) {
	old := utils.ValueOr(p.Stat(stat), 0)

	rates := make(map[string]float64)
	for _, produced := range stats.Produces(stat) {
		if v := p.Stat(produced); v != nil && old > 0 {
			rates[produced] = *v / old
		}
	}

	p.SetStat(stat, value)

	for produced, rate := range rates {
		p.SetStat(produced, rate*value)
	}
}
