package models

import (
	"time"

	"github.com/jstittsworth/projection-engine/internal/stats"
	"github.com/jstittsworth/projection-engine/pkg/utils"
)

// Projection is one player's season statistical forecast, optionally scoped
// to a scenario (nil ScenarioID = baseline). Raw counting stats are nullable:
// a QB carries no receiving line and a TE no passing line. Derived efficiency
// stats are recomputed from the raw stats, never authored directly.
type Projection struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	PlayerID   uint   `gorm:"not null;index:idx_projections_player_season_scenario,unique" json:"player_id"`
	Season     int    `gorm:"not null;index:idx_projections_player_season_scenario,unique" json:"season"`
	ScenarioID *uint  `gorm:"index:idx_projections_player_season_scenario,unique" json:"scenario_id,omitempty"`
	Team       string `gorm:"size:10;index" json:"team"`
	Position   string `gorm:"size:4;not null" json:"position"`

	Games *float64 `json:"games"`
	// First games value seen by a games override, preserved so repeated
	// games overrides scale from the original rather than compounding.
	OriginalGames *float64 `json:"original_games,omitempty"`

	// Raw passing stats
	PassAttempts  *float64 `json:"pass_attempts,omitempty"`
	Completions   *float64 `json:"completions,omitempty"`
	PassYards     *float64 `json:"pass_yards,omitempty"`
	PassTDs       *float64 `json:"pass_td,omitempty"`
	Interceptions *float64 `json:"interceptions,omitempty"`

	// Raw rushing stats
	RushAttempts *float64 `json:"rush_attempts,omitempty"`
	RushYards    *float64 `json:"rush_yards,omitempty"`
	RushTDs      *float64 `json:"rush_td,omitempty"`

	// Raw receiving stats
	Targets    *float64 `json:"targets,omitempty"`
	Receptions *float64 `json:"receptions,omitempty"`
	RecYards   *float64 `json:"rec_yards,omitempty"`
	RecTDs     *float64 `json:"rec_td,omitempty"`

	// Usage shares of team totals
	TargetShare *float64 `json:"target_share,omitempty"`
	RushShare   *float64 `json:"rush_share,omitempty"`
	SnapShare   *float64 `json:"snap_share,omitempty"`

	// Derived efficiency stats
	CompPct           *float64 `json:"comp_pct,omitempty"`
	YardsPerAttempt   *float64 `json:"yards_per_attempt,omitempty"`
	PassTDRate        *float64 `json:"pass_td_rate,omitempty"`
	IntRate           *float64 `json:"int_rate,omitempty"`
	YardsPerCarry     *float64 `json:"yards_per_carry,omitempty"`
	RushTDRate        *float64 `json:"rush_td_rate,omitempty"`
	CatchRate         *float64 `json:"catch_rate,omitempty"`
	YardsPerReception *float64 `json:"yards_per_reception,omitempty"`
	YardsPerTarget    *float64 `json:"yards_per_target,omitempty"`
	RecTDRate         *float64 `json:"rec_td_rate,omitempty"`

	FantasyPoints float64 `json:"fantasy_points"`
	HasOverrides  bool    `gorm:"default:false" json:"has_overrides"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Player    Player         `gorm:"foreignKey:PlayerID" json:"player,omitempty"`
	Scenario  *Scenario      `gorm:"foreignKey:ScenarioID" json:"-"`
	Overrides []StatOverride `gorm:"foreignKey:ProjectionID" json:"overrides,omitempty"`
}

func (Projection) TableName() string {
	return "projections"
}

// statPtr maps a stat name to its field. Unknown names return nil; callers
// validate with the stats registry first.
func (p *Projection) statPtr(name string) **float64 {
	switch name {
	case stats.StatGames:
		return &p.Games
	case stats.StatPassAttempts:
		return &p.PassAttempts
	case stats.StatCompletions:
		return &p.Completions
	case stats.StatPassYards:
		return &p.PassYards
	case stats.StatPassTDs:
		return &p.PassTDs
	case stats.StatInterceptions:
		return &p.Interceptions
	case stats.StatRushAttempts:
		return &p.RushAttempts
	case stats.StatRushYards:
		return &p.RushYards
	case stats.StatRushTDs:
		return &p.RushTDs
	case stats.StatTargets:
		return &p.Targets
	case stats.StatReceptions:
		return &p.Receptions
	case stats.StatRecYards:
		return &p.RecYards
	case stats.StatRecTDs:
		return &p.RecTDs
	case stats.StatTargetShare:
		return &p.TargetShare
	case stats.StatRushShare:
		return &p.RushShare
	case stats.StatSnapShare:
		return &p.SnapShare
	case stats.StatCompPct:
		return &p.CompPct
	case stats.StatYardsPerAttempt:
		return &p.YardsPerAttempt
	case stats.StatPassTDRate:
		return &p.PassTDRate
	case stats.StatIntRate:
		return &p.IntRate
	case stats.StatYardsPerCarry:
		return &p.YardsPerCarry
	case stats.StatRushTDRate:
		return &p.RushTDRate
	case stats.StatCatchRate:
		return &p.CatchRate
	case stats.StatYardsPerReception:
		return &p.YardsPerReception
	case stats.StatYardsPerTarget:
		return &p.YardsPerTarget
	case stats.StatRecTDRate:
		return &p.RecTDRate
	}
	return nil
}

// Stat returns the current value of the named stat, or nil when unset or
// unknown.
func (p *Projection) Stat(name string) *float64 {
	ptr := p.statPtr(name)
	if ptr == nil {
		return nil
	}
	return *ptr
}

// StatValue returns the named stat with unset values coalesced to 0.
func (p *Projection) StatValue(name string) float64 {
	return utils.ValueOr(p.Stat(name), 0)
}

// SetStat assigns a value to the named stat after validating that it applies
// to the projection's position.
func (p *Projection) SetStat(name string, value float64) error {
	if !stats.Applicable(name, stats.Position(p.Position)) {
		return &utils.InvalidStatError{Stat: name, Position: p.Position}
	}
	ptr := p.statPtr(name)
	*ptr = utils.Ptr(value)
	return nil
}

// ClearStat unsets the named stat. Used when a denominator disappears and a
// derived stat can no longer be defined.
func (p *Projection) ClearStat(name string) {
	if ptr := p.statPtr(name); ptr != nil {
		*ptr = nil
	}
}

// RecomputeDerived recomputes every efficiency statistic from the current raw
// statistics. A derived stat is set whenever its numerator is non-null and
// its denominator is positive, and cleared otherwise.
func (p *Projection) RecomputeDerived() {
	p.CompPct = deriveRatio(p.Completions, p.PassAttempts)
	p.YardsPerAttempt = deriveRatio(p.PassYards, p.PassAttempts)
	p.PassTDRate = deriveRatio(p.PassTDs, p.PassAttempts)
	p.IntRate = deriveRatio(p.Interceptions, p.PassAttempts)
	p.YardsPerCarry = deriveRatio(p.RushYards, p.RushAttempts)
	p.RushTDRate = deriveRatio(p.RushTDs, p.RushAttempts)
	p.CatchRate = deriveRatio(p.Receptions, p.Targets)
	p.YardsPerReception = deriveRatio(p.RecYards, p.Receptions)
	p.YardsPerTarget = deriveRatio(p.RecYards, p.Targets)
	p.RecTDRate = deriveRatio(p.RecTDs, p.Targets)
}

func deriveRatio(num, den *float64) *float64 {
	if num == nil || den == nil || *den <= 0 {
		return nil
	}
	return utils.Ptr(*num / *den)
}

// RecomputeFantasyPoints recomputes the half-PPR aggregate from the current
// raw statistics.
func (p *Projection) RecomputeFantasyPoints() {
	p.FantasyPoints = stats.FantasyPoints(stats.ScoringLine{
		PassYards:     utils.ValueOr(p.PassYards, 0),
		PassTDs:       utils.ValueOr(p.PassTDs, 0),
		Interceptions: utils.ValueOr(p.Interceptions, 0),
		RushYards:     utils.ValueOr(p.RushYards, 0),
		RushTDs:       utils.ValueOr(p.RushTDs, 0),
		RecYards:      utils.ValueOr(p.RecYards, 0),
		RecTDs:        utils.ValueOr(p.RecTDs, 0),
		Receptions:    utils.ValueOr(p.Receptions, 0),
	})
}

// Clone deep-copies the projection without identity, timestamps or
// associations. Used for scenario branching.
func (p *Projection) Clone() *Projection {
	clone := &Projection{
		PlayerID:      p.PlayerID,
		Season:        p.Season,
		ScenarioID:    p.ScenarioID,
		Team:          p.Team,
		Position:      p.Position,
		FantasyPoints: p.FantasyPoints,
		HasOverrides:  p.HasOverrides,
	}

	clone.Games = clonePtr(p.Games)
	clone.OriginalGames = clonePtr(p.OriginalGames)
	clone.PassAttempts = clonePtr(p.PassAttempts)
	clone.Completions = clonePtr(p.Completions)
	clone.PassYards = clonePtr(p.PassYards)
	clone.PassTDs = clonePtr(p.PassTDs)
	clone.Interceptions = clonePtr(p.Interceptions)
	clone.RushAttempts = clonePtr(p.RushAttempts)
	clone.RushYards = clonePtr(p.RushYards)
	clone.RushTDs = clonePtr(p.RushTDs)
	clone.Targets = clonePtr(p.Targets)
	clone.Receptions = clonePtr(p.Receptions)
	clone.RecYards = clonePtr(p.RecYards)
	clone.RecTDs = clonePtr(p.RecTDs)
	clone.TargetShare = clonePtr(p.TargetShare)
	clone.RushShare = clonePtr(p.RushShare)
	clone.SnapShare = clonePtr(p.SnapShare)
	clone.CompPct = clonePtr(p.CompPct)
	clone.YardsPerAttempt = clonePtr(p.YardsPerAttempt)
	clone.PassTDRate = clonePtr(p.PassTDRate)
	clone.IntRate = clonePtr(p.IntRate)
	clone.YardsPerCarry = clonePtr(p.YardsPerCarry)
	clone.RushTDRate = clonePtr(p.RushTDRate)
	clone.CatchRate = clonePtr(p.CatchRate)
	clone.YardsPerReception = clonePtr(p.YardsPerReception)
	clone.YardsPerTarget = clonePtr(p.YardsPerTarget)
	clone.RecTDRate = clonePtr(p.RecTDRate)

	return clone
}

func clonePtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return utils.Ptr(*v)
}
