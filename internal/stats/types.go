package stats

// Position identifies the roster slot a player occupies.
type Position string

const (
	PositionQB Position = "QB"
	PositionRB Position = "RB"
	PositionWR Position = "WR"
	PositionTE Position = "TE"
)

// Kind describes the numeric semantics of a statistic.
type Kind string

const (
	KindCount   Kind = "count"   // raw counting stat (attempts, yards, touchdowns)
	KindRate    Kind = "rate"    // per-unit ratio (yards per attempt)
	KindPercent Kind = "percent" // 0..1 fraction (completion pct, catch rate)
	KindShare   Kind = "share"   // player's slice of a team total
)

// Statistic names. These are the canonical wire names used by overrides,
// adjustments and the dependency table.
const (
	StatGames = "games"

	StatPassAttempts  = "pass_attempts"
	StatCompletions   = "completions"
	StatPassYards     = "pass_yards"
	StatPassTDs       = "pass_td"
	StatInterceptions = "interceptions"

	StatRushAttempts = "rush_attempts"
	StatRushYards    = "rush_yards"
	StatRushTDs      = "rush_td"

	StatTargets    = "targets"
	StatReceptions = "receptions"
	StatRecYards   = "rec_yards"
	StatRecTDs     = "rec_td"

	StatTargetShare = "target_share"
	StatRushShare   = "rush_share"
	StatSnapShare   = "snap_share"

	StatCompPct           = "comp_pct"
	StatYardsPerAttempt   = "yards_per_attempt"
	StatPassTDRate        = "pass_td_rate"
	StatIntRate           = "int_rate"
	StatYardsPerCarry     = "yards_per_carry"
	StatRushTDRate        = "rush_td_rate"
	StatCatchRate         = "catch_rate"
	StatYardsPerReception = "yards_per_reception"
	StatYardsPerTarget    = "yards_per_target"
	StatRecTDRate         = "rec_td_rate"
)

type statDef struct {
	Kind       Kind
	Cumulative bool // scaled when a games override rescales the season
	Positions  []Position
}

var allPositions = []Position{PositionQB, PositionRB, PositionWR, PositionTE}
var passingPositions = []Position{PositionQB}
var rushingPositions = []Position{PositionQB, PositionRB, PositionWR}
var receivingPositions = []Position{PositionRB, PositionWR, PositionTE}

// registry is the fixed stat vocabulary. Derived stats are recomputed from
// raw stats, never authored directly.
var registry = map[string]statDef{
	StatGames: {Kind: KindCount, Positions: allPositions},

	StatPassAttempts:  {Kind: KindCount, Cumulative: true, Positions: passingPositions},
	StatCompletions:   {Kind: KindCount, Cumulative: true, Positions: passingPositions},
	StatPassYards:     {Kind: KindCount, Cumulative: true, Positions: passingPositions},
	StatPassTDs:       {Kind: KindCount, Cumulative: true, Positions: passingPositions},
	StatInterceptions: {Kind: KindCount, Cumulative: true, Positions: passingPositions},

	StatRushAttempts: {Kind: KindCount, Cumulative: true, Positions: rushingPositions},
	StatRushYards:    {Kind: KindCount, Cumulative: true, Positions: rushingPositions},
	StatRushTDs:      {Kind: KindCount, Cumulative: true, Positions: rushingPositions},

	StatTargets:    {Kind: KindCount, Cumulative: true, Positions: receivingPositions},
	StatReceptions: {Kind: KindCount, Cumulative: true, Positions: receivingPositions},
	StatRecYards:   {Kind: KindCount, Cumulative: true, Positions: receivingPositions},
	StatRecTDs:     {Kind: KindCount, Cumulative: true, Positions: receivingPositions},

	StatTargetShare: {Kind: KindShare, Positions: receivingPositions},
	StatRushShare:   {Kind: KindShare, Positions: rushingPositions},
	StatSnapShare:   {Kind: KindShare, Positions: allPositions},

	StatCompPct:           {Kind: KindPercent, Positions: passingPositions},
	StatYardsPerAttempt:   {Kind: KindRate, Positions: passingPositions},
	StatPassTDRate:        {Kind: KindPercent, Positions: passingPositions},
	StatIntRate:           {Kind: KindPercent, Positions: passingPositions},
	StatYardsPerCarry:     {Kind: KindRate, Positions: rushingPositions},
	StatRushTDRate:        {Kind: KindPercent, Positions: rushingPositions},
	StatCatchRate:         {Kind: KindPercent, Positions: receivingPositions},
	StatYardsPerReception: {Kind: KindRate, Positions: receivingPositions},
	StatYardsPerTarget:    {Kind: KindRate, Positions: receivingPositions},
	StatRecTDRate:         {Kind: KindPercent, Positions: receivingPositions},
}

// Known reports whether name is part of the stat vocabulary.
func Known(name string) bool {
	_, ok := registry[name]
	return ok
}

// Applicable reports whether the stat applies to players at the given position.
func Applicable(name string, pos Position) bool {
	def, ok := registry[name]
	if !ok {
		return false
	}
	for _, p := range def.Positions {
		if p == pos {
			return true
		}
	}
	return false
}

// IsCumulative reports whether the stat accumulates across games and is
// rescaled by a games override.
func IsCumulative(name string) bool {
	return registry[name].Cumulative
}

// KindOf returns the numeric kind of the stat, or empty for unknown names.
func KindOf(name string) Kind {
	return registry[name].Kind
}

// CumulativeStats returns the counting stats in a stable order.
func CumulativeStats() []string {
	return []string{
		StatPassAttempts, StatCompletions, StatPassYards, StatPassTDs, StatInterceptions,
		StatRushAttempts, StatRushYards, StatRushTDs,
		StatTargets, StatReceptions, StatRecYards, StatRecTDs,
	}
}

// ParsePosition normalizes a position string, returning false for anything
// outside the four projected positions.
func ParsePosition(s string) (Position, bool) {
	switch Position(s) {
	case PositionQB, PositionRB, PositionWR, PositionTE:
		return Position(s), true
	}
	return "", false
}
