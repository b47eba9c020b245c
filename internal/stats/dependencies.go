package stats

// dependencyTable maps a changed statistic to the statistics that must be
// recomputed from it. The graph is a small hand-curated set of relationships
// per statistical domain, not a general expression system.
//
// Volume stats (attempts, targets, receptions) *produce* downstream counting
// stats: the engine rescales those using the rate that existed before the
// change. Ratio stats listed here are recomputed directly from current values.
var dependencyTable = map[string][]string{
	StatPassAttempts: {
		StatCompletions, StatPassYards, StatPassTDs,
		StatCompPct, StatYardsPerAttempt, StatPassTDRate, StatIntRate,
	},
	StatCompletions:   {StatCompPct, StatYardsPerReception},
	StatPassYards:     {StatYardsPerAttempt},
	StatPassTDs:       {StatPassTDRate},
	StatInterceptions: {StatIntRate},

	StatRushAttempts: {
		StatRushYards, StatRushTDs,
		StatYardsPerCarry, StatRushTDRate,
	},
	StatRushYards: {StatYardsPerCarry},
	StatRushTDs:   {StatRushTDRate},

	StatTargets: {
		StatReceptions, StatRecYards, StatRecTDs,
		StatCatchRate, StatYardsPerTarget, StatRecTDRate,
	},
	StatReceptions: {
		StatRecYards, StatRecTDs,
		StatCatchRate, StatYardsPerReception,
	},
	StatRecYards: {StatYardsPerReception, StatYardsPerTarget},
	StatRecTDs:   {StatRecTDRate},
}

// producedStats lists, for each volume stat, the counting stats it produces
// via preserved per-unit rates.
var producedStats = map[string][]string{
	StatPassAttempts: {StatCompletions, StatPassYards, StatPassTDs},
	StatRushAttempts: {StatRushYards, StatRushTDs},
	StatTargets:      {StatReceptions, StatRecYards, StatRecTDs},
	StatReceptions:   {StatRecYards, StatRecTDs},
}

// Dependents returns the statistics recomputed when name changes.
func Dependents(name string) []string {
	return dependencyTable[name]
}

// Produces returns the counting stats a volume stat rescales via preserved
// rates, or nil when name is not a volume stat.
func Produces(name string) []string {
	return producedStats[name]
}
