package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplicable(t *testing.T) {
	tests := []struct {
		name     string
		stat     string
		pos      Position
		expected bool
	}{
		{"QB can pass", StatPassAttempts, PositionQB, true},
		{"RB cannot pass", StatPassAttempts, PositionRB, false},
		{"TE cannot rush", StatRushAttempts, PositionTE, false},
		{"WR can rush", StatRushAttempts, PositionWR, true},
		{"QB has no targets", StatTargets, PositionQB, false},
		{"TE has catch rate", StatCatchRate, PositionTE, true},
		{"Games applies everywhere", StatGames, PositionTE, true},
		{"Unknown stat never applies", "sacks", PositionQB, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Applicable(tt.stat, tt.pos))
		})
	}
}

func TestDependents(t *testing.T) {
	// Pass attempts ripple into completions, yards, TDs and every passing ratio.
	deps := Dependents(StatPassAttempts)
	assert.Contains(t, deps, StatCompletions)
	assert.Contains(t, deps, StatPassYards)
	assert.Contains(t, deps, StatCompPct)
	assert.Contains(t, deps, StatIntRate)

	// Leaf ratios have no dependents.
	assert.Empty(t, Dependents(StatCompPct))
	assert.Empty(t, Dependents("not_a_stat"))
}

func TestDependencyTableClosed(t *testing.T) {
	// Every stat named in the dependency and production tables is registered.
	for source, deps := range dependencyTable {
		assert.True(t, Known(source), "unknown source %s", source)
		for _, dep := range deps {
			assert.True(t, Known(dep), "unknown dependent %s of %s", dep, source)
		}
	}
	for source, produced := range producedStats {
		assert.True(t, Known(source), "unknown producer %s", source)
		for _, stat := range produced {
			assert.True(t, IsCumulative(stat), "produced stat %s must be cumulative", stat)
		}
	}
}

func TestCumulativeStats(t *testing.T) {
	for _, name := range CumulativeStats() {
		assert.True(t, IsCumulative(name), "%s should be cumulative", name)
	}
	assert.False(t, IsCumulative(StatGames))
	assert.False(t, IsCumulative(StatTargetShare))
}

func TestParsePosition(t *testing.T) {
	pos, ok := ParsePosition("WR")
	assert.True(t, ok)
	assert.Equal(t, PositionWR, pos)

	_, ok = ParsePosition("K")
	assert.False(t, ok)

	_, ok = ParsePosition("")
	assert.False(t, ok)
}
