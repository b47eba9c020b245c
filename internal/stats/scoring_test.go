package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFantasyPoints(t *testing.T) {
	tests := []struct {
		name     string
		line     ScoringLine
		expected float64
	}{
		{
			name:     "Empty line scores zero",
			line:     ScoringLine{},
			expected: 0,
		},
		{
			name: "Passing line with rushing",
			line: ScoringLine{
				PassYards:     300,
				PassTDs:       3,
				Interceptions: 1,
				RushYards:     20,
			},
			// 12 + 12 - 1 + 2
			expected: 25.0,
		},
		{
			name: "Receiving line includes half-point receptions",
			line: ScoringLine{
				RecYards:   100,
				RecTDs:     1,
				Receptions: 7,
			},
			// 10 + 6 + 3.5
			expected: 19.5,
		},
		{
			name: "Rounds to one decimal",
			line: ScoringLine{
				PassYards: 283, // 11.32
			},
			expected: 11.3,
		},
		{
			name: "Negative total allowed",
			line: ScoringLine{
				Interceptions: 3,
				PassYards:     25, // 1.0
			},
			expected: -2.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FantasyPoints(tt.line))
		})
	}
}
