package models

import (
	"math"
	"time"
)

// TeamStat is the season-level aggregate for one team, ingested from the
// stats feed and treated as ground truth. Player-level sums are reconciled
// against it; the engine reads these rows and never writes them.
type TeamStat struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Team   string `gorm:"size:10;not null;index:idx_team_stats_team_season,unique" json:"team"`
	Season int    `gorm:"not null;index:idx_team_stats_team_season,unique" json:"season"`

	Plays         float64 `json:"plays"`
	PassAttempts  float64 `json:"pass_attempts"`
	Completions   float64 `json:"completions"`
	PassYards     float64 `json:"pass_yards"`
	PassTDs       float64 `json:"pass_td"`
	Interceptions float64 `json:"interceptions"`
	RushAttempts  float64 `json:"rush_attempts"`
	RushYards     float64 `json:"rush_yards"`
	RushTDs       float64 `json:"rush_td"`
	Targets       float64 `json:"targets"`
	Receptions    float64 `json:"receptions"`
	RecYards      float64 `json:"rec_yards"`
	RecTDs        float64 `json:"rec_td"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (TeamStat) TableName() string {
	return "team_stats"
}

// Stat returns the named aggregate, or 0 for names the team line does not
// carry.
func (t *TeamStat) Stat(name string) float64 {
	switch name {
	case "plays":
		return t.Plays
	case "pass_attempts":
		return t.PassAttempts
	case "completions":
		return t.Completions
	case "pass_yards":
		return t.PassYards
	case "pass_td":
		return t.PassTDs
	case "interceptions":
		return t.Interceptions
	case "rush_attempts":
		return t.RushAttempts
	case "rush_yards":
		return t.RushYards
	case "rush_td":
		return t.RushTDs
	case "targets":
		return t.Targets
	case "receptions":
		return t.Receptions
	case "rec_yards":
		return t.RecYards
	case "rec_td":
		return t.RecTDs
	}
	return 0
}

// PlaysConsistent checks the composite plays conservation:
// pass_attempts + rush_attempts == plays, within tolerance.
func (t *TeamStat) PlaysConsistent(tolerance float64) bool {
	if t.Plays == 0 {
		return true
	}
	return math.Abs(t.PassAttempts+t.RushAttempts-t.Plays) <= tolerance
}
