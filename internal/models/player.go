package models

import (
	"time"

	"github.com/google/uuid"
)

// Player is a roster entry. Fill players are synthetic rows (no real athlete)
// that absorb the residual between a team aggregate and the sum of its known
// players' projections.
type Player struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ExternalID   string    `gorm:"index" json:"external_id"` // stats feed identifier
	UUID         uuid.UUID `gorm:"type:uuid;index" json:"uuid"`
	Name         string    `gorm:"not null" json:"name"`
	Team         string    `gorm:"size:10;not null;index" json:"team"`
	Position     string    `gorm:"size:4;not null;index" json:"position"` // QB, RB, WR, TE
	IsFillPlayer bool      `gorm:"default:false;index" json:"is_fill_player"`
	ScenarioID   *uint     `gorm:"index" json:"scenario_id,omitempty"` // set only for fill players
	Status       string    `gorm:"size:20;default:'active'" json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Player) TableName() string {
	return "players"
}

// SeasonStat is a prior-season aggregate line for a player, ingested from the
// stats feed. It is read-only input: the engine blends projections toward it
// but never writes it.
type SeasonStat struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	PlayerID uint `gorm:"not null;index:idx_season_stats_player_season,unique" json:"player_id"`
	Season   int  `gorm:"not null;index:idx_season_stats_player_season,unique" json:"season"`

	Games         float64 `json:"games"`
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

	Player Player `gorm:"foreignKey:PlayerID" json:"-"`
}

func (SeasonStat) TableName() string {
	return "season_stats"
}

// Stat returns the named counting stat, or 0 for names this line does not
// carry.
func (s *SeasonStat) Stat(name string) float64 {
	switch name {
	case "games":
		return s.Games
	case "pass_attempts":
		return s.PassAttempts
	case "completions":
		return s.Completions
	case "pass_yards":
		return s.PassYards
	case "pass_td":
		return s.PassTDs
	case "interceptions":
		return s.Interceptions
	case "rush_attempts":
		return s.RushAttempts
	case "rush_yards":
		return s.RushYards
	case "rush_td":
		return s.RushTDs
	case "targets":
		return s.Targets
	case "receptions":
		return s.Receptions
	case "rec_yards":
		return s.RecYards
	case "rec_td":
		return s.RecTDs
	}
	return 0
}
