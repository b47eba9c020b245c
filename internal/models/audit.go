package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// AdjustmentLog is an audit row written for every adjustment or team
// reconciliation, recording the requested factors and the soft-issue counts
// the operation reported.
type AdjustmentLog struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Scope        string         `gorm:"size:20;not null" json:"scope"` // "projection" or "team"
	ProjectionID *uint          `gorm:"index" json:"projection_id,omitempty"`
	Team         string         `gorm:"size:10;index" json:"team,omitempty"`
	Season       int            `json:"season"`
	ScenarioID   *uint          `gorm:"index" json:"scenario_id,omitempty"`
	Adjustments  datatypes.JSON `json:"adjustments"`
	IssuesFound  int            `json:"issues_found"`
	IssuesFixed  int            `json:"issues_fixed"`
	CreatedAt    time.Time      `json:"created_at"`
}

func (AdjustmentLog) TableName() string {
	return "adjustment_logs"
}

// ImportRun records one ingestion pass from the stats feed.
type ImportRun struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Source          string         `gorm:"size:40;not null" json:"source"`
	Season          int            `gorm:"not null" json:"season"`
	Teams           pq.StringArray `gorm:"type:text[]" json:"teams"`
	PlayersUpserted int            `json:"players_upserted"`
	TeamStats       int            `json:"team_stats"`
	SeasonStats     int            `json:"season_stats"`
	Error           string         `gorm:"type:text" json:"error,omitempty"`
	StartedAt       time.Time      `json:"started_at"`
	FinishedAt      time.Time      `json:"finished_at"`
}

func (ImportRun) TableName() string {
	return "import_runs"
}
