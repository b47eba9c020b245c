package models

import (
	"time"

	"github.com/google/uuid"
)

// Scenario is a named branch of projections. BaseScenarioID records the
// scenario this one was cloned from (nil = cloned from baseline). Deleting a
// scenario deletes every projection and override scoped to it.
type Scenario struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UUID           uuid.UUID `gorm:"type:uuid;index" json:"uuid"`
	Name           string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description    string    `gorm:"type:text" json:"description"`
	Season         int       `gorm:"not null;index" json:"season"`
	BaseScenarioID *uint     `gorm:"index" json:"base_scenario_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	BaseScenario *Scenario    `gorm:"foreignKey:BaseScenarioID" json:"-"`
	Projections  []Projection `gorm:"foreignKey:ScenarioID" json:"projections,omitempty"`
}

func (Scenario) TableName() string {
	return "scenarios"
}
