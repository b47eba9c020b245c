package models

import "time"

// StatOverride records that a statistic on a projection was manually forced
// to ManualValue, preserving the CalculatedValue that existed immediately
// before the override so deletion can restore it. Rows are immutable; a
// changed override is a delete plus a recreate.
type StatOverride struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ProjectionID    uint      `gorm:"not null;index" json:"projection_id"`
	StatName        string    `gorm:"size:40;not null" json:"stat_name"`
	CalculatedValue float64   `json:"calculated_value"`
	ManualValue     float64   `json:"manual_value"`
	CreatedAt       time.Time `json:"created_at"`

	Projection Projection `gorm:"foreignKey:ProjectionID;constraint:OnDelete:CASCADE" json:"-"`
}

func (StatOverride) TableName() string {
	return "stat_overrides"
}
