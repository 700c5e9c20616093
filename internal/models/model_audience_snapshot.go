package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/pulsekit/pulse/pkg/types"
)

// GenderBreakdown holds audience percentages per gender. Categories are
// generated independently and are not normalized to sum to 100.
type GenderBreakdown struct {
	Male   float64 `json:"male"`
	Female float64 `json:"female"`
	Other  float64 `json:"other"`
}

// AudienceSnapshot is the per-connection, per-day audience composition
// document. Same (connection_id, date) upsert-merge contract as DailyMetric.
type AudienceSnapshot struct {
	ConnectionID string                                   `gorm:"column:connection_id;type:uuid;primaryKey" json:"connection_id"`
	Date         string                                   `gorm:"column:date;type:varchar(10);primaryKey" json:"date"`
	WorkspaceID  string                                   `gorm:"column:workspace_id;type:uuid;not null;index" json:"workspace_id"`
	Gender       datatypes.JSONType[GenderBreakdown]      `gorm:"column:gender;type:jsonb" json:"gender"`
	Age          datatypes.JSONType[map[string]float64]   `gorm:"column:age;type:jsonb" json:"age"`
	Countries    datatypes.JSONType[map[string]float64]   `gorm:"column:countries;type:jsonb" json:"countries"`
	Platform     types.Platform                           `gorm:"column:platform;type:varchar(32);not null" json:"platform"`
	CreatedAt    time.Time                                `json:"created_at"`
	UpdatedAt    time.Time                                `json:"updated_at"`
}

func (AudienceSnapshot) TableName() string {
	return "audience_snapshot"
}
