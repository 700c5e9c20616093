package models

import (
	"time"

	"github.com/pulsekit/pulse/pkg/types"
)

// DailyMetric is the per-connection, per-calendar-day metrics document.
// The (connection_id, date) key gives at most one logical record per day;
// re-syncing the same day merges into it, last writer wins.
type DailyMetric struct {
	ConnectionID string `gorm:"column:connection_id;type:uuid;primaryKey" json:"connection_id"`
	// Date is the server-local calendar day, formatted YYYY-MM-DD.
	Date             string         `gorm:"column:date;type:varchar(10);primaryKey" json:"date"`
	WorkspaceID      string         `gorm:"column:workspace_id;type:uuid;not null;index" json:"workspace_id"`
	Followers        int64          `gorm:"column:followers;not null" json:"followers"`
	TotalViews       int64          `gorm:"column:total_views;not null" json:"total_views"`
	TotalEngagements int64          `gorm:"column:total_engagements;not null" json:"total_engagements"`
	ProfileViews     int64          `gorm:"column:profile_views;not null" json:"profile_views"`
	Platform         types.Platform `gorm:"column:platform;type:varchar(32);not null" json:"platform"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

func (DailyMetric) TableName() string {
	return "daily_metric"
}
