package models

import (
	"time"

	"github.com/pulsekit/pulse/pkg/types"
)

// Recommendation is an action item raised for a workspace, typically by a
// consultant. Acknowledging records who closed it and when.
type Recommendation struct {
	ID             string                     `gorm:"column:id;type:uuid;primary_key" json:"id"`
	WorkspaceID    string                     `gorm:"column:workspace_id;type:uuid;not null;index" json:"workspace_id"`
	Title          string                     `gorm:"column:title;type:varchar(256);not null" json:"title"`
	Body           string                     `gorm:"column:body;type:text" json:"body"`
	Status         types.RecommendationStatus `gorm:"column:status;type:varchar(32);not null" json:"status"`
	CreatedBy      string                     `gorm:"column:created_by;type:varchar(64);not null" json:"created_by"`
	AcknowledgedBy *string                    `gorm:"column:acknowledged_by;type:varchar(64)" json:"acknowledged_by"`
	AcknowledgedAt *time.Time                 `gorm:"column:acknowledged_at" json:"acknowledged_at"`
	CreatedAt      time.Time                  `json:"created_at"`
	UpdatedAt      time.Time                  `json:"updated_at"`
}

func (Recommendation) TableName() string {
	return "recommendation"
}
