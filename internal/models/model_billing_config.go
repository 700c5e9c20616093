package models

import (
	"time"

	"github.com/pulsekit/pulse/pkg/types"
)

// BillingConfig stores the workspace's subscription tier. Usage is never
// persisted here; it is recomputed live against the static plan table.
type BillingConfig struct {
	ID          string       `gorm:"column:id;type:uuid;primary_key" json:"id"`
	WorkspaceID string       `gorm:"column:workspace_id;type:uuid;not null;uniqueIndex" json:"workspace_id"`
	Plan        types.PlanID `gorm:"column:plan;type:varchar(32);not null" json:"plan"`
	// Status mirrors the billing provider's view of the subscription.
	Status    string    `gorm:"column:status;type:varchar(32);not null" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (BillingConfig) TableName() string {
	return "billing_config"
}
