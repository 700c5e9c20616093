package models

import (
	"time"
)

// Workspace is the tenant boundary. Every other entity hangs off a workspace
// and is only ever read or written in the context of one.
type Workspace struct {
	ID      string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	Name    string `gorm:"column:name;type:varchar(128);not null" json:"name"`
	OwnerID string `gorm:"column:owner_id;type:varchar(64);not null;index" json:"owner_id"`
	// Industry is free-form onboarding metadata; optional.
	Industry *string `gorm:"column:industry;type:varchar(128)" json:"industry"`
	// CreatedAt is managed by GORM and records the creation time.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is managed by GORM and records the update time.
	UpdatedAt time.Time `json:"updated_at"`
}

func (Workspace) TableName() string {
	return "workspace"
}
