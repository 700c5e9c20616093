package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/pulsekit/pulse/pkg/types"
)

// SyncError is the structured failure annotation written onto a connection
// after an unsuccessful sync.
type SyncError struct {
	Message string    `json:"message"`
	Code    string    `json:"code,omitempty"`
	At      time.Time `json:"at"`
}

// Connection is a tracked external social-media account within a workspace.
// Status transitions: {pending|error} -> active on successful sync, and
// active -> error on failed sync. LastError is cleared on every success.
type Connection struct {
	ID          string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	WorkspaceID string `gorm:"column:workspace_id;type:uuid;not null;index" json:"workspace_id"`
	// Handle is stored normalized: lowercase, no leading "@".
	Handle string `gorm:"column:handle;type:varchar(128);not null" json:"handle"`
	// Platform may be empty on records created before multi-platform support;
	// readers must treat empty as tiktok.
	Platform       types.Platform                    `gorm:"column:platform;type:varchar(32)" json:"platform"`
	ConnectionType types.ConnectionType              `gorm:"column:connection_type;type:varchar(32);not null" json:"connection_type"`
	Status         types.ConnectionStatus            `gorm:"column:status;type:varchar(32);not null" json:"status"`
	LastSyncAt     *time.Time                        `gorm:"column:last_sync_at" json:"last_sync_at"`
	LastError      datatypes.JSONType[*SyncError]    `gorm:"column:last_error;type:jsonb" json:"last_error"`
	CreatedAt      time.Time                         `json:"created_at"`
	UpdatedAt      time.Time                         `json:"updated_at"`
}

func (Connection) TableName() string {
	return "connection"
}

// EffectivePlatform resolves the platform for pre-multi-platform rows.
func (c *Connection) EffectivePlatform() types.Platform {
	if c == nil || c.Platform == "" {
		return types.DefaultPlatform
	}
	return c.Platform
}
