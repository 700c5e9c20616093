package models

import (
	"time"

	"github.com/pulsekit/pulse/pkg/types"
)

// Member maps a user to a role within exactly one workspace. Authorization
// decisions derive solely from the role stored here.
type Member struct {
	ID          string     `gorm:"column:id;type:uuid;primary_key" json:"id"`
	WorkspaceID string     `gorm:"column:workspace_id;type:uuid;not null;uniqueIndex:unique_workspace_user,priority:1" json:"workspace_id"`
	UserID      string     `gorm:"column:user_id;type:varchar(64);not null;uniqueIndex:unique_workspace_user,priority:2" json:"user_id"`
	Role        types.Role `gorm:"column:role;type:varchar(32);not null" json:"role"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Member) TableName() string {
	return "member"
}
