package models

import (
	"time"

	"github.com/pulsekit/pulse/pkg/types"
)

// Post is a content item. Sync-created posts use the provider-generated id,
// which is deterministic per handle+day+index for a given provider run, so a
// resync merges into the same rows instead of duplicating them.
type Post struct {
	ID          string `gorm:"column:id;type:varchar(128);primary_key" json:"id"`
	WorkspaceID string `gorm:"column:workspace_id;type:uuid;not null;index" json:"workspace_id"`
	// ConnectionID links sync-created posts back to their connection.
	ConnectionID string           `gorm:"column:connection_id;type:uuid;index" json:"connection_id"`
	Content      string           `gorm:"column:content;type:text;not null" json:"content"`
	MediaURL     string           `gorm:"column:media_url;type:text" json:"media_url"`
	// PostURL is the public platform URL, when the provider supplies one.
	PostURL     *string          `gorm:"column:post_url;type:text" json:"post_url"`
	Status      types.PostStatus `gorm:"column:status;type:varchar(32);not null" json:"status"`
	Platform    types.Platform   `gorm:"column:platform;type:varchar(32);not null" json:"platform"`
	PublishedAt time.Time        `gorm:"column:published_at;not null" json:"published_at"`
	CreatedBy   string           `gorm:"column:created_by;type:varchar(64);not null" json:"created_by"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func (Post) TableName() string {
	return "post"
}
