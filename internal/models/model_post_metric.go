package models

import (
	"time"

	"github.com/pulsekit/pulse/pkg/types"
)

// PostMetric is the 1:1 metrics document for a post, keyed by the post id.
// Upsert-merged on every resync.
type PostMetric struct {
	PostID      string         `gorm:"column:post_id;type:varchar(128);primaryKey" json:"post_id"`
	WorkspaceID string         `gorm:"column:workspace_id;type:uuid;not null;index" json:"workspace_id"`
	Views       int64          `gorm:"column:views;not null" json:"views"`
	Likes       int64          `gorm:"column:likes;not null" json:"likes"`
	Comments    int64          `gorm:"column:comments;not null" json:"comments"`
	Shares      int64          `gorm:"column:shares;not null" json:"shares"`
	// WatchTime and VideoLength are in seconds; zero for platforms that do not
	// expose them.
	WatchTime   int64          `gorm:"column:watch_time;not null" json:"watch_time"`
	VideoLength int64          `gorm:"column:video_length;not null" json:"video_length"`
	Platform    types.Platform `gorm:"column:platform;type:varchar(32);not null" json:"platform"`
	LastUpdated time.Time      `gorm:"column:last_updated;not null" json:"last_updated"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (PostMetric) TableName() string {
	return "post_metric"
}
