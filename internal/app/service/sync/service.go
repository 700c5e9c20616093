package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pulsekit/pulse/internal/app/service/provider"
	"github.com/pulsekit/pulse/internal/models"
	"github.com/pulsekit/pulse/pkg/logctx"
	"github.com/pulsekit/pulse/pkg/metrics"
	"github.com/pulsekit/pulse/pkg/types"
)

// createdBySync marks posts written by the orchestrator rather than a user.
const createdBySync = "sync-service"

type Service struct {
	db       *gorm.DB
	registry *provider.Registry
	log      *zap.SugaredLogger
	metrics  *metrics.Metrics
}

func NewService(db *gorm.DB, registry *provider.Registry, log *zap.SugaredLogger, m *metrics.Metrics) Orchestrator {
	return &Service{db: db, registry: registry, log: log, metrics: m}
}

// SyncConnection loads the connection, resolves its provider, invokes it and
// persists the whole result bundle atomically: connection status, the day's
// DailyMetric and AudienceSnapshot, and one Post + PostMetric pair per
// returned post. Any error leaves the store untouched; the caller is
// responsible for the subsequent MarkSyncError annotation.
func (s *Service) SyncConnection(ctx context.Context, workspaceID, connectionID string) (retErr error) {
	log := logctx.FromCtx(ctx, s.log)

	// Every attempt is counted; the platform label stays "unknown" when the
	// connection row cannot be loaded.
	platform := types.Platform("unknown")
	defer func() {
		s.metrics.ObserveSync(string(platform), retErr)
	}()

	var conn models.Connection
	if err := s.db.WithContext(ctx).
		Where("id = ? AND workspace_id = ?", connectionID, workspaceID).
		First(&conn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrConnectionNotFound
		}
		return fmt.Errorf("failed to load connection: %w", err)
	}

	platform = conn.EffectivePlatform()

	prov, err := s.registry.Resolve(platform)
	if err != nil {
		return fmt.Errorf("%w: %s", provider.ErrUnsupportedPlatform, platform)
	}

	log.Infow("starting sync", "handle", conn.Handle, "platform", platform)

	res, err := prov.Sync(ctx, conn.Handle)
	if err != nil {
		return fmt.Errorf("provider sync failed: %w", err)
	}

	now := time.Now()
	date := now.Format("2006-01-02")

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Connection: active, synced now, previous error cleared.
		if err := tx.Model(&models.Connection{}).Where("id = ?", conn.ID).
			Updates(map[string]interface{}{
				"status":       types.ConnectionStatusActive,
				"last_sync_at": now,
				"last_error":   nil,
				"updated_at":   now,
			}).Error; err != nil {
			return fmt.Errorf("failed to update connection: %w", err)
		}

		// 2. Daily metric, keyed by (connection, date).
		dm := models.DailyMetric{
			ConnectionID:     conn.ID,
			Date:             date,
			WorkspaceID:      workspaceID,
			Followers:        res.DailyMetric.Followers,
			TotalViews:       res.DailyMetric.TotalViews,
			TotalEngagements: res.DailyMetric.TotalEngagements,
			ProfileViews:     res.DailyMetric.ProfileViews,
			Platform:         platform,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "connection_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"followers", "total_views", "total_engagements", "profile_views", "platform", "updated_at",
			}),
		}).Create(&dm).Error; err != nil {
			return fmt.Errorf("failed to upsert daily metric: %w", err)
		}

		// 3. Audience snapshot at the same date key.
		snap := models.AudienceSnapshot{
			ConnectionID: conn.ID,
			Date:         date,
			WorkspaceID:  workspaceID,
			Gender: datatypes.NewJSONType(models.GenderBreakdown{
				Male:   res.Audience.Gender.Male,
				Female: res.Audience.Gender.Female,
				Other:  res.Audience.Gender.Other,
			}),
			Age:       datatypes.NewJSONType(res.Audience.Age),
			Countries: datatypes.NewJSONType(res.Audience.Countries),
			Platform:  platform,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "connection_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"gender", "age", "countries", "platform", "updated_at",
			}),
		}).Create(&snap).Error; err != nil {
			return fmt.Errorf("failed to upsert audience snapshot: %w", err)
		}

		// 4. Posts and their paired metrics. The merge touches sync-owned
		// columns only, so fields like created_by survive a resync.
		for _, p := range res.Posts {
			post := models.Post{
				ID:           p.ID,
				WorkspaceID:  workspaceID,
				ConnectionID: conn.ID,
				Content:      p.Content,
				MediaURL:     p.MediaURL,
				PostURL:      p.PostURL,
				Status:       types.PostStatusPublished,
				Platform:     platform,
				PublishedAt:  p.PublishedAt,
				CreatedBy:    createdBySync,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"connection_id", "content", "media_url", "post_url", "status", "platform", "published_at", "updated_at",
				}),
			}).Create(&post).Error; err != nil {
				return fmt.Errorf("failed to upsert post %s: %w", p.ID, err)
			}

			pm := models.PostMetric{
				PostID:      p.ID,
				WorkspaceID: workspaceID,
				Views:       p.Metrics.Views,
				Likes:       p.Metrics.Likes,
				Comments:    p.Metrics.Comments,
				Shares:      p.Metrics.Shares,
				WatchTime:   p.Metrics.WatchTime,
				VideoLength: p.Metrics.VideoLength,
				Platform:    platform,
				LastUpdated: now,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "post_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"views", "likes", "comments", "shares", "watch_time", "video_length", "platform", "last_updated", "updated_at",
				}),
			}).Create(&pm).Error; err != nil {
				return fmt.Errorf("failed to upsert post metric %s: %w", p.ID, err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	log.Infow("sync complete", "handle", conn.Handle, "platform", platform, "posts", len(res.Posts))
	return nil
}

// MarkSyncError annotates the connection with a structured failure. It runs
// outside the sync transaction on purpose: the data write is atomic, the
// annotation is fire-and-forget, and its own failure is logged and swallowed.
func (s *Service) MarkSyncError(ctx context.Context, workspaceID, connectionID string, cause error) {
	now := time.Now()
	lastErr := &models.SyncError{
		Message: cause.Error(),
		Code:    ErrorCode(cause),
		At:      now,
	}

	err := s.db.WithContext(ctx).Model(&models.Connection{}).
		Where("id = ? AND workspace_id = ?", connectionID, workspaceID).
		Updates(map[string]interface{}{
			"status":     types.ConnectionStatusError,
			"last_error": datatypes.NewJSONType(lastErr),
			"updated_at": now,
		}).Error
	if err != nil {
		logctx.FromCtx(ctx, s.log).Errorw("failed to mark connection error",
			"connection_id", connectionID, "sync_err", cause, "err", err)
	}
}
