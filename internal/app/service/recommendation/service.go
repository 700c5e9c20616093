package recommendation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pulsekit/pulse/internal/models"
	"github.com/pulsekit/pulse/pkg/tool"
	"github.com/pulsekit/pulse/pkg/types"
)

var (
	ErrNotFound            = errors.New("recommendation not found")
	ErrInvalidTitle        = errors.New("recommendation title is required")
	ErrAlreadyAcknowledged = errors.New("recommendation is already acknowledged")
)

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

// Create raises an open recommendation for the workspace.
func (s *Service) Create(ctx context.Context, workspaceID, createdBy, title, body string) (*models.Recommendation, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrInvalidTitle
	}

	rec := &models.Recommendation{
		ID:          tool.GenerateUUIDV7(),
		WorkspaceID: workspaceID,
		Title:       title,
		Body:        body,
		Status:      types.RecommendationStatusOpen,
		CreatedBy:   createdBy,
	}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, fmt.Errorf("failed to create recommendation: %w", err)
	}
	return rec, nil
}

// Acknowledge closes an open recommendation, recording who and when.
func (s *Service) Acknowledge(ctx context.Context, workspaceID, recommendationID, userID string) error {
	now := time.Now()
	res := s.db.WithContext(ctx).Model(&models.Recommendation{}).
		Where("id = ? AND workspace_id = ? AND status = ?",
			recommendationID, workspaceID, types.RecommendationStatusOpen).
		Updates(map[string]interface{}{
			"status":          types.RecommendationStatusAcknowledged,
			"acknowledged_by": userID,
			"acknowledged_at": now,
			"updated_at":      now,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to acknowledge recommendation: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// distinguish missing from already-closed
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Recommendation{}).
			Where("id = ? AND workspace_id = ?", recommendationID, workspaceID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check recommendation: %w", err)
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrAlreadyAcknowledged
	}
	return nil
}

// List returns the workspace's recommendations, open ones first.
func (s *Service) List(ctx context.Context, workspaceID string) ([]*models.Recommendation, error) {
	var recs []*models.Recommendation
	if err := s.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("status desc, created_at desc").
		Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}
	return recs, nil
}
