package content

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pulsekit/pulse/internal/models"
)

// PostWithMetrics pairs a post with its 1:1 metrics document, when one exists.
type PostWithMetrics struct {
	Post    *models.Post       `json:"post"`
	Metrics *models.PostMetric `json:"metrics"`
}

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

// ListPosts returns the workspace's posts, newest first, each joined with its
// metrics document.
func (s *Service) ListPosts(ctx context.Context, workspaceID string) ([]*PostWithMetrics, error) {
	var posts []*models.Post
	if err := s.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("published_at desc").
		Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	if len(posts) == 0 {
		return []*PostWithMetrics{}, nil
	}

	ids := lo.Map(posts, func(p *models.Post, _ int) string { return p.ID })
	var pms []*models.PostMetric
	if err := s.db.WithContext(ctx).
		Where("post_id IN ?", ids).
		Find(&pms).Error; err != nil {
		return nil, fmt.Errorf("failed to load post metrics: %w", err)
	}
	byID := lo.KeyBy(pms, func(m *models.PostMetric) string { return m.PostID })

	return lo.Map(posts, func(p *models.Post, _ int) *PostWithMetrics {
		return &PostWithMetrics{Post: p, Metrics: byID[p.ID]}
	}), nil
}
