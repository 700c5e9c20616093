package connection

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pulsekit/pulse/internal/app/service/plan"
	"github.com/pulsekit/pulse/internal/models"
	"github.com/pulsekit/pulse/pkg/tool"
	"github.com/pulsekit/pulse/pkg/types"
)

var (
	ErrNotFound        = errors.New("connection not found")
	ErrInvalidHandle   = errors.New("handle is required")
	ErrInvalidPlatform = errors.New("unknown platform")
	ErrLimitReached    = errors.New("connection limit reached for current plan")
)

var supportedPlatforms = []types.Platform{types.PlatformTikTok, types.PlatformInstagram}

type CreateParams struct {
	Handle         string
	Platform       types.Platform
	ConnectionType types.ConnectionType
}

type Service struct {
	db        *gorm.DB
	evaluator plan.Evaluator
	log       *zap.SugaredLogger
}

func NewService(db *gorm.DB, evaluator plan.Evaluator, log *zap.SugaredLogger) *Service {
	return &Service{db: db, evaluator: evaluator, log: log}
}

// NormalizeHandle lowercases and strips whitespace and a leading "@".
func NormalizeHandle(handle string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(handle)), "@")
}

// Create adds a tracked account in status pending. The plan gate is
// re-evaluated here, at the mutation point; evaluation and insert are still
// two separate steps, so concurrent creates can race past the limit.
func (s *Service) Create(ctx context.Context, workspaceID string, p CreateParams) (*models.Connection, error) {
	handle := NormalizeHandle(p.Handle)
	if handle == "" {
		return nil, ErrInvalidHandle
	}
	if p.Platform == "" {
		p.Platform = types.DefaultPlatform
	}
	if !lo.Contains(supportedPlatforms, p.Platform) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPlatform, p.Platform)
	}
	if p.ConnectionType == "" {
		p.ConnectionType = types.ConnectionTypeHandle
	}

	ev, err := s.evaluator.EvaluateUsage(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate usage: %w", err)
	}
	if !ev.CanAddConnection() {
		return nil, fmt.Errorf("%w: %d/%d used", ErrLimitReached,
			ev.Usage.Connections, ev.Plan.Limits.Connections)
	}

	conn := &models.Connection{
		ID:             tool.GenerateUUIDV7(),
		WorkspaceID:    workspaceID,
		Handle:         handle,
		Platform:       p.Platform,
		ConnectionType: p.ConnectionType,
		Status:         types.ConnectionStatusPending,
	}
	if err := s.db.WithContext(ctx).Create(conn).Error; err != nil {
		return nil, fmt.Errorf("failed to create connection: %w", err)
	}

	s.log.Infow("connection created", "workspace_id", workspaceID, "handle", handle, "platform", p.Platform)
	return conn, nil
}

// List returns the workspace's connections, newest first.
func (s *Service) List(ctx context.Context, workspaceID string) ([]*models.Connection, error) {
	var conns []*models.Connection
	if err := s.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("created_at desc").
		Find(&conns).Error; err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}
	return conns, nil
}

// Delete removes a connection. Its historical metric documents are kept.
func (s *Service) Delete(ctx context.Context, workspaceID, connectionID string) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND workspace_id = ?", connectionID, workspaceID).
		Delete(&models.Connection{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete connection: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
