package workspace

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pulsekit/pulse/internal/models"
	"github.com/pulsekit/pulse/pkg/tool"
	"github.com/pulsekit/pulse/pkg/types"
)

var (
	ErrInvalidName   = errors.New("workspace name is required")
	ErrInvalidRole   = errors.New("invalid member role")
	ErrAlreadyMember = errors.New("user is already a member of this workspace")
)

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

// Create bootstraps a tenant in one atomic batch: the workspace row, the
// creator's admin membership, and a Starter billing config. The batch
// guarantees a workspace never exists without an admin.
func (s *Service) Create(ctx context.Context, ownerID, name string, industry *string) (*models.Workspace, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	ws := &models.Workspace{
		ID:       tool.GenerateUUIDV7(),
		Name:     name,
		OwnerID:  ownerID,
		Industry: industry,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ws).Error; err != nil {
			return fmt.Errorf("failed to create workspace: %w", err)
		}

		member := &models.Member{
			ID:          tool.GenerateUUIDV7(),
			WorkspaceID: ws.ID,
			UserID:      ownerID,
			Role:        types.RoleAdmin,
		}
		if err := tx.Create(member).Error; err != nil {
			return fmt.Errorf("failed to create admin member: %w", err)
		}

		billing := &models.BillingConfig{
			ID:          tool.GenerateUUIDV7(),
			WorkspaceID: ws.ID,
			Plan:        types.PlanStarter,
			Status:      "trialing",
		}
		if err := tx.Create(billing).Error; err != nil {
			return fmt.Errorf("failed to bootstrap billing config: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Infow("workspace created", "workspace_id", ws.ID, "owner_id", ownerID)
	return ws, nil
}

// AddMember grants a user a role in a workspace.
func (s *Service) AddMember(ctx context.Context, workspaceID, userID string, role types.Role) (*models.Member, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}

	var existing int64
	if err := s.db.WithContext(ctx).Model(&models.Member{}).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if existing > 0 {
		return nil, ErrAlreadyMember
	}

	member := &models.Member{
		ID:          tool.GenerateUUIDV7(),
		WorkspaceID: workspaceID,
		UserID:      userID,
		Role:        role,
	}
	if err := s.db.WithContext(ctx).Create(member).Error; err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}
	return member, nil
}

// ListMembers returns all members of a workspace.
func (s *Service) ListMembers(ctx context.Context, workspaceID string) ([]*models.Member, error) {
	var members []*models.Member
	if err := s.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("created_at asc").
		Find(&members).Error; err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}
