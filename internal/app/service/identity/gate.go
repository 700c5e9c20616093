package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pulsekit/pulse/internal/models"
	"github.com/pulsekit/pulse/pkg/types"
)

var (
	ErrNotAMember       = errors.New("user is not a member of this workspace")
	ErrInsufficientRole = errors.New("member role does not permit this action")
)

// Authorizer verifies the caller's identity token and their role in the
// target workspace before any orchestration or mutation is permitted.
type Authorizer interface {
	Authorize(ctx context.Context, idToken, workspaceID string, requiredRoles ...types.Role) (string, error)
}

type Gate struct {
	db       *gorm.DB
	verifier TokenVerifier
	log      *zap.SugaredLogger
}

func NewGate(db *gorm.DB, verifier TokenVerifier, log *zap.SugaredLogger) Authorizer {
	return &Gate{db: db, verifier: verifier, log: log}
}

// Authorize returns the caller's user id when the token is valid, the user is
// a member of the workspace, and their role is in requiredRoles. An empty
// requiredRoles set means any member passes.
func (g *Gate) Authorize(ctx context.Context, idToken, workspaceID string, requiredRoles ...types.Role) (string, error) {
	userID, err := g.verifier.Verify(ctx, idToken)
	if err != nil {
		return "", err
	}

	var member models.Member
	if err := g.db.WithContext(ctx).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotAMember
		}
		return "", fmt.Errorf("failed to load member: %w", err)
	}

	if len(requiredRoles) > 0 && !lo.Contains(requiredRoles, member.Role) {
		return "", fmt.Errorf("%w: have %s", ErrInsufficientRole, member.Role)
	}
	return userID, nil
}
