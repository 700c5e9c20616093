package plan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pulsekit/pulse/internal/models"
	"github.com/pulsekit/pulse/pkg/types"
)

// Usage is live-computed consumption. It is never persisted as a counter, so
// it is read-consistent only at the moment of the query.
type Usage struct {
	Connections int64 `json:"connections"`
	Reports     int64 `json:"reports"`
}

// Evaluation pairs a workspace's plan with its current usage. It is purely
// advisory: mutation paths must re-evaluate at the point of write, and even
// then two concurrent writers can both pass the gate (accepted race, see
// DESIGN.md).
type Evaluation struct {
	Plan  types.Plan `json:"plan"`
	Usage Usage      `json:"usage"`
}

func withinLimit(limit int, used int64) bool {
	return limit == types.Unlimited || used < int64(limit)
}

// CanAddConnection reports whether one more connection fits the plan.
func (e *Evaluation) CanAddConnection() bool {
	return withinLimit(e.Plan.Limits.Connections, e.Usage.Connections)
}

// CanCreateReport reports whether one more report fits this month's allowance.
func (e *Evaluation) CanCreateReport() bool {
	return withinLimit(e.Plan.Limits.Reports, e.Usage.Reports)
}

// Evaluator computes live usage against the static plan table.
type Evaluator interface {
	EvaluateUsage(ctx context.Context, workspaceID string) (*Evaluation, error)
}

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) Evaluator {
	return &Service{db: db, log: log}
}

// EvaluateUsage reads the billing config (falling back to Starter when the
// row is absent), the live connection count, and the count of reports created
// since the first instant of the current calendar month.
func (s *Service) EvaluateUsage(ctx context.Context, workspaceID string) (*Evaluation, error) {
	var billing models.BillingConfig
	planID := types.PlanStarter
	err := s.db.WithContext(ctx).Where("workspace_id = ?", workspaceID).First(&billing).Error
	switch {
	case err == nil:
		planID = billing.Plan
	case errors.Is(err, gorm.ErrRecordNotFound):
		// workspace predates billing bootstrap; lowest tier applies
	default:
		return nil, fmt.Errorf("failed to load billing config: %w", err)
	}

	var connections int64
	if err := s.db.WithContext(ctx).Model(&models.Connection{}).
		Where("workspace_id = ?", workspaceID).
		Count(&connections).Error; err != nil {
		return nil, fmt.Errorf("failed to count connections: %w", err)
	}

	var reports int64
	if err := s.db.WithContext(ctx).Model(&models.Report{}).
		Where("workspace_id = ? AND created_at >= ?", workspaceID, startOfMonth(time.Now())).
		Count(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to count reports: %w", err)
	}

	return &Evaluation{
		Plan:  types.PlanByID(planID),
		Usage: Usage{Connections: connections, Reports: reports},
	}, nil
}

func startOfMonth(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}
