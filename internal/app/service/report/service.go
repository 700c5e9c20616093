package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pulsekit/pulse/internal/app/service/plan"
	"github.com/pulsekit/pulse/internal/models"
	"github.com/pulsekit/pulse/pkg/tool"
)

var (
	ErrInvalidTitle  = errors.New("report title is required")
	ErrInvalidPeriod = errors.New("report period end must not precede its start")
	ErrLimitReached  = errors.New("monthly report limit reached for current plan")
)

type CreateParams struct {
	Title       string
	PeriodStart time.Time
	PeriodEnd   time.Time
}

type Service struct {
	db        *gorm.DB
	evaluator plan.Evaluator
	log       *zap.SugaredLogger
}

func NewService(db *gorm.DB, evaluator plan.Evaluator, log *zap.SugaredLogger) *Service {
	return &Service{db: db, evaluator: evaluator, log: log}
}

// Create records a report, gated by the plan's monthly allowance. Rendering
// is out of scope; the row itself is what usage accounting counts.
func (s *Service) Create(ctx context.Context, workspaceID, createdBy string, p CreateParams) (*models.Report, error) {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return nil, ErrInvalidTitle
	}
	if p.PeriodEnd.Before(p.PeriodStart) {
		return nil, ErrInvalidPeriod
	}

	ev, err := s.evaluator.EvaluateUsage(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate usage: %w", err)
	}
	if !ev.CanCreateReport() {
		return nil, fmt.Errorf("%w: %d/%d used", ErrLimitReached,
			ev.Usage.Reports, ev.Plan.Limits.Reports)
	}

	rep := &models.Report{
		ID:          tool.GenerateUUIDV7(),
		WorkspaceID: workspaceID,
		Title:       title,
		PeriodStart: p.PeriodStart,
		PeriodEnd:   p.PeriodEnd,
		CreatedBy:   createdBy,
	}
	if err := s.db.WithContext(ctx).Create(rep).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return rep, nil
}

// List returns the workspace's reports, newest first.
func (s *Service) List(ctx context.Context, workspaceID string) ([]*models.Report, error) {
	var reports []*models.Report
	if err := s.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("created_at desc").
		Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}
