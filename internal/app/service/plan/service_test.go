package plan

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pulsekit/pulse/pkg/types"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB, PreferSimpleProtocol: true}),
		&gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	return db, mock
}

func TestEvaluation_ConnectionGate(t *testing.T) {
	ev := &Evaluation{
		Plan:  types.Plans[types.PlanStarter],
		Usage: Usage{Connections: 1},
	}
	// Starter allows exactly one connection
	require.False(t, ev.CanAddConnection())

	ev.Usage.Connections = 0
	require.True(t, ev.CanAddConnection())
}

func TestEvaluation_UnlimitedSentinel(t *testing.T) {
	ev := &Evaluation{
		Plan:  types.Plans[types.PlanPartnership],
		Usage: Usage{Reports: 100000},
	}
	require.True(t, ev.CanCreateReport())
}

func TestEvaluation_ReportGate(t *testing.T) {
	ev := &Evaluation{
		Plan:  types.Plans[types.PlanGrowth],
		Usage: Usage{Reports: 5},
	}
	require.False(t, ev.CanCreateReport())

	ev.Usage.Reports = 4
	require.True(t, ev.CanCreateReport())
}

func TestStartOfMonth(t *testing.T) {
	now := time.Date(2026, time.August, 31, 17, 4, 5, 0, time.UTC)
	require.Equal(t, time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC), startOfMonth(now))
}

func TestEvaluateUsage_ReadsBillingAndLiveCounts(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewService(db, zap.NewNop().Sugar())

	mock.ExpectQuery(`SELECT \* FROM "billing_config"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "workspace_id", "plan", "status"}).
			AddRow("b-1", "ws-1", "Growth", "active"))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "connection"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "report"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ev, err := svc.EvaluateUsage(context.Background(), "ws-1")
	require.NoError(t, err)
	require.Equal(t, types.PlanGrowth, ev.Plan.ID)
	require.Equal(t, int64(2), ev.Usage.Connections)
	require.Equal(t, int64(1), ev.Usage.Reports)
	require.True(t, ev.CanAddConnection())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEvaluateUsage_MissingBillingDefaultsToStarter(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewService(db, zap.NewNop().Sugar())

	mock.ExpectQuery(`SELECT \* FROM "billing_config"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "connection"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "report"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	ev, err := svc.EvaluateUsage(context.Background(), "ws-legacy")
	require.NoError(t, err)
	require.Equal(t, types.PlanStarter, ev.Plan.ID)
	require.False(t, ev.CanAddConnection())
	require.NoError(t, mock.ExpectationsWereMet())
}
