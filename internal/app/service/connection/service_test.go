package connection

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pulsekit/pulse/internal/app/service/plan"
	"github.com/pulsekit/pulse/pkg/types"
)

type staticEvaluator struct {
	ev  *plan.Evaluation
	err error
}

func (e *staticEvaluator) EvaluateUsage(ctx context.Context, workspaceID string) (*plan.Evaluation, error) {
	return e.ev, e.err
}

func roomFor(connections int64) *staticEvaluator {
	return &staticEvaluator{ev: &plan.Evaluation{
		Plan:  types.Plans[types.PlanStarter],
		Usage: plan.Usage{Connections: connections},
	}}
}

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

func TestNormalizeHandle(t *testing.T) {
	require.Equal(t, "creatorhandle", NormalizeHandle("  @CreatorHandle "))
	require.Equal(t, "plain", NormalizeHandle("plain"))
	require.Equal(t, "", NormalizeHandle("  @  "))
}

func TestCreate_NormalizesAndDefaults(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewService(db, roomFor(0), zap.NewNop().Sugar())

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "connection"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	conn, err := svc.Create(context.Background(), "ws-1", CreateParams{Handle: "@CreatorHandle"})
	require.NoError(t, err)
	require.Equal(t, "creatorhandle", conn.Handle)
	require.Equal(t, types.PlatformTikTok, conn.Platform)
	require.Equal(t, types.ConnectionTypeHandle, conn.ConnectionType)
	require.Equal(t, types.ConnectionStatusPending, conn.Status)
	require.NotEmpty(t, conn.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_EmptyHandle(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewService(db, roomFor(0), zap.NewNop().Sugar())

	_, err := svc.Create(context.Background(), "ws-1", CreateParams{Handle: "  @ "})
	require.ErrorIs(t, err, ErrInvalidHandle)
}

func TestCreate_UnknownPlatform(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewService(db, roomFor(0), zap.NewNop().Sugar())

	_, err := svc.Create(context.Background(), "ws-1", CreateParams{Handle: "h", Platform: "youtube"})
	require.ErrorIs(t, err, ErrInvalidPlatform)
}

func TestCreate_PlanLimitBlocks(t *testing.T) {
	db, mock := newMockDB(t)
	// Starter allows one connection and one is already in use
	svc := NewService(db, roomFor(1), zap.NewNop().Sugar())

	_, err := svc.Create(context.Background(), "ws-1", CreateParams{Handle: "h"})
	require.ErrorIs(t, err, ErrLimitReached)
	// nothing may be inserted past the gate
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewService(db, roomFor(0), zap.NewNop().Sugar())

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "connection"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := svc.Delete(context.Background(), "ws-1", "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_RemovesRow(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewService(db, roomFor(0), zap.NewNop().Sugar())

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "connection"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.Delete(context.Background(), "ws-1", "conn-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
