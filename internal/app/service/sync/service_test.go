package sync

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pulsekit/pulse/internal/app/service/provider"
	"github.com/pulsekit/pulse/pkg/metrics"
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

func newTestService(t *testing.T) (Orchestrator, sqlmock.Sqlmock, *metrics.Metrics) {
	t.Helper()
	db, mock := newMockDB(t)
	log := zap.NewNop().Sugar()
	m := metrics.New()
	return NewService(db, provider.NewRegistry(log), log, m), mock, m
}

func connectionRow(platform string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "workspace_id", "handle", "platform", "connection_type", "status"}).
		AddRow("conn-1", "ws-1", "creatorhandle", platform, "handle", "pending")
}

func expectBundleCommit(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "connection" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "daily_metric"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "audience_snapshot"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// one post + metric pair per mock post
	for i := 0; i < 3; i++ {
		mock.ExpectExec(`INSERT INTO "post"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO "post_metric"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()
}

func requireSyncCounted(t *testing.T, m *metrics.Metrics, platform, outcome string) {
	t.Helper()
	expected := fmt.Sprintf(`
# HELP pulse_sync_total Connection syncs, partitioned by platform and outcome.
# TYPE pulse_sync_total counter
pulse_sync_total{outcome=%q,platform=%q} 1
`, outcome, platform)
	require.NoError(t, testutil.GatherAndCompare(m.Gatherer(),
		strings.NewReader(expected), "pulse_sync_total"))
}

func TestSyncConnection_NotFound(t *testing.T) {
	svc, mock, m := newTestService(t)

	mock.ExpectQuery(`SELECT \* FROM "connection"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err := svc.SyncConnection(context.Background(), "ws-1", "missing")
	require.ErrorIs(t, err, ErrConnectionNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
	// counted too, under the unknown-platform label
	requireSyncCounted(t, m, "unknown", "error")
}

func TestSyncConnection_UnsupportedPlatform(t *testing.T) {
	svc, mock, m := newTestService(t)

	mock.ExpectQuery(`SELECT \* FROM "connection"`).
		WillReturnRows(connectionRow("youtube"))

	err := svc.SyncConnection(context.Background(), "ws-1", "conn-1")
	require.ErrorIs(t, err, provider.ErrUnsupportedPlatform)
	// nothing may be written before the provider resolves
	require.NoError(t, mock.ExpectationsWereMet())
	requireSyncCounted(t, m, "youtube", "error")
}

func TestSyncConnection_PersistsBundleAtomically(t *testing.T) {
	svc, mock, m := newTestService(t)

	mock.ExpectQuery(`SELECT \* FROM "connection"`).
		WillReturnRows(connectionRow("instagram"))
	expectBundleCommit(mock)

	require.NoError(t, svc.SyncConnection(context.Background(), "ws-1", "conn-1"))
	require.NoError(t, mock.ExpectationsWereMet())
	requireSyncCounted(t, m, "instagram", "ok")
}

func TestSyncConnection_BlankPlatformDefaultsToTikTok(t *testing.T) {
	svc, mock, m := newTestService(t)

	// legacy row from before multi-platform support
	mock.ExpectQuery(`SELECT \* FROM "connection"`).
		WillReturnRows(connectionRow(""))
	expectBundleCommit(mock)

	require.NoError(t, svc.SyncConnection(context.Background(), "ws-1", "conn-1"))
	require.NoError(t, mock.ExpectationsWereMet())
	requireSyncCounted(t, m, "tiktok", "ok")
}

func TestSyncConnection_RollsBackOnWriteFailure(t *testing.T) {
	svc, mock, _ := newTestService(t)

	mock.ExpectQuery(`SELECT \* FROM "connection"`).
		WillReturnRows(connectionRow("instagram"))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "connection" SET`).
		WillReturnError(fmt.Errorf("connection reset by peer"))
	mock.ExpectRollback()

	err := svc.SyncConnection(context.Background(), "ws-1", "conn-1")
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkSyncError_WritesAnnotation(t *testing.T) {
	svc, mock, _ := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "connection" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc.MarkSyncError(context.Background(), "ws-1", "conn-1", errors.New("provider sync failed"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkSyncError_SwallowsItsOwnFailure(t *testing.T) {
	svc, mock, _ := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "connection" SET`).
		WillReturnError(fmt.Errorf("database unavailable"))
	mock.ExpectRollback()

	// must not panic or propagate
	svc.MarkSyncError(context.Background(), "ws-1", "conn-1", errors.New("provider sync failed"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestErrorCode(t *testing.T) {
	require.Equal(t, CodeConnectionNotFound, ErrorCode(ErrConnectionNotFound))
	require.Equal(t, CodeConnectionNotFound, ErrorCode(fmt.Errorf("wrapped: %w", ErrConnectionNotFound)))
	require.Equal(t, CodeUnsupportedPlatform, ErrorCode(provider.ErrUnsupportedPlatform))
	require.Equal(t, CodeSyncFailed, ErrorCode(errors.New("anything else")))
}
