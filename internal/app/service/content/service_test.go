package content

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
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

func TestListPosts_JoinsMetricsByPostID(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewService(db, zap.NewNop().Sugar())

	mock.ExpectQuery(`SELECT \* FROM "post"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "workspace_id", "content"}).
			AddRow("p-1", "ws-1", "first").
			AddRow("p-2", "ws-1", "second"))
	mock.ExpectQuery(`SELECT \* FROM "post_metric"`).
		WillReturnRows(sqlmock.NewRows([]string{"post_id", "workspace_id", "views", "likes"}).
			AddRow("p-2", "ws-1", 120, 7))

	posts, err := svc.ListPosts(context.Background(), "ws-1")
	require.NoError(t, err)
	require.Len(t, posts, 2)

	require.Equal(t, "p-1", posts[0].Post.ID)
	require.Nil(t, posts[0].Metrics) // no metrics document yet

	require.Equal(t, "p-2", posts[1].Post.ID)
	require.NotNil(t, posts[1].Metrics)
	require.Equal(t, int64(120), posts[1].Metrics.Views)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListPosts_EmptyWorkspace(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewService(db, zap.NewNop().Sugar())

	mock.ExpectQuery(`SELECT \* FROM "post"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	posts, err := svc.ListPosts(context.Background(), "ws-1")
	require.NoError(t, err)
	require.Empty(t, posts)
	// no metrics lookup for an empty result
	require.NoError(t, mock.ExpectationsWereMet())
}
