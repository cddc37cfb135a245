package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/bragboardhq/backend/internal/activity"
	"github.com/bragboardhq/backend/internal/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return gdb, mock
}

func TestHasOpenReport(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewPostgresReportRepository(gdb, activity.NewEngine())

	mock.ExpectQuery(`SELECT count\(\*\) FROM "reports"`).
		WithArgs(uint(7), uint(2), models.ReportStatusOpen).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	open, err := repo.HasOpenReport(7, 2)
	require.NoError(t, err)
	assert.True(t, open)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHasOpenReportIgnoresResolved(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewPostgresReportRepository(gdb, activity.NewEngine())

	mock.ExpectQuery(`SELECT count\(\*\) FROM "reports"`).
		WithArgs(uint(7), uint(2), models.ReportStatusOpen).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	open, err := repo.HasOpenReport(7, 2)
	require.NoError(t, err)
	assert.False(t, open)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUnreadCount(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewPostgresNotificationRepository(gdb)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "notifications"`).
		WithArgs(uint(1), false).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.GetUnreadCount(1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkAllAsRead(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewPostgresNotificationRepository(gdb)

	mock.ExpectExec(`UPDATE "notifications" SET "is_read"`).
		WithArgs(true, uint(1), false).
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, repo.MarkAllAsRead(1))
	assert.NoError(t, mock.ExpectationsWereMet())
}
