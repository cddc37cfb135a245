package activity

import (
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

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

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  string
	}{
		{
			name:  "short text untouched",
			text:  strings.Repeat("a", 60),
			limit: 80,
			want:  strings.Repeat("a", 60),
		},
		{
			name:  "exactly at limit untouched",
			text:  strings.Repeat("a", 80),
			limit: 80,
			want:  strings.Repeat("a", 80),
		},
		{
			name:  "over limit cut with marker",
			text:  strings.Repeat("a", 90),
			limit: 80,
			want:  strings.Repeat("a", 77) + "...",
		},
		{
			name:  "trailing whitespace stripped before marker",
			text:  strings.Repeat("a", 76) + " " + strings.Repeat("b", 20),
			limit: 80,
			want:  strings.Repeat("a", 76) + "...",
		},
		{
			name:  "surrounding whitespace trimmed first",
			text:  "  hello  ",
			limit: 80,
			want:  "hello",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.text, tt.limit)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len([]rune(got)), tt.limit)
		})
	}
}

func TestOnShoutOutCreatedFanOut(t *testing.T) {
	gdb, mock := newMockDB(t)
	engine := NewEngine()
	shout := &models.ShoutOut{ID: 7, CreatedByID: 1}

	// Recipients 2 and 3 get one notification each; the duplicate 3 and
	// the actor tagging themselves do not.
	for _, rid := range []uint{2, 3} {
		mock.ExpectQuery(`INSERT INTO "notifications"`).
			WithArgs(rid, shout.ID, false, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	}

	err := engine.OnShoutOutCreated(gdb, shout, []uint{2, 3, 3, 1}, 1)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOnCommentAddedNotifiesAuthorOnce(t *testing.T) {
	gdb, mock := newMockDB(t)
	engine := NewEngine()
	shout := &models.ShoutOut{ID: 7, CreatedByID: 1}

	mock.ExpectQuery(`SELECT count\(\*\) FROM "notifications"`).
		WithArgs(shout.CreatedByID, shout.ID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "notifications"`).
		WithArgs(shout.CreatedByID, shout.ID, false, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	require.NoError(t, engine.OnCommentAdded(gdb, shout, 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOnReactionAddedSkipsWhenAlreadyNotified(t *testing.T) {
	gdb, mock := newMockDB(t)
	engine := NewEngine()
	shout := &models.ShoutOut{ID: 7, CreatedByID: 1}

	mock.ExpectQuery(`SELECT count\(\*\) FROM "notifications"`).
		WithArgs(shout.CreatedByID, shout.ID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	require.NoError(t, engine.OnReactionAdded(gdb, shout, 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotifyAuthorSkipsSelf(t *testing.T) {
	gdb, mock := newMockDB(t)
	engine := NewEngine()
	shout := &models.ShoutOut{ID: 7, CreatedByID: 1}

	// Author commenting on their own post produces no queries at all
	require.NoError(t, engine.OnCommentAdded(gdb, shout, 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOnShoutOutDeletedAuditsOwner(t *testing.T) {
	gdb, mock := newMockDB(t)
	engine := NewEngine()
	shout := &models.ShoutOut{ID: 7, CreatedByID: 1, Content: "Great work on the launch"}
	actor := &models.User{ID: 1, FullName: "Priya Sharma"}

	mock.ExpectQuery(`INSERT INTO "admin_notifications"`).
		WithArgs(
			models.EventShoutOutDeleted,
			`Priya Sharma deleted their shout-out (#7): "Great work on the launch"`,
			actor.ID,
			nil,
			nil,
			sqlmock.AnyArg(),
		).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	require.NoError(t, engine.OnShoutOutDeleted(gdb, shout, actor))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOnShoutOutDeletedSilentForAdmin(t *testing.T) {
	gdb, mock := newMockDB(t)
	engine := NewEngine()
	shout := &models.ShoutOut{ID: 7, CreatedByID: 1, Content: "nice"}
	admin := &models.User{ID: 9, FullName: "Admin", IsAdmin: true}

	require.NoError(t, engine.OnShoutOutDeleted(gdb, shout, admin))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOnCommentDeletedReferencesShoutOut(t *testing.T) {
	gdb, mock := newMockDB(t)
	engine := NewEngine()
	comment := &models.Comment{ID: 3, ShoutoutID: 7, UserID: 2, Content: "congrats!"}
	actor := &models.User{ID: 2, FullName: "Arjun Mehta"}

	mock.ExpectQuery(`INSERT INTO "admin_notifications"`).
		WithArgs(
			models.EventCommentDeleted,
			`Arjun Mehta deleted a comment on shout-out #7: "congrats!"`,
			actor.ID,
			comment.ShoutoutID,
			nil,
			sqlmock.AnyArg(),
		).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	require.NoError(t, engine.OnCommentDeleted(gdb, comment, actor))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOnReportSubmittedIncludesReason(t *testing.T) {
	gdb, mock := newMockDB(t)
	engine := NewEngine()
	shout := &models.ShoutOut{ID: 7, CreatedByID: 1}
	reason := "inappropriate content"
	report := &models.Report{ID: 11, ShoutoutID: 7, ReporterID: 2, Reason: &reason}
	actor := &models.User{ID: 2, FullName: "Arjun Mehta"}

	mock.ExpectQuery(`INSERT INTO "admin_notifications"`).
		WithArgs(
			models.EventReportSubmitted,
			"Arjun Mehta reported shout-out #7. Reason: inappropriate content",
			actor.ID,
			shout.ID,
			report.ID,
			sqlmock.AnyArg(),
		).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	require.NoError(t, engine.OnReportSubmitted(gdb, shout, report, actor))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOnReportSubmittedWithoutReason(t *testing.T) {
	gdb, mock := newMockDB(t)
	engine := NewEngine()
	shout := &models.ShoutOut{ID: 7, CreatedByID: 1}
	report := &models.Report{ID: 11, ShoutoutID: 7, ReporterID: 2}
	actor := &models.User{ID: 2, FullName: "Arjun Mehta"}

	mock.ExpectQuery(`INSERT INTO "admin_notifications"`).
		WithArgs(
			models.EventReportSubmitted,
			"Arjun Mehta reported shout-out #7.",
			actor.ID,
			shout.ID,
			report.ID,
			sqlmock.AnyArg(),
		).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	require.NoError(t, engine.OnReportSubmitted(gdb, shout, report, actor))
	assert.NoError(t, mock.ExpectationsWereMet())
}
