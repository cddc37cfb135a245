package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bragboardhq/backend/internal/middleware"
	"github.com/bragboardhq/backend/internal/models"
)

type fakeNotificationRepo struct {
	notifications []models.Notification
	markedRead    []uint
	markedAllFor  []uint
}

func (f *fakeNotificationRepo) GetByUserID(userID uint, unreadOnly bool) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range f.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (f *fakeNotificationRepo) GetNotificationByID(id uint) (*models.Notification, error) {
	for i := range f.notifications {
		if f.notifications[i].ID == id {
			return &f.notifications[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeNotificationRepo) GetUnreadCount(userID uint) (int64, error) {
	var count int64
	for _, n := range f.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkAsRead(notificationID uint) error {
	f.markedRead = append(f.markedRead, notificationID)
	return nil
}

func (f *fakeNotificationRepo) MarkAllAsRead(userID uint) error {
	f.markedAllFor = append(f.markedAllFor, userID)
	return nil
}

func notificationTestContext(t *testing.T, method, target string, user *models.User) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextUserKey, user)
	return c, rec
}

func TestNotificationCount(t *testing.T) {
	repo := &fakeNotificationRepo{notifications: []models.Notification{
		{ID: 1, UserID: 1, ShoutoutID: 7},
		{ID: 2, UserID: 1, ShoutoutID: 8, IsRead: true},
		{ID: 3, UserID: 2, ShoutoutID: 7},
	}}
	h := NewNotificationHandler(repo, time.UTC)

	c, rec := notificationTestContext(t, http.MethodGet, "/notifications/count", &models.User{ID: 1})
	require.NoError(t, h.Count(c))

	var body models.NotificationCountResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(1), body.UnreadCount)
}

func TestNotificationListUnreadOnly(t *testing.T) {
	repo := &fakeNotificationRepo{notifications: []models.Notification{
		{ID: 1, UserID: 1, ShoutoutID: 7},
		{ID: 2, UserID: 1, ShoutoutID: 8, IsRead: true},
	}}
	h := NewNotificationHandler(repo, time.UTC)

	c, rec := notificationTestContext(t, http.MethodGet, "/notifications?unread_only=true", &models.User{ID: 1})
	require.NoError(t, h.List(c))

	var body []models.NotificationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, uint(1), body[0].ID)
}

func TestMarkReadRejectsOtherUsersNotification(t *testing.T) {
	repo := &fakeNotificationRepo{notifications: []models.Notification{
		{ID: 5, UserID: 2, ShoutoutID: 7},
	}}
	h := NewNotificationHandler(repo, time.UTC)

	c, _ := notificationTestContext(t, http.MethodPost, "/notifications/5/read", &models.User{ID: 1})
	c.SetParamNames("id")
	c.SetParamValues("5")

	err := h.MarkRead(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)
	assert.Empty(t, repo.markedRead)
}

func TestMarkReadOwnNotification(t *testing.T) {
	repo := &fakeNotificationRepo{notifications: []models.Notification{
		{ID: 5, UserID: 1, ShoutoutID: 7},
	}}
	h := NewNotificationHandler(repo, time.UTC)

	c, _ := notificationTestContext(t, http.MethodPost, "/notifications/5/read", &models.User{ID: 1})
	c.SetParamNames("id")
	c.SetParamValues("5")

	require.NoError(t, h.MarkRead(c))
	assert.Equal(t, []uint{5}, repo.markedRead)
}

func TestReadAll(t *testing.T) {
	repo := &fakeNotificationRepo{}
	h := NewNotificationHandler(repo, time.UTC)

	c, _ := notificationTestContext(t, http.MethodPost, "/notifications/read-all", &models.User{ID: 1})
	require.NoError(t, h.ReadAll(c))
	assert.Equal(t, []uint{1}, repo.markedAllFor)
}
