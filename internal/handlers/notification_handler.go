package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bragboardhq/backend/internal/middleware"
	"github.com/bragboardhq/backend/internal/models"
	"github.com/bragboardhq/backend/internal/repositories"
)

// NotificationHandler handles the per-user notification feed
type NotificationHandler struct {
	notifRepo repositories.NotificationRepository
	loc       *time.Location
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifRepo repositories.NotificationRepository, loc *time.Location) *NotificationHandler {
	return &NotificationHandler{notifRepo: notifRepo, loc: loc}
}

// List returns the caller's notifications, newest first. With
// ?unread_only=true only unread ones are returned.
func (h *NotificationHandler) List(c echo.Context) error {
	user := middleware.CurrentUser(c)
	unreadOnly := c.QueryParam("unread_only") == "true"

	notifications, err := h.notifRepo.GetByUserID(user.ID, unreadOnly)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list notifications")
	}

	out := make([]models.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		out = append(out, notifications[i].Response(h.loc))
	}
	return c.JSON(http.StatusOK, out)
}

// Count returns the caller's unread notification count
func (h *NotificationHandler) Count(c echo.Context) error {
	user := middleware.CurrentUser(c)

	count, err := h.notifRepo.GetUnreadCount(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to count notifications")
	}
	return c.JSON(http.StatusOK, models.NotificationCountResponse{UnreadCount: count})
}

// MarkRead marks one of the caller's notifications as read. Marking an
// already-read notification is a no-op.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	user := middleware.CurrentUser(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	notification, err := h.notifRepo.GetNotificationByID(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Notification not found")
	}
	if notification.UserID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "Not allowed to modify this notification")
	}

	if err := h.notifRepo.MarkAsRead(notification.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to mark notification read")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Notification marked as read"})
}

// ReadAll marks every unread notification of the caller as read
func (h *NotificationHandler) ReadAll(c echo.Context) error {
	user := middleware.CurrentUser(c)

	if err := h.notifRepo.MarkAllAsRead(user.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to mark notifications read")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "All notifications marked as read"})
}
