package handlers

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bragboardhq/backend/internal/export"
	"github.com/bragboardhq/backend/internal/middleware"
	"github.com/bragboardhq/backend/internal/models"
	"github.com/bragboardhq/backend/internal/repositories"
)

// Admin listing bounds
const (
	metricsTopN          = 5
	leaderboardTopN      = 10
	defaultAuditLimit    = 50
	maxAuditLimit        = 200
	sentPointsMultiplier = 2
)

// AdminHandler handles the moderation and analytics surface; every
// route is behind the admin gate.
type AdminHandler struct {
	statsRepo      repositories.StatsRepository
	reportRepo     repositories.ReportRepository
	adminNotifRepo repositories.AdminNotificationRepository
	userRepo       repositories.UserRepository
	loc            *time.Location
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(
	statsRepo repositories.StatsRepository,
	reportRepo repositories.ReportRepository,
	adminNotifRepo repositories.AdminNotificationRepository,
	userRepo repositories.UserRepository,
	loc *time.Location,
) *AdminHandler {
	return &AdminHandler{
		statsRepo:      statsRepo,
		reportRepo:     reportRepo,
		adminNotifRepo: adminNotifRepo,
		userRepo:       userRepo,
		loc:            loc,
	}
}

// Metrics returns the top contributors and most tagged users
func (h *AdminHandler) Metrics(c echo.Context) error {
	contributors, err := h.statsRepo.TopContributors(metricsTopN)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to compute metrics")
	}
	tagged, err := h.statsRepo.MostTagged(metricsTopN)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to compute metrics")
	}

	users, err := h.usersByID(append(userIDs(contributors), userIDs(tagged)...))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load users for metrics")
	}

	return c.JSON(http.StatusOK, models.AdminMetricsResponse{
		TopContributors: h.userStats(contributors, users),
		MostTagged:      h.userStats(tagged, users),
	})
}

// Leaderboard scores every user by shout-outs sent and received and
// returns the top entries. Sent shout-outs weigh double.
func (h *AdminHandler) Leaderboard(c echo.Context) error {
	sent, err := h.statsRepo.SentCounts()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to compute leaderboard")
	}
	received, err := h.statsRepo.ReceivedCounts()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to compute leaderboard")
	}

	type score struct {
		sent     int64
		received int64
	}
	scores := make(map[uint]*score)
	for _, row := range sent {
		scores[row.UserID] = &score{sent: row.Count}
	}
	for _, row := range received {
		s, ok := scores[row.UserID]
		if !ok {
			s = &score{}
			scores[row.UserID] = s
		}
		s.received = row.Count
	}

	ids := make([]uint, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	users, err := h.usersByID(ids)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load users for leaderboard")
	}

	entries := make([]models.LeaderboardEntry, 0, len(scores))
	for id, s := range scores {
		user, ok := users[id]
		if !ok {
			continue
		}
		entries = append(entries, models.LeaderboardEntry{
			User:              user.Response(h.loc),
			ShoutoutsSent:     s.sent,
			ShoutoutsReceived: s.received,
			Points:            s.sent*sentPointsMultiplier + s.received,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].User.ID < entries[j].User.ID
	})
	if len(entries) > leaderboardTopN {
		entries = entries[:leaderboardTopN]
	}
	return c.JSON(http.StatusOK, entries)
}

// ListReports returns moderation reports, optionally filtered by status
func (h *AdminHandler) ListReports(c echo.Context) error {
	status, err := parseStatusParam(c)
	if err != nil {
		return err
	}

	reports, err := h.reportRepo.ListReports(status)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list reports")
	}

	out := make([]models.ReportResponse, 0, len(reports))
	for i := range reports {
		out = append(out, reports[i].Response(h.loc))
	}
	return c.JSON(http.StatusOK, out)
}

// ResolveReport marks a report resolved. Resolving an already resolved
// report returns it unchanged.
func (h *AdminHandler) ResolveReport(c echo.Context) error {
	admin := middleware.CurrentUser(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	report, err := h.reportRepo.GetReportByID(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Report not found")
	}

	if report.Status == models.ReportStatusResolved {
		return c.JSON(http.StatusOK, report.Response(h.loc))
	}

	if err := h.reportRepo.ResolveReport(report, admin.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to resolve report")
	}
	return c.JSON(http.StatusOK, report.Response(h.loc))
}

// ListAuditFeed returns the moderator audit feed, optionally filtered
// by event type.
func (h *AdminHandler) ListAuditFeed(c echo.Context) error {
	var eventType *string
	if v := c.QueryParam("type"); v != "" {
		switch v {
		case models.EventShoutOutDeleted, models.EventCommentDeleted, models.EventReportSubmitted:
			eventType = &v
		default:
			return echo.NewHTTPError(http.StatusBadRequest, "Unknown event type")
		}
	}

	limit := defaultAuditLimit
	if v := c.QueryParam("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > maxAuditLimit {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be between 1 and 200")
		}
		limit = parsed
	}
	offset := 0
	if v := c.QueryParam("offset"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "offset must not be negative")
		}
		offset = parsed
	}

	notifications, err := h.adminNotifRepo.ListAdminNotifications(eventType, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list audit feed")
	}

	out := make([]models.AdminNotificationResponse, 0, len(notifications))
	for i := range notifications {
		out = append(out, notifications[i].Response(h.loc))
	}
	return c.JSON(http.StatusOK, out)
}

// ExportReports renders the filtered report list as a CSV or PDF
// download. The file is built in full before any byte is sent.
func (h *AdminHandler) ExportReports(c echo.Context) error {
	format := c.QueryParam("format")
	if format != "csv" && format != "pdf" {
		return echo.NewHTTPError(http.StatusBadRequest, "format must be csv or pdf")
	}
	status, err := parseStatusParam(c)
	if err != nil {
		return err
	}

	reports, err := h.reportRepo.ListReports(status)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list reports")
	}

	now := time.Now().UTC()
	var (
		data        []byte
		contentType string
	)
	switch format {
	case "csv":
		data, err = export.ReportsCSV(reports)
		contentType = "text/csv"
	case "pdf":
		data, err = export.ReportsPDF(reports, now.Format("2006-01-02 15:04 UTC"))
		contentType = "application/pdf"
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate export")
	}

	filename := fmt.Sprintf("reports-%s.%s", now.Format("20060102-150405"), format)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK, contentType, data)
}

func parseStatusParam(c echo.Context) (*string, error) {
	v := c.QueryParam("status")
	if v == "" {
		return nil, nil
	}
	if v != models.ReportStatusOpen && v != models.ReportStatusResolved {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "status must be open or resolved")
	}
	return &v, nil
}

func userIDs(rows []repositories.UserCount) []uint {
	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.UserID)
	}
	return ids
}

func (h *AdminHandler) usersByID(ids []uint) (map[uint]*models.User, error) {
	users, err := h.userRepo.GetUsersByIDs(ids)
	if err != nil {
		return nil, err
	}
	out := make(map[uint]*models.User, len(users))
	for i := range users {
		out[users[i].ID] = &users[i]
	}
	return out, nil
}

// userStats joins aggregate rows with their users, keeping the
// aggregate order.
func (h *AdminHandler) userStats(rows []repositories.UserCount, users map[uint]*models.User) []models.UserStat {
	out := make([]models.UserStat, 0, len(rows))
	for _, row := range rows {
		user, ok := users[row.UserID]
		if !ok {
			continue
		}
		out = append(out, models.UserStat{User: user.Response(h.loc), Count: row.Count})
	}
	return out
}
