package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/bragboardhq/backend/internal/middleware"
	"github.com/bragboardhq/backend/internal/models"
	"github.com/bragboardhq/backend/internal/repositories"
	"github.com/bragboardhq/backend/internal/uploader"
)

// Feed pagination bounds
const (
	defaultFeedLimit = 50
	maxFeedLimit     = 100
)

// ShoutOutHandler handles the shout-out feed and everything hanging off
// a single shout-out: reactions, comments, attachments and reports.
type ShoutOutHandler struct {
	shoutRepo      repositories.ShoutOutRepository
	reactionRepo   repositories.ReactionRepository
	commentRepo    repositories.CommentRepository
	attachmentRepo repositories.AttachmentRepository
	reportRepo     repositories.ReportRepository
	userRepo       repositories.UserRepository
	uploads        uploader.Uploader
	loc            *time.Location
}

// NewShoutOutHandler creates a new ShoutOutHandler
func NewShoutOutHandler(
	shoutRepo repositories.ShoutOutRepository,
	reactionRepo repositories.ReactionRepository,
	commentRepo repositories.CommentRepository,
	attachmentRepo repositories.AttachmentRepository,
	reportRepo repositories.ReportRepository,
	userRepo repositories.UserRepository,
	uploads uploader.Uploader,
	loc *time.Location,
) *ShoutOutHandler {
	return &ShoutOutHandler{
		shoutRepo:      shoutRepo,
		reactionRepo:   reactionRepo,
		commentRepo:    commentRepo,
		attachmentRepo: attachmentRepo,
		reportRepo:     reportRepo,
		userRepo:       userRepo,
		uploads:        uploads,
		loc:            loc,
	}
}

// Create posts a new shout-out tagging one or more coworkers
func (h *ShoutOutHandler) Create(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var req models.CreateShoutOutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Content must not be empty")
	}

	recipients, err := h.userRepo.GetUsersByIDs(req.RecipientIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to look up recipients")
	}
	found := make(map[uint]struct{}, len(recipients))
	for i := range recipients {
		found[recipients[i].ID] = struct{}{}
	}
	for _, rid := range req.RecipientIDs {
		if _, ok := found[rid]; !ok {
			return echo.NewHTTPError(http.StatusBadRequest, "One or more recipients do not exist")
		}
	}

	departmentID := req.DepartmentID
	if departmentID == nil {
		departmentID = user.DepartmentID
	}

	shout := &models.ShoutOut{
		Content:      content,
		CreatedByID:  user.ID,
		DepartmentID: departmentID,
	}
	if err := h.shoutRepo.CreateWithRecipients(shout, req.RecipientIDs); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create shout-out")
	}

	detailed, err := h.shoutRepo.GetDetailedByID(shout.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load created shout-out")
	}
	return c.JSON(http.StatusCreated, detailed.Response(h.loc))
}

// List returns the shout-out feed, newest first, with optional filters
func (h *ShoutOutHandler) List(c echo.Context) error {
	filter, err := parseFeedFilter(c)
	if err != nil {
		return err
	}

	shouts, err := h.shoutRepo.ListShoutOuts(filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list shout-outs")
	}

	out := make([]models.ShoutOutResponse, 0, len(shouts))
	for i := range shouts {
		out = append(out, shouts[i].Response(h.loc))
	}
	return c.JSON(http.StatusOK, out)
}

// React toggles the caller's reaction on a shout-out
func (h *ShoutOutHandler) React(c echo.Context) error {
	user := middleware.CurrentUser(c)

	shout, err := h.findShoutOut(c)
	if err != nil {
		return err
	}

	var req models.ReactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	reaction, removed, err := h.reactionRepo.SetReaction(shout, user.ID, req.Kind)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to apply reaction")
	}
	if removed {
		return c.JSON(http.StatusOK, models.ReactionRemovedResponse{
			Removed:    true,
			ShoutoutID: shout.ID,
			Kind:       req.Kind,
		})
	}
	return c.JSON(http.StatusOK, reaction.Response(h.loc))
}

// GetComments returns a shout-out's comments in chronological order
func (h *ShoutOutHandler) GetComments(c echo.Context) error {
	shout, err := h.findShoutOut(c)
	if err != nil {
		return err
	}

	comments, err := h.commentRepo.GetCommentsByShoutOutID(shout.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list comments")
	}

	out := make([]models.CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, comments[i].Response(h.loc))
	}
	return c.JSON(http.StatusOK, out)
}

// Comment adds a comment, optionally as a reply to another comment on
// the same shout-out.
func (h *ShoutOutHandler) Comment(c echo.Context) error {
	user := middleware.CurrentUser(c)

	shout, err := h.findShoutOut(c)
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Content must not be empty")
	}

	if req.ParentID != nil {
		parent, err := h.commentRepo.GetCommentByID(*req.ParentID)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "Parent comment not found")
		}
		if parent.ShoutoutID != shout.ID {
			return echo.NewHTTPError(http.StatusBadRequest, "Parent comment belongs to a different shout-out")
		}
	}

	comment := &models.Comment{
		ShoutoutID: shout.ID,
		UserID:     user.ID,
		Content:    content,
		ParentID:   req.ParentID,
	}
	if err := h.commentRepo.CreateComment(shout, comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create comment")
	}
	return c.JSON(http.StatusCreated, comment.Response(h.loc))
}

// Delete removes a shout-out and all its dependent rows. Allowed for
// the author and for admins; authors deleting their own post leave a
// moderator audit trail.
func (h *ShoutOutHandler) Delete(c echo.Context) error {
	user := middleware.CurrentUser(c)

	shout, err := h.findShoutOut(c)
	if err != nil {
		return err
	}
	if !user.IsAdmin && shout.CreatedByID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "Not allowed to delete this shout-out")
	}

	if err := h.shoutRepo.DeleteCascade(shout, user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete shout-out")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Shout-out deleted"})
}

// DeleteComment removes a comment and its reply subtree
func (h *ShoutOutHandler) DeleteComment(c echo.Context) error {
	user := middleware.CurrentUser(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	comment, err := h.commentRepo.GetCommentByID(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
	}
	if !user.IsAdmin && comment.UserID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "Not allowed to delete this comment")
	}

	if err := h.commentRepo.DeleteComment(comment, user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete comment")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Comment deleted"})
}

// UploadImage attaches a hosted image to a shout-out
func (h *ShoutOutHandler) UploadImage(c echo.Context) error {
	shout, err := h.findShoutOut(c)
	if err != nil {
		return err
	}

	data, contentType, err := readImageUpload(c, uploader.MaxImageSize)
	if err != nil {
		return err
	}
	fileHeader, _ := c.FormFile("file")

	result, err := h.uploads.Upload(c.Request().Context(), data, "bragboard/shoutouts")
	if err != nil {
		if errors.Is(err, uploader.ErrNotConfigured) {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "Image upload service is not configured")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to upload image")
	}

	attachment := &models.Attachment{
		ShoutoutID: shout.ID,
		FileURL:    result.URL,
		FileName:   fileHeader.Filename,
		FileType:   contentType,
	}
	if err := h.attachmentRepo.CreateAttachment(attachment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save attachment")
	}
	return c.JSON(http.StatusCreated, attachment.Response(h.loc))
}

// Report flags a shout-out for moderation
func (h *ShoutOutHandler) Report(c echo.Context) error {
	user := middleware.CurrentUser(c)

	shout, err := h.findShoutOut(c)
	if err != nil {
		return err
	}
	if shout.CreatedByID == user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "You cannot report your own shout-out")
	}

	open, err := h.reportRepo.HasOpenReport(shout.ID, user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to check existing reports")
	}
	if open {
		return echo.NewHTTPError(http.StatusConflict, "You already have an open report for this shout-out")
	}

	var req models.CreateReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// Whitespace-only reasons count as absent
	var reason *string
	if req.Reason != nil {
		trimmed := strings.TrimSpace(*req.Reason)
		if trimmed != "" {
			if len([]rune(trimmed)) < 5 {
				return echo.NewHTTPError(http.StatusBadRequest, "Reason must be at least 5 characters")
			}
			reason = &trimmed
		}
	}

	report := &models.Report{
		ShoutoutID: shout.ID,
		ReporterID: user.ID,
		Reason:     reason,
		Status:     models.ReportStatusOpen,
	}
	if err := h.reportRepo.SubmitReport(shout, report, user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to submit report")
	}
	return c.JSON(http.StatusCreated, report.Response(h.loc))
}

// findShoutOut resolves the :id path parameter to a shout-out or a 404
func (h *ShoutOutHandler) findShoutOut(c echo.Context) (*models.ShoutOut, error) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	shout, err := h.shoutRepo.GetShoutOutByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "Shout-out not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Failed to load shout-out")
	}
	return shout, nil
}

func parseIDParam(c echo.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid id")
	}
	return uint(id), nil
}

// parseFeedFilter reads the optional feed query parameters. Date bounds
// are parsed as RFC 3339 or plain dates and compared in UTC.
func parseFeedFilter(c echo.Context) (models.ShoutOutFilter, error) {
	filter := models.ShoutOutFilter{Limit: defaultFeedLimit}

	if v := c.QueryParam("department_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "Invalid department_id")
		}
		depID := uint(id)
		filter.DepartmentID = &depID
	}
	if v := c.QueryParam("sender_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "Invalid sender_id")
		}
		senderID := uint(id)
		filter.SenderID = &senderID
	}
	if v := c.QueryParam("recipient_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "Invalid recipient_id")
		}
		recipientID := uint(id)
		filter.RecipientID = &recipientID
	}
	if v := c.QueryParam("start_date"); v != "" {
		t, err := parseDateParam(v)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "Invalid start_date")
		}
		filter.StartDate = &t
	}
	if v := c.QueryParam("end_date"); v != "" {
		t, err := parseDateParam(v)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "Invalid end_date")
		}
		filter.EndDate = &t
	}
	if v := c.QueryParam("has_attachments"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "Invalid has_attachments")
		}
		filter.HasAttachments = &b
	}
	if v := c.QueryParam("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 || limit > maxFeedLimit {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "limit must be between 1 and 100")
		}
		filter.Limit = limit
	}
	if v := c.QueryParam("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "offset must not be negative")
		}
		filter.Offset = offset
	}
	return filter, nil
}

func parseDateParam(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
