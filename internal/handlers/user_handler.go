package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/bragboardhq/backend/internal/middleware"
	"github.com/bragboardhq/backend/internal/models"
	"github.com/bragboardhq/backend/internal/repositories"
	"github.com/bragboardhq/backend/internal/uploader"
)

// UserHandler handles profile and user directory requests
type UserHandler struct {
	userRepo repositories.UserRepository
	deptRepo repositories.DepartmentRepository
	uploads  uploader.Uploader
	loc      *time.Location
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, deptRepo repositories.DepartmentRepository, uploads uploader.Uploader, loc *time.Location) *UserHandler {
	return &UserHandler{userRepo: userRepo, deptRepo: deptRepo, uploads: uploads, loc: loc}
}

// Me returns the authenticated user's profile
func (h *UserHandler) Me(c echo.Context) error {
	user := middleware.CurrentUser(c)
	return c.JSON(http.StatusOK, user.Response(h.loc))
}

// ListUsers returns every user; the route is admin-gated
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userRepo.ListAll()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list users")
	}
	return c.JSON(http.StatusOK, userResponses(users, h.loc))
}

// Lookup returns the users the caller may tag: admins see everyone,
// department members see their department, everyone else sees only
// themselves.
func (h *UserHandler) Lookup(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var (
		users []models.User
		err   error
	)
	switch {
	case user.IsAdmin:
		users, err = h.userRepo.ListAll()
	case user.DepartmentID != nil:
		users, err = h.userRepo.ListByDepartment(*user.DepartmentID)
	default:
		users = []models.User{*user}
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to look up users")
	}
	return c.JSON(http.StatusOK, userResponses(users, h.loc))
}

// UpdateMe applies partial profile updates
func (h *UserHandler) UpdateMe(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "Full name must not be empty")
		}
		user.FullName = name
	}
	if req.DepartmentID != nil {
		if _, err := h.deptRepo.GetDepartmentByID(*req.DepartmentID); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Department not found")
		}
		user.DepartmentID = req.DepartmentID
	}
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}

	if err := h.userRepo.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update profile")
	}

	updated, err := h.userRepo.GetUserByID(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load updated profile")
	}
	return c.JSON(http.StatusOK, updated.Response(h.loc))
}

// ChangePassword verifies the current password and stores a new one
func (h *UserHandler) ChangePassword(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var req models.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Current password is incorrect")
	}
	if req.NewPassword == req.CurrentPassword {
		return echo.NewHTTPError(http.StatusBadRequest, "New password must differ from the current one")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to process password")
	}
	user.PasswordHash = string(hash)
	if err := h.userRepo.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to change password")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Password changed successfully"})
}

// UploadAvatar accepts a multipart image, hosts it and stores the URL
func (h *UserHandler) UploadAvatar(c echo.Context) error {
	user := middleware.CurrentUser(c)

	data, _, err := readImageUpload(c, uploader.MaxAvatarSize)
	if err != nil {
		return err
	}

	result, err := h.uploads.Upload(c.Request().Context(), data, "bragboard/avatars")
	if err != nil {
		if errors.Is(err, uploader.ErrNotConfigured) {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "Image upload service is not configured")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to upload image")
	}

	user.AvatarURL = &result.URL
	if err := h.userRepo.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save avatar")
	}

	updated, err := h.userRepo.GetUserByID(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load updated profile")
	}
	return c.JSON(http.StatusOK, updated.Response(h.loc))
}

// readImageUpload pulls the "file" part out of a multipart request and
// enforces the content-type allow list and the size limit.
func readImageUpload(c echo.Context, maxSize int64) ([]byte, string, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, "Missing file upload")
	}
	if fileHeader.Size > maxSize {
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, "File is too large")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if _, ok := uploader.AllowedImageTypes[contentType]; !ok {
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, "Unsupported image type")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, "Failed to read upload")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxSize+1))
	if err != nil {
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, "Failed to read upload")
	}
	if int64(len(data)) > maxSize {
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, "File is too large")
	}
	return data, contentType, nil
}

func userResponses(users []models.User, loc *time.Location) []models.UserResponse {
	out := make([]models.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, users[i].Response(loc))
	}
	return out
}
