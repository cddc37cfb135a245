package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/bragboardhq/backend/internal/models"
	"github.com/bragboardhq/backend/internal/repositories"
	"github.com/bragboardhq/backend/pkg/token"
)

// AuthHandler handles registration, login and token refresh
type AuthHandler struct {
	userRepo        repositories.UserRepository
	deptRepo        repositories.DepartmentRepository
	tokens          *token.Manager
	adminInviteCode string
	loc             *time.Location
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, deptRepo repositories.DepartmentRepository, tokens *token.Manager, adminInviteCode string, loc *time.Location) *AuthHandler {
	return &AuthHandler{
		userRepo:        userRepo,
		deptRepo:        deptRepo,
		tokens:          tokens,
		adminInviteCode: adminInviteCode,
		loc:             loc,
	}
}

// Register creates a new user account. The first user ever registered
// becomes an admin; after that admin status requires the invite code.
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := h.userRepo.GetUserByEmail(email); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "Email already registered")
	}

	if req.DepartmentID != nil {
		if _, err := h.deptRepo.GetDepartmentByID(*req.DepartmentID); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Department not found")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to process password")
	}

	user := &models.User{
		Email:        email,
		FullName:     strings.TrimSpace(req.FullName),
		PasswordHash: string(hash),
		DepartmentID: req.DepartmentID,
		IsAdmin:      h.adminInviteCode != "" && req.AdminCode == h.adminInviteCode,
	}
	if err := h.userRepo.CreateUser(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return echo.NewHTTPError(http.StatusConflict, "Email already registered")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create user")
	}

	created, err := h.userRepo.GetUserByID(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load created user")
	}
	return c.JSON(http.StatusCreated, created.Response(h.loc))
}

// Login verifies the credentials and returns an access/refresh pair
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepo.GetUserByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Incorrect email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Incorrect email or password")
	}

	return h.tokenPair(c, user)
}

// Refresh exchanges a valid refresh token for a new token pair
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req models.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	claims, err := h.tokens.Parse(req.RefreshToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired refresh token")
	}
	if claims.TokenType != token.TypeRefresh {
		return echo.NewHTTPError(http.StatusUnauthorized, "Refresh token required")
	}

	// Re-fetch so a deleted user or changed admin flag is reflected
	user, err := h.userRepo.GetUserByID(claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authenticated user no longer exists")
	}

	return h.tokenPair(c, user)
}

func (h *AuthHandler) tokenPair(c echo.Context, user *models.User) error {
	accessToken, err := h.tokens.GenerateAccessToken(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to issue token")
	}
	refreshToken, err := h.tokens.GenerateRefreshToken(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to issue token")
	}
	return c.JSON(http.StatusOK, models.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	})
}
