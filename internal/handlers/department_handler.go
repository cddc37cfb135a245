package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/bragboardhq/backend/internal/middleware"
	"github.com/bragboardhq/backend/internal/models"
	"github.com/bragboardhq/backend/internal/repositories"
)

// DepartmentHandler handles department directory requests
type DepartmentHandler struct {
	deptRepo repositories.DepartmentRepository
	loc      *time.Location
}

// NewDepartmentHandler creates a new DepartmentHandler
func NewDepartmentHandler(deptRepo repositories.DepartmentRepository, loc *time.Location) *DepartmentHandler {
	return &DepartmentHandler{deptRepo: deptRepo, loc: loc}
}

// ListPublic returns every department without authentication, for the
// registration form.
func (h *DepartmentHandler) ListPublic(c echo.Context) error {
	departments, err := h.deptRepo.ListDepartments()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list departments")
	}
	return c.JSON(http.StatusOK, departmentResponses(departments, h.loc))
}

// List returns the departments visible to the caller: admins see all,
// others only their own.
func (h *DepartmentHandler) List(c echo.Context) error {
	user := middleware.CurrentUser(c)

	if user.IsAdmin {
		departments, err := h.deptRepo.ListDepartments()
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list departments")
		}
		return c.JSON(http.StatusOK, departmentResponses(departments, h.loc))
	}

	if user.DepartmentID == nil {
		return c.JSON(http.StatusOK, []models.DepartmentResponse{})
	}
	department, err := h.deptRepo.GetDepartmentByID(*user.DepartmentID)
	if err != nil {
		return c.JSON(http.StatusOK, []models.DepartmentResponse{})
	}
	return c.JSON(http.StatusOK, []models.DepartmentResponse{department.Response(h.loc)})
}

// Create adds a new department; the route is admin-gated
func (h *DepartmentHandler) Create(c echo.Context) error {
	var req models.CreateDepartmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Department name must not be empty")
	}
	if _, err := h.deptRepo.GetDepartmentByName(name); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "Department already exists")
	}

	department := &models.Department{Name: name}
	if err := h.deptRepo.CreateDepartment(department); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return echo.NewHTTPError(http.StatusConflict, "Department already exists")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create department")
	}
	return c.JSON(http.StatusCreated, department.Response(h.loc))
}

func departmentResponses(departments []models.Department, loc *time.Location) []models.DepartmentResponse {
	out := make([]models.DepartmentResponse, 0, len(departments))
	for i := range departments {
		out = append(out, departments[i].Response(loc))
	}
	return out
}
