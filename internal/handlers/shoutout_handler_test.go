package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bragboardhq/backend/internal/middleware"
	"github.com/bragboardhq/backend/internal/models"
	"github.com/bragboardhq/backend/validators"
)

type fakeShoutOutRepo struct {
	shouts  map[uint]*models.ShoutOut
	deleted []uint
}

func (f *fakeShoutOutRepo) CreateWithRecipients(shout *models.ShoutOut, recipientIDs []uint) error {
	shout.ID = uint(len(f.shouts) + 1)
	f.shouts[shout.ID] = shout
	return nil
}

func (f *fakeShoutOutRepo) GetShoutOutByID(id uint) (*models.ShoutOut, error) {
	shout, ok := f.shouts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return shout, nil
}

func (f *fakeShoutOutRepo) GetDetailedByID(id uint) (*models.ShoutOut, error) {
	return f.GetShoutOutByID(id)
}

func (f *fakeShoutOutRepo) ListShoutOuts(filter models.ShoutOutFilter) ([]models.ShoutOut, error) {
	return nil, nil
}

func (f *fakeShoutOutRepo) DeleteCascade(shout *models.ShoutOut, actor *models.User) error {
	f.deleted = append(f.deleted, shout.ID)
	delete(f.shouts, shout.ID)
	return nil
}

type fakeReportRepo struct {
	openReports map[[2]uint]bool
	submitted   []*models.Report
}

func (f *fakeReportRepo) SubmitReport(shout *models.ShoutOut, report *models.Report, actor *models.User) error {
	report.ID = uint(len(f.submitted) + 1)
	report.Shoutout = *shout
	f.submitted = append(f.submitted, report)
	return nil
}

func (f *fakeReportRepo) HasOpenReport(shoutoutID, reporterID uint) (bool, error) {
	return f.openReports[[2]uint{shoutoutID, reporterID}], nil
}

func (f *fakeReportRepo) GetReportByID(id uint) (*models.Report, error) {
	for _, r := range f.submitted {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeReportRepo) ListReports(status *string) ([]models.Report, error) { return nil, nil }

func (f *fakeReportRepo) ResolveReport(report *models.Report, adminID uint) error { return nil }

func reportTestHandler(shouts *fakeShoutOutRepo, reports *fakeReportRepo) *ShoutOutHandler {
	return NewShoutOutHandler(shouts, nil, nil, nil, reports, nil, nil, time.UTC)
}

func reportTestContext(t *testing.T, body string, user *models.User, shoutID string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = validators.NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/shoutouts/"+shoutID+"/report", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextUserKey, user)
	c.SetParamNames("id")
	c.SetParamValues(shoutID)
	return c, rec
}

func TestReportOwnShoutOutForbidden(t *testing.T) {
	shouts := &fakeShoutOutRepo{shouts: map[uint]*models.ShoutOut{
		7: {ID: 7, CreatedByID: 1, Content: "hello"},
	}}
	h := reportTestHandler(shouts, &fakeReportRepo{openReports: map[[2]uint]bool{}})

	c, _ := reportTestContext(t, `{}`, &models.User{ID: 1}, "7")
	err := h.Report(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)
}

func TestReportDuplicateOpenConflict(t *testing.T) {
	shouts := &fakeShoutOutRepo{shouts: map[uint]*models.ShoutOut{
		7: {ID: 7, CreatedByID: 1, Content: "hello"},
	}}
	reports := &fakeReportRepo{openReports: map[[2]uint]bool{{7, 2}: true}}
	h := reportTestHandler(shouts, reports)

	c, _ := reportTestContext(t, `{}`, &models.User{ID: 2}, "7")
	err := h.Report(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
}

func TestReportShortReasonRejected(t *testing.T) {
	shouts := &fakeShoutOutRepo{shouts: map[uint]*models.ShoutOut{
		7: {ID: 7, CreatedByID: 1, Content: "hello"},
	}}
	h := reportTestHandler(shouts, &fakeReportRepo{openReports: map[[2]uint]bool{}})

	c, _ := reportTestContext(t, `{"reason":"bad"}`, &models.User{ID: 2}, "7")
	err := h.Report(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestReportWhitespaceReasonTreatedAsAbsent(t *testing.T) {
	shouts := &fakeShoutOutRepo{shouts: map[uint]*models.ShoutOut{
		7: {ID: 7, CreatedByID: 1, Content: "hello"},
	}}
	reports := &fakeReportRepo{openReports: map[[2]uint]bool{}}
	h := reportTestHandler(shouts, reports)

	c, rec := reportTestContext(t, `{"reason":"   "}`, &models.User{ID: 2}, "7")
	require.NoError(t, h.Report(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, reports.submitted, 1)
	assert.Nil(t, reports.submitted[0].Reason)
}

func TestReportWithReasonCreated(t *testing.T) {
	shouts := &fakeShoutOutRepo{shouts: map[uint]*models.ShoutOut{
		7: {ID: 7, CreatedByID: 1, Content: "hello"},
	}}
	reports := &fakeReportRepo{openReports: map[[2]uint]bool{}}
	h := reportTestHandler(shouts, reports)

	c, rec := reportTestContext(t, `{"reason":"  inappropriate content  "}`, &models.User{ID: 2}, "7")
	require.NoError(t, h.Report(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	require.Len(t, reports.submitted, 1)
	require.NotNil(t, reports.submitted[0].Reason)
	assert.Equal(t, "inappropriate content", *reports.submitted[0].Reason)

	var body models.ReportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, uint(7), body.Shoutout.ID)
}

func TestReportMissingShoutOut(t *testing.T) {
	shouts := &fakeShoutOutRepo{shouts: map[uint]*models.ShoutOut{}}
	h := reportTestHandler(shouts, &fakeReportRepo{openReports: map[[2]uint]bool{}})

	c, _ := reportTestContext(t, `{}`, &models.User{ID: 2}, "99")
	err := h.Report(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestDeleteShoutOutPermissions(t *testing.T) {
	tests := []struct {
		name    string
		actor   *models.User
		wantErr int
	}{
		{"author may delete", &models.User{ID: 1}, 0},
		{"admin may delete", &models.User{ID: 9, IsAdmin: true}, 0},
		{"stranger may not", &models.User{ID: 2}, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shouts := &fakeShoutOutRepo{shouts: map[uint]*models.ShoutOut{
				7: {ID: 7, CreatedByID: 1, Content: "hello"},
			}}
			h := reportTestHandler(shouts, &fakeReportRepo{openReports: map[[2]uint]bool{}})

			e := echo.New()
			req := httptest.NewRequest(http.MethodDelete, "/shoutouts/7", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.Set(middleware.ContextUserKey, tt.actor)
			c.SetParamNames("id")
			c.SetParamValues("7")

			err := h.Delete(c)
			if tt.wantErr == 0 {
				require.NoError(t, err)
				assert.Equal(t, []uint{7}, shouts.deleted)
				return
			}
			require.Error(t, err)
			httpErr, ok := err.(*echo.HTTPError)
			require.True(t, ok)
			assert.Equal(t, tt.wantErr, httpErr.Code)
			assert.Empty(t, shouts.deleted)
		})
	}
}

func TestParseFeedFilter(t *testing.T) {
	newCtx := func(query string) echo.Context {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/shoutouts?"+query, nil)
		return e.NewContext(req, httptest.NewRecorder())
	}

	t.Run("defaults", func(t *testing.T) {
		filter, err := parseFeedFilter(newCtx(""))
		require.NoError(t, err)
		assert.Equal(t, defaultFeedLimit, filter.Limit)
		assert.Equal(t, 0, filter.Offset)
	})

	t.Run("limit above maximum rejected", func(t *testing.T) {
		_, err := parseFeedFilter(newCtx("limit=101"))
		require.Error(t, err)
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})

	t.Run("negative offset rejected", func(t *testing.T) {
		_, err := parseFeedFilter(newCtx("offset=-1"))
		require.Error(t, err)
	})

	t.Run("date bounds parsed as UTC", func(t *testing.T) {
		filter, err := parseFeedFilter(newCtx("start_date=2024-01-01&end_date=2024-02-01T12:00:00Z"))
		require.NoError(t, err)
		require.NotNil(t, filter.StartDate)
		require.NotNil(t, filter.EndDate)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *filter.StartDate)
		assert.Equal(t, time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC), *filter.EndDate)
	})

	t.Run("all id filters", func(t *testing.T) {
		filter, err := parseFeedFilter(newCtx("department_id=2&sender_id=3&recipient_id=4&has_attachments=true"))
		require.NoError(t, err)
		require.NotNil(t, filter.DepartmentID)
		assert.Equal(t, uint(2), *filter.DepartmentID)
		require.NotNil(t, filter.SenderID)
		assert.Equal(t, uint(3), *filter.SenderID)
		require.NotNil(t, filter.RecipientID)
		assert.Equal(t, uint(4), *filter.RecipientID)
		require.NotNil(t, filter.HasAttachments)
		assert.True(t, *filter.HasAttachments)
	})
}
