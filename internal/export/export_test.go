package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bragboardhq/backend/internal/models"
)

func sampleReports() []models.Report {
	reason := "inappropriate content"
	resolvedAt := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)
	return []models.Report{
		{
			ID:         1,
			Status:     models.ReportStatusOpen,
			Reason:     &reason,
			CreatedAt:  time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
			Reporter:   models.User{ID: 2, FullName: "Arjun Mehta"},
			ShoutoutID: 7,
			Shoutout: models.ShoutOut{
				ID:        7,
				Content:   "Great work on the launch",
				CreatedBy: models.User{ID: 1, FullName: "Priya Sharma"},
			},
		},
		{
			ID:         2,
			Status:     models.ReportStatusResolved,
			CreatedAt:  time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC),
			ResolvedAt: &resolvedAt,
			Reporter:   models.User{ID: 3, FullName: "Lena Fischer"},
			ShoutoutID: 8,
			Shoutout: models.ShoutOut{
				ID:        8,
				Content:   "Thanks for the code review",
				CreatedBy: models.User{ID: 1, FullName: "Priya Sharma"},
			},
		},
	}
}

func TestReportsCSV(t *testing.T) {
	data, err := ReportsCSV(sampleReports())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, csvHeader, records[0])

	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "open", records[1][1])
	assert.Equal(t, "Arjun Mehta", records[1][2])
	assert.Equal(t, "inappropriate content", records[1][3])
	assert.Equal(t, "7", records[1][4])
	assert.Equal(t, "Priya Sharma", records[1][5])
	assert.Equal(t, "2024-03-01T10:30:00Z", records[1][6])
	assert.Equal(t, "", records[1][7])

	assert.Equal(t, "resolved", records[2][1])
	assert.Equal(t, "", records[2][3])
	assert.Equal(t, "2024-03-02T09:00:00Z", records[2][7])
}

func TestReportsCSVEmpty(t *testing.T) {
	data, err := ReportsCSV(nil)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, csvHeader, records[0])
}

func TestReportsPDF(t *testing.T) {
	data, err := ReportsPDF(sampleReports(), "2024-03-03 12:00 UTC")
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "output must be a PDF document")
}

func TestReportsPDFEmpty(t *testing.T) {
	data, err := ReportsPDF(nil, "2024-03-03 12:00 UTC")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
