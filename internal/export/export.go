// Package export renders moderation report lists as downloadable files.
// Rendering is all-or-nothing: a failure returns an error and no bytes.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/bragboardhq/backend/internal/models"
)

// csvHeader matches the columns moderators expect in spreadsheets
var csvHeader = []string{
	"Report ID",
	"Status",
	"Reporter",
	"Reason",
	"Shout-Out ID",
	"Shout-Out Author",
	"Reported At",
	"Resolved At",
}

// ReportsCSV renders the reports as a CSV document. Timestamps are kept
// in their stored UTC form; exports are records, not display surfaces.
func ReportsCSV(reports []models.Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for i := range reports {
		report := &reports[i]
		reason := ""
		if report.Reason != nil {
			reason = *report.Reason
		}
		resolvedAt := ""
		if report.ResolvedAt != nil {
			resolvedAt = report.ResolvedAt.Format("2006-01-02T15:04:05Z07:00")
		}
		row := []string{
			strconv.FormatUint(uint64(report.ID), 10),
			report.Status,
			report.Reporter.FullName,
			reason,
			strconv.FormatUint(uint64(report.Shoutout.ID), 10),
			report.Shoutout.CreatedBy.FullName,
			report.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			resolvedAt,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReportsPDF renders the reports as a PDF summary document.
func ReportsPDF(reports []models.Report, generatedAt string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "BragBoard Report Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Generated: "+generatedAt, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	if len(reports) == 0 {
		pdf.CellFormat(0, 6, "No reports found for the selected filter.", "", 1, "L", false, 0, "")
	}

	for i := range reports {
		report := &reports[i]

		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 6, fmt.Sprintf("Report #%d - %s", report.ID, report.Status), "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 5, fmt.Sprintf("Reporter: %s | Shout-Out #%d by %s",
			report.Reporter.FullName, report.Shoutout.ID, report.Shoutout.CreatedBy.FullName), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 5, "Reported: "+report.CreatedAt.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
		if report.ResolvedAt != nil {
			pdf.CellFormat(0, 5, "Resolved: "+report.ResolvedAt.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
		}
		if report.Reason != nil {
			pdf.MultiCell(0, 5, "Reason: "+*report.Reason, "", "L", false)
		}
		pdf.MultiCell(0, 5, "Content: "+report.Shoutout.Content, "", "L", false)
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
