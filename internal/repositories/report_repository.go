package repositories

import (
	"time"

	"github.com/bragboardhq/backend/internal/activity"
	"github.com/bragboardhq/backend/internal/models"
	"gorm.io/gorm"
)

// reportPreloads load the reporter, resolver and shout-out summary
var reportPreloads = []string{
	"Shoutout",
	"Shoutout.CreatedBy",
	"Reporter",
	"ResolvedBy",
}

// ReportRepository defines the interface for report data operations
type ReportRepository interface {
	SubmitReport(shout *models.ShoutOut, report *models.Report, actor *models.User) error
	HasOpenReport(shoutoutID, reporterID uint) (bool, error)
	GetReportByID(id uint) (*models.Report, error)
	ListReports(status *string) ([]models.Report, error)
	ResolveReport(report *models.Report, adminID uint) error
}

// PostgresReportRepository implements ReportRepository for PostgreSQL
type PostgresReportRepository struct {
	db     *gorm.DB
	engine *activity.Engine
}

// NewPostgresReportRepository creates a new PostgresReportRepository
func NewPostgresReportRepository(db *gorm.DB, engine *activity.Engine) *PostgresReportRepository {
	return &PostgresReportRepository{db: db, engine: engine}
}

// SubmitReport inserts the report and its moderator audit row in one
// transaction, then reloads the associations for serialization.
func (r *PostgresReportRepository) SubmitReport(shout *models.ShoutOut, report *models.Report, actor *models.User) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(report).Error; err != nil {
			return err
		}
		return r.engine.OnReportSubmitted(tx, shout, report, actor)
	})
	if err != nil {
		return err
	}
	loaded, err := r.GetReportByID(report.ID)
	if err != nil {
		return err
	}
	*report = *loaded
	return nil
}

// HasOpenReport reports whether the reporter already has an open report
// against the shout-out
func (r *PostgresReportRepository) HasOpenReport(shoutoutID, reporterID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Report{}).
		Where("shoutout_id = ? AND reporter_id = ? AND status = ?", shoutoutID, reporterID, models.ReportStatusOpen).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetReportByID retrieves a report with full detail
func (r *PostgresReportRepository) GetReportByID(id uint) (*models.Report, error) {
	var report models.Report
	q := r.db
	for _, preload := range reportPreloads {
		q = q.Preload(preload)
	}
	if err := q.First(&report, id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// ListReports retrieves reports newest first, optionally filtered by status
func (r *PostgresReportRepository) ListReports(status *string) ([]models.Report, error) {
	q := r.db.Model(&models.Report{})
	for _, preload := range reportPreloads {
		q = q.Preload(preload)
	}
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var reports []models.Report
	if err := q.Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// ResolveReport marks the report resolved by the given admin
func (r *PostgresReportRepository) ResolveReport(report *models.Report, adminID uint) error {
	now := time.Now().UTC()
	err := r.db.Model(report).Updates(map[string]interface{}{
		"status":         models.ReportStatusResolved,
		"resolved_at":    now,
		"resolved_by_id": adminID,
	}).Error
	if err != nil {
		return err
	}
	loaded, err := r.GetReportByID(report.ID)
	if err != nil {
		return err
	}
	*report = *loaded
	return nil
}
