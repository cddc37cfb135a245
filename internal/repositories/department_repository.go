package repositories

import (
	"github.com/bragboardhq/backend/internal/models"
	"gorm.io/gorm"
)

// DepartmentRepository defines the interface for department data operations
type DepartmentRepository interface {
	CreateDepartment(department *models.Department) error
	GetDepartmentByID(id uint) (*models.Department, error)
	GetDepartmentByName(name string) (*models.Department, error)
	ListDepartments() ([]models.Department, error)
	SeedDefaults(names []string) error
}

// PostgresDepartmentRepository implements DepartmentRepository for PostgreSQL
type PostgresDepartmentRepository struct {
	db *gorm.DB
}

// NewPostgresDepartmentRepository creates a new PostgresDepartmentRepository
func NewPostgresDepartmentRepository(db *gorm.DB) *PostgresDepartmentRepository {
	return &PostgresDepartmentRepository{db: db}
}

// CreateDepartment inserts a new department
func (r *PostgresDepartmentRepository) CreateDepartment(department *models.Department) error {
	return r.db.Create(department).Error
}

// GetDepartmentByID retrieves a department by ID
func (r *PostgresDepartmentRepository) GetDepartmentByID(id uint) (*models.Department, error) {
	var department models.Department
	if err := r.db.First(&department, id).Error; err != nil {
		return nil, err
	}
	return &department, nil
}

// GetDepartmentByName retrieves a department by its unique name
func (r *PostgresDepartmentRepository) GetDepartmentByName(name string) (*models.Department, error) {
	var department models.Department
	if err := r.db.Where("name = ?", name).First(&department).Error; err != nil {
		return nil, err
	}
	return &department, nil
}

// ListDepartments retrieves all departments
func (r *PostgresDepartmentRepository) ListDepartments() ([]models.Department, error) {
	var departments []models.Department
	if err := r.db.Order("name").Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

// SeedDefaults inserts the default departments when the table is empty
func (r *PostgresDepartmentRepository) SeedDefaults(names []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Department{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		departments := make([]models.Department, 0, len(names))
		for _, name := range names {
			departments = append(departments, models.Department{Name: name})
		}
		return tx.Create(&departments).Error
	})
}
