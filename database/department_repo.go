package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sejonghub/startup-hub-backend/models"
)

type DepartmentRepo struct {
	db *gorm.DB
}

func NewDepartmentRepo(db *gorm.DB) *DepartmentRepo {
	return &DepartmentRepo{db}
}

// FindAll returns all departments
func (r *DepartmentRepo) FindAll() ([]*models.Department, error) {
	var departments []*models.Department
	err := r.db.Find(&departments).Error
	return departments, err
}

// FindByID returns a department by ID, or nil if no such department exists
func (r *DepartmentRepo) FindByID(id uuid.UUID) (*models.Department, error) {
	var department models.Department
	err := r.db.First(&department, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &department, nil
}

// CountActiveLabs returns the number of active labs directed by professors of
// the given department.
func (r *DepartmentRepo) CountActiveLabs(departmentID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.ResearchLab{}).
		Joins("JOIN professors ON professors.id = research_labs.director_id").
		Where("professors.department_id = ? AND research_labs.is_active = ?", departmentID, true).
		Count(&count).Error
	return count, err
}

// Add inserts a new department into the database
func (r *DepartmentRepo) Add(department *models.Department) error {
	return r.db.Create(department).Error
}
