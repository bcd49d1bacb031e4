package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sejonghub/startup-hub-backend/models"
)

type ProfessorRepo struct {
	db *gorm.DB
}

func NewProfessorRepo(db *gorm.DB) *ProfessorRepo {
	return &ProfessorRepo{db}
}

// FindByID returns a professor by ID, or nil if no such professor exists
func (r *ProfessorRepo) FindByID(id uuid.UUID) (*models.Professor, error) {
	var professor models.Professor
	err := r.db.First(&professor, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &professor, nil
}

// Add inserts a new professor into the database
func (r *ProfessorRepo) Add(professor *models.Professor) error {
	return r.db.Create(professor).Error
}
