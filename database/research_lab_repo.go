package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sejonghub/startup-hub-backend/models"
)

type ResearchLabRepo struct {
	db *gorm.DB
}

func NewResearchLabRepo(db *gorm.DB) *ResearchLabRepo {
	return &ResearchLabRepo{db}
}

// LabSearchFilter narrows a lab listing. Zero values mean "no filter".
type LabSearchFilter struct {
	Department   string
	ResearchArea string
	Keyword      string
	Limit        int
}

// FindActive returns every lab with is_active = true. This is the full
// matching candidate pool; matching does no pre-filtering beyond activity.
func (r *ResearchLabRepo) FindActive() ([]*models.ResearchLab, error) {
	var labs []*models.ResearchLab
	err := r.db.Where("is_active = ?", true).Find(&labs).Error
	return labs, err
}

// FindByID returns a lab by its ID regardless of activity, or nil if no such
// lab exists. Matching history still references labs that were deactivated
// after the run.
func (r *ResearchLabRepo) FindByID(id uuid.UUID) (*models.ResearchLab, error) {
	var lab models.ResearchLab
	err := r.db.First(&lab, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lab, nil
}

// FindActiveByID returns an active lab by its ID, or nil if no active lab has
// that ID.
func (r *ResearchLabRepo) FindActiveByID(id uuid.UUID) (*models.ResearchLab, error) {
	var lab models.ResearchLab
	err := r.db.Where("is_active = ?", true).First(&lab, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lab, nil
}

// Search returns active labs matching the given filter, for the lab directory
// listing. Department filtering joins through the director's department.
func (r *ResearchLabRepo) Search(filter LabSearchFilter) ([]*models.ResearchLab, error) {
	query := r.db.Model(&models.ResearchLab{}).Where("research_labs.is_active = ?", true)

	if filter.Department != "" {
		query = query.
			Joins("JOIN professors ON professors.id = research_labs.director_id").
			Joins("JOIN departments ON departments.id = professors.department_id").
			Where("departments.name LIKE ?", "%"+filter.Department+"%")
	}

	if filter.ResearchArea != "" {
		pattern := "%" + filter.ResearchArea + "%"
		query = query.Where("research_labs.research_areas LIKE ? OR research_labs.keywords LIKE ?", pattern, pattern)
	}

	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		query = query.Where(
			"research_labs.name LIKE ? OR research_labs.description LIKE ? OR research_labs.keywords LIKE ?",
			pattern, pattern, pattern,
		)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	var labs []*models.ResearchLab
	err := query.Limit(limit).Find(&labs).Error
	return labs, err
}

// Add inserts a new research lab into the database
func (r *ResearchLabRepo) Add(lab *models.ResearchLab) error {
	return r.db.Create(lab).Error
}

// Update updates an existing research lab in the database
func (r *ResearchLabRepo) Update(lab *models.ResearchLab) error {
	return r.db.Save(lab).Error
}
