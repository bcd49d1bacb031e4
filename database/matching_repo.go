package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sejonghub/startup-hub-backend/models"
)

type MatchingRepo struct {
	db *gorm.DB
}

func NewMatchingRepo(db *gorm.DB) *MatchingRepo {
	return &MatchingRepo{db}
}

// ReplaceForProject deletes every matching row for the project and inserts the
// given rows in their place, inside a single transaction. A matching run never
// merges into prior results; re-running fully replaces them.
func (r *MatchingRepo) ReplaceForProject(projectID uuid.UUID, matchings []*models.ProjectLabMatching) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectLabMatching{}).Error; err != nil {
			return err
		}
		if len(matchings) == 0 {
			return nil
		}
		return tx.Create(matchings).Error
	})
}

// FindByProjectID returns all matching rows for a project, highest similarity
// score first.
func (r *MatchingRepo) FindByProjectID(projectID uuid.UUID) ([]*models.ProjectLabMatching, error) {
	var matchings []*models.ProjectLabMatching
	err := r.db.Where("project_id = ?", projectID).
		Order("similarity_score DESC").
		Find(&matchings).Error
	return matchings, err
}

// FindByID returns a matching row by ID, or nil if no such row exists
func (r *MatchingRepo) FindByID(id uuid.UUID) (*models.ProjectLabMatching, error) {
	var matching models.ProjectLabMatching
	err := r.db.First(&matching, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &matching, nil
}

// Update persists changes to an existing matching row
func (r *MatchingRepo) Update(matching *models.ProjectLabMatching) error {
	return r.db.Save(matching).Error
}

// CountByStatus returns how many matching rows currently hold each status.
func (r *MatchingRepo) CountByStatus() (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.Model(&models.ProjectLabMatching{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	distribution := make(map[string]int64, len(rows))
	for _, r := range rows {
		distribution[r.Status] = r.Count
	}
	return distribution, nil
}
