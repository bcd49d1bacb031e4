package models

import (
	"time"

	"github.com/google/uuid"
)

// ResearchLab represents a faculty research lab available as a matching
// candidate. ResearchAreas and TechStack hold JSON-encoded string lists, but
// the data pipeline has historically written raw comma-separated text into
// both, so readers must tolerate either form.
type ResearchLab struct {
	ID         uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	DirectorID uuid.UUID `json:"director_id" db:"director_id" gorm:"type:uuid;not null;index"`
	Name       string    `json:"name" db:"name" gorm:"type:text;not null"`
	NameEn     string    `json:"name_en,omitempty" db:"name_en" gorm:"type:text"`
	Location   string    `json:"location,omitempty" db:"location" gorm:"type:text"`
	Phone      string    `json:"phone,omitempty" db:"phone" gorm:"type:text"`
	Email      string    `json:"email,omitempty" db:"email" gorm:"type:text"`
	Website    string    `json:"website,omitempty" db:"website" gorm:"type:text"`

	ResearchAreas string `json:"research_areas,omitempty" db:"research_areas" gorm:"type:text"`
	Keywords      string `json:"keywords,omitempty" db:"keywords" gorm:"type:text"`
	Description   string `json:"description,omitempty" db:"description" gorm:"type:text"`

	TechStack            string `json:"tech_stack,omitempty" db:"tech_stack" gorm:"type:text"`
	CollaborationHistory string `json:"collaboration_history,omitempty" db:"collaboration_history" gorm:"type:text"`
	RecentProjects       string `json:"recent_projects,omitempty" db:"recent_projects" gorm:"type:text"`

	IsActive  bool      `json:"is_active" db:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	Director Professor `json:"director,omitempty" gorm:"foreignKey:DirectorID;references:ID"`
}
