package models

import (
	"time"

	"github.com/google/uuid"
)

// Professor represents a faculty member who may direct a research lab
type Professor struct {
	ID             uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	DepartmentID   uuid.UUID `json:"department_id" db:"department_id" gorm:"type:uuid;not null;index"`
	Name           string    `json:"name" db:"name" gorm:"type:text;not null"`
	NameEn         string    `json:"name_en,omitempty" db:"name_en" gorm:"type:text"`
	Position       string    `json:"position,omitempty" db:"position" gorm:"type:text"` // 교수, 부교수, 조교수, 석좌교수
	Email          string    `json:"email,omitempty" db:"email" gorm:"type:text"`
	Phone          string    `json:"phone,omitempty" db:"phone" gorm:"type:text"`
	OfficeLocation string    `json:"office_location,omitempty" db:"office_location" gorm:"type:text"`
	ResearchFields string    `json:"research_fields,omitempty" db:"research_fields" gorm:"type:text"`
	IsActive       bool      `json:"is_active" db:"is_active" gorm:"default:true"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`

	Department Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID;references:ID"`
}
