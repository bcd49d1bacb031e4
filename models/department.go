package models

import (
	"time"

	"github.com/google/uuid"
)

// Department represents a university department that hosts research labs
type Department struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name        string    `json:"name" db:"name" gorm:"type:text;not null"`
	NameEn      string    `json:"name_en,omitempty" db:"name_en" gorm:"type:text"`
	College     string    `json:"college,omitempty" db:"college" gorm:"type:text"`
	Description string    `json:"description,omitempty" db:"description" gorm:"type:text"`
	Building    string    `json:"building,omitempty" db:"building" gorm:"type:text"`
	Phone       string    `json:"phone,omitempty" db:"phone" gorm:"type:text"`
	Email       string    `json:"email,omitempty" db:"email" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
