package models

import (
	"time"

	"github.com/google/uuid"
)

// Project service types.
const (
	ServiceTypeApp = "APP"
	ServiceTypeWeb = "WEB"
	ServiceTypeAI  = "AI"
	ServiceTypeEtc = "ETC"
)

// Project represents a student startup project registered on the platform
type Project struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	OwnerID     uuid.UUID `json:"owner_id" db:"owner_id" gorm:"type:uuid;not null;index"`
	Name        string    `json:"name" db:"name" gorm:"type:text;not null"`
	Description string    `json:"description" db:"description" gorm:"type:text;not null"`
	IdeaName    string    `json:"idea_name,omitempty" db:"idea_name" gorm:"type:text"`
	ServiceType string    `json:"service_type" db:"service_type" gorm:"type:text;not null"` // APP, WEB, AI, ETC
	TargetType  string    `json:"target_type" db:"target_type" gorm:"type:text;not null"`   // B2C, B2B, ETC
	Stage       string    `json:"stage" db:"stage" gorm:"type:text;default:'IDEA'"`         // IDEA, PROTOTYPE, MVP, BETA, LAUNCH
	IsActive    bool      `json:"is_active" db:"is_active" gorm:"default:true"`
	IsPublic    bool      `json:"is_public" db:"is_public" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// SearchableText is the project-side text used for matching: the free-form
// description plus the idea name when present.
func (p Project) SearchableText() string {
	if p.IdeaName == "" {
		return p.Description
	}
	return p.Description + " " + p.IdeaName
}
