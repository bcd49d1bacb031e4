package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Matching status lifecycle: SUGGESTED -> CONTACTED -> {INTERESTED, DECLINED},
// with COLLABORATION as a further manual state. Transitions are driven only by
// explicit status-update requests.
const (
	MatchingStatusSuggested     = "SUGGESTED"
	MatchingStatusContacted     = "CONTACTED"
	MatchingStatusInterested    = "INTERESTED"
	MatchingStatusDeclined      = "DECLINED"
	MatchingStatusCollaboration = "COLLABORATION"
)

// ValidMatchingStatuses lists every status accepted by a status update.
var ValidMatchingStatuses = []string{
	MatchingStatusSuggested,
	MatchingStatusContacted,
	MatchingStatusInterested,
	MatchingStatusDeclined,
	MatchingStatusCollaboration,
}

// IsValidMatchingStatus reports whether status is one of the fixed enumeration.
func IsValidMatchingStatus(status string) bool {
	for _, s := range ValidMatchingStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// ProjectLabMatching is one persisted project-lab pairing produced by a
// matching run. Rows for a project are fully replaced on every re-run; they
// are never merged incrementally.
type ProjectLabMatching struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ProjectID uuid.UUID `json:"project_id" db:"project_id" gorm:"type:uuid;not null;index:idx_matching_project_id"`
	LabID     uuid.UUID `json:"lab_id" db:"lab_id" gorm:"type:uuid;not null"`

	SimilarityScore float64        `json:"similarity_score" db:"similarity_score"` // 0.0 ~ 1.0
	MatchingReason  string         `json:"matching_reason,omitempty" db:"matching_reason" gorm:"type:text"`
	MatchingFactors datatypes.JSON `json:"matching_factors,omitempty" db:"matching_factors"`

	Status      string     `json:"status" db:"status" gorm:"type:text;default:'SUGGESTED'"`
	ContactedAt *time.Time `json:"contacted_at,omitempty" db:"contacted_at"`
	ResponseAt  *time.Time `json:"response_at,omitempty" db:"response_at"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Project Project     `json:"project,omitempty" gorm:"foreignKey:ProjectID;references:ID"`
	Lab     ResearchLab `json:"lab,omitempty" gorm:"foreignKey:LabID;references:ID"`
}
