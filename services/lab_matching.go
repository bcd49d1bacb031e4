package services

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"github.com/sejonghub/startup-hub-backend/database"
	"github.com/sejonghub/startup-hub-backend/errs"
	"github.com/sejonghub/startup-hub-backend/models"
)

// MatchCandidate is one scored project-lab pairing produced by a matching
// run. Candidates are ephemeral: they are either returned to the caller or
// turned into persisted matching rows, never both kept in sync.
type MatchCandidate struct {
	LabID           uuid.UUID      `json:"lab_id"`
	LabName         string         `json:"lab_name"`
	LabNameEn       string         `json:"lab_name_en,omitempty"`
	Location        string         `json:"location,omitempty"`
	DirectorName    string         `json:"director_name,omitempty"`
	DepartmentName  string         `json:"department_name,omitempty"`
	ResearchAreas   string         `json:"research_areas,omitempty"`
	Description     string         `json:"description,omitempty"`
	SimilarityScore float64        `json:"similarity_score"`
	Breakdown       ScoreBreakdown `json:"matching_details"`
	MatchingReason  string         `json:"matching_reason"`
	ContactEmail    string         `json:"contact_email,omitempty"`
	ContactPhone    string         `json:"contact_phone,omitempty"`
}

// MatchRecord is a persisted matching row enriched with display metadata and
// the decoded score breakdown, as returned by the history query.
type MatchRecord struct {
	MatchingID      uuid.UUID      `json:"matching_id"`
	LabID           uuid.UUID      `json:"lab_id"`
	LabName         string         `json:"lab_name"`
	DirectorName    string         `json:"director_name,omitempty"`
	DepartmentName  string         `json:"department_name,omitempty"`
	SimilarityScore float64        `json:"similarity_score"`
	Status          string         `json:"status"`
	MatchingReason  string         `json:"matching_reason,omitempty"`
	Breakdown       ScoreBreakdown `json:"matching_factors"`
	ContactedAt     *time.Time     `json:"contacted_at,omitempty"`
	ResponseAt      *time.Time     `json:"response_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

// LabMatchingService scores a project against the active lab catalog and
// manages the persisted matching results and their status lifecycle.
type LabMatchingService struct {
	projects    *database.ProjectRepo
	labs        *database.ResearchLabRepo
	professors  *database.ProfessorRepo
	departments *database.DepartmentRepo
	matchings   *database.MatchingRepo
	scorer      *SimilarityScorer
	logger      zerolog.Logger
}

func NewLabMatchingService(db database.Database) *LabMatchingService {
	logger := log.With().Str("serviceName", "labMatchingService").Logger()

	return &LabMatchingService{
		projects:    db.ProjectRepo(),
		labs:        db.ResearchLabRepo(),
		professors:  db.ProfessorRepo(),
		departments: db.DepartmentRepo(),
		matchings:   db.MatchingRepo(),
		scorer:      NewSimilarityScorer(DefaultTechLexicon(), DefaultIndustryLexicon()),
		logger:      logger,
	}
}

// FindMatches scores the project against every active lab and returns the
// candidates at or above minScore, best first, at most maxResults of them.
// The ranked list is not persisted; callers that want persisted results must
// follow up with SaveMatchResults.
func (s *LabMatchingService) FindMatches(projectID uuid.UUID, maxResults int, minScore float64) ([]MatchCandidate, error) {
	if maxResults < 1 {
		return nil, errs.NewInvalidFieldError("max_results", "must be at least 1")
	}
	if minScore < 0.0 || minScore > 1.0 {
		return nil, errs.NewScoreOutOfRangeError("min_score", minScore)
	}

	project, err := s.projects.FindByID(projectID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	if project == nil {
		return nil, errs.NewNotFound("project")
	}

	labs, err := s.labs.FindActive()
	if err != nil {
		return nil, errs.NewDatabaseError("find", "active labs", err)
	}

	industries := s.scorer.IndustryCategories(*project)

	var candidates []MatchCandidate
	for _, lab := range labs {
		score, breakdown := s.scorer.Score(*project, *lab)
		if score < minScore {
			continue
		}
		candidates = append(candidates, s.buildCandidate(lab, score, breakdown, industries))
	}

	// Score descending; equal scores order by lab ID so re-runs over the same
	// catalog produce the same ranking.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].SimilarityScore != candidates[j].SimilarityScore {
			return candidates[i].SimilarityScore > candidates[j].SimilarityScore
		}
		return candidates[i].LabID.String() < candidates[j].LabID.String()
	})

	if len(candidates) > maxResults {
		candidates = candidates[:maxResults]
	}

	s.logger.Info().
		Str("projectID", projectID.String()).
		Int("labsScored", len(labs)).
		Int("matches", len(candidates)).
		Float64("minScore", minScore).
		Msg("matching run completed")

	return candidates, nil
}

// SaveMatchResults replaces every persisted matching row for the project with
// one SUGGESTED row per candidate. Delete and insert run in one transaction,
// so a failed save leaves the previous results intact.
func (s *LabMatchingService) SaveMatchResults(projectID uuid.UUID, candidates []MatchCandidate) error {
	rows := make([]*models.ProjectLabMatching, 0, len(candidates))
	for _, candidate := range candidates {
		factors, err := json.Marshal(candidate.Breakdown)
		if err != nil {
			return errs.NewInternalErrorWithCause("encoding matching factors", err)
		}

		rows = append(rows, &models.ProjectLabMatching{
			ID:              uuid.New(),
			ProjectID:       projectID,
			LabID:           candidate.LabID,
			SimilarityScore: candidate.SimilarityScore,
			MatchingReason:  candidate.MatchingReason,
			MatchingFactors: datatypes.JSON(factors),
			Status:          models.MatchingStatusSuggested,
		})
	}

	if err := s.matchings.ReplaceForProject(projectID, rows); err != nil {
		return errs.NewDatabaseError("replace", "matching results", err)
	}

	s.logger.Info().
		Str("projectID", projectID.String()).
		Int("saved", len(rows)).
		Msg("matching results saved")

	return nil
}

// GetMatchHistory returns the persisted matching rows for the project, score
// descending, enriched with lab and director metadata. Rows whose lab has
// since disappeared are skipped.
func (s *LabMatchingService) GetMatchHistory(projectID uuid.UUID) ([]MatchRecord, error) {
	matchings, err := s.matchings.FindByProjectID(projectID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "matching history", err)
	}

	records := make([]MatchRecord, 0, len(matchings))
	for _, matching := range matchings {
		lab, err := s.labs.FindByID(matching.LabID)
		if err != nil {
			return nil, errs.NewDatabaseError("find", "lab", err)
		}
		if lab == nil {
			continue
		}

		directorName, departmentName, _, _ := s.lookupDirector(lab)

		records = append(records, MatchRecord{
			MatchingID:      matching.ID,
			LabID:           lab.ID,
			LabName:         lab.Name,
			DirectorName:    directorName,
			DepartmentName:  departmentName,
			SimilarityScore: matching.SimilarityScore,
			Status:          matching.Status,
			MatchingReason:  matching.MatchingReason,
			Breakdown:       decodeBreakdown(matching.MatchingFactors),
			ContactedAt:     matching.ContactedAt,
			ResponseAt:      matching.ResponseAt,
			CreatedAt:       matching.CreatedAt,
		})
	}

	return records, nil
}

// UpdateStatus moves a matching row to a new lifecycle status. CONTACTED
// stamps contacted_at, INTERESTED and DECLINED stamp response_at; SUGGESTED
// and COLLABORATION stamp neither. A note, when given, is appended to the
// matching reason so the reason history accumulates.
func (s *LabMatchingService) UpdateStatus(matchingID uuid.UUID, newStatus, notes string) (*models.ProjectLabMatching, error) {
	matching, err := s.matchings.FindByID(matchingID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "matching record", err)
	}
	if matching == nil {
		return nil, errs.NewNotFound("matching record")
	}

	if !models.IsValidMatchingStatus(newStatus) {
		return nil, errs.NewInvalidMatchingStatusError(newStatus, models.ValidMatchingStatuses)
	}

	matching.Status = newStatus
	now := time.Now()
	switch newStatus {
	case models.MatchingStatusContacted:
		matching.ContactedAt = &now
	case models.MatchingStatusInterested, models.MatchingStatusDeclined:
		matching.ResponseAt = &now
	}

	if notes != "" {
		matching.MatchingReason = matching.MatchingReason + "\n\n사용자 메모: " + notes
	}

	if err := s.matchings.Update(matching); err != nil {
		return nil, errs.NewDatabaseError("update", "matching record", err)
	}

	s.logger.Info().
		Str("matchingID", matchingID.String()).
		Str("status", newStatus).
		Msg("matching status updated")

	return matching, nil
}

// buildCandidate attaches display metadata to a scored lab. Lookups here are
// cosmetic; they never change the score or the filtering already done.
func (s *LabMatchingService) buildCandidate(lab *models.ResearchLab, score float64, breakdown ScoreBreakdown, industries []string) MatchCandidate {
	directorName, departmentName, email, phone := s.lookupDirector(lab)
	if email == "" {
		email = lab.Email
	}
	if phone == "" {
		phone = lab.Phone
	}

	reason := fmt.Sprintf("유사도 점수: %.2f", score)
	if len(industries) > 0 {
		reason += fmt.Sprintf(" (관련 산업 분야: %s)", strings.Join(industries, ", "))
	}

	return MatchCandidate{
		LabID:           lab.ID,
		LabName:         lab.Name,
		LabNameEn:       lab.NameEn,
		Location:        lab.Location,
		DirectorName:    directorName,
		DepartmentName:  departmentName,
		ResearchAreas:   lab.ResearchAreas,
		Description:     lab.Description,
		SimilarityScore: score,
		Breakdown:       breakdown,
		MatchingReason:  reason,
		ContactEmail:    email,
		ContactPhone:    phone,
	}
}

// lookupDirector resolves the lab's director and their department for display.
// Lookup failures degrade to empty fields rather than failing the run.
func (s *LabMatchingService) lookupDirector(lab *models.ResearchLab) (directorName, departmentName, email, phone string) {
	professor, err := s.professors.FindByID(lab.DirectorID)
	if err != nil || professor == nil {
		if err != nil {
			s.logger.Warn().Err(err).Str("labID", lab.ID.String()).Msg("director lookup failed")
		}
		return "", "", "", ""
	}

	department, err := s.departments.FindByID(professor.DepartmentID)
	if err != nil {
		s.logger.Warn().Err(err).Str("professorID", professor.ID.String()).Msg("department lookup failed")
	}
	if department != nil {
		departmentName = department.Name
	}

	return professor.Name, departmentName, professor.Email, professor.Phone
}

// decodeBreakdown restores a stored score breakdown, degrading to the zero
// value when the stored document is missing or malformed.
func decodeBreakdown(raw datatypes.JSON) ScoreBreakdown {
	var breakdown ScoreBreakdown
	if len(raw) == 0 {
		return breakdown
	}
	if err := json.Unmarshal(raw, &breakdown); err != nil {
		return ScoreBreakdown{}
	}
	return breakdown
}
