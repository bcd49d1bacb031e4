package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sejonghub/startup-hub-backend/config"
	"github.com/sejonghub/startup-hub-backend/database"
	"github.com/sejonghub/startup-hub-backend/errs"
	"github.com/sejonghub/startup-hub-backend/models"
	"github.com/sejonghub/startup-hub-backend/services"
)

type researchLabHandler struct {
	responder       Responder
	logger          zerolog.Logger
	labRepo         *database.ResearchLabRepo
	professorRepo   *database.ProfessorRepo
	departmentRepo  *database.DepartmentRepo
	matchingRepo    *database.MatchingRepo
	matchingService *services.LabMatchingService
	defaultMinScore float64
}

func newResearchLabHandler(db database.Database, matchingService *services.LabMatchingService, c map[string]string) researchLabHandler {
	logger := log.With().Str("handlerName", "researchLabHandler").Logger()

	return researchLabHandler{
		responder:       NewResponder(logger),
		logger:          logger,
		labRepo:         db.ResearchLabRepo(),
		professorRepo:   db.ProfessorRepo(),
		departmentRepo:  db.DepartmentRepo(),
		matchingRepo:    db.MatchingRepo(),
		matchingService: matchingService,
		defaultMinScore: config.GetFloat(c, "DEFAULT_MIN_SCORE", 0.3),
	}
}

// LabSummary is the listing/detail shape for a research lab, enriched with
// director and department display fields.
type LabSummary struct {
	Lab            models.ResearchLab `json:"lab"`
	DirectorName   string             `json:"director_name,omitempty"`
	DepartmentName string             `json:"department_name,omitempty"`
}

// MatchProjectRequest is the body of a match-project call.
type MatchProjectRequest struct {
	ProjectID  uuid.UUID `json:"project_id"`
	MaxResults int       `json:"max_results"` // default 10
	MinScore   float64   `json:"min_score"`   // default 0.3, override with DEFAULT_MIN_SCORE
}

// MatchingStatusUpdateRequest is the body of a matching status update.
type MatchingStatusUpdateRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

// getResearchLabs lists active labs, optionally filtered by department name,
// research area or free keyword.
// @Summary List research labs
// @Tags ResearchLabs
// @Produce json
// @Param department query string false "Department name filter"
// @Param research_area query string false "Research area filter"
// @Param keyword query string false "Keyword filter"
// @Param limit query int false "Maximum results (default 20)"
// @Success 200 {object} map[string]interface{} "Labs with director/department info"
// @Router /research-labs [get]
func (h researchLabHandler) getResearchLabs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 20
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			parsed, err := strconv.Atoi(limitStr)
			if err != nil || parsed < 1 || parsed > 100 {
				h.responder.WriteError(w, errs.NewInvalidFieldError("limit", "must be an integer between 1 and 100"))
				return
			}
			limit = parsed
		}

		labs, err := h.labRepo.Search(database.LabSearchFilter{
			Department:   r.URL.Query().Get("department"),
			ResearchArea: r.URL.Query().Get("research_area"),
			Keyword:      r.URL.Query().Get("keyword"),
			Limit:        limit,
		})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("search", "research labs", err))
			return
		}

		summaries := make([]LabSummary, 0, len(labs))
		for _, lab := range labs {
			summaries = append(summaries, h.enrichLab(lab))
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"labs":  summaries,
			"total": len(summaries),
		})
	}
}

// getResearchLabDetail returns one active lab with its director and department.
// @Summary Get research lab detail
// @Tags ResearchLabs
// @Produce json
// @Param labID path string true "Lab ID" format(uuid)
// @Success 200 {object} LabSummary
// @Failure 404 {object} ErrorResponse "Lab not found"
// @Router /research-lab/{labID} [get]
func (h researchLabHandler) getResearchLabDetail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		labID, err := uuid.Parse(chi.URLParam(r, "labID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid labID"))
			return
		}

		lab, err := h.labRepo.FindActiveByID(labID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "research lab", err))
			return
		}
		if lab == nil {
			h.responder.WriteError(w, errs.NewNotFound("research lab"))
			return
		}

		h.responder.WriteJSON(w, h.enrichLab(lab))
	}
}

// getDepartments lists all departments with their active-lab counts.
// @Summary List departments
// @Tags ResearchLabs
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /departments [get]
func (h researchLabHandler) getDepartments() http.HandlerFunc {
	type departmentWithCount struct {
		Department models.Department `json:"department"`
		LabCount   int64             `json:"lab_count"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		departments, err := h.departmentRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "departments", err))
			return
		}

		result := make([]departmentWithCount, 0, len(departments))
		for _, department := range departments {
			count, err := h.departmentRepo.CountActiveLabs(department.ID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("count labs for", "department", err))
				return
			}
			result = append(result, departmentWithCount{Department: *department, LabCount: count})
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"departments": result,
			"total":       len(result),
		})
	}
}

// getLabStatistics returns catalog totals and the matching status distribution.
// @Summary Research lab statistics
// @Tags ResearchLabs
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /research-labs/statistics [get]
func (h researchLabHandler) getLabStatistics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		labs, err := h.labRepo.FindActive()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "active labs", err))
			return
		}

		departments, err := h.departmentRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "departments", err))
			return
		}

		statusDistribution, err := h.matchingRepo.CountByStatus()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("aggregate", "matching statuses", err))
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"total_labs":                   len(labs),
			"total_departments":            len(departments),
			"matching_status_distribution": statusDistribution,
		})
	}
}

// matchProject runs a matching pass for the project and persists the ranked
// results, replacing any prior run.
// @Summary Match project against research labs
// @Tags Matching
// @Accept json
// @Produce json
// @Param request body MatchProjectRequest true "Matching parameters"
// @Success 200 {object} map[string]interface{} "Ranked matches"
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /research-labs/match-project [post]
func (h researchLabHandler) matchProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Omitted fields keep these defaults; the decoder only overwrites
		// fields present in the body.
		request := MatchProjectRequest{MaxResults: 10, MinScore: h.defaultMinScore}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode match-project request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("match-project", err))
			return
		}

		matches, err := h.matchingService.FindMatches(request.ProjectID, request.MaxResults, request.MinScore)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.matchingService.SaveMatchResults(request.ProjectID, matches); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"project_id":    request.ProjectID,
			"total_matches": len(matches),
			"matches":       matches,
		})
	}
}

// getMatchingHistory returns the persisted matching rows for a project,
// highest score first.
// @Summary Get project matching history
// @Tags Matching
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} map[string]interface{}
// @Router /research-labs/project/{projectID}/matches [get]
func (h researchLabHandler) getMatchingHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		history, err := h.matchingService.GetMatchHistory(projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"project_id": projectID,
			"matches":    history,
		})
	}
}

// updateMatchingStatus moves a matching record through its outreach lifecycle.
// @Summary Update matching status
// @Tags Matching
// @Accept json
// @Produce json
// @Param matchingID path string true "Matching ID" format(uuid)
// @Param request body MatchingStatusUpdateRequest true "New status and optional notes"
// @Success 200 {object} models.ProjectLabMatching
// @Failure 400 {object} ErrorResponse "Invalid status value"
// @Failure 404 {object} ErrorResponse "Matching record not found"
// @Router /research-labs/matching/{matchingID}/status [put]
func (h researchLabHandler) updateMatchingStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchingID, err := uuid.Parse(chi.URLParam(r, "matchingID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid matchingID"))
			return
		}

		var request MatchingStatusUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode status update request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("status update", err))
			return
		}

		updated, err := h.matchingService.UpdateStatus(matchingID, request.Status, request.Notes)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, updated)
	}
}

// getRecommendations runs a low-threshold matching pass without persisting,
// for lightweight suggestions.
// @Summary Recommend research labs for a project
// @Tags Matching
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Param limit query int false "Maximum recommendations (default 5, max 10)"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /research-labs/recommendations/{projectID} [get]
func (h researchLabHandler) getRecommendations() http.HandlerFunc {
	// Low threshold so sparse catalogs still produce suggestions.
	const recommendationMinScore = 0.2

	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		limit := 5
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			parsed, err := strconv.Atoi(limitStr)
			if err != nil || parsed < 1 || parsed > 10 {
				h.responder.WriteError(w, errs.NewInvalidFieldError("limit", "must be an integer between 1 and 10"))
				return
			}
			limit = parsed
		}

		recommendations, err := h.matchingService.FindMatches(projectID, limit, recommendationMinScore)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"project_id":      projectID,
			"recommendations": recommendations,
		})
	}
}

// enrichLab resolves director and department names for display.
func (h researchLabHandler) enrichLab(lab *models.ResearchLab) LabSummary {
	summary := LabSummary{Lab: *lab}

	professor, err := h.professorRepo.FindByID(lab.DirectorID)
	if err != nil || professor == nil {
		return summary
	}
	summary.DirectorName = professor.Name

	department, err := h.departmentRepo.FindByID(professor.DepartmentID)
	if err == nil && department != nil {
		summary.DepartmentName = department.Name
	}

	return summary
}
