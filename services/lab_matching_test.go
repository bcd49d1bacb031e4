package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sejonghub/startup-hub-backend/database"
	"github.com/sejonghub/startup-hub-backend/errs"
	"github.com/sejonghub/startup-hub-backend/models"
)

func newTestService(t *testing.T) (*LabMatchingService, database.Database, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Department{},
		&models.Professor{},
		&models.ResearchLab{},
		&models.Project{},
		&models.ProjectLabMatching{},
	); err != nil {
		t.Fatalf("migrating test schema: %v", err)
	}

	d := database.New(db)
	return NewLabMatchingService(d), d, db
}

type fixture struct {
	project   models.Project
	strongLab models.ResearchLab
	weakLab   models.ResearchLab
}

func seedCatalog(t *testing.T, db *gorm.DB) fixture {
	t.Helper()

	department := models.Department{Name: "컴퓨터공학과", NameEn: "Computer Science and Engineering", College: "인공지능융합대학"}
	if err := db.Create(&department).Error; err != nil {
		t.Fatalf("seeding department: %v", err)
	}

	professor := models.Professor{
		DepartmentID: department.ID,
		Name:         "김세종",
		Position:     "교수",
		Email:        "sejong.kim@example.ac.kr",
	}
	if err := db.Create(&professor).Error; err != nil {
		t.Fatalf("seeding professor: %v", err)
	}

	project := models.Project{
		OwnerID:     uuid.New(),
		Name:        "스터디메이트",
		Description: "AI 기반 학습 추천 서비스",
		ServiceType: models.ServiceTypeAI,
		TargetType:  "B2C",
		IsActive:    true,
	}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("seeding project: %v", err)
	}

	strongLab := models.ResearchLab{
		DirectorID:    professor.ID,
		Name:          "지능형 미디어 연구실",
		Keywords:      "AI,머신러닝,추천시스템",
		TechStack:     `["Python","TensorFlow"]`,
		ResearchAreas: `["인공지능"]`,
		Description:   "개인화 추천 알고리즘 연구",
		Email:         "iml@example.ac.kr",
		IsActive:      true,
	}
	if err := db.Create(&strongLab).Error; err != nil {
		t.Fatalf("seeding strong lab: %v", err)
	}

	weakLab := models.ResearchLab{
		DirectorID: professor.ID,
		Name:       "양자컴퓨팅 연구실",
		IsActive:   true,
	}
	if err := db.Create(&weakLab).Error; err != nil {
		t.Fatalf("seeding weak lab: %v", err)
	}

	return fixture{project: project, strongLab: strongLab, weakLab: weakLab}
}

func TestFindMatchesRanksAndEnriches(t *testing.T) {
	service, _, db := newTestService(t)
	f := seedCatalog(t, db)

	matches, err := service.FindMatches(f.project.ID, 10, 0.0)
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}

	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	if matches[0].LabID != f.strongLab.ID {
		t.Errorf("best match lab = %s, want the recommender lab", matches[0].LabName)
	}
	if matches[0].SimilarityScore <= matches[1].SimilarityScore {
		t.Errorf("matches not sorted descending: %v then %v", matches[0].SimilarityScore, matches[1].SimilarityScore)
	}
	if matches[0].DirectorName != "김세종" {
		t.Errorf("director name = %q, want 김세종", matches[0].DirectorName)
	}
	if matches[0].DepartmentName != "컴퓨터공학과" {
		t.Errorf("department name = %q, want 컴퓨터공학과", matches[0].DepartmentName)
	}
	if matches[0].ContactEmail != "sejong.kim@example.ac.kr" {
		t.Errorf("contact email = %q, want the director's", matches[0].ContactEmail)
	}
}

func TestFindMatchesSkipsInactiveLabs(t *testing.T) {
	service, _, db := newTestService(t)
	f := seedCatalog(t, db)

	if err := db.Model(&models.ResearchLab{}).Where("id = ?", f.strongLab.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivating lab: %v", err)
	}

	matches, err := service.FindMatches(f.project.ID, 10, 0.0)
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}

	for _, match := range matches {
		if match.LabID == f.strongLab.ID {
			t.Fatal("inactive lab surfaced as a candidate")
		}
	}
}

func TestFindMatchesFiltersAndTruncates(t *testing.T) {
	service, _, db := newTestService(t)
	f := seedCatalog(t, db)

	// Only the recommender lab clears a high threshold; max_results stays
	// under-filled rather than padded.
	matches, err := service.FindMatches(f.project.ID, 3, 0.5)
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].SimilarityScore < 0.5 {
		t.Errorf("score %v below min_score", matches[0].SimilarityScore)
	}

	// max_results=1 truncates the permissive run.
	matches, err = service.FindMatches(f.project.ID, 1, 0.0)
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1 after truncation", len(matches))
	}
}

func TestFindMatchesUnknownProject(t *testing.T) {
	service, _, db := newTestService(t)
	seedCatalog(t, db)

	_, err := service.FindMatches(uuid.New(), 10, 0.0)
	if err == nil {
		t.Fatal("expected an error for a missing project")
	}
	if !errs.IsNotFound(err) {
		t.Fatalf("got %v, want a not-found error", err)
	}
}

func TestFindMatchesInvalidParameters(t *testing.T) {
	service, _, db := newTestService(t)
	f := seedCatalog(t, db)

	if _, err := service.FindMatches(f.project.ID, 0, 0.0); err == nil {
		t.Error("expected an error for max_results < 1")
	}
	if _, err := service.FindMatches(f.project.ID, 10, 1.5); err == nil {
		t.Error("expected an error for min_score > 1")
	}
	if _, err := service.FindMatches(f.project.ID, 10, -0.1); err == nil {
		t.Error("expected an error for min_score < 0")
	}
}

func TestFindMatchesDeterministicTieBreak(t *testing.T) {
	service, _, db := newTestService(t)
	f := seedCatalog(t, db)

	// A clone of the strong lab scores identically; ties order by lab ID.
	clone := f.strongLab
	clone.ID = uuid.New()
	clone.Name = "지능형 미디어 연구실 분원"
	if err := db.Create(&clone).Error; err != nil {
		t.Fatalf("seeding clone lab: %v", err)
	}

	first, err := service.FindMatches(f.project.ID, 10, 0.5)
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}
	second, err := service.FindMatches(f.project.ID, 10, 0.5)
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}

	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("got %d and %d matches, want 2 and 2", len(first), len(second))
	}
	for i := range first {
		if first[i].LabID != second[i].LabID {
			t.Fatalf("tie order differs between runs: %v vs %v", first[i].LabID, second[i].LabID)
		}
	}
	if first[0].LabID.String() > first[1].LabID.String() {
		t.Error("tied candidates not ordered by lab ID ascending")
	}
}

func TestSaveMatchResultsReplacesPriorRun(t *testing.T) {
	service, _, db := newTestService(t)
	f := seedCatalog(t, db)

	matches, err := service.FindMatches(f.project.ID, 10, 0.0)
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}

	if err := service.SaveMatchResults(f.project.ID, matches); err != nil {
		t.Fatalf("first SaveMatchResults: %v", err)
	}
	if err := service.SaveMatchResults(f.project.ID, matches); err != nil {
		t.Fatalf("second SaveMatchResults: %v", err)
	}

	var count int64
	if err := db.Model(&models.ProjectLabMatching{}).Where("project_id = ?", f.project.ID).Count(&count).Error; err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	if count != int64(len(matches)) {
		t.Fatalf("got %d rows after a repeated save, want %d", count, len(matches))
	}

	var statuses []string
	if err := db.Model(&models.ProjectLabMatching{}).Where("project_id = ?", f.project.ID).Pluck("status", &statuses).Error; err != nil {
		t.Fatalf("reading statuses: %v", err)
	}
	for _, status := range statuses {
		if status != models.MatchingStatusSuggested {
			t.Errorf("freshly saved row has status %q, want SUGGESTED", status)
		}
	}
}

func TestGetMatchHistoryDecodesFactors(t *testing.T) {
	service, _, db := newTestService(t)
	f := seedCatalog(t, db)

	matches, err := service.FindMatches(f.project.ID, 10, 0.0)
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}
	if err := service.SaveMatchResults(f.project.ID, matches); err != nil {
		t.Fatalf("SaveMatchResults: %v", err)
	}

	history, err := service.GetMatchHistory(f.project.ID)
	if err != nil {
		t.Fatalf("GetMatchHistory: %v", err)
	}

	if len(history) != len(matches) {
		t.Fatalf("got %d history entries, want %d", len(history), len(matches))
	}
	for i := 1; i < len(history); i++ {
		if history[i-1].SimilarityScore < history[i].SimilarityScore {
			t.Error("history not ordered by score descending")
		}
	}

	top := history[0]
	if top.LabName != f.strongLab.Name {
		t.Errorf("top history lab = %q, want %q", top.LabName, f.strongLab.Name)
	}
	if top.Breakdown.Total <= 0 {
		t.Error("decoded breakdown lost the total score")
	}
	if top.Breakdown.ServiceType <= 0 {
		t.Error("decoded breakdown lost the service type component")
	}
	if top.Status != models.MatchingStatusSuggested {
		t.Errorf("status = %q, want SUGGESTED", top.Status)
	}
}

func savedMatching(t *testing.T, service *LabMatchingService, db *gorm.DB, f fixture) models.ProjectLabMatching {
	t.Helper()

	matches, err := service.FindMatches(f.project.ID, 10, 0.0)
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}
	if err := service.SaveMatchResults(f.project.ID, matches); err != nil {
		t.Fatalf("SaveMatchResults: %v", err)
	}

	var matching models.ProjectLabMatching
	if err := db.Where("project_id = ? AND lab_id = ?", f.project.ID, f.strongLab.ID).First(&matching).Error; err != nil {
		t.Fatalf("loading saved matching: %v", err)
	}
	return matching
}

func TestUpdateStatusContacted(t *testing.T) {
	service, _, db := newTestService(t)
	f := seedCatalog(t, db)
	matching := savedMatching(t, service, db, f)

	updated, err := service.UpdateStatus(matching.ID, models.MatchingStatusContacted, "")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	if updated.Status != models.MatchingStatusContacted {
		t.Errorf("status = %q, want CONTACTED", updated.Status)
	}
	if updated.ContactedAt == nil {
		t.Error("contacted_at not set on CONTACTED transition")
	}
	if updated.ResponseAt != nil {
		t.Error("response_at set on CONTACTED transition")
	}
}

func TestUpdateStatusInterestedKeepsContactedAt(t *testing.T) {
	service, _, db := newTestService(t)
	f := seedCatalog(t, db)
	matching := savedMatching(t, service, db, f)

	contacted, err := service.UpdateStatus(matching.ID, models.MatchingStatusContacted, "")
	if err != nil {
		t.Fatalf("UpdateStatus CONTACTED: %v", err)
	}

	updated, err := service.UpdateStatus(matching.ID, models.MatchingStatusInterested, "")
	if err != nil {
		t.Fatalf("UpdateStatus INTERESTED: %v", err)
	}

	if updated.ResponseAt == nil {
		t.Error("response_at not set on INTERESTED transition")
	}
	if updated.ContactedAt == nil || !updated.ContactedAt.Equal(*contacted.ContactedAt) {
		t.Error("contacted_at changed by INTERESTED transition")
	}
}

func TestUpdateStatusAppendsNotes(t *testing.T) {
	service, _, db := newTestService(t)
	f := seedCatalog(t, db)
	matching := savedMatching(t, service, db, f)
	originalReason := matching.MatchingReason

	updated, err := service.UpdateStatus(matching.ID, models.MatchingStatusContacted, "이메일로 연락함")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	want := originalReason + "\n\n사용자 메모: 이메일로 연락함"
	if updated.MatchingReason != want {
		t.Errorf("matching reason = %q, want %q", updated.MatchingReason, want)
	}

	// A second note accumulates instead of replacing.
	updated, err = service.UpdateStatus(matching.ID, models.MatchingStatusInterested, "미팅 예정")
	if err != nil {
		t.Fatalf("UpdateStatus second note: %v", err)
	}
	want += "\n\n사용자 메모: 미팅 예정"
	if updated.MatchingReason != want {
		t.Errorf("matching reason = %q, want accumulated notes", updated.MatchingReason)
	}
}

func TestUpdateStatusInvalidValue(t *testing.T) {
	service, _, db := newTestService(t)
	f := seedCatalog(t, db)
	matching := savedMatching(t, service, db, f)

	_, err := service.UpdateStatus(matching.ID, "ARCHIVED", "")
	if err == nil {
		t.Fatal("expected an error for an unknown status")
	}
	if !errs.IsInvalidMatchingStatus(err) {
		t.Fatalf("got %v, want an invalid-status error", err)
	}

	// No mutation happened.
	var reloaded models.ProjectLabMatching
	if err := db.First(&reloaded, "id = ?", matching.ID).Error; err != nil {
		t.Fatalf("reloading matching: %v", err)
	}
	if reloaded.Status != models.MatchingStatusSuggested {
		t.Errorf("status mutated to %q by a rejected update", reloaded.Status)
	}
	if reloaded.ContactedAt != nil || reloaded.ResponseAt != nil {
		t.Error("timestamps mutated by a rejected update")
	}
}

func TestUpdateStatusUnknownRecord(t *testing.T) {
	service, _, db := newTestService(t)
	seedCatalog(t, db)

	_, err := service.UpdateStatus(uuid.New(), models.MatchingStatusContacted, "")
	if err == nil {
		t.Fatal("expected an error for a missing matching record")
	}
	if !errs.IsNotFound(err) {
		t.Fatalf("got %v, want a not-found error", err)
	}
}
