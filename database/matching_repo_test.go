package database

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sejonghub/startup-hub-backend/models"
)

func newTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func matchingRow(projectID, labID uuid.UUID, score float64) *models.ProjectLabMatching {
	return &models.ProjectLabMatching{
		ID:              uuid.New(),
		ProjectID:       projectID,
		LabID:           labID,
		SimilarityScore: score,
		Status:          models.MatchingStatusSuggested,
	}
}

func TestReplaceForProjectReplacesRows(t *testing.T) {
	db := newTestDB(t)
	repo := NewMatchingRepo(db)

	projectID := uuid.New()
	labA := uuid.New()
	labB := uuid.New()

	if err := repo.ReplaceForProject(projectID, []*models.ProjectLabMatching{
		matchingRow(projectID, labA, 0.8),
		matchingRow(projectID, labB, 0.4),
	}); err != nil {
		t.Fatalf("first replace: %v", err)
	}

	// Re-running with a different set leaves only the new rows.
	if err := repo.ReplaceForProject(projectID, []*models.ProjectLabMatching{
		matchingRow(projectID, labA, 0.9),
	}); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	rows, err := repo.FindByProjectID(projectID)
	if err != nil {
		t.Fatalf("FindByProjectID: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows after replace, want 1", len(rows))
	}
	if rows[0].LabID != labA || rows[0].SimilarityScore != 0.9 {
		t.Errorf("surviving row = lab %v score %v, want the re-run values", rows[0].LabID, rows[0].SimilarityScore)
	}
}

func TestReplaceForProjectLeavesOtherProjectsAlone(t *testing.T) {
	db := newTestDB(t)
	repo := NewMatchingRepo(db)

	projectA := uuid.New()
	projectB := uuid.New()
	lab := uuid.New()

	if err := repo.ReplaceForProject(projectA, []*models.ProjectLabMatching{matchingRow(projectA, lab, 0.5)}); err != nil {
		t.Fatalf("seeding project A: %v", err)
	}
	if err := repo.ReplaceForProject(projectB, []*models.ProjectLabMatching{matchingRow(projectB, lab, 0.6)}); err != nil {
		t.Fatalf("seeding project B: %v", err)
	}

	if err := repo.ReplaceForProject(projectA, nil); err != nil {
		t.Fatalf("clearing project A: %v", err)
	}

	rowsA, err := repo.FindByProjectID(projectA)
	if err != nil {
		t.Fatalf("FindByProjectID A: %v", err)
	}
	if len(rowsA) != 0 {
		t.Errorf("project A still has %d rows after clearing", len(rowsA))
	}

	rowsB, err := repo.FindByProjectID(projectB)
	if err != nil {
		t.Fatalf("FindByProjectID B: %v", err)
	}
	if len(rowsB) != 1 {
		t.Errorf("project B lost rows: got %d, want 1", len(rowsB))
	}
}

func TestFindByProjectIDOrdersByScore(t *testing.T) {
	db := newTestDB(t)
	repo := NewMatchingRepo(db)

	projectID := uuid.New()
	if err := repo.ReplaceForProject(projectID, []*models.ProjectLabMatching{
		matchingRow(projectID, uuid.New(), 0.3),
		matchingRow(projectID, uuid.New(), 0.9),
		matchingRow(projectID, uuid.New(), 0.6),
	}); err != nil {
		t.Fatalf("seeding: %v", err)
	}

	rows, err := repo.FindByProjectID(projectID)
	if err != nil {
		t.Fatalf("FindByProjectID: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	for i := 1; i < len(rows); i++ {
		if rows[i-1].SimilarityScore < rows[i].SimilarityScore {
			t.Fatalf("rows not score-descending: %v before %v", rows[i-1].SimilarityScore, rows[i].SimilarityScore)
		}
	}
}

func TestFindByIDMissingRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewMatchingRepo(db)

	row, err := repo.FindByID(uuid.New())
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if row != nil {
		t.Fatal("got a row for an unknown ID")
	}
}

func TestCountByStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewMatchingRepo(db)

	projectID := uuid.New()
	contacted := matchingRow(projectID, uuid.New(), 0.7)
	contacted.Status = models.MatchingStatusContacted

	if err := repo.ReplaceForProject(projectID, []*models.ProjectLabMatching{
		matchingRow(projectID, uuid.New(), 0.5),
		matchingRow(projectID, uuid.New(), 0.4),
		contacted,
	}); err != nil {
		t.Fatalf("seeding: %v", err)
	}

	distribution, err := repo.CountByStatus()
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	if distribution[models.MatchingStatusSuggested] != 2 {
		t.Errorf("SUGGESTED count = %d, want 2", distribution[models.MatchingStatusSuggested])
	}
	if distribution[models.MatchingStatusContacted] != 1 {
		t.Errorf("CONTACTED count = %d, want 1", distribution[models.MatchingStatusContacted])
	}
}
