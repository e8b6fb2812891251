package db

import (
	"testing"

	"github.com/jhondrl6/ucdm-corpus/models"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	database := &DB{path: ":memory:"}
	var err error
	database.DB, err = openDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return database
}

func TestInsertRun(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, err := db.InsertRun("texto.txt", "lesson", 365)
	if err != nil {
		t.Fatalf("InsertRun() error = %v", err)
	}
	if runID == 0 {
		t.Error("InsertRun() returned 0 ID")
	}

	run, err := db.GetRun(runID)
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if run.SourcePath != "texto.txt" {
		t.Errorf("SourcePath = %q, want %q", run.SourcePath, "texto.txt")
	}
	if run.Entity != "lesson" {
		t.Errorf("Entity = %q, want %q", run.Entity, "lesson")
	}
	if run.ExpectedCount != 365 {
		t.Errorf("ExpectedCount = %d, want 365", run.ExpectedCount)
	}
}

func TestFinishRun(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, err := db.InsertRun("texto.txt", "lesson", 365)
	if err != nil {
		t.Fatalf("InsertRun() error = %v", err)
	}

	if err := db.FinishRun(runID, 360, 98.6, "CASI_COMPLETO", false, "low"); err != nil {
		t.Fatalf("FinishRun() error = %v", err)
	}

	run, err := db.GetRun(runID)
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if run.FoundCount != 360 {
		t.Errorf("FoundCount = %d, want 360", run.FoundCount)
	}
	if run.Status.String != "CASI_COMPLETO" {
		t.Errorf("Status = %q, want CASI_COMPLETO", run.Status.String)
	}
	if run.IntegrityOK {
		t.Error("IntegrityOK = true, want false")
	}
}

func TestListRuns_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	first, err := db.InsertRun("a.txt", "lesson", 365)
	if err != nil {
		t.Fatalf("InsertRun() error = %v", err)
	}
	second, err := db.InsertRun("b.txt", "chapter", 31)
	if err != nil {
		t.Fatalf("InsertRun() error = %v", err)
	}

	runs, err := db.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("ListRuns() returned %d runs, want 2", len(runs))
	}
	if runs[0].RunID != second || runs[1].RunID != first {
		t.Errorf("ListRuns() order = [%d, %d], want [%d, %d]", runs[0].RunID, runs[1].RunID, second, first)
	}
}

func TestInsertLesson_Upsert(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, err := db.InsertRun("texto.txt", "lesson", 365)
	if err != nil {
		t.Fatalf("InsertRun() error = %v", err)
	}

	rec := models.LessonRecord{
		Number:           42,
		Title:            "Soy el único responsable de lo que veo",
		Content:          "Contenido de la lección.",
		WordCount:        4,
		CharCount:        24,
		Position:         1200,
		ExtractionMethod: "primary",
		Confidence:       0.9,
	}

	firstID, err := db.InsertLesson(runID, rec, "hash-1", 92.0, "EXCELENTE")
	if err != nil {
		t.Fatalf("InsertLesson() error = %v", err)
	}

	rec.Title = "Título corregido"
	secondID, err := db.InsertLesson(runID, rec, "hash-2", 95.0, "EXCELENTE")
	if err != nil {
		t.Fatalf("InsertLesson() upsert error = %v", err)
	}
	if firstID != secondID {
		t.Errorf("upsert created new row: got %d, want %d", secondID, firstID)
	}

	got, err := db.GetLesson(runID, 42)
	if err != nil {
		t.Fatalf("GetLesson() error = %v", err)
	}
	if got.Title.String != "Título corregido" {
		t.Errorf("Title = %q, want %q", got.Title.String, "Título corregido")
	}
	if got.ContentHash.String != "hash-2" {
		t.Errorf("ContentHash = %q, want hash-2", got.ContentHash.String)
	}
}

func TestInsertLesson_ZeroScoreStored(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, err := db.InsertRun("texto.txt", "lesson", 365)
	if err != nil {
		t.Fatalf("InsertRun() error = %v", err)
	}

	rec := models.LessonRecord{
		Number:           91,
		Title:            "Los milagros se ven en la luz",
		Content:          "Contenido ilegible.",
		ExtractionMethod: "marker",
		Confidence:       0.9,
	}
	if _, err := db.InsertLesson(runID, rec, "hash-91", 0, "REQUIERE_MEJORA"); err != nil {
		t.Fatalf("InsertLesson() error = %v", err)
	}

	got, err := db.GetLesson(runID, 91)
	if err != nil {
		t.Fatalf("GetLesson() error = %v", err)
	}
	if !got.QualityScore.Valid {
		t.Fatal("QualityScore is NULL, want stored zero")
	}
	if got.QualityScore.Float64 != 0 {
		t.Errorf("QualityScore = %v, want 0", got.QualityScore.Float64)
	}
}

func TestListLessons_Ordered(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, err := db.InsertRun("texto.txt", "lesson", 365)
	if err != nil {
		t.Fatalf("InsertRun() error = %v", err)
	}

	for _, n := range []int{200, 5, 91} {
		rec := models.LessonRecord{Number: n, Content: "texto", WordCount: 1, CharCount: 5}
		if _, err := db.InsertLesson(runID, rec, "", 80, "ACEPTABLE"); err != nil {
			t.Fatalf("InsertLesson(%d) error = %v", n, err)
		}
	}

	lessons, err := db.ListLessons(runID)
	if err != nil {
		t.Fatalf("ListLessons() error = %v", err)
	}
	want := []int{5, 91, 200}
	if len(lessons) != len(want) {
		t.Fatalf("ListLessons() returned %d lessons, want %d", len(lessons), len(want))
	}
	for i, n := range want {
		if lessons[i].Number != n {
			t.Errorf("lessons[%d].Number = %d, want %d", i, lessons[i].Number, n)
		}
	}
}

func TestInsertIssue_FilterByKind(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, err := db.InsertRun("texto.txt", "lesson", 365)
	if err != nil {
		t.Fatalf("InsertRun() error = %v", err)
	}

	if err := db.InsertIssue(runID, 91, "skipped", "", "content too short: 3 words"); err != nil {
		t.Fatalf("InsertIssue() error = %v", err)
	}
	if err := db.InsertIssue(runID, 155, "duplicate", "medium", "2 strong candidates"); err != nil {
		t.Fatalf("InsertIssue() error = %v", err)
	}
	if err := db.InsertIssue(runID, 0, "warning", "", "section scope rescan"); err != nil {
		t.Fatalf("InsertIssue() error = %v", err)
	}

	all, err := db.ListIssues(runID, "")
	if err != nil {
		t.Fatalf("ListIssues() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("ListIssues() returned %d issues, want 3", len(all))
	}

	dups, err := db.ListIssues(runID, "duplicate")
	if err != nil {
		t.Fatalf("ListIssues(duplicate) error = %v", err)
	}
	if len(dups) != 1 || dups[0].Number.Int64 != 155 {
		t.Errorf("ListIssues(duplicate) = %+v, want one issue for lesson 155", dups)
	}
}

func TestMissingNumbers(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, err := db.InsertRun("texto.txt", "lesson", 5)
	if err != nil {
		t.Fatalf("InsertRun() error = %v", err)
	}

	for _, n := range []int{1, 2, 4} {
		rec := models.LessonRecord{Number: n, Content: "texto", WordCount: 1, CharCount: 5}
		if _, err := db.InsertLesson(runID, rec, "", 80, "ACEPTABLE"); err != nil {
			t.Fatalf("InsertLesson(%d) error = %v", n, err)
		}
	}

	missing, err := db.MissingNumbers(runID)
	if err != nil {
		t.Fatalf("MissingNumbers() error = %v", err)
	}
	want := []int{3, 5}
	if len(missing) != len(want) {
		t.Fatalf("MissingNumbers() = %v, want %v", missing, want)
	}
	for i := range want {
		if missing[i] != want[i] {
			t.Errorf("MissingNumbers() = %v, want %v", missing, want)
			break
		}
	}
}
