package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jhondrl6/ucdm-corpus/models"
)

// RunInfo represents one recorded recognition run.
type RunInfo struct {
	RunID             int64
	CreatedAt         time.Time
	SourcePath        string
	Entity            string
	ExpectedCount     int
	FoundCount        int
	CoveragePct       float64
	Status            sql.NullString
	IntegrityOK       bool
	DuplicateSeverity sql.NullString
}

// LessonRow is a stored lesson plus its quality verdict.
type LessonRow struct {
	LessonID         int64
	RunID            int64
	Number           int
	Title            sql.NullString
	Content          sql.NullString
	ContentHash      sql.NullString
	WordCount        int
	CharCount        int
	Position         int
	ExtractionMethod sql.NullString
	Confidence       float64
	QualityScore     sql.NullFloat64
	QualityStatus    sql.NullString
}

// IssueRow is a stored run issue.
type IssueRow struct {
	IssueID  int64
	RunID    int64
	Number   sql.NullInt64
	Kind     string
	Severity sql.NullString
	Detail   sql.NullString
}

// InsertRun records a new run, returning the run_id.
func (db *DB) InsertRun(sourcePath, entity string, expected int) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO runs (source_path, entity, expected_count)
		VALUES (?, ?, ?)
	`, sourcePath, entity, expected)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return runID, nil
}

// FinishRun writes the summary columns once a run's pipeline has completed.
func (db *DB) FinishRun(runID int64, found int, coveragePct float64, status string, integrityOK bool, duplicateSeverity string) error {
	_, err := db.Exec(`
		UPDATE runs SET
			found_count = ?,
			coverage_pct = ?,
			status = ?,
			integrity_ok = ?,
			duplicate_severity = ?
		WHERE run_id = ?
	`, found, coveragePct, status, integrityOK, NewNullString(duplicateSeverity), runID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}

// InsertLesson stores one accepted lesson (upsert on run_id+number).
func (db *DB) InsertLesson(runID int64, rec models.LessonRecord, contentHash string, qualityScore float64, qualityStatus string) (int64, error) {
	var existingID int64
	err := db.QueryRow("SELECT lesson_id FROM lessons WHERE run_id = ? AND number = ?", runID, rec.Number).Scan(&existingID)
	if err == nil {
		_, err = db.Exec(`
			UPDATE lessons SET
				title = ?, content = ?, content_hash = ?,
				word_count = ?, char_count = ?, position = ?,
				extraction_method = ?, confidence = ?,
				quality_score = ?, quality_status = ?
			WHERE lesson_id = ?
		`, NewNullString(rec.Title), NewNullString(rec.Content), NewNullString(contentHash),
			rec.WordCount, rec.CharCount, rec.Position,
			NewNullString(rec.ExtractionMethod), rec.Confidence,
			NewNullFloat64(qualityScore), NewNullString(qualityStatus), existingID)
		if err != nil {
			return 0, fmt.Errorf("failed to update lesson: %w", err)
		}
		return existingID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to check existing lesson: %w", err)
	}

	result, err := db.Exec(`
		INSERT INTO lessons (run_id, number, title, content, content_hash,
			word_count, char_count, position, extraction_method, confidence,
			quality_score, quality_status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, runID, rec.Number, NewNullString(rec.Title), NewNullString(rec.Content), NewNullString(contentHash),
		rec.WordCount, rec.CharCount, rec.Position,
		NewNullString(rec.ExtractionMethod), rec.Confidence,
		NewNullFloat64(qualityScore), NewNullString(qualityStatus))
	if err != nil {
		return 0, fmt.Errorf("failed to insert lesson: %w", err)
	}

	lessonID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get lesson ID: %w", err)
	}
	return lessonID, nil
}

// InsertIssue records a run issue. number may be 0 for run-level issues.
func (db *DB) InsertIssue(runID int64, number int, kind, severity, detail string) error {
	var num sql.NullInt64
	if number > 0 {
		num = sql.NullInt64{Int64: int64(number), Valid: true}
	}
	_, err := db.Exec(`
		INSERT INTO issues (run_id, number, kind, severity, detail)
		VALUES (?, ?, ?, ?, ?)
	`, runID, num, kind, NewNullString(severity), NewNullString(detail))
	if err != nil {
		return fmt.Errorf("failed to insert issue: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]RunInfo, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Query(`
		SELECT run_id, created_at, source_path, entity, expected_count,
			found_count, coverage_pct, status, integrity_ok, duplicate_severity
		FROM runs
		ORDER BY created_at DESC, run_id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunInfo
	for rows.Next() {
		var r RunInfo
		err := rows.Scan(&r.RunID, &r.CreatedAt, &r.SourcePath, &r.Entity, &r.ExpectedCount,
			&r.FoundCount, &r.CoveragePct, &r.Status, &r.IntegrityOK, &r.DuplicateSeverity)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, nil
}

// GetRun returns a single run by ID.
func (db *DB) GetRun(runID int64) (*RunInfo, error) {
	var r RunInfo
	err := db.QueryRow(`
		SELECT run_id, created_at, source_path, entity, expected_count,
			found_count, coverage_pct, status, integrity_ok, duplicate_severity
		FROM runs
		WHERE run_id = ?
	`, runID).Scan(&r.RunID, &r.CreatedAt, &r.SourcePath, &r.Entity, &r.ExpectedCount,
		&r.FoundCount, &r.CoveragePct, &r.Status, &r.IntegrityOK, &r.DuplicateSeverity)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &r, nil
}

// ListLessons returns the lessons of a run in number order, without content.
func (db *DB) ListLessons(runID int64) ([]LessonRow, error) {
	rows, err := db.Query(`
		SELECT lesson_id, run_id, number, title, content_hash,
			word_count, char_count, position, extraction_method, confidence,
			quality_score, quality_status
		FROM lessons
		WHERE run_id = ?
		ORDER BY number
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}
	defer rows.Close()

	var lessons []LessonRow
	for rows.Next() {
		var l LessonRow
		err := rows.Scan(&l.LessonID, &l.RunID, &l.Number, &l.Title, &l.ContentHash,
			&l.WordCount, &l.CharCount, &l.Position, &l.ExtractionMethod, &l.Confidence,
			&l.QualityScore, &l.QualityStatus)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lessons = append(lessons, l)
	}
	return lessons, nil
}

// GetLesson returns one lesson of a run with its content.
func (db *DB) GetLesson(runID int64, number int) (*LessonRow, error) {
	var l LessonRow
	err := db.QueryRow(`
		SELECT lesson_id, run_id, number, title, content, content_hash,
			word_count, char_count, position, extraction_method, confidence,
			quality_score, quality_status
		FROM lessons
		WHERE run_id = ? AND number = ?
	`, runID, number).Scan(&l.LessonID, &l.RunID, &l.Number, &l.Title, &l.Content, &l.ContentHash,
		&l.WordCount, &l.CharCount, &l.Position, &l.ExtractionMethod, &l.Confidence,
		&l.QualityScore, &l.QualityStatus)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("lesson %d not found in run %d", number, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}
	return &l, nil
}

// ListIssues returns the issues of a run, optionally filtered by kind.
func (db *DB) ListIssues(runID int64, kind string) ([]IssueRow, error) {
	query := `
		SELECT issue_id, run_id, number, kind, severity, detail
		FROM issues
		WHERE run_id = ?`
	args := []interface{}{runID}
	if kind != "" {
		query += " AND kind = ?"
		args = append(args, kind)
	}
	query += " ORDER BY issue_id"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}
	defer rows.Close()

	var issues []IssueRow
	for rows.Next() {
		var i IssueRow
		err := rows.Scan(&i.IssueID, &i.RunID, &i.Number, &i.Kind, &i.Severity, &i.Detail)
		if err != nil {
			return nil, fmt.Errorf("failed to scan issue: %w", err)
		}
		issues = append(issues, i)
	}
	return issues, nil
}

// MissingNumbers returns the numbers in [1, expected] that a run has no
// lesson for.
func (db *DB) MissingNumbers(runID int64) ([]int, error) {
	run, err := db.GetRun(runID)
	if err != nil {
		return nil, err
	}

	rows, err := db.Query("SELECT number FROM lessons WHERE run_id = ?", runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lesson numbers: %w", err)
	}
	defer rows.Close()

	have := make(map[int]bool)
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to scan number: %w", err)
		}
		have[n] = true
	}

	var missing []int
	for n := 1; n <= run.ExpectedCount; n++ {
		if !have[n] {
			missing = append(missing, n)
		}
	}
	return missing, nil
}

// NewNullString creates a sql.NullString from a string value.
func NewNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

// NewNullFloat64 creates a sql.NullFloat64 from a float64 value. Zero is a
// legitimate score, so it is stored as-is; NULL only ever means the column
// was never written.
func NewNullFloat64(f float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: f, Valid: true}
}
