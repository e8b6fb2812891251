package report

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/jhondrl6/ucdm-corpus/internal/common"
	"github.com/jhondrl6/ucdm-corpus/models"
	"github.com/jhondrl6/ucdm-corpus/pkg/analytics"
	"github.com/jhondrl6/ucdm-corpus/pkg/coverage"
	"github.com/jhondrl6/ucdm-corpus/pkg/db"
	"github.com/jhondrl6/ucdm-corpus/pkg/mapreduce"
	"github.com/jhondrl6/ucdm-corpus/pkg/storage"
)

// Output is the YAML document the report command prints.
type Output struct {
	RunID       int64                 `yaml:"run_id" json:"run_id"`
	Source      string                `yaml:"source" json:"source"`
	Entity      string                `yaml:"entity" json:"entity"`
	Coverage    models.CoverageReport `yaml:"coverage" json:"coverage"`
	TopKeywords []string              `yaml:"top_keywords,omitempty" json:"top_keywords,omitempty"`
}

// ReportAction rebuilds the coverage report for a stored run.
func ReportAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	database, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer database.Close()

	runID, err := runIDOrLatest(c, database)
	if err != nil {
		return err
	}

	run, err := database.GetRun(runID)
	if err != nil {
		return err
	}
	cfg.ExpectedMax = run.ExpectedCount

	rows, err := database.ListLessons(runID)
	if err != nil {
		return err
	}
	logger.Info("run loaded", "run_id", runID, "lessons", len(rows))

	records := make(map[int]models.LessonRecord, len(rows))
	metrics := make(map[int]models.QualityMetrics, len(rows))
	for _, row := range rows {
		records[row.Number] = models.LessonRecord{
			Number:           row.Number,
			Title:            row.Title.String,
			WordCount:        row.WordCount,
			CharCount:        row.CharCount,
			Position:         row.Position,
			ExtractionMethod: row.ExtractionMethod.String,
			Confidence:       row.Confidence,
		}
		metrics[row.Number] = models.QualityMetrics{
			OverallScore: row.QualityScore.Float64,
			Status:       row.QualityStatus.String,
		}
	}

	cov := coverage.Analyze(records, metrics, run.DuplicateSeverity.String, cfg)

	out := Output{
		RunID:    runID,
		Source:   run.SourcePath,
		Entity:   run.Entity,
		Coverage: cov,
	}
	if c.Bool("keywords") {
		out.TopKeywords, err = topKeywords(database, runID, rows)
		if err != nil {
			logger.Warn("failed to compute keywords", "error", err)
		}
	}

	if dir := c.String("output-dir"); dir != "" {
		store := storage.New(dir)
		if path, err := store.WriteReport("coverage.yaml", cov); err != nil {
			logger.Warn("failed to write coverage report", "error", err)
		} else {
			logger.Info("coverage report written", "path", path)
		}
	}

	data, err := common.MarshalOutput(out, c.String("format"))
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// topKeywords aggregates word frequencies across every stored lesson of a
// run. Content lives in the database, so this fetches each lesson in turn.
func topKeywords(database *db.DB, runID int64, rows []db.LessonRow) ([]string, error) {
	a := &analytics.Analytics{}
	var intermediate []map[string]int

	for _, row := range rows {
		lesson, err := database.GetLesson(runID, row.Number)
		if err != nil {
			return nil, err
		}
		if lesson.Content.Valid {
			intermediate = append(intermediate, mapreduce.Map(lesson.Content.String, a))
		}
	}

	return mapreduce.TopKeywords(mapreduce.Reduce(intermediate), 25), nil
}

func runIDOrLatest(c *cli.Context, database *db.DB) (int64, error) {
	if c.IsSet("run") {
		return int64(c.Int("run")), nil
	}
	runs, err := database.ListRuns(1)
	if err != nil {
		return 0, err
	}
	if len(runs) == 0 {
		return 0, fmt.Errorf("no runs recorded yet\nRun: ucdm-corpus recognize --source texto.txt")
	}
	return runs[0].RunID, nil
}

func openDatabase(c *cli.Context) (*db.DB, error) {
	if path := c.String("db"); path != "" {
		return db.OpenPath(path)
	}
	return db.Open()
}
