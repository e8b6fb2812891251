package recognize

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/jhondrl6/ucdm-corpus/internal/common"
	"github.com/jhondrl6/ucdm-corpus/internal/ingest"
	"github.com/jhondrl6/ucdm-corpus/models"
	"github.com/jhondrl6/ucdm-corpus/pkg/analytics"
	"github.com/jhondrl6/ucdm-corpus/pkg/coverage"
	"github.com/jhondrl6/ucdm-corpus/pkg/db"
	"github.com/jhondrl6/ucdm-corpus/pkg/language"
	"github.com/jhondrl6/ucdm-corpus/pkg/mapreduce"
	"github.com/jhondrl6/ucdm-corpus/pkg/quality"
	"github.com/jhondrl6/ucdm-corpus/pkg/recognizer"
	"github.com/jhondrl6/ucdm-corpus/pkg/storage"
)

// Output is the YAML document the recognize command prints on completion.
type Output struct {
	RunID       int64                    `yaml:"run_id" json:"run_id"`
	Source      string                   `yaml:"source" json:"source"`
	Entity      string                   `yaml:"entity" json:"entity"`
	Recognition models.RecognitionResult `yaml:"recognition" json:"recognition"`
	Coverage    models.CoverageReport    `yaml:"coverage" json:"coverage"`
	TopKeywords []string                 `yaml:"top_keywords,omitempty" json:"top_keywords,omitempty"`
}

func RecognizeAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}

	source := c.String("source")
	if source == "" {
		return fmt.Errorf("no source file provided\nUsage: ucdm-corpus recognize --source texto.txt")
	}

	entity := c.String("entity")
	var rec *recognizer.Recognizer
	switch entity {
	case "", "lesson":
		entity = "lesson"
		rec = recognizer.New(cfg)
	case "chapter":
		cfg.ExpectedMax = models.ExpectedChapters
		rec = recognizer.NewForChapters(cfg)
	default:
		return fmt.Errorf("unknown entity %q (use: lesson or chapter)", entity)
	}

	text, err := ingest.Load(source)
	if err != nil {
		return err
	}
	logger.Info("source loaded", "path", source, "chars", len(text))

	result := rec.Recognize(text)
	logger.Info("recognition complete",
		"found", result.Sequence.TotalFound,
		"missing", len(result.Sequence.Missing),
		"duplicates", result.Duplicates.Count,
		"skipped", len(result.Skipped))

	// Per-lesson quality validation, concurrent.
	engine := quality.New(cfg.Thresholds, language.NewVerifier())
	a := &analytics.Analytics{}
	metrics, wordCounts := validateAll(logger, engine, func(content string) map[string]int {
		return mapreduce.Map(content, a)
	}, result.Records, cfg.Workers)

	cov := coverage.Analyze(result.Records, metrics, result.Duplicates.Severity, cfg)

	database, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer database.Close()

	runID, err := persistRun(database, source, entity, cfg, result, metrics, cov)
	if err != nil {
		return err
	}
	logger.Info("run stored", "run_id", runID)

	if dir := c.String("output-dir"); dir != "" {
		store := storage.New(dir)
		for _, record := range result.Records {
			if _, err := store.WriteLesson(record); err != nil {
				logger.Warn("failed to write lesson artifact", "number", record.Number, "error", err)
			}
		}
		if path, err := store.WriteReport("coverage.yaml", cov); err != nil {
			logger.Warn("failed to write coverage report", "error", err)
		} else if stats, statErr := store.GetFileStats(path); statErr == nil {
			logger.Info("coverage report written", "path", path, "bytes", stats.SizeBytes)
		}
	}

	out := Output{
		RunID:       runID,
		Source:      source,
		Entity:      entity,
		Recognition: result,
		Coverage:    cov,
		TopKeywords: mapreduce.TopKeywords(mapreduce.Reduce(wordCounts), 25),
	}
	data, err := common.MarshalOutput(out, c.String("format"))
	if err != nil {
		return err
	}
	fmt.Println(string(data))

	if result.Sequence.TotalFound == 0 {
		os.Exit(2)
	}
	return nil
}

func openDatabase(c *cli.Context) (*db.DB, error) {
	if path := c.String("db"); path != "" {
		return db.OpenPath(path)
	}
	return db.Open()
}

// persistRun writes the run, its lessons, and every flagged issue to the
// database. Lessons carry their quality verdict and content hash.
func persistRun(database *db.DB, source, entity string, cfg models.Config, result models.RecognitionResult, metrics map[int]models.QualityMetrics, cov models.CoverageReport) (int64, error) {
	runID, err := database.InsertRun(source, entity, cfg.ExpectedMax)
	if err != nil {
		return 0, err
	}

	for _, record := range result.Records {
		m := metrics[record.Number]
		hash := common.ContentHash([]byte(record.Content))
		if _, err := database.InsertLesson(runID, record, hash, m.OverallScore, m.Status); err != nil {
			return 0, err
		}
	}

	for _, s := range result.Skipped {
		if err := database.InsertIssue(runID, s.Number, "skipped", "", s.Reason); err != nil {
			return 0, err
		}
	}
	for number, cands := range result.Duplicates.ByNumber {
		detail := fmt.Sprintf("%d strong candidates", len(cands))
		if err := database.InsertIssue(runID, number, "duplicate", result.Duplicates.Severity, detail); err != nil {
			return 0, err
		}
	}
	for _, p := range cov.Problematic {
		for _, issue := range p.Issues {
			if err := database.InsertIssue(runID, p.Number, "quality", "", issue); err != nil {
				return 0, err
			}
		}
	}
	for _, w := range result.Warnings {
		if err := database.InsertIssue(runID, 0, "warning", "", w); err != nil {
			return 0, err
		}
	}

	err = database.FinishRun(runID, result.Sequence.TotalFound, cov.CoveragePct, cov.Status,
		result.Sequence.IntegrityOK, result.Duplicates.Severity)
	if err != nil {
		return 0, err
	}
	return runID, nil
}
