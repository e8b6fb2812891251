// Package missing implements targeted re-extraction of lessons a run failed
// to find. Each missing number gets its own hunt with progressively looser
// patterns, gated on content quality before the run is amended.
package missing

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/urfave/cli/v2"

	"github.com/jhondrl6/ucdm-corpus/internal/common"
	"github.com/jhondrl6/ucdm-corpus/internal/ingest"
	"github.com/jhondrl6/ucdm-corpus/models"
	"github.com/jhondrl6/ucdm-corpus/pkg/coverage"
	"github.com/jhondrl6/ucdm-corpus/pkg/db"
	"github.com/jhondrl6/ucdm-corpus/pkg/language"
	"github.com/jhondrl6/ucdm-corpus/pkg/quality"
	"github.com/jhondrl6/ucdm-corpus/pkg/recognizer"
)

// Attempt is the per-number outcome reported to the operator.
type Attempt struct {
	Number   int     `yaml:"number" json:"number"`
	Found    bool    `yaml:"found" json:"found"`
	Accepted bool    `yaml:"accepted" json:"accepted"`
	Strategy string  `yaml:"strategy,omitempty" json:"strategy,omitempty"`
	Quality  float64 `yaml:"quality,omitempty" json:"quality,omitempty"`
	Error    string  `yaml:"error,omitempty" json:"error,omitempty"`

	record models.LessonRecord
	status string
}

// Output is the YAML document the missing command prints.
type Output struct {
	RunID     int64     `yaml:"run_id" json:"run_id"`
	Requested int       `yaml:"requested" json:"requested"`
	Recovered int       `yaml:"recovered" json:"recovered"`
	Attempts  []Attempt `yaml:"attempts" json:"attempts"`
}

func MissingAction(c *cli.Context) error {
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

	numbers, err := targetNumbers(c, database, runID)
	if err != nil {
		return err
	}
	if len(numbers) == 0 {
		fmt.Printf("Run %d has no missing lessons\n", runID)
		return nil
	}
	logger.Info("hunting missing lessons", "run_id", runID, "count", len(numbers))

	source := run.SourcePath
	if c.IsSet("source") {
		source = c.String("source")
	}
	text, err := ingest.Load(source)
	if err != nil {
		return err
	}

	var rec *recognizer.Recognizer
	if run.Entity == "chapter" {
		rec = recognizer.NewForChapters(cfg)
	} else {
		rec = recognizer.New(cfg)
	}
	engine := quality.New(cfg.Thresholds, language.NewVerifier())

	attempts := hunt(logger, rec, engine, text, numbers, cfg.Workers)

	out := Output{RunID: runID, Requested: len(numbers), Attempts: attempts}
	for _, a := range attempts {
		if !a.Accepted {
			detail := a.Error
			if detail == "" {
				detail = fmt.Sprintf("best attempt %q scored %.1f, below acceptance", a.Strategy, a.Quality)
			}
			if err := database.InsertIssue(runID, a.Number, "missing", "", detail); err != nil {
				return err
			}
			continue
		}
		out.Recovered++
	}

	// Amend the run with the recovered lessons.
	for _, a := range attempts {
		if !a.Accepted {
			continue
		}
		record := a.record
		hash := common.ContentHash([]byte(record.Content))
		if _, err := database.InsertLesson(runID, record, hash, a.Quality, a.status); err != nil {
			return err
		}
	}

	if out.Recovered > 0 {
		found := run.FoundCount + out.Recovered
		pct := float64(found) / float64(run.ExpectedCount) * 100
		stillMissing, err := database.MissingNumbers(runID)
		if err != nil {
			return err
		}
		integrityOK := len(stillMissing) == 0 && run.DuplicateSeverity.String == ""
		if err := database.FinishRun(runID, found, pct, coverage.StatusFor(pct), integrityOK, run.DuplicateSeverity.String); err != nil {
			return err
		}
		logger.Info("run amended", "run_id", runID, "recovered", out.Recovered, "coverage_pct", pct)
	}

	data, err := common.MarshalOutput(out, c.String("format"))
	if err != nil {
		return err
	}
	fmt.Println(string(data))

	if out.Recovered == 0 {
		os.Exit(1)
	}
	return nil
}

// hunt runs targeted extraction for every number with a bounded worker pool.
func hunt(logger *slog.Logger, rec *recognizer.Recognizer, engine *quality.Engine, text string, numbers []int, workers int) []Attempt {
	if workers <= 0 {
		workers = 4
	}

	var wg sync.WaitGroup
	jobs := make(chan int, len(numbers))
	results := make(chan Attempt, len(numbers))

	for w := 1; w <= workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for number := range jobs {
				logger.Debug("targeted extraction", "worker", id, "number", number)
				results <- attempt(rec, engine, text, number)
			}
		}(w)
	}

	for _, n := range numbers {
		jobs <- n
	}
	close(jobs)

	wg.Wait()
	close(results)

	attempts := make([]Attempt, 0, len(numbers))
	for a := range results {
		attempts = append(attempts, a)
	}
	sort.Slice(attempts, func(i, j int) bool { return attempts[i].Number < attempts[j].Number })
	return attempts
}

func attempt(rec *recognizer.Recognizer, engine *quality.Engine, text string, number int) Attempt {
	result, err := rec.ExtractSpecific(text, number, engine)
	if err != nil {
		return Attempt{Number: number, Error: err.Error()}
	}
	return Attempt{
		Number:   number,
		Found:    true,
		Accepted: result.Accepted,
		Strategy: result.Strategy,
		Quality:  result.Metrics.OverallScore,
		record:   result.Record,
		status:   result.Metrics.Status,
	}
}

// targetNumbers resolves which numbers to hunt: an explicit --numbers list,
// or everything the run is missing.
func targetNumbers(c *cli.Context, database *db.DB, runID int64) ([]int, error) {
	if !c.IsSet("numbers") {
		return database.MissingNumbers(runID)
	}

	var numbers []int
	for _, part := range strings.Split(c.String("numbers"), ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid lesson number %q: %w", part, err)
		}
		numbers = append(numbers, n)
	}
	return numbers, nil
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
