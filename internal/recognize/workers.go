package recognize

import (
	"log/slog"
	"sync"

	"github.com/jhondrl6/ucdm-corpus/models"
	"github.com/jhondrl6/ucdm-corpus/pkg/quality"
)

// Job defines a validation task for a worker to perform.
type Job struct {
	Record models.LessonRecord
}

// Result holds the outcome of a processed job.
type Result struct {
	Number     int
	Metrics    models.QualityMetrics
	WordCounts map[string]int
}

// worker validates lesson content from the jobs channel and sends metrics to
// the results channel.
func worker(id int, logger *slog.Logger, engine *quality.Engine, counter wordCounter, wg *sync.WaitGroup, jobs <-chan Job, results chan<- Result) {
	defer wg.Done()
	for job := range jobs {
		logger.Debug("validating lesson", "worker", id, "number", job.Record.Number)
		results <- Result{
			Number:     job.Record.Number,
			Metrics:    engine.Validate(job.Record.Content),
			WordCounts: counter(job.Record.Content),
		}
	}
}

type wordCounter func(content string) map[string]int

// validateAll runs quality validation over every record with a bounded worker
// pool and returns per-lesson metrics plus per-lesson word counts.
func validateAll(logger *slog.Logger, engine *quality.Engine, counter wordCounter, records map[int]models.LessonRecord, workers int) (map[int]models.QualityMetrics, []map[string]int) {
	if workers <= 0 {
		workers = 4
	}

	var wg sync.WaitGroup
	jobs := make(chan Job, len(records))
	results := make(chan Result, len(records))

	for w := 1; w <= workers; w++ {
		wg.Add(1)
		go worker(w, logger, engine, counter, &wg, jobs, results)
	}

	for _, rec := range records {
		jobs <- Job{Record: rec}
	}
	close(jobs)

	wg.Wait()
	close(results)

	metrics := make(map[int]models.QualityMetrics, len(records))
	var counts []map[string]int
	for result := range results {
		metrics[result.Number] = result.Metrics
		if result.WordCounts != nil {
			counts = append(counts, result.WordCounts)
		}
	}
	return metrics, counts
}
