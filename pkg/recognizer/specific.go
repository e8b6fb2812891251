package recognizer

import (
	"fmt"
	"strings"

	"github.com/jhondrl6/ucdm-corpus/models"
	"github.com/jhondrl6/ucdm-corpus/pkg/mapper"
	"github.com/jhondrl6/ucdm-corpus/pkg/quality"
)

// SpecificResult is the outcome of a targeted extraction for one number.
type SpecificResult struct {
	Record   models.LessonRecord   `yaml:"record" json:"record"`
	Metrics  models.QualityMetrics `yaml:"metrics" json:"metrics"`
	Strategy string                `yaml:"strategy" json:"strategy"`
	Accepted bool                  `yaml:"accepted" json:"accepted"`
}

// ExtractSpecific hunts for a single unit number the general pass missed,
// trying progressively looser expressions. The first strategy whose content
// passes the quality gate wins; if none do, the best rejected attempt is
// returned with Accepted false.
func (r *Recognizer) ExtractSpecific(text string, number int, engine *quality.Engine) (SpecificResult, error) {
	if number < 1 || number > r.cfg.ExpectedMax {
		return SpecificResult{}, fmt.Errorf("number %d outside expected range 1-%d", number, r.cfg.ExpectedMax)
	}
	if text == "" {
		return SpecificResult{}, fmt.Errorf("empty source text")
	}

	var best SpecificResult
	for _, strat := range r.lib.SpecificStrategies(number) {
		m := strat.Expression.FindStringSubmatchIndex(text)
		if m == nil {
			continue
		}

		content := r.spanAfter(text, m[1])
		if len(strings.Fields(content)) < r.cfg.MinContentWords {
			continue
		}

		title := ""
		if len(m) >= 4 && m[2] >= 0 {
			title = strings.TrimSpace(text[m[2]:m[3]])
		}
		cand := models.Candidate{
			Number:     number,
			Title:      title,
			StartPos:   m[0],
			EndPos:     m[1],
			Method:     models.MethodSequential,
			Confidence: strat.Confidence,
		}
		attempt := SpecificResult{
			Record:   models.NewLessonRecord(cand, content),
			Metrics:  engine.Validate(content),
			Strategy: strat.Name,
		}
		attempt.Accepted = attempt.Metrics.OverallScore >= r.cfg.MinAcceptQuality

		if attempt.Accepted {
			return attempt, nil
		}
		if attempt.Metrics.OverallScore > best.Metrics.OverallScore || best.Strategy == "" {
			best = attempt
		}
	}

	if best.Strategy == "" {
		return SpecificResult{}, fmt.Errorf("no strategy matched number %d", number)
	}
	return best, nil
}

// spanAfter slices and cleans the content from pos to the next unit marker,
// bounded by the configured tail window.
func (r *Recognizer) spanAfter(text string, pos int) string {
	end := pos + r.cfg.TailWindow
	if end > len(text) {
		end = len(text)
	}
	window := text[pos:end]
	if next := r.lib.MarkerRe().FindStringIndex(window); next != nil {
		window = window[:next[0]]
	}
	return mapper.CleanContent(window)
}
