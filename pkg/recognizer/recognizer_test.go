package recognizer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/jhondrl6/ucdm-corpus/models"
	"github.com/jhondrl6/ucdm-corpus/pkg/quality"
)

const lessonBody = `La práctica de hoy requiere un minuto de quietud. Repite la idea lentamente y aplica el pensamiento a todo lo que veas. Dios acompaña cada ejercicio con paz.`

var lessonTitles = []string{
	"Nada de lo que veo significa nada",
	"He dado a todo el significado que tiene",
	"No entiendo nada de lo que veo",
	"Estos pensamientos no significan nada",
	"Nunca estoy disgustado por la razón que creo",
}

// buildCorpus assembles a synthetic workbook with n lessons between section
// markers, plus prologue and trailing manual text.
func buildCorpus(n int, skip map[int]bool) string {
	var b strings.Builder
	b.WriteString("PRÓLOGO\n\nEste es un texto introductorio sin marcadores de unidad.\n\nLIBRO DE EJERCICIOS\n\n")
	for i := 1; i <= n; i++ {
		if skip[i] {
			continue
		}
		fmt.Fprintf(&b, "Lección %d. %s.\n\n%s\n\n", i, lessonTitles[i%len(lessonTitles)], lessonBody)
	}
	b.WriteString("MANUAL PARA EL MAESTRO\n\nTexto posterior que no pertenece al libro de ejercicios.\n")
	return b.String()
}

func testConfig(expectedMax int) models.Config {
	cfg := models.DefaultConfig()
	cfg.ExpectedMax = expectedMax
	return cfg
}

func TestRecognize_FullCorpus(t *testing.T) {
	rec := New(testConfig(12))
	result := rec.Recognize(buildCorpus(12, nil))

	if result.Sequence.TotalFound != 12 {
		t.Fatalf("TotalFound = %d, want 12; skipped: %v, warnings: %v",
			result.Sequence.TotalFound, result.Skipped, result.Warnings)
	}
	if !result.Sequence.IntegrityOK {
		t.Errorf("IntegrityOK = false; missing: %v, duplicates: %v",
			result.Sequence.Missing, result.Sequence.Duplicates)
	}
	if result.Sequence.Completeness != 100 {
		t.Errorf("Completeness = %v, want 100", result.Sequence.Completeness)
	}
	if result.Duplicates.Severity != "none" {
		t.Errorf("duplicate severity = %q, want none", result.Duplicates.Severity)
	}

	if got := result.Stats.MethodCounts["primary"]; got != 12 {
		t.Errorf("primary method count = %d, want 12; stats: %+v", got, result.Stats)
	}
	if got := result.Stats.ConfidenceRange["high"]; got != 12 {
		t.Errorf("high-confidence count = %d, want 12; stats: %+v", got, result.Stats)
	}
}

func TestRecognize_RecordContents(t *testing.T) {
	rec := New(testConfig(12))
	result := rec.Recognize(buildCorpus(12, nil))

	five, ok := result.Records[5]
	if !ok {
		t.Fatal("lesson 5 not found")
	}
	if five.Title != lessonTitles[0]+"." {
		t.Errorf("Title = %q, want %q", five.Title, lessonTitles[0]+".")
	}
	if !strings.Contains(five.Content, "La práctica de hoy") {
		t.Errorf("content missing body: %q", five.Content)
	}
	if strings.Contains(five.Content, "Lección 6") {
		t.Error("lesson 5 content leaked into lesson 6")
	}

	last := result.Records[12]
	if strings.Contains(last.Content, "MANUAL PARA EL MAESTRO") {
		t.Error("final lesson content leaked past the section end")
	}
}

func TestRecognize_MissingLesson(t *testing.T) {
	rec := New(testConfig(12))
	result := rec.Recognize(buildCorpus(12, map[int]bool{7: true}))

	if result.Sequence.TotalFound != 11 {
		t.Fatalf("TotalFound = %d, want 11", result.Sequence.TotalFound)
	}
	if len(result.Sequence.Missing) != 1 || result.Sequence.Missing[0] != 7 {
		t.Errorf("Missing = %v, want [7]", result.Sequence.Missing)
	}
	if result.Sequence.IntegrityOK {
		t.Error("IntegrityOK = true, want false")
	}
}

func TestRecognize_Empty(t *testing.T) {
	rec := New(testConfig(365))
	result := rec.Recognize("")

	if len(result.Records) != 0 {
		t.Errorf("Records = %d, want 0", len(result.Records))
	}
	if result.Sequence.TotalExpected != 365 {
		t.Errorf("TotalExpected = %d, want 365", result.Sequence.TotalExpected)
	}
	if len(result.Sequence.Missing) != 365 {
		t.Errorf("len(Missing) = %d, want 365", len(result.Sequence.Missing))
	}
}

func TestRecognize_SparseScopeFallsBack(t *testing.T) {
	// Only two lessons after the section heading: the scoped pass is below
	// the plausibility floor and the full text is rescanned.
	rec := New(testConfig(12))
	result := rec.Recognize(buildCorpus(2, nil))

	if result.Sequence.TotalFound != 2 {
		t.Fatalf("TotalFound = %d, want 2", result.Sequence.TotalFound)
	}
	warned := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "rescanning full text") {
			warned = true
		}
	}
	if !warned {
		t.Errorf("expected a rescan warning, got %v", result.Warnings)
	}
}

func TestRecognize_ConfidenceFloor(t *testing.T) {
	cfg := testConfig(12)
	cfg.MinConfidence = 0.95
	rec := New(cfg)

	result := rec.Recognize(buildCorpus(12, nil))

	if result.Sequence.TotalFound != 0 {
		t.Errorf("TotalFound = %d, want 0 with a 0.95 confidence floor", result.Sequence.TotalFound)
	}
}

func TestExtractSpecific_MarkerStrategy(t *testing.T) {
	rec := New(testConfig(365))
	engine := quality.New(models.DefaultConfig().Thresholds, nil)
	text := "Texto previo sin interés particular para la búsqueda.\n\nLección 91. Los milagros se ven en la luz.\n\n" + lessonBody + "\n"

	result, err := rec.ExtractSpecific(text, 91, engine)
	if err != nil {
		t.Fatalf("ExtractSpecific() error = %v", err)
	}
	if !result.Accepted {
		t.Fatalf("Accepted = false; metrics: %+v", result.Metrics)
	}
	if result.Strategy != "marker" {
		t.Errorf("Strategy = %q, want marker", result.Strategy)
	}
	if result.Record.Number != 91 {
		t.Errorf("Number = %d, want 91", result.Record.Number)
	}
	if !strings.HasPrefix(result.Record.Title, "Los milagros") {
		t.Errorf("Title = %q", result.Record.Title)
	}
	if !strings.Contains(result.Record.Content, "La práctica de hoy") {
		t.Errorf("Content = %q", result.Record.Content)
	}
}

func TestExtractSpecific_NumberedTitleStrategy(t *testing.T) {
	rec := New(testConfig(365))
	engine := quality.New(models.DefaultConfig().Thresholds, nil)
	text := "168. La gracia es un don que viene de Dios.\n\n" + lessonBody + "\n"

	result, err := rec.ExtractSpecific(text, 168, engine)
	if err != nil {
		t.Fatalf("ExtractSpecific() error = %v", err)
	}
	if result.Strategy != "numbered_title" {
		t.Errorf("Strategy = %q, want numbered_title", result.Strategy)
	}
	if !result.Accepted {
		t.Errorf("Accepted = false; metrics: %+v", result.Metrics)
	}
}

func TestExtractSpecific_RejectedOnQuality(t *testing.T) {
	rec := New(testConfig(365))
	engine := quality.New(models.DefaultConfig().Thresholds, nil)

	garbage := strings.TrimSpace(strings.Repeat("palabrÃ³ daÃ±ado confuso sembrÃ³ ", 6))
	text := "68\n" + garbage + "\n"

	result, err := rec.ExtractSpecific(text, 68, engine)
	if err != nil {
		t.Fatalf("ExtractSpecific() error = %v", err)
	}
	if result.Accepted {
		t.Errorf("Accepted = true for mojibake content; metrics: %+v", result.Metrics)
	}
	if result.Strategy != "bare_number" {
		t.Errorf("Strategy = %q, want bare_number", result.Strategy)
	}
}

func TestExtractSpecific_NoMatch(t *testing.T) {
	rec := New(testConfig(365))
	engine := quality.New(models.DefaultConfig().Thresholds, nil)

	_, err := rec.ExtractSpecific("Texto sin marcador alguno del número buscado.", 200, engine)
	if err == nil {
		t.Fatal("expected an error when no strategy matches")
	}
	if !strings.Contains(err.Error(), "no strategy matched") {
		t.Errorf("error = %v", err)
	}
}

func TestExtractSpecific_RangeChecked(t *testing.T) {
	rec := New(testConfig(365))
	engine := quality.New(models.DefaultConfig().Thresholds, nil)

	if _, err := rec.ExtractSpecific("Lección 400. Algo.", 400, engine); err == nil {
		t.Error("expected an error for a number outside the expected range")
	}
	if _, err := rec.ExtractSpecific("", 5, engine); err == nil {
		t.Error("expected an error for empty text")
	}
}
