package quality

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/jhondrl6/ucdm-corpus/internal/common"
	"github.com/jhondrl6/ucdm-corpus/internal/ingest"
	"github.com/jhondrl6/ucdm-corpus/models"
	"github.com/jhondrl6/ucdm-corpus/pkg/db"
	"github.com/jhondrl6/ucdm-corpus/pkg/language"
	qualitypkg "github.com/jhondrl6/ucdm-corpus/pkg/quality"
)

// Output is the YAML document the quality command prints.
type Output struct {
	Source  string                `yaml:"source" json:"source"`
	Metrics models.QualityMetrics `yaml:"metrics" json:"metrics"`
	Passes  map[string]bool       `yaml:"threshold_checks" json:"threshold_checks"`
}

// QualityAction validates a single text unit: either a file via --file, or a
// stored lesson via --run and --number.
func QualityAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var text, source string
	switch {
	case c.IsSet("file"):
		source = c.String("file")
		text, err = ingest.Load(source)
		if err != nil {
			return err
		}
	case c.IsSet("run") && c.IsSet("number"):
		runID := int64(c.Int("run"))
		number := c.Int("number")
		source = fmt.Sprintf("run %d, lesson %d", runID, number)

		database, err := openDatabase(c)
		if err != nil {
			return err
		}
		defer database.Close()

		lesson, err := database.GetLesson(runID, number)
		if err != nil {
			return err
		}
		text = lesson.Content.String
	default:
		return fmt.Errorf("nothing to validate\nUsage: ucdm-corpus quality --file leccion.txt\n       ucdm-corpus quality --run 3 --number 91")
	}

	logger.Info("validating", "source", source, "chars", len(text))

	engine := qualitypkg.New(cfg.Thresholds, language.NewVerifier())
	metrics := engine.Validate(text)

	out := Output{
		Source:  source,
		Metrics: metrics,
		Passes:  engine.MeetsThresholds(metrics),
	}
	data, err := common.MarshalOutput(out, c.String("format"))
	if err != nil {
		return err
	}
	fmt.Println(string(data))

	if metrics.Status == models.QualityNeedsWork {
		os.Exit(1)
	}
	return nil
}

func openDatabase(c *cli.Context) (*db.DB, error) {
	if path := c.String("db"); path != "" {
		return db.OpenPath(path)
	}
	return db.Open()
}
