package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	internaldb "github.com/jhondrl6/ucdm-corpus/internal/db"
	"github.com/jhondrl6/ucdm-corpus/internal/missing"
	"github.com/jhondrl6/ucdm-corpus/internal/quality"
	"github.com/jhondrl6/ucdm-corpus/internal/recognize"
	"github.com/jhondrl6/ucdm-corpus/internal/report"
)

func main() {
	app := &cli.App{
		Name:  "ucdm-corpus",
		Usage: "Recognize, validate, and index the 365 workbook lessons of a scanned Spanish source text",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "db",
				Usage: "path to the SQLite database (default: next to the binary)",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "only log errors",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "command output format: yaml or json",
				Value: "yaml",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "recognize",
				Usage:  "Run the full recognition pipeline over a source document",
				Action: recognize.RecognizeAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "source",
						Usage:    "source document (plain text or HTML)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "entity",
						Usage: "unit type to recognize: lesson or chapter",
						Value: "lesson",
					},
					&cli.StringFlag{
						Name:  "config",
						Usage: "YAML config file layered over defaults",
					},
					&cli.StringFlag{
						Name:  "output-dir",
						Usage: "write per-lesson text artifacts and reports here",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "concurrent quality validation workers",
					},
				},
			},
			{
				Name:   "quality",
				Usage:  "Validate the quality of one text unit",
				Action: quality.QualityAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "file",
						Usage: "validate this file instead of a stored lesson",
					},
					&cli.IntFlag{
						Name:  "run",
						Usage: "run ID holding the lesson",
					},
					&cli.IntFlag{
						Name:  "number",
						Usage: "lesson number within the run",
					},
					&cli.StringFlag{
						Name:  "config",
						Usage: "YAML config file layered over defaults",
					},
				},
			},
			{
				Name:   "report",
				Usage:  "Rebuild the coverage report for a stored run",
				Action: report.ReportAction,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "run",
						Usage: "run ID (default: latest)",
					},
					&cli.BoolFlag{
						Name:  "keywords",
						Usage: "aggregate top keywords across all lessons",
					},
					&cli.StringFlag{
						Name:  "config",
						Usage: "YAML config file layered over defaults",
					},
					&cli.StringFlag{
						Name:  "output-dir",
						Usage: "also write the report as YAML here",
					},
				},
			},
			{
				Name:   "missing",
				Usage:  "Hunt lessons a run failed to find with targeted patterns",
				Action: missing.MissingAction,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "run",
						Usage: "run ID (default: latest)",
					},
					&cli.StringFlag{
						Name:  "numbers",
						Usage: "comma-separated lesson numbers (default: everything missing)",
					},
					&cli.StringFlag{
						Name:  "source",
						Usage: "override the run's recorded source document",
					},
					&cli.StringFlag{
						Name:  "config",
						Usage: "YAML config file layered over defaults",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "concurrent extraction workers",
					},
				},
			},
			{
				Name:   "runs",
				Usage:  "List recorded recognition runs",
				Action: internaldb.RunsAction,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "maximum runs to list",
						Value: 20,
					},
				},
			},
			{
				Name:      "run",
				Usage:     "Show details for a run",
				ArgsUsage: "[run_id]",
				Action:    internaldb.RunAction,
			},
			{
				Name:      "lesson",
				Usage:     "Print the stored content of one lesson",
				ArgsUsage: "<run_id> <number>",
				Action:    internaldb.LessonAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
