package db

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

func RunsAction(c *cli.Context) error {
	database, err := OpenDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	limit := c.Int("limit")
	runs, err := database.ListRuns(limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs found")
		return nil
	}

	// Print table header
	fmt.Printf("%-6s %-20s %-9s %-9s %-9s %-15s %-30s\n",
		"ID", "Created", "Entity", "Found", "Coverage", "Status", "Source")
	fmt.Println(strings.Repeat("-", 110))

	for _, r := range runs {
		fmt.Printf("%-6d %-20s %-9s %d/%-7d %-8.1f%% %-15s %-30s\n",
			r.RunID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.Entity,
			r.FoundCount,
			r.ExpectedCount,
			r.CoveragePct,
			r.Status.String,
			r.SourcePath,
		)
	}

	fmt.Printf("\nTotal: %d runs\n", len(runs))
	fmt.Printf("\nTip: Use 'ucdm-corpus run <id>' to see details\n")

	return nil
}

// RunAction shows details for a specific run
func RunAction(c *cli.Context) error {
	database, err := OpenDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runID, err := GetRunIDOrLatest(c, database)
	if err != nil {
		return err
	}

	run, err := database.GetRun(runID)
	if err != nil {
		return err
	}

	lessons, err := database.ListLessons(runID)
	if err != nil {
		return fmt.Errorf("failed to list lessons: %w", err)
	}

	issues, err := database.ListIssues(runID, "")
	if err != nil {
		return fmt.Errorf("failed to list issues: %w", err)
	}

	fmt.Printf("Run %d\n", run.RunID)
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Created:     %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Source:      %s\n", run.SourcePath)
	fmt.Printf("Entity:      %s\n", run.Entity)
	fmt.Printf("Found:       %d of %d (%.1f%%)\n", run.FoundCount, run.ExpectedCount, run.CoveragePct)
	fmt.Printf("Status:      %s\n", run.Status.String)
	fmt.Printf("Integrity:   %v\n", run.IntegrityOK)
	if run.DuplicateSeverity.Valid {
		fmt.Printf("Duplicates:  %s\n", run.DuplicateSeverity.String)
	}

	if len(lessons) > 0 {
		fmt.Printf("\nLessons (%d):\n", len(lessons))
		fmt.Println(strings.Repeat("-", 60))
		for _, l := range lessons {
			title := l.Title.String
			if title == "" {
				title = "(no title)"
			}
			fmt.Printf("%4d. [%s conf:%.2f] %s\n", l.Number, l.ExtractionMethod.String, l.Confidence, title)
			if l.QualityScore.Valid {
				fmt.Printf("      Quality: %.1f (%s) | %d words\n", l.QualityScore.Float64, l.QualityStatus.String, l.WordCount)
			}
		}
	}

	if len(issues) > 0 {
		fmt.Printf("\nIssues (%d):\n", len(issues))
		fmt.Println(strings.Repeat("-", 60))
		for _, i := range issues {
			if i.Number.Valid {
				fmt.Printf("  [%s] lesson %d: %s\n", i.Kind, i.Number.Int64, i.Detail.String)
			} else {
				fmt.Printf("  [%s] %s\n", i.Kind, i.Detail.String)
			}
		}
	}

	fmt.Printf("\nTip: Use 'ucdm-corpus lesson %d <number>' to read a lesson\n", runID)

	return nil
}

// LessonAction prints the stored content of one lesson
func LessonAction(c *cli.Context) error {
	if c.NArg() < 2 {
		return fmt.Errorf("run ID and lesson number required\nUsage: ucdm-corpus lesson <run_id> <number>\nExample: ucdm-corpus lesson 3 91")
	}

	database, err := OpenDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	var runID int64
	if _, err := fmt.Sscanf(c.Args().Get(0), "%d", &runID); err != nil {
		return fmt.Errorf("invalid run ID: %s", c.Args().Get(0))
	}
	var number int
	if _, err := fmt.Sscanf(c.Args().Get(1), "%d", &number); err != nil {
		return fmt.Errorf("invalid lesson number: %s", c.Args().Get(1))
	}

	lesson, err := database.GetLesson(runID, number)
	if err != nil {
		return err
	}

	if lesson.Title.Valid {
		fmt.Printf("Lección %d. %s\n\n", lesson.Number, lesson.Title.String)
	} else {
		fmt.Printf("Lección %d\n\n", lesson.Number)
	}
	fmt.Println(lesson.Content.String)

	return nil
}
