package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arloliu/fitmatch/store"
	"github.com/arloliu/fitmatch/viz"
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Re-render the visualization page from a saved database",
	Long: `Plot loads the training data, candidate functions, fit assignments
and classified test points back from a SQLite database produced by
"fitmatch run --db" and renders the HTML visualization from them.`,
	Example: `  fitmatch plot --db run.db --html report.html`,
	RunE:    runPlot,
}

func init() {
	plotCmd.Flags().String("db", "run.db", "SQLite database written by a previous run")
	plotCmd.Flags().String("html", "report.html", "output HTML file")

	rootCmd.AddCommand(plotCmd)
}

func runPlot(cmd *cobra.Command, _ []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	htmlPath, _ := cmd.Flags().GetString("html")

	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	s, err := store.Open(dbPath, store.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = s.Close() }()

	ctx := cmd.Context()
	training, err := s.LoadFrame(ctx, store.TableTraining)
	if err != nil {
		return fmt.Errorf("load training data: %w", err)
	}
	candidates, err := s.LoadFrame(ctx, store.TableIdeal)
	if err != nil {
		return fmt.Errorf("load candidate functions: %w", err)
	}
	fits, err := s.LoadAssignments(ctx)
	if err != nil {
		return fmt.Errorf("load fit assignments: %w", err)
	}
	results, err := s.LoadResults(ctx, fits)
	if err != nil {
		return fmt.Errorf("load test results: %w", err)
	}

	err = viz.RenderFile(htmlPath, viz.Data{
		Training:   training,
		Candidates: candidates,
		Fits:       fits,
		Results:    results,
	})
	if err != nil {
		return fmt.Errorf("render visualization: %w", err)
	}

	fmt.Printf("rendered %d fits and %d points to %s\n", len(fits), len(results), htmlPath)

	return nil
}
