package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arloliu/fitmatch/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: select fits, classify points, write outputs",
	Long: `Run loads the training, candidate and test tables, selects the
best-fit candidate per training signal, classifies every test point and
writes the configured outputs.

Every flag can also be set through the config file or a FITMATCH_*
environment variable, e.g. FITMATCH_TRAIN overrides --train.`,
	Example: `  fitmatch run --train train.csv --ideal ideal.csv --test test.csv --db run.db
  fitmatch run --train train.fms --ideal ideal.fms --test test.csv.gz --html report.html`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().String("train", "train.csv", "training table (.csv, .csv.gz or .fms)")
	runCmd.Flags().String("ideal", "ideal.csv", "candidate table (.csv, .csv.gz or .fms)")
	runCmd.Flags().String("test", "test.csv", "test points (.csv or .csv.gz)")
	runCmd.Flags().String("db", "", "write inputs and results to this SQLite database")
	runCmd.Flags().String("html", "", "write the visualization page to this file")
	runCmd.Flags().String("out", "", "write per-point results to this CSV file")
	runCmd.Flags().Int("parallelism", runtime.NumCPU(), "worker goroutines for selection and classification")

	// Flags double as viper keys so the config file and FITMATCH_* env
	// variables reach the same settings.
	_ = viper.BindPFlags(runCmd.Flags())

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg := pipeline.Config{
		TrainingPath:   viper.GetString("train"),
		CandidatesPath: viper.GetString("ideal"),
		TestPath:       viper.GetString("test"),
		DBPath:         viper.GetString("db"),
		HTMLPath:       viper.GetString("html"),
		ResultsCSVPath: viper.GetString("out"),
		Parallelism:    viper.GetInt("parallelism"),
		Logger:         logger,
	}

	outcome, err := pipeline.Run(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	fmt.Printf("run %s finished in %s\n\n", outcome.RunID, outcome.Durations.Total.Round(time.Millisecond))
	fmt.Print(outcome.Summary.Format())

	return nil
}
