package main

import (
	"fmt"
	"math"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/arloliu/fitmatch/fit"
	"github.com/arloliu/fitmatch/pipeline"
)

var fitsCmd = &cobra.Command{
	Use:   "fits",
	Short: "Select best-fit candidates only and print the assignment table",
	Example: `  fitmatch fits --train train.csv --ideal ideal.csv
  fitmatch fits --train train.fms --ideal ideal.fms --parallelism 8`,
	RunE: runFits,
}

func init() {
	fitsCmd.Flags().String("train", "train.csv", "training table (.csv, .csv.gz or .fms)")
	fitsCmd.Flags().String("ideal", "ideal.csv", "candidate table (.csv, .csv.gz or .fms)")
	fitsCmd.Flags().Int("parallelism", runtime.NumCPU(), "worker goroutines for selection")

	rootCmd.AddCommand(fitsCmd)
}

func runFits(cmd *cobra.Command, _ []string) error {
	trainPath, _ := cmd.Flags().GetString("train")
	idealPath, _ := cmd.Flags().GetString("ideal")
	parallelism, _ := cmd.Flags().GetInt("parallelism")

	training, err := pipeline.LoadFrame(trainPath)
	if err != nil {
		return fmt.Errorf("load training data: %w", err)
	}
	candidates, err := pipeline.LoadFrame(idealPath)
	if err != nil {
		return fmt.Errorf("load candidate functions: %w", err)
	}

	fits, err := fit.Select(training, candidates, fit.WithSelectParallelism(parallelism))
	if err != nil {
		return err
	}

	printFits(fits)

	return nil
}

// printFits renders the assignments as a fixed-width table. The tolerance
// column is the classification bound derived from the max deviation.
func printFits(fits []fit.Assignment) {
	nameWidth := len("signal")
	candWidth := len("candidate")
	for _, f := range fits {
		nameWidth = max(nameWidth, len(f.Signal))
		candWidth = max(candWidth, len(f.Candidate))
	}

	fmt.Printf("%-*s  %-*s  %12s  %12s  %12s  %12s  %9s\n",
		nameWidth, "signal", candWidth, "candidate", "mse", "rmse", "max dev", "tolerance", "r2")
	for _, f := range fits {
		fmt.Printf("%-*s  %-*s  %12.6g  %12.6g  %12.6g  %12.6g  %9.4f\n",
			nameWidth, f.Signal, candWidth, f.Candidate,
			f.MSE, f.RMSE, f.MaxDeviation, math.Sqrt2*f.MaxDeviation, f.RSquared)
	}
}
