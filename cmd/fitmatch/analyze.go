package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arloliu/fitmatch/pipeline"
	"github.com/arloliu/fitmatch/trend"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Fit trend models to each signal and print the ranking",
	Example: `  fitmatch analyze --in train.csv
  fitmatch analyze --in train.fms --models linear,quadratic --all`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("in", "train.csv", "input table (.csv, .csv.gz or .fms)")
	analyzeCmd.Flags().String("models", "", "comma separated model families (default all)")
	analyzeCmd.Flags().Float64("frequency", 1.0, "angular frequency for the harmonic family")
	analyzeCmd.Flags().Bool("all", false, "print every model per signal, not just the best fit")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	inPath, _ := cmd.Flags().GetString("in")
	models, _ := cmd.Flags().GetString("models")
	frequency, _ := cmd.Flags().GetFloat64("frequency")
	showAll, _ := cmd.Flags().GetBool("all")

	opts := []trend.Option{trend.WithHarmonicFrequency(frequency)}
	if models != "" {
		kinds, err := parseKinds(models)
		if err != nil {
			return err
		}
		opts = append(opts, trend.WithKinds(kinds...))
	}

	f, err := pipeline.LoadFrame(inPath)
	if err != nil {
		return fmt.Errorf("load input table: %w", err)
	}

	results, err := trend.AnalyzeFrame(f, opts...)
	if err != nil {
		return err
	}

	printTrends(results, showAll)

	return nil
}

// parseKinds maps a comma separated list of family names to kinds.
func parseKinds(models string) ([]trend.Kind, error) {
	var kinds []trend.Kind
	for _, name := range strings.Split(models, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		kind, ok := trend.KindFromString(name)
		if !ok {
			names := make([]string, 0, len(trend.AllKinds()))
			for _, k := range trend.AllKinds() {
				names = append(names, k.String())
			}

			return nil, fmt.Errorf("unknown model family %q, expected one of %s", name, strings.Join(names, ", "))
		}
		kinds = append(kinds, kind)
	}
	if len(kinds) == 0 {
		return nil, fmt.Errorf("no model families in %q", models)
	}

	return kinds, nil
}

// printTrends renders one row per signal, or every candidate model when all
// is set. Continuation rows leave the signal column blank.
func printTrends(results []trend.SignalResult, all bool) {
	nameWidth := len("signal")
	for _, r := range results {
		nameWidth = max(nameWidth, len(r.Signal))
	}

	fmt.Printf("%-*s  %-11s  %9s  %12s  %s\n", nameWidth, "signal", "model", "r2", "rmse", "formula")
	for _, r := range results {
		models := r.Result.AllModels
		if !all {
			models = models[:1]
		}
		for i, m := range models {
			name := r.Signal
			if i > 0 {
				name = ""
			}
			fmt.Printf("%-*s  %-11s  %9.4f  %12.6g  %s\n",
				nameWidth, name, m.Kind, m.RSquared, m.RMSE, m.Formula)
		}
	}
}
