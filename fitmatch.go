// Package fitmatch selects best-fit candidate functions for noisy training
// signals and classifies test points against the selected fits.
//
// All series share one x-grid. Selection pairs every training signal with the
// candidate minimizing the mean squared error and records the largest absolute
// deviation of that pairing. Classification assigns a test point to the
// closest selected candidate whose deviation stays within sqrt(2) times the
// recorded training deviation; points off the grid or outside every bound are
// marked instead of matched.
//
// # Core Features
//
//   - Deterministic least-squares selection with per-signal deviation bounds
//   - Tolerance-based point classification with off-grid and no-fit markers
//   - CSV ingestion (plain or gzip) and binary snapshot tables
//   - SQLite persistence, HTML visualization and summary reports
//   - Optional index-sharded parallelism with identical results
//
// # Basic Usage
//
// Selecting fits and classifying points:
//
//	import "github.com/arloliu/fitmatch"
//
//	training, _ := fitmatch.LoadFrame("train.csv")
//	candidates, _ := fitmatch.LoadFrame("ideal.csv")
//	points, _ := fitmatch.LoadPoints("test.csv")
//
//	fits, _ := fitmatch.Select(training, candidates)
//	results, _ := fitmatch.Classify(points, fits, candidates)
//
//	for _, res := range results {
//	    fmt.Printf("(%g, %g) %s\n", res.Point.X, res.Point.Y, res.Status)
//	}
//
// Running the whole pipeline in one call:
//
//	outcome, _ := fitmatch.Run(context.Background(), fitmatch.Config{
//	    TrainingPath:   "train.csv",
//	    CandidatesPath: "ideal.csv",
//	    TestPath:       "test.csv",
//	    DBPath:         "run.db",
//	})
//	fmt.Print(outcome.Summary.Format())
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the fit, csvio
// and pipeline packages, simplifying the most common use cases. For
// fine-grained control, use those packages directly.
package fitmatch

import (
	"context"

	"github.com/arloliu/fitmatch/csvio"
	"github.com/arloliu/fitmatch/fit"
	"github.com/arloliu/fitmatch/frame"
	"github.com/arloliu/fitmatch/pipeline"
	"github.com/arloliu/fitmatch/report"
)

// Config declares one pipeline run. See pipeline.Config for field semantics.
type Config = pipeline.Config

// Outcome is everything a pipeline run produced. See pipeline.Outcome.
type Outcome = pipeline.Outcome

// Select pairs every training signal with its best-fit candidate.
//
// Both frames must be sampled on the same grid. The returned assignments
// mirror the training column order; each carries the selection error metrics
// and the max absolute deviation that later bounds classification.
//
// Parameters:
//   - training: Frame of training signals
//   - candidates: Frame of candidate functions on the same grid
//   - opts: Optional configuration (see fit.WithSelectParallelism)
//
// Returns:
//   - []fit.Assignment: One assignment per training signal, in column order.
//   - error: An error if the frames are empty or misaligned.
//
// Example:
//
//	fits, err := fitmatch.Select(training, candidates,
//	    fit.WithSelectParallelism(runtime.NumCPU()),
//	)
func Select(training, candidates *frame.Frame, opts ...fit.SelectOption) ([]fit.Assignment, error) {
	return fit.Select(training, candidates, opts...)
}

// Classify assigns each test point to the closest fitted candidate within its
// tolerance.
//
// Points whose x is not a grid member come back StatusOffGrid; points inside
// no fit's tolerance come back StatusNoFit. Neither condition is an error.
//
// Parameters:
//   - points: Test points to classify
//   - fits: Assignments produced by Select
//   - candidates: The candidate frame used during selection
//   - opts: Optional configuration (see fit.WithClassifyParallelism)
//
// Returns:
//   - []fit.Result: One result per point, in input order.
//   - error: An error if the candidate frame is empty or a fit references an
//     unknown candidate.
//
// Example:
//
//	results, err := fitmatch.Classify(points, fits, candidates)
//	for _, res := range results {
//	    if res.Matched() {
//	        fmt.Printf("%s via %s, deviation %g\n", res.Signal, res.Candidate, res.Deviation)
//	    }
//	}
func Classify(points []fit.Point, fits []fit.Assignment, candidates *frame.Frame, opts ...fit.ClassifyOption) ([]fit.Result, error) {
	return fit.Classify(points, fits, candidates, opts...)
}

// LoadFrame reads a series table from a file, detecting the format by
// extension: ".fms" loads a binary snapshot, everything else is parsed as
// CSV, transparently gunzipped for ".gz" files.
//
// Parameters:
//   - path: Table file (.csv, .csv.gz or .fms)
//
// Returns:
//   - *frame.Frame: The loaded table.
//   - error: An error if the file is missing or malformed.
func LoadFrame(path string) (*frame.Frame, error) {
	return pipeline.LoadFrame(path)
}

// LoadPoints reads test points from a CSV file with an x,y header,
// transparently gunzipped for ".gz" files.
//
// Parameters:
//   - path: Points file (.csv or .csv.gz)
//
// Returns:
//   - []fit.Point: The points in file order.
//   - error: An error if the file is missing or malformed.
func LoadPoints(path string) ([]fit.Point, error) {
	return csvio.ReadPointsFile(path)
}

// Run executes the full pipeline: load inputs, select fits, classify points
// and write the outputs enabled in cfg.
//
// Parameters:
//   - ctx: Context for persistence queries
//   - cfg: Run configuration; only the three input paths are mandatory
//
// Returns:
//   - *Outcome: Fits, results, summary and stage timings.
//   - error: An error if any stage fails.
//
// Example:
//
//	outcome, err := fitmatch.Run(ctx, fitmatch.Config{
//	    TrainingPath:   "train.csv",
//	    CandidatesPath: "ideal.csv",
//	    TestPath:       "test.csv",
//	    HTMLPath:       "report.html",
//	})
func Run(ctx context.Context, cfg Config) (*Outcome, error) {
	return pipeline.Run(ctx, cfg)
}

// Summarize folds fits and results into aggregate statistics with a printable
// table form.
//
// Parameters:
//   - fits: Assignments from Select
//   - results: Results from Classify
//
// Returns:
//   - report.Summary: Counts per status, per-signal match counts and deviation
//     statistics.
func Summarize(fits []fit.Assignment, results []fit.Result) report.Summary {
	return report.Summarize(fits, results)
}
