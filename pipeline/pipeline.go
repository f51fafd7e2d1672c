// Package pipeline wires the fitmatch stages into one run: load inputs,
// select best fits, classify test points, then persist, render and export as
// configured.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/arloliu/fitmatch/csvio"
	"github.com/arloliu/fitmatch/fit"
	"github.com/arloliu/fitmatch/frame"
	"github.com/arloliu/fitmatch/report"
	"github.com/arloliu/fitmatch/snapshot"
	"github.com/arloliu/fitmatch/store"
	"github.com/arloliu/fitmatch/viz"
)

// SnapshotExt marks inputs loaded through the snapshot fast path instead of
// the CSV parser.
const SnapshotExt = ".fms"

// Config declares one run. Training, candidates and test paths are
// mandatory; the output paths are each optional and skip their stage when
// empty.
type Config struct {
	// TrainingPath and CandidatesPath accept .csv, .csv.gz or .fms files.
	TrainingPath   string
	CandidatesPath string
	// TestPath accepts .csv or .csv.gz files with x,y columns.
	TestPath string

	// DBPath persists inputs and outputs to SQLite when set.
	DBPath string
	// HTMLPath renders the visualization page when set.
	HTMLPath string
	// ResultsCSVPath exports per-point results when set.
	ResultsCSVPath string

	// Parallelism bounds the worker goroutines of selection and
	// classification. Zero selects a single worker; results do not depend on
	// the value.
	Parallelism int

	// Logger receives stage diagnostics. Nil selects zap's production
	// logger.
	Logger *zap.Logger
}

// Validate reports configuration errors before any file is touched.
func (c Config) Validate() error {
	if c.TrainingPath == "" {
		return fmt.Errorf("training path is required")
	}
	if c.CandidatesPath == "" {
		return fmt.Errorf("candidates path is required")
	}
	if c.TestPath == "" {
		return fmt.Errorf("test path is required")
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("parallelism must not be negative, got %d", c.Parallelism)
	}

	return nil
}

// Durations records wall-clock time per stage.
type Durations struct {
	Load     time.Duration
	Select   time.Duration
	Classify time.Duration
	Persist  time.Duration
	Render   time.Duration
	Export   time.Duration
	Total    time.Duration
}

// Outcome is everything a run produced.
type Outcome struct {
	RunID     string
	Fits      []fit.Assignment
	Results   []fit.Result
	Summary   report.Summary
	Durations Durations
}

// Run executes the pipeline for cfg.
//
// Selection failures abort the run; classification handles point-level
// issues through result markers and only fails on configuration errors.
func Run(ctx context.Context, cfg Config) (*Outcome, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		var err error
		logger, err = zap.NewProduction()
		if err != nil {
			return nil, fmt.Errorf("create logger: %w", err)
		}
	}

	parallelism := cfg.Parallelism
	if parallelism == 0 {
		parallelism = 1
	}

	outcome := &Outcome{RunID: store.NewRunID()}
	started := time.Now()

	stage := time.Now()
	training, err := LoadFrame(cfg.TrainingPath)
	if err != nil {
		return nil, fmt.Errorf("load training data: %w", err)
	}
	candidates, err := LoadFrame(cfg.CandidatesPath)
	if err != nil {
		return nil, fmt.Errorf("load candidate functions: %w", err)
	}
	points, err := csvio.ReadPointsFile(cfg.TestPath)
	if err != nil {
		return nil, fmt.Errorf("load test points: %w", err)
	}
	outcome.Durations.Load = time.Since(stage)

	logger.Info("loaded inputs",
		zap.String("run_id", outcome.RunID),
		zap.Int("grid_rows", training.Len()),
		zap.Int("signals", training.Width()),
		zap.Int("candidates", candidates.Width()),
		zap.Int("test_points", len(points)),
		zap.Duration("took", outcome.Durations.Load),
	)

	stage = time.Now()
	outcome.Fits, err = fit.Select(training, candidates, fit.WithSelectParallelism(parallelism))
	if err != nil {
		return nil, fmt.Errorf("select best fits: %w", err)
	}
	outcome.Durations.Select = time.Since(stage)

	for _, f := range outcome.Fits {
		logger.Debug("selected fit",
			zap.String("signal", f.Signal),
			zap.String("candidate", f.Candidate),
			zap.Float64("mse", f.MSE),
			zap.Float64("max_deviation", f.MaxDeviation),
		)
	}
	logger.Info("selected best fits",
		zap.Int("signals", len(outcome.Fits)),
		zap.Duration("took", outcome.Durations.Select),
	)

	stage = time.Now()
	outcome.Results, err = fit.Classify(points, outcome.Fits, candidates, fit.WithClassifyParallelism(parallelism))
	if err != nil {
		return nil, fmt.Errorf("classify test points: %w", err)
	}
	outcome.Durations.Classify = time.Since(stage)

	outcome.Summary = report.Summarize(outcome.Fits, outcome.Results)
	logger.Info("classified test points",
		zap.Int("matched", outcome.Summary.Matched),
		zap.Int("no_fit", outcome.Summary.NoFit),
		zap.Int("off_grid", outcome.Summary.OffGrid),
		zap.Duration("took", outcome.Durations.Classify),
	)

	if cfg.DBPath != "" {
		stage = time.Now()
		if err := persist(ctx, cfg.DBPath, logger, training, candidates, outcome); err != nil {
			return nil, err
		}
		outcome.Durations.Persist = time.Since(stage)
		logger.Info("persisted run",
			zap.String("db", cfg.DBPath),
			zap.Duration("took", outcome.Durations.Persist),
		)
	}

	if cfg.HTMLPath != "" {
		stage = time.Now()
		err := viz.RenderFile(cfg.HTMLPath, viz.Data{
			Training:   training,
			Candidates: candidates,
			Fits:       outcome.Fits,
			Results:    outcome.Results,
		})
		if err != nil {
			return nil, fmt.Errorf("render visualization: %w", err)
		}
		outcome.Durations.Render = time.Since(stage)
		logger.Info("rendered visualization",
			zap.String("html", cfg.HTMLPath),
			zap.Duration("took", outcome.Durations.Render),
		)
	}

	if cfg.ResultsCSVPath != "" {
		stage = time.Now()
		if err := csvio.WriteResultsFile(cfg.ResultsCSVPath, outcome.Fits, outcome.Results); err != nil {
			return nil, fmt.Errorf("export results: %w", err)
		}
		outcome.Durations.Export = time.Since(stage)
		logger.Info("exported results",
			zap.String("csv", cfg.ResultsCSVPath),
			zap.Duration("took", outcome.Durations.Export),
		)
	}

	outcome.Durations.Total = time.Since(started)

	return outcome, nil
}

// LoadFrame reads a series table, choosing the snapshot or CSV path by file
// extension.
func LoadFrame(path string) (*frame.Frame, error) {
	if strings.HasSuffix(path, SnapshotExt) {
		return snapshot.ReadFile(path)
	}

	return csvio.ReadFrameFile(path)
}

// persist saves the run's tables through one store handle.
func persist(ctx context.Context, dbPath string, logger *zap.Logger, training, candidates *frame.Frame, outcome *Outcome) error {
	s, err := store.Open(dbPath, store.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()

	if err := s.SaveFrame(ctx, store.TableTraining, training); err != nil {
		return fmt.Errorf("persist training data: %w", err)
	}
	if err := s.SaveFrame(ctx, store.TableIdeal, candidates); err != nil {
		return fmt.Errorf("persist candidate functions: %w", err)
	}
	if err := s.SaveAssignments(ctx, outcome.Fits); err != nil {
		return fmt.Errorf("persist best fits: %w", err)
	}
	if err := s.SaveResults(ctx, outcome.Fits, outcome.Results); err != nil {
		return fmt.Errorf("persist results: %w", err)
	}

	run := store.Run{
		ID:           outcome.RunID,
		CreatedAt:    time.Now().UTC(),
		TrainingRows: training.Len(),
		Signals:      training.Width(),
		Candidates:   candidates.Width(),
		TestPoints:   outcome.Summary.Points,
		Matched:      outcome.Summary.Matched,
		Unmatched:    outcome.Summary.NoFit,
		OffGrid:      outcome.Summary.OffGrid,
	}
	if err := s.SaveRun(ctx, run); err != nil {
		return fmt.Errorf("persist run: %w", err)
	}

	return s.Close()
}
