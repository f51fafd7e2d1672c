package fit

import (
	"fmt"
	"math"
	"sync"

	"github.com/arloliu/fitmatch/errs"
	"github.com/arloliu/fitmatch/frame"
	"github.com/arloliu/fitmatch/internal/options"
)

// Assignment records the outcome of best-fit selection for one training
// signal: the winning candidate, its mean squared error, and the maximum
// absolute deviation observed between signal and candidate across the grid.
//
// MaxDeviation is computed once, at selection time, from the training data
// only. Classification tolerances derive from this stored value and it is
// never recomputed later — recomputing it from test data would silently
// change classification outcomes.
//
// RMSE and RSquared are diagnostics; they do not influence selection or
// classification.
type Assignment struct {
	// Signal is the training column the assignment belongs to.
	Signal string
	// Candidate is the selected candidate column.
	Candidate string
	// MSE is the mean squared error between signal and candidate.
	MSE float64
	// MaxDeviation is max over the grid of |signal - candidate|.
	MaxDeviation float64
	// RMSE is sqrt(MSE).
	RMSE float64
	// RSquared is the coefficient of determination of the candidate against
	// the signal (1 = perfect fit; can go negative for poor fits).
	RSquared float64
}

// String returns a compact human-readable summary of the assignment.
func (a Assignment) String() string {
	return fmt.Sprintf("%s: candidate %s (mse %.6g, max deviation %.6g, r2 %.4f)",
		a.Signal, a.Candidate, a.MSE, a.MaxDeviation, a.RSquared)
}

type selectConfig struct {
	parallelism int
}

// SelectOption is a functional option for Select.
type SelectOption = options.Option[*selectConfig]

// WithSelectParallelism evaluates training signals across up to n goroutines.
// Results are written by signal index, so output is bit-identical to the
// sequential path. n < 1 is rejected.
func WithSelectParallelism(n int) SelectOption {
	return options.New(func(cfg *selectConfig) error {
		if n < 1 {
			return fmt.Errorf("parallelism must be >= 1, got %d", n)
		}
		cfg.parallelism = n

		return nil
	})
}

// Select chooses, for every training signal, the candidate column with the
// strictly smallest mean squared error against it.
//
// Both frames must be sampled on the same grid; Select fails fast with
// errs.ErrGridMismatch before computing any MSE otherwise, and with
// errs.ErrEmptyFrame when either frame is missing. No partial result is ever
// returned.
//
// The returned slice holds exactly one Assignment per training column, in
// training column order. Two signals may legally select the same candidate.
// Exact MSE ties keep the candidate encountered first, which makes the
// result deterministic for fixed input.
//
// Parameters:
//   - training: frame of k >= 1 training signals
//   - candidates: frame of m >= 1 candidate functions on the same grid
//   - opts: optional configuration (see WithSelectParallelism)
//
// Returns:
//   - []Assignment: one per training signal, in training column order
//   - error: errs.ErrEmptyFrame, errs.ErrGridMismatch, or option errors
func Select(training, candidates *frame.Frame, opts ...SelectOption) ([]Assignment, error) {
	if err := frame.AlignCheck(training, candidates); err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	if training.Width() == 0 || candidates.Width() == 0 {
		return nil, fmt.Errorf("select: %w", errs.ErrEmptyFrame)
	}

	cfg := &selectConfig{parallelism: 1}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}

	out := make([]Assignment, training.Width())

	workers := cfg.parallelism
	if workers > training.Width() {
		workers = training.Width()
	}
	if workers <= 1 {
		for i := range out {
			out[i] = selectOne(training.ColumnAt(i), candidates)
		}

		return out, nil
	}

	chunk := (len(out) + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < len(out); start += chunk {
		end := min(start+chunk, len(out))
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				out[i] = selectOne(training.ColumnAt(i), candidates)
			}
		}(start, end)
	}
	wg.Wait()

	return out, nil
}

// selectOne folds over all candidates for a single signal, keeping the one
// with the strictly smallest MSE, then derives the deviation bound and the
// diagnostics from the winner in one extra pass.
func selectOne(signal frame.Column, candidates *frame.Frame) Assignment {
	bestIdx := 0
	bestMSE := meanSquaredError(signal.Values, candidates.ColumnAt(0).Values)
	for j := 1; j < candidates.Width(); j++ {
		if mse := meanSquaredError(signal.Values, candidates.ColumnAt(j).Values); mse < bestMSE {
			bestMSE = mse
			bestIdx = j
		}
	}

	chosen := candidates.ColumnAt(bestIdx)

	return Assignment{
		Signal:       signal.Name,
		Candidate:    chosen.Name,
		MSE:          bestMSE,
		MaxDeviation: maxAbsDeviation(signal.Values, chosen.Values),
		RMSE:         math.Sqrt(bestMSE),
		RSquared:     rSquared(signal.Values, chosen.Values),
	}
}

// meanSquaredError computes (1/N)·Σ(observed - predicted)². Both slices are
// grid-aligned and equally long by construction.
func meanSquaredError(observed, predicted []float64) float64 {
	sumSq := 0.0
	for i := range observed {
		diff := observed[i] - predicted[i]
		sumSq += diff * diff
	}

	return sumSq / float64(len(observed))
}

// maxAbsDeviation computes max over i of |observed[i] - predicted[i]|.
func maxAbsDeviation(observed, predicted []float64) float64 {
	maxDev := 0.0
	for i := range observed {
		if dev := math.Abs(observed[i] - predicted[i]); dev > maxDev {
			maxDev = dev
		}
	}

	return maxDev
}

// rSquared computes the coefficient of determination of predicted against
// observed. Returns 0 when the observed values have no variance.
func rSquared(observed, predicted []float64) float64 {
	mean := 0.0
	for _, v := range observed {
		mean += v
	}
	mean /= float64(len(observed))

	ssTot := 0.0
	ssRes := 0.0
	for i := range observed {
		ssTot += (observed[i] - mean) * (observed[i] - mean)
		ssRes += (observed[i] - predicted[i]) * (observed[i] - predicted[i])
	}

	if ssTot == 0 {
		return 0
	}

	return 1.0 - (ssRes / ssTot)
}
