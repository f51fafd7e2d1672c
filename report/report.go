// Package report aggregates a run's selection and classification outcome
// into summary statistics and a printable table.
package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/arloliu/fitmatch/fit"
)

// Summary is the aggregated outcome of one run.
type Summary struct {
	// Signals is the number of fit assignments.
	Signals int
	// Points is the number of classified test points.
	Points int
	// Matched, NoFit and OffGrid partition Points by status.
	Matched int
	NoFit   int
	OffGrid int
	// PerSignal mirrors the fits order with per-signal match counts.
	PerSignal []SignalSummary
	// Deviation holds statistics over matched deviations; all fields are NaN
	// when nothing matched.
	Deviation DeviationStats
}

// SignalSummary is the selection outcome of one training signal plus the
// number of test points assigned to it.
type SignalSummary struct {
	Signal       string
	Candidate    string
	MSE          float64
	MaxDeviation float64
	RSquared     float64
	Matched      int
}

// DeviationStats describes the distribution of matched deviations.
type DeviationStats struct {
	Mean   float64
	StdDev float64
	Median float64
	P90    float64
	Max    float64
}

// Summarize folds fits and results into a Summary. It never fails: empty
// inputs produce zero counts and NaN deviation statistics.
func Summarize(fits []fit.Assignment, results []fit.Result) Summary {
	s := Summary{
		Signals:   len(fits),
		Points:    len(results),
		PerSignal: make([]SignalSummary, len(fits)),
	}

	matchedBySignal := make(map[string]int, len(fits))
	deviations := make([]float64, 0, len(results))

	for _, res := range results {
		switch res.Status {
		case fit.StatusMatched:
			s.Matched++
			matchedBySignal[res.Signal]++
			deviations = append(deviations, res.Deviation)
		case fit.StatusOffGrid:
			s.OffGrid++
		default:
			s.NoFit++
		}
	}

	for i, f := range fits {
		s.PerSignal[i] = SignalSummary{
			Signal:       f.Signal,
			Candidate:    f.Candidate,
			MSE:          f.MSE,
			MaxDeviation: f.MaxDeviation,
			RSquared:     f.RSquared,
			Matched:      matchedBySignal[f.Signal],
		}
	}

	s.Deviation = deviationStats(deviations)

	return s
}

// deviationStats computes the distribution of matched deviations. The input
// slice is sorted in place.
func deviationStats(deviations []float64) DeviationStats {
	if len(deviations) == 0 {
		nan := math.NaN()

		return DeviationStats{Mean: nan, StdDev: nan, Median: nan, P90: nan, Max: nan}
	}

	sort.Float64s(deviations)

	return DeviationStats{
		Mean:   stat.Mean(deviations, nil),
		StdDev: stat.StdDev(deviations, nil),
		Median: stat.Quantile(0.5, stat.Empirical, deviations, nil),
		P90:    stat.Quantile(0.9, stat.Empirical, deviations, nil),
		Max:    deviations[len(deviations)-1],
	}
}

// WriteTable renders the summary as a fixed-width text table.
func (s Summary) WriteTable(w io.Writer) error {
	_, err := fmt.Fprintf(w, "signals: %d  points: %d  matched: %d  no fit: %d  off grid: %d\n",
		s.Signals, s.Points, s.Matched, s.NoFit, s.OffGrid)
	if err != nil {
		return err
	}

	if len(s.PerSignal) > 0 {
		nameWidth := len("signal")
		candWidth := len("candidate")
		for _, ps := range s.PerSignal {
			nameWidth = max(nameWidth, len(ps.Signal))
			candWidth = max(candWidth, len(ps.Candidate))
		}

		_, err = fmt.Fprintf(w, "\n%-*s  %-*s  %12s  %12s  %9s  %7s\n",
			nameWidth, "signal", candWidth, "candidate", "mse", "max dev", "r2", "matched")
		if err != nil {
			return err
		}
		for _, ps := range s.PerSignal {
			_, err = fmt.Fprintf(w, "%-*s  %-*s  %12.6g  %12.6g  %9.4f  %7d\n",
				nameWidth, ps.Signal, candWidth, ps.Candidate, ps.MSE, ps.MaxDeviation, ps.RSquared, ps.Matched)
			if err != nil {
				return err
			}
		}
	}

	if s.Matched == 0 {
		_, err = fmt.Fprintln(w, "\nno matched points")

		return err
	}

	_, err = fmt.Fprintf(w, "\nmatched deviation: mean %.6g  std %.6g  median %.6g  p90 %.6g  max %.6g\n",
		s.Deviation.Mean, s.Deviation.StdDev, s.Deviation.Median, s.Deviation.P90, s.Deviation.Max)

	return err
}

// Format renders the summary table as a string.
func (s Summary) Format() string {
	var sb strings.Builder
	_ = s.WriteTable(&sb)

	return sb.String()
}
