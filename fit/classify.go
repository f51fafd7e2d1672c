package fit

import (
	"fmt"
	"math"
	"sync"

	"github.com/arloliu/fitmatch/errs"
	"github.com/arloliu/fitmatch/frame"
	"github.com/arloliu/fitmatch/internal/options"
)

// Point is a single test observation.
type Point struct {
	X float64
	Y float64
}

// Status describes the classification outcome for one test point.
type Status uint8

const (
	// StatusMatched means the point was assigned to a selected candidate
	// within its tolerance.
	StatusMatched Status = 0x1
	// StatusNoFit means the point lies on the grid but exceeds the tolerance
	// of every selected candidate.
	StatusNoFit Status = 0x2
	// StatusOffGrid means the point's x value is not a grid member; no
	// deviation is defined for it.
	StatusOffGrid Status = 0x3
)

// String returns the status name used in CSV output and persistence.
func (s Status) String() string {
	switch s {
	case StatusMatched:
		return "matched"
	case StatusNoFit:
		return "no_fit"
	case StatusOffGrid:
		return "off_grid"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// ParseStatus converts a status name back to its Status value.
func ParseStatus(name string) (Status, bool) {
	switch name {
	case "matched":
		return StatusMatched, true
	case "no_fit":
		return StatusNoFit, true
	case "off_grid":
		return StatusOffGrid, true
	default:
		return 0, false
	}
}

// Result is the classification outcome for one test point. Results preserve
// the order of the input points, one Result per Point.
//
// Signal, Candidate and Deviation are meaningful only when Status is
// StatusMatched; otherwise Signal and Candidate are empty and Deviation is
// NaN.
type Result struct {
	Point     Point
	Status    Status
	Signal    string
	Candidate string
	Deviation float64
}

// Matched reports whether the point was assigned to a candidate.
func (r Result) Matched() bool {
	return r.Status == StatusMatched
}

type classifyConfig struct {
	parallelism int
}

// ClassifyOption is a functional option for Classify.
type ClassifyOption = options.Option[*classifyConfig]

// WithClassifyParallelism classifies points across up to n goroutines.
// Results are written by point index, so output is bit-identical to the
// sequential path. n < 1 is rejected.
func WithClassifyParallelism(n int) ClassifyOption {
	return options.New(func(cfg *classifyConfig) error {
		if n < 1 {
			return fmt.Errorf("parallelism must be >= 1, got %d", n)
		}
		cfg.parallelism = n

		return nil
	})
}

// boundFit is an Assignment resolved against the candidate frame: the
// candidate's grid-aligned values plus the acceptance tolerance derived from
// the stored deviation bound.
type boundFit struct {
	signal    string
	candidate string
	values    []float64
	tolerance float64
}

// Classify assigns each test point to the best matching selected candidate,
// or marks it unmatched.
//
// A point with an x value that is not exactly a grid member gets
// StatusOffGrid. Otherwise the point is compared against every fit: the
// deviation |y - candidate(x)| must not exceed that fit's tolerance,
// sqrt(2) times the deviation bound stored at selection time. Among
// qualifying fits the smallest deviation wins; exact ties keep the fit
// listed first. A point qualifying for no fit gets StatusNoFit.
//
// The tolerance gate uses the bound recorded in the Assignment as-is. A
// fit selected from identical signal and candidate columns has bound zero,
// so only points lying exactly on the candidate match it.
//
// Classification is pure: it never modifies fits or candidates, and the
// result slice always has exactly len(points) entries in input order.
//
// Parameters:
//   - points: test observations, classified independently
//   - fits: selection outcomes; with no fits every on-grid point is
//     StatusNoFit
//   - candidates: the candidate frame selection ran against
//   - opts: optional configuration (see WithClassifyParallelism)
//
// Returns:
//   - []Result: one per point, in input order
//   - error: errs.ErrEmptyFrame, errs.ErrUnknownCandidate, or option errors
func Classify(points []Point, fits []Assignment, candidates *frame.Frame, opts ...ClassifyOption) ([]Result, error) {
	if candidates == nil || candidates.Grid() == nil {
		return nil, fmt.Errorf("classify: %w", errs.ErrEmptyFrame)
	}

	cfg := &classifyConfig{parallelism: 1}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}

	bound := make([]boundFit, len(fits))
	for i, f := range fits {
		col, ok := candidates.Column(f.Candidate)
		if !ok {
			return nil, fmt.Errorf("classify: %w: %q", errs.ErrUnknownCandidate, f.Candidate)
		}
		bound[i] = boundFit{
			signal:    f.Signal,
			candidate: f.Candidate,
			values:    col.Values,
			tolerance: math.Sqrt2 * f.MaxDeviation,
		}
	}

	grid := candidates.Grid()
	out := make([]Result, len(points))

	workers := cfg.parallelism
	if workers > len(points) {
		workers = len(points)
	}
	if workers <= 1 {
		for i, p := range points {
			out[i] = classifyOne(p, bound, grid)
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
				out[i] = classifyOne(points[i], bound, grid)
			}
		}(start, end)
	}
	wg.Wait()

	return out, nil
}

// classifyOne resolves a single point against the bound fits.
func classifyOne(p Point, fits []boundFit, grid *frame.Grid) Result {
	row, ok := grid.Lookup(p.X)
	if !ok {
		return Result{Point: p, Status: StatusOffGrid, Deviation: math.NaN()}
	}

	best := -1
	bestDev := math.Inf(1)
	for i := range fits {
		dev := math.Abs(p.Y - fits[i].values[row])
		if dev <= fits[i].tolerance && dev < bestDev {
			best = i
			bestDev = dev
		}
	}

	if best < 0 {
		return Result{Point: p, Status: StatusNoFit, Deviation: math.NaN()}
	}

	return Result{
		Point:     p,
		Status:    StatusMatched,
		Signal:    fits[best].signal,
		Candidate: fits[best].candidate,
		Deviation: bestDev,
	}
}
