package trend

import (
	"fmt"
	"strings"
)

// Kind identifies a model family.
type Kind int

const (
	// KindLinear is the straight line y = a + b*x.
	KindLinear Kind = iota
	// KindQuadratic is the parabola y = a + b*x + c*x².
	KindQuadratic
	// KindCubic is the cubic polynomial y = a + b*x + c*x² + d*x³.
	KindCubic
	// KindHarmonic is the fixed-frequency wave y = a + b*sin(w*x) + c*cos(w*x).
	KindHarmonic
	// KindExponential is the growth curve y = a * e^(b*x).
	KindExponential
)

var kindNames = map[Kind]string{
	KindLinear:      "linear",
	KindQuadratic:   "quadratic",
	KindCubic:       "cubic",
	KindHarmonic:    "harmonic",
	KindExponential: "exponential",
}

// String returns the family name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return "unknown"
}

var kindFromString = map[string]Kind{
	"linear":      KindLinear,
	"quadratic":   KindQuadratic,
	"cubic":       KindCubic,
	"harmonic":    KindHarmonic,
	"exponential": KindExponential,
}

// KindFromString maps a family name to its Kind. The boolean is false for
// unknown names.
func KindFromString(name string) (Kind, bool) {
	k, ok := kindFromString[strings.ToLower(name)]

	return k, ok
}

// AllKinds returns every model family in declaration order.
func AllKinds() []Kind {
	return []Kind{KindLinear, KindQuadratic, KindCubic, KindHarmonic, KindExponential}
}

// Model is one fitted trend model with its goodness-of-fit metrics.
type Model struct {
	// Kind is the model family.
	Kind Kind
	// Coefficients contains the fitted parameters in formula order.
	Coefficients []float64
	// RSquared is the coefficient of determination (0-1, higher is better).
	RSquared float64
	// RMSE is the root mean square error of the fit.
	RMSE float64
	// Formula is a human-readable representation of the fitted model.
	Formula string
	// Predictor evaluates the fitted model at arbitrary x.
	Predictor Predictor
}

// String returns a one-line summary of the model.
func (m *Model) String() string {
	return fmt.Sprintf("%s: %s (r2 %.4f, rmse %.4g)", m.Kind, m.Formula, m.RSquared, m.RMSE)
}

// Result is the analysis outcome of one series.
type Result struct {
	// BestFit is the model with the highest R².
	BestFit *Model
	// AllModels contains every fitted model ranked by R², best first.
	AllModels []*Model
}

// String returns a one-line summary of the result.
func (r *Result) String() string {
	if r.BestFit == nil {
		return "Result{BestFit: nil}"
	}

	return fmt.Sprintf("Result{BestFit: %s, Models: %d}", r.BestFit, len(r.AllModels))
}

// SignalResult pairs a frame column with its analysis.
type SignalResult struct {
	Signal string
	Result *Result
}
