package trend

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/arloliu/fitmatch/errs"
	"github.com/arloliu/fitmatch/frame"
	"github.com/arloliu/fitmatch/internal/options"
)

// Analyze fits the configured model families to one series and ranks them by
// R², best first. Families that cannot be fitted to the data, such as the
// exponential family on non-positive values, are skipped rather than failing
// the analysis.
//
// Parameters:
//   - x: sample positions
//   - y: sample values, aligned 1:1 with x
//   - opts: optional configuration (see WithKinds, WithHarmonicFrequency)
//
// Returns:
//   - *Result: best-fit model plus all fitted candidates
//   - error: when the series is too short, misaligned, or no family fits
func Analyze(x, y []float64, opts ...Option) (*Result, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("mismatched series lengths: %d x vs %d y values", len(x), len(y))
	}
	if len(x) < 2 {
		return nil, fmt.Errorf("insufficient data points for trend analysis: %d", len(x))
	}

	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	models := make([]*Model, 0, len(cfg.kinds))
	for _, kind := range cfg.kinds {
		if m, ok := fitKind(kind, x, y, cfg); ok {
			models = append(models, m)
		}
	}
	if len(models) == 0 {
		return nil, errors.New("no model family fits the series")
	}

	slices.SortStableFunc(models, func(a, b *Model) int {
		switch {
		case a.RSquared > b.RSquared:
			return -1
		case a.RSquared < b.RSquared:
			return 1
		default:
			return 0
		}
	})

	return &Result{BestFit: models[0], AllModels: models}, nil
}

// AnalyzeFrame runs Analyze against every column of the frame, using the grid
// as x. Results mirror the column order.
func AnalyzeFrame(f *frame.Frame, opts ...Option) ([]SignalResult, error) {
	if f == nil || f.Grid() == nil {
		return nil, fmt.Errorf("trend: %w", errs.ErrEmptyFrame)
	}

	x := f.Grid().Values()
	out := make([]SignalResult, f.Width())
	for i := range out {
		col := f.ColumnAt(i)
		res, err := Analyze(x, col.Values, opts...)
		if err != nil {
			return nil, fmt.Errorf("analyze %s: %w", col.Name, err)
		}
		out[i] = SignalResult{Signal: col.Name, Result: res}
	}

	return out, nil
}

func fitKind(kind Kind, x, y []float64, cfg config) (*Model, bool) {
	switch kind {
	case KindLinear:
		return fitPolynomial(x, y, 1)
	case KindQuadratic:
		return fitPolynomial(x, y, 2)
	case KindCubic:
		return fitPolynomial(x, y, 3)
	case KindHarmonic:
		return fitHarmonic(x, y, cfg.harmonicFreq)
	case KindExponential:
		return fitExponential(x, y)
	default:
		return nil, false
	}
}

// fitPolynomial solves the least-squares polynomial of the given degree
// through QR decomposition of the Vandermonde design matrix.
func fitPolynomial(x, y []float64, degree int) (*Model, bool) {
	n := len(x)
	cols := degree + 1
	if n < cols {
		return nil, false
	}

	a := mat.NewDense(n, cols, nil)
	for i, xi := range x {
		v := 1.0
		for j := range cols {
			a.Set(i, j, v)
			v *= xi
		}
	}

	coeffs, err := solveLeastSquares(a, y)
	if err != nil {
		return nil, false
	}
	pred, err := NewPolyPredictor(coeffs)
	if err != nil {
		return nil, false
	}

	r2, rmse := goodness(x, y, pred)

	return &Model{
		Kind:         pred.Kind(),
		Coefficients: coeffs,
		RSquared:     r2,
		RMSE:         rmse,
		Formula:      polyFormula(coeffs),
		Predictor:    pred,
	}, true
}

// fitHarmonic solves y = a + b*sin(w*x) + c*cos(w*x), which is linear in a,
// b and c for a fixed frequency w.
func fitHarmonic(x, y []float64, w float64) (*Model, bool) {
	n := len(x)
	if n < 3 {
		return nil, false
	}

	a := mat.NewDense(n, 3, nil)
	for i, xi := range x {
		a.Set(i, 0, 1)
		a.Set(i, 1, math.Sin(w*xi))
		a.Set(i, 2, math.Cos(w*xi))
	}

	coeffs, err := solveLeastSquares(a, y)
	if err != nil {
		return nil, false
	}
	pred := NewHarmonicPredictor(coeffs[0], coeffs[1], coeffs[2], w)

	r2, rmse := goodness(x, y, pred)
	formula := fmt.Sprintf("y = %.4g + %.4g*sin(%.4g*x) + %.4g*cos(%.4g*x)",
		coeffs[0], coeffs[1], w, coeffs[2], w)

	return &Model{
		Kind:         KindHarmonic,
		Coefficients: coeffs,
		RSquared:     r2,
		RMSE:         rmse,
		Formula:      formula,
		Predictor:    pred,
	}, true
}

// fitExponential solves ln(y) = ln(a) + b*x on log-transformed values and
// maps the intercept back. The family only applies to strictly positive
// series.
func fitExponential(x, y []float64) (*Model, bool) {
	n := len(x)
	if n < 2 {
		return nil, false
	}
	for _, yi := range y {
		if yi <= 0 || math.IsNaN(yi) {
			return nil, false
		}
	}

	a := mat.NewDense(n, 2, nil)
	logY := make([]float64, n)
	for i, xi := range x {
		a.Set(i, 0, 1)
		a.Set(i, 1, xi)
		logY[i] = math.Log(y[i])
	}

	coeffs, err := solveLeastSquares(a, logY)
	if err != nil {
		return nil, false
	}
	amp := math.Exp(coeffs[0])
	pred := NewExpPredictor(amp, coeffs[1])

	r2, rmse := goodness(x, y, pred)
	formula := fmt.Sprintf("y = %.4g * exp(%.4g*x)", amp, coeffs[1])

	return &Model{
		Kind:         KindExponential,
		Coefficients: []float64{amp, coeffs[1]},
		RSquared:     r2,
		RMSE:         rmse,
		Formula:      formula,
		Predictor:    pred,
	}, true
}

// solveLeastSquares returns the minimum-norm solution of a*coeffs = y.
func solveLeastSquares(a *mat.Dense, y []float64) ([]float64, error) {
	var qr mat.QR
	qr.Factorize(a)

	var sol mat.VecDense
	if err := qr.SolveVecTo(&sol, false, mat.NewVecDense(len(y), y)); err != nil {
		return nil, err
	}

	_, cols := a.Dims()
	coeffs := make([]float64, cols)
	for i := range coeffs {
		coeffs[i] = sol.AtVec(i)
	}

	return coeffs, nil
}

// goodness computes R² and RMSE of the predictor against the series in one
// pass over the residuals.
func goodness(x, y []float64, p Predictor) (r2, rmse float64) {
	n := len(y)
	if n == 0 {
		return 0, 0
	}

	mean := 0.0
	for _, yi := range y {
		mean += yi
	}
	mean /= float64(n)

	var ssTot, ssRes float64
	for i, yi := range y {
		res := yi - p.Predict(x[i])
		ssRes += res * res
		dev := yi - mean
		ssTot += dev * dev
	}

	if ssTot == 0 {
		r2 = 0
	} else {
		r2 = 1.0 - ssRes/ssTot
	}
	rmse = math.Sqrt(ssRes / float64(n))

	return r2, rmse
}

// polyFormula renders polynomial coefficients as a readable equation.
func polyFormula(coeffs []float64) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "y = %.4g", coeffs[0])
	for i, c := range coeffs[1:] {
		if i == 0 {
			fmt.Fprintf(&sb, " + %.4g*x", c)
			continue
		}
		fmt.Fprintf(&sb, " + %.4g*x^%d", c, i+1)
	}

	return sb.String()
}
