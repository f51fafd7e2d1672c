package trend

import (
	"fmt"
	"math"
)

// Predictor evaluates a fitted model at arbitrary x.
type Predictor interface {
	// Predict returns the model value at x.
	Predict(x float64) float64
	// Kind returns the model family.
	Kind() Kind
	// Coefficients returns the fitted parameters in formula order.
	Coefficients() []float64
}

// PolyPredictor evaluates a polynomial of degree len(coefficients)-1.
type PolyPredictor struct {
	kind   Kind
	coeffs []float64
}

// NewPolyPredictor creates a polynomial predictor from coefficients ordered
// constant first. Two to four coefficients select the linear, quadratic or
// cubic family.
func NewPolyPredictor(coeffs []float64) (*PolyPredictor, error) {
	var kind Kind
	switch len(coeffs) {
	case 2:
		kind = KindLinear
	case 3:
		kind = KindQuadratic
	case 4:
		kind = KindCubic
	default:
		return nil, fmt.Errorf("polynomial model expects 2 to 4 coefficients, got %d", len(coeffs))
	}

	owned := make([]float64, len(coeffs))
	copy(owned, coeffs)

	return &PolyPredictor{kind: kind, coeffs: owned}, nil
}

// Predict evaluates the polynomial with Horner's scheme.
func (p *PolyPredictor) Predict(x float64) float64 {
	v := 0.0
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		v = v*x + p.coeffs[i]
	}

	return v
}

// Kind returns the polynomial family matching the coefficient count.
func (p *PolyPredictor) Kind() Kind {
	return p.kind
}

// Coefficients returns the fitted parameters, constant first.
func (p *PolyPredictor) Coefficients() []float64 {
	return p.coeffs
}

// HarmonicPredictor evaluates y = a + b*sin(w*x) + c*cos(w*x).
type HarmonicPredictor struct {
	a, b, c float64
	freq    float64
}

// NewHarmonicPredictor creates a harmonic predictor with fixed frequency w.
func NewHarmonicPredictor(a, b, c, w float64) *HarmonicPredictor {
	return &HarmonicPredictor{a: a, b: b, c: c, freq: w}
}

// Predict returns the wave value at x.
func (h *HarmonicPredictor) Predict(x float64) float64 {
	return h.a + h.b*math.Sin(h.freq*x) + h.c*math.Cos(h.freq*x)
}

// Kind returns KindHarmonic.
func (h *HarmonicPredictor) Kind() Kind {
	return KindHarmonic
}

// Coefficients returns [a, b, c].
func (h *HarmonicPredictor) Coefficients() []float64 {
	return []float64{h.a, h.b, h.c}
}

// Frequency returns the fixed angular frequency w.
func (h *HarmonicPredictor) Frequency() float64 {
	return h.freq
}

// ExpPredictor evaluates y = a * e^(b*x).
type ExpPredictor struct {
	a, b float64
}

// NewExpPredictor creates an exponential predictor.
func NewExpPredictor(a, b float64) *ExpPredictor {
	return &ExpPredictor{a: a, b: b}
}

// Predict returns the exponential value at x.
func (e *ExpPredictor) Predict(x float64) float64 {
	return e.a * math.Exp(e.b*x)
}

// Kind returns KindExponential.
func (e *ExpPredictor) Kind() Kind {
	return KindExponential
}

// Coefficients returns [a, b].
func (e *ExpPredictor) Coefficients() []float64 {
	return []float64{e.a, e.b}
}
