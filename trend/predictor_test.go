package trend

import (
	"math"
	"testing"
)

// TestPolyPredictor verifies Horner evaluation for each degree.
func TestPolyPredictor(t *testing.T) {
	tests := []struct {
		name   string
		coeffs []float64
		kind   Kind
		x      float64
		want   float64
	}{
		{"linear", []float64{1, 2}, KindLinear, 3, 7},
		{"quadratic", []float64{1, 0, 2}, KindQuadratic, 3, 19},
		{"cubic", []float64{0, 1, 0, 1}, KindCubic, 2, 10},
		{"negative x", []float64{1, -0.5, 2}, KindQuadratic, -5, 53.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPolyPredictor(tt.coeffs)
			if err != nil {
				t.Fatalf("NewPolyPredictor failed: %v", err)
			}
			if p.Kind() != tt.kind {
				t.Errorf("expected kind %s, got %s", tt.kind, p.Kind())
			}
			if got := p.Predict(tt.x); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Predict(%v): expected %v, got %v", tt.x, tt.want, got)
			}
		})
	}
}

// TestPolyPredictorInvalidCoeffs tests the degree bounds.
func TestPolyPredictorInvalidCoeffs(t *testing.T) {
	if _, err := NewPolyPredictor([]float64{1}); err == nil {
		t.Error("expected error for a single coefficient")
	}
	if _, err := NewPolyPredictor([]float64{1, 2, 3, 4, 5}); err == nil {
		t.Error("expected error for five coefficients")
	}
	if _, err := NewPolyPredictor(nil); err == nil {
		t.Error("expected error for nil coefficients")
	}
}

// TestPolyPredictorCopiesCoeffs verifies the input slice is not retained.
func TestPolyPredictorCopiesCoeffs(t *testing.T) {
	coeffs := []float64{1, 2}
	p, err := NewPolyPredictor(coeffs)
	if err != nil {
		t.Fatalf("NewPolyPredictor failed: %v", err)
	}

	coeffs[0] = 100
	if got := p.Predict(0); got != 1 {
		t.Errorf("predictor should keep its own copy, Predict(0)=%v", got)
	}
}

// TestHarmonicPredictor verifies the wave evaluation.
func TestHarmonicPredictor(t *testing.T) {
	p := NewHarmonicPredictor(0.5, 2, -1, 1)
	if p.Kind() != KindHarmonic {
		t.Errorf("expected harmonic kind, got %s", p.Kind())
	}
	if p.Frequency() != 1 {
		t.Errorf("expected frequency 1, got %v", p.Frequency())
	}

	// At x=0: a + c. At x=pi/2: a + b.
	if got := p.Predict(0); math.Abs(got-(-0.5)) > 1e-12 {
		t.Errorf("Predict(0): expected -0.5, got %v", got)
	}
	if got := p.Predict(math.Pi / 2); math.Abs(got-2.5) > 1e-12 {
		t.Errorf("Predict(pi/2): expected 2.5, got %v", got)
	}

	coeffs := p.Coefficients()
	if len(coeffs) != 3 || coeffs[0] != 0.5 || coeffs[1] != 2 || coeffs[2] != -1 {
		t.Errorf("unexpected coefficients: %v", coeffs)
	}
}

// TestHarmonicPredictorFrequency verifies the frequency scales the argument.
func TestHarmonicPredictorFrequency(t *testing.T) {
	p := NewHarmonicPredictor(0, 1, 0, 2)
	if got := p.Predict(math.Pi / 4); math.Abs(got-1) > 1e-12 {
		t.Errorf("sin(2*pi/4): expected 1, got %v", got)
	}
}

// TestExpPredictor verifies the exponential evaluation.
func TestExpPredictor(t *testing.T) {
	p := NewExpPredictor(2, 0.3)
	if p.Kind() != KindExponential {
		t.Errorf("expected exponential kind, got %s", p.Kind())
	}
	if got := p.Predict(0); math.Abs(got-2) > 1e-12 {
		t.Errorf("Predict(0): expected 2, got %v", got)
	}
	if got := p.Predict(10); math.Abs(got-2*math.Exp(3)) > 1e-9 {
		t.Errorf("Predict(10): expected %v, got %v", 2*math.Exp(3), got)
	}

	coeffs := p.Coefficients()
	if len(coeffs) != 2 || coeffs[0] != 2 || coeffs[1] != 0.3 {
		t.Errorf("unexpected coefficients: %v", coeffs)
	}
}
