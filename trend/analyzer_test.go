package trend

import (
	"math"
	"strings"
	"testing"

	"github.com/arloliu/fitmatch/frame"
)

// TestAnalyzeRanksByRSquared verifies models come back sorted with BestFit
// first, using a wave that only the harmonic family can follow.
func TestAnalyzeRanksByRSquared(t *testing.T) {
	x := make([]float64, 64)
	y := make([]float64, 64)
	for i := range x {
		x[i] = float64(i) * 4 * math.Pi / 64
		y[i] = 0.5 + 2*math.Sin(x[i]) - math.Cos(x[i])
	}

	result, err := Analyze(x, y)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if result.BestFit == nil {
		t.Fatal("BestFit should not be nil")
	}
	if result.BestFit != result.AllModels[0] {
		t.Error("BestFit should be the first model in AllModels")
	}
	for i := 1; i < len(result.AllModels); i++ {
		if result.AllModels[i-1].RSquared < result.AllModels[i].RSquared {
			t.Errorf("models not sorted by r2: model %d has r2=%.3f, model %d has r2=%.3f",
				i-1, result.AllModels[i-1].RSquared, i, result.AllModels[i].RSquared)
		}
	}

	if result.BestFit.Kind != KindHarmonic {
		t.Fatalf("expected harmonic best fit, got %s", result.BestFit.Kind)
	}
	if result.BestFit.RSquared < 0.999999 {
		t.Errorf("harmonic fit should be near exact, got r2=%.6f", result.BestFit.RSquared)
	}

	coeffs := result.BestFit.Coefficients
	want := []float64{0.5, 2, -1}
	for i, w := range want {
		if math.Abs(coeffs[i]-w) > 1e-9 {
			t.Errorf("coefficient %d: expected %.4f, got %.4f", i, w, coeffs[i])
		}
	}
}

// TestAnalyzeQuadratic verifies a parabola beats the straight line.
func TestAnalyzeQuadratic(t *testing.T) {
	x := make([]float64, 11)
	y := make([]float64, 11)
	for i := range x {
		x[i] = float64(i) - 5
		y[i] = 1 - 0.5*x[i] + 2*x[i]*x[i]
	}

	result, err := Analyze(x, y, WithKinds(KindLinear, KindQuadratic))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(result.AllModels) != 2 {
		t.Fatalf("expected 2 models, got %d", len(result.AllModels))
	}
	if result.BestFit.Kind != KindQuadratic {
		t.Fatalf("expected quadratic best fit, got %s", result.BestFit.Kind)
	}

	coeffs := result.BestFit.Coefficients
	want := []float64{1, -0.5, 2}
	for i, w := range want {
		if math.Abs(coeffs[i]-w) > 1e-9 {
			t.Errorf("coefficient %d: expected %.4f, got %.4f", i, w, coeffs[i])
		}
	}
	if !strings.Contains(result.BestFit.Formula, "x^2") {
		t.Errorf("quadratic formula should mention x^2, got %q", result.BestFit.Formula)
	}
}

// TestAnalyzeExponential verifies the log-transform fit on positive data.
func TestAnalyzeExponential(t *testing.T) {
	x := make([]float64, 11)
	y := make([]float64, 11)
	for i := range x {
		x[i] = float64(i)
		y[i] = 2 * math.Exp(0.3*x[i])
	}

	result, err := Analyze(x, y, WithKinds(KindLinear, KindExponential))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if result.BestFit.Kind != KindExponential {
		t.Fatalf("expected exponential best fit, got %s", result.BestFit.Kind)
	}

	coeffs := result.BestFit.Coefficients
	if math.Abs(coeffs[0]-2) > 1e-9 {
		t.Errorf("amplitude: expected 2, got %.6f", coeffs[0])
	}
	if math.Abs(coeffs[1]-0.3) > 1e-9 {
		t.Errorf("rate: expected 0.3, got %.6f", coeffs[1])
	}
}

// TestAnalyzeExponentialRequiresPositive verifies the family is skipped on
// non-positive values.
func TestAnalyzeExponentialRequiresPositive(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{1, -1, 1, 2}

	_, err := Analyze(x, y, WithKinds(KindExponential))
	if err == nil {
		t.Fatal("expected error when no family fits")
	}

	// With another family available the analysis succeeds without the
	// exponential candidate.
	result, err := Analyze(x, y, WithKinds(KindLinear, KindExponential))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(result.AllModels) != 1 {
		t.Fatalf("expected 1 model, got %d", len(result.AllModels))
	}
	if result.BestFit.Kind != KindLinear {
		t.Errorf("expected linear best fit, got %s", result.BestFit.Kind)
	}
}

// TestAnalyzeTieKeepsFamilyOrder verifies exact ties preserve the configured
// kind order.
func TestAnalyzeTieKeepsFamilyOrder(t *testing.T) {
	// A constant series gives every polynomial family r2 = 0.
	x := []float64{0, 1, 2, 3, 4}
	y := []float64{3, 3, 3, 3, 3}

	result, err := Analyze(x, y, WithKinds(KindLinear, KindQuadratic, KindCubic))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if result.BestFit.Kind != KindLinear {
		t.Errorf("expected linear to win the tie, got %s", result.BestFit.Kind)
	}
}

// TestAnalyzeErrors tests input validation.
func TestAnalyzeErrors(t *testing.T) {
	if _, err := Analyze([]float64{1, 2}, []float64{1}); err == nil {
		t.Error("expected error for mismatched lengths")
	}
	if _, err := Analyze([]float64{1}, []float64{1}); err == nil {
		t.Error("expected error for a single point")
	}
	if _, err := Analyze([]float64{1, 2}, []float64{1, 2}, WithKinds()); err == nil {
		t.Error("expected error for empty kinds")
	}
	if _, err := Analyze([]float64{1, 2}, []float64{1, 2}, WithKinds(Kind(42))); err == nil {
		t.Error("expected error for unknown kind")
	}
	if _, err := Analyze([]float64{1, 2}, []float64{1, 2}, WithHarmonicFrequency(0)); err == nil {
		t.Error("expected error for zero frequency")
	}
	if _, err := Analyze([]float64{1, 2}, []float64{1, 2}, WithHarmonicFrequency(math.NaN())); err == nil {
		t.Error("expected error for NaN frequency")
	}
}

// TestAnalyzeFrame verifies per-column analysis preserves column order.
func TestAnalyzeFrame(t *testing.T) {
	grid, err := frame.NewGrid([]float64{-2, -1, 0, 1, 2})
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	f, err := frame.New(grid, []frame.Column{
		{Name: "y1", Values: []float64{-4, -2, 0, 2, 4}},
		{Name: "y2", Values: []float64{4, 1, 0, 1, 4}},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	results, err := AnalyzeFrame(f, WithKinds(KindLinear, KindHarmonic))
	if err != nil {
		t.Fatalf("AnalyzeFrame failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Signal != "y1" || results[1].Signal != "y2" {
		t.Errorf("results out of column order: %s, %s", results[0].Signal, results[1].Signal)
	}
	if results[0].Result.BestFit.Kind != KindLinear {
		t.Errorf("y1: expected linear, got %s", results[0].Result.BestFit.Kind)
	}
	if results[1].Result.BestFit.Kind != KindHarmonic {
		t.Errorf("y2: expected harmonic, got %s", results[1].Result.BestFit.Kind)
	}
}

// TestAnalyzeFrameNil tests the nil frame guard.
func TestAnalyzeFrameNil(t *testing.T) {
	if _, err := AnalyzeFrame(nil); err == nil {
		t.Error("expected error for nil frame")
	}
}

// TestHarmonicFrequencyOption verifies a custom frequency reaches the fit.
func TestHarmonicFrequencyOption(t *testing.T) {
	x := make([]float64, 64)
	y := make([]float64, 64)
	for i := range x {
		x[i] = float64(i) * 0.2
		y[i] = math.Sin(2.5 * x[i])
	}

	result, err := Analyze(x, y, WithKinds(KindHarmonic), WithHarmonicFrequency(2.5))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if result.BestFit.RSquared < 0.999999 {
		t.Errorf("expected near exact fit at matching frequency, got r2=%.6f", result.BestFit.RSquared)
	}

	pred, ok := result.BestFit.Predictor.(*HarmonicPredictor)
	if !ok {
		t.Fatalf("expected *HarmonicPredictor, got %T", result.BestFit.Predictor)
	}
	if pred.Frequency() != 2.5 {
		t.Errorf("expected frequency 2.5, got %v", pred.Frequency())
	}
}

// TestKindStrings verifies the name mappings round-trip.
func TestKindStrings(t *testing.T) {
	for _, k := range AllKinds() {
		name := k.String()
		if name == "unknown" {
			t.Errorf("kind %d has no name", int(k))
		}
		back, ok := KindFromString(strings.ToUpper(name))
		if !ok || back != k {
			t.Errorf("round trip failed for %s", name)
		}
	}

	if Kind(99).String() != "unknown" {
		t.Errorf("expected unknown for invalid kind")
	}
	if _, ok := KindFromString("fourier"); ok {
		t.Error("expected false for unknown name")
	}
}

// TestModelString verifies the one-line summaries.
func TestModelString(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{1, 3, 5, 7}

	result, err := Analyze(x, y, WithKinds(KindLinear))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	s := result.BestFit.String()
	if !strings.Contains(s, "linear") || !strings.Contains(s, "r2") {
		t.Errorf("unexpected model string: %q", s)
	}
	if !strings.Contains(result.String(), "Models: 1") {
		t.Errorf("unexpected result string: %q", result.String())
	}

	empty := &Result{}
	if empty.String() != "Result{BestFit: nil}" {
		t.Errorf("unexpected empty result string: %q", empty.String())
	}
}

func BenchmarkAnalyzeFrame(b *testing.B) {
	const rows = 400

	xs := make([]float64, rows)
	for i := range xs {
		xs[i] = -20 + 0.1*float64(i)
	}
	grid, err := frame.NewGrid(xs)
	if err != nil {
		b.Fatal(err)
	}

	cols := make([]frame.Column, 4)
	for c := range cols {
		values := make([]float64, rows)
		for i, x := range xs {
			values[i] = math.Sin(x) + float64(c)*0.25*x
		}
		cols[c] = frame.Column{Name: string(rune('a' + c)), Values: values}
	}
	f, err := frame.New(grid, cols)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	for b.Loop() {
		if _, err := AnalyzeFrame(f); err != nil {
			b.Fatal(err)
		}
	}
}
