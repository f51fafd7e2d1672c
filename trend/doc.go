// Package trend characterizes sampled signals through least-squares fits of
// closed-form model families.
//
// While selection matches a signal against concrete sampled candidates, trend
// analysis answers a different question: which mathematical family does the
// signal follow, and with what coefficients. Each configured family is fitted
// by least squares and the candidates are ranked by R², best first.
//
// # Model Families
//
//   - Linear: y = a + b*x
//   - Quadratic: y = a + b*x + c*x²
//   - Cubic: y = a + b*x + c*x² + d*x³
//   - Harmonic: y = a + b*sin(w*x) + c*cos(w*x), fixed frequency w
//   - Exponential: y = a * e^(b*x), requires strictly positive values
//
// Polynomial and harmonic fits are linear in their parameters and solved
// through QR decomposition. The exponential fit works on log-transformed
// values and is skipped when any value is not positive.
//
// # Basic Usage
//
// Analyze one series:
//
//	result, err := trend.Analyze(xs, ys)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%s (r2 %.4f)\n", result.BestFit.Formula, result.BestFit.RSquared)
//
// Analyze every column of a frame:
//
//	results, err := trend.AnalyzeFrame(training)
//	for _, sr := range results {
//	    fmt.Printf("%s: %s\n", sr.Signal, sr.Result.BestFit.Formula)
//	}
package trend
