package trend

import (
	"fmt"
	"math"

	"github.com/arloliu/fitmatch/internal/options"
)

type config struct {
	kinds        []Kind
	harmonicFreq float64
}

func defaultConfig() config {
	return config{
		kinds:        AllKinds(),
		harmonicFreq: 1.0,
	}
}

// Option is a functional option for Analyze and AnalyzeFrame.
type Option = options.Option[*config]

// WithKinds restricts the analysis to the given model families. At least one
// kind is required and every kind must be known.
func WithKinds(kinds ...Kind) Option {
	return options.New(func(cfg *config) error {
		if len(kinds) == 0 {
			return fmt.Errorf("at least one model kind is required")
		}
		for _, k := range kinds {
			if _, ok := kindNames[k]; !ok {
				return fmt.Errorf("unknown model kind %d", int(k))
			}
		}
		cfg.kinds = kinds

		return nil
	})
}

// WithHarmonicFrequency sets the fixed angular frequency of the harmonic
// family. The frequency must be positive and finite.
func WithHarmonicFrequency(w float64) Option {
	return options.New(func(cfg *config) error {
		if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
			return fmt.Errorf("harmonic frequency must be positive and finite, got %v", w)
		}
		cfg.harmonicFreq = w

		return nil
	})
}
