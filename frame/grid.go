package frame

import (
	"fmt"
	"math"

	"github.com/arloliu/fitmatch/errs"
	"github.com/arloliu/fitmatch/internal/hash"
)

// Grid is the shared, ordered set of independent-variable values.
//
// Values are distinct and finite; both properties are enforced at
// construction. A Grid is immutable once created and safe for concurrent use.
type Grid struct {
	values      []float64
	index       map[float64]int
	fingerprint uint64
}

// NewGrid creates a grid from the given values, in the given order.
//
// Returns:
//   - errs.ErrEmptyGrid when values is empty
//   - errs.ErrNonFiniteGridValue when a value is NaN or ±Inf
//   - errs.ErrDuplicateGridValue when two values are equal
func NewGrid(values []float64) (*Grid, error) {
	if len(values) == 0 {
		return nil, errs.ErrEmptyGrid
	}

	vs := make([]float64, len(values))
	copy(vs, values)

	index := make(map[float64]int, len(vs))
	for i, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %v at position %d", errs.ErrNonFiniteGridValue, v, i)
		}
		if prev, ok := index[v]; ok {
			return nil, fmt.Errorf("%w: %v at positions %d and %d", errs.ErrDuplicateGridValue, v, prev, i)
		}
		index[v] = i
	}

	return &Grid{
		values:      vs,
		index:       index,
		fingerprint: hash.Fingerprint(vs),
	}, nil
}

// Len returns the number of grid values.
func (g *Grid) Len() int {
	return len(g.values)
}

// At returns the value at position i. Panics when i is out of range, the
// same way a slice access would.
func (g *Grid) At(i int) float64 {
	return g.values[i]
}

// Values returns a copy of the grid values in order.
func (g *Grid) Values() []float64 {
	out := make([]float64, len(g.values))
	copy(out, g.values)

	return out
}

// Lookup returns the position of x in the grid. The match is exact float64
// equality — no interpolation, no tolerance — because every table in a run is
// expected to originate from the same canonical grid.
func (g *Grid) Lookup(x float64) (int, bool) {
	i, ok := g.index[x]
	return i, ok
}

// Fingerprint returns the xxHash64 digest of the grid's value bits. Two grids
// with the same fingerprint are bit-identical for all practical purposes;
// Equal confirms elementwise.
func (g *Grid) Fingerprint() uint64 {
	return g.fingerprint
}

// Equal reports whether both grids hold the same values in the same order.
// Matching fingerprints short-circuit to true (bit-identical grids); anything
// else is compared elementwise, so a ±0.0 bit difference still counts as
// equal.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || len(g.values) != len(other.values) {
		return false
	}
	if g.fingerprint == other.fingerprint {
		return true
	}
	for i, v := range g.values {
		if v != other.values[i] {
			return false
		}
	}

	return true
}
