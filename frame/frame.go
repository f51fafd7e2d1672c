package frame

import (
	"fmt"

	"github.com/arloliu/fitmatch/errs"
)

// Column is one named series, aligned 1:1 with a grid.
type Column struct {
	Name   string
	Values []float64
}

// Frame is a grid plus one or more columns sampled on it. Frames are
// immutable after construction and safe for concurrent reads.
type Frame struct {
	grid    *Grid
	columns []Column
	byName  map[string]int
}

// New creates a frame over grid from the given columns, preserving column
// order. Column values are copied, so later changes to the caller's slices do
// not leak into the frame.
//
// Returns:
//   - errs.ErrEmptyGrid when grid is nil
//   - errs.ErrNoColumns when columns is empty
//   - errs.ErrEmptyColumnName, errs.ErrDuplicateColumn on bad names
//   - errs.ErrColumnLength when a column does not span the grid exactly
func New(grid *Grid, columns []Column) (*Frame, error) {
	if grid == nil {
		return nil, errs.ErrEmptyGrid
	}
	if len(columns) == 0 {
		return nil, errs.ErrNoColumns
	}

	byName := make(map[string]int, len(columns))
	copied := make([]Column, len(columns))
	for i, col := range columns {
		if col.Name == "" {
			return nil, fmt.Errorf("%w: column %d", errs.ErrEmptyColumnName, i)
		}
		if _, ok := byName[col.Name]; ok {
			return nil, fmt.Errorf("%w: %q", errs.ErrDuplicateColumn, col.Name)
		}
		if len(col.Values) != grid.Len() {
			return nil, fmt.Errorf("%w: column %q has %d values, grid has %d",
				errs.ErrColumnLength, col.Name, len(col.Values), grid.Len())
		}

		values := make([]float64, len(col.Values))
		copy(values, col.Values)
		copied[i] = Column{Name: col.Name, Values: values}
		byName[col.Name] = i
	}

	return &Frame{grid: grid, columns: copied, byName: byName}, nil
}

// Grid returns the frame's grid.
func (f *Frame) Grid() *Grid {
	return f.grid
}

// Len returns the number of rows (grid length).
func (f *Frame) Len() int {
	return f.grid.Len()
}

// Width returns the number of columns.
func (f *Frame) Width() int {
	return len(f.columns)
}

// Names returns the column names in frame order.
func (f *Frame) Names() []string {
	names := make([]string, len(f.columns))
	for i, col := range f.columns {
		names[i] = col.Name
	}

	return names
}

// Has reports whether a column with the given name exists.
func (f *Frame) Has(name string) bool {
	_, ok := f.byName[name]
	return ok
}

// Column returns the named column. The returned Values slice is a read-only
// view of frame storage; callers must not modify it.
func (f *Frame) Column(name string) (Column, bool) {
	i, ok := f.byName[name]
	if !ok {
		return Column{}, false
	}

	return f.columns[i], true
}

// ColumnAt returns the column at position i. Same read-only contract as
// Column.
func (f *Frame) ColumnAt(i int) Column {
	return f.columns[i]
}

// AlignCheck verifies that two frames are sampled on the same grid: same
// cardinality, same values, same order. It reports the first difference it
// finds; deviation arithmetic between misaligned tables is meaningless, so
// callers fail fast on any error.
func AlignCheck(a, b *Frame) error {
	if a == nil || b == nil || a.grid == nil || b.grid == nil {
		return errs.ErrEmptyFrame
	}

	ga, gb := a.grid, b.grid
	if ga.Len() != gb.Len() {
		return fmt.Errorf("%w: %d vs %d rows", errs.ErrGridMismatch, ga.Len(), gb.Len())
	}
	if ga.Equal(gb) {
		return nil
	}
	for i := range ga.Len() {
		if ga.At(i) != gb.At(i) {
			return fmt.Errorf("%w: %v vs %v at position %d", errs.ErrGridMismatch, ga.At(i), gb.At(i), i)
		}
	}

	return errs.ErrGridMismatch
}
