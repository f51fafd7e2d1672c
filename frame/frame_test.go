package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/fitmatch/errs"
)

func testGrid(t *testing.T, values ...float64) *Grid {
	t.Helper()
	grid, err := NewGrid(values)
	require.NoError(t, err)

	return grid
}

func TestNewFrame(t *testing.T) {
	grid := testGrid(t, 0, 1, 2, 3)

	f, err := New(grid, []Column{
		{Name: "y1", Values: []float64{0, 1, 2, 3}},
		{Name: "y2", Values: []float64{0, 2, 4, 6}},
	})
	require.NoError(t, err)

	assert.Equal(t, 4, f.Len())
	assert.Equal(t, 2, f.Width())
	assert.Equal(t, []string{"y1", "y2"}, f.Names())
	assert.True(t, f.Has("y2"))
	assert.False(t, f.Has("y3"))

	col, ok := f.Column("y2")
	require.True(t, ok)
	assert.Equal(t, []float64{0, 2, 4, 6}, col.Values)

	assert.Equal(t, "y1", f.ColumnAt(0).Name)
	assert.Same(t, grid, f.Grid())
}

func TestNewFrameErrors(t *testing.T) {
	grid := testGrid(t, 0, 1, 2)

	tests := []struct {
		name    string
		grid    *Grid
		columns []Column
		wantErr error
	}{
		{"nil grid", nil, []Column{{Name: "y1", Values: []float64{1, 2, 3}}}, errs.ErrEmptyGrid},
		{"no columns", grid, nil, errs.ErrNoColumns},
		{"empty name", grid, []Column{{Name: "", Values: []float64{1, 2, 3}}}, errs.ErrEmptyColumnName},
		{"duplicate name", grid, []Column{
			{Name: "y1", Values: []float64{1, 2, 3}},
			{Name: "y1", Values: []float64{4, 5, 6}},
		}, errs.ErrDuplicateColumn},
		{"short column", grid, []Column{{Name: "y1", Values: []float64{1, 2}}}, errs.ErrColumnLength},
		{"long column", grid, []Column{{Name: "y1", Values: []float64{1, 2, 3, 4}}}, errs.ErrColumnLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.grid, tt.columns)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewFrameCopiesColumnValues(t *testing.T) {
	grid := testGrid(t, 0, 1)
	source := []float64{10, 20}

	f, err := New(grid, []Column{{Name: "y1", Values: source}})
	require.NoError(t, err)

	source[0] = -1

	col, _ := f.Column("y1")
	assert.Equal(t, 10.0, col.Values[0], "frame must not alias caller slices")
}

func TestAlignCheck(t *testing.T) {
	grid := testGrid(t, 0, 1, 2)
	sameGrid := testGrid(t, 0, 1, 2)
	shortGrid := testGrid(t, 0, 1)
	shiftedGrid := testGrid(t, 0, 1, 2.5)

	mk := func(g *Grid) *Frame {
		f, err := New(g, []Column{{Name: "y1", Values: make([]float64, g.Len())}})
		require.NoError(t, err)

		return f
	}

	require.NoError(t, AlignCheck(mk(grid), mk(grid)))
	require.NoError(t, AlignCheck(mk(grid), mk(sameGrid)))

	err := AlignCheck(mk(grid), mk(shortGrid))
	require.ErrorIs(t, err, errs.ErrGridMismatch)
	assert.Contains(t, err.Error(), "3 vs 2")

	err = AlignCheck(mk(grid), mk(shiftedGrid))
	require.ErrorIs(t, err, errs.ErrGridMismatch)
	assert.Contains(t, err.Error(), "position 2")

	require.ErrorIs(t, AlignCheck(nil, mk(grid)), errs.ErrEmptyFrame)
	require.ErrorIs(t, AlignCheck(mk(grid), nil), errs.ErrEmptyFrame)
}
