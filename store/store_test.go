package store

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arloliu/fitmatch/errs"
	"github.com/arloliu/fitmatch/fit"
	"github.com/arloliu/fitmatch/frame"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func buildFrame(t *testing.T, names []string, xs []float64, series ...[]float64) *frame.Frame {
	t.Helper()
	g, err := frame.NewGrid(xs)
	require.NoError(t, err)

	cols := make([]frame.Column, len(names))
	for i, name := range names {
		cols[i] = frame.Column{Name: name, Values: series[i]}
	}
	f, err := frame.New(g, cols)
	require.NoError(t, err)

	return f
}

func TestFrameRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	f := buildFrame(t, []string{"y1", "y2"},
		[]float64{-1.5, 0, 2.5},
		[]float64{2, 4, 6.25},
		[]float64{3.5, 5, -7},
	)

	require.NoError(t, s.SaveFrame(ctx, TableTraining, f))

	got, err := s.LoadFrame(ctx, TableTraining)
	require.NoError(t, err)

	assert.Equal(t, f.Grid().Values(), got.Grid().Values())
	assert.Equal(t, f.Names(), got.Names())
	for i := 0; i < f.Width(); i++ {
		assert.Equal(t, f.ColumnAt(i).Values, got.ColumnAt(i).Values)
	}
}

func TestSaveFrameReplaces(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := buildFrame(t, []string{"y1"}, []float64{0, 1}, []float64{1, 2})
	second := buildFrame(t, []string{"other"}, []float64{5, 6, 7}, []float64{1, 2, 3})

	require.NoError(t, s.SaveFrame(ctx, TableIdeal, first))
	require.NoError(t, s.SaveFrame(ctx, TableIdeal, second))

	got, err := s.LoadFrame(ctx, TableIdeal)
	require.NoError(t, err)
	assert.Equal(t, []string{"other"}, got.Names())
	assert.Equal(t, 3, got.Len())
}

func TestFrameNaNBecomesNull(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	f := buildFrame(t, []string{"y1"}, []float64{0, 1}, []float64{1, math.NaN()})
	require.NoError(t, s.SaveFrame(ctx, TableTraining, f))

	got, err := s.LoadFrame(ctx, TableTraining)
	require.NoError(t, err)

	values := got.ColumnAt(0).Values
	assert.Equal(t, 1.0, values[0])
	assert.True(t, math.IsNaN(values[1]))
}

func TestAssignmentsRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	fits := []fit.Assignment{
		{Signal: "y1", Candidate: "f12", MSE: 0.25, MaxDeviation: 1, RMSE: 0.5, RSquared: 0.98},
		{Signal: "y2", Candidate: "f3", MSE: 4, MaxDeviation: 6, RMSE: 2, RSquared: -0.5},
	}

	require.NoError(t, s.SaveAssignments(ctx, fits))

	got, err := s.LoadAssignments(ctx)
	require.NoError(t, err)
	assert.Equal(t, fits, got)
}

func TestResultsRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	fits := []fit.Assignment{
		{Signal: "y1", Candidate: "f12", MaxDeviation: 1},
		{Signal: "y2", Candidate: "f3", MaxDeviation: 2},
	}
	results := []fit.Result{
		{Point: fit.Point{X: 0, Y: 1}, Status: fit.StatusMatched, Signal: "y2", Candidate: "f3", Deviation: 0.5},
		{Point: fit.Point{X: 1, Y: 9}, Status: fit.StatusNoFit, Deviation: math.NaN()},
		{Point: fit.Point{X: 1.5, Y: 2}, Status: fit.StatusOffGrid, Deviation: math.NaN()},
	}

	require.NoError(t, s.SaveResults(ctx, fits, results))

	got, err := s.LoadResults(ctx, fits)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, results[0], got[0])

	assert.Equal(t, fit.StatusNoFit, got[1].Status)
	assert.Empty(t, got[1].Signal)
	assert.True(t, math.IsNaN(got[1].Deviation))

	assert.Equal(t, fit.StatusOffGrid, got[2].Status)
	assert.True(t, math.IsNaN(got[2].Deviation))
}

func TestSaveResultsUnknownSignal(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	results := []fit.Result{
		{Point: fit.Point{X: 0, Y: 1}, Status: fit.StatusMatched, Signal: "ghost", Deviation: 0},
	}

	err := s.SaveResults(ctx, nil, results)
	require.ErrorIs(t, err, errs.ErrUnknownSignal)
}

func TestLoadResultsOrdinalOutOfRange(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	fits := []fit.Assignment{{Signal: "y1", Candidate: "f1"}}
	results := []fit.Result{
		{Point: fit.Point{X: 0, Y: 1}, Status: fit.StatusMatched, Signal: "y1", Candidate: "f1", Deviation: 0},
	}
	require.NoError(t, s.SaveResults(ctx, fits, results))

	_, err := s.LoadResults(ctx, nil)
	require.ErrorIs(t, err, errs.ErrUnknownSignal)
}

func TestSaveRunAppends(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := Run{
		CreatedAt:    time.Now().UTC(),
		TrainingRows: 400,
		Signals:      4,
		Candidates:   50,
		TestPoints:   100,
		Matched:      80,
		Unmatched:    15,
		OffGrid:      5,
	}

	first := base
	first.ID = NewRunID()
	second := base
	second.ID = NewRunID()
	require.NotEqual(t, first.ID, second.ID)

	require.NoError(t, s.SaveRun(ctx, first))
	require.NoError(t, s.SaveRun(ctx, second))

	var count int
	require.NoError(t, s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs").Scan(&count))
	assert.Equal(t, 2, count)
}

func TestLoadFrameEmptyTable(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.db.ExecContext(ctx, `CREATE TABLE empty_series (x REAL NOT NULL, "y1" REAL)`)
	require.NoError(t, err)

	_, err = s.LoadFrame(ctx, "empty_series")
	require.ErrorIs(t, err, errs.ErrEmptyTable)
}

func TestLoadAssignmentsMissingTable(t *testing.T) {
	s := openTestStore(t)

	_, err := s.LoadAssignments(context.Background())
	require.Error(t, err)
}

func TestClosedStore(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	ctx := context.Background()
	f := buildFrame(t, []string{"y1"}, []float64{0}, []float64{1})

	assert.ErrorIs(t, s.SaveFrame(ctx, TableTraining, f), errs.ErrStoreClosed)
	assert.ErrorIs(t, s.SaveAssignments(ctx, nil), errs.ErrStoreClosed)
	assert.ErrorIs(t, s.SaveResults(ctx, nil, nil), errs.ErrStoreClosed)
	assert.ErrorIs(t, s.SaveRun(ctx, Run{}), errs.ErrStoreClosed)

	_, err = s.LoadFrame(ctx, TableTraining)
	assert.ErrorIs(t, err, errs.ErrStoreClosed)
	_, err = s.LoadAssignments(ctx)
	assert.ErrorIs(t, err, errs.ErrStoreClosed)
	_, err = s.LoadResults(ctx, nil)
	assert.ErrorIs(t, err, errs.ErrStoreClosed)
}

func TestQuoteIdentRejectsHostileNames(t *testing.T) {
	for _, name := range []string{"", `y1"; DROP TABLE runs; --`, "y\x001"} {
		_, err := quoteIdent(name)
		require.Error(t, err, "name %q", name)
	}

	quoted, err := quoteIdent("y1")
	require.NoError(t, err)
	assert.Equal(t, `"y1"`, quoted)
}

func TestOpenFileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fitmatch.db")

	s, err := Open(path, WithLogger(zap.NewNop()))
	require.NoError(t, err)

	ctx := context.Background()
	f := buildFrame(t, []string{"y1"}, []float64{0, 1}, []float64{1, 2})
	require.NoError(t, s.SaveFrame(ctx, TableTraining, f))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.LoadFrame(ctx, TableTraining)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Len())
}

func TestWithLoggerNil(t *testing.T) {
	_, err := Open(":memory:", WithLogger(nil))
	require.Error(t, err)
}
