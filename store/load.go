package store

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/arloliu/fitmatch/errs"
	"github.com/arloliu/fitmatch/fit"
	"github.com/arloliu/fitmatch/frame"
)

// LoadFrame reads a table written by SaveFrame back into a frame, preserving
// row and column order. NULL cells load as NaN.
func (s *Store) LoadFrame(ctx context.Context, table string) (*frame.Frame, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}

	tbl, err := quoteIdent(table)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, "SELECT * FROM "+tbl+" ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", table, err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", table, err)
	}
	if len(names) < 2 || names[0] != "x" {
		return nil, fmt.Errorf("load %s: want an x column plus series, got %v", table, names)
	}

	xs := make([]float64, 0, 64)
	series := make([][]float64, len(names)-1)

	scanned := make([]sql.NullFloat64, len(names))
	dest := make([]any, len(names))
	for i := range scanned {
		dest[i] = &scanned[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("load %s: %w", table, err)
		}
		xs = append(xs, nullableFloat(scanned[0]))
		for j := range series {
			series[j] = append(series[j], nullableFloat(scanned[j+1]))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load %s: %w", table, err)
	}
	if len(xs) == 0 {
		return nil, fmt.Errorf("load %s: %w", table, errs.ErrEmptyTable)
	}

	grid, err := frame.NewGrid(xs)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", table, err)
	}

	cols := make([]frame.Column, len(series))
	for j := range cols {
		cols[j] = frame.Column{Name: names[j+1], Values: series[j]}
	}

	return frame.New(grid, cols)
}

// LoadAssignments reads the best_fits table back in its saved order.
func (s *Store) LoadAssignments(ctx context.Context) ([]fit.Assignment, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}

	const query = `SELECT signal, candidate, mse, max_deviation, rmse, r_squared
		FROM best_fits ORDER BY rowid`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load best_fits: %w", err)
	}
	defer rows.Close()

	var fits []fit.Assignment
	for rows.Next() {
		var a fit.Assignment
		if err := rows.Scan(&a.Signal, &a.Candidate, &a.MSE, &a.MaxDeviation, &a.RMSE, &a.RSquared); err != nil {
			return nil, fmt.Errorf("load best_fits: %w", err)
		}
		fits = append(fits, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load best_fits: %w", err)
	}
	if len(fits) == 0 {
		return nil, fmt.Errorf("load best_fits: %w", errs.ErrEmptyTable)
	}

	return fits, nil
}

// LoadResults reads the test_data table back in its saved order. fits
// resolves ideal_func_no ordinals back to signal and candidate names, so it
// must be the same assignment list the results were saved with (LoadAssignments
// provides it).
func (s *Store) LoadResults(ctx context.Context, fits []fit.Assignment) ([]fit.Result, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}

	const query = `SELECT x, y, delta_y, ideal_func_no, status
		FROM test_data ORDER BY rowid`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load test_data: %w", err)
	}
	defer rows.Close()

	var results []fit.Result
	for rows.Next() {
		var (
			x, y      float64
			deltaY    sql.NullFloat64
			funcNo    sql.NullInt64
			statusStr string
		)
		if err := rows.Scan(&x, &y, &deltaY, &funcNo, &statusStr); err != nil {
			return nil, fmt.Errorf("load test_data: %w", err)
		}

		status, ok := fit.ParseStatus(statusStr)
		if !ok {
			return nil, fmt.Errorf("load test_data: unknown status %q", statusStr)
		}

		res := fit.Result{
			Point:     fit.Point{X: x, Y: y},
			Status:    status,
			Deviation: nullableFloat(deltaY),
		}
		if status == fit.StatusMatched {
			no := int(funcNo.Int64)
			if !funcNo.Valid || no < 1 || no > len(fits) {
				return nil, fmt.Errorf("load test_data: %w: ideal_func_no %d", errs.ErrUnknownSignal, no)
			}
			res.Signal = fits[no-1].Signal
			res.Candidate = fits[no-1].Candidate
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load test_data: %w", err)
	}

	return results, nil
}

// nullableFloat converts a NULL REAL back to NaN.
func nullableFloat(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}

	return v.Float64
}
