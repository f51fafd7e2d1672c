package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/arloliu/fitmatch/errs"
	"github.com/arloliu/fitmatch/fit"
	"github.com/arloliu/fitmatch/frame"
)

// SaveFrame writes f to table as (x REAL, <series> REAL ...), one row per
// grid position. An existing table with the same name is replaced.
func (s *Store) SaveFrame(ctx context.Context, table string, f *frame.Frame) error {
	if err := s.guard(); err != nil {
		return err
	}
	if f == nil || f.Grid() == nil {
		return fmt.Errorf("save frame: %w", errs.ErrEmptyFrame)
	}

	tbl, err := quoteIdent(table)
	if err != nil {
		return err
	}

	columns := make([]string, 0, f.Width()+1)
	columns = append(columns, `"x"`)
	for _, name := range f.Names() {
		quoted, err := quoteIdent(name)
		if err != nil {
			return err
		}
		columns = append(columns, quoted)
	}

	ddl := fmt.Sprintf("CREATE TABLE %s (%s REAL NOT NULL", tbl, columns[0])
	for _, quoted := range columns[1:] {
		ddl += fmt.Sprintf(", %s REAL", quoted)
	}
	ddl += ")"

	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (?%s)",
		tbl, strings.Join(columns, ", "), strings.Repeat(", ?", f.Width()))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save frame: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+tbl); err != nil {
		return fmt.Errorf("drop %s: %w", table, err)
	}
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create %s: %w", table, err)
	}

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("prepare insert into %s: %w", table, err)
	}
	defer stmt.Close()

	grid := f.Grid()
	args := make([]any, f.Width()+1)
	for i := 0; i < f.Len(); i++ {
		args[0] = grid.At(i)
		for j := 0; j < f.Width(); j++ {
			args[j+1] = f.ColumnAt(j).Values[i]
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save frame: %w", err)
	}

	s.logger.Debug("saved frame",
		zap.String("table", table),
		zap.Int("rows", f.Len()),
		zap.Int("columns", f.Width()),
	)

	return nil
}

// SaveAssignments replaces the best_fits table with one row per fit, in
// fits order.
func (s *Store) SaveAssignments(ctx context.Context, fits []fit.Assignment) error {
	if err := s.guard(); err != nil {
		return err
	}

	const ddl = `CREATE TABLE best_fits (
		signal TEXT NOT NULL,
		candidate TEXT NOT NULL,
		mse REAL NOT NULL,
		max_deviation REAL NOT NULL,
		rmse REAL NOT NULL,
		r_squared REAL NOT NULL
	)`
	const insert = `INSERT INTO best_fits
		(signal, candidate, mse, max_deviation, rmse, r_squared)
		VALUES (?, ?, ?, ?, ?, ?)`

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save assignments: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS best_fits"); err != nil {
		return fmt.Errorf("drop best_fits: %w", err)
	}
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create best_fits: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("prepare insert into best_fits: %w", err)
	}
	defer stmt.Close()

	for _, f := range fits {
		_, err := stmt.ExecContext(ctx, f.Signal, f.Candidate, f.MSE, f.MaxDeviation, f.RMSE, f.RSquared)
		if err != nil {
			return fmt.Errorf("insert into best_fits: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save assignments: %w", err)
	}

	s.logger.Debug("saved assignments", zap.Int("fits", len(fits)))

	return nil
}

// SaveResults replaces the test_data table with one row per classification
// result, in results order. delta_y and ideal_func_no are NULL for
// unmatched points; ideal_func_no is the 1-based position of the matched
// signal within fits.
func (s *Store) SaveResults(ctx context.Context, fits []fit.Assignment, results []fit.Result) error {
	if err := s.guard(); err != nil {
		return err
	}

	ordinal := make(map[string]int, len(fits))
	for i, f := range fits {
		ordinal[f.Signal] = i + 1
	}

	const ddl = `CREATE TABLE test_data (
		x REAL NOT NULL,
		y REAL NOT NULL,
		delta_y REAL,
		ideal_func_no INTEGER,
		status TEXT NOT NULL
	)`
	const insert = `INSERT INTO test_data
		(x, y, delta_y, ideal_func_no, status)
		VALUES (?, ?, ?, ?, ?)`

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save results: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS test_data"); err != nil {
		return fmt.Errorf("drop test_data: %w", err)
	}
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create test_data: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("prepare insert into test_data: %w", err)
	}
	defer stmt.Close()

	for _, res := range results {
		var deltaY sql.NullFloat64
		var funcNo sql.NullInt64
		if res.Matched() {
			no, ok := ordinal[res.Signal]
			if !ok {
				return fmt.Errorf("%w: %q", errs.ErrUnknownSignal, res.Signal)
			}
			deltaY = sql.NullFloat64{Float64: res.Deviation, Valid: true}
			funcNo = sql.NullInt64{Int64: int64(no), Valid: true}
		}
		_, err := stmt.ExecContext(ctx, res.Point.X, res.Point.Y, deltaY, funcNo, res.Status.String())
		if err != nil {
			return fmt.Errorf("insert into test_data: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save results: %w", err)
	}

	s.logger.Debug("saved results", zap.Int("points", len(results)))

	return nil
}

// Run is one row of the runs table: identity plus the headline counts of a
// pipeline run.
type Run struct {
	ID           string
	CreatedAt    time.Time
	TrainingRows int
	Signals      int
	Candidates   int
	TestPoints   int
	Matched      int
	Unmatched    int
	OffGrid      int
}

// SaveRun appends one row to the runs table, creating it on first use. The
// table is never replaced, so run history survives across saves.
func (s *Store) SaveRun(ctx context.Context, run Run) error {
	if err := s.guard(); err != nil {
		return err
	}

	const ddl = `CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT NOT NULL PRIMARY KEY,
		created_at TIMESTAMP NOT NULL,
		training_rows INTEGER NOT NULL,
		signals INTEGER NOT NULL,
		candidates INTEGER NOT NULL,
		test_points INTEGER NOT NULL,
		matched INTEGER NOT NULL,
		unmatched INTEGER NOT NULL,
		off_grid INTEGER NOT NULL
	)`
	const insert = `INSERT INTO runs
		(run_id, created_at, training_rows, signals, candidates, test_points, matched, unmatched, off_grid)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create runs: %w", err)
	}
	_, err := s.db.ExecContext(ctx, insert,
		run.ID, run.CreatedAt, run.TrainingRows, run.Signals, run.Candidates,
		run.TestPoints, run.Matched, run.Unmatched, run.OffGrid)
	if err != nil {
		return fmt.Errorf("insert into runs: %w", err)
	}

	s.logger.Info("saved run",
		zap.String("run_id", run.ID),
		zap.Int("matched", run.Matched),
		zap.Int("unmatched", run.Unmatched),
		zap.Int("off_grid", run.OffGrid),
	)

	return nil
}
