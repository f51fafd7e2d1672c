package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/arloliu/fitmatch/errs"
	"github.com/arloliu/fitmatch/fit"
	"github.com/arloliu/fitmatch/frame"
)

// ReadFrame parses a table of grid-aligned series from CSV.
//
// The first header column must be "x" (case-insensitive); its cells become
// the frame's grid and must therefore be finite and distinct. Every other
// header column becomes one series. All cells must parse as float64.
//
// Returns errs.ErrMissingHeader on empty input, errs.ErrBadHeader on a
// malformed header, errs.ErrBadCell (with row and column context) on an
// unparseable cell, and the frame package's construction errors for grid or
// column violations.
func ReadFrame(r io.Reader) (*frame.Frame, error) {
	header, records, err := readTable(r)
	if err != nil {
		return nil, err
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("%w: need x plus at least one series column, got %d columns", errs.ErrBadHeader, len(header))
	}
	if header[0] != "x" {
		return nil, fmt.Errorf("%w: first column must be x, got %q", errs.ErrBadHeader, header[0])
	}

	xs := make([]float64, len(records))
	cols := make([]frame.Column, len(header)-1)
	for j := range cols {
		cols[j] = frame.Column{Name: header[j+1], Values: make([]float64, len(records))}
	}

	for i, record := range records {
		for j, cell := range record {
			v, err := parseCell(cell, i, header[j])
			if err != nil {
				return nil, err
			}
			if j == 0 {
				xs[i] = v
			} else {
				cols[j-1].Values[i] = v
			}
		}
	}

	grid, err := frame.NewGrid(xs)
	if err != nil {
		return nil, fmt.Errorf("x column: %w", err)
	}

	return frame.New(grid, cols)
}

// ReadFrameFile reads a series table from path. A ".gz" suffix selects
// transparent gzip decompression.
func ReadFrameFile(path string) (*frame.Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r, closeGz, err := maybeGzipReader(path, file)
	if err != nil {
		return nil, err
	}
	defer closeGz()

	f, err := ReadFrame(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return f, nil
}

// ReadPoints parses test observations from CSV. The header must be exactly
// "x,y" (case-insensitive). Rows may appear in any order and duplicate x
// values are allowed; points are returned in file order.
func ReadPoints(r io.Reader) ([]fit.Point, error) {
	header, records, err := readTable(r)
	if err != nil {
		return nil, err
	}
	if len(header) != 2 || header[0] != "x" || header[1] != "y" {
		return nil, fmt.Errorf("%w: want x,y columns, got %v", errs.ErrBadHeader, header)
	}

	points := make([]fit.Point, len(records))
	for i, record := range records {
		x, err := parseCell(record[0], i, "x")
		if err != nil {
			return nil, err
		}
		y, err := parseCell(record[1], i, "y")
		if err != nil {
			return nil, err
		}
		points[i] = fit.Point{X: x, Y: y}
	}

	return points, nil
}

// ReadPointsFile reads test observations from path. A ".gz" suffix selects
// transparent gzip decompression.
func ReadPointsFile(path string) ([]fit.Point, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r, closeGz, err := maybeGzipReader(path, file)
	if err != nil {
		return nil, err
	}
	defer closeGz()

	points, err := ReadPoints(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return points, nil
}

// readTable reads the header row, lowercased and trimmed, plus all data
// records. The csv reader enforces a uniform field count against the header.
func readTable(r io.Reader) ([]string, [][]string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, errs.ErrMissingHeader
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read csv header: %w", err)
	}
	for i, name := range header {
		header[i] = strings.ToLower(strings.TrimSpace(name))
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv records: %w", err)
	}

	return header, records, nil
}

// parseCell parses one float cell. row is the 0-based data row index; the
// reported position is the 1-based file line, header included.
func parseCell(cell string, row int, column string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q at line %d, column %q", errs.ErrBadCell, cell, row+2, column)
	}

	return v, nil
}

// maybeGzipReader wraps file in a gzip reader when path carries a .gz
// suffix. The returned closer is a no-op for plain files.
func maybeGzipReader(path string, file *os.File) (io.Reader, func() error, error) {
	if !strings.HasSuffix(path, ".gz") {
		return file, func() error { return nil }, nil
	}

	gz, err := gzip.NewReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("open gzip %s: %w", path, err)
	}

	return gz, gz.Close, nil
}
