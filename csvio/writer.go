package csvio

import (
	"encoding/csv"
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

// WriteResults exports classification results with the header
// x,y,delta_y,ideal_func_no,status.
//
// delta_y and ideal_func_no are written only for matched points and stay
// empty otherwise; ideal_func_no is the 1-based position of the matched
// signal within fits. A matched result naming a signal absent from fits is
// errs.ErrUnknownSignal.
func WriteResults(w io.Writer, fits []fit.Assignment, results []fit.Result) error {
	ordinal := make(map[string]int, len(fits))
	for i, f := range fits {
		ordinal[f.Signal] = i + 1
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x", "y", "delta_y", "ideal_func_no", "status"}); err != nil {
		return err
	}

	record := make([]string, 5)
	for _, res := range results {
		record[0] = formatFloat(res.Point.X)
		record[1] = formatFloat(res.Point.Y)
		record[2] = ""
		record[3] = ""
		record[4] = res.Status.String()
		if res.Matched() {
			no, ok := ordinal[res.Signal]
			if !ok {
				return fmt.Errorf("%w: %q", errs.ErrUnknownSignal, res.Signal)
			}
			record[2] = formatFloat(res.Deviation)
			record[3] = strconv.Itoa(no)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}

// WriteResultsFile writes results to path. A ".gz" suffix selects gzip
// compression.
func WriteResultsFile(path string, fits []fit.Assignment, results []fit.Result) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteResults(w, fits, results)
	})
}

// WriteFrame exports a series table in the same layout ReadFrame accepts:
// header "x,<name>...", one row per grid position.
func WriteFrame(w io.Writer, f *frame.Frame) error {
	if f == nil || f.Grid() == nil {
		return errs.ErrEmptyFrame
	}

	cw := csv.NewWriter(w)

	header := append([]string{"x"}, f.Names()...)
	if err := cw.Write(header); err != nil {
		return err
	}

	grid := f.Grid()
	record := make([]string, f.Width()+1)
	for i := 0; i < f.Len(); i++ {
		record[0] = formatFloat(grid.At(i))
		for j := 0; j < f.Width(); j++ {
			record[j+1] = formatFloat(f.ColumnAt(j).Values[i])
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}

// WriteFrameFile writes a series table to path. A ".gz" suffix selects gzip
// compression.
func WriteFrameFile(path string, f *frame.Frame) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteFrame(w, f)
	})
}

// WritePoints exports test observations with the header x,y.
func WritePoints(w io.Writer, points []fit.Point) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x", "y"}); err != nil {
		return err
	}

	record := make([]string, 2)
	for _, p := range points {
		record[0] = formatFloat(p.X)
		record[1] = formatFloat(p.Y)
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}

// WritePointsFile writes test observations to path. A ".gz" suffix selects
// gzip compression.
func WritePointsFile(path string, points []fit.Point) error {
	return writeFile(path, func(w io.Writer) error {
		return WritePoints(w, points)
	})
}

// writeFile creates path, runs fn against it (through gzip when the path
// ends in .gz), and closes everything in order.
func writeFile(path string, fn func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	var w io.Writer = file
	var gz *gzip.Writer
	if strings.HasSuffix(path, ".gz") {
		gz = gzip.NewWriter(file)
		w = gz
	}

	if err := fn(w); err != nil {
		file.Close()

		return fmt.Errorf("write %s: %w", path, err)
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			file.Close()

			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	return file.Close()
}

// formatFloat renders v with the shortest representation that round-trips.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
