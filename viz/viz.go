// Package viz renders a run's outcome as a standalone HTML page.
//
// The page carries one chart per training signal, overlaying the signal's
// points on its selected candidate curve, followed by a scatter chart of all
// classified test points grouped by assigned signal, with dedicated series
// for unmatched and off-grid points.
package viz

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/arloliu/fitmatch/errs"
	"github.com/arloliu/fitmatch/fit"
	"github.com/arloliu/fitmatch/frame"
)

const (
	chartWidth  = "900px"
	chartHeight = "420px"
)

// Data bundles everything one page visualizes.
type Data struct {
	Training   *frame.Frame
	Candidates *frame.Frame
	Fits       []fit.Assignment
	Results    []fit.Result
}

// Render writes the HTML page for d to w.
func Render(w io.Writer, d Data) error {
	if d.Training == nil || d.Training.Grid() == nil || d.Candidates == nil || d.Candidates.Grid() == nil {
		return fmt.Errorf("viz: %w", errs.ErrEmptyFrame)
	}

	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)

	for _, f := range d.Fits {
		chart, err := fitChart(d.Training, d.Candidates, f)
		if err != nil {
			return err
		}
		page.AddCharts(chart)
	}

	page.AddCharts(resultChart(d.Results))

	if err := page.Render(w); err != nil {
		return fmt.Errorf("viz: render page: %w", err)
	}

	return nil
}

// RenderFile writes the HTML page for d to path.
func RenderFile(path string, d Data) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Render(file, d); err != nil {
		file.Close()

		return fmt.Errorf("render %s: %w", path, err)
	}

	return file.Close()
}

// fitChart overlays one training signal on its selected candidate curve.
func fitChart(training, candidates *frame.Frame, f fit.Assignment) (components.Charter, error) {
	signal, ok := training.Column(f.Signal)
	if !ok {
		return nil, fmt.Errorf("viz: %w: %q", errs.ErrUnknownSignal, f.Signal)
	}
	candidate, ok := candidates.Column(f.Candidate)
	if !ok {
		return nil, fmt.Errorf("viz: %w: %q", errs.ErrUnknownCandidate, f.Candidate)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s fitted by %s", f.Signal, f.Candidate),
			Subtitle: fmt.Sprintf("mse %.6g, max deviation %.6g, r2 %.4f", f.MSE, f.MaxDeviation, f.RSquared),
		}),
	)

	grid := training.Grid()
	labels := make([]string, grid.Len())
	lineData := make([]opts.LineData, grid.Len())
	scatterData := make([]opts.ScatterData, grid.Len())
	for i := 0; i < grid.Len(); i++ {
		labels[i] = strconv.FormatFloat(grid.At(i), 'g', -1, 64)
		lineData[i] = opts.LineData{Value: candidate.Values[i]}
		scatterData[i] = opts.ScatterData{Value: signal.Values[i], SymbolSize: 5}
	}

	line.SetXAxis(labels)
	line.AddSeries(f.Candidate, lineData)

	scatter := charts.NewScatter()
	scatter.AddSeries(f.Signal, scatterData)
	line.Overlap(scatter)

	return line, nil
}

// resultChart plots classified test points on value axes, one series per
// assigned signal plus the two unmatched marker series.
func resultChart(results []fit.Result) components.Charter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: "test point classification"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value"}),
	)

	bySignal := make(map[string][]opts.ScatterData)
	var signalOrder []string
	var noFit, offGrid []opts.ScatterData

	for _, res := range results {
		point := opts.ScatterData{Value: []any{res.Point.X, res.Point.Y}, SymbolSize: 8}
		switch res.Status {
		case fit.StatusMatched:
			if _, seen := bySignal[res.Signal]; !seen {
				signalOrder = append(signalOrder, res.Signal)
			}
			bySignal[res.Signal] = append(bySignal[res.Signal], point)
		case fit.StatusOffGrid:
			offGrid = append(offGrid, point)
		default:
			noFit = append(noFit, point)
		}
	}

	for _, signal := range signalOrder {
		scatter.AddSeries(signal, bySignal[signal])
	}
	if len(noFit) > 0 {
		scatter.AddSeries("no fit", noFit)
	}
	if len(offGrid) > 0 {
		scatter.AddSeries("off grid", offGrid)
	}

	return scatter
}
