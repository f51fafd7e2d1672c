package viz

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/fitmatch/errs"
	"github.com/arloliu/fitmatch/fit"
	"github.com/arloliu/fitmatch/frame"
)

func sampleData(t *testing.T) Data {
	t.Helper()

	g, err := frame.NewGrid([]float64{0, 1, 2, 3})
	require.NoError(t, err)

	training, err := frame.New(g, []frame.Column{
		{Name: "y1", Values: []float64{0, 1, 3, 3}},
	})
	require.NoError(t, err)

	candidates, err := frame.New(g, []frame.Column{
		{Name: "f1", Values: []float64{0, 1, 2, 3}},
	})
	require.NoError(t, err)

	fits, err := fit.Select(training, candidates)
	require.NoError(t, err)

	results, err := fit.Classify([]fit.Point{
		{X: 1, Y: 1.2},
		{X: 2, Y: 9},
		{X: 2.5, Y: 1},
	}, fits, candidates)
	require.NoError(t, err)

	return Data{Training: training, Candidates: candidates, Fits: fits, Results: results}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleData(t)))

	html := buf.String()
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, "y1 fitted by f1")
	assert.Contains(t, html, "test point classification")
	assert.Contains(t, html, "no fit")
	assert.Contains(t, html, "off grid")
}

func TestRenderNilFrames(t *testing.T) {
	err := Render(&bytes.Buffer{}, Data{})
	require.ErrorIs(t, err, errs.ErrEmptyFrame)
}

func TestRenderUnknownCandidate(t *testing.T) {
	d := sampleData(t)
	d.Fits = []fit.Assignment{{Signal: "y1", Candidate: "ghost", MaxDeviation: math.Sqrt2}}

	err := Render(&bytes.Buffer{}, d)
	require.ErrorIs(t, err, errs.ErrUnknownCandidate)
}

func TestRenderUnknownSignal(t *testing.T) {
	d := sampleData(t)
	d.Fits = []fit.Assignment{{Signal: "ghost", Candidate: "f1"}}

	err := Render(&bytes.Buffer{}, d)
	require.ErrorIs(t, err, errs.ErrUnknownSignal)
}

func TestRenderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.html")
	require.NoError(t, RenderFile(path, sampleData(t)))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "echarts")
}
