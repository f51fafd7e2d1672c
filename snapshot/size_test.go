package snapshot

import (
	"bytes"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/fitmatch/format"
	"github.com/arloliu/fitmatch/frame"
)

// sizeFrame builds a candidate-table shaped frame: 50 smooth waveforms
// sampled on an even grid.
func sizeFrame(t *testing.T, rows int) *frame.Frame {
	t.Helper()

	xs := make([]float64, rows)
	step := 40.0 / float64(rows)
	for i := range xs {
		xs[i] = -20.0 + step*float64(i)
	}

	cols := make([]frame.Column, 50)
	for j := range cols {
		values := make([]float64, rows)
		for i, x := range xs {
			switch j % 3 {
			case 0:
				values[i] = math.Sin(float64(j+1) * 0.1 * x)
			case 1:
				values[i] = 0.5*float64(j)*x + 3
			default:
				values[i] = x*x*0.05 - float64(j)
			}
		}
		cols[j] = frame.Column{Name: fmt.Sprintf("f%d", j+1), Values: values}
	}

	g, err := frame.NewGrid(xs)
	require.NoError(t, err)
	f, err := frame.New(g, cols)
	require.NoError(t, err)

	return f
}

// TestSnapshotSizes measures the on-disk size of each compression codec on
// candidate tables of a few row counts, against the uncompressed baseline.
func TestSnapshotSizes(t *testing.T) {
	codecs := []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}

	for _, rows := range []int{100, 400, 1000} {
		f := sizeFrame(t, rows)
		totalValues := (f.Width() + 1) * f.Len()

		t.Logf("%d rows x %d columns (%d values)", f.Len(), f.Width(), totalValues)
		t.Logf("%-6s  %9s  %12s  %9s", "codec", "bytes", "bytes/value", "savings")

		var baseline int
		for _, codec := range codecs {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, f, WithCompression(codec)))

			size := buf.Len()
			if codec == format.CompressionNone {
				baseline = size
				require.Greater(t, size, totalValues*8, "raw snapshot below payload size")
			}

			savings := "baseline"
			if codec != format.CompressionNone {
				savings = fmt.Sprintf("%.1f%%", 100*(1-float64(size)/float64(baseline)))
			}
			t.Logf("%-6s  %9d  %12.2f  %9s", codec, size, float64(size)/float64(totalValues), savings)
		}
	}
}
