package viz

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/mcint/internal/analysis"
)

// LogSeries returns log10 of each value. Non-positive values, which have no
// logarithm, take the smallest finite result so the series stays plottable.
func LogSeries(values []float64) []float64 {
	out := make([]float64, len(values))
	floor := math.Inf(1)
	for i, v := range values {
		if v > 0 && !math.IsInf(v, 0) {
			out[i] = math.Log10(v)
			floor = math.Min(floor, out[i])
		} else {
			out[i] = math.NaN()
		}
	}
	if math.IsInf(floor, 1) {
		floor = 0
	}
	for i := range out {
		if math.IsNaN(out[i]) {
			out[i] = floor
		}
	}
	return out
}

// PlotConvergence draws log10 relative error (red) against log10 of
// 1/sqrt(N) over the record. Sample counts are log-spaced, so the x axis is
// log N and the plot is a log-log chart. An empty record yields "".
func PlotConvergence(rec analysis.Record, width, height int) string {
	if len(rec) == 0 {
		return ""
	}

	errs := LogSeries(rec.Errors())
	expected := LogSeries(rec.Expected())

	caption := fmt.Sprintf("log10 relative error (red) vs log10 1/sqrt(N), N = %d..%d", rec[0].N, rec[len(rec)-1].N)
	return asciigraph.PlotMany(
		[][]float64{errs, expected},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Default),
		asciigraph.Caption(caption),
	)
}
