package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"
)

const (
	chartWidth  = 70
	chartHeight = 14

	// Residuals at or below this are clamped so the log chart stays finite.
	residualFloor = 1e-16
)

// ResidualChart plots log10 of the residual norms, which turns geometric
// convergence into a straight line.
func ResidualChart(residuals []float64, caption string) string {
	if len(residuals) < 2 {
		return ""
	}
	logs := make([]float64, len(residuals))
	for i, r := range residuals {
		if r < residualFloor {
			r = residualFloor
		}
		logs[i] = math.Log10(r)
	}
	return asciigraph.Plot(logs,
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth),
		asciigraph.Caption(caption),
	)
}
