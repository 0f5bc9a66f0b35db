package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// FrameTimeStats summarizes a window of frame durations.
type FrameTimeStats struct {
	Mean float64
	P10  float64
	P50  float64
	P90  float64
}

// ComputeFrameTimeStats returns mean and percentiles of the given frame
// durations (milliseconds). Returns zeros for an empty window.
func ComputeFrameTimeStats(ms []float64) FrameTimeStats {
	if len(ms) == 0 {
		return FrameTimeStats{}
	}
	sorted := make([]float64, len(ms))
	copy(sorted, ms)
	sort.Float64s(sorted)

	return FrameTimeStats{
		Mean: stat.Mean(sorted, nil),
		P10:  stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, sorted, nil),
	}
}
