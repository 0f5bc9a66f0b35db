package telemetry

import (
	"math"
	"testing"
)

func TestComputeFrameTimeStatsEmpty(t *testing.T) {
	s := ComputeFrameTimeStats(nil)
	if s.Mean != 0 || s.P10 != 0 || s.P50 != 0 || s.P90 != 0 {
		t.Errorf("empty window gave %+v, want zeros", s)
	}
}

func TestComputeFrameTimeStatsKnownData(t *testing.T) {
	// 1..10 ms
	ms := make([]float64, 10)
	for i := range ms {
		ms[i] = float64(i + 1)
	}

	s := ComputeFrameTimeStats(ms)
	if math.Abs(s.Mean-5.5) > 1e-12 {
		t.Errorf("mean = %v, want 5.5", s.Mean)
	}
	if s.P10 > s.P50 || s.P50 > s.P90 {
		t.Errorf("percentiles not ordered: %+v", s)
	}
	if s.P10 < 1 || s.P90 > 10 {
		t.Errorf("percentiles outside data range: %+v", s)
	}
	if math.Abs(s.P50-5) > 1 {
		t.Errorf("median = %v, want ~5", s.P50)
	}
}

func TestComputeFrameTimeStatsDoesNotMutate(t *testing.T) {
	ms := []float64{9, 1, 5, 3, 7}
	ComputeFrameTimeStats(ms)
	want := []float64{9, 1, 5, 3, 7}
	for i := range ms {
		if ms[i] != want[i] {
			t.Fatalf("input reordered: %v", ms)
		}
	}
}

func TestComputeFrameTimeStatsSingleSample(t *testing.T) {
	s := ComputeFrameTimeStats([]float64{16.7})
	if s.Mean != 16.7 || s.P10 != 16.7 || s.P50 != 16.7 || s.P90 != 16.7 {
		t.Errorf("single sample stats = %+v, want all 16.7", s)
	}
}
