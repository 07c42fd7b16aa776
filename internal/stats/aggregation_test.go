package stats

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMean(t *testing.T) {
	if got := Mean([]float64{1, 2, 3, 4}); !almostEqual(got, 2.5) {
		t.Errorf("Mean = %v, want 2.5", got)
	}
	if got := Mean(nil); got != 0 {
		t.Errorf("Mean of empty = %v, want 0", got)
	}
}

func TestStdDev(t *testing.T) {
	// Sample stddev of {2, 4, 4, 4, 5, 5, 7, 9} is sqrt(32/7)
	got := StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	want := math.Sqrt(32.0 / 7.0)
	if !almostEqual(got, want) {
		t.Errorf("StdDev = %v, want %v", got, want)
	}

	if got := StdDev([]float64{5}); got != 0 {
		t.Errorf("StdDev of single value = %v, want 0", got)
	}
}

func TestLogMeanExcludesNonPositive(t *testing.T) {
	// Zeros and negatives are excluded, not treated as zero.
	got, ok := LogMean([]float64{math.E, math.E, 0, -3})
	if !ok {
		t.Fatal("LogMean reported no positive values")
	}
	if !almostEqual(got, 1) {
		t.Errorf("LogMean = %v, want 1", got)
	}

	if _, ok := LogMean([]float64{0, -1}); ok {
		t.Error("LogMean of non-positive values should report not-ok")
	}
}

func TestGeometricMean(t *testing.T) {
	got, ok := GeometricMean([]float64{2, 8})
	if !ok {
		t.Fatal("GeometricMean reported no positive values")
	}
	if !almostEqual(got, 4) {
		t.Errorf("GeometricMean = %v, want 4", got)
	}

	if _, ok := GeometricMean(nil); ok {
		t.Error("GeometricMean of empty input should report not-ok")
	}
}

func TestPooledStdDev(t *testing.T) {
	// sqrt(mean(variance)): sqrt((9+16)/2)
	got := PooledStdDev([]float64{3, 4})
	want := math.Sqrt(12.5)
	if !almostEqual(got, want) {
		t.Errorf("PooledStdDev = %v, want %v", got, want)
	}

	if got := PooledStdDev(nil); got != 0 {
		t.Errorf("PooledStdDev of empty = %v, want 0", got)
	}
}
