package pipeline

import (
	"math"
	"testing"
	"time"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/require"

	"github.com/drillwise/mwd-backend-go/internal/models"
)

func fp(v float64) *float64 { return &v }

func TestFineBinStats(t *testing.T) {
	hole := testHole("P1", "DR0094", "S94", 1, baseTime, 10*time.Minute,
		r3.Vector{}, r3.Vector{Z: -10})

	s1 := testSample(hole, 0.05, 30, 100)
	s2 := testSample(hole, 0.15, 0, 200) // zero rate: indices undefined

	joined, _ := JoinSamples([]models.HoleContext{hole}, []models.RawSample{s1, s2})
	bins := Bin(SampleAggregator{WidthM: 0.2}, joined)
	require.Len(t, bins, 1)
	b := bins[0]

	require.Equal(t, 0, b.BinIndex)
	require.Equal(t, 2, b.SampleCount)
	require.InDelta(t, 0.05, b.MinDepthM, 1e-9)
	require.InDelta(t, 0.10, b.AvgDepthM, 1e-9)
	require.InDelta(t, 0.15, b.MaxDepthM, 1e-9)
	require.True(t, b.MinDepthM <= b.AvgDepthM && b.AvgDepthM <= b.MaxDepthM)

	require.InDelta(t, 150, b.AvgPercussionPressure, 1e-9)
	require.InDelta(t, 15, b.AvgPenetrationRate, 1e-9)
	require.NotNil(t, b.AvgFeederPressure)
	require.InDelta(t, 20, *b.AvgFeederPressure, 1e-9)

	// Only the non-zero-rate sample contributes to the indices.
	require.NotNil(t, b.Hardness1.Mean)
	require.InDelta(t, 0.2, *b.Hardness1.Mean, 1e-9)
	require.InDelta(t, 0.2, *b.Hardness1.Max, 1e-9)
	require.InDelta(t, 0, *b.Hardness1.StdDev, 1e-9)
	require.InDelta(t, 0.2, *b.Hardness1.Smoothed, 1e-9)

	require.NotNil(t, b.Hardness2LogMean)
	require.InDelta(t, math.Log(0.24), *b.Hardness2LogMean, 1e-9)

	// Mean interpolated position of the two samples on a vertical hole.
	require.InDelta(t, -0.1, b.Position.Z, 1e-9)
}

func TestFineBinAllZeroRate(t *testing.T) {
	hole := testHole("P1", "DR0094", "S94", 1, baseTime, 10*time.Minute,
		r3.Vector{}, r3.Vector{Z: -10})

	joined, _ := JoinSamples([]models.HoleContext{hole}, []models.RawSample{
		testSample(hole, 0.05, 0, 100),
		testSample(hole, 0.10, 0, 120),
	})
	bins := Bin(SampleAggregator{WidthM: 0.2}, joined)
	require.Len(t, bins, 1)

	// A bin of all-zero-rate samples aggregates without error and keeps
	// nil index statistics rather than zero or NaN.
	b := bins[0]
	require.Equal(t, 2, b.SampleCount)
	require.Nil(t, b.Hardness1.Mean)
	require.Nil(t, b.Hardness1.Smoothed)
	require.Nil(t, b.Hardness2LogMean)
}

func TestCoarseCountConservation(t *testing.T) {
	hole := testHole("P1", "DR0094", "S94", 1, baseTime, 10*time.Minute,
		r3.Vector{}, r3.Vector{Z: -10})

	var samples []models.RawSample
	for i := 1; i <= 38; i++ {
		samples = append(samples, testSample(hole, float64(i)*0.05, 30, 100))
	}

	joined, _ := JoinSamples([]models.HoleContext{hole}, samples)
	fine := Bin(SampleAggregator{WidthM: 0.2}, joined)
	coarse := Bin(BinAggregator{WidthM: 1.0}, fine)
	require.Len(t, coarse, 2)

	fineCounts := make(map[int]int)
	fineBins := make(map[int]int)
	for _, fb := range fine {
		idx := int(math.Floor(float64(fb.BinIndex) * fb.WidthM / 1.0))
		fineCounts[idx] += fb.SampleCount
		fineBins[idx]++
	}

	total := 0
	for _, cb := range coarse {
		require.Equal(t, fineCounts[cb.BinIndex], cb.SampleCount)
		require.Equal(t, fineBins[cb.BinIndex], cb.FineBinCount)
		require.True(t, cb.MinDepthM <= cb.AvgDepthM && cb.AvgDepthM <= cb.MaxDepthM)
		total += cb.SampleCount
	}
	require.Equal(t, len(samples), total)
}

func coarseFixtureBin(key models.AttemptKey, index int, h1 models.IndexStats, h2Smoothed, h2LogMean float64) models.DepthBin {
	return models.DepthBin{
		Key:         key,
		BinIndex:    index,
		WidthM:      0.2,
		SampleCount: 5,
		MinDepthM:   float64(index) * 0.2,
		AvgDepthM:   float64(index)*0.2 + 0.1,
		MaxDepthM:   float64(index)*0.2 + 0.2,
		Hardness1:   h1,
		Hardness2: models.IndexStats{
			Mean:     fp(1),
			Max:      fp(2),
			StdDev:   fp(1),
			Smoothed: fp(h2Smoothed),
		},
		Hardness2LogMean: fp(h2LogMean),
	}
}

func TestCoarsePooledStdDev(t *testing.T) {
	key := models.AttemptKey{Pattern: "P1", RigSerial: "S94", HoleID: 1, BitDiameterMM: 102, StartUnix: baseTime.Unix()}

	group := []models.DepthBin{
		coarseFixtureBin(key, 0, models.IndexStats{Mean: fp(1), Max: fp(3), StdDev: fp(3), Smoothed: fp(2)}, 3, math.Log(2)),
		coarseFixtureBin(key, 1, models.IndexStats{Mean: fp(2), Max: fp(5), StdDev: fp(4), Smoothed: fp(8)}, 5, math.Log(8)),
	}

	out := BinAggregator{WidthM: 1.0}.Aggregate(key, 0, group)

	require.InDelta(t, 1.5, *out.Hardness1.Mean, 1e-9)
	require.InDelta(t, 5, *out.Hardness1.Max, 1e-9)
	// sqrt(mean(variance)) = sqrt((9+16)/2), the documented approximation.
	require.InDelta(t, math.Sqrt(12.5), *out.Hardness1.StdDev, 1e-9)
	// Geometric mean of the Stage-1 smoothed values.
	require.InDelta(t, 4, *out.Hardness1.Smoothed, 1e-9)
}

func TestCoarseHardness2LogPath(t *testing.T) {
	key := models.AttemptKey{Pattern: "P1", RigSerial: "S94", HoleID: 1, BitDiameterMM: 102, StartUnix: baseTime.Unix()}

	// Stage-1 smoothed hardness2 values (3 and 5) disagree with the
	// retained log-means (ln 2 and ln 8) on purpose: the coarse value
	// must come from the log-average path, not from gm(3, 5).
	group := []models.DepthBin{
		coarseFixtureBin(key, 0, models.IndexStats{Mean: fp(1), Max: fp(1), StdDev: fp(0), Smoothed: fp(1)}, 3, math.Log(2)),
		coarseFixtureBin(key, 1, models.IndexStats{Mean: fp(1), Max: fp(1), StdDev: fp(0), Smoothed: fp(1)}, 5, math.Log(8)),
	}

	out := BinAggregator{WidthM: 1.0}.Aggregate(key, 0, group)

	require.NotNil(t, out.Hardness2.Smoothed)
	require.InDelta(t, 4, *out.Hardness2.Smoothed, 1e-9) // exp((ln2+ln8)/2)
	require.NotNil(t, out.Hardness2LogMean)
	require.InDelta(t, math.Log(4), *out.Hardness2LogMean, 1e-9)
}
