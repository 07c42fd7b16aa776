package pipeline

import (
	"math"
	"testing"
	"time"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/require"

	"github.com/drillwise/mwd-backend-go/internal/models"
)

var baseTime = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

func testHole(pattern, rigName, rigSerial string, holeID int64, start time.Time, dur time.Duration, collar, toe r3.Vector) models.HoleContext {
	bit := 102.0
	return models.HoleContext{
		PatternName:   pattern,
		HoleID:        holeID,
		RigName:       rigName,
		RigSerial:     rigSerial,
		BitDiameterMM: &bit,
		Collar:        collar,
		Toe:           toe,
		StartTime:     start,
		EndTime:       start.Add(dur),
	}
}

func testSample(h models.HoleContext, depth, rate, percussion float64) models.RawSample {
	feeder := 20.0
	return models.RawSample{
		PatternName:        h.PatternName,
		HoleID:             h.HoleID,
		RigSerial:          h.RigSerial,
		HoleStartTime:      h.StartTime,
		Time:               h.StartTime.Add(time.Duration(depth*10) * time.Second),
		DepthM:             depth,
		PercussionPressure: percussion,
		FeederPressure:     &feeder,
		PenetrationRate:    rate,
	}
}

func TestJoinSamplesCountsOrphans(t *testing.T) {
	hole := testHole("P1", "DR0094", "S94", 1, baseTime, 10*time.Minute,
		r3.Vector{}, r3.Vector{Z: -10})

	orphan := testSample(hole, 1.0, 30, 100)
	orphan.HoleID = 999

	joined, orphans := JoinSamples(
		[]models.HoleContext{hole},
		[]models.RawSample{testSample(hole, 1.0, 30, 100), orphan},
	)

	require.Len(t, joined, 1)
	require.Equal(t, 1, orphans)
}

func TestJoinSamplesSubSecondTolerance(t *testing.T) {
	hole := testHole("P1", "DR0094", "S94", 1, baseTime, 10*time.Minute,
		r3.Vector{}, r3.Vector{Z: -10})

	// The sample table carries the hole start with extra sub-second
	// precision; the join compares at one-second resolution.
	s := testSample(hole, 1.0, 30, 100)
	s.HoleStartTime = hole.StartTime.Add(500 * time.Millisecond)

	joined, orphans := JoinSamples([]models.HoleContext{hole}, []models.RawSample{s})
	require.Len(t, joined, 1)
	require.Zero(t, orphans)
}

func TestDeriveSampleIndices(t *testing.T) {
	hole := testHole("P1", "DR0094", "S94", 1, baseTime, 10*time.Minute,
		r3.Vector{}, r3.Vector{Z: -10})

	// 30 m/min = 500 mm/s = 0.5 m/s
	joined, _ := JoinSamples([]models.HoleContext{hole},
		[]models.RawSample{testSample(hole, 5.0, 30, 100)})
	require.Len(t, joined, 1)
	s := joined[0]

	require.InDelta(t, 500, s.PenRateMMPerS, 1e-9)
	require.InDelta(t, 0.5, s.PenRateMPerS, 1e-9)

	require.NotNil(t, s.Hardness1)
	require.InDelta(t, 0.2, *s.Hardness1, 1e-9) // 100/500
	require.NotNil(t, s.Hardness2)
	require.InDelta(t, 0.24, *s.Hardness2, 1e-9) // (100+20)/500
	require.NotNil(t, s.SpecificEnergy)
	require.InDelta(t, 200, *s.SpecificEnergy, 1e-9) // 100/0.5
	require.NotNil(t, s.ProxyStrength)
	require.InDelta(t, 100, *s.ProxyStrength, 1e-9)
	require.NotNil(t, s.LogHardness2)
	require.InDelta(t, math.Log(0.24), *s.LogHardness2, 1e-9)

	// Midpoint of a vertical 10 m hole.
	require.InDelta(t, 0.5, s.AxisFraction, 1e-9)
	require.InDelta(t, -5, s.Position.Z, 1e-9)
}

func TestDeriveSampleZeroRate(t *testing.T) {
	hole := testHole("P1", "DR0094", "S94", 1, baseTime, 10*time.Minute,
		r3.Vector{}, r3.Vector{Z: -10})

	joined, _ := JoinSamples([]models.HoleContext{hole},
		[]models.RawSample{testSample(hole, 5.0, 0, 100)})
	require.Len(t, joined, 1)
	s := joined[0]

	// Every ratio index is undefined, never Inf or NaN.
	require.Nil(t, s.Hardness1)
	require.Nil(t, s.Hardness2)
	require.Nil(t, s.SpecificEnergy)
	require.Nil(t, s.ProxyStrength)
	require.Nil(t, s.LogHardness2)
}

func TestDeriveSampleMissingFeeder(t *testing.T) {
	hole := testHole("P1", "DR0094", "S94", 1, baseTime, 10*time.Minute,
		r3.Vector{}, r3.Vector{Z: -10})

	s := testSample(hole, 5.0, 30, 100)
	s.FeederPressure = nil

	joined, _ := JoinSamples([]models.HoleContext{hole}, []models.RawSample{s})
	require.Len(t, joined, 1)

	// Missing feeder contributes zero to hardness2.
	require.NotNil(t, joined[0].Hardness2)
	require.InDelta(t, 0.2, *joined[0].Hardness2, 1e-9)
}
