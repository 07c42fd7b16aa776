package pipeline

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/require"

	"github.com/drillwise/mwd-backend-go/internal/models"
)

func patternFixture() ([]models.HoleContext, []models.RawSample) {
	a := testHole("P1", "DR0094", "S94", 1, baseTime, 10*time.Minute,
		r3.Vector{}, r3.Vector{Z: -10})
	b := testHole("P1", "DR0094", "S94", 2, baseTime.Add(25*time.Minute), 8*time.Minute,
		r3.Vector{X: 5}, r3.Vector{X: 5, Z: -5})

	var samples []models.RawSample
	for i := 1; i <= 99; i++ {
		samples = append(samples, testSample(a, float64(i)*0.1, 30, 100))
	}
	for i := 1; i <= 49; i++ {
		samples = append(samples, testSample(b, float64(i)*0.1, 24, 90))
	}

	return []models.HoleContext{a, b}, samples
}

func TestRunEndToEnd(t *testing.T) {
	holes, samples := patternFixture()

	result, err := New(0, 0).Run(holes, samples)
	require.NoError(t, err)
	require.Zero(t, result.OrphanSamples)
	require.Equal(t, len(samples), result.SampleCount)
	require.Equal(t, 2, result.HoleCount)

	// Hole A spans coarse bins 0..9, hole B 0..4.
	require.Len(t, result.Records, 15)

	// Ordered by pattern, rig, hole sequence, depth interval; every
	// coarse bin row is present and carries its cycle record.
	for i, rec := range result.Records {
		require.NotNil(t, rec.Cycle, "row %d missing cycle record", i)
		if i < 10 {
			require.EqualValues(t, 1, rec.Bin.Key.HoleID)
			require.Equal(t, i, rec.Bin.BinIndex)
		} else {
			require.EqualValues(t, 2, rec.Bin.Key.HoleID)
			require.Equal(t, i-10, rec.Bin.BinIndex)
		}
	}

	first := result.Records[0]
	require.Equal(t, 1, first.Cycle.RigHoleSequence)
	require.EqualValues(t, 9400001, first.Cycle.CombinedSequenceID)
	require.InDelta(t, 10, first.Cycle.HoleDepthM, 1e-9)
	require.NotNil(t, first.Cycle.DrillingROPMPerHour)
	require.InDelta(t, 60, *first.Cycle.DrillingROPMPerHour, 1e-9)

	require.True(t, strings.HasPrefix(first.HoleAttemptID, "DR0094-S94-P1-00001-0102-"),
		"unexpected attempt id %q", first.HoleAttemptID)

	// The two attempts resolve to different composite ids.
	last := result.Records[14]
	require.EqualValues(t, 9400002, last.Cycle.CombinedSequenceID)
	require.NotEqual(t, first.HoleAttemptID, last.HoleAttemptID)
	require.Nil(t, last.Cycle.NextHoleStartTime)
	require.Nil(t, last.Cycle.CycleROPMPerHour)
}

func TestRunIdempotent(t *testing.T) {
	holes, samples := patternFixture()
	p := New(0.2, 1.0)

	first, err := p.Run(holes, samples)
	require.NoError(t, err)
	second, err := p.Run(holes, samples)
	require.NoError(t, err)

	require.True(t, reflect.DeepEqual(first.Records, second.Records),
		"re-running the pipeline on identical input must yield identical output")
}

func TestRunOrphanSamples(t *testing.T) {
	holes, samples := patternFixture()

	stray := samples[0]
	stray.HoleID = 999
	samples = append(samples, stray)

	result, err := New(0, 0).Run(holes, samples)
	require.NoError(t, err)
	require.Equal(t, 1, result.OrphanSamples)
	require.Len(t, result.Records, 15)
}

func TestRunMalformedRigName(t *testing.T) {
	holes, samples := patternFixture()
	holes[0].RigName = "BADRIG"

	_, err := New(0, 0).Run(holes, samples)
	require.Error(t, err)
	require.ErrorContains(t, err, "no numeric suffix")
}
