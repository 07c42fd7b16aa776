package pipeline

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/drillwise/mwd-backend-go/internal/models"
	"github.com/drillwise/mwd-backend-go/internal/spatial"
)

// Sample is a raw sample joined to its hole context, with the per-sample
// derived quantities attached. Ratio indices are nil when the penetration
// rate is exactly zero; they are never NaN or Inf.
type Sample struct {
	models.RawSample

	Key models.AttemptKey

	PenRateMMPerS float64
	PenRateMPerS  float64

	Hardness1      *float64
	Hardness2      *float64
	SpecificEnergy *float64
	ProxyStrength  *float64
	LogHardness2   *float64

	// Fractional position along the collar-toe axis and the interpolated
	// 3D position at the sample depth.
	AxisFraction float64
	Position     r3.Vector
}

// JoinSamples attaches each raw sample to its hole context and derives
// the per-sample features. The join key is (pattern, hole id, rig serial,
// start time at one-second resolution); samples with no matching context
// are excluded and counted rather than silently dropped.
func JoinSamples(holes []models.HoleContext, samples []models.RawSample) (joined []Sample, orphans int) {
	byKey := make(map[models.JoinKey]models.HoleContext, len(holes))
	for _, h := range holes {
		byKey[models.HoleJoinKey(h)] = h
	}

	for _, s := range samples {
		h, ok := byKey[models.SampleJoinKey(s)]
		if !ok {
			orphans++
			continue
		}
		joined = append(joined, deriveSample(s, h))
	}
	return joined, orphans
}

func deriveSample(s models.RawSample, h models.HoleContext) Sample {
	out := Sample{
		RawSample: s,
		Key:       models.NewAttemptKey(h),
	}

	out.PenRateMMPerS = s.PenetrationRate * 1000 / 60
	out.PenRateMPerS = s.PenetrationRate / 60

	axis := spatial.NewAxis(h.Collar, h.Toe)
	out.AxisFraction = axis.Fraction(s.DepthM)
	out.Position = axis.At(s.DepthM)

	// Zero rate makes every ratio index undefined.
	if s.PenetrationRate == 0 {
		return out
	}

	feeder := 0.0
	if s.FeederPressure != nil {
		feeder = *s.FeederPressure
	}

	h1 := s.PercussionPressure / out.PenRateMMPerS
	h2 := (s.PercussionPressure + feeder) / out.PenRateMMPerS
	se := s.PercussionPressure / out.PenRateMPerS
	ps := 0.5 * se

	out.Hardness1 = &h1
	out.Hardness2 = &h2
	out.SpecificEnergy = &se
	out.ProxyStrength = &ps
	if h2 > 0 {
		lh := math.Log(h2)
		out.LogHardness2 = &lh
	}

	return out
}
