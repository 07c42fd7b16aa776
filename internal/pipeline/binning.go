package pipeline

import (
	"math"
	"sort"

	"github.com/golang/geo/r3"

	"github.com/drillwise/mwd-backend-go/internal/models"
	"github.com/drillwise/mwd-backend-go/internal/spatial"
	"github.com/drillwise/mwd-backend-go/internal/stats"
)

// Aggregator reduces one depth-keyed group of inputs to a single bin row.
// The fine and coarse stages share this seam so the Stage-2 logic is
// composition over Stage-1 output rather than duplicated code.
type Aggregator[T any] interface {
	Width() float64
	Depth(T) float64
	Key(T) models.AttemptKey
	Aggregate(key models.AttemptKey, index int, group []T) models.DepthBin
}

type binKey struct {
	Key   models.AttemptKey
	Index int
}

// Bin groups inputs by (attempt, floor(depth/width)) and reduces each
// group, returning bins sorted by attempt then bin index.
func Bin[T any](agg Aggregator[T], in []T) []models.DepthBin {
	groups := make(map[binKey][]T)
	for _, v := range in {
		k := binKey{agg.Key(v), int(math.Floor(agg.Depth(v) / agg.Width()))}
		groups[k] = append(groups[k], v)
	}

	out := make([]models.DepthBin, 0, len(groups))
	for k, g := range groups {
		out = append(out, agg.Aggregate(k.Key, k.Index, g))
	}
	sortBins(out)
	return out
}

func sortBins(bins []models.DepthBin) {
	sort.Slice(bins, func(i, j int) bool {
		a, b := bins[i], bins[j]
		if a.Key != b.Key {
			return lessAttemptKey(a.Key, b.Key)
		}
		return a.BinIndex < b.BinIndex
	})
}

func lessAttemptKey(a, b models.AttemptKey) bool {
	if a.Pattern != b.Pattern {
		return a.Pattern < b.Pattern
	}
	if a.RigSerial != b.RigSerial {
		return a.RigSerial < b.RigSerial
	}
	if a.StartUnix != b.StartUnix {
		return a.StartUnix < b.StartUnix
	}
	if a.HoleID != b.HoleID {
		return a.HoleID < b.HoleID
	}
	return a.BitDiameterMM < b.BitDiameterMM
}

// SampleAggregator is the Stage-1 reducer: raw joined samples into
// fixed-width fine bins (200 mm by default).
type SampleAggregator struct {
	WidthM float64
}

func (a SampleAggregator) Width() float64                 { return a.WidthM }
func (a SampleAggregator) Depth(s Sample) float64         { return s.DepthM }
func (a SampleAggregator) Key(s Sample) models.AttemptKey { return s.Key }

// Aggregate computes the Stage-1 statistics for one fine bin.
func (a SampleAggregator) Aggregate(key models.AttemptKey, index int, group []Sample) models.DepthBin {
	b := models.DepthBin{
		Key:         key,
		BinIndex:    index,
		WidthM:      a.WidthM,
		SampleCount: len(group),
	}

	depths := make([]float64, len(group))
	percussion := make([]float64, len(group))
	rates := make([]float64, len(group))
	positions := make([]r3.Vector, len(group))
	var feeder []float64
	for i, s := range group {
		depths[i] = s.DepthM
		percussion[i] = s.PercussionPressure
		rates[i] = s.PenetrationRate
		positions[i] = s.Position
		if s.FeederPressure != nil {
			feeder = append(feeder, *s.FeederPressure)
		}
	}

	b.MinDepthM = stats.Min(depths)
	b.AvgDepthM = stats.Mean(depths)
	b.MaxDepthM = stats.Max(depths)
	b.AvgPercussionPressure = stats.Mean(percussion)
	b.AvgPenetrationRate = stats.Mean(rates)
	if len(feeder) > 0 {
		fm := stats.Mean(feeder)
		b.AvgFeederPressure = &fm
	}
	b.Position = spatial.Centroid(positions)

	b.Hardness1 = indexStats(collect(group, func(s Sample) *float64 { return s.Hardness1 }))
	h2 := collect(group, func(s Sample) *float64 { return s.Hardness2 })
	b.Hardness2 = indexStats(h2)
	b.SpecificEnergy = indexStats(collect(group, func(s Sample) *float64 { return s.SpecificEnergy }))
	b.ProxyStrength = indexStats(collect(group, func(s Sample) *float64 { return s.ProxyStrength }))

	if lm, ok := stats.LogMean(h2); ok {
		b.Hardness2LogMean = &lm
	}

	return b
}

// BinAggregator is the Stage-2 reducer: fine bins into coarse bins (1 m
// by default). It reads Stage-1 statistics only, never raw samples, which
// keeps the two stages strictly layered.
type BinAggregator struct {
	WidthM float64
}

func (a BinAggregator) Width() float64 { return a.WidthM }

// Depth keys a fine bin by its nominal start depth so the coarse grid
// nests exactly on the fine grid.
func (a BinAggregator) Depth(b models.DepthBin) float64 {
	return float64(b.BinIndex) * b.WidthM
}

func (a BinAggregator) Key(b models.DepthBin) models.AttemptKey { return b.Key }

// Aggregate pools one coarse bin from its constituent fine bins.
// Pressures and rates use a mean-of-means; the index standard deviation
// uses sqrt(mean(variance)). Both are accepted approximations that assume
// roughly equal fine-bin populations and are asserted as-is by tests.
func (a BinAggregator) Aggregate(key models.AttemptKey, index int, group []models.DepthBin) models.DepthBin {
	out := models.DepthBin{
		Key:          key,
		BinIndex:     index,
		WidthM:       a.WidthM,
		FineBinCount: len(group),
	}

	mins := make([]float64, len(group))
	avgs := make([]float64, len(group))
	maxs := make([]float64, len(group))
	percussion := make([]float64, len(group))
	rates := make([]float64, len(group))
	positions := make([]r3.Vector, len(group))
	var feeder []float64
	for i, b := range group {
		out.SampleCount += b.SampleCount
		mins[i] = b.MinDepthM
		avgs[i] = b.AvgDepthM
		maxs[i] = b.MaxDepthM
		percussion[i] = b.AvgPercussionPressure
		rates[i] = b.AvgPenetrationRate
		positions[i] = b.Position
		if b.AvgFeederPressure != nil {
			feeder = append(feeder, *b.AvgFeederPressure)
		}
	}

	out.MinDepthM = stats.Min(mins)
	out.AvgDepthM = stats.Mean(avgs)
	out.MaxDepthM = stats.Max(maxs)
	out.AvgPercussionPressure = stats.Mean(percussion)
	out.AvgPenetrationRate = stats.Mean(rates)
	if len(feeder) > 0 {
		fm := stats.Mean(feeder)
		out.AvgFeederPressure = &fm
	}
	out.Position = spatial.Centroid(positions)

	out.Hardness1 = poolIndex(group, func(b models.DepthBin) models.IndexStats { return b.Hardness1 })
	out.Hardness2 = poolIndex(group, func(b models.DepthBin) models.IndexStats { return b.Hardness2 })
	out.SpecificEnergy = poolIndex(group, func(b models.DepthBin) models.IndexStats { return b.SpecificEnergy })
	out.ProxyStrength = poolIndex(group, func(b models.DepthBin) models.IndexStats { return b.ProxyStrength })

	// Hardness2 smoothing follows the log-average path: mean the Stage-1
	// log-means, then exponentiate. The other indices re-apply the
	// geometric mean to the Stage-1 smoothed values instead; the two
	// paths are not algebraically equivalent and stay distinct.
	logMeans := collect(group, func(b models.DepthBin) *float64 { return b.Hardness2LogMean })
	if len(logMeans) > 0 {
		lm := stats.Mean(logMeans)
		sm := math.Exp(lm)
		out.Hardness2LogMean = &lm
		out.Hardness2.Smoothed = &sm
	} else {
		out.Hardness2.Smoothed = nil
	}

	return out
}

// poolIndex aggregates one index across fine bins: mean of means, max of
// maxes, pooled stddev, geometric mean of smoothed values.
func poolIndex(group []models.DepthBin, pick func(models.DepthBin) models.IndexStats) models.IndexStats {
	var means, maxs, stdDevs, smoothed []float64
	for _, b := range group {
		st := pick(b)
		if st.Mean != nil {
			means = append(means, *st.Mean)
		}
		if st.Max != nil {
			maxs = append(maxs, *st.Max)
		}
		if st.StdDev != nil {
			stdDevs = append(stdDevs, *st.StdDev)
		}
		if st.Smoothed != nil {
			smoothed = append(smoothed, *st.Smoothed)
		}
	}

	var out models.IndexStats
	if len(means) > 0 {
		m := stats.Mean(means)
		out.Mean = &m
	}
	if len(maxs) > 0 {
		m := stats.Max(maxs)
		out.Max = &m
	}
	if len(stdDevs) > 0 {
		sd := stats.PooledStdDev(stdDevs)
		out.StdDev = &sd
	}
	if g, ok := stats.GeometricMean(smoothed); ok {
		out.Smoothed = &g
	}
	return out
}

// collect gathers the defined (non-nil) values of an optional field.
func collect[T any](group []T, pick func(T) *float64) []float64 {
	var out []float64
	for _, v := range group {
		if p := pick(v); p != nil {
			out = append(out, *p)
		}
	}
	return out
}

// indexStats computes mean, max, sample stddev and the log-domain
// geometric mean over the defined values of one index.
func indexStats(values []float64) models.IndexStats {
	if len(values) == 0 {
		return models.IndexStats{}
	}

	mean := stats.Mean(values)
	max := stats.Max(values)
	sd := stats.StdDev(values)
	out := models.IndexStats{Mean: &mean, Max: &max, StdDev: &sd}
	if g, ok := stats.GeometricMean(values); ok {
		out.Smoothed = &g
	}
	return out
}
