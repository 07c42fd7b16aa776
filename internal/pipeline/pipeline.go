// Package pipeline converts irregular downhole MWD telemetry into a
// spatially and temporally coherent per-hole depth profile. The flow is
// strictly upward: samples -> fine bins -> coarse bins -> hole summaries
// -> cycle-time records -> final join. The whole run is a pure, stateless
// batch transformation: identical input yields byte-identical output and
// re-running replaces rather than updates.
package pipeline

import (
	"log"

	"github.com/drillwise/mwd-backend-go/internal/models"
)

// Default bin widths for the two aggregation stages.
const (
	DefaultFineWidthM   = 0.2
	DefaultCoarseWidthM = 1.0
)

// Pipeline holds the bin-width configuration for one run.
type Pipeline struct {
	FineWidthM   float64
	CoarseWidthM float64
}

// New creates a pipeline, substituting the default widths for
// non-positive values.
func New(fineWidthM, coarseWidthM float64) *Pipeline {
	if fineWidthM <= 0 {
		fineWidthM = DefaultFineWidthM
	}
	if coarseWidthM <= 0 {
		coarseWidthM = DefaultCoarseWidthM
	}
	return &Pipeline{FineWidthM: fineWidthM, CoarseWidthM: coarseWidthM}
}

// Result carries the output rows plus the run counters surfaced to the
// caller.
type Result struct {
	Records       []models.ProfileRecord
	SampleCount   int
	OrphanSamples int
	HoleCount     int
}

// Run executes the full transformation over one batch of hole contexts
// and raw samples. It fails only on structural identity errors
// (MalformedRigNameError); locally recoverable conditions are absorbed
// into the data as nil fields or orphan counts.
func (p *Pipeline) Run(holes []models.HoleContext, samples []models.RawSample) (*Result, error) {
	joined, orphans := JoinSamples(holes, samples)
	if orphans > 0 {
		log.Printf("[Pipeline] excluded %d orphan samples with no matching hole context", orphans)
	}

	fine := Bin(SampleAggregator{WidthM: p.FineWidthM}, joined)
	coarse := Bin(BinAggregator{WidthM: p.CoarseWidthM}, fine)

	summaries, err := SummarizeHoles(holes, coarse, p.CoarseWidthM)
	if err != nil {
		return nil, err
	}
	cycles := BuildCycleTimes(summaries)

	records := Assemble(coarse, cycles, holes)

	return &Result{
		Records:       records,
		SampleCount:   len(samples),
		OrphanSamples: orphans,
		HoleCount:     len(summaries),
	}, nil
}
