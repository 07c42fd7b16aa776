package models

// ProfileRecord is one denormalized output row per (hole attempt, coarse
// depth interval). Bin is always present; Cycle may be nil when the
// attempt could not be sequenced, mirroring the outer join in the
// assembler. HoleAttemptID disambiguates redrills of the same nominal
// hole id by the interpolated coordinates of the shallowest interval.
type ProfileRecord struct {
	HoleAttemptID string           `json:"hole_attempt_id"`
	Bin           DepthBin         `json:"bin"`
	Cycle         *CycleTimeRecord `json:"cycle,omitempty"`
}

// RunReport summarizes one full pipeline run over a pattern.
type RunReport struct {
	PatternName   string `json:"pattern_name"`
	SampleCount   int    `json:"sample_count"`
	OrphanSamples int    `json:"orphan_samples"`
	HoleCount     int    `json:"hole_count"`
	RecordCount   int    `json:"record_count"`
	DurationMS    int64  `json:"duration_ms"`
	GeneratedAt   string `json:"generated_at"`
}
