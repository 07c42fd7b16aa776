package models

import "time"

// HoleSummary is one row per drilling attempt, collapsed from the coarse
// bins. HoleDepthM is estimated as (max coarse bin index + 1) multiplied
// by the coarse bin width.
type HoleSummary struct {
	Key                AttemptKey `json:"key"`
	PatternName        string     `json:"pattern_name"`
	HoleID             int64      `json:"hole_id"`
	RigName            string     `json:"rig_name"`
	RigSerial          string     `json:"rig_serial"`
	BitDiameterMM      *float64   `json:"bit_diameter_mm,omitempty"`
	StartTime          time.Time  `json:"start_time"`
	EndTime            time.Time  `json:"end_time"`
	HoleDepthM         float64    `json:"hole_depth_m"`
	RigHoleSequence    int        `json:"rig_hole_sequence"`
	CombinedSequenceID int64      `json:"combined_sequence_id"`
}

// CycleTimeRecord extends a hole summary with per-attempt timing and
// productivity. Nil cycle fields on the last hole of a (pattern, rig)
// group mean "sequence end", not missing data. NonDrillingTimeSeconds
// may be negative when log windows overlap; it is surfaced as-is since a
// negative value is itself a data-quality signal.
type CycleTimeRecord struct {
	HoleSummary

	DrillingTimeSeconds    float64    `json:"drilling_time_seconds"`
	DrillingTimeMinutes    float64    `json:"drilling_time_minutes"`
	NextHoleStartTime      *time.Time `json:"next_hole_start_time,omitempty"`
	CycleTimeSeconds       *float64   `json:"cycle_time_seconds,omitempty"`
	NonDrillingTimeSeconds *float64   `json:"non_drilling_time_seconds,omitempty"`
	DrillingROPMPerHour    *float64   `json:"drilling_rop_m_per_hour,omitempty"`
	CycleROPMPerHour       *float64   `json:"cycle_rop_m_per_hour,omitempty"`
}
