package models

import "github.com/golang/geo/r3"

// IndexStats aggregates one rock-response index over a depth bin.
// Fields are nil when no contributing sample had a defined value for the
// index (zero penetration rate makes every ratio index undefined).
type IndexStats struct {
	Mean     *float64 `json:"mean,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	StdDev   *float64 `json:"std_dev,omitempty"`
	Smoothed *float64 `json:"smoothed,omitempty"`
}

// DepthBin is a fixed-width depth aggregate. Stage-1 bins (200 mm)
// aggregate raw samples; Stage-2 bins (1 m) aggregate Stage-1 bins and
// are derivable from their statistics alone, never from raw samples.
type DepthBin struct {
	Key      AttemptKey `json:"key"`
	BinIndex int        `json:"bin_index"`
	WidthM   float64    `json:"width_m"`

	SampleCount  int `json:"sample_count"`
	FineBinCount int `json:"fine_bin_count,omitempty"` // Stage-2 only

	MinDepthM float64 `json:"min_depth_m"`
	AvgDepthM float64 `json:"avg_depth_m"`
	MaxDepthM float64 `json:"max_depth_m"`

	AvgPercussionPressure float64  `json:"avg_percussion_pressure"`
	AvgFeederPressure     *float64 `json:"avg_feeder_pressure,omitempty"`
	AvgPenetrationRate    float64  `json:"avg_penetration_rate"`

	Hardness1      IndexStats `json:"hardness1"`
	Hardness2      IndexStats `json:"hardness2"`
	SpecificEnergy IndexStats `json:"specific_energy"`
	ProxyStrength  IndexStats `json:"proxy_strength"`

	// Mean of ln(hardness2) over defined samples. Stage-2 hardness2
	// smoothing averages these log-means and exponentiates, which is not
	// algebraically the same as re-applying the geometric mean to the
	// Stage-1 smoothed values; the two paths stay separate.
	Hardness2LogMean *float64 `json:"hardness2_log_mean,omitempty"`

	// Mean interpolated position of the bin's samples along the hole axis.
	Position r3.Vector `json:"position"`
}
