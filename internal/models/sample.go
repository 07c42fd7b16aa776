package models

import (
	"time"

	"github.com/golang/geo/r3"
)

// RawSample is one downhole MWD measurement as logged by the rig.
// Samples are immutable and irregularly spaced in both depth and time.
type RawSample struct {
	ID                 int64     `json:"id" db:"id"`
	PatternName        string    `json:"pattern_name" db:"pattern_name"`
	HoleID             int64     `json:"hole_id" db:"hole_id"`
	RigSerial          string    `json:"rig_serial" db:"rig_serial"`
	HoleStartTime      time.Time `json:"hole_start_time" db:"hole_start_time"`
	Time               time.Time `json:"time" db:"time"`
	DepthM             float64   `json:"depth_m" db:"depth_m"`
	PercussionPressure float64   `json:"percussion_pressure" db:"percussion_pressure"`
	FeederPressure     *float64  `json:"feeder_pressure,omitempty" db:"feeder_pressure"`
	PenetrationRate    float64   `json:"penetration_rate_m_per_min" db:"penetration_rate"`
}

// HoleContext holds the static attributes of one drilling attempt.
// BitDiameterMM has no implicit default: a context without a recorded bit
// diameter keeps nil and the absence propagates through the pipeline.
type HoleContext struct {
	PatternName   string    `json:"pattern_name" db:"pattern_name"`
	HoleID        int64     `json:"hole_id" db:"hole_id"`
	RigName       string    `json:"rig_name" db:"rig_name"`
	RigSerial     string    `json:"rig_serial" db:"rig_serial"`
	BitDiameterMM *float64  `json:"bit_diameter_mm,omitempty" db:"bit_diameter_mm"`
	Collar        r3.Vector `json:"collar" db:"-"`
	Toe           r3.Vector `json:"toe" db:"-"`
	StartTime     time.Time `json:"start_time" db:"start_time"`
	EndTime       time.Time `json:"end_time" db:"end_time"`
}

// AttemptKey identifies one physical drilling attempt. Hole ids repeat
// across redrills, so the key carries the full tuple. Start time is kept
// at one-second resolution to absorb sub-second formatting differences
// between the sample and hole source tables.
type AttemptKey struct {
	Pattern       string
	RigSerial     string
	HoleID        int64
	BitDiameterMM float64 // -1 when the context carries no bit diameter
	StartUnix     int64
}

// NewAttemptKey builds the composite key for a hole context.
func NewAttemptKey(h HoleContext) AttemptKey {
	bit := -1.0
	if h.BitDiameterMM != nil {
		bit = *h.BitDiameterMM
	}
	return AttemptKey{
		Pattern:       h.PatternName,
		RigSerial:     h.RigSerial,
		HoleID:        h.HoleID,
		BitDiameterMM: bit,
		StartUnix:     h.StartTime.Unix(),
	}
}

// JoinKey matches a raw sample stream to its hole context. Matching on
// hole id alone is insufficient because ids repeat across redrills.
type JoinKey struct {
	Pattern   string
	HoleID    int64
	RigSerial string
	StartUnix int64
}

// SampleJoinKey derives the join key from a raw sample.
func SampleJoinKey(s RawSample) JoinKey {
	return JoinKey{
		Pattern:   s.PatternName,
		HoleID:    s.HoleID,
		RigSerial: s.RigSerial,
		StartUnix: s.HoleStartTime.Unix(),
	}
}

// HoleJoinKey derives the join key from a hole context.
func HoleJoinKey(h HoleContext) JoinKey {
	return JoinKey{
		Pattern:   h.PatternName,
		HoleID:    h.HoleID,
		RigSerial: h.RigSerial,
		StartUnix: h.StartTime.Unix(),
	}
}
