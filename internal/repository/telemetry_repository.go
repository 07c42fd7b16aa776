package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/drillwise/mwd-backend-go/internal/models"
)

// TelemetryRepository reads the raw MWD source tables (hole contexts and
// downhole samples) that feed the profile pipeline.
type TelemetryRepository struct {
	db *sql.DB
}

// NewTelemetryRepository creates a new telemetry repository
func NewTelemetryRepository(db *sql.DB) *TelemetryRepository {
	return &TelemetryRepository{db: db}
}

// GetHoleContexts retrieves the hole contexts for a pattern, optionally
// bounded by a start-time range (Unix seconds, 0 = unbounded).
func (r *TelemetryRepository) GetHoleContexts(pattern string, startTime, endTime int64) ([]models.HoleContext, error) {
	query := `SELECT pattern_name, hole_id, rig_name, rig_serial, bit_diameter_mm,
		collar_x, collar_y, collar_z, toe_x, toe_y, toe_z, start_time, end_time
		FROM mwd_holes`

	conditions := []string{"pattern_name = ?"}
	args := []interface{}{pattern}

	if startTime > 0 {
		conditions = append(conditions, "start_time >= ?")
		args = append(args, time.Unix(startTime, 0).UTC())
	}
	if endTime > 0 {
		conditions = append(conditions, "start_time <= ?")
		args = append(args, time.Unix(endTime, 0).UTC())
	}

	query += " WHERE " + strings.Join(conditions, " AND ")
	query += " ORDER BY rig_serial, start_time, hole_id"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query hole contexts: %w", err)
	}
	defer rows.Close()

	var holes []models.HoleContext
	for rows.Next() {
		var h models.HoleContext
		var bit sql.NullFloat64
		err := rows.Scan(
			&h.PatternName, &h.HoleID, &h.RigName, &h.RigSerial, &bit,
			&h.Collar.X, &h.Collar.Y, &h.Collar.Z,
			&h.Toe.X, &h.Toe.Y, &h.Toe.Z,
			&h.StartTime, &h.EndTime,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hole context: %w", err)
		}
		if bit.Valid {
			h.BitDiameterMM = &bit.Float64
		}
		holes = append(holes, h)
	}

	return holes, rows.Err()
}

// GetRawSamples retrieves the raw samples for a pattern, optionally
// bounded by the owning hole's start-time range.
func (r *TelemetryRepository) GetRawSamples(pattern string, startTime, endTime int64) ([]models.RawSample, error) {
	query := `SELECT id, pattern_name, hole_id, rig_serial, hole_start_time, time,
		depth_m, percussion_pressure, feeder_pressure, penetration_rate
		FROM mwd_samples`

	conditions := []string{"pattern_name = ?"}
	args := []interface{}{pattern}

	if startTime > 0 {
		conditions = append(conditions, "hole_start_time >= ?")
		args = append(args, time.Unix(startTime, 0).UTC())
	}
	if endTime > 0 {
		conditions = append(conditions, "hole_start_time <= ?")
		args = append(args, time.Unix(endTime, 0).UTC())
	}

	query += " WHERE " + strings.Join(conditions, " AND ")
	query += " ORDER BY rig_serial, hole_start_time, hole_id, depth_m"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query raw samples: %w", err)
	}
	defer rows.Close()

	var samples []models.RawSample
	for rows.Next() {
		var s models.RawSample
		var feeder sql.NullFloat64
		err := rows.Scan(
			&s.ID, &s.PatternName, &s.HoleID, &s.RigSerial, &s.HoleStartTime,
			&s.Time, &s.DepthM, &s.PercussionPressure, &feeder, &s.PenetrationRate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan raw sample: %w", err)
		}
		if feeder.Valid {
			s.FeederPressure = &feeder.Float64
		}
		samples = append(samples, s)
	}

	return samples, rows.Err()
}
