package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/drillwise/mwd-backend-go/internal/database"
	"github.com/drillwise/mwd-backend-go/internal/models"
)

// ProfileRepository persists and queries the denormalized hole depth
// profile produced by the pipeline. A run replaces the whole pattern's
// rows in one transaction; nothing is updated incrementally.
type ProfileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const profileColumns = `hole_attempt_id, pattern_name, hole_id, rig_name, rig_serial,
	bit_diameter_mm, start_time, end_time, rig_hole_sequence, combined_sequence_id,
	depth_bin_index, width_m, sample_count, fine_bin_count,
	min_depth_m, avg_depth_m, max_depth_m,
	avg_percussion_pressure, avg_feeder_pressure, avg_penetration_rate,
	pos_x, pos_y, pos_z,
	hardness1_mean, hardness1_max, hardness1_std, hardness1_smoothed,
	hardness2_mean, hardness2_max, hardness2_std, hardness2_smoothed,
	specific_energy_mean, specific_energy_max, specific_energy_std, specific_energy_smoothed,
	proxy_strength_mean, proxy_strength_max, proxy_strength_std, proxy_strength_smoothed,
	hole_depth_m, drilling_time_seconds, drilling_time_minutes, next_hole_start_time,
	cycle_time_seconds, non_drilling_time_seconds, drilling_rop_m_per_hour, cycle_rop_m_per_hour`

// ReplaceProfile deletes the existing profile for a pattern and inserts
// the new record set within a single transaction.
func (r *ProfileRepository) ReplaceProfile(pattern string, records []models.ProfileRecord) error {
	return database.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM hole_depth_profile WHERE pattern_name = ?", pattern); err != nil {
			return fmt.Errorf("failed to clear profile for pattern %s: %w", pattern, err)
		}

		placeholders := strings.TrimSuffix(strings.Repeat("?, ", 47), ", ")
		stmt, err := tx.Prepare("INSERT INTO hole_depth_profile (" + profileColumns + ") VALUES (" + placeholders + ")")
		if err != nil {
			return fmt.Errorf("failed to prepare profile insert: %w", err)
		}
		defer stmt.Close()

		for _, rec := range records {
			if _, err := stmt.Exec(profileArgs(rec)...); err != nil {
				return fmt.Errorf("failed to insert profile row (pattern=%s hole=%d bin=%d): %w",
					rec.Bin.Key.Pattern, rec.Bin.Key.HoleID, rec.Bin.BinIndex, err)
			}
		}
		return nil
	})
}

func profileArgs(rec models.ProfileRecord) []interface{} {
	b := rec.Bin

	var bit interface{}
	if b.Key.BitDiameterMM >= 0 {
		bit = b.Key.BitDiameterMM
	}

	var rigName interface{}
	var endTime, seq, combined, holeDepth interface{}
	var drillingSec, drillingMin, nextStart, cycleSec, nonDrillSec, drillROP, cycleROP interface{}
	if c := rec.Cycle; c != nil {
		rigName = c.RigName
		endTime = c.EndTime
		seq = c.RigHoleSequence
		combined = c.CombinedSequenceID
		holeDepth = c.HoleDepthM
		drillingSec = c.DrillingTimeSeconds
		drillingMin = c.DrillingTimeMinutes
		nextStart = nullTime(c.NextHoleStartTime)
		cycleSec = nullFloat(c.CycleTimeSeconds)
		nonDrillSec = nullFloat(c.NonDrillingTimeSeconds)
		drillROP = nullFloat(c.DrillingROPMPerHour)
		cycleROP = nullFloat(c.CycleROPMPerHour)
	}

	args := []interface{}{
		rec.HoleAttemptID, b.Key.Pattern, b.Key.HoleID, rigName, b.Key.RigSerial,
		bit, time.Unix(b.Key.StartUnix, 0).UTC(), endTime, seq, combined,
		b.BinIndex, b.WidthM, b.SampleCount, b.FineBinCount,
		b.MinDepthM, b.AvgDepthM, b.MaxDepthM,
		b.AvgPercussionPressure, nullFloat(b.AvgFeederPressure), b.AvgPenetrationRate,
		b.Position.X, b.Position.Y, b.Position.Z,
	}
	for _, st := range []models.IndexStats{b.Hardness1, b.Hardness2, b.SpecificEnergy, b.ProxyStrength} {
		args = append(args, nullFloat(st.Mean), nullFloat(st.Max), nullFloat(st.StdDev), nullFloat(st.Smoothed))
	}
	args = append(args, holeDepth, drillingSec, drillingMin, nextStart,
		cycleSec, nonDrillSec, drillROP, cycleROP)
	return args
}

func nullFloat(p *float64) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func nullTime(p *time.Time) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

// GetProfile retrieves profile rows with filtering and pagination,
// ordered by pattern, rig, hole sequence and depth interval.
func (r *ProfileRepository) GetProfile(filter models.ProfileFilter) ([]models.ProfileRecord, int64, error) {
	var conditions []string
	var args []interface{}

	if filter.Pattern != "" {
		conditions = append(conditions, "pattern_name = ?")
		args = append(args, filter.Pattern)
	}
	if filter.RigSerial != "" {
		conditions = append(conditions, "rig_serial = ?")
		args = append(args, filter.RigSerial)
	}
	if filter.HoleID > 0 {
		conditions = append(conditions, "hole_id = ?")
		args = append(args, filter.HoleID)
	}
	if filter.MinDepth > 0 {
		conditions = append(conditions, "min_depth_m >= ?")
		args = append(args, filter.MinDepth)
	}
	if filter.MaxDepth > 0 {
		conditions = append(conditions, "max_depth_m <= ?")
		args = append(args, filter.MaxDepth)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM hole_depth_profile"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count profile rows: %w", err)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}
	offset := (filter.Page - 1) * filter.PageSize

	query := "SELECT " + profileColumns + " FROM hole_depth_profile" + where +
		" ORDER BY pattern_name, rig_serial, rig_hole_sequence, depth_bin_index LIMIT ? OFFSET ?"
	args = append(args, filter.PageSize, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query profile rows: %w", err)
	}
	defer rows.Close()

	var records []models.ProfileRecord
	for rows.Next() {
		rec, err := scanProfileRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}

	return records, total, rows.Err()
}

func scanProfileRecord(rows *sql.Rows) (models.ProfileRecord, error) {
	var rec models.ProfileRecord
	b := &rec.Bin

	var (
		rigName                sql.NullString
		bit, feeder            sql.NullFloat64
		startTime              time.Time
		endTime                sql.NullTime
		seq, combined          sql.NullInt64
		idx                    [16]sql.NullFloat64
		holeDepth              sql.NullFloat64
		drillSec, drillMin     sql.NullFloat64
		nextStart              sql.NullTime
		cycleSec, nonDrillSec  sql.NullFloat64
		drillROP, cycleROP     sql.NullFloat64
	)

	err := rows.Scan(
		&rec.HoleAttemptID, &b.Key.Pattern, &b.Key.HoleID, &rigName, &b.Key.RigSerial,
		&bit, &startTime, &endTime, &seq, &combined,
		&b.BinIndex, &b.WidthM, &b.SampleCount, &b.FineBinCount,
		&b.MinDepthM, &b.AvgDepthM, &b.MaxDepthM,
		&b.AvgPercussionPressure, &feeder, &b.AvgPenetrationRate,
		&b.Position.X, &b.Position.Y, &b.Position.Z,
		&idx[0], &idx[1], &idx[2], &idx[3],
		&idx[4], &idx[5], &idx[6], &idx[7],
		&idx[8], &idx[9], &idx[10], &idx[11],
		&idx[12], &idx[13], &idx[14], &idx[15],
		&holeDepth, &drillSec, &drillMin, &nextStart,
		&cycleSec, &nonDrillSec, &drillROP, &cycleROP,
	)
	if err != nil {
		return rec, fmt.Errorf("failed to scan profile row: %w", err)
	}

	b.Key.StartUnix = startTime.Unix()
	b.Key.BitDiameterMM = -1
	if bit.Valid {
		b.Key.BitDiameterMM = bit.Float64
	}
	if feeder.Valid {
		b.AvgFeederPressure = &feeder.Float64
	}
	b.Hardness1 = indexStatsFrom(idx[0:4])
	b.Hardness2 = indexStatsFrom(idx[4:8])
	b.SpecificEnergy = indexStatsFrom(idx[8:12])
	b.ProxyStrength = indexStatsFrom(idx[12:16])

	if seq.Valid {
		c := models.CycleTimeRecord{}
		c.Key = b.Key
		c.PatternName = b.Key.Pattern
		c.HoleID = b.Key.HoleID
		c.RigName = rigName.String
		c.RigSerial = b.Key.RigSerial
		if bit.Valid {
			c.BitDiameterMM = &bit.Float64
		}
		c.StartTime = startTime
		if endTime.Valid {
			c.EndTime = endTime.Time
		}
		c.RigHoleSequence = int(seq.Int64)
		c.CombinedSequenceID = combined.Int64
		c.HoleDepthM = holeDepth.Float64
		c.DrillingTimeSeconds = drillSec.Float64
		c.DrillingTimeMinutes = drillMin.Float64
		if nextStart.Valid {
			c.NextHoleStartTime = &nextStart.Time
		}
		if cycleSec.Valid {
			c.CycleTimeSeconds = &cycleSec.Float64
		}
		if nonDrillSec.Valid {
			c.NonDrillingTimeSeconds = &nonDrillSec.Float64
		}
		if drillROP.Valid {
			c.DrillingROPMPerHour = &drillROP.Float64
		}
		if cycleROP.Valid {
			c.CycleROPMPerHour = &cycleROP.Float64
		}
		rec.Cycle = &c
	}

	return rec, nil
}

func indexStatsFrom(cols []sql.NullFloat64) models.IndexStats {
	var st models.IndexStats
	if cols[0].Valid {
		st.Mean = &cols[0].Float64
	}
	if cols[1].Valid {
		st.Max = &cols[1].Float64
	}
	if cols[2].Valid {
		st.StdDev = &cols[2].Float64
	}
	if cols[3].Valid {
		st.Smoothed = &cols[3].Float64
	}
	return st
}

// GetCycles retrieves one cycle-time row per hole attempt, ordered by
// pattern, rig and sequence.
func (r *ProfileRepository) GetCycles(filter models.CycleFilter) ([]models.CycleTimeRecord, int64, error) {
	var conditions []string
	var args []interface{}

	conditions = append(conditions, "rig_hole_sequence IS NOT NULL")
	if filter.Pattern != "" {
		conditions = append(conditions, "pattern_name = ?")
		args = append(args, filter.Pattern)
	}
	if filter.RigSerial != "" {
		conditions = append(conditions, "rig_serial = ?")
		args = append(args, filter.RigSerial)
	}

	where := " WHERE " + strings.Join(conditions, " AND ")

	const cycleColumns = `pattern_name, hole_id, rig_name, rig_serial, bit_diameter_mm,
		start_time, end_time, rig_hole_sequence, combined_sequence_id, hole_depth_m,
		drilling_time_seconds, drilling_time_minutes, next_hole_start_time,
		cycle_time_seconds, non_drilling_time_seconds, drilling_rop_m_per_hour, cycle_rop_m_per_hour`

	var total int64
	countQuery := "SELECT COUNT(DISTINCT pattern_name || '|' || rig_serial || '|' || combined_sequence_id) FROM hole_depth_profile" + where
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count cycle rows: %w", err)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}
	offset := (filter.Page - 1) * filter.PageSize

	query := "SELECT DISTINCT " + cycleColumns + " FROM hole_depth_profile" + where +
		" ORDER BY pattern_name, rig_serial, rig_hole_sequence LIMIT ? OFFSET ?"
	args = append(args, filter.PageSize, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query cycle rows: %w", err)
	}
	defer rows.Close()

	var records []models.CycleTimeRecord
	for rows.Next() {
		var c models.CycleTimeRecord
		var bit sql.NullFloat64
		var endTime, nextStart sql.NullTime
		var cycleSec, nonDrillSec, drillROP, cycleROP sql.NullFloat64

		err := rows.Scan(
			&c.PatternName, &c.HoleID, &c.RigName, &c.RigSerial, &bit,
			&c.StartTime, &endTime, &c.RigHoleSequence, &c.CombinedSequenceID, &c.HoleDepthM,
			&c.DrillingTimeSeconds, &c.DrillingTimeMinutes, &nextStart,
			&cycleSec, &nonDrillSec, &drillROP, &cycleROP,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan cycle row: %w", err)
		}

		if bit.Valid {
			c.BitDiameterMM = &bit.Float64
		}
		if endTime.Valid {
			c.EndTime = endTime.Time
		}
		if nextStart.Valid {
			c.NextHoleStartTime = &nextStart.Time
		}
		if cycleSec.Valid {
			c.CycleTimeSeconds = &cycleSec.Float64
		}
		if nonDrillSec.Valid {
			c.NonDrillingTimeSeconds = &nonDrillSec.Float64
		}
		if drillROP.Valid {
			c.DrillingROPMPerHour = &drillROP.Float64
		}
		if cycleROP.Valid {
			c.CycleROPMPerHour = &cycleROP.Float64
		}

		c.Key = models.AttemptKey{
			Pattern:       c.PatternName,
			RigSerial:     c.RigSerial,
			HoleID:        c.HoleID,
			BitDiameterMM: -1,
			StartUnix:     c.StartTime.Unix(),
		}
		if bit.Valid {
			c.Key.BitDiameterMM = bit.Float64
		}

		records = append(records, c)
	}

	return records, total, rows.Err()
}
