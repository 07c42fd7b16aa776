package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration represents a schema migration applied in version order
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations holds the full schema history. The sample and hole tables
// mirror the rig export; hole_depth_profile is the pipeline sink and is
// rebuilt wholesale per pattern on every run.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_mwd_holes",
		SQL: `
			CREATE TABLE IF NOT EXISTS mwd_holes (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				pattern_name TEXT NOT NULL,
				hole_id INTEGER NOT NULL,
				rig_name TEXT NOT NULL,
				rig_serial TEXT NOT NULL,
				bit_diameter_mm REAL,
				collar_x REAL NOT NULL,
				collar_y REAL NOT NULL,
				collar_z REAL NOT NULL,
				toe_x REAL NOT NULL,
				toe_y REAL NOT NULL,
				toe_z REAL NOT NULL,
				start_time TIMESTAMP NOT NULL,
				end_time TIMESTAMP NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_mwd_holes_pattern
				ON mwd_holes(pattern_name, rig_serial, hole_id);
		`,
	},
	{
		Version: 2,
		Name:    "create_mwd_samples",
		SQL: `
			CREATE TABLE IF NOT EXISTS mwd_samples (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				pattern_name TEXT NOT NULL,
				hole_id INTEGER NOT NULL,
				rig_serial TEXT NOT NULL,
				hole_start_time TIMESTAMP NOT NULL,
				time TIMESTAMP NOT NULL,
				depth_m REAL NOT NULL,
				percussion_pressure REAL NOT NULL,
				feeder_pressure REAL,
				penetration_rate REAL NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_mwd_samples_pattern
				ON mwd_samples(pattern_name, rig_serial, hole_id);
		`,
	},
	{
		Version: 3,
		Name:    "create_hole_depth_profile",
		SQL: `
			CREATE TABLE IF NOT EXISTS hole_depth_profile (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				hole_attempt_id TEXT NOT NULL,
				pattern_name TEXT NOT NULL,
				hole_id INTEGER NOT NULL,
				rig_name TEXT,
				rig_serial TEXT NOT NULL,
				bit_diameter_mm REAL,
				start_time TIMESTAMP NOT NULL,
				end_time TIMESTAMP,
				rig_hole_sequence INTEGER,
				combined_sequence_id INTEGER,
				depth_bin_index INTEGER NOT NULL,
				width_m REAL NOT NULL,
				sample_count INTEGER NOT NULL,
				fine_bin_count INTEGER NOT NULL,
				min_depth_m REAL NOT NULL,
				avg_depth_m REAL NOT NULL,
				max_depth_m REAL NOT NULL,
				avg_percussion_pressure REAL NOT NULL,
				avg_feeder_pressure REAL,
				avg_penetration_rate REAL NOT NULL,
				pos_x REAL NOT NULL,
				pos_y REAL NOT NULL,
				pos_z REAL NOT NULL,
				hardness1_mean REAL, hardness1_max REAL,
				hardness1_std REAL, hardness1_smoothed REAL,
				hardness2_mean REAL, hardness2_max REAL,
				hardness2_std REAL, hardness2_smoothed REAL,
				specific_energy_mean REAL, specific_energy_max REAL,
				specific_energy_std REAL, specific_energy_smoothed REAL,
				proxy_strength_mean REAL, proxy_strength_max REAL,
				proxy_strength_std REAL, proxy_strength_smoothed REAL,
				hole_depth_m REAL,
				drilling_time_seconds REAL,
				drilling_time_minutes REAL,
				next_hole_start_time TIMESTAMP,
				cycle_time_seconds REAL,
				non_drilling_time_seconds REAL,
				drilling_rop_m_per_hour REAL,
				cycle_rop_m_per_hour REAL
			);
			CREATE INDEX IF NOT EXISTS idx_profile_pattern
				ON hole_depth_profile(pattern_name, rig_serial, hole_id, depth_bin_index);
		`,
	},
}

// RunMigrations applies all pending schema migrations in version order
func RunMigrations(db *sql.DB) error {
	if err := initMigrationsTable(db); err != nil {
		return err
	}

	applied, err := appliedMigrations(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		if err := applyMigration(db, m); err != nil {
			return err
		}
	}

	log.Println("All migrations applied successfully")
	return nil
}

func initMigrationsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

func appliedMigrations(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}

	return applied, nil
}

func applyMigration(db *sql.DB, m Migration) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if _, err := tx.Exec(m.SQL); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to execute migration %d: %w", m.Version, err)
	}

	if _, err := tx.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
	}

	log.Printf("Applied migration %d: %s", m.Version, m.Name)
	return nil
}
