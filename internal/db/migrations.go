package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.DB) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "baseline_schedule_and_run_tables",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_authoritative_flag_to_schedule_records",
		Up:      migrationV2,
	},
	{
		Version: 3,
		Name:    "add_conflict_index_to_resolution_runs",
		Up:      migrationV3,
	},
}

// RunMigrations runs all pending migrations
func RunMigrations() error {
	db, err := GetDB()
	if err != nil {
		return fmt.Errorf("failed to get database: %w", err)
	}

	// Create schema_version table if it doesn't exist
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	// Get current schema version
	var currentVersion int
	err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	// Run pending migrations
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		fmt.Printf("Running migration %d: %s\n", migration.Version, migration.Name)

		if err := migration.Up(db); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
		}

		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// migrationV1 creates the baseline tables for schedule records and run history.
func migrationV1(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schedule_records (
			record_id TEXT PRIMARY KEY,
			employee_id TEXT NOT NULL,
			shift_id TEXT,
			date TEXT NOT NULL,
			start_time DATETIME NOT NULL,
			end_time DATETIME NOT NULL,
			status TEXT NOT NULL CHECK(status IN ('planned', 'confirmed', 'cancelled')) DEFAULT 'planned',
			priority INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_schedule_records_date ON schedule_records(date);
		CREATE INDEX IF NOT EXISTS idx_schedule_records_employee_date ON schedule_records(employee_id, date);
		CREATE INDEX IF NOT EXISTS idx_schedule_records_shift_date ON schedule_records(shift_id, date);

		CREATE TABLE IF NOT EXISTS detection_runs (
			detection_id TEXT PRIMARY KEY,
			algorithm_version TEXT NOT NULL,
			started_at DATETIME NOT NULL,
			finished_at DATETIME NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			total_conflicts INTEGER NOT NULL DEFAULT 0,
			severe_conflicts INTEGER NOT NULL DEFAULT 0,
			severity_score REAL NOT NULL DEFAULT 0,
			payload TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_detection_runs_created ON detection_runs(created_at);

		CREATE TABLE IF NOT EXISTS resolution_runs (
			resolution_id TEXT PRIMARY KEY,
			conflict_id TEXT,
			strategy TEXT NOT NULL,
			successful INTEGER NOT NULL DEFAULT 0,
			requires_manual INTEGER NOT NULL DEFAULT 0,
			quality_score REAL NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			payload TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_resolution_runs_created ON resolution_runs(created_at);
	`)
	if err != nil {
		return fmt.Errorf("failed to create baseline tables: %w", err)
	}
	return nil
}

// migrationV2 adds the authoritative flag used by overlap severity scoring.
func migrationV2(db *sql.DB) error {
	if _, err := db.Exec(`ALTER TABLE schedule_records ADD COLUMN authoritative INTEGER NOT NULL DEFAULT 0`); err != nil {
		return fmt.Errorf("failed to add authoritative column: %w", err)
	}
	return nil
}

// migrationV3 indexes resolution runs by conflict for history lookups.
func migrationV3(db *sql.DB) error {
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_resolution_runs_conflict ON resolution_runs(conflict_id)`); err != nil {
		return fmt.Errorf("failed to create conflict index: %w", err)
	}
	return nil
}
