package db

// SchemaSQL is the complete modern schema for fresh rosterguard installs.
// This schema reflects the current state after all migrations.
//
// # Schema Drift Protection
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All tests use
// this schema via GetSchemaSQL(), which provides two layers of protection:
//
//  1. No hardcoded schemas: tests must use db.GetSchemaSQL() instead of
//     carrying their own CREATE TABLE statements.
//
//  2. Immediate failure on drift: if repository code references a column that
//     doesn't exist in this schema, tests fail immediately with "no such column".
//     This catches drift at development time, not production.
//
// When adding new columns or tables:
//  1. Add a migration in internal/db/migrations.go
//  2. Update SchemaSQL here
const SchemaSQL = `
-- Schedule records (one employee-to-shift assignment per row)
CREATE TABLE IF NOT EXISTS schedule_records (
	record_id TEXT PRIMARY KEY,
	employee_id TEXT NOT NULL,
	shift_id TEXT,
	date TEXT NOT NULL,
	start_time DATETIME NOT NULL,
	end_time DATETIME NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('planned', 'confirmed', 'cancelled')) DEFAULT 'planned',
	priority INTEGER NOT NULL DEFAULT 0,
	authoritative INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_schedule_records_date ON schedule_records(date);
CREATE INDEX IF NOT EXISTS idx_schedule_records_employee_date ON schedule_records(employee_id, date);
CREATE INDEX IF NOT EXISTS idx_schedule_records_shift_date ON schedule_records(shift_id, date);

-- Detection runs (headline counters as columns, full result as JSON payload)
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

-- Resolution runs (one row per resolved or attempted conflict)
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

CREATE INDEX IF NOT EXISTS idx_resolution_runs_conflict ON resolution_runs(conflict_id);
CREATE INDEX IF NOT EXISTS idx_resolution_runs_created ON resolution_runs(created_at);
`

// InitSchema initializes the database schema, running migrations if needed
func InitSchema() error {
	db, err := GetDB()
	if err != nil {
		return err
	}

	// Check if schema_version table exists to determine if this is a fresh install
	var tableCount int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount == 0 {
		// Completely fresh install - create modern schema directly
		// and mark all migrations as applied
		_, err = db.Exec(SchemaSQL)
		if err != nil {
			return err
		}
		_, err = db.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY,
				applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)
		`)
		if err != nil {
			return err
		}
		for i := 1; i <= len(migrations); i++ {
			_, err = db.Exec("INSERT INTO schema_version (version) VALUES (?)", i)
			if err != nil {
				return err
			}
		}
		return nil
	}

	// schema_version table exists - run any pending migrations
	return RunMigrations()
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
