// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() to ensure tests run against
// the authoritative schema, preventing drift between test and production.
//
// DO NOT hardcode CREATE TABLE statements in test files. Use setupTestDB()
// and the helpers below instead.
package sqlite_test

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/rosterguard/internal/db"
	"github.com/example/rosterguard/internal/models"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// This is the single shared test database setup function for all repository tests.
// Uses db.GetSchemaSQL() to prevent test schemas from drifting.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	// Use the authoritative schema from schema.go
	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

func mustParse(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("bad time %q: %v", value, err)
	}
	return ts
}

// testRecord builds a schedule record for the given date and clock times.
func testRecord(t *testing.T, id, employeeID, shiftID, date, start, end string) models.ScheduleRecord {
	t.Helper()
	startAt, err := time.Parse(time.RFC3339, date+"T"+start+":00Z")
	if err != nil {
		t.Fatalf("bad start %q: %v", start, err)
	}
	endAt, err := time.Parse(time.RFC3339, date+"T"+end+":00Z")
	if err != nil {
		t.Fatalf("bad end %q: %v", end, err)
	}
	return models.ScheduleRecord{
		RecordID:   id,
		EmployeeID: employeeID,
		ShiftID:    shiftID,
		Date:       date,
		StartTime:  startAt,
		EndTime:    endAt,
		Status:     models.RecordStatusPlanned,
		Priority:   1,
	}
}

// testDetection builds a minimal detection result for run repository tests.
func testDetection(id string, conflicts ...models.Conflict) models.ConflictDetectionResult {
	now := time.Date(2025, 12, 16, 10, 0, 0, 0, time.UTC)
	return models.ConflictDetectionResult{
		DetectionID:      id,
		AlgorithmVersion: models.AlgorithmVersion,
		StartedAt:        now,
		FinishedAt:       now.Add(5 * time.Millisecond),
		DurationMS:       5,
		HasConflicts:     len(conflicts) > 0,
		TotalConflicts:   len(conflicts),
		TimeConflicts:    conflicts,
	}
}
