package db

import (
	"database/sql"
	"fmt"
	"time"
)

// SeedFixtures populates the database with a demo roster for the current
// week. The fixture deliberately contains conflicts (an overlapping pair,
// a double assignment, an overworked employee) so detection has something
// to find.
func SeedFixtures(database *sql.DB) error {
	monday := startOfWeek(time.Now())

	type fixture struct {
		id, employee, shift string
		dayOffset           int
		start, end          string
		priority            int
	}

	fixtures := []fixture{
		// A normal pair of day shifts.
		{"REC-001", "EMP-001", "SHIFT-DAY", 0, "09:00", "17:00", 2},
		{"REC-002", "EMP-002", "SHIFT-DAY", 0, "09:00", "17:00", 2},
		// EMP-003 has overlapping assignments on Tuesday.
		{"REC-003", "EMP-003", "SHIFT-DAY", 1, "09:00", "17:00", 3},
		{"REC-004", "EMP-003", "SHIFT-LATE", 1, "15:00", "22:00", 1},
		// EMP-001 works two different shifts on Wednesday.
		{"REC-005", "EMP-001", "SHIFT-DAY", 2, "09:00", "13:00", 2},
		{"REC-006", "EMP-001", "SHIFT-LATE", 2, "14:00", "20:00", 1},
		// EMP-002 pulls a 15-hour Thursday.
		{"REC-007", "EMP-002", "SHIFT-LONG", 3, "06:00", "21:00", 2},
		// Quiet Friday coverage.
		{"REC-008", "EMP-003", "SHIFT-DAY", 4, "09:00", "17:00", 2},
	}

	for _, f := range fixtures {
		date := monday.AddDate(0, 0, f.dayOffset)
		day := date.Format("2006-01-02")
		startAt, err := time.Parse(time.RFC3339, day+"T"+f.start+":00Z")
		if err != nil {
			return fmt.Errorf("seed fixture %s: %w", f.id, err)
		}
		endAt, err := time.Parse(time.RFC3339, day+"T"+f.end+":00Z")
		if err != nil {
			return fmt.Errorf("seed fixture %s: %w", f.id, err)
		}

		if _, err := database.Exec(
			`INSERT OR REPLACE INTO schedule_records
				(record_id, employee_id, shift_id, date, start_time, end_time, status, priority, authoritative)
			 VALUES (?, ?, ?, ?, ?, ?, 'planned', ?, 0)`,
			f.id, f.employee, f.shift, day,
			startAt.Format(time.RFC3339), endAt.Format(time.RFC3339), f.priority,
		); err != nil {
			return fmt.Errorf("seed schedule_records: %w", err)
		}
	}

	return nil
}

func startOfWeek(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	for t.Weekday() != time.Monday {
		t = t.AddDate(0, 0, -1)
	}
	return t
}
