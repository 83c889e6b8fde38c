// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/rosterguard/internal/models"
	"github.com/example/rosterguard/internal/ports/secondary"
)

// ScheduleRepository implements secondary.ScheduleRepository with SQLite.
type ScheduleRepository struct {
	db *sql.DB
}

// NewScheduleRepository creates a new SQLite schedule repository.
func NewScheduleRepository(db *sql.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

var _ secondary.ScheduleRepository = (*ScheduleRepository)(nil)

// scanRecord scans a schedule row into a ScheduleRecord.
func scanRecord(scanner interface {
	Scan(dest ...any) error
}) (models.ScheduleRecord, error) {
	var (
		record  models.ScheduleRecord
		shiftID sql.NullString
		start   string
		end     string
	)

	err := scanner.Scan(
		&record.RecordID, &record.EmployeeID, &shiftID, &record.Date,
		&start, &end, &record.Status, &record.Priority, &record.Authoritative,
	)
	if err != nil {
		return models.ScheduleRecord{}, err
	}

	record.ShiftID = shiftID.String
	if record.StartTime, err = time.Parse(time.RFC3339, start); err != nil {
		return models.ScheduleRecord{}, fmt.Errorf("bad start_time for %s: %w", record.RecordID, err)
	}
	if record.EndTime, err = time.Parse(time.RFC3339, end); err != nil {
		return models.ScheduleRecord{}, fmt.Errorf("bad end_time for %s: %w", record.RecordID, err)
	}

	return record, nil
}

const recordSelectCols = "record_id, employee_id, shift_id, date, start_time, end_time, status, priority, authoritative"

// SaveRecords upserts schedule records by record ID.
func (r *ScheduleRepository) SaveRecords(ctx context.Context, records []models.ScheduleRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, record := range records {
		var shiftID sql.NullString
		if record.ShiftID != "" {
			shiftID = sql.NullString{String: record.ShiftID, Valid: true}
		}
		status := record.Status
		if status == "" {
			status = models.RecordStatusPlanned
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO schedule_records (record_id, employee_id, shift_id, date, start_time, end_time, status, priority, authoritative)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(record_id) DO UPDATE SET
				employee_id = excluded.employee_id,
				shift_id = excluded.shift_id,
				date = excluded.date,
				start_time = excluded.start_time,
				end_time = excluded.end_time,
				status = excluded.status,
				priority = excluded.priority,
				authoritative = excluded.authoritative,
				updated_at = CURRENT_TIMESTAMP`,
			record.RecordID, record.EmployeeID, shiftID, record.Date,
			record.StartTime.Format(time.RFC3339), record.EndTime.Format(time.RFC3339),
			status, record.Priority, record.Authoritative,
		)
		if err != nil {
			return fmt.Errorf("failed to save record %s: %w", record.RecordID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit records: %w", err)
	}
	return nil
}

// RecordsInRange retrieves records with dates in [start, end] inclusive.
func (r *ScheduleRepository) RecordsInRange(ctx context.Context, start, end string) ([]models.ScheduleRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+recordSelectCols+" FROM schedule_records WHERE date >= ? AND date <= ? ORDER BY date, record_id",
		start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// RecordsBefore retrieves records with dates in [date - lookbackDays, date).
func (r *ScheduleRepository) RecordsBefore(ctx context.Context, date string, lookbackDays int) ([]models.ScheduleRecord, error) {
	cutoff, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("bad date %q: %w", date, err)
	}
	floor := cutoff.AddDate(0, 0, -lookbackDays).Format(models.DateLayout)

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+recordSelectCols+" FROM schedule_records WHERE date >= ? AND date < ? ORDER BY date, record_id",
		floor, date,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query history records: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// DeleteRecords removes records by ID. Missing IDs are not an error.
func (r *ScheduleRepository) DeleteRecords(ctx context.Context, recordIDs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, id := range recordIDs {
		if _, err := tx.ExecContext(ctx, "DELETE FROM schedule_records WHERE record_id = ?", id); err != nil {
			return fmt.Errorf("failed to delete record %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit deletes: %w", err)
	}
	return nil
}

func collectRecords(rows *sql.Rows) ([]models.ScheduleRecord, error) {
	var records []models.ScheduleRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}
	return records, nil
}
