// Package secondary defines the secondary ports (driven adapters) for the
// engine. These are the interfaces through which the application reaches
// external systems such as the schedule store.
package secondary

import (
	"context"

	"github.com/example/rosterguard/internal/models"
)

// ScheduleRepository defines the secondary port for schedule persistence.
// The engine itself never writes records; the caller decides whether a
// resolution's record changes are applied through this port.
type ScheduleRepository interface {
	// SaveRecords upserts schedule records by record ID.
	SaveRecords(ctx context.Context, records []models.ScheduleRecord) error

	// RecordsInRange retrieves records with dates in [start, end].
	RecordsInRange(ctx context.Context, start, end string) ([]models.ScheduleRecord, error)

	// RecordsBefore retrieves up to lookbackDays days of records ending
	// the day before the given date, oldest first. Feeds rolling-window
	// checks that span the range boundary.
	RecordsBefore(ctx context.Context, date string, lookbackDays int) ([]models.ScheduleRecord, error)

	// DeleteRecords removes records by ID.
	DeleteRecords(ctx context.Context, recordIDs []string) error
}

// RunRepository defines the secondary port for detection and resolution run
// bookkeeping. Statistics are derived from stored runs.
type RunRepository interface {
	// SaveDetection stores a detection run summary.
	SaveDetection(ctx context.Context, result models.ConflictDetectionResult) error

	// ListDetections retrieves the most recent detection runs, newest
	// first. limit <= 0 means all.
	ListDetections(ctx context.Context, limit int) ([]models.ConflictDetectionResult, error)

	// SaveResolution stores a resolution run summary.
	SaveResolution(ctx context.Context, result models.ConflictResolutionResult) error

	// ListResolutions retrieves the most recent resolution runs, newest
	// first. limit <= 0 means all.
	ListResolutions(ctx context.Context, limit int) ([]models.ConflictResolutionResult, error)
}
