// Package primary defines the primary ports (driving interfaces) for the
// engine. Callers such as the CLI, batch jobs, or an optimizer's fitness
// step talk to the engine through these interfaces.
package primary

import (
	"context"

	"github.com/example/rosterguard/internal/models"
)

// DetectionService defines the primary port for conflict detection.
type DetectionService interface {
	// DetectConflicts runs a full multi-dimensional scan over a schedule.
	DetectConflicts(ctx context.Context, records []models.ScheduleRecord, data models.ScheduleData) (models.ConflictDetectionResult, error)

	// DetectEmployeeConflicts scans one employee's assignments.
	DetectEmployeeConflicts(ctx context.Context, employeeID string, records []models.ScheduleRecord, data models.ScheduleData) (models.EmployeeConflictResult, error)

	// DetectBatchConflicts partitions the scan across employees, runs the
	// per-employee dimensions in parallel and the capacity dimension as a
	// final reduction, and rolls everything up. Cancelling the context
	// returns a partial result marked incomplete.
	DetectBatchConflicts(ctx context.Context, records []models.ScheduleRecord, data models.ScheduleData) (models.BatchConflictResult, error)

	// ValidateConflictResult checks a detection result for internal
	// consistency.
	ValidateConflictResult(result models.ConflictDetectionResult) bool

	// GetConflictStatistics summarizes stored detection runs.
	GetConflictStatistics(ctx context.Context) (models.ConflictStatistics, error)
}

// ResolutionService defines the primary port for conflict resolution.
type ResolutionService interface {
	// ResolveConflicts resolves every conflict in a detection result,
	// threading record changes through successive fixes.
	ResolveConflicts(ctx context.Context, detection models.ConflictDetectionResult, records []models.ScheduleRecord, data models.ScheduleData) (models.ConflictResolutionResult, error)

	// ResolveBatchConflicts resolves many detection results. Conflicts
	// sharing a schedule cell are serialized; independent cells may be
	// processed concurrently. Cancelling the context returns a partial
	// result marked incomplete.
	ResolveBatchConflicts(ctx context.Context, detections []models.ConflictDetectionResult, records []models.ScheduleRecord, data models.ScheduleData) (models.BatchResolutionResult, error)

	// GetResolutionStrategy returns the default strategy for a conflict kind.
	GetResolutionStrategy(kind models.ConflictKind) models.ResolutionStrategy

	// ValidateResolution checks a resolution result for internal
	// consistency against the schedule constraints.
	ValidateResolution(result models.ConflictResolutionResult, data models.ScheduleData) bool

	// GetResolutionStatistics summarizes stored resolution runs.
	GetResolutionStatistics(ctx context.Context) (models.ResolutionStatistics, error)
}

// ScheduleService defines the primary port for schedule record management
// around the engine: loading the record set a run operates on and applying
// a resolution's record changes.
type ScheduleService interface {
	// ImportRecords stores schedule records, replacing records with the
	// same ID.
	ImportRecords(ctx context.Context, records []models.ScheduleRecord) (int, error)

	// LoadRange returns the records within a date range plus the preceding
	// history needed for rolling-window checks.
	LoadRange(ctx context.Context, data models.ScheduleData) (records, history []models.ScheduleRecord, err error)

	// ApplyResolution persists a successful resolution's record changes.
	ApplyResolution(ctx context.Context, result models.ConflictResolutionResult) error
}
