package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/example/rosterguard/internal/models"
	"github.com/example/rosterguard/internal/ports/primary"
	"github.com/example/rosterguard/internal/ports/secondary"
)

// historyLookbackDays bounds how much prior-period history LoadRange pulls
// for rolling-window checks.
const historyLookbackDays = 60

// ScheduleServiceImpl implements the ScheduleService interface.
type ScheduleServiceImpl struct {
	schedules secondary.ScheduleRepository
	logger    *slog.Logger
}

// NewScheduleService creates a new ScheduleService with injected
// dependencies.
func NewScheduleService(schedules secondary.ScheduleRepository, logger *slog.Logger) *ScheduleServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScheduleServiceImpl{schedules: schedules, logger: logger}
}

// ImportRecords stores schedule records, replacing records with the same ID.
func (s *ScheduleServiceImpl) ImportRecords(ctx context.Context, records []models.ScheduleRecord) (int, error) {
	for i, r := range records {
		if r.RecordID == "" {
			return 0, &models.InputValidationError{Field: fmt.Sprintf("records[%d].recordId", i), Reason: "must not be empty"}
		}
		if r.EmployeeID == "" {
			return 0, &models.InputValidationError{Field: fmt.Sprintf("records[%d].employeeId", i), Reason: "must not be empty"}
		}
	}
	if err := s.schedules.SaveRecords(ctx, records); err != nil {
		return 0, fmt.Errorf("failed to save records: %w", err)
	}
	s.logger.Info("records imported", "count", len(records))
	return len(records), nil
}

// LoadRange returns the records within the run's date range plus the
// preceding history needed for rolling-window checks.
func (s *ScheduleServiceImpl) LoadRange(ctx context.Context, data models.ScheduleData) ([]models.ScheduleRecord, []models.ScheduleRecord, error) {
	records, err := s.schedules.RecordsInRange(ctx, data.StartDate, data.EndDate)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load records: %w", err)
	}
	history, err := s.schedules.RecordsBefore(ctx, data.StartDate, historyLookbackDays)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load history: %w", err)
	}
	return records, history, nil
}

// ApplyResolution persists a successful resolution's record changes: the
// resolved records are upserted and deleted records removed.
func (s *ScheduleServiceImpl) ApplyResolution(ctx context.Context, result models.ConflictResolutionResult) error {
	if !result.Successful {
		return fmt.Errorf("resolution %s was not successful: %w", result.ResolutionID, models.ErrResolutionInfeasible)
	}

	var deleted []string
	for _, m := range result.Modifications {
		if m.Type == models.ModificationDelete {
			deleted = append(deleted, m.RecordID)
		}
	}

	if err := s.schedules.SaveRecords(ctx, result.ResolvedRecords); err != nil {
		return fmt.Errorf("failed to save resolved records: %w", err)
	}
	if len(deleted) > 0 {
		if err := s.schedules.DeleteRecords(ctx, deleted); err != nil {
			return fmt.Errorf("failed to delete removed records: %w", err)
		}
	}

	s.logger.Info("resolution applied",
		"resolutionId", result.ResolutionID,
		"records", len(result.ResolvedRecords),
		"deleted", len(deleted))
	return nil
}

// Ensure ScheduleServiceImpl implements the interface
var _ primary.ScheduleService = (*ScheduleServiceImpl)(nil)
