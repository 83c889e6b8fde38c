package app

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/example/rosterguard/internal/core/aggregate"
	"github.com/example/rosterguard/internal/core/resolve"
	"github.com/example/rosterguard/internal/models"
	"github.com/example/rosterguard/internal/ports/primary"
	"github.com/example/rosterguard/internal/ports/secondary"
)

// ResolutionServiceImpl implements the ResolutionService interface.
type ResolutionServiceImpl struct {
	resolver *resolve.Resolver
	runs     secondary.RunRepository
	logger   *slog.Logger
}

// NewResolutionService creates a new ResolutionService with injected
// dependencies.
func NewResolutionService(resolver *resolve.Resolver, runs secondary.RunRepository, logger *slog.Logger) *ResolutionServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResolutionServiceImpl{
		resolver: resolver,
		runs:     runs,
		logger:   logger,
	}
}

// ResolveConflicts resolves every conflict in a detection result.
func (s *ResolutionServiceImpl) ResolveConflicts(ctx context.Context, detection models.ConflictDetectionResult, records []models.ScheduleRecord, data models.ScheduleData) (models.ConflictResolutionResult, error) {
	combined, individual := s.resolver.ResolveAll(detection, records, data)

	s.logger.Info("resolution complete",
		"resolutionId", combined.ResolutionID,
		"conflicts", len(individual),
		"resolved", successCount(individual),
		"quality", combined.QualityScore)

	if s.runs != nil {
		if err := s.runs.SaveResolution(ctx, combined); err != nil {
			s.logger.Warn("failed to store resolution run", "resolutionId", combined.ResolutionID, "error", err)
		}
	}
	return combined, nil
}

// ResolveBatchConflicts resolves many detection results. Conflicts are
// partitioned by schedule cell (employee+date, or shift+date for capacity
// conflicts) and each partition is processed sequentially, so two fixes
// never race on the same records. Cancellation is checked between cells.
func (s *ResolutionServiceImpl) ResolveBatchConflicts(ctx context.Context, detections []models.ConflictDetectionResult, records []models.ScheduleRecord, data models.ScheduleData) (models.BatchResolutionResult, error) {
	cells := make(map[string][]models.Conflict)
	var order []string
	for _, detection := range detections {
		for _, c := range detection.AllConflicts() {
			key := cellKey(c)
			if _, ok := cells[key]; !ok {
				order = append(order, key)
			}
			cells[key] = append(cells[key], c)
		}
	}
	sort.Strings(order)

	current := make([]models.ScheduleRecord, len(records))
	copy(current, records)

	var results []models.ConflictResolutionResult
	incomplete := false
	for _, key := range order {
		if ctx.Err() != nil {
			incomplete = true
			break
		}
		for _, conflict := range cells[key] {
			r := s.resolver.Resolve(conflict, current, data)
			if r.Successful {
				current = r.ResolvedRecords
			}
			results = append(results, r)
			if s.runs != nil {
				if err := s.runs.SaveResolution(ctx, r); err != nil {
					s.logger.Warn("failed to store resolution run", "resolutionId", r.ResolutionID, "error", err)
				}
			}
		}
	}

	batch := aggregate.Resolutions(results, current, incomplete)
	s.logger.Info("batch resolution complete",
		"conflicts", batch.TotalCount,
		"resolved", batch.SuccessCount,
		"successRate", batch.SuccessRate,
		"incomplete", batch.Incomplete)
	return batch, nil
}

// cellKey names the schedule cell a conflict's fix would write to.
func cellKey(c models.Conflict) string {
	if c.EmployeeID != "" {
		return "emp|" + c.EmployeeID + "|" + c.Date
	}
	return "shift|" + c.ShiftID + "|" + c.Date
}

func successCount(results []models.ConflictResolutionResult) int {
	n := 0
	for _, r := range results {
		if r.Successful {
			n++
		}
	}
	return n
}

// GetResolutionStrategy returns the default strategy for a conflict kind.
func (s *ResolutionServiceImpl) GetResolutionStrategy(kind models.ConflictKind) models.ResolutionStrategy {
	return resolve.DefaultStrategy(kind)
}

// ValidateResolution checks a resolution result for internal consistency.
func (s *ResolutionServiceImpl) ValidateResolution(result models.ConflictResolutionResult, data models.ScheduleData) bool {
	return s.resolver.ValidateResolution(result, data)
}

// GetResolutionStatistics summarizes stored resolution runs.
func (s *ResolutionServiceImpl) GetResolutionStatistics(ctx context.Context) (models.ResolutionStatistics, error) {
	if s.runs == nil {
		return models.ResolutionStatistics{}, fmt.Errorf("no run store configured: %w", models.ErrStatisticsUnavailable)
	}
	results, err := s.runs.ListResolutions(ctx, 0)
	if err != nil {
		s.logger.Warn("failed to load resolution runs", "error", err)
		return models.ResolutionStatistics{}, fmt.Errorf("loading resolution runs: %w", models.ErrStatisticsUnavailable)
	}
	return aggregate.ResolutionStatistics(results), nil
}

// Ensure ResolutionServiceImpl implements the interface
var _ primary.ResolutionService = (*ResolutionServiceImpl)(nil)
