// Package app wires the core engine to the ports: services implement the
// primary interfaces, orchestrate batch runs, and record run summaries
// through the secondary ports.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/rosterguard/internal/core/aggregate"
	"github.com/example/rosterguard/internal/core/detect"
	"github.com/example/rosterguard/internal/models"
	"github.com/example/rosterguard/internal/ports/primary"
	"github.com/example/rosterguard/internal/ports/secondary"
)

// DetectionServiceImpl implements the DetectionService interface.
type DetectionServiceImpl struct {
	detector *detect.Detector
	runs     secondary.RunRepository
	logger   *slog.Logger
	workers  int
}

// NewDetectionService creates a new DetectionService with injected
// dependencies. workers <= 0 selects one worker per CPU.
func NewDetectionService(detector *detect.Detector, runs secondary.RunRepository, logger *slog.Logger, workers int) *DetectionServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &DetectionServiceImpl{
		detector: detector,
		runs:     runs,
		logger:   logger,
		workers:  workers,
	}
}

// DetectConflicts runs a full multi-dimensional scan over a schedule.
func (s *DetectionServiceImpl) DetectConflicts(ctx context.Context, records []models.ScheduleRecord, data models.ScheduleData) (models.ConflictDetectionResult, error) {
	result, err := s.detector.Detect(records, data)
	if err != nil {
		return models.ConflictDetectionResult{}, err
	}

	s.logger.Info("detection complete",
		"detectionId", result.DetectionID,
		"conflicts", result.TotalConflicts,
		"severe", result.SevereConflicts,
		"durationMs", result.DurationMS)

	if s.runs != nil {
		if err := s.runs.SaveDetection(ctx, result); err != nil {
			s.logger.Warn("failed to store detection run", "detectionId", result.DetectionID, "error", err)
		}
	}
	return result, nil
}

// DetectEmployeeConflicts scans one employee's assignments.
func (s *DetectionServiceImpl) DetectEmployeeConflicts(ctx context.Context, employeeID string, records []models.ScheduleRecord, data models.ScheduleData) (models.EmployeeConflictResult, error) {
	result, err := s.detector.DetectEmployee(employeeID, records, data)
	if err != nil {
		return models.EmployeeConflictResult{}, err
	}
	s.logger.Debug("employee scan complete", "employeeId", employeeID, "conflicts", result.TotalConflicts)
	return result, nil
}

// DetectBatchConflicts partitions the scan across employees. Phase 1 runs
// the per-employee dimensions on a worker pool; phase 2 runs the capacity
// reduction over the whole record set once every employee scan is in. A
// cancelled context yields a partial result marked incomplete.
func (s *DetectionServiceImpl) DetectBatchConflicts(ctx context.Context, records []models.ScheduleRecord, data models.ScheduleData) (models.BatchConflictResult, error) {
	if err := detect.ValidateInput(records, data); err != nil {
		return models.BatchConflictResult{}, err
	}
	started := time.Now()

	workers := s.workers
	if workers > len(data.EmployeeIDs) {
		workers = len(data.EmployeeIDs)
	}

	jobs := make(chan string)
	scans := make(chan models.EmployeeConflictResult)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for employeeID := range jobs {
				scans <- s.scanEmployee(employeeID, records, data)
			}
		}()
	}
	go func() {
		defer close(jobs)
		for _, employeeID := range data.EmployeeIDs {
			select {
			case <-ctx.Done():
				return
			case jobs <- employeeID:
			}
		}
	}()
	go func() {
		wg.Wait()
		close(scans)
	}()

	var employeeResults []models.EmployeeConflictResult
	var conflicts []models.Conflict
	for er := range scans {
		employeeResults = append(employeeResults, er)
		conflicts = append(conflicts, er.Conflicts...)
	}
	incomplete := ctx.Err() != nil

	// Phase 2: capacity needs the complete record picture, so it runs only
	// after the fan-in barrier and only on an uncancelled run.
	if !incomplete {
		conflicts = append(conflicts, s.detector.CapacityConflicts(records, data).Items...)
	}

	global := aggregate.Detection(conflicts, aggregate.Meta{
		DetectionID: uuid.New().String(),
		StartedAt:   started,
		FinishedAt:  time.Now(),
	})
	batch := aggregate.Batch(employeeResults, global, len(records), incomplete)

	s.logger.Info("batch detection complete",
		"employees", batch.TotalEmployees,
		"withConflicts", batch.EmployeesWithConflicts,
		"degraded", batch.FailureCount,
		"incomplete", batch.Incomplete)

	if s.runs != nil && !incomplete {
		if err := s.runs.SaveDetection(ctx, global); err != nil {
			s.logger.Warn("failed to store detection run", "detectionId", global.DetectionID, "error", err)
		}
	}
	return batch, nil
}

// scanEmployee runs one employee's checks, converting panics and errors into
// a degraded slot so the batch survives a single bad employee.
func (s *DetectionServiceImpl) scanEmployee(employeeID string, records []models.ScheduleRecord, data models.ScheduleData) (er models.EmployeeConflictResult) {
	defer func() {
		if r := recover(); r != nil {
			derr := &models.DetectionError{EmployeeID: employeeID, Cause: fmt.Errorf("%v", r)}
			s.logger.Error("employee scan panicked", "employeeId", employeeID, "error", derr)
			er = models.EmployeeConflictResult{
				EmployeeID:    employeeID,
				Degraded:      true,
				DegradedCause: derr.Error(),
			}
		}
	}()

	result, err := s.detector.DetectEmployee(employeeID, records, data)
	if err != nil {
		s.logger.Warn("employee scan failed", "employeeId", employeeID, "error", err)
		return models.EmployeeConflictResult{
			EmployeeID:    employeeID,
			Degraded:      true,
			DegradedCause: err.Error(),
		}
	}
	return result
}

// ValidateConflictResult checks a detection result for internal consistency.
func (s *DetectionServiceImpl) ValidateConflictResult(result models.ConflictDetectionResult) bool {
	return aggregate.ValidateDetectionResult(result)
}

// GetConflictStatistics summarizes stored detection runs. Failures are
// non-fatal for callers that choose to ignore them: the zero statistics
// value is always usable.
func (s *DetectionServiceImpl) GetConflictStatistics(ctx context.Context) (models.ConflictStatistics, error) {
	if s.runs == nil {
		return models.ConflictStatistics{}, fmt.Errorf("no run store configured: %w", models.ErrStatisticsUnavailable)
	}
	results, err := s.runs.ListDetections(ctx, 0)
	if err != nil {
		s.logger.Warn("failed to load detection runs", "error", err)
		return models.ConflictStatistics{}, fmt.Errorf("loading detection runs: %w", models.ErrStatisticsUnavailable)
	}
	return aggregate.ConflictStatistics(results), nil
}

// Ensure DetectionServiceImpl implements the interface
var _ primary.DetectionService = (*DetectionServiceImpl)(nil)
