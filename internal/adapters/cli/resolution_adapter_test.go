package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/example/rosterguard/internal/models"
)

// mockResolutionService implements primary.ResolutionService for testing
type mockResolutionService struct {
	resolveFn      func(ctx context.Context, detection models.ConflictDetectionResult, records []models.ScheduleRecord, data models.ScheduleData) (models.ConflictResolutionResult, error)
	resolveBatchFn func(ctx context.Context, detections []models.ConflictDetectionResult, records []models.ScheduleRecord, data models.ScheduleData) (models.BatchResolutionResult, error)
	statsFn        func(ctx context.Context) (models.ResolutionStatistics, error)
}

func (m *mockResolutionService) ResolveConflicts(ctx context.Context, detection models.ConflictDetectionResult, records []models.ScheduleRecord, data models.ScheduleData) (models.ConflictResolutionResult, error) {
	if m.resolveFn != nil {
		return m.resolveFn(ctx, detection, records, data)
	}
	return models.ConflictResolutionResult{Successful: true}, nil
}

func (m *mockResolutionService) ResolveBatchConflicts(ctx context.Context, detections []models.ConflictDetectionResult, records []models.ScheduleRecord, data models.ScheduleData) (models.BatchResolutionResult, error) {
	if m.resolveBatchFn != nil {
		return m.resolveBatchFn(ctx, detections, records, data)
	}
	return models.BatchResolutionResult{}, nil
}

func (m *mockResolutionService) GetResolutionStrategy(kind models.ConflictKind) models.ResolutionStrategy {
	return models.StrategyTimeAdjustment
}

func (m *mockResolutionService) ValidateResolution(result models.ConflictResolutionResult, data models.ScheduleData) bool {
	return true
}

func (m *mockResolutionService) GetResolutionStatistics(ctx context.Context) (models.ResolutionStatistics, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx)
	}
	return models.ResolutionStatistics{}, nil
}

func TestResolutionAdapterResolveSuccess(t *testing.T) {
	var buf bytes.Buffer
	svc := &mockResolutionService{
		resolveFn: func(ctx context.Context, detection models.ConflictDetectionResult, records []models.ScheduleRecord, data models.ScheduleData) (models.ConflictResolutionResult, error) {
			return models.ConflictResolutionResult{
				ResolutionID: "RES-001",
				ConflictID:   "CONF-001",
				Strategy:     models.StrategyTimeAdjustment,
				Successful:   true,
				QualityScore: 85,
				Modifications: []models.RecordModification{
					{RecordID: "REC-002", Type: models.ModificationUpdate, Reason: "shifted start past overlap"},
				},
			}, nil
		},
	}
	adapter := NewResolutionAdapter(svc, &buf)

	result, err := adapter.Resolve(context.Background(), models.ConflictDetectionResult{}, nil, models.ScheduleData{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !result.Successful {
		t.Error("result not passed through")
	}
	out := buf.String()
	for _, want := range []string{"conflict CONF-001", "TIME_ADJUSTMENT", "quality 85", "UPDATE", "REC-002"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestResolutionAdapterResolveManual(t *testing.T) {
	var buf bytes.Buffer
	svc := &mockResolutionService{
		resolveFn: func(ctx context.Context, detection models.ConflictDetectionResult, records []models.ScheduleRecord, data models.ScheduleData) (models.ConflictResolutionResult, error) {
			return models.ConflictResolutionResult{
				ResolutionID:               "RES-002",
				ConflictID:                 "CONF-002",
				Strategy:                   models.StrategyManualConfirmation,
				Successful:                 false,
				RequiresManualConfirmation: true,
				Description:                "no qualified substitute available",
				Alternatives: []models.AlternativeSolution{
					{Strategy: models.StrategyAutoRescheduling, QualityScore: 75, Description: "move to another date"},
				},
			}, nil
		},
	}
	adapter := NewResolutionAdapter(svc, &buf)

	if _, err := adapter.Resolve(context.Background(), models.ConflictDetectionResult{}, nil, models.ScheduleData{}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"unresolved", "no qualified substitute", "Alternatives", "AUTO_RESCHEDULING"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestResolutionAdapterResolveBatch(t *testing.T) {
	var buf bytes.Buffer
	svc := &mockResolutionService{
		resolveBatchFn: func(ctx context.Context, detections []models.ConflictDetectionResult, records []models.ScheduleRecord, data models.ScheduleData) (models.BatchResolutionResult, error) {
			return models.BatchResolutionResult{
				TotalCount:   2,
				SuccessCount: 1,
				FailureCount: 1,
				SuccessRate:  0.5,
				Incomplete:   true,
			}, nil
		},
	}
	adapter := NewResolutionAdapter(svc, &buf)

	if _, err := adapter.ResolveBatch(context.Background(), nil, nil, models.ScheduleData{}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"2 conflicts, 1 resolved, 1 need manual input", "Success rate: 50%", "cancelled"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestResolutionAdapterStats(t *testing.T) {
	var buf bytes.Buffer
	svc := &mockResolutionService{
		statsFn: func(ctx context.Context) (models.ResolutionStatistics, error) {
			return models.ResolutionStatistics{
				TotalResolutions:      4,
				SuccessfulResolutions: 3,
				FailedResolutions:     1,
				SuccessRate:           0.75,
				AverageQualityScore:   82.5,
				StrategyCounts:        map[models.ResolutionStrategy]int{models.StrategyTimeAdjustment: 3},
			}, nil
		},
	}
	adapter := NewResolutionAdapter(svc, &buf)

	if err := adapter.Stats(context.Background()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Resolution runs: 4", "Success rate: 75%", "Average quality score: 82.5", "TIME_ADJUSTMENT"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
