package app

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/example/rosterguard/internal/models"
	"github.com/example/rosterguard/internal/ports/secondary"
)

// Ensure mocks implement the interfaces
var (
	_ secondary.ScheduleRepository = (*mockScheduleRepo)(nil)
	_ secondary.RunRepository      = (*mockRunRepo)(nil)
)

// mockScheduleRepo implements secondary.ScheduleRepository for testing.
type mockScheduleRepo struct {
	mu      sync.Mutex
	records map[string]models.ScheduleRecord
	saveErr error
	loadErr error
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{records: make(map[string]models.ScheduleRecord)}
}

func (m *mockScheduleRepo) SaveRecords(ctx context.Context, records []models.ScheduleRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range records {
		m.records[r.RecordID] = r
	}
	return nil
}

func (m *mockScheduleRepo) RecordsInRange(ctx context.Context, start, end string) ([]models.ScheduleRecord, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ScheduleRecord
	for _, r := range m.records {
		if r.Date >= start && r.Date <= end {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordID < out[j].RecordID })
	return out, nil
}

func (m *mockScheduleRepo) RecordsBefore(ctx context.Context, date string, lookbackDays int) ([]models.ScheduleRecord, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ScheduleRecord
	for _, r := range m.records {
		if r.Date < date {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordID < out[j].RecordID })
	return out, nil
}

func (m *mockScheduleRepo) DeleteRecords(ctx context.Context, recordIDs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range recordIDs {
		delete(m.records, id)
	}
	return nil
}

// mockRunRepo implements secondary.RunRepository for testing.
type mockRunRepo struct {
	mu          sync.Mutex
	detections  []models.ConflictDetectionResult
	resolutions []models.ConflictResolutionResult
	saveErr     error
	listErr     error
}

func newMockRunRepo() *mockRunRepo {
	return &mockRunRepo{}
}

func (m *mockRunRepo) SaveDetection(ctx context.Context, result models.ConflictDetectionResult) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.detections = append(m.detections, result)
	return nil
}

func (m *mockRunRepo) ListDetections(ctx context.Context, limit int) ([]models.ConflictDetectionResult, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]models.ConflictDetectionResult(nil), m.detections...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockRunRepo) SaveResolution(ctx context.Context, result models.ConflictResolutionResult) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolutions = append(m.resolutions, result)
	return nil
}

func (m *mockRunRepo) ListResolutions(ctx context.Context, limit int) ([]models.ConflictResolutionResult, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]models.ConflictResolutionResult(nil), m.resolutions...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("bad time %q: %v", value, err)
	}
	return ts
}

func testRecord(t *testing.T, id, employeeID, shiftID, date, start, end string) models.ScheduleRecord {
	t.Helper()
	return models.ScheduleRecord{
		RecordID:   id,
		EmployeeID: employeeID,
		ShiftID:    shiftID,
		Date:       date,
		StartTime:  mustTime(t, date+"T"+start+":00Z"),
		EndTime:    mustTime(t, date+"T"+end+":00Z"),
		Status:     models.RecordStatusPlanned,
	}
}

func testData(employeeIDs ...string) models.ScheduleData {
	return models.ScheduleData{
		EmployeeIDs: employeeIDs,
		StartDate:   "2025-12-15",
		EndDate:     "2025-12-21",
	}
}
