package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/example/rosterguard/internal/core/detect"
	"github.com/example/rosterguard/internal/models"
	"github.com/example/rosterguard/internal/ports/secondary"
)

func newDetectionService(runs *mockRunRepo) *DetectionServiceImpl {
	detector := detect.New(detect.DefaultConfig())
	var repo secondary.RunRepository
	if runs != nil {
		repo = runs
	}
	return NewDetectionService(detector, repo, slog.New(slog.NewTextHandler(io.Discard, nil)), 4)
}

func TestDetectConflictsStoresRun(t *testing.T) {
	runs := newMockRunRepo()
	svc := newDetectionService(runs)
	data := testData("E1")
	records := []models.ScheduleRecord{
		testRecord(t, "R1", "E1", "SHIFT-A", "2025-12-16", "09:00", "17:00"),
		testRecord(t, "R2", "E1", "SHIFT-B", "2025-12-16", "16:00", "20:00"),
	}

	result, err := svc.DetectConflicts(context.Background(), records, data)
	if err != nil {
		t.Fatalf("DetectConflicts: %v", err)
	}
	if !result.HasConflicts {
		t.Error("expected conflicts")
	}
	if len(runs.detections) != 1 {
		t.Errorf("stored runs = %d, want 1", len(runs.detections))
	}
	if !svc.ValidateConflictResult(result) {
		t.Error("result must validate")
	}
}

func TestDetectConflictsRejectsInvalidInput(t *testing.T) {
	svc := newDetectionService(newMockRunRepo())
	data := testData() // no employees

	_, err := svc.DetectConflicts(context.Background(), nil, data)
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestDetectBatchConflicts(t *testing.T) {
	runs := newMockRunRepo()
	svc := newDetectionService(runs)

	// 20 employees, two with overlapping assignments.
	var employeeIDs []string
	var records []models.ScheduleRecord
	for i := 0; i < 20; i++ {
		id := fmt.Sprintf("E%02d", i)
		employeeIDs = append(employeeIDs, id)
		records = append(records,
			testRecord(t, "R-"+id, id, "DAY", "2025-12-16", "09:00", "17:00"))
	}
	records = append(records,
		testRecord(t, "RX-E00", "E00", "LATE", "2025-12-16", "16:00", "20:00"),
		testRecord(t, "RX-E01", "E01", "LATE", "2025-12-16", "16:00", "20:00"))
	data := testData(employeeIDs...)

	batch, err := svc.DetectBatchConflicts(context.Background(), records, data)
	if err != nil {
		t.Fatalf("DetectBatchConflicts: %v", err)
	}
	if batch.TotalEmployees != 20 {
		t.Errorf("TotalEmployees = %d, want 20", batch.TotalEmployees)
	}
	if batch.EmployeesWithConflicts != 2 {
		t.Errorf("EmployeesWithConflicts = %d, want 2", batch.EmployeesWithConflicts)
	}
	if batch.FailureCount != 0 {
		t.Errorf("FailureCount = %d, want 0", batch.FailureCount)
	}
	if batch.SuccessRate != 1 {
		t.Errorf("SuccessRate = %f, want 1", batch.SuccessRate)
	}
	if batch.Incomplete {
		t.Error("uncancelled batch must not be incomplete")
	}
	// Employee results come back sorted regardless of worker completion order.
	for i := 1; i < len(batch.EmployeeResults); i++ {
		if batch.EmployeeResults[i-1].EmployeeID > batch.EmployeeResults[i].EmployeeID {
			t.Fatalf("employee results not sorted at %d", i)
		}
	}
}

func TestDetectBatchConflictsDeterministicAcrossRuns(t *testing.T) {
	svc := newDetectionService(nil)
	var employeeIDs []string
	var records []models.ScheduleRecord
	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("E%02d", i)
		employeeIDs = append(employeeIDs, id)
		records = append(records,
			testRecord(t, "RA-"+id, id, "DAY", "2025-12-16", "09:00", "17:00"),
			testRecord(t, "RB-"+id, id, "LATE", "2025-12-16", "16:00", "20:00"))
	}
	data := testData(employeeIDs...)

	b1, err := svc.DetectBatchConflicts(context.Background(), records, data)
	if err != nil {
		t.Fatal(err)
	}
	b2, err := svc.DetectBatchConflicts(context.Background(), records, data)
	if err != nil {
		t.Fatal(err)
	}

	all1, all2 := b1.Global.AllConflicts(), b2.Global.AllConflicts()
	if len(all1) != len(all2) {
		t.Fatalf("conflict counts differ: %d vs %d", len(all1), len(all2))
	}
	for i := range all1 {
		if all1[i].ID != all2[i].ID {
			t.Errorf("conflict %d differs across runs: %s vs %s", i, all1[i].ID, all2[i].ID)
		}
	}
}

func TestDetectBatchConflictsNoDuplicateIDs(t *testing.T) {
	svc := newDetectionService(nil)

	// Two employees with their own overlaps, plus one whose history alone
	// breaches the weekly limit. Every worker scans against the same shared
	// data; a conflict may only enter the global aggregate once.
	data := testData("E1", "E2", "E3")
	for _, date := range []string{"2025-12-09", "2025-12-10", "2025-12-11", "2025-12-12", "2025-12-13", "2025-12-14"} {
		data.HistoryRecords = append(data.HistoryRecords,
			testRecord(t, "H-"+date, "E3", "DAY", date, "06:00", "18:00"))
	}
	records := []models.ScheduleRecord{
		testRecord(t, "RA-E1", "E1", "DAY", "2025-12-16", "09:00", "17:00"),
		testRecord(t, "RB-E1", "E1", "LATE", "2025-12-16", "16:00", "20:00"),
		testRecord(t, "RA-E2", "E2", "DAY", "2025-12-17", "09:00", "17:00"),
		testRecord(t, "RB-E2", "E2", "LATE", "2025-12-17", "16:00", "20:00"),
	}

	batch, err := svc.DetectBatchConflicts(context.Background(), records, data)
	if err != nil {
		t.Fatalf("DetectBatchConflicts: %v", err)
	}

	seen := make(map[string]bool)
	for _, c := range batch.Global.AllConflicts() {
		if seen[c.ID] {
			t.Errorf("conflict %s (%s, %s) appears twice in the global aggregate", c.ID, c.Type, c.EmployeeID)
		}
		seen[c.ID] = true
	}
	for _, er := range batch.EmployeeResults {
		for _, c := range er.Conflicts {
			if c.EmployeeID != er.EmployeeID {
				t.Errorf("conflict for %s landed in %s's slot", c.EmployeeID, er.EmployeeID)
			}
		}
	}
	if batch.Global.TotalConflicts != len(seen) {
		t.Errorf("TotalConflicts = %d, want %d distinct", batch.Global.TotalConflicts, len(seen))
	}
}

func TestDetectBatchConflictsCancellation(t *testing.T) {
	svc := newDetectionService(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var employeeIDs []string
	var records []models.ScheduleRecord
	for i := 0; i < 50; i++ {
		id := fmt.Sprintf("E%02d", i)
		employeeIDs = append(employeeIDs, id)
		records = append(records,
			testRecord(t, "R-"+id, id, "DAY", "2025-12-16", "09:00", "17:00"))
	}
	data := testData(employeeIDs...)

	batch, err := svc.DetectBatchConflicts(ctx, records, data)
	if err != nil {
		t.Fatalf("cancelled batch must still return a partial result: %v", err)
	}
	if !batch.Incomplete {
		t.Error("cancelled batch must be marked incomplete")
	}
	if batch.TotalEmployees > len(employeeIDs) {
		t.Errorf("TotalEmployees = %d beyond scope", batch.TotalEmployees)
	}
}

func TestGetConflictStatistics(t *testing.T) {
	runs := newMockRunRepo()
	svc := newDetectionService(runs)
	data := testData("E1")
	records := []models.ScheduleRecord{
		testRecord(t, "R1", "E1", "SHIFT-A", "2025-12-16", "09:00", "17:00"),
		testRecord(t, "R2", "E1", "SHIFT-B", "2025-12-16", "16:00", "20:00"),
	}
	if _, err := svc.DetectConflicts(context.Background(), records, data); err != nil {
		t.Fatal(err)
	}

	stats, err := svc.GetConflictStatistics(context.Background())
	if err != nil {
		t.Fatalf("GetConflictStatistics: %v", err)
	}
	if stats.TotalDetections != 1 {
		t.Errorf("TotalDetections = %d, want 1", stats.TotalDetections)
	}
	if stats.TotalConflicts == 0 {
		t.Error("TotalConflicts = 0, want > 0")
	}
}

func TestGetConflictStatisticsUnavailable(t *testing.T) {
	runs := newMockRunRepo()
	runs.listErr = errors.New("disk gone")
	svc := newDetectionService(runs)

	_, err := svc.GetConflictStatistics(context.Background())
	if !errors.Is(err, models.ErrStatisticsUnavailable) {
		t.Errorf("err = %v, want ErrStatisticsUnavailable", err)
	}
}
