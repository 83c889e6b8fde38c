package resolve

import (
	"testing"
	"time"

	"github.com/example/rosterguard/internal/core/detect"
	"github.com/example/rosterguard/internal/models"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("bad time %q: %v", value, err)
	}
	return ts
}

func record(t *testing.T, id, employeeID, shiftID, date, start, end string) models.ScheduleRecord {
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

func baseData(employeeIDs ...string) models.ScheduleData {
	return models.ScheduleData{
		EmployeeIDs: employeeIDs,
		StartDate:   "2025-12-15",
		EndDate:     "2025-12-21",
	}
}

func newResolver() (*Resolver, *detect.Detector) {
	d := detect.New(detect.DefaultConfig())
	return New(d), d
}

func TestResolveTimeConflictByAdjustment(t *testing.T) {
	// Scenario: E1 works 09:00-17:00 and 16:00-20:00 on one day. The fix
	// must remove the overlap and survive re-detection.
	rv, d := newResolver()
	data := baseData("E1")
	records := []models.ScheduleRecord{
		record(t, "R1", "E1", "SHIFT-A", "2025-12-16", "09:00", "17:00"),
		record(t, "R2", "E1", "SHIFT-B", "2025-12-16", "16:00", "20:00"),
	}

	check := d.TimeConflicts(records, data)
	if len(check.Items) != 1 {
		t.Fatalf("setup: time conflicts = %d, want 1", len(check.Items))
	}

	result := rv.Resolve(check.Items[0], records, data)
	if !result.Successful {
		t.Fatalf("resolution failed: %s", result.Description)
	}
	if result.Strategy != models.StrategyTimeAdjustment {
		t.Errorf("Strategy = %s, want %s", result.Strategy, models.StrategyTimeAdjustment)
	}
	if len(result.Modifications) != 1 || result.Modifications[0].Type != models.ModificationUpdate {
		t.Errorf("Modifications = %+v, want one UPDATE", result.Modifications)
	}

	// Re-running detection on the resolved records yields no time conflict.
	after := d.TimeConflicts(result.ResolvedRecords, data)
	if after.HasConflict {
		t.Errorf("time conflict survives resolution: %+v", after.Items)
	}

	// The later record now starts where the earlier ends.
	for _, r := range result.ResolvedRecords {
		if r.RecordID == "R2" && !r.StartTime.Equal(mustTime(t, "2025-12-16T17:00:00Z")) {
			t.Errorf("R2 start = %s, want 17:00", r.StartTime)
		}
	}
}

func TestResolveQualityScore(t *testing.T) {
	// One UPDATE via TIME_ADJUSTMENT: 100 - 5 - 10.
	if got := qualityScore(models.StrategyTimeAdjustment, 1); got != 85 {
		t.Errorf("qualityScore = %f, want 85", got)
	}
	if got := qualityScore(models.StrategyRecordDeletion, 1); got != 75 {
		t.Errorf("qualityScore = %f, want 75", got)
	}
	if got := qualityScore(models.StrategyHybrid, 20); got != 0 {
		t.Errorf("qualityScore floor = %f, want 0", got)
	}
}

func TestResolveSkillConflictByReplacement(t *testing.T) {
	rv, d := newResolver()
	data := baseData("E3", "E4")
	data.ShiftRequirements = map[string][]string{"FRONT-DESK": {"cashier"}}
	data.EmployeeSkills = map[string][]string{
		"E3": {"security"},
		"E4": {"cashier", "security"},
	}
	records := []models.ScheduleRecord{
		record(t, "R1", "E3", "FRONT-DESK", "2025-12-16", "09:00", "17:00"),
	}

	check := d.SkillConflicts(records, data)
	if len(check.Items) != 1 {
		t.Fatalf("setup: skill conflicts = %d, want 1", len(check.Items))
	}

	result := rv.Resolve(check.Items[0], records, data)
	if !result.Successful {
		t.Fatalf("resolution failed: %s", result.Description)
	}
	if result.Strategy != models.StrategyEmployeeReplacement {
		t.Errorf("Strategy = %s", result.Strategy)
	}
	if result.ResolvedRecords[0].EmployeeID != "E4" {
		t.Errorf("assignee = %s, want E4", result.ResolvedRecords[0].EmployeeID)
	}
	if after := d.SkillConflicts(result.ResolvedRecords, data); after.HasConflict {
		t.Errorf("skill conflict survives resolution: %+v", after.Items)
	}
}

func TestResolveSkillConflictNoSubstitute(t *testing.T) {
	// Nobody holds the skill: resolution must fail gracefully with ranked
	// alternatives, not an error.
	rv, d := newResolver()
	data := baseData("E3")
	data.ShiftRequirements = map[string][]string{"FRONT-DESK": {"cashier"}}
	data.EmployeeSkills = map[string][]string{"E3": {"security"}}
	records := []models.ScheduleRecord{
		record(t, "R1", "E3", "FRONT-DESK", "2025-12-16", "09:00", "17:00"),
	}

	check := d.SkillConflicts(records, data)
	result := rv.Resolve(check.Items[0], records, data)

	if result.Successful {
		t.Fatal("resolution must fail with no qualified substitute")
	}
	if !result.RequiresManualConfirmation {
		t.Error("failed resolution must require manual confirmation")
	}
	if len(result.Alternatives) == 0 {
		t.Fatal("failed resolution must offer alternatives")
	}
	for i := 1; i < len(result.Alternatives); i++ {
		if result.Alternatives[i-1].QualityScore < result.Alternatives[i].QualityScore {
			t.Errorf("alternatives not ranked by quality: %f before %f",
				result.Alternatives[i-1].QualityScore, result.Alternatives[i].QualityScore)
		}
	}
}

func TestResolveWorkHourBySegmentation(t *testing.T) {
	rv, d := newResolver()
	data := baseData("E1")
	records := []models.ScheduleRecord{
		record(t, "R1", "E1", "S1", "2025-12-16", "06:00", "14:00"),
		record(t, "R2", "E1", "S2", "2025-12-16", "14:00", "21:00"),
	}

	check := d.WorkHourConflicts(records, data)
	if len(check.Items) != 1 {
		t.Fatalf("setup: work-hour conflicts = %d, want 1", len(check.Items))
	}

	result := rv.Resolve(check.Items[0], records, data)
	if !result.Successful {
		t.Fatalf("resolution failed: %s", result.Description)
	}
	if result.Strategy != models.StrategySegmentation {
		t.Errorf("Strategy = %s", result.Strategy)
	}
	if after := d.WorkHourConflicts(result.ResolvedRecords, data); after.HasConflict {
		t.Errorf("work-hour conflict survives resolution: %+v", after.Items)
	}
	// The longest record was shortened by the 3 overtime hours.
	for _, r := range result.ResolvedRecords {
		if r.RecordID == "R1" && !r.EndTime.Equal(mustTime(t, "2025-12-16T11:00:00Z")) {
			t.Errorf("R1 end = %s, want 11:00", r.EndTime)
		}
	}
}

func TestResolveOverstaffedByShedding(t *testing.T) {
	rv, d := newResolver()
	data := baseData("E1", "E2", "E3")
	data.StartDate, data.EndDate = "2025-12-16", "2025-12-16"
	data.ShiftCapacities = map[string]models.ShiftCapacity{"DAY": {MinRequired: 1, MaxCapacity: 2}}
	r3 := record(t, "R3", "E3", "DAY", "2025-12-16", "09:00", "17:00")
	r3.Priority = -1
	records := []models.ScheduleRecord{
		record(t, "R1", "E1", "DAY", "2025-12-16", "09:00", "17:00"),
		record(t, "R2", "E2", "DAY", "2025-12-16", "09:00", "17:00"),
		r3,
	}

	check := d.CapacityConflicts(records, data)
	if len(check.Items) != 1 {
		t.Fatalf("setup: capacity conflicts = %d, want 1", len(check.Items))
	}

	result := rv.Resolve(check.Items[0], records, data)
	if !result.Successful {
		t.Fatalf("resolution failed: %s", result.Description)
	}
	if result.Strategy != models.StrategyShiftAdjustment {
		t.Errorf("Strategy = %s", result.Strategy)
	}
	if len(result.ResolvedRecords) != 2 {
		t.Fatalf("records after shed = %d, want 2", len(result.ResolvedRecords))
	}
	for _, r := range result.ResolvedRecords {
		if r.RecordID == "R3" {
			t.Error("lowest-priority record must be the one removed")
		}
	}
}

func TestResolveUnderstaffedByFilling(t *testing.T) {
	rv, d := newResolver()
	data := baseData("E1", "E2", "E3")
	data.StartDate, data.EndDate = "2025-12-16", "2025-12-16"
	data.ShiftCapacities = map[string]models.ShiftCapacity{"NIGHT": {MinRequired: 2, MaxCapacity: 4}}
	records := []models.ScheduleRecord{
		record(t, "R1", "E1", "NIGHT", "2025-12-16", "22:00", "23:00"),
	}

	check := d.CapacityConflicts(records, data)
	if len(check.Items) != 1 {
		t.Fatalf("setup: capacity conflicts = %d, want 1", len(check.Items))
	}

	result := rv.Resolve(check.Items[0], records, data)
	if !result.Successful {
		t.Fatalf("resolution failed: %s", result.Description)
	}
	if len(result.ResolvedRecords) != 2 {
		t.Fatalf("records after fill = %d, want 2", len(result.ResolvedRecords))
	}
	if len(result.Modifications) != 1 || result.Modifications[0].Type != models.ModificationCreate {
		t.Errorf("Modifications = %+v, want one CREATE", result.Modifications)
	}
	if after := d.CapacityConflicts(result.ResolvedRecords, data); after.HasConflict {
		t.Errorf("capacity conflict survives resolution: %+v", after.Items)
	}
}

func TestStrategyChainDefaults(t *testing.T) {
	tests := []struct {
		kind models.ConflictKind
		want models.ResolutionStrategy
	}{
		{models.KindTime, models.StrategyTimeAdjustment},
		{models.KindSkill, models.StrategyEmployeeReplacement},
		{models.KindWorkHour, models.StrategySegmentation},
		{models.KindCapacity, models.StrategyShiftAdjustment},
		{models.KindOther, models.StrategyPriorityBased},
	}
	for _, tt := range tests {
		if got := DefaultStrategy(tt.kind); got != tt.want {
			t.Errorf("DefaultStrategy(%s) = %s, want %s", tt.kind, got, tt.want)
		}
	}
}

func TestResolveAllThreadsRecordChanges(t *testing.T) {
	rv, d := newResolver()
	data := baseData("E1", "E3", "E4")
	data.ShiftRequirements = map[string][]string{"FRONT-DESK": {"cashier"}}
	data.EmployeeSkills = map[string][]string{
		"E3": {"security"},
		"E4": {"cashier"},
	}
	records := []models.ScheduleRecord{
		record(t, "R1", "E1", "SHIFT-A", "2025-12-16", "09:00", "17:00"),
		record(t, "R2", "E1", "SHIFT-B", "2025-12-16", "16:00", "20:00"),
		record(t, "R3", "E3", "FRONT-DESK", "2025-12-17", "09:00", "17:00"),
	}

	detection, err := d.Detect(records, data)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if !detection.HasConflicts {
		t.Fatal("setup: expected conflicts")
	}

	combined, individual := rv.ResolveAll(detection, records, data)
	if len(individual) != detection.TotalConflicts {
		t.Errorf("individual results = %d, want %d", len(individual), detection.TotalConflicts)
	}
	if combined.QualityScore < 0 || combined.QualityScore > 100 {
		t.Errorf("QualityScore out of range: %f", combined.QualityScore)
	}

	// The final schedule carries no time or skill conflicts.
	if after := d.TimeConflicts(combined.ResolvedRecords, data); after.HasConflict {
		t.Errorf("time conflicts survive ResolveAll: %+v", after.Items)
	}
	if after := d.SkillConflicts(combined.ResolvedRecords, data); after.HasConflict {
		t.Errorf("skill conflicts survive ResolveAll: %+v", after.Items)
	}
}

func TestValidateResolution(t *testing.T) {
	rv, d := newResolver()
	data := baseData("E1")
	records := []models.ScheduleRecord{
		record(t, "R1", "E1", "SHIFT-A", "2025-12-16", "09:00", "17:00"),
		record(t, "R2", "E1", "SHIFT-B", "2025-12-16", "16:00", "20:00"),
	}
	check := d.TimeConflicts(records, data)
	good := rv.Resolve(check.Items[0], records, data)

	if !rv.ValidateResolution(good, data) {
		t.Error("successful resolution must validate")
	}

	bad := good
	bad.QualityScore = 150
	if rv.ValidateResolution(bad, data) {
		t.Error("quality score above 100 must not validate")
	}

	noMods := good
	noMods.Modifications = nil
	if rv.ValidateResolution(noMods, data) {
		t.Error("successful resolution without modifications must not validate")
	}

	failed := models.ConflictResolutionResult{
		ResolutionID:               "X",
		RequiresManualConfirmation: true,
	}
	if !rv.ValidateResolution(failed, data) {
		t.Error("escalated failure must validate")
	}
	failed.RequiresManualConfirmation = false
	if rv.ValidateResolution(failed, data) {
		t.Error("silent failure must not validate")
	}
}
