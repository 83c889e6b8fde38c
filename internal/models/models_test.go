package models

import (
	"testing"
	"time"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("bad time %q: %v", value, err)
	}
	return ts
}

func TestScheduleRecordOverlap(t *testing.T) {
	tests := []struct {
		name        string
		start1, end1 string
		start2, end2 string
		wantOverlap  bool
		wantMinutes  int
	}{
		{
			name:   "one hour overlap",
			start1: "2025-12-16T09:00:00Z", end1: "2025-12-16T17:00:00Z",
			start2: "2025-12-16T16:00:00Z", end2: "2025-12-16T20:00:00Z",
			wantOverlap: true,
			wantMinutes: 60,
		},
		{
			name:   "back to back shifts do not overlap",
			start1: "2025-12-16T09:00:00Z", end1: "2025-12-16T17:00:00Z",
			start2: "2025-12-16T17:00:00Z", end2: "2025-12-16T21:00:00Z",
			wantOverlap: false,
			wantMinutes: 0,
		},
		{
			name:   "fully contained",
			start1: "2025-12-16T08:00:00Z", end1: "2025-12-16T20:00:00Z",
			start2: "2025-12-16T10:00:00Z", end2: "2025-12-16T12:00:00Z",
			wantOverlap: true,
			wantMinutes: 120,
		},
		{
			name:   "disjoint days",
			start1: "2025-12-16T09:00:00Z", end1: "2025-12-16T17:00:00Z",
			start2: "2025-12-17T09:00:00Z", end2: "2025-12-17T17:00:00Z",
			wantOverlap: false,
			wantMinutes: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r1 := ScheduleRecord{StartTime: mustTime(t, tt.start1), EndTime: mustTime(t, tt.end1)}
			r2 := ScheduleRecord{StartTime: mustTime(t, tt.start2), EndTime: mustTime(t, tt.end2)}

			if got := r1.Overlaps(r2); got != tt.wantOverlap {
				t.Errorf("Overlaps = %v, want %v", got, tt.wantOverlap)
			}
			if got := r2.Overlaps(r1); got != tt.wantOverlap {
				t.Errorf("Overlaps (reversed) = %v, want %v", got, tt.wantOverlap)
			}
			if got := r1.OverlapMinutes(r2); got != tt.wantMinutes {
				t.Errorf("OverlapMinutes = %d, want %d", got, tt.wantMinutes)
			}
		})
	}
}

func TestConflictStatusTransitions(t *testing.T) {
	tests := []struct {
		from ConflictStatus
		to   ConflictStatus
		want bool
	}{
		{StatusPending, StatusResolved, true},
		{StatusPending, StatusEscalated, true},
		{StatusPending, StatusIgnored, true},
		{StatusEscalated, StatusResolved, true},
		{StatusEscalated, StatusIgnored, true},
		{StatusResolved, StatusPending, false},
		{StatusResolved, StatusIgnored, false},
		{StatusIgnored, StatusResolved, false},
		{StatusEscalated, StatusPending, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransition(tt.to); got != tt.want {
			t.Errorf("CanTransition(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestNewCheckResultInvariant(t *testing.T) {
	empty := NewCheckResult[Conflict](nil)
	if empty.HasConflict {
		t.Error("empty check result must not report a conflict")
	}

	one := NewCheckResult([]Conflict{{ID: "c1", Kind: KindTime}})
	if !one.HasConflict {
		t.Error("non-empty check result must report a conflict")
	}
	if len(one.Items) != 1 {
		t.Errorf("Items = %d, want 1", len(one.Items))
	}
}

func TestConflictSortKeyOrdersByKind(t *testing.T) {
	timeConflict := Conflict{Kind: KindTime, Type: TypeTimeOverlap, EmployeeID: "EMP-2"}
	otherConflict := Conflict{Kind: KindOther, Type: TypeConsecutiveDays, EmployeeID: "EMP-1"}

	if !timeConflict.Less(otherConflict) {
		t.Error("time conflicts must sort before other conflicts regardless of employee")
	}
}

func TestScheduleDataDates(t *testing.T) {
	data := ScheduleData{StartDate: "2025-12-15", EndDate: "2025-12-18"}
	dates := data.Dates()
	want := []string{"2025-12-15", "2025-12-16", "2025-12-17", "2025-12-18"}
	if len(dates) != len(want) {
		t.Fatalf("Dates len = %d, want %d", len(dates), len(want))
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Errorf("Dates[%d] = %s, want %s", i, dates[i], want[i])
		}
	}
}

func TestCapacityOfFallsBackToMinDailyStaff(t *testing.T) {
	data := ScheduleData{
		MinDailyStaff: 2,
		ShiftCapacities: map[string]ShiftCapacity{
			"NIGHT": {MinRequired: 5, MaxCapacity: 8},
		},
	}

	if got := data.CapacityOf("NIGHT"); got.MinRequired != 5 || got.MaxCapacity != 8 {
		t.Errorf("CapacityOf(NIGHT) = %+v, want {5 8}", got)
	}
	if got := data.CapacityOf("DAY"); got.MinRequired != 2 || got.MaxCapacity != 0 {
		t.Errorf("CapacityOf(DAY) = %+v, want {2 0}", got)
	}
}
