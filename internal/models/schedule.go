// Package models contains domain types for the rosterguard engine.
// SQL persistence lives in internal/adapters/sqlite/*.go
package models

import (
	"time"
)

// DateLayout is the calendar-date format used throughout the engine.
const DateLayout = "2006-01-02"

// ScheduleRecord represents one employee-to-shift assignment on a date.
// Records are immutable once detection starts; the resolver produces
// replacement records instead of mutating them.
type ScheduleRecord struct {
	RecordID      string    `json:"recordId"`
	EmployeeID    string    `json:"employeeId"`
	ShiftID       string    `json:"shiftId"`
	Date          string    `json:"date"` // DateLayout
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	Status        string    `json:"status"`
	Priority      int       `json:"priority"` // higher wins when records compete
	Authoritative bool      `json:"authoritative"`
}

// ScheduleRecord status constants
const (
	RecordStatusPlanned   = "planned"
	RecordStatusConfirmed = "confirmed"
	RecordStatusCancelled = "cancelled"
)

// Duration returns the assignment length.
func (r ScheduleRecord) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// Hours returns the assignment length in hours.
func (r ScheduleRecord) Hours() float64 {
	return r.Duration().Hours()
}

// Overlaps reports whether the [start,end) intervals of two records intersect.
func (r ScheduleRecord) Overlaps(other ScheduleRecord) bool {
	return r.StartTime.Before(other.EndTime) && other.StartTime.Before(r.EndTime)
}

// OverlapMinutes returns the intersection length in whole minutes, or 0.
func (r ScheduleRecord) OverlapMinutes(other ScheduleRecord) int {
	start := r.StartTime
	if other.StartTime.After(start) {
		start = other.StartTime
	}
	end := r.EndTime
	if other.EndTime.Before(end) {
		end = other.EndTime
	}
	if !start.Before(end) {
		return 0
	}
	return int(end.Sub(start) / time.Minute)
}

// ShiftCapacity holds staffing bounds for one shift on any date.
// MaxCapacity == 0 means unbounded.
type ShiftCapacity struct {
	MinRequired int `json:"minRequired"`
	MaxCapacity int `json:"maxCapacity"`
}

// ScheduleData is the constraint set and employee/date scope a detection or
// resolution run operates over. It is read-only input owned by the caller.
type ScheduleData struct {
	EmployeeIDs            []string `json:"employeeIds"`
	StartDate              string   `json:"startDate"` // DateLayout, inclusive
	EndDate                string   `json:"endDate"`   // DateLayout, inclusive
	MinDailyStaff          int      `json:"minDailyStaff"`
	MaxConsecutiveWorkDays int      `json:"maxConsecutiveWorkDays"`
	MinRestDays            int      `json:"minRestDays"`
	MaxDailyWorkHours      float64  `json:"maxDailyWorkHours"`  // 0 = engine default
	MaxWeeklyWorkHours     float64  `json:"maxWeeklyWorkHours"` // 0 = engine default

	// Skill and capacity constraints, keyed by shift/employee ID.
	ShiftRequirements map[string][]string      `json:"shiftRequirements,omitempty"`
	EmployeeSkills    map[string][]string      `json:"employeeSkills,omitempty"`
	ShiftCapacities   map[string]ShiftCapacity `json:"shiftCapacities,omitempty"`
	CriticalShifts    map[string]bool          `json:"criticalShifts,omitempty"`

	// Assignments from before StartDate, used by rolling-window checks
	// (consecutive work days, weekly hours) that span the range boundary.
	HistoryRecords []ScheduleRecord `json:"historyRecords,omitempty"`
}

// HasEmployee reports whether an employee belongs to this run's scope.
func (d ScheduleData) HasEmployee(employeeID string) bool {
	for _, id := range d.EmployeeIDs {
		if id == employeeID {
			return true
		}
	}
	return false
}

// RequiredSkills returns the skills a shift demands, or nil.
func (d ScheduleData) RequiredSkills(shiftID string) []string {
	if d.ShiftRequirements == nil {
		return nil
	}
	return d.ShiftRequirements[shiftID]
}

// SkillsOf returns the skills an employee holds, or nil.
func (d ScheduleData) SkillsOf(employeeID string) []string {
	if d.EmployeeSkills == nil {
		return nil
	}
	return d.EmployeeSkills[employeeID]
}

// CapacityOf returns the staffing bounds for a shift. When the shift has no
// explicit entry the global MinDailyStaff floor applies with no upper bound.
func (d ScheduleData) CapacityOf(shiftID string) ShiftCapacity {
	if d.ShiftCapacities != nil {
		if cap, ok := d.ShiftCapacities[shiftID]; ok {
			return cap
		}
	}
	return ShiftCapacity{MinRequired: d.MinDailyStaff}
}

// Dates returns every calendar date in [StartDate, EndDate] in order.
func (d ScheduleData) Dates() []string {
	start, err := time.Parse(DateLayout, d.StartDate)
	if err != nil {
		return nil
	}
	end, err := time.Parse(DateLayout, d.EndDate)
	if err != nil {
		return nil
	}
	var dates []string
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 0, 1) {
		dates = append(dates, cur.Format(DateLayout))
	}
	return dates
}
