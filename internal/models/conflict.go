package models

import (
	"time"
)

// ConflictKind tags the dimension a conflict was detected in.
type ConflictKind string

const (
	KindTime     ConflictKind = "time"
	KindSkill    ConflictKind = "skill"
	KindWorkHour ConflictKind = "work_hour"
	KindCapacity ConflictKind = "capacity"
	KindOther    ConflictKind = "other"
)

// kindRank orders kinds for the stable conflict sort.
var kindRank = map[ConflictKind]int{
	KindTime:     0,
	KindSkill:    1,
	KindWorkHour: 2,
	KindCapacity: 3,
	KindOther:    4,
}

// Conflict subtype constants.
const (
	TypeTimeOverlap        = "TIME_OVERLAP"
	TypeMissingAllSkills   = "MISSING_ALL_SKILLS"
	TypeMissingSomeSkills  = "MISSING_PARTIAL_SKILLS"
	TypeDailyHoursExceeded = "DAILY_WORK_HOUR_EXCEEDED"
	TypeWeeklyHoursExceed  = "WEEKLY_WORK_HOUR_EXCEEDED"
	TypeUnderStaffed       = "UNDER_STAFFED"
	TypeOverStaffed        = "OVER_STAFFED"
	TypeConsecutiveDays    = "CONSECUTIVE_WORK_DAYS_EXCEEDED"
	TypeInsufficientRest   = "INSUFFICIENT_REST_DAYS"
	TypeDoubleAssignment   = "DOUBLE_ASSIGNMENT"
)

// ConflictStatus tracks a conflict through resolution.
type ConflictStatus string

const (
	StatusPending   ConflictStatus = "PENDING"
	StatusResolved  ConflictStatus = "RESOLVED"
	StatusEscalated ConflictStatus = "ESCALATED"
	StatusIgnored   ConflictStatus = "IGNORED"
)

// CanTransition reports whether a status change is legal.
// RESOLVED and IGNORED are terminal; ESCALATED may still be resolved or
// ignored after manual input.
func (s ConflictStatus) CanTransition(to ConflictStatus) bool {
	switch s {
	case StatusPending:
		return to == StatusResolved || to == StatusEscalated || to == StatusIgnored
	case StatusEscalated:
		return to == StatusResolved || to == StatusIgnored
	default:
		return false
	}
}

// TimeDetail carries the dimension payload of a time-overlap conflict.
type TimeDetail struct {
	RecordID1       string    `json:"recordId1"`
	RecordID2       string    `json:"recordId2"`
	ShiftID1        string    `json:"shiftId1"`
	ShiftID2        string    `json:"shiftId2"`
	Start1          time.Time `json:"start1"`
	End1            time.Time `json:"end1"`
	Start2          time.Time `json:"start2"`
	End2            time.Time `json:"end2"`
	OverlapMinutes  int       `json:"overlapMinutes"`
}

// SkillDetail carries the dimension payload of a skill-mismatch conflict.
type SkillDetail struct {
	RecordID       string   `json:"recordId"`
	RequiredSkills []string `json:"requiredSkills"`
	EmployeeSkills []string `json:"employeeSkills"`
	MissingSkills  []string `json:"missingSkills"`
}

// WorkHourDetail carries the dimension payload of a work-hour conflict.
type WorkHourDetail struct {
	WindowStart   string  `json:"windowStart"` // DateLayout
	WindowEnd     string  `json:"windowEnd"`
	ActualHours   float64 `json:"actualHours"`
	MaxHours      float64 `json:"maxHours"`
	OvertimeHours float64 `json:"overtimeHours"`
}

// CapacityDetail carries the dimension payload of a staffing conflict.
type CapacityDetail struct {
	ActualEmployeeCount int `json:"actualEmployeeCount"`
	MinRequiredCount    int `json:"minRequiredCount"`
	MaxCapacity         int `json:"maxCapacity"`
	UnderCapacityCount  int `json:"underCapacityCount"`
	OverCapacityCount   int `json:"overCapacityCount"`
}

// RuleDetail carries the dimension payload of a consecutive-work, rest-day,
// or double-assignment violation.
type RuleDetail struct {
	ConsecutiveDays int      `json:"consecutiveDays,omitempty"`
	RestDays        int      `json:"restDays,omitempty"`
	LimitDays       int      `json:"limitDays,omitempty"`
	ShiftIDs        []string `json:"shiftIds,omitempty"`
}

// Conflict is a detected violation of a scheduling rule. The Kind tag selects
// which detail pointer is populated; all other fields are shared.
type Conflict struct {
	ID                  string         `json:"conflictId"`
	Kind                ConflictKind   `json:"kind"`
	Type                string         `json:"conflictType"`
	Description         string         `json:"description"`
	Severity            int            `json:"severity"` // 1 (low) .. 5 (severe)
	EmployeeID          string         `json:"employeeId,omitempty"`
	ShiftID             string         `json:"shiftId,omitempty"`
	Date                string         `json:"date,omitempty"`
	AutoResolvable      bool           `json:"autoResolvable"`
	SuggestedResolution string         `json:"suggestedResolution,omitempty"`
	Status              ConflictStatus `json:"status"`
	DetectedAt          time.Time      `json:"detectedAt"`

	Time     *TimeDetail     `json:"time,omitempty"`
	Skill    *SkillDetail    `json:"skill,omitempty"`
	WorkHour *WorkHourDetail `json:"workHour,omitempty"`
	Capacity *CapacityDetail `json:"capacity,omitempty"`
	Rule     *RuleDetail     `json:"rule,omitempty"`
}

// SortKey returns the stable ordering key: kind, type, employee, date, shift.
// Two detection runs over identical input produce identical key sequences.
func (c Conflict) SortKey() string {
	return string(rune('0'+kindRank[c.Kind])) + "|" + c.Type + "|" + c.EmployeeID + "|" + c.Date + "|" + c.ShiftID + "|" + c.ID
}

// Less orders conflicts by SortKey.
func (c Conflict) Less(other Conflict) bool {
	return c.SortKey() < other.SortKey()
}

// CheckResult is the outcome of a single-dimension check.
// Invariant: HasConflict == (len(Items) > 0).
type CheckResult[T any] struct {
	HasConflict bool `json:"hasConflict"`
	Items       []T  `json:"items"`
}

// NewCheckResult builds a CheckResult, deriving HasConflict from the items.
func NewCheckResult[T any](items []T) CheckResult[T] {
	return CheckResult[T]{
		HasConflict: len(items) > 0,
		Items:       items,
	}
}
