// Package detect implements the conflict detection engine: five dimension
// checks (time, skill, work-hour, capacity, rules) over a schedule, each a
// pure function of the records and constraints it is given. Given identical
// input, detection produces identical conflicts with identical IDs.
package detect

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/rosterguard/internal/core/aggregate"
	"github.com/example/rosterguard/internal/models"
)

// Engine defaults applied when ScheduleData leaves a work-hour limit unset.
const (
	DefaultMaxDailyWorkHours  = 12.0
	DefaultMaxWeeklyWorkHours = 60.0
)

// Config carries the engine-level detection limits. Per-run ScheduleData
// values override these when set.
type Config struct {
	MaxDailyWorkHours  float64
	MaxWeeklyWorkHours float64
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		MaxDailyWorkHours:  DefaultMaxDailyWorkHours,
		MaxWeeklyWorkHours: DefaultMaxWeeklyWorkHours,
	}
}

// Detector runs the dimension checks. It holds no mutable state and is safe
// for concurrent use.
type Detector struct {
	cfg Config
}

// New builds a Detector, filling unset limits from the defaults.
func New(cfg Config) *Detector {
	if cfg.MaxDailyWorkHours <= 0 {
		cfg.MaxDailyWorkHours = DefaultMaxDailyWorkHours
	}
	if cfg.MaxWeeklyWorkHours <= 0 {
		cfg.MaxWeeklyWorkHours = DefaultMaxWeeklyWorkHours
	}
	return &Detector{cfg: cfg}
}

func (d *Detector) dailyLimit(data models.ScheduleData) float64 {
	if data.MaxDailyWorkHours > 0 {
		return data.MaxDailyWorkHours
	}
	return d.cfg.MaxDailyWorkHours
}

func (d *Detector) weeklyLimit(data models.ScheduleData) float64 {
	if data.MaxWeeklyWorkHours > 0 {
		return data.MaxWeeklyWorkHours
	}
	return d.cfg.MaxWeeklyWorkHours
}

// active filters out cancelled records. Cancelled assignments take part in
// no check; they exist only as an audit trail.
func active(records []models.ScheduleRecord) []models.ScheduleRecord {
	out := make([]models.ScheduleRecord, 0, len(records))
	for _, r := range records {
		if r.Status == models.RecordStatusCancelled {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ValidateInput checks records and schedule data before any scan starts.
// A failure here aborts the call with no partial result.
func ValidateInput(records []models.ScheduleRecord, data models.ScheduleData) error {
	start, err := time.Parse(models.DateLayout, data.StartDate)
	if err != nil {
		return &models.InputValidationError{Field: "startDate", Reason: fmt.Sprintf("not a %s date: %q", models.DateLayout, data.StartDate)}
	}
	end, err := time.Parse(models.DateLayout, data.EndDate)
	if err != nil {
		return &models.InputValidationError{Field: "endDate", Reason: fmt.Sprintf("not a %s date: %q", models.DateLayout, data.EndDate)}
	}
	if end.Before(start) {
		return &models.InputValidationError{Field: "endDate", Reason: "before startDate"}
	}
	if len(data.EmployeeIDs) == 0 {
		return &models.InputValidationError{Field: "employeeIds", Reason: "must not be empty"}
	}

	seen := make(map[string]bool, len(records))
	for i, r := range records {
		field := func(name string) string { return fmt.Sprintf("records[%d].%s", i, name) }
		if r.RecordID == "" {
			return &models.InputValidationError{Field: field("recordId"), Reason: "must not be empty"}
		}
		if seen[r.RecordID] {
			return &models.InputValidationError{Field: field("recordId"), Reason: fmt.Sprintf("duplicate record id %q", r.RecordID)}
		}
		seen[r.RecordID] = true
		if r.EmployeeID == "" {
			return &models.InputValidationError{Field: field("employeeId"), Reason: "must not be empty"}
		}
		if !data.HasEmployee(r.EmployeeID) {
			return &models.InputValidationError{Field: field("employeeId"), Reason: fmt.Sprintf("employee %q not in schedule scope", r.EmployeeID)}
		}
		if _, err := time.Parse(models.DateLayout, r.Date); err != nil {
			return &models.InputValidationError{Field: field("date"), Reason: fmt.Sprintf("not a %s date: %q", models.DateLayout, r.Date)}
		}
		if !r.EndTime.After(r.StartTime) {
			return &models.InputValidationError{Field: field("endTime"), Reason: "must be after startTime"}
		}
	}
	return nil
}

// Detect runs every dimension check over the full record set and aggregates
// the outcome into one detection result.
func (d *Detector) Detect(records []models.ScheduleRecord, data models.ScheduleData) (models.ConflictDetectionResult, error) {
	if err := ValidateInput(records, data); err != nil {
		return models.ConflictDetectionResult{}, err
	}

	started := time.Now()
	var conflicts []models.Conflict
	conflicts = append(conflicts, d.TimeConflicts(records, data).Items...)
	conflicts = append(conflicts, d.SkillConflicts(records, data).Items...)
	conflicts = append(conflicts, d.WorkHourConflicts(records, data).Items...)
	conflicts = append(conflicts, d.CapacityConflicts(records, data).Items...)
	conflicts = append(conflicts, d.RuleConflicts(records, data).Items...)

	return aggregate.Detection(conflicts, aggregate.Meta{
		DetectionID: uuid.New().String(),
		StartedAt:   started,
		FinishedAt:  time.Now(),
	}), nil
}

// DetectEmployee runs the per-employee checks for one employee. Capacity is
// excluded: staffing levels only exist at whole-schedule scope.
func (d *Detector) DetectEmployee(employeeID string, records []models.ScheduleRecord, data models.ScheduleData) (models.EmployeeConflictResult, error) {
	if employeeID == "" {
		return models.EmployeeConflictResult{}, &models.InputValidationError{Field: "employeeId", Reason: "must not be empty"}
	}
	if !data.HasEmployee(employeeID) {
		return models.EmployeeConflictResult{}, &models.InputValidationError{Field: "employeeId", Reason: fmt.Sprintf("employee %q not in schedule scope", employeeID)}
	}

	scoped := make([]models.ScheduleRecord, 0, len(records))
	for _, r := range records {
		if r.EmployeeID == employeeID {
			scoped = append(scoped, r)
		}
	}
	if err := ValidateInput(scoped, data); err != nil {
		return models.EmployeeConflictResult{}, err
	}

	var conflicts []models.Conflict
	conflicts = append(conflicts, d.TimeConflicts(scoped, data).Items...)
	conflicts = append(conflicts, d.SkillConflicts(scoped, data).Items...)
	conflicts = append(conflicts, d.WorkHourConflicts(scoped, data).Items...)
	conflicts = append(conflicts, d.RuleConflicts(scoped, data).Items...)

	return aggregate.Employee(employeeID, conflicts), nil
}
