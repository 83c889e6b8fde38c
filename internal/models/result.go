package models

import "time"

// AlgorithmVersion identifies the detection/resolution algorithm revision
// stamped on every result.
const AlgorithmVersion = "1.0.0"

// ConflictDetectionResult aggregates one full detection pass over a schedule.
// All counters are derived from the typed conflict lists, never maintained
// independently.
type ConflictDetectionResult struct {
	DetectionID      string `json:"detectionId"`
	AlgorithmVersion string `json:"algorithmVersion"`

	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	DurationMS int64     `json:"durationMs"`

	HasConflicts    bool    `json:"hasConflicts"`
	TotalConflicts  int     `json:"totalConflicts"`
	SevereConflicts int     `json:"severeConflicts"` // severity >= severe threshold
	MinorConflicts  int     `json:"minorConflicts"`
	SeverityScore   float64 `json:"conflictSeverityScore"` // 0..100

	CountsByKind map[ConflictKind]int `json:"countsByKind"`

	TimeConflicts     []Conflict `json:"timeConflicts"`
	SkillConflicts    []Conflict `json:"skillConflicts"`
	WorkHourConflicts []Conflict `json:"workHourConflicts"`
	CapacityConflicts []Conflict `json:"capacityConflicts"`
	OtherConflicts    []Conflict `json:"otherConflicts"`

	Suggestions []string `json:"suggestions,omitempty"`
}

// AllConflicts returns every conflict in stable order.
func (r ConflictDetectionResult) AllConflicts() []Conflict {
	out := make([]Conflict, 0, r.TotalConflicts)
	out = append(out, r.TimeConflicts...)
	out = append(out, r.SkillConflicts...)
	out = append(out, r.WorkHourConflicts...)
	out = append(out, r.CapacityConflicts...)
	out = append(out, r.OtherConflicts...)
	return out
}

// EmployeeConflictResult scopes a detection pass to one employee.
type EmployeeConflictResult struct {
	EmployeeID      string     `json:"employeeId"`
	HasConflicts    bool       `json:"hasConflicts"`
	TotalConflicts  int        `json:"totalConflicts"`
	SevereConflicts int        `json:"severeConflicts"`
	MinorConflicts  int        `json:"minorConflicts"`
	Conflicts       []Conflict `json:"conflicts"`

	// Degraded marks an employee whose checks failed mid-scan; the batch
	// continues without their conflicts.
	Degraded      bool   `json:"degraded,omitempty"`
	DegradedCause string `json:"degradedCause,omitempty"`
}

// BatchConflictResult rolls up a multi-employee detection run.
type BatchConflictResult struct {
	TotalEmployees         int                      `json:"totalEmployees"`
	EmployeesWithConflicts int                      `json:"employeesWithConflicts"`
	TotalRecords           int                      `json:"totalRecords"`
	SuccessCount           int                      `json:"successCount"` // employees scanned cleanly
	FailureCount           int                      `json:"failureCount"` // degraded employees
	SuccessRate            float64                  `json:"successRate"`  // SuccessCount/TotalEmployees, in [0,1]
	HasConflicts           bool                     `json:"hasConflicts"`
	EmployeeResults        []EmployeeConflictResult `json:"employeeResults"`

	// Global holds the whole-schedule aggregate, including the capacity
	// dimension that cannot be computed per employee.
	Global ConflictDetectionResult `json:"global"`

	// Incomplete is set when the run was cancelled before covering every
	// employee; the partial results are still internally consistent.
	Incomplete bool `json:"incomplete,omitempty"`
}
