package models

import "time"

// ResolutionStrategy names the transformation class chosen to fix a conflict.
type ResolutionStrategy string

const (
	StrategyTimeAdjustment      ResolutionStrategy = "TIME_ADJUSTMENT"
	StrategyEmployeeReplacement ResolutionStrategy = "EMPLOYEE_REPLACEMENT"
	StrategyShiftAdjustment     ResolutionStrategy = "SHIFT_ADJUSTMENT"
	StrategyRecordDeletion      ResolutionStrategy = "RECORD_DELETION"
	StrategySegmentation        ResolutionStrategy = "SEGMENTATION"
	StrategyPriorityBased       ResolutionStrategy = "PRIORITY_BASED"
	StrategyMinimalImpact       ResolutionStrategy = "MINIMAL_IMPACT"
	StrategyAutoRescheduling    ResolutionStrategy = "AUTO_RESCHEDULING"
	StrategyManualConfirmation  ResolutionStrategy = "MANUAL_CONFIRMATION"
	StrategyHybrid              ResolutionStrategy = "HYBRID_STRATEGY"
)

// ModificationType classifies a single record change.
type ModificationType string

const (
	ModificationCreate ModificationType = "CREATE"
	ModificationUpdate ModificationType = "UPDATE"
	ModificationDelete ModificationType = "DELETE"
)

// RecordModification describes one change the resolver applied.
type RecordModification struct {
	RecordID string           `json:"recordId"`
	Type     ModificationType `json:"modificationType"`
	Reason   string           `json:"reason"`
	At       time.Time        `json:"modificationTime"`
}

// AlternativeSolution is a ranked fallback offered when automatic resolution
// fails or scores poorly.
type AlternativeSolution struct {
	SolutionID   string             `json:"solutionId"`
	Strategy     ResolutionStrategy `json:"strategy"`
	Description  string             `json:"description"`
	QualityScore float64            `json:"qualityScore"` // 0..100
}

// ConflictResolutionResult is the outcome of resolving one conflict (or one
// detection result's worth of conflicts, when produced by ResolveAll).
type ConflictResolutionResult struct {
	ResolutionID     string             `json:"resolutionId"`
	ConflictID       string             `json:"conflictId,omitempty"`
	Kind             ConflictKind       `json:"kind,omitempty"`
	Strategy         ResolutionStrategy `json:"resolutionStrategy"`
	AlgorithmVersion string             `json:"algorithmVersion"`

	Successful                 bool    `json:"resolutionSuccessful"`
	RequiresManualConfirmation bool    `json:"requiresManualConfirmation"`
	QualityScore               float64 `json:"resolutionQualityScore"` // 0..100
	Description                string  `json:"description,omitempty"`

	OriginalRecords []ScheduleRecord     `json:"originalRecords"`
	ResolvedRecords []ScheduleRecord     `json:"resolvedRecords"`
	Modifications   []RecordModification `json:"modifications"`

	Alternatives []AlternativeSolution `json:"alternativeSolutions,omitempty"`

	ResolvedAt time.Time `json:"resolvedAt"`
	DurationMS int64     `json:"durationMs"`
}

// BatchResolutionResult rolls up a multi-conflict resolution run.
type BatchResolutionResult struct {
	TotalCount   int                        `json:"totalCount"`
	SuccessCount int                        `json:"successCount"`
	FailureCount int                        `json:"failureCount"`
	SuccessRate  float64                    `json:"successRate"` // SuccessCount/TotalCount, in [0,1]
	Results      []ConflictResolutionResult `json:"results"`

	// ResolvedRecords is the schedule after applying every successful
	// resolution in order.
	ResolvedRecords []ScheduleRecord `json:"resolvedRecords"`

	Incomplete bool `json:"incomplete,omitempty"`
}
