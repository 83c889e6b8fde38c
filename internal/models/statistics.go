package models

// ConflictStatistics summarizes a set of detection results. All fields are
// derived; statistics failures never invalidate the underlying results.
type ConflictStatistics struct {
	TotalDetections int                  `json:"totalDetections"`
	TotalConflicts  int                  `json:"totalConflicts"`
	SevereConflicts int                  `json:"severeConflicts"`
	MinorConflicts  int                  `json:"minorConflicts"`
	CountsByKind    map[ConflictKind]int `json:"countsByKind"`
	SeverityCounts  map[int]int          `json:"severityCounts"` // severity -> count
}

// ResolutionStatistics summarizes a set of resolution results.
type ResolutionStatistics struct {
	TotalResolutions      int                        `json:"totalResolutions"`
	SuccessfulResolutions int                        `json:"successfulResolutions"`
	FailedResolutions     int                        `json:"failedResolutions"`
	SuccessRate           float64                    `json:"successRate"` // in [0,1]
	AverageQualityScore   float64                    `json:"averageQualityScore"`
	AverageDurationMS     float64                    `json:"averageDurationMs"`
	StrategyCounts        map[ResolutionStrategy]int `json:"strategyCounts"`
}
