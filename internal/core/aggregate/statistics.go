package aggregate

import (
	"github.com/example/rosterguard/internal/models"
)

// ConflictStatistics derives summary statistics from a set of detection
// results. Statistics are presentation data: a failure here never
// invalidates the detection results themselves, so the zero value is a
// valid fallback.
func ConflictStatistics(results []models.ConflictDetectionResult) models.ConflictStatistics {
	stats := models.ConflictStatistics{
		TotalDetections: len(results),
		CountsByKind:    make(map[models.ConflictKind]int),
		SeverityCounts:  make(map[int]int),
	}

	for _, r := range results {
		stats.TotalConflicts += r.TotalConflicts
		stats.SevereConflicts += r.SevereConflicts
		stats.MinorConflicts += r.MinorConflicts
		for kind, count := range r.CountsByKind {
			stats.CountsByKind[kind] += count
		}
		for _, c := range r.AllConflicts() {
			stats.SeverityCounts[c.Severity]++
		}
	}

	return stats
}

// ResolutionStatistics derives summary statistics from resolution results.
func ResolutionStatistics(results []models.ConflictResolutionResult) models.ResolutionStatistics {
	stats := models.ResolutionStatistics{
		TotalResolutions: len(results),
		StrategyCounts:   make(map[models.ResolutionStrategy]int),
	}

	var totalQuality, totalDuration float64
	for _, r := range results {
		if r.Successful {
			stats.SuccessfulResolutions++
		} else {
			stats.FailedResolutions++
		}
		stats.StrategyCounts[r.Strategy]++
		totalQuality += r.QualityScore
		totalDuration += float64(r.DurationMS)
	}

	if stats.TotalResolutions > 0 {
		stats.SuccessRate = float64(stats.SuccessfulResolutions) / float64(stats.TotalResolutions)
		stats.AverageQualityScore = totalQuality / float64(stats.TotalResolutions)
		stats.AverageDurationMS = totalDuration / float64(stats.TotalResolutions)
	}

	return stats
}

// ValidateDetectionResult checks a detection result for internal
// consistency: identity fields present, the hasConflicts flag matching the
// total, and the total matching the sum of the typed lists.
func ValidateDetectionResult(r models.ConflictDetectionResult) bool {
	if r.DetectionID == "" || r.StartedAt.IsZero() {
		return false
	}
	if r.HasConflicts != (r.TotalConflicts > 0) {
		return false
	}
	listed := len(r.TimeConflicts) + len(r.SkillConflicts) + len(r.WorkHourConflicts) +
		len(r.CapacityConflicts) + len(r.OtherConflicts)
	if listed != r.TotalConflicts {
		return false
	}
	return r.TotalConflicts == r.SevereConflicts+r.MinorConflicts
}
