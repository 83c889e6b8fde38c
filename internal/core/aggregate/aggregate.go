// Package aggregate contains the pure reductions that turn raw conflict
// lists into detection results and batch rollups. Counters and scores are
// always derived from the final conflict list in one pass, never mutated
// incrementally while conflicts are being discovered.
package aggregate

import (
	"sort"
	"time"

	"github.com/example/rosterguard/internal/models"
)

// SevereThreshold is the severity at which a conflict counts as severe.
const SevereThreshold = 3

// Meta carries run bookkeeping into a detection result.
type Meta struct {
	DetectionID string
	StartedAt   time.Time
	FinishedAt  time.Time
}

// Detection reduces a conflict list into a ConflictDetectionResult.
// Conflicts are sorted by the stable key (kind, type, employee, date, shift)
// so that parallel detection never affects observable output.
func Detection(conflicts []models.Conflict, meta Meta) models.ConflictDetectionResult {
	sorted := make([]models.Conflict, len(conflicts))
	copy(sorted, conflicts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })

	result := models.ConflictDetectionResult{
		DetectionID:      meta.DetectionID,
		AlgorithmVersion: models.AlgorithmVersion,
		StartedAt:        meta.StartedAt,
		FinishedAt:       meta.FinishedAt,
		DurationMS:       meta.FinishedAt.Sub(meta.StartedAt).Milliseconds(),
		CountsByKind:     make(map[models.ConflictKind]int),
	}

	for _, c := range sorted {
		result.CountsByKind[c.Kind]++
		if c.Severity >= SevereThreshold {
			result.SevereConflicts++
		} else {
			result.MinorConflicts++
		}
		switch c.Kind {
		case models.KindTime:
			result.TimeConflicts = append(result.TimeConflicts, c)
		case models.KindSkill:
			result.SkillConflicts = append(result.SkillConflicts, c)
		case models.KindWorkHour:
			result.WorkHourConflicts = append(result.WorkHourConflicts, c)
		case models.KindCapacity:
			result.CapacityConflicts = append(result.CapacityConflicts, c)
		default:
			result.OtherConflicts = append(result.OtherConflicts, c)
		}
	}

	result.TotalConflicts = len(sorted)
	result.HasConflicts = result.TotalConflicts > 0
	result.SeverityScore = severityScore(result.SevereConflicts, result.MinorConflicts)
	result.Suggestions = suggestions(result)

	return result
}

// severityScore maps the severe/minor split onto 0..100. A result made up
// entirely of severe conflicts scores 100.
func severityScore(severe, minor int) float64 {
	total := severe + minor
	if total == 0 {
		return 0
	}
	weighted := float64(severe)*10.0 + float64(minor)*3.0
	score := weighted * 100.0 / (float64(total) * 10.0)
	if score > 100 {
		score = 100
	}
	return score
}

// suggestions produces the per-dimension repair hints for a result.
func suggestions(r models.ConflictDetectionResult) []string {
	var out []string
	if len(r.TimeConflicts) > 0 {
		out = append(out, "adjust shift times to remove overlapping assignments")
	}
	if len(r.SkillConflicts) > 0 {
		out = append(out, "replace employees lacking required skills or relax shift requirements")
	}
	if len(r.WorkHourConflicts) > 0 {
		out = append(out, "reduce assigned hours to stay within work-hour limits")
	}
	if len(r.CapacityConflicts) > 0 {
		out = append(out, "rebalance staffing to meet shift capacity bounds")
	}
	if len(r.OtherConflicts) > 0 {
		out = append(out, "rework consecutive-day and rest-day assignments")
	}
	return out
}

// Employee reduces one employee's conflicts into an EmployeeConflictResult.
func Employee(employeeID string, conflicts []models.Conflict) models.EmployeeConflictResult {
	sorted := make([]models.Conflict, len(conflicts))
	copy(sorted, conflicts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })

	result := models.EmployeeConflictResult{
		EmployeeID: employeeID,
		Conflicts:  sorted,
	}
	for _, c := range sorted {
		if c.Severity >= SevereThreshold {
			result.SevereConflicts++
		} else {
			result.MinorConflicts++
		}
	}
	result.TotalConflicts = len(sorted)
	result.HasConflicts = result.TotalConflicts > 0
	return result
}

// Batch reduces per-employee results plus the global detection pass into a
// BatchConflictResult. Employee results are sorted by ID for stable output.
func Batch(employeeResults []models.EmployeeConflictResult, global models.ConflictDetectionResult, totalRecords int, incomplete bool) models.BatchConflictResult {
	sorted := make([]models.EmployeeConflictResult, len(employeeResults))
	copy(sorted, employeeResults)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].EmployeeID < sorted[j].EmployeeID })

	result := models.BatchConflictResult{
		TotalEmployees:  len(sorted),
		TotalRecords:    totalRecords,
		EmployeeResults: sorted,
		Global:          global,
		Incomplete:      incomplete,
	}
	for _, er := range sorted {
		if er.Degraded {
			result.FailureCount++
			continue
		}
		result.SuccessCount++
		if er.HasConflicts {
			result.EmployeesWithConflicts++
		}
	}
	if result.TotalEmployees > 0 {
		result.SuccessRate = float64(result.SuccessCount) / float64(result.TotalEmployees)
	}
	result.HasConflicts = result.EmployeesWithConflicts > 0 || global.HasConflicts
	return result
}

// Resolutions reduces individual resolution outcomes into a batch rollup.
func Resolutions(results []models.ConflictResolutionResult, resolved []models.ScheduleRecord, incomplete bool) models.BatchResolutionResult {
	batch := models.BatchResolutionResult{
		TotalCount:      len(results),
		Results:         results,
		ResolvedRecords: resolved,
		Incomplete:      incomplete,
	}
	for _, r := range results {
		if r.Successful {
			batch.SuccessCount++
		} else {
			batch.FailureCount++
		}
	}
	if batch.TotalCount > 0 {
		batch.SuccessRate = float64(batch.SuccessCount) / float64(batch.TotalCount)
	}
	return batch
}
