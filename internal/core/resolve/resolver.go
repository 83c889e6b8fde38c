// Package resolve implements the conflict resolution engine. Each conflict
// kind has an ordered strategy chain; a strategy's proposed fix is only
// accepted after re-running detection on the modified schedule proves the
// fix removed the conflict without introducing a new or equally severe one.
package resolve

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/example/rosterguard/internal/core/aggregate"
	"github.com/example/rosterguard/internal/core/detect"
	"github.com/example/rosterguard/internal/models"
)

// Resolver maps conflicts to strategies and applies them. It is stateless
// and safe for concurrent use.
type Resolver struct {
	detector *detect.Detector
}

// New builds a Resolver that re-validates fixes with the given detector.
func New(detector *detect.Detector) *Resolver {
	return &Resolver{detector: detector}
}

// Resolve attempts to fix one conflict against the full record set. A failed
// resolution is reported through the result, never as an error: the caller
// gets requiresManualConfirmation plus ranked alternatives instead.
func (rv *Resolver) Resolve(conflict models.Conflict, records []models.ScheduleRecord, data models.ScheduleData) models.ConflictResolutionResult {
	started := time.Now()
	result := models.ConflictResolutionResult{
		ResolutionID:     uuid.New().String(),
		ConflictID:       conflict.ID,
		Kind:             conflict.Kind,
		AlgorithmVersion: models.AlgorithmVersion,
		OriginalRecords:  affectedRecords(conflict, records),
	}

	before := rv.scan(conflict, records, data)
	var alternatives []models.AlternativeSolution

	attempts := 0
	for _, strategy := range StrategyChain(conflict.Kind) {
		if attempts >= maxAttempts {
			break
		}
		attempts++

		out, ok := applyStrategy(strategy, conflict, records, data)
		if !ok {
			continue
		}
		quality := qualityScore(strategy, len(out.modifications))
		if !rv.accepted(conflict, before, out.records, data) {
			alternatives = append(alternatives, models.AlternativeSolution{
				SolutionID:   uuid.New().String(),
				Strategy:     strategy,
				Description:  out.description + " (rejected by re-validation)",
				QualityScore: quality,
			})
			continue
		}
		if quality < minQualityScore {
			alternatives = append(alternatives, models.AlternativeSolution{
				SolutionID:   uuid.New().String(),
				Strategy:     strategy,
				Description:  out.description,
				QualityScore: quality,
			})
			continue
		}

		result.Strategy = strategy
		result.Successful = true
		result.QualityScore = quality
		result.Description = out.description
		result.ResolvedRecords = out.records
		result.Modifications = out.modifications
		result.ResolvedAt = time.Now()
		result.DurationMS = time.Since(started).Milliseconds()
		return result
	}

	result.Strategy = models.StrategyManualConfirmation
	result.RequiresManualConfirmation = true
	result.Description = fmt.Sprintf("no strategy could safely resolve %s, manual adjustment required", conflict.Type)
	result.ResolvedRecords = records
	result.Alternatives = rankAlternatives(alternatives)
	result.ResolvedAt = time.Now()
	result.DurationMS = time.Since(started).Milliseconds()
	return result
}

// rankAlternatives appends the standing fallbacks and sorts by quality.
func rankAlternatives(alternatives []models.AlternativeSolution) []models.AlternativeSolution {
	alternatives = append(alternatives,
		models.AlternativeSolution{
			SolutionID:   uuid.New().String(),
			Strategy:     models.StrategyAutoRescheduling,
			Description:  "reschedule the affected assignments in the next planning pass",
			QualityScore: 75,
		},
		models.AlternativeSolution{
			SolutionID:   uuid.New().String(),
			Strategy:     models.StrategyManualConfirmation,
			Description:  "hand the conflict to a scheduler for manual adjustment",
			QualityScore: 60,
		},
	)
	sort.SliceStable(alternatives, func(i, j int) bool {
		return alternatives[i].QualityScore > alternatives[j].QualityScore
	})
	return alternatives
}

func applyStrategy(strategy models.ResolutionStrategy, c models.Conflict, records []models.ScheduleRecord, data models.ScheduleData) (outcome, bool) {
	switch strategy {
	case models.StrategyTimeAdjustment:
		return timeAdjustment(c, records)
	case models.StrategyPriorityBased:
		return priorityBased(c, records)
	case models.StrategyRecordDeletion:
		return recordDeletion(c, records)
	case models.StrategyEmployeeReplacement:
		return employeeReplacement(c, records, data)
	case models.StrategyShiftAdjustment:
		return shiftAdjustment(c, records, data)
	case models.StrategySegmentation:
		return segmentation(c, records)
	case models.StrategyAutoRescheduling:
		return autoRescheduling(c, records, data)
	default:
		return outcome{}, false
	}
}

// scan runs the detector over the scope a conflict can influence: the
// conflict's employee across all per-employee dimensions, plus capacity on
// the conflict's shift and date.
func (rv *Resolver) scan(conflict models.Conflict, records []models.ScheduleRecord, data models.ScheduleData) []models.Conflict {
	var conflicts []models.Conflict
	conflicts = append(conflicts, rv.detector.TimeConflicts(records, data).Items...)
	conflicts = append(conflicts, rv.detector.SkillConflicts(records, data).Items...)
	conflicts = append(conflicts, rv.detector.WorkHourConflicts(records, data).Items...)
	conflicts = append(conflicts, rv.detector.CapacityConflicts(records, data).Items...)
	conflicts = append(conflicts, rv.detector.RuleConflicts(records, data).Items...)

	var scoped []models.Conflict
	for _, c := range conflicts {
		if inScope(c, conflict) {
			scoped = append(scoped, c)
		}
	}
	return scoped
}

func inScope(c, original models.Conflict) bool {
	if original.EmployeeID != "" && c.EmployeeID == original.EmployeeID {
		return true
	}
	if original.ShiftID != "" && c.ShiftID == original.ShiftID && c.Date == original.Date {
		return true
	}
	return original.EmployeeID == "" && original.ShiftID == ""
}

// accepted re-validates a proposed fix. The fix stands only if the original
// conflict is gone and no conflict absent from the pre-fix scan has appeared.
func (rv *Resolver) accepted(original models.Conflict, before []models.Conflict, records []models.ScheduleRecord, data models.ScheduleData) bool {
	preexisting := make(map[string]bool, len(before))
	for _, c := range before {
		preexisting[c.ID] = true
	}
	for _, c := range rv.scan(original, records, data) {
		if c.ID == original.ID {
			return false
		}
		if !preexisting[c.ID] {
			return false
		}
	}
	return true
}

// affectedRecords extracts the records a conflict is about.
func affectedRecords(c models.Conflict, records []models.ScheduleRecord) []models.ScheduleRecord {
	var out []models.ScheduleRecord
	for _, r := range records {
		switch {
		case c.Time != nil && (r.RecordID == c.Time.RecordID1 || r.RecordID == c.Time.RecordID2):
			out = append(out, r)
		case c.Skill != nil && r.RecordID == c.Skill.RecordID:
			out = append(out, r)
		case c.EmployeeID != "" && r.EmployeeID == c.EmployeeID && r.Date == c.Date:
			out = append(out, r)
		case c.EmployeeID == "" && c.ShiftID != "" && r.ShiftID == c.ShiftID && r.Date == c.Date:
			out = append(out, r)
		}
	}
	return out
}

// ResolveAll resolves every conflict in a detection result in stable order,
// threading the record set through successive fixes so later resolutions see
// earlier ones. The combined result reports the final schedule.
func (rv *Resolver) ResolveAll(detection models.ConflictDetectionResult, records []models.ScheduleRecord, data models.ScheduleData) (models.ConflictResolutionResult, []models.ConflictResolutionResult) {
	started := time.Now()
	current := cloneRecords(records)

	var individual []models.ConflictResolutionResult
	strategies := make(map[models.ResolutionStrategy]bool)
	allResolved := true
	var totalMods []models.RecordModification
	var qualitySum float64

	for _, conflict := range detection.AllConflicts() {
		r := rv.Resolve(conflict, current, data)
		individual = append(individual, r)
		if r.Successful {
			current = r.ResolvedRecords
			strategies[r.Strategy] = true
			totalMods = append(totalMods, r.Modifications...)
		} else {
			allResolved = false
		}
		qualitySum += r.QualityScore
	}

	combined := models.ConflictResolutionResult{
		ResolutionID:     uuid.New().String(),
		AlgorithmVersion: models.AlgorithmVersion,
		Successful:       allResolved && len(individual) > 0,
		OriginalRecords:  records,
		ResolvedRecords:  current,
		Modifications:    totalMods,
		ResolvedAt:       time.Now(),
		DurationMS:       time.Since(started).Milliseconds(),
	}
	if len(individual) > 0 {
		combined.QualityScore = qualitySum / float64(len(individual))
	}
	switch len(strategies) {
	case 0:
		combined.Strategy = models.StrategyManualConfirmation
	case 1:
		for s := range strategies {
			combined.Strategy = s
		}
	default:
		combined.Strategy = models.StrategyHybrid
	}
	for _, r := range individual {
		if r.RequiresManualConfirmation {
			combined.RequiresManualConfirmation = true
			break
		}
	}
	combined.Description = fmt.Sprintf("resolved %d of %d conflicts",
		countSuccessful(individual), len(individual))
	return combined, individual
}

func countSuccessful(results []models.ConflictResolutionResult) int {
	n := 0
	for _, r := range results {
		if r.Successful {
			n++
		}
	}
	return n
}

// ValidateResolution checks a resolution result for internal consistency
// and, for successful resolutions, re-verifies the resolved records against
// the schedule constraints.
func (rv *Resolver) ValidateResolution(result models.ConflictResolutionResult, data models.ScheduleData) bool {
	if result.ResolutionID == "" {
		return false
	}
	if result.QualityScore < 0 || result.QualityScore > 100 {
		return false
	}
	if !result.Successful {
		// An unresolved result must be flagged for a human.
		return result.RequiresManualConfirmation
	}
	if len(result.Modifications) == 0 {
		return false
	}
	if err := detect.ValidateInput(result.ResolvedRecords, data); err != nil {
		return false
	}
	return true
}

// Statistics reduces resolution outcomes to summary statistics.
func Statistics(results []models.ConflictResolutionResult) models.ResolutionStatistics {
	return aggregate.ResolutionStatistics(results)
}
