package detect

import (
	"fmt"
	"strings"
	"time"

	"github.com/example/rosterguard/internal/models"
)

// coreSkillCount: the first few required skills of a shift are treated as its
// core competencies; missing one of those raises severity.
const coreSkillCount = 3

// skillSeverity maps the shape of a skill gap onto 1..5.
func skillSeverity(missing, required int, missingCore bool) int {
	switch {
	case missing >= required:
		return 5
	case missing*2 >= required:
		return 4
	case missingCore:
		return 3
	default:
		return 2
	}
}

// SkillConflicts checks every assignment against its shift's required skills.
// The missing set preserves the requirement order so output is reproducible.
func (d *Detector) SkillConflicts(records []models.ScheduleRecord, data models.ScheduleData) models.CheckResult[models.Conflict] {
	now := time.Now()
	var conflicts []models.Conflict
	for _, r := range active(records) {
		required := data.RequiredSkills(r.ShiftID)
		if len(required) == 0 {
			continue
		}

		held := make(map[string]bool)
		for _, s := range data.SkillsOf(r.EmployeeID) {
			held[s] = true
		}

		var missing []string
		missingCore := false
		for i, skill := range required {
			if held[skill] {
				continue
			}
			missing = append(missing, skill)
			if i < coreSkillCount {
				missingCore = true
			}
		}
		if len(missing) == 0 {
			continue
		}

		severity := skillSeverity(len(missing), len(required), missingCore)
		if data.CriticalShifts[r.ShiftID] && severity < 5 {
			severity++
		}
		conflictType := models.TypeMissingSomeSkills
		if len(missing) == len(required) {
			conflictType = models.TypeMissingAllSkills
		}

		conflicts = append(conflicts, models.Conflict{
			ID:   conflictID("skill", conflictType, r.EmployeeID, r.Date, r.ShiftID, r.RecordID),
			Kind: models.KindSkill,
			Type: conflictType,
			Description: fmt.Sprintf("employee %s lacks skills [%s] required by shift %s on %s",
				r.EmployeeID, strings.Join(missing, ", "), r.ShiftID, r.Date),
			Severity:            severity,
			EmployeeID:          r.EmployeeID,
			ShiftID:             r.ShiftID,
			Date:                r.Date,
			AutoResolvable:      true,
			SuggestedResolution: "replace with an employee holding the required skills",
			Status:              models.StatusPending,
			DetectedAt:          now,
			Skill: &models.SkillDetail{
				RecordID:       r.RecordID,
				RequiredSkills: required,
				EmployeeSkills: data.SkillsOf(r.EmployeeID),
				MissingSkills:  missing,
			},
		})
	}
	return models.NewCheckResult(conflicts)
}
