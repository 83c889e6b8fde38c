package detect

import (
	"fmt"
	"sort"
	"time"

	"github.com/example/rosterguard/internal/models"
)

// timeSeverity maps overlap length in minutes onto 1..5.
func timeSeverity(overlapMinutes int) int {
	switch {
	case overlapMinutes >= 480:
		return 5
	case overlapMinutes >= 240:
		return 4
	case overlapMinutes >= 120:
		return 3
	case overlapMinutes >= 60:
		return 2
	default:
		return 1
	}
}

// TimeConflicts finds overlapping assignments per employee per date. Each
// unordered record pair is reported once, keyed by the lower record ID first.
func (d *Detector) TimeConflicts(records []models.ScheduleRecord, data models.ScheduleData) models.CheckResult[models.Conflict] {
	byCell := make(map[string][]models.ScheduleRecord)
	var cells []string
	for _, r := range active(records) {
		key := r.EmployeeID + "|" + r.Date
		if _, ok := byCell[key]; !ok {
			cells = append(cells, key)
		}
		byCell[key] = append(byCell[key], r)
	}
	sort.Strings(cells)

	now := time.Now()
	var conflicts []models.Conflict
	for _, key := range cells {
		group := byCell[key]
		sort.Slice(group, func(i, j int) bool {
			if !group[i].StartTime.Equal(group[j].StartTime) {
				return group[i].StartTime.Before(group[j].StartTime)
			}
			return group[i].RecordID < group[j].RecordID
		})
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				a, b := group[i], group[j]
				minutes := a.OverlapMinutes(b)
				if minutes <= 0 {
					continue
				}
				if b.RecordID < a.RecordID {
					a, b = b, a
				}
				severity := timeSeverity(minutes)
				if (a.Authoritative || b.Authoritative) && severity < 5 {
					severity++
				}
				conflicts = append(conflicts, models.Conflict{
					ID:   conflictID("time", models.TypeTimeOverlap, a.EmployeeID, a.Date, a.RecordID, b.RecordID),
					Kind: models.KindTime,
					Type: models.TypeTimeOverlap,
					Description: fmt.Sprintf("employee %s has overlapping assignments %s and %s on %s (%d minutes)",
						a.EmployeeID, a.RecordID, b.RecordID, a.Date, minutes),
					Severity:            severity,
					EmployeeID:          a.EmployeeID,
					ShiftID:             a.ShiftID,
					Date:                a.Date,
					AutoResolvable:      true,
					SuggestedResolution: "shift the later assignment to start when the earlier one ends",
					Status:              models.StatusPending,
					DetectedAt:          now,
					Time: &models.TimeDetail{
						RecordID1:      a.RecordID,
						RecordID2:      b.RecordID,
						ShiftID1:       a.ShiftID,
						ShiftID2:       b.ShiftID,
						Start1:         a.StartTime,
						End1:           a.EndTime,
						Start2:         b.StartTime,
						End2:           b.EndTime,
						OverlapMinutes: minutes,
					},
				})
			}
		}
	}
	return models.NewCheckResult(conflicts)
}
