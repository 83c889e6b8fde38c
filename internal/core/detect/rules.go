package detect

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/example/rosterguard/internal/models"
)

const (
	consecutiveDaysSeverity  = 3
	insufficientRestSeverity = 3
	doubleAssignmentSeverity = 4

	// historyLookbackDays bounds how far before the range the streak seeds
	// walk through history.
	historyLookbackDays = 60
)

// RuleConflicts walks the date range per employee tracking consecutive work
// and rest streaks, and flags same-day double assignments. Streaks that begin
// before the range are seeded from history records.
func (d *Detector) RuleConflicts(records []models.ScheduleRecord, data models.ScheduleData) models.CheckResult[models.Conflict] {
	dates := data.Dates()
	if len(dates) == 0 {
		return models.NewCheckResult[models.Conflict](nil)
	}

	type dayShifts map[string]map[string]bool // date -> shift set
	workDays := make(map[string]dayShifts)
	for _, r := range active(records) {
		days := workDays[r.EmployeeID]
		if days == nil {
			days = make(dayShifts)
			workDays[r.EmployeeID] = days
		}
		if days[r.Date] == nil {
			days[r.Date] = make(map[string]bool)
		}
		if r.ShiftID != "" {
			days[r.Date][r.ShiftID] = true
		}
	}

	historyDays := make(map[string]map[string]bool) // employee -> work dates before range
	for _, r := range active(data.HistoryRecords) {
		if r.Date >= data.StartDate {
			continue
		}
		if historyDays[r.EmployeeID] == nil {
			historyDays[r.EmployeeID] = make(map[string]bool)
		}
		historyDays[r.EmployeeID][r.Date] = true
	}

	rangeStart, _ := time.Parse(models.DateLayout, data.StartDate)

	now := time.Now()
	var conflicts []models.Conflict
	for _, employeeID := range data.EmployeeIDs {
		days := workDays[employeeID]
		if days == nil {
			continue
		}

		consecutive, rest := seedStreaks(rangeStart, historyDays[employeeID])
		flagged := false

		for _, date := range dates {
			_, working := days[date]
			if working {
				if rest > 0 && data.MinRestDays > 0 && rest < data.MinRestDays {
					conflicts = append(conflicts, models.Conflict{
						ID:   conflictID("rule", models.TypeInsufficientRest, employeeID, date),
						Kind: models.KindOther,
						Type: models.TypeInsufficientRest,
						Description: fmt.Sprintf("employee %s returns to work on %s after %d rest days, minimum is %d",
							employeeID, date, rest, data.MinRestDays),
						Severity:            insufficientRestSeverity,
						EmployeeID:          employeeID,
						Date:                date,
						SuggestedResolution: "extend the rest period before the next assignment",
						Status:              models.StatusPending,
						DetectedAt:          now,
						Rule: &models.RuleDetail{
							RestDays:  rest,
							LimitDays: data.MinRestDays,
						},
					})
				}
				rest = 0
				consecutive++
				if data.MaxConsecutiveWorkDays > 0 && consecutive > data.MaxConsecutiveWorkDays && !flagged {
					flagged = true
					conflicts = append(conflicts, models.Conflict{
						ID:   conflictID("rule", models.TypeConsecutiveDays, employeeID, date),
						Kind: models.KindOther,
						Type: models.TypeConsecutiveDays,
						Description: fmt.Sprintf("employee %s works %d consecutive days through %s, limit is %d",
							employeeID, consecutive, date, data.MaxConsecutiveWorkDays),
						Severity:            consecutiveDaysSeverity,
						EmployeeID:          employeeID,
						Date:                date,
						AutoResolvable:      true,
						SuggestedResolution: "insert a rest day into the work streak",
						Status:              models.StatusPending,
						DetectedAt:          now,
						Rule: &models.RuleDetail{
							ConsecutiveDays: consecutive,
							LimitDays:       data.MaxConsecutiveWorkDays,
						},
					})
				}
			} else {
				consecutive = 0
				flagged = false
				rest++
			}

			if len(days[date]) >= 2 {
				shifts := make([]string, 0, len(days[date]))
				for shiftID := range days[date] {
					shifts = append(shifts, shiftID)
				}
				sort.Strings(shifts)
				conflicts = append(conflicts, models.Conflict{
					ID:   conflictID("rule", models.TypeDoubleAssignment, employeeID, date),
					Kind: models.KindOther,
					Type: models.TypeDoubleAssignment,
					Description: fmt.Sprintf("employee %s holds shifts [%s] on %s",
						employeeID, strings.Join(shifts, ", "), date),
					Severity:            doubleAssignmentSeverity,
					EmployeeID:          employeeID,
					Date:                date,
					AutoResolvable:      true,
					SuggestedResolution: "keep the higher-priority shift and reassign the other",
					Status:              models.StatusPending,
					DetectedAt:          now,
					Rule: &models.RuleDetail{
						ShiftIDs: shifts,
					},
				})
			}
		}
	}
	return models.NewCheckResult(conflicts)
}

// seedStreaks derives the work and rest streak lengths carried into the
// range start from history. With no history at all both seeds are zero;
// absence of records is not evidence of rest.
func seedStreaks(rangeStart time.Time, history map[string]bool) (consecutive, rest int) {
	if len(history) == 0 {
		return 0, 0
	}
	day := rangeStart.AddDate(0, 0, -1)
	for i := 0; i < historyLookbackDays; i++ {
		if !history[day.Format(models.DateLayout)] {
			break
		}
		consecutive++
		day = day.AddDate(0, 0, -1)
	}
	if consecutive > 0 {
		return consecutive, 0
	}
	day = rangeStart.AddDate(0, 0, -1)
	for i := 0; i < historyLookbackDays; i++ {
		if history[day.Format(models.DateLayout)] {
			return 0, rest
		}
		rest++
		day = day.AddDate(0, 0, -1)
	}
	return 0, 0
}
