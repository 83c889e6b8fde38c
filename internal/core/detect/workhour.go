package detect

import (
	"fmt"
	"time"

	"github.com/example/rosterguard/internal/models"
)

const (
	dailyHoursSeverity  = 4
	weeklyHoursSeverity = 3
	weeklyWindowDays    = 7
)

// WorkHourConflicts checks per-day totals against the daily limit and a
// rolling seven-day window against the weekly limit. History records feed
// windows that reach before the evaluated range. Rolling windows overlap, so
// only the first violating window per employee is reported; later windows
// restate the same overworked stretch.
func (d *Detector) WorkHourConflicts(records []models.ScheduleRecord, data models.ScheduleData) models.CheckResult[models.Conflict] {
	dates := data.Dates()
	if len(dates) == 0 {
		return models.NewCheckResult[models.Conflict](nil)
	}
	dailyMax := d.dailyLimit(data)
	weeklyMax := d.weeklyLimit(data)

	hoursByEmployee := make(map[string]map[string]float64)
	addHours := func(r models.ScheduleRecord) {
		byDate := hoursByEmployee[r.EmployeeID]
		if byDate == nil {
			byDate = make(map[string]float64)
			hoursByEmployee[r.EmployeeID] = byDate
		}
		byDate[r.Date] += r.Hours()
	}
	// Only employees assigned within the scanned record set are evaluated.
	// History alone never produces a conflict: it feeds windows but the
	// scan stays scoped to whoever the records belong to.
	scanned := make(map[string]bool)
	for _, r := range active(records) {
		scanned[r.EmployeeID] = true
		addHours(r)
	}
	for _, r := range active(data.HistoryRecords) {
		if r.Date >= data.StartDate {
			continue
		}
		addHours(r)
	}

	now := time.Now()
	var conflicts []models.Conflict
	for _, employeeID := range data.EmployeeIDs {
		if !scanned[employeeID] {
			continue
		}
		byDate := hoursByEmployee[employeeID]
		if byDate == nil {
			continue
		}

		for _, date := range dates {
			hours := byDate[date]
			if hours <= dailyMax {
				continue
			}
			conflicts = append(conflicts, models.Conflict{
				ID:   conflictID("work_hour", models.TypeDailyHoursExceeded, employeeID, date),
				Kind: models.KindWorkHour,
				Type: models.TypeDailyHoursExceeded,
				Description: fmt.Sprintf("employee %s is assigned %.1f hours on %s, limit is %.1f",
					employeeID, hours, date, dailyMax),
				Severity:            dailyHoursSeverity,
				EmployeeID:          employeeID,
				Date:                date,
				AutoResolvable:      true,
				SuggestedResolution: "shorten or drop assignments to bring the day under the limit",
				Status:              models.StatusPending,
				DetectedAt:          now,
				WorkHour: &models.WorkHourDetail{
					WindowStart:   date,
					WindowEnd:     date,
					ActualHours:   hours,
					MaxHours:      dailyMax,
					OvertimeHours: hours - dailyMax,
				},
			})
		}

		for _, date := range dates {
			end, _ := time.Parse(models.DateLayout, date)
			windowStart := end.AddDate(0, 0, -(weeklyWindowDays - 1))
			var total float64
			for cur := windowStart; !cur.After(end); cur = cur.AddDate(0, 0, 1) {
				total += byDate[cur.Format(models.DateLayout)]
			}
			if total <= weeklyMax {
				continue
			}
			conflicts = append(conflicts, models.Conflict{
				ID:   conflictID("work_hour", models.TypeWeeklyHoursExceed, employeeID, date),
				Kind: models.KindWorkHour,
				Type: models.TypeWeeklyHoursExceed,
				Description: fmt.Sprintf("employee %s is assigned %.1f hours in the 7 days ending %s, limit is %.1f",
					employeeID, total, date, weeklyMax),
				Severity:            weeklyHoursSeverity,
				EmployeeID:          employeeID,
				Date:                date,
				AutoResolvable:      true,
				SuggestedResolution: "redistribute assignments across the week",
				Status:              models.StatusPending,
				DetectedAt:          now,
				WorkHour: &models.WorkHourDetail{
					WindowStart:   windowStart.Format(models.DateLayout),
					WindowEnd:     date,
					ActualHours:   total,
					MaxHours:      weeklyMax,
					OvertimeHours: total - weeklyMax,
				},
			})
			break
		}
	}
	return models.NewCheckResult(conflicts)
}
