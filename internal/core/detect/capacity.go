package detect

import (
	"fmt"
	"sort"
	"time"

	"github.com/example/rosterguard/internal/models"
)

// understaffSeverity maps the shortfall percentage onto 3..5. Understaffing
// always endangers coverage, so it never drops below severe.
func understaffSeverity(missing, minRequired int) int {
	pct := missing * 100 / minRequired
	switch {
	case pct >= 50:
		return 5
	case pct >= 30:
		return 4
	default:
		return 3
	}
}

// overstaffSeverity maps the overload percentage onto 2..5.
func overstaffSeverity(excess, maxCapacity int) int {
	pct := excess * 100 / maxCapacity
	switch {
	case pct >= 50:
		return 5
	case pct >= 30:
		return 4
	case pct >= 10:
		return 3
	default:
		return 2
	}
}

// CapacityConflicts counts assigned employees per shift and date against the
// staffing bounds. Shifts with an explicit minimum are also checked on dates
// where nobody is assigned at all.
func (d *Detector) CapacityConflicts(records []models.ScheduleRecord, data models.ScheduleData) models.CheckResult[models.Conflict] {
	assigned := make(map[string]map[string]bool) // shift|date -> employee set
	var cells []string
	addCell := func(key string) {
		if _, ok := assigned[key]; !ok {
			assigned[key] = make(map[string]bool)
			cells = append(cells, key)
		}
	}
	shiftOf := make(map[string]string)
	dateOf := make(map[string]string)

	for _, r := range active(records) {
		if r.ShiftID == "" {
			continue
		}
		key := r.ShiftID + "|" + r.Date
		addCell(key)
		assigned[key][r.EmployeeID] = true
		shiftOf[key] = r.ShiftID
		dateOf[key] = r.Date
	}

	// A shift that demands staff conflicts even when it got none.
	for shiftID, bounds := range data.ShiftCapacities {
		if bounds.MinRequired <= 0 {
			continue
		}
		for _, date := range data.Dates() {
			key := shiftID + "|" + date
			addCell(key)
			shiftOf[key] = shiftID
			dateOf[key] = date
		}
	}
	sort.Strings(cells)

	now := time.Now()
	var conflicts []models.Conflict
	for _, key := range cells {
		shiftID, date := shiftOf[key], dateOf[key]
		bounds := data.CapacityOf(shiftID)
		actual := len(assigned[key])

		under := 0
		if bounds.MinRequired > 0 && actual < bounds.MinRequired {
			under = bounds.MinRequired - actual
		}
		over := 0
		if bounds.MaxCapacity > 0 && actual > bounds.MaxCapacity {
			over = actual - bounds.MaxCapacity
		}

		detail := &models.CapacityDetail{
			ActualEmployeeCount: actual,
			MinRequiredCount:    bounds.MinRequired,
			MaxCapacity:         bounds.MaxCapacity,
			UnderCapacityCount:  under,
			OverCapacityCount:   over,
		}

		if under > 0 {
			severity := understaffSeverity(under, bounds.MinRequired)
			if data.CriticalShifts[shiftID] && severity < 5 {
				severity++
			}
			conflicts = append(conflicts, models.Conflict{
				ID:   conflictID("capacity", models.TypeUnderStaffed, shiftID, date),
				Kind: models.KindCapacity,
				Type: models.TypeUnderStaffed,
				Description: fmt.Sprintf("shift %s on %s has %d of %d required employees",
					shiftID, date, actual, bounds.MinRequired),
				Severity:            severity,
				ShiftID:             shiftID,
				Date:                date,
				AutoResolvable:      true,
				SuggestedResolution: "assign additional employees to the shift",
				Status:              models.StatusPending,
				DetectedAt:          now,
				Capacity:            detail,
			})
		}
		if over > 0 {
			conflicts = append(conflicts, models.Conflict{
				ID:   conflictID("capacity", models.TypeOverStaffed, shiftID, date),
				Kind: models.KindCapacity,
				Type: models.TypeOverStaffed,
				Description: fmt.Sprintf("shift %s on %s has %d employees, capacity is %d",
					shiftID, date, actual, bounds.MaxCapacity),
				Severity:            overstaffSeverity(over, bounds.MaxCapacity),
				ShiftID:             shiftID,
				Date:                date,
				AutoResolvable:      true,
				SuggestedResolution: "move surplus employees to understaffed shifts",
				Status:              models.StatusPending,
				DetectedAt:          now,
				Capacity:            detail,
			})
		}
	}
	return models.NewCheckResult(conflicts)
}
