package resolve

import (
	"fmt"
	"sort"
	"time"

	"github.com/example/rosterguard/internal/models"
)

// outcome is one strategy's proposed schedule change: the full record set
// after the change plus the modification log.
type outcome struct {
	records       []models.ScheduleRecord
	modifications []models.RecordModification
	description   string
}

func cloneRecords(records []models.ScheduleRecord) []models.ScheduleRecord {
	out := make([]models.ScheduleRecord, len(records))
	copy(out, records)
	return out
}

func indexByID(records []models.ScheduleRecord, id string) int {
	for i, r := range records {
		if r.RecordID == id {
			return i
		}
	}
	return -1
}

func deleteAt(records []models.ScheduleRecord, i int) []models.ScheduleRecord {
	return append(records[:i:i], records[i+1:]...)
}

func modification(recordID string, typ models.ModificationType, reason string) models.RecordModification {
	return models.RecordModification{
		RecordID: recordID,
		Type:     typ,
		Reason:   reason,
		At:       time.Now(),
	}
}

// lowerPriority picks the record of a pair that should yield: lower priority
// first, later start as tie-break, higher record ID last.
func lowerPriority(a, b models.ScheduleRecord) models.ScheduleRecord {
	if a.Priority != b.Priority {
		if a.Priority < b.Priority {
			return a
		}
		return b
	}
	if !a.StartTime.Equal(b.StartTime) {
		if a.StartTime.After(b.StartTime) {
			return a
		}
		return b
	}
	if a.RecordID > b.RecordID {
		return a
	}
	return b
}

// timeAdjustment removes an overlap by moving the later record's start to the
// earlier record's end.
func timeAdjustment(c models.Conflict, records []models.ScheduleRecord) (outcome, bool) {
	if c.Time == nil {
		return outcome{}, false
	}
	i1, i2 := indexByID(records, c.Time.RecordID1), indexByID(records, c.Time.RecordID2)
	if i1 < 0 || i2 < 0 {
		return outcome{}, false
	}
	earlier, later := i1, i2
	if records[i2].StartTime.Before(records[i1].StartTime) {
		earlier, later = i2, i1
	}

	out := cloneRecords(records)
	newStart := out[earlier].EndTime
	if !out[later].EndTime.After(newStart) {
		return outcome{}, false
	}
	out[later].StartTime = newStart
	return outcome{
		records: out,
		modifications: []models.RecordModification{
			modification(out[later].RecordID, models.ModificationUpdate, "moved start past the overlapping assignment"),
		},
		description: fmt.Sprintf("moved record %s to start at %s", out[later].RecordID, newStart.Format("15:04")),
	}, true
}

// priorityBased resolves a conflict in favour of the higher-priority record.
// For time overlaps the losing record is truncated out of the overlap; for
// other kinds the losing record on the conflict date is removed.
func priorityBased(c models.Conflict, records []models.ScheduleRecord) (outcome, bool) {
	if c.Kind == models.KindTime && c.Time != nil {
		i1, i2 := indexByID(records, c.Time.RecordID1), indexByID(records, c.Time.RecordID2)
		if i1 < 0 || i2 < 0 {
			return outcome{}, false
		}
		loser := lowerPriority(records[i1], records[i2])
		li := indexByID(records, loser.RecordID)
		wi := i1
		if wi == li {
			wi = i2
		}
		winner := records[wi]

		out := cloneRecords(records)
		switch {
		case !loser.StartTime.Before(winner.StartTime) && !loser.EndTime.After(winner.EndTime):
			// Fully covered by the winner: nothing left to keep.
			out = deleteAt(out, li)
			return outcome{
				records: out,
				modifications: []models.RecordModification{
					modification(loser.RecordID, models.ModificationDelete, "assignment fully covered by a higher priority record"),
				},
				description: fmt.Sprintf("removed record %s in favour of %s", loser.RecordID, winner.RecordID),
			}, true
		case loser.StartTime.Before(winner.StartTime):
			out[li].EndTime = winner.StartTime
		default:
			out[li].StartTime = winner.EndTime
		}
		if !out[li].EndTime.After(out[li].StartTime) {
			return outcome{}, false
		}
		return outcome{
			records: out,
			modifications: []models.RecordModification{
				modification(loser.RecordID, models.ModificationUpdate, "truncated to yield to a higher priority record"),
			},
			description: fmt.Sprintf("truncated record %s around %s", loser.RecordID, winner.RecordID),
		}, true
	}

	// Drop the lowest-priority assignment on the conflict date.
	victim := -1
	for i, r := range records {
		if r.EmployeeID != c.EmployeeID || r.Date != c.Date {
			continue
		}
		if victim < 0 || lowerPriority(records[victim], r).RecordID == r.RecordID {
			victim = i
		}
	}
	if victim < 0 {
		return outcome{}, false
	}
	removed := records[victim]
	return outcome{
		records: deleteAt(cloneRecords(records), victim),
		modifications: []models.RecordModification{
			modification(removed.RecordID, models.ModificationDelete, "lowest priority assignment dropped to satisfy scheduling rules"),
		},
		description: fmt.Sprintf("removed record %s on %s", removed.RecordID, removed.Date),
	}, true
}

// recordDeletion removes the lower-priority record of a time conflict, or
// the offending record itself for single-record conflicts.
func recordDeletion(c models.Conflict, records []models.ScheduleRecord) (outcome, bool) {
	var victimID string
	switch {
	case c.Time != nil:
		i1, i2 := indexByID(records, c.Time.RecordID1), indexByID(records, c.Time.RecordID2)
		if i1 < 0 || i2 < 0 {
			return outcome{}, false
		}
		victimID = lowerPriority(records[i1], records[i2]).RecordID
	case c.Skill != nil:
		victimID = c.Skill.RecordID
	default:
		return outcome{}, false
	}
	vi := indexByID(records, victimID)
	if vi < 0 {
		return outcome{}, false
	}
	return outcome{
		records: deleteAt(cloneRecords(records), vi),
		modifications: []models.RecordModification{
			modification(victimID, models.ModificationDelete, "conflicting assignment removed"),
		},
		description: fmt.Sprintf("removed record %s", victimID),
	}, true
}

// employeeReplacement swaps a skill-mismatched assignment to the first
// in-scope employee who holds every required skill and is free that date.
func employeeReplacement(c models.Conflict, records []models.ScheduleRecord, data models.ScheduleData) (outcome, bool) {
	if c.Skill == nil {
		return outcome{}, false
	}
	ri := indexByID(records, c.Skill.RecordID)
	if ri < 0 {
		return outcome{}, false
	}
	target := records[ri]

	busy := make(map[string]bool)
	for _, r := range records {
		if r.Date == target.Date {
			busy[r.EmployeeID] = true
		}
	}

	substitute := ""
	for _, candidate := range data.EmployeeIDs {
		if candidate == target.EmployeeID || busy[candidate] {
			continue
		}
		if hasAllSkills(data.SkillsOf(candidate), c.Skill.RequiredSkills) {
			substitute = candidate
			break
		}
	}
	if substitute == "" {
		return outcome{}, false
	}

	out := cloneRecords(records)
	out[ri].EmployeeID = substitute
	return outcome{
		records: out,
		modifications: []models.RecordModification{
			modification(target.RecordID, models.ModificationUpdate,
				fmt.Sprintf("reassigned from %s to %s who holds the required skills", target.EmployeeID, substitute)),
		},
		description: fmt.Sprintf("replaced %s with %s on record %s", target.EmployeeID, substitute, target.RecordID),
	}, true
}

func hasAllSkills(held, required []string) bool {
	set := make(map[string]bool, len(held))
	for _, s := range held {
		set[s] = true
	}
	for _, s := range required {
		if !set[s] {
			return false
		}
	}
	return true
}

// shiftAdjustment repairs staffing or skill conflicts by moving assignments
// between shifts.
func shiftAdjustment(c models.Conflict, records []models.ScheduleRecord, data models.ScheduleData) (outcome, bool) {
	switch {
	case c.Skill != nil:
		return moveToQualifiedShift(c, records, data)
	case c.Capacity != nil && c.Capacity.UnderCapacityCount > 0:
		return fillUnderstaffedShift(c, records, data)
	case c.Capacity != nil && c.Capacity.OverCapacityCount > 0:
		return shedSurplusAssignments(c, records)
	default:
		return outcome{}, false
	}
}

// moveToQualifiedShift reassigns a skill-mismatched record to a shift whose
// requirements the employee actually meets.
func moveToQualifiedShift(c models.Conflict, records []models.ScheduleRecord, data models.ScheduleData) (outcome, bool) {
	ri := indexByID(records, c.Skill.RecordID)
	if ri < 0 {
		return outcome{}, false
	}
	target := records[ri]
	held := data.SkillsOf(target.EmployeeID)

	shiftIDs := make([]string, 0, len(data.ShiftRequirements))
	for shiftID := range data.ShiftRequirements {
		shiftIDs = append(shiftIDs, shiftID)
	}
	sort.Strings(shiftIDs)

	for _, shiftID := range shiftIDs {
		if shiftID == target.ShiftID || !hasAllSkills(held, data.ShiftRequirements[shiftID]) {
			continue
		}
		bounds := data.CapacityOf(shiftID)
		if bounds.MaxCapacity > 0 && countAssigned(records, shiftID, target.Date) >= bounds.MaxCapacity {
			continue
		}
		out := cloneRecords(records)
		out[ri].ShiftID = shiftID
		return outcome{
			records: out,
			modifications: []models.RecordModification{
				modification(target.RecordID, models.ModificationUpdate,
					fmt.Sprintf("moved from shift %s to %s matching the employee's skills", target.ShiftID, shiftID)),
			},
			description: fmt.Sprintf("moved record %s to shift %s", target.RecordID, shiftID),
		}, true
	}
	return outcome{}, false
}

// fillUnderstaffedShift creates assignments for free, qualified employees,
// copying the time window from an existing record on the shift. Only a full
// fill is offered; a partial fill would fail re-validation anyway.
func fillUnderstaffedShift(c models.Conflict, records []models.ScheduleRecord, data models.ScheduleData) (outcome, bool) {
	template, ok := templateRecord(records, c.ShiftID, c.Date)
	if !ok {
		return outcome{}, false
	}

	busy := make(map[string]bool)
	for _, r := range records {
		if r.Date == c.Date {
			busy[r.EmployeeID] = true
		}
	}
	required := data.RequiredSkills(c.ShiftID)

	var candidates []string
	for _, employeeID := range data.EmployeeIDs {
		if busy[employeeID] || !hasAllSkills(data.SkillsOf(employeeID), required) {
			continue
		}
		candidates = append(candidates, employeeID)
		if len(candidates) == c.Capacity.UnderCapacityCount {
			break
		}
	}
	if len(candidates) < c.Capacity.UnderCapacityCount {
		return outcome{}, false
	}

	out := cloneRecords(records)
	var mods []models.RecordModification
	for _, employeeID := range candidates {
		created := models.ScheduleRecord{
			RecordID:   fmt.Sprintf("R-%s-%s-%s", c.ShiftID, c.Date, employeeID),
			EmployeeID: employeeID,
			ShiftID:    c.ShiftID,
			Date:       c.Date,
			StartTime:  template.StartTime,
			EndTime:    template.EndTime,
			Status:     models.RecordStatusPlanned,
		}
		out = append(out, created)
		mods = append(mods, modification(created.RecordID, models.ModificationCreate,
			fmt.Sprintf("assigned %s to understaffed shift %s", employeeID, c.ShiftID)))
	}
	return outcome{
		records:       out,
		modifications: mods,
		description:   fmt.Sprintf("assigned %d additional employees to shift %s on %s", len(candidates), c.ShiftID, c.Date),
	}, true
}

// shedSurplusAssignments deletes the lowest-priority surplus records on an
// overstaffed shift.
func shedSurplusAssignments(c models.Conflict, records []models.ScheduleRecord) (outcome, bool) {
	var onShift []models.ScheduleRecord
	for _, r := range records {
		if r.ShiftID == c.ShiftID && r.Date == c.Date {
			onShift = append(onShift, r)
		}
	}
	if len(onShift) <= c.Capacity.OverCapacityCount {
		return outcome{}, false
	}
	sort.Slice(onShift, func(i, j int) bool {
		return lowerPriority(onShift[i], onShift[j]).RecordID == onShift[i].RecordID
	})

	out := cloneRecords(records)
	var mods []models.RecordModification
	for _, victim := range onShift[:c.Capacity.OverCapacityCount] {
		vi := indexByID(out, victim.RecordID)
		out = deleteAt(out, vi)
		mods = append(mods, modification(victim.RecordID, models.ModificationDelete,
			fmt.Sprintf("surplus assignment removed from overstaffed shift %s", c.ShiftID)))
	}
	return outcome{
		records:       out,
		modifications: mods,
		description:   fmt.Sprintf("removed %d surplus assignments from shift %s on %s", len(mods), c.ShiftID, c.Date),
	}, true
}

// segmentation shortens the longest assignment in the offending window by
// the overtime amount.
func segmentation(c models.Conflict, records []models.ScheduleRecord) (outcome, bool) {
	if c.WorkHour == nil {
		return outcome{}, false
	}
	longest := -1
	for i, r := range records {
		if r.EmployeeID != c.EmployeeID {
			continue
		}
		if r.Date < c.WorkHour.WindowStart || r.Date > c.WorkHour.WindowEnd {
			continue
		}
		if longest < 0 || r.Duration() > records[longest].Duration() {
			longest = i
		}
	}
	if longest < 0 {
		return outcome{}, false
	}

	cut := time.Duration(c.WorkHour.OvertimeHours * float64(time.Hour))
	out := cloneRecords(records)
	newEnd := out[longest].EndTime.Add(-cut)
	if !newEnd.After(out[longest].StartTime) {
		return outcome{}, false
	}
	out[longest].EndTime = newEnd
	return outcome{
		records: out,
		modifications: []models.RecordModification{
			modification(out[longest].RecordID, models.ModificationUpdate,
				fmt.Sprintf("shortened by %.1f hours to meet the work-hour limit", c.WorkHour.OvertimeHours)),
		},
		description: fmt.Sprintf("shortened record %s to end at %s", out[longest].RecordID, newEnd.Format("15:04")),
	}, true
}

// autoRescheduling moves a surplus assignment to the next date where the
// shift has room and the employee is free.
func autoRescheduling(c models.Conflict, records []models.ScheduleRecord, data models.ScheduleData) (outcome, bool) {
	if c.Capacity == nil || c.Capacity.OverCapacityCount == 0 {
		return outcome{}, false
	}
	var onShift []models.ScheduleRecord
	for _, r := range records {
		if r.ShiftID == c.ShiftID && r.Date == c.Date {
			onShift = append(onShift, r)
		}
	}
	if len(onShift) == 0 {
		return outcome{}, false
	}
	sort.Slice(onShift, func(i, j int) bool {
		return lowerPriority(onShift[i], onShift[j]).RecordID == onShift[i].RecordID
	})
	victim := onShift[0]
	bounds := data.CapacityOf(c.ShiftID)

	for _, date := range data.Dates() {
		if date <= c.Date {
			continue
		}
		if employeeBusy(records, victim.EmployeeID, date) {
			continue
		}
		if bounds.MaxCapacity > 0 && countAssigned(records, c.ShiftID, date) >= bounds.MaxCapacity {
			continue
		}
		vi := indexByID(records, victim.RecordID)
		out := cloneRecords(records)
		shift := dayDelta(victim.Date, date)
		out[vi].Date = date
		out[vi].StartTime = victim.StartTime.AddDate(0, 0, shift)
		out[vi].EndTime = victim.EndTime.AddDate(0, 0, shift)
		return outcome{
			records: out,
			modifications: []models.RecordModification{
				modification(victim.RecordID, models.ModificationUpdate,
					fmt.Sprintf("rescheduled from %s to %s to relieve overstaffing", victim.Date, date)),
			},
			description: fmt.Sprintf("rescheduled record %s to %s", victim.RecordID, date),
		}, true
	}
	return outcome{}, false
}

func countAssigned(records []models.ScheduleRecord, shiftID, date string) int {
	seen := make(map[string]bool)
	for _, r := range records {
		if r.ShiftID == shiftID && r.Date == date {
			seen[r.EmployeeID] = true
		}
	}
	return len(seen)
}

func employeeBusy(records []models.ScheduleRecord, employeeID, date string) bool {
	for _, r := range records {
		if r.EmployeeID == employeeID && r.Date == date {
			return true
		}
	}
	return false
}

func templateRecord(records []models.ScheduleRecord, shiftID, date string) (models.ScheduleRecord, bool) {
	best := -1
	for i, r := range records {
		if r.ShiftID != shiftID || r.Date != date {
			continue
		}
		if best < 0 || r.RecordID < records[best].RecordID {
			best = i
		}
	}
	if best < 0 {
		return models.ScheduleRecord{}, false
	}
	return records[best], true
}

func dayDelta(from, to string) int {
	f, err := time.Parse(models.DateLayout, from)
	if err != nil {
		return 0
	}
	t, err := time.Parse(models.DateLayout, to)
	if err != nil {
		return 0
	}
	return int(t.Sub(f).Hours() / 24)
}
