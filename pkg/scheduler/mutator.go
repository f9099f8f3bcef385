package scheduler

import (
	"slices"

	"github.com/arnavshah/staffing-api-go/pkg/models"
)

// UpdateSchedule records the shift in the schedule and the aggregates.
// It does not validate; callers check IsValidAssignment first.
func UpdateSchedule(schedule models.ShiftSchedule, agg *models.Aggregates, a models.Assignment) {
	hours, ok := schedule[a.Day]
	if !ok {
		hours = make(map[int]map[string][]*models.Employee)
		schedule[a.Day] = hours
	}
	for h := a.StartHour; h < a.EndHour(); h++ {
		roles, ok := hours[h]
		if !ok {
			roles = make(map[string][]*models.Employee)
			hours[h] = roles
		}
		roles[a.Role] = append(roles[a.Role], a.Employee)
	}

	agg.WeeklyHours[a.Employee.Name] += a.Length
	agg.DailyShifts[a.Employee.Name] = append(agg.DailyShifts[a.Employee.Name], a.Day)
}

// RemoveAssignment undoes UpdateSchedule. It must receive the same Assignment
// so that the schedule and aggregates return to their previous state.
func RemoveAssignment(schedule models.ShiftSchedule, agg *models.Aggregates, a models.Assignment) {
	for h := a.StartHour; h < a.EndHour(); h++ {
		roles := schedule[a.Day][h]
		emps := roles[a.Role]
		// last occurrence, since UpdateSchedule appends
		for i := len(emps) - 1; i >= 0; i-- {
			if emps[i] == a.Employee {
				emps = slices.Delete(emps, i, i+1)
				break
			}
		}
		if len(emps) == 0 {
			delete(roles, a.Role)
		} else {
			roles[a.Role] = emps
		}
	}

	name := a.Employee.Name
	agg.WeeklyHours[name] -= a.Length
	days := agg.DailyShifts[name]
	for i := len(days) - 1; i >= 0; i-- {
		if days[i] == a.Day {
			days = slices.Delete(days, i, i+1)
			break
		}
	}
	if len(days) == 0 {
		delete(agg.DailyShifts, name)
	} else {
		agg.DailyShifts[name] = days
	}
}
