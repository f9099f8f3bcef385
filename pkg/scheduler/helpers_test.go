package scheduler

import (
	"maps"
	"slices"

	"github.com/arnavshah/staffing-api-go/pkg/models"
)

func newEmployee(name string, start, end, minHours, maxHours int, roles []string, daysOff ...string) *models.Employee {
	return &models.Employee{
		Name:         name,
		Availability: models.HourRange{Start: start, End: end},
		MinHours:     minHours,
		MaxHours:     maxHours,
		Roles:        roles,
		DaysOff:      daysOff,
	}
}

func newRequirements(open, closing, minLen, maxLen int, minimums map[string]int) *models.EmployerRequirements {
	return &models.EmployerRequirements{
		WorkHours:        models.HourRange{Start: open, End: closing},
		ShiftLengths:     models.ShiftLengths{Min: minLen, Max: maxLen},
		CriticalMinimums: minimums,
	}
}

func cloneSchedule(s models.ShiftSchedule) models.ShiftSchedule {
	out := make(models.ShiftSchedule, len(s))
	for day, hours := range s {
		h := make(map[int]map[string][]*models.Employee, len(hours))
		for hour, roles := range hours {
			r := make(map[string][]*models.Employee, len(roles))
			for role, emps := range roles {
				r[role] = slices.Clone(emps)
			}
			h[hour] = r
		}
		out[day] = h
	}
	return out
}

func cloneAggregates(a *models.Aggregates) *models.Aggregates {
	out := &models.Aggregates{
		WeeklyHours: maps.Clone(a.WeeklyHours),
		DailyShifts: make(map[string][]string, len(a.DailyShifts)),
	}
	for k, v := range a.DailyShifts {
		out.DailyShifts[k] = slices.Clone(v)
	}
	return out
}

// shiftsOn returns the reconstructed shifts of one day
func shiftsOn(schedule models.ShiftSchedule, day string) []models.Assignment {
	var out []models.Assignment
	for _, a := range schedule.Shifts() {
		if a.Day == day {
			out = append(out, a)
		}
	}
	return out
}

// recompute derives weekly hours and worked days by scanning the schedule
func recompute(schedule models.ShiftSchedule) (map[string]int, map[string][]string) {
	hours := make(map[string]int)
	days := make(map[string][]string)
	for _, day := range models.Week {
		for _, roles := range schedule[day] {
			for _, emps := range roles {
				for _, e := range emps {
					hours[e.Name]++
					if !slices.Contains(days[e.Name], day) {
						days[e.Name] = append(days[e.Name], day)
					}
				}
			}
		}
	}
	for name := range days {
		slices.Sort(days[name])
	}
	return hours, days
}
