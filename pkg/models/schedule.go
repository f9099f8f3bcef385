package models

import (
	"cmp"
	"slices"
	"strings"
)

// ShiftSchedule maps day -> hour -> role -> assigned employees
type ShiftSchedule map[string]map[int]map[string][]*Employee

// NewShiftSchedule builds an empty schedule with every day of the week and
// every open hour present
func NewShiftSchedule(workHours HourRange) ShiftSchedule {
	schedule := make(ShiftSchedule, len(Week))
	for _, day := range Week {
		hours := make(map[int]map[string][]*Employee)
		for _, h := range workHours.Hours() {
			hours[h] = make(map[string][]*Employee)
		}
		schedule[day] = hours
	}
	return schedule
}

// AssignedCount returns how many employees hold role at the given day and hour
func (s ShiftSchedule) AssignedCount(day string, hour int, role string) int {
	return len(s[day][hour][role])
}

// StaffedSlots counts employee-hours recorded on a day across all roles
func (s ShiftSchedule) StaffedSlots(day string) int {
	total := 0
	for _, roles := range s[day] {
		for _, emps := range roles {
			total += len(emps)
		}
	}
	return total
}

// SortedHours returns the hours recorded under day in ascending order
func (s ShiftSchedule) SortedHours(day string) []int {
	hours := make([]int, 0, len(s[day]))
	for h := range s[day] {
		hours = append(hours, h)
	}
	slices.Sort(hours)
	return hours
}

// Shifts walks the schedule and reconstructs the contiguous shift blocks per
// employee, day and role, in week order
func (s ShiftSchedule) Shifts() []Assignment {
	var out []Assignment
	for _, day := range Week {
		hoursByKey := make(map[shiftKey][]int)
		var keys []shiftKey
		for _, hour := range s.SortedHours(day) {
			for role, emps := range s[day][hour] {
				for _, e := range emps {
					k := shiftKey{emp: e, role: role}
					if _, ok := hoursByKey[k]; !ok {
						keys = append(keys, k)
					}
					hoursByKey[k] = append(hoursByKey[k], hour)
				}
			}
		}
		slices.SortFunc(keys, func(a, b shiftKey) int {
			return cmp.Or(strings.Compare(a.emp.Name, b.emp.Name), strings.Compare(a.role, b.role))
		})
		for _, k := range keys {
			hours := hoursByKey[k]
			start := hours[0]
			prev := start
			for _, h := range hours[1:] {
				if h != prev+1 {
					out = append(out, Assignment{Employee: k.emp, Role: k.role, Day: day, StartHour: start, Length: prev - start + 1})
					start = h
				}
				prev = h
			}
			out = append(out, Assignment{Employee: k.emp, Role: k.role, Day: day, StartHour: start, Length: prev - start + 1})
		}
	}
	return out
}

type shiftKey struct {
	emp  *Employee
	role string
}

// Aggregates are the running totals kept in lockstep with the schedule
type Aggregates struct {
	WeeklyHours map[string]int
	DailyShifts map[string][]string
}

// NewAggregates creates zeroed aggregates for the given employees
func NewAggregates(employees []*Employee) *Aggregates {
	agg := &Aggregates{
		WeeklyHours: make(map[string]int, len(employees)),
		DailyShifts: make(map[string][]string, len(employees)),
	}
	for _, e := range employees {
		agg.WeeklyHours[e.Name] = 0
	}
	return agg
}

// WorkedOn checks if the employee already has a shift on day
func (a *Aggregates) WorkedOn(name, day string) bool {
	return slices.Contains(a.DailyShifts[name], day)
}
