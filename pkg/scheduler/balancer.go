package scheduler

import (
	"log/slog"
	"slices"

	"github.com/arnavshah/staffing-api-go/pkg/models"
)

// BalanceMinimumHours adds Floater shifts for employees still below their
// weekly minimum, preferring the least staffed days. It never touches the
// shifts already in the schedule. Employees it cannot top up are returned as
// shortfalls.
//
// Each filler shift asks for the hours still missing, clamped to the shift
// length bounds, and shrinks toward the minimum length until it fits the day.
// A one-hour gap therefore still gets a full minimum-length shift.
//
// An employee gets at most one shift per day, so someone who already works
// most days may stay short even when hours remain.
func BalanceMinimumHours(
	schedule models.ShiftSchedule,
	employees []*models.Employee,
	reqs *models.EmployerRequirements,
	agg *models.Aggregates,
	logger *slog.Logger,
) []models.Shortfall {
	if logger == nil {
		logger = slog.Default()
	}

	var shortfalls []models.Shortfall
	for _, emp := range employees {
		required := emp.MinHours - agg.WeeklyHours[emp.Name]
		if required <= 0 {
			continue
		}

		for _, day := range leastStaffedDays(schedule) {
			if required <= 0 {
				break
			}
			a, ok := fillerShift(emp, day, required, agg, reqs)
			if !ok {
				continue
			}
			UpdateSchedule(schedule, agg, a)
			required -= a.Length
			logger.Debug("added floater shift",
				"employee", emp.Name, "day", day, "start", a.StartHour, "length", a.Length)
		}

		if required > 0 {
			sf := models.Shortfall{
				Employee:      emp.Name,
				MinHours:      emp.MinHours,
				AssignedHours: agg.WeeklyHours[emp.Name],
				Missing:       required,
			}
			logger.Warn("employee below minimum hours",
				"employee", sf.Employee, "assigned", sf.AssignedHours, "min", sf.MinHours)
			shortfalls = append(shortfalls, sf)
		}
	}
	return shortfalls
}

// BalanceMinimumHours runs the balancer over the solved schedule
func (s *Scheduler) BalanceMinimumHours() []models.Shortfall {
	return BalanceMinimumHours(s.Schedule, s.Employees, s.Reqs, s.Aggregates, s.logger)
}

// leastStaffedDays orders the week by ascending staffed slots, ties kept in week order
func leastStaffedDays(schedule models.ShiftSchedule) []string {
	days := slices.Clone(models.Week)
	slots := make(map[string]int, len(days))
	for _, d := range days {
		slots[d] = schedule.StaffedSlots(d)
	}
	slices.SortStableFunc(days, func(a, b string) int {
		return slots[a] - slots[b]
	})
	return days
}

// fillerShift picks the earliest start on day where a Floater shift fits,
// trying the longest useful length first and shrinking to the minimum
func fillerShift(
	emp *models.Employee,
	day string,
	required int,
	agg *models.Aggregates,
	reqs *models.EmployerRequirements,
) (models.Assignment, bool) {
	target := min(max(required, reqs.ShiftLengths.Min), reqs.ShiftLengths.Max)
	for _, hour := range reqs.WorkHours.Hours() {
		for length := target; length >= reqs.ShiftLengths.Min; length-- {
			if IsValidAssignment(emp, models.FloaterRole, day, hour, length, agg, reqs) {
				return models.Assignment{
					Employee:  emp,
					Role:      models.FloaterRole,
					Day:       day,
					StartHour: hour,
					Length:    length,
				}, true
			}
		}
	}
	return models.Assignment{}, false
}
