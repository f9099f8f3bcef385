package scheduler

import "github.com/arnavshah/staffing-api-go/pkg/models"

// Rejection names the first constraint a candidate shift violates
type Rejection int

const (
	RejectNone Rejection = iota
	RejectMaxHours
	RejectAlreadyWorked
	RejectDayOff
	RejectOutsideHours
)

func (r Rejection) String() string {
	switch r {
	case RejectNone:
		return "none"
	case RejectMaxHours:
		return "max hours"
	case RejectAlreadyWorked:
		return "already scheduled that day"
	case RejectDayOff:
		return "day off"
	case RejectOutsideHours:
		return "outside available hours"
	default:
		return "unknown"
	}
}

// CheckAssignment returns the first rule that forbids the shift, checked in
// the order max hours, same-day shift, day off, hour bounds.
// It reads only the aggregates, never the schedule.
func CheckAssignment(
	employee *models.Employee,
	role, day string,
	startHour, shiftLength int,
	agg *models.Aggregates,
	reqs *models.EmployerRequirements,
) Rejection {
	if agg.WeeklyHours[employee.Name]+shiftLength > employee.MaxHours {
		return RejectMaxHours
	}
	if agg.WorkedOn(employee.Name, day) {
		return RejectAlreadyWorked
	}
	if employee.IsOff(day) {
		return RejectDayOff
	}
	end := startHour + shiftLength
	if shiftLength <= 0 ||
		startHour < employee.Availability.Start ||
		startHour < reqs.WorkHours.Start ||
		end > reqs.WorkHours.End ||
		end > employee.Availability.End {
		return RejectOutsideHours
	}
	return RejectNone
}

// IsValidAssignment checks if an employee can take the shift without breaking
// any constraint
func IsValidAssignment(
	employee *models.Employee,
	role, day string,
	startHour, shiftLength int,
	agg *models.Aggregates,
	reqs *models.EmployerRequirements,
) bool {
	return CheckAssignment(employee, role, day, startHour, shiftLength, agg, reqs) == RejectNone
}

// MeetsCriticalMinimumsForDay checks every hour recorded under day has at
// least the required number of employees for each critical role
func MeetsCriticalMinimumsForDay(schedule models.ShiftSchedule, reqs *models.EmployerRequirements, day string) bool {
	for _, roles := range schedule[day] {
		for role, required := range reqs.CriticalMinimums {
			if len(roles[role]) < required {
				return false
			}
		}
	}
	return true
}
