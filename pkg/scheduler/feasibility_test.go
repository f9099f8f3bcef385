package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arnavshah/staffing-api-go/pkg/models"
)

func TestCheckAssignment_Precedence(t *testing.T) {
	reqs := newRequirements(9, 17, 1, 8, map[string]int{"Cashier": 1})
	emp := newEmployee("Alice", 9, 17, 0, 4, []string{"Cashier"}, models.Monday)
	agg := models.NewAggregates([]*models.Employee{emp})
	agg.WeeklyHours["Alice"] = 4
	agg.DailyShifts["Alice"] = []string{models.Monday}

	// max hours wins over same-day, day off and bad hours
	require.Equal(t, RejectMaxHours, CheckAssignment(emp, "Cashier", models.Monday, 7, 2, agg, reqs))

	emp.MaxHours = 40
	require.Equal(t, RejectAlreadyWorked, CheckAssignment(emp, "Cashier", models.Monday, 7, 2, agg, reqs))

	agg.DailyShifts["Alice"] = nil
	require.Equal(t, RejectDayOff, CheckAssignment(emp, "Cashier", models.Monday, 7, 2, agg, reqs))

	emp.DaysOff = nil
	require.Equal(t, RejectOutsideHours, CheckAssignment(emp, "Cashier", models.Monday, 7, 2, agg, reqs))
	require.Equal(t, RejectNone, CheckAssignment(emp, "Cashier", models.Monday, 9, 2, agg, reqs))
}

func TestCheckAssignment_HourBounds(t *testing.T) {
	reqs := newRequirements(8, 16, 1, 8, map[string]int{"Cashier": 1})
	emp := newEmployee("Alice", 10, 18, 0, 40, []string{"Cashier"})
	agg := models.NewAggregates([]*models.Employee{emp})

	tests := []struct {
		name   string
		start  int
		length int
		want   Rejection
	}{
		{"before availability", 9, 2, RejectOutsideHours},
		{"past store close", 14, 3, RejectOutsideHours},
		{"ends at close", 13, 3, RejectNone},
		{"zero length", 10, 0, RejectOutsideHours},
		{"inside both windows", 10, 6, RejectNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CheckAssignment(emp, "Cashier", models.Tuesday, tt.start, tt.length, agg, reqs))
		})
	}

	early := newEmployee("Bob", 6, 12, 0, 40, []string{"Cashier"})
	require.False(t, IsValidAssignment(early, "Cashier", models.Tuesday, 7, 2, agg, reqs), "shift before store open")

	late := newEmployee("Cara", 8, 12, 0, 40, []string{"Cashier"})
	require.False(t, IsValidAssignment(late, "Cashier", models.Tuesday, 10, 3, agg, reqs), "shift past availability end")
}

func TestIsValidAssignment_ReadsAggregatesNotSchedule(t *testing.T) {
	reqs := newRequirements(9, 17, 1, 8, map[string]int{"Cashier": 1})
	emp := newEmployee("Alice", 9, 17, 0, 10, []string{"Cashier"})
	agg := models.NewAggregates([]*models.Employee{emp})

	require.True(t, IsValidAssignment(emp, "Cashier", models.Friday, 9, 8, agg, reqs))

	agg.WeeklyHours["Alice"] = 3
	require.False(t, IsValidAssignment(emp, "Cashier", models.Friday, 9, 8, agg, reqs))
	require.True(t, IsValidAssignment(emp, "Cashier", models.Friday, 9, 7, agg, reqs))
}

func TestMeetsCriticalMinimumsForDay(t *testing.T) {
	reqs := newRequirements(9, 11, 1, 2, map[string]int{"Cashier": 1, "Stock": 2})
	alice := newEmployee("Alice", 9, 17, 0, 40, []string{"Cashier"})
	bob := newEmployee("Bob", 9, 17, 0, 40, []string{"Stock"})
	cara := newEmployee("Cara", 9, 17, 0, 40, []string{"Stock"})
	agg := models.NewAggregates([]*models.Employee{alice, bob, cara})
	schedule := models.NewShiftSchedule(reqs.WorkHours)

	require.False(t, MeetsCriticalMinimumsForDay(schedule, reqs, models.Monday), "empty day")

	UpdateSchedule(schedule, agg, models.Assignment{Employee: alice, Role: "Cashier", Day: models.Monday, StartHour: 9, Length: 2})
	UpdateSchedule(schedule, agg, models.Assignment{Employee: bob, Role: "Stock", Day: models.Monday, StartHour: 9, Length: 2})
	require.False(t, MeetsCriticalMinimumsForDay(schedule, reqs, models.Monday), "one stocker short")

	UpdateSchedule(schedule, agg, models.Assignment{Employee: cara, Role: "Stock", Day: models.Monday, StartHour: 9, Length: 1})
	require.False(t, MeetsCriticalMinimumsForDay(schedule, reqs, models.Monday), "hour 10 still short")

	RemoveAssignment(schedule, agg, models.Assignment{Employee: cara, Role: "Stock", Day: models.Monday, StartHour: 9, Length: 1})
	UpdateSchedule(schedule, agg, models.Assignment{Employee: cara, Role: "Stock", Day: models.Monday, StartHour: 9, Length: 2})
	require.True(t, MeetsCriticalMinimumsForDay(schedule, reqs, models.Monday))
	require.False(t, MeetsCriticalMinimumsForDay(schedule, reqs, models.Tuesday))
}
