package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arnavshah/staffing-api-go/pkg/models"
)

func TestBalanceMinimumHours_AddsFloaterShifts(t *testing.T) {
	reqs := newRequirements(9, 13, 2, 4, map[string]int{"Cashier": 1})
	alice := newEmployee("Alice", 9, 17, 20, 40, []string{"Cashier"})
	bob := newEmployee("Bob", 9, 17, 0, 40, []string{"Cashier"})
	cara := newEmployee("Cara", 9, 17, 0, 40, []string{"Cashier"})
	employees := []*models.Employee{alice, bob, cara}

	s := NewScheduler(employees, reqs, Options{})
	require.NoError(t, s.Solve(context.Background()))
	require.Equal(t, 10, s.Aggregates.WeeklyHours["Alice"])
	solved := s.Schedule.Shifts()

	shortfalls := s.BalanceMinimumHours()

	// Alice only had Wednesday and Saturday free
	var floaters []models.Assignment
	for _, a := range s.Schedule.Shifts() {
		if a.Role == models.FloaterRole {
			floaters = append(floaters, a)
		}
	}
	require.Equal(t, []models.Assignment{
		{Employee: alice, Role: models.FloaterRole, Day: models.Wednesday, StartHour: 9, Length: 4},
		{Employee: alice, Role: models.FloaterRole, Day: models.Saturday, StartHour: 9, Length: 4},
	}, floaters)
	require.Equal(t, 18, s.Aggregates.WeeklyHours["Alice"])
	require.Len(t, s.Aggregates.DailyShifts["Alice"], 7)

	require.Equal(t, []models.Shortfall{
		{Employee: "Alice", MinHours: 20, AssignedHours: 18, Missing: 2},
	}, shortfalls)

	// solver shifts are untouched
	for _, a := range solved {
		for h := a.StartHour; h < a.EndHour(); h++ {
			require.Contains(t, s.Schedule[a.Day][h][a.Role], a.Employee)
		}
	}
	for _, day := range models.Week {
		require.True(t, MeetsCriticalMinimumsForDay(s.Schedule, reqs, day))
	}
}

func TestBalanceMinimumHours_FillerLengthIsClamped(t *testing.T) {
	reqs := newRequirements(9, 17, 3, 6, map[string]int{"Cashier": 1})
	zoe := newEmployee("Zoe", 9, 17, 1, 40, []string{"Cashier"})
	yan := newEmployee("Yan", 9, 17, 8, 40, []string{"Cashier"})
	employees := []*models.Employee{zoe, yan}
	schedule := models.NewShiftSchedule(reqs.WorkHours)
	agg := models.NewAggregates(employees)

	require.Empty(t, BalanceMinimumHours(schedule, employees, reqs, agg, nil))

	// a one-hour gap still costs a minimum-length shift, and an eight-hour
	// gap is split into a maximum-length shift plus a minimum-length one
	require.Equal(t, []models.Assignment{
		{Employee: zoe, Role: models.FloaterRole, Day: models.Monday, StartHour: 9, Length: 3},
		{Employee: yan, Role: models.FloaterRole, Day: models.Tuesday, StartHour: 9, Length: 6},
		{Employee: yan, Role: models.FloaterRole, Day: models.Wednesday, StartHour: 9, Length: 3},
	}, schedule.Shifts())
	require.Equal(t, 3, agg.WeeklyHours["Zoe"])
	require.Equal(t, 9, agg.WeeklyHours["Yan"])
}

func TestBalanceMinimumHours_PrefersLeastStaffedDay(t *testing.T) {
	reqs := newRequirements(9, 13, 1, 4, map[string]int{"Cashier": 1})
	yuri := newEmployee("Yuri", 9, 13, 0, 40, []string{"Cashier"})
	xena := newEmployee("Xena", 9, 13, 3, 10, []string{"Cashier"})
	employees := []*models.Employee{yuri, xena}
	agg := models.NewAggregates(employees)
	schedule := models.NewShiftSchedule(reqs.WorkHours)

	for _, day := range models.Week[:6] {
		UpdateSchedule(schedule, agg, models.Assignment{Employee: yuri, Role: "Cashier", Day: day, StartHour: 9, Length: 4})
	}

	shortfalls := BalanceMinimumHours(schedule, employees, reqs, agg, nil)
	require.Empty(t, shortfalls)
	require.Equal(t, []*models.Employee{xena}, schedule[models.Sunday][9][models.FloaterRole])
	require.Equal(t, []*models.Employee{xena}, schedule[models.Sunday][11][models.FloaterRole])
	require.Empty(t, schedule[models.Sunday][12])
	require.Equal(t, 3, agg.WeeklyHours["Xena"])
	require.Equal(t, []string{models.Sunday}, agg.DailyShifts["Xena"])
	require.Equal(t, 24, agg.WeeklyHours["Yuri"])
}

func TestBalanceMinimumHours_RespectsMaxHoursAndDaysOff(t *testing.T) {
	reqs := newRequirements(9, 13, 2, 4, map[string]int{"Cashier": 1})
	// a second shift would need at least 2 more hours and break the 5 hour cap
	zoe := newEmployee("Zoe", 9, 13, 5, 5, []string{"Cashier"},
		models.Wednesday, models.Thursday, models.Friday, models.Saturday, models.Sunday)
	employees := []*models.Employee{zoe}
	agg := models.NewAggregates(employees)
	schedule := models.NewShiftSchedule(reqs.WorkHours)

	shortfalls := BalanceMinimumHours(schedule, employees, reqs, agg, nil)

	require.Equal(t, 4, agg.WeeklyHours["Zoe"])
	require.Equal(t, []string{models.Monday}, agg.DailyShifts["Zoe"])
	require.Equal(t, []models.Shortfall{{Employee: "Zoe", MinHours: 5, AssignedHours: 4, Missing: 1}}, shortfalls)
	require.Zero(t, schedule.StaffedSlots(models.Tuesday))
}

func TestCalculateFairnessScore(t *testing.T) {
	require.Equal(t, 100.0, CalculateFairnessScore(nil))
	require.Equal(t, 100.0, CalculateFairnessScore(map[string]int{"a": 0, "b": 0}))
	require.Equal(t, 100.0, CalculateFairnessScore(map[string]int{"a": 12, "b": 12}))
	require.Equal(t, 0.0, CalculateFairnessScore(map[string]int{"a": 0, "b": 10}))
	require.InDelta(t, 50.0, CalculateFairnessScore(map[string]int{"a": 5, "b": 15}), 0.001)
}
