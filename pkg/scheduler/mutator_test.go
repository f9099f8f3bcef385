package scheduler

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arnavshah/staffing-api-go/pkg/models"
)

func TestUpdateSchedule(t *testing.T) {
	reqs := newRequirements(9, 17, 1, 8, map[string]int{"Cashier": 1})
	alice := newEmployee("Alice", 9, 17, 0, 40, []string{"Cashier"})
	agg := models.NewAggregates([]*models.Employee{alice})
	schedule := models.NewShiftSchedule(reqs.WorkHours)

	UpdateSchedule(schedule, agg, models.Assignment{Employee: alice, Role: "Cashier", Day: models.Wednesday, StartHour: 10, Length: 3})

	for h := 10; h < 13; h++ {
		require.Equal(t, []*models.Employee{alice}, schedule[models.Wednesday][h]["Cashier"])
	}
	require.Empty(t, schedule[models.Wednesday][9])
	require.Empty(t, schedule[models.Wednesday][13])
	require.Equal(t, 3, agg.WeeklyHours["Alice"])
	require.Equal(t, []string{models.Wednesday}, agg.DailyShifts["Alice"])
}

func TestRemoveAssignment_RevertSymmetry(t *testing.T) {
	reqs := newRequirements(9, 17, 1, 8, map[string]int{"Cashier": 1})
	alice := newEmployee("Alice", 9, 17, 0, 40, []string{"Cashier"})
	bob := newEmployee("Bob", 9, 17, 0, 40, []string{"Cashier"})
	agg := models.NewAggregates([]*models.Employee{alice, bob})
	schedule := models.NewShiftSchedule(reqs.WorkHours)

	UpdateSchedule(schedule, agg, models.Assignment{Employee: bob, Role: "Cashier", Day: models.Monday, StartHour: 9, Length: 4})
	UpdateSchedule(schedule, agg, models.Assignment{Employee: alice, Role: "Cashier", Day: models.Sunday, StartHour: 12, Length: 2})

	beforeSchedule := cloneSchedule(schedule)
	beforeAgg := cloneAggregates(agg)

	// shares cells with Bob on Monday and is Alice's second day
	a := models.Assignment{Employee: alice, Role: "Cashier", Day: models.Monday, StartHour: 11, Length: 5}
	UpdateSchedule(schedule, agg, a)
	require.NotEqual(t, beforeSchedule, schedule)
	RemoveAssignment(schedule, agg, a)

	require.Equal(t, beforeSchedule, schedule)
	require.Equal(t, beforeAgg, agg)

	// a first shift for Bob's colleague leaves no empty bookkeeping behind
	cara := newEmployee("Cara", 9, 17, 0, 40, []string{"Stock"})
	agg.WeeklyHours["Cara"] = 0
	beforeAgg = cloneAggregates(agg)
	b := models.Assignment{Employee: cara, Role: "Stock", Day: models.Friday, StartHour: 9, Length: 8}
	UpdateSchedule(schedule, agg, b)
	RemoveAssignment(schedule, agg, b)
	require.Equal(t, beforeSchedule, schedule)
	require.Equal(t, beforeAgg, agg)
	_, hasStock := schedule[models.Friday][9]["Stock"]
	require.False(t, hasStock)
}

func TestAggregates_StayConsistent(t *testing.T) {
	reqs := newRequirements(8, 20, 1, 6, map[string]int{"Cashier": 1})
	employees := []*models.Employee{
		newEmployee("Alice", 8, 20, 0, 30, []string{"Cashier"}),
		newEmployee("Bob", 10, 18, 0, 20, []string{"Cashier"}, models.Sunday),
		newEmployee("Cara", 8, 14, 0, 25, []string{"Cashier"}),
	}
	agg := models.NewAggregates(employees)
	schedule := models.NewShiftSchedule(reqs.WorkHours)
	rng := rand.New(rand.NewSource(42))

	var applied []models.Assignment
	for step := 0; step < 500; step++ {
		if len(applied) > 0 && rng.Intn(3) == 0 {
			i := rng.Intn(len(applied))
			RemoveAssignment(schedule, agg, applied[i])
			applied = slices.Delete(applied, i, i+1)
			continue
		}
		a := models.Assignment{
			Employee:  employees[rng.Intn(len(employees))],
			Role:      "Cashier",
			Day:       models.Week[rng.Intn(len(models.Week))],
			StartHour: 8 + rng.Intn(12),
			Length:    1 + rng.Intn(6),
		}
		if IsValidAssignment(a.Employee, a.Role, a.Day, a.StartHour, a.Length, agg, reqs) {
			UpdateSchedule(schedule, agg, a)
			applied = append(applied, a)
		}
	}
	require.NotEmpty(t, applied)

	hours, days := recompute(schedule)
	for _, e := range employees {
		require.Equal(t, hours[e.Name], agg.WeeklyHours[e.Name], "weekly hours for %s", e.Name)
		worked := slices.Clone(agg.DailyShifts[e.Name])
		slices.Sort(worked)
		require.Equal(t, days[e.Name], worked, "worked days for %s", e.Name)
		require.LessOrEqual(t, agg.WeeklyHours[e.Name], e.MaxHours)
	}
}
