package scheduler

import (
	"context"
	"errors"

	"github.com/arnavshah/staffing-api-go/pkg/models"
)

// Result is a solved and balanced week
type Result struct {
	Schedule      models.ShiftSchedule
	Aggregates    *models.Aggregates
	Shortfalls    []models.Shortfall
	Stats         models.SolveStats
	FairnessScore float64
}

// Plan solves the week and then tops up employees below their minimum hours.
// No schedule is returned when the search fails; search failures come back
// as a *SearchError carrying the statistics of the abandoned search.
func Plan(ctx context.Context, employees []*models.Employee, reqs *models.EmployerRequirements, opts Options) (*Result, error) {
	s := NewScheduler(employees, reqs, opts)
	if err := s.Solve(ctx); err != nil {
		if errors.Is(err, ErrInvalidInput) {
			return nil, err
		}
		return nil, &SearchError{Stats: s.Stats, Err: err}
	}

	shortfalls := s.BalanceMinimumHours()
	return &Result{
		Schedule:      s.Schedule,
		Aggregates:    s.Aggregates,
		Shortfalls:    shortfalls,
		Stats:         s.Stats,
		FairnessScore: CalculateFairnessScore(s.Aggregates.WeeklyHours),
	}, nil
}
