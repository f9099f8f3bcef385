package scheduler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arnavshah/staffing-api-go/pkg/models"
)

// Sentinel errors returned by Solve and Plan.
//
// Callers distinguish outcomes with errors.Is; an infeasible search also
// carries the blocking slot via *InfeasibleError.
var (
	// ErrInfeasible is returned when the search exhausts every ordering
	// without meeting the critical minimums.
	ErrInfeasible = errors.New("no schedule satisfies the critical minimums")

	// ErrBudgetExceeded is returned when the step limit or the context
	// deadline stops the search before it finished.
	ErrBudgetExceeded = errors.New("search budget exceeded")

	// ErrInvalidInput is returned when employees or requirements fail validation.
	ErrInvalidInput = errors.New("invalid scheduling input")
)

// InfeasibleError reports the slot that blocked the deepest point of a failed search
type InfeasibleError struct {
	Conflicts []models.ConflictReason
}

func (e *InfeasibleError) Error() string {
	if len(e.Conflicts) == 0 {
		return ErrInfeasible.Error()
	}
	c := e.Conflicts[0]
	return fmt.Sprintf("%s: %s on %s at %d:00 (%s)",
		ErrInfeasible.Error(), c.Role, c.Day, c.Hour, strings.Join(c.Reasons, "; "))
}

// Unwrap lets errors.Is match ErrInfeasible
func (e *InfeasibleError) Unwrap() error {
	return ErrInfeasible
}

// SearchError wraps a failed search with the work it did before giving up
type SearchError struct {
	Stats models.SolveStats
	Err   error
}

func (e *SearchError) Error() string {
	return e.Err.Error()
}

func (e *SearchError) Unwrap() error {
	return e.Err
}
