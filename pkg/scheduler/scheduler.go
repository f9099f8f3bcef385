package scheduler

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/arnavshah/staffing-api-go/pkg/models"
)

// Options tunes a single solve
type Options struct {
	// MaxSteps caps the number of search nodes; zero means unlimited
	MaxSteps int

	// Logger receives debug traces and shortfall warnings; nil uses slog.Default
	Logger *slog.Logger
}

// Scheduler owns the schedule and aggregates for one backtracking search
type Scheduler struct {
	Employees  []*models.Employee
	Reqs       *models.EmployerRequirements
	Schedule   models.ShiftSchedule
	Aggregates *models.Aggregates
	Conflicts  []models.ConflictReason
	Stats      models.SolveStats

	roles  []string
	opts   Options
	logger *slog.Logger

	// exhaustive turns off coverage pruning
	exhaustive bool

	ctx      context.Context
	stopErr  error
	deepest  *slotFailure
	conflict models.ConflictReason
}

// slotFailure remembers the furthest slot the search could not fill
type slotFailure struct {
	dayIndex int
	hour     int
	role     string
}

func (f *slotFailure) after(other *slotFailure) bool {
	if other == nil {
		return true
	}
	if f.dayIndex != other.dayIndex {
		return f.dayIndex > other.dayIndex
	}
	return f.hour > other.hour
}

// NewScheduler creates a new scheduler instance with an empty schedule
func NewScheduler(employees []*models.Employee, reqs *models.EmployerRequirements, opts Options) *Scheduler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		Employees:  employees,
		Reqs:       reqs,
		Schedule:   models.NewShiftSchedule(reqs.WorkHours),
		Aggregates: models.NewAggregates(employees),
		roles:      reqs.Roles(),
		opts:       opts,
		logger:     logger,
	}
}

// Solve runs the backtracking search until every hour of every day meets its
// critical minimums. On failure the schedule is left empty and the error is
// an *InfeasibleError or wraps ErrBudgetExceeded.
func (s *Scheduler) Solve(ctx context.Context) error {
	if err := s.Reqs.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := models.ValidateEmployees(s.Employees); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	s.ctx = ctx
	s.stopErr = nil
	s.deepest = nil
	s.Conflicts = nil
	s.Stats = models.SolveStats{}

	if s.solveDay(0) {
		s.logger.Debug("schedule complete",
			"nodes", s.Stats.Nodes, "backtracks", s.Stats.Backtracks)
		return nil
	}
	if s.stopErr != nil {
		return s.stopErr
	}
	if s.deepest != nil {
		s.Conflicts = []models.ConflictReason{s.conflict}
	}
	return &InfeasibleError{Conflicts: s.Conflicts}
}

// enter counts a search node and reports whether the budget allows it
func (s *Scheduler) enter() bool {
	s.Stats.Nodes++
	if s.stopErr != nil {
		return false
	}
	if s.opts.MaxSteps > 0 && s.Stats.Nodes > s.opts.MaxSteps {
		s.stopErr = fmt.Errorf("%w: step limit %d reached", ErrBudgetExceeded, s.opts.MaxSteps)
		return false
	}
	if err := s.ctx.Err(); err != nil {
		s.stopErr = fmt.Errorf("%w: %w", ErrBudgetExceeded, err)
		return false
	}
	return true
}

func (s *Scheduler) solveDay(dayIndex int) bool {
	if !s.enter() {
		return false
	}

	if dayIndex == len(models.Week) {
		// a later day's backtracking can reach back here, so check every day again
		for _, day := range models.Week {
			if !MeetsCriticalMinimumsForDay(s.Schedule, s.Reqs, day) {
				return false
			}
		}
		return true
	}

	day := models.Week[dayIndex]
	hour, role, open := s.nextOpenSlot(day)
	if !open {
		if !MeetsCriticalMinimumsForDay(s.Schedule, s.Reqs, day) {
			return false
		}
		s.logger.Debug("day fully scheduled", "day", day)
		return s.solveDay(dayIndex + 1)
	}

	if !s.exhaustive {
		if blockedHour, blockedRole, ok := s.coverable(day, hour); !ok {
			s.recordFailure(dayIndex, blockedHour, blockedRole)
			return false
		}
	}

	for _, emp := range s.eligible(day, hour, role) {
		for _, length := range s.lengths(emp, hour) {
			s.Stats.Attempts++
			if !IsValidAssignment(emp, role, day, hour, length, s.Aggregates, s.Reqs) {
				continue
			}
			a := models.Assignment{Employee: emp, Role: role, Day: day, StartHour: hour, Length: length}
			UpdateSchedule(s.Schedule, s.Aggregates, a)
			s.logger.Debug("assigned shift",
				"employee", emp.Name, "role", role, "day", day, "start", hour, "length", length)

			if s.solveDay(dayIndex) {
				return true
			}

			RemoveAssignment(s.Schedule, s.Aggregates, a)
			s.Stats.Backtracks++
			s.logger.Debug("backtracking",
				"employee", emp.Name, "role", role, "day", day, "start", hour)
			if s.stopErr != nil {
				return false
			}
		}
	}

	s.recordFailure(dayIndex, hour, role)
	return false
}

// nextOpenSlot finds the earliest hour, then first role in lexical order,
// still below its critical minimum
func (s *Scheduler) nextOpenSlot(day string) (int, string, bool) {
	for _, hour := range s.Schedule.SortedHours(day) {
		for _, role := range s.roles {
			if s.Schedule.AssignedCount(day, hour, role) < s.Reqs.CriticalMinimums[role] {
				return hour, role, true
			}
		}
	}
	return 0, "", false
}

// eligible lists employees who could start a role shift at hour, ordered by
// ascending weekly hours then name
func (s *Scheduler) eligible(day string, hour int, role string) []*models.Employee {
	var out []*models.Employee
	for _, e := range s.Employees {
		if !e.HasRole(role) || e.IsOff(day) || s.Aggregates.WorkedOn(e.Name, day) {
			continue
		}
		if e.Availability.Start > hour {
			continue
		}
		out = append(out, e)
	}
	slices.SortStableFunc(out, func(a, b *models.Employee) int {
		return cmp.Or(
			cmp.Compare(s.Aggregates.WeeklyHours[a.Name], s.Aggregates.WeeklyHours[b.Name]),
			strings.Compare(a.Name, b.Name),
		)
	})
	return out
}

// lengths returns candidate shift lengths shortest first, capped by store
// close and the employee's availability end
func (s *Scheduler) lengths(e *models.Employee, hour int) []int {
	longest := min(s.Reqs.ShiftLengths.Max, s.Reqs.WorkHours.End-hour, e.Availability.End-hour)
	var out []int
	for l := s.Reqs.ShiftLengths.Min; l <= longest; l++ {
		out = append(out, l)
	}
	return out
}

// coverable checks that every hour from fromHour on can still reach each
// role's minimum with employees not yet scheduled that day. It only rules out
// branches that cannot succeed.
//
// New shifts on day start no earlier than fromHour, so an employee can still
// cover hour when some shift of at least the minimum length starts in
// [max(fromHour, availability start, hour-Max+1), hour] and ends by both
// closing and the employee's availability end. Starting as early as allowed
// is the best case.
func (s *Scheduler) coverable(day string, fromHour int) (int, string, bool) {
	shortest, longest := s.Reqs.ShiftLengths.Min, s.Reqs.ShiftLengths.Max
	for _, hour := range s.Schedule.SortedHours(day) {
		if hour < fromHour {
			continue
		}
		for _, role := range s.roles {
			need := s.Reqs.CriticalMinimums[role] - s.Schedule.AssignedCount(day, hour, role)
			if need <= 0 {
				continue
			}
			for _, e := range s.Employees {
				if need <= 0 {
					break
				}
				if !e.HasRole(role) || e.IsOff(day) || s.Aggregates.WorkedOn(e.Name, day) {
					continue
				}
				if !e.Availability.Contains(hour) {
					continue
				}
				start := max(fromHour, e.Availability.Start, hour-longest+1)
				end := min(s.Reqs.WorkHours.End, e.Availability.End)
				if start > hour || max(start+shortest, hour+1) > end {
					continue
				}
				if s.Aggregates.WeeklyHours[e.Name]+shortest > e.MaxHours {
					continue
				}
				need--
			}
			if need > 0 {
				return hour, role, false
			}
		}
	}
	return 0, "", true
}

func (s *Scheduler) recordFailure(dayIndex, hour int, role string) {
	f := &slotFailure{dayIndex: dayIndex, hour: hour, role: role}
	if f.after(s.deepest) {
		s.deepest = f
		s.conflict = s.explain(f)
	}
}

// explain counts why the role holders could not take the blocking slot, using
// the aggregates as they stand when the slot fails
func (s *Scheduler) explain(f *slotFailure) models.ConflictReason {
	day := models.Week[f.dayIndex]
	counts := make(map[Rejection]int)
	holders := 0
	for _, e := range s.Employees {
		if !e.HasRole(f.role) {
			continue
		}
		holders++
		counts[CheckAssignment(e, f.role, day, f.hour, s.Reqs.ShiftLengths.Min, s.Aggregates, s.Reqs)]++
	}

	var reasons []string
	if holders == 0 {
		reasons = append(reasons, "no employees hold this role")
	}
	if n := counts[RejectMaxHours]; n > 0 {
		reasons = append(reasons, fmt.Sprintf("%d employees were at max hours", n))
	}
	if n := counts[RejectAlreadyWorked]; n > 0 {
		reasons = append(reasons, fmt.Sprintf("%d employees were already scheduled that day", n))
	}
	if n := counts[RejectDayOff]; n > 0 {
		reasons = append(reasons, fmt.Sprintf("%d employees had the day off", n))
	}
	if n := counts[RejectOutsideHours]; n > 0 {
		reasons = append(reasons, fmt.Sprintf("%d employees were unavailable at this hour", n))
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "not enough employees to cover the role every hour")
	}
	return models.ConflictReason{Day: day, Hour: f.hour, Role: f.role, Reasons: reasons}
}
