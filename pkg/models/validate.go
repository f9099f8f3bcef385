package models

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidRecord is wrapped by every validation failure
var ErrInvalidRecord = errors.New("invalid record")

// Validate checks an employee record is well formed
func (e *Employee) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("%w: employee name is required", ErrInvalidRecord)
	}
	if e.Availability.Start < 0 || e.Availability.End > 24 || e.Availability.Start >= e.Availability.End {
		return fmt.Errorf("%w: employee %s: availability %d-%d is not a valid hour range",
			ErrInvalidRecord, e.Name, e.Availability.Start, e.Availability.End)
	}
	if e.MinHours < 0 || e.MaxHours < e.MinHours {
		return fmt.Errorf("%w: employee %s: min hours %d must be between 0 and max hours %d",
			ErrInvalidRecord, e.Name, e.MinHours, e.MaxHours)
	}
	if len(e.Roles) == 0 {
		return fmt.Errorf("%w: employee %s: at least one role is required", ErrInvalidRecord, e.Name)
	}
	for _, r := range e.Roles {
		if strings.TrimSpace(r) == "" {
			return fmt.Errorf("%w: employee %s: empty role label", ErrInvalidRecord, e.Name)
		}
	}
	for _, d := range e.DaysOff {
		if !slices.Contains(Week, d) {
			return fmt.Errorf("%w: employee %s: unknown day off %q", ErrInvalidRecord, e.Name, d)
		}
	}
	return nil
}

// Validate checks the employer requirements are usable by the solver
func (r *EmployerRequirements) Validate() error {
	if r.WorkHours.Start < 0 || r.WorkHours.End > 24 || r.WorkHours.Start >= r.WorkHours.End {
		return fmt.Errorf("%w: work hours %d-%d are not a valid hour range",
			ErrInvalidRecord, r.WorkHours.Start, r.WorkHours.End)
	}
	if r.ShiftLengths.Min <= 0 || r.ShiftLengths.Min > r.ShiftLengths.Max {
		return fmt.Errorf("%w: shift lengths %d-%d are not a valid range",
			ErrInvalidRecord, r.ShiftLengths.Min, r.ShiftLengths.Max)
	}
	if len(r.CriticalMinimums) == 0 {
		return fmt.Errorf("%w: at least one critical minimum is required", ErrInvalidRecord)
	}
	for role, n := range r.CriticalMinimums {
		if strings.TrimSpace(role) == "" {
			return fmt.Errorf("%w: critical minimum with empty role label", ErrInvalidRecord)
		}
		if n < 0 {
			return fmt.Errorf("%w: critical minimum for %s is negative", ErrInvalidRecord, role)
		}
	}
	return nil
}

// ValidateEmployees validates every record and checks names are unique
func ValidateEmployees(employees []*Employee) error {
	seen := make(map[string]bool, len(employees))
	for _, e := range employees {
		if err := e.Validate(); err != nil {
			return err
		}
		if seen[e.Name] {
			return fmt.Errorf("%w: duplicate employee name %s", ErrInvalidRecord, e.Name)
		}
		seen[e.Name] = true
	}
	return nil
}
