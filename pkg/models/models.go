package models

import "slices"

// Days of the scheduling week, Monday first
const (
	Monday    = "Monday"
	Tuesday   = "Tuesday"
	Wednesday = "Wednesday"
	Thursday  = "Thursday"
	Friday    = "Friday"
	Saturday  = "Saturday"
	Sunday    = "Sunday"
)

// FloaterRole is the role label given to filler shifts added after solving
const FloaterRole = "Floater"

// Week lists the days in scheduling order
var Week = []string{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// HourRange is a half-open [Start, End) window of whole hours
type HourRange struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Contains reports whether hour falls inside the range
func (r HourRange) Contains(hour int) bool {
	return hour >= r.Start && hour < r.End
}

// Hours returns every hour in the range in ascending order
func (r HourRange) Hours() []int {
	if r.End <= r.Start {
		return nil
	}
	hours := make([]int, 0, r.End-r.Start)
	for h := r.Start; h < r.End; h++ {
		hours = append(hours, h)
	}
	return hours
}

// ShiftLengths bounds the duration of a single shift, inclusive on both ends
type ShiftLengths struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Employee represents a person who can be scheduled
type Employee struct {
	Name         string    `json:"name"`
	Availability HourRange `json:"availability"`
	MinHours     int       `json:"min_hours"`
	MaxHours     int       `json:"max_hours"`
	Roles        []string  `json:"roles"`
	DaysOff      []string  `json:"days_off,omitempty"`
}

// HasRole checks if the employee may be assigned the given role
func (e *Employee) HasRole(role string) bool {
	return slices.Contains(e.Roles, role)
}

// IsOff checks if the given day is one of the employee's days off
func (e *Employee) IsOff(day string) bool {
	return slices.Contains(e.DaysOff, day)
}

// EmployerRequirements holds the store-wide scheduling constraints
type EmployerRequirements struct {
	WorkHours        HourRange      `json:"work_hours" yaml:"work_hours"`
	ShiftLengths     ShiftLengths   `json:"shift_lengths" yaml:"shift_lengths"`
	CriticalMinimums map[string]int `json:"critical_minimums" yaml:"critical_minimums"`
}

// Roles returns the roles with a critical minimum in ascending lexical order.
// The solver fills roles in this order.
func (r *EmployerRequirements) Roles() []string {
	roles := make([]string, 0, len(r.CriticalMinimums))
	for role := range r.CriticalMinimums {
		roles = append(roles, role)
	}
	slices.Sort(roles)
	return roles
}

// Assignment is a single shift: one employee, one role, one contiguous block on one day
type Assignment struct {
	Employee  *Employee
	Role      string
	Day       string
	StartHour int
	Length    int
}

// EndHour returns the exclusive end of the shift
func (a Assignment) EndHour() int {
	return a.StartHour + a.Length
}

// Shortfall reports an employee left below their weekly minimum
type Shortfall struct {
	Employee      string `json:"employee"`
	MinHours      int    `json:"min_hours"`
	AssignedHours int    `json:"assigned_hours"`
	Missing       int    `json:"missing"`
}

// ConflictReason represents why a role/hour slot could not be filled
type ConflictReason struct {
	Day     string   `json:"day"`
	Hour    int      `json:"hour"`
	Role    string   `json:"role"`
	Reasons []string `json:"reasons"`
}
