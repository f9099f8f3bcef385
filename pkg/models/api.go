package models

// ScheduleInput is the data structure for the scheduling endpoint
type ScheduleInput struct {
	Employees      []Employee           `json:"employees"`
	Requirements   EmployerRequirements `json:"requirements"`
	MaxSteps       int                  `json:"max_steps,omitempty"`
	TimeoutSeconds int                  `json:"timeout_seconds,omitempty"`
}

// EmployeePointers returns the input employees as pointers into the input slice
func (in *ScheduleInput) EmployeePointers() []*Employee {
	emps := make([]*Employee, len(in.Employees))
	for i := range in.Employees {
		emps[i] = &in.Employees[i]
	}
	return emps
}

// SolveStats summarises the work done by one search
type SolveStats struct {
	Nodes      int `json:"nodes"`
	Attempts   int `json:"attempts"`
	Backtracks int `json:"backtracks"`
}

// ScheduleResponse is the data structure for the scheduling result
type ScheduleResponse struct {
	RunID         string                                 `json:"run_id"`
	Status        string                                 `json:"status"`
	Schedule      map[string]map[int]map[string][]string `json:"schedule,omitempty"`
	WeeklyHours   map[string]int                         `json:"weekly_hours,omitempty"`
	Shortfalls    []Shortfall                            `json:"shortfalls,omitempty"`
	Conflicts     []ConflictReason                       `json:"conflicts,omitempty"`
	FairnessScore float64                                `json:"fairness_score"`
	Stats         SolveStats                             `json:"stats"`
	Error         string                                 `json:"error,omitempty"`
}

// Run statuses reported by the API and stored with each run
const (
	StatusScheduled      = "scheduled"
	StatusInfeasible     = "infeasible"
	StatusBudgetExceeded = "budget_exceeded"
	StatusError          = "error"
)
