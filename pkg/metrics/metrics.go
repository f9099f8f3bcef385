// Package metrics records solver outcomes for Prometheus.
package metrics

import (
	"time"

	"github.com/arnavshah/staffing-api-go/pkg/models"
)

// Recorder receives one observation per scheduling run
type Recorder interface {
	// ObserveSolve records the outcome (a models.Status* value), wall time and
	// search statistics of a run
	ObserveSolve(outcome string, elapsed time.Duration, stats models.SolveStats)

	// ObserveShortfalls records how many employees ended below their minimum
	ObserveShortfalls(n int)
}

// Nop discards every observation.
type Nop struct{}

var _ Recorder = Nop{}

// NewNop creates a no-op recorder
func NewNop() Nop {
	return Nop{}
}

// ObserveSolve discards the run.
func (Nop) ObserveSolve(_ string, _ time.Duration, _ models.SolveStats) {}

// ObserveShortfalls discards the count.
func (Nop) ObserveShortfalls(_ int) {}
