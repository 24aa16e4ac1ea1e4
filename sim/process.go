// Defines the ProcessSpec and Process types that model a synthetic process in the
// simulation. Tracks arrival, burst, priority, remaining work, and the timestamps
// the metrics layer derives waiting/turnaround/response times from.

package sim

import (
	"fmt"
)

// ProcessState represents the lifecycle state of a process.
type ProcessState string

const (
	StateNew        ProcessState = "new"
	StateReady      ProcessState = "ready"
	StateRunning    ProcessState = "running"
	StateTerminated ProcessState = "terminated"
)

// ProcessSpec holds the immutable input attributes of a process.
// Specs are registered once during setup and never mutated afterwards.
type ProcessSpec struct {
	ID          int   // Unique identifier for the process
	ArrivalTime int64 // Tick at which the process enters the system (>= 0)
	BurstTime   int64 // Total CPU ticks required to complete (> 0)
	Priority    int   // Scheduling priority, lower value = more urgent.
	// Only meaningful for the priority policies; other
	// policies ignore it.
}

// Process is the mutable runtime record for one ProcessSpec.
// The engine owns all state transitions; policies only read these fields.
type Process struct {
	Spec ProcessSpec

	RemainingTime int64        // Ticks left to execute; starts at BurstTime, never increases
	State         ProcessState // new, ready, running, terminated

	FirstRunSet    bool  // Tracks whether FirstRunTime has been recorded
	FirstRunTime   int64 // Tick of first dispatch (response-time metric)
	CompletionTime int64 // Tick at which RemainingTime reached 0
	ReadySince     int64 // Tick at which the process last entered Ready
}

// NewProcess creates the runtime record for a spec, in the New state with the
// full burst outstanding.
func NewProcess(spec ProcessSpec) *Process {
	return &Process{
		Spec:          spec,
		RemainingTime: spec.BurstTime,
		State:         StateNew,
	}
}

// Terminated reports whether the process has finished all of its work.
func (p *Process) Terminated() bool {
	return p.State == StateTerminated
}

// This method returns a human-readable string representation of a Process.
func (p *Process) String() string {
	return fmt.Sprintf("Process: (ID: %d, State: %s, Remaining: %d, ArrivalTime: %d)",
		p.Spec.ID, p.State, p.RemainingTime, p.Spec.ArrivalTime)
}
