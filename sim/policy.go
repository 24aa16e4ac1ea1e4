package sim

import (
	"fmt"
	"sort"
)

// Policy names accepted by NewPolicy and the CLI.
const (
	PolicyFCFS               = "fcfs"
	PolicySJN                = "sjn"
	PolicyRoundRobin         = "rr"
	PolicyPriority           = "priority"
	PolicyPriorityPreemptive = "priority-preemptive"
)

// validPolicies maps accepted policy name strings.
var validPolicies = map[string]bool{
	PolicyFCFS:               true,
	PolicySJN:                true,
	PolicyRoundRobin:         true,
	PolicyPriority:           true,
	PolicyPriorityPreemptive: true,
}

// IsValidPolicy returns true if the given name is a recognized policy.
func IsValidPolicy(name string) bool {
	return validPolicies[name]
}

// PolicyNames returns the accepted policy names in stable order.
func PolicyNames() []string {
	names := make([]string, 0, len(validPolicies))
	for name := range validPolicies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PolicyInput is the snapshot a policy decides from. The engine owns all state;
// policies only read the input and return a Decision.
type PolicyInput struct {
	Clock int64 // Current simulation tick

	// Ready holds the processes in the Ready state, sorted by ReadySince then ID.
	// Policies MUST NOT mutate the processes or reorder the slice.
	Ready []*Process

	// Running is the process currently holding the CPU, or nil. Non-preemptive
	// policies always see nil here because a dispatched process runs to completion
	// within a single allotment.
	Running *Process
}

// Decision is a policy's selected unit of work: run ProcessID for Allotment ticks.
// Idle means no process is runnable and the engine should advance one idle tick.
type Decision struct {
	ProcessID int
	Allotment int64
	Idle      bool
}

// IdleDecision is returned when the ready set is empty and nothing is running.
func IdleDecision() Decision {
	return Decision{Idle: true}
}

// Policy selects the next unit of work given the current clock, ready set, and
// running process. Implementations keep at most rotation-order state (Round-Robin)
// and never touch the clock or engine state directly, which keeps them
// independently testable with synthetic ready sets.
type Policy interface {
	Name() string
	Select(in PolicyInput) Decision
}

// NewPolicy creates a Policy by name. The quantum is only read by Round-Robin;
// other policies ignore it. Fails with ErrUnknownPolicy or, for Round-Robin with
// quantum <= 0, ErrInvalidQuantum — both before any simulation tick occurs.
func NewPolicy(name string, quantum int64) (Policy, error) {
	switch name {
	case PolicyFCFS:
		return &FCFS{}, nil
	case PolicySJN:
		return &SJN{}, nil
	case PolicyRoundRobin:
		if quantum <= 0 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidQuantum, quantum)
		}
		return NewRoundRobin(quantum), nil
	case PolicyPriority:
		return &PriorityNonPreemptive{}, nil
	case PolicyPriorityPreemptive:
		return &PriorityPreemptive{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

// FCFS selects the Ready process with the earliest ReadySince, ties broken by
// ascending ID. Non-preemptive: the selected process runs to completion.
type FCFS struct{}

func (f *FCFS) Name() string { return PolicyFCFS }

func (f *FCFS) Select(in PolicyInput) Decision {
	if in.Running != nil {
		return Decision{ProcessID: in.Running.Spec.ID, Allotment: in.Running.RemainingTime}
	}
	if len(in.Ready) == 0 {
		return IdleDecision()
	}
	next := in.Ready[0]
	for _, p := range in.Ready[1:] {
		if earlierReady(p, next) {
			next = p
		}
	}
	return Decision{ProcessID: next.Spec.ID, Allotment: next.RemainingTime}
}

// SJN selects the Ready process with the smallest RemainingTime, ties broken by
// ReadySince then ID. Non-preemptive.
// Warning: SJN can starve long processes under a steady supply of short ones.
type SJN struct{}

func (s *SJN) Name() string { return PolicySJN }

func (s *SJN) Select(in PolicyInput) Decision {
	if in.Running != nil {
		return Decision{ProcessID: in.Running.Spec.ID, Allotment: in.Running.RemainingTime}
	}
	if len(in.Ready) == 0 {
		return IdleDecision()
	}
	next := in.Ready[0]
	for _, p := range in.Ready[1:] {
		if p.RemainingTime != next.RemainingTime {
			if p.RemainingTime < next.RemainingTime {
				next = p
			}
			continue
		}
		if earlierReady(p, next) {
			next = p
		}
	}
	return Decision{ProcessID: next.Spec.ID, Allotment: next.RemainingTime}
}

// earlierReady orders processes by ReadySince, then ID.
func earlierReady(a, b *Process) bool {
	if a.ReadySince != b.ReadySince {
		return a.ReadySince < b.ReadySince
	}
	return a.Spec.ID < b.Spec.ID
}
