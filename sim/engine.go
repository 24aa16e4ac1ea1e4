// sim/engine.go
package sim

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/sched-sim/sched-sim/sim/trace"
)

// Engine is the core object that holds simulation time, process state, and the
// scheduling loop. Each Engine owns its clock and process table exclusively, so
// independent simulations (e.g. one per policy under comparison) can run in
// parallel with no coordination.
type Engine struct {
	// Clock is the simulation tick counter. Created at zero, advanced only by
	// Run, never decremented.
	Clock int64

	policy    Policy
	processes []*Process // ordered by arrival time, then ID
	byID      map[int]*Process

	running    *Process
	terminated int

	busyTicks int64
	idleTicks int64

	// Timeline records every dispatch slice for Gantt-style reporting.
	Timeline *trace.Timeline
}

// NewEngine builds an engine from a sealed store and a policy. The store is
// sealed here if the caller has not done so already: no registration may happen
// once an engine holds the specs.
func NewEngine(store *SpecStore, policy Policy) *Engine {
	store.Seal()
	specs := store.All()
	processes := make([]*Process, 0, len(specs))
	byID := make(map[int]*Process, len(specs))
	for _, spec := range specs {
		p := NewProcess(spec)
		processes = append(processes, p)
		byID[spec.ID] = p
	}
	return &Engine{
		policy:    policy,
		processes: processes,
		byID:      byID,
		Timeline:  trace.NewTimeline(),
	}
}

// Run executes the simulation to completion and returns the final report.
// Deterministic: identical specs, policy, and configuration always produce an
// identical report. Panics on broken invariants (a policy or engine defect),
// never on bad input — input validation happened at registration.
func (e *Engine) Run() (*Report, error) {
	bound := e.terminationBound()
	logrus.Infof("Starting %s simulation with %d processes, termination bound %d ticks",
		e.policy.Name(), len(e.processes), bound)

	for e.terminated < len(e.processes) {
		e.promoteArrivals()

		decision := e.policy.Select(PolicyInput{
			Clock:   e.Clock,
			Ready:   e.readySet(),
			Running: e.running,
		})

		if decision.Idle {
			if e.running != nil {
				panic(fmt.Sprintf("engine: policy %s returned Idle while process %d is running",
					e.policy.Name(), e.running.Spec.ID))
			}
			e.Clock++
			e.idleTicks++
		} else {
			e.execute(decision)
		}

		// Work is strictly decreasing while the CPU is busy and idle gaps are
		// bounded by the last arrival, so this bound is always reachable.
		if e.Clock > bound {
			panic(fmt.Sprintf("engine: simulation exceeded %d ticks without terminating (policy %s)",
				bound, e.policy.Name()))
		}
	}

	logrus.Infof("[tick %07d] Simulation ended: %d processes terminated, %d busy ticks, %d idle ticks",
		e.Clock, e.terminated, e.busyTicks, e.idleTicks)
	return e.Report()
}

// Report derives the final metrics. Fails with ErrIncompleteSimulation until
// every process has terminated; once complete it is idempotent.
func (e *Engine) Report() (*Report, error) {
	return ComputeReport(e.policy.Name(), e.processes, e.busyTicks, e.idleTicks, e.Timeline)
}

// execute dispatches the decision and runs it for its full allotment,
// advancing the clock one tick at a time so arrivals are promoted at every
// tick boundary.
func (e *Engine) execute(d Decision) {
	target, ok := e.byID[d.ProcessID]
	if !ok {
		panic(fmt.Sprintf("engine: policy %s selected unknown process %d", e.policy.Name(), d.ProcessID))
	}
	if target.State != StateReady && target.State != StateRunning {
		panic(fmt.Sprintf("engine: policy %s selected process %d in state %s",
			e.policy.Name(), d.ProcessID, target.State))
	}
	if d.Allotment <= 0 || d.Allotment > target.RemainingTime {
		panic(fmt.Sprintf("engine: allotment %d out of range for process %d with %d remaining",
			d.Allotment, d.ProcessID, target.RemainingTime))
	}

	if e.running != nil && e.running != target {
		// Preemption: the incumbent goes back to Ready and re-accrues waiting
		// time from the current tick.
		logrus.Debugf("[tick %07d] Preempting process %d (%d ticks remaining) for process %d",
			e.Clock, e.running.Spec.ID, e.running.RemainingTime, target.Spec.ID)
		e.running.State = StateReady
		e.running.ReadySince = e.Clock
		e.running = nil
	}

	if e.running != target {
		target.State = StateRunning
		if !target.FirstRunSet {
			target.FirstRunSet = true
			target.FirstRunTime = e.Clock
		}
		e.running = target
		logrus.Debugf("[tick %07d] Dispatching process %d for %d ticks", e.Clock, target.Spec.ID, d.Allotment)
	}

	start := e.Clock
	for i := int64(0); i < d.Allotment; i++ {
		e.Clock++
		e.busyTicks++
		target.RemainingTime--
		e.promoteArrivals()
	}
	e.Timeline.Record(trace.Slice{ProcessID: target.Spec.ID, Start: start, End: e.Clock})

	if target.RemainingTime == 0 {
		target.State = StateTerminated
		target.CompletionTime = e.Clock
		e.terminated++
		e.running = nil
		logrus.Infof("[tick %07d] Process %d terminated (turnaround %d ticks)",
			e.Clock, target.Spec.ID, e.Clock-target.Spec.ArrivalTime)
	}
	// A process left Running with work outstanding stays dispatched; the next
	// decision either continues it, preempts it, or (Round-Robin) rotates it
	// back into the ready queue.
}

// promoteArrivals moves every New process whose arrival tick has been reached
// into Ready. The clock only ever advances one tick at a time, so promotion
// always happens exactly at the arrival tick and ReadySince equals ArrivalTime
// on first promotion.
func (e *Engine) promoteArrivals() {
	for _, p := range e.processes {
		if p.State == StateNew && p.Spec.ArrivalTime <= e.Clock {
			p.State = StateReady
			p.ReadySince = e.Clock
			logrus.Debugf("[tick %07d] Process %d arrived (burst %d, priority %d)",
				e.Clock, p.Spec.ID, p.Spec.BurstTime, p.Spec.Priority)
		}
	}
}

// readySet returns the Ready processes sorted by ReadySince then ID. The
// processes slice is already in (arrival, ID) order and ReadySince is assigned
// in promotion order, so a stable filter preserves the required ordering for
// same-tick arrivals; a preempted process re-enters Ready with a later
// ReadySince and is reordered by the policies' own tie-breaks.
func (e *Engine) readySet() []*Process {
	ready := make([]*Process, 0, len(e.processes))
	for _, p := range e.processes {
		if p.State == StateReady {
			ready = append(ready, p)
		}
	}
	// Re-sort by (ReadySince, ID): preemption can hand a process a ReadySince
	// later than processes that arrived after it.
	sort.SliceStable(ready, func(i, j int) bool {
		return earlierReady(ready[i], ready[j])
	})
	return ready
}

// terminationBound is the tick count the simulation can never legitimately
// exceed: all work plus the longest possible leading idle gap.
func (e *Engine) terminationBound() int64 {
	var totalBurst, maxArrival int64
	for _, p := range e.processes {
		totalBurst += p.Spec.BurstTime
		if p.Spec.ArrivalTime > maxArrival {
			maxArrival = p.Spec.ArrivalTime
		}
	}
	return totalBurst + maxArrival
}
