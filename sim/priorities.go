// Priority policies: lower Priority value means more urgent. Both variants share
// the same selection rule and differ only in preemption behavior.

package sim

// PriorityNonPreemptive selects the Ready process with the smallest Priority
// value, ties broken by ReadySince then ID. Once dispatched a process always
// runs to completion.
type PriorityNonPreemptive struct{}

func (p *PriorityNonPreemptive) Name() string { return PolicyPriority }

func (p *PriorityNonPreemptive) Select(in PolicyInput) Decision {
	if in.Running != nil {
		return Decision{ProcessID: in.Running.Spec.ID, Allotment: in.Running.RemainingTime}
	}
	next := mostUrgent(in.Ready)
	if next == nil {
		return IdleDecision()
	}
	return Decision{ProcessID: next.Spec.ID, Allotment: next.RemainingTime}
}

// PriorityPreemptive applies the same selection rule but issues 1-tick
// allotments so the decision is re-evaluated at every tick boundary, including
// the tick a new process arrives. The running process is preempted only by a
// strictly smaller priority value; on ties it keeps the CPU.
type PriorityPreemptive struct{}

func (p *PriorityPreemptive) Name() string { return PolicyPriorityPreemptive }

func (p *PriorityPreemptive) Select(in PolicyInput) Decision {
	best := mostUrgent(in.Ready)
	if in.Running != nil {
		if best != nil && best.Spec.Priority < in.Running.Spec.Priority {
			return Decision{ProcessID: best.Spec.ID, Allotment: 1}
		}
		return Decision{ProcessID: in.Running.Spec.ID, Allotment: 1}
	}
	if best == nil {
		return IdleDecision()
	}
	return Decision{ProcessID: best.Spec.ID, Allotment: 1}
}

// mostUrgent returns the ready process with the smallest Priority value,
// ties broken by ReadySince then ID. Returns nil for an empty ready set.
func mostUrgent(ready []*Process) *Process {
	if len(ready) == 0 {
		return nil
	}
	best := ready[0]
	for _, p := range ready[1:] {
		if p.Spec.Priority != best.Spec.Priority {
			if p.Spec.Priority < best.Spec.Priority {
				best = p
			}
			continue
		}
		if earlierReady(p, best) {
			best = p
		}
	}
	return best
}
