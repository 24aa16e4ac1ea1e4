// Round-Robin policy. Keeps a rotation FIFO of process IDs in the order they
// became Ready; each selection grants at most one quantum.

package sim

// RoundRobin grants the head of its rotation min(remaining, quantum) ticks.
// A process whose quantum expires is re-enqueued at the tail of the rotation,
// behind any processes that arrived during that quantum: arrivals are synced
// into the rotation (in ReadySince then ID order) before the expired process
// is appended.
type RoundRobin struct {
	Quantum int64

	rotation   []int
	inRotation map[int]bool
}

// NewRoundRobin creates a Round-Robin policy with the given quantum.
// Callers validate the quantum via NewPolicy; a non-positive value here is a
// programming error.
func NewRoundRobin(quantum int64) *RoundRobin {
	if quantum <= 0 {
		panic("RoundRobin: quantum must be > 0")
	}
	return &RoundRobin{
		Quantum:    quantum,
		inRotation: make(map[int]bool),
	}
}

func (rr *RoundRobin) Name() string { return PolicyRoundRobin }

func (rr *RoundRobin) Select(in PolicyInput) Decision {
	// Sync newly Ready processes into the rotation. The engine hands Ready
	// sorted by ReadySince then ID, so same-tick arrivals enqueue in ID order.
	for _, p := range in.Ready {
		if !rr.inRotation[p.Spec.ID] {
			rr.rotation = append(rr.rotation, p.Spec.ID)
			rr.inRotation[p.Spec.ID] = true
		}
	}

	if in.Running != nil {
		if len(rr.rotation) == 0 {
			// Nothing else is waiting; the running process gets a fresh quantum.
			return Decision{ProcessID: in.Running.Spec.ID, Allotment: min(in.Running.RemainingTime, rr.Quantum)}
		}
		// Quantum expired with others waiting: re-enqueue at the tail, behind
		// every process that arrived during the quantum.
		rr.rotation = append(rr.rotation, in.Running.Spec.ID)
		rr.inRotation[in.Running.Spec.ID] = true
	}

	if len(rr.rotation) == 0 {
		return IdleDecision()
	}

	head := rr.rotation[0]
	rr.rotation = rr.rotation[1:]
	delete(rr.inRotation, head)

	remaining := rr.remainingOf(head, in)
	return Decision{ProcessID: head, Allotment: min(remaining, rr.Quantum)}
}

// remainingOf looks up the remaining time of a rotation member. Rotation ids are
// always either Ready or the just re-enqueued running process; anything else is
// a bookkeeping defect.
func (rr *RoundRobin) remainingOf(id int, in PolicyInput) int64 {
	if in.Running != nil && in.Running.Spec.ID == id {
		return in.Running.RemainingTime
	}
	for _, p := range in.Ready {
		if p.Spec.ID == id {
			return p.RemainingTime
		}
	}
	panic("RoundRobin: rotation id not found in ready set")
}
