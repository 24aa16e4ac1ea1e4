package trace

// Summary aggregates statistics from a Timeline.
type Summary struct {
	TotalSlices     int
	ContextSwitches int           // transitions between different processes
	Makespan        int64         // last End minus first Start (0 for empty timelines)
	BusyTicks       map[int]int64 // process ID → total ticks executed
	Dispatches      map[int]int   // process ID → number of recorded slices
}

// Summarize computes aggregate statistics from a Timeline.
// Safe for nil or empty timelines (returns zero-value fields).
func Summarize(tl *Timeline) *Summary {
	summary := &Summary{
		BusyTicks:  make(map[int]int64),
		Dispatches: make(map[int]int),
	}
	if tl == nil || len(tl.Slices) == 0 {
		return summary
	}

	summary.TotalSlices = len(tl.Slices)
	summary.Makespan = tl.Slices[len(tl.Slices)-1].End - tl.Slices[0].Start

	prev := -1
	for _, s := range tl.Slices {
		summary.BusyTicks[s.ProcessID] += s.Ticks()
		summary.Dispatches[s.ProcessID]++
		if prev != -1 && prev != s.ProcessID {
			summary.ContextSwitches++
		}
		prev = s.ProcessID
	}

	return summary
}
