package trace

import "fmt"

// Timeline collects the dispatch slices of one simulation run, in execution
// order. It is the Gantt-chart raw material consumed by reporting layers.
type Timeline struct {
	Slices []Slice
}

// NewTimeline creates a Timeline ready for recording.
func NewTimeline() *Timeline {
	return &Timeline{Slices: make([]Slice, 0)}
}

// Record appends a dispatch slice. A slice that continues the previous one for
// the same process (Start == previous End) is merged, so a process running
// several back-to-back allotments shows as a single stretch.
func (tl *Timeline) Record(s Slice) {
	if s.End < s.Start {
		panic(fmt.Sprintf("trace: slice ends at %d before it starts at %d", s.End, s.Start))
	}
	if s.End == s.Start {
		return
	}
	if n := len(tl.Slices); n > 0 {
		last := &tl.Slices[n-1]
		if last.ProcessID == s.ProcessID && last.End == s.Start {
			last.End = s.End
			return
		}
	}
	tl.Slices = append(tl.Slices, s)
}

// Len returns the number of recorded (merged) slices.
func (tl *Timeline) Len() int {
	return len(tl.Slices)
}
