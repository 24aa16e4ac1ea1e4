// Package trace provides dispatch-timeline recording for scheduling analysis.
// This package has no dependencies on sim/ — it stores pure data types.
package trace

// Slice captures one contiguous stretch of CPU time granted to a process:
// the process ran from tick Start (inclusive) to tick End (exclusive).
type Slice struct {
	ProcessID int
	Start     int64
	End       int64
}

// Ticks returns the duration of the slice.
func (s Slice) Ticks() int64 {
	return s.End - s.Start
}
