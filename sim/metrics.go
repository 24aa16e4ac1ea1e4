// Derives per-process and aggregate performance metrics from the timestamps the
// engine recorded. Operates only on fully terminated simulations.

package sim

import (
	"fmt"
	"sort"

	"github.com/sched-sim/sched-sim/sim/trace"
)

// ProcessMetrics holds the derived timing metrics of one terminated process.
type ProcessMetrics struct {
	ID          int
	ArrivalTime int64
	BurstTime   int64
	Priority    int

	CompletionTime int64
	TurnaroundTime int64 // CompletionTime - ArrivalTime
	WaitingTime    int64 // TurnaroundTime - BurstTime
	ResponseTime   int64 // FirstRunTime - ArrivalTime
}

// Report is the read-only result of one simulation run, handed to reporting
// layers for rendering. All derived values are non-negative by construction.
type Report struct {
	Policy    string
	Processes []ProcessMetrics // ordered by ID

	AvgWaitingTime    float64
	AvgTurnaroundTime float64
	AvgResponseTime   float64

	CPUUtilization float64 // busy ticks / total ticks
	Throughput     float64 // completed processes / total ticks

	TotalTicks int64
	BusyTicks  int64
	IdleTicks  int64

	Timeline []trace.Slice
}

// ComputeReport derives the report for a set of processes. Fails with
// ErrIncompleteSimulation if any process has not terminated. Pure function of
// the completed state: calling it twice yields identical output.
func ComputeReport(policy string, processes []*Process, busyTicks, idleTicks int64, tl *trace.Timeline) (*Report, error) {
	for _, p := range processes {
		if !p.Terminated() {
			return nil, fmt.Errorf("%w: process %d is still %s", ErrIncompleteSimulation, p.Spec.ID, p.State)
		}
	}

	report := &Report{
		Policy:     policy,
		Processes:  make([]ProcessMetrics, 0, len(processes)),
		TotalTicks: busyTicks + idleTicks,
		BusyTicks:  busyTicks,
		IdleTicks:  idleTicks,
	}
	if tl != nil {
		report.Timeline = append(report.Timeline, tl.Slices...)
	}

	var waitSum, turnaroundSum, responseSum int64
	for _, p := range processes {
		turnaround := p.CompletionTime - p.Spec.ArrivalTime
		m := ProcessMetrics{
			ID:             p.Spec.ID,
			ArrivalTime:    p.Spec.ArrivalTime,
			BurstTime:      p.Spec.BurstTime,
			Priority:       p.Spec.Priority,
			CompletionTime: p.CompletionTime,
			TurnaroundTime: turnaround,
			WaitingTime:    turnaround - p.Spec.BurstTime,
			ResponseTime:   p.FirstRunTime - p.Spec.ArrivalTime,
		}
		waitSum += m.WaitingTime
		turnaroundSum += m.TurnaroundTime
		responseSum += m.ResponseTime
		report.Processes = append(report.Processes, m)
	}
	sort.Slice(report.Processes, func(i, j int) bool {
		return report.Processes[i].ID < report.Processes[j].ID
	})

	// Zero processes or a zero-length run leave every aggregate at zero rather
	// than dividing by zero.
	if n := len(processes); n > 0 {
		report.AvgWaitingTime = float64(waitSum) / float64(n)
		report.AvgTurnaroundTime = float64(turnaroundSum) / float64(n)
		report.AvgResponseTime = float64(responseSum) / float64(n)
	}
	if report.TotalTicks > 0 {
		report.CPUUtilization = float64(busyTicks) / float64(report.TotalTicks)
		report.Throughput = float64(len(processes)) / float64(report.TotalTicks)
	}

	return report, nil
}
