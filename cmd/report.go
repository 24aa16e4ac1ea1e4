package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	sim "github.com/sched-sim/sched-sim/sim"
)

// RenderReport writes a simulation report as a Gantt line plus a per-process
// timing table with average footers.
func RenderReport(w io.Writer, r *sim.Report) {
	title := fmt.Sprintf("Policy: %s", r.Policy)
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
	_, _ = fmt.Fprintln(w, strings.Repeat(" ", len(title)/2), title)
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))

	renderGantt(w, r)
	renderSchedule(w, r)

	_, _ = fmt.Fprintf(w, "CPU utilization: %.2f%% (%d busy / %d idle / %d total ticks)\n\n",
		r.CPUUtilization*100, r.BusyTicks, r.IdleTicks, r.TotalTicks)
}

func renderGantt(w io.Writer, r *sim.Report) {
	if len(r.Timeline) == 0 {
		return
	}
	_, _ = fmt.Fprintln(w, "Gantt schedule")
	_, _ = fmt.Fprint(w, "|")
	for _, s := range r.Timeline {
		pid := fmt.Sprint(s.ProcessID)
		padding := strings.Repeat(" ", (8-len(pid))/2)
		_, _ = fmt.Fprint(w, padding, pid, padding, "|")
	}
	_, _ = fmt.Fprintln(w)
	for i, s := range r.Timeline {
		_, _ = fmt.Fprint(w, s.Start, "\t")
		if i == len(r.Timeline)-1 {
			_, _ = fmt.Fprint(w, s.End)
		}
	}
	_, _ = fmt.Fprintf(w, "\n\n")
}

func renderSchedule(w io.Writer, r *sim.Report) {
	_, _ = fmt.Fprintln(w, "Schedule table")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Priority", "Burst", "Arrival", "Wait", "Turnaround", "Response", "Exit"})
	for _, p := range r.Processes {
		table.Append([]string{
			fmt.Sprint(p.ID),
			fmt.Sprint(p.Priority),
			fmt.Sprint(p.BurstTime),
			fmt.Sprint(p.ArrivalTime),
			fmt.Sprint(p.WaitingTime),
			fmt.Sprint(p.TurnaroundTime),
			fmt.Sprint(p.ResponseTime),
			fmt.Sprint(p.CompletionTime),
		})
	}
	table.SetFooter([]string{"", "", "", "",
		fmt.Sprintf("Average\n%.2f", r.AvgWaitingTime),
		fmt.Sprintf("Average\n%.2f", r.AvgTurnaroundTime),
		fmt.Sprintf("Average\n%.2f", r.AvgResponseTime),
		fmt.Sprintf("Throughput\n%.3f/t", r.Throughput)})
	table.Render()
	_, _ = fmt.Fprintln(w)
}
