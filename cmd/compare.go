package cmd

import (
	"fmt"
	"os"
	"sync"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/sched-sim/sched-sim/sim"
)

// compareCmd runs every policy against the same workload and prints a
// side-by-side summary. Each policy gets its own engine instance with its own
// copy of the specs, so the runs execute in parallel without coordination.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run every policy on the same workload and compare aggregates",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		scenario := resolveScenario()
		specs := scenario.Specs()

		// A scenario written for a non-quantum policy may omit the quantum;
		// fall back to the flag so Round-Robin can still participate.
		rrQuantum := scenario.Quantum
		if rrQuantum <= 0 {
			rrQuantum = quantum
		}

		names := sim.PolicyNames()
		reports := make([]*sim.Report, len(names))
		var wg sync.WaitGroup
		for i, name := range names {
			policy, err := sim.NewPolicy(name, rrQuantum)
			if err != nil {
				logrus.Fatalf("Invalid policy configuration: %v", err)
			}
			store := sim.NewSpecStore()
			for _, spec := range specs {
				if err := store.Register(spec); err != nil {
					logrus.Fatalf("Invalid process spec: %v", err)
				}
			}

			wg.Add(1)
			go func(i int, policy sim.Policy, store *sim.SpecStore) {
				defer wg.Done()
				report, err := sim.NewEngine(store, policy).Run()
				if err != nil {
					logrus.Fatalf("Simulation failed: %v", err)
				}
				reports[i] = report
			}(i, policy, store)
		}
		wg.Wait()

		renderComparison(reports)
	},
}

func renderComparison(reports []*sim.Report) {
	fmt.Println("Policy comparison")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Policy", "Avg Wait", "Avg Turnaround", "Avg Response", "CPU Util", "Throughput", "Total Ticks"})
	for _, r := range reports {
		table.Append([]string{
			r.Policy,
			fmt.Sprintf("%.2f", r.AvgWaitingTime),
			fmt.Sprintf("%.2f", r.AvgTurnaroundTime),
			fmt.Sprintf("%.2f", r.AvgResponseTime),
			fmt.Sprintf("%.2f%%", r.CPUUtilization*100),
			fmt.Sprintf("%.3f/t", r.Throughput),
			fmt.Sprint(r.TotalTicks),
		})
	}
	table.Render()
}
