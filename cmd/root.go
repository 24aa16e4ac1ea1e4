package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/sched-sim/sched-sim/sim"
	"github.com/sched-sim/sched-sim/sim/workload"
)

var (
	// CLI flags shared by the run and compare subcommands
	scenarioPath string // Path to a YAML scenario file (overrides generation flags)
	policyName   string // Scheduling policy name
	quantum      int64  // Round-Robin time quantum (in ticks)
	logLevel     string // Log verbosity level

	// Random workload generation flags, used when no scenario file is given
	seed          int64 // Seed for random process generation
	processCount  int   // Number of processes to generate
	burstMin      int64 // Min burst time (in ticks)
	burstMax      int64 // Max burst time (in ticks)
	priorityMin   int   // Most urgent generated priority
	priorityMax   int   // Least urgent generated priority
	arrivalSpread int64 // Arrivals drawn uniformly from [0, spread]
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "sched-sim",
	Short: "Discrete-event CPU scheduling simulator",
}

// runCmd executes one simulation using parameters from CLI flags or a scenario file
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a scheduling simulation and print its report",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		scenario := resolveScenario()
		policy, err := sim.NewPolicy(scenario.Policy, scenario.Quantum)
		if err != nil {
			logrus.Fatalf("Invalid policy configuration: %v", err)
		}

		store := sim.NewSpecStore()
		for _, spec := range scenario.Specs() {
			if err := store.Register(spec); err != nil {
				logrus.Fatalf("Invalid process spec: %v", err)
			}
		}

		report, err := sim.NewEngine(store, policy).Run()
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		RenderReport(os.Stdout, report)
	},
}

// setupLogging configures logrus from the --log flag.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// resolveScenario builds the scenario from --scenario, or from the generation
// flags when no file is given.
func resolveScenario() *workload.Scenario {
	if scenarioPath != "" {
		scenario, err := workload.Load(scenarioPath)
		if err != nil {
			logrus.Fatalf("Unable to load scenario: %v", err)
		}
		return scenario
	}

	scenario := &workload.Scenario{
		Policy:  policyName,
		Quantum: quantum,
		Generate: &workload.GenerateSpec{
			Count:         processCount,
			Seed:          seed,
			BurstMin:      burstMin,
			BurstMax:      burstMax,
			PriorityMin:   priorityMin,
			PriorityMax:   priorityMax,
			ArrivalSpread: arrivalSpread,
		},
	}
	if err := scenario.Validate(); err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}
	return scenario
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	for _, cmd := range []*cobra.Command{runCmd, compareCmd} {
		cmd.Flags().StringVar(&scenarioPath, "scenario", "", "Path to a YAML scenario file")
		cmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
		cmd.Flags().Int64Var(&quantum, "quantum", 2, "Round-Robin time quantum in ticks")

		// Random workload generation
		cmd.Flags().Int64Var(&seed, "seed", 42, "Seed for random process generation")
		cmd.Flags().IntVar(&processCount, "processes", 10, "Number of processes to generate")
		cmd.Flags().Int64Var(&burstMin, "burst-min", workload.DefaultBurstMin, "Min burst time in ticks")
		cmd.Flags().Int64Var(&burstMax, "burst-max", workload.DefaultBurstMax, "Max burst time in ticks")
		cmd.Flags().IntVar(&priorityMin, "priority-min", workload.DefaultPriorityMin, "Most urgent generated priority")
		cmd.Flags().IntVar(&priorityMax, "priority-max", workload.DefaultPriorityMax, "Least urgent generated priority")
		cmd.Flags().Int64Var(&arrivalSpread, "arrival-spread", workload.DefaultArrivalSpread, "Arrivals drawn uniformly from [0, spread]")
	}
	runCmd.Flags().StringVar(&policyName, "policy", sim.PolicyFCFS, "Scheduling policy (fcfs, sjn, rr, priority, priority-preemptive)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(compareCmd)
}
