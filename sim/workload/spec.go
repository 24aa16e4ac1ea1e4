// Package workload loads and generates the process populations a simulation
// runs against. Scenarios come from YAML files (explicit process lists, a
// random generation block, or both); generation is deterministic per seed.
package workload

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/sched-sim/sched-sim/sim"
)

// Scenario is the top-level simulation configuration.
// Loaded from YAML via Load(path).
type Scenario struct {
	Policy    string         `yaml:"policy"`
	Quantum   int64          `yaml:"quantum,omitempty"` // Round-Robin only
	Processes []ProcessEntry `yaml:"processes,omitempty"`
	Generate  *GenerateSpec  `yaml:"generate,omitempty"`
}

// ProcessEntry is one explicitly listed process.
type ProcessEntry struct {
	ID       int   `yaml:"id"`
	Arrival  int64 `yaml:"arrival"`
	Burst    int64 `yaml:"burst"`
	Priority int   `yaml:"priority,omitempty"`
}

// GenerateSpec configures random process generation, appended after any
// explicit entries. Zero-valued fields fall back to the defaults below.
type GenerateSpec struct {
	Count         int   `yaml:"count"`
	Seed          int64 `yaml:"seed,omitempty"`
	BurstMin      int64 `yaml:"burst_min,omitempty"`
	BurstMax      int64 `yaml:"burst_max,omitempty"`
	PriorityMin   int   `yaml:"priority_min,omitempty"`
	PriorityMax   int   `yaml:"priority_max,omitempty"`
	ArrivalSpread int64 `yaml:"arrival_spread,omitempty"` // arrivals drawn uniformly from [0, spread]
}

// Generation defaults: bursts of 1..10 ticks, priorities 1..10, arrivals
// spread over 20 ticks.
const (
	DefaultBurstMin      = 1
	DefaultBurstMax      = 10
	DefaultPriorityMin   = 1
	DefaultPriorityMax   = 10
	DefaultArrivalSpread = 20
)

// Load reads and validates a Scenario from a YAML file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	logrus.Debugf("Loaded scenario from %s: policy=%s, %d explicit processes",
		path, scenario.Policy, len(scenario.Processes))
	return &scenario, nil
}

// Validate checks the scenario before any simulation setup happens.
func (s *Scenario) Validate() error {
	if !sim.IsValidPolicy(s.Policy) {
		return fmt.Errorf("%w: %q (valid: %v)", sim.ErrUnknownPolicy, s.Policy, sim.PolicyNames())
	}
	if s.Policy == sim.PolicyRoundRobin && s.Quantum <= 0 {
		return fmt.Errorf("%w: %d", sim.ErrInvalidQuantum, s.Quantum)
	}
	if len(s.Processes) == 0 && s.Generate == nil {
		return fmt.Errorf("scenario defines no processes and no generate block")
	}
	if s.Generate != nil {
		if err := s.Generate.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (g *GenerateSpec) validate() error {
	withDefaults := g.withDefaults()
	if g.Count <= 0 {
		return fmt.Errorf("generate: count must be > 0, got %d", g.Count)
	}
	if withDefaults.BurstMin <= 0 || withDefaults.BurstMin > withDefaults.BurstMax {
		return fmt.Errorf("generate: burst range [%d, %d] is invalid", withDefaults.BurstMin, withDefaults.BurstMax)
	}
	if withDefaults.PriorityMin > withDefaults.PriorityMax {
		return fmt.Errorf("generate: priority range [%d, %d] is invalid", withDefaults.PriorityMin, withDefaults.PriorityMax)
	}
	if withDefaults.ArrivalSpread < 0 {
		return fmt.Errorf("generate: arrival spread must be >= 0, got %d", withDefaults.ArrivalSpread)
	}
	return nil
}

// withDefaults returns a copy with zero-valued fields replaced by defaults.
func (g *GenerateSpec) withDefaults() GenerateSpec {
	out := *g
	if out.BurstMin == 0 && out.BurstMax == 0 {
		out.BurstMin, out.BurstMax = DefaultBurstMin, DefaultBurstMax
	}
	if out.PriorityMin == 0 && out.PriorityMax == 0 {
		out.PriorityMin, out.PriorityMax = DefaultPriorityMin, DefaultPriorityMax
	}
	if out.ArrivalSpread == 0 {
		out.ArrivalSpread = DefaultArrivalSpread
	}
	return out
}

// Specs expands the scenario into the full process list: explicit entries
// first, then generated processes with IDs continuing past the largest
// explicit ID. Deterministic given the same scenario.
func (s *Scenario) Specs() []sim.ProcessSpec {
	specs := make([]sim.ProcessSpec, 0, len(s.Processes))
	maxID := 0
	for _, e := range s.Processes {
		specs = append(specs, sim.ProcessSpec{
			ID:          e.ID,
			ArrivalTime: e.Arrival,
			BurstTime:   e.Burst,
			Priority:    e.Priority,
		})
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	if s.Generate != nil {
		specs = append(specs, GenerateSpecs(*s.Generate, maxID+1)...)
	}
	return specs
}
