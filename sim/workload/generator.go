package workload

import (
	"math/rand"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/sched-sim/sched-sim/sim"
)

// GenerateSpecs creates Count random process specs from the generation block.
// Deterministic given the same spec and seed: bursts and priorities are drawn
// uniformly from their ranges, arrivals uniformly from [0, ArrivalSpread].
// IDs are assigned sequentially from firstID after sorting by arrival so the
// lowest ID is always the earliest arrival.
func GenerateSpecs(g GenerateSpec, firstID int) []sim.ProcessSpec {
	cfg := g.withDefaults()
	rng := rand.New(rand.NewSource(cfg.Seed))

	specs := make([]sim.ProcessSpec, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		spec := sim.ProcessSpec{
			ArrivalTime: randInt64(rng, 0, cfg.ArrivalSpread),
			BurstTime:   randInt64(rng, cfg.BurstMin, cfg.BurstMax),
			Priority:    int(randInt64(rng, int64(cfg.PriorityMin), int64(cfg.PriorityMax))),
		}
		specs = append(specs, spec)
	}

	sort.SliceStable(specs, func(i, j int) bool {
		return specs[i].ArrivalTime < specs[j].ArrivalTime
	})
	for i := range specs {
		specs[i].ID = firstID + i
		logrus.Debugf("Generated process %d: arrival=%d, burst=%d, priority=%d",
			specs[i].ID, specs[i].ArrivalTime, specs[i].BurstTime, specs[i].Priority)
	}
	return specs
}

// randInt64 draws uniformly from [lo, hi].
func randInt64(rng *rand.Rand, lo, hi int64) int64 {
	if lo >= hi {
		return lo
	}
	return lo + rng.Int63n(hi-lo+1)
}
