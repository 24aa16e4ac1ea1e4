package sim

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sched-sim/sched-sim/sim/trace"
)

func buildStore(t *testing.T, specs ...ProcessSpec) *SpecStore {
	t.Helper()
	store := NewSpecStore()
	for _, spec := range specs {
		require.NoError(t, store.Register(spec))
	}
	return store
}

func runPolicy(t *testing.T, name string, quantum int64, specs ...ProcessSpec) *Report {
	t.Helper()
	policy, err := NewPolicy(name, quantum)
	require.NoError(t, err)
	report, err := NewEngine(buildStore(t, specs...), policy).Run()
	require.NoError(t, err)
	return report
}

func TestEngine_FCFS_SpecExample(t *testing.T) {
	// GIVEN processes {id:1, arrival:0, burst:5} and {id:2, arrival:1, burst:3}
	report := runPolicy(t, PolicyFCFS, 0,
		ProcessSpec{ID: 1, ArrivalTime: 0, BurstTime: 5},
		ProcessSpec{ID: 2, ArrivalTime: 1, BurstTime: 3},
	)

	// THEN process 1 runs ticks [0,5) and process 2 runs [5,8)
	wantTimeline := []trace.Slice{
		{ProcessID: 1, Start: 0, End: 5},
		{ProcessID: 2, Start: 5, End: 8},
	}
	assert.Equal(t, wantTimeline, report.Timeline)

	// AND waiting times are 0 and 4
	assert.Equal(t, int64(0), report.Processes[0].WaitingTime)
	assert.Equal(t, int64(4), report.Processes[1].WaitingTime)
	assert.Equal(t, int64(8), report.TotalTicks)
	assert.Equal(t, float64(1), report.CPUUtilization)
}

func TestEngine_RoundRobin_QuantumTwoInterleaving(t *testing.T) {
	// GIVEN two tick-0 arrivals with bursts 5 and 3, quantum 2
	report := runPolicy(t, PolicyRoundRobin, 2,
		ProcessSpec{ID: 1, ArrivalTime: 0, BurstTime: 5},
		ProcessSpec{ID: 2, ArrivalTime: 0, BurstTime: 3},
	)

	// THEN the processes alternate one quantum at a time, with the final
	// partial quanta truncated to the remaining work
	wantTimeline := []trace.Slice{
		{ProcessID: 1, Start: 0, End: 2},
		{ProcessID: 2, Start: 2, End: 4},
		{ProcessID: 1, Start: 4, End: 6},
		{ProcessID: 2, Start: 6, End: 7},
		{ProcessID: 1, Start: 7, End: 8},
	}
	assert.Equal(t, wantTimeline, report.Timeline)

	// AND completion ticks follow: total work is 8 ticks with no idle gap,
	// so process 2 finishes at 7 and process 1 at 8
	assert.Equal(t, int64(8), report.Processes[0].CompletionTime)
	assert.Equal(t, int64(7), report.Processes[1].CompletionTime)
}

func TestEngine_RoundRobin_ArrivalDuringQuantumGoesAheadOfExpired(t *testing.T) {
	// GIVEN process 2 arriving in the middle of process 1's first quantum
	report := runPolicy(t, PolicyRoundRobin, 3,
		ProcessSpec{ID: 1, ArrivalTime: 0, BurstTime: 6},
		ProcessSpec{ID: 2, ArrivalTime: 1, BurstTime: 2},
	)

	// THEN after the quantum expires at tick 3, the arrival runs before the
	// expired process rejoins
	wantTimeline := []trace.Slice{
		{ProcessID: 1, Start: 0, End: 3},
		{ProcessID: 2, Start: 3, End: 5},
		{ProcessID: 1, Start: 5, End: 8},
	}
	assert.Equal(t, wantTimeline, report.Timeline)
}

func TestEngine_PriorityPreemptive_PreemptsAtNextTickBoundary(t *testing.T) {
	// GIVEN a low-urgency process running when a high-urgency one arrives at tick 2
	report := runPolicy(t, PolicyPriorityPreemptive, 0,
		ProcessSpec{ID: 1, ArrivalTime: 0, BurstTime: 5, Priority: 5},
		ProcessSpec{ID: 2, ArrivalTime: 2, BurstTime: 2, Priority: 1},
	)

	// THEN process 2 takes the CPU at exactly tick 2 and process 1 resumes after,
	// its remaining time reflecting exactly the 2 ticks it had executed
	wantTimeline := []trace.Slice{
		{ProcessID: 1, Start: 0, End: 2},
		{ProcessID: 2, Start: 2, End: 4},
		{ProcessID: 1, Start: 4, End: 7},
	}
	assert.Equal(t, wantTimeline, report.Timeline)

	assert.Equal(t, int64(4), report.Processes[1].CompletionTime)
	assert.Equal(t, int64(0), report.Processes[1].ResponseTime)
	assert.Equal(t, int64(7), report.Processes[0].CompletionTime)
}

func TestEngine_PriorityPreemptive_EqualPriorityDoesNotPreempt(t *testing.T) {
	// GIVEN an equal-priority arrival mid-execution
	report := runPolicy(t, PolicyPriorityPreemptive, 0,
		ProcessSpec{ID: 1, ArrivalTime: 0, BurstTime: 4, Priority: 3},
		ProcessSpec{ID: 2, ArrivalTime: 1, BurstTime: 2, Priority: 3},
	)

	// THEN the incumbent runs to completion before the arrival starts
	wantTimeline := []trace.Slice{
		{ProcessID: 1, Start: 0, End: 4},
		{ProcessID: 2, Start: 4, End: 6},
	}
	assert.Equal(t, wantTimeline, report.Timeline)
}

func TestEngine_PriorityNonPreemptive_RunsToCompletion(t *testing.T) {
	// GIVEN a more urgent process arriving while a less urgent one runs
	report := runPolicy(t, PolicyPriority, 0,
		ProcessSpec{ID: 1, ArrivalTime: 0, BurstTime: 5, Priority: 5},
		ProcessSpec{ID: 2, ArrivalTime: 2, BurstTime: 2, Priority: 1},
	)

	// THEN no preemption happens; the arrival waits for the CPU
	wantTimeline := []trace.Slice{
		{ProcessID: 1, Start: 0, End: 5},
		{ProcessID: 2, Start: 5, End: 7},
	}
	assert.Equal(t, wantTimeline, report.Timeline)
}

func TestEngine_SJN_PicksShortestAmongArrived(t *testing.T) {
	// GIVEN a long job at tick 0 and two jobs arriving while it runs
	report := runPolicy(t, PolicySJN, 0,
		ProcessSpec{ID: 1, ArrivalTime: 0, BurstTime: 6},
		ProcessSpec{ID: 2, ArrivalTime: 1, BurstTime: 4},
		ProcessSpec{ID: 3, ArrivalTime: 2, BurstTime: 1},
	)

	// THEN at tick 6 the shortest waiting job runs first
	wantTimeline := []trace.Slice{
		{ProcessID: 1, Start: 0, End: 6},
		{ProcessID: 3, Start: 6, End: 7},
		{ProcessID: 2, Start: 7, End: 11},
	}
	assert.Equal(t, wantTimeline, report.Timeline)
}

func TestEngine_IdleGap_AccountedAsIdleTicks(t *testing.T) {
	// GIVEN a single process arriving at tick 3
	report := runPolicy(t, PolicyFCFS, 0,
		ProcessSpec{ID: 1, ArrivalTime: 3, BurstTime: 2},
	)

	// THEN ticks [0,3) are idle and utilization reflects the gap
	assert.Equal(t, int64(3), report.IdleTicks)
	assert.Equal(t, int64(2), report.BusyTicks)
	assert.Equal(t, int64(5), report.TotalTicks)
	assert.InDelta(t, 0.4, report.CPUUtilization, 1e-9)
	assert.Equal(t, int64(0), report.Processes[0].WaitingTime)
	assert.Equal(t, int64(0), report.Processes[0].ResponseTime)
}

func TestEngine_IdleGapBetweenArrivals(t *testing.T) {
	// GIVEN a gap between the first completion and the second arrival
	report := runPolicy(t, PolicyFCFS, 0,
		ProcessSpec{ID: 1, ArrivalTime: 0, BurstTime: 2},
		ProcessSpec{ID: 2, ArrivalTime: 5, BurstTime: 1},
	)

	wantTimeline := []trace.Slice{
		{ProcessID: 1, Start: 0, End: 2},
		{ProcessID: 2, Start: 5, End: 6},
	}
	assert.Equal(t, wantTimeline, report.Timeline)
	assert.Equal(t, int64(3), report.IdleTicks)
}

// mixedWorkload is shared by the cross-policy property tests.
func mixedWorkload() []ProcessSpec {
	return []ProcessSpec{
		{ID: 1, ArrivalTime: 0, BurstTime: 7, Priority: 4},
		{ID: 2, ArrivalTime: 2, BurstTime: 3, Priority: 1},
		{ID: 3, ArrivalTime: 2, BurstTime: 5, Priority: 7},
		{ID: 4, ArrivalTime: 9, BurstTime: 1, Priority: 2},
		{ID: 5, ArrivalTime: 30, BurstTime: 4, Priority: 5},
	}
}

func TestEngine_AllPolicies_InvariantsHold(t *testing.T) {
	specs := mixedWorkload()
	var totalBurst int64
	for _, s := range specs {
		totalBurst += s.BurstTime
	}

	for _, name := range PolicyNames() {
		t.Run(name, func(t *testing.T) {
			report := runPolicy(t, name, 2, specs...)

			// Conservation of work: every burst tick was executed exactly once
			assert.Equal(t, totalBurst, report.BusyTicks, "busy ticks != total burst")

			require.Len(t, report.Processes, len(specs))
			for _, p := range report.Processes {
				assert.GreaterOrEqual(t, p.CompletionTime, p.ArrivalTime+p.BurstTime,
					"process %d finished before its minimum possible work was done", p.ID)
				assert.GreaterOrEqual(t, p.WaitingTime, int64(0), "process %d has negative waiting time", p.ID)
				assert.GreaterOrEqual(t, p.ResponseTime, int64(0), "process %d has negative response time", p.ID)
				assert.GreaterOrEqual(t, p.TurnaroundTime, p.BurstTime, "process %d turnaround below burst", p.ID)
			}

			// Timeline slices cover exactly the busy ticks
			var sliceTicks int64
			for _, s := range report.Timeline {
				sliceTicks += s.Ticks()
			}
			assert.Equal(t, report.BusyTicks, sliceTicks)
		})
	}
}

func TestEngine_AllPolicies_Deterministic(t *testing.T) {
	for _, name := range PolicyNames() {
		t.Run(name, func(t *testing.T) {
			first := runPolicy(t, name, 3, mixedWorkload()...)
			second := runPolicy(t, name, 3, mixedWorkload()...)
			if !reflect.DeepEqual(first, second) {
				t.Errorf("two runs with identical inputs diverged:\nfirst:  %+v\nsecond: %+v", first, second)
			}
		})
	}
}

func TestEngine_EmptyInput_ZeroValuedReport(t *testing.T) {
	policy, err := NewPolicy(PolicyFCFS, 0)
	require.NoError(t, err)

	report, err := NewEngine(NewSpecStore(), policy).Run()
	require.NoError(t, err)

	assert.Empty(t, report.Processes)
	assert.Zero(t, report.TotalTicks)
	assert.Zero(t, report.Throughput)
	assert.Zero(t, report.CPUUtilization)
	assert.Zero(t, report.AvgWaitingTime)
}

func TestEngine_ReportBeforeRun_IncompleteSimulation(t *testing.T) {
	policy, err := NewPolicy(PolicyFCFS, 0)
	require.NoError(t, err)
	engine := NewEngine(buildStore(t, ProcessSpec{ID: 1, BurstTime: 2}), policy)

	_, err = engine.Report()
	assert.ErrorIs(t, err, ErrIncompleteSimulation)
}

func TestEngine_ReportIdempotent(t *testing.T) {
	policy, err := NewPolicy(PolicyRoundRobin, 2)
	require.NoError(t, err)
	engine := NewEngine(buildStore(t, mixedWorkload()...), policy)

	first, err := engine.Run()
	require.NoError(t, err)
	second, err := engine.Report()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEngine_SealsStore(t *testing.T) {
	store := buildStore(t, ProcessSpec{ID: 1, BurstTime: 1})
	policy, err := NewPolicy(PolicyFCFS, 0)
	require.NoError(t, err)
	NewEngine(store, policy)

	assert.ErrorIs(t, store.Register(ProcessSpec{ID: 2, BurstTime: 1}), ErrStoreSealed)
}
