package decision

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepClock advances by step on every reading
type stepClock struct {
	now  time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.now = c.now.Add(c.step)
	return c.now
}

func newStepClock(step time.Duration) *stepClock {
	return &stepClock{now: time.Unix(1_700_000_000, 0), step: step}
}

// corridorTick assembles and combines both sides of the corridor world
func corridorTick(t *testing.T) *Tick {
	t.Helper()
	tick := newTestTick(t, corridorWorld(t))
	NewAssembler(newTestGenerator(tick), 50, 5).Assemble(tick)
	comb := NewCombinator()
	require.True(t, comb.Build(tick, 0, 300))
	require.True(t, comb.Build(tick, 1, 64))
	return tick
}

func TestEvaluator_Score(t *testing.T) {
	e := NewEvaluator(nil, testSettings().Weights, time.Second, nil)

	tests := []struct {
		name    string
		outcome Outcome
		want    float64
	}{
		{"nothing happened", Outcome{}, 0},
		{"control only", Outcome{Control: 0.5}, 0.1},
		{"wetness", Outcome{WetnessGain: 20}, 0.2},
		{"half soaked", Outcome{HalfSoaked: 1}, 100},
		{"eliminated", Outcome{Eliminated: 1}, 200},
		{"losses count against", Outcome{WetnessGain: -30, Eliminated: -1}, -200.3},
		{"everything", Outcome{WetnessGain: 20, HalfSoaked: 1, Eliminated: 1, Control: 0.5}, 300.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, e.Score(tt.outcome), 1e-9)
		})
	}
}

func TestSortResults(t *testing.T) {
	results := []Result{
		{Score: 1, Mine: 0},
		{Score: 3, Mine: 1},
		{Score: 3, Mine: 2},
		{Score: 2, Mine: 3},
	}
	sortResults(results)

	var order []int
	for _, r := range results {
		order = append(order, r.Mine)
	}
	assert.Equal(t, []int{1, 2, 3, 0}, order)
}

func TestEvaluator_MaximinOverReplies(t *testing.T) {
	tick := corridorTick(t)
	sim := NewSimulator(NewContextPool(testSettings().ContextPoolSize))
	e := NewEvaluator(sim, testSettings().Weights, time.Hour, nil)

	truncated := e.Evaluate(tick)
	require.False(t, truncated)
	require.Len(t, tick.Results, len(tick.Joint[0].List))

	for k, r := range tick.Results {
		worst := math.MaxFloat64
		reply := -1
		for j := range tick.Joint[1].List {
			s := e.Score(sim.Resolve(tick, &tick.Joint[0].List[r.Mine], &tick.Joint[1].List[j]))
			if s < worst {
				worst, reply = s, j
			}
		}
		assert.InDelta(t, worst, r.Score, 1e-9)
		assert.Equal(t, reply, r.Theirs)
		if k > 0 {
			assert.GreaterOrEqual(t, tick.Results[k-1].Score, r.Score, "results are sorted best first")
		}
	}

	// Advancing and shooting soaks the enemy to half whatever it does
	best := tick.Results[0]
	assert.Equal(t, 0, best.Mine)
	assert.Equal(t, 0, best.Theirs)
	assert.InDelta(t, 100.418, best.Score, 1e-6)
}

func TestEvaluator_BudgetStopsOuterLoop(t *testing.T) {
	tests := []struct {
		name          string
		budget        time.Duration
		wantEvaluated int
		wantTruncated bool
	}{
		{"zero budget evaluates nothing", 0, 0, true},
		{"one step of budget evaluates one", time.Millisecond, 1, true},
		{"large budget evaluates all", time.Hour, 4, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tick := corridorTick(t)
			clock := newStepClock(time.Millisecond)
			e := NewEvaluator(NewSimulator(NewContextPool(1)), testSettings().Weights, tt.budget, clock.Now)

			assert.Equal(t, tt.wantTruncated, e.Evaluate(tick))
			assert.Len(t, tick.Results, tt.wantEvaluated)
		})
	}
}
