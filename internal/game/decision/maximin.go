package decision

import (
	"math"
	"time"

	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/config"
)

// Result is the worst case of one controlled-player joint command
type Result struct {
	Score  float64
	Mine   int
	Theirs int
}

// Evaluator ranks the controlled player's joint commands by their worst
// outcome over every opponent reply.
type Evaluator struct {
	sim     *Simulator
	weights config.WeightsConfig
	budget  time.Duration
	now     func() time.Time
}

// NewEvaluator creates an evaluator stopping after budget has elapsed
func NewEvaluator(sim *Simulator, weights config.WeightsConfig, budget time.Duration, now func() time.Time) *Evaluator {
	if now == nil {
		now = time.Now
	}
	return &Evaluator{sim: sim, weights: weights, budget: budget, now: now}
}

// Score turns an outcome into a single number, higher is better for the controlled player
func (e *Evaluator) Score(o Outcome) float64 {
	return o.Control/100*e.weights.Control +
		float64(o.WetnessGain)/100*e.weights.Wetness +
		float64(o.HalfSoaked)/10*e.weights.HalfSoaked +
		float64(o.Eliminated)/10*e.weights.Eliminated
}

// Evaluate fills t.Results sorted best first and reports whether the budget
// cut the outer loop short. The budget is only checked between our joint
// commands, so one full pass over the replies always completes.
func (e *Evaluator) Evaluate(t *Tick) (truncated bool) {
	me := t.World.Me
	mine := t.Joint[me].List
	theirs := t.Joint[1-me].List
	t.Results = t.Results[:0]

	start := e.now()
	for i := range mine {
		if e.now().Sub(start) > e.budget {
			truncated = true
			break
		}

		worst := math.MaxFloat64
		worstReply := -1
		for j := range theirs {
			score := e.Score(e.sim.Resolve(t, &mine[i], &theirs[j]))
			if score < worst {
				worst = score
				worstReply = j
			}
		}
		t.Results = append(t.Results, Result{Score: worst, Mine: i, Theirs: worstReply})
	}

	sortResults(t.Results)
	return truncated
}

// sortResults orders by descending score. An entry only moves ahead of an
// earlier one when strictly greater.
func sortResults(s []Result) {
	for i := 0; i < len(s)-1; i++ {
		for j := i + 1; j < len(s); j++ {
			if s[j].Score > s[i].Score {
				s[i], s[j] = s[j], s[i]
			}
		}
	}
}
