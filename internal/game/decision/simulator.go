package decision

import (
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/core"
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/rules"
)

// Outcome is the result of one simulated tick seen from the controlled
// player. Counters are positive when enemy units crossed a threshold and
// negative for the controlled player's own units.
type Outcome struct {
	WetnessGain int
	HalfSoaked  int
	Eliminated  int
	Control     float64
}

// SimContext is the reusable scratch state of one simulation
type SimContext struct {
	Units   [core.MaxUnits]core.UnitState
	Outcome Outcome
}

func (c *SimContext) reset(w *core.World) {
	c.Units = w.Units
	c.Outcome = Outcome{}
}

// ContextPool hands out simulation contexts round robin
type ContextPool struct {
	contexts []SimContext
	next     int
}

// NewContextPool allocates size contexts
func NewContextPool(size int) *ContextPool {
	if size < 1 {
		size = 1
	}
	return &ContextPool{contexts: make([]SimContext, size)}
}

// Acquire returns the next context in the cycle. Its content is stale until reset.
func (p *ContextPool) Acquire() *SimContext {
	c := &p.contexts[p.next]
	p.next++
	if p.next == len(p.contexts) {
		p.next = 0
	}
	return c
}

// Size returns the number of contexts in the pool
func (p *ContextPool) Size() int {
	return len(p.contexts)
}

// Simulator resolves one tick for a pair of joint commands
type Simulator struct {
	pool *ContextPool
}

// NewSimulator creates a simulator drawing its contexts from pool
func NewSimulator(pool *ContextPool) *Simulator {
	return &Simulator{pool: pool}
}

// Resolve plays mine for the controlled player and theirs for the opponent
// on a pooled copy of t.World. The world itself is never modified.
func (s *Simulator) Resolve(t *Tick, mine, theirs *JointCommand) Outcome {
	ctx := s.pool.Acquire()
	w := t.World
	ctx.reset(w)
	me := w.Me

	// Movement, both sides at once
	for id := 0; id < w.NumUnits; id++ {
		u := &ctx.Units[id]
		if !u.Alive {
			continue
		}
		jc := theirs
		if w.PlayerOf(id) == me {
			jc = mine
		}
		u.Pos = t.Command(id, jc).Dest
	}

	// Actions in unit id order, all against post-move positions
	for id := 0; id < w.NumUnits; id++ {
		u := &ctx.Units[id]
		if !u.Alive {
			continue
		}
		jc := theirs
		if w.PlayerOf(id) == me {
			jc = mine
		}
		cmd := t.Command(id, jc)

		switch cmd.Kind {
		case core.ActionThrow:
			for k := 0; k < w.NumUnits; k++ {
				v := &ctx.Units[k]
				if v.Alive && rules.InSplash(cmd.Cell, v.Pos) {
					v.Wetness += rules.SplashDamage
				}
			}
		case core.ActionShoot:
			target := &ctx.Units[cmd.Target]
			if !target.Alive {
				continue
			}
			target.Wetness += rules.ShotDamage(w.Grid, &w.Static[id], u.Pos, target.Pos)
		}
	}

	// Thresholds against the tick-start wetness
	out := &ctx.Outcome
	for id := 0; id < w.NumUnits; id++ {
		u := &ctx.Units[id]
		before := w.Units[id].Wetness
		if u.Wetness >= core.WetnessMax {
			u.Alive = false
			u.Wetness = core.WetnessMax
		}
		delta := u.Wetness - before
		if delta == 0 {
			continue
		}
		sign := 1
		if w.PlayerOf(id) == me {
			sign = -1
		}
		if u.Wetness >= core.WetnessMax && before < core.WetnessMax {
			out.Eliminated += sign
		}
		if u.Wetness >= core.WetnessHalf && before < core.WetnessHalf {
			out.HalfSoaked += sign
		}
		out.WetnessGain += sign * delta
	}

	// Move quality of the controlled units that are still standing
	r := w.Rosters[me]
	sum := 0.0
	for id := r.Start; r.Contains(id); id++ {
		if ctx.Units[id].Alive {
			sum += t.Command(id, mine).Score
		}
	}
	out.Control = sum / 100

	return *out
}
