package processor

import (
	"context"
	"sort"
	"sync/atomic"

	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/core"
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/events"
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/rules"
	"github.com/rs/zerolog"
)

// Report describes what happened during one applied tick
type Report struct {
	Turn       int
	Rejected   []error
	Eliminated []int
	Damage     [core.MaxUnits]int // wetness added to each unit, before clamping
}

// Referee applies the orders of both players to the authoritative world
type Referee struct {
	logger    zerolog.Logger
	publisher events.Publisher
	gameID    string

	throwRange atomic.Int64
}

// NewReferee creates a new referee. A nil publisher discards events.
// Bombs thrown farther than throwRange are rejected.
func NewReferee(logger zerolog.Logger, publisher events.Publisher, gameID string, throwRange int) *Referee {
	if publisher == nil {
		publisher = events.Discard
	}
	r := &Referee{
		logger:    logger.With().Str("component", "Referee").Logger(),
		publisher: publisher,
		gameID:    gameID,
	}
	r.SetThrowRange(throwRange)
	return r
}

// SetThrowRange changes the longest accepted bomb throw. It is safe to call
// while another goroutine applies ticks.
func (r *Referee) SetThrowRange(throwRange int) {
	r.throwRange.Store(int64(throwRange))
}

// ThrowRange returns the longest accepted bomb throw
func (r *Referee) ThrowRange() int {
	return int(r.throwRange.Load())
}

// Apply resolves one tick on w in place and advances its turn counter.
// Live units without a valid order hold their position. Rejected orders are
// reported and do not stop the tick.
func (r *Referee) Apply(ctx context.Context, w *core.World, orders []core.Order) (*Report, error) {
	select {
	case <-ctx.Done():
		r.logger.Warn().Err(ctx.Err()).Int("turn", w.Turn).Msg("Tick resolution interrupted by context cancellation")
		return nil, ctx.Err()
	default:
	}

	report := &Report{Turn: w.Turn}
	plan := r.plan(w, orders, report)
	r.move(w, &plan)
	shot := r.act(w, &plan, report)

	for id := 0; id < w.NumUnits; id++ {
		u := &w.Units[id]
		if !u.Alive {
			continue
		}
		if shot[id] {
			u.Cooldown = w.Static[id].Cooldown
		} else if u.Cooldown > 0 {
			u.Cooldown--
		}
		if u.Wetness >= core.WetnessMax {
			u.Wetness = core.WetnessMax
			u.Alive = false
			report.Eliminated = append(report.Eliminated, id)
			r.logger.Debug().Int("turn", w.Turn).Int("unit_id", id).Int("player_id", w.PlayerOf(id)).Msg("Unit eliminated")
			r.publisher.Publish(events.NewUnitEliminatedEvent(r.gameID, w.Turn, id, w.PlayerOf(id)))
		}
	}

	w.Turn++
	return report, nil
}

// plan keeps at most one valid order per live unit and fills the rest with holds
func (r *Referee) plan(w *core.World, orders []core.Order, report *Report) [core.MaxUnits]core.Order {
	sorted := make([]core.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UnitID < sorted[j].UnitID
	})

	var plan [core.MaxUnits]core.Order
	var seen [core.MaxUnits]bool
	for id := 0; id < w.NumUnits; id++ {
		plan[id] = core.HoldOrder(id, w.Units[id].Pos)
	}

	throwRange := r.ThrowRange()
	for _, o := range sorted {
		err := o.Validate(w, throwRange)
		if err == nil && seen[o.UnitID] {
			err = core.ErrDuplicateOrder
		}
		if err != nil {
			r.reject(w, o, err, report)
			continue
		}
		seen[o.UnitID] = true
		plan[o.UnitID] = o
	}
	return plan
}

func (r *Referee) reject(w *core.World, o core.Order, err error, report *Report) {
	wrapped := core.WrapOrderError(o, err)
	report.Rejected = append(report.Rejected, wrapped)
	r.logger.Warn().Err(wrapped).Int("turn", w.Turn).Int("unit_id", o.UnitID).Msg("Order rejected")
	r.publisher.Publish(events.NewOrderRejectedEvent(r.gameID, w.Turn, o.UnitID, o.String(), err.Error()))
}

// move applies every destination at once. Units that would share a cell
// stay where they are, repeated until no two units share a cell.
func (r *Referee) move(w *core.World, plan *[core.MaxUnits]core.Order) {
	var dest [core.MaxUnits]core.Coordinate
	for id := 0; id < w.NumUnits; id++ {
		dest[id] = plan[id].Dest
	}

	for changed := true; changed; {
		changed = false
		for a := 0; a < w.NumUnits; a++ {
			if !w.Units[a].Alive {
				continue
			}
			for b := a + 1; b < w.NumUnits; b++ {
				if !w.Units[b].Alive || dest[a] != dest[b] {
					continue
				}
				for _, id := range [2]int{a, b} {
					if dest[id] != w.Units[id].Pos {
						dest[id] = w.Units[id].Pos
						changed = true
					}
				}
			}
		}
	}

	for id := 0; id < w.NumUnits; id++ {
		if w.Units[id].Alive {
			w.Units[id].Pos = dest[id]
		}
	}
}

// act resolves shots and throws in unit id order against post-move positions
func (r *Referee) act(w *core.World, plan *[core.MaxUnits]core.Order, report *Report) (shot [core.MaxUnits]bool) {
	var alive [core.MaxUnits]bool
	for id := 0; id < w.NumUnits; id++ {
		alive[id] = w.Units[id].Alive
	}

	for id := 0; id < w.NumUnits; id++ {
		if !alive[id] {
			continue
		}
		u := &w.Units[id]
		o := plan[id]
		switch o.Kind {
		case core.ActionThrow:
			u.Bombs--
			for k := 0; k < w.NumUnits; k++ {
				if alive[k] && rules.InSplash(o.TargetCell, w.Units[k].Pos) {
					w.Units[k].Wetness += rules.SplashDamage
					report.Damage[k] += rules.SplashDamage
				}
			}
		case core.ActionShoot:
			shot[id] = true
			if !alive[o.TargetUnit] {
				continue
			}
			target := &w.Units[o.TargetUnit]
			dmg := rules.ShotDamage(w.Grid, &w.Static[id], u.Pos, target.Pos)
			target.Wetness += dmg
			report.Damage[o.TargetUnit] += dmg
		}
	}
	return shot
}
