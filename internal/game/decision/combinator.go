package decision

import (
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/core"
)

// Combinator expands per-unit command lists into a player's joint commands
type Combinator struct{}

// NewCombinator creates a combinator
func NewCombinator() *Combinator {
	return &Combinator{}
}

// AllocateQuotas decides how many of its best commands each live unit of
// player contributes. Every live unit starts at one; passes over the roster
// grow each unit by one while the product of quotas stays within capacity.
func AllocateQuotas(t *Tick, player, capacity int) (quotas [core.MaxUnits]int, product int) {
	w := t.World
	r := w.Rosters[player]
	product = 1
	for id := r.Start; r.Contains(id); id++ {
		if w.Units[id].Alive {
			quotas[id] = 1
		}
	}

	for grown := true; grown; {
		grown = false
		for id := r.Start; r.Contains(id); id++ {
			if !w.Units[id].Alive {
				continue
			}
			cur := quotas[id]
			if cur >= len(t.Commands[id]) {
				continue
			}
			next := product / cur * (cur + 1)
			if next <= capacity {
				quotas[id]++
				product = next
				grown = true
			}
		}
	}
	return quotas, product
}

// Build fills t.Joint[player] with at most capacity collision-free joint commands.
// It reports false when the capacity was hit before every combination was visited.
func (c *Combinator) Build(t *Tick, player, capacity int) bool {
	quotas, product := AllocateQuotas(t, player, capacity)
	set := &t.Joint[player]
	set.Quotas = quotas
	set.Product = product
	return c.Enumerate(t, player, &quotas, capacity)
}

// Enumerate walks every combination of the quotas as a mixed-radix counter
// over live units and keeps the ones without a movement collision.
func (c *Combinator) Enumerate(t *Tick, player int, quotas *[core.MaxUnits]int, capacity int) bool {
	w := t.World
	r := w.Rosters[player]
	set := &t.Joint[player]
	set.List = set.List[:0]
	set.Overflow = false

	var digits JointCommand
	for {
		if len(set.List) >= capacity {
			set.Overflow = true
			return false
		}

		if !Collides(t, player, &digits) {
			set.List = append(set.List, digits)
		}

		carry := true
		for id := r.Start; r.Contains(id) && carry; id++ {
			if !w.Units[id].Alive {
				continue
			}
			digits[id]++
			if digits[id] >= quotas[id] {
				digits[id] = 0
			} else {
				carry = false
			}
		}
		if carry {
			return true
		}
	}
}

// Collides reports whether two live units of player end on the same cell or
// swap cells under jc.
func Collides(t *Tick, player int, jc *JointCommand) bool {
	w := t.World
	r := w.Rosters[player]
	for a := r.Start; r.Contains(a); a++ {
		if !w.Units[a].Alive {
			continue
		}
		fromA := w.Units[a].Pos
		toA := t.Command(a, jc).Dest
		for b := a + 1; b <= r.Stop; b++ {
			if !w.Units[b].Alive {
				continue
			}
			fromB := w.Units[b].Pos
			toB := t.Command(b, jc).Dest
			if toA == toB {
				return true
			}
			if toA == fromB && toB == fromA {
				return true
			}
		}
	}
	return false
}
