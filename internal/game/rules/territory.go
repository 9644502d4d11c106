package rules

import (
	"math"

	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/core"
)

type controller struct {
	pos    core.Coordinate
	soaked bool
}

// TerritoryBalance counts the open cells player controls minus the ones the
// opponent controls, with unit mover placed at at instead of its real cell.
// A cell belongs to the side whose nearest unit is strictly closer; units at
// or above half wetness count double distance.
func TerritoryBalance(w *core.World, player, mover int, at core.Coordinate) int {
	var mine, theirs [core.MaxUnits]controller
	nMine := collectControllers(w, player, mover, at, mine[:])
	nTheirs := collectControllers(w, core.Opponent(player), mover, at, theirs[:])

	g := w.Grid
	balance := 0
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.T[g.Idx(x, y)] != core.TerrainOpen {
				continue
			}
			c := core.Coordinate{X: x, Y: y}
			dMine := nearest(c, mine[:nMine])
			dTheirs := nearest(c, theirs[:nTheirs])
			if dMine < dTheirs {
				balance++
			} else if dTheirs < dMine {
				balance--
			}
		}
	}
	return balance
}

func collectControllers(w *core.World, player, mover int, at core.Coordinate, out []controller) int {
	r := w.Rosters[player]
	n := 0
	for id := r.Start; r.Contains(id); id++ {
		u := &w.Units[id]
		if !u.Alive {
			continue
		}
		pos := u.Pos
		if id == mover {
			pos = at
		}
		out[n] = controller{pos: pos, soaked: u.Wetness >= core.WetnessHalf}
		n++
	}
	return n
}

func nearest(c core.Coordinate, units []controller) int {
	best := math.MaxInt
	for _, u := range units {
		d := c.DistanceTo(u.pos)
		if u.soaked {
			d *= 2
		}
		if d < best {
			best = d
		}
	}
	return best
}
