package testutil

import (
	"testing"

	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/core"
	"github.com/stretchr/testify/require"
)

// Unit describes one unit of a test world. Ids follow argument order, so
// units of the same player must be passed next to each other.
type Unit struct {
	Player       int
	X, Y         int
	Cooldown     int // static cooldown period
	OptimalRange int
	Power        int
	Bombs        int
	Wetness      int
	Reload       int // current cooldown counter
	Dead         bool
}

// Soldier returns a unit with middle-of-the-road stats at (x, y)
func Soldier(player, x, y int) Unit {
	return Unit{Player: player, X: x, Y: y, Cooldown: 1, OptimalRange: 4, Power: 16}
}

// Grid parses rows of '.', 'o' and '#' into a grid
func Grid(t testing.TB, rows ...string) *core.Grid {
	t.Helper()
	g, err := core.ParseGrid(rows)
	require.NoError(t, err)
	return g
}

// World builds a world on the given rows with every non-dead unit alive at turn 1
func World(t testing.TB, me int, rows []string, units ...Unit) *core.World {
	t.Helper()
	statics := make([]core.UnitStatic, len(units))
	for i, u := range units {
		statics[i] = core.UnitStatic{
			ID:           i,
			Player:       u.Player,
			Cooldown:     u.Cooldown,
			OptimalRange: u.OptimalRange,
			Power:        u.Power,
			Bombs:        u.Bombs,
		}
	}
	w, err := core.NewWorld(Grid(t, rows...), me, statics)
	require.NoError(t, err)

	w.BeginTick(1)
	for i, u := range units {
		if u.Dead {
			continue
		}
		require.NoError(t, w.SetUnit(core.UnitState{
			ID:       i,
			Pos:      core.Coordinate{X: u.X, Y: u.Y},
			Cooldown: u.Reload,
			Bombs:    u.Bombs,
			Wetness:  u.Wetness,
		}))
	}
	return w
}
