package decision

import (
	"testing"

	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/config"
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/core"
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/testutil"
)

func testSettings() config.EngineConfig {
	return config.Defaults().Engine
}

// newTestTick prepares a tick on w with the distance fields built
func newTestTick(t testing.TB, w *core.World) *Tick {
	t.Helper()
	tick := NewTick(testSettings(), w.Grid)
	tick.Reset(w)
	return tick
}

func newTestGenerator(tick *Tick) *Generator {
	return NewGenerator(testSettings(), tick.Fields)
}

// corridorWorld is a 1x3 open corridor: our unit at (0,0) with range 1 and
// power 50, the enemy at (2,0) with range 1 and power 10.
func corridorWorld(t testing.TB) *core.World {
	t.Helper()
	return testutil.World(t, 0, []string{"..."},
		testutil.Unit{Player: 0, X: 0, Y: 0, Cooldown: 1, OptimalRange: 1, Power: 50},
		testutil.Unit{Player: 1, X: 2, Y: 0, Cooldown: 1, OptimalRange: 1, Power: 10},
	)
}

func cells(cs []Candidate) []core.Coordinate {
	out := make([]core.Coordinate, len(cs))
	for i, c := range cs {
		out[i] = c.Cell
	}
	return out
}

func scores(cs []Candidate) []float64 {
	out := make([]float64, len(cs))
	for i, c := range cs {
		out[i] = c.Score
	}
	return out
}
