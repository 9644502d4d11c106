package decision

import (
	"testing"

	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/core"
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble_Corridor(t *testing.T) {
	w := corridorWorld(t)
	tick := newTestTick(t, w)
	asm := NewAssembler(newTestGenerator(tick), 50, 5)
	asm.Assemble(tick)

	east := core.Coordinate{X: 1, Y: 0}
	stay := core.Coordinate{X: 0, Y: 0}
	want := []Command{
		{Dest: east, Kind: core.ActionShoot, Target: 1, Score: 9},
		{Dest: east, Kind: core.ActionHold, Target: -1, Score: 9},
		{Dest: stay, Kind: core.ActionShoot, Target: 1, Score: -2},
		{Dest: stay, Kind: core.ActionHold, Target: -1, Score: -2},
	}
	assert.Equal(t, want, tick.Commands[0])

	west := core.Coordinate{X: 1, Y: 0}
	require.Len(t, tick.Commands[1], 4)
	assert.Equal(t, Command{Dest: west, Kind: core.ActionShoot, Target: 0, Score: 9}, tick.Commands[1][0])
}

func TestAssemble_PerUnitCap(t *testing.T) {
	w := corridorWorld(t)
	tick := newTestTick(t, w)
	NewAssembler(newTestGenerator(tick), 3, 5).Assemble(tick)

	require.Len(t, tick.Commands[0], 3)
	assert.Equal(t, core.ActionShoot, tick.Commands[0][2].Kind)
	assert.Equal(t, -2.0, tick.Commands[0][2].Score)
}

func TestAssemble_BombsBeforeShotsBeforeHold(t *testing.T) {
	rows := []string{
		".....",
		".....",
		".....",
	}
	w := testutil.World(t, 0, rows,
		testutil.Unit{Player: 0, X: 0, Y: 1, OptimalRange: 3, Power: 20, Bombs: 1},
		testutil.Soldier(1, 3, 1),
	)
	tick := newTestTick(t, w)
	NewAssembler(newTestGenerator(tick), 50, 5).Assemble(tick)

	cmds := tick.Commands[0]
	require.NotEmpty(t, cmds)

	// Within one move: throws, then shots, then exactly one hold
	for start := 0; start < len(cmds); {
		end := start
		for end < len(cmds) && cmds[end].Dest == cmds[start].Dest {
			end++
		}
		group := cmds[start:end]
		assert.Equal(t, core.ActionHold, group[len(group)-1].Kind)
		phase := core.ActionThrow
		for _, c := range group {
			assert.Equal(t, cmds[start].Score, c.Score, "commands inherit the move score")
			switch c.Kind {
			case core.ActionThrow:
				assert.Equal(t, core.ActionThrow, phase, "throw after a shot")
			case core.ActionShoot:
				phase = core.ActionShoot
			}
		}
		start = end
	}

	// Move scores never increase along the list
	for i := 1; i < len(cmds); i++ {
		assert.LessOrEqual(t, cmds[i].Score, cmds[i-1].Score)
	}
}

func TestAssemble_ActionLimitFollowsLiveUnits(t *testing.T) {
	rows := []string{
		"......",
		"......",
	}
	w := testutil.World(t, 0, rows,
		testutil.Unit{Player: 0, X: 0, Y: 0, OptimalRange: 6, Power: 20},
		testutil.Soldier(1, 3, 0),
		testutil.Soldier(1, 4, 0),
		testutil.Soldier(1, 5, 1),
	)
	tick := newTestTick(t, w)
	asm := NewAssembler(newTestGenerator(tick), 50, 5)

	assert.Equal(t, 1, asm.ActionLimit(w))
	asm.Assemble(tick)

	// One live unit of ours means one shot per move even with three targets
	shotsPerMove := map[core.Coordinate]int{}
	for _, c := range tick.Commands[0] {
		if c.Kind == core.ActionShoot {
			shotsPerMove[c.Dest]++
		}
	}
	for dest, n := range shotsPerMove {
		assert.Equal(t, 1, n, "move %s", dest)
	}
}

func TestAssemble_DeadUnitsHaveNoCommands(t *testing.T) {
	dead := testutil.Soldier(0, 1, 0)
	dead.Dead = true
	w := testutil.World(t, 0, []string{"....."},
		testutil.Soldier(0, 0, 0),
		dead,
		testutil.Soldier(1, 4, 0),
	)
	tick := newTestTick(t, w)
	NewAssembler(newTestGenerator(tick), 50, 5).Assemble(tick)

	assert.NotEmpty(t, tick.Commands[0])
	assert.Empty(t, tick.Commands[1])
	assert.NotEmpty(t, tick.Commands[2])
}
