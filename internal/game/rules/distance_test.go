package rules

import (
	"testing"

	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/core"
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestDistanceFields_ShortestPaths(t *testing.T) {
	rows := []string{
		".....",
		".###.",
		"...#.",
		"o#...",
	}
	w := testutil.World(t, 0, rows,
		testutil.Soldier(0, 0, 0),
		testutil.Soldier(1, 4, 3),
	)
	f := NewDistanceFields(w.Grid)
	f.Build(w)

	tests := []struct {
		name string
		id   int
		at   core.Coordinate
		want int
	}{
		{"own cell", 0, core.Coordinate{X: 0, Y: 0}, 0},
		{"along the top", 0, core.Coordinate{X: 4, Y: 0}, 4},
		{"around the wall", 0, core.Coordinate{X: 2, Y: 2}, 4},
		{"far corner", 0, core.Coordinate{X: 4, Y: 3}, 7},
		{"pocket behind cover", 0, core.Coordinate{X: 2, Y: 3}, 5},
		{"cover cell", 0, core.Coordinate{X: 1, Y: 1}, Unreachable},
		{"low cover cell", 0, core.Coordinate{X: 0, Y: 3}, Unreachable},
		{"outside", 0, core.Coordinate{X: 9, Y: 0}, Unreachable},
		{"second unit", 1, core.Coordinate{X: 0, Y: 0}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Distance(tt.id, tt.at))
		})
	}
}

func TestDistanceFields_Unreachable(t *testing.T) {
	rows := []string{
		"..#..",
	}
	w := testutil.World(t, 0, rows,
		testutil.Soldier(0, 0, 0),
		testutil.Soldier(1, 4, 0),
	)
	f := NewDistanceFields(w.Grid)
	f.Build(w)

	assert.Equal(t, 1, f.Distance(0, core.Coordinate{X: 1, Y: 0}))
	assert.Equal(t, Unreachable, f.Distance(0, core.Coordinate{X: 3, Y: 0}))
	assert.Equal(t, Unreachable, f.Distance(1, core.Coordinate{X: 0, Y: 0}))
}

func TestDistanceFields_RebuildIsIdempotent(t *testing.T) {
	rows := []string{
		"....",
		"....",
	}
	w := testutil.World(t, 0, rows,
		testutil.Soldier(0, 0, 0),
		testutil.Soldier(1, 3, 1),
	)
	f := NewDistanceFields(w.Grid)
	f.Build(w)
	first := append([]int32(nil), f.dist...)
	f.Build(w)
	assert.Equal(t, first, f.dist)

	// Dead units lose their field on the next build
	w.Units[1].Alive = false
	f.Build(w)
	assert.False(t, f.Built(1))
	assert.True(t, f.Built(0))
	assert.Equal(t, Unreachable, f.Distance(1, core.Coordinate{X: 3, Y: 1}))

	// Moving a unit moves its field
	w.Units[0].Pos = core.Coordinate{X: 3, Y: 0}
	f.Build(w)
	assert.Equal(t, 0, f.Distance(0, core.Coordinate{X: 3, Y: 0}))
	assert.Equal(t, 4, f.Distance(0, core.Coordinate{X: 0, Y: 1}))
}
