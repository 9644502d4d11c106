package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorld(t *testing.T) *World {
	t.Helper()
	g, err := NewGrid(5, 5)
	require.NoError(t, err)
	w, err := NewWorld(g, 0, []UnitStatic{
		{ID: 0, Player: 0, Cooldown: 1, OptimalRange: 2, Power: 16, Bombs: 1},
		{ID: 1, Player: 0, Cooldown: 1, OptimalRange: 2, Power: 16, Bombs: 1},
		{ID: 2, Player: 1, Cooldown: 2, OptimalRange: 4, Power: 24, Bombs: 0},
	})
	require.NoError(t, err)
	return w
}

func TestNewWorld_Rosters(t *testing.T) {
	w := newTestWorld(t)

	assert.Equal(t, Roster{Start: 0, Stop: 1, Count: 2}, w.Rosters[0])
	assert.Equal(t, Roster{Start: 2, Stop: 2, Count: 1}, w.Rosters[1])
	assert.True(t, w.Rosters[0].Contains(1))
	assert.False(t, w.Rosters[0].Contains(2))
	assert.Equal(t, 1, w.PlayerOf(2))
	assert.Equal(t, 1, Opponent(w.Me))
	assert.Equal(t, 1, w.Units[0].Bombs, "bomb stock starts from the static setup")
}

func TestWorld_EmptyRoster(t *testing.T) {
	g, err := NewGrid(3, 3)
	require.NoError(t, err)
	w, err := NewWorld(g, 0, []UnitStatic{{ID: 0, Player: 0, Cooldown: 1}})
	require.NoError(t, err)
	w.BeginTick(1)
	require.NoError(t, w.SetUnit(UnitState{ID: 0, Pos: Coordinate{1, 1}, Wetness: 10}))

	assert.False(t, w.Rosters[1].Contains(-1))
	assert.Equal(t, 0, w.LiveCount(1))
	assert.Equal(t, 0, w.TotalWetness(1))
	assert.Equal(t, 1, w.LiveCount(0))
	assert.Equal(t, 10, w.TotalWetness(0))
}

func TestNewWorld_Rejects(t *testing.T) {
	g, err := NewGrid(3, 3)
	require.NoError(t, err)

	tests := []struct {
		name    string
		me      int
		statics []UnitStatic
		wantErr error
	}{
		{"bad player", 2, nil, ErrInvalidPlayer},
		{"id gap", 0, []UnitStatic{{ID: 1, Player: 0}}, ErrRosterLayout},
		{"interleaved", 0, []UnitStatic{{ID: 0, Player: 0}, {ID: 1, Player: 1}, {ID: 2, Player: 0}}, ErrRosterLayout},
		{"unit player out of range", 0, []UnitStatic{{ID: 0, Player: 3}}, ErrInvalidPlayer},
		{"too many", 0, make([]UnitStatic, MaxUnits+1), ErrTooManyUnits},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWorld(g, tt.me, tt.statics)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestWorld_TickLifecycle(t *testing.T) {
	w := newTestWorld(t)

	w.BeginTick(1)
	require.NoError(t, w.SetUnit(UnitState{ID: 0, Pos: Coordinate{0, 0}, Wetness: 30}))
	require.NoError(t, w.SetUnit(UnitState{ID: 2, Pos: Coordinate{4, 4}, Wetness: 10}))

	assert.Equal(t, 1, w.LiveCount(0))
	assert.Equal(t, 1, w.LiveCount(1))
	assert.Equal(t, 30, w.TotalWetness(0))
	assert.False(t, w.Units[1].Alive, "units missing from the tick report are dead")

	assert.ErrorIs(t, w.SetUnit(UnitState{ID: 7}), ErrUnknownUnit)
	assert.ErrorIs(t, w.SetUnit(UnitState{ID: 1, Pos: Coordinate{9, 9}}), ErrInvalidCoordinates)

	w.BeginTick(2)
	assert.Equal(t, 0, w.LiveCount(0))
	assert.Equal(t, 2, w.Turn)
}

func TestWorld_CloneIsIndependent(t *testing.T) {
	w := newTestWorld(t)
	w.BeginTick(1)
	require.NoError(t, w.SetUnit(UnitState{ID: 0, Pos: Coordinate{1, 1}}))

	c := w.Clone()
	c.Units[0].Wetness = 99
	assert.Equal(t, 0, w.Units[0].Wetness)
	assert.Same(t, w.Grid, c.Grid)

	o := w.AsPlayer(1)
	assert.Equal(t, 1, o.Me)
	assert.Equal(t, 0, w.Me)
}
