package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder_Validate(t *testing.T) {
	w := newTestWorld(t)
	require.NoError(t, w.Grid.Set(Coordinate{2, 1}, TerrainLowCover))
	w.BeginTick(1)
	require.NoError(t, w.SetUnit(UnitState{ID: 0, Pos: Coordinate{1, 1}, Bombs: 1}))
	require.NoError(t, w.SetUnit(UnitState{ID: 1, Pos: Coordinate{0, 4}, Cooldown: 1}))
	require.NoError(t, w.SetUnit(UnitState{ID: 2, Pos: Coordinate{4, 4}}))

	tests := []struct {
		name    string
		order   Order
		wantErr error
	}{
		{"hold in place", HoldOrder(0, Coordinate{1, 1}), nil},
		{"step and shoot", Order{UnitID: 0, Dest: Coordinate{1, 2}, Kind: ActionShoot, TargetUnit: 2}, nil},
		{"throw in range", Order{UnitID: 0, Dest: Coordinate{1, 1}, Kind: ActionThrow, TargetCell: Coordinate{3, 3}}, nil},
		{"dead unit", HoldOrder(5, Coordinate{0, 0}), ErrUnknownUnit},
		{"two steps", HoldOrder(0, Coordinate{3, 1}), ErrNotAdjacent},
		{"into cover", HoldOrder(0, Coordinate{2, 1}), ErrImpassable},
		{"off grid", HoldOrder(1, Coordinate{-1, 4}), ErrInvalidCoordinates},
		{"cooldown", Order{UnitID: 1, Dest: Coordinate{0, 4}, Kind: ActionShoot, TargetUnit: 2}, ErrOnCooldown},
		{"friendly target", Order{UnitID: 0, Dest: Coordinate{1, 1}, Kind: ActionShoot, TargetUnit: 1}, ErrUnknownUnit},
		{"throw too far", Order{UnitID: 0, Dest: Coordinate{1, 1}, Kind: ActionThrow, TargetCell: Coordinate{4, 4}}, ErrOutOfRange},
		{"diagonal step", HoldOrder(0, Coordinate{0, 0}), ErrNotAdjacent},
		{"no bombs", Order{UnitID: 1, Dest: Coordinate{0, 4}, Kind: ActionThrow, TargetCell: Coordinate{1, 4}}, ErrNoBombs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.order.Validate(w, MaxThrowRange)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestOrder_ValidateThrowRange(t *testing.T) {
	w := newTestWorld(t)
	w.BeginTick(1)
	require.NoError(t, w.SetUnit(UnitState{ID: 0, Pos: Coordinate{1, 1}, Bombs: 1}))
	require.NoError(t, w.SetUnit(UnitState{ID: 2, Pos: Coordinate{4, 4}}))

	o := Order{UnitID: 0, Dest: Coordinate{1, 1}, Kind: ActionThrow, TargetCell: Coordinate{3, 2}}

	tests := []struct {
		name       string
		throwRange int
		wantErr    error
	}{
		{"full range", MaxThrowRange, nil},
		{"exact distance", 3, nil},
		{"shortened range", 2, ErrOutOfRange},
		{"throwing disabled", 0, ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := o.Validate(w, tt.throwRange)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestOrder_String(t *testing.T) {
	assert.Equal(t, "move (1,1) hold", HoldOrder(0, Coordinate{1, 1}).String())
	assert.Equal(t, "move (0,2) shoot 3", Order{Dest: Coordinate{0, 2}, Kind: ActionShoot, TargetUnit: 3}.String())
	assert.Equal(t, "hold", ActionHold.String())
	assert.Equal(t, "action(7)", ActionKind(7).String())
}
