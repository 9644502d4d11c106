package core

import "fmt"

// ActionKind is the follow-up a unit performs after moving
type ActionKind int

const (
	ActionShoot ActionKind = iota
	ActionThrow
	ActionHold
)

func (k ActionKind) String() string {
	switch k {
	case ActionShoot:
		return "shoot"
	case ActionThrow:
		return "throw"
	case ActionHold:
		return "hold"
	default:
		return fmt.Sprintf("action(%d)", int(k))
	}
}

// MaxThrowRange is the farthest Manhattan distance the rules allow a splash
// bomb to travel. Configured throw ranges may only be shorter.
const MaxThrowRange = 4

// Order is one unit's full decision for a tick: where to go and what to do there.
// TargetUnit is meaningful for ActionShoot, TargetCell for ActionThrow.
type Order struct {
	UnitID     int
	Dest       Coordinate
	Kind       ActionKind
	TargetUnit int
	TargetCell Coordinate
}

// HoldOrder keeps a unit in place without attacking
func HoldOrder(unitID int, at Coordinate) Order {
	return Order{UnitID: unitID, Dest: at, Kind: ActionHold, TargetUnit: -1}
}

func (o Order) String() string {
	switch o.Kind {
	case ActionShoot:
		return fmt.Sprintf("move %s shoot %d", o.Dest, o.TargetUnit)
	case ActionThrow:
		return fmt.Sprintf("move %s throw %s", o.Dest, o.TargetCell)
	default:
		return fmt.Sprintf("move %s hold", o.Dest)
	}
}

// Validate checks the order against the world the unit is acting in.
// Bomb targets farther than throwRange from the destination are rejected.
func (o Order) Validate(w *World, throwRange int) error {
	if o.UnitID < 0 || o.UnitID >= w.NumUnits {
		return ErrUnknownUnit
	}
	u := &w.Units[o.UnitID]
	if !u.Alive {
		return ErrUnknownUnit
	}
	if !w.Grid.Contains(o.Dest) {
		return ErrInvalidCoordinates
	}
	if !o.Dest.Equal(u.Pos) && !u.Pos.IsAdjacentTo(o.Dest) {
		return ErrNotAdjacent
	}
	if !w.Grid.Passable(o.Dest) {
		return ErrImpassable
	}

	switch o.Kind {
	case ActionShoot:
		if u.Cooldown > 0 {
			return ErrOnCooldown
		}
		if o.TargetUnit < 0 || o.TargetUnit >= w.NumUnits || w.PlayerOf(o.TargetUnit) == w.PlayerOf(o.UnitID) {
			return ErrUnknownUnit
		}
	case ActionThrow:
		if u.Bombs <= 0 {
			return ErrNoBombs
		}
		if !w.Grid.Contains(o.TargetCell) {
			return ErrInvalidCoordinates
		}
		if o.Dest.DistanceTo(o.TargetCell) > throwRange {
			return ErrOutOfRange
		}
	}
	return nil
}
