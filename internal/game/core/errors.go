package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidPlayer      = errors.New("invalid player ID")
	ErrGridSize           = errors.New("invalid grid size")
	ErrTooManyUnits       = errors.New("too many units")
	ErrUnknownUnit        = errors.New("unknown unit")
	ErrRosterLayout       = errors.New("unit ids must be contiguous per player")
	ErrNotAdjacent        = errors.New("destination is not reachable in one step")
	ErrImpassable         = errors.New("destination is not passable")
	ErrOutOfRange         = errors.New("target out of range")
	ErrNoBombs            = errors.New("no splash bombs left")
	ErrOnCooldown         = errors.New("shot still on cooldown")
	ErrGameOver           = errors.New("game is over")
	ErrDuplicateOrder     = errors.New("unit already has an order this tick")

	// Decision diagnostics
	ErrCommandOverflow    = errors.New("joint command capacity exceeded")
	ErrBudgetExceeded     = errors.New("evaluation time budget exceeded")
	ErrNoSimulationResult = errors.New("no simulation result")
)

// WrapTurnError adds turn and phase context to an error
func WrapTurnError(turn int, phase string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("game turn %d [%s]: %w", turn, phase, err)
}

// WrapPlayerError adds player context to an error
func WrapPlayerError(playerID int, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("player %d %s: %w", playerID, operation, err)
}

// WrapUnitError adds unit context to an error
func WrapUnitError(unitID int, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("unit %d %s: %w", unitID, operation, err)
}

// WrapOrderError describes the order that failed
func WrapOrderError(o Order, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("unit %d: %s: %w", o.UnitID, o, err)
}
