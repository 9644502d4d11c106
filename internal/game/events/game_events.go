package events

import (
	"time"
)

// Event type constants
const (
	TypeGameStarted         = "game.started"
	TypeGameEnded           = "game.ended"
	TypeTurnStarted         = "turn.started"
	TypeTurnDecided         = "turn.decided"
	TypeTurnNoDecision      = "turn.no_decision"
	TypeCommandsOverflow    = "commands.overflow"
	TypeEvaluationTruncated = "evaluation.truncated"
	TypeOrderRejected       = "order.rejected"
	TypeUnitEliminated      = "unit.eliminated"
)

// GameStartedEvent is published once the static setup has been read
type GameStartedEvent struct {
	BaseEvent
	PlayerID  int
	NumUnits  int
	MapWidth  int
	MapHeight int
}

// NewGameStartedEvent creates a new GameStartedEvent
func NewGameStartedEvent(gameID string, playerID, numUnits, width, height int) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent: newBase(TypeGameStarted, gameID),
		PlayerID:  playerID,
		NumUnits:  numUnits,
		MapWidth:  width,
		MapHeight: height,
	}
}

// GameEndedEvent is published when a self-play game ends. Winner is -1 for a draw.
type GameEndedEvent struct {
	BaseEvent
	Winner    int
	Duration  time.Duration
	FinalTurn int
}

// NewGameEndedEvent creates a new GameEndedEvent
func NewGameEndedEvent(gameID string, winner int, duration time.Duration, finalTurn int) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent: newBase(TypeGameEnded, gameID),
		Winner:    winner,
		Duration:  duration,
		FinalTurn: finalTurn,
	}
}

// TurnStartedEvent is published when a tick's unit states have been read
type TurnStartedEvent struct {
	BaseEvent
	TurnNumber int
	LiveUnits  int
}

// NewTurnStartedEvent creates a new TurnStartedEvent
func NewTurnStartedEvent(gameID string, turn, liveUnits int) *TurnStartedEvent {
	return &TurnStartedEvent{
		BaseEvent:  newBase(TypeTurnStarted, gameID),
		TurnNumber: turn,
		LiveUnits:  liveUnits,
	}
}

// TurnDecidedEvent summarises one completed decision
type TurnDecidedEvent struct {
	BaseEvent
	TurnNumber      int
	PlayerID        int
	Orders          int
	Score           float64
	Evaluated       int
	Candidates      int
	OpponentReplies int
	Elapsed         time.Duration
}

// NewTurnDecidedEvent creates a new TurnDecidedEvent
func NewTurnDecidedEvent(gameID string, turn, playerID, orders int, score float64, evaluated, candidates, replies int, elapsed time.Duration) *TurnDecidedEvent {
	return &TurnDecidedEvent{
		BaseEvent:       newBase(TypeTurnDecided, gameID),
		TurnNumber:      turn,
		PlayerID:        playerID,
		Orders:          orders,
		Score:           score,
		Evaluated:       evaluated,
		Candidates:      candidates,
		OpponentReplies: replies,
		Elapsed:         elapsed,
	}
}

// TurnNoDecisionEvent is published when a tick ends without any orders
type TurnNoDecisionEvent struct {
	BaseEvent
	TurnNumber int
	PlayerID   int
	Reason     string
}

// NewTurnNoDecisionEvent creates a new TurnNoDecisionEvent
func NewTurnNoDecisionEvent(gameID string, turn, playerID int, reason string) *TurnNoDecisionEvent {
	return &TurnNoDecisionEvent{
		BaseEvent:  newBase(TypeTurnNoDecision, gameID),
		TurnNumber: turn,
		PlayerID:   playerID,
		Reason:     reason,
	}
}

// CommandsOverflowEvent is published when a player's joint command list hit its capacity
type CommandsOverflowEvent struct {
	BaseEvent
	TurnNumber int
	PlayerID   int
	Capacity   int
}

// NewCommandsOverflowEvent creates a new CommandsOverflowEvent
func NewCommandsOverflowEvent(gameID string, turn, playerID, capacity int) *CommandsOverflowEvent {
	return &CommandsOverflowEvent{
		BaseEvent:  newBase(TypeCommandsOverflow, gameID),
		TurnNumber: turn,
		PlayerID:   playerID,
		Capacity:   capacity,
	}
}

// EvaluationTruncatedEvent is published when the time budget stopped the evaluation early
type EvaluationTruncatedEvent struct {
	BaseEvent
	TurnNumber int
	Evaluated  int
	Candidates int
	Elapsed    time.Duration
	Budget     time.Duration
}

// NewEvaluationTruncatedEvent creates a new EvaluationTruncatedEvent
func NewEvaluationTruncatedEvent(gameID string, turn, evaluated, candidates int, elapsed, budget time.Duration) *EvaluationTruncatedEvent {
	return &EvaluationTruncatedEvent{
		BaseEvent:  newBase(TypeEvaluationTruncated, gameID),
		TurnNumber: turn,
		Evaluated:  evaluated,
		Candidates: candidates,
		Elapsed:    elapsed,
		Budget:     budget,
	}
}

// OrderRejectedEvent is published by the referee for an order it could not apply
type OrderRejectedEvent struct {
	BaseEvent
	TurnNumber int
	UnitID     int
	Order      string
	Reason     string
}

// NewOrderRejectedEvent creates a new OrderRejectedEvent
func NewOrderRejectedEvent(gameID string, turn, unitID int, order, reason string) *OrderRejectedEvent {
	return &OrderRejectedEvent{
		BaseEvent:  newBase(TypeOrderRejected, gameID),
		TurnNumber: turn,
		UnitID:     unitID,
		Order:      order,
		Reason:     reason,
	}
}

// UnitEliminatedEvent is published by the referee when a unit reaches full wetness
type UnitEliminatedEvent struct {
	BaseEvent
	TurnNumber int
	UnitID     int
	PlayerID   int
}

// NewUnitEliminatedEvent creates a new UnitEliminatedEvent
func NewUnitEliminatedEvent(gameID string, turn, unitID, playerID int) *UnitEliminatedEvent {
	return &UnitEliminatedEvent{
		BaseEvent:  newBase(TypeUnitEliminated, gameID),
		TurnNumber: turn,
		UnitID:     unitID,
		PlayerID:   playerID,
	}
}
