package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/core"
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/decision"
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/events"
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/processor"
	"github.com/rs/zerolog"
)

// TurnResult is what happened during one self-play turn
type TurnResult struct {
	Turn      int
	Decisions [core.MaxPlayers]*decision.Decision // nil when the player issued no orders
	Report    *processor.Report
}

// TurnProcessor handles the orchestration of a single turn
type TurnProcessor struct {
	engine *Engine
	logger zerolog.Logger
}

// NewTurnProcessor creates a new turn processor
func NewTurnProcessor(engine *Engine) *TurnProcessor {
	return &TurnProcessor{
		engine: engine,
		logger: engine.logger,
	}
}

// ProcessTurn decides for both players on the same snapshot, then applies
// every order at once
func (tp *TurnProcessor) ProcessTurn(ctx context.Context) (*TurnResult, error) {
	e := tp.engine
	if err := tp.checkContext(ctx, "before starting"); err != nil {
		return nil, err
	}
	if e.gameOver {
		tp.logger.Warn().Int("turn", e.world.Turn).Msg("Attempted to step game that is already over")
		return nil, core.WrapTurnError(e.world.Turn, "step", core.ErrGameOver)
	}

	w := e.world
	turnLogger := tp.logger.With().Int("turn", w.Turn).Logger()
	turnLogger.Debug().Msg("Starting game step")
	e.eventBus.Publish(events.NewTurnStartedEvent(e.gameID, w.Turn, w.LiveCount(0)+w.LiveCount(1)))

	result := &TurnResult{Turn: w.Turn}
	var orders []core.Order
	for p := 0; p < core.MaxPlayers; p++ {
		d, err := e.players[p].Decide(w.AsPlayer(p))
		if err != nil {
			if errors.Is(err, core.ErrNoSimulationResult) {
				turnLogger.Debug().Int("player_id", p).Msg("Player holds this turn")
				continue
			}
			return nil, core.WrapTurnError(w.Turn, "decide", err)
		}
		result.Decisions[p] = d
		orders = append(orders, d.Orders...)
	}

	if err := tp.checkContext(ctx, "before applying orders"); err != nil {
		return nil, core.WrapTurnError(w.Turn, "apply", fmt.Errorf("context cancelled: %w", err))
	}
	report, err := e.referee.Apply(ctx, w, orders)
	if err != nil {
		return nil, core.WrapTurnError(w.Turn, "apply", err)
	}
	result.Report = report

	e.checkGameOver(turnLogger)
	turnLogger.Debug().
		Int("orders", len(orders)).
		Int("rejected", len(report.Rejected)).
		Ints("eliminated", report.Eliminated).
		Msg("Game step finished")
	return result, nil
}

// checkContext checks if the context is cancelled
func (tp *TurnProcessor) checkContext(ctx context.Context, phase string) error {
	select {
	case <-ctx.Done():
		tp.logger.Warn().
			Err(ctx.Err()).
			Int("turn", tp.engine.world.Turn).
			Str("phase", phase).
			Msg("Game step cancelled or timed out")
		return ctx.Err()
	default:
		return nil
	}
}
