package game

import (
	"context"
	"fmt"
	"time"

	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/config"
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/core"
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/decision"
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/events"
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/processor"
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/rules"
	"github.com/rs/zerolog"
)

// GameConfig holds everything needed to run a self-play game
type GameConfig struct {
	World    *core.World // starting position, owned by the engine from now on
	Engine   config.EngineConfig
	MaxTurns int
	Logger   zerolog.Logger
	EventBus *events.EventBus // nil creates a private bus
	GameID   string
}

// Engine plays both sides of a game against each other: each player decides
// with its own decision engine and the referee resolves the joint orders.
type Engine struct {
	gameID     string
	world      *core.World
	players    [core.MaxPlayers]*decision.Engine
	referee    *processor.Referee
	winChecker *rules.WinConditionChecker
	eventBus   *events.EventBus
	logger     zerolog.Logger

	startTime time.Time
	gameOver  bool
	winner    int
}

// NewEngine creates a self-play engine on cfg.World
func NewEngine(ctx context.Context, cfg GameConfig) (*Engine, error) {
	logger := cfg.Logger.With().Str("component", "GameEngine").Str("game_id", cfg.GameID).Logger()

	select {
	case <-ctx.Done():
		logger.Error().Err(ctx.Err()).Msg("Engine creation cancelled or timed out")
		return nil, ctx.Err()
	default:
	}

	if cfg.World == nil {
		return nil, fmt.Errorf("%w: no starting world", core.ErrGridSize)
	}
	if cfg.EventBus == nil {
		cfg.EventBus = events.NewEventBus(cfg.Logger)
	}

	e := &Engine{
		gameID:     cfg.GameID,
		world:      cfg.World,
		referee:    processor.NewReferee(cfg.Logger, cfg.EventBus, cfg.GameID, cfg.Engine.Heuristics.MaxThrowRange),
		winChecker: rules.NewWinConditionChecker(cfg.Logger, cfg.MaxTurns),
		eventBus:   cfg.EventBus,
		logger:     logger,
		startTime:  time.Now(),
		winner:     -1,
	}
	for p := range e.players {
		e.players[p] = decision.NewEngine(decision.Config{
			Settings:  cfg.Engine,
			Logger:    cfg.Logger.With().Int("player_id", p).Logger(),
			Publisher: cfg.EventBus,
			GameID:    cfg.GameID,
		})
	}

	w := e.world
	e.eventBus.Publish(events.NewGameStartedEvent(e.gameID, w.Me, w.NumUnits, w.Grid.W, w.Grid.H))
	logger.Info().
		Int("width", w.Grid.W).
		Int("height", w.Grid.H).
		Int("units", w.NumUnits).
		Int("max_turns", cfg.MaxTurns).
		Msg("Game engine created")

	e.checkGameOver(logger)
	return e, nil
}

// Step plays one turn for both players
func (e *Engine) Step(ctx context.Context) (*TurnResult, error) {
	return NewTurnProcessor(e).ProcessTurn(ctx)
}

// Run steps until the game is over or ctx is done
func (e *Engine) Run(ctx context.Context) error {
	for !e.gameOver {
		if _, err := e.Step(ctx); err != nil {
			return err
		}
	}
	return nil
}

// UpdateSettings hands new decision settings to both players and the referee
func (e *Engine) UpdateSettings(s config.EngineConfig) {
	for _, p := range e.players {
		p.UpdateSettings(s)
	}
	e.referee.SetThrowRange(s.Heuristics.MaxThrowRange)
}

func (e *Engine) checkGameOver(logger zerolog.Logger) {
	over, winner := e.winChecker.CheckGameOver(e.world)
	if !over || e.gameOver {
		return
	}
	e.gameOver = true
	e.winner = winner
	duration := time.Since(e.startTime)
	logger.Info().
		Int("winner", winner).
		Int("final_turn", e.world.Turn).
		Dur("duration", duration).
		Msg("Game over")
	e.eventBus.Publish(events.NewGameEndedEvent(e.gameID, winner, duration, e.world.Turn))
}

// World returns a copy of the current world
func (e *Engine) World() *core.World { return e.world.Clone() }
func (e *Engine) IsGameOver() bool   { return e.gameOver }
func (e *Engine) EventBus() *events.EventBus {
	return e.eventBus
}

// GetWinner returns the winning player, or -1 for a draw or a running game
func (e *Engine) GetWinner() int {
	if !e.gameOver {
		return -1
	}
	return e.winner
}
