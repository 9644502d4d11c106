package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/common"
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/config"
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/core"
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/decision"
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/events"
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/events/subscribers"
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/protocol"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	logFormat := flag.String("log-format", "", "Log format (console, json) (empty to use config default)")
	timeBudget := flag.Int("time-budget", -1, "Evaluation time budget in milliseconds (-1 to use config default)")
	maxCommandsMe := flag.Int("max-commands-me", -1, "Joint commands kept for the controlled player (-1 to use config default)")
	maxCommandsOpp := flag.Int("max-commands-opponent", -1, "Joint commands kept for the opponent (-1 to use config default)")
	watchConfig := flag.Bool("watch-config", false, "Reload engine settings when the config file changes")
	devMode := flag.Bool("dev", false, "Log full event payloads")
	flag.Parse()

	// Logs go to stderr, stdout carries the orders
	if err := config.Init(*configPath); err != nil {
		bootLogger := common.NewLogger(os.Stderr, "info", "console")
		bootLogger.Fatal().Err(err).Msg("Failed to initialize config")
	}

	if *timeBudget != -1 {
		config.Set("engine.time_budget_ms", *timeBudget)
	}
	if *maxCommandsMe != -1 {
		config.Set("engine.max_commands_me", *maxCommandsMe)
	}
	if *maxCommandsOpp != -1 {
		config.Set("engine.max_commands_opponent", *maxCommandsOpp)
	}
	cfg := config.Get()
	if *logLevel == "" {
		*logLevel = cfg.Logging.Level
	}
	if *logFormat == "" {
		*logFormat = cfg.Logging.Format
	}

	logger := common.NewLogger(os.Stderr, *logLevel, *logFormat)
	if err := config.Validate(cfg); err != nil {
		logger.Fatal().Err(err).Msg("Invalid settings")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessionID := uuid.NewString()
	logger = logger.With().Str("session_id", sessionID).Logger()

	bus := events.NewEventBus(logger)
	eventLogger := subscribers.NewLoggerSubscriber("event-logger", logger, common.ParseLevel(*logLevel))
	eventLogger.SetDevMode(*devMode)
	bus.Subscribe(eventLogger)
	stats := subscribers.NewStatsSubscriber("decision-stats")
	bus.Subscribe(stats)

	engine := decision.NewEngine(decision.Config{
		Settings:  cfg.Engine,
		Logger:    logger,
		Publisher: bus,
		GameID:    sessionID,
	})

	if *watchConfig {
		config.WatchConfig(func(c *config.Config) {
			logger.Info().Str("file", config.ConfigFilePath()).Int("time_budget_ms", c.Engine.TimeBudgetMs).Msg("Config reloaded")
			engine.UpdateSettings(c.Engine)
		})
	}

	logger.Info().
		Int("time_budget_ms", cfg.Engine.TimeBudgetMs).
		Int("max_commands_me", cfg.Engine.MaxCommandsMe).
		Int("max_commands_opponent", cfg.Engine.MaxCommandsOpponent).
		Bool("watch_config", *watchConfig).
		Msg("Starting bot")

	started := time.Now()
	turns, err := run(ctx, logger, bus, engine, sessionID, os.Stdin, os.Stdout)
	bus.Publish(events.NewGameEndedEvent(sessionID, -1, time.Since(started), turns))

	snap := stats.Snapshot()
	done := logger.Info()
	if err != nil {
		done = logger.Error().Err(err)
	}
	done.
		Int("turns", turns).
		Int("decisions", snap.Decisions).
		Int("no_decisions", snap.NoDecisions).
		Int("truncations", snap.Truncations).
		Int("overflows", snap.Overflows).
		Dur("mean_elapsed", snap.MeanElapsed()).
		Dur("max_elapsed", snap.MaxElapsed).
		Msg("Bot stopped")
	if err != nil {
		os.Exit(1)
	}
}

// run plays turns until the input ends or ctx is cancelled and returns the
// number of turns read
func run(ctx context.Context, logger zerolog.Logger, bus events.Publisher, engine *decision.Engine, sessionID string, in io.Reader, out io.Writer) (int, error) {
	reader := protocol.NewReader(in)
	writer := protocol.NewWriter(out)

	world, err := reader.ReadInit()
	if err != nil {
		return 0, err
	}
	bus.Publish(events.NewGameStartedEvent(sessionID, world.Me, world.NumUnits, world.Grid.W, world.Grid.H))

	turn := 0
	for {
		select {
		case <-ctx.Done():
			logger.Info().Err(ctx.Err()).Int("turn", turn).Msg("Stopping on signal")
			return turn, nil
		default:
		}

		if err := reader.ReadTick(world, turn+1); err != nil {
			if errors.Is(err, io.EOF) {
				return turn, nil
			}
			return turn, err
		}
		turn++
		bus.Publish(events.NewTurnStartedEvent(sessionID, turn, world.LiveCount(0)+world.LiveCount(1)))

		d, err := engine.Decide(world)
		if err != nil {
			if errors.Is(err, core.ErrNoSimulationResult) {
				continue
			}
			return turn, err
		}
		for _, diag := range d.Diagnostics {
			logger.Debug().Err(diag).Int("turn", turn).Msg("Decision diagnostic")
		}
		if err := writer.WriteOrders(world, d.Orders, d.Elapsed); err != nil {
			return turn, err
		}
	}
}
