package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/common"
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/config"
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game"
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/core"
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/decision"
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/events"
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/events/subscribers"
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/mapgen"
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/scenario"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	scenarioPath := flag.String("scenario", "", "Scenario YAML file (empty to generate an arena)")
	savePath := flag.String("save", "", "Write the starting position to this YAML file")
	mode := flag.String("mode", "decide", "decide: one decision for the controlled player, selfplay: play both sides to the end")
	maxTurns := flag.Int("turns", -1, "Turn limit for self-play (-1 to use config default)")
	seed := flag.Int64("seed", -1, "Arena generation seed (-1 to use config default, 0 for time based)")
	timeBudget := flag.Int("time-budget", -1, "Evaluation time budget in milliseconds (-1 to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	logFormat := flag.String("log-format", "", "Log format (console, json) (empty to use config default)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		bootLogger := common.NewLogger(os.Stderr, "info", "console")
		bootLogger.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if *timeBudget != -1 {
		config.Set("engine.time_budget_ms", *timeBudget)
	}
	cfg := config.Get()
	if *maxTurns == -1 {
		*maxTurns = cfg.SelfPlay.MaxTurns
	}
	if *seed == -1 {
		*seed = cfg.SelfPlay.Seed
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	if *logLevel == "" {
		*logLevel = cfg.Logging.Level
	}
	if *logFormat == "" {
		*logFormat = cfg.Logging.Format
	}

	gameID := uuid.NewString()
	logger := common.NewLogger(os.Stderr, *logLevel, *logFormat).With().Str("game_id", gameID).Logger()

	w, err := loadWorld(*scenarioPath, cfg.Mapgen, *seed)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to build starting position")
	}
	if *savePath != "" {
		if err := scenario.Save(*savePath, scenario.FromWorld(gameID, w)); err != nil {
			logger.Fatal().Err(err).Msg("Failed to save scenario")
		}
		logger.Info().Str("path", *savePath).Msg("Scenario saved")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus := events.NewEventBus(logger)
	bus.Subscribe(subscribers.NewLoggerSubscriber("event-logger", logger, common.ParseLevel(*logLevel)))
	stats := subscribers.NewStatsSubscriber("decision-stats")
	bus.Subscribe(stats)

	switch *mode {
	case "decide":
		err = decide(os.Stdout, logger, bus, cfg.Engine, gameID, w)
	case "selfplay":
		err = selfPlay(ctx, os.Stdout, logger, bus, cfg.Engine, gameID, w, *maxTurns)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("Run failed")
	}

	snap := stats.Snapshot()
	logger.Info().
		Int("decisions", snap.Decisions).
		Int("truncations", snap.Truncations).
		Int("eliminations", snap.Eliminations).
		Dur("mean_elapsed", snap.MeanElapsed()).
		Dur("max_elapsed", snap.MaxElapsed).
		Msg("Done")
}

func loadWorld(path string, mc config.MapgenConfig, seed int64) (*core.World, error) {
	if path != "" {
		s, err := scenario.Load(path)
		if err != nil {
			return nil, err
		}
		return s.World()
	}
	return mapgen.NewGenerator(mapgen.DefaultMapConfig(mc), rand.New(rand.NewSource(seed))).Generate()
}

func decide(out io.Writer, logger zerolog.Logger, bus events.Publisher, s config.EngineConfig, gameID string, w *core.World) error {
	engine := decision.NewEngine(decision.Config{Settings: s, Logger: logger, Publisher: bus, GameID: gameID})
	d, err := engine.Decide(w)
	if err != nil {
		return err
	}

	printWorld(out, w)
	fmt.Fprintf(out, "player %d, score %.3f, %d/%d evaluated against %d replies in %s\n",
		d.Player, d.Score, d.Evaluated, d.Candidates, d.OpponentReplies, d.Elapsed)
	for _, o := range d.Orders {
		fmt.Fprintf(out, "  unit %d: %s\n", o.UnitID, o)
	}
	for _, diag := range d.Diagnostics {
		fmt.Fprintf(out, "  note: %v\n", diag)
	}
	return nil
}

func selfPlay(ctx context.Context, out io.Writer, logger zerolog.Logger, bus *events.EventBus, s config.EngineConfig, gameID string, w *core.World, maxTurns int) error {
	g, err := game.NewEngine(ctx, game.GameConfig{
		World:    w,
		Engine:   s,
		MaxTurns: maxTurns,
		Logger:   logger,
		EventBus: bus,
		GameID:   gameID,
	})
	if err != nil {
		return err
	}

	printWorld(out, g.World())
	for !g.IsGameOver() {
		res, err := g.Step(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "turn %d\n", res.Turn)
		for p, d := range res.Decisions {
			if d == nil {
				fmt.Fprintf(out, "  player %d holds\n", p)
				continue
			}
			for _, o := range d.Orders {
				fmt.Fprintf(out, "  player %d unit %d: %s\n", p, o.UnitID, o)
			}
		}
		for _, id := range res.Report.Eliminated {
			fmt.Fprintf(out, "  unit %d eliminated\n", id)
		}
	}

	final := g.World()
	printWorld(out, final)
	if winner := g.GetWinner(); winner >= 0 {
		fmt.Fprintf(out, "player %d wins after %d turns\n", winner, final.Turn-1)
	} else {
		fmt.Fprintf(out, "draw after %d turns\n", final.Turn-1)
	}
	return nil
}

// printWorld draws the grid with units as player-tagged digits and lists unit states
func printWorld(out io.Writer, w *core.World) {
	rows := w.Grid.Rows()
	cells := make([][]byte, len(rows))
	for y, r := range rows {
		cells[y] = []byte(r)
	}
	for id := 0; id < w.NumUnits; id++ {
		u := w.Units[id]
		if u.Alive {
			cells[u.Pos.Y][u.Pos.X] = byte('0' + id)
		}
	}
	var b strings.Builder
	for _, r := range cells {
		b.Write(r)
		b.WriteByte('\n')
	}
	fmt.Fprint(out, b.String())
	for id := 0; id < w.NumUnits; id++ {
		u := w.Units[id]
		if !u.Alive {
			continue
		}
		fmt.Fprintf(out, "  unit %d (player %d) at %s wetness %d cooldown %d bombs %d\n",
			id, w.PlayerOf(id), u.Pos, u.Wetness, u.Cooldown, u.Bombs)
	}
}
