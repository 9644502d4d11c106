package decision

import (
	"fmt"
	"sync"
	"time"

	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/config"
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/core"
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/events"
	"github.com/rs/zerolog"
)

// Config holds everything needed to build an Engine
type Config struct {
	Settings  config.EngineConfig
	Logger    zerolog.Logger
	Publisher events.Publisher // nil discards events
	GameID    string
	Clock     func() time.Time // nil uses time.Now
}

// Decision is the outcome of one turn for the controlled player
type Decision struct {
	Turn            int
	Player          int
	Orders          []core.Order
	Score           float64
	Evaluated       int
	Candidates      int
	OpponentReplies int
	Elapsed         time.Duration
	Diagnostics     []error
}

// Engine runs the full decision pipeline for one player. It keeps its
// buffers between turns and is not safe for concurrent Decide calls.
type Engine struct {
	logger    zerolog.Logger
	publisher events.Publisher
	gameID    string
	now       func() time.Time

	mu       sync.Mutex
	pending  *config.EngineConfig
	settings config.EngineConfig

	grid *core.Grid
	tick *Tick
	asm  *Assembler
	comb *Combinator
	eval *Evaluator
}

// NewEngine creates a decision engine
func NewEngine(cfg Config) *Engine {
	if cfg.Publisher == nil {
		cfg.Publisher = events.Discard
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Engine{
		logger:    cfg.Logger.With().Str("component", "DecisionEngine").Logger(),
		publisher: cfg.Publisher,
		gameID:    cfg.GameID,
		now:       cfg.Clock,
		settings:  cfg.Settings,
	}
}

// UpdateSettings replaces the engine settings from the next turn on.
// It may be called from another goroutine.
func (e *Engine) UpdateSettings(s config.EngineConfig) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pending = &s
}

// Settings returns the settings the engine currently runs with
func (e *Engine) Settings() config.EngineConfig {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pending != nil {
		return *e.pending
	}
	return e.settings
}

// prepare (re)builds the pipeline when the grid or the settings changed
func (e *Engine) prepare(w *core.World) {
	e.mu.Lock()
	changed := e.pending != nil
	if changed {
		e.settings = *e.pending
		e.pending = nil
	}
	e.mu.Unlock()

	if !changed && e.tick != nil && e.grid == w.Grid {
		return
	}

	s := e.settings
	e.grid = w.Grid
	e.tick = NewTick(s, w.Grid)
	gen := NewGenerator(s, e.tick.Fields)
	e.asm = NewAssembler(gen, s.MaxCommandsPerUnit, s.MaxCandidates)
	e.comb = NewCombinator()
	e.eval = NewEvaluator(NewSimulator(NewContextPool(s.ContextPoolSize)), s.Weights, s.TimeBudget(), e.now)

	e.logger.Debug().
		Int("width", w.Grid.W).
		Int("height", w.Grid.H).
		Int("time_budget_ms", s.TimeBudgetMs).
		Int("max_commands_me", s.MaxCommandsMe).
		Int("max_commands_opponent", s.MaxCommandsOpponent).
		Msg("Decision pipeline prepared")
}

// Decide chooses the orders of every live unit of w.Me. The world is not
// modified. When no joint command could be evaluated the returned error
// wraps core.ErrNoSimulationResult and no orders are produced.
func (e *Engine) Decide(w *core.World) (*Decision, error) {
	start := e.now()
	me, opp := w.Me, core.Opponent(w.Me)
	turnLogger := e.logger.With().Int("turn", w.Turn).Int("player_id", me).Logger()

	if w.LiveCount(me) == 0 {
		return nil, e.noDecision(w, turnLogger, "no live units")
	}

	e.prepare(w)
	s := e.settings
	t := e.tick
	t.Reset(w)

	e.asm.Assemble(t)

	d := &Decision{Turn: w.Turn, Player: me}
	capacity := [core.MaxPlayers]int{}
	capacity[me] = s.MaxCommandsMe
	capacity[opp] = s.MaxCommandsOpponent
	for p := 0; p < core.MaxPlayers; p++ {
		if e.comb.Build(t, p, capacity[p]) {
			continue
		}
		d.Diagnostics = append(d.Diagnostics, core.WrapPlayerError(p, "combine", fmt.Errorf("%w (%d)", core.ErrCommandOverflow, capacity[p])))
		e.publisher.Publish(events.NewCommandsOverflowEvent(e.gameID, w.Turn, p, capacity[p]))
	}

	d.Candidates = len(t.Joint[me].List)
	d.OpponentReplies = len(t.Joint[opp].List)

	evalStart := e.now()
	if e.eval.Evaluate(t) {
		elapsed := e.now().Sub(evalStart)
		d.Diagnostics = append(d.Diagnostics, fmt.Errorf("%w: %d of %d evaluated", core.ErrBudgetExceeded, len(t.Results), d.Candidates))
		e.publisher.Publish(events.NewEvaluationTruncatedEvent(e.gameID, w.Turn, len(t.Results), d.Candidates, elapsed, s.TimeBudget()))
	}
	d.Evaluated = len(t.Results)

	if len(t.Results) == 0 {
		return nil, e.noDecision(w, turnLogger, "evaluation produced no result")
	}

	best := t.Results[0]
	chosen := &t.Joint[me].List[best.Mine]
	r := w.Rosters[me]
	d.Orders = make([]core.Order, 0, r.Count)
	for id := r.Start; id <= r.Stop; id++ {
		if w.Units[id].Alive {
			d.Orders = append(d.Orders, t.Command(id, chosen).Order(id))
		}
	}
	d.Score = best.Score
	d.Elapsed = e.now().Sub(start)

	turnLogger.Debug().
		Int("orders", len(d.Orders)).
		Float64("score", d.Score).
		Int("evaluated", d.Evaluated).
		Int("candidates", d.Candidates).
		Int("opponent_replies", d.OpponentReplies).
		Dur("elapsed", d.Elapsed).
		Msg("Turn decided")
	e.publisher.Publish(events.NewTurnDecidedEvent(e.gameID, w.Turn, me, len(d.Orders), d.Score, d.Evaluated, d.Candidates, d.OpponentReplies, d.Elapsed))

	return d, nil
}

func (e *Engine) noDecision(w *core.World, logger zerolog.Logger, reason string) error {
	err := core.WrapTurnError(w.Turn, "decide", fmt.Errorf("%w: %s", core.ErrNoSimulationResult, reason))
	logger.Warn().Err(err).Msg("No orders this turn")
	e.publisher.Publish(events.NewTurnNoDecisionEvent(e.gameID, w.Turn, w.Me, reason))
	return err
}
