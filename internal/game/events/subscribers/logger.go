package subscribers

import (
	"encoding/json"

	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/events"
	"github.com/rs/zerolog"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// isDiagnostic reports the event types that describe a degraded decision
func isDiagnostic(eventType string) bool {
	switch eventType {
	case events.TypeCommandsOverflow, events.TypeEvaluationTruncated, events.TypeTurnNoDecision, events.TypeOrderRejected:
		return true
	}
	return false
}

// HandleEvent processes an event by logging it.
// Diagnostics are raised to at least warn level.
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp()).
		Logger()

	level := ls.logLevel
	if isDiagnostic(event.Type()) && level < zerolog.WarnLevel {
		level = zerolog.WarnLevel
	}

	var logEvent *zerolog.Event
	switch level {
	case zerolog.DebugLevel:
		logEvent = eventLogger.Debug()
	case zerolog.InfoLevel:
		logEvent = eventLogger.Info()
	case zerolog.WarnLevel:
		logEvent = eventLogger.Warn()
	case zerolog.ErrorLevel:
		logEvent = eventLogger.Error()
	default:
		logEvent = eventLogger.Info()
	}

	switch e := event.(type) {
	case *events.GameStartedEvent:
		logEvent.
			Int("player_id", e.PlayerID).
			Int("num_units", e.NumUnits).
			Int("map_width", e.MapWidth).
			Int("map_height", e.MapHeight)

	case *events.GameEndedEvent:
		logEvent.
			Int("winner", e.Winner).
			Dur("duration", e.Duration).
			Int("final_turn", e.FinalTurn)

	case *events.TurnStartedEvent:
		logEvent.
			Int("turn", e.TurnNumber).
			Int("live_units", e.LiveUnits)

	case *events.TurnDecidedEvent:
		logEvent.
			Int("turn", e.TurnNumber).
			Int("player_id", e.PlayerID).
			Int("orders", e.Orders).
			Float64("score", e.Score).
			Int("evaluated", e.Evaluated).
			Int("candidates", e.Candidates).
			Int("opponent_replies", e.OpponentReplies).
			Dur("elapsed", e.Elapsed)

	case *events.TurnNoDecisionEvent:
		logEvent.
			Int("turn", e.TurnNumber).
			Int("player_id", e.PlayerID).
			Str("reason", e.Reason)

	case *events.CommandsOverflowEvent:
		logEvent.
			Int("turn", e.TurnNumber).
			Int("player_id", e.PlayerID).
			Int("capacity", e.Capacity)

	case *events.EvaluationTruncatedEvent:
		logEvent.
			Int("turn", e.TurnNumber).
			Int("evaluated", e.Evaluated).
			Int("candidates", e.Candidates).
			Dur("elapsed", e.Elapsed).
			Dur("budget", e.Budget)

	case *events.OrderRejectedEvent:
		logEvent.
			Int("turn", e.TurnNumber).
			Int("unit_id", e.UnitID).
			Str("order", e.Order).
			Str("reason", e.Reason)

	case *events.UnitEliminatedEvent:
		logEvent.
			Int("turn", e.TurnNumber).
			Int("unit_id", e.UnitID).
			Int("player_id", e.PlayerID)
	}

	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Game event")
}
