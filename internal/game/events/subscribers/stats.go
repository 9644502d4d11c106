package subscribers

import (
	"sync"
	"time"

	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/events"
)

// DecisionStats aggregates decision diagnostics over a game
type DecisionStats struct {
	Decisions    int
	NoDecisions  int
	Overflows    int
	Truncations  int
	Rejections   int
	Eliminations int
	TotalElapsed time.Duration
	MaxElapsed   time.Duration
}

// MeanElapsed returns the average decision time
func (s DecisionStats) MeanElapsed() time.Duration {
	if s.Decisions == 0 {
		return 0
	}
	return s.TotalElapsed / time.Duration(s.Decisions)
}

// StatsSubscriber counts decision events
type StatsSubscriber struct {
	id    string
	mu    sync.Mutex
	stats DecisionStats
}

// NewStatsSubscriber creates a new stats subscriber
func NewStatsSubscriber(id string) *StatsSubscriber {
	return &StatsSubscriber{id: id}
}

// ID returns the subscriber's unique identifier
func (s *StatsSubscriber) ID() string {
	return s.id
}

// InterestedIn returns true for the event types that feed the counters
func (s *StatsSubscriber) InterestedIn(eventType string) bool {
	switch eventType {
	case events.TypeTurnDecided, events.TypeTurnNoDecision, events.TypeCommandsOverflow,
		events.TypeEvaluationTruncated, events.TypeOrderRejected, events.TypeUnitEliminated:
		return true
	}
	return false
}

// HandleEvent updates the counters
func (s *StatsSubscriber) HandleEvent(event events.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch e := event.(type) {
	case *events.TurnDecidedEvent:
		s.stats.Decisions++
		s.stats.TotalElapsed += e.Elapsed
		if e.Elapsed > s.stats.MaxElapsed {
			s.stats.MaxElapsed = e.Elapsed
		}
	case *events.TurnNoDecisionEvent:
		s.stats.NoDecisions++
	case *events.CommandsOverflowEvent:
		s.stats.Overflows++
	case *events.EvaluationTruncatedEvent:
		s.stats.Truncations++
	case *events.OrderRejectedEvent:
		s.stats.Rejections++
	case *events.UnitEliminatedEvent:
		s.stats.Eliminations++
	}
}

// Snapshot returns a copy of the current counters
func (s *StatsSubscriber) Snapshot() DecisionStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}
