package rules

import (
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/core"
	"github.com/rs/zerolog"
)

// WinConditionChecker handles game over detection and winner determination
type WinConditionChecker struct {
	logger   zerolog.Logger
	maxTurns int
}

// NewWinConditionChecker creates a new win condition checker.
// maxTurns <= 0 disables the turn limit.
func NewWinConditionChecker(logger zerolog.Logger, maxTurns int) *WinConditionChecker {
	return &WinConditionChecker{
		logger:   logger.With().Str("component", "WinConditionChecker").Logger(),
		maxTurns: maxTurns,
	}
}

// CheckGameOver determines if the game is over.
// Returns (isGameOver, winnerID); winnerID is -1 for a draw or a running game.
func (wc *WinConditionChecker) CheckGameOver(w *core.World) (bool, int) {
	wc.logger.Debug().Int("turn", w.Turn).Msg("Checking game over conditions")

	var alive [core.MaxPlayers]int
	aliveCount := 0
	lastAliveID := -1
	for p := 0; p < core.MaxPlayers; p++ {
		alive[p] = w.LiveCount(p)
		if alive[p] > 0 {
			aliveCount++
			lastAliveID = p
		}
	}

	// A side without live units loses immediately
	if aliveCount < core.MaxPlayers {
		winnerID := -1
		if aliveCount == 1 {
			winnerID = lastAliveID
			wc.logger.Info().Int("winner_player_id", winnerID).Msg("Winner determined")
		} else {
			wc.logger.Info().Msg("No winner found (all units eliminated simultaneously)")
		}
		return true, winnerID
	}

	// w.Turn is the next turn to play, so maxTurns turns have been played once it exceeds the limit
	if wc.maxTurns <= 0 || w.Turn <= wc.maxTurns {
		return false, -1
	}

	// Turn limit: more survivors wins, then the drier side
	winnerID := -1
	switch {
	case alive[0] != alive[1]:
		if alive[0] > alive[1] {
			winnerID = 0
		} else {
			winnerID = 1
		}
	default:
		w0, w1 := w.TotalWetness(0), w.TotalWetness(1)
		if w0 < w1 {
			winnerID = 0
		} else if w1 < w0 {
			winnerID = 1
		}
	}

	wc.logger.Info().
		Int("turn", w.Turn).
		Int("winner_player_id", winnerID).
		Ints("alive", alive[:]).
		Msg("Turn limit reached")
	return true, winnerID
}
