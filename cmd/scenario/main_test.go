package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/config"
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/events"
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecideOnScenarioFile(t *testing.T) {
	w, err := loadWorld(filepath.Join("..", "..", "internal", "scenario", "testdata", "corridor.yaml"), config.Defaults().Mapgen, 1)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, decide(&out, testutil.NopLogger(), events.Discard, config.Defaults().Engine, "test", w))

	assert.Contains(t, out.String(), "unit 0: move (1,0) shoot 1")
	assert.Contains(t, out.String(), "4/4 evaluated against 4 replies")
}

func TestSelfPlayOnGeneratedArena(t *testing.T) {
	mc := config.Defaults().Mapgen
	mc.UnitsPerPlayer = 2
	w, err := loadWorld("", mc, 99)
	require.NoError(t, err)

	s := config.Defaults().Engine
	s.TimeBudgetMs = 1000
	bus := events.NewEventBus(testutil.NopLogger())

	var out bytes.Buffer
	require.NoError(t, selfPlay(context.Background(), &out, testutil.NopLogger(), bus, s, "test", w, 15))

	assert.Contains(t, out.String(), "turn 1\n")
	assert.Regexp(t, `(player \d wins|draw) after \d+ turns`, out.String())
}
