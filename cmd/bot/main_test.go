package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/config"
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/decision"
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/events"
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const corridorInit = "0\n2\n1 0 1 1 50 0\n2 1 1 1 10 0\n3 1\n0 0 0 1 0 0 2 0 0\n"
const corridorTick = "2\n1 0 0 0 0 0\n2 2 0 0 0 0\n1\n"

func newBotEngine() *decision.Engine {
	return decision.NewEngine(decision.Config{
		Settings: config.Defaults().Engine,
		Logger:   testutil.NopLogger(),
	})
}

func TestRunCorridor(t *testing.T) {
	in := strings.NewReader(corridorInit + corridorTick + corridorTick)
	var out bytes.Buffer

	turns, err := run(context.Background(), testutil.NopLogger(), events.Discard, newBotEngine(), "test", in, &out)
	require.NoError(t, err)
	assert.Equal(t, 2, turns)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "1;MOVE 1 0;SHOOT 2;MESSAGE "), line)
		assert.True(t, strings.HasSuffix(line, "ms"), line)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer

	turns, err := run(ctx, testutil.NopLogger(), events.Discard, newBotEngine(), "test", strings.NewReader(corridorInit+corridorTick), &out)
	require.NoError(t, err)
	assert.Zero(t, turns)
	assert.Empty(t, out.String())
}

func TestRunReportsBrokenInput(t *testing.T) {
	var out bytes.Buffer
	_, err := run(context.Background(), testutil.NopLogger(), events.Discard, newBotEngine(), "test", strings.NewReader(corridorInit+"2\n1 0 0"), &out)
	assert.Error(t, err)
}
