package main

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wricardo/mcp-training/matchgame/api"
	"github.com/wricardo/mcp-training/matchgame/game/config"
	"github.com/wricardo/mcp-training/matchgame/game/engine"
	"github.com/wricardo/mcp-training/matchgame/game/scores"
	"github.com/wricardo/mcp-training/matchgame/game/service"
	"github.com/wricardo/mcp-training/matchgame/game/session"
	"golang.org/x/exp/rand"
)

func setupGameServer(t *testing.T) (*httptest.Server, service.GameService) {
	t.Helper()

	configs, err := config.NewManager(t.TempDir())
	require.NoError(t, err)
	gameService := service.NewGameService(session.NewManager(session.WithSeed(5)), configs, scores.NewMemoryStore())

	ts := httptest.NewServer(api.NewServer(gameService, nil))
	t.Cleanup(ts.Close)
	return ts, gameService
}

func TestClient_CreateAndResume(t *testing.T) {
	ts, _ := setupGameServer(t)
	ctx := context.Background()

	client := NewClient(ts.URL)
	summary, err := client.CreateSession(ctx, "")
	require.NoError(t, err)
	require.NotEmpty(t, client.sessionID)
	assert.Equal(t, engine.DefaultClickBudget, summary.ClicksRemaining)

	other := NewClient(ts.URL)
	resumed, err := other.Resume(ctx, client.sessionID)
	require.NoError(t, err)
	assert.Equal(t, summary.ClicksRemaining, resumed.ClicksRemaining)
}

func TestClient_Errors(t *testing.T) {
	ts, _ := setupGameServer(t)
	ctx := context.Background()

	client := NewClient(ts.URL)
	_, err := client.Resume(ctx, "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")

	_, err = client.CreateSession(ctx, "unknown-config")
	assert.Error(t, err)

	_, err = client.CreateSession(ctx, "")
	require.NoError(t, err)
	_, err = client.Swap(ctx, engine.Swap{From: engine.Position{Row: 0, Col: 0}, To: engine.Position{Row: 5, Col: 5}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestBot_PlayGame(t *testing.T) {
	ts, _ := setupGameServer(t)
	ctx := context.Background()

	client := NewClient(ts.URL)
	_, err := client.CreateSession(ctx, "")
	require.NoError(t, err)

	bot := &Bot{client: client}
	res, err := bot.PlayGame(ctx)
	require.NoError(t, err)

	assert.Greater(t, res.Swaps, 0)
	assert.Greater(t, res.Score, 0)
	assert.GreaterOrEqual(t, res.MaxChain, 1)
	if !res.Stuck {
		assert.LessOrEqual(t, res.Swaps, engine.DefaultClickBudget)
	}
}

func TestBot_PlayRecordsScores(t *testing.T) {
	ts, gameService := setupGameServer(t)
	ctx := context.Background()

	client := NewClient(ts.URL)
	_, err := client.CreateSession(ctx, "")
	require.NoError(t, err)

	bot := &Bot{client: client, rng: rand.New(rand.NewSource(9))}
	results, err := bot.Play(ctx, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	finished := 0
	for _, r := range results {
		if !r.Stuck {
			finished++
		}
	}

	entries, err := gameService.GetScoreHistory(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, finished)
}

func TestBot_CancelledContext(t *testing.T) {
	ts, _ := setupGameServer(t)

	client := NewClient(ts.URL)
	_, err := client.CreateSession(context.Background(), "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	bot := &Bot{client: client}
	_, err = bot.PlayGame(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
