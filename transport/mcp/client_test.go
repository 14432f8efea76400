package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wricardo/mcp-training/matchgame/game/engine"
	"github.com/wricardo/mcp-training/matchgame/game/service"
)

func toolRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func sampleState() *engine.GameState {
	return &engine.GameState{
		Board:           engine.MustParseBoard("RB*", "G@Y", "#RB"),
		Score:           31.6,
		ClicksRemaining: 4,
		ConfigName:      "normal",
		Difficulty:      engine.DifficultyNormal,
		MaxChain:        3,
	}
}

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8080/")

	require.NotNil(t, client)
	assert.Equal(t, "http://localhost:8080", client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.GetMCPServer())
}

func TestClient_apiCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"id": "test-session"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]interface{}
	require.NoError(t, client.apiCall(context.Background(), "GET", "/api", nil, &response))
	assert.Equal(t, "test-session", response["id"])
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	err := client.apiCall(context.Background(), "GET", "/api", nil, nil)
	assert.Error(t, err)
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer server.Close()

	err := NewClient(server.URL).apiCall(context.Background(), "GET", "/api", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API error")
}

func TestClient_apiCall_ErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "game is over"})
	}))
	defer server.Close()

	err := NewClient(server.URL).apiCall(context.Background(), "POST", "/api", nil, nil)
	require.Error(t, err)
	assert.Equal(t, "game is over", err.Error())
}

func TestClient_createSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/api/sessions", r.URL.Path)

		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "hard", body["config_id"])

		json.NewEncoder(w).Encode(service.SessionInfo{
			ID:         "ab12",
			ConfigName: "hard",
			GameState:  sampleState(),
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.handleCreateSession(context.Background(), toolRequest("create_session", map[string]interface{}{"config_id": "hard"}))
	require.NoError(t, err)

	text := resultText(t, result)
	assert.Contains(t, text, "Created session: ab12")
	assert.Contains(t, text, "Score: 32")
}

func TestClient_swap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sessions/ab12/swap", r.URL.Path)

		var body struct {
			From  engine.Position `json:"from"`
			To    engine.Position `json:"to"`
			Reset bool            `json:"reset"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, engine.Position{Row: 6, Col: 2}, body.From)
		assert.Equal(t, engine.Position{Row: 7, Col: 2}, body.To)

		state := sampleState()
		json.NewEncoder(w).Encode(service.SwapResult{
			Success:    true,
			Message:    "Chain x3, +14 points",
			ChainDepth: 3,
			ScoreDelta: 14.2,
			GameState:  state,
			Summary:    state.Summary(),
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.handleSwap(context.Background(), toolRequest("swap", map[string]interface{}{
		"session_id": "ab12",
		"from_row":   float64(6),
		"from_col":   float64(2),
		"to_row":     float64(7),
		"to_col":     float64(2),
		"intent":     "clear the bottom row",
	}))
	require.NoError(t, err)

	text := resultText(t, result)
	assert.Contains(t, text, "✓ Swap resolved")
	assert.Contains(t, text, "Chain depth: 3, points: +14")
}

func TestClient_swapMissingCoordinate(t *testing.T) {
	client := NewClient("http://localhost:1")
	result, err := client.handleSwap(context.Background(), toolRequest("swap", map[string]interface{}{
		"session_id": "ab12",
		"from_row":   float64(0),
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "from_col is required")
}

func TestClient_swapAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid swap: not adjacent"})
	}))
	defer server.Close()

	result, err := NewClient(server.URL).handleSwap(context.Background(), toolRequest("swap", map[string]interface{}{
		"session_id": "ab12", "from_row": 0.0, "from_col": 0.0, "to_row": 3.0, "to_col": 3.0,
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "not adjacent")
}

func TestParseSwaps(t *testing.T) {
	swaps, err := parseSwaps([]interface{}{
		[]interface{}{0.0, 1.0, 0.0, 2.0},
		[]interface{}{5.0, 5.0, 6.0, 5.0},
	})
	require.NoError(t, err)
	require.Len(t, swaps, 2)
	assert.Equal(t, engine.Swap{From: engine.Position{Row: 5, Col: 5}, To: engine.Position{Row: 6, Col: 5}}, swaps[1])

	_, err = parseSwaps([]interface{}{[]interface{}{0.0, 1.0}})
	assert.Error(t, err)

	_, err = parseSwaps([]interface{}{[]interface{}{0.0, "a", 0.0, 2.0}})
	assert.Error(t, err)
}

func TestClient_bulkSwap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sessions/ab12/bulk-swap", r.URL.Path)

		var body struct {
			Swaps []engine.Swap `json:"swaps"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Swaps, 2)

		json.NewEncoder(w).Encode(service.BulkSwapResult{
			SwapsExecuted:  1,
			RequestedSwaps: 2,
			StoppedReason:  "swap 2 rejected: invalid swap",
			StoppedOnSwap:  2,
			EndScore:       9,
			ScoreDelta:     9,
			Steps: []service.SwapStep{
				{Idx: 1, From: body.Swaps[0].From, To: body.Swaps[0].To, Accepted: true, ChainDepth: 2, ScoreDelta: 9, ClicksAfter: 19},
			},
			GameState: sampleState(),
		})
	}))
	defer server.Close()

	result, err := NewClient(server.URL).handleBulkSwap(context.Background(), toolRequest("bulk_swap", map[string]interface{}{
		"session_id": "ab12",
		"swaps": []interface{}{
			[]interface{}{0.0, 0.0, 0.0, 1.0},
			[]interface{}{0.0, 0.0, 4.0, 4.0},
		},
	}))
	require.NoError(t, err)

	text := resultText(t, result)
	assert.Contains(t, text, "executed 1/2 swaps")
	assert.Contains(t, text, "Stopped on swap 2")
	assert.Contains(t, text, "1. (0,0)<->(0,1) resolved chain=2 +9 clicks=19")
}

func TestClient_describeCell(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := sampleState()
		json.NewEncoder(w).Encode(map[string]interface{}{"summary": state.Summary(), "state": state})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	tests := []struct {
		row, col float64
		want     string
		isError  bool
	}{
		{0, 0, "Cell (0, 0): R - red tile", false},
		{0, 2, "Cell (0, 2): * - Bomb", false},
		{1, 1, "Cell (1, 1): @ - Rainbow", false},
		{2, 0, "Cell (2, 0): # - Sealed", false},
		{3, 0, "out of bounds", true},
	}

	for _, tt := range tests {
		result, err := client.handleDescribeCell(context.Background(), toolRequest("describe_cell", map[string]interface{}{
			"session_id": "ab12", "row": tt.row, "col": tt.col,
		}))
		require.NoError(t, err)
		assert.Equal(t, tt.isError, result.IsError)
		assert.Contains(t, resultText(t, result), tt.want)
	}
}

func TestFormatBoard(t *testing.T) {
	out := formatBoard(engine.MustParseBoard("RB", "GY"))
	assert.Equal(t, "    0 1 \n 0  R B \n 1  G Y \n", out)
	assert.Empty(t, formatBoard(nil))
}

func TestFormatGameState(t *testing.T) {
	result := formatGameState(sampleState())

	for _, field := range []string{"Score: 32", "Clicks remaining: 4", "Config: normal (normal)", "Best chain: 3", " 1  G @ Y"} {
		assert.Contains(t, result, field)
	}
	assert.NotContains(t, result, "GAME OVER")
	assert.Equal(t, "No game state", formatGameState(nil))
}

func TestFormatGameState_GameOver(t *testing.T) {
	state := sampleState()
	state.ClicksRemaining = 0
	state.GameOver = true

	assert.Contains(t, formatGameState(state), "🏁 GAME OVER - final score 32")
}

func TestFormatSwapResult_NullMove(t *testing.T) {
	result := formatSwapResult(&service.SwapResult{NullMove: true, Message: "No match, swap reverted", GameState: sampleState()})
	assert.Contains(t, result, "no click used")
	assert.NotContains(t, result, "Chain depth")
}

func TestFormatHints(t *testing.T) {
	assert.Equal(t, "No resolving swaps available", formatHints(&service.HintsResponse{}))

	out := formatHints(&service.HintsResponse{
		Swaps: []engine.Swap{{From: engine.Position{Row: 1, Col: 1}, To: engine.Position{Row: 1, Col: 2}}},
		Total: 6,
	})
	assert.Contains(t, out, "(1 of 6)")
	assert.Contains(t, out, "- (1,1)<->(1,2)")
}

func TestFormatScores(t *testing.T) {
	assert.Equal(t, "No finished games yet", formatScores(nil))
}

func TestGameInstructions(t *testing.T) {
	result, err := NewClient("http://localhost:1").handleGameInstructions(context.Background(), toolRequest("game_instructions", nil))
	require.NoError(t, err)

	text := resultText(t, result)
	assert.True(t, strings.HasPrefix(text, "Match-3 Game"))
	assert.Contains(t, text, "+1000")
}
