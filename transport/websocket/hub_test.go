package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wricardo/mcp-training/matchgame/game/engine"
)

func newTestClient(hub *Hub, sessionID string) *Client {
	return &Client{
		hub:       hub,
		sessionID: sessionID,
		send:      make(chan []byte, 256),
	}
}

func testState() *engine.GameState {
	return &engine.GameState{
		Board:           engine.MustParseBoard("RBG", "BGR", "GRB"),
		Score:           42.6,
		ClicksRemaining: 7,
		Phase:           engine.PhaseIdle,
		MaxChain:        2,
	}
}

func decode(t *testing.T, data []byte) Message {
	t.Helper()
	var message Message
	require.NoError(t, json.Unmarshal(data, &message))
	return message
}

func TestNewHub(t *testing.T) {
	hub := NewHub()

	require.NotNil(t, hub)
	assert.NotNil(t, hub.sessions)
	assert.NotNil(t, hub.broadcast)
	assert.NotNil(t, hub.register)
	assert.NotNil(t, hub.unregister)
}

func TestHubRegisterClient(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, "test-session")

	hub.registerClient(client)

	require.Contains(t, hub.sessions, "test-session")
	assert.True(t, hub.sessions["test-session"][client])
	assert.Equal(t, 1, hub.ClientCount("test-session"))
}

func TestHubUnregisterClient(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, "test-session")

	hub.registerClient(client)
	hub.unregisterClient(client)

	assert.NotContains(t, hub.sessions, "test-session", "empty sessions are cleaned up")

	_, open := <-client.send
	assert.False(t, open, "send channel is closed on unregister")

	// A second unregister must not close the channel twice
	hub.unregisterClient(client)
}

func TestHubMultipleClientsInSession(t *testing.T) {
	hub := NewHub()
	sessionID := "multi-client-session"

	client1 := newTestClient(hub, sessionID)
	client2 := newTestClient(hub, sessionID)

	hub.registerClient(client1)
	hub.registerClient(client2)
	assert.Equal(t, 2, hub.ClientCount(sessionID))

	hub.unregisterClient(client1)
	assert.Equal(t, 1, hub.ClientCount(sessionID))
	assert.True(t, hub.sessions[sessionID][client2])
}

func TestHubBroadcastToSession(t *testing.T) {
	hub := NewHub()
	sessionID := "broadcast-test"
	client := newTestClient(hub, sessionID)
	other := newTestClient(hub, "other")
	hub.registerClient(client)
	hub.registerClient(other)

	hub.BroadcastToSession(sessionID, testState())

	queued := <-hub.broadcast
	hub.broadcastMessage(queued)

	select {
	case data := <-client.send:
		message := decode(t, data)
		assert.Equal(t, sessionID, message.SessionID)
		assert.Equal(t, EventStateUpdate, message.Event)
		require.NotNil(t, message.Summary)
		assert.Equal(t, 43, message.Summary.DisplayScore)
		assert.Equal(t, 7, message.Summary.ClicksRemaining)
		assert.Equal(t, []string{"RBG", "BGR", "GRB"}, message.Board)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("no message received within timeout")
	}

	assert.Empty(t, other.send, "other sessions receive nothing")
}

func TestHubBroadcastToSessionNilState(t *testing.T) {
	hub := NewHub()
	hub.BroadcastToSession("nil-state", nil)
	assert.Empty(t, hub.broadcast)
}

func TestHubBroadcastEvents(t *testing.T) {
	hub := NewHub()
	events := []engine.Event{
		{Type: engine.EventSwapped, Cells: []engine.Position{{Row: 0, Col: 0}, {Row: 0, Col: 1}}},
		{Type: engine.EventMatched, Depth: 1, ScoreDelta: 3},
	}

	hub.BroadcastEvents("events", events)

	require.Len(t, hub.broadcast, 2)
	first := <-hub.broadcast
	second := <-hub.broadcast
	assert.Equal(t, "swapped", first.Event)
	assert.Equal(t, "matched", second.Event)
	assert.Equal(t, events[1], second.Data)
}

func TestHubBroadcastEvent(t *testing.T) {
	hub := NewHub()

	hub.BroadcastEvent("event-test", "custom-event", "test-data")

	select {
	case message := <-hub.broadcast:
		assert.Equal(t, "event-test", message.SessionID)
		assert.Equal(t, "custom-event", message.Event)
		assert.Equal(t, "test-data", message.Data)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("no broadcast message received within timeout")
	}
}

func TestHubDropsWhenQueueFull(t *testing.T) {
	hub := NewHub()
	for i := 0; i < broadcastBuffer+10; i++ {
		hub.BroadcastEvent("flood", "tick", i)
	}
	assert.Len(t, hub.broadcast, broadcastBuffer)
}

func TestHubSlowClientIsDropped(t *testing.T) {
	hub := NewHub()
	client := &Client{hub: hub, sessionID: "slow", send: make(chan []byte)}
	hub.registerClient(client)

	hub.broadcastMessage(&Message{SessionID: "slow", Event: "tick"})

	assert.Equal(t, 0, hub.ClientCount("slow"))
}

func TestHubStop(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, "stop")
	hub.registerClient(client)

	done := make(chan struct{})
	go func() {
		hub.Run()
		close(done)
	}()

	hub.Stop()
	hub.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Stop")
	}
	assert.Equal(t, 0, hub.ClientCount("stop"))
}

func newWSServer(hub *Hub) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.URL.Query().Get("sessionId")
		if sessionID == "" {
			sessionID = "default"
		}
		hub.ServeWS(w, r, sessionID)
	}))
}

func TestWebSocketUpgrade(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	server := newWSServer(hub)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?sessionId=ws-test"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return hub.ClientCount("ws-test") == 1 },
		time.Second, 10*time.Millisecond)

	conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount("ws-test") == 0 },
		time.Second, 10*time.Millisecond, "session should be cleaned up after close")
}

func TestWebSocketMessageReceive(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	server := newWSServer(hub)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?sessionId=msg-test"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount("msg-test") == 1 },
		time.Second, 10*time.Millisecond)

	hub.BroadcastEvents("msg-test", []engine.Event{{Type: engine.EventGameOver, FinalScore: 42.6}})
	hub.BroadcastToSession("msg-test", testState())

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, first, err := conn.ReadMessage()
	require.NoError(t, err)
	_, second, err := conn.ReadMessage()
	require.NoError(t, err)

	event := decode(t, first)
	assert.Equal(t, "game_over", event.Event)
	data, ok := event.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 42.6, data["final_score"])

	update := decode(t, second)
	assert.Equal(t, "msg-test", update.SessionID)
	assert.Equal(t, EventStateUpdate, update.Event)
	require.NotNil(t, update.Summary)
	assert.Equal(t, 42.6, update.Summary.Score)
	assert.Len(t, update.Board, 3)
}
