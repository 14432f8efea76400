// Package websocket pushes live game updates to browser clients.
//
// A central Hub owns every connection, grouped by session ID. Clients pick
// their session with a query parameter (?sessionId=abc1) when connecting and
// only receive messages for that session. The connection is one-way: swaps
// go through the HTTP API, and whatever a client sends is read and discarded
// to keep the connection alive.
//
// Outgoing messages are JSON, one per frame:
//
//	{"session_id":"abc1","event":"matched","data":{...engine.Event...}}
//	{"session_id":"abc1","event":"state_update","summary":{...},"board":["RBGY",...]}
//
// Engine events are forwarded in resolution order so a client can animate
// each cascade level, followed by a state_update carrying the final board.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//	defer hub.Stop()
//
//	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("sessionId"))
//	})
//
// Broadcasts never block the caller. When the queue is full the message is
// dropped and logged, and a client whose send buffer is full is disconnected.
package websocket
