// Package api provides the HTTP REST API for the match-3 game server.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create a session ({"config_id": "hard"}, empty for default)
//   - GET /api/sessions - List sessions (?sort=accessed|created|score&order=asc|desc&limit=N)
//   - GET /api/sessions/unified - Multi-session view (?sessionIds=a,b or ?configName=normal)
//   - GET /api/sessions/{id} - Get a session
//   - DELETE /api/sessions/{id} - Delete a session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Summary and full game state
//   - GET /api/sessions/{id}/board - Board as layout rows and tiles
//   - POST /api/sessions/{id}/swap - Swap two adjacent tiles
//   - POST /api/sessions/{id}/bulk-swap - Apply up to 50 swaps in order
//   - POST /api/sessions/{id}/reset - Deal a new board
//   - GET /api/sessions/{id}/history - Paginated swap history (?page&limit&order)
//   - GET /api/sessions/{id}/hints - Swaps that would resolve (?limit=N)
//
// Scores and Configuration:
//   - GET /api/scores - The 10 most recent finished games
//   - GET /api/configs - List difficulty configs
//   - GET /api/configs/{name} - Get one config
//   - POST /api/configs - Save a config
//
// Other:
//   - GET /health - Liveness check
//   - GET /ws?sessionId={id} - WebSocket stream of engine events and state updates
//
// A swap request names both cells:
//
//	{"from": {"row": 3, "col": 4}, "to": {"row": 3, "col": 5}, "reset": false}
//
// Errors are returned as {"error": "message"}. Invalid swaps and bad bodies
// map to 400, unknown sessions and configs to 404, and swaps against a busy
// or finished game to 409.
package api
