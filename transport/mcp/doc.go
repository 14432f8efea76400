// Package mcp exposes the game to AI agents over the Model Context Protocol.
//
// Client is a thin MCP server whose tools proxy to the REST API, so an agent
// and a browser can share the same sessions:
//   - create_session, list_sessions, get_session
//   - game_state, describe_cell, hints
//   - swap, bulk_swap, reset_game
//   - swap_history, score_history
//   - list_configs, game_instructions
//
// Boards are rendered as text, one character per cell with row and column
// indices (R B G Y O colors, * bomb, @ rainbow, # sealed). Coordinates are
// 0-based (row, col).
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//
//	// Stdio mode
//	server.ServeStdio(client.GetMCPServer())
//
//	// HTTP mode
//	response := client.GetMCPServer().HandleMessage(ctx, body)
package mcp
