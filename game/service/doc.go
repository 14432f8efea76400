// Package service provides the business logic layer for the match game.
//
// The service package implements:
//   - Multi-session game management
//   - Swap and bulk-swap processing
//   - Swap history and hints
//   - Score history for finished games
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages difficulty configuration loading and validation.
// ScoreRecorder stores finished games.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine. Each session owns its own engine; the service serializes
// all engine calls behind one lock.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr, scores.NewMemoryStore())
//
//	sessionInfo, err := gameService.CreateSession(ctx, "hard")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.Swap(ctx, sessionInfo.ID,
//		engine.Position{Row: 4, Col: 2}, engine.Position{Row: 4, Col: 3}, false)
//
// Errors:
//
// Engine rejections come back unchanged, so callers test them with
// errors.Is against engine.ErrInvalidSwap, engine.ErrEngineBusy and
// engine.ErrGameOver. Lookups fail with ErrSessionNotFound or
// ErrConfigNotFound.
package service
