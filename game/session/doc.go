// Package session provides in-memory session management for the match game.
//
// Each session owns one engine.GameEngine with its own board, score and
// click budget. Sessions are addressed by short 4-character hex IDs,
// compared case-insensitively, and are never written to disk.
//
// Usage:
//
//	manager := session.NewManager(session.WithSeed(42))
//
//	sess, err := manager.Create("", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Prune sessions idle for a day, checking hourly
//	manager.StartCleanup(ctx, session.DefaultCleanupInterval, session.DefaultMaxIdle)
//
// With a non-zero seed the n-th created session is seeded with seed+n,
// which makes whole server runs reproducible.
package session
