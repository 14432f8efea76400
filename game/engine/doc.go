// Package engine provides the match-resolution engine for the tile-matching game.
//
// The engine package implements the game mechanics including:
//   - Board generation with no pre-existing runs of three
//   - Match detection over rows and columns of Normal tiles
//   - Swap resolution, including Bomb and Rainbow special triggers
//   - Cascades: clear, unseal, gravity, refill and re-check until stable
//   - Chain-depth scoring for the normal and hard difficulties
//   - Bomb, Rainbow and Sealed tile spawning rules
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. GameState holds the board, score and click
// budget, while GameConfig defines the difficulty loaded from JSON files.
// All randomness flows through a RandomSource so tests can script it.
//
// Usage:
//
//	config, err := engine.LoadGameConfig("configs/normal.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameEngine, err := engine.NewEngine(config, engine.WithSeed(42))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameEngine.Subscribe(func(ev engine.Event) {
//		fmt.Println(ev.Type)
//	})
//
//	outcome, err := gameEngine.RequestSwap(
//		engine.Position{Row: 3, Col: 4},
//		engine.Position{Row: 3, Col: 5},
//	)
//
// Game Rules:
//
// Players swap two adjacent tiles on an 8x8 board to line up three or more
// tiles of one color. Each resolving swap costs one click; a swap of two
// Normal tiles that matches nothing is undone for free. Cleared cells are
// refilled from the top and any new runs extend the chain, raising the
// score multiplier. The game ends when the click budget reaches zero.
package engine
