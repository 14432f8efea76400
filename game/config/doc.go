// Package config provides difficulty configuration management for the match game.
//
// The config package handles:
//   - Loading difficulty configurations from JSON files
//   - Validation through engine.ValidateGameConfig
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Each JSON file in the config directory defines one difficulty:
//
//	{
//	  "name": "normal",
//	  "description": "Four colors and a linear chain multiplier",
//	  "difficulty": "normal",
//	  "board_size": 8,
//	  "palette_size": 4,
//	  "click_budget": 20,
//	  "sealed_mode": false
//	}
//
// The file name without its extension is the config ID used when creating
// sessions. Shipped configs: normal, hard, normal_sealed, hard_sealed.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameConfig, err := manager.LoadConfig("hard")
//	defaultConfig := manager.GetDefault()
//	configs, err := manager.ListConfigs()
//
// When the directory holds no normal.json, the first valid file becomes the
// default; an empty directory falls back to the built-in normal preset.
package config
