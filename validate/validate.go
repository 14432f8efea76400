// Command validate provides a small CLI that validates game configuration JSON
// files in the ../configs directory. It checks:
//   - JSON structure, with unknown fields rejected
//   - Difficulty, board size, palette size and click budget ranges
//   - That the file name matches the configured name
//   - Playability: sample boards are dealt from fixed seeds and each must
//     open with at least one swap that resolves
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/matchgame/game/engine"
)

// sampleBoards is the number of seeded boards dealt per playability check
const sampleBoards = 25

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single configuration JSON file
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var config engine.GameConfig
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&config); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}

	if err := engine.ValidateGameConfig(&config); err != nil {
		result.fail("%v", err)
		return result
	}

	configID := strings.TrimSuffix(result.File, filepath.Ext(result.File))
	if config.Name != configID {
		result.fail("name %q does not match file name %q", config.Name, configID)
	}

	playable := validatePlayability(&config, sampleBoards)
	if !playable.Valid {
		result.Valid = false
	}
	result.Errors = append(result.Errors, playable.Errors...)

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Difficulty: %s", config.Difficulty))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Board: %dx%d", config.BoardSize, config.BoardSize))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Palette: %d colors", config.PaletteSize))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Click budget: %d", config.ClickBudget))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Sealed mode: %t", config.SealedMode))
	}

	return result
}

// validatePlayability deals boards from seeds 1..samples. Every deal must
// succeed and offer at least one resolving swap.
func validatePlayability(config *engine.GameConfig, samples int) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	minMoves, maxMoves := -1, 0
	for seed := uint64(1); seed <= uint64(samples); seed++ {
		game, err := engine.NewEngine(config, engine.WithSeed(seed))
		if err != nil {
			result.fail("Board generation failed for seed %d: %v", seed, err)
			return result
		}
		if engine.HasMatch(game.GetState().Board) {
			result.fail("Seed %d dealt a board with an existing match", seed)
			return result
		}

		moves := len(game.PossibleSwaps())
		if moves == 0 {
			result.fail("Seed %d dealt a board with no resolving swap", seed)
		}
		if minMoves == -1 || moves < minMoves {
			minMoves = moves
		}
		if moves > maxMoves {
			maxMoves = moves
		}
	}

	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Opening swaps over %d boards: %d-%d", samples, minMoves, maxMoves))
	}
	return result
}

// validateDir validates every JSON file in dir and reports whether all passed
func validateDir(dir string) ([]ValidationResult, bool, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, false, fmt.Errorf("error finding config files: %w", err)
	}
	if len(files) == 0 {
		return nil, false, fmt.Errorf("no config files found in %s", dir)
	}

	allValid := true
	results := make([]ValidationResult, 0, len(files))
	for _, file := range files {
		result := validateConfig(file)
		if !result.Valid {
			allValid = false
		}
		results = append(results, result)
	}
	return results, allValid, nil
}

func printResults(results []ValidationResult, allValid bool) {
	for _, result := range results {
		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)
		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
	}
}

func main() {
	cmd := &cli.Command{
		Name:  "validate",
		Usage: "Validate game configuration files",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Value: "../configs", Usage: "Directory containing configuration files"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			results, allValid, err := validateDir(cmd.String("dir"))
			if err != nil {
				return err
			}
			printResults(results, allValid)
			if !allValid {
				os.Exit(1)
			}
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("validation failed")
	}
}
