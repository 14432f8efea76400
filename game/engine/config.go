package engine

import (
	"encoding/json"
	"fmt"
	"os"
)

// ValidateGameConfig validates a game configuration for correctness and playability
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if config.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidConfig)
	}

	switch config.Difficulty {
	case DifficultyNormal, DifficultyHard:
	default:
		return fmt.Errorf("%w: difficulty must be %q or %q, got %q",
			ErrInvalidConfig, DifficultyNormal, DifficultyHard, config.Difficulty)
	}

	if config.BoardSize < MinBoardSize || config.BoardSize > MaxBoardSize {
		return fmt.Errorf("%w: board_size must be between %d and %d, got %d",
			ErrInvalidConfig, MinBoardSize, MaxBoardSize, config.BoardSize)
	}
	if config.PaletteSize < 1 || config.PaletteSize > len(Palette) {
		return fmt.Errorf("%w: palette_size must be between 1 and %d, got %d",
			ErrInvalidConfig, len(Palette), config.PaletteSize)
	}
	// With one color every row of three is a match.
	if config.PaletteSize < 2 && config.BoardSize >= 3 {
		return fmt.Errorf("%w: palette_size must be at least 2 for board_size %d",
			ErrInvalidConfig, config.BoardSize)
	}
	if config.ClickBudget < MinClickBudget || config.ClickBudget > MaxClickBudget {
		return fmt.Errorf("%w: click_budget must be between %d and %d, got %d",
			ErrInvalidConfig, MinClickBudget, MaxClickBudget, config.ClickBudget)
	}

	return nil
}

// DefaultConfig returns the built-in configuration for a difficulty
func DefaultConfig(difficulty Difficulty) *GameConfig {
	if difficulty == DifficultyHard {
		return &GameConfig{
			Name:        "hard",
			Description: "Five colors and a steeper chain multiplier",
			Difficulty:  DifficultyHard,
			BoardSize:   DefaultBoardSize,
			PaletteSize: HardPaletteSize,
			ClickBudget: DefaultClickBudget,
		}
	}
	return &GameConfig{
		Name:        "normal",
		Description: "Four colors and a linear chain multiplier",
		Difficulty:  DifficultyNormal,
		BoardSize:   DefaultBoardSize,
		PaletteSize: NormalPaletteSize,
		ClickBudget: DefaultClickBudget,
	}
}

// LoadGameConfig loads and validates a game configuration from a JSON file
func LoadGameConfig(filename string) (*GameConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filename, err)
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// GenerateBoard fills a board with Normal tiles such that no run of three
// exists. Colors that would complete a run with the two cells to the left
// or above are excluded; if that leaves nothing the board is regenerated.
func GenerateBoard(size, paletteSize int, rng RandomSource) (*Board, error) {
	for attempt := 0; attempt < MaxGenerationAttempts; attempt++ {
		b := NewBoard(size)
		for r := 0; r < size; r++ {
			for c := 0; c < size; c++ {
				b.Cells[r][c] = NormalTile(pickStartColor(b, r, c, paletteSize, rng))
			}
		}
		if !HasMatch(b) {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w after %d attempts", ErrBoardGeneration, MaxGenerationAttempts)
}

func pickStartColor(b *Board, r, c, paletteSize int, rng RandomSource) Color {
	allowed := make([]Color, 0, paletteSize)
	for _, color := range Palette[:paletteSize] {
		if c >= 2 && b.Cells[r][c-1].Color == color && b.Cells[r][c-2].Color == color {
			continue
		}
		if r >= 2 && b.Cells[r-1][c].Color == color && b.Cells[r-2][c].Color == color {
			continue
		}
		allowed = append(allowed, color)
	}
	if len(allowed) == 0 {
		return randomColor(rng, paletteSize)
	}
	return allowed[rng.Intn(len(allowed))]
}

// InitGameStateFromConfig creates a new game state with a fresh match-free board
func InitGameStateFromConfig(config *GameConfig, rng RandomSource) (*GameState, error) {
	if config == nil {
		config = DefaultConfig(DifficultyNormal)
	}

	board, err := GenerateBoard(config.BoardSize, config.PaletteSize, rng)
	if err != nil {
		return nil, err
	}

	return &GameState{
		Board:             board,
		Score:             0,
		ClicksRemaining:   config.ClickBudget,
		Difficulty:        config.Difficulty,
		PaletteSize:       config.PaletteSize,
		SealedMode:        config.SealedMode,
		Phase:             PhaseIdle,
		ConfigName:        config.Name,
		SwapHistory:       []SwapRecord{},
		CurrentSwaps:      []SwapRecord{},
		CurrentSwapsCount: 0,
	}, nil
}
