package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateGameConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *GameConfig)
		wantErr string
	}{
		{"valid", func(c *GameConfig) {}, ""},
		{"missing name", func(c *GameConfig) { c.Name = "" }, "name is required"},
		{"unknown difficulty", func(c *GameConfig) { c.Difficulty = "brutal" }, "difficulty"},
		{"board too small", func(c *GameConfig) { c.BoardSize = 0 }, "board_size"},
		{"board too large", func(c *GameConfig) { c.BoardSize = MaxBoardSize + 1 }, "board_size"},
		{"palette too large", func(c *GameConfig) { c.PaletteSize = 6 }, "palette_size"},
		{"single color on a real board", func(c *GameConfig) { c.PaletteSize = 1 }, "at least 2"},
		{"single color on a tiny board", func(c *GameConfig) { c.PaletteSize = 1; c.BoardSize = 2 }, ""},
		{"no clicks", func(c *GameConfig) { c.ClickBudget = 0 }, "click_budget"},
		{"too many clicks", func(c *GameConfig) { c.ClickBudget = MaxClickBudget + 1 }, "click_budget"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := createTestConfig(8)
			tt.mutate(config)

			err := ValidateGameConfig(config)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}

	assert.ErrorIs(t, ValidateGameConfig(nil), ErrInvalidConfig)
}

func TestDefaultConfig(t *testing.T) {
	normal := DefaultConfig(DifficultyNormal)
	require.NoError(t, ValidateGameConfig(normal))
	assert.Equal(t, NormalPaletteSize, normal.PaletteSize)
	assert.Equal(t, 8, normal.BoardSize)
	assert.Equal(t, 20, normal.ClickBudget)

	hard := DefaultConfig(DifficultyHard)
	require.NoError(t, ValidateGameConfig(hard))
	assert.Equal(t, HardPaletteSize, hard.PaletteSize)
	assert.Equal(t, DifficultyHard, hard.Difficulty)
}

func TestLoadGameConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "sealed.json")
		content := `{
			"name": "sealed",
			"description": "Hard with sealed tiles",
			"difficulty": "hard",
			"board_size": 8,
			"palette_size": 5,
			"click_budget": 25,
			"sealed_mode": true
		}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		config, err := LoadGameConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "sealed", config.Name)
		assert.True(t, config.SealedMode)
		assert.Equal(t, 25, config.ClickBudget)
	})

	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

		_, err := LoadGameConfig(path)
		assert.ErrorContains(t, err, "failed to parse")
	})

	t.Run("fails validation", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"name":"bad","difficulty":"normal","board_size":8,"palette_size":4,"click_budget":0}`), 0644))

		_, err := LoadGameConfig(path)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadGameConfig(filepath.Join(dir, "nope.json"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestGenerateBoardIsMatchFree(t *testing.T) {
	for _, palette := range []int{2, NormalPaletteSize, HardPaletteSize} {
		for seed := uint64(1); seed <= 50; seed++ {
			b, err := GenerateBoard(8, palette, NewRandomSource(seed))
			require.NoError(t, err)
			requireStable(t, b)

			allowed := map[Color]bool{}
			for _, c := range Palette[:palette] {
				allowed[c] = true
			}
			for _, row := range b.Cells {
				for _, tile := range row {
					require.True(t, tile.IsNormal())
					require.True(t, allowed[tile.Color], "color %s outside palette %d", tile.Color, palette)
				}
			}
		}
	}
}

func TestInitGameStateFromConfig(t *testing.T) {
	config := createTestConfig(6)
	config.SealedMode = true

	state, err := InitGameStateFromConfig(config, NewRandomSource(5))
	require.NoError(t, err)
	assert.Equal(t, 6, state.Board.Size)
	assert.True(t, state.SealedMode)
	assert.Equal(t, config.Name, state.ConfigName)
	assert.Equal(t, PhaseIdle, state.Phase)

	state, err = InitGameStateFromConfig(nil, NewRandomSource(5))
	require.NoError(t, err)
	assert.Equal(t, "normal", state.ConfigName)
}
