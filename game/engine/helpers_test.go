package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// scriptedRandom replays values modulo n; an empty script always yields 0
type scriptedRandom struct {
	values []int
	next   int
}

func (s *scriptedRandom) Intn(n int) int {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return v % n
}

func createTestConfig(size int) *GameConfig {
	return &GameConfig{
		Name:        "Engine Test Config",
		Description: "Configuration for engine tests",
		Difficulty:  DifficultyNormal,
		BoardSize:   size,
		PaletteSize: NormalPaletteSize,
		ClickBudget: DefaultClickBudget,
	}
}

// diagonalRows renders a match-free board where cell (r,c) holds color (r+c)%4
func diagonalRows(size int) []string {
	letters := "RBGY"
	rows := make([]string, size)
	for r := 0; r < size; r++ {
		var sb strings.Builder
		for c := 0; c < size; c++ {
			sb.WriteByte(letters[(r+c)%4])
		}
		rows[r] = sb.String()
	}
	return rows
}

// stagedEngine builds an engine and replaces its board with the given layout
func stagedEngine(t *testing.T, config *GameConfig, rows ...string) *GameEngine {
	t.Helper()
	e, err := NewEngine(config, WithSeed(7))
	require.NoError(t, err)
	e.GetState().Board = MustParseBoard(rows...)
	return e
}

func eventsOfType(events []Event, typ EventType) []Event {
	var out []Event
	for _, ev := range events {
		if ev.Type == typ {
			out = append(out, ev)
		}
	}
	return out
}

// requireStable asserts the at-rest invariants of a board
func requireStable(t *testing.T, b *Board) {
	t.Helper()
	require.Empty(t, b.EmptyCells(), "board has empty cells at rest:\n%s", b)
	require.Equal(t, 0, DetectMatches(b).Len(), "board has matches at rest:\n%s", b)
}
