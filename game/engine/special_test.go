package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func specialTriggered(t *testing.T, out *Outcome) Event {
	t.Helper()
	triggered := eventsOfType(out.Events, EventSpecialTriggered)
	require.Len(t, triggered, 1)
	return triggered[0]
}

func TestBombTriggersThreeByThreeArea(t *testing.T) {
	rows := diagonalRows(5)
	rows[2] = "GY*BG"
	e := stagedEngine(t, createTestConfig(5), rows...)

	out, err := e.RequestSwap(Position{Row: 2, Col: 2}, Position{Row: 2, Col: 3})
	require.NoError(t, err)

	assert.True(t, out.Accepted)
	assert.True(t, out.SpecialEffect)
	assert.Equal(t, SpecialBomb, out.Special)
	assert.Equal(t, DefaultClickBudget-1, e.GetClicksRemaining())

	ev := specialTriggered(t, out)
	assert.Len(t, ev.Cells, 9)
	assert.Contains(t, ev.Cells, Position{Row: 2, Col: 3}, "the bomb explodes where it landed")
	assert.Empty(t, eventsOfType(out.Events, EventBonus))
	requireStable(t, e.GetState().Board)
}

func TestBombAreaIsClippedAtCorner(t *testing.T) {
	rows := diagonalRows(5)
	rows[0] = "R*GYR"
	e := stagedEngine(t, createTestConfig(5), rows...)

	out, err := e.RequestSwap(Position{Row: 0, Col: 1}, Position{Row: 0, Col: 0})
	require.NoError(t, err)

	ev := specialTriggered(t, out)
	assert.Equal(t, []Position{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 1}}, ev.Cells)

	matched := eventsOfType(out.Events, EventMatched)
	require.NotEmpty(t, matched)
	assert.InDelta(t, 4.0, matched[0].ScoreDelta, 1e-9)
}

func TestRainbowClearsPartnerColor(t *testing.T) {
	rows := diagonalRows(5)
	rows[0] = "@BGYR"
	e := stagedEngine(t, createTestConfig(5), rows...)

	trial := e.GetState().Board.Clone()
	trial.Swap(Position{Row: 0, Col: 0}, Position{Row: 0, Col: 1})
	expected := NewMatchSet(Position{Row: 0, Col: 1})
	for _, p := range trial.CellsOfColor(Blue) {
		expected.Add(p)
	}

	out, err := e.RequestSwap(Position{Row: 0, Col: 0}, Position{Row: 0, Col: 1})
	require.NoError(t, err)
	assert.Equal(t, SpecialRainbow, out.Special)

	ev := specialTriggered(t, out)
	assert.Equal(t, expected.Positions(), ev.Cells)
	require.NotNil(t, ev.Anchor)
	assert.Equal(t, Position{Row: 0, Col: 1}, *ev.Anchor)
}

func TestBombSelectedSecond(t *testing.T) {
	rows := diagonalRows(5)
	rows[2] = "GY*BG"
	e := stagedEngine(t, createTestConfig(5), rows...)

	// the normal tile is selected first, so the bomb is the second tile
	out, err := e.RequestSwap(Position{Row: 2, Col: 3}, Position{Row: 2, Col: 2})
	require.NoError(t, err)
	assert.Equal(t, SpecialBomb, out.Special)

	ev := specialTriggered(t, out)
	require.NotNil(t, ev.Anchor)
	assert.Equal(t, Position{Row: 2, Col: 3}, *ev.Anchor)
	assert.Len(t, ev.Cells, 9)
	assert.Contains(t, ev.Cells, Position{Row: 1, Col: 4})
	assert.NotContains(t, ev.Cells, Position{Row: 1, Col: 1})
	requireStable(t, e.GetState().Board)
}

func TestRainbowSelectedSecond(t *testing.T) {
	rows := diagonalRows(5)
	rows[0] = "@BGYR"
	e := stagedEngine(t, createTestConfig(5), rows...)

	trial := e.GetState().Board.Clone()
	trial.Swap(Position{Row: 0, Col: 1}, Position{Row: 0, Col: 0})
	expected := NewMatchSet(Position{Row: 0, Col: 1})
	for _, p := range trial.CellsOfColor(Blue) {
		expected.Add(p)
	}

	out, err := e.RequestSwap(Position{Row: 0, Col: 1}, Position{Row: 0, Col: 0})
	require.NoError(t, err)
	assert.Equal(t, SpecialRainbow, out.Special)

	ev := specialTriggered(t, out)
	assert.Equal(t, expected.Positions(), ev.Cells)
	assert.Contains(t, ev.Cells, Position{Row: 0, Col: 0}, "the blue partner is cleared")
	require.NotNil(t, ev.Anchor)
	assert.Equal(t, Position{Row: 0, Col: 1}, *ev.Anchor)
}

func TestRainbowWithSealedClearsOnlyItself(t *testing.T) {
	rows := diagonalRows(5)
	rows[0] = "@#GYR"
	e := stagedEngine(t, createTestConfig(5), rows...)

	out, err := e.RequestSwap(Position{Row: 0, Col: 0}, Position{Row: 0, Col: 1})
	require.NoError(t, err)

	ev := specialTriggered(t, out)
	assert.Equal(t, []Position{{Row: 0, Col: 1}}, ev.Cells)

	unsealed := eventsOfType(out.Events, EventUnsealed)
	require.NotEmpty(t, unsealed)
	assert.Contains(t, unsealed[0].Cells, Position{Row: 0, Col: 0})
}

func TestWholeBoardSpecials(t *testing.T) {
	tests := []struct {
		name     string
		first    Tile
		second   Tile
		expected SpecialKind
	}{
		{"bomb and bomb", BombTile(), BombTile(), SpecialBombBomb},
		{"rainbow and rainbow", RainbowTile(), RainbowTile(), SpecialRainbowRainbow},
		{"bomb and rainbow", BombTile(), RainbowTile(), SpecialBombRainbow},
		{"rainbow and bomb", RainbowTile(), BombTile(), SpecialBombRainbow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEngine(DefaultConfig(DifficultyNormal), WithSeed(11))
			require.NoError(t, err)
			a, b := Position{Row: 3, Col: 3}, Position{Row: 3, Col: 4}
			e.GetState().Board.Set(a, tt.first)
			e.GetState().Board.Set(b, tt.second)

			out, err := e.RequestSwap(a, b)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out.Special)

			ev := specialTriggered(t, out)
			assert.Len(t, ev.Cells, 64)

			require.NotNil(t, ev.Anchor)
			assert.Equal(t, b, *ev.Anchor, "the first tile lands on b")

			bonus := eventsOfType(out.Events, EventBonus)
			require.Len(t, bonus, 1)
			assert.InDelta(t, WipeBonus, bonus[0].ScoreDelta, 1e-9)
			require.NotNil(t, bonus[0].Anchor)
			assert.Equal(t, b, *bonus[0].Anchor)

			matched := eventsOfType(out.Events, EventMatched)
			require.NotEmpty(t, matched)
			assert.Len(t, matched[0].Cells, 64)
			assert.InDelta(t, 64.0, matched[0].ScoreDelta, 1e-9)

			assert.GreaterOrEqual(t, out.ScoreDelta, 1064.0)
			assert.InDelta(t, out.ScoreDelta, e.GetScore(), 1e-9)
			assert.Equal(t, DefaultClickBudget-1, e.GetClicksRemaining())
			requireStable(t, e.GetState().Board)
		})
	}
}

func TestSpecialBeatsMatchCheck(t *testing.T) {
	// swapping a bomb resolves even though no run of three forms
	rows := diagonalRows(5)
	rows[4] = "RBGY*"
	e := stagedEngine(t, createTestConfig(5), rows...)

	out, err := e.RequestSwap(Position{Row: 4, Col: 4}, Position{Row: 3, Col: 4})
	require.NoError(t, err)
	assert.True(t, out.Accepted)
	assert.False(t, out.NullMove)
}
