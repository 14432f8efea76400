package engine

import (
	"fmt"
	"strings"
)

// Board is a square grid of tiles addressed row-major
type Board struct {
	Size  int      `json:"size"`
	Cells [][]Tile `json:"cells"`
}

// NewBoard creates an empty board of the given side length
func NewBoard(size int) *Board {
	cells := make([][]Tile, size)
	for i := range cells {
		cells[i] = make([]Tile, size)
	}
	return &Board{Size: size, Cells: cells}
}

// InBounds reports whether p addresses a cell on the board
func (b *Board) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < b.Size && p.Col >= 0 && p.Col < b.Size
}

// At returns the tile at p; out-of-bounds reads return an empty tile
func (b *Board) At(p Position) Tile {
	if !b.InBounds(p) {
		return Tile{}
	}
	return b.Cells[p.Row][p.Col]
}

// Set places t at p
func (b *Board) Set(p Position, t Tile) {
	b.Cells[p.Row][p.Col] = t
}

// Swap exchanges the tiles at p and q
func (b *Board) Swap(p, q Position) {
	b.Cells[p.Row][p.Col], b.Cells[q.Row][q.Col] = b.Cells[q.Row][q.Col], b.Cells[p.Row][p.Col]
}

// Clone returns a deep copy of the board
func (b *Board) Clone() *Board {
	out := NewBoard(b.Size)
	for r := range b.Cells {
		copy(out.Cells[r], b.Cells[r])
	}
	return out
}

// Snapshot returns a copy of the cell grid for read-only consumers
func (b *Board) Snapshot() [][]Tile {
	return b.Clone().Cells
}

// Compact applies gravity: in every column, occupied cells fall to fill the
// empty cells below them, keeping their relative order. Empty cells end up
// at the top of the column.
func (b *Board) Compact() bool {
	moved := false
	for c := 0; c < b.Size; c++ {
		write := b.Size - 1
		for r := b.Size - 1; r >= 0; r-- {
			if b.Cells[r][c].IsEmpty() {
				continue
			}
			if r != write {
				b.Cells[write][c] = b.Cells[r][c]
				b.Cells[r][c] = Tile{}
				moved = true
			}
			write--
		}
	}
	return moved
}

// EmptyCells returns every empty position in row-major order
func (b *Board) EmptyCells() []Position {
	return b.collect(func(t Tile) bool { return t.IsEmpty() })
}

// CellsOfKind returns every position holding a tile of the given kind
func (b *Board) CellsOfKind(kind TileKind) []Position {
	return b.collect(func(t Tile) bool { return t.Kind == kind })
}

// CellsOfColor returns every position holding a Normal tile of color c
func (b *Board) CellsOfColor(c Color) []Position {
	return b.collect(func(t Tile) bool { return t.IsNormal() && t.Color == c })
}

// OccupiedCells returns every non-empty position
func (b *Board) OccupiedCells() []Position {
	return b.collect(func(t Tile) bool { return !t.IsEmpty() })
}

// CountKind counts the tiles of a specific kind
func (b *Board) CountKind(kind TileKind) int {
	return len(b.CellsOfKind(kind))
}

func (b *Board) collect(keep func(Tile) bool) []Position {
	var out []Position
	for r := 0; r < b.Size; r++ {
		for c := 0; c < b.Size; c++ {
			if keep(b.Cells[r][c]) {
				out = append(out, Position{Row: r, Col: c})
			}
		}
	}
	return out
}

// Neighbors returns the in-bounds orthogonal neighbors of p
func (b *Board) Neighbors(p Position) []Position {
	candidates := []Position{
		{Row: p.Row - 1, Col: p.Col},
		{Row: p.Row + 1, Col: p.Col},
		{Row: p.Row, Col: p.Col - 1},
		{Row: p.Row, Col: p.Col + 1},
	}
	out := make([]Position, 0, 4)
	for _, n := range candidates {
		if b.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// Area returns the occupied cells of the 3x3 block centred on p, clipped to the board
func (b *Board) Area(p Position) []Position {
	var out []Position
	for r := p.Row - 1; r <= p.Row+1; r++ {
		for c := p.Col - 1; c <= p.Col+1; c++ {
			q := Position{Row: r, Col: c}
			if b.InBounds(q) && !b.At(q).IsEmpty() {
				out = append(out, q)
			}
		}
	}
	return out
}

var tileChars = map[Tile]byte{
	{}:                 '.',
	NormalTile(Red):    'R',
	NormalTile(Blue):   'B',
	NormalTile(Green):  'G',
	NormalTile(Yellow): 'Y',
	NormalTile(Orange): 'O',
	BombTile():         '*',
	RainbowTile():      '@',
	SealedTile():       '#',
}

// TileChar returns the single-character layout code for a tile
func TileChar(t Tile) byte {
	if ch, ok := tileChars[t]; ok {
		return ch
	}
	return '?'
}

// ParseBoard builds a board from layout rows, one character per cell:
// R B G Y O for colors, * bomb, @ rainbow, # sealed, . empty.
func ParseBoard(rows []string) (*Board, error) {
	size := len(rows)
	if size == 0 {
		return nil, fmt.Errorf("layout must have at least one row")
	}
	lookup := make(map[byte]Tile, len(tileChars))
	for t, ch := range tileChars {
		lookup[ch] = t
	}

	b := NewBoard(size)
	for r, row := range rows {
		if len(row) != size {
			return nil, fmt.Errorf("row %d must have %d characters, got %d", r+1, size, len(row))
		}
		for c := 0; c < size; c++ {
			t, ok := lookup[row[c]]
			if !ok {
				return nil, fmt.Errorf("invalid character '%c' at row %d, col %d", row[c], r+1, c+1)
			}
			b.Cells[r][c] = t
		}
	}
	return b, nil
}

// MustParseBoard is ParseBoard for fixed layouts; it panics on a bad layout
func MustParseBoard(rows ...string) *Board {
	b, err := ParseBoard(rows)
	if err != nil {
		panic(err)
	}
	return b
}

// Rows renders the board as layout rows
func (b *Board) Rows() []string {
	rows := make([]string, b.Size)
	for r := 0; r < b.Size; r++ {
		var sb strings.Builder
		for c := 0; c < b.Size; c++ {
			sb.WriteByte(TileChar(b.Cells[r][c]))
		}
		rows[r] = sb.String()
	}
	return rows
}

// String renders the board one row per line
func (b *Board) String() string {
	return strings.Join(b.Rows(), "\n")
}
