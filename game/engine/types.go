package engine

import "time"

// TileKind represents the different kinds of tiles on the board
type TileKind string

const (
	// Empty is the zero kind; it marks a cell that is mid-transition.
	Empty   TileKind = ""
	Normal  TileKind = "normal"
	Bomb    TileKind = "bomb"
	Rainbow TileKind = "rainbow"
	Sealed  TileKind = "sealed"
)

// Color identifies a Normal tile's color
type Color string

const (
	NoColor Color = ""
	Red     Color = "red"
	Blue    Color = "blue"
	Green   Color = "green"
	Yellow  Color = "yellow"
	Orange  Color = "orange"
)

// Palette is the full ordered color set; a game uses its first PaletteSize entries.
var Palette = []Color{Red, Blue, Green, Yellow, Orange}

// Difficulty selects the scoring curve
type Difficulty string

const (
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// Phase is the resolution state machine position
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseSwapping  Phase = "swapping"
	PhaseResolving Phase = "resolving"
	PhaseGameOver  Phase = "game_over"
)

const (
	// Validation constants
	MinBoardSize   = 1
	MaxBoardSize   = 32
	MinClickBudget = 1
	MaxClickBudget = 999

	DefaultBoardSize   = 8
	DefaultClickBudget = 20
	NormalPaletteSize  = 4
	HardPaletteSize    = 5

	// Scoring constants
	WipeBonus          = 1000.0
	BombSpawnThreshold = 5
	RainbowChainDepth  = 5
	SealedPerCascade   = 2

	MaxGenerationAttempts = 1000
)

// Tile is a value-typed board tile. The zero Tile is an empty cell.
type Tile struct {
	Kind  TileKind `json:"kind,omitempty"`
	Color Color    `json:"color,omitempty"`
}

// NormalTile returns a colored tile
func NormalTile(c Color) Tile { return Tile{Kind: Normal, Color: c} }

// BombTile returns a colorless bomb
func BombTile() Tile { return Tile{Kind: Bomb} }

// RainbowTile returns a colorless rainbow
func RainbowTile() Tile { return Tile{Kind: Rainbow} }

// SealedTile returns a colorless sealed tile
func SealedTile() Tile { return Tile{Kind: Sealed} }

// IsEmpty reports whether the cell holds no tile
func (t Tile) IsEmpty() bool { return t.Kind == Empty }

// IsNormal reports whether the tile takes part in color matching
func (t Tile) IsNormal() bool { return t.Kind == Normal }

// IsSpecial reports whether swapping the tile triggers an effect
func (t Tile) IsSpecial() bool { return t.Kind == Bomb || t.Kind == Rainbow }

// Position addresses a board cell, row 0 is the top row
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// GameConfig represents a difficulty configuration loaded from JSON
type GameConfig struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Difficulty  Difficulty `json:"difficulty"`
	BoardSize   int        `json:"board_size"`
	PaletteSize int        `json:"palette_size"`
	ClickBudget int        `json:"click_budget"`
	SealedMode  bool       `json:"sealed_mode"`
}

// GameState represents the complete game state
type GameState struct {
	Board           *Board     `json:"board"`
	Score           float64    `json:"score"`
	ClicksRemaining int        `json:"clicks_remaining"`
	Difficulty      Difficulty `json:"difficulty"`
	PaletteSize     int        `json:"palette_size"`
	SealedMode      bool       `json:"sealed_mode"`
	PendingBomb     bool       `json:"pending_bomb"`
	Phase           Phase      `json:"phase"`
	GameOver        bool       `json:"game_over"`
	ConfigName      string     `json:"config_name"`
	MaxChain        int        `json:"max_chain"`

	// SwapHistory is cumulative across resets; CurrentSwaps covers the current game only.
	SwapHistory       []SwapRecord `json:"swap_history"`
	TotalSwaps        int          `json:"total_swaps"`
	CurrentSwaps      []SwapRecord `json:"current_swaps"`
	CurrentSwapsCount int          `json:"current_swaps_count"`
}

// StateSummary is the queryState view
type StateSummary struct {
	Score           float64 `json:"score"`
	DisplayScore    int     `json:"display_score"`
	ClicksRemaining int     `json:"clicks_remaining"`
	IsGameOver      bool    `json:"is_game_over"`
	Phase           Phase   `json:"phase"`
	MaxChain        int     `json:"max_chain"`
}

// Summary returns the score and budget view of the state
func (s *GameState) Summary() StateSummary {
	return StateSummary{
		Score:           s.Score,
		DisplayScore:    DisplayScore(s.Score),
		ClicksRemaining: s.ClicksRemaining,
		IsGameOver:      s.GameOver,
		Phase:           s.Phase,
		MaxChain:        s.MaxChain,
	}
}

// Clone returns a deep copy of the state that shares nothing with s
func (s *GameState) Clone() *GameState {
	cp := *s
	if s.Board != nil {
		cp.Board = s.Board.Clone()
	}
	cp.SwapHistory = make([]SwapRecord, len(s.SwapHistory))
	copy(cp.SwapHistory, s.SwapHistory)
	cp.CurrentSwaps = make([]SwapRecord, len(s.CurrentSwaps))
	copy(cp.CurrentSwaps, s.CurrentSwaps)
	return &cp
}

// SwapRecord represents a single swap in the game history
type SwapRecord struct {
	From        Position  `json:"from"`
	To          Position  `json:"to"`
	Accepted    bool      `json:"accepted"`
	Special     string    `json:"special,omitempty"`
	ChainDepth  int       `json:"chain_depth"`
	ScoreDelta  float64   `json:"score_delta"`
	ClicksAfter int       `json:"clicks_after"`
	MoveNumber  int       `json:"move_number"`
	Timestamp   time.Time `json:"timestamp"`
}

// Swap is a candidate pair of adjacent cells
type Swap struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}
