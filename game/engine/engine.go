package engine

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	Reset() (*GameState, error)
	IsGameOver() bool
	GetScore() float64
	GetClicksRemaining() int

	// Swap operations
	RequestSwap(a, b Position) (*Outcome, error)
	CanSwap(a, b Position) bool
	PossibleSwaps() []Swap

	// Queries for presentation layers
	QueryBoard() [][]Tile
	QueryState() StateSummary
	Subscribe(listener Listener)

	// Configuration
	GetConfig() *GameConfig
	SetConfig(config *GameConfig) error

	// History
	GetSwapHistory() []SwapRecord
	GetLastSwap() *SwapRecord
}

// Option customises a GameEngine at construction
type Option func(*GameEngine)

// WithRandom injects the random source used for colors and cell picks
func WithRandom(rng RandomSource) Option {
	return func(e *GameEngine) { e.rng = rng }
}

// WithSeed seeds the default random source
func WithSeed(seed uint64) Option {
	return func(e *GameEngine) { e.rng = NewRandomSource(seed) }
}

// WithLogger sets the engine logger
func WithLogger(logger zerolog.Logger) Option {
	return func(e *GameEngine) { e.logger = logger }
}

// WithListener subscribes a listener from the start
func WithListener(listener Listener) Option {
	return func(e *GameEngine) { e.listeners = append(e.listeners, listener) }
}

// GameEngine implements the Engine interface. It is not safe for concurrent
// use, with one exception: a RequestSwap that arrives while another is
// resolving is rejected with ErrEngineBusy.
type GameEngine struct {
	state     *GameState
	config    *GameConfig
	rng       RandomSource
	logger    zerolog.Logger
	listeners []Listener
	busy      atomic.Bool
	outcome   *Outcome
}

// NewEngine validates the configuration and deals a match-free board
func NewEngine(config *GameConfig, opts ...Option) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	e := &GameEngine{
		config: config,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = NewRandomSource(0)
	}

	state, err := InitGameStateFromConfig(config, e.rng)
	if err != nil {
		return nil, err
	}
	e.state = state

	return e, nil
}

// GetState returns the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// SetState replaces the game state (used by tests and tooling to stage boards)
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if state.Board == nil {
		return fmt.Errorf("state board cannot be nil")
	}
	if !e.busy.CompareAndSwap(false, true) {
		return ErrEngineBusy
	}
	defer e.busy.Store(false)
	e.state = state
	return nil
}

// Reset deals a new board and restores the click budget. Swap history and
// totals survive the reset; only the current segment is cleared.
func (e *GameEngine) Reset() (*GameState, error) {
	if !e.busy.CompareAndSwap(false, true) {
		return nil, ErrEngineBusy
	}
	defer e.busy.Store(false)

	prevHistory := e.state.SwapHistory
	prevTotal := e.state.TotalSwaps

	state, err := InitGameStateFromConfig(e.config, e.rng)
	if err != nil {
		return nil, err
	}

	state.SwapHistory = prevHistory
	state.TotalSwaps = prevTotal
	e.state = state

	return e.state, nil
}

// IsGameOver returns whether the click budget is exhausted
func (e *GameEngine) IsGameOver() bool {
	return e.state.GameOver
}

// GetScore returns the exact running score
func (e *GameEngine) GetScore() float64 {
	return e.state.Score
}

// GetClicksRemaining returns the remaining click budget
func (e *GameEngine) GetClicksRemaining() int {
	return e.state.ClicksRemaining
}

// QueryBoard returns a copy of the board cells
func (e *GameEngine) QueryBoard() [][]Tile {
	return e.state.Board.Snapshot()
}

// QueryState returns the score and budget summary
func (e *GameEngine) QueryState() StateSummary {
	return e.state.Summary()
}

// Subscribe registers a listener for resolution events
func (e *GameEngine) Subscribe(listener Listener) {
	e.listeners = append(e.listeners, listener)
}

// CanSwap reports whether a swap request for a and b would be accepted for resolution
func (e *GameEngine) CanSwap(a, b Position) bool {
	return !e.state.GameOver && !e.busy.Load() && e.validateSwap(a, b) == nil
}

// PossibleSwaps lists every adjacent swap that would resolve rather than be reverted
func (e *GameEngine) PossibleSwaps() []Swap {
	board := e.state.Board
	var swaps []Swap
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			a := Position{Row: r, Col: c}
			for _, b := range []Position{{Row: r, Col: c + 1}, {Row: r + 1, Col: c}} {
				if board.InBounds(b) && wouldResolve(board, a, b) {
					swaps = append(swaps, Swap{From: a, To: b})
				}
			}
		}
	}
	return swaps
}

func wouldResolve(board *Board, a, b Position) bool {
	ta, tb := board.At(a), board.At(b)
	if ta.IsEmpty() || tb.IsEmpty() {
		return false
	}
	if ta.IsSpecial() || tb.IsSpecial() {
		return true
	}
	trial := board.Clone()
	trial.Swap(a, b)
	return HasMatch(trial)
}

// GetConfig returns the current game configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// SetConfig sets a new game configuration and starts a new game
func (e *GameEngine) SetConfig(config *GameConfig) error {
	if err := ValidateGameConfig(config); err != nil {
		return err
	}
	if !e.busy.CompareAndSwap(false, true) {
		return ErrEngineBusy
	}
	defer e.busy.Store(false)

	state, err := InitGameStateFromConfig(config, e.rng)
	if err != nil {
		return err
	}
	e.config = config
	e.state = state
	return nil
}

// GetSwapHistory returns the complete swap history
func (e *GameEngine) GetSwapHistory() []SwapRecord {
	return e.state.SwapHistory
}

// GetLastSwap returns the last swap made, or nil if no swaps
func (e *GameEngine) GetLastSwap() *SwapRecord {
	if len(e.state.SwapHistory) == 0 {
		return nil
	}
	return &e.state.SwapHistory[len(e.state.SwapHistory)-1]
}

// recordSwap appends a swap to the cumulative and current histories
func (e *GameEngine) recordSwap(a, b Position, out *Outcome) {
	entry := SwapRecord{
		From:        a,
		To:          b,
		Accepted:    out.Accepted,
		Special:     string(out.Special),
		ChainDepth:  out.ChainDepth,
		ScoreDelta:  out.ScoreDelta,
		ClicksAfter: e.state.ClicksRemaining,
		MoveNumber:  e.state.TotalSwaps + 1,
		Timestamp:   time.Now(),
	}
	e.state.SwapHistory = append(e.state.SwapHistory, entry)
	e.state.TotalSwaps++

	e.state.CurrentSwaps = append(e.state.CurrentSwaps, entry)
	e.state.CurrentSwapsCount++
}
