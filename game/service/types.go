package service

import (
	"time"

	"github.com/wricardo/mcp-training/matchgame/game/engine"
	"github.com/wricardo/mcp-training/matchgame/game/scores"
)

// MaxBulkSwaps caps the number of swaps applied by one BulkSwap call
const MaxBulkSwaps = 50

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string              `json:"id"`
	ConfigName     string              `json:"config_name"`
	CreatedAt      time.Time           `json:"created_at"`
	LastAccessedAt time.Time           `json:"last_accessed_at"`
	GameState      *engine.GameState   `json:"game_state"`
	Summary        engine.StateSummary `json:"summary"`
	GameConfig     *engine.GameConfig  `json:"game_config"`
}

// SwapResult contains the result of one swap request
type SwapResult struct {
	Success     bool                `json:"success"`
	NullMove    bool                `json:"null_move"`
	Message     string              `json:"message"`
	ChainDepth  int                 `json:"chain_depth"`
	ScoreDelta  float64             `json:"score_delta"`
	Special     engine.SpecialKind  `json:"special,omitempty"`
	GameOver    bool                `json:"game_over"`
	Summary     engine.StateSummary `json:"summary"`
	GameState   *engine.GameState   `json:"game_state"`
	Events      []engine.Event      `json:"events"`
	RecordedAs  *scores.Entry       `json:"recorded_as,omitempty"`
	WasReset    bool                `json:"was_reset,omitempty"`
	RequestedAt time.Time           `json:"requested_at"`
}

// BulkSwapResult contains the result of a sequence of swaps
type BulkSwapResult struct {
	SwapsExecuted  int                 `json:"swaps_executed"`
	RequestedSwaps int                 `json:"requested_swaps"`
	NullMoves      int                 `json:"null_moves"`
	Success        bool                `json:"success"`
	StoppedReason  string              `json:"stopped_reason,omitempty"`
	StopReasonCode string              `json:"stop_reason_code,omitempty"` // invalid_swap|game_over
	StoppedOnSwap  int                 `json:"stopped_on_swap,omitempty"`  // 1-based
	Truncated      bool                `json:"truncated,omitempty"`
	Limit          int                 `json:"limit,omitempty"`
	StartScore     float64             `json:"start_score"`
	EndScore       float64             `json:"end_score"`
	ScoreDelta     float64             `json:"score_delta"`
	MaxChain       int                 `json:"max_chain"`
	GameOver       bool                `json:"game_over"`
	Steps          []SwapStep          `json:"steps,omitempty"`
	Summary        engine.StateSummary `json:"summary"`
	GameState      *engine.GameState   `json:"game_state"`
}

// SwapStep is a compact record of one swap applied by BulkSwap
type SwapStep struct {
	Idx          int                `json:"idx"`
	From         engine.Position    `json:"from"`
	To           engine.Position    `json:"to"`
	Accepted     bool               `json:"accepted"`
	ChainDepth   int                `json:"chain_depth"`
	ScoreDelta   float64            `json:"score_delta"`
	Special      engine.SpecialKind `json:"special,omitempty"`
	ClicksBefore int                `json:"clicks_before"`
	ClicksAfter  int                `json:"clicks_after"`
}

// HistoryOptions configures swap history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated swap history
type HistoryResponse struct {
	Swaps       []engine.SwapRecord `json:"swaps"`
	TotalSwaps  int                 `json:"total_swaps"`
	Page        int                 `json:"page"`
	PageSize    int                 `json:"page_size"`
	TotalPages  int                 `json:"total_pages"`
	HasNext     bool                `json:"has_next"`
	HasPrevious bool                `json:"has_previous"`
}

// HintsResponse lists swaps that would resolve on the current board
type HintsResponse struct {
	Swaps []engine.Swap `json:"swaps"`
	Total int           `json:"total"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename    string            `json:"filename"`
	ConfigID    string            `json:"config_id"` // The identifier to use for session creation
	Name        string            `json:"name"`      // Display name
	Description string            `json:"description"`
	Difficulty  engine.Difficulty `json:"difficulty"`
	BoardSize   int               `json:"board_size"`
	PaletteSize int               `json:"palette_size"`
	ClickBudget int               `json:"click_budget"`
	SealedMode  bool              `json:"sealed_mode"`
}
