package service

import (
	"context"
	"time"

	"github.com/wricardo/mcp-training/matchgame/game/engine"
	"github.com/wricardo/mcp-training/matchgame/game/scores"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Swap(ctx context.Context, sessionID string, from, to engine.Position, reset bool) (*SwapResult, error)
	BulkSwap(ctx context.Context, sessionID string, swaps []engine.Swap, reset bool) (*BulkSwapResult, error)
	Reset(ctx context.Context, sessionID string) (*engine.GameState, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetSwapHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)
	GetHints(ctx context.Context, sessionID string, limit int) (*HintsResponse, error)

	// Scores
	GetScoreHistory(ctx context.Context) ([]scores.Entry, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error
}

// SessionManager defines session storage operations. Returned sessions are
// copies; only the Engine pointer is shared with the stored session.
type SessionManager interface {
	Create(id string, config *engine.GameConfig) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, config *engine.GameConfig) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager handles game configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.GameConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.GameConfig
	SaveConfig(name string, config *engine.GameConfig) error
}

// ScoreRecorder stores finished games
type ScoreRecorder interface {
	Record(entry scores.Entry) (scores.Entry, error)
	Recent() ([]scores.Entry, error)
}

// Session represents an active game session
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	Config         *engine.GameConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
