package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/wricardo/mcp-training/matchgame/game/engine"
	"github.com/wricardo/mcp-training/matchgame/game/scores"
)

// gameServiceImpl implements the GameService interface. Its lock serializes
// every engine call, since engines are not safe for concurrent use.
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	scores   ScoreRecorder
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance. A nil score
// recorder keeps score history in memory.
func NewGameService(sessions SessionManager, configs ConfigManager, scoreStore ScoreRecorder) GameService {
	if scoreStore == nil {
		scoreStore = scores.NewMemoryStore()
	}
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		scores:   scoreStore,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

func (s *gameServiceImpl) sessionInfo(sess *Session, configID string) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.GetState().Clone(),
		Summary:        sess.Engine.QueryState(),
		GameConfig:     sess.Config,
	}
}

// getSession marks a session as used and returns it
func (s *gameServiceImpl) getSession(sessionID string) (*Session, error) {
	if err := s.sessions.UpdateLastAccessed(sessionID); err != nil {
		return nil, sessionError(sessionID, err)
	}
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, sessionError(sessionID, err)
	}
	return sess, nil
}

func sessionError(sessionID string, err error) error {
	if errors.Is(err, ErrSessionNotFound) {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return err
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("%w: '%s'. Available configs: %v", ErrConfigNotFound, configName, configIDs)
				}
				return nil, fmt.Errorf("%w: '%s'. Use /api/configs to list available configurations", ErrConfigNotFound, configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	log.Info().Str("session", sess.ID).Str("config", configID).Msg("session created")
	return s.sessionInfo(sess, configID), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return s.sessionInfo(sess, s.getConfigID(sess.Config.Name)), nil
}

// ListSessions returns all active sessions, oldest first
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})

	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess, s.getConfigID(sess.Config.Name)))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
		}
		return err
	}
	return nil
}

// Swap resolves one swap for a session. Engine rejections (invalid swap,
// busy, game over) are returned as errors wrapping the engine sentinels.
func (s *gameServiceImpl) Swap(ctx context.Context, sessionID string, from, to engine.Position, reset bool) (*SwapResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	if reset {
		if _, err := sess.Engine.Reset(); err != nil {
			return nil, fmt.Errorf("failed to reset game: %w", err)
		}
	}

	outcome, err := sess.Engine.RequestSwap(from, to)
	if err != nil {
		return nil, err
	}

	result := &SwapResult{
		Success:     outcome.Accepted,
		NullMove:    outcome.NullMove,
		ChainDepth:  outcome.ChainDepth,
		ScoreDelta:  outcome.ScoreDelta,
		Special:     outcome.Special,
		GameOver:    outcome.GameOver,
		Summary:     sess.Engine.QueryState(),
		GameState:   sess.Engine.GetState().Clone(),
		Events:      outcome.Events,
		WasReset:    reset,
		RequestedAt: time.Now(),
	}
	result.Message = describeOutcome(outcome, result.Summary)

	if outcome.GameOver {
		result.RecordedAs = s.recordScore(sess)
	}

	log.Info().
		Str("session", sess.ID).
		Bool("accepted", outcome.Accepted).
		Int("chain", outcome.ChainDepth).
		Float64("delta", outcome.ScoreDelta).
		Int("clicks", result.Summary.ClicksRemaining).
		Msg("swap")

	return result, nil
}

// BulkSwap applies swaps in order until one is rejected or the game ends
func (s *gameServiceImpl) BulkSwap(ctx context.Context, sessionID string, swaps []engine.Swap, reset bool) (*BulkSwapResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	if reset {
		if _, err := sess.Engine.Reset(); err != nil {
			return nil, fmt.Errorf("failed to reset game: %w", err)
		}
	}

	result := &BulkSwapResult{
		RequestedSwaps: len(swaps),
		Success:        true,
		StartScore:     sess.Engine.GetScore(),
	}

	if len(swaps) > MaxBulkSwaps {
		result.Truncated = true
		result.Limit = MaxBulkSwaps
		swaps = swaps[:MaxBulkSwaps]
	}

	for i, sw := range swaps {
		if ctx.Err() != nil {
			result.Success = false
			result.StoppedReason = ctx.Err().Error()
			result.StoppedOnSwap = i + 1
			break
		}

		clicksBefore := sess.Engine.GetClicksRemaining()
		outcome, err := sess.Engine.RequestSwap(sw.From, sw.To)
		if err != nil {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("swap %d rejected: %v", i+1, err)
			result.StoppedOnSwap = i + 1
			if errors.Is(err, engine.ErrGameOver) {
				result.StopReasonCode = "game_over"
			} else {
				result.StopReasonCode = "invalid_swap"
			}
			break
		}

		result.SwapsExecuted++
		if outcome.NullMove {
			result.NullMoves++
		}
		if outcome.ChainDepth > result.MaxChain {
			result.MaxChain = outcome.ChainDepth
		}
		result.Steps = append(result.Steps, SwapStep{
			Idx:          i + 1,
			From:         sw.From,
			To:           sw.To,
			Accepted:     outcome.Accepted,
			ChainDepth:   outcome.ChainDepth,
			ScoreDelta:   outcome.ScoreDelta,
			Special:      outcome.Special,
			ClicksBefore: clicksBefore,
			ClicksAfter:  sess.Engine.GetClicksRemaining(),
		})

		if outcome.GameOver {
			s.recordScore(sess)
			if i < len(swaps)-1 {
				result.StoppedReason = "game over"
				result.StopReasonCode = "game_over"
				result.StoppedOnSwap = i + 1
			}
			break
		}
	}

	result.EndScore = sess.Engine.GetScore()
	result.ScoreDelta = result.EndScore - result.StartScore
	result.GameOver = sess.Engine.IsGameOver()
	result.Summary = sess.Engine.QueryState()
	result.GameState = sess.Engine.GetState().Clone()
	return result, nil
}

// recordScore stores a finished game; failures are logged, not returned
func (s *gameServiceImpl) recordScore(sess *Session) *scores.Entry {
	entry, err := s.scores.Record(scores.EntryFromState(sess.ID, sess.Engine.GetState()))
	if err != nil {
		log.Warn().Err(err).Str("session", sess.ID).Msg("failed to record score")
		return nil
	}
	log.Info().Str("session", sess.ID).Int("score", entry.Score).Int("max_chain", entry.MaxChain).Msg("game over")
	return &entry
}

func describeOutcome(out *engine.Outcome, summary engine.StateSummary) string {
	switch {
	case out.NullMove:
		return "No match, swap reverted"
	case out.GameOver:
		return fmt.Sprintf("Game over! Final score: %d", summary.DisplayScore)
	case out.SpecialEffect:
		return fmt.Sprintf("%s triggered, +%d points", out.Special, engine.DisplayScore(out.ScoreDelta))
	case out.ChainDepth > 1:
		return fmt.Sprintf("Chain x%d, +%d points", out.ChainDepth, engine.DisplayScore(out.ScoreDelta))
	default:
		return fmt.Sprintf("Match, +%d points", engine.DisplayScore(out.ScoreDelta))
	}
}

// Reset deals a new board for a session
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	state, err := sess.Engine.Reset()
	if err != nil {
		return nil, fmt.Errorf("failed to reset game: %w", err)
	}
	return state.Clone(), nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.GetState().Clone(), nil
}

// GetSwapHistory returns paginated swap history
func (s *gameServiceImpl) GetSwapHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	history := sess.Engine.GetSwapHistory()
	total := len(history)

	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	swaps := []engine.SwapRecord{}
	if start < total {
		if opts.Order == "desc" {
			// most recent first
			for i := total - 1 - start; i >= total-end; i-- {
				swaps = append(swaps, history[i])
			}
		} else {
			swaps = append(swaps, history[start:end]...)
		}
	}

	return &HistoryResponse{
		Swaps:       swaps,
		TotalSwaps:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// GetHints lists swaps that would resolve, up to limit (0 means all)
func (s *gameServiceImpl) GetHints(ctx context.Context, sessionID string, limit int) (*HintsResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	swaps := []engine.Swap{}
	if !sess.Engine.IsGameOver() {
		swaps = append(swaps, sess.Engine.PossibleSwaps()...)
	}
	total := len(swaps)
	if limit > 0 && len(swaps) > limit {
		swaps = swaps[:limit]
	}
	return &HintsResponse{Swaps: swaps, Total: total}, nil
}

// GetScoreHistory returns the most recent finished games, newest first
func (s *gameServiceImpl) GetScoreHistory(ctx context.Context) ([]scores.Entry, error) {
	return s.scores.Recent()
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a game configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}
