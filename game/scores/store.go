package scores

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wricardo/mcp-training/matchgame/game/engine"
)

// MaxEntries is how many finished games a store keeps
const MaxEntries = 10

// Entry is one finished game
type Entry struct {
	ID         string            `json:"id"`
	SessionID  string            `json:"session_id"`
	ConfigName string            `json:"config_name"`
	Difficulty engine.Difficulty `json:"difficulty"`
	Score      int               `json:"score"`
	ExactScore float64           `json:"exact_score"`
	MaxChain   int               `json:"max_chain"`
	Swaps      int               `json:"swaps"`
	RecordedAt time.Time         `json:"recorded_at"`
}

// EntryFromState builds an entry for a finished game
func EntryFromState(sessionID string, state *engine.GameState) Entry {
	return Entry{
		SessionID:  sessionID,
		ConfigName: state.ConfigName,
		Difficulty: state.Difficulty,
		Score:      engine.DisplayScore(state.Score),
		ExactScore: state.Score,
		MaxChain:   state.MaxChain,
		Swaps:      state.CurrentSwapsCount,
	}
}

// Store records finished games, newest first
type Store interface {
	Record(entry Entry) (Entry, error)
	Recent() ([]Entry, error)
}

// prepend stamps e and puts it in front of entries, keeping at most MaxEntries
func prepend(entries []Entry, e Entry) ([]Entry, Entry) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.RecordedAt.IsZero() {
		e.RecordedAt = time.Now()
	}
	out := make([]Entry, 0, MaxEntries)
	out = append(out, e)
	for _, old := range entries {
		if len(out) == MaxEntries {
			break
		}
		out = append(out, old)
	}
	return out, e
}

// MemoryStore keeps score history in memory
type MemoryStore struct {
	entries []Entry
	mu      sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Record adds a finished game
func (s *MemoryStore) Record(entry Entry) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var recorded Entry
	s.entries, recorded = prepend(s.entries, entry)
	return recorded, nil
}

// Recent returns the stored games, newest first
func (s *MemoryStore) Recent() ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// FileStore keeps score history in a single JSON file
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a file-backed store, creating the parent directory if needed
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create scores directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

// Record adds a finished game and rewrites the file
func (s *FileStore) Record(entry Entry) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return Entry{}, err
	}

	entries, recorded := prepend(entries, entry)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return Entry{}, fmt.Errorf("failed to marshal score history: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return Entry{}, fmt.Errorf("failed to write score history: %w", err)
	}
	return recorded, nil
}

// Recent returns the stored games, newest first
func (s *FileStore) Recent() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) load() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read score history: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse score history '%s': %w", s.path, err)
	}
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	return entries, nil
}
