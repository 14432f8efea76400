package scores

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wricardo/mcp-training/matchgame/game/engine"
)

func newStores(t *testing.T) map[string]Store {
	fs, err := NewFileStore(filepath.Join(t.TempDir(), "nested", "scores.json"))
	require.NoError(t, err)
	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fs,
	}
}

func TestStoreKeepsTenNewestFirst(t *testing.T) {
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			for i := 1; i <= 12; i++ {
				_, err := store.Record(Entry{SessionID: "s", Score: i})
				require.NoError(t, err)
			}

			entries, err := store.Recent()
			require.NoError(t, err)
			require.Len(t, entries, MaxEntries)
			assert.Equal(t, 12, entries[0].Score)
			assert.Equal(t, 3, entries[MaxEntries-1].Score)
		})
	}
}

func TestStoreStampsEntries(t *testing.T) {
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			recorded, err := store.Record(Entry{Score: 5})
			require.NoError(t, err)

			_, err = uuid.Parse(recorded.ID)
			assert.NoError(t, err)
			assert.False(t, recorded.RecordedAt.IsZero())

			entries, err := store.Recent()
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, recorded.ID, entries[0].ID)
		})
	}
}

func TestStoreEmpty(t *testing.T) {
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			entries, err := store.Recent()
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.json")
	first, err := NewFileStore(path)
	require.NoError(t, err)
	_, err = first.Record(Entry{SessionID: "abcd", Score: 77})
	require.NoError(t, err)

	second, err := NewFileStore(path)
	require.NoError(t, err)
	entries, err := second.Recent()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "abcd", entries[0].SessionID)
	assert.Equal(t, 77, entries[0].Score)
}

func TestFileStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	store, err := NewFileStore(path)
	require.NoError(t, err)
	_, err = store.Recent()
	assert.ErrorContains(t, err, "failed to parse score history")
	_, err = store.Record(Entry{Score: 1})
	assert.Error(t, err)
}

func TestEntryFromState(t *testing.T) {
	state := &engine.GameState{
		Score:             1065.8,
		ConfigName:        "hard",
		Difficulty:        engine.DifficultyHard,
		MaxChain:          4,
		CurrentSwapsCount: 20,
	}

	entry := EntryFromState("ab12", state)
	assert.Equal(t, 1066, entry.Score)
	assert.InDelta(t, 1065.8, entry.ExactScore, 1e-9)
	assert.Equal(t, "hard", entry.ConfigName)
	assert.Equal(t, engine.DifficultyHard, entry.Difficulty)
	assert.Equal(t, 4, entry.MaxChain)
	assert.Equal(t, 20, entry.Swaps)
	assert.Equal(t, "ab12", entry.SessionID)
}
