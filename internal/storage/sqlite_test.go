package storage

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file should exist in nested directory")
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	_, err = store.SaveScore(ScoreEntry{Player: "ann", Score: 128})
	require.NoError(t, err)
	require.NoError(t, store.SaveHighscore(128))
	require.NoError(t, store.Close())

	store, err = Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	high, err := store.HighScore()
	require.NoError(t, err)
	assert.Equal(t, 128, high)

	saved, err := store.LoadHighscore()
	require.NoError(t, err)
	assert.Equal(t, 128, saved)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/.2048/scores.db")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".2048", "scores.db"), got)

	got, err = ExpandPath("/tmp/x.db")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", got)
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	entries := []ScoreEntry{
		{Player: "ann", Score: 100, MaxTile: 16, Moves: 30},
		{Player: "bob", Score: 50, MaxTile: 8, Moves: 12},
		{Player: "ann", Score: 200, MaxTile: 32, Moves: 55},
	}
	for _, e := range entries {
		id, err := store.SaveScore(e)
		require.NoError(t, err)
		assert.Positive(t, id)
	}

	scores, err := store.TopScores(10)
	require.NoError(t, err)
	require.Len(t, scores, 3)

	// Sorted descending
	assert.Equal(t, 200, scores[0].Score)
	assert.Equal(t, "ann", scores[0].Player)
	assert.Equal(t, 32, scores[0].MaxTile)
	assert.Equal(t, 55, scores[0].Moves)
	assert.False(t, scores[0].CreatedAt.IsZero(), "created_at should be parsed")
	assert.Equal(t, 100, scores[1].Score)
	assert.Equal(t, 50, scores[2].Score)
}

func TestStoreDefaultPlayer(t *testing.T) {
	store := openTestStore(t)

	_, err := store.SaveScore(ScoreEntry{Player: "  ", Score: 4})
	require.NoError(t, err)

	scores, err := store.PlayerTopScores(DefaultPlayer, 10)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, DefaultPlayer, scores[0].Player)
}

func TestStoreRejectsNegativeScore(t *testing.T) {
	store := openTestStore(t)

	_, err := store.SaveScore(ScoreEntry{Score: -1})
	assert.Error(t, err)
	assert.Error(t, store.SaveHighscore(-4))
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		_, err := store.SaveScore(ScoreEntry{Score: (i + 1) * 100})
		require.NoError(t, err)
	}

	scores, err := store.TopScores(3)
	require.NoError(t, err)
	require.Len(t, scores, 3)

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	// Non-positive limit falls back to 10
	scores, err = store.TopScores(0)
	require.NoError(t, err)
	assert.Len(t, scores, 5)
}

func TestStorePlayerTopScores(t *testing.T) {
	store := openTestStore(t)

	for _, e := range []ScoreEntry{
		{Player: "ann", Score: 10},
		{Player: "bob", Score: 500},
		{Player: "ann", Score: 30},
	} {
		_, err := store.SaveScore(e)
		require.NoError(t, err)
	}

	scores, err := store.PlayerTopScores("ann", 10)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, 30, scores[0].Score)
	assert.Equal(t, 10, scores[1].Score)

	scores, err = store.PlayerTopScores("nobody", 10)
	require.NoError(t, err)
	assert.Empty(t, scores)
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	// No scores yet
	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty store, got %d", high)
	}

	for _, s := range []int{100, 300, 200} {
		_, err := store.SaveScore(ScoreEntry{Score: s})
		require.NoError(t, err)
	}

	high, err = store.HighScore()
	require.NoError(t, err)
	assert.Equal(t, 300, high)
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats("")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.GamesCount)
	assert.True(t, empty.LastPlayed.IsZero())

	for _, e := range []ScoreEntry{
		{Player: "ann", Score: 100, MaxTile: 16, Moves: 10},
		{Player: "ann", Score: 300, MaxTile: 64, Moves: 20},
		{Player: "bob", Score: 500, MaxTile: 32, Moves: 40},
	} {
		_, err := store.SaveScore(e)
		require.NoError(t, err)
	}

	all, err := store.Stats("")
	require.NoError(t, err)
	assert.Equal(t, 3, all.GamesCount)
	assert.Equal(t, 500, all.HighScore)
	assert.Equal(t, 64, all.BestTile)
	assert.InDelta(t, 300.0, all.AvgScore, 0.001)
	assert.EqualValues(t, 70, all.TotalMoves)
	assert.False(t, all.LastPlayed.IsZero())

	ann, err := store.Stats("ann")
	require.NoError(t, err)
	assert.Equal(t, 2, ann.GamesCount)
	assert.Equal(t, 300, ann.HighScore)
	assert.InDelta(t, 200.0, ann.AvgScore, 0.001)
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	_, err := store.SaveScore(ScoreEntry{Score: 100})
	require.NoError(t, err)
	require.NoError(t, store.SaveHighscore(100))

	require.NoError(t, store.ClearScores())

	scores, err := store.TopScores(10)
	require.NoError(t, err)
	assert.Empty(t, scores)

	high, err := store.LoadHighscore()
	require.NoError(t, err)
	assert.Equal(t, 0, high)
}

func TestStoreHighscoreNeverDecreases(t *testing.T) {
	store := openTestStore(t)

	high, err := store.LoadHighscore()
	require.NoError(t, err)
	assert.Equal(t, 0, high, "missing highscore reads as 0")

	require.NoError(t, store.SaveHighscore(256))
	require.NoError(t, store.SaveHighscore(64))

	high, err = store.LoadHighscore()
	require.NoError(t, err)
	assert.Equal(t, 256, high)

	require.NoError(t, store.SaveHighscore(1024))
	high, err = store.LoadHighscore()
	require.NoError(t, err)
	assert.Equal(t, 1024, high)
}

func TestStoreConcurrentWriters(t *testing.T) {
	store := openTestStore(t)

	var wg sync.WaitGroup
	for i := 1; i <= 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			assert.NoError(t, store.SaveHighscore(n*100))
			_, err := store.SaveScore(ScoreEntry{Score: n})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	high, err := store.LoadHighscore()
	require.NoError(t, err)
	assert.Equal(t, 800, high)

	stats, err := store.Stats("")
	require.NoError(t, err)
	assert.Equal(t, 8, stats.GamesCount)
}
