package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesDirectories(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "scores.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore("platformer", 120); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("platformer")
	if err != nil || high != 120 {
		t.Errorf("expected high score 120 after reopen, got %d (%v)", high, err)
	}
}

func TestScoresOrderedAndScoped(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []int{100, 50, 200} {
		if _, err := store.SaveScore("platformer", s); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("other", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("platformer", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	want := []int{200, 100, 50}
	if len(scores) != len(want) {
		t.Fatalf("expected %d scores, got %d", len(want), len(scores))
	}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, w)
		}
		if scores[i].CreatedAt.IsZero() {
			t.Errorf("scores[%d] has no timestamp", i)
		}
	}

	all, err := store.AllScores("other")
	if err != nil || len(all) != 1 {
		t.Errorf("expected 1 score for other game, got %d (%v)", len(all), err)
	}
}

func TestTopScoresLimit(t *testing.T) {
	store := openTestStore(t)
	for i := 1; i <= 15; i++ {
		store.SaveScore("platformer", i*10)
	}

	tests := []struct {
		limit int
		want  int
	}{
		{3, 3},
		{0, 10},
		{-1, 10},
		{50, 15},
	}
	for _, tt := range tests {
		scores, err := store.TopScores("platformer", tt.limit)
		if err != nil {
			t.Fatalf("TopScores(%d) failed: %v", tt.limit, err)
		}
		if len(scores) != tt.want {
			t.Errorf("TopScores(%d) returned %d rows, want %d", tt.limit, len(scores), tt.want)
		}
	}
}

func TestHighScoreAndCount(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("platformer")
	if err != nil || high != 0 {
		t.Errorf("expected 0 for empty table, got %d (%v)", high, err)
	}

	store.SaveScore("platformer", 30)
	store.SaveScore("platformer", 310)

	high, _ = store.HighScore("platformer")
	if high != 310 {
		t.Errorf("expected 310, got %d", high)
	}
	n, err := store.ScoreCount("platformer")
	if err != nil || n != 2 {
		t.Errorf("expected 2 scores, got %d (%v)", n, err)
	}
}

func TestGameStats(t *testing.T) {
	store := openTestStore(t)
	store.SaveScore("platformer", 100)
	store.SaveScore("platformer", 300)

	stats, err := store.GetGameStats("platformer")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.TotalScore != 400 || stats.AvgScore != 200 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("expected last played time")
	}

	empty, err := store.GetGameStats("nothing")
	if err != nil {
		t.Fatalf("GetGameStats() on empty game failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("unexpected stats for empty game %+v", empty)
	}

	all, err := store.GetAllGamesStats()
	if err != nil || len(all) != 1 || all["platformer"] == nil {
		t.Errorf("unexpected all-games stats %v (%v)", all, err)
	}
}

func TestLevelResults(t *testing.T) {
	store := openTestStore(t)

	results := []LevelResult{
		{GameID: "platformer", PackID: "classic", LevelID: "a", Status: StatusLost, Elapsed: 2 * time.Second},
		{GameID: "platformer", PackID: "classic", LevelID: "a", Status: StatusWon, Elapsed: 9500 * time.Millisecond, Coins: 3},
		{GameID: "platformer", PackID: "classic", LevelID: "a", Status: StatusWon, Elapsed: 7250 * time.Millisecond, Coins: 3},
		{GameID: "platformer", PackID: "classic", LevelID: "b", Status: StatusLost, Elapsed: time.Second},
		{GameID: "platformer", PackID: "tutorial", LevelID: "a", Status: StatusWon, Elapsed: time.Second},
	}
	for _, r := range results {
		if _, err := store.SaveLevelResult(r); err != nil {
			t.Fatalf("SaveLevelResult() failed: %v", err)
		}
	}

	best, err := store.BestTimes("platformer", "classic")
	if err != nil {
		t.Fatalf("BestTimes() failed: %v", err)
	}
	if len(best) != 1 {
		t.Fatalf("expected best time for one level, got %d", len(best))
	}
	if got := best["a"].Elapsed; got != 7250*time.Millisecond {
		t.Errorf("best time for a = %v, want 7.25s", got)
	}

	stats, err := store.LevelStats("platformer", "classic")
	if err != nil {
		t.Fatalf("LevelStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected stats for 2 levels, got %d", len(stats))
	}
	a, b := stats[0], stats[1]
	if a.LevelID != "a" || a.Attempts != 3 || a.Wins != 2 || a.Deaths != 1 || a.Best != 7250*time.Millisecond {
		t.Errorf("unexpected stats for a: %+v", a)
	}
	if b.LevelID != "b" || b.Attempts != 1 || b.Wins != 0 || b.Best != 0 {
		t.Errorf("unexpected stats for b: %+v", b)
	}
}

func TestClearScores(t *testing.T) {
	store := openTestStore(t)
	store.SaveScore("platformer", 10)
	store.SaveLevelResult(LevelResult{GameID: "platformer", PackID: "p", LevelID: "a", Status: StatusWon, Elapsed: time.Second})

	if err := store.ClearScores("platformer"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if n, _ := store.ScoreCount("platformer"); n != 0 {
		t.Errorf("expected no scores, got %d", n)
	}
	if best, _ := store.BestTimes("platformer", "p"); len(best) != 0 {
		t.Errorf("expected no level results, got %d", len(best))
	}
}

func TestParseTime(t *testing.T) {
	ref := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	tests := []struct {
		name string
		in   any
		want time.Time
	}{
		{"time value", ref, ref},
		{"sqlite text", "2024-05-06 07:08:09", ref},
		{"rfc3339", "2024-05-06T07:08:09Z", ref},
		{"garbage", "yesterday", time.Time{}},
		{"nil", nil, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseTime(tt.in); !got.Equal(tt.want) {
				t.Errorf("parseTime(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
