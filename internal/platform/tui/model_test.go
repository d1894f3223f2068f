package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/replay"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var testRuntime = core.RuntimeConfig{ScreenW: 60, ScreenH: 12, TickRate: 60, Seed: 7}

// shortPack has one level that is won by walking right.
var shortPack = levels.Pack{ID: "short", Name: "Short", Levels: []levels.Plan{{
	ID:   "walk",
	Name: "Walk",
	Rows: []string{
		"....",
		".@o.",
		"xxxx",
	},
}}}

func newTestGame(t *testing.T) *platformer.Game {
	t.Helper()
	g := platformer.New()
	g.SetConfig(config.DefaultPlatformerConfig())
	if err := g.SetPack(shortPack); err != nil {
		t.Fatalf("SetPack failed: %v", err)
	}
	return g
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

// tickAt sends a tick fired at start+i*step.
func tickAt(t *testing.T, m Model, start time.Time, i int, step time.Duration) Model {
	t.Helper()
	return update(t, m, TickMsg(start.Add(time.Duration(i)*step)))
}

func TestModelWinsAndSavesResults(t *testing.T) {
	store := openTestStore(t)
	m := NewModel(newTestGame(t), store, testRuntime)

	start := time.Now()
	for i := 0; i < 120 && !m.State().GameOver; i++ {
		m = update(t, m, runeKey("d"))
		m = tickAt(t, m, start, i, 50*time.Millisecond)
	}

	state := m.State()
	if !state.GameOver || !state.Won {
		t.Fatalf("expected a won run, got %+v", state)
	}
	if state.Score != 110 {
		t.Errorf("expected score 110, got %d", state.Score)
	}

	high, err := store.HighScore(platformer.GameID)
	if err != nil {
		t.Fatalf("HighScore failed: %v", err)
	}
	if high != 110 {
		t.Errorf("expected saved score 110, got %d", high)
	}

	best, err := store.BestTimes(platformer.GameID, "short")
	if err != nil {
		t.Fatalf("BestTimes failed: %v", err)
	}
	if _, ok := best["walk"]; !ok {
		t.Errorf("expected a best time for walk, got %v", best)
	}

	// Further ticks must not save the score twice.
	tickAt(t, m, start, 200, 50*time.Millisecond)
	if n, _ := store.ScoreCount(platformer.GameID); n != 1 {
		t.Errorf("expected 1 saved score, got %d", n)
	}
}

func TestModelRecordsFrameTimes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.replay")
	m := NewModel(newTestGame(t), nil, testRuntime, WithRecording(path))

	start := time.Now()
	m = tickAt(t, m, start, 0, 16*time.Millisecond)
	m = tickAt(t, m, start, 1, 16*time.Millisecond)
	m = update(t, m, runeKey("d"))
	m = tickAt(t, m, start, 2, 16*time.Millisecond)

	next, cmd := m.Update(runeKey("q"))
	m = next.(Model)
	if !m.IsQuitting() || cmd == nil {
		t.Fatal("expected q to quit")
	}

	rec, err := replay.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(rec.Frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(rec.Frames))
	}
	if rec.Frames[0].Elapsed != 0 {
		t.Errorf("first frame has no previous tick, got %v", rec.Frames[0].Elapsed)
	}
	if rec.Frames[1].Elapsed != 16*time.Millisecond {
		t.Errorf("expected 16ms, got %v", rec.Frames[1].Elapsed)
	}
	if !rec.Frames[2].Input().Has(core.ActionRight) {
		t.Error("expected the third frame to hold right")
	}
	if rec.PackID != "short" {
		t.Errorf("expected pack short, got %q", rec.PackID)
	}
}

func TestModelBackPausesThenLeaves(t *testing.T) {
	tests := []struct {
		name       string
		opts       []Option
		wantMenu   bool
		wantQuit   bool
		wantCmdNil bool
	}{
		{"standalone", nil, false, true, false},
		{"embedded", []Option{WithMenuReturn()}, true, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel(newTestGame(t), nil, testRuntime, tt.opts...)
			start := time.Now()

			m = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
			m = tickAt(t, m, start, 0, 16*time.Millisecond)
			if !m.State().Paused {
				t.Fatal("expected esc to pause a running game")
			}
			if m.BackToMenu() || m.IsQuitting() {
				t.Fatal("first esc should only pause")
			}

			next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
			m = next.(Model)
			if m.BackToMenu() != tt.wantMenu || m.IsQuitting() != tt.wantQuit {
				t.Errorf("menu=%v quit=%v, want menu=%v quit=%v",
					m.BackToMenu(), m.IsQuitting(), tt.wantMenu, tt.wantQuit)
			}
			if (cmd == nil) != tt.wantCmdNil {
				t.Errorf("unexpected command %v", cmd)
			}
			if m.View() != "" {
				t.Error("expected an empty view after leaving")
			}
		})
	}
}

func TestModelScriptIgnoresKeyboard(t *testing.T) {
	script := make([]core.InputFrame, 3)
	for i := range script {
		script[i] = core.NewInputFrame()
		script[i].Elapsed = 20 * time.Millisecond
	}
	script[1].Set(core.ActionRight)

	m := NewModel(newTestGame(t), nil, testRuntime, WithScript(script))
	start := time.Now()
	for i := 0; i < 5; i++ {
		m = update(t, m, runeKey("r"))
		m = tickAt(t, m, start, i, time.Second)
	}
	if m.scriptPos != len(script) {
		t.Errorf("expected the whole script to play, at %d", m.scriptPos)
	}
	if m.State().GameOver {
		t.Error("a short script should not finish the run")
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	g := newTestGame(t)
	m := NewModel(g, nil, testRuntime)
	start := time.Now()
	for i := 0; i < 5; i++ {
		m = update(t, m, runeKey("d"))
		m = tickAt(t, m, start, i, 16*time.Millisecond)
	}
	x := g.Level().Player().Pos().X

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("expected a 100x30 screen, got %dx%d", m.screen.Width(), m.screen.Height())
	}
	if g.Level().Player().Pos().X != x {
		t.Error("resizing should not restart the level")
	}
}

func TestModelRestartAfterGameOver(t *testing.T) {
	g := platformer.New()
	cfg := config.DefaultPlatformerConfig()
	cfg.Gameplay.Lives = 1
	g.SetConfig(cfg)
	pit := levels.Pack{ID: "pit", Levels: []levels.Plan{{ID: "pit", Rows: []string{
		"...",
		".@.",
		"x!x",
	}}}}
	if err := g.SetPack(pit); err != nil {
		t.Fatalf("SetPack failed: %v", err)
	}

	m := NewModel(g, nil, testRuntime)
	start := time.Now()
	for i := 0; i < 100 && !m.State().GameOver; i++ {
		m = tickAt(t, m, start, i, 50*time.Millisecond)
	}
	if !m.State().GameOver || m.State().Won {
		t.Fatalf("expected a lost run, got %+v", m.State())
	}

	m = update(t, m, runeKey("r"))
	m = tickAt(t, m, start, 101, 50*time.Millisecond)
	if m.State().GameOver {
		t.Error("expected r to restart the run")
	}
	if g.Lives() != 1 {
		t.Errorf("expected lives restored to 1, got %d", g.Lives())
	}
}

func TestModelReloadPack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "short.yaml")
	writeFile(t, path, `id: short
name: Short
levels:
  - id: walk
    rows:
      - "....."
      - ".@.o."
      - "xxxxx"
`)

	g := newTestGame(t)
	m := NewModel(g, nil, testRuntime)
	m = update(t, m, packChangedMsg{path: path})

	if got := g.Level().Width(); got != 5 {
		t.Errorf("expected the edited 5-wide level, got width %d", got)
	}
	if m.flash != "pack reloaded" {
		t.Errorf("unexpected flash %q", m.flash)
	}

	other := filepath.Join(dir, "other.yaml")
	writeFile(t, other, `id: other
levels:
  - rows:
      - "..."
      - ".@o"
      - "xxx"
`)
	update(t, m, packChangedMsg{path: other})
	if got := g.Level().Width(); got != 5 {
		t.Errorf("a different pack must not be loaded, got width %d", got)
	}
}
