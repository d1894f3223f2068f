package platformer

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/levels"
)

func TestRenderDrawsLevel(t *testing.T) {
	g := newTestGame(t, 3, walkRight)
	screen := core.NewScreen(60, 10)
	g.Render(screen)

	out := screen.String()
	if !strings.Contains(screen.Row(0), "Test: Walk (1/1)") {
		t.Errorf("HUD missing level name: %q", screen.Row(0))
	}
	if !strings.Contains(screen.Row(0), "Lives: 3") {
		t.Errorf("HUD missing lives: %q", screen.Row(0))
	}
	if !strings.Contains(out, "@@") {
		t.Error("player not drawn")
	}
	if got := screen.Get(5, 2); got != CoinChar {
		t.Errorf("expected coin at 5,2, got %q", got)
	}
	if !strings.Contains(screen.Row(3), strings.Repeat(string(WallChar), 8)) {
		t.Errorf("floor not drawn two cells per tile: %q", screen.Row(3))
	}
}

func TestRenderOverlays(t *testing.T) {
	g := newTestGame(t, 0, walkRight)
	screen := core.NewScreen(60, 12)

	g.Step(press(core.ActionPause))
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("pause overlay missing")
	}

	g.Step(press(core.ActionPause))
	runUntil(g, 300, holdRight, func() bool { return g.State().GameOver })
	g.Render(screen)
	if !strings.Contains(screen.String(), "YOU WIN!") {
		t.Error("victory overlay missing")
	}
}

func TestRenderScrollsWithPlayer(t *testing.T) {
	row := "." + strings.Repeat(".", 60) + "o."
	plan := levels.Plan{ID: "long", Rows: []string{
		strings.Repeat(".", len(row)),
		".@" + row[2:],
		strings.Repeat("x", len(row)),
	}}
	g := newTestGame(t, 0, plan)
	screen := core.NewScreen(20, 6)

	g.Render(screen)
	if g.view.left != 0 {
		t.Fatalf("expected view at left edge, got %v", g.view.left)
	}

	for i := 0; i < 120; i++ {
		g.Step(press(core.ActionRight))
	}
	g.Render(screen)
	if g.view.left <= 0 {
		t.Error("view did not follow the player")
	}
	center := g.Level().Player().Pos().X
	if center < g.view.left || center > g.view.left+float64(g.view.width) {
		t.Errorf("player at %v outside view [%v, %v]", center, g.view.left, g.view.left+float64(g.view.width))
	}
}

func TestViewportClampsToLevel(t *testing.T) {
	tests := []struct {
		name     string
		center   core.Vec
		levelW   int
		wantLeft float64
	}{
		{"near left edge", core.V(1, 1), 100, 0},
		{"middle", core.V(50, 1), 100, 50 + 10.0/3 - 10},
		{"near right edge", core.V(99, 1), 100, 90},
		{"level narrower than view", core.V(3, 1), 6, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viewport{width: 10, height: 5}
			v.follow(tt.center, tt.levelW, 5)
			if diff := v.left - tt.wantLeft; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("left = %v, want %v", v.left, tt.wantLeft)
			}
		})
	}
}
