package platformer

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
)

// Each tile is drawn two cells wide so the grid looks square in a terminal.
const cellsPerTile = 2

// Visual characters for rendering
const (
	WallChar   = '█'
	LavaChar   = '▓'
	FlowChar   = '▒'
	CoinChar   = 'o'
	PlayerChar = '@'
)

// viewport is the visible window onto the level, in tiles.
type viewport struct {
	left, top     float64
	width, height int
}

// follow scrolls the viewport so center stays out of the outer third of
// the view, never showing space beyond the level edges.
func (v *viewport) follow(center core.Vec, levelW, levelH int) {
	w, h := float64(v.width), float64(v.height)
	marginX, marginY := w/3, h/3

	if center.X < v.left+marginX {
		v.left = center.X - marginX
	} else if center.X > v.left+w-marginX {
		v.left = center.X + marginX - w
	}
	if center.Y < v.top+marginY {
		v.top = center.Y - marginY
	} else if center.Y > v.top+h-marginY {
		v.top = center.Y + marginY - h
	}

	v.left = core.ClampF(v.left, 0, math.Max(0, float64(levelW)-w))
	v.top = core.ClampF(v.top, 0, math.Max(0, float64(levelH)-h))
}

// Render draws the visible part of the level below a one-line HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	if g.lvl != nil {
		g.renderLevel(dst)
	}

	switch {
	case g.gameOver && g.won:
		g.drawCenteredMessage(dst, "YOU WIN!", fmt.Sprintf("Score: %d  |  Press R to play again", g.score))
	case g.gameOver:
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
	case g.paused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case g.lvl != nil && g.lvl.Status() == level.StatusWon:
		g.drawCenteredMessage(dst, "LEVEL COMPLETE", fmt.Sprintf("Score: %d", g.score))
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	name := g.pack.Title()
	if g.index >= 0 && g.index < len(g.pack.Levels) {
		name = fmt.Sprintf("%s: %s (%d/%d)", name, g.pack.Levels[g.index].Title(), g.index+1, len(g.pack.Levels))
	}
	dst.DrawTextColored(1, 0, name, core.ColorBrightWhite)

	status := fmt.Sprintf("Score: %d", g.score)
	if g.lvl != nil {
		status = fmt.Sprintf("Coins: %d  %s", g.lvl.CoinsLeft(), status)
	}
	if g.cfg.Gameplay.Lives > 0 {
		status = fmt.Sprintf("Lives: %d  %s", g.lives, status)
	}
	x := dst.Width() - utf8.RuneCountInString(status) - 1
	if x < utf8.RuneCountInString(name)+2 {
		return
	}
	dst.DrawTextColored(x, 0, status, core.ColorYellow)
}

func (g *Game) renderLevel(dst *core.Screen) {
	const hudRows = 1

	g.view.width = dst.Width() / cellsPerTile
	g.view.height = dst.Height() - hudRows
	if g.view.width <= 0 || g.view.height <= 0 {
		return
	}

	p := g.lvl.Player()
	center := p.Pos().Plus(p.Size().Times(0.5))
	g.view.follow(center, g.lvl.Width(), g.lvl.Height())

	ox := int(math.Floor(g.view.left))
	oy := int(math.Floor(g.view.top))

	for sy := 0; sy < g.view.height; sy++ {
		for tx := 0; tx <= g.view.width; tx++ {
			r, c := tileGlyph(g.lvl.TileAt(ox+tx, oy+sy))
			if r == 0 {
				continue
			}
			for i := 0; i < cellsPerTile; i++ {
				dst.SetColored(tx*cellsPerTile+i, sy+hudRows, r, c)
			}
		}
	}

	// toCell maps a level position to screen coordinates.
	toCell := func(x, y float64) (int, int) {
		return int(math.Round((x - float64(ox)) * cellsPerTile)), int(math.Floor(y-float64(oy))) + hudRows
	}

	for _, a := range g.lvl.Actors() {
		pos, size := a.Pos(), a.Size()
		switch a.Kind() {
		case level.KindCoin:
			cx, cy := toCell(pos.X+size.X/2, pos.Y+size.Y/2)
			setInView(dst, cx, cy, CoinChar, core.ColorBrightYellow)
		case level.KindLava:
			cx, cy := toCell(pos.X, pos.Y+size.Y/2)
			for i := 0; i < cellsPerTile; i++ {
				setInView(dst, cx+i, cy, FlowChar, core.ColorOrange)
			}
		case level.KindPlayer:
			color := core.ColorBrightWhite
			switch g.lvl.Status() {
			case level.StatusLost:
				color = core.ColorBrightRed
			case level.StatusWon:
				color = core.ColorBrightGreen
			}
			cx, feet := toCell(pos.X+size.X/2, pos.Y+size.Y-0.01)
			cx--
			rows := int(math.Max(1, math.Round(size.Y)))
			for dy := 0; dy < rows; dy++ {
				for i := 0; i < cellsPerTile; i++ {
					setInView(dst, cx+i, feet-dy, PlayerChar, color)
				}
			}
		}
	}
}

// setInView draws a cell, leaving the HUD row alone.
func setInView(dst *core.Screen, x, y int, r rune, c core.Color) {
	if y < 1 {
		return
	}
	dst.SetColored(x, y, r, c)
}

func tileGlyph(k level.Kind) (rune, core.Color) {
	switch k {
	case level.KindWall:
		return WallChar, core.ColorGray
	case level.KindLava:
		return LavaChar, core.ColorRed
	default:
		return 0, core.ColorDefault
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	titleLen := utf8.RuneCountInString(title)
	subtitleLen := utf8.RuneCountInString(subtitle)

	boxW := core.Max(titleLen, subtitleLen) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	dst.DrawTextColored(boxX+(boxW-titleLen)/2, boxY+1, title, core.ColorBrightYellow)
	dst.DrawText(boxX+(boxW-subtitleLen)/2, boxY+3, subtitle)
}
