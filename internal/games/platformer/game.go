// Package platformer runs a pack of lava levels one after another.
// Touching lava restarts the level, collecting every coin moves on to the
// next one, and clearing the last level wins the run.
package platformer

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

// GameID is the registry ID of the platformer.
const GameID = "platformer"

// Game implements registry.Game for a level pack.
type Game struct {
	cfg        config.PlatformerConfig
	pack       levels.Pack
	startLevel int
	sink       ResultSink

	rt    core.RuntimeConfig
	rng   *rand.Rand
	index int
	lvl   *level.Level
	keys  KeyHold
	view  viewport

	score    int
	lives    int
	gameOver bool
	won      bool
	paused   bool
}

// New creates a platformer with the default configuration and pack.
func New() *Game {
	cfg := config.DefaultPlatformerConfig()
	g := &Game{cfg: cfg}
	g.pack = defaultPack(cfg.Gameplay.Pack)
	return g
}

func defaultPack(id string) levels.Pack {
	if p, err := levels.BuiltinByID(id); err == nil {
		return p
	}
	if all := levels.Builtin(); len(all) > 0 {
		return all[0]
	}
	return levels.Pack{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Lava Run"
}

// SetConfig replaces the tuning used from the next Reset on.
// The pack is switched too when the configured pack differs.
func (g *Game) SetConfig(cfg config.PlatformerConfig) {
	if cfg.Gameplay.Pack != "" && cfg.Gameplay.Pack != g.cfg.Gameplay.Pack {
		if p, err := levels.BuiltinByID(cfg.Gameplay.Pack); err == nil {
			g.pack = p
		}
	}
	g.cfg = cfg
}

// Config returns the active configuration.
func (g *Game) Config() config.PlatformerConfig {
	return g.cfg
}

// SetPack validates and selects the pack played from the next Reset on.
func (g *Game) SetPack(p levels.Pack) error {
	if err := levels.Validate(p); err != nil {
		return err
	}
	g.pack = p
	if g.startLevel >= len(p.Levels) {
		g.startLevel = 0
	}
	return nil
}

// Pack returns the pack being played.
func (g *Game) Pack() levels.Pack {
	return g.pack
}

// SetStartLevel sets the 0-based level index a run begins at.
// Out of range values start at the first level.
func (g *Game) SetStartLevel(index int) {
	if index < 0 || index >= len(g.pack.Levels) {
		index = 0
	}
	g.startLevel = index
}

// StartLevel returns the level index a run begins at.
func (g *Game) StartLevel() int {
	return g.startLevel
}

// SetResultSink registers a receiver for finished level attempts.
func (g *Game) SetResultSink(s ResultSink) {
	g.sink = s
}

// Reset initializes or restarts the run.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rt = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.index = g.startLevel
	g.score = 0
	g.lives = g.cfg.Gameplay.Lives
	g.gameOver = false
	g.won = false
	g.paused = false
	g.loadLevel()
}

// ReloadPack swaps in an edited version of the current pack and restarts
// the current level, keeping score and lives.
func (g *Game) ReloadPack(p levels.Pack) error {
	if err := levels.Validate(p); err != nil {
		return err
	}
	g.pack = p
	if g.index >= len(p.Levels) {
		g.index = len(p.Levels) - 1
	}
	if !g.gameOver {
		g.loadLevel()
	}
	return nil
}

// loadLevel builds the level at g.index. A plan that fails to build ends the run.
func (g *Game) loadLevel() {
	g.keys = NewKeyHold(g.cfg.Input.HoldTicks)
	g.view = viewport{}
	g.lvl = nil

	if g.index < 0 || g.index >= len(g.pack.Levels) {
		g.gameOver = true
		return
	}
	lvl, err := level.New(g.pack.Levels[g.index].Rows, g.cfg.Physics.Physics(), g.rng)
	if err != nil {
		g.gameOver = true
		return
	}
	g.lvl = lvl
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver || g.lvl == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
		g.keys.Release()
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		g.loadLevel()
		return core.StepResult{State: g.State()}
	}

	keys := g.keys.Update(in)
	before := g.lvl.CoinsCollected()
	g.lvl.Animate(g.frameTime(in), keys)
	if g.lvl.Status() != level.StatusLost {
		g.score += (g.lvl.CoinsCollected() - before) * g.cfg.Gameplay.CoinPoints
	}

	if g.lvl.IsFinished() {
		g.finishLevel()
	}

	return core.StepResult{State: g.State()}
}

// frameTime converts the tick's wall-clock time into simulated seconds,
// capped so a stalled terminal does not teleport actors.
func (g *Game) frameTime(in core.InputFrame) float64 {
	d := in.Elapsed
	if d <= 0 {
		d = g.rt.TickDuration()
	}
	if limit := time.Duration(g.cfg.Gameplay.MaxFrameMS) * time.Millisecond; limit > 0 && d > limit {
		d = limit
	}
	return d.Seconds()
}

func (g *Game) finishLevel() {
	status := g.lvl.Status()
	if g.sink != nil {
		g.sink.LevelFinished(Result{
			PackID:  g.pack.ID,
			LevelID: g.pack.Levels[g.index].ID,
			Status:  status,
			Elapsed: time.Duration(g.lvl.Elapsed() * float64(time.Second)),
			Coins:   g.lvl.CoinsCollected(),
		})
	}

	switch status {
	case level.StatusLost:
		if g.cfg.Gameplay.Lives > 0 {
			g.lives--
			if g.lives <= 0 {
				g.lives = 0
				g.gameOver = true
				return
			}
		}
		g.loadLevel()
	case level.StatusWon:
		g.score += g.cfg.Gameplay.LevelPoints
		if g.index == len(g.pack.Levels)-1 {
			g.gameOver = true
			g.won = true
			return
		}
		g.index++
		g.loadLevel()
	}
}

// Level returns the level being played, or nil once the run cannot continue.
func (g *Game) Level() *level.Level {
	return g.lvl
}

// LevelIndex returns the 0-based index of the current level in the pack.
func (g *Game) LevelIndex() int {
	return g.index
}

// Lives returns the remaining lives; 0 when lives are disabled.
func (g *Game) Lives() int {
	return g.lives
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Won:      g.won,
		Paused:   g.paused,
	}
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
