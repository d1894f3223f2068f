package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/export"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/logging"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/replay"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// flashDuration is how long a status message stays on screen.
const flashDuration = 2 * time.Second

// packChangedMsg reports an edited pack file.
type packChangedMsg struct{ path string }

// watchErrMsg reports a watcher failure.
type watchErrMsg struct{ err error }

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger used for best-effort side effects.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// WithRecording records the first run and saves it to path on game over or quit.
func WithRecording(path string) Option {
	return func(m *Model) { m.recordPath = path }
}

// WithWatcher hot-reloads the pack being played when w reports a change to it.
func WithWatcher(w *levels.Watcher) Option {
	return func(m *Model) { m.watcher = w }
}

// WithScript plays back recorded input instead of reading the keyboard.
func WithScript(frames []core.InputFrame) Option {
	return func(m *Model) { m.script = frames }
}

// WithMenuReturn makes Back on a paused or finished game return to the
// caller instead of quitting.
func WithMenuReturn() Option {
	return func(m *Model) { m.menuReturn = true }
}

// Model is the Bubble Tea model that runs one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	logger     *log.Logger
	inputFrame core.InputFrame
	gameState  core.GameState
	lastTick   time.Time
	started    bool

	recordPath string
	recorder   *replay.Recorder
	watcher    *levels.Watcher
	script     []core.InputFrame
	scriptPos  int
	menuReturn bool

	flash      string
	flashUntil time.Time

	quitting   bool
	backToMenu bool
	scoreSaved bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		logger:     logging.Discard(),
		inputFrame: core.NewInputFrame(),
	}
	for _, opt := range opts {
		opt(&m)
	}

	if pg, ok := game.(*platformer.Game); ok && store != nil && m.script == nil {
		pg.SetResultSink(m.resultSink(pg.ID()))
	}

	m.game.Reset(m.config)
	m.gameState = m.game.State()
	if m.recordPath != "" {
		m.recorder = replay.NewRecorder(game, m.config.Seed, m.config.TickRate)
	}
	return m
}

// resultSink stores finished level attempts.
func (m Model) resultSink(gameID string) platformer.ResultSink {
	store, logger := m.store, m.logger
	return platformer.ResultSinkFunc(func(r platformer.Result) {
		_, err := store.SaveLevelResult(storage.LevelResult{
			GameID:  gameID,
			PackID:  r.PackID,
			LevelID: r.LevelID,
			Status:  r.Status.String(),
			Elapsed: r.Elapsed,
			Coins:   r.Coins,
		})
		if err != nil {
			logger.Warn("could not save level result", "level", r.LevelID, "error", err)
		}
	})
}

// Init starts the tick loop and, when watching, the pack watcher.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	if m.watcher != nil {
		cmds = append(cmds, waitForPackChange(m.watcher))
	}
	return tea.Batch(cmds...)
}

// waitForPackChange blocks until the watcher reports something.
func waitForPackChange(w *levels.Watcher) tea.Cmd {
	return func() tea.Msg {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			return packChangedMsg{path: path}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return watchErrMsg{err: err}
		}
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case packChangedMsg:
		m.reloadPack(msg.path)
		return m, m.watchCmd()

	case watchErrMsg:
		m.logger.Warn("pack watcher error", "error", msg.err)
		return m, m.watchCmd()
	}

	return m, nil
}

func (m Model) watchCmd() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return waitForPackChange(m.watcher)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "ctrl+y":
		m.copyFrame()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.finishRecording()
		m.quitting = true
		return m, tea.Quit
	}

	if action == core.ActionBack {
		if m.gameState.GameOver || m.gameState.Paused {
			m.finishRecording()
			if m.menuReturn {
				m.backToMenu = true
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit
		}
		action = core.ActionPause
	}

	if m.script != nil && action != core.ActionPause {
		return m, nil
	}
	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleTick runs one simulation step.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	if m.started {
		m.inputFrame.Elapsed = now.Sub(m.lastTick)
	}
	m.lastTick = now
	m.started = true

	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.finishRecording()
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	in := m.inputFrame
	if m.script != nil {
		if m.scriptPos >= len(m.script) {
			m.inputFrame.Clear()
			return m, tickCmd(m.config.TickRate)
		}
		in = m.script[m.scriptPos]
		m.scriptPos++
	}

	if m.recorder != nil {
		m.recorder.Record(in)
	}
	result := m.game.Step(in)
	m.gameState = result.State

	if m.gameState.GameOver {
		m.finishRecording()
		if !m.scoreSaved && m.gameState.Score > 0 && m.script == nil {
			if m.store != nil {
				if _, err := m.store.SaveScore(m.game.ID(), m.gameState.Score); err != nil {
					m.logger.Warn("could not save score", "game", m.game.ID(), "error", err)
				}
			}
			m.scoreSaved = true
		}
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// reloadPack swaps in an edited pack when it is the one being played.
func (m *Model) reloadPack(path string) {
	pg, ok := m.game.(*platformer.Game)
	if !ok {
		return
	}
	pack, err := levels.NewLoader(filepath.Dir(path)).LoadFile(path)
	if err != nil {
		m.logger.Warn("pack reload failed", "path", path, "error", err)
		m.setFlash("reload failed: " + err.Error())
		return
	}
	if pack.ID != pg.Pack().ID {
		return
	}
	if err := pg.ReloadPack(pack); err != nil {
		m.setFlash("reload failed: " + err.Error())
		return
	}
	m.logger.Info("pack reloaded", "pack", pack.ID, "path", path)
	m.setFlash("pack reloaded")
}

// finishRecording saves the recording once and stops recording.
func (m *Model) finishRecording() {
	if m.recorder == nil {
		return
	}
	rec := m.recorder.Recording()
	m.recorder = nil
	if err := rec.Save(m.recordPath); err != nil {
		m.logger.Warn("could not save recording", "path", m.recordPath, "error", err)
		return
	}
	m.logger.Info("recording saved", "path", m.recordPath, "frames", len(rec.Frames))
}

// saveScreenshot writes the current frame as text and, for level games, as PNG.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot: no home directory", "error", err)
		return
	}
	dir := filepath.Join(home, ".platformer", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot: cannot create directory", "error", err)
		return
	}

	base := filepath.Join(dir, fmt.Sprintf("%s_%s", m.game.ID(), time.Now().Format("20060102_150405")))
	if err := os.WriteFile(base+".txt", []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot: cannot write text", "error", err)
		return
	}

	if pg, ok := m.game.(*platformer.Game); ok && pg.Level() != nil {
		opts := export.Options{Label: screenshotLabel(pg)}
		if err := export.SavePNG(base+".png", pg.Level(), opts); err != nil {
			m.logger.Warn("screenshot: cannot write png", "error", err)
		}
	}
	m.setFlash("screenshot saved to " + dir)
}

func screenshotLabel(g *platformer.Game) string {
	pack := g.Pack()
	i := g.LevelIndex()
	if i < 0 || i >= len(pack.Levels) {
		return pack.Title()
	}
	return fmt.Sprintf("%s: %s", pack.Title(), pack.Levels[i].Title())
}

// copyFrame puts the current frame on the system clipboard as plain text.
func (m *Model) copyFrame() {
	m.game.Render(m.screen)
	if err := clipboard.WriteAll(m.screen.String()); err != nil {
		m.logger.Warn("clipboard unavailable", "error", err)
		m.setFlash("clipboard unavailable")
		return
	}
	m.setFlash("frame copied to clipboard")
}

func (m *Model) setFlash(text string) {
	m.flash = text
	m.flashUntil = time.Now().Add(flashDuration)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	if m.flash != "" && time.Now().Before(m.flashUntil) {
		m.screen.DrawTextColored(1, m.screen.Height()-1, m.flash, core.ColorBrightGreen)
	}
	if m.script != nil {
		label := fmt.Sprintf(" REPLAY %d/%d ", m.scriptPos, len(m.script))
		m.screen.DrawTextColored(m.screen.Width()-len(label)-1, m.screen.Height()-1, label, core.ColorCyan)
	}
	return RenderScreen(m.screen)
}

// State returns the last known game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if the user asked to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for game and blocks until it exits.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) error {
	p := tea.NewProgram(
		NewModel(game, store, cfg, opts...),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
