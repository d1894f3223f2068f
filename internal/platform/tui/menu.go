package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// menuStage is the list the menu is showing.
type menuStage int

const (
	stagePacks menuStage = iota
	stageLevels
)

// MenuSelection is the pack and level the player chose.
type MenuSelection struct {
	Pack  levels.Pack
	Level int // 0-based index of the first level to play
}

// MenuModel is the Bubble Tea model for picking a pack and a level.
type MenuModel struct {
	packs     []levels.Pack
	best      map[string]storage.BestTime
	stage     menuStage
	packIdx   int
	cursor    int
	scroll    int
	width     int
	height    int
	store     *storage.Store
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	theme     Theme

	quitting       bool
	selected       *MenuSelection
	openScoreboard bool
}

// NewMenuModel creates a menu over packs. An empty list falls back to the
// built-in packs.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, packs []levels.Pack) MenuModel {
	if len(packs) == 0 {
		packs = levels.Builtin()
	}
	return MenuModel{
		packs:     packs,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		theme:     DefaultTheme(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.updateScroll()
		return m, nil
	}

	return m, nil
}

// itemCount is the number of rows in the current list. The level list has
// a leading "start from the beginning" row.
func (m MenuModel) itemCount() int {
	if m.stage == stagePacks {
		return len(m.packs)
	}
	return len(m.packs[m.packIdx].Levels) + 1
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}

	case MenuActionDown:
		if m.cursor < m.itemCount()-1 {
			m.cursor++
			m.updateScroll()
		}

	case MenuActionSelect, MenuActionRight:
		if m.itemCount() == 0 {
			return m, nil
		}
		if m.stage == stagePacks {
			m.enterPack(m.cursor)
			return m, nil
		}
		level := m.cursor - 1
		if level < 0 {
			level = 0
		}
		m.selected = &MenuSelection{Pack: m.packs[m.packIdx], Level: level}
		return m, tea.Quit

	case MenuActionBack, MenuActionLeft:
		if m.stage == stageLevels {
			m.stage = stagePacks
			m.cursor = m.packIdx
			m.scroll = 0
			m.updateScroll()
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *MenuModel) enterPack(i int) {
	m.packIdx = i
	m.stage = stageLevels
	m.cursor = 0
	m.scroll = 0
	m.best = nil
	if m.store != nil {
		if best, err := m.store.BestTimes(platformer.GameID, m.packs[i].ID); err == nil {
			m.best = best
		}
	}
}

func (m MenuModel) visibleItems() int {
	return core.Max(3, m.height-10)
}

// updateScroll keeps the cursor inside the visible window.
func (m *MenuModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	} else if m.cursor >= m.scroll+visible {
		m.scroll = m.cursor - visible + 1
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Title.Render("L A V A   R U N"), m.width))
	b.WriteString("\n\n")

	labels, details := m.rows()
	subtitle := "Select a level pack"
	if m.stage == stageLevels {
		subtitle = m.packs[m.packIdx].Title()
	}
	b.WriteString(centerText(m.theme.Subtitle.Render(subtitle), m.width))
	b.WriteString("\n\n")

	if len(labels) == 0 {
		b.WriteString(centerText(m.theme.Description.Render("No level packs found"), m.width))
		b.WriteString("\n")
	}

	end := core.Min(len(labels), m.scroll+m.visibleItems())
	if m.scroll > 0 {
		b.WriteString(centerText(m.theme.Description.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}
	for i := m.scroll; i < end; i++ {
		cursor := "  "
		style := m.theme.ItemNormal
		if i == m.cursor {
			cursor = "> "
			style = m.theme.ItemActive
		}
		line := style.Render(cursor + labels[i])
		if details[i] != "" {
			line += "  " + m.theme.ItemDetail.Render(details[i])
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	if end < len(labels) {
		b.WriteString(centerText(m.theme.Description.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	if m.stage == stageLevels {
		controls = "Up/Down: Navigate  |  Enter: Play  |  Esc: Packs  |  Q: Quit"
	}
	b.WriteString(centerText(m.theme.Controls.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// rows returns the label and detail text of every list row.
func (m MenuModel) rows() (labels, details []string) {
	if m.stage == stagePacks {
		for _, p := range m.packs {
			labels = append(labels, p.Title())
			details = append(details, fmt.Sprintf("%d levels", len(p.Levels)))
		}
		return labels, details
	}

	pack := m.packs[m.packIdx]
	labels = append(labels, "Start from Beginning")
	details = append(details, "")
	for i, plan := range pack.Levels {
		labels = append(labels, fmt.Sprintf("%2d. %s", i+1, plan.Title()))
		detail := ""
		if bt, ok := m.best[plan.ID]; ok {
			detail = "best " + formatDuration(bt.Elapsed)
		}
		details = append(details, detail)
	}
	return labels, details
}

// formatDuration renders a level time as seconds with one decimal.
func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// Selected returns the chosen pack and level, or nil if none selected.
func (m MenuModel) Selected() *MenuSelection {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width, measuring it without ANSI styling.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Selection       *MenuSelection
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, packs []levels.Pack) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(store, cfg, packs),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.Selection = m.Selected()
	default:
		result.Quit = true
	}
	return result, nil
}
