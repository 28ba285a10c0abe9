package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/numhunt/internal/config"
	"github.com/vovakirdan/numhunt/internal/core"
	"github.com/vovakirdan/numhunt/internal/lang"
	"github.com/vovakirdan/numhunt/internal/registry"
)

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuItem represents a selectable scene in the menu.
type MenuItem struct {
	SceneID     string
	Title       string
	Description string
}

// MenuModel is the Bubble Tea model for the scene picker.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	language       lang.Language
	pace           config.PacePreset
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel creates a new menu model.
func NewMenuModel(cfg core.RuntimeConfig, l lang.Language, pace config.PacePreset) MenuModel {
	scenes := registry.List()
	items := make([]MenuItem, 0, len(scenes))
	for _, s := range scenes {
		items = append(items, MenuItem{
			SceneID:     s.ID,
			Title:       s.Title,
			Description: s.Description,
		})
	}
	if pace == "" {
		pace = config.PaceNormal
	}

	return MenuModel{
		items:     items,
		language:  l,
		pace:      pace,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
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
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		m.pace = shiftPace(m.pace, -1)

	case MenuActionRight:
		m.pace = shiftPace(m.pace, 1)

	case MenuActionLanguage:
		m.language = m.language.Toggle()

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

func shiftPace(p config.PacePreset, delta int) config.PacePreset {
	paces := config.Paces()
	for i, q := range paces {
		if q == p {
			return paces[(i+delta+len(paces))%len(paces)]
		}
	}
	return config.PaceNormal
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("N U M B E R   H U N T"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Choose a scene", m.width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText(menuDimStyle.Render("No scenes registered."), m.width))
		b.WriteString("\n")
	}
	for i, item := range m.items {
		line := "  " + item.Title
		if i == m.cursor {
			line = menuCursorStyle.Render("> " + item.Title)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if len(m.items) > 0 {
		b.WriteString("\n")
		desc := runewidth.Truncate(m.items[m.cursor].Description, max(m.width-4, 10), "…")
		b.WriteString(centerText(menuDimStyle.Render(desc), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	settings := fmt.Sprintf("Language: %s    Pace: < %s >", m.language.Name(), m.pace)
	b.WriteString(centerText(settings, m.width))
	b.WriteString("\n\n")

	controls := "Up/Down: Scene  |  Left/Right: Pace  |  L: Language  |  Enter: Play  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(menuDimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
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

// Launch returns the launch request for the current selection.
func (m MenuModel) Launch() Launch {
	l := Launch{Language: m.language, Pace: m.pace}
	if m.selected != nil {
		l.Scene = m.selected.SceneID
	}
	return l
}

// centerText centers text within given width. Styled text is measured
// without its escape sequences.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Launch          Launch
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cfg core.RuntimeConfig, l lang.Language, pace config.PacePreset) (MenuResult, error) {
	model := NewMenuModel(cfg, l, pace)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, fmt.Errorf("tui: %w", err)
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Launch: m.Launch(),
		Config: m.Config(),
	}

	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting(), m.Selected() == nil:
		result.Quit = true
	}
	return result, nil
}
