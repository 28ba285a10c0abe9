package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/numhunt/internal/registry"
	"github.com/vovakirdan/numhunt/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show scene list sidebar
	sidebarWidth       = 24  // Width of scene list sidebar
	maxScores          = 100 // Max sessions to load
)

// scoreboardView selects what the table lists.
type scoreboardView int

const (
	viewSessions scoreboardView = iota
	viewGoals
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextScene key.Binding
	PrevScene key.Binding
	Toggle    key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextScene, k.PrevScene, k.Toggle, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextScene, k.PrevScene},
		{k.Toggle, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextScene: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next scene"),
		),
		PrevScene: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev scene"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "sessions/numbers"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
// The first tab lists every scene together.
type ScoreboardModel struct {
	scenes      []registry.SceneInfo
	sceneCursor int
	view        scoreboardView
	store       *storage.Store
	sessions    []storage.SessionEntry
	goals       []storage.GoalStat
	stats       *storage.SceneStats
	loadErr     error
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	scenes := append([]registry.SceneInfo{{ID: "", Title: "All scenes"}}, registry.List()...)

	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		scenes:      scenes,
		store:       store,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *ScoreboardModel) columns() []table.Column {
	if m.view == viewGoals {
		return []table.Column{
			{Title: "Number", Width: 8},
			{Title: "Rounds", Width: 8},
			{Title: "Avg misses", Width: 11},
			{Title: "Avg time", Width: 10},
		}
	}

	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 6},
		{Title: "Misses", Width: 7},
		{Title: "Time", Width: 8},
		{Title: "Lang", Width: 5},
		{Title: "Date", Width: 12},
	}

	tableWidth := m.width - 4
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}
	// Widen the date column if there is room.
	if extra := tableWidth - 55; extra > 0 {
		columns[5].Width += min(extra, 6)
	}
	return columns
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *ScoreboardModel) currentScene() string {
	if len(m.scenes) == 0 {
		return ""
	}
	return m.scenes[m.sceneCursor].ID
}

// load reads the rows for the current scene and view.
func (m *ScoreboardModel) load() {
	m.sessions, m.goals, m.stats, m.loadErr = nil, nil, nil, nil
	if m.store != nil {
		scene := m.currentScene()
		switch m.view {
		case viewGoals:
			m.goals, m.loadErr = m.store.GoalStats()
		default:
			m.sessions, m.loadErr = m.store.TopSessions(scene, maxScores)
			if m.loadErr == nil && scene != "" {
				m.stats, m.loadErr = m.store.GetSceneStats(scene)
			}
		}
	}
	// Rows must not be shorter than the columns while the table re-renders.
	m.table.SetRows(nil)
	m.table.SetColumns(m.columns())
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded rows.
func (m *ScoreboardModel) updateTableRows() {
	var rows []table.Row
	switch m.view {
	case viewGoals:
		rows = make([]table.Row, len(m.goals))
		for i, g := range m.goals {
			rows[i] = table.Row{
				g.Goal,
				fmt.Sprintf("%d", g.Rounds),
				fmt.Sprintf("%.2f", g.AvgMistakes),
				formatDuration(g.AvgDuration),
			}
		}
	default:
		rows = make([]table.Row, len(m.sessions))
		for i, s := range m.sessions {
			score := fmt.Sprintf("%d", s.Score)
			if !s.Finished {
				score += "*"
			}
			rows[i] = table.Row{
				fmt.Sprintf("#%d", i+1),
				score,
				fmt.Sprintf("%d", s.Mistakes),
				formatDuration(s.Duration),
				s.Language,
				s.CreatedAt.Format("Jan 02 15:04"),
			}
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextScene):
			if len(m.scenes) > 0 {
				m.sceneCursor = (m.sceneCursor + 1) % len(m.scenes)
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevScene):
			if len(m.scenes) > 0 {
				m.sceneCursor = (m.sceneCursor - 1 + len(m.scenes)) % len(m.scenes)
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.Toggle):
			if m.view == viewSessions {
				m.view = viewGoals
			} else {
				m.view = viewSessions
			}
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "BEST HUNTS"
	if m.view == viewGoals {
		title = "NUMBERS BY DIFFICULTY"
	} else if len(m.scenes) > 0 {
		title = fmt.Sprintf("BEST HUNTS - %s", m.scenes[m.sceneCursor].Title)
	}

	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the scoreboard with a scene sidebar.
func (m ScoreboardModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Scenes\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, s := range m.scenes {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.sceneCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		name := runewidth.Truncate(s.Title, sidebarWidth-6, ".")
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	if st := m.stats; st != nil && m.view == viewSessions {
		sidebar.WriteString("\n")
		fmt.Fprintf(&sidebar, "Played   %d\n", st.Sessions)
		fmt.Fprintf(&sidebar, "Finished %d\n", st.Finished)
		fmt.Fprintf(&sidebar, "Best     %d\n", st.BestScore)
		if st.Finished > 0 {
			fmt.Fprintf(&sidebar, "Fewest   %d misses\n", st.FewestMisses)
		}
		fmt.Fprintf(&sidebar, "Avg time %s\n", formatDuration(st.AvgDuration))
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ",
		tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders the scoreboard with scene tabs above the table.
func (m ScoreboardModel) renderNarrowLayout() string {
	var b strings.Builder

	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.scenes))
	for i, s := range m.scenes {
		name := runewidth.Truncate(s.Title, 10, ".")
		if i == m.sceneCursor {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(" " + name + " ")
		}
	}

	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 && len(m.scenes) > 0 {
		tabLine = fmt.Sprintf("< %s >", m.scenes[m.sceneCursor].Title)
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("No results database.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load results:\n" + m.loadErr.Error())
	case m.view == viewGoals && len(m.goals) == 0,
		m.view == viewSessions && len(m.sessions) == 0:
		return emptyStyle.Render("No hunts recorded yet.\nFind all ten numbers to set a record!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("tui: %w", err)
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
