package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lausiv7/candysoda-sub005/internal/registry"
	"github.com/lausiv7/candysoda-sub005/internal/storage"
)

const (
	maxScores  = 100 // Scores loaded per profile
	maxResults = 200 // Table results scanned for a profile
)

// scoreView selects what the scoreboard table lists.
type scoreView int

const (
	viewScores scoreView = iota
	viewTables
)

// ScoreboardModel browses the stored scores and table results per profile.
type ScoreboardModel struct {
	store    *storage.Store
	theme    Theme
	profiles []string
	titles   map[string]string
	cursor   int
	view     scoreView

	scores    []storage.ScoreEntry
	results   []storage.TableResult
	stats     *storage.ProfileStats
	telemetry *storage.DifficultyStats

	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	quitting bool
}

// NewScoreboardModel creates a scoreboard over the registered profiles and
// every profile that has stored scores.
func NewScoreboardModel(store *storage.Store, theme Theme, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		theme:  theme,
		titles: make(map[string]string),
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	m.profiles = m.collectProfiles()
	m.table = m.newTable()
	m.reload()
	return m
}

// collectProfiles lists profiles with scores first, then the remaining
// registered ones, each group sorted by ID.
func (m *ScoreboardModel) collectProfiles() []string {
	for _, p := range registry.List() {
		m.titles[p.ID] = p.Title
	}

	var played []string
	if m.store != nil {
		if all, err := m.store.GetAllProfileStats(); err == nil {
			for id := range all {
				played = append(played, id)
			}
		}
	}
	sort.Strings(played)

	seen := make(map[string]bool, len(played))
	for _, id := range played {
		seen[id] = true
	}
	var rest []string
	for id := range m.titles {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	return append(played, rest...)
}

func (m *ScoreboardModel) current() string {
	if len(m.profiles) == 0 {
		return ""
	}
	return m.profiles[m.cursor]
}

func (m *ScoreboardModel) title(id string) string {
	if t, ok := m.titles[id]; ok {
		return t
	}
	return id
}

func (m *ScoreboardModel) columns() []table.Column {
	if m.view == viewTables {
		return []table.Column{
			{Title: "Score", Width: 8},
			{Title: "Moves", Width: 6},
			{Title: "Cascades", Width: 9},
			{Title: "Ended", Width: 13},
			{Title: "Time", Width: 7},
			{Title: "Date", Width: 13},
		}
	}
	return []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 10},
		{Title: "Date", Width: 14},
	}
}

func (m *ScoreboardModel) newTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.Inherit(m.theme.Selected).Bold(false)
	t.SetStyles(s)
	return t
}

// reload fetches the data of the current profile. Load errors leave the
// view empty.
func (m *ScoreboardModel) reload() {
	m.scores, m.results, m.stats, m.telemetry = nil, nil, nil, nil
	profile := m.current()
	if m.store != nil && profile != "" {
		if scores, err := m.store.TopScores(profile, maxScores); err == nil {
			m.scores = scores
		}
		if results, err := m.store.RecentTableResults(maxResults); err == nil {
			for _, r := range results {
				if r.Profile == profile {
					m.results = append(m.results, r)
				}
			}
		}
		if stats, err := m.store.GetProfileStats(profile); err == nil {
			m.stats = stats
		}
		if telemetry, err := m.store.GetDifficultyStats(profile); err == nil {
			m.telemetry = telemetry
		}
	}
	m.setRows()
}

func (m *ScoreboardModel) setRows() {
	var rows []table.Row
	if m.view == viewTables {
		for _, r := range m.results {
			rows = append(rows, table.Row{
				fmt.Sprint(r.Score),
				fmt.Sprint(r.Moves),
				fmt.Sprint(r.Cascades),
				r.EndReason,
				fmt.Sprintf("%dm%02ds", r.Duration/60, r.Duration%60),
				r.CreatedAt.Local().Format("Jan 02 15:04"),
			})
		}
	} else {
		for i, s := range m.scores {
			rows = append(rows, table.Row{
				fmt.Sprintf("#%d", i+1),
				fmt.Sprint(s.Score),
				s.CreatedAt.Local().Format("Jan 02 15:04"),
			})
		}
	}
	// Columns change with the view, so rows are set on a fresh table
	m.table.SetRows(nil)
	m.table.SetColumns(m.columns())
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) step(delta int) {
	if len(m.profiles) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.profiles)) % len(m.profiles)
	m.reload()
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
		case key.Matches(msg, m.keys.NextProfile):
			m.step(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevProfile):
			m.step(-1)
			return m, nil
		case key.Matches(msg, m.keys.ToggleView):
			if m.view == viewScores {
				m.view = viewTables
			} else {
				m.view = viewScores
			}
			m.setRows()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(max(m.height-10, 3))
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	heading := "HIGH SCORES"
	if m.view == viewTables {
		heading = "PLAYED TABLES"
	}
	b.WriteString(m.theme.HUDTitle.Render(heading))
	if id := m.current(); id != "" {
		b.WriteString("  ")
		b.WriteString(m.theme.HUDLabel.Render(fmt.Sprintf("< %s >", m.title(id))))
		b.WriteString(m.theme.HUDLabel.Render(fmt.Sprintf("  %d/%d", m.cursor+1, len(m.profiles))))
	}
	b.WriteString("\n\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(box.Render(m.content()))
	b.WriteString("\n")

	if s := m.summary(); s != "" {
		b.WriteString(m.theme.HUDLabel.Render(s))
		b.WriteString("\n")
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) content() string {
	empty := (m.view == viewScores && len(m.scores) == 0) ||
		(m.view == viewTables && len(m.results) == 0)
	if !empty {
		return m.table.View()
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(1, 2).
		Render("Nothing recorded yet.\nPlay a table to set a high score!")
}

// summary formats the score aggregates and the difficulty telemetry.
func (m ScoreboardModel) summary() string {
	var lines []string
	if m.stats != nil && m.stats.GamesCount > 0 {
		lines = append(lines, fmt.Sprintf("%d tables, best %d, avg %.0f, last %s",
			m.stats.GamesCount, m.stats.HighScore, m.stats.AvgScore, m.stats.LastPlayed.Local().Format("Jan 02 15:04")))
	}
	if m.telemetry != nil && m.telemetry.Boards > 0 {
		lines = append(lines, fmt.Sprintf("%d boards dealt, difficulty %.0f, solvability %.0f, %d fallback(s)",
			m.telemetry.Boards, m.telemetry.AvgDifficulty, m.telemetry.AvgSolvability, m.telemetry.Fallbacks))
	}
	return strings.Join(lines, "\n")
}

// RunScoreboard runs the scoreboard until the user quits.
func RunScoreboard(store *storage.Store, theme Theme, width, height int) error {
	p := tea.NewProgram(
		NewScoreboardModel(store, theme, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
