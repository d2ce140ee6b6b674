package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lausiv7/candysoda-sub005/internal/games/match3/core"
	"github.com/lausiv7/candysoda-sub005/internal/tables"
)

// PlayModel is the Bubble Tea model for playing one table.
type PlayModel struct {
	table    *tables.Table
	theme    Theme
	keys     PlayKeyMap
	help     help.Model
	board    *core.Board
	cursor   core.Coord
	selected *core.Coord
	hint     []core.Coord

	status    string
	warn      bool
	statusSeq int

	over     bool
	quitting bool
	width    int
}

// NewPlayModel creates a new play model for the given table.
func NewPlayModel(t *tables.Table, theme Theme) PlayModel {
	h := help.New()
	h.ShowAll = false

	b := t.Board()
	return PlayModel{
		table:  t,
		theme:  theme,
		keys:   DefaultPlayKeyMap(),
		help:   h,
		board:  b,
		cursor: core.C(b.W/2, b.H/2),
	}
}

// Init initializes the model.
func (m PlayModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq && !m.over {
			m.status = ""
			m.warn = false
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.over {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(0, 1)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1, 0)
	case key.Matches(msg, m.keys.Cancel):
		m.selected = nil
	case key.Matches(msg, m.keys.Select):
		return m.handleSelect()
	case key.Matches(msg, m.keys.Fire):
		return m.handleFire()
	case key.Matches(msg, m.keys.Hint):
		return m.handleHint()
	case key.Matches(msg, m.keys.Shuffle):
		return m.handleShuffle()
	case key.Matches(msg, m.keys.NewBoard):
		return m.handleNewBoard()
	}
	return m, nil
}

func (m *PlayModel) moveCursor(dx, dy int) {
	next := m.cursor.Add(dx, dy)
	if m.board.InBounds(next) {
		m.cursor = next
	}
}

// handleSelect selects the cursor cell, or swaps it with the selected cell
// when the two are adjacent.
func (m PlayModel) handleSelect() (tea.Model, tea.Cmd) {
	switch {
	case m.selected == nil:
		c := m.cursor
		m.selected = &c
		return m, nil
	case *m.selected == m.cursor:
		m.selected = nil
		return m, nil
	case !m.selected.Adjacent(m.cursor):
		c := m.cursor
		m.selected = &c
		return m, nil
	}

	from := *m.selected
	m.selected = nil
	res, err := m.table.Swap(from, m.cursor)
	return m.afterMove(res, err)
}

// handleFire fires the special under the cursor. A selected cell is the
// target color for a rainbow.
func (m PlayModel) handleFire() (tea.Model, tea.Cmd) {
	target := m.selected
	m.selected = nil
	res, err := m.table.Trigger(m.cursor, target)
	return m.afterMove(res, err)
}

func (m PlayModel) afterMove(res core.SwapResult, err error) (tea.Model, tea.Cmd) {
	if errors.Is(err, tables.ErrTableClosed) {
		return m.finish()
	}
	if err != nil {
		return m.setStatus(describeReject(err), true)
	}

	m.refresh()
	msg := fmt.Sprintf("+%d", res.Score)
	if res.Cascades > 1 {
		msg += fmt.Sprintf("  cascade x%d", res.Cascades)
	}
	if n := len(res.Activations); n > 0 {
		msg += fmt.Sprintf("  %d special(s) fired", n)
	}
	warn := false
	if res.Repair != nil {
		msg += "  " + res.Repair.Message
		warn = !res.Repair.Success
	}

	if m.table.Stats().Closed {
		m.status = msg
		return m.finish()
	}
	return m.setStatus(msg, warn)
}

func (m PlayModel) handleHint() (tea.Model, tea.Cmd) {
	if !m.table.HintReady() {
		return m.setStatus("hint is cooling down", true)
	}
	mv, ok := m.table.Hint()
	if !ok {
		return m.setStatus("no move to suggest", true)
	}
	m.hint = []core.Coord{mv.From, mv.To}
	return m.setStatus(fmt.Sprintf("try %v with %v (worth %d)", mv.From, mv.To, mv.Score), false)
}

func (m PlayModel) handleShuffle() (tea.Model, tea.Cmd) {
	res, err := m.table.Shuffle()
	if err != nil {
		return m.finish()
	}
	m.refresh()
	return m.setStatus(res.Message, !res.Success)
}

func (m PlayModel) handleNewBoard() (tea.Model, tea.Cmd) {
	res, err := m.table.Redeal()
	if err != nil {
		return m.finish()
	}
	m.refresh()
	if res.Fallback {
		return m.setStatus("new board (safe layout)", true)
	}
	return m.setStatus("new board", false)
}

// refresh reloads the board after it changed.
func (m *PlayModel) refresh() {
	m.board = m.table.Board()
	m.hint = nil
	if !m.board.InBounds(m.cursor) {
		m.cursor = core.C(m.board.W/2, m.board.H/2)
	}
}

func (m PlayModel) setStatus(msg string, warn bool) (tea.Model, tea.Cmd) {
	m.statusSeq++
	m.status = msg
	m.warn = warn
	return m, clearStatusCmd(m.statusSeq, statusTTL)
}

// finish marks the table as over. The final screen stays until quit.
func (m PlayModel) finish() (tea.Model, tea.Cmd) {
	m.over = true
	m.selected = nil
	m.hint = nil
	reason := m.table.EndReason().String()
	if m.status != "" {
		m.status += "  "
	}
	m.status += "table over: " + strings.ReplaceAll(reason, "_", " ")
	m.warn = false
	return m, nil
}

func describeReject(err error) string {
	switch {
	case errors.Is(err, core.ErrNoMatch):
		return "that swap makes no match"
	case errors.Is(err, core.ErrNotAdjacent):
		return "cells are not adjacent"
	case errors.Is(err, core.ErrNotSwappable):
		return "that tile cannot move"
	case errors.Is(err, core.ErrNotSpecial):
		return "no special tile there"
	default:
		return err.Error()
	}
}

// View renders the current state to a string for display.
func (m PlayModel) View() string {
	if m.quitting {
		return ""
	}

	st := m.table.Stats()
	var b strings.Builder

	b.WriteString(m.theme.HUDTitle.Render("CANDYSODA"))
	b.WriteString("  ")
	b.WriteString(m.hudField("profile", m.table.Profile()))
	b.WriteString(m.hudField("score", fmt.Sprint(st.Score)))
	b.WriteString(m.hudField("moves", fmt.Sprint(st.Moves)))
	b.WriteString("\n\n")

	marks := Marks{Selected: m.selected, Hint: m.hint}
	if !m.over {
		c := m.cursor
		marks.Cursor = &c
	}
	board := RenderBoard(m.board, m.theme, marks)
	b.WriteString(lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(board))
	b.WriteString("\n")

	statusStyle := m.theme.HUDValue
	if m.warn {
		statusStyle = m.theme.HUDWarning
	}
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m PlayModel) hudField(label, value string) string {
	return m.theme.HUDLabel.Render(label+" ") + m.theme.HUDValue.Render(value) + "  "
}

// Run starts the Bubble Tea program for a table.
func Run(t *tables.Table, theme Theme) error {
	p := tea.NewProgram(
		NewPlayModel(t, theme),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
