package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lausiv7/candysoda-sub005/internal/games/match3/core"
	"github.com/lausiv7/candysoda-sub005/internal/registry"
	"github.com/lausiv7/candysoda-sub005/internal/tables"
)

var (
	spaceKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	hintKey  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}}
	quitKey  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
	rightKey = tea.KeyMsg{Type: tea.KeyRight}
)

func newTestModel(t *testing.T, cfg tables.Config) (PlayModel, *tables.Table) {
	t.Helper()
	m := tables.NewManager(cfg, core.DefaultParams(), nil)
	tbl := m.Open(tables.OpenOptions{
		Profile: registry.Profile{ID: "test", Settings: core.DefaultSettings()},
		Seed:    17,
	})
	return NewPlayModel(tbl, MonochromeTheme()), tbl
}

func update(t *testing.T, m PlayModel, msg tea.Msg) PlayModel {
	t.Helper()
	next, _ := m.Update(msg)
	pm, ok := next.(PlayModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return pm
}

func TestSelectToggles(t *testing.T) {
	m, _ := newTestModel(t, tables.DefaultConfig())

	m = update(t, m, spaceKey)
	if m.selected == nil || *m.selected != m.cursor {
		t.Fatalf("expected cursor cell selected, got %v", m.selected)
	}
	m = update(t, m, spaceKey)
	if m.selected != nil {
		t.Error("second press should deselect")
	}
}

func TestCursorStaysOnBoard(t *testing.T) {
	m, _ := newTestModel(t, tables.DefaultConfig())
	for i := 0; i < 20; i++ {
		m = update(t, m, rightKey)
	}
	if m.cursor.X != m.board.W-1 {
		t.Errorf("expected cursor at the right edge, got %v", m.cursor)
	}
}

func TestSwapThroughKeys(t *testing.T) {
	m, tbl := newTestModel(t, tables.DefaultConfig())
	mv := tbl.Moves()[0]

	m.cursor = mv.From
	m = update(t, m, spaceKey)
	m.cursor = mv.To
	m = update(t, m, spaceKey)

	if got := tbl.Stats().Moves; got != 1 {
		t.Fatalf("expected 1 move played, got %d", got)
	}
	if m.selected != nil {
		t.Error("selection should clear after a swap")
	}
	if !m.board.Equal(tbl.Board()) {
		t.Error("model board not refreshed after the swap")
	}
	if m.status == "" || m.warn {
		t.Errorf("expected a score status, got %q (warn=%v)", m.status, m.warn)
	}
}

func TestMoveLimitEndsPlay(t *testing.T) {
	cfg := tables.DefaultConfig()
	cfg.MoveLimit = 1
	m, tbl := newTestModel(t, cfg)
	mv := tbl.Moves()[0]

	m.cursor = mv.From
	m = update(t, m, spaceKey)
	m.cursor = mv.To
	m = update(t, m, spaceKey)

	if !m.over {
		t.Fatal("expected play to be over")
	}
	// Further keys are ignored.
	m = update(t, m, hintKey)
	if m.hint != nil {
		t.Error("hint shown after the table closed")
	}
}

func TestHintKey(t *testing.T) {
	m, _ := newTestModel(t, tables.DefaultConfig())

	m = update(t, m, hintKey)
	if len(m.hint) != 2 || !m.hint[0].Adjacent(m.hint[1]) {
		t.Fatalf("expected two adjacent hint cells, got %v", m.hint)
	}

	m = update(t, m, hintKey)
	if !m.warn {
		t.Error("expected a cooldown warning on the second hint")
	}
}

func TestQuitKey(t *testing.T) {
	m, _ := newTestModel(t, tables.DefaultConfig())
	next, cmd := m.Update(quitKey)
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if !next.(PlayModel).quitting {
		t.Error("model not marked as quitting")
	}
	if next.View() != "" {
		t.Error("expected an empty view after quit")
	}
}

func TestClearStatusIgnoresStaleMessages(t *testing.T) {
	m, _ := newTestModel(t, tables.DefaultConfig())
	m = update(t, m, hintKey)
	seq := m.statusSeq

	m = update(t, m, clearStatusMsg{seq: seq - 1})
	if m.status == "" {
		t.Error("stale clear message removed the status")
	}
	m = update(t, m, clearStatusMsg{seq: seq})
	if m.status != "" {
		t.Error("status not cleared")
	}
}

func TestDescribeReject(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{core.ErrNoMatch, "that swap makes no match"},
		{core.ErrNotAdjacent, "cells are not adjacent"},
		{core.ErrNotSwappable, "that tile cannot move"},
		{core.ErrNotSpecial, "no special tile there"},
		{errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		if got := describeReject(tt.err); got != tt.want {
			t.Errorf("describeReject(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestRenderPlain(t *testing.T) {
	got := RenderPlain(core.MustParseBoard("RG\nB#"))
	want := "   0 1\n 0 R G\n 1 B #"
	if got != want {
		t.Errorf("RenderPlain =\n%q\nwant\n%q", got, want)
	}
}

func TestRenderBoardKeepsLetters(t *testing.T) {
	b := core.MustParseBoard("RG\nB*")
	c := core.C(1, 1)
	out := RenderBoard(b, MonochromeTheme(), Marks{Cursor: &c, Hint: []core.Coord{core.C(0, 0)}})
	for _, r := range "RGB*" {
		found := false
		for _, o := range out {
			if o == r {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("rendered board lacks %q", r)
		}
	}
}
