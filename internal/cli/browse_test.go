package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/objscope/objscope/pkg/inspect"
)

func newBrowseFixture(t *testing.T) BrowseModel {
	t.Helper()
	f := inspect.NewFactory(inspect.NewRegistry())
	root, err := f.New(map[string]int{"a": 1, "b": 2})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return NewBrowseModel(root)
}

func keyMsg(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m BrowseModel, msg tea.Msg) BrowseModel {
	next, _ := m.Update(msg)
	return next.(BrowseModel)
}

func TestBrowseStartsCollapsed(t *testing.T) {
	m := newBrowseFixture(t)
	if len(m.rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(m.rows))
	}
	if m.rows[0].node != m.Root {
		t.Error("first row should be the root")
	}
}

func TestBrowseExpandCollapse(t *testing.T) {
	m := newBrowseFixture(t)

	m = update(m, keyMsg("enter"))
	if len(m.rows) < 3 {
		t.Fatalf("expanding the root should reveal entries, rows = %d", len(m.rows))
	}

	m = update(m, keyMsg("enter"))
	if len(m.rows) != 1 {
		t.Errorf("collapsing should hide entries, rows = %d", len(m.rows))
	}
}

func TestBrowseCursorMovement(t *testing.T) {
	m := newBrowseFixture(t)
	m = update(m, keyMsg("enter"))

	m = update(m, keyMsg("j"))
	if m.Cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.Cursor)
	}
	m = update(m, keyMsg("k"))
	if m.Cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.Cursor)
	}
	m = update(m, keyMsg("k"))
	if m.Cursor != 0 {
		t.Error("cursor should not move above the first row")
	}
}

func TestBrowseQuit(t *testing.T) {
	m := newBrowseFixture(t)
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q should produce a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestBrowseViewShowsLabels(t *testing.T) {
	m := newBrowseFixture(t)
	m = update(m, keyMsg("enter"))

	view := m.View()
	if !strings.Contains(view, `"a": 1`) {
		t.Errorf("view missing entry label:\n%s", view)
	}
	if !strings.Contains(view, "objscope") {
		t.Error("view missing title")
	}
}
