package pick

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func update(t *testing.T, m model, keys ...string) model {
	t.Helper()

	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))

		var ok bool

		m, ok = next.(model)
		if !ok {
			t.Fatalf("Update returned unexpected model type %T", next)
		}
	}

	return m
}

func TestFilterEmptyMatchesAll(t *testing.T) {
	m := newModel([]string{"mk1pod", "RCSBlock", "fuelTank"})

	if len(m.matches) != 3 {
		t.Errorf("expected 3 matches, got %d", len(m.matches))
	}
}

func TestFilterNarrowsMatches(t *testing.T) {
	m := newModel([]string{"mk1pod", "RCSBlock", "fuelTank"})
	m = update(t, m, "r", "c", "s")

	if len(m.matches) != 1 || m.matches[0].Str != "RCSBlock" {
		t.Errorf("expected single RCSBlock match, got %v", m.matches)
	}
}

func TestToggleSelection(t *testing.T) {
	m := newModel([]string{"mk1pod", "RCSBlock"})
	m = update(t, m, "down", "tab")

	if _, ok := m.selected["RCSBlock"]; !ok {
		t.Errorf("expected RCSBlock selected, got %v", m.selected)
	}

	// Toggling again deselects.
	m = update(t, m, "tab")

	if len(m.selected) != 0 {
		t.Errorf("expected empty selection, got %v", m.selected)
	}
}

func TestSelectionSurvivesFilterChange(t *testing.T) {
	m := newModel([]string{"mk1pod", "RCSBlock", "fuelTank"})
	m = update(t, m, "tab")    // select mk1pod
	m = update(t, m, "r", "c") // narrow to RCSBlock
	m = update(t, m, "tab")    // select RCSBlock

	for _, want := range []string{"mk1pod", "RCSBlock"} {
		if _, ok := m.selected[want]; !ok {
			t.Errorf("expected %q selected, got %v", want, m.selected)
		}
	}
}

func TestEnterConfirmsEscCancels(t *testing.T) {
	m := newModel([]string{"mk1pod"})
	m = update(t, m, "enter")

	if !m.done {
		t.Error("expected done after enter")
	}

	m = newModel([]string{"mk1pod"})
	m = update(t, m, "esc")

	if !m.canceled {
		t.Error("expected canceled after esc")
	}
}

func TestCursorStaysInBounds(t *testing.T) {
	m := newModel([]string{"a", "b"})
	m = update(t, m, "up") // already at top

	if m.cursor != 0 {
		t.Errorf("cursor moved above top: %d", m.cursor)
	}

	m = update(t, m, "down", "down", "down")

	if m.cursor != 1 {
		t.Errorf("cursor moved past end: %d", m.cursor)
	}
}
