// Package pick implements the interactive part picker: a terminal UI that
// filters a list of part names and lets the user toggle which ones to remove.
package pick

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrCanceled is returned by [Run] when the user aborts selection.
var ErrCanceled = errors.New("selection canceled")

const (
	filterPrompt = "➜ "

	// maxVisible is the number of list rows shown at once; the list scrolls
	// to keep the cursor in view.
	maxVisible = 15

	defaultWidth = 80
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	candidateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("4")).
			Bold(true)
	hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// model is the Bubble Tea model for the part picker.
type model struct {
	input    textinput.Model
	names    []string
	matches  fuzzy.Matches
	selected map[string]struct{}
	cursor   int
	offset   int
	width    int
	done     bool
	canceled bool
}

func newModel(names []string) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(filterPrompt)
	ti.Placeholder = "type to filter"
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = defaultWidth

	m := model{
		input:    ti,
		names:    names,
		selected: make(map[string]struct{}),
		width:    defaultWidth,
	}
	m.filter()

	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.canceled = true

			return m, tea.Quit

		case "enter":
			m.done = true

			return m, tea.Quit

		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}

			m.scroll()

			return m, nil

		case "down", "ctrl+n":
			if m.cursor < len(m.matches)-1 {
				m.cursor++
			}

			m.scroll()

			return m, nil

		case "tab":
			m.toggle()

			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - lipgloss.Width(filterPrompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	m.filter()

	return m, cmd
}

// toggle flips the selection state of the name under the cursor.
func (m *model) toggle() {
	if m.cursor >= len(m.matches) {
		return
	}

	name := m.matches[m.cursor].Str
	if _, ok := m.selected[name]; ok {
		delete(m.selected, name)
	} else {
		m.selected[name] = struct{}{}
	}
}

// filter recomputes the match list from the current filter text. An empty
// filter matches every name.
func (m *model) filter() {
	word := strings.TrimSpace(m.input.Value())

	if word == "" {
		matches := make(fuzzy.Matches, len(m.names))
		for i, name := range m.names {
			matches[i] = fuzzy.Match{Str: name, Index: i}
		}

		m.matches = matches
	} else {
		m.matches = fuzzy.Find(word, m.names)
	}

	if m.cursor >= len(m.matches) {
		m.cursor = 0
	}

	m.scroll()
}

// scroll keeps the cursor inside the visible window.
func (m *model) scroll() {
	switch {
	case m.cursor < m.offset:
		m.offset = m.cursor

	case m.cursor >= m.offset+maxVisible:
		m.offset = m.cursor - maxVisible + 1
	}
}

func (m model) View() string {
	if m.done || m.canceled {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	end := min(m.offset+maxVisible, len(m.matches))

	for i := m.offset; i < end; i++ {
		match := m.matches[i]

		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}

		check := "[ ] "
		if _, ok := m.selected[match.Str]; ok {
			check = selectedStyle.Render("[x] ")
		}

		b.WriteString(cursor)
		b.WriteString(check)
		b.WriteString(renderMatch(match))
		b.WriteString("\n")
	}

	if len(m.matches) == 0 {
		b.WriteString(hintStyle.Render("  no matching parts"))
		b.WriteString("\n")
	}

	hint := fmt.Sprintf(
		"%d/%d shown, %d selected · tab toggle · enter confirm · esc cancel",
		len(m.matches), len(m.names), len(m.selected),
	)
	b.WriteString(hintStyle.Render(hint))
	b.WriteString("\n")

	return b.String()
}

// renderMatch renders one candidate with matched characters highlighted.
func renderMatch(match fuzzy.Match) string {
	matchSet := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matchSet[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		ch := string(r)
		if matchSet[i] {
			b.WriteString(highlightStyle.Render(ch))
		} else {
			b.WriteString(candidateStyle.Render(ch))
		}
	}

	return b.String()
}

// Run presents the picker for the given part names and returns the selected
// names sorted lexicographically. It returns [ErrCanceled] if the user
// aborted instead of confirming.
func Run(names []string) ([]string, error) {
	final, err := tea.NewProgram(newModel(names)).Run()
	if err != nil {
		return nil, err
	}

	m, ok := final.(model)
	if !ok || m.canceled {
		return nil, ErrCanceled
	}

	picked := make([]string, 0, len(m.selected))
	for name := range m.selected {
		picked = append(picked, name)
	}

	slices.Sort(picked)

	return picked, nil
}
