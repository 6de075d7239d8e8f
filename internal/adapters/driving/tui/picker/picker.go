// Package picker provides a single-choice list prompt.
package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/jiri/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/jiri/internal/adapters/driving/tui/styles"
)

// Item is one choice.
type Item struct {
	// Label is shown in the list.
	Label string

	// Detail is shown muted after the label.
	Detail string
}

// Model is a bubbletea model that lets the user pick one item.
type Model struct {
	title    string
	items    []Item
	selected int
	chosen   bool
	quit     bool
	height   int
	keys     *keymap.KeyMap
	styles   *styles.Styles
}

// New creates a picker over items.
func New(title string, items []Item, s *styles.Styles) *Model {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Model{
		title:  title,
		items:  items,
		height: 20,
		keys:   keymap.DefaultKeyMap(),
		styles: s,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quit = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Select):
			if len(m.items) > 0 {
				m.chosen = true
				return m, tea.Quit
			}
		case key.Matches(msg, m.keys.Up):
			m.MoveUp()
		case key.Matches(msg, m.keys.Down):
			m.MoveDown()
		case key.Matches(msg, m.keys.Top):
			m.selected = 0
		case key.Matches(msg, m.keys.Bottom):
			if len(m.items) > 0 {
				m.selected = len(m.items) - 1
			}
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.chosen || m.quit {
		return ""
	}

	lines := []string{m.styles.Title.Render(m.title), ""}
	if len(m.items) == 0 {
		lines = append(lines, m.styles.Muted.Render("Nothing to choose from"))
	}

	visible := m.height - 4
	if visible < 1 {
		visible = 1
	}
	start := 0
	if m.selected >= visible {
		start = m.selected - visible + 1
	}
	end := min(start+visible, len(m.items))

	for i := start; i < end; i++ {
		lines = append(lines, m.renderItem(i))
	}

	var help []string
	for _, b := range m.keys.ShortHelp() {
		help = append(help, fmt.Sprintf("%s %s", b.Help().Key, b.Help().Desc))
	}
	lines = append(lines, "", m.styles.Help.Render(strings.Join(help, " • ")))
	return strings.Join(lines, "\n") + "\n"
}

func (m *Model) renderItem(i int) string {
	item := m.items[i]
	if i == m.selected {
		return m.styles.Selected.Render("> "+item.Label) + m.detail(item)
	}
	return m.styles.Normal.Render("  "+item.Label) + m.detail(item)
}

func (m *Model) detail(item Item) string {
	if item.Detail == "" {
		return ""
	}
	return m.styles.Muted.Render("  " + item.Detail)
}

// MoveUp moves selection up.
func (m *Model) MoveUp() {
	if m.selected > 0 {
		m.selected--
	}
}

// MoveDown moves selection down.
func (m *Model) MoveDown() {
	if m.selected < len(m.items)-1 {
		m.selected++
	}
}

// Selected returns the highlighted index.
func (m *Model) Selected() int {
	return m.selected
}

// Choice returns the chosen index, or -1 if the prompt was abandoned.
func (m *Model) Choice() int {
	if !m.chosen {
		return -1
	}
	return m.selected
}

// Run shows the picker on the terminal and returns the chosen index,
// or -1 if the user cancelled.
func Run(title string, items []Item, s *styles.Styles, opts ...tea.ProgramOption) (int, error) {
	m := New(title, items, s)
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return -1, fmt.Errorf("picker: %w", err)
	}
	return final.(*Model).Choice(), nil
}
