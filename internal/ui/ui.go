// Package ui implements the interactive terminal picker used to choose
// films, sort columns and operations.
package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

// Option is one selectable entry.
type Option struct {
	Label  string
	Detail string
}

var _ list.Item = pickerItem{}

// pickerItem wraps [Option] to implement [list.Item].
type pickerItem struct {
	option Option
}

func (i pickerItem) FilterValue() string { return i.option.Label }
func (i pickerItem) Title() string       { return i.option.Label }
func (i pickerItem) Description() string { return i.option.Detail }

// keyMap defines the picker key bindings.
type keyMap struct {
	enter key.Binding
	quit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "cancel"),
		),
	}
}

// Model is the picker application state.
type Model struct {
	list      list.Model
	keys      keyMap
	choice    int
	cancelled bool
}

// NewModel creates a picker over the given options.
func NewModel(title string, options []Option) *Model {
	items := make([]list.Item, len(options))
	for i, option := range options {
		items[i] = pickerItem{option: option}
	}

	delegate := list.NewDefaultDelegate()
	l := list.New(items, delegate, 0, 0)
	l.Title = title
	l.Styles.Title = titleStyle
	l.SetShowStatusBar(false)

	return &Model{
		list:   l,
		keys:   newKeyMap(),
		choice: -1,
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, m.keys.enter):
			m.choice = m.list.Index()
			return m, tea.Quit
		case key.Matches(msg, m.keys.quit):
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) View() string {
	return m.list.View()
}

// Choice returns the selected index, or -1 when cancelled.
func (m *Model) Choice() int {
	if m.cancelled {
		return -1
	}
	return m.choice
}

// Pick runs an interactive picker and returns the selected index.
// A cancelled picker returns -1 and no error.
func Pick(title string, options []Option) (int, error) {
	if len(options) == 0 {
		return -1, fmt.Errorf("no options to pick from")
	}

	model := NewModel(title, options)
	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return -1, fmt.Errorf("picker failed: %w", err)
	}

	return final.(*Model).Choice(), nil
}
