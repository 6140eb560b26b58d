package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sahilm/fuzzy"

	"github.com/mabhi256/r8deobf/internal/classindex"
)

// Model is the bubbletea model backing the `browse` command: a
// fuzzy-searchable class list on one tab, a member-count dashboard on
// the other.
type Model struct {
	// Data
	idx   *classindex.Index
	names []string // every obfuscated class name, sorted once at startup

	// UI State
	currentTab TabType
	width      int
	height     int

	filter  textinput.Model
	matches []fuzzy.Match // names filtered by filter.Value()
	cursor  int
	scroll  int

	// Key bindings
	keys KeyMap
}

type TabType int

const (
	BrowseTab TabType = iota
	DashboardTab
)

type KeyMap struct {
	Tab1  key.Binding
	Tab2  key.Binding
	Cycle key.Binding
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Quit  key.Binding
}

func k(keys []string, help, desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(help, desc),
	)
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab1:  k([]string{"1"}, "1", "browse"),
		Tab2:  k([]string{"2"}, "2", "dashboard"),
		Cycle: k([]string{"tab"}, "tab", "next tab"),
		Up:    k([]string{"up", "ctrl+k"}, "↑", "up"),
		Down:  k([]string{"down", "ctrl+j"}, "↓", "down"),
		Enter: k([]string{"enter"}, "enter", "select"),
		Quit:  k([]string{"esc", "ctrl+c"}, "esc", "quit"),
	}
}
